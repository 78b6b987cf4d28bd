package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/medbase/meddb/internal/iodb"
	"github.com/medbase/meddb/internal/ionormalize"
	"github.com/medbase/meddb/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getNormalizeCmd returns the normalize command.
func getNormalizeCmd() *cobra.Command {
	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "Canonicalize ingredients and rebuild the search groups",
		Long: `Run a full normalization pass over the catalog:

  1. Compute the canonical active ingredient for every record from its
     generic name or description
  2. Rebuild the ingredient grouping table used by search
  3. Mark completion in store metadata

When the store is already normalized the command returns cached
statistics without touching any record. Loading new records clears the
completion mark, so re-running normalize after a load processes them.

An interrupted pass is safe to re-run: progress is committed in batches
and the completion mark is only written at the very end.

Examples:
  meddb normalize`,
		RunE: runNormalize,
	}

	return normalizeCmd
}

func runNormalize(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op := iodb.NewOperator(cfg.Database.Path)
	if err := op.Connect(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to store: <em>%s</em>", op.Path())

	res, err := ionormalize.NewNormalizer(op, cfg).Normalize(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if res.State == lifecycle.StateAlreadyComplete {
		gn.Info(`Store is already normalized:
  records with canonical ingredient: <em>%s</em>
  ingredient groups:                 <em>%s</em>

Nothing to do. Run 'meddb load' to add more records.`,
			humanize.Comma(int64(res.UpdatedCount)),
			humanize.Comma(int64(res.GroupCount)))
		return nil
	}

	gn.Info(`Normalization complete!
  records with canonical ingredient: <em>%s</em>
  ingredient groups:                 <em>%s</em>

Run 'meddb search <term>' to query the catalog by ingredient.`,
		humanize.Comma(int64(res.UpdatedCount)),
		humanize.Comma(int64(res.GroupCount)))

	return nil
}

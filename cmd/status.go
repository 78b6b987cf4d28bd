package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/medbase/meddb/internal/iodb"
	"github.com/medbase/meddb/internal/iohealth"
	"github.com/medbase/meddb/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getStatusCmd returns the status command.
func getStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Quick readiness probe of the catalog store",
		Long: `Check whether the store is ready for ingredient search. Unlike
'meddb inspect' this answers from a handful of counts, so it is cheap
enough to run before every batch job.

The probe reports one of:
  no_database         the store file does not exist
  error               the store cannot be queried
  ready               normalization coverage is above 90%
  needs_optimization  normalization is missing or incomplete

Suggested next steps are printed after the probe.

Examples:
  meddb status`,
		RunE: runStatus,
	}

	return statusCmd
}

func runStatus(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op := iodb.NewOperator(cfg.Database.Path)
	defer op.Close()

	c := iohealth.NewChecker(op, cfg)
	st := c.QuickStatus(ctx)

	gn.Info("Store: <em>%s</em>", op.Path())
	gn.Info("Status: <em>%s</em>", st.Status)
	if st.Message != "" {
		gn.Info("  %s", st.Message)
	}

	if st.Status != lifecycle.StatusNoDatabase &&
		st.Status != lifecycle.StatusError {
		fmt.Printf("  records:            %s\n",
			humanize.Comma(int64(st.TotalRecords)))
		fmt.Printf("  normalized:         %s (%.1f%%)\n",
			humanize.Comma(int64(st.NormalizedRecords)),
			st.CoveragePercent)
		fmt.Printf("  unique ingredients: %s\n",
			humanize.Comma(int64(st.UniqueIngredients)))
		if size, err := op.FileSize(); err == nil {
			fmt.Printf("  store size:         %s\n",
				humanize.Bytes(uint64(size)))
		}
		fmt.Printf("  ready for use:      %v\n", st.ReadyForUse)
	}

	gn.Info("Next steps:")
	for _, step := range c.SuggestNextSteps(st) {
		fmt.Printf("  - %s\n", step)
	}

	return nil
}

package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/medbase/meddb/internal/iodb"
	"github.com/medbase/meddb/internal/ionormalize"
	"github.com/medbase/meddb/internal/ioschema"
	"github.com/medbase/meddb/pkg/catalog"
	"github.com/spf13/cobra"
)

// getLoadCmd returns the load command.
func getLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load <records.json>",
		Short: "Load institution catalog records into the store",
		Long: `Load drug records from a JSON file into the catalog store. Records
are keyed by institution code: an incoming record with a known code
replaces the stored one, a new code is inserted.

The schema is ensured before loading, so a fresh store works without a
prior 'meddb init'.

The file holds an array of records:
  [
    {
      "code": "010.000.0101.00",
      "description": "TABLETA. Cada tableta contiene 500 mg",
      "generic_name": "Paracetamol 500 mg Tableta",
      "therapeutic_group": "Analgesia",
      "category": "I",
      "source": "IMSS"
    }
  ]

Examples:
  meddb load imss.json
  meddb load issste.json --config custom.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runLoad,
	}

	return loadCmd
}

func runLoad(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		err = ReadRecordsFileError(path, err)
		gn.PrintErrorMessage(err)
		return err
	}

	var recs []catalog.DrugRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		err = ReadRecordsFileError(path, err)
		gn.PrintErrorMessage(err)
		return err
	}

	op := iodb.NewOperator(cfg.Database.Path)
	if err := op.Connect(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err := ioschema.NewManager(op).Ensure(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	n := ionormalize.NewNormalizer(op, cfg)
	wasNormalized, _ := n.Completed(ctx)

	count, err := n.Load(ctx, recs)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Loaded <em>%s</em> records from <em>%s</em>",
		humanize.Comma(int64(count)), path)

	if wasNormalized && count > 0 {
		gn.Warn(`The store was normalized before this load; the completion
flag has been cleared. Run 'meddb normalize' to canonicalize the new
records.`)
	}

	return nil
}

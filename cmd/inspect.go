package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/internal/iodb"
	"github.com/medbase/meddb/internal/ioinspect"
	"github.com/spf13/cobra"
)

// getInspectCmd returns the inspect command.
func getInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Produce a detailed report of the catalog store",
		Long: `Inspect the catalog store and print a JSON report covering:

  - physical structure: tables, columns, row counts, indexes
  - normalization status: completion mark, coverage, group counts
  - ingredient analysis: top groups, multi-member groups
  - sample records showing the applied canonicalization
  - recommendations for the next maintenance step

The report is computed on demand and never stored. Sections are
independent: a failing section carries its error in the report while the
others still fill in.

Examples:
  meddb inspect
  meddb inspect > report.json`,
		RunE: runInspect,
	}

	return inspectCmd
}

func runInspect(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op := iodb.NewOperator(cfg.Database.Path)
	if err := op.Connect(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	rep, err := ioinspect.NewInspector(op, cfg).Inspect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	fmt.Println(string(out))

	return nil
}

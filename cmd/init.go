package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/internal/iodb"
	"github.com/medbase/meddb/internal/ioschema"
	"github.com/spf13/cobra"
)

// getInitCmd returns the init command.
func getInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create or update the catalog store schema",
		Long: `Create the catalog store schema, or bring an existing store up to
date. The command is idempotent: tables, the active_ingredient column,
and the search indexes are only created when missing, and existing data
is never touched.

It is safe to run init against a store that predates this tool; the
missing pieces are added around the existing catalog table.

Examples:
  meddb init
  meddb init --config custom.yaml`,
		RunE: runInit,
	}

	return initCmd
}

func runInit(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op := iodb.NewOperator(cfg.Database.Path)
	if err := op.Connect(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to store: <em>%s</em>", op.Path())

	if err := ioschema.NewManager(op).Ensure(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(`Store schema is ready!

Next steps:
  - Run 'meddb load' to load institution catalogs
  - Run 'meddb normalize' to canonicalize ingredients`)

	return nil
}

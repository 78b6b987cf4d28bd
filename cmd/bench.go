package cmd

import (
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/internal/iodb"
	"github.com/medbase/meddb/internal/iohealth"
	"github.com/medbase/meddb/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getBenchCmd returns the bench command.
func getBenchCmd() *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench <term>",
		Short: "Compare scan and indexed search for a term",
		Long: `Time the same search twice: once as a naive LIKE scan over the full
catalog's free text, and once as an indexed lookup through the
ingredient grouping table.

The indexed branch is only available after 'meddb normalize'; before
that the command still times the scan so the baseline can be recorded.

Examples:
  meddb bench paracetamol`,
		Args: cobra.ExactArgs(1),
		RunE: runBench,
	}

	return benchCmd
}

func runBench(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	term := args[0]

	op := iodb.NewOperator(cfg.Database.Path)
	defer op.Close()

	cmp := iohealth.NewChecker(op, cfg).ComparePerformance(ctx, term)
	if cmp.Err != "" {
		gn.Warn("Cannot compare performance: %s", cmp.Err)
		return nil
	}

	gn.Info("Performance comparison for <em>%s</em>:", term)
	printTiming("catalog scan", cmp.Scan)
	printTiming("indexed groups", cmp.Indexed)

	if cmp.Scan.Available && cmp.Indexed.Available &&
		cmp.Indexed.Elapsed > 0 {
		ratio := float64(cmp.Scan.Elapsed) / float64(cmp.Indexed.Elapsed)
		fmt.Printf("\n  indexed lookup is %.1fx the scan speed\n", ratio)
	}

	return nil
}

func printTiming(name string, t lifecycle.BranchTiming) {
	if !t.Available {
		fmt.Printf("  %-15s not available\n", name)
		return
	}
	fmt.Printf("  %-15s %v (%d results)\n", name, t.Elapsed, t.ResultCount)
}

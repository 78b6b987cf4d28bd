package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/internal/iodb"
	"github.com/medbase/meddb/internal/iosearch"
	"github.com/spf13/cobra"
)

// getSearchCmd returns the search command.
func getSearchCmd() *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Find catalog records by ingredient substring",
		Long: `Search the catalog by active ingredient. The term goes through the
same canonicalization as the records, so salts, dosage forms and
concentrations in the query are ignored: 'Clorhidrato de Metformina
850 mg' finds the same group as 'metformina'.

Matching is by substring over the canonical ingredient tokens, and every
matching group is returned with its member records.

Prerequisites:
  - Run 'meddb normalize' first to build the grouping table

Examples:
  meddb search paracetamol
  meddb search "clorhidrato de metformina"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	return searchCmd
}

func runSearch(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	term := args[0]

	op := iodb.NewOperator(cfg.Database.Path)
	if err := op.Connect(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	groups, err := iosearch.NewSearcher(op).FindSimilar(ctx, term)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if len(groups) == 0 {
		gn.Info("No ingredient groups match <em>%s</em>", term)
		return nil
	}

	gn.Info("Found <em>%d</em> ingredient groups for <em>%s</em>:",
		len(groups), term)

	for _, g := range groups {
		fmt.Printf("\n%s (%d records)\n", g.Ingredient, g.MemberCount)
		if len(g.TherapeuticGroups) > 0 {
			fmt.Printf("  therapeutic groups: %s\n",
				strings.Join(g.TherapeuticGroups, ", "))
		}
		for i, code := range g.Codes {
			desc := ""
			if i < len(g.Descriptions) {
				desc = g.Descriptions[i]
			}
			fmt.Printf("  %s  %s\n", code, desc)
		}
	}

	return nil
}

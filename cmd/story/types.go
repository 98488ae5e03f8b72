package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inkvane/story-core/internal/domain/entities"
)

func newTypesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List relationship types ranked for suggestion",
		Long: `Lists the relationship type vocabulary for the current story, ordered the
way autocompletion offers it: most used first, most recently used breaking
ties, then alphabetical. The standard vocabulary is always included.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypesList(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultTypesLimit, "Maximum number of types to show")

	return cmd
}

func runTypesList(cmd *cobra.Command, limit int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		types, err := d.Relationships.HandleSuggestTypes(ctx, d.StoryID)
		if err != nil {
			return fmt.Errorf("listing types: %w", err)
		}

		if limit > 0 && len(types) > limit {
			types = types[:limit]
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tUSED\tLAST USED\tSTANDARD")
		for i := range types {
			lastUsed := "-"
			if !types[i].LastUsed.IsZero() {
				lastUsed = types[i].LastUsed.Format("2006-01-02 15:04")
			}
			standard := ""
			if entities.IsStandardType(types[i].Name) {
				standard = "yes"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", types[i].Name, types[i].Count, lastUsed, standard)
		}
		w.Flush()

		return nil
	})
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inkvane/story-core/internal/domain/entities"
)

func newRelationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relations <character-id>",
		Short: "List a character's relationships",
		Args:  cobra.ExactArgs(1),
		RunE:  runRelations,
	}
}

func runRelations(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	characterID := args[0]

	return withDeps(func(d *Deps) error {
		list, err := d.Relationships.HandleList(ctx, characterID)
		if err != nil {
			return fmt.Errorf("listing relationships: %w", err)
		}

		if len(list.Outgoing) == 0 && len(list.Incoming) == 0 {
			fmt.Println("No relationships found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDIRECTION\tTYPE\tOTHER\tLINKED")
		printEdges(w, list.Outgoing, "out", func(e *entities.RelationshipEdge) string { return e.TargetID })
		printEdges(w, list.Incoming, "in", func(e *entities.RelationshipEdge) string { return e.SourceID })
		w.Flush()

		return nil
	})
}

func printEdges(w *tabwriter.Writer, edges []entities.RelationshipEdge, direction string, other func(*entities.RelationshipEdge) string) {
	for i := range edges {
		linked := ""
		if edges[i].InverseID != "" {
			linked = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			edges[i].ID, direction, edges[i].Type, other(&edges[i]), linked)
	}
}

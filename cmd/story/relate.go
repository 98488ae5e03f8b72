package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRelateCmd() *cobra.Command {
	var inverse string
	var autoInverse bool

	cmd := &cobra.Command{
		Use:   "relate <source-id> <type> <target-id>",
		Short: "Create a relationship between two characters",
		Long: `Creates a directed, typed relationship between two characters.
When the type is known to the inverse table, matching inverse labels are
suggested; pass --inverse to create the paired reverse edge in one step,
or --auto-inverse to apply a suggestion when it is unambiguous.

Examples:
  story -s mynovel relate <john-id> Father <mary-id>
  story -s mynovel relate <john-id> Father <mary-id> --inverse Daughter
  story -s mynovel relate <a-id> Coworker <b-id> --auto-inverse`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelate(cmd, args, inverse, autoInverse)
		},
	}

	cmd.Flags().StringVar(&inverse, "inverse", "", "Create the reverse edge with this label")
	cmd.Flags().BoolVar(&autoInverse, "auto-inverse", false, "Apply the inverse suggestion when there is exactly one")

	cmd.AddCommand(newRelateDeleteCmd(), newRelateInverseCmd())

	return cmd
}

func runRelate(cmd *cobra.Command, args []string, inverse string, autoInverse bool) error {
	ctx := cmd.Context()
	sourceID := args[0]
	typeLabel := args[1]
	targetID := args[2]

	return withDeps(func(d *Deps) error {
		result, err := d.Relationships.HandleCreate(ctx, d.StoryID, sourceID, targetID, typeLabel)
		if err != nil {
			return fmt.Errorf("creating relationship: %w", err)
		}

		fmt.Printf("Created relationship: %s\n", result.Edge.ID)
		fmt.Printf("  %s -[%s]-> %s\n", sourceID, result.Edge.Type, targetID)

		chosen := inverse
		if chosen == "" && autoInverse && len(result.Suggestions) == 1 {
			chosen = result.Suggestions[0]
		}

		if chosen != "" {
			inv, err := d.Relationships.HandleConfirmInverse(ctx, result.Edge.ID, chosen)
			if err != nil {
				return fmt.Errorf("creating inverse relationship: %w", err)
			}
			fmt.Printf("Created inverse: %s\n", inv.ID)
			fmt.Printf("  %s -[%s]-> %s\n", targetID, inv.Type, sourceID)
			return nil
		}

		if len(result.Suggestions) > 0 {
			fmt.Printf("Inverse suggestions: %v\n", result.Suggestions)
			fmt.Printf("Use 'story relate inverse %s <label>' to apply one.\n", result.Edge.ID)
		}
		return nil
	})
}

func newRelateInverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inverse <edge-id> [label]",
		Short: "Suggest or confirm the inverse of a relationship",
		Long: `Without a label, lists the inverse suggestions for the edge.
With a label, creates the paired reverse edge and links both edges.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runRelateInverse,
	}
}

func runRelateInverse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	edgeID := args[0]

	return withDeps(func(d *Deps) error {
		if len(args) == 1 {
			suggestions, err := d.Relationships.HandleSuggestInverse(ctx, edgeID)
			if err != nil {
				return fmt.Errorf("suggesting inverse: %w", err)
			}
			if len(suggestions) == 0 {
				fmt.Println("No inverse suggestion for this relationship type.")
				return nil
			}
			for _, label := range suggestions {
				fmt.Println(label)
			}
			return nil
		}

		inv, err := d.Relationships.HandleConfirmInverse(ctx, edgeID, args[1])
		if err != nil {
			return fmt.Errorf("creating inverse relationship: %w", err)
		}
		fmt.Printf("Created inverse: %s\n", inv.ID)
		return nil
	})
}

func newRelateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <edge-id>",
		Short: "Delete a relationship",
		Long: `Deletes a relationship by its ID. A linked inverse edge is kept and
unlinked; delete it separately if the paired relationship no longer holds.`,
		Args: cobra.ExactArgs(1),
		RunE: runRelateDelete,
	}
}

func runRelateDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	edgeID := args[0]

	return withDeps(func(d *Deps) error {
		if err := d.Relationships.HandleDelete(ctx, edgeID); err != nil {
			return fmt.Errorf("deleting relationship: %w", err)
		}

		fmt.Printf("Deleted relationship: %s\n", edgeID)
		return nil
	})
}

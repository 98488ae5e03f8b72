package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inkvane/story-core/internal/domain/entities"
)

func newViewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Manage a story's board views",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewsList(cmd)
		},
	}

	cmd.AddCommand(
		newViewsListCmd(),
		newViewsCreateCmd(),
		newViewsResetCmd(),
	)

	return cmd
}

func newViewsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List views",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewsList(cmd)
		},
	}
}

func runViewsList(cmd *cobra.Command) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		views, err := d.Views.HandleList(ctx, d.StoryID)
		if err != nil {
			return fmt.Errorf("listing views: %w", err)
		}

		if len(views) == 0 {
			fmt.Println("No views found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tKIND\tCHARACTERS")
		for i := range views {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
				views[i].ID, views[i].Name, views[i].Kind, len(views[i].Layout))
		}
		w.Flush()

		return nil
	})
}

func newViewsCreateCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a view seeded with the default grid layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewsCreate(cmd, args[0], kind)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(entities.ViewKindBoard), "View kind (BOARD or LIST)")

	return cmd
}

func runViewsCreate(cmd *cobra.Command, name, kind string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		view, err := d.Views.HandleCreate(ctx, d.StoryID, name, entities.ViewKind(strings.ToUpper(kind)))
		if err != nil {
			return fmt.Errorf("creating view: %w", err)
		}

		fmt.Printf("Created view: %s\n", view.ID)
		fmt.Printf("  %s (%s), %d characters placed\n", view.Name, view.Kind, len(view.Layout))
		return nil
	})
}

func newViewsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <view-id>",
		Short: "Reset a view to the deterministic grid layout",
		Args:  cobra.ExactArgs(1),
		RunE:  runViewsReset,
	}
}

func runViewsReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	viewID := args[0]

	return withDeps(func(d *Deps) error {
		layout, err := d.Views.HandleReset(ctx, viewID)
		if err != nil {
			return fmt.Errorf("resetting view: %w", err)
		}

		fmt.Printf("Reset view %s: %d characters placed\n", viewID, len(layout))
		return nil
	})
}

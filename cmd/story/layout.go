package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect and edit view layouts",
	}

	cmd.AddCommand(
		newLayoutGetCmd(),
		newLayoutSetCmd(),
	)

	return cmd
}

func newLayoutGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <view-id>",
		Short: "Show a view's character positions",
		Args:  cobra.ExactArgs(1),
		RunE:  runLayoutGet,
	}
}

func runLayoutGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	viewID := args[0]

	return withDeps(func(d *Deps) error {
		layout, err := d.Views.HandleLoadLayout(ctx, viewID)
		if err != nil {
			return fmt.Errorf("loading layout: %w", err)
		}

		if len(layout) == 0 {
			fmt.Println("No characters placed.")
			return nil
		}

		ids := make([]string, 0, len(layout))
		for id := range layout {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CHARACTER\tX\tY")
		for _, id := range ids {
			pos := layout[id]
			fmt.Fprintf(w, "%s\t%.0f\t%.0f\n", id, pos.X, pos.Y)
		}
		w.Flush()

		return nil
	})
}

func newLayoutSetCmd() *cobra.Command {
	var buffered bool

	cmd := &cobra.Command{
		Use:   "set <view-id> <character-id> <x> <y>",
		Short: "Move a character to a position in a view",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayoutSet(cmd, args, buffered)
		},
	}

	cmd.Flags().BoolVar(&buffered, "buffered", false, "Coalesce the write through the autosaver instead of saving immediately")

	return cmd
}

func runLayoutSet(cmd *cobra.Command, args []string, buffered bool) error {
	ctx := cmd.Context()
	viewID := args[0]
	characterID := args[1]

	x, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("parsing x coordinate: %w", err)
	}
	y, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("parsing y coordinate: %w", err)
	}

	return withDeps(func(d *Deps) error {
		layout, err := d.Views.HandleLoadLayout(ctx, viewID)
		if err != nil {
			return fmt.Errorf("loading layout: %w", err)
		}

		pos, ok := layout[characterID]
		if !ok {
			return fmt.Errorf("character %s is not part of view %s", characterID, viewID)
		}
		pos.X = x
		pos.Y = y
		layout[characterID] = pos

		if buffered {
			d.Views.HandleBufferLayout(viewID, layout)
			if err := d.Views.HandleFlush(ctx); err != nil {
				return fmt.Errorf("flushing layout: %w", err)
			}
		} else if err := d.Views.HandleSaveLayout(ctx, viewID, layout); err != nil {
			return fmt.Errorf("saving layout: %w", err)
		}

		fmt.Printf("Moved %s to (%.0f, %.0f)\n", characterID, x, y)
		return nil
	})
}

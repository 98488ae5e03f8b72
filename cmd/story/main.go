// Package main provides the entry point for the story CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version     = "0.1.0-dev"
	globalStory string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "story",
		Short:   "Track characters, their relationships, and board layouts per story",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&globalStory, "story", "s", "", "Story to operate on (required)")

	rootCmd.AddCommand(
		newStoriesCmd(),
		newCharactersCmd(),
		newRelateCmd(),
		newRelationsCmd(),
		newTypesCmd(),
		newViewsCmd(),
		newLayoutCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

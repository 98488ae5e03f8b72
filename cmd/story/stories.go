package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/inkvane/story-core/internal/infrastructure/config"
)

func newStoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stories",
		Short: "Manage stories",
		RunE:  runStoriesList,
	}

	cmd.AddCommand(
		newStoriesListCmd(),
		newStoriesCreateCmd(),
		newStoriesDeleteCmd(),
	)

	return cmd
}

func newStoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stories",
		RunE:  runStoriesList,
	}
}

func runStoriesList(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	stories, err := config.LoadStories(cwd)
	if err != nil {
		return fmt.Errorf("loading stories: %w", err)
	}

	if len(stories.Stories) == 0 {
		fmt.Println("No stories configured.")
		fmt.Println("Use 'story stories create NAME' to create a story.")
		return nil
	}

	fmt.Printf("%-20s %-38s %s\n", "NAME", "ID", "DESCRIPTION")
	fmt.Printf("%-20s %-38s %s\n", "----", "--", "-----------")

	for name, entry := range stories.Stories {
		fmt.Printf("%-20s %-38s %s\n", name, entry.ID, entry.Description)
	}

	return nil
}

func newStoriesCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoriesCreate(args[0], description)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Story description")

	return cmd
}

func runStoriesCreate(name, description string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if !config.Exists(cwd) {
		if err := config.WriteDefault(cwd); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	stories, err := config.LoadStories(cwd)
	if err != nil {
		return fmt.Errorf("loading stories: %w", err)
	}
	if stories.Exists(name) {
		return fmt.Errorf("story %q already exists", name)
	}

	if err := os.MkdirAll(config.StoryDir(cwd, name), 0755); err != nil {
		return fmt.Errorf("creating story directory: %w", err)
	}

	stories.Add(name, config.StoryEntry{
		ID:          uuid.New().String(),
		Description: description,
	})
	if err := stories.Save(cwd); err != nil {
		return fmt.Errorf("saving stories: %w", err)
	}

	fmt.Printf("Created story: %s\n", name)
	return nil
}

func newStoriesDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a story and its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoriesDelete(args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}

func runStoriesDelete(name string, force bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	stories, err := config.LoadStories(cwd)
	if err != nil {
		return fmt.Errorf("loading stories: %w", err)
	}
	if !stories.Exists(name) {
		return fmt.Errorf("story %q not found", name)
	}

	if !force {
		fmt.Printf("Delete story %q and all its data? [y/N]: ", name)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.RemoveAll(config.StoryDir(cwd, name)); err != nil {
		return fmt.Errorf("removing story directory: %w", err)
	}

	stories.Remove(name)
	if err := stories.Save(cwd); err != nil {
		return fmt.Errorf("saving stories: %w", err)
	}

	fmt.Printf("Deleted story: %s\n", name)
	return nil
}

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inkvane/story-core/internal/domain/entities"
)

func newCharactersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "characters",
		Short: "Manage a story's characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharactersList(cmd)
		},
	}

	cmd.AddCommand(
		newCharactersListCmd(),
		newCharactersCreateCmd(),
		newCharactersUpdateCmd(),
		newCharactersDeleteCmd(),
	)

	return cmd
}

func newCharactersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List characters in creation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharactersList(cmd)
		},
	}
}

func runCharactersList(cmd *cobra.Command) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		chars, err := d.Characters.HandleList(ctx, d.StoryID)
		if err != nil {
			return fmt.Errorf("listing characters: %w", err)
		}

		if len(chars) == 0 {
			fmt.Println("No characters found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tGENDER\tAGE\tMAIN\tALIASES")
		for i := range chars {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				chars[i].ID,
				chars[i].Name,
				chars[i].Gender,
				formatAge(&chars[i]),
				yesNo(chars[i].IsMain),
				strings.Join(chars[i].Aliases, ", "),
			)
		}
		w.Flush()

		return nil
	})
}

// characterFlags collects the shared create/update attribute flags.
type characterFlags struct {
	aliases  []string
	gender   string
	age      int
	ageLabel string
	main     bool
	archived bool
	deceased bool
}

func (f *characterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.aliases, "alias", nil, "Alias (repeatable)")
	cmd.Flags().StringVarP(&f.gender, "gender", "g", "", "Gender label")
	cmd.Flags().IntVar(&f.age, "age", -1, "Exact age")
	cmd.Flags().StringVar(&f.ageLabel, "age-category", "", "Age category label")
	cmd.Flags().BoolVar(&f.main, "main", false, "Mark as main character")
	cmd.Flags().BoolVar(&f.archived, "archived", false, "Mark as archived")
	cmd.Flags().BoolVar(&f.deceased, "deceased", false, "Mark as deceased")
}

func (f *characterFlags) attrs(cmd *cobra.Command) entities.CharacterAttrs {
	var attrs entities.CharacterAttrs
	if cmd.Flags().Changed("alias") {
		attrs.Aliases = f.aliases
	}
	if cmd.Flags().Changed("gender") {
		gender := entities.Gender(strings.ToUpper(f.gender))
		attrs.Gender = &gender
	}
	if cmd.Flags().Changed("age") {
		attrs.AgeValue = &f.age
	}
	if cmd.Flags().Changed("age-category") {
		label := entities.AgeCategory(strings.ToUpper(f.ageLabel))
		attrs.AgeLabel = &label
	}
	if cmd.Flags().Changed("main") {
		attrs.IsMain = &f.main
	}
	if cmd.Flags().Changed("archived") {
		attrs.Archived = &f.archived
	}
	if cmd.Flags().Changed("deceased") {
		attrs.Deceased = &f.deceased
	}
	return attrs
}

func newCharactersCreateCmd() *cobra.Command {
	var flags characterFlags

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a character",
		Long: `Creates a character in the current story.

Examples:
  story -s mynovel characters create "John Doe" --gender male --main
  story -s mynovel characters create Mary --gender female --age 29`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharactersCreate(cmd, args[0], &flags)
		},
	}

	flags.register(cmd)

	return cmd
}

func runCharactersCreate(cmd *cobra.Command, name string, flags *characterFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		ch, err := d.Characters.HandleCreate(ctx, d.StoryID, name, flags.attrs(cmd))
		if err != nil {
			return fmt.Errorf("creating character: %w", err)
		}

		fmt.Printf("Created character: %s\n", ch.ID)
		fmt.Printf("  %s (%s)\n", ch.Name, ch.Gender)
		return nil
	})
}

func newCharactersUpdateCmd() *cobra.Command {
	var flags characterFlags
	var name string

	cmd := &cobra.Command{
		Use:   "update <character-id>",
		Short: "Update character attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharactersUpdate(cmd, args[0], name, &flags)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New display name")
	flags.register(cmd)

	return cmd
}

func runCharactersUpdate(cmd *cobra.Command, id, name string, flags *characterFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		attrs := flags.attrs(cmd)
		if cmd.Flags().Changed("name") {
			attrs.Name = &name
		}

		ch, err := d.Characters.HandleUpdate(ctx, id, attrs)
		if err != nil {
			return fmt.Errorf("updating character: %w", err)
		}

		fmt.Printf("Updated character: %s\n", ch.ID)
		return nil
	})
}

func newCharactersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <character-id>",
		Short: "Delete a character",
		Long: `Deletes a character. Every relationship the character participates in
and its entry in every view layout are removed with it.`,
		Args: cobra.ExactArgs(1),
		RunE: runCharactersDelete,
	}
}

func runCharactersDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	return withDeps(func(d *Deps) error {
		if err := d.Characters.HandleDelete(ctx, id); err != nil {
			return fmt.Errorf("deleting character: %w", err)
		}

		fmt.Printf("Deleted character: %s\n", id)
		return nil
	})
}

func formatAge(ch *entities.Character) string {
	if ch.AgeValue > 0 {
		return fmt.Sprintf("%d", ch.AgeValue)
	}
	if ch.AgeLabel != "" {
		return string(ch.AgeLabel)
	}
	return "-"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

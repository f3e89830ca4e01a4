package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/moicalder/moimac.com/internal/spelling"

	"github.com/spf13/cobra"
)

type storeFunc func() (*spelling.Store, error)

func newListCmd(store storeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every spelling list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			lists, err := s.Load()
			if err != nil {
				return err
			}
			if len(lists) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No spelling lists in %s\n", s.Path())
				return nil
			}
			for _, l := range lists {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-32s %d words\n", l.ID, l.Name, len(l.Words))
			}
			return nil
		},
	}
}

func newShowCmd(store storeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one list's words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			l, err := s.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, lesson %s)\n", l.Name, l.ID, l.LessonID())
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(l.Words, ", "))
			return nil
		},
	}
}

func newAddCmd(store storeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <words-file>",
		Short: "Add a list, or replace the words of an existing one",
		Long: "Reads words from a file, one per line or comma separated. " +
			"The list id is derived from the name; adding a name that maps to an existing id replaces it.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read words file: %w", err)
			}

			s, err := store()
			if err != nil {
				return err
			}
			l, replaced, err := s.Add(args[0], spelling.ParseWords(string(content)))
			if err != nil {
				return err
			}

			verb := "Added"
			if replaced {
				verb = "Updated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q with %d words. Lesson id: %s\n", verb, l.Name, len(l.Words), l.LessonID())
			return nil
		},
	}
}

func newDeleteCmd(store storeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			if err := s.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

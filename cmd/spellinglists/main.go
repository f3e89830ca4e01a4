// Command spellinglists manages the custom word lists served at
// /api/spelling-lists.
//
//	spellinglists list
//	spellinglists show <id>
//	spellinglists add <name> <words-file>
//	spellinglists delete <id>
package main

import (
	"os"

	"github.com/moicalder/moimac.com/internal/config"
	"github.com/moicalder/moimac.com/internal/spelling"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var path string

	root := &cobra.Command{
		Use:          "spellinglists",
		Short:        "Manage TypeMaster custom spelling lists",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&path, "file", "", "lists file (defaults to spelling_lists.path from config)")

	store := func() (*spelling.Store, error) {
		if path != "" {
			return spelling.NewStore(path), nil
		}
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		return spelling.NewStore(cfg.SpellingLists.Path), nil
	}

	root.AddCommand(
		newListCmd(store),
		newShowCmd(store),
		newAddCmd(store),
		newDeleteCmd(store),
	)
	return root
}

package cmd

import (
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/internal/tui/repl"
)

func newReplCommand(a *app) *cobra.Command {
	var showTree bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Startet die interaktive REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				a.logger.Warn("history unavailable", mdwlog.Err(err))
			}
			if store != nil {
				defer store.Close()
			}
			// the TUI owns the terminal
			a.logger = mdwlog.NewNop()
			return repl.Run(repl.Config{
				NewEngine: a.newEngine,
				Store:     store,
				ShowTree:  showTree,
			})
		},
	}

	cmd.Flags().BoolVar(&showTree, "tree", false, "Syntaxbaum zu jeder Eingabe anzeigen")
	return cmd
}

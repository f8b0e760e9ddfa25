package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mdwconfig "github.com/msto63/teacup/foundation/core/config"
	"github.com/msto63/teacup/foundation/engine/grammar"
	"github.com/msto63/teacup/foundation/teacup"
)

func newGrammarCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Grammatik-Dateien prüfen und exportieren",
	}

	var format string
	export := &cobra.Command{
		Use:   "export",
		Short: "Gibt die aktive Grammatik als TOML oder YAML aus",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := mdwconfig.ParseFormat(format)
			if err != nil {
				return err
			}
			doc := a.doc
			if doc == nil {
				if doc, err = teacup.Document(); err != nil {
					return err
				}
			}
			data, err := grammar.Export(doc, f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	export.Flags().StringVar(&format, "format", "toml", "Ausgabeformat: toml oder yaml")

	check := &cobra.Command{
		Use:   "check <file>",
		Short: "Prüft und kompiliert eine Grammatik-Datei",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := grammar.Load(args[0])
			if err != nil {
				return err
			}
			g, err := doc.Compile()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d Token-Regeln, %d Prioritäten, %d Formen\n",
				g.Name, len(g.Rules), g.Priorities.Len(), len(doc.Shapes))
			return nil
		},
	}

	cmd.AddCommand(export, check)
	return cmd
}

package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine"
	"github.com/msto63/teacup/internal/render"
)

func newParseCommand(a *app) *cobra.Command {
	var (
		file   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "parse [expression]",
		Short: "Zeigt den Syntaxbaum eines Ausdrucks",
		Long: `Zeigt den Syntaxbaum eines Ausdrucks.

Formate:
  tree       eingerückter Baum mit Signaturen und Formen
  brackets   vollständig geklammerter Quelltext
  signature  Signaturen aller Reduktionen in Reihenfolge`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, file, args)
			if err != nil {
				return err
			}
			e, err := a.newEngine(io.Discard)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "tree":
				tree, err := engine.ParseWith[*render.Tree](e, source, render.NewTreeFinalizer(e.Grammar().Classifier))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, render.Styled(tree))
			case "brackets":
				s, err := engine.ParseWith[string](e, source, render.Bracketed)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			case "signature":
				sigs, err := engine.ParseWith[[]string](e, source, render.Signatures)
				if err != nil {
					return err
				}
				for _, s := range sigs {
					fmt.Fprintln(out, strconv.Quote(s))
				}
			default:
				return mdwerror.New("unknown format: " + format).WithCode(mdwerror.CodeInvalidInput)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Quelltext aus Datei lesen, - für stdin")
	cmd.Flags().StringVar(&format, "format", "tree", "Ausgabeformat: tree, brackets oder signature")
	return cmd
}

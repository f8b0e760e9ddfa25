package cmd

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newTokensCommand(a *app) *cobra.Command {
	var (
		file string
		raw  bool
	)

	cmd := &cobra.Command{
		Use:   "tokens [expression]",
		Short: "Zeigt die Token-Folge eines Ausdrucks",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, file, args)
			if err != nil {
				return err
			}
			e, err := a.newEngine(io.Discard)
			if err != nil {
				return err
			}

			tokenize := e.Tokens
			if raw {
				tokenize = e.Tokenize
			}
			toks, err := tokenize(source)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Kind", "Text", "Start", "End", "Line", "Col"})
			table.SetAutoFormatHeaders(false)
			for _, t := range toks {
				table.Append([]string{
					string(t.Kind),
					strconv.Quote(t.Text),
					strconv.Itoa(t.Start),
					strconv.Itoa(t.End),
					strconv.Itoa(t.Line),
					strconv.Itoa(t.Column),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Quelltext aus Datei lesen, - für stdin")
	cmd.Flags().BoolVar(&raw, "raw", false, "ohne Präfix-Erkennung")
	return cmd
}

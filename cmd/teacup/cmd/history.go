package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
)

const maxSourceColumn = 40

func newHistoryCommand(a *app) *cobra.Command {
	var (
		limit    int
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Zeigt oder löscht den Auswertungsverlauf",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if store == nil {
				return mdwerror.New("history is disabled; set history.enabled in the config").
					WithCode(mdwerror.CodeConfigError)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if clearAll {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Verlauf gelöscht")
				return nil
			}

			if limit <= 0 {
				limit = a.cfg.History.ListLimit
			}
			evs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(evs) == 0 {
				fmt.Fprintln(out, "Keine Auswertungen gespeichert")
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"ID", "When", "Source", "Result", "Took"})
			table.SetAutoFormatHeaders(false)
			table.SetAutoWrapText(false)
			for _, ev := range evs {
				result := ev.Result
				if ev.Failed() {
					result = "Fehler: " + ev.Error
				}
				table.Append([]string{
					shortID(ev.ID),
					humanize.Time(ev.CreatedAt),
					truncate(ev.Source, maxSourceColumn),
					truncate(result, maxSourceColumn),
					ev.Duration.String(),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Anzahl Einträge (default aus Config)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Alle gespeicherten Auswertungen löschen")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate flattens newlines and cuts s to n runes
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package cmd

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/foundation/engine/interp"
	"github.com/msto63/teacup/internal/history"
)

// readSource takes the source from a file ("-" for stdin) or the arguments
func readSource(cmd *cobra.Command, file string, args []string) (string, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", mdwerror.Wrap(err, "failed to read stdin").WithCode(mdwerror.CodeInvalidInput)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			code := mdwerror.CodeInvalidInput
			if os.IsNotExist(err) {
				code = mdwerror.CodeNotFound
			}
			return "", mdwerror.Wrap(err, "failed to read source file").
				WithCode(code).
				WithDetail("file", file)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return "", mdwerror.New("no source given; pass an expression or --file").
			WithCode(mdwerror.CodeInvalidInput)
	}
}

func newEvalCommand(a *app) *cobra.Command {
	var (
		file     string
		showTime bool
	)

	cmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Wertet einen Ausdruck aus",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, file, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			e, err := a.newEngine(out)
			if err != nil {
				return err
			}
			res, runErr := e.Run(source)

			store, err := a.openStore()
			if err != nil {
				a.logger.Warn("history unavailable", mdwlog.Err(err))
			} else if store != nil {
				defer store.Close()
				ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
				defer cancel()
				if err := store.Record(ctx, history.FromResult("", res, runErr)); err != nil {
					a.logger.Warn("failed to record evaluation", mdwlog.Err(err))
				}
			}

			if runErr != nil {
				return runErr
			}
			color.New(color.FgGreen).Fprintln(out, interp.Format(res.Value))
			if showTime {
				color.New(color.Faint).Fprintf(out, "%s\n", res.Duration)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Quelltext aus Datei lesen, - für stdin")
	cmd.Flags().BoolVarP(&showTime, "time", "t", false, "Auswertungsdauer anzeigen")
	return cmd
}

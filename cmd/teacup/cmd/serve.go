package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/internal/server"
	"github.com/msto63/teacup/pkg/core/version"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Startet den WebSocket-Server",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Server
			if cmd.Flags().Changed("host") {
				sc.Host = host
			}
			if cmd.Flags().Changed("port") {
				sc.Port = port
			}

			store, err := a.openStore()
			if err != nil {
				a.logger.Warn("history unavailable", mdwlog.Err(err))
			}
			if store != nil {
				defer store.Close()
			}

			srv, err := server.New(server.Config{
				Host:           sc.Host,
				Port:           sc.Port,
				ReadTimeout:    sc.ReadTimeout.Duration,
				WriteTimeout:   sc.WriteTimeout.Duration,
				MaxMessageSize: sc.MaxMessageSize,
				Version:        version.Platform,
				ListLimit:      a.cfg.History.ListLimit,
			}, a.newEngine, store, a.logger)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()
			fmt.Fprintf(cmd.OutOrStdout(), "teacup lauscht auf ws://%s/ws\n", srv.Address())

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-errCh:
				return err
			case sig := <-quit:
				a.logger.Info("shutting down", mdwlog.Field("signal", sig.String()))
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host (überschreibt Config)")
	cmd.Flags().IntVar(&port, "port", 0, "Port (überschreibt Config)")
	return cmd
}

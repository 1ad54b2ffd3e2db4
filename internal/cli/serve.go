package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/setlist/internal/config"
	"github.com/katalvlaran/setlist/internal/report"
	"github.com/katalvlaran/setlist/internal/server"
	"github.com/katalvlaran/setlist/internal/store"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(cfg *config.Config, st store.Store) error {
				if cmd.Flags().Changed("addr") {
					cfg.Server.Addr = addr
				}

				srv := server.NewServer(st, newPlanner(cfg, st), report.Options{
					Top:    cfg.Display.Top,
					Unique: cfg.Display.Unique,
				})
				httpSrv := &http.Server{Addr: cfg.Server.Addr, Handler: srv.SetupRouter()}

				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				errCh := make(chan error, 1)
				go func() {
					log.Printf("Starting server on %s (%s store)", cfg.Server.Addr, cfg.Store.Driver)
					errCh <- httpSrv.ListenAndServe()
				}()

				select {
				case err := <-errCh:
					return err
				case <-ctx.Done():
				}

				log.Printf("Shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := httpSrv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}

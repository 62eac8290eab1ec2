package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/app"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(a *app.App) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				a.Start(ctx)

				addr := fmt.Sprintf(":%d", a.Config.Port)
				srv := &http.Server{
					Addr:              addr,
					Handler:           a.Router(),
					ReadHeaderTimeout: 5 * time.Second,
				}

				errCh := make(chan error, 1)
				go func() {
					a.Logger.Sugar().Infow("server starting", "addr", addr, "env", a.Config.Env, "store", a.Config.Store.Driver)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						errCh <- err
					}
					close(errCh)
				}()

				select {
				case err := <-errCh:
					if err != nil {
						return fmt.Errorf("server failed: %w", err)
					}
					return nil
				case <-ctx.Done():
				}

				a.Logger.Info("server shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				if err := a.Drain(shutdownCtx); err != nil {
					a.Logger.Warn("notifications left undelivered", zap.Error(err))
				}
				return nil
			})
		},
	}
}

// Package cli holds the elkcms subcommands.
package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kokiddp/elkcms/internal/app"
	"github.com/kokiddp/elkcms/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ServeCmd runs the admin API server.
func ServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the admin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			application, err := app.New(logger, cfg)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    application.Addr(),
				Handler: application.Router(),
			}

			go func() {
				logger.Info("server starting", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("server error", zap.Error(err))
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			logger.Info("shutting down server...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			logger.Info("server exited")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to YAML config file")
	return cmd
}

func buildLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

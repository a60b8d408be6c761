package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beeleads/replysift/internal/server"
	"github.com/beeleads/replysift/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve stored results over a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &http.Server{
				Addr:    cfg.Listen,
				Handler: server.New(st, logger).Router(),
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			errChan := make(chan error, 1)
			go func() {
				logger.Info("server listening", zap.String("addr", cfg.Listen))
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					errChan <- err
				}
			}()

			select {
			case err := <-errChan:
				return err
			case sig := <-sigChan:
				logger.Info("shutting down", zap.String("signal", sig.String()))
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
}

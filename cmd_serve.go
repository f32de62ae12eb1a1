package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"complaints-dashboard/api"
	"complaints-dashboard/metrics"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive HTML dashboard and the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.ListenAddr
			}

			m := metrics.New()
			d, err := loadDashboard(cmd.Context(), cfg, logger, m)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}

			srv := api.NewServer(d, m, cfg.Location(), logger)

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("[serve] Dashboard listening on %s", addr)
				if listenErr := httpSrv.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
					errCh <- fmt.Errorf("serve: HTTP server: %w", listenErr)
				}
				close(errCh)
			}()

			select {
			case <-cmd.Context().Done():
				logger.Info("[serve] Shutting down")
			case startErr := <-errCh:
				return startErr
			}

			const shutdownTimeout = 10 * time.Second
			if shutdownErr := api.Shutdown(httpSrv, shutdownTimeout); shutdownErr != nil {
				return fmt.Errorf("serve: graceful shutdown: %w", shutdownErr)
			}

			// ListenAndServe may still report an error after Shutdown.
			if startErr := <-errCh; startErr != nil {
				return startErr
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default LISTEN_ADDR)")
	return cmd
}

// ABOUTME: Serve command exposing a parsed hierarchy over HTTP
// ABOUTME: JSON API for external visualization consumers

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahmedalalousi/hwVisualiser/internal/cache"
	"github.com/ahmedalalousi/hwVisualiser/internal/config"
	"github.com/ahmedalalousi/hwVisualiser/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveDiagram string
	servePort    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a diagram hierarchy as a JSON API",
	Long: `Serve parses the given diagram on demand (with a TTL cache) and exposes
it over HTTP:

  GET /api/health     API status
  GET /api/hierarchy  Parsed hierarchy graph
  GET /api/summary    Node counts per construct type`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		port := cfg.Port
		if servePort != "" {
			port = servePort
		}

		c := cache.New(time.Duration(cfg.CacheTTL) * time.Second)
		h := server.NewHandler(serveDiagram, c)

		srv := &http.Server{
			Addr:         ":" + port,
			Handler:      server.NewMux(h),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			slog.Info("Server listening", "addr", srv.Addr, "diagram", serveDiagram)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
			slog.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveDiagram, "diagram", "", "PlantUML diagram to serve")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (default: HWVIZ_PORT)")
	serveCmd.MarkFlagRequired("diagram")
}

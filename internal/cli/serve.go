package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/ppiankov/toolrisk/internal/metrics"
	"github.com/ppiankov/toolrisk/internal/server"
)

var (
	servePort        int
	serveMetricsAddr string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 50051, "gRPC listen port")
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", ":9464", "Address for the Prometheus /metrics endpoint (empty disables it)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start gRPC risk evaluation server",
	Long:  "Runs toolrisk as a central evaluation server over gRPC.\nClients use --remote on evaluate, matrix and catalog.\nSupports hot-reload of the catalog and translations files.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	tr, err := loadTranslator()
	if err != nil {
		return err
	}

	cfg := server.Config{
		Port:             servePort,
		CatalogPath:      resolvedCatalogPath(),
		TranslationsPath: resolvedTranslationsPath(),
		DefaultLang:      displayLanguage(tr),
		Logger:           slog.Default(),
	}

	srv, err := server.New(cfg)
	if err != nil {
		return goerr.Wrap(err, "failed to create server")
	}

	// Start hot-reload watcher for catalog and translations
	reloader, err := server.NewReloader(srv, srv.WatchPaths())
	if err != nil {
		slog.Warn("hot-reload disabled", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if reloader != nil {
		go reloader.Run(ctx)
	}

	var metricsSrv *http.Server
	if serveMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{Addr: serveMetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics endpoint stopped", "error", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down risk server...")
		cancel()
		if metricsSrv != nil {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			metricsSrv.Shutdown(shutdownCtx)
		}
		srv.GracefulStop()
	}()

	fmt.Fprintf(os.Stderr, "toolrisk server listening on :%d\n", servePort)
	if reloader != nil {
		for _, p := range reloader.Paths() {
			fmt.Fprintf(os.Stderr, "Watching: %s (hot-reload enabled)\n", p)
		}
	}
	if metricsSrv != nil {
		fmt.Fprintf(os.Stderr, "Metrics: http://%s/metrics\n", serveMetricsAddr)
	}
	fmt.Fprintln(os.Stderr)

	return srv.Serve()
}

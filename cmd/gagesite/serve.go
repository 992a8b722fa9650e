package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httphandler "github.com/ericfisherdev/gagesite/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/gagesite/internal/adapter/driving/web"
	"github.com/ericfisherdev/gagesite/internal/application"
	"github.com/ericfisherdev/gagesite/internal/config"
	"github.com/ericfisherdev/gagesite/internal/metrics"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the composed site over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			return runServe(cmd.Context(), cfg, slog.Default())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides listen_addr)")
	return cmd
}

func runServe(parent context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"site_dir", cfg.SiteDir,
		"db_path", cfg.DBPath,
		"scrape_interval", cfg.ScrapeEvery,
	)

	// 1. Setup signal-based context (SIGINT, SIGTERM).
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Metrics registry.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	// 3. Site sources and composition.
	assets, err := newSiteAssets(cfg, logger)
	if err != nil {
		return err
	}
	composer, staff := newComposer(assets, logger, m)

	// 4. Sports store and scrape loop.
	sports, db, err := openSports(ctx, cfg, application.SportsOptions{
		Interval:    cfg.ScrapeEvery,
		Concurrency: cfg.ScrapeConcurrency,
		OutDir:      cfg.SportsOutDir,
	}, logger, m)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	var loops sync.WaitGroup
	loops.Add(1)
	go func() {
		defer loops.Done()
		sports.Start(ctx)
	}()

	// 5. Routes: API, metrics, then the site catch-all.
	mux := http.NewServeMux()
	httphandler.RegisterRoutes(mux, httphandler.NewHandler(staff, sports, logger))
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(assets.pages, composer, sports, logger))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.ApplyMiddleware(mux, logger, m),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 6. Wait for a shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			stop()
			loops.Wait()
			return fmt.Errorf("http server: %w", err)
		}
	}

	// 7. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	loops.Wait()

	logger.Info("shutdown complete")
	return nil
}

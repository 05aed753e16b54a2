package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rapporthq/rapport/internal/adapters/ai/gemini"
	"github.com/rapporthq/rapport/internal/adapters/http/api"
	"github.com/rapporthq/rapport/internal/adapters/http/swagger"
	app "github.com/rapporthq/rapport/internal/app"
	"github.com/rapporthq/rapport/internal/config"
	"github.com/rapporthq/rapport/internal/domain/scoring"
	"github.com/rapporthq/rapport/internal/domain/taxonomy"
	"github.com/rapporthq/rapport/pkg/logger"
	"github.com/rapporthq/rapport/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Assemble service options from configuration
	opts := []app.Option{
		app.WithLogger(loggerInstance),
		app.WithCacheCapacity(cfg.CacheCapacity),
		app.WithCacheTTL(cfg.CacheTTL),
		app.WithQueueSize(cfg.QueueSize),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithWeightsVersion(cfg.WeightsVersion),
	}

	if len(cfg.Weights) > 0 {
		opts = append(opts, app.WithWeights(scoring.Weights(cfg.Weights)))
	}

	if cfg.TaxonomyFile != "" {
		tax, err := taxonomy.Load(ctx, cfg.TaxonomyFile)
		if err != nil {
			os.Stderr.WriteString("failed to load taxonomy: " + err.Error() + "\n")
			return
		}
		opts = append(opts, app.WithTaxonomy(tax))
	}

	// Recommendations are optional; a missing or bad key degrades to
	// scoring without them.
	if cfg.GeminiAPIKey != "" {
		var geminiOpts []gemini.Option
		if cfg.GeminiModel != "" {
			geminiOpts = append(geminiOpts, gemini.WithModel(cfg.GeminiModel))
		}
		rec, err := gemini.New(ctx, cfg.GeminiAPIKey, geminiOpts...)
		if err != nil {
			loggerInstance.Warn(ctx, "recommendation client unavailable", logger.Error(err))
		} else {
			opts = append(opts, app.WithRecommender(rec))
		}
	}

	// Create and start the service
	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, api.WithMaxPrewarmBatch(cfg.MaxPrewarmBatch))
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater periodically mirrors service state into gauges.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := svc.GetStats(ctx)
			metrics.UpdateCacheSize(stats.CacheEntries)
			metrics.UpdateQueueSize(stats.QueueDepth)
			metrics.UpdateWorkerCount(stats.Workers)
		}
	}
}

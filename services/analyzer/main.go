package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RuvinSL/aeo-analyzer/pkg/config"
	"github.com/RuvinSL/aeo-analyzer/pkg/httpclient"
	"github.com/RuvinSL/aeo-analyzer/pkg/interfaces"
	"github.com/RuvinSL/aeo-analyzer/pkg/logger"
	"github.com/RuvinSL/aeo-analyzer/pkg/metrics"
	"github.com/RuvinSL/aeo-analyzer/pkg/middleware"
	"github.com/RuvinSL/aeo-analyzer/services/analyzer/core"
	"github.com/RuvinSL/aeo-analyzer/services/analyzer/handlers"
	"github.com/RuvinSL/aeo-analyzer/services/analyzer/scoring"
	"github.com/RuvinSL/aeo-analyzer/services/analyzer/store"
)

const serviceName = "analyzer"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closeLog, err := createLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog.Close()

	metricsCollector := metrics.NewPrometheusCollector(serviceName)
	prometheus.MustRegister(metricsCollector.GetCollectors()...)

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	analysisStore, closeStore, err := newStore(startCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer closeStore.Close()

	// Initialize dependencies
	httpClient := httpclient.New(cfg.FetchTimeout, log)
	fetcher := core.NewContentFetcher(httpClient, log)
	analyzer := core.NewAnalyzer(fetcher, scoring.NewEngine(nil), log, metricsCollector)

	analyzerHandler := handlers.NewAnalyzerHandler(analyzer, analysisStore, metricsCollector, log)
	healthHandler := handlers.NewHealthHandler(serviceName, cfg.Version, map[string]interfaces.HealthChecker{
		"analysis_store": analysisStore,
	})

	router := newRouter(analyzerHandler, healthHandler, log, metricsCollector, promhttp.Handler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.FetchTimeout*2 + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting Analyzer Service",
			"service", serviceName,
			"port", cfg.Port,
			"log_level", cfg.LogLevel.String(),
			"log_to_file", cfg.LogToFile,
			"store_backend", cfg.StoreBackend,
			"cache_ttl", cfg.CacheTTL.String(),
			"version", cfg.Version,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("Failed to start server", "error", err)
		return err
	case <-quit:
	}

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
	return nil
}

// createLogger logs to stdout, and also to <LOG_DIR>/analyzer.log when LOG_TO_FILE is set
func createLogger(cfg *config.Config) (interfaces.Logger, io.Closer, error) {
	if cfg.LogToFile {
		return logger.NewWithFiles(serviceName, cfg.LogLevel, cfg.LogDir)
	}
	return logger.New(serviceName, cfg.LogLevel), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newStore builds the analysis store selected by STORE_BACKEND
func newStore(ctx context.Context, cfg *config.Config) (interfaces.AnalysisStore, io.Closer, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := store.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewRedisStore(client, cfg.CacheTTL, cfg.RecentLimit, nil)
		return s, s, nil
	default:
		return store.NewMemoryStore(cfg.CacheTTL, cfg.RecentLimit, nil), nopCloser{}, nil
	}
}

func newRouter(
	analyzerHandler *handlers.AnalyzerHandler,
	healthHandler *handlers.HealthHandler,
	log interfaces.Logger,
	collector interfaces.MetricsCollector,
	metricsHandler http.Handler,
) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(log))
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// API routes sit on the root router so a method mismatch answers 405
	router.HandleFunc("/api/analyze", analyzerHandler.Analyze).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/analyses", analyzerHandler.List).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/analyses/{id}", analyzerHandler.Get).Methods(http.MethodGet, http.MethodOptions)

	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)

	return router
}

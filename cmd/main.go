package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"marketdata/internal/adapters/config"
	"marketdata/internal/adapters/errors/noop"
	"marketdata/internal/adapters/errors/sentry"
	"marketdata/internal/adapters/exchangefactory"
	"marketdata/internal/cli"
	"marketdata/internal/metrics"
	"marketdata/pkg/errors"
	"marketdata/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return cli.ExitUsage
	}

	// hosts and usage output work without a key
	if cli.SendsRequest(os.Args[1:]) {
		if err := cfg.RequireAPIKey(); err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
			return cli.ExitUsage
		}
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		return cli.ExitFailure
	}
	defer logger.Sync()

	log := logger.Get()
	log.Debugf("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	metrics.Init()

	client, err := exchangefactory.NewMarketDataClient(cfg, log)
	if err != nil {
		log.Errorf("Failed to create market data client: %v", err)
		return cli.ExitUsage
	}

	if err := prometheus.Register(metrics.NewHostsCollector(client.Name(), client.BaseURL(), client.AlternateURLs())); err != nil {
		log.Warnf("Failed to register hosts collector: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		srv = startMetricsServer(cfg.Metrics.Addr, log)
	}

	selectHost := func(host string) (cli.Client, error) {
		c, err := client.WithBaseURL(host)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	runner := cli.NewRunner(client, selectHost, errorTracker, log, os.Stdout, os.Stderr)
	code := runner.Run(ctx, os.Args[1:])

	if srv != nil {
		log.Infof("Serving metrics on %s until interrupted", cfg.Metrics.Addr)
		waitForShutdown(ctx, cancel, srv, errorTracker, log)
		return code
	}

	flushTracker(ctx, errorTracker, log)
	return code
}

// loadConfig loads application configuration from environment
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// initLogger initializes structured logging
func initLogger(cfg *config.Config) error {
	return logger.Init(cfg.App.LogLevel, cfg.App.Env)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Debug("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Debug("Error tracking initialized (Sentry)")
	return tracker
}

// startMetricsServer exposes /metrics in the background
func startMetricsServer(addr string, log *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Metrics server error: %v", err)
		}
	}()

	return srv
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, srv *http.Server, errorTracker errors.Tracker, log *logger.Logger) {
	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("Failed to stop metrics server: %v", err)
	}

	// Graceful shutdown
	cancel()

	flushTracker(shutdownCtx, errorTracker, log)

	log.Info("Shutdown complete")
}

func flushTracker(ctx context.Context, errorTracker errors.Tracker, log *logger.Logger) {
	if errorTracker == nil {
		return
	}
	if err := errorTracker.Flush(ctx); err != nil {
		log.Warnf("Failed to flush error tracker: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/lineup/internal/adapters/http/api"
	"github.com/okian/lineup/internal/adapters/http/swagger"
	app "github.com/okian/lineup/internal/app"
	"github.com/okian/lineup/internal/config"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// Logger may not be available yet.
		os.Stderr.WriteString(err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.InitWith(os.Stdout, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, srv, err := newServer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newServer starts the service described by cfg and mounts every route on
// an http.Server that is ready to listen.
func newServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, *http.Server, error) {
	svc := app.New(
		app.WithLogger(log),
		app.WithThreshold(cfg.SkillThreshold),
		app.WithTeamNames(cfg.HomeTeam, cfg.AwayTeam),
		app.WithMaxRosterSize(cfg.MaxRosterSize),
		app.WithSeed(cfg.ShuffleSeed),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to start service: %w", err)
	}

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, log.Named("http")).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return svc, srv, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater keeps the roster gauge fresh between requests.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats refreshes the roster gauge as a side effect.
			_ = svc.GetStats()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

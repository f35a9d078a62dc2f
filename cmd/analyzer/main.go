// Command analyzer serves the price-analysis HTTP API: item listings,
// delta trends, blended forecasts, and descriptive statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/api"
	"github.com/prezix/telegram-gifts-parser/internal/config"
	"github.com/prezix/telegram-gifts-parser/internal/forecast"
	"github.com/prezix/telegram-gifts-parser/internal/store"
	"github.com/prezix/telegram-gifts-parser/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/analyzer.local.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting analyzer",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAnalyzer(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("connecting to database",
		"host", cfg.Database.Postgres.Host,
		"port", cfg.Database.Postgres.Port,
		"database", cfg.Database.Postgres.Name,
	)

	pool, err := store.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool, logger)
	if err := st.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	engine := forecast.New(forecast.Config{
		Alpha:             cfg.Forecast.Alpha,
		RANSACTrials:      cfg.Forecast.RANSACTrials,
		MinInlierFraction: cfg.Forecast.MinInlierFraction,
	}, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      api.NewServer(st, engine, logger).Handler(),
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	go func() {
		logger.Info("starting API server", "port", cfg.API.Port)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	logger.Info("analyzer stopped")
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/config"
	"github.com/prezix/telegram-gifts-parser/internal/gateway"
	"github.com/prezix/telegram-gifts-parser/internal/router"
	"github.com/prezix/telegram-gifts-parser/internal/store"
	"github.com/prezix/telegram-gifts-parser/internal/version"
	"github.com/prezix/telegram-gifts-parser/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/sniffer.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting sniffer",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadSniffer(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"gateway_url", cfg.Gateway.WSURL,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
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

	logger.Info("database connected")

	// Gateway listener
	listener := gateway.NewListener(cfg.Gateway, logger)
	if err := listener.Start(ctx); err != nil {
		logger.Error("failed to start gateway listener", "error", err)
		os.Exit(1)
	}

	// Event router
	rt := router.New(router.Config{
		SaleChannel:     cfg.Gateway.SaleChannel,
		FloorChannel:    cfg.Gateway.FloorChannel,
		SaleBufferSize:  cfg.Writers.SaleBufferSize,
		FloorBufferSize: cfg.Writers.FloorBufferSize,
	}, listener.Events(), logger)
	if err := rt.Start(ctx); err != nil {
		logger.Error("failed to start router", "error", err)
		os.Exit(1)
	}

	// Store writers
	buffers := rt.Buffers()
	saleWriter := writer.NewSaleWriter(buffers.Sales, st, logger)
	priceWriter := writer.NewPriceWriter(buffers.Floors, st, logger)

	if err := saleWriter.Start(ctx); err != nil {
		logger.Error("failed to start sale writer", "error", err)
		os.Exit(1)
	}
	if err := priceWriter.Start(ctx); err != nil {
		logger.Error("failed to start price writer", "error", err)
		os.Exit(1)
	}

	// Health server
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: createHealthHandler(st, listener, rt, saleWriter, priceWriter),
	}

	go func() {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	logger.Info("sniffer running",
		"instance_id", cfg.Instance.ID,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	// Stop in reverse order: source first, then router, then writers,
	// so buffered observations drain into the store.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	listener.Stop(shutdownCtx)
	rt.Stop(shutdownCtx)
	saleWriter.Stop(shutdownCtx)
	priceWriter.Stop(shutdownCtx)
	healthServer.Shutdown(shutdownCtx)

	logger.Info("sniffer stopped",
		"sales", saleWriter.Stats(),
		"prices", priceWriter.Stats(),
	)
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(
	st *store.Store,
	listener gateway.Listener,
	rt router.Router,
	saleWriter *writer.SaleWriter,
	priceWriter *writer.PriceWriter,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		// Check database
		if err := st.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["postgres"] = "connected"
		}

		// Check gateway connection
		gwStats := listener.Stats()
		health.Components["gateway"] = map[string]any{
			"connected":  gwStats.Connected,
			"reconnects": gwStats.Reconnects,
			"events":     gwStats.Events,
		}
		if !gwStats.Connected {
			health.Status = "degraded"
		}

		rtStats := rt.Stats()
		health.Components["router"] = map[string]any{
			"received":     rtStats.EventsReceived,
			"routed":       rtStats.EventsRouted,
			"dropped":      rtStats.Dropped,
			"parse_errors": rtStats.ParseErrors,
		}

		health.Components["sale_writer"] = saleWriter.Stats()
		health.Components["price_writer"] = priceWriter.Stats()

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}

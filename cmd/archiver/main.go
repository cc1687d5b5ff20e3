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

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/tn-data/internal/archiver"
	"github.com/rickgao/tn-data/internal/config"
	"github.com/rickgao/tn-data/internal/database"
	"github.com/rickgao/tn-data/internal/feed"
	"github.com/rickgao/tn-data/internal/poller"
	"github.com/rickgao/tn-data/internal/version"
	"github.com/rickgao/tn-data/pkg/tnclient"
)

func main() {
	configPath := flag.String("config", "configs/archiver.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting archiver",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"gateway_url", cfg.Gateway.URL,
		"streams", len(cfg.Streams),
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
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database connected")

	// Create gateway client
	client := tnclient.New(
		cfg.Gateway.URL,
		cfg.Gateway.Token,
		tnclient.WithLogger(logger),
		tnclient.WithTimeout(cfg.Gateway.Timeout),
		tnclient.WithRetries(cfg.Gateway.MaxRetries, time.Second),
		tnclient.WithTxPollInterval(cfg.Gateway.PollInterval),
	)
	defer client.Close()

	// Resolve the stream set. Streams configured by name get a derived ID.
	streams := make([]poller.Stream, 0, len(cfg.Streams))
	for _, s := range cfg.Streams {
		id := s.ID
		if id == "" {
			id = tnclient.GenerateStreamID(s.Name)
			logger.Info("derived stream id", "name", s.Name, "id", id)
		}
		streams = append(streams, poller.Stream{ID: id, DataProvider: s.DataProvider})
	}

	// Verify each stream is visible through the gateway before archiving it.
	for _, s := range streams {
		var provider *string
		if s.DataProvider != "" {
			provider = &s.DataProvider
		}
		exists, err := client.StreamExists(ctx, s.ID, provider)
		if err != nil {
			logger.Error("failed to check stream", "stream_id", s.ID, "error", err)
			os.Exit(1)
		}
		if !exists {
			logger.Warn("stream not found on network, archiving anyway", "stream_id", s.ID)
		}
	}

	// Buffer and batch writer
	buffer := archiver.NewBuffer[archiver.RecordMsg](cfg.Writer.BufferSize)
	writer := archiver.NewWriter(archiver.WriterConfig{
		BatchSize:     cfg.Writer.BatchSize,
		FlushInterval: cfg.Writer.FlushInterval,
	}, buffer, db, logger)

	if err := writer.Start(ctx); err != nil {
		logger.Error("failed to start writer", "error", err)
		os.Exit(1)
	}

	// Poller feeds the buffer
	p := poller.New(poller.Config{
		Interval:    cfg.Poller.Interval,
		Concurrency: cfg.Poller.Concurrency,
		Timeout:     cfg.Poller.Timeout,
	}, client, streams, poller.RecordHandlerFunc(func(msg archiver.RecordMsg) error {
		buffer.Send(msg)
		return nil
	}), logger)

	if err := p.Start(ctx); err != nil {
		logger.Error("failed to start poller", "error", err)
		os.Exit(1)
	}

	// Optional live feed
	var feedClient *feed.Client
	if cfg.Feed.Enabled {
		feedCfg := feed.DefaultConfig(cfg.Feed.URL, cfg.Gateway.Token)
		feedCfg.ReadTimeout = cfg.Feed.ReadTimeout
		feedCfg.BufferSize = cfg.Feed.BufferSize

		feedClient = feed.NewClient(feedCfg, logger)
		if err := feedClient.Connect(ctx); err != nil {
			logger.Error("failed to connect live feed", "error", err)
			os.Exit(1)
		}

		ids := make([]string, len(streams))
		for i, s := range streams {
			ids[i] = s.ID
		}
		if err := feedClient.Subscribe(ids); err != nil {
			logger.Error("failed to subscribe live feed", "error", err)
			os.Exit(1)
		}

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case event, ok := <-feedClient.Records():
					if !ok {
						return
					}
					buffer.Send(archiver.RecordMsg{
						StreamID:   event.StreamID,
						Date:       event.Date,
						Value:      event.Value,
						Source:     "feed",
						ReceivedAt: event.ReceivedAt,
					})
				case err := <-feedClient.Errors():
					logger.Error("live feed error", "error", err)
				}
			}
		}()

		logger.Info("live feed subscribed", "streams", len(ids))
	}

	// Health server
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: createHealthHandler(db, buffer, writer, feedClient, logger),
	}

	go func() {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	logger.Info("archiver running",
		"instance_id", cfg.Instance.ID,
		"streams", len(streams),
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	healthServer.Shutdown(shutdownCtx)

	if feedClient != nil {
		feedClient.Close()
	}
	if err := p.Stop(shutdownCtx); err != nil {
		logger.Error("poller stop error", "error", err)
	}
	if err := writer.Stop(shutdownCtx); err != nil {
		logger.Error("writer stop error", "error", err)
	}

	logger.Info("archiver stopped")
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(db *pgxpool.Pool, buffer *archiver.Buffer[archiver.RecordMsg], writer *archiver.Writer, feedClient *feed.Client, logger *slog.Logger) http.Handler {
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
		if err := db.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["database"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["database"] = "connected"
		}

		// Buffer and writer stats
		stats := buffer.Stats()
		health.Components["buffer"] = map[string]any{
			"count":    stats.Count,
			"capacity": stats.Capacity,
			"received": stats.TotalReceived,
		}
		metrics := writer.Stats()
		health.Components["writer"] = map[string]any{
			"inserts":   metrics.Inserts,
			"conflicts": metrics.Conflicts,
			"errors":    metrics.Errors,
			"flushes":   metrics.Flushes,
		}

		// Live feed, when enabled
		if feedClient != nil {
			if feedClient.IsConnected() {
				health.Components["feed"] = "connected"
			} else {
				health.Status = "degraded"
				health.Components["feed"] = "disconnected"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}

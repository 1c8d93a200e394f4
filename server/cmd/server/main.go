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

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"

	"github.com/emberwatch/emberwatch/server/internal/api"
	"github.com/emberwatch/emberwatch/server/internal/config"
	"github.com/emberwatch/emberwatch/server/internal/dashboard"
	"github.com/emberwatch/emberwatch/server/internal/ingest"
	"github.com/emberwatch/emberwatch/server/internal/metrics"
	"github.com/emberwatch/emberwatch/server/internal/mqttingest"
	"github.com/emberwatch/emberwatch/server/internal/store"
	"github.com/emberwatch/emberwatch/server/internal/ws"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Secrets referenced via *_env config keys may live in a local .env file.
	godotenv.Load() //nolint:errcheck

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("emberwatch-server starting", "version", version, "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"history_max", cfg.Server.History.MaxEntries,
		"recent_limit", cfg.Server.Dashboard.RecentLimit,
		"mqtt_enabled", cfg.Server.MQTT.Enabled,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The one shared mutable resource: the bounded reading log.
	st, err := store.New(cfg.Server.History.MaxEntries)
	if err != nil {
		slog.Error("failed to create history store", "err", err)
		os.Exit(1)
	}

	m := metrics.New(st)
	svc := ingest.NewService(st, m)

	// Optional MQTT ingest bridge — feeds the same ingestion service.
	if cfg.Server.MQTT.Enabled {
		bridge := mqttingest.New(svc, cfg.Server.MQTT)
		go func() {
			if err := bridge.Run(ctx); err != nil {
				slog.Error("mqtt bridge stopped", "err", err)
			}
		}()
	}

	// WebSocket hub — pushes stats + recent readings to dashboard clients.
	hub := ws.New(st, cfg.Server.Dashboard.BroadcastInterval, cfg.Server.Dashboard.RecentLimit)
	go hub.Run(ctx)

	// Combined HTTP server: REST API + dashboard + live feed + metrics.
	apiHandler := api.New(st, svc, version)
	httpMux := http.NewServeMux()
	httpMux.Handle("/status", apiHandler)
	httpMux.Handle("/health", apiHandler)
	httpMux.Handle("/api/", apiHandler)
	httpMux.Handle("/ws/live", hub)
	httpMux.Handle("/metrics", m.Handler())
	httpMux.Handle("/", dashboard.New(st, cfg.Server.Dashboard.RecentLimit))

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.Server.CORS.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Request-Id"}),
	)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: api.RequestID(cors(handlers.CombinedLoggingHandler(os.Stdout, httpMux))),
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("emberwatch-server shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/sensor/internal/config"
	"github.com/emberwatch/emberwatch/sensor/internal/probe"
	"github.com/emberwatch/emberwatch/sensor/internal/shipper"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Load optional .env before anything reads the environment.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("emberwatch-sensor starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"transport", cfg.Sensor.Transport,
		"probe", cfg.Sensor.Probe.Type,
		"interval", cfg.Sensor.Probe.Interval,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p, err := probe.New(cfg.Sensor.Probe)
	if err != nil {
		slog.Error("failed to build probe", "type", cfg.Sensor.Probe.Type, "err", err)
		os.Exit(1)
	}

	ship, err := shipper.New(cfg.Sensor)
	if err != nil {
		slog.Error("failed to build shipper", "err", err)
		os.Exit(1)
	}
	go ship.Run(ctx)

	// Thresholds can change while the agent runs. Probe and transport are
	// fixed at startup; restart to change those.
	var mu sync.Mutex
	thresholds := cfg.Sensor.Thresholds

	go func() {
		if err := config.Watch(ctx, *configPath, func(updated config.Config) {
			mu.Lock()
			thresholds = updated.Sensor.Thresholds
			mu.Unlock()
			slog.Info("thresholds hot-reloaded",
				"temperature_max", updated.Sensor.Thresholds.TemperatureMax,
				"gas_max", updated.Sensor.Thresholds.GasMax,
			)
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	// Sample loop: read the probe every interval, classify, ship.
	go func() {
		ticker := time.NewTicker(cfg.Sensor.Probe.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sample, err := p.Read()
				if err != nil {
					slog.Warn("probe read error", "err", err)
					continue
				}
				mu.Lock()
				th := thresholds
				mu.Unlock()
				status := probe.Classify(sample, th)

				ship.Ship(types.Reading{
					Status:      status,
					Temperature: sample.Temperature,
					Gas:         sample.Gas,
				})
				slog.Debug("shipped reading",
					"status", status,
					"temperature", sample.Temperature,
					"gas", sample.Gas,
				)
			}
		}
	}()

	<-ctx.Done()
	slog.Info("emberwatch-sensor shutting down", "pending", ship.Pending())
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/thruflo/hanoi/internal/config"
	"github.com/thruflo/hanoi/internal/events"
	"github.com/thruflo/hanoi/internal/game"
	"github.com/thruflo/hanoi/internal/logging"
	"github.com/thruflo/hanoi/internal/metrics"
)

// loadConfig reads the config file at path, or .hanoi/ under the working
// directory when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return config.LoadConfig(cwd)
}

// newLogger builds the logger described by cfg. Without a log file, entries
// go to fallback. The returned func closes the log file.
func newLogger(cfg config.Log, fallback io.Writer) (*logging.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	log := logging.New()
	log.SetLevel(level)

	if cfg.File == "" {
		log.SetOutput(fallback)
		return log, func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return log, func() { _ = f.Close() }, nil
}

// resolveDisks returns the disk count to start with: requested when set,
// otherwise the configured default.
func resolveDisks(g config.Game, requested int) (int, error) {
	disks := requested
	if disks == 0 {
		disks = g.DefaultDisks
	}
	if disks < g.MinDisks || disks > g.MaxDisks {
		return 0, fmt.Errorf("disks must be between %d and %d, got %d", g.MinDisks, g.MaxDisks, disks)
	}
	return disks, nil
}

// newEngine creates an idle engine limited and paced by g.
func newEngine(g config.Game, delay time.Duration, log *logging.Logger) *game.Engine {
	return game.New(events.NewBus(),
		game.WithLimits(g.MinDisks, g.MaxDisks),
		game.WithMoveDelay(delay),
		game.WithLogger(log),
	)
}

// startMetrics registers a collector on bus and serves it on addr until ctx
// is done.
func startMetrics(ctx context.Context, addr string, bus *events.Bus, log *logging.Logger) (*metrics.Server, *metrics.Collector, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return nil, nil, err
	}
	collector.Attach(bus)

	srv := metrics.NewServer(addr, reg, log)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// Give the server a moment to start and check for errors
	select {
	case err := <-errCh:
		collector.Detach()
		if err == nil {
			err = ctx.Err()
		}
		return nil, nil, fmt.Errorf("metrics server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		// Server started successfully
	}

	return srv, collector, nil
}

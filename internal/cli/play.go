package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thruflo/hanoi/internal/tui"
)

var (
	playDisks       int
	playConfig      string
	playLogFile     string
	playMetricsAddr string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an interactive game",
	Long: `Play the Towers of Hanoi on an interactive terminal board.

Grab the top disk of a peg with its number (or the arrows and space), then
drop it on another peg the same way. Press s to let the solver finish the
game, ? for the full list of keys, q to quit.

Example:
  hanoi play
  hanoi play --disks 5
  hanoi play --metrics-addr localhost:9090 --log-file hanoi.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVarP(&playDisks, "disks", "n", 0, "Number of disks (default from config)")
	playCmd.Flags().StringVar(&playConfig, "config", "", "Path to a config file (default .hanoi/config.yaml)")
	playCmd.Flags().StringVar(&playLogFile, "log-file", "", "Write logs to this file")
	playCmd.Flags().StringVar(&playMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(playConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if playLogFile != "" {
		cfg.Log.File = playLogFile
	}
	if playMetricsAddr != "" {
		cfg.Metrics.Addr = playMetricsAddr
	}

	disks, err := resolveDisks(cfg.Game, playDisks)
	if err != nil {
		return err
	}

	// stderr belongs to the board while it is drawn
	log, closeLog, err := newLogger(cfg.Log, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	engine := newEngine(cfg.Game, cfg.Game.MoveAnimation, log)
	defer engine.StopSolver()

	if cfg.Metrics.Addr != "" {
		srv, collector, err := startMetrics(ctx, cfg.Metrics.Addr, engine.Bus(), log)
		if err != nil {
			return err
		}
		defer collector.Detach()
		defer func() {
			if err := srv.Stop(); err != nil {
				log.Warn("failed to stop metrics server", "error", err)
			}
		}()
	}

	engine.ChangeDisksCount(disks)

	rules, err := tui.RenderRules(80)
	if err != nil {
		log.Warn("falling back to plain rules", "error", err)
		rules = tui.RulesMarkdown
	}

	ui := tui.NewTUI(engine, os.Stdout, tui.WithLogger(log), tui.WithRules(rules))
	defer ui.Close()

	log.Info("game started", "disks", disks)
	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

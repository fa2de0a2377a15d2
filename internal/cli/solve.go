package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thruflo/hanoi/internal/events"
	"github.com/thruflo/hanoi/internal/game"
)

var (
	solveDisks int
	solveDelay time.Duration
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Watch the solver play a game",
	Long: `Run the solver on a fresh game and print every move it makes.

Press Ctrl+C to stop the solver early; the moves made so far are kept and
summarized.

Example:
  hanoi solve --disks 4
  hanoi solve --disks 10 --delay 0`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().IntVarP(&solveDisks, "disks", "n", 0, "Number of disks (default from config)")
	solveCmd.Flags().DurationVar(&solveDelay, "delay", 0, "Pause between moves (default from config)")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	disks, err := resolveDisks(cfg.Game, solveDisks)
	if err != nil {
		return err
	}

	delay := cfg.Game.MoveAnimation
	if cmd.Flags().Changed("delay") {
		if solveDelay < 0 {
			return fmt.Errorf("delay must not be negative, got %v", solveDelay)
		}
		delay = solveDelay
	}

	log, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	engine := newEngine(cfg.Game, delay, log)
	engine.ChangeDisksCount(disks)

	return solveGame(ctx, cmd.OutOrStdout(), engine)
}

// solveGame runs the solver to completion, or until ctx is done, printing
// each move to out.
func solveGame(ctx context.Context, out io.Writer, engine *game.Engine) error {
	var step int
	var writeErr error
	sub := events.Subscribe(engine.Bus(), game.DiskPegChanged, func(c game.DiskPegChange) {
		if c.IsNoop() || writeErr != nil {
			return
		}
		step++
		_, writeErr = fmt.Fprintf(out, "step %d: disk %d peg %d -> peg %d\n", step, c.Disk+1, c.SrcPeg+1, c.DstPeg+1)
	})
	defer sub.Unsubscribe()

	// the run stops itself when ctx is done
	<-engine.StartSolver(ctx)
	if writeErr != nil {
		return fmt.Errorf("failed to write move: %w", writeErr)
	}

	snap := engine.Snapshot()
	best := game.MinMoves(snap.DisksCount)
	if snap.GameCondition == game.GameFinished {
		_, err := fmt.Fprintf(out, "solved %d disks in %d moves\n", snap.DisksCount, snap.CurrentStep)
		return err
	}
	_, err := fmt.Fprintf(out, "stopped after %d of %d moves\n", snap.CurrentStep, best)
	return err
}

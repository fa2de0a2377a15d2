package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thruflo/hanoi/internal/events"
	"github.com/thruflo/hanoi/internal/game"
	"github.com/thruflo/hanoi/internal/logging"
)

// NewEngine returns an idle engine on a fresh bus with a silent logger and
// no delay between solver moves. opts are applied after those defaults.
func NewEngine(t *testing.T, opts ...game.Option) (*game.Engine, *events.Bus) {
	t.Helper()

	bus := events.NewBus()
	base := []game.Option{
		game.WithLogger(logging.Nop()),
		game.WithMoveDelay(0),
	}
	engine := game.New(bus, append(base, opts...)...)
	t.Cleanup(engine.StopSolver)
	return engine, bus
}

// NewGame returns an engine set up with disks disks, ready to play.
func NewGame(t *testing.T, disks int, opts ...game.Option) (*game.Engine, *events.Bus) {
	t.Helper()

	engine, bus := NewEngine(t, opts...)
	engine.ChangeDisksCount(disks)
	require.Equal(t, disks, engine.DisksCount(), "disks count %d outside engine limits", disks)
	require.Equal(t, game.GameActive, engine.GameCondition())
	return engine, bus
}

// InitialStack returns the layout right after a reset with n disks.
func InitialStack(n int) game.Pegs {
	src := make([]int, 0, n)
	for w := n - 1; w >= 0; w-- {
		src = append(src, w)
	}
	return game.Pegs{src, {}, {}}
}

// SolvedStack returns the winning layout for n disks.
func SolvedStack(n int) game.Pegs {
	initial := InitialStack(n)
	return game.Pegs{{}, {}, initial[game.SourcePeg]}
}

// ApplyMoves plays each move through MoveDisk, picking the top disk of the
// move's source peg, and requires every move to be accepted.
func ApplyMoves(t *testing.T, engine *game.Engine, moves []game.Move) {
	t.Helper()

	for i, m := range moves {
		disk, ok := engine.Pegs().Top(m.SrcPeg)
		require.True(t, ok, "move %d: peg %d is empty", i, m.SrcPeg)
		res := engine.MoveDisk(game.MoveArgs{Peg: m.DstPeg, Disk: disk})
		require.True(t, res.Applied, "move %d (%d -> %d) rejected: %v", i, m.SrcPeg, m.DstPeg, res.Reason)
	}
}

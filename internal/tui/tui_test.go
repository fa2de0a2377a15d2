package tui

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/thruflo/hanoi/internal/game"
	"github.com/thruflo/hanoi/internal/logging"
	"github.com/thruflo/hanoi/internal/testutil"
)

func key(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

func newTestTUI(t *testing.T, disks int, opts ...game.Option) (*TUI, *game.Engine, *bytes.Buffer) {
	t.Helper()

	engine, _ := testutil.NewGame(t, disks, opts...)
	var out bytes.Buffer
	ui := NewTUI(engine, &out,
		WithLogger(logging.Nop()),
		WithBoardView(&BoardView{Profile: termenv.Ascii}),
		WithRules("rules"),
	)
	t.Cleanup(ui.Close)
	return ui, engine, &out
}

func TestView_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "board", ViewBoard.String())
	assert.Equal(t, "rules", ViewRules.String())
	assert.Equal(t, "unknown", View(9).String())
	assert.Equal(t, "quit", ActionQuit.String())
	assert.Equal(t, "none", ActionNone.String())
}

func TestTUI_GrabAndDropWithNumbers(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3)

	ui.HandleKey(key('1'))
	disk, holding := ui.Grabber().Grabbed()
	require.True(t, holding)
	assert.Equal(t, 0, disk)

	ui.HandleKey(key('3'))

	testutil.AssertPegs(t, game.Pegs{{2, 1}, {}, {0}}, engine.Pegs())
	assert.Equal(t, 1, engine.CurrentStep())
	assert.Equal(t, 2, ui.Cursor())
	_, holding = ui.Grabber().Grabbed()
	assert.False(t, holding)
}

func TestTUI_GrabAndDropWithCursor(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3)

	ui.HandleKey(key(' '))
	ui.HandleKey(KeyEvent{Key: KeyLeft})
	peg, ok := ui.Grabber().Hovered()
	require.True(t, ok)
	assert.Equal(t, 2, peg)
	ui.HandleKey(KeyEvent{Key: KeyEnter})

	testutil.AssertPegs(t, game.Pegs{{2, 1}, {}, {0}}, engine.Pegs())
}

func TestTUI_IllegalDropShowsReason(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3)
	testutil.ApplyMoves(t, engine, []game.Move{{SrcPeg: 0, DstPeg: 2}})

	ui.HandleKey(key('1'))
	ui.HandleKey(key('3'))

	testutil.AssertPegs(t, game.Pegs{{2, 1}, {}, {0}}, engine.Pegs())
	assert.Contains(t, ui.Message(), "smaller")
}

func TestTUI_EmptyPeg(t *testing.T) {
	t.Parallel()

	ui, _, _ := newTestTUI(t, 3)

	ui.HandleKey(key('2'))

	_, holding := ui.Grabber().Grabbed()
	assert.False(t, holding)
	assert.Equal(t, "peg 2 is empty", ui.Message())
}

func TestTUI_EscapeCancelsGrab(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3)

	ui.HandleKey(key('1'))
	ui.HandleKey(KeyEvent{Key: KeyEscape})
	ui.HandleKey(key('3'))

	testutil.AssertPegs(t, testutil.InitialStack(3), engine.Pegs())
	assert.Equal(t, "peg 3 is empty", ui.Message())
}

func TestTUI_GrabRefusedWhenLocked(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3)
	engine.ChangeGameCondition(game.GameFinished)

	ui.HandleKey(key('1'))

	_, holding := ui.Grabber().Grabbed()
	assert.False(t, holding)
	assert.Equal(t, "disks are locked", ui.Message())
}

func TestTUI_UndoRedo(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3)

	ui.HandleKey(key('u'))
	assert.Equal(t, "nothing to undo", ui.Message())

	testutil.ApplyMoves(t, engine, []game.Move{{SrcPeg: 0, DstPeg: 1}})
	ui.HandleKey(key('u'))
	assert.Equal(t, 0, engine.CurrentStep())
	assert.Empty(t, ui.Message())

	ui.HandleKey(key('r'))
	assert.Equal(t, 1, engine.CurrentStep())
	ui.HandleKey(key('r'))
	assert.Equal(t, "nothing to redo", ui.Message())
}

func TestTUI_DisksCount(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3, game.WithLimits(3, 4))

	ui.HandleKey(key('+'))
	assert.Equal(t, 4, engine.DisksCount())

	ui.HandleKey(key('+'))
	assert.Equal(t, 4, engine.DisksCount())
	assert.Equal(t, "disks must be between 3 and 4", ui.Message())

	ui.HandleKey(key('-'))
	assert.Equal(t, 3, engine.DisksCount())
}

func TestTUI_Reset(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3)
	testutil.ApplyMoves(t, engine, []game.Move{{SrcPeg: 0, DstPeg: 1}})

	ui.HandleKey(key('n'))

	testutil.AssertPegs(t, testutil.InitialStack(3), engine.Pegs())
	testutil.AssertHistoryLength(t, engine, 0)
}

func TestTUI_Solver(t *testing.T) {
	t.Parallel()

	clock := testutil.NewGatedClock()
	ui, engine, _ := newTestTUI(t, 3, game.WithClock(clock))

	ui.HandleKey(key('s'))
	clock.AwaitWait(t, 5*time.Second)
	assert.Equal(t, game.SolverActive, engine.SolverCondition())

	// the board is locked while solving
	ui.HandleKey(key('2'))
	assert.Equal(t, "disks are locked", ui.Message())

	ui.HandleKey(key('x'))
	ctx, cancel := testutil.SolverContext(t)
	defer cancel()
	require.NoError(t, engine.WaitSolver(ctx))
	assert.Equal(t, game.SolverInactive, engine.SolverCondition())
	testutil.AssertHistoryLength(t, engine, 1)
}

func TestTUI_SolverRefusedWhenFinished(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3)
	testutil.ApplyMoves(t, engine, game.Solve(3, 0, 1, 2))

	ui.HandleKey(key('s'))

	assert.Equal(t, "the solver cannot start now", ui.Message())
	assert.Equal(t, game.SolverInactive, engine.SolverCondition())
}

func TestTUI_WeightsToggle(t *testing.T) {
	t.Parallel()

	ui, _, _ := newTestTUI(t, 3)

	assert.False(t, ui.State().ShowWeights)
	ui.HandleKey(key('w'))
	assert.True(t, ui.State().ShowWeights)
	ui.HandleKey(key('w'))
	assert.False(t, ui.State().ShowWeights)
}

func TestTUI_RulesView(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3)

	ui.HandleKey(key('?'))
	assert.Equal(t, ViewRules, ui.GetView())

	// board keys are ignored while reading the rules
	ui.HandleKey(key('1'))
	_, holding := ui.Grabber().Grabbed()
	assert.False(t, holding)
	testutil.AssertPegs(t, testutil.InitialStack(3), engine.Pegs())

	ui.HandleKey(KeyEvent{Key: KeyEscape})
	assert.Equal(t, ViewBoard, ui.GetView())
}

func TestTUI_Quit(t *testing.T) {
	t.Parallel()

	ui, _, _ := newTestTUI(t, 3)

	assert.Equal(t, ActionQuit, ui.HandleKey(key('q')))
	assert.Equal(t, ActionQuit, ui.HandleKey(KeyEvent{Key: KeyCtrlC}))
	assert.Equal(t, ActionNone, ui.HandleKey(key('z')))

	ui.HandleKey(key('?'))
	assert.Equal(t, ActionQuit, ui.HandleKey(key('q')), "quit works from the rules view")
}

func TestTUI_UpdateNotRunning(t *testing.T) {
	t.Parallel()

	ui, _, out := newTestTUI(t, 3)

	ui.Update()

	assert.Empty(t, out.String())
	assert.False(t, ui.IsRunning())
}

func TestTUI_State(t *testing.T) {
	t.Parallel()

	ui, engine, _ := newTestTUI(t, 3)
	ui.HandleKey(key('1'))

	state := ui.State()

	assert.True(t, state.Holding)
	assert.Equal(t, 0, state.Grabbed)
	assert.Equal(t, 0, state.Cursor)
	assert.Equal(t, engine.Snapshot(), state.Game)
}

func TestTUI_RunNeedsTerminal(t *testing.T) {
	t.Parallel()

	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}

	ui, _, out := newTestTUI(t, 3)

	err := ui.Run(context.Background())

	assert.ErrorIs(t, err, ErrNotTerminal)
	assert.False(t, ui.IsRunning())
	assert.Empty(t, out.String())
}

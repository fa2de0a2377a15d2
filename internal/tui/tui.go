// Package tui is the terminal front end for hanoi. It draws the board,
// turns keys into engine operations and redraws on engine notifications.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/thruflo/hanoi/internal/events"
	"github.com/thruflo/hanoi/internal/game"
	"github.com/thruflo/hanoi/internal/logging"
)

// ErrNotTerminal is returned by Run when stdin is not an interactive terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// View represents the current TUI view.
type View int

const (
	ViewBoard View = iota
	ViewRules
)

// String returns the string representation of the view.
func (v View) String() string {
	switch v {
	case ViewBoard:
		return "board"
	case ViewRules:
		return "rules"
	default:
		return "unknown"
	}
}

// Action is what the event loop should do after a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Option configures a TUI.
type Option func(*TUI)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(t *TUI) {
		t.log = l
	}
}

// WithBoardView replaces the board renderer.
func WithBoardView(v *BoardView) Option {
	return func(t *TUI) {
		t.board = v
	}
}

// WithRules sets the rendered rules shown by the rules view.
func WithRules(rendered string) Option {
	return func(t *TUI) {
		t.rules = NewRulesView(rendered)
	}
}

// TUI manages the terminal user interface for one engine.
type TUI struct {
	terminal *Terminal
	engine   *game.Engine
	bus      *events.Bus
	log      *logging.Logger

	cursor   *Cursor
	grabber  *Grabber
	notifier *Notifier
	board    *BoardView
	rules    *RulesView

	mu          sync.Mutex
	view        View
	showWeights bool
	message     string
	width       int
	height      int
	running     bool
	ctx         context.Context

	redraw chan struct{}
	subs   []events.Subscription
}

// NewTUI creates a TUI for engine that draws to out.
func NewTUI(engine *game.Engine, out io.Writer, opts ...Option) *TUI {
	terminal := NewTerminal(out)
	t := &TUI{
		terminal: terminal,
		engine:   engine,
		bus:      engine.Bus(),
		log:      logging.Default(),
		cursor:   &Cursor{},
		notifier: NewNotifier(terminal),
		view:     ViewBoard,
		width:    80,
		height:   24,
		ctx:      context.Background(),
		redraw:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.board == nil {
		t.board = NewBoardView()
	}
	if t.rules == nil {
		t.rules = NewRulesView(RulesMarkdown)
	}
	t.grabber = NewGrabber(t.bus, engine, t.cursor, t.log)
	return t
}

// Close releases the TUI's subscriptions.
func (t *TUI) Close() {
	t.grabber.Close()
}

// GetView returns the current view.
func (t *TUI) GetView() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Message returns the status line.
func (t *TUI) Message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message
}

// Cursor returns the selected peg.
func (t *TUI) Cursor() int {
	return t.cursor.Peg()
}

// Grabber returns the grab/drop glue.
func (t *TUI) Grabber() *Grabber {
	return t.grabber
}

// State returns what the board view would draw now.
func (t *TUI) State() BoardState {
	t.mu.Lock()
	showWeights, message := t.showWeights, t.message
	t.mu.Unlock()

	disk, holding := t.grabber.Grabbed()
	return BoardState{
		Game:        t.engine.Snapshot(),
		Cursor:      t.cursor.Peg(),
		Grabbed:     disk,
		Holding:     holding,
		ShowWeights: showWeights,
		Message:     message,
	}
}

// requestRedraw asks the event loop to redraw. Safe from any goroutine,
// including engine listeners.
func (t *TUI) requestRedraw() {
	select {
	case t.redraw <- struct{}{}:
	default:
	}
}

// Update redraws the current view.
func (t *TUI) Update() {
	state := t.State()

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	if width, height, err := t.terminal.Size(); err == nil {
		t.width = width
		t.height = height
	}

	t.terminal.Clear()
	t.terminal.HideCursor()

	var lines []string
	switch t.view {
	case ViewBoard:
		lines = t.board.Render(state, t.width)
	case ViewRules:
		lines = t.rules.Render(t.width, t.height-2)
	}
	for _, line := range lines {
		t.terminal.WriteLine(line)
	}
}

// Run starts the TUI event loop.
// It returns when the context is cancelled or the user quits.
func (t *TUI) Run(ctx context.Context) error {
	if !t.terminal.IsTerminal() {
		return ErrNotTerminal
	}
	if err := t.terminal.EnterRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer t.terminal.ExitRaw()
	defer t.terminal.ShowCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.mu.Lock()
	t.running = true
	t.ctx = ctx
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	t.attach()
	defer t.detach()

	keyReader := NewKeyReader(t.terminal)
	t.Update()

	keyCh := make(chan KeyEvent, 10)
	keyErr := make(chan error, 1)

	go func() {
		for {
			ev, err := keyReader.ReadKey()
			if err != nil {
				keyErr <- err
				return
			}
			select {
			case keyCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-keyErr:
			// EOF is expected when stdin closes
			if err == io.EOF {
				return nil
			}
			return err

		case ev := <-keyCh:
			if t.HandleKey(ev) == ActionQuit {
				return nil
			}
			t.Update()

		case <-t.redraw:
			t.Update()
		}
	}
}

// attach subscribes the redraw trigger and the bell to the engine.
func (t *TUI) attach() {
	redraw := func() { t.requestRedraw() }
	t.subs = []events.Subscription{
		events.Subscribe(t.bus, game.PegsGenerated, func(struct{}) { redraw() }),
		events.Subscribe(t.bus, game.DiskPegChanged, func(game.DiskPegChange) { redraw() }),
		events.Subscribe(t.bus, game.GameConditionChanged, func(game.GameConditionChange) { redraw() }),
		events.Subscribe(t.bus, game.SolverConditionChanged, func(game.SolverConditionChange) { redraw() }),
		events.Subscribe(t.bus, game.DisksInteractivityChanged, func(game.InteractivityChange) { redraw() }),
		events.Subscribe(t.bus, game.StepChanged, func(game.StepChange) { redraw() }),
		events.Subscribe(t.bus, game.DisksCountChanged, func(game.DisksCountChange) { redraw() }),
	}
	t.notifier.Attach(t.bus)
}

func (t *TUI) detach() {
	for _, sub := range t.subs {
		sub.Unsubscribe()
	}
	t.subs = nil
	t.notifier.Detach()
}

// HandleKey applies a key press and reports whether to quit.
func (t *TUI) HandleKey(ev KeyEvent) Action {
	shortcut := ParseShortcut(ev)
	if shortcut == ShortcutQuit {
		return ActionQuit
	}

	if t.GetView() == ViewRules {
		switch shortcut {
		case ShortcutRules, ShortcutEscape:
			t.setView(ViewBoard)
		case ShortcutScrollUp:
			t.rules.Scroll(-1)
		case ShortcutScrollDown:
			t.rules.Scroll(1)
		}
		return ActionNone
	}

	t.setMessage("")
	if peg, ok := shortcut.Peg(); ok {
		t.cursor.Set(peg)
		t.selectPeg(peg)
		return ActionNone
	}

	switch shortcut {
	case ShortcutLeft, ShortcutRight:
		delta := 1
		if shortcut == ShortcutLeft {
			delta = -1
		}
		t.cursor.Move(delta)
		if _, holding := t.grabber.Grabbed(); holding {
			events.Emit(t.bus, game.GrabbedDiskMoved, struct{}{})
		}

	case ShortcutSelect:
		t.selectPeg(t.cursor.Peg())

	case ShortcutEscape:
		t.grabber.Cancel()

	case ShortcutUndo:
		if !t.engine.UndoDiskMove() {
			t.setMessage("nothing to undo")
		}

	case ShortcutRedo:
		if !t.engine.RedoDiskMove() {
			t.setMessage("nothing to redo")
		}

	case ShortcutSolve:
		if !t.engine.CanStartSolver() {
			t.setMessage("the solver cannot start now")
			break
		}
		t.grabber.Cancel()
		t.mu.Lock()
		ctx := t.ctx
		t.mu.Unlock()
		t.engine.StartSolver(ctx)

	case ShortcutStop:
		t.engine.StopSolver()

	case ShortcutReset:
		t.grabber.Cancel()
		t.engine.Reset()

	case ShortcutMoreDisks, ShortcutFewerDisks:
		delta := 1
		if shortcut == ShortcutFewerDisks {
			delta = -1
		}
		count := t.engine.DisksCount() + delta
		if lo, hi := t.engine.Limits(); count < lo || count > hi {
			t.setMessage(fmt.Sprintf("disks must be between %d and %d", lo, hi))
			break
		}
		t.grabber.Cancel()
		t.engine.ChangeDisksCount(count)

	case ShortcutWeights:
		t.mu.Lock()
		t.showWeights = !t.showWeights
		t.mu.Unlock()

	case ShortcutRules:
		t.setView(ViewRules)
	}
	return ActionNone
}

// selectPeg grabs the top disk of peg, or drops the held disk on it.
func (t *TUI) selectPeg(peg int) {
	if _, holding := t.grabber.Grabbed(); holding {
		events.Emit(t.bus, game.GrabbedDiskMoved, struct{}{})
		events.Emit(t.bus, game.GrabbedDiskReleased, struct{}{})
		if res := t.grabber.LastResult(); !res.Applied && res.Reason != nil {
			t.setMessage(res.Reason.Error())
		}
		return
	}

	if !t.engine.IsDisksInteractive() {
		t.setMessage("disks are locked")
		return
	}
	top, ok := t.engine.Pegs().Top(peg)
	if !ok {
		t.setMessage(fmt.Sprintf("peg %d is empty", peg+1))
		return
	}
	events.Emit(t.bus, game.DiskGrabbed, game.DiskGrab{Weight: top})
	events.Emit(t.bus, game.GrabbedDiskMoved, struct{}{})
}

func (t *TUI) setView(v View) {
	t.mu.Lock()
	t.view = v
	t.mu.Unlock()
}

func (t *TUI) setMessage(msg string) {
	t.mu.Lock()
	t.message = msg
	t.mu.Unlock()
}

// IsRunning returns whether the TUI is currently running.
func (t *TUI) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

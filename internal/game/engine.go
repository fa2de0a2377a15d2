package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thruflo/hanoi/internal/events"
	"github.com/thruflo/hanoi/internal/logging"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLimits sets the accepted disk count range.
func WithLimits(minDisks, maxDisks int) Option {
	return func(e *Engine) {
		e.minDisks = minDisks
		e.maxDisks = maxDisks
	}
}

// WithMoveDelay sets the pause the solver takes after each move.
func WithMoveDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.moveDelay = d
	}
}

// WithLogger sets the logger. The engine adds its id as the "game" field.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithClock replaces the timer used by the solver.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// solverRun is one background solve. It is current while Engine.solver
// points at it.
type solverRun struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Engine is the game state. All methods are safe for concurrent use.
type Engine struct {
	// mu guards the state below, including the notification outbox.
	mu sync.Mutex

	id        string
	bus       *events.Bus
	log       *logging.Logger
	clock     Clock
	minDisks  int
	maxDisks  int
	moveDelay time.Duration

	disksCount      int
	pegs            Pegs
	history         []Move
	currentStep     int
	gameCondition   GameCondition
	solverCondition SolverCondition

	// epoch increments whenever the board is regenerated.
	epoch  uint64
	solver *solverRun
	// solverMove is a move the solver applied but has not recorded yet.
	solverMove *Move

	interactive bool
	// pending collects the notifications of the operation holding mu.
	pending []func()
	// outbox holds notifications waiting for delivery, oldest first.
	// draining is set while one goroutine delivers them.
	outbox   []func()
	draining bool
}

// New creates an idle engine publishing on bus.
func New(bus *events.Bus, opts ...Option) *Engine {
	e := &Engine{
		id:              uuid.NewString(),
		bus:             bus,
		log:             logging.Default(),
		clock:           RealClock{},
		minDisks:        DefaultMinDisks,
		maxDisks:        DefaultMaxDisks,
		gameCondition:   GameIdle,
		solverCondition: SolverInactive,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("game", e.id)
	return e
}

// ID returns the engine's unique identifier.
func (e *Engine) ID() string {
	return e.id
}

// Bus returns the bus the engine publishes on.
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

// Limits returns the accepted disk count range.
func (e *Engine) Limits() (minDisks, maxDisks int) {
	return e.minDisks, e.maxDisks
}

// MoveDelay returns the solver's per-move pause.
func (e *Engine) MoveDelay() time.Duration {
	return e.moveDelay
}

func (e *Engine) lock() {
	e.mu.Lock()
}

// unlock releases the state lock and delivers the notifications queued
// while it was held. Delivery happens without mu held. When another goroutine
// is already delivering, the notifications join its outbox and this call
// returns; they are delivered after everything queued before them.
func (e *Engine) unlock() {
	e.queueInteractivity()
	e.outbox = append(e.outbox, e.pending...)
	e.pending = nil

	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true
	e.mu.Unlock()

	e.drain()
}

// drain delivers the outbox until it is empty. When a listener panics the
// undelivered notifications go back to the front of the outbox.
func (e *Engine) drain() {
	var rest []func()
	finished := false
	defer func() {
		if finished {
			return
		}
		e.mu.Lock()
		e.outbox = append(rest, e.outbox...)
		e.draining = false
		e.mu.Unlock()
	}()

	for {
		e.mu.Lock()
		batch := e.outbox
		e.outbox = nil
		if len(batch) == 0 {
			e.draining = false
			e.mu.Unlock()
			finished = true
			return
		}
		e.mu.Unlock()

		for i, deliver := range batch {
			rest = batch[i+1:]
			deliver()
		}
		rest = nil
	}
}

func queue[T any](e *Engine, topic events.Topic[T], payload T) {
	e.pending = append(e.pending, func() {
		events.Emit(e.bus, topic, payload)
	})
}

// queueInteractivity publishes IsDisksInteractive when it changed since the
// last publication.
func (e *Engine) queueInteractivity() {
	now := e.isDisksInteractiveLocked()
	if now == e.interactive {
		return
	}
	e.interactive = now
	queue(e, DisksInteractivityChanged, InteractivityChange{IsInteractive: now})
}

// Read accessors.

// DisksCount returns the number of disks in play.
func (e *Engine) DisksCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disksCount
}

// CurrentStep returns the number of history entries currently applied.
func (e *Engine) CurrentStep() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentStep
}

// Pegs returns a copy of the peg contents.
func (e *Engine) Pegs() Pegs {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pegs.Clone()
}

// StepsHistory returns a copy of the move history.
func (e *Engine) StepsHistory() []Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.historyLocked()
}

func (e *Engine) historyLocked() []Move {
	out := make([]Move, len(e.history))
	copy(out, e.history)
	return out
}

// GameCondition returns the game lifecycle state.
func (e *Engine) GameCondition() GameCondition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameCondition
}

// SolverCondition returns whether the solver is running.
func (e *Engine) SolverCondition() SolverCondition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.solverCondition
}

// CanUndoDiskMove reports whether UndoDiskMove would do anything.
func (e *Engine) CanUndoDiskMove() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canUndoLocked()
}

// CanRedoDiskMove reports whether RedoDiskMove would do anything.
func (e *Engine) CanRedoDiskMove() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canRedoLocked()
}

// CanStartSolver reports whether StartSolver would start a run.
func (e *Engine) CanStartSolver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canStartSolverLocked()
}

// IsDisksInteractive reports whether the player may move disks.
func (e *Engine) IsDisksInteractive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isDisksInteractiveLocked()
}

// Snapshot returns a consistent copy of the whole state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		DisksCount:       e.disksCount,
		CurrentStep:      e.currentStep,
		Pegs:             e.pegs.Clone(),
		History:          e.historyLocked(),
		GameCondition:    e.gameCondition,
		SolverCondition:  e.solverCondition,
		CanUndo:          e.canUndoLocked(),
		CanRedo:          e.canRedoLocked(),
		CanStartSolver:   e.canStartSolverLocked(),
		DisksInteractive: e.isDisksInteractiveLocked(),
	}
}

func (e *Engine) canUndoLocked() bool {
	return e.currentStep-1 >= 0 && e.currentStep-1 < len(e.history) &&
		e.gameCondition != GameFinished &&
		e.solverCondition != SolverActive
}

func (e *Engine) canRedoLocked() bool {
	return e.currentStep >= 0 && e.currentStep < len(e.history) &&
		e.gameCondition != GameFinished &&
		e.solverCondition != SolverActive
}

func (e *Engine) canStartSolverLocked() bool {
	return e.gameCondition != GameFinished && e.solverCondition == SolverInactive
}

func (e *Engine) isDisksInteractiveLocked() bool {
	return e.gameCondition == GameActive && e.solverCondition == SolverInactive
}

// Mutating operations.

// ChangeDisksCount sets the number of disks and resets the game.
// Counts outside the configured limits are ignored.
func (e *Engine) ChangeDisksCount(count int) {
	if count < e.minDisks || count > e.maxDisks {
		e.log.Debug("disks count out of range, ignored", "count", count, "min", e.minDisks, "max", e.maxDisks)
		return
	}

	e.lock()
	defer e.unlock()

	e.disksCount = count
	queue(e, DisksCountChanged, DisksCountChange{Count: count})
	e.resetLocked()
}

// GenerateDisks stacks every disk on SourcePeg, largest at the bottom, and
// empties the other pegs. History is left untouched.
func (e *Engine) GenerateDisks() {
	e.lock()
	defer e.unlock()
	e.generateDisksLocked()
}

func (e *Engine) generateDisksLocked() {
	n := e.disksCount
	if n <= 0 {
		e.log.Error("cannot generate pegs", "disks", n)
		return
	}

	src := make([]int, 0, n)
	for weight := n - 1; weight >= 0; weight-- {
		src = append(src, weight)
	}
	e.pegs = Pegs{src, {}, {}}
	e.epoch++
	e.solverMove = nil

	queue(e, PegsGenerated, struct{}{})
}

// Reset regenerates the disks, clears history, activates the game and stops
// the solver.
func (e *Engine) Reset() {
	e.lock()
	defer e.unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	e.generateDisksLocked()
	e.setStepLocked(0)
	e.history = nil
	e.changeGameConditionLocked(GameActive)
	e.stopSolverLocked()
}

// ChangeGameCondition sets the game condition and always announces it.
func (e *Engine) ChangeGameCondition(condition GameCondition) {
	e.lock()
	defer e.unlock()
	e.changeGameConditionLocked(condition)
}

func (e *Engine) changeGameConditionLocked(condition GameCondition) {
	e.gameCondition = condition
	queue(e, GameConditionChanged, GameConditionChange{Condition: condition})
}

func (e *Engine) setStepLocked(step int) {
	if step == e.currentStep {
		return
	}
	e.currentStep = step
	queue(e, StepChanged, StepChange{Step: step})
}

func (e *Engine) setSolverConditionLocked(condition SolverCondition) {
	if condition == e.solverCondition {
		return
	}
	e.solverCondition = condition
	queue(e, SolverConditionChanged, SolverConditionChange{Condition: condition})
}

// MoveDisk places args.Disk on args.Peg if the rules allow it. A rejected
// move changes nothing, is announced as a snap-back DiskPegChange, and is
// reported through MoveResult.Reason.
func (e *Engine) MoveDisk(args MoveArgs) MoveResult {
	e.lock()
	defer e.unlock()

	src := e.pegs.Find(args.Disk)
	log := e.log.WithFields(map[string]interface{}{
		"disk": args.Disk,
		"src":  src,
		"dst":  args.Peg,
	})

	reject := func(reason error) MoveResult {
		queue(e, DiskPegChanged, DiskPegChange{SrcPeg: src, DstPeg: src, Disk: args.Disk})
		return MoveResult{Reason: fmt.Errorf("cannot move disk %d to peg %d: %w", args.Disk, args.Peg, reason)}
	}

	if e.solverCondition == SolverActive {
		log.Warn("cannot move disk while the solver is running")
		return reject(ErrSolverRunning)
	}
	if src == -1 {
		log.Warn("cannot move disk, disk not found")
		return reject(ErrDiskNotFound)
	}
	if args.Peg < 0 || args.Peg >= PegCount {
		log.Warn("cannot move disk, peg out of range")
		return reject(ErrInvalidPeg)
	}
	if src == args.Peg {
		log.Warn("cannot move disk, pegs are the same")
		return reject(ErrSamePeg)
	}
	if top, _ := e.pegs.Top(src); top != args.Disk {
		log.Error("moved disk is not the topmost one on its peg")
		return reject(ErrNotTopDisk)
	}
	if top, ok := e.pegs.Top(args.Peg); ok && top < args.Disk {
		log.Debug("cannot move disk onto a smaller one", "top", top)
		return reject(ErrIllegalStacking)
	}

	// a new move discards the redo branch
	if e.currentStep < len(e.history) {
		e.history = e.history[:e.currentStep]
	}
	move := Move{SrcPeg: src, DstPeg: args.Peg}
	e.history = append(e.history, move)
	e.relocateLocked(move)
	e.setStepLocked(e.currentStep + 1)

	return MoveResult{Applied: true, Move: move}
}

// UndoDiskMove reverts the move before the cursor.
// Returns false when CanUndoDiskMove is false.
func (e *Engine) UndoDiskMove() bool {
	e.lock()
	defer e.unlock()

	if !e.canUndoLocked() {
		return false
	}
	entry := e.history[e.currentStep-1]
	e.relocateLocked(entry.Reverse())
	e.setStepLocked(e.currentStep - 1)
	return true
}

// RedoDiskMove reapplies the move at the cursor.
// Returns false when CanRedoDiskMove is false.
func (e *Engine) RedoDiskMove() bool {
	e.lock()
	defer e.unlock()

	if !e.canRedoLocked() {
		return false
	}
	entry := e.history[e.currentStep]
	e.relocateLocked(entry)
	e.setStepLocked(e.currentStep + 1)
	return true
}

// relocateLocked pops the top disk of m.SrcPeg onto m.DstPeg without any
// rule checks and finishes the game when FinalPeg is complete.
func (e *Engine) relocateLocked(m Move) int {
	if m.SrcPeg < 0 || m.SrcPeg >= PegCount || m.DstPeg < 0 || m.DstPeg >= PegCount {
		panic(fmt.Errorf("%w: move %d -> %d out of range", ErrInvariant, m.SrcPeg, m.DstPeg))
	}
	src := e.pegs[m.SrcPeg]
	if len(src) == 0 {
		panic(fmt.Errorf("%w: no disk on peg %d", ErrInvariant, m.SrcPeg))
	}

	disk := src[len(src)-1]
	e.pegs[m.SrcPeg] = src[:len(src)-1]
	e.pegs[m.DstPeg] = append(e.pegs[m.DstPeg], disk)

	queue(e, DiskPegChanged, DiskPegChange{SrcPeg: m.SrcPeg, DstPeg: m.DstPeg, Disk: disk})

	if len(e.pegs[FinalPeg]) == e.disksCount {
		e.changeGameConditionLocked(GameFinished)
	}
	return disk
}

// Solver.

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// StartSolver runs the optimal solution in the background, pausing
// MoveDelay after every move. A game with history is reset to the initial
// stack first. The returned channel is closed when the run ends.
//
// Calling StartSolver while a run is active returns that run's channel.
// When the game is finished nothing starts and the channel is closed.
func (e *Engine) StartSolver(ctx context.Context) <-chan struct{} {
	e.lock()
	defer e.unlock()

	if e.solverCondition == SolverActive && e.solver != nil {
		return e.solver.done
	}
	if !e.canStartSolverLocked() {
		e.log.Debug("solver not started", "condition", string(e.gameCondition))
		return closedDone
	}

	runCtx, cancel := context.WithCancel(ctx)
	run := &solverRun{cancel: cancel, done: make(chan struct{})}
	e.solver = run
	e.setSolverConditionLocked(SolverActive)

	go e.solve(runCtx, run)
	return run.done
}

// StopSolver stops the running solver. Moves already applied stay applied.
func (e *Engine) StopSolver() {
	e.lock()
	defer e.unlock()
	e.stopSolverLocked()
}

func (e *Engine) stopSolverLocked() {
	if e.solverMove != nil {
		e.recordSolverMoveLocked()
	}
	e.setSolverConditionLocked(SolverInactive)
	if e.solver != nil {
		e.solver.cancel()
		e.solver = nil
	}
}

// WaitSolver blocks until the current solver run ends or ctx is done.
func (e *Engine) WaitSolver(ctx context.Context) error {
	e.mu.Lock()
	run := e.solver
	e.mu.Unlock()

	if run == nil {
		return nil
	}
	select {
	case <-run.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) solve(ctx context.Context, run *solverRun) {
	defer close(run.done)
	defer func() {
		e.lock()
		defer e.unlock()
		if e.solver == run {
			e.stopSolverLocked()
		}
	}()

	moves, epoch, restarted, ok := e.prepareSolve(run)
	if !ok {
		return
	}
	log := e.log.With("moves", len(moves))
	log.Debug("solver started", "restarted", restarted)

	if restarted {
		// let presentation settle on the fresh stack
		if err := e.clock.Wait(ctx, e.moveDelay); err != nil {
			logSolverWait(log, err, 0)
			return
		}
	}

	for i, move := range moves {
		if !e.applySolverMove(run, epoch, move) {
			log.Debug("solver stopped", "applied", i)
			return
		}
		err := e.clock.Wait(ctx, e.moveDelay)
		e.recordSolverMove(run)
		if err != nil {
			logSolverWait(log, err, i+1)
			return
		}
	}
	log.Debug("solver finished")
}

// prepareSolve restarts a game in progress and computes the moves.
func (e *Engine) prepareSolve(run *solverRun) (moves []Move, epoch uint64, restarted, ok bool) {
	e.lock()
	defer e.unlock()

	if e.solver != run {
		return nil, 0, false, false
	}
	if len(e.history) > 0 {
		e.history = nil
		e.setStepLocked(0)
		e.generateDisksLocked()
		restarted = true
	}
	return Solve(e.disksCount, SourcePeg, TempPeg, FinalPeg), e.epoch, restarted, true
}

// applySolverMove relocates move if run is still current and the board has
// not been regenerated since the run began.
func (e *Engine) applySolverMove(run *solverRun, epoch uint64, move Move) bool {
	e.lock()
	defer e.unlock()

	if e.solver != run || e.solverCondition != SolverActive || e.epoch != epoch {
		return false
	}
	e.relocateLocked(move)
	e.solverMove = &move
	return true
}

func (e *Engine) recordSolverMove(run *solverRun) {
	e.lock()
	defer e.unlock()

	if e.solver != run || e.solverMove == nil {
		return
	}
	e.recordSolverMoveLocked()
}

func (e *Engine) recordSolverMoveLocked() {
	e.history = append(e.history, *e.solverMove)
	e.solverMove = nil
	e.setStepLocked(e.currentStep + 1)
}

func logSolverWait(log *logging.Logger, err error, applied int) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.Debug("solver cancelled", "applied", applied)
		return
	}
	log.Error("solver wait failed", "error", err, "applied", applied)
}

package testutil

import (
	"sync"

	"github.com/thruflo/hanoi/internal/events"
	"github.com/thruflo/hanoi/internal/game"
)

// Recorder captures engine notifications in delivery order.
type Recorder struct {
	mu   sync.Mutex
	subs []events.Subscription

	names           []string
	diskChanges     []game.DiskPegChange
	gameConditions  []game.GameCondition
	solverChanges   []game.SolverCondition
	interactivity   []bool
	steps           []int
	disksCounts     []int
	pegsGeneratedNo int
}

// NewRecorder subscribes to every engine topic on bus.
func NewRecorder(bus *events.Bus) *Recorder {
	r := &Recorder{}
	r.subs = append(r.subs,
		events.Subscribe(bus, game.PegsGenerated, func(struct{}) {
			r.record(game.PegsGenerated.Name(), func() { r.pegsGeneratedNo++ })
		}),
		events.Subscribe(bus, game.DiskPegChanged, func(c game.DiskPegChange) {
			r.record(game.DiskPegChanged.Name(), func() { r.diskChanges = append(r.diskChanges, c) })
		}),
		events.Subscribe(bus, game.GameConditionChanged, func(c game.GameConditionChange) {
			r.record(game.GameConditionChanged.Name(), func() { r.gameConditions = append(r.gameConditions, c.Condition) })
		}),
		events.Subscribe(bus, game.SolverConditionChanged, func(c game.SolverConditionChange) {
			r.record(game.SolverConditionChanged.Name(), func() { r.solverChanges = append(r.solverChanges, c.Condition) })
		}),
		events.Subscribe(bus, game.DisksInteractivityChanged, func(c game.InteractivityChange) {
			r.record(game.DisksInteractivityChanged.Name(), func() { r.interactivity = append(r.interactivity, c.IsInteractive) })
		}),
		events.Subscribe(bus, game.StepChanged, func(c game.StepChange) {
			r.record(game.StepChanged.Name(), func() { r.steps = append(r.steps, c.Step) })
		}),
		events.Subscribe(bus, game.DisksCountChanged, func(c game.DisksCountChange) {
			r.record(game.DisksCountChanged.Name(), func() { r.disksCounts = append(r.disksCounts, c.Count) })
		}),
	)
	return r
}

func (r *Recorder) record(name string, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	fn()
}

// Close unsubscribes the recorder.
func (r *Recorder) Close() {
	for _, sub := range r.subs {
		sub.Unsubscribe()
	}
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = nil
	r.diskChanges = nil
	r.gameConditions = nil
	r.solverChanges = nil
	r.interactivity = nil
	r.steps = nil
	r.disksCounts = nil
	r.pegsGeneratedNo = 0
}

// Names returns the event names in delivery order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

// Count returns how many events named name were delivered.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.names {
		if got == name {
			n++
		}
	}
	return n
}

// DiskChanges returns every DiskPegChange payload.
func (r *Recorder) DiskChanges() []game.DiskPegChange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]game.DiskPegChange(nil), r.diskChanges...)
}

// GameConditions returns every announced game condition.
func (r *Recorder) GameConditions() []game.GameCondition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]game.GameCondition(nil), r.gameConditions...)
}

// SolverConditions returns every announced solver condition.
func (r *Recorder) SolverConditions() []game.SolverCondition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]game.SolverCondition(nil), r.solverChanges...)
}

// Interactivity returns every announced interactivity value.
func (r *Recorder) Interactivity() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.interactivity...)
}

// Steps returns every announced step value.
func (r *Recorder) Steps() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.steps...)
}

// DisksCounts returns every announced disks count.
func (r *Recorder) DisksCounts() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.disksCounts...)
}

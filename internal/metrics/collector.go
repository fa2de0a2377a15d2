package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thruflo/hanoi/internal/events"
	"github.com/thruflo/hanoi/internal/game"
)

// Values of the driver label on hanoi_disk_moves_total.
const (
	DriverPlayer = "player"
	DriverSolver = "solver"
)

// Collector turns engine notifications into metrics.
type Collector struct {
	moves     *prometheus.CounterVec
	rejected  prometheus.Counter
	finished  prometheus.Counter
	generated prometheus.Counter
	step      prometheus.Gauge
	disks     prometheus.Gauge
	solver    prometheus.Gauge

	mu        sync.Mutex
	solving   bool
	condition game.GameCondition
	subs      []events.Subscription
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hanoi_disk_moves_total",
			Help: "Disk relocations applied, including undo and redo.",
		}, []string{"driver"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanoi_rejected_moves_total",
			Help: "Move attempts rejected by the rules.",
		}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanoi_games_finished_total",
			Help: "Games that reached the finished condition.",
		}),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanoi_pegs_generated_total",
			Help: "Times the disks were stacked back on the source peg.",
		}),
		step: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hanoi_current_step",
			Help: "Moves currently applied.",
		}),
		disks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hanoi_disks",
			Help: "Disks in play.",
		}),
		solver: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hanoi_solver_active",
			Help: "1 while the solver drives the game.",
		}),
	}

	for _, m := range []prometheus.Collector{c.moves, c.rejected, c.finished, c.generated, c.step, c.disks, c.solver} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Attach subscribes the collector to bus.
func (c *Collector) Attach(bus *events.Bus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subs = append(c.subs,
		events.Subscribe(bus, game.DiskPegChanged, c.onDiskPegChanged),
		events.Subscribe(bus, game.GameConditionChanged, c.onGameConditionChanged),
		events.Subscribe(bus, game.SolverConditionChanged, c.onSolverConditionChanged),
		events.Subscribe(bus, game.StepChanged, func(s game.StepChange) {
			c.step.Set(float64(s.Step))
		}),
		events.Subscribe(bus, game.DisksCountChanged, func(d game.DisksCountChange) {
			c.disks.Set(float64(d.Count))
		}),
		events.Subscribe(bus, game.PegsGenerated, func(struct{}) {
			c.generated.Inc()
		}),
	)
}

// Detach removes every subscription made by Attach.
func (c *Collector) Detach() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// Seed sets the gauges from the engine's current state, for collectors
// attached after the game started.
func (c *Collector) Seed(snap game.Snapshot) {
	c.mu.Lock()
	c.solving = snap.SolverCondition == game.SolverActive
	c.condition = snap.GameCondition
	c.mu.Unlock()

	c.step.Set(float64(snap.CurrentStep))
	c.disks.Set(float64(snap.DisksCount))
	c.solver.Set(boolValue(snap.SolverCondition == game.SolverActive))
}

func (c *Collector) onDiskPegChanged(change game.DiskPegChange) {
	if change.IsNoop() {
		c.rejected.Inc()
		return
	}

	c.mu.Lock()
	driver := DriverPlayer
	if c.solving {
		driver = DriverSolver
	}
	c.mu.Unlock()

	c.moves.WithLabelValues(driver).Inc()
}

func (c *Collector) onGameConditionChanged(change game.GameConditionChange) {
	c.mu.Lock()
	prev := c.condition
	c.condition = change.Condition
	c.mu.Unlock()

	// the engine re-announces unchanged conditions
	if change.Condition == game.GameFinished && prev != game.GameFinished {
		c.finished.Inc()
	}
}

func (c *Collector) onSolverConditionChanged(change game.SolverConditionChange) {
	active := change.Condition == game.SolverActive

	c.mu.Lock()
	c.solving = active
	c.mu.Unlock()

	c.solver.Set(boolValue(active))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

package tui

import (
	"sync"

	"github.com/thruflo/hanoi/internal/events"
	"github.com/thruflo/hanoi/internal/game"
	"github.com/thruflo/hanoi/internal/logging"
)

// PegLocator reports which peg a grabbed disk currently hovers.
type PegLocator interface {
	PegAt() (peg int, ok bool)
}

// DiskMover applies a drop. *game.Engine implements it.
type DiskMover interface {
	MoveDisk(args game.MoveArgs) game.MoveResult
}

// Grabber turns the grab, hover and release notifications published by the
// presentation into MoveDisk calls.
type Grabber struct {
	mover   DiskMover
	locator PegLocator
	log     *logging.Logger

	mu       sync.Mutex
	disk     int
	holding  bool
	peg      int
	hovering bool
	last     game.MoveResult
	subs     []events.Subscription
}

// NewGrabber subscribes a Grabber to bus.
func NewGrabber(bus *events.Bus, mover DiskMover, locator PegLocator, log *logging.Logger) *Grabber {
	if log == nil {
		log = logging.Default()
	}
	g := &Grabber{
		mover:   mover,
		locator: locator,
		log:     log,
	}
	g.subs = []events.Subscription{
		events.Subscribe(bus, game.DiskGrabbed, g.onGrabbed),
		events.Subscribe(bus, game.GrabbedDiskMoved, func(struct{}) { g.onMoved() }),
		events.Subscribe(bus, game.GrabbedDiskReleased, func(struct{}) { g.onReleased() }),
		events.Subscribe(bus, game.DisksInteractivityChanged, func(c game.InteractivityChange) {
			if !c.IsInteractive {
				g.Cancel()
			}
		}),
	}
	return g
}

// Close unsubscribes the Grabber.
func (g *Grabber) Close() {
	for _, sub := range g.subs {
		sub.Unsubscribe()
	}
}

// Grabbed returns the disk being held.
func (g *Grabber) Grabbed() (disk int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.disk, g.holding
}

// Hovered returns the peg the held disk was last seen over.
func (g *Grabber) Hovered() (peg int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.peg, g.holding && g.hovering
}

// LastResult returns the outcome of the most recent drop.
func (g *Grabber) LastResult() game.MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// Cancel forgets the held disk without moving it.
func (g *Grabber) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.forgetLocked()
}

func (g *Grabber) forgetLocked() {
	g.disk, g.holding = 0, false
	g.peg, g.hovering = 0, false
}

func (g *Grabber) onGrabbed(grab game.DiskGrab) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disk, g.holding = grab.Weight, true
	g.peg, g.hovering = 0, false
}

func (g *Grabber) onMoved() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.holding {
		return
	}
	g.peg, g.hovering = g.locator.PegAt()
}

func (g *Grabber) onReleased() {
	g.mu.Lock()
	disk, peg := g.disk, g.peg
	drop := g.holding && g.hovering
	g.forgetLocked()
	g.mu.Unlock()

	if !drop {
		return
	}

	// MoveDisk notifies listeners that may read the Grabber
	res := g.mover.MoveDisk(game.MoveArgs{Peg: peg, Disk: disk})
	if !res.Applied {
		g.log.Debug("drop rejected", "disk", disk, "peg", peg, "error", res.Reason)
	}

	g.mu.Lock()
	g.last = res
	g.mu.Unlock()
}

// Cursor is the peg selected with the keyboard. It stands in for pointer
// hit-testing as the Grabber's PegLocator.
type Cursor struct {
	mu  sync.Mutex
	peg int
}

// PegAt implements PegLocator.
func (c *Cursor) PegAt() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peg, true
}

// Peg returns the selected peg.
func (c *Cursor) Peg() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peg
}

// Set selects peg, ignoring out of range values.
func (c *Cursor) Set(peg int) {
	if peg < 0 || peg >= game.PegCount {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.peg = peg
}

// Move shifts the selection by delta, wrapping around.
func (c *Cursor) Move(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.peg = ((c.peg+delta)%game.PegCount + game.PegCount) % game.PegCount
}

package tui

import (
	"sync"

	"github.com/thruflo/hanoi/internal/events"
	"github.com/thruflo/hanoi/internal/game"
)

// BellRinger sounds an audible alert. *Terminal implements it.
type BellRinger interface {
	RingBell()
}

// Notifier rings the terminal bell when a game is won.
type Notifier struct {
	bell BellRinger

	mu        sync.Mutex
	condition game.GameCondition
	sub       events.Subscription
}

// NewNotifier creates a Notifier that rings bell.
func NewNotifier(bell BellRinger) *Notifier {
	return &Notifier{bell: bell}
}

// Bell sounds the bell once.
func (n *Notifier) Bell() {
	n.bell.RingBell()
}

// Attach starts listening for game condition changes on bus.
func (n *Notifier) Attach(bus *events.Bus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sub = events.Subscribe(bus, game.GameConditionChanged, n.onGameConditionChanged)
}

// Detach stops listening.
func (n *Notifier) Detach() {
	n.mu.Lock()
	sub := n.sub
	n.sub = events.Subscription{}
	n.mu.Unlock()
	sub.Unsubscribe()
}

func (n *Notifier) onGameConditionChanged(change game.GameConditionChange) {
	n.mu.Lock()
	prev := n.condition
	n.condition = change.Condition
	n.mu.Unlock()

	if change.Condition == game.GameFinished && prev != game.GameFinished {
		n.Bell()
	}
}

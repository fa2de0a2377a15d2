// Package events provides a typed, synchronous publish/subscribe channel.
//
// Events are identified by name. A Topic binds a name to the payload type
// carried by that event, so publishers and subscribers agree on the payload
// at compile time:
//
//	var Moved = events.NewTopic[Move]("moved")
//
//	sub := events.Subscribe(bus, Moved, func(m Move) { ... })
//	events.Emit(bus, Moved, Move{From: 0, To: 2})
//	sub.Unsubscribe()
//
// Delivery is synchronous and in registration order. Listener panics are not
// recovered and reach the caller of Emit.
package events

import "sync"

// Topic names an event and fixes the type of its payload.
type Topic[T any] struct {
	name string
}

// NewTopic creates a topic with the given event name.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

// Name returns the event name.
func (t Topic[T]) Name() string {
	return t.name
}

// Subscription identifies one registered listener.
// The zero value is not registered anywhere.
type Subscription struct {
	bus  *Bus
	name string
	id   uint64
}

// Name returns the event name the subscription listens to.
func (s Subscription) Name() string {
	return s.name
}

// Unsubscribe removes the listener from its bus.
// Returns false if it was already removed.
func (s Subscription) Unsubscribe() bool {
	if s.bus == nil {
		return false
	}
	return s.bus.Unsubscribe(s)
}

type listener struct {
	id   uint64
	once bool
	fn   func(any)
}

// Bus holds listeners keyed by event name. It is safe for concurrent use.
type Bus struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[string][]*listener
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]*listener),
	}
}

// Subscribe registers fn for every emission of topic.
func Subscribe[T any](b *Bus, topic Topic[T], fn func(T)) Subscription {
	return b.add(topic.name, false, func(payload any) {
		fn(payload.(T))
	})
}

// SubscribeOnce registers fn for the next emission of topic only.
// The listener is removed before it is called.
func SubscribeOnce[T any](b *Bus, topic Topic[T], fn func(T)) Subscription {
	return b.add(topic.name, true, func(payload any) {
		fn(payload.(T))
	})
}

// Emit delivers payload to every listener registered for topic at the time
// of the call.
func Emit[T any](b *Bus, topic Topic[T], payload T) {
	b.emit(topic.name, payload)
}

// Unsubscribe removes the listener identified by sub.
// Returns false if no such listener is registered.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeLocked(sub.name, sub.id)
}

// UnsubscribeAll removes every listener of the named events.
// With no names, it removes every listener of every event.
func (b *Bus) UnsubscribeAll(names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(names) == 0 {
		b.listeners = make(map[string][]*listener)
		return
	}
	for _, name := range names {
		delete(b.listeners, name)
	}
}

// ListenerCount returns the number of listeners registered for name.
func (b *Bus) ListenerCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[name])
}

func (b *Bus) add(name string, once bool, fn func(any)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	l := &listener{id: b.nextID, once: once, fn: fn}
	b.listeners[name] = append(b.listeners[name], l)
	return Subscription{bus: b, name: name, id: l.id}
}

func (b *Bus) emit(name string, payload any) {
	b.mu.Lock()
	registered := b.listeners[name]
	snapshot := make([]*listener, len(registered))
	copy(snapshot, registered)
	b.mu.Unlock()

	for _, l := range snapshot {
		b.mu.Lock()
		if !b.hasLocked(name, l.id) {
			// removed by an earlier listener of this emission
			b.mu.Unlock()
			continue
		}
		if l.once {
			b.removeLocked(name, l.id)
		}
		b.mu.Unlock()

		l.fn(payload)
	}
}

func (b *Bus) hasLocked(name string, id uint64) bool {
	for _, l := range b.listeners[name] {
		if l.id == id {
			return true
		}
	}
	return false
}

func (b *Bus) removeLocked(name string, id uint64) bool {
	registered := b.listeners[name]
	for i, l := range registered {
		if l.id != id {
			continue
		}
		remaining := make([]*listener, 0, len(registered)-1)
		remaining = append(remaining, registered[:i]...)
		remaining = append(remaining, registered[i+1:]...)
		if len(remaining) == 0 {
			delete(b.listeners, name)
		} else {
			b.listeners[name] = remaining
		}
		return true
	}
	return false
}

package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Value int
}

var (
	testTopic  = NewTopic[payload]("test")
	otherTopic = NewTopic[string]("other")
)

func TestTopic_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "test", testTopic.Name())
	assert.Equal(t, "other", otherTopic.Name())
}

func TestEmit_DeliversInRegistrationOrder(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var calls []string

	Subscribe(bus, testTopic, func(p payload) { calls = append(calls, "first") })
	Subscribe(bus, testTopic, func(p payload) { calls = append(calls, "second") })
	Subscribe(bus, testTopic, func(p payload) { calls = append(calls, "third") })

	Emit(bus, testTopic, payload{Value: 1})

	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestEmit_PassesPayload(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var got payload
	Subscribe(bus, testTopic, func(p payload) { got = p })

	Emit(bus, testTopic, payload{Value: 42})

	assert.Equal(t, 42, got.Value)
}

func TestEmit_OnlyMatchingName(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var testCalls, otherCalls int
	Subscribe(bus, testTopic, func(payload) { testCalls++ })
	Subscribe(bus, otherTopic, func(string) { otherCalls++ })

	Emit(bus, otherTopic, "hello")

	assert.Equal(t, 0, testCalls)
	assert.Equal(t, 1, otherCalls)
}

func TestEmit_NoListeners(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	assert.NotPanics(t, func() {
		Emit(bus, testTopic, payload{})
	})
}

func TestUnsubscribe(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var calls int
	sub := Subscribe(bus, testTopic, func(payload) { calls++ })

	Emit(bus, testTopic, payload{})
	require.True(t, sub.Unsubscribe())
	Emit(bus, testTopic, payload{})

	assert.Equal(t, 1, calls)
	assert.False(t, sub.Unsubscribe(), "second unsubscribe should report nothing removed")
	assert.False(t, Subscription{}.Unsubscribe())
}

func TestUnsubscribe_SameFunctionTwice(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var calls int
	fn := func(payload) { calls++ }

	first := Subscribe(bus, testTopic, fn)
	Subscribe(bus, testTopic, fn)

	Emit(bus, testTopic, payload{})
	assert.Equal(t, 2, calls)

	bus.Unsubscribe(first)
	Emit(bus, testTopic, payload{})
	assert.Equal(t, 3, calls)
}

func TestSubscribeOnce(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var onceCalls, alwaysCalls int
	SubscribeOnce(bus, testTopic, func(payload) { onceCalls++ })
	Subscribe(bus, testTopic, func(payload) { alwaysCalls++ })

	Emit(bus, testTopic, payload{})
	Emit(bus, testTopic, payload{})

	assert.Equal(t, 1, onceCalls)
	assert.Equal(t, 2, alwaysCalls)
	assert.Equal(t, 1, bus.ListenerCount("test"))
}

func TestSubscribeOnce_ReentrantEmit(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var calls int
	SubscribeOnce(bus, testTopic, func(payload) {
		calls++
		Emit(bus, testTopic, payload{})
	})

	Emit(bus, testTopic, payload{})

	assert.Equal(t, 1, calls)
}

func TestUnsubscribeAll(t *testing.T) {
	t.Parallel()

	t.Run("named events", func(t *testing.T) {
		t.Parallel()

		bus := NewBus()
		Subscribe(bus, testTopic, func(payload) {})
		Subscribe(bus, otherTopic, func(string) {})

		bus.UnsubscribeAll("test")

		assert.Equal(t, 0, bus.ListenerCount("test"))
		assert.Equal(t, 1, bus.ListenerCount("other"))
	})

	t.Run("every event", func(t *testing.T) {
		t.Parallel()

		bus := NewBus()
		Subscribe(bus, testTopic, func(payload) {})
		Subscribe(bus, otherTopic, func(string) {})

		bus.UnsubscribeAll()

		assert.Equal(t, 0, bus.ListenerCount("test"))
		assert.Equal(t, 0, bus.ListenerCount("other"))
	})
}

func TestEmit_ListenerAddedDuringEmitNotCalled(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var lateCalls int
	Subscribe(bus, testTopic, func(payload) {
		Subscribe(bus, testTopic, func(payload) { lateCalls++ })
	})

	Emit(bus, testTopic, payload{})
	assert.Equal(t, 0, lateCalls)

	Emit(bus, testTopic, payload{})
	assert.Equal(t, 1, lateCalls)
}

func TestEmit_ListenerRemovedDuringEmitSkipped(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var second Subscription
	var secondCalls int
	Subscribe(bus, testTopic, func(payload) { second.Unsubscribe() })
	second = Subscribe(bus, testTopic, func(payload) { secondCalls++ })

	Emit(bus, testTopic, payload{})

	assert.Equal(t, 0, secondCalls)
}

func TestEmit_PanicPropagates(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	Subscribe(bus, testTopic, func(payload) { panic("listener failed") })

	assert.PanicsWithValue(t, "listener failed", func() {
		Emit(bus, testTopic, payload{})
	})

	// the bus stays usable afterwards
	assert.Equal(t, 1, bus.ListenerCount("test"))
}

func TestBus_ConcurrentSubscribeAndEmit(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var mu sync.Mutex
	var calls int

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Subscribe(bus, testTopic, func(payload) {
				mu.Lock()
				calls++
				mu.Unlock()
			})
		}()
		go func() {
			defer wg.Done()
			Emit(bus, testTopic, payload{})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, bus.ListenerCount("test"))
	Emit(bus, testTopic, payload{})
	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, calls, 20)
}

// Package game implements the Tower of Hanoi state engine.
//
// The Engine owns the three pegs, the move history with its undo/redo
// cursor, the game and solver conditions, and the background solver. It
// never reads presentation state. Every externally visible change is
// published on an events.Bus using the topics declared in events.go:
//
//	bus := events.NewBus()
//	engine := game.New(bus, game.WithMoveDelay(300*time.Millisecond))
//	events.Subscribe(bus, game.DiskPegChanged, func(c game.DiskPegChange) {
//	    // redraw disk c.Disk on peg c.DstPeg
//	})
//	engine.ChangeDisksCount(3)
//	engine.MoveDisk(game.MoveArgs{Peg: 2, Disk: 0})
//
// Invalid moves are not errors: they are logged, reported through
// MoveResult, and announced as a snap-back DiskPegChange whose source and
// destination are equal. Only internal-consistency violations panic, with
// an error wrapping ErrInvariant.
//
// Notifications are delivered after the engine releases its state lock and
// in the order the changes happened, so listeners may call read accessors.
// Only one goroutine delivers at a time. An operation made while another
// goroutine is delivering returns before its own notifications reach
// listeners; they follow the ones already queued. The same holds for a
// mutating operation called from inside a listener.
package game

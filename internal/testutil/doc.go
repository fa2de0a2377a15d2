// Package testutil provides shared test utilities for hanoi.
//
// This package consolidates common test helpers, fixtures, and assertions
// used across the hanoi codebase to reduce duplication and ensure consistent
// test patterns.
//
// # Fixtures
//
// The fixtures.go file builds engines ready for testing:
//
//   - NewEngine(t, opts...) - idle engine on a fresh bus, silent logger, no move delay
//   - NewGame(t, disks, opts...) - NewEngine followed by ChangeDisksCount
//   - InitialStack(n), SolvedStack(n) - expected peg layouts
//   - ApplyMoves(t, engine, moves) - plays moves through MoveDisk
//
// # Clocks
//
// The clock.go file provides GatedClock, a game.Clock whose waits only end
// when the test calls Tick, so solver runs can be observed move by move.
//
// # Recorder
//
// The recorder.go file provides Recorder, which subscribes to every engine
// notification and keeps them in delivery order.
//
// # Assertions
//
// The assertions.go file provides custom test assertions:
//
//   - AssertPegs(t, expected, actual) - compares peg layouts
//   - AssertValidPegs(t, pegs, n) - every disk once, stacks ordered
//   - AssertSolved(t, engine) - every disk on the final peg, game finished
//   - AssertHistoryLength(t, engine, n) - history length
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    engine, bus := testutil.NewGame(t, 3)
//	    rec := testutil.NewRecorder(bus)
//	    engine.MoveDisk(game.MoveArgs{Peg: 2, Disk: 0})
//	    testutil.AssertPegs(t, game.Pegs{{2, 1}, {}, {0}}, engine.Pegs())
//	    assert.Equal(t, 1, rec.Count("diskPegChanged"))
//	}
package testutil

package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/hanoi/internal/game"
)

// AssertPegs asserts that two peg layouts hold the same disks in the same
// order. Nil and empty pegs are equal.
func AssertPegs(t *testing.T, expected, actual game.Pegs) {
	t.Helper()

	for i := range expected {
		want := expected[i]
		got := actual[i]
		if len(want) == 0 && len(got) == 0 {
			continue
		}
		assert.Equal(t, want, got, "peg[%d] mismatch", i)
	}
}

// AssertValidPegs asserts that every disk in [0, n) appears exactly once and
// that each peg is ordered largest at the bottom.
func AssertValidPegs(t *testing.T, pegs game.Pegs, n int) {
	t.Helper()

	seen := make(map[int]int, n)
	for i, disks := range pegs {
		for j, d := range disks {
			seen[d]++
			assert.True(t, d >= 0 && d < n, "peg[%d] holds unknown disk %d", i, d)
			if j > 0 {
				assert.Greater(t, disks[j-1], d, "peg[%d] not ordered at position %d", i, j)
			}
		}
	}
	require.Len(t, seen, n, "disk count mismatch")
	for d, count := range seen {
		assert.Equal(t, 1, count, "disk %d appears %d times", d, count)
	}
}

// AssertSolved asserts that every disk is on the final peg and the game is
// finished.
func AssertSolved(t *testing.T, engine *game.Engine) {
	t.Helper()

	n := engine.DisksCount()
	AssertPegs(t, SolvedStack(n), engine.Pegs())
	assert.Equal(t, game.GameFinished, engine.GameCondition())
}

// AssertHistoryLength asserts the number of history entries.
func AssertHistoryLength(t *testing.T, engine *game.Engine, expected int) {
	t.Helper()
	assert.Len(t, engine.StepsHistory(), expected, "history length mismatch")
}

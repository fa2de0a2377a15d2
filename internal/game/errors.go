package game

import "errors"

// Reasons a move is rejected. MoveResult.Reason wraps one of these.
var (
	ErrSolverRunning   = errors.New("solver is running")
	ErrDiskNotFound    = errors.New("disk not found")
	ErrInvalidPeg      = errors.New("peg out of range")
	ErrSamePeg         = errors.New("source and destination pegs are the same")
	ErrNotTopDisk      = errors.New("disk is not on top of its peg")
	ErrIllegalStacking = errors.New("cannot place a disk on a smaller one")
)

// ErrInvariant marks an internal-consistency violation. The engine panics
// with an error wrapping it; callers bypassed validation or state was
// corrupted.
var ErrInvariant = errors.New("game invariant violated")

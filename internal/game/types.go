package game

// Peg indexes. Disks start on SourcePeg and the game is won when every disk
// is on FinalPeg.
const (
	SourcePeg = 0
	TempPeg   = 1
	FinalPeg  = 2

	// PegCount is the number of pegs on the board.
	PegCount = 3
)

// Default disk range and starting count.
const (
	DefaultMinDisks = 3
	DefaultMaxDisks = 10
	DefaultDisks    = 3
)

// GameCondition is the lifecycle state of a game.
type GameCondition string

const (
	// GameIdle is the state before the first reset.
	GameIdle GameCondition = "idle"
	// GameActive is normal play.
	GameActive GameCondition = "active"
	// GameFinished means every disk has arrived on FinalPeg.
	GameFinished GameCondition = "finished"
)

// SolverCondition tracks whether the solver is driving moves.
type SolverCondition string

const (
	SolverActive   SolverCondition = "active"
	SolverInactive SolverCondition = "inactive"
)

// Move is one relocation of the topmost disk of SrcPeg onto DstPeg.
type Move struct {
	SrcPeg int `json:"srcPeg"`
	DstPeg int `json:"dstPeg"`
}

// Reverse returns the move that undoes m.
func (m Move) Reverse() Move {
	return Move{SrcPeg: m.DstPeg, DstPeg: m.SrcPeg}
}

// MoveArgs asks the engine to place Disk on Peg.
type MoveArgs struct {
	Peg  int `json:"peg"`
	Disk int `json:"disk"`
}

// MoveResult reports the outcome of MoveDisk.
// Reason is nil when the move was applied.
type MoveResult struct {
	Applied bool
	Move    Move
	Reason  error
}

// Pegs holds the disk weights on each peg, bottom first.
// The last element of a peg is its topmost disk.
type Pegs [PegCount][]int

// Clone returns a deep copy.
func (p Pegs) Clone() Pegs {
	var out Pegs
	for i, disks := range p {
		out[i] = make([]int, len(disks))
		copy(out[i], disks)
	}
	return out
}

// Find returns the peg holding disk, or -1.
func (p Pegs) Find(disk int) int {
	for i, disks := range p {
		for _, d := range disks {
			if d == disk {
				return i
			}
		}
	}
	return -1
}

// Top returns the topmost disk of peg.
func (p Pegs) Top(peg int) (int, bool) {
	if peg < 0 || peg >= PegCount || len(p[peg]) == 0 {
		return 0, false
	}
	return p[peg][len(p[peg])-1], true
}

// Total returns the number of disks on the board.
func (p Pegs) Total() int {
	n := 0
	for _, disks := range p {
		n += len(disks)
	}
	return n
}

// Snapshot is a consistent copy of the engine state, taken under one lock.
type Snapshot struct {
	DisksCount      int
	CurrentStep     int
	Pegs            Pegs
	History         []Move
	GameCondition   GameCondition
	SolverCondition SolverCondition

	CanUndo          bool
	CanRedo          bool
	CanStartSolver   bool
	DisksInteractive bool
}

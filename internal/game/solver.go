package game

// Solve returns the optimal move sequence that carries n disks from src to
// dst using tmp, in the order they must be applied. n <= 0 yields nil.
func Solve(n, src, tmp, dst int) []Move {
	if n <= 0 {
		return nil
	}
	moves := make([]Move, 0, MinMoves(n))
	var step func(n, src, tmp, dst int)
	step = func(n, src, tmp, dst int) {
		if n == 1 {
			moves = append(moves, Move{SrcPeg: src, DstPeg: dst})
			return
		}
		step(n-1, src, dst, tmp)
		moves = append(moves, Move{SrcPeg: src, DstPeg: dst})
		step(n-1, tmp, src, dst)
	}
	step(n, src, tmp, dst)
	return moves
}

// MinMoves is the length of the optimal solution for n disks, 2^n - 1.
func MinMoves(n int) int {
	if n <= 0 {
		return 0
	}
	return 1<<uint(n) - 1
}

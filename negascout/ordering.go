package negascout

import (
	"math/bits"
	"slices"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/movegen"
)

// orderMoves appends the moves in mob to moves, best candidates first.
func (s *Solver) orderMoves(pos board.Position, mob uint64, remaining int, moves []int) []int {
	switch {
	case !s.orderingOptim:
		return appendSquares(moves, mob)
	case remaining <= ShallowPlies:
		return staticOrder(mob, moves)
	}
	return fastestFirst(pos, mob, moves)
}

// staticOrder puts corners first and the cells next to corners (C and X
// squares) last.
func staticOrder(mob uint64, moves []int) []int {
	moves = appendSquares(moves, mob&board.CornerMask)
	moves = appendSquares(moves, mob&board.RegularMask)
	return appendSquares(moves, mob&board.CXMask)
}

// fastestFirst sorts the moves by how many replies they leave the
// opponent, fewest first. Ties keep cell order.
func fastestFirst(pos board.Position, mob uint64, moves []int) []int {
	var replies [board.NumSquares]int
	moves = appendSquares(moves, mob)
	for _, mv := range moves {
		replies[mv] = movegen.NumMoves(movegen.Apply(pos, mv))
	}
	slices.SortStableFunc(moves, func(a, b int) int {
		return replies[a] - replies[b]
	})
	return moves
}

func appendSquares(moves []int, mask uint64) []int {
	for mask != 0 {
		moves = append(moves, bits.TrailingZeros64(mask))
		mask &= mask - 1
	}
	return moves
}

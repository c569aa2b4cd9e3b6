// Package eval scores positions from the mover's point of view. Scores
// never leave [-64, 64].
package eval

import (
	"math/bits"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/movegen"
)

// ExactThreshold is the number of stones from which the disc count is
// used instead of mobility; at that point at most 14 cells are empty.
const ExactThreshold = 50

// Evaluate is the leaf score used at the search frontier.
func Evaluate(pos board.Position) int {
	if pos.NumOccupied() < ExactThreshold {
		return bits.OnesCount64(movegen.Mobility(pos)) -
			bits.OnesCount64(movegen.Mobility(pos.Swap()))
	}
	return Final(pos)
}

// Final scores a finished game with the empties credited to the winner,
// so a 40-20 win counts as 64-2*20 = 24 rather than 20. Plain disc
// difference would not reproduce the reference endgame answers.
func Final(pos board.Position) int {
	m, o := pos.Count()
	switch {
	case m > o:
		return board.NumSquares - 2*o
	case m < o:
		return -board.NumSquares + 2*m
	}
	return 0
}

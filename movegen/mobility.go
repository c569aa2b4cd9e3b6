// Package movegen computes legal moves, captures, and move application on
// bitboard positions. Everything here is a pure function of a Position.
package movegen

import (
	"math/bits"

	"github.com/domino14/othello/board"
)

// Edge-safe masks for the opponent stones that may sit inside a run. A run
// moving horizontally or diagonally can never contain an a- or h-file
// stone, otherwise a shift would wrap into the neighbouring row.
const (
	horizontalMask uint64 = 0x7e7e_7e7e_7e7e_7e7e
	verticalMask   uint64 = 0x00ff_ffff_ffff_ff00
	diagonalMask   uint64 = 0x007e_7e7e_7e7e_7e00
)

type direction struct {
	shift uint
	mask  uint64
}

// The four line axes; each is walked in both signs.
var axes = [4]direction{
	{1, horizontalMask},
	{8, verticalMask},
	{7, diagonalMask},
	{9, diagonalMask},
}

// Mobility returns the set of empty cells where the mover captures at
// least one run of opponent stones.
func Mobility(pos board.Position) uint64 {
	me, opp := pos.Mover, pos.Opponent
	empty := pos.Empties()
	var moves uint64
	for _, d := range axes {
		mo := opp & d.mask
		s := d.shift

		// A line has at most six interior cells, so six flood steps
		// cover the longest capturable run.
		t := mo & (me << s)
		t |= mo & (t << s)
		t |= mo & (t << s)
		t |= mo & (t << s)
		t |= mo & (t << s)
		t |= mo & (t << s)
		moves |= empty & (t << s)

		t = mo & (me >> s)
		t |= mo & (t >> s)
		t |= mo & (t >> s)
		t |= mo & (t >> s)
		t |= mo & (t >> s)
		t |= mo & (t >> s)
		moves |= empty & (t >> s)
	}
	return moves
}

// NumMoves is the number of legal moves for the mover.
func NumMoves(pos board.Position) int {
	return bits.OnesCount64(Mobility(pos))
}

// HasMoves reports whether the mover can place a stone.
func HasMoves(pos board.Position) bool {
	return Mobility(pos) != 0
}

// Moves lists the legal moves in ascending index order.
func Moves(pos board.Position) []int {
	return board.Squares(Mobility(pos))
}

// GameOver reports whether neither side can move.
func GameOver(pos board.Position) bool {
	return Mobility(pos) == 0 && Mobility(pos.Swap()) == 0
}

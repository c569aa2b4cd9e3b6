// Package board holds the bitboard representation of an 8x8 reversi
// position, along with the text formats used to exchange it.
package board

import (
	"math/bits"
)

const (
	// Dim is the number of rows (and columns) on the board.
	Dim = 8
	// NumSquares is the number of cells; a cell index is row*Dim + col.
	NumSquares = Dim * Dim
)

// Masks for square classes, used by move ordering and display.
const (
	CornerMask  uint64 = 0x8100_0000_0000_0081
	CXMask      uint64 = 0x42C3_0000_0000_C342
	RegularMask uint64 = ^(CornerMask | CXMask)
)

// Position is an immutable board value. Mover holds the stones of the side
// to act and Opponent the other side's stones. Whose turn it is never gets
// stored; a pass is just Swap.
type Position struct {
	Mover    uint64
	Opponent uint64
}

// Initial returns the layout every test vector in this repository is
// written against: one mover stone on d4 and opponent stones on e4, d5,
// e5 and f5.
func Initial() Position {
	return Position{
		Mover:    1 << 27,
		Opponent: 1<<28 | 7<<35,
	}
}

// Standard returns the textbook four-stone opening, dark to move.
func Standard() Position {
	return Position{
		Mover:    1<<28 | 1<<35,
		Opponent: 1<<27 | 1<<36,
	}
}

// Swap hands the turn to the other side.
func (p Position) Swap() Position {
	return Position{Mover: p.Opponent, Opponent: p.Mover}
}

// Occupied is the set of cells holding a stone.
func (p Position) Occupied() uint64 {
	return p.Mover | p.Opponent
}

// Empties is the set of free cells.
func (p Position) Empties() uint64 {
	return ^(p.Mover | p.Opponent)
}

func (p Position) NumEmpties() int {
	return bits.OnesCount64(p.Empties())
}

func (p Position) NumOccupied() int {
	return bits.OnesCount64(p.Occupied())
}

// Count returns the stone counts for the mover and the opponent.
func (p Position) Count() (mover, opponent int) {
	return bits.OnesCount64(p.Mover), bits.OnesCount64(p.Opponent)
}

// Valid reports whether no cell is claimed by both sides.
func (p Position) Valid() bool {
	return p.Mover&p.Opponent == 0
}

// Squares returns the indices of the set bits of mask, lowest first.
func Squares(mask uint64) []int {
	sqs := make([]int, 0, bits.OnesCount64(mask))
	for mask != 0 {
		sqs = append(sqs, bits.TrailingZeros64(mask))
		mask &= mask - 1
	}
	return sqs
}

// Bit returns the single-bit mask for a cell index.
func Bit(idx int) uint64 {
	return 1 << uint(idx)
}

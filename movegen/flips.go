package movegen

import (
	"errors"
	"fmt"

	"github.com/domino14/othello/board"
)

var ErrIllegalMove = errors.New("illegal move")

// Flips returns the opponent stones captured by the mover playing idx. It
// walks outward in each of the eight directions over opponent stones and
// keeps the run only when the walk ends on one of the mover's stones.
func Flips(pos board.Position, idx int) uint64 {
	me, opp := pos.Mover, pos.Opponent
	start := board.Bit(idx)
	var flips uint64
	for _, d := range axes {
		mo := opp & d.mask
		s := d.shift

		var run uint64
		x := start << s
		for x&mo != 0 {
			run |= x
			x <<= s
		}
		if x&me != 0 {
			flips |= run
		}

		run = 0
		x = start >> s
		for x&mo != 0 {
			run |= x
			x >>= s
		}
		if x&me != 0 {
			flips |= run
		}
	}
	return flips
}

// Apply plays idx for the mover and returns the resulting position from
// the point of view of the other side. A cell is legal exactly when it is
// empty and captures something. Playing an illegal cell panics. The check
// costs one occupancy test on top of the flips the move needs anyway.
func Apply(pos board.Position, idx int) board.Position {
	f := Flips(pos, idx)
	if f == 0 || pos.Occupied()&board.Bit(idx) != 0 {
		panic(fmt.Errorf("%w: %s in %s", ErrIllegalMove, board.IndexToCoord(idx), pos))
	}
	return apply(pos, idx, f)
}

// PlayMove is the non-panicking form of Apply, for callers holding user
// input.
func PlayMove(pos board.Position, idx int) (board.Position, error) {
	if idx < 0 || idx >= board.NumSquares || pos.Occupied()&board.Bit(idx) != 0 {
		return pos, fmt.Errorf("%w: %s", ErrIllegalMove, board.IndexToCoord(idx))
	}
	f := Flips(pos, idx)
	if f == 0 {
		return pos, fmt.Errorf("%w: %s captures nothing", ErrIllegalMove, board.IndexToCoord(idx))
	}
	return apply(pos, idx, f), nil
}

func apply(pos board.Position, idx int, f uint64) board.Position {
	return board.Position{
		Mover:    pos.Opponent &^ f,
		Opponent: pos.Mover | f | board.Bit(idx),
	}
}

// Pass hands the turn over without placing a stone. It is only legal when
// the mover has no move, which PlayPass checks.
func Pass(pos board.Position) board.Position {
	return pos.Swap()
}

// PlayPass is the checked form of Pass.
func PlayPass(pos board.Position) (board.Position, error) {
	if HasMoves(pos) {
		return pos, fmt.Errorf("%w: cannot pass while moves remain", ErrIllegalMove)
	}
	return pos.Swap(), nil
}

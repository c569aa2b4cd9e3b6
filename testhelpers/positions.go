package testhelpers

import (
	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/movegen"
)

// RandomPosition plays random legal moves from the initial layout until
// empties cells are left or the game ends, passing when forced to.
func RandomPosition(empties int) board.Position {
	pos := board.Initial()
	for pos.NumEmpties() > empties {
		next, ok := RandomStep(pos)
		if !ok {
			break
		}
		pos = next
	}
	return pos
}

// RandomStep plays one random legal move, or passes if the mover is stuck.
// It reports false when neither side can move.
func RandomStep(pos board.Position) (board.Position, bool) {
	moves := movegen.Moves(pos)
	if len(moves) == 0 {
		passed := pos.Swap()
		if !movegen.HasMoves(passed) {
			return pos, false
		}
		return passed, true
	}
	return movegen.Apply(pos, moves[frand.Intn(len(moves))]), true
}

// RandomPositions returns n positions with the given number of empties
// where the mover still has a move.
func RandomPositions(n, empties int) []board.Position {
	positions := make([]board.Position, 0, n)
	for len(positions) < n {
		pos := RandomPosition(empties)
		if movegen.HasMoves(pos) {
			positions = append(positions, pos)
		}
	}
	return positions
}

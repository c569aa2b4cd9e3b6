package board

import (
	"errors"
	"fmt"
	"strings"
)

// Characters of a board expression.
const (
	MoverChar    = 'X'
	OpponentChar = 'O'
	EmptyChar    = '-'
)

var (
	ErrBadLength    = errors.New("board expression must be exactly 64 characters")
	ErrBadCharacter = errors.New("board expression has an invalid character")
)

// Parse reads a 64-character board expression, row 0 first. X marks the
// mover's stones, O the opponent's, and - an empty cell. Anything else
// is rejected.
func Parse(expr string) (Position, error) {
	if len(expr) != NumSquares {
		return Position{}, fmt.Errorf("%w: got %d", ErrBadLength, len(expr))
	}
	var p Position
	for i := 0; i < NumSquares; i++ {
		switch expr[i] {
		case MoverChar:
			p.Mover |= Bit(i)
		case OpponentChar:
			p.Opponent |= Bit(i)
		case EmptyChar:
		default:
			return Position{}, fmt.Errorf("%w: %q at %s", ErrBadCharacter,
				expr[i], IndexToCoord(i))
		}
	}
	return p, nil
}

// MustParse is Parse for literals known to be well formed.
func MustParse(expr string) Position {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String serializes the position as a board expression. It is the exact
// inverse of Parse.
func (p Position) String() string {
	var sb strings.Builder
	sb.Grow(NumSquares)
	for i := 0; i < NumSquares; i++ {
		b := Bit(i)
		switch {
		case p.Mover&b != 0:
			sb.WriteByte(MoverChar)
		case p.Opponent&b != 0:
			sb.WriteByte(OpponentChar)
		default:
			sb.WriteByte(EmptyChar)
		}
	}
	return sb.String()
}

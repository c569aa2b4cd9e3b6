package board

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadCoordinate = errors.New("bad coordinate")

// IndexToCoord turns a cell index into a coordinate like "d3". Columns are
// the letters a-h and rows the numbers 1-8, so index 0 is a1.
func IndexToCoord(idx int) string {
	if idx < 0 || idx >= NumSquares {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'a'+idx%Dim, idx/Dim+1)
}

// CoordToIndex is the inverse of IndexToCoord; it accepts either case.
func CoordToIndex(coord string) (int, error) {
	c := strings.ToLower(strings.TrimSpace(coord))
	if len(c) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadCoordinate, coord)
	}
	col := int(c[0]) - 'a'
	row := int(c[1]) - '1'
	if col < 0 || col >= Dim || row < 0 || row >= Dim {
		return 0, fmt.Errorf("%w: %q", ErrBadCoordinate, coord)
	}
	return row*Dim + col, nil
}

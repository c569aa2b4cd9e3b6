package negascout

import (
	"fmt"

	"github.com/domino14/othello/board"
)

// NoMove is the move of a result that has none: a leaf, a pass, or a
// search that never completed.
const NoMove = -1

// SearchResult is what one search call produces.
type SearchResult struct {
	Move  int
	Score int
	// Nodes counts the leaves and probes visited to produce the result.
	Nodes uint64
	// Terminal is set when the score is the proven end-of-game value
	// rather than a depth cutoff estimate.
	Terminal bool
	// Depth is the iteration that produced the result; 0 for a forced
	// move that needed no search.
	Depth int
}

func (r SearchResult) String() string {
	return fmt.Sprintf("<move: %s (%d) score: %d nodes: %d terminal: %v depth: %d>",
		board.IndexToCoord(r.Move), r.Move, r.Score, r.Nodes, r.Terminal, r.Depth)
}

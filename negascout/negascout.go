package negascout

import (
	"context"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/movegen"
)

// search is the negamax recursion. ply counts stones placed since the
// root; a pass does not use one up. The returned score is never below α
// (fail-hard on the low side). An error means the deadline passed and the
// whole iteration is void.
func (s *Solver) search(ctx context.Context, pos board.Position, ply, maxPly, α, β int) (SearchResult, error) {
	// A full board is terminal whatever the ply count.
	if pos.Empties() == 0 {
		return SearchResult{Move: NoMove, Score: eval.Evaluate(pos), Nodes: 1, Terminal: true}, nil
	}
	if ply >= maxPly {
		return SearchResult{Move: NoMove, Score: eval.Evaluate(pos), Nodes: 1}, nil
	}

	mob := movegen.Mobility(pos)
	if mob == 0 {
		passed := pos.Swap()
		if movegen.Mobility(passed) == 0 {
			// Scored like any leaf: below ExactThreshold stones that is
			// the mobility difference, which is 0 here.
			return SearchResult{Move: NoMove, Score: eval.Evaluate(pos), Nodes: 1, Terminal: true}, nil
		}
		r, err := s.search(ctx, passed, ply, maxPly, -β, -α)
		if err != nil {
			return r, err
		}
		return SearchResult{Move: NoMove, Score: -r.Score, Nodes: r.Nodes, Terminal: r.Terminal}, nil
	}

	remaining := maxPly - ply
	var buf [maxMoves]int
	moves := s.orderMoves(pos, mob, remaining, buf[:0])

	r, err := s.searchChild(ctx, movegen.Apply(pos, moves[0]), ply, maxPly, α, β, true)
	if err != nil {
		return r, err
	}
	best := SearchResult{Move: moves[0], Score: max(-r.Score, α), Nodes: r.Nodes, Terminal: r.Terminal}
	if best.Score >= β || len(moves) == 1 {
		return best, nil
	}

	if s.parallelOptim && remaining > ShallowPlies {
		return s.fanOut(ctx, pos, moves, ply, maxPly, β, best)
	}

	for _, mv := range moves[1:] {
		if remaining > ShallowPlies {
			if err := ctx.Err(); err != nil {
				return best, err
			}
		}
		r, err := s.searchChild(ctx, movegen.Apply(pos, mv), ply, maxPly, best.Score, β, false)
		if err != nil {
			return best, err
		}
		best.Nodes += r.Nodes
		score := -r.Score
		if score > best.Score {
			best.Move = mv
			best.Score = score
			best.Terminal = r.Terminal
		}
		if score >= β {
			break // beta cut-off
		}
	}
	return best, nil
}

// searchChild searches the position after one of the node's moves and
// returns the child's result from the child's point of view. The first
// child gets the full window; later ones get a null-window probe first and
// are only searched again when the probe lands strictly inside (α, β).
func (s *Solver) searchChild(ctx context.Context, next board.Position, ply, maxPly, α, β int, first bool) (SearchResult, error) {
	if first || !s.negascoutOptim {
		return s.search(ctx, next, ply+1, maxPly, -β, -α)
	}
	probe, err := s.search(ctx, next, ply+1, maxPly, -α-1, -α)
	if err != nil {
		return probe, err
	}
	if score := -probe.Score; α < score && score < β {
		r, err := s.search(ctx, next, ply+1, maxPly, -β, -α)
		r.Nodes += probe.Nodes
		return r, err
	}
	return probe, nil
}

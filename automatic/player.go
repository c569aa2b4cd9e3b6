package automatic

import (
	"context"
	"time"

	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/movegen"
	"github.com/domino14/othello/negascout"
)

// Player picks a move for the side to act. It is only asked when that
// side has at least one legal move.
type Player interface {
	Name() string
	ChooseMove(ctx context.Context, pos board.Position) (negascout.SearchResult, error)
}

// SearchPlayer deepens iteratively with a fixed budget per move.
type SearchPlayer struct {
	name   string
	solver *negascout.Solver
	budget time.Duration
}

func NewSearchPlayer(name string, solver *negascout.Solver, budget time.Duration) *SearchPlayer {
	return &SearchPlayer{name: name, solver: solver, budget: budget}
}

func (p *SearchPlayer) Name() string {
	return p.name
}

func (p *SearchPlayer) ChooseMove(ctx context.Context, pos board.Position) (negascout.SearchResult, error) {
	return p.solver.BestMove(ctx, pos, p.budget)
}

// RandomPlayer plays uniformly among the legal moves. It is not safe for
// concurrent use.
type RandomPlayer struct {
	name string
	rng  *frand.RNG
}

func NewRandomPlayer(name string) *RandomPlayer {
	return &RandomPlayer{name: name, rng: frand.New()}
}

// NewSeededRandomPlayer returns a player whose choices are fixed by seed.
func NewSeededRandomPlayer(name string, seed [32]byte) *RandomPlayer {
	return &RandomPlayer{name: name, rng: frand.NewCustom(seed[:], 0, 0)}
}

func (p *RandomPlayer) Name() string {
	return p.name
}

func (p *RandomPlayer) ChooseMove(ctx context.Context, pos board.Position) (negascout.SearchResult, error) {
	moves := movegen.Moves(pos)
	if len(moves) == 0 {
		return negascout.SearchResult{Move: negascout.NoMove}, negascout.ErrNoLegalMoves
	}
	return negascout.SearchResult{Move: moves[p.rng.Intn(len(moves))]}, nil
}

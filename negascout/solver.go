// Package negascout searches reversi positions for the best move, either to
// the end of the game or iteratively deepening under a time budget.
package negascout

import (
	"context"
	"errors"
	"math/bits"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/movegen"
)

const (
	// Infinity bounds the full search window; real scores stay in [-64, 64].
	Infinity = 127

	DefaultMinDepth = 5
	DefaultMaxDepth = 20

	// ShallowPlies is the number of remaining plies at or below which a
	// node uses static ordering, never looks at the clock, and never forks.
	ShallowPlies = 6

	// maxMoves is a capacity hint for move lists.
	maxMoves = 32
)

var (
	ErrNoLegalMoves = errors.New("no legal moves; the mover has to pass")
)

type Solver struct {
	negascoutOptim bool
	orderingOptim  bool
	parallelOptim  bool

	threads  int
	minDepth int
	maxDepth int

	// workers bounds the goroutines spawned by all fan-outs of a search.
	// A sibling that cannot get a slot runs on the caller's goroutine.
	workers *semaphore.Weighted
}

// NewSolver returns a sequential solver with every optimization on.
func NewSolver() *Solver {
	s := &Solver{}
	s.Init()
	return s
}

// Init resets the solver to its defaults.
func (s *Solver) Init() {
	s.negascoutOptim = true
	s.orderingOptim = true
	s.minDepth = DefaultMinDepth
	s.maxDepth = DefaultMaxDepth
	s.SetThreads(1)
}

// Configure applies the search settings of cfg.
func (s *Solver) Configure(cfg *config.Config) {
	s.SetThreads(cfg.GetInt(config.ConfigThreads))
	s.SetDepthRange(cfg.GetInt(config.ConfigSearchMinDepth),
		cfg.GetInt(config.ConfigSearchMaxDepth))
}

func (s *Solver) SetThreads(threads int) {
	switch {
	case threads < 2:
		s.threads = 1
		s.parallelOptim = false
		s.workers = nil
	default:
		s.threads = threads
		s.parallelOptim = true
		s.workers = semaphore.NewWeighted(int64(threads - 1))
	}
}

func (s *Solver) Threads() int {
	return s.threads
}

// SetNegascoutOptim turns the null-window probes on or off. Off, every
// child is searched with the full window: plain alpha-beta.
func (s *Solver) SetNegascoutOptim(n bool) {
	s.negascoutOptim = n
}

// SetOrderingOptim turns move ordering on or off. Off, moves are tried in
// ascending cell order.
func (s *Solver) SetOrderingOptim(o bool) {
	s.orderingOptim = o
}

// SetDepthRange sets the first and last depth of the iterative deepening
// loop used by BestMove.
func (s *Solver) SetDepthRange(minDepth, maxDepth int) {
	if minDepth < 1 {
		minDepth = 1
	}
	if maxDepth < minDepth {
		maxDepth = minDepth
	}
	s.minDepth = minDepth
	s.maxDepth = maxDepth
}

// ExactSolve searches pos to the end of the game. The result is always
// terminal. An error is only returned if ctx is cancelled.
func (s *Solver) ExactSolve(ctx context.Context, pos board.Position) (SearchResult, error) {
	tstart := time.Now()
	maxPly := pos.NumEmpties() + 1
	log.Debug().Int("empties", pos.NumEmpties()).Int("threads", s.threads).
		Str("position", pos.String()).Msg("exact-solve-config")

	r, err := s.search(ctx, pos, 0, maxPly, -Infinity, Infinity)
	if err != nil {
		return SearchResult{Move: NoMove}, err
	}
	r.Depth = maxPly
	elapsed := time.Since(tstart)
	log.Info().
		Str("move", board.IndexToCoord(r.Move)).
		Int("score", r.Score).
		Uint64("nodes", r.Nodes).
		Float64("nps", nps(r.Nodes, elapsed)).
		Float64("time-elapsed-sec", elapsed.Seconds()).
		Msg("solve-returning")
	return r, nil
}

// BestMove deepens iteratively until budget runs out and returns the result
// of the last depth that completed. A single legal move is returned
// without searching.
func (s *Solver) BestMove(ctx context.Context, pos board.Position, budget time.Duration) (SearchResult, error) {
	mob := movegen.Mobility(pos)
	if mob == 0 {
		return SearchResult{Move: NoMove}, ErrNoLegalMoves
	}
	if bits.OnesCount64(mob) == 1 {
		mv := bits.TrailingZeros64(mob)
		log.Debug().Str("move", board.IndexToCoord(mv)).Msg("forced-move")
		return SearchResult{Move: mv}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	tstart := time.Now()
	empties := pos.NumEmpties()
	first := min(s.minDepth, empties)
	last := min(s.maxDepth, empties)
	result := SearchResult{Move: NoMove}

	for depth := first; depth <= last; depth++ {
		log.Debug().Int("plies", depth).Msg("deepening-iteratively")
		r, err := s.search(ctx, pos, 0, depth, -Infinity, Infinity)
		if err != nil {
			log.Debug().Int("plies", depth).Err(err).Msg("depth-aborted")
			break
		}
		r.Depth = depth
		result = r
		log.Debug().Int("plies", depth).
			Str("move", board.IndexToCoord(r.Move)).
			Int("score", r.Score).
			Uint64("nodes", r.Nodes).
			Bool("terminal", r.Terminal).
			Msg("best-val")
		if r.Terminal {
			break
		}
	}

	if result.Move == NoMove {
		// Only reachable with a minimum depth above ShallowPlies, since
		// shallower iterations never look at the clock.
		var buf [maxMoves]int
		result = SearchResult{Move: staticOrder(mob, buf[:0])[0]}
		log.Warn().Str("move", board.IndexToCoord(result.Move)).Msg("no-depth-completed")
	}
	elapsed := time.Since(tstart)
	log.Info().
		Str("move", board.IndexToCoord(result.Move)).
		Int("score", result.Score).
		Int("depth", result.Depth).
		Bool("terminal", result.Terminal).
		Float64("time-elapsed-sec", elapsed.Seconds()).
		Msg("best-move")
	return result, nil
}

// BestMoveMillis is BestMove with a budget in milliseconds, returning only
// the move.
func (s *Solver) BestMoveMillis(ctx context.Context, pos board.Position, ms int64) (int, error) {
	r, err := s.BestMove(ctx, pos, time.Duration(ms)*time.Millisecond)
	return r.Move, err
}

func nps(nodes uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(nodes) / elapsed.Seconds()
}

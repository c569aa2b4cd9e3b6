package negascout

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/movegen"
)

// bestCell is the only state shared by the siblings of one fan-out.
type bestCell struct {
	sync.Mutex
	res SearchResult
	// order is the position in the move list of res.Move.
	order int
}

// alpha is the window floor handed to a sibling about to start. It sits one
// below the current best so that a sibling worth exactly the best comes
// back with its real score and ties can be broken by move order.
func (c *bestCell) alpha() int {
	c.Lock()
	defer c.Unlock()
	return c.res.Score - 1
}

// offer merges a finished sibling searched with floor alphaUsed and reports
// whether the node has reached β.
func (c *bestCell) offer(order, mv int, r SearchResult, alphaUsed, β int) bool {
	c.Lock()
	defer c.Unlock()
	c.res.Nodes += r.Nodes
	score := -r.Score
	earlierTie := score == c.res.Score && score > alphaUsed && order < c.order
	if score > c.res.Score || earlierTie {
		c.res.Move = mv
		c.res.Score = score
		c.res.Terminal = r.Terminal
		c.order = order
	}
	return c.res.Score >= β
}

// fanOut searches moves[1:] concurrently once the first (best ordered)
// move has been resolved into first. The move and score come out the same
// as with the sequential loop: the earliest move in order among those with
// the highest score.
func (s *Solver) fanOut(ctx context.Context, pos board.Position, moves []int,
	ply, maxPly, β int, first SearchResult) (SearchResult, error) {

	cell := &bestCell{res: first}
	var stop atomic.Bool
	var g errgroup.Group
	var inlineErr error

	for i, mv := range moves[1:] {
		if stop.Load() {
			break
		}
		if err := ctx.Err(); err != nil {
			inlineErr = err
			break
		}
		order := i + 1
		work := func() error {
			if stop.Load() {
				return nil
			}
			α := cell.alpha()
			r, err := s.searchChild(ctx, movegen.Apply(pos, mv), ply, maxPly, α, β, false)
			if err != nil {
				return err
			}
			if cell.offer(order, mv, r, α, β) {
				stop.Store(true)
			}
			return nil
		}
		if s.workers.TryAcquire(1) {
			g.Go(func() error {
				defer s.workers.Release(1)
				return work()
			})
		} else if err := work(); err != nil {
			inlineErr = err
			break
		}
	}

	err := g.Wait()
	if inlineErr != nil {
		err = inlineErr
	}
	if err != nil {
		return SearchResult{Move: NoMove}, err
	}
	return cell.res, nil
}

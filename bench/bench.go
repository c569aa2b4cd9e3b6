package bench

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/negascout"
	"github.com/domino14/othello/stats"
)

const histogramBins = 10

// Result is the outcome of exact-solving one benchmark position.
type Result struct {
	Position
	negascout.SearchResult
	Elapsed time.Duration
}

// OK reports whether the solve matched whatever the entry expects.
func (r Result) OK() bool {
	if r.Entry.Score != nil && *r.Entry.Score != r.Score {
		return false
	}
	if r.ExpectedMove >= 0 && r.ExpectedMove != r.Move {
		return false
	}
	return true
}

// NPS is the node rate of the solve.
func (r Result) NPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Nodes) / r.Elapsed.Seconds()
}

// Run exact-solves every position in turn and writes a results table
// followed by a summary to w.
func Run(ctx context.Context, solver *negascout.Solver, positions []Position, w io.Writer) ([]Result, error) {
	results := make([]Result, 0, len(positions))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tempties\tmove\tscore\texpected\tnodes\ttime\tnps\tok")

	for _, p := range positions {
		tstart := time.Now()
		sr, err := solver.ExactSolve(ctx, p.Pos)
		if err != nil {
			return results, fmt.Errorf("solving %s: %w", p.Name, err)
		}
		r := Result{Position: p, SearchResult: sr, Elapsed: time.Since(tstart)}
		results = append(results, r)
		log.Debug().Str("name", p.Name).Str("move", board.IndexToCoord(r.Move)).
			Int("score", r.Score).Bool("ok", r.OK()).Msg("bench-position-solved")

		fmt.Fprintf(tw, "%s\t%d\t%s\t%+d\t%s\t%d\t%.3fs\t%.0f\t%v\n",
			p.Name, p.Pos.NumEmpties(), board.IndexToCoord(r.Move), r.Score,
			expected(p), r.Nodes, r.Elapsed.Seconds(), r.NPS(), r.OK())
	}
	if err := tw.Flush(); err != nil {
		return results, err
	}
	return results, Summarize(results, w)
}

func expected(p Position) string {
	s := "?"
	if p.Entry.Score != nil {
		s = fmt.Sprintf("%+d", *p.Entry.Score)
	}
	if p.ExpectedMove >= 0 {
		s += " " + board.IndexToCoord(p.ExpectedMove)
	}
	return s
}

// Summarize writes totals, the node rate with a 95% confidence interval, and
// a histogram of solve times.
func Summarize(results []Result, w io.Writer) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "no results")
		return err
	}
	rate := &stats.Statistic{}
	for _, r := range results {
		rate.Push(r.NPS())
	}
	passed := lo.CountBy(results, func(r Result) bool { return r.OK() })
	nodes := lo.SumBy(results, func(r Result) uint64 { return r.Nodes })
	elapsed := lo.SumBy(results, func(r Result) time.Duration { return r.Elapsed })

	fmt.Fprintf(w, "\npositions: %d  ok: %d  failed: %d\n", len(results), passed, len(results)-passed)
	fmt.Fprintf(w, "nodes: %d  time: %.3fs\n", nodes, elapsed.Seconds())
	fmt.Fprintf(w, "nps: %.0f ± %.0f (95%%)  stdev: %.0f  min: %.0f  max: %.0f\n",
		rate.Mean(), rate.ConfidenceInterval(95), rate.Stdev(), rate.Min(), rate.Max())

	times := lo.Map(results, func(r Result, _ int) float64 {
		return r.Elapsed.Seconds()
	})
	fmt.Fprintln(w, "\nsolve time (s):")
	return histogram.Fprint(w, histogram.Hist(histogramBins, times), histogram.Linear(40))
}

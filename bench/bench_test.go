package bench

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/negascout"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestLoadDefaultSet(t *testing.T) {
	is := is.New(t)
	positions, err := Load("")
	is.NoErr(err)
	is.Equal(len(positions), 5)
	canonical := positions[0]
	is.Equal(canonical.Name, "canonical-14")
	is.Equal(canonical.Pos.NumEmpties(), 14)
	is.Equal(*canonical.Entry.Score, 18)
	is.Equal(canonical.ExpectedMove, 62)
	// random-11 has two best moves, so no move is given
	is.Equal(positions[3].ExpectedMove, -1)
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)

	_, err := Parse([]byte("positions: []\n"))
	is.True(errors.Is(err, ErrNoPositions))

	_, err = Parse([]byte("positions:\n  - name: short\n    board: XO--\n"))
	is.True(errors.Is(err, board.ErrBadLength))

	bad := "positions:\n  - name: move\n    board: \"" + strings.Repeat("-", 64) + "\"\n    move: z9\n"
	_, err = Parse([]byte(bad))
	is.True(errors.Is(err, board.ErrBadCoordinate))

	_, err = Parse([]byte("positions: {"))
	is.True(err != nil)
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "set.yaml")
	data := "positions:\n  - board: \"" + board.Initial().String() + "\"\n"
	is.NoErr(os.WriteFile(path, []byte(data), 0o644))

	positions, err := Load(path)
	is.NoErr(err)
	is.Equal(len(positions), 1)
	is.Equal(positions[0].Name, "position-1")
	is.Equal(positions[0].Pos, board.Initial())
	is.Equal(positions[0].Entry.Score, nil)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	is.True(errors.Is(err, os.ErrNotExist))
}

func TestRunDefaultSet(t *testing.T) {
	is := is.New(t)
	positions, err := Load("")
	is.NoErr(err)
	var out bytes.Buffer
	results, err := Run(context.Background(), negascout.NewSolver(), positions, &out)
	is.NoErr(err)
	is.Equal(len(results), len(positions))
	for _, r := range results {
		is.True(r.OK())
		is.True(r.Terminal)
	}
	is.Equal(results[1].Move, 49)
	is.Equal(results[1].Score, -32)
	text := out.String()
	is.True(strings.Contains(text, "canonical-14"))
	is.True(strings.Contains(text, "positions: 5  ok: 5  failed: 0"))
	is.True(strings.Contains(text, "solve time (s):"))
}

func TestResultOK(t *testing.T) {
	is := is.New(t)
	score := 4
	r := Result{
		Position:     Position{Entry: Entry{Score: &score}, ExpectedMove: 10},
		SearchResult: negascout.SearchResult{Move: 10, Score: 4, Nodes: 100},
		Elapsed:      time.Second,
	}
	is.True(r.OK())
	is.Equal(r.NPS(), 100.0)
	r.Move = 11
	is.True(!r.OK())
	r.Move = 10
	r.Score = 6
	is.True(!r.OK())
}

func TestSummarizeEmpty(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	is.NoErr(Summarize(nil, &out))
	is.Equal(out.String(), "no results\n")
}

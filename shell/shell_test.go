package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/domino14/othello/automatic"
	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/movegen"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testController() (*ShellController, *bytes.Buffer) {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTimeBudgetMs, 20)
	var out bytes.Buffer
	return newController(&cfg, &out, termenv.Ascii), &out
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay 10 -threads 4",
			&shellcmd{"autoplay", []string{"10"}, CmdOptions{"threads": {"4"}}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, CmdOptions{}},
			nil},
		{"autoplay 5 '/tmp/my log.csv' -seeds seeds.txt ",
			&shellcmd{"autoplay",
				[]string{"5", "/tmp/my log.csv"},
				CmdOptions{"seeds": {"seeds.txt"}}},
			nil,
		},
		{"autoplay 5 -threads",
			nil, errWrongOptionSyntax},
		// board expressions start with a dash when a1 is empty
		{"load --XXXXX--OOOXX-O-OOOXXOX-OXOXOXXOXXXOXXX--XOXOXX-XXXOOO--OOOOO--",
			&shellcmd{"load",
				[]string{"--XXXXX--OOOXX-O-OOOXXOX-OXOXOXXOXXXOXXX--XOXOXX-XXXOOO--OOOOO--"},
				CmdOptions{}},
			nil},
		{"load -XOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOX",
			&shellcmd{"load",
				[]string{"-XOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOXOX"},
				CmdOptions{}},
			nil},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func TestExtractFieldsUnknownOption(t *testing.T) {
	is := is.New(t)
	_, err := extractFields("autoplay 4 -games 10")
	is.True(errors.Is(err, errUnknownOption))
	_, err = extractFields("load -threads 2")
	is.True(errors.Is(err, errUnknownOption))
}

func TestNewAndShow(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	resp, err := sc.standardModeSwitch("new standard", nil)
	is.NoErr(err)
	is.Equal(sc.pos, board.Standard())
	is.True(strings.Contains(resp.message, "X (to move): 2  O: 2  empty: 60"))

	resp, err = sc.standardModeSwitch("new", nil)
	is.NoErr(err)
	is.Equal(sc.pos, board.Initial())
	is.True(strings.Contains(resp.message, "plies played: 0"))

	_, err = sc.standardModeSwitch("new fancy", nil)
	is.True(err != nil)
}

func TestMovesAndPlay(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	resp, err := sc.standardModeSwitch("moves", nil)
	is.NoErr(err)
	is.Equal(resp.message, "f4 d6 f6")

	resp, err = sc.standardModeSwitch("play F4", nil)
	is.NoErr(err)
	is.Equal(sc.pos, movegen.Apply(board.Initial(), 29))
	is.True(strings.Contains(resp.message, "plies played: 1"))

	_, err = sc.standardModeSwitch("play a1", nil)
	is.True(errors.Is(err, movegen.ErrIllegalMove))
	_, err = sc.standardModeSwitch("play z9", nil)
	is.True(errors.Is(err, board.ErrBadCoordinate))

	// legal moves exist, so passing is refused
	_, err = sc.standardModeSwitch("pass", nil)
	is.True(err != nil)
}

func TestLoad(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.standardModeSwitch("load XO-", nil)
	is.True(errors.Is(err, board.ErrBadLength))
	_, err = sc.standardModeSwitch("load "+strings.Repeat("x", 64), nil)
	is.True(errors.Is(err, board.ErrBadCharacter))

	expr := "--XXXXX--OOOXX-O-OOOXXOX-OXOXOXXOXXXOXXX--XOXOXX-XXXOOO--OOOOO--"
	_, err = sc.standardModeSwitch("load "+expr, nil)
	is.NoErr(err)
	is.Equal(sc.pos.String(), expr)

	resp, err := sc.standardModeSwitch("solve", nil)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "best move: g8  score: +18"))
	is.True(strings.Contains(resp.message, "terminal: true"))
}

func TestPassCommand(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	sc.setPosition(board.Position{Mover: board.Bit(2), Opponent: board.Bit(0) | board.Bit(1)})
	resp, err := sc.standardModeSwitch("moves", nil)
	is.NoErr(err)
	is.Equal(resp.message, "no moves: pass")
	_, err = sc.standardModeSwitch("pass", nil)
	is.NoErr(err)
	resp, err = sc.standardModeSwitch("moves", nil)
	is.NoErr(err)
	is.Equal(resp.message, "d1")
}

func TestBest(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	resp, err := sc.standardModeSwitch("best 10", nil)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "best move: f4") ||
		strings.HasPrefix(resp.message, "best move: d6") ||
		strings.HasPrefix(resp.message, "best move: f6"))

	_, err = sc.standardModeSwitch("best soon", nil)
	is.True(err != nil)
}

func TestThreads(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	resp, err := sc.standardModeSwitch("threads", nil)
	is.NoErr(err)
	is.Equal(resp.message, "threads: 1")
	resp, err = sc.standardModeSwitch("threads 3", nil)
	is.NoErr(err)
	is.Equal(resp.message, "threads: 3")
	is.Equal(sc.solver.Threads(), 3)
	_, err = sc.standardModeSwitch("threads 0", nil)
	is.True(err != nil)
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	sc.config.Set(config.ConfigSearchMinDepth, 1)
	sc.config.Set(config.ConfigSearchMaxDepth, 2)
	out := filepath.Join(t.TempDir(), "games.csv")

	_, err := sc.standardModeSwitch("autoplay stop", nil)
	is.True(err != nil)

	resp, err := sc.standardModeSwitch("autoplay 2 "+out+" -threads 2", nil)
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "playing 2 games on 2 threads"))
	<-sc.autoplayDone
	sc.Cleanup()

	summary, err := automatic.AnalyzeLogFile(automatic.GamesFilename(out))
	is.NoErr(err)
	is.True(strings.Contains(summary, "Games played: 2\n"))
}

func TestBenchCommand(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	path := filepath.Join(t.TempDir(), "set.yaml")
	data := "positions:\n" +
		"  - name: forced\n" +
		"    board: \"XXXXXOOO-XXXOXOO-XXOXOXOOXOOOOXOOXOOOOXOOOOXOXXOO-OOOOOOOOOOOOOO\"\n" +
		"    score: -32\n" +
		"    move: b7\n"
	is.NoErr(os.WriteFile(path, []byte(data), 0o644))
	resp, err := sc.standardModeSwitch("bench "+path, nil)
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "positions: 1  ok: 1  failed: 0"))
}

func TestHelpAndUnknown(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	resp, err := sc.standardModeSwitch("help", nil)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Commands:"))
	resp, err = sc.standardModeSwitch("help solve", nil)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "solve"))
	resp, err = sc.standardModeSwitch("help nothing", nil)
	is.NoErr(err)
	is.Equal(resp.message, "There is no help text for the topic nothing")

	_, err = sc.standardModeSwitch("gen", nil)
	is.True(err != nil)
	_, err = sc.standardModeSwitch("exit", nil)
	is.Equal(err, errQuit)
}

func TestExecute(t *testing.T) {
	is := is.New(t)
	sc, out := testController()
	sc.Execute(nil, "moves")
	is.Equal(out.String(), "f4 d6 f6\n")
	out.Reset()
	sc.Execute(nil, "play h8")
	is.True(strings.HasPrefix(out.String(), "Error: "))
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	c := NewShellCompleter(sc)

	line := []rune("so")
	got, n := c.Do(line, len(line))
	is.Equal(n, 2)
	is.Equal(got, [][]rune{[]rune("lve ")})

	line = []rune("play ")
	got, n = c.Do(line, len(line))
	is.Equal(n, 0)
	is.Equal(len(got), 3)

	line = []rune("autoplay 4 -th")
	got, n = c.Do(line, len(line))
	is.Equal(n, 3)
	is.Equal(got, [][]rune{[]rune("reads ")})
}

func TestScript(t *testing.T) {
	is := is.New(t)
	sc, out := testController()
	path := filepath.Join(t.TempDir(), "solve.lua")
	script := `
local boards = {
  "--XXXXX--OOOXX-O-OOOXXOX-OXOXOXXOXXXOXXX--XOXOXX-XXXOOO--OOOOO--",
  "XXXXXOOO-XXXOXOO-XXOXOXOOXOOOOXOOXOOOOXOOOOXOXXOO-OOOOOOOOOOOOOO",
}
for _, b in ipairs(boards) do
  othello_load(b)
  othello_print(othello_solve(""))
end
othello_new("")
othello_print(othello_moves(""))
othello_print(othello_play("h8"))
`
	is.NoErr(os.WriteFile(path, []byte(script), 0o644))

	resp, err := sc.standardModeSwitch("script "+path, nil)
	is.NoErr(err)
	is.Equal(resp.message, "script "+path+" done")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	is.Equal(len(lines), 4)
	is.True(strings.HasPrefix(lines[0], "best move: g8  score: +18"))
	is.True(strings.HasPrefix(lines[1], "best move: b7  score: -32"))
	is.Equal(lines[2], "f4 d6 f6")
	is.True(strings.HasPrefix(lines[3], "ERROR: "))
	is.Equal(sc.pos, board.Initial())
}

func TestScriptErrors(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.standardModeSwitch("script", nil)
	is.True(err != nil)

	path := filepath.Join(t.TempDir(), "broken.lua")
	is.NoErr(os.WriteFile(path, []byte("othello_load(("), 0o644))
	_, err = sc.standardModeSwitch("script "+path, nil)
	is.True(err != nil)
}

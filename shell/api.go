package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/othello/automatic"
	"github.com/domino14/othello/bench"
	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/movegen"
	"github.com/domino14/othello/negascout"
)

const defaultAutoplayFile = "/tmp/autoplay.csv"

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage()), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}

func (sc *ShellController) setPosition(pos board.Position) {
	sc.pos = pos
	sc.plies = 0
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	switch {
	case len(cmd.args) == 0:
		sc.setPosition(board.Initial())
	case cmd.args[0] == "standard":
		sc.setPosition(board.Standard())
	default:
		return nil, errors.New("usage: new [standard]")
	}
	return sc.show(cmd)
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <64-character board>")
	}
	pos, err := board.Parse(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.setPosition(pos)
	return sc.show(cmd)
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	text := sc.pos.ToDisplayText(sc.profile, movegen.Mobility(sc.pos))
	text += fmt.Sprintf("   plies played: %d\n", sc.plies)
	if movegen.GameOver(sc.pos) {
		text += "   game over\n"
	}
	return msg(text), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	moves := movegen.Moves(sc.pos)
	if len(moves) == 0 {
		if movegen.GameOver(sc.pos) {
			return msg("no moves: the game is over"), nil
		}
		return msg("no moves: pass"), nil
	}
	coords := lo.Map(moves, func(mv int, _ int) string {
		return board.IndexToCoord(mv)
	})
	return msg(strings.Join(coords, " ")), nil
}

// parseMove accepts a coordinate like d3 or a cell index.
func parseMove(s string) (int, error) {
	if idx, err := strconv.Atoi(s); err == nil {
		return idx, nil
	}
	return board.CoordToIndex(s)
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <coord|index>")
	}
	mv, err := parseMove(cmd.args[0])
	if err != nil {
		return nil, err
	}
	next, err := movegen.PlayMove(sc.pos, mv)
	if err != nil {
		return nil, err
	}
	sc.pos = next
	sc.plies++
	return sc.show(cmd)
}

func (sc *ShellController) pass(cmd *shellcmd) (*Response, error) {
	next, err := movegen.PlayPass(sc.pos)
	if err != nil {
		return nil, err
	}
	sc.pos = next
	sc.plies++
	return sc.show(cmd)
}

func describe(r negascout.SearchResult) string {
	return fmt.Sprintf("best move: %s  score: %+d  depth: %d  nodes: %d  terminal: %v",
		board.IndexToCoord(r.Move), r.Score, r.Depth, r.Nodes, r.Terminal)
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	budget := sc.config.TimeBudget()
	if len(cmd.args) > 0 {
		ms, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		budget = time.Duration(ms) * time.Millisecond
	}
	r, err := sc.solver.BestMove(context.Background(), sc.pos, budget)
	if err != nil {
		return nil, err
	}
	return msg(describe(r)), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if n := sc.pos.NumEmpties(); n > 24 {
		log.Warn().Int("empties", n).Msg("exact-solve-may-take-very-long")
	}
	r, err := sc.solver.ExactSolve(context.Background(), sc.pos)
	if err != nil {
		return nil, err
	}
	return msg(describe(r)), nil
}

func (sc *ShellController) threads(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(fmt.Sprintf("threads: %d", sc.solver.Threads())), nil
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, errors.New("threads must be at least 1")
	}
	sc.solver.SetThreads(n)
	return msg(fmt.Sprintf("threads: %d", sc.solver.Threads())), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "stop" {
		if sc.autoplayCancel == nil {
			return nil, errors.New("no autoplay is running")
		}
		sc.Cleanup()
		return msg("autoplay stopped"), nil
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: autoplay <games> [file] | autoplay stop")
	}
	numGames, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	outFile := defaultAutoplayFile
	if len(cmd.args) > 1 {
		outFile = cmd.args[1]
	}
	threads, err := cmd.options.IntDefault("threads", max(sc.config.GetInt(config.ConfigThreads), 1))
	if err != nil {
		return nil, err
	}
	var seeds [][32]byte
	if f := cmd.options.String("seeds"); f != "" {
		seeds, err = automatic.LoadSeeds(f)
		if err != nil {
			return nil, err
		}
	}
	if sc.autoplayCancel != nil {
		select {
		case <-sc.autoplayDone:
			sc.autoplayCancel()
			sc.autoplayCancel = nil
		default:
			return nil, automatic.ErrAlreadyPlaying
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done, err := automatic.StartCompVCompGames(ctx, sc.config, numGames, threads, outFile, seeds)
	if err != nil {
		cancel()
		return nil, err
	}
	sc.autoplayCancel = cancel
	sc.autoplayDone = done
	return msg(fmt.Sprintf("playing %d games on %d threads; turns go to %s and games to %s",
		numGames, threads, outFile, automatic.GamesFilename(outFile))), nil
}

func (sc *ShellController) bench(cmd *shellcmd) (*Response, error) {
	path := sc.config.GetString(config.ConfigBenchFile)
	if len(cmd.args) > 0 {
		path = cmd.args[0]
	}
	positions, err := bench.Load(path)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	results, err := bench.Run(context.Background(), sc.solver, positions, &sb)
	if err != nil {
		return nil, err
	}
	failed := lo.Filter(results, func(r bench.Result, _ int) bool { return !r.OK() })
	for _, r := range failed {
		log.Warn().Str("name", r.Name).Str("move", board.IndexToCoord(r.Move)).
			Int("score", r.Score).Msg("bench-mismatch")
	}
	return msg(sb.String()), nil
}

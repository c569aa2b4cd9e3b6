// Package automatic plays computer-vs-computer games, logging every turn,
// so engine settings can be compared over many games.
package automatic

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/bits"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/movegen"
	"github.com/domino14/othello/negascout"
)

const (
	SearchPlayerName = "negascout"
	RandomPlayerName = "random"

	TurnLogHeader = "playerID,gameID,turn,move,flips,moverDiscs,opponentDiscs,empties,score,depth,nodes\n"
	GameLogHeader = "gameID,p1,p2,p1discs,p2discs,first,turns\n"
)

// GameResult is the outcome of one finished game.
type GameResult struct {
	GameID string
	// Discs holds the final disc counts per player, with the empty cells
	// going to the winner or split on a draw.
	Discs [2]int
	// Winner is the index of the winning player, or -1 for a draw.
	Winner int
	First  int
	Turns  int
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	config      *config.Config
	players     [2]Player
	opening     Player
	randomPlies int

	logchan  chan string
	gamechan chan string

	pos    board.Position
	onTurn int
	first  int
	turn   int
	gameID string
}

// NewGameRunner returns a runner pitting two search players configured from
// cfg against each other. Each runner uses sequential solvers.
func NewGameRunner(logchan chan string, cfg *config.Config) *GameRunner {
	r := &GameRunner{logchan: logchan, config: cfg}
	r.Init(r.newSearchPlayer(SearchPlayerName+"-1"), r.newSearchPlayer(SearchPlayerName+"-2"))
	return r
}

func (r *GameRunner) newSearchPlayer(name string) *SearchPlayer {
	s := negascout.NewSolver()
	s.Configure(r.config)
	s.SetThreads(1)
	return NewSearchPlayer(name, s, r.config.TimeBudget())
}

// Init sets the players. Player one moves first in the next game.
func (r *GameRunner) Init(p1, p2 Player) {
	r.players = [2]Player{p1, p2}
	r.opening = NewRandomPlayer(RandomPlayerName)
	r.randomPlies = r.config.GetInt(config.ConfigAutoplayRandomPlies)
	r.first = 0
}

// SetOpeningSeed makes the random opening plies of the following games
// reproducible.
func (r *GameRunner) SetOpeningSeed(seed [32]byte) {
	r.opening = NewSeededRandomPlayer(RandomPlayerName, seed)
}

// SetRandomPlies sets how many opening plies are played at random.
func (r *GameRunner) SetRandomPlies(n int) {
	r.randomPlies = n
}

// StartGame sets up the standard opening. Players alternate going first
// from one game to the next.
func (r *GameRunner) StartGame() {
	r.pos = board.Standard()
	r.onTurn = r.first
	r.turn = 0
	r.gameID = hex.EncodeToString(frand.Bytes(6))
	r.first = 1 - r.first
}

// Position is the current position, from the view of the player on turn.
func (r *GameRunner) Position() board.Position {
	return r.pos
}

func (r *GameRunner) PlayerOnTurn() int {
	return r.onTurn
}

func (r *GameRunner) Playing() bool {
	return !movegen.GameOver(r.pos)
}

// PlayGame starts a game and plays it out.
func (r *GameRunner) PlayGame(ctx context.Context) (GameResult, error) {
	r.StartGame()
	first := r.onTurn
	for r.Playing() {
		if err := r.PlayTurn(ctx); err != nil {
			return GameResult{}, err
		}
	}
	res := r.result(first)
	log.Debug().Str("game", res.GameID).Ints("discs", res.Discs[:]).
		Int("winner", res.Winner).Msg("game-over")
	if r.gamechan != nil {
		r.gamechan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v\n",
			res.GameID,
			r.players[0].Name(),
			r.players[1].Name(),
			res.Discs[0],
			res.Discs[1],
			r.players[res.First].Name(),
			res.Turns)
	}
	return res, nil
}

// PlayTurn plays one move, or passes when the player on turn has none.
func (r *GameRunner) PlayTurn(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	playerIdx := r.onTurn
	before := r.pos
	var choice negascout.SearchResult

	if !movegen.HasMoves(r.pos) {
		next, err := movegen.PlayPass(r.pos)
		if err != nil {
			return err
		}
		r.pos = next
		choice = negascout.SearchResult{Move: negascout.NoMove}
	} else {
		p := r.players[playerIdx]
		if r.turn < r.randomPlies {
			p = r.opening
		}
		var err error
		choice, err = p.ChooseMove(ctx, r.pos)
		if err != nil {
			return fmt.Errorf("%s choosing a move: %w", p.Name(), err)
		}
		next, err := movegen.PlayMove(r.pos, choice.Move)
		if err != nil {
			return fmt.Errorf("%s played %s: %w", p.Name(), board.IndexToCoord(choice.Move), err)
		}
		r.pos = next
	}
	r.turn++
	r.onTurn = 1 - r.onTurn

	if r.logchan != nil {
		moveStr := "pass"
		flips := 0
		if choice.Move != negascout.NoMove {
			moveStr = board.IndexToCoord(choice.Move)
			flips = bits.OnesCount64(movegen.Flips(before, choice.Move))
		}
		// r.pos is now from the opponent's view.
		opp, mover := r.pos.Count()
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v,%v,%v,%v\n",
			r.players[playerIdx].Name(),
			r.gameID,
			r.turn,
			moveStr,
			flips,
			mover,
			opp,
			r.pos.NumEmpties(),
			choice.Score,
			choice.Depth,
			choice.Nodes)
	}
	return nil
}

func (r *GameRunner) result(first int) GameResult {
	m, o := r.pos.Count()
	e := r.pos.NumEmpties()
	switch {
	case m > o:
		m += e
	case o > m:
		o += e
	default:
		m += e / 2
		o += e / 2
	}
	res := GameResult{GameID: r.gameID, First: first, Turns: r.turn, Winner: -1}
	res.Discs[r.onTurn] = m
	res.Discs[1-r.onTurn] = o
	switch {
	case res.Discs[0] > res.Discs[1]:
		res.Winner = 0
	case res.Discs[1] > res.Discs[0]:
		res.Winner = 1
	}
	return res
}

package automatic

// Data collection for automatic games. Allow computer vs computer games, etc.

import (
	"context"
	"errors"
	"expvar"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Job is one game to play. seed, if set, fixes the random opening.
type Job struct {
	seed *[32]byte
}

// GamesFilename is the file the per-game summary of outputFilename goes to.
func GamesFilename(outputFilename string) string {
	return strings.TrimSuffix(outputFilename, ".csv") + "_games.csv"
}

// StartCompVCompGames plays numGames games between two search players on
// threads workers. Turns are logged to outputFilename and one line per
// game to GamesFilename(outputFilename). Game i uses seeds[i] for its
// random opening when there is one. The returned channel is closed once
// both files are written.
func StartCompVCompGames(ctx context.Context, cfg *config.Config, numGames int,
	threads int, outputFilename string, seeds [][32]byte) (<-chan struct{}, error) {

	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	threads = max(threads, 1)

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return nil, err
	}
	gamefile, err := os.Create(GamesFilename(outputFilename))
	if err != nil {
		logfile.Close()
		return nil, err
	}
	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-autoplay")

	CVCCounter.Set(0)
	jobs := make(chan Job, 100)
	logChan := make(chan string, 100)
	gameChan := make(chan string, 10)
	var wg sync.WaitGroup
	wg.Add(threads)

	for i := 1; i <= threads; i++ {
		go func(i int) {
			defer wg.Done()
			r := NewGameRunner(logChan, cfg)
			r.gamechan = gameChan
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				if j.seed != nil {
					r.SetOpeningSeed(*j.seed)
				}
				if _, err := r.PlayGame(ctx); err != nil {
					log.Err(err).Int("worker", i).Msg("game-aborted")
					continue
				}
				CVCCounter.Add(1)
			}
		}(i)
	}

	go func() {
	gameLoop:
		for i := 0; i < numGames; i++ {
			j := Job{}
			if i < len(seeds) {
				j.seed = &seeds[i]
			}
			select {
			case jobs <- j:
			case <-ctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				break gameLoop
			}
			if (i+1)%100 == 0 {
				log.Info().Int("queued", i+1).Msg("queued-jobs")
			}
		}
		close(jobs)
		log.Info().Msg("Finished queueing all jobs.")
		wg.Wait()
		log.Info().Int64("games", CVCCounter.Value()).Msg("All games finished.")
		close(logChan)
		close(gameChan)
	}()

	done := make(chan struct{})
	var writers sync.WaitGroup
	writers.Add(2)
	go func() {
		defer writers.Done()
		writeLines(logfile, TurnLogHeader, logChan)
	}()
	go func() {
		defer writers.Done()
		writeLines(gamefile, GameLogHeader, gameChan)
	}()
	go func() {
		writers.Wait()
		log.Info().Str("file", outputFilename).Msg("autoplay-logs-written")
		close(done)
	}()

	return done, nil
}

func writeLines(f *os.File, header string, lines <-chan string) {
	defer f.Close()
	if _, err := f.WriteString(header); err != nil {
		log.Err(err).Str("file", f.Name()).Msg("log-write-failed")
	}
	for msg := range lines {
		if _, err := f.WriteString(msg); err != nil {
			log.Err(err).Str("file", f.Name()).Msg("log-write-failed")
		}
	}
}

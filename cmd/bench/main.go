// Command bench exact-solves a set of benchmark positions and reports the
// node rate. Usage: bench [flags] [positions.yaml]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/othello/bench"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/negascout"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	path := cfg.GetString(config.ConfigBenchFile)
	if args := cfg.Args(); len(args) > 0 {
		path = args[0]
	}
	positions, err := bench.Load(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("loading-positions")
		return 1
	}

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			log.Error().Err(err).Msg("could not create CPU profile")
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Error().Err(err).Msg("could not start CPU profile")
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	solver := negascout.NewSolver()
	solver.Configure(cfg)
	log.Info().Int("positions", len(positions)).Int("threads", solver.Threads()).Msg("bench-starting")

	results, err := bench.Run(ctx, solver, positions, os.Stdout)
	if err != nil {
		log.Error().Err(err).Msg("bench-interrupted")
		return 1
	}
	if failed := lo.CountBy(results, func(r bench.Result) bool { return !r.OK() }); failed > 0 {
		log.Error().Int("failed", failed).Msg("bench-mismatches")
		return 1
	}
	return 0
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/pgneval/analysis"
	"github.com/daystram/pgneval/pgn"
	"github.com/daystram/pgneval/storage"
	"github.com/daystram/pgneval/uci"
)

type analyzeOptions struct {
	engine    string
	args      []string
	depth     int
	threshold float64
	threads   int
	timeout   time.Duration
	dbDir     string
}

func analyze(games []pgn.Game, opts *analyzeOptions, w io.Writer, logger zerolog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if opts.timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, opts.timeout)
		defer cancelTimeout()
	}

	engine, err := uci.Start(ctx, opts.engine,
		uci.WithLogger(logger.With().Str("component", "uci").Logger()),
		uci.WithArgs(opts.args...),
		uci.WithSetOption("Threads", strconv.Itoa(opts.threads)),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Warn().Err(err).Msg("engine did not stop cleanly")
		}
	}()
	if err := engine.Handshake(ctx); err != nil {
		return err
	}

	cfg := &analysis.AnalyzerConfig{
		Evaluator:        engine,
		Depth:            opts.depth,
		BlunderThreshold: opts.threshold,
		Logger:           logger,
	}
	if opts.dbDir != "" {
		store, err := storage.Open(opts.dbDir, storage.WithLogger(logger))
		if err != nil {
			return err
		}
		defer store.Close()
		cfg.Cache, cfg.Saver = store, store
	}
	analyzer := analysis.NewAnalyzer(cfg)

	var failed int
	for i := range games {
		g, err := analysis.ReplayGame(&games[i], analysis.WithLogger(logger))
		if err != nil {
			failed++
			logger.Error().Int("game", i+1).Err(err).Msg("replay failed, skipping analysis")
			continue
		}
		if err := engine.NewGame(ctx); err != nil {
			return err
		}
		res, err := analyzer.Analyze(ctx, g)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if err != nil {
			failed++
			logger.Error().Int("game", i+1).Err(err).Msg("analysis failed")
			continue
		}

		fmt.Fprintf(w, "[%d] %s\n", i+1, analysis.Summary(res))
		for _, p := range res.Plies {
			mark := ""
			if p.Blunder {
				mark = " ??"
			}
			fmt.Fprintf(w, "%d %s %+.2f%s\n", p.Ply, p.Move, p.Score, mark)
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d of %d games failed", failed, len(games))
	}
	return nil
}

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/daystram/pgneval/analysis"
	"github.com/daystram/pgneval/bench"
	"github.com/daystram/pgneval/board"
	"github.com/daystram/pgneval/pgn"
)

// replay prints the FEN after every ply of every game. A game that fails to
// replay is reported and the remaining games still run.
func replay(games []pgn.Game, draw bool, w io.Writer, logger zerolog.Logger) error {
	var failed int
	for i, r := range analysis.ReplayAll(games, true, analysis.WithLogger(logger)) {
		if r.Game == nil {
			failed++
			logger.Error().Int("game", i+1).Err(r.Err).Msg("replay failed")
			continue
		}
		fmt.Fprintf(w, "[%d] %s - %s %s\n", i+1, r.Game.White, r.Game.Black, r.Game.Result)
		for _, snap := range r.Game.Snapshots[1:] {
			fmt.Fprintf(w, "%d %s %s\n", snap.Ply, snap.Token, snap.FEN)
		}
		if r.Err != nil {
			failed++
			logger.Error().Int("game", i+1).Err(r.Err).Msg("replay stopped")
		}
		if draw {
			final := r.Game.Final()
			fmt.Fprintln(w, render(&final.Board))
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d of %d games failed", failed, len(games))
	}
	return nil
}

// render draws b in color, or as plain text when colors are disabled.
func render(b *board.Board) string {
	if color.NoColor {
		return b.Dump()
	}
	return b.Draw()
}

func runBench(games []pgn.Game, parallel, verbose bool) error {
	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			fmt.Println(s)
		}
	}()
	_ = bench.Replay(games, parallel, verbose, out)
	close(out)
	<-done
	return nil
}

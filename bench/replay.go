package bench

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/pgneval/analysis"
	"github.com/daystram/pgneval/board"
	"github.com/daystram/pgneval/pgn"
)

// Stats are the counters collected over a batch replay.
type Stats struct {
	Games  uint64
	Failed uint64
	Plies  uint64
	Cap    uint64
	Enp    uint64
	Cas    uint64
	Chk    uint64

	Elapsed time.Duration
}

func (s Stats) String() string {
	rate := 0
	if secs := s.Elapsed.Seconds(); secs > 0 {
		rate = int(float64(s.Plies) / secs)
	}
	return message.NewPrinter(language.English).
		Sprintf("games=%d failed=%d plies=%d rate=%dp/s cap=%d enp=%d cas=%d chk=%d (%.3fs elapsed)",
			s.Games, s.Failed, s.Plies, rate, s.Cap, s.Enp, s.Cas, s.Chk, s.Elapsed.Seconds())
}

// Replay replays every game of the archive and reports move statistics. With
// verbose set a line per game is sent to out before the summary.
func Replay(games []pgn.Game, parallel, verbose bool, out chan string) Stats {
	start := time.Now()
	results := analysis.ReplayAll(games, parallel)
	end := time.Now()

	stats := Stats{Games: uint64(len(games)), Elapsed: end.Sub(start)}
	for _, r := range results {
		if r.Err != nil {
			stats.Failed++
		}
		if r.Game == nil {
			if verbose {
				out <- fmt.Sprintf("#%d: %v", r.Index+1, r.Err)
			}
			continue
		}
		count(r.Game, &stats)
		if verbose {
			line := fmt.Sprintf("#%d %s - %s: %d", r.Index+1, r.Game.White, r.Game.Black, r.Game.Len())
			if r.Err != nil {
				line += fmt.Sprintf(" (%v)", r.Err)
			}
			out <- line
		}
	}
	out <- stats.String()
	return stats
}

func count(g *analysis.Game, stats *Stats) {
	for i := 1; i < len(g.Snapshots); i++ {
		prev, snap := g.Snapshots[i-1], g.Snapshots[i]
		mv := snap.Move
		stats.Plies++
		if mv.IsCapture {
			stats.Cap++
		}
		if mv.Piece == board.PiecePawn && mv.IsCapture && mv.To == prev.Board.EnPassant() {
			stats.Enp++
		}
		if mv.IsCastle() {
			stats.Cas++
		}
		if strings.ContainsAny(snap.Token, "+#") {
			stats.Chk++
		}
	}
}

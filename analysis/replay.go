package analysis

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/daystram/pgneval/board"
	"github.com/daystram/pgneval/notation"
	"github.com/daystram/pgneval/pgn"
)

// Snapshot is the position reached after a number of plies. Board is a value
// copy, so snapshots never change once taken.
type Snapshot struct {
	Ply   int         `json:"ply"`
	Token string      `json:"token,omitempty"`
	Move  board.Move  `json:"-"`
	FEN   string      `json:"fen"`
	Board board.Board `json:"-"`
}

// Game is a replayed game: the starting position followed by one snapshot per
// applied ply.
type Game struct {
	White  string
	Black  string
	Result string

	Snapshots []Snapshot
}

// Len returns the number of plies applied.
func (g *Game) Len() int {
	return len(g.Snapshots) - 1
}

// At returns the snapshot after n plies, n=0 being the starting position.
func (g *Game) At(n int) (Snapshot, bool) {
	if n < 0 || n >= len(g.Snapshots) {
		return Snapshot{}, false
	}
	return g.Snapshots[n], true
}

// Final returns the last snapshot.
func (g *Game) Final() Snapshot {
	return g.Snapshots[len(g.Snapshots)-1]
}

// FENs returns the FEN after every applied ply, in order.
func (g *Game) FENs() []string {
	fens := make([]string, 0, g.Len())
	for _, s := range g.Snapshots[1:] {
		fens = append(fens, s.FEN)
	}
	return fens
}

// ReplayError reports the ply that stopped a replay.
type ReplayError struct {
	Ply   int
	Token string
	Err   error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("ply %d (%s): %v", e.Ply, e.Token, e.Err)
}

func (e *ReplayError) Unwrap() error {
	return e.Err
}

type replayConfig struct {
	fen    string
	logger zerolog.Logger
}

type ReplayOption func(*replayConfig)

// WithStartFEN replays from fen instead of the standard starting position.
func WithStartFEN(fen string) ReplayOption {
	return func(cfg *replayConfig) {
		cfg.fen = fen
	}
}

func WithLogger(logger zerolog.Logger) ReplayOption {
	return func(cfg *replayConfig) {
		cfg.logger = logger
	}
}

// Replay applies tokens one after another on a fresh board. It stops at the
// first token that cannot be parsed or resolved and returns the game up to
// that point together with a *ReplayError.
func Replay(tokens []string, opts ...ReplayOption) (*Game, error) {
	cfg := &replayConfig{logger: zerolog.Nop()}
	for _, f := range opts {
		f(cfg)
	}

	b, start, err := board.NewBoard(board.WithFEN(cfg.fen))
	if err != nil {
		return nil, err
	}
	g := &Game{
		Result:    pgn.ResultUnknown,
		Snapshots: make([]Snapshot, 1, len(tokens)+1),
	}
	g.Snapshots[0] = Snapshot{Ply: start, FEN: b.FEN(start), Board: b.Clone()}

	for i, token := range tokens {
		ply := start + i
		mv, err := notation.Resolve(b, token, board.SideFromPly(ply))
		if err != nil {
			cfg.logger.Debug().Int("ply", i+1).Str("token", token).Err(err).Msg("replay stopped")
			return g, &ReplayError{Ply: i + 1, Token: token, Err: err}
		}
		g.Snapshots = append(g.Snapshots, Snapshot{
			Ply:   ply + 1,
			Token: token,
			Move:  mv,
			FEN:   b.FEN(ply + 1),
			Board: b.Clone(),
		})
	}
	return g, nil
}

// ReplayGame replays a parsed archive game and carries its players and result.
func ReplayGame(pg *pgn.Game, opts ...ReplayOption) (*Game, error) {
	if fen, ok := pg.Tags["FEN"]; ok && pg.Tags["SetUp"] == "1" {
		opts = append([]ReplayOption{WithStartFEN(fen)}, opts...)
	}
	g, err := Replay(pg.Moves, opts...)
	if g != nil {
		g.White, g.Black = pg.Players()
		g.Result = pg.Result
	}
	return g, err
}

// Result is the outcome of one game of a batch replay.
type Result struct {
	Index int
	Game  *Game
	Err   error
}

// ReplayAll replays every game, each on its own board. With parallel set every
// game runs in its own goroutine. Results keep the order of games; a failing
// game does not stop the others.
func ReplayAll(games []pgn.Game, parallel bool, opts ...ReplayOption) []Result {
	results := make([]Result, len(games))
	if !parallel {
		for i := range games {
			g, err := ReplayGame(&games[i], opts...)
			results[i] = Result{Index: i, Game: g, Err: err}
		}
		return results
	}

	var wg sync.WaitGroup
	for i := range games {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := ReplayGame(&games[i], opts...)
			results[i] = Result{Index: i, Game: g, Err: err}
		}()
	}
	wg.Wait()
	return results
}

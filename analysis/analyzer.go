package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/pgneval/board"
	"github.com/daystram/pgneval/storage"
)

const (
	DefaultDepth            = 20
	DefaultBlunderThreshold = 2.0 // pawns
)

// Evaluator scores a position in pawns from White's point of view.
type Evaluator interface {
	Evaluate(ctx context.Context, fen string, s board.Side, depth int) (float64, error)
}

// Cache stores evaluations keyed by position and depth. GetEval returns an
// error wrapping storage.ErrNotFound on a miss.
type Cache interface {
	GetEval(fen string, depth int) (float64, error)
	PutEval(fen string, depth int, score float64) error
}

// Saver persists finished analyses.
type Saver interface {
	SaveAnalysis(a *storage.Analysis) error
}

type AnalyzerConfig struct {
	Evaluator        Evaluator
	Cache            Cache
	Saver            Saver
	Depth            int
	BlunderThreshold float64
	Logger           zerolog.Logger
	Now              func() time.Time
}

type Analyzer struct {
	evaluator Evaluator
	cache     Cache
	saver     Saver
	depth     int
	threshold float64
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAnalyzer(cfg *AnalyzerConfig) *Analyzer {
	a := &Analyzer{
		evaluator: cfg.Evaluator,
		cache:     cfg.Cache,
		saver:     cfg.Saver,
		depth:     cfg.Depth,
		threshold: cfg.BlunderThreshold,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
	if a.depth <= 0 {
		a.depth = DefaultDepth
	}
	if a.threshold <= 0 {
		a.threshold = DefaultBlunderThreshold
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// Analyze scores every position of g, in ply order, and flags the plies that
// cost the mover at least the blunder threshold.
func (a *Analyzer) Analyze(ctx context.Context, g *Game) (*storage.Analysis, error) {
	res := &storage.Analysis{
		ID:        uuid.NewString(),
		CreatedAt: a.now().UTC(),
		White:     g.White,
		Black:     g.Black,
		Result:    g.Result,
		Depth:     a.depth,
		Plies:     make([]storage.PlyEval, 0, g.Len()),
	}

	prev, err := a.score(ctx, g.Snapshots[0])
	if err != nil {
		return nil, err
	}
	for _, snap := range g.Snapshots[1:] {
		score, err := a.score(ctx, snap)
		if err != nil {
			return nil, err
		}
		swing := score - prev
		// the mover is the side not to move in snap
		mover := board.SideFromPly(snap.Ply - 1)
		loss := swing
		if mover == board.SideWhite {
			loss = -swing
		}
		res.Plies = append(res.Plies, storage.PlyEval{
			Ply:     snap.Ply,
			Move:    snap.Token,
			FEN:     snap.FEN,
			Score:   score,
			Swing:   swing,
			Blunder: loss >= a.threshold,
		})
		a.logger.Debug().Int("ply", snap.Ply).Str("move", snap.Token).Float64("score", score).Msg("ply analyzed")
		prev = score
	}

	if a.saver != nil {
		if err := a.saver.SaveAnalysis(res); err != nil {
			return nil, fmt.Errorf("save analysis: %w", err)
		}
	}
	a.logger.Info().Str("id", res.ID).Str("white", res.White).Str("black", res.Black).
		Int("plies", len(res.Plies)).Msg("game analyzed")
	return res, nil
}

func (a *Analyzer) score(ctx context.Context, snap Snapshot) (float64, error) {
	if a.cache != nil {
		score, err := a.cache.GetEval(snap.FEN, a.depth)
		if err == nil {
			return score, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			a.logger.Warn().Err(err).Str("fen", snap.FEN).Msg("eval cache read failed")
		}
	}

	score, err := a.evaluator.Evaluate(ctx, snap.FEN, board.SideFromPly(snap.Ply), a.depth)
	if err != nil {
		return 0, fmt.Errorf("evaluate ply %d: %w", snap.Ply, err)
	}
	if a.cache != nil {
		if err := a.cache.PutEval(snap.FEN, a.depth, score); err != nil {
			a.logger.Warn().Err(err).Str("fen", snap.FEN).Msg("eval cache write failed")
		}
	}
	return score, nil
}

// Summary renders a one-line report of an analysis.
func Summary(res *storage.Analysis) string {
	var blundersWhite, blundersBlack int
	var maxSwing float64
	for _, p := range res.Plies {
		maxSwing = max(maxSwing, abs(p.Swing))
		if !p.Blunder {
			continue
		}
		if board.SideFromPly(p.Ply-1) == board.SideWhite {
			blundersWhite++
		} else {
			blundersBlack++
		}
	}
	return message.NewPrinter(language.English).
		Sprintf("%s - %s %s: plies=%d depth=%d blunders=%d/%d max-swing=%.2f",
			res.White, res.Black, res.Result, len(res.Plies), res.Depth, blundersWhite, blundersBlack, maxSwing)
}

func max[T constraints.Ordered](x1, x2 T) T {
	if x1 > x2 {
		return x1
	}
	return x2
}

func abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}

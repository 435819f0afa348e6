package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/daystram/pgneval/analysis"
	"github.com/daystram/pgneval/pgn"
	"github.com/daystram/pgneval/storage"
)

// Store is the read side of the analysis storage.
type Store interface {
	LoadAnalysis(id string) (*storage.Analysis, error)
	ListAnalyses() ([]storage.Analysis, error)
}

type Config struct {
	Store        Store
	Analyzer     *analysis.Analyzer
	Logger       zerolog.Logger
	AllowOrigins string
}

type server struct {
	store    Store
	analyzer *analysis.Analyzer
	logger   zerolog.Logger
}

// New returns the HTTP application. Store and Analyzer are optional; the
// routes needing them answer 503 when they are missing.
func New(cfg *Config) *fiber.App {
	s := &server{
		store:    cfg.Store,
		analyzer: cfg.Analyzer,
		logger:   cfg.Logger,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	if cfg.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: "GET, POST, OPTIONS",
		}))
	}
	app.Use(s.requestLogger())

	app.Get("/healthz", s.health)

	api := app.Group("/api")
	api.Post("/replay", s.replay)
	api.Post("/analyses", s.analyze)
	api.Get("/analyses", s.listAnalyses)
	api.Get("/analyses/:id", s.getAnalysis)
	return app
}

func (s *server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, rid)

		start := time.Now()
		err := c.Next()
		s.logger.Info().
			Str("rid", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}

func (s *server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	if code == fiber.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (s *server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

type replayRequest struct {
	Moves []string `json:"moves"`
	PGN   string   `json:"pgn"`
	FEN   string   `json:"fen"`
}

type plyResponse struct {
	Ply  int    `json:"ply"`
	Move string `json:"move"`
	FEN  string `json:"fen"`
}

type replayErrorResponse struct {
	Ply     int    `json:"ply"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type replayResponse struct {
	White  string               `json:"white"`
	Black  string               `json:"black"`
	Result string               `json:"result"`
	Start  string               `json:"start"`
	Plies  []plyResponse        `json:"plies"`
	Error  *replayErrorResponse `json:"error,omitempty"`
}

// readGame replays the game described by the request body. A nil game comes
// with a *fiber.Error; a partial game comes with its *analysis.ReplayError.
func (s *server) readGame(c *fiber.Ctx) (*analysis.Game, error) {
	var req replayRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	pg := pgn.Game{Tags: map[string]string{}, Moves: req.Moves, Result: pgn.ResultUnknown}
	if len(req.Moves) == 0 {
		if strings.TrimSpace(req.PGN) == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "moves or pgn required")
		}
		games, err := pgn.Parse(strings.NewReader(req.PGN))
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		pg = games[0]
	}
	if req.FEN != "" {
		pg.Tags["SetUp"], pg.Tags["FEN"] = "1", req.FEN
	}
	g, err := analysis.ReplayGame(&pg, analysis.WithLogger(s.logger))
	if g == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return g, err
}

func (s *server) replay(c *fiber.Ctx) error {
	g, err := s.readGame(c)
	if g == nil {
		return err
	}

	resp := replayResponse{
		White:  g.White,
		Black:  g.Black,
		Result: g.Result,
		Start:  g.Snapshots[0].FEN,
		Plies:  make([]plyResponse, 0, g.Len()),
	}
	for _, snap := range g.Snapshots[1:] {
		resp.Plies = append(resp.Plies, plyResponse{Ply: snap.Ply, Move: snap.Token, FEN: snap.FEN})
	}

	var rerr *analysis.ReplayError
	if errors.As(err, &rerr) {
		resp.Error = &replayErrorResponse{Ply: rerr.Ply, Token: rerr.Token, Message: rerr.Err.Error()}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}
	return c.JSON(resp)
}

func (s *server) analyze(c *fiber.Ctx) error {
	if s.analyzer == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "analysis disabled")
	}
	g, err := s.readGame(c)
	if g == nil {
		return err
	}
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	res, err := s.analyzer.Analyze(c.UserContext(), g)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (s *server) listAnalyses(c *fiber.Ctx) error {
	if s.store == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "storage disabled")
	}
	list, err := s.store.ListAnalyses()
	if err != nil {
		return err
	}
	if list == nil {
		list = []storage.Analysis{}
	}
	return c.JSON(list)
}

func (s *server) getAnalysis(c *fiber.Ctx) error {
	if s.store == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "storage disabled")
	}
	a, err := s.store.LoadAnalysis(c.Params("id"))
	if errors.Is(err, storage.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(a)
}

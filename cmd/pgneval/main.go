package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/pgneval/analysis"
	"github.com/daystram/pgneval/pgn"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	profile  = flag.Bool("profile", false, "serve pprof endpoint")
	verbose  = flag.Bool("v", false, "verbose logging")
	encoding = flag.String("encoding", "utf-8", "charset of the input archive, e.g. latin1")
	startFEN = flag.String("fen", "", "replay from this position instead of the starting position")

	drawRun = flag.Bool("draw", false, "draw the final position of every game")
	stepRun = flag.Bool("step", false, "step through the first game interactively")

	benchRun      = flag.Bool("bench", false, "run replay benchmark mode")
	benchParallel = flag.Bool("bench.parallel", true, "replay games in parallel in benchmark mode")

	analyzeRun       = flag.Bool("analyze", false, "run analysis mode")
	analyzeEngine    = flag.String("analyze.engine", "stockfish", "path to the UCI engine in analysis mode")
	analyzeArgs      = flag.String("analyze.args", "", "space separated arguments passed to the UCI engine")
	analyzeDepth     = flag.Int("analyze.depth", analysis.DefaultDepth, "search depth in analysis mode")
	analyzeThreshold = flag.Float64("analyze.threshold", analysis.DefaultBlunderThreshold, "swing in pawns flagged as a blunder")
	analyzeThreads   = flag.Int("analyze.threads", 1, "engine threads in analysis mode")
	analyzeTimeout   = flag.Int("analyze.timeout", 0, "analysis timeout in seconds, 0 for none")

	serveRun     = flag.Bool("serve", false, "run HTTP server mode")
	serveAddr    = flag.String("serve.addr", ":8080", "listen address in server mode")
	serveOrigins = flag.String("serve.origins", "", "allowed CORS origins in server mode")
	serveEngine  = flag.String("serve.engine", "", "path to the UCI engine enabling analyses in server mode")

	dbDir = flag.String("db", "", "database directory for cached evaluations and analyses")
)

func main() {
	flag.Parse()

	logger := newLogger(os.Stderr, *verbose)
	if *profile {
		runProfiler(logger)
	}

	err := realMain(flag.Args(), logger)
	if err != nil {
		logger.Error().Err(err).Msg("exiting")
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func runProfiler(logger zerolog.Logger) {
	go func() {
		addr := "localhost:6060"
		logger.Info().Msgf("starting pprof endpoint: http://%s/debug/pprof", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(args []string, logger zerolog.Logger) error {
	if *serveRun {
		return serve(*serveAddr, *serveOrigins, *serveEngine, *dbDir, logger)
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	games, err := loadGames(path, *encoding)
	if err != nil {
		return err
	}
	if *startFEN != "" {
		for i := range games {
			games[i].Tags["SetUp"], games[i].Tags["FEN"] = "1", *startFEN
		}
	}
	logger.Debug().Str("path", path).Int("games", len(games)).Msg("archive loaded")

	switch {
	case *benchRun:
		return runBench(games, *benchParallel, *verbose)
	case *stepRun:
		return step(&games[0], os.Stdin, os.Stdout)
	case *analyzeRun:
		return analyze(games, newAnalyzeOptions(), os.Stdout, logger)
	default:
		return replay(games, *drawRun, os.Stdout, logger)
	}
}

// newAnalyzeOptions collects the analysis mode flags.
func newAnalyzeOptions() *analyzeOptions {
	return &analyzeOptions{
		engine:    *analyzeEngine,
		args:      strings.Fields(*analyzeArgs),
		depth:     *analyzeDepth,
		threshold: *analyzeThreshold,
		threads:   *analyzeThreads,
		timeout:   time.Duration(*analyzeTimeout) * time.Second,
		dbDir:     *dbDir,
	}
}

// loadGames reads an archive from path, "-" being stdin.
func loadGames(path, charset string) ([]pgn.Game, error) {
	enc, err := pgn.LookupEncoding(charset)
	if err != nil {
		return nil, err
	}

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	games, err := pgn.Parse(pgn.NewDecodingReader(r, enc))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return games, nil
}

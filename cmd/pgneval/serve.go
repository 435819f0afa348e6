package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/pgneval/analysis"
	"github.com/daystram/pgneval/api"
	"github.com/daystram/pgneval/storage"
	"github.com/daystram/pgneval/uci"
)

const shutdownTimeout = 5 * time.Second

// serve runs the HTTP API until interrupted. Stored analyses need dbDir and
// new analyses need an engine.
func serve(addr, origins, engine, dbDir string, logger zerolog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := &api.Config{
		Logger:       logger.With().Str("component", "api").Logger(),
		AllowOrigins: origins,
	}
	var store *storage.Store
	if dbDir != "" {
		var err error
		store, err = storage.Open(dbDir, storage.WithLogger(logger), storage.WithSyncWrites(true))
		if err != nil {
			return err
		}
		defer store.Close()
		cfg.Store = store
	}
	if engine != "" {
		client, err := uci.Start(ctx, engine, uci.WithLogger(logger.With().Str("component", "uci").Logger()))
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.Handshake(ctx); err != nil {
			return err
		}
		acfg := &analysis.AnalyzerConfig{
			Evaluator: client,
			Logger:    logger,
		}
		if store != nil {
			acfg.Cache, acfg.Saver = store, store
		}
		cfg.Analyzer = analysis.NewAnalyzer(acfg)
	}
	app := api.New(cfg)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().Str("addr", addr).Bool("storage", cfg.Store != nil).Bool("analysis", cfg.Analyzer != nil).Msg("serving")
	return app.Listen(addr)
}

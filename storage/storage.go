package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound = errors.New("not found")
)

// Storage key prefixes
const (
	prefixEval     = "eval/"
	prefixAnalysis = "analysis/"
)

// PlyEval is the stored evaluation of the position reached after one ply.
type PlyEval struct {
	Ply     int     `json:"ply"`
	Move    string  `json:"move"`
	FEN     string  `json:"fen"`
	Score   float64 `json:"score"`
	Swing   float64 `json:"swing"`
	Blunder bool    `json:"blunder"`
}

// Analysis is a fully evaluated game.
type Analysis struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	White     string    `json:"white"`
	Black     string    `json:"black"`
	Result    string    `json:"result"`
	Depth     int       `json:"depth"`
	Plies     []PlyEval `json:"plies"`
}

var defaultOptions = options{
	logger: zerolog.Nop(),
}

type options struct {
	logger     zerolog.Logger
	syncWrites bool
}

type StoreOption func(*options)

func WithLogger(logger zerolog.Logger) StoreOption {
	return func(o *options) {
		o.logger = logger
	}
}

func WithSyncWrites(sync bool) StoreOption {
	return func(o *options) {
		o.syncWrites = sync
	}
}

// Store wraps BadgerDB for the evaluation cache and stored analyses.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (or creates) the database in dir.
func Open(dir string, opts ...StoreOption) (*Store, error) {
	return open(badger.DefaultOptions(dir), opts...)
}

// OpenInMemory opens a database that lives only as long as the Store.
func OpenInMemory(opts ...StoreOption) (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), opts...)
}

func open(bopts badger.Options, opts ...StoreOption) (*Store, error) {
	o := defaultOptions
	for _, f := range opts {
		f(&o)
	}
	bopts = bopts.
		WithLogger(badgerLogger{o.logger.With().Str("component", "badger").Logger()}).
		WithSyncWrites(o.syncWrites)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db, logger: o.logger}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func evalKey(fen string, depth int) []byte {
	return []byte(prefixEval + strconv.Itoa(depth) + "/" + fen)
}

// GetEval returns the cached score of fen searched to depth.
func (s *Store) GetEval(fen string, depth int) (float64, error) {
	var score float64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(evalKey(fen, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			score, err = strconv.ParseFloat(string(val), 64)
			return err
		})
	})
	return score, err
}

// PutEval caches the score of fen searched to depth.
func (s *Store) PutEval(fen string, depth int, score float64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(evalKey(fen, depth), []byte(strconv.FormatFloat(score, 'g', -1, 64)))
	})
}

// SaveAnalysis stores a, replacing any analysis with the same ID.
func (s *Store) SaveAnalysis(a *Analysis) error {
	if a.ID == "" {
		return fmt.Errorf("save analysis: missing id")
	}
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixAnalysis+a.ID), data)
	}); err != nil {
		return err
	}
	s.logger.Debug().Str("id", a.ID).Int("plies", len(a.Plies)).Msg("analysis saved")
	return nil
}

// LoadAnalysis returns the analysis stored under id.
func (s *Store) LoadAnalysis(id string) (*Analysis, error) {
	var a Analysis
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixAnalysis + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("analysis %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &a)
		})
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAnalyses returns every stored analysis, newest first.
func (s *Store) ListAnalyses() ([]Analysis, error) {
	var list []Analysis
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixAnalysis)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var a Analysis
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &a)
			}); err != nil {
				return err
			}
			list = append(list, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// badgerLogger forwards badger's internal logging to zerolog.
type badgerLogger struct {
	zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Info().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.Debug().Msgf(format, args...)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/snipperclipper/pkg/adapters/fs"
	"github.com/aretw0/snipperclipper/pkg/core"
)

// Store implements core.Storage for the document stored under Key.
// Several stores may share one *sql.DB; the caller owns and closes it.
type Store[T any] struct {
	Key    string
	db     *sql.DB
	codec  fs.Codec
	logger *slog.Logger

	mu         sync.RWMutex
	lastWrite  *time.Time
	writeCount int
}

// NewStore creates a store for key on an open database. Payloads are encoded
// as JSON, the same document shape the file backend writes.
func NewStore[T any](db *sql.DB, key string, logger *slog.Logger) (*Store[T], error) {
	if db == nil {
		return nil, errors.New("sqlite store requires an open database")
	}
	if key == "" {
		return nil, errors.New("sqlite store key cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store[T]{
		Key:    key,
		db:     db,
		codec:  fs.NewJSONCodec(false),
		logger: logger,
	}, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Load reads and decodes the row. A missing row is reported as ErrConnection
// wrapping sql.ErrNoRows, like a missing file.
func (s *Store[T]) Load(ctx context.Context) (T, error) {
	return s.load(ctx, s.db)
}

func (s *Store[T]) load(ctx context.Context, q querier) (T, error) {
	var data T
	var body []byte

	err := q.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, s.Key).Scan(&body)
	if err != nil {
		return data, fmt.Errorf("%w: read %q: %w", core.ErrConnection, s.Key, err)
	}

	if err := s.codec.Decode(body, &data); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: decode %q: %w", core.ErrSerialization, s.Key, err)
	}
	return data, nil
}

// Update encodes data and upserts the row in one transaction.
func (s *Store[T]) Update(ctx context.Context, data T) (T, error) {
	payload, err := s.codec.Encode(data)
	if err != nil {
		return data, fmt.Errorf("%w: encode %q: %w", core.ErrSerialization, s.Key, err)
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		return s.put(ctx, tx, payload)
	})
	return data, err
}

// Modify implements core.Modifier. The read and the write share one
// BEGIN IMMEDIATE transaction, which holds SQLite's writer lock throughout.
func (s *Store[T]) Modify(ctx context.Context, fn func(current T, exists bool) (T, error)) (T, error) {
	var next T
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		exists := true
		current, err := s.load(ctx, tx)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			exists = false
		}

		next, err = fn(current, exists)
		if err != nil {
			return err
		}

		payload, err := s.codec.Encode(next)
		if err != nil {
			return fmt.Errorf("%w: encode %q: %w", core.ErrSerialization, s.Key, err)
		}
		return s.put(ctx, tx, payload)
	})
	return next, err
}

func (s *Store[T]) put(ctx context.Context, tx *sql.Tx, payload []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		s.Key, payload, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("%w: write %q: %w", core.ErrIO, s.Key, err)
	}
	return nil
}

// inTx runs fn in a transaction and commits when fn succeeds. Errors that
// already carry a storage kind are returned as is; the rest are ErrIO.
func (s *Store[T]) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin %q: %w", core.ErrIO, s.Key, err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %q: %w", core.ErrIO, s.Key, err)
	}

	s.mu.Lock()
	now := time.Now()
	s.lastWrite = &now
	s.writeCount++
	s.mu.Unlock()

	s.logger.Debug("document written", "key", s.Key)
	return nil
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Key       string     `json:"key"`
	Writes    int        `json:"writes"`
	LastWrite *time.Time `json:"last_write,omitempty"`
	OpenConns int        `json:"open_conns"`
	InUse     int        `json:"in_use"`
}

// State implements introspection.Introspectable.
func (s *Store[T]) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := s.db.Stats()
	return StoreState{
		Key:       s.Key,
		Writes:    s.writeCount,
		LastWrite: s.lastWrite,
		OpenConns: stats.OpenConnections,
		InUse:     stats.InUse,
	}
}

// ComponentType implements introspection.Component.
func (s *Store[T]) ComponentType() string {
	return "sqlite"
}

var (
	_ core.Storage[core.CollectionData]  = (*Store[core.CollectionData])(nil)
	_ core.Modifier[core.CollectionData] = (*Store[core.CollectionData])(nil)
	_ introspection.Introspectable       = (*Store[struct{}])(nil)
	_ introspection.Component            = (*Store[struct{}])(nil)
)

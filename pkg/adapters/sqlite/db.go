// Package sqlite stores each aggregate as one row of a local SQLite database.
//
// The driver is modernc.org/sqlite (pure Go, no cgo). Every connection is
// opened with a busy timeout and with transactions started as
// BEGIN IMMEDIATE, so concurrent writers from several processes queue on
// SQLite's own writer lock instead of failing.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/snipperclipper/pkg/core"
)

// DefaultBusyTimeout bounds how long a write waits for another writer.
const DefaultBusyTimeout = 5 * time.Second

const schema = `CREATE TABLE IF NOT EXISTS documents (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Open opens (creating if needed) the database at path and applies the schema.
// The parent directory is created when missing.
func Open(ctx context.Context, path string, busyTimeout time.Duration) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path cannot be empty", core.ErrConnection)
	}
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: create directory for %s: %w", core.ErrConnection, path, err)
	}

	db, err := sql.Open("sqlite", dsn(path, busyTimeout))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", core.ErrConnection, path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: apply schema to %s: %w", core.ErrConnection, path, err)
	}
	return db, nil
}

func dsn(path string, busyTimeout time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

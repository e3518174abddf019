// Package kvstore provides the durable local key-value store backing
// session persistence.
package kvstore

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/musicaulas/backend/core"
	"github.com/musicaulas/backend/core/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    key   TEXT PRIMARY KEY,
    value BLOB NOT NULL
);`

type SQLiteStore struct {
	db *sqlx.DB
}

var _ session.Storage = (*SQLiteStore)(nil)

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite store")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating kv_entries table")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv_entries WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return nil, session.ErrEntryNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading kv entry")
	}
	return value, nil
}

// Write failures surface as shutdown errors: once the durable store stops
// accepting writes, the persisted session can no longer be trusted to track
// the live one.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return core.NewShutdownError(errors.Wrap(err, "writing kv entry").Error())
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return core.NewShutdownError(errors.Wrap(err, "deleting kv entry").Error())
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

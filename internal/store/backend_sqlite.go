package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "orgdir.sqlite"

// SQLiteBackend stores every collection as a row in a single SQLite table.
type SQLiteBackend struct {
	Path string
}

// NewSQLiteBackend places the database file inside dir.
func NewSQLiteBackend(dir string) SQLiteBackend {
	return SQLiteBackend{Path: filepath.Join(dir, sqliteFileName)}
}

func (s SQLiteBackend) open(ctx context.Context) (*sql.DB, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("sqlite backend: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	// WAL lets a TUI and one-shot CLI commands share the file.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS collections (
		k TEXT PRIMARY KEY,
		json TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s SQLiteBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT json FROM collections WHERE k = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(raw), true, nil
}

func (s SQLiteBackend) Put(ctx context.Context, key string, b []byte) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO collections(k, json, updated_at_unixms) VALUES(?, ?, ?)`,
		key, string(b), time.Now().UTC().UnixMilli())
	return err
}

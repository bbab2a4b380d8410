package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/brightlist/sitescout/internal/config"
	"github.com/brightlist/sitescout/internal/model"
)

// sqliteFileName is the database file created inside the cache directory.
const sqliteFileName = "sitescout.db"

// SQLiteStore is a persistent Store backed by a single SQLite file.
// It carries the same lazy-expiry, whole-entry-replace semantics as
// MemoryStore, and lets separate CLI invocations share results.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string

	ttl time.Duration
	now func() time.Time
}

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithSQLiteTTL sets the freshness window for cached entries.
func WithSQLiteTTL(ttl time.Duration) SQLiteOption {
	return func(s *SQLiteStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSQLiteClock injects the time source used for entry age checks.
func WithSQLiteClock(now func() time.Time) SQLiteOption {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// OpenSQLite opens or creates the result cache database under dir.
// The directory is created if needed. The connection pool is restricted
// to a single connection; SQLite supports only one writer, and cache
// traffic is light enough that readers do not need more.
func OpenSQLite(dir string, opts ...SQLiteOption) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, sqliteFileName)
	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		ttl:    config.DefaultCacheTTL,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return s, nil
}

// createTables creates the cache schema if it doesn't exist.
func (s *SQLiteStore) createTables() error {
	schema := `
	-- One row per (origin, company) discovery result.
	-- pages_json holds the full scored page set as JSON; created_at is
	-- a Unix timestamp checked lazily against the TTL on read.
	CREATE TABLE IF NOT EXISTS results (
		key        TEXT PRIMARY KEY,
		pages_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Get returns the cached pages for the key if present and fresh.
// Stale rows are deleted on the way out so the file does not grow
// without bound.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]model.PageRecord, bool, error) {
	var pagesJSON string
	var createdAt int64

	row := s.db.QueryRowContext(ctx,
		"SELECT pages_json, created_at FROM results WHERE key = ?", key)
	if err := row.Scan(&pagesJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if s.now().Sub(time.Unix(createdAt, 0)) >= s.ttl {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE key = ?", key); err != nil {
			return nil, false, fmt.Errorf("failed to drop stale cache entry: %w", err)
		}
		return nil, false, nil
	}

	var pages []model.PageRecord
	if err := json.Unmarshal([]byte(pagesJSON), &pages); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	return pages, true, nil
}

// Put stores the pages under the key. INSERT OR REPLACE keeps the
// whole-entry replacement atomic within a single statement.
func (s *SQLiteStore) Put(ctx context.Context, key string, pages []model.PageRecord) error {
	pagesJSON, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO results (key, pages_json, created_at) VALUES (?, ?, ?)",
		key, string(pagesJSON), s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Purge deletes every cached result and returns the number of rows
// removed.
func (s *SQLiteStore) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM results")
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return res.RowsAffected()
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

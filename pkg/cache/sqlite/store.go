// Package sqlite persists cache entries in a SQLite database so the term
// cache survives across short-lived processes such as CLI runs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-megamenu/pkg/cache"
)

const schema = `CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	written_at INTEGER NOT NULL,
	ttl_ms     INTEGER NOT NULL
)`

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger attaches a logger for best-effort cleanup failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store is a cache.Store backed by a single SQLite table.
type Store struct {
	db     *sql.DB
	now    func() time.Time
	logger zerolog.Logger
}

var _ cache.Store = (*Store)(nil)

// Open opens (or creates) the database at path and ensures the schema exists.
// Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string, options ...Option) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite cache: path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite cache: open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases coherent and serializes
	// writers without relying on busy retries.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite cache: create schema: %w", err)
	}

	store := &Store{
		db:     db,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(store)
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the stored payload unless it is missing or expired.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := cache.ValidateKey(key); err != nil {
		return nil, false, err
	}

	var (
		value     []byte
		writtenAt int64
		ttlMS     int64
	)
	row := s.db.QueryRowContext(ctx, `SELECT value, written_at, ttl_ms FROM cache_entries WHERE key = ?`, key)
	if err := row.Scan(&value, &writtenAt, &ttlMS); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("sqlite cache: get %q: %w", key, err)
	}

	entry := cache.Entry{
		Key:       key,
		Value:     value,
		WrittenAt: time.UnixMilli(writtenAt),
		TTL:       time.Duration(ttlMS) * time.Millisecond,
	}
	if entry.Expired(s.now()) {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ? AND written_at = ?`, key, writtenAt); err != nil {
			s.logger.Debug().Err(err).Str("key", key).Msg("sqlite cache: evict expired entry")
		}
		return nil, false, nil
	}
	return entry.Value, true, nil
}

// Put inserts or replaces the entry for key.
func (s *Store) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := cache.ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (key, value, written_at, ttl_ms) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, written_at = excluded.written_at, ttl_ms = excluded.ttl_ms`,
		key, value, s.now().UnixMilli(), ttl.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("sqlite cache: put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite cache: delete %q: %w", key, err)
	}
	return nil
}

// Purge removes every expired entry and returns how many rows were dropped.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE ttl_ms > 0 AND written_at + ttl_ms <= ?`,
		s.now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite cache: purge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite cache: purge rows: %w", err)
	}
	return n, nil
}

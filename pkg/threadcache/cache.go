// Package threadcache persists fetched thread contexts so repeated
// preview runs against the same post don't refetch from the platform
// APIs.
package threadcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pojntfx/sharecard/api/thread"
)

const schema = `
CREATE TABLE IF NOT EXISTS threads (
	ref        TEXT PRIMARY KEY,
	fetched_at INTEGER NOT NULL,
	payload    BLOB NOT NULL
);
`

// Cache is a sqlite-backed read-through cache of thread contexts keyed
// by post reference
type Cache struct {
	db *sql.DB
}

// Open opens (and bootstraps) the cache database at the given path
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached thread context for a reference if it is younger
// than ttl. A miss returns ok=false without an error.
func (c *Cache) Get(ctx context.Context, ref string, ttl time.Duration) (*thread.ThreadContext, bool, error) {
	var fetchedAt int64
	var payload []byte

	err := c.db.QueryRowContext(ctx,
		`SELECT fetched_at, payload FROM threads WHERE ref = ?`, ref,
	).Scan(&fetchedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if time.Since(time.Unix(fetchedAt, 0)) > ttl {
		return nil, false, nil
	}

	var tc thread.ThreadContext
	if err := json.Unmarshal(payload, &tc); err != nil {
		// Stale or corrupt payloads are treated as misses
		return nil, false, nil
	}

	return &tc, true, nil
}

// Put stores or replaces the thread context for a reference
func (c *Cache) Put(ctx context.Context, ref string, tc *thread.ThreadContext) error {
	payload, err := json.Marshal(tc)
	if err != nil {
		return fmt.Errorf("failed to encode thread context: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO threads (ref, fetched_at, payload) VALUES (?, ?, ?)
		 ON CONFLICT(ref) DO UPDATE SET fetched_at = excluded.fetched_at, payload = excluded.payload`,
		ref, time.Now().Unix(), payload,
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

// Prune deletes entries older than ttl
func (c *Cache) Prune(ctx context.Context, ttl time.Duration) error {
	cutoff := time.Now().Add(-ttl).Unix()

	if _, err := c.db.ExecContext(ctx, `DELETE FROM threads WHERE fetched_at < ?`, cutoff); err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}
	return nil
}

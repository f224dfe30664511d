// Copyright Draftwise Labs, 2026. All rights reserved.

// Package cache is a time-bounded SQLite response cache for provider
// queries. Entries are keyed by the full normalized input and expire after
// a TTL; there is no cross-request in-memory state. Failed lookups and
// failed writes degrade to a miss, never to an error for the caller.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Cache stores JSON-encoded responses with per-entry expiry.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens or creates the cache database at path.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS responses (
		key        TEXT PRIMARY KEY,
		body       TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key builds a cache key from its parts, lowercased and space-normalized.
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.Join(strings.Fields(strings.ToLower(p)), " ")
	}
	return strings.Join(normalized, "|")
}

// Get decodes the cached value for key into v. It returns false on a miss,
// an expired entry, or any storage error.
func (c *Cache) Get(key string, v any) bool {
	var body string
	var expiresAt int64
	row := c.db.QueryRow(`SELECT body, expires_at FROM responses WHERE key = ?`, key)
	if err := row.Scan(&body, &expiresAt); err != nil {
		if err != sql.ErrNoRows {
			zap.L().Debug("cache: read failed", zap.Error(err))
		}
		return false
	}
	if time.Now().Unix() >= expiresAt {
		return false
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		zap.L().Debug("cache: decoding entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Put stores v under key with the cache's TTL, overwriting any previous
// entry. Storage errors are logged and swallowed.
func (c *Cache) Put(key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		zap.L().Debug("cache: encoding entry", zap.String("key", key), zap.Error(err))
		return
	}
	expiresAt := time.Now().Add(c.ttl).Unix()
	_, err = c.db.Exec(
		`INSERT INTO responses (key, body, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, expires_at = excluded.expires_at`,
		key, string(body), expiresAt)
	if err != nil {
		zap.L().Debug("cache: write failed", zap.String("key", key), zap.Error(err))
	}
}

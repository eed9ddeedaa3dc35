package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteMedium is a persistent Medium backed by a single SQLite file.
// It is the persistent scope: identity fields and analysis lifecycle
// records written here survive restarts of the client.
//
// Design decision: We use one entries table with TEXT key and value rather
// than a table per record kind. The client stores a handful of small values
// (JSON blobs at most); a key-value shape keeps the scoped-key mechanism the
// single source of truth for data layout.
type SQLiteMedium struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures SQLiteMedium behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// OpenSQLite opens or creates the client state database in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func OpenSQLite(dbDir string, opts Options) (*SQLiteMedium, error) {
	dbPath := filepath.Join(dbDir, "brandpulse.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("state database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection avoids
	// SQLITE_BUSY between the credential and lifecycle writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	m := &SQLiteMedium{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := m.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return m, nil
}

// Close closes the database connection.
func (m *SQLiteMedium) Close() error {
	return m.db.Close()
}

// Path returns the path of the underlying database file.
func (m *SQLiteMedium) Path() string {
	return m.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (m *SQLiteMedium) createTables() error {
	schema := `
	-- Entries hold all persisted client state as scoped key-value pairs.
	CREATE TABLE IF NOT EXISTS entries (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_entries_updated ON entries(updated_at);
	`

	_, err := m.db.ExecContext(context.Background(), schema)
	return err
}

// Get returns the value stored under key.
// Read failures (closed database, corrupt file) report the value as absent.
func (m *SQLiteMedium) Get(key string) (string, bool) {
	var value string
	err := m.db.QueryRowContext(context.Background(),
		`SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores value under key. Uses UPSERT to handle duplicates.
// Write failures are swallowed: the client keeps working with in-memory
// state and simply behaves as logged-out or idle on its next read.
func (m *SQLiteMedium) Set(key, value string) {
	_, _ = m.db.ExecContext(context.Background(), `
	INSERT INTO entries (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
	`, key, value)
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *SQLiteMedium) Delete(key string) {
	_, _ = m.db.ExecContext(context.Background(),
		`DELETE FROM entries WHERE key = ?`, key)
}

// Keys returns all keys currently present.
func (m *SQLiteMedium) Keys() []string {
	rows, err := m.db.QueryContext(context.Background(),
		`SELECT key FROM entries ORDER BY key`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return keys
		}
		keys = append(keys, k)
	}
	return keys
}

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// defaultTable is the table used when no schema qualifier is configured.
const defaultTable = "error_log"

// Store provides durable storage for error log entries.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db    *sql.DB
	table string
}

// Open creates or opens a SQLite database at the given path and applies the
// required pragmas. The schema is not created until Init, because the table
// name depends on the schema qualifier, which may be assigned after Open.
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty database path")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	return &Store{db: db}, nil
}

// Init resolves the table name from the schema qualifier and creates the
// schema if it does not exist. Must be called exactly once, before any read
// or write. An empty qualifier selects the default table name.
func (s *Store) Init(ctx context.Context, qualifier string) error {
	if s.table != "" {
		return fmt.Errorf("store already initialized with table %q", s.table)
	}

	table := defaultTable
	if qualifier != "" {
		table = qualifier + "_" + defaultTable
	}

	schema := strings.ReplaceAll(schemaSQL, "{{TABLE}}", table)
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	s.table = table
	return nil
}

// Table returns the resolved table name, or "" before Init.
func (s *Store) Table() string {
	return s.table
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ready guards every read and write against use before Init.
func (s *Store) ready() error {
	if s.table == "" {
		return fmt.Errorf("store not initialized")
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Generation is one generated opt-in message
type Generation struct {
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Audience  string    `json:"audience"`
	Channel   string    `json:"channel"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Export is one message saved to a file
type Export struct {
	SessionID string    `json:"session_id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is an append-only SQLite ledger of generations and exports
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the ledger database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	createGenerationsTable := `
	CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		sender TEXT,
		city TEXT,
		state TEXT,
		audience TEXT,
		channel TEXT,
		message TEXT,
		created_at DATETIME
	);`

	createExportsTable := `
	CREATE TABLE IF NOT EXISTS exports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		path TEXT,
		created_at DATETIME
	);`

	if _, err := db.Exec(createGenerationsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create generations table: %w", err)
	}

	if _, err := db.Exec(createExportsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create exports table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordGeneration appends a generated message
func (s *Store) RecordGeneration(ctx context.Context, g Generation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (session_id, sender, city, state, audience, channel, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.SessionID, g.Sender, g.City, g.State, g.Audience, g.Channel, g.Message, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// RecordExport appends a saved file
func (s *Store) RecordExport(ctx context.Context, e Export) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO exports (session_id, path, created_at) VALUES (?, ?, ?)",
		e.SessionID, e.Path, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

// Recent returns up to limit generations, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Generation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, sender, city, state, audience, channel, message, created_at
		FROM generations ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load generations: %w", err)
	}
	defer rows.Close()

	generations := []Generation{}
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.SessionID, &g.Sender, &g.City, &g.State, &g.Audience, &g.Channel, &g.Message, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		generations = append(generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read generations: %w", err)
	}

	return generations, nil
}

// Exports returns the files saved during a session, oldest first
func (s *Store) Exports(ctx context.Context, sessionID string) ([]Export, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT session_id, path, created_at FROM exports WHERE session_id = ? ORDER BY created_at, id",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load exports: %w", err)
	}
	defer rows.Close()

	exports := []Export{}
	for rows.Next() {
		var e Export
		if err := rows.Scan(&e.SessionID, &e.Path, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		exports = append(exports, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exports: %w", err)
	}

	return exports, nil
}

// Package store persists LM Box player data in a single SQLite file:
// player profiles, one high-score row per finished round, and
// application settings.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schema is applied in order on every open. Statements are idempotent,
// so an existing database passes through unchanged.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	// One row per finished round.
	`CREATE TABLE IF NOT EXISTS high_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		game TEXT NOT NULL CHECK(game IN ('pong', 'balloons', 'runner')),
		score INTEGER NOT NULL,
		difficulty TEXT NOT NULL DEFAULT 'normal',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_high_scores_user_id ON high_scores(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_high_scores_game_score ON high_scores(game, score DESC)`,
}

// Store is an open LM Box database.
type Store struct {
	db   *sql.DB
	path string
}

// New opens the database at dbPath, creating it if needed, enables
// foreign keys, and applies the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Cascading deletes (user -> high_scores) depend on this pragma.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

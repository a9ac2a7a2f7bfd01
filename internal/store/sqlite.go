package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore persists the pattern catalog in a SQLite database.
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore opens (and if necessary initializes) the database at dbPath.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scam_patterns (
			name TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			indicators TEXT NOT NULL,
			examples TEXT NOT NULL,
			severity TEXT NOT NULL,
			position INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{sqlStore{db: db, logger: logger}}, nil
}

package store

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLStore persists the pattern catalog in a MySQL database.
type MySQLStore struct {
	sqlStore
}

// NewMySQLStore connects to MySQL with the given DSN and ensures the schema.
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scam_patterns (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT NOT NULL,
			indicators TEXT NOT NULL,
			examples TEXT NOT NULL,
			severity VARCHAR(16) NOT NULL,
			position INT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{sqlStore{db: db, logger: logger}}, nil
}

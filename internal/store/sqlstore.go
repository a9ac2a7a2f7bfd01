package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/core"
)

// sqlStore holds the SQL logic shared by the SQLite and MySQL stores. Both
// drivers take ? placeholders, so only the DDL differs per backend.
type sqlStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// patternRow is the serialized slice columns of one pattern.
type patternRow struct {
	indicators []byte
	examples   []byte
}

func encodeRow(p core.ScamPattern) (patternRow, error) {
	indicators, err := json.Marshal(p.Indicators)
	if err != nil {
		return patternRow{}, fmt.Errorf("failed to encode indicators: %w", err)
	}
	examples, err := json.Marshal(p.Examples)
	if err != nil {
		return patternRow{}, fmt.Errorf("failed to encode examples: %w", err)
	}
	return patternRow{indicators: indicators, examples: examples}, nil
}

// LoadAll returns every stored pattern in insertion order.
func (s *sqlStore) LoadAll(ctx context.Context) ([]core.ScamPattern, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, indicators, examples, severity
		FROM scam_patterns
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer rows.Close()

	var patterns []core.ScamPattern
	for rows.Next() {
		var p core.ScamPattern
		var severity string
		var indicators, examples []byte
		if err := rows.Scan(&p.Name, &p.Description, &indicators, &examples, &severity); err != nil {
			return nil, fmt.Errorf("failed to scan pattern row: %w", err)
		}
		if err := json.Unmarshal(indicators, &p.Indicators); err != nil {
			return nil, fmt.Errorf("corrupt indicators for pattern %q: %w", p.Name, err)
		}
		if err := json.Unmarshal(examples, &p.Examples); err != nil {
			return nil, fmt.Errorf("corrupt examples for pattern %q: %w", p.Name, err)
		}
		level, err := core.ParseRiskLevel(severity)
		if err != nil {
			return nil, fmt.Errorf("corrupt severity for pattern %q: %w", p.Name, err)
		}
		p.Severity = level
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// Put inserts or updates a single pattern. An insert takes the next position;
// an update keeps its place.
func (s *sqlStore) Put(ctx context.Context, p core.ScamPattern) error {
	row, err := encodeRow(p)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE scam_patterns
		SET description = ?, indicators = ?, examples = ?, severity = ?
		WHERE name = ?
	`, p.Description, row.indicators, row.examples, string(p.Severity), p.Name)
	if err != nil {
		return fmt.Errorf("failed to update pattern: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO scam_patterns (name, description, indicators, examples, severity, position)
			SELECT ?, ?, ?, ?, ?, COALESCE(MAX(position), 0) + 1 FROM scam_patterns
		`, p.Name, p.Description, row.indicators, row.examples, string(p.Severity))
		if err != nil {
			return fmt.Errorf("failed to insert pattern: %w", err)
		}
	}
	return tx.Commit()
}

// Delete removes a pattern by name. Absent names are not an error.
func (s *sqlStore) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM scam_patterns WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete pattern: %w", err)
	}
	return nil
}

// ReplaceAll replaces the stored set atomically, renumbering positions.
func (s *sqlStore) ReplaceAll(ctx context.Context, patterns []core.ScamPattern) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scam_patterns`); err != nil {
		return fmt.Errorf("failed to clear patterns: %w", err)
	}
	for i, p := range patterns {
		row, err := encodeRow(p)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO scam_patterns (name, description, indicators, examples, severity, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.Name, p.Description, row.indicators, row.examples, string(p.Severity), i+1)
		if err != nil {
			return fmt.Errorf("failed to insert pattern %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

// Close closes the database handle.
func (s *sqlStore) Close() error {
	return s.db.Close()
}

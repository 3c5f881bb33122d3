package storage

import (
	"database/sql"
	"fmt"
)

// PostgresSlot keeps the document in a single row of the slots table,
// keyed by slot name. It preserves the same whole-document read/write
// semantics as the file slot.
type PostgresSlot struct {
	db   *sql.DB
	name string
}

// NewPostgresSlot initializes a database-backed slot, creating the slots
// table if it does not exist yet.
func NewPostgresSlot(db *sql.DB, name string) (*PostgresSlot, error) {
	query := `
		CREATE TABLE IF NOT EXISTS slots (
			name TEXT PRIMARY KEY,
			document TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create slots table: %w", err)
	}
	return &PostgresSlot{db: db, name: name}, nil
}

func (s *PostgresSlot) Read() ([]byte, bool, error) {
	var document string
	query := `SELECT document FROM slots WHERE name = $1`
	err := s.db.QueryRow(query, s.name).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot: %w", err)
	}
	return []byte(document), true, nil
}

func (s *PostgresSlot) Write(data []byte) error {
	query := `
		INSERT INTO slots (name, document, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE
		SET document = EXCLUDED.document, updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.Exec(query, s.name, string(data)); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

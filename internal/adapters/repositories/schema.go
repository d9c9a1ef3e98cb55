package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the stops schema. The statements are plain enough to run
// unchanged on SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		customer TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		priority TEXT NOT NULL,
		weight_kg DOUBLE PRECISION NOT NULL,
		seq INTEGER NOT NULL
	);
	`

	createSeqIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stops_seq
	ON stops(seq);
	`

	statements := []string{
		createStopsQuery,
		createSeqIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

package database

import (
	"context"
	"fmt"
)

// schema is valid for both SQLite and PostgreSQL. Seats of every train live
// in one table keyed by (train_number, seat_number).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS trains (
		train_number      TEXT PRIMARY KEY,
		train_name        TEXT NOT NULL,
		start_destination TEXT NOT NULL,
		end_destination   TEXT NOT NULL,
		departure_date    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS seats (
		train_number     TEXT NOT NULL,
		seat_number      INTEGER NOT NULL,
		category         TEXT NOT NULL,
		booked           INTEGER NOT NULL DEFAULT 0,
		passenger_name   TEXT NOT NULL DEFAULT '',
		passenger_age    INTEGER NOT NULL DEFAULT 0,
		passenger_gender TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (train_number, seat_number)
	)`,
	`CREATE INDEX IF NOT EXISTS seats_free_idx ON seats (train_number, category, booked, seat_number)`,
}

// Migrate ensures all required tables exist
func (s *Store) Migrate(ctx context.Context) error {
	s.log.Debug().Msg("Checking database schema...")

	for i, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return storageErr(fmt.Sprintf("migration step %d", i+1), err)
		}
	}

	s.log.Debug().Int("steps", len(schema)).Msg("Database schema up to date")
	return nil
}

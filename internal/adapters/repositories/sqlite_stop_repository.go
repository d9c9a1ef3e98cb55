package repositories

import (
	"context"
	"courier-route-service/internal/domain"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the StopRepository and StopWriter ports.
type SqliteStopRepository struct{ DB *sql.DB }

func NewSqliteStopRepository(db *sql.DB) *SqliteStopRepository {
	return &SqliteStopRepository{DB: db}
}

// Return all stops stored in the database, in seed order.
func (s *SqliteStopRepository) ListStops(ctx context.Context) ([]domain.DeliveryStop, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite stop repository: DB is nil")
	}

	query := `
	SELECT
		customer,
		lat,
		lon,
		priority,
		weight_kg
	FROM stops
	ORDER BY seq, customer;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.DeliveryStop, 0, 64)
	for rows.Next() {
		var customer, priority string
		var lat, lon, weight float64
		if err := rows.Scan(&customer, &lat, &lon, &priority, &weight); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}

		p, ok := domain.ParsePriority(priority)
		if !ok {
			return nil, fmt.Errorf("list stops: customer %q has unknown priority %q", customer, priority)
		}

		stops = append(stops, domain.DeliveryStop{
			Customer: customer,
			Coord:    domain.Coordinates{Lat: lat, Lon: lon},
			Priority: p,
			WeightKg: weight,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}

// Insert or replace stops keyed by customer name. Seed order is recorded so
// ListStops can reproduce it.
func (s *SqliteStopRepository) SaveStops(ctx context.Context, stops []domain.DeliveryStop) error {
	if s.DB == nil {
		return errors.New("sqlite stop repository: DB is nil")
	}

	if len(stops) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO stops (
		customer,
		lat,
		lon,
		priority,
		weight_kg,
		seq
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("save stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, stop := range stops {
		_, err := stmt.ExecContext(ctx,
			stop.Customer,
			stop.Coord.Lat,
			stop.Coord.Lon,
			stop.Priority.String(),
			stop.WeightKg,
			i+1,
		)
		if err != nil {
			return fmt.Errorf("save stops: insert customer=%q: %w", stop.Customer, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save stops: commit tx: %w", err)
	}

	return nil
}

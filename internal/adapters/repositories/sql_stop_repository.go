package repositories

import (
	"context"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStopRepository is the Postgres flavor of the stop store, used by the
// seeding tool and deployments that point DATABASE_URL at a shared database.
type SQLStopRepository struct {
	DB *sql.DB
}

func NewSQLStopRepository(db *sql.DB) *SQLStopRepository {
	return &SQLStopRepository{DB: db}
}

func (s *SQLStopRepository) ListStops(ctx context.Context) (_ []domain.DeliveryStop, err error) {
	defer obs.Time(ctx, "stops.repo.ListStops")(&err)

	if s.DB == nil {
		return nil, errors.New("stop repository: db is nil")
	}

	q := `
	SELECT customer, lat, lon, priority, weight_kg
	FROM stops
	ORDER BY seq, customer;
	`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.DeliveryStop, 0, 64)
	for rows.Next() {
		var customer, priority string
		var lat, lon, weight float64
		if err := rows.Scan(&customer, &lat, &lon, &priority, &weight); err != nil {
			return nil, fmt.Errorf("list stops: scan rows: %w", err)
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

func (s *SQLStopRepository) SaveStops(ctx context.Context, stops []domain.DeliveryStop) (err error) {
	defer obs.Time(ctx, "stops.repo.SaveStops")(&err)

	if s.DB == nil {
		return errors.New("stop repository: db is nil")
	}

	if len(stops) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save stops: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stops (customer, lat, lon, priority, weight_kg, seq)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (customer) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		priority = EXCLUDED.priority,
		weight_kg = EXCLUDED.weight_kg,
		seq = EXCLUDED.seq;
	`)
	if err != nil {
		return fmt.Errorf("save stops: db prepare: %w", err)
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
			return fmt.Errorf("save stops customer=%q: %w", stop.Customer, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save stops commit: %w", err)
	}

	return nil
}

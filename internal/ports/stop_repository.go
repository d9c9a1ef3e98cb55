package ports

import (
	"context"
	"courier-route-service/internal/domain"
)

// Port: a boundary for retrieving DeliveryStop entities from a data source.
type StopRepository interface {
	// Retrieve all stops available for routing, in insertion order.
	ListStops(ctx context.Context) ([]domain.DeliveryStop, error)
}

// Port: a boundary for persisting validated stops. Stops are keyed by
// customer name; saving an existing customer overwrites the old row.
type StopWriter interface {
	SaveStops(ctx context.Context, stops []domain.DeliveryStop) error
}

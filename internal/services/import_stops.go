package services

import (
	"context"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/platform/obs"
	"courier-route-service/internal/ports"
	"fmt"
)

// ImportStops reads raw rows from a source, validates them, and persists
// the valid stops. Rejected rows are returned for reporting; they never
// fail the import.
func ImportStops(
	ctx context.Context,
	src ports.RowSource,
	sink ports.StopWriter,
) (saved int, rejected []domain.RejectedRow, err error) {
	defer obs.Time(ctx, "services.ImportStops")(&err)

	rows, err := src.ReadRows(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("import stops: %w", err)
	}

	stops, rejected := ValidateRows(rows)
	if err := sink.SaveStops(ctx, stops); err != nil {
		return 0, rejected, fmt.Errorf("import stops: %w", err)
	}

	return len(stops), rejected, nil
}

package ports

import "courier-route-service/internal/domain"

// Port: a sink for the artifacts of a computed plan. Implementations decide
// the on-disk or on-wire shape; callers hand over plain domain values.
type ReportWriter interface {
	// WriteRoute persists the ordered stops with their per-leg figures.
	// legs[i] is the leg arriving at route[i]; a trailing extra leg is the
	// return to the depot.
	WriteRoute(route domain.Route, legs []domain.Leg) error
	WriteMetrics(m domain.Metrics, mode domain.TransportMode, objective domain.Objective) error
	// WriteRejects records rows that failed validation. Implementations may
	// skip the artifact entirely when rejects is empty.
	WriteRejects(rejects []domain.RejectedRow) error
}

package services

import (
	"context"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/platform/obs"
	"courier-route-service/internal/ports"
	"fmt"

	"github.com/google/uuid"
)

// PlanRequest carries one optimization job through the pipeline.
type PlanRequest struct {
	Rows          [][]string
	Depot         domain.Coordinates
	Mode          domain.TransportMode
	Objective     domain.Objective
	ReturnToDepot bool
}

// PlannerSettings tune the planning pipeline. The zero value disables the
// optional stages: no stop limit, advisory capacity, greedy search only.
type PlannerSettings struct {
	// Metric slack within which candidates count as tied during the greedy
	// walk. Values <= 0 fall back to DefaultNearTieEpsilon.
	NearTieEpsilon float64
	// Hard ceiling on valid stops per request; 0 means unlimited.
	MaxStops int
	// When true, payload over the mode limit fails the run instead of
	// producing a warning.
	EnforceCapacity bool
	// Use the exhaustive search for inputs up to this many stops; 0 keeps
	// the greedy walk for every size.
	ExhaustiveLimit int
	// Maximum 2-opt passes after the initial ordering; 0 disables refining.
	RefineIterations int
}

// PlanResult is the full outcome of one pipeline run.
type PlanResult struct {
	PlanID    string
	Mode      domain.TransportMode
	Objective domain.Objective
	Route     domain.Route
	Legs      []domain.Leg
	Metrics   domain.Metrics
	Rejected  []domain.RejectedRow
	Warnings  []string
}

// PlanCourierRoute runs the whole pipeline: validate raw rows, check input
// size and payload, order the valid stops, then expand and total per-leg
// figures. Rejected rows never abort the run; they ride along in the
// result. Size violations and, when enforced, capacity violations do abort.
func PlanCourierRoute(
	ctx context.Context,
	req PlanRequest,
	settings PlannerSettings,
) (_ *PlanResult, err error) {
	defer obs.Time(ctx, "services.PlanCourierRoute")(&err)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan courier route: %w", err)
	}

	stops, rejected := ValidateRows(req.Rows)
	return planStops(stops, rejected, req, settings)
}

// PlanStoredRoute plans over stops already persisted in a repository, for
// example seeded through dbtool. Rows in req are ignored; validation
// happened at write time, so the pipeline starts at the size check.
func PlanStoredRoute(
	ctx context.Context,
	repo ports.StopRepository,
	req PlanRequest,
	settings PlannerSettings,
) (_ *PlanResult, err error) {
	defer obs.Time(ctx, "services.PlanStoredRoute")(&err)

	stops, err := repo.ListStops(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan stored route: list stops: %w", err)
	}
	return planStops(stops, nil, req, settings)
}

func planStops(
	stops []domain.DeliveryStop,
	rejected []domain.RejectedRow,
	req PlanRequest,
	settings PlannerSettings,
) (*PlanResult, error) {
	if settings.MaxStops > 0 && len(stops) > settings.MaxStops {
		return nil, &domain.InputTooLargeError{Count: len(stops), MaxStops: settings.MaxStops}
	}

	var warnings []string
	if limit := req.Mode.MaxPayloadKg; limit > 0 {
		if total := TotalPayloadKg(stops); total > limit {
			capErr := &domain.CapacityError{Mode: req.Mode.Name, LimitKg: limit, TotalKg: total}
			if settings.EnforceCapacity {
				return nil, capErr
			}
			warnings = append(warnings, capErr.Error())
		}
	}

	route := orderStops(stops, req, settings)
	legs := BuildLegs(route, req.Depot, req.Mode, req.ReturnToDepot)

	return &PlanResult{
		PlanID:    uuid.NewString(),
		Mode:      req.Mode,
		Objective: req.Objective,
		Route:     route,
		Legs:      legs,
		Metrics:   AggregateMetrics(legs),
		Rejected:  rejected,
		Warnings:  warnings,
	}, nil
}

// orderStops picks the search strategy: exhaustive for tiny inputs when
// enabled, the greedy nearest-stop walk otherwise, then an optional 2-opt
// polish on top.
func orderStops(
	stops []domain.DeliveryStop,
	req PlanRequest,
	settings PlannerSettings,
) domain.Route {
	var route domain.Route
	if settings.ExhaustiveLimit > 0 &&
		len(stops) <= settings.ExhaustiveLimit &&
		len(stops) <= MaxExhaustiveStops {
		route = ExhaustiveRoute(stops, req.Depot, req.Mode, req.Objective)
	} else {
		route = OptimizeRoute(stops, req.Depot, req.Mode, req.Objective, settings.NearTieEpsilon)
	}

	if settings.RefineIterations > 0 {
		route = ImproveRoute2Opt(route, req.Depot, settings.RefineIterations)
	}
	return route
}

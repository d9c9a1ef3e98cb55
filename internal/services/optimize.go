package services

import (
	"courier-route-service/internal/domain"
	"math"
)

// Default window within which two candidate metrics count as a near-tie.
// Kept configurable (planner.near_tie_epsilon) because the right value
// depends on the objective's scale.
const DefaultNearTieEpsilon = 1e-9

// OptimizeRoute plans a visiting order using a greedy nearest-next walk.
//
// At every step the remaining stops are scored by the objective metric of
// the leg from the current position, and the cheapest one is taken next.
// Candidates within nearTieEpsilon of the minimum tie-break by priority
// (High beats Medium beats Low), then by position in the validated input,
// so the result is fully deterministic. The walk is O(n²) over the stop
// count; fine for the tens of stops this service plans for, a known limit
// beyond that.
//
// It does not attempt global route optimization (e.g., VRP solvers): the
// design prioritizes determinism and explainability over optimality.
func OptimizeRoute(
	stops []domain.DeliveryStop,
	depot domain.Coordinates,
	mode domain.TransportMode,
	objective domain.Objective,
	nearTieEpsilon float64,
) domain.Route {
	if len(stops) == 0 {
		return domain.Route{}
	}
	if nearTieEpsilon <= 0 {
		nearTieEpsilon = DefaultNearTieEpsilon
	}

	type candidate struct {
		stop  domain.DeliveryStop
		order int // position in the validated input, the final tie-break
	}

	remaining := make([]candidate, len(stops))
	for i, s := range stops {
		remaining[i] = candidate{stop: s, order: i}
	}

	route := make(domain.Route, 0, len(stops))
	current := depot
	metrics := make([]float64, len(stops))

	for len(remaining) > 0 {
		minMetric := math.Inf(1)
		for i, c := range remaining {
			m := mode.MetricFor(objective, domain.Haversine(current, c.stop.Coord))
			metrics[i] = m
			if m < minMetric {
				minMetric = m
			}
		}

		// Select among near-ties: higher priority first, then input order.
		best := -1
		for i, c := range remaining {
			if metrics[i] > minMetric+nearTieEpsilon {
				continue
			}
			if best < 0 ||
				c.stop.Priority < remaining[best].stop.Priority ||
				(c.stop.Priority == remaining[best].stop.Priority && c.order < remaining[best].order) {
				best = i
			}
		}

		route = append(route, remaining[best].stop)
		current = remaining[best].stop.Coord
		remaining = append(remaining[:best], remaining[best+1:]...)
		metrics = metrics[:len(remaining)]
	}

	return route
}

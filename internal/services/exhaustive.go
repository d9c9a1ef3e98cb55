package services

import (
	"courier-route-service/internal/domain"
	"math"
)

// Permutation search is factorial; anything past this many stops falls back
// to the greedy walk regardless of configuration.
const MaxExhaustiveStops = 10

// ExhaustiveRoute scores every permutation of the stops and returns the
// cheapest tour. The score weights each leg by the stop's priority
// multiplier and a position multiplier that grows 0.1 per later delivery,
// then adds the return leg to the depot, so urgent stops gravitate toward
// the front even when that stretches raw distance a little.
//
// Only sensible for small inputs (n! permutations); callers gate it behind
// planner.exhaustive_limit and n <= MaxExhaustiveStops. Deterministic: the
// permutation order is fixed and only strictly better scores replace the
// current best.
func ExhaustiveRoute(
	stops []domain.DeliveryStop,
	depot domain.Coordinates,
	mode domain.TransportMode,
	objective domain.Objective,
) domain.Route {
	n := len(stops)
	if n == 0 {
		return domain.Route{}
	}
	if n == 1 || n > MaxExhaustiveStops {
		return append(domain.Route{}, stops...)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	best := append([]int(nil), order...)
	bestScore := tourScore(stops, order, depot, mode, objective)

	// Heap's algorithm over the index slice.
	c := make([]int, n)
	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				order[0], order[i] = order[i], order[0]
			} else {
				order[c[i]], order[i] = order[i], order[c[i]]
			}
			if score := tourScore(stops, order, depot, mode, objective); score < bestScore {
				bestScore = score
				copy(best, order)
			}
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}

	route := make(domain.Route, n)
	for i, idx := range best {
		route[i] = stops[idx]
	}
	return route
}

// tourScore evaluates one full visiting order under the exhaustive scorer.
func tourScore(
	stops []domain.DeliveryStop,
	order []int,
	depot domain.Coordinates,
	mode domain.TransportMode,
	objective domain.Objective,
) float64 {
	total := 0.0
	current := depot
	positionMultiplier := 1.0

	for _, idx := range order {
		s := stops[idx]
		d := domain.Haversine(current, s.Coord)
		total += d * s.Priority.Weight() * positionMultiplier
		current = s.Coord
		positionMultiplier += 0.1
	}
	total += domain.Haversine(current, depot)

	score := mode.MetricFor(objective, total)
	if math.IsNaN(score) {
		return math.Inf(1)
	}
	return score
}

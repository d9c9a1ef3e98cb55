package services

import (
	"courier-route-service/internal/domain"
)

// Improvements below this are treated as floating point noise.
const twoOptEpsilon = 1e-10

// ImproveRoute2Opt polishes a route with 2-opt segment reversals. Each pass
// tries every (i, j) pair and reverses the segment when that shortens the
// open path from the depot through all stops. Passes repeat until no swap
// helps or maxIterations passes have run.
//
// Leg metrics scale linearly with distance for a fixed mode, so shortening
// the path improves time, cost and emissions alike. The stop set is
// preserved; only the visiting order changes.
func ImproveRoute2Opt(route domain.Route, depot domain.Coordinates, maxIterations int) domain.Route {
	improved := append(domain.Route{}, route...)
	n := len(improved)
	if n < 3 || maxIterations <= 0 {
		return improved
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				if swapDelta(improved, depot, i, j) < -twoOptEpsilon {
					reverseSegment(improved, i, j)
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return improved
}

// swapDelta is the path length change from reversing route[i..j]. Haversine
// is symmetric, so only the two boundary edges move; the route is open, so
// a reversal ending at the last stop drops the trailing edge entirely.
func swapDelta(route domain.Route, depot domain.Coordinates, i, j int) float64 {
	prev := depot
	if i > 0 {
		prev = route[i-1].Coord
	}

	before := domain.Haversine(prev, route[i].Coord)
	after := domain.Haversine(prev, route[j].Coord)
	if j < len(route)-1 {
		next := route[j+1].Coord
		before += domain.Haversine(route[j].Coord, next)
		after += domain.Haversine(route[i].Coord, next)
	}
	return after - before
}

func reverseSegment(route domain.Route, i, j int) {
	for i < j {
		route[i], route[j] = route[j], route[i]
		i++
		j--
	}
}

// PathDistanceKm sums the great-circle distance of the open path from the
// depot through every stop in order. Used by tests and the 2-opt refiner's
// callers to compare candidate orderings.
func PathDistanceKm(route domain.Route, depot domain.Coordinates) float64 {
	total := 0.0
	current := depot
	for _, s := range route {
		total += domain.Haversine(current, s.Coord)
		current = s.Coord
	}
	return total
}

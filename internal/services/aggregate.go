package services

import (
	"courier-route-service/internal/domain"
)

// BuildLegs expands a route into per-leg figures for the chosen mode. The
// first leg starts at the depot; when returnToDepot is set a closing leg
// back to the depot is appended with an empty customer name.
func BuildLegs(
	route domain.Route,
	depot domain.Coordinates,
	mode domain.TransportMode,
	returnToDepot bool,
) []domain.Leg {
	legs := make([]domain.Leg, 0, len(route)+1)
	current := depot

	for _, stop := range route {
		d := domain.Haversine(current, stop.Coord)
		c := mode.Evaluate(d)
		legs = append(legs, domain.Leg{
			From:       current,
			To:         stop.Coord,
			ToCustomer: stop.Customer,
			DistanceKm: d,
			TimeH:      c.TimeH,
			Cost:       c.Cost,
			CO2G:       c.CO2G,
		})
		current = stop.Coord
	}

	if returnToDepot && len(route) > 0 {
		d := domain.Haversine(current, depot)
		c := mode.Evaluate(d)
		legs = append(legs, domain.Leg{
			From:       current,
			To:         depot,
			DistanceKm: d,
			TimeH:      c.TimeH,
			Cost:       c.Cost,
			CO2G:       c.CO2G,
		})
	}

	return legs
}

// AggregateMetrics totals distance, time, cost and emissions across legs.
// StopCount counts delivery legs only, not the return to the depot.
func AggregateMetrics(legs []domain.Leg) domain.Metrics {
	var m domain.Metrics
	for _, leg := range legs {
		m.TotalDistanceKm += leg.DistanceKm
		m.TotalTimeH += leg.TimeH
		m.TotalCost += leg.Cost
		m.TotalCO2G += leg.CO2G
		if leg.ToCustomer != "" {
			m.StopCount++
		}
	}
	return m
}

// TotalPayloadKg sums the package weight across stops. Used for capacity
// checks against a mode's MaxPayloadKg.
func TotalPayloadKg(stops []domain.DeliveryStop) float64 {
	total := 0.0
	for _, s := range stops {
		total += s.WeightKg
	}
	return total
}

package domain

import (
	"math"
	"strings"
)

// Transport mode with the constants that turn a leg distance into derived
// metrics. Modes are configuration data: swapping Car for Bicycle must not
// touch any evaluation logic, only the constants fed into it.
type TransportMode struct {
	Name         string
	SpeedKmh     float64
	CostPerKm    float64
	CO2GPerKm    float64
	MaxPayloadKg float64 // 0 means unlimited; advisory unless enforcement is configured
}

// Derived metrics for traversing a distance under one mode.
type LegCost struct {
	TimeH float64
	Cost  float64
	CO2G  float64
}

// Evaluate converts a distance into the (time, cost, CO2) triple.
// Pure and unclamped: zero distance yields zero for all three. A mode with
// no speed yields infinite time rather than a division panic.
func (m TransportMode) Evaluate(distanceKm float64) LegCost {
	return LegCost{
		TimeH: m.TimeHours(distanceKm),
		Cost:  distanceKm * m.CostPerKm,
		CO2G:  distanceKm * m.CO2GPerKm,
	}
}

// TimeHours returns the travel time for a distance at the mode's speed.
func (m TransportMode) TimeHours(distanceKm float64) float64 {
	if m.SpeedKmh <= 0 {
		return math.Inf(1)
	}
	return distanceKm / m.SpeedKmh
}

// MetricFor returns the single metric the given objective minimizes.
func (m TransportMode) MetricFor(o Objective, distanceKm float64) float64 {
	switch o {
	case ObjectiveCost:
		return distanceKm * m.CostPerKm
	case ObjectiveCO2:
		return distanceKm * m.CO2GPerKm
	}
	return m.TimeHours(distanceKm)
}

// BuiltinModes returns the default mode set. Costs are NOK per kilometer.
// The YAML config may replace or extend this list.
func BuiltinModes() []TransportMode {
	return []TransportMode{
		{Name: "Car", SpeedKmh: 50, CostPerKm: 4, CO2GPerKm: 120},
		{Name: "Bicycle", SpeedKmh: 15, MaxPayloadKg: 25},
		{Name: "Walking", SpeedKmh: 5, MaxPayloadKg: 10},
	}
}

// ModeByName selects a mode case-insensitively from a configured set.
func ModeByName(modes []TransportMode, name string) (TransportMode, bool) {
	for _, m := range modes {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return TransportMode{}, false
}

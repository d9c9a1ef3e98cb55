package domain

import "strings"

// Objective selects which derived metric the optimizer minimizes.
type Objective int

const (
	ObjectiveTime Objective = iota
	ObjectiveCost
	ObjectiveCO2
)

// ParseObjective accepts the objective name case-insensitively.
// An unrecognized name is a configuration error at the caller, never a
// mid-optimization failure.
func ParseObjective(s string) (Objective, bool) {
	switch {
	case strings.EqualFold(s, "time"):
		return ObjectiveTime, true
	case strings.EqualFold(s, "cost"):
		return ObjectiveCost, true
	case strings.EqualFold(s, "co2"):
		return ObjectiveCO2, true
	}
	return 0, false
}

func (o Objective) String() string {
	switch o {
	case ObjectiveCost:
		return "cost"
	case ObjectiveCO2:
		return "co2"
	}
	return "time"
}

// Label is the display spelling used in reports.
func (o Objective) Label() string {
	switch o {
	case ObjectiveCost:
		return "Cost"
	case ObjectiveCO2:
		return "CO2"
	}
	return "Time"
}

package domain

// Delivery priority, ordered from most to least urgent. A smaller rank wins
// a near-tie in the optimizer, so comparisons read naturally as p < q.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

// ParsePriority maps the case-sensitive input spelling to a Priority.
// Lowercase or otherwise mangled values are rejected by the validator.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "High":
		return PriorityHigh, true
	case "Medium":
		return PriorityMedium, true
	case "Low":
		return PriorityLow, true
	}
	return 0, false
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return "Unknown"
}

// Weight returns the score multiplier used by the exhaustive route scorer:
// urgent deliveries shrink their leg score so they are pulled forward.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 0.6
	case PriorityLow:
		return 1.2
	}
	return 1.0
}

// Represents a single validated delivery destination.
// A DeliveryStop is produced by the record validator from one input row and
// is immutable from then on: the optimizer orders stops, it never edits them.
type DeliveryStop struct {
	Customer string
	Coord    Coordinates
	Priority Priority
	WeightKg float64
}

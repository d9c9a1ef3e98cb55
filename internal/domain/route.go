package domain

// Represents the ordered visiting sequence for one courier run.
// A Route is the output of an optimization pass: it begins at the depot and
// (conceptually) returns to it. It is immutable planning data; its stop set
// is exactly the validated-stop set, never more, never less.
type Route []DeliveryStop

// Leg is one traversal between consecutive points of a route, carrying the
// derived metrics for its distance. Legs are computed on demand, not stored.
type Leg struct {
	From       Coordinates
	To         Coordinates
	ToCustomer string // empty for the return-to-depot leg
	DistanceKm float64
	TimeH      float64
	Cost       float64
	CO2G       float64
}

// Aggregate totals over all legs of a route.
type Metrics struct {
	TotalDistanceKm float64
	TotalTimeH      float64
	TotalCost       float64
	TotalCO2G       float64
	StopCount       int
}

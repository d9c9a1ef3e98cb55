package domain

import "fmt"

// ErrorKind tags why a row was rejected. The set is closed: row-level kinds
// are recoverable (the row is recorded and the batch continues), they never
// abort processing.
type ErrorKind string

const (
	InvalidCustomerName ErrorKind = "invalid_customer_name"
	InvalidLatitude     ErrorKind = "invalid_latitude"
	InvalidLongitude    ErrorKind = "invalid_longitude"
	InvalidPriority     ErrorKind = "invalid_priority"
	InvalidWeight       ErrorKind = "invalid_weight"
)

// RejectedRow records one input row that failed validation. Terminal data:
// it is written to the rejected report and never retried.
type RejectedRow struct {
	Fields   []string
	Reason   ErrorKind
	Detail   string
	RowIndex int // 1-based file row; the header is row 1, so data starts at 2
}

// CapacityError reports a payload over the mode's limit. Raised only when
// capacity is configured as a hard constraint; otherwise the overload is an
// advisory warning next to the route.
type CapacityError struct {
	Mode    string
	LimitKg float64
	TotalKg float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("total payload %.2f kg exceeds %s limit of %.2f kg", e.TotalKg, e.Mode, e.LimitKg)
}

// InputTooLargeError aborts a run whose stop count is past the configured
// scale bound, before any quadratic work starts.
type InputTooLargeError struct {
	Count    int
	MaxStops int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("stop count %d exceeds the configured maximum of %d", e.Count, e.MaxStops)
}

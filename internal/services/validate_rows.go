package services

import (
	"courier-route-service/internal/domain"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Column layout of a raw delivery row. Columns beyond weight_kg are ignored.
const (
	colCustomer = iota
	colLatitude
	colLongitude
	colPriority
	colWeight
	rowFieldCount
)

// The first data row of a delivery file; row 1 is the header.
const firstDataRow = 2

// Allowed customer-name characters: letters, digits, underscore, whitespace
// and a small punctuation set (hyphen, period, comma, apostrophe).
var customerPattern = regexp.MustCompile(`^[\p{L}\p{N}_\s.,'-]+$`)

// ValidateRow turns one raw row into a DeliveryStop, or a RejectedRow naming
// why. Rules run in a fixed order and the first failure wins:
// customer, latitude, longitude, priority, weight. Missing trailing fields
// fail the rule for the first absent column.
func ValidateRow(fields []string, rowIndex int) (domain.DeliveryStop, *domain.RejectedRow) {
	reject := func(kind domain.ErrorKind, detail string) (domain.DeliveryStop, *domain.RejectedRow) {
		return domain.DeliveryStop{}, &domain.RejectedRow{
			Fields:   fields,
			Reason:   kind,
			Detail:   detail,
			RowIndex: rowIndex,
		}
	}

	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	customer := strings.TrimSpace(field(colCustomer))
	if customer == "" {
		return reject(domain.InvalidCustomerName, "customer name cannot be empty")
	}
	if !customerPattern.MatchString(customer) {
		return reject(domain.InvalidCustomerName, fmt.Sprintf("customer name contains invalid characters: %q", customer))
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(field(colLatitude)), 64)
	if err != nil {
		return reject(domain.InvalidLatitude, fmt.Sprintf("latitude must be a number, got %q", field(colLatitude)))
	}
	if !(lat >= -90 && lat <= 90) {
		return reject(domain.InvalidLatitude, fmt.Sprintf("latitude must be between -90 and 90, got %v", lat))
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(field(colLongitude)), 64)
	if err != nil {
		return reject(domain.InvalidLongitude, fmt.Sprintf("longitude must be a number, got %q", field(colLongitude)))
	}
	if !(lon >= -180 && lon <= 180) {
		return reject(domain.InvalidLongitude, fmt.Sprintf("longitude must be between -180 and 180, got %v", lon))
	}

	priority, ok := domain.ParsePriority(strings.TrimSpace(field(colPriority)))
	if !ok {
		return reject(domain.InvalidPriority, fmt.Sprintf("priority must be 'High', 'Medium', or 'Low', got %q", field(colPriority)))
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(field(colWeight)), 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return reject(domain.InvalidWeight, fmt.Sprintf("weight must be a number, got %q", field(colWeight)))
	}
	if weight < 0 {
		return reject(domain.InvalidWeight, fmt.Sprintf("weight must be non-negative, got %v", weight))
	}

	return domain.DeliveryStop{
		Customer: customer,
		Coord:    domain.Coordinates{Lat: lat, Lon: lon},
		Priority: priority,
		WeightKg: weight,
	}, nil
}

// ValidateRows partitions a batch of raw data rows into validated stops and
// rejected rows, both preserving input order. Every input row lands in
// exactly one of the two sequences. Rejected rows keep their original file
// row index (header = 1) for traceability.
func ValidateRows(rows [][]string) ([]domain.DeliveryStop, []domain.RejectedRow) {
	stops := make([]domain.DeliveryStop, 0, len(rows))
	rejects := []domain.RejectedRow{}

	for i, fields := range rows {
		stop, rej := ValidateRow(fields, firstDataRow+i)
		if rej != nil {
			rejects = append(rejects, *rej)
			continue
		}
		stops = append(stops, stop)
	}

	return stops, rejects
}

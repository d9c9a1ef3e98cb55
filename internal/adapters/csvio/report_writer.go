package csvio

import (
	"courier-route-service/internal/domain"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Artifact filenames inside a report directory.
const (
	RouteFileName    = "route.csv"
	MetricsFileName  = "metrics.csv"
	RejectedFileName = "rejected.csv"
)

// ReportDir writes plan artifacts as CSV files into one directory, creating
// it on first use. Implements the ReportWriter port.
type ReportDir struct {
	Dir string
}

func NewReportDir(dir string) *ReportDir {
	return &ReportDir{Dir: dir}
}

// WriteRoute writes route.csv: one row per delivery in visiting order with
// per-leg distance and running totals, plus a final depot row when the plan
// includes the return leg.
func (d *ReportDir) WriteRoute(route domain.Route, legs []domain.Leg) error {
	if len(legs) != len(route) && len(legs) != len(route)+1 {
		return fmt.Errorf("write route: %d legs do not fit %d stops", len(legs), len(route))
	}

	f, err := d.create(RouteFileName)
	if err != nil {
		return fmt.Errorf("write route: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"stop_number", "customer", "latitude", "longitude",
		"priority", "weight_kg", "distance_from_prev_km",
		"cumulative_distance_km", "eta_hours", "cost_nok", "co2_g",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write route: header: %w", err)
	}

	var cumDist, cumTime, cumCost, cumCO2 float64
	for i, leg := range legs {
		cumDist += leg.DistanceKm
		cumTime += leg.TimeH
		cumCost += leg.Cost
		cumCO2 += leg.CO2G

		totals := []string{
			fmt.Sprintf("%.3f", leg.DistanceKm),
			fmt.Sprintf("%.3f", cumDist),
			fmt.Sprintf("%.3f", cumTime),
			fmt.Sprintf("%.2f", cumCost),
			fmt.Sprintf("%.2f", cumCO2),
		}

		var rec []string
		if i < len(route) {
			s := route[i]
			rec = []string{
				strconv.Itoa(i + 1),
				s.Customer,
				floatField(s.Coord.Lat),
				floatField(s.Coord.Lon),
				s.Priority.String(),
				floatField(s.WeightKg),
			}
		} else {
			rec = []string{
				strconv.Itoa(i + 1),
				"DEPOT (Return)",
				floatField(leg.To.Lat),
				floatField(leg.To.Lon),
				"N/A",
				"0",
			}
		}
		rec = append(rec, totals...)

		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write route: row %d: %w", i+1, err)
		}
	}

	return finish(w, f, "write route")
}

// WriteMetrics writes metrics.csv as metric/value/unit rows.
func (d *ReportDir) WriteMetrics(m domain.Metrics, mode domain.TransportMode, objective domain.Objective) error {
	f, err := d.create(MetricsFileName)
	if err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	defer f.Close()

	rows := [][]string{
		{"Metric", "Value", "Unit"},
		{"Transport Mode", mode.Name, ""},
		{"Optimization Objective", objective.Label(), ""},
		{"Total Distance", fmt.Sprintf("%.3f", m.TotalDistanceKm), "km"},
		{"Total Time", fmt.Sprintf("%.3f", m.TotalTimeH), "hours"},
		{"Total Cost", fmt.Sprintf("%.2f", m.TotalCost), "NOK"},
		{"Total CO2", fmt.Sprintf("%.2f", m.TotalCO2G), "g"},
		{"Stops Served", strconv.Itoa(m.StopCount), ""},
	}

	w := csv.NewWriter(f)
	for i, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write metrics: row %d: %w", i+1, err)
		}
	}

	return finish(w, f, "write metrics")
}

// WriteRejects writes rejected.csv with the raw fields, the reason tag, the
// human-readable detail and the source row number. Nothing is written when
// every row validated.
func (d *ReportDir) WriteRejects(rejects []domain.RejectedRow) error {
	if len(rejects) == 0 {
		return nil
	}

	f, err := d.create(RejectedFileName)
	if err != nil {
		return fmt.Errorf("write rejects: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append(append([]string{}, requiredColumns...), "reason", "error", "row_number")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write rejects: header: %w", err)
	}

	for _, rej := range rejects {
		rec := make([]string, len(requiredColumns), len(requiredColumns)+3)
		copy(rec, rej.Fields)
		rec = append(rec, string(rej.Reason), rej.Detail, strconv.Itoa(rej.RowIndex))

		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write rejects: row %d: %w", rej.RowIndex, err)
		}
	}

	return finish(w, f, "write rejects")
}

func (d *ReportDir) create(name string) (*os.File, error) {
	if d.Dir == "" {
		return nil, errors.New("report dir is empty")
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir %q: %w", d.Dir, err)
	}

	f, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", name, err)
	}
	return f, nil
}

// Shortest round-trippable decimal form, the way the inputs were written.
func floatField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finish(w *csv.Writer, f *os.File, op string) error {
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%s: flush: %w", op, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: close: %w", op, err)
	}
	return nil
}

package services

import (
	"courier-route-service/internal/ports"
	"fmt"
)

// WriteReports persists every artifact of a computed plan through one
// report writer: the route, its aggregate metrics, and any rejected rows.
func WriteReports(rep ports.ReportWriter, res *PlanResult) error {
	if err := rep.WriteRoute(res.Route, res.Legs); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	if err := rep.WriteMetrics(res.Metrics, res.Mode, res.Objective); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	if err := rep.WriteRejects(res.Rejected); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	return nil
}

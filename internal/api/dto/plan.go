package dto

// OptimizeRequest carries raw delivery rows plus the planning knobs for one
// optimization call. Mode, objective, and return_to_depot fall back to the
// configured defaults when omitted. Depot coordinates are required.
type OptimizeRequest struct {
	Rows          [][]string `json:"rows"`
	DepotLat      *float64   `json:"depot_lat"`
	DepotLon      *float64   `json:"depot_lon"`
	Mode          string     `json:"mode"`
	Objective     string     `json:"objective"`
	ReturnToDepot *bool      `json:"return_to_depot"`
}

// StoredPlanRequest plans over the stops already seeded in the database, so
// it carries no rows.
type StoredPlanRequest struct {
	DepotLat      *float64 `json:"depot_lat"`
	DepotLon      *float64 `json:"depot_lon"`
	Mode          string   `json:"mode"`
	Objective     string   `json:"objective"`
	ReturnToDepot *bool    `json:"return_to_depot"`
}

type StopResponse struct {
	StopNumber         int     `json:"stop_number"`
	Customer           string  `json:"customer"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	Priority           string  `json:"priority"`
	WeightKg           float64 `json:"weight_kg"`
	DistanceFromPrevKm float64 `json:"distance_from_prev_km"`
	LegTimeHours       float64 `json:"leg_time_hours"`
	LegCostNok         float64 `json:"leg_cost_nok"`
	LegCo2G            float64 `json:"leg_co2_g"`
}

// ReturnLegResponse is present only when the plan closes the loop back to
// the depot.
type ReturnLegResponse struct {
	DistanceKm float64 `json:"distance_km"`
	TimeHours  float64 `json:"time_hours"`
	CostNok    float64 `json:"cost_nok"`
	Co2G       float64 `json:"co2_g"`
}

type MetricsResponse struct {
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalTimeHours  float64 `json:"total_time_hours"`
	TotalCostNok    float64 `json:"total_cost_nok"`
	TotalCo2G       float64 `json:"total_co2_g"`
	StopCount       int     `json:"stop_count"`
}

type RejectedRowResponse struct {
	Fields    []string `json:"fields"`
	Reason    string   `json:"reason"`
	Detail    string   `json:"detail"`
	RowNumber int      `json:"row_number"`
}

type PlanResponse struct {
	PlanID    string                `json:"plan_id"`
	Mode      string                `json:"mode"`
	Objective string                `json:"objective"`
	Stops     []StopResponse        `json:"stops"`
	ReturnLeg *ReturnLegResponse    `json:"return_leg,omitempty"`
	Metrics   MetricsResponse       `json:"metrics"`
	Rejected  []RejectedRowResponse `json:"rejected,omitempty"`
	Warnings  []string              `json:"warnings,omitempty"`
}

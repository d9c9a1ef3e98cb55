package dto

type ModeResponse struct {
	Name         string  `json:"name"`
	SpeedKmh     float64 `json:"speed_kmh"`
	CostPerKm    float64 `json:"cost_per_km"`
	CO2GPerKm    float64 `json:"co2_g_per_km"`
	MaxPayloadKg float64 `json:"max_payload_kg,omitempty"`
}

type ListModesResponse struct {
	Modes []ModeResponse `json:"modes"`
}

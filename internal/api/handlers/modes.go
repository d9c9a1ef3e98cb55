package handlers

import (
	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/domain"
	"net/http"
)

// ModeHandler exposes the transport modes the planner accepts, so clients
// can discover valid mode names and their cost constants.
type ModeHandler struct {
	Modes []domain.TransportMode
}

func (h *ModeHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.ListModesResponse{
		Modes: make([]dto.ModeResponse, 0, len(h.Modes)),
	}
	for _, m := range h.Modes {
		res.Modes = append(res.Modes, dto.ModeResponse{
			Name:         m.Name,
			SpeedKmh:     m.SpeedKmh,
			CostPerKm:    m.CostPerKm,
			CO2GPerKm:    m.CO2GPerKm,
			MaxPayloadKg: m.MaxPayloadKg,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

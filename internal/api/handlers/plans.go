package handlers

import (
	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/metrics"
	"courier-route-service/internal/ports"
	"courier-route-service/internal/services"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// PlanHandler runs the optimization pipeline for HTTP clients. A nil Cache
// disables response caching.
type PlanHandler struct {
	Repo             ports.StopRepository
	Cache            ports.PlanCache
	CacheTTL         time.Duration
	Modes            []domain.TransportMode
	DefaultMode      string
	DefaultObjective string
	DefaultReturn    bool
	Settings         services.PlannerSettings
}

// Optimize plans a route over the rows supplied in the request body.
// Identical requests are served from the cache; the X-Plan-Cache header
// tells clients which path answered.
func (h *PlanHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq, errMsg := h.resolve(req.DepotLat, req.DepotLon, req.Mode, req.Objective, req.ReturnToDepot)
	if errMsg != "" {
		writeError(w, r, http.StatusBadRequest, errMsg)
		return
	}
	svcReq.Rows = req.Rows

	var cacheKey string
	if h.Cache != nil {
		cacheKey = planCacheKey(svcReq)
		payload, found, err := h.Cache.Get(r.Context(), cacheKey)
		switch {
		case err != nil:
			log.Printf("plan cache get failed: %v", err)
			metrics.PlanCacheHits.WithLabelValues("error").Inc()
		case found:
			metrics.PlanCacheHits.WithLabelValues("hit").Inc()
			w.Header().Set("X-Plan-Cache", "hit")
			writeRawJSON(w, r, http.StatusOK, payload)
			return
		default:
			metrics.PlanCacheHits.WithLabelValues("miss").Inc()
		}
	}

	result, err := services.PlanCourierRoute(r.Context(), svcReq, h.Settings)
	if err != nil {
		writePlanError(w, r, err)
		return
	}
	recordPlanMetrics(result)

	body, err := json.Marshal(toPlanResponse(result))
	if err != nil {
		log.Printf("marshal plan response failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if h.Cache != nil {
		if err := h.Cache.Put(r.Context(), cacheKey, body, h.CacheTTL); err != nil {
			log.Printf("plan cache put failed: %v", err)
		}
		w.Header().Set("X-Plan-Cache", "miss")
	}
	writeRawJSON(w, r, http.StatusOK, body)
}

// Stored plans over the stops seeded in the repository. Responses are never
// cached because the stored stop set can change between calls.
func (h *PlanHandler) Stored(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.StoredPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq, errMsg := h.resolve(req.DepotLat, req.DepotLon, req.Mode, req.Objective, req.ReturnToDepot)
	if errMsg != "" {
		writeError(w, r, http.StatusBadRequest, errMsg)
		return
	}

	result, err := services.PlanStoredRoute(r.Context(), h.Repo, svcReq, h.Settings)
	if err != nil {
		writePlanError(w, r, err)
		return
	}
	recordPlanMetrics(result)

	writeJSON(w, r, http.StatusOK, toPlanResponse(result))
}

// resolve turns wire-level knobs into a service request, applying the
// configured defaults. The returned message is empty on success and is safe
// to hand back to the client.
func (h *PlanHandler) resolve(lat, lon *float64, modeName, objectiveName string, returnToDepot *bool) (services.PlanRequest, string) {
	var req services.PlanRequest

	if lat == nil || lon == nil {
		return req, "depot_lat and depot_lon are required"
	}
	if !(*lat >= -90 && *lat <= 90) {
		return req, "depot_lat must be between -90 and 90"
	}
	if !(*lon >= -180 && *lon <= 180) {
		return req, "depot_lon must be between -180 and 180"
	}

	if modeName == "" {
		modeName = h.DefaultMode
	}
	mode, ok := domain.ModeByName(h.Modes, modeName)
	if !ok {
		return req, fmt.Sprintf("unknown transport mode %q", modeName)
	}

	if objectiveName == "" {
		objectiveName = h.DefaultObjective
	}
	objective, ok := domain.ParseObjective(objectiveName)
	if !ok {
		return req, fmt.Sprintf("unknown objective %q", objectiveName)
	}

	req.Depot = domain.Coordinates{Lat: *lat, Lon: *lon}
	req.Mode = mode
	req.Objective = objective
	req.ReturnToDepot = h.DefaultReturn
	if returnToDepot != nil {
		req.ReturnToDepot = *returnToDepot
	}
	return req, ""
}

// writePlanError maps pipeline failures onto HTTP statuses. Size violations
// are the client's problem, capacity violations are a conflict with the
// mode's limit, everything else stays opaque.
func writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *domain.InputTooLargeError
	if errors.As(err, &tooLarge) {
		writeError(w, r, http.StatusUnprocessableEntity, tooLarge.Error())
		return
	}
	var capacity *domain.CapacityError
	if errors.As(err, &capacity) {
		writeError(w, r, http.StatusConflict, capacity.Error())
		return
	}
	log.Printf("plan failed: %v", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// planCacheKey digests the resolved request so equivalent calls share one
// cache entry regardless of JSON field order or mode-name casing. Field and
// row separators keep adjacent cells from running together.
func planCacheKey(req services.PlanRequest) string {
	digest := sha256.New()
	fmt.Fprintf(digest, "%s|%s|%v|%v|%t\n", req.Mode.Name, req.Objective, req.Depot.Lat, req.Depot.Lon, req.ReturnToDepot)
	for _, row := range req.Rows {
		for _, cell := range row {
			digest.Write([]byte(cell))
			digest.Write([]byte{0x1f})
		}
		digest.Write([]byte{0x1e})
	}
	return hex.EncodeToString(digest.Sum(nil))
}

func recordPlanMetrics(result *services.PlanResult) {
	metrics.PlansComputed.WithLabelValues(result.Mode.Name, result.Objective.String()).Inc()
	metrics.PlanStops.Observe(float64(result.Metrics.StopCount))
	for _, rej := range result.Rejected {
		metrics.RowsRejected.WithLabelValues(string(rej.Reason)).Inc()
	}
}

func toPlanResponse(result *services.PlanResult) dto.PlanResponse {
	res := dto.PlanResponse{
		PlanID:    result.PlanID,
		Mode:      result.Mode.Name,
		Objective: result.Objective.String(),
		Stops:     make([]dto.StopResponse, 0, len(result.Route)),
		Metrics: dto.MetricsResponse{
			TotalDistanceKm: result.Metrics.TotalDistanceKm,
			TotalTimeHours:  result.Metrics.TotalTimeH,
			TotalCostNok:    result.Metrics.TotalCost,
			TotalCo2G:       result.Metrics.TotalCO2G,
			StopCount:       result.Metrics.StopCount,
		},
		Warnings: result.Warnings,
	}

	for i, stop := range result.Route {
		leg := result.Legs[i]
		res.Stops = append(res.Stops, dto.StopResponse{
			StopNumber:         i + 1,
			Customer:           stop.Customer,
			Latitude:           stop.Coord.Lat,
			Longitude:          stop.Coord.Lon,
			Priority:           stop.Priority.String(),
			WeightKg:           stop.WeightKg,
			DistanceFromPrevKm: leg.DistanceKm,
			LegTimeHours:       leg.TimeH,
			LegCostNok:         leg.Cost,
			LegCo2G:            leg.CO2G,
		})
	}
	if len(result.Legs) == len(result.Route)+1 {
		ret := result.Legs[len(result.Legs)-1]
		res.ReturnLeg = &dto.ReturnLegResponse{
			DistanceKm: ret.DistanceKm,
			TimeHours:  ret.TimeH,
			CostNok:    ret.Cost,
			Co2G:       ret.CO2G,
		}
	}
	for _, rej := range result.Rejected {
		res.Rejected = append(res.Rejected, dto.RejectedRowResponse{
			Fields:    rej.Fields,
			Reason:    string(rej.Reason),
			Detail:    rej.Detail,
			RowNumber: rej.RowIndex,
		})
	}
	return res
}

package handlers

import (
	"context"
	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/services"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeRepo struct {
	stops []domain.DeliveryStop
	err   error
}

func (f *fakeRepo) ListStops(ctx context.Context) ([]domain.DeliveryStop, error) {
	return f.stops, f.err
}

type fakeCache struct {
	entries map[string][]byte
	puts    int
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, ok := c.entries[key]
	return payload, ok, nil
}

func (c *fakeCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if c.entries == nil {
		c.entries = make(map[string][]byte)
	}
	c.entries[key] = payload
	c.puts++
	return nil
}

func testPlanHandler() *PlanHandler {
	return &PlanHandler{
		Modes:            domain.BuiltinModes(),
		DefaultMode:      "car",
		DefaultObjective: "time",
		Settings:         services.PlannerSettings{NearTieEpsilon: 1e-9, MaxStops: 500},
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodePlan(t *testing.T, rr *httptest.ResponseRecorder) dto.PlanResponse {
	t.Helper()
	var res dto.PlanResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var res map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return res["error"]
}

const osloDepot = `"depot_lat": 59.9139, "depot_lon": 10.7522`

func TestOptimizeHappyPath(t *testing.T) {
	h := testPlanHandler()

	rr := postJSON(t, h.Optimize, "/optimize", `{
		"rows": [
			["Kaffebrenneriet", "59.9236", "10.7579", "High", "2.5"],
			["Vippa Oslo", "59.9025", "10.7461", "Medium", "4.0"],
			["", "59.91", "10.75", "Low", "1.0"]
		],
		`+osloDepot+`
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("X-Plan-Cache"); got != "" {
		t.Fatalf("X-Plan-Cache = %q, want unset without a cache", got)
	}

	res := decodePlan(t, rr)
	if res.PlanID == "" {
		t.Fatal("plan_id is empty")
	}
	if res.Mode != "Car" || res.Objective != "time" {
		t.Fatalf("defaults not applied: mode=%q objective=%q", res.Mode, res.Objective)
	}
	if len(res.Stops) != 2 {
		t.Fatalf("stops = %d, want 2", len(res.Stops))
	}
	if res.Stops[0].Customer != "Kaffebrenneriet" || res.Stops[0].StopNumber != 1 {
		t.Fatalf("first stop = %+v", res.Stops[0])
	}
	if res.Stops[0].DistanceFromPrevKm <= 0 {
		t.Fatalf("leg distance = %v, want > 0", res.Stops[0].DistanceFromPrevKm)
	}
	if res.ReturnLeg != nil {
		t.Fatal("return_leg present without return_to_depot")
	}
	if res.Metrics.StopCount != 2 {
		t.Fatalf("stop_count = %d, want 2", res.Metrics.StopCount)
	}
	if len(res.Rejected) != 1 {
		t.Fatalf("rejected = %d, want 1", len(res.Rejected))
	}
	if res.Rejected[0].RowNumber != 4 || res.Rejected[0].Reason != string(domain.InvalidCustomerName) {
		t.Fatalf("reject = %+v", res.Rejected[0])
	}
}

func TestOptimizeReturnToDepot(t *testing.T) {
	h := testPlanHandler()

	rr := postJSON(t, h.Optimize, "/optimize", `{
		"rows": [["Tim Wendelboe", "59.9226", "10.7596", "High", "1.0"]],
		`+osloDepot+`,
		"return_to_depot": true
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	res := decodePlan(t, rr)
	if res.ReturnLeg == nil {
		t.Fatal("return_leg missing")
	}
	if res.ReturnLeg.DistanceKm <= 0 {
		t.Fatalf("return distance = %v, want > 0", res.ReturnLeg.DistanceKm)
	}
}

func TestOptimizeRequestValidation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		errSub string
	}{
		{"missing depot", `{"rows": []}`, http.StatusBadRequest, "depot_lat and depot_lon are required"},
		{"latitude out of range", `{"rows": [], "depot_lat": 91, "depot_lon": 10}`, http.StatusBadRequest, "depot_lat"},
		{"longitude out of range", `{"rows": [], "depot_lat": 59, "depot_lon": 181}`, http.StatusBadRequest, "depot_lon"},
		{"unknown mode", `{"rows": [], ` + osloDepot + `, "mode": "hovercraft"}`, http.StatusBadRequest, "unknown transport mode"},
		{"unknown objective", `{"rows": [], ` + osloDepot + `, "objective": "fastest"}`, http.StatusBadRequest, "unknown objective"},
		{"malformed json", `{"rows": `, http.StatusBadRequest, "invalid json body"},
		{"unknown field", `{"bogus": 1, ` + osloDepot + `}`, http.StatusBadRequest, "invalid json body"},
		{"two objects", `{` + osloDepot + `} {}`, http.StatusBadRequest, "only one JSON object"},
	}

	h := testPlanHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, h.Optimize, "/optimize", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.status, rr.Body.String())
			}
			if msg := errorMessage(t, rr); !strings.Contains(msg, tt.errSub) {
				t.Fatalf("error = %q, want substring %q", msg, tt.errSub)
			}
		})
	}
}

func TestOptimizeRejectsWrongMethod(t *testing.T) {
	h := testPlanHandler()

	rr := httptest.NewRecorder()
	h.Optimize(rr, httptest.NewRequest(http.MethodGet, "/optimize", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow = %q, want POST", allow)
	}
}

func TestOptimizeTooManyStops(t *testing.T) {
	h := testPlanHandler()
	h.Settings.MaxStops = 2

	rr := postJSON(t, h.Optimize, "/optimize", `{
		"rows": [
			["A Cafe", "59.92", "10.76", "High", "1"],
			["B Cafe", "59.93", "10.77", "High", "1"],
			["C Cafe", "59.94", "10.78", "High", "1"]
		],
		`+osloDepot+`
	}`)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", rr.Code, rr.Body.String())
	}
	if msg := errorMessage(t, rr); !strings.Contains(msg, "exceeds the configured maximum") {
		t.Fatalf("error = %q", msg)
	}
}

func TestOptimizeCapacity(t *testing.T) {
	body := `{
		"rows": [
			["Heavy One", "59.92", "10.76", "High", "15"],
			["Heavy Two", "59.93", "10.77", "High", "15"]
		],
		` + osloDepot + `,
		"mode": "bicycle"
	}`

	t.Run("advisory", func(t *testing.T) {
		h := testPlanHandler()
		rr := postJSON(t, h.Optimize, "/optimize", body)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
		}
		res := decodePlan(t, rr)
		if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "exceeds") {
			t.Fatalf("warnings = %v", res.Warnings)
		}
	})

	t.Run("enforced", func(t *testing.T) {
		h := testPlanHandler()
		h.Settings.EnforceCapacity = true
		rr := postJSON(t, h.Optimize, "/optimize", body)
		if rr.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409 (body %s)", rr.Code, rr.Body.String())
		}
		if msg := errorMessage(t, rr); !strings.Contains(msg, "exceeds") {
			t.Fatalf("error = %q", msg)
		}
	})
}

func TestOptimizeCacheRoundTrip(t *testing.T) {
	cache := &fakeCache{}
	h := testPlanHandler()
	h.Cache = cache
	h.CacheTTL = time.Minute

	body := `{
		"rows": [["Solo Stop", "59.92", "10.76", "High", "1"]],
		` + osloDepot + `
	}`

	first := postJSON(t, h.Optimize, "/optimize", body)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	if got := first.Header().Get("X-Plan-Cache"); got != "miss" {
		t.Fatalf("first X-Plan-Cache = %q, want miss", got)
	}

	second := postJSON(t, h.Optimize, "/optimize", body)
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	if got := second.Header().Get("X-Plan-Cache"); got != "hit" {
		t.Fatalf("second X-Plan-Cache = %q, want hit", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatal("cached body differs from computed body")
	}
	if cache.puts != 1 {
		t.Fatalf("cache puts = %d, want 1", cache.puts)
	}

	// A different mode must not share the entry.
	third := postJSON(t, h.Optimize, "/optimize", `{
		"rows": [["Solo Stop", "59.92", "10.76", "High", "1"]],
		`+osloDepot+`,
		"mode": "walking"
	}`)
	if got := third.Header().Get("X-Plan-Cache"); got != "miss" {
		t.Fatalf("third X-Plan-Cache = %q, want miss", got)
	}
	if cache.puts != 2 {
		t.Fatalf("cache puts = %d, want 2", cache.puts)
	}
}

func TestStoredPlan(t *testing.T) {
	h := testPlanHandler()
	h.Repo = &fakeRepo{stops: []domain.DeliveryStop{
		{Customer: "Deichman", Coord: domain.Coordinates{Lat: 59.9075, Lon: 10.7538}, Priority: domain.PriorityHigh, WeightKg: 3},
		{Customer: "Vippa", Coord: domain.Coordinates{Lat: 59.9025, Lon: 10.7461}, Priority: domain.PriorityMedium, WeightKg: 5},
	}}

	rr := postJSON(t, h.Stored, "/plans", `{`+osloDepot+`}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	res := decodePlan(t, rr)
	if len(res.Stops) != 2 {
		t.Fatalf("stops = %d, want 2", len(res.Stops))
	}
	if len(res.Rejected) != 0 {
		t.Fatalf("rejected = %d, want 0", len(res.Rejected))
	}
}

func TestStoredPlanRepositoryFailure(t *testing.T) {
	h := testPlanHandler()
	h.Repo = &fakeRepo{err: errors.New("connection refused")}

	rr := postJSON(t, h.Stored, "/plans", `{`+osloDepot+`}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if msg := errorMessage(t, rr); msg != "internal server error" {
		t.Fatalf("error = %q, repository details must stay opaque", msg)
	}
}

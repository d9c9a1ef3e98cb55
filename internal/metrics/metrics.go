package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// PlansComputed counts optimization runs by mode and objective.
	PlansComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plans_computed_total", Help: "Optimization runs by transport mode and objective."},
		[]string{"mode", "objective"},
	)
	// PlanStops sizes computed plans by number of served stops.
	PlanStops = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "plan_stops", Help: "Stops served per computed plan.", Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500}},
	)
	// RowsRejected counts validation rejects by reason.
	RowsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "rows_rejected_total", Help: "Input rows rejected by validation reason."},
		[]string{"reason"},
	)
	// PlanCacheHits counts plan cache lookups by outcome.
	PlanCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plan_cache_lookups_total", Help: "Plan cache lookups by outcome."},
		[]string{"outcome"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(PlansComputed)
		Registry.MustRegister(PlanStops)
		Registry.MustRegister(RowsRejected)
		Registry.MustRegister(PlanCacheHits)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

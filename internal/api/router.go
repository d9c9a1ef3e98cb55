package api

import (
	"courier-route-service/internal/api/handlers"
	"courier-route-service/internal/config"
	"courier-route-service/internal/metrics"
	"courier-route-service/internal/ports"
	"courier-route-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.StopRepository, planCache ports.PlanCache, cfg *config.Config) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	modes := cfg.TransportModes()
	modeHandler := &handlers.ModeHandler{Modes: modes}
	planHandler := &handlers.PlanHandler{
		Repo:             repo,
		Cache:            planCache,
		CacheTTL:         cfg.CacheTTL(),
		Modes:            modes,
		DefaultMode:      cfg.Planner.DefaultMode,
		DefaultObjective: cfg.Planner.DefaultObjective,
		DefaultReturn:    cfg.Planner.ReturnToDepot,
		Settings:         plannerSettings(cfg),
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/modes", modeHandler.List)
	mux.HandleFunc("/optimize", planHandler.Optimize)
	mux.HandleFunc("/plans", planHandler.Stored)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	var limiter *rate.Limiter
	if cfg.Server.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst)
	}

	return loggingMiddleware(metricsMiddleware(rateLimitMiddleware(limiter, mux)))
}

// plannerSettings maps the planner config section onto the service knobs.
func plannerSettings(cfg *config.Config) services.PlannerSettings {
	return services.PlannerSettings{
		NearTieEpsilon:   cfg.Planner.NearTieEpsilon,
		MaxStops:         cfg.Planner.MaxStops,
		EnforceCapacity:  cfg.Planner.EnforceCapacity,
		ExhaustiveLimit:  cfg.Planner.ExhaustiveLimit,
		RefineIterations: cfg.Planner.RefineIterations,
	}
}

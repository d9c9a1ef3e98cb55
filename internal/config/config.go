package config

import (
	"courier-route-service/internal/domain"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is probed when no explicit config path is given. A missing
// default file is fine; every field has a usable default.
const DefaultPath = "config.yml"

// ServerConfig tunes the HTTP listener.
type ServerConfig struct {
	Port           int     `yaml:"port" validate:"gt=0,lte=65535"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `yaml:"rate_limit_burst" validate:"gte=0"`
}

// PlannerConfig tunes the optimization pipeline.
type PlannerConfig struct {
	DefaultMode      string  `yaml:"default_mode" validate:"required"`
	DefaultObjective string  `yaml:"default_objective" validate:"required"`
	NearTieEpsilon   float64 `yaml:"near_tie_epsilon" validate:"gte=0"`
	MaxStops         int     `yaml:"max_stops" validate:"gte=0"`
	EnforceCapacity  bool    `yaml:"enforce_capacity"`
	ExhaustiveLimit  int     `yaml:"exhaustive_limit" validate:"gte=0,lte=10"`
	RefineIterations int     `yaml:"refine_iterations" validate:"gte=0"`
	ReturnToDepot    bool    `yaml:"return_to_depot"`
}

// CacheConfig wires the optional Redis plan cache. An empty URL disables
// caching entirely.
type CacheConfig struct {
	RedisURL   string `yaml:"redis_url" validate:"omitempty"`
	TTLSeconds int    `yaml:"ttl_seconds" validate:"gte=0"`
}

// ModeConfig describes one transport mode. When no modes are configured the
// built-in Car/Bicycle/Walking set applies.
type ModeConfig struct {
	Name         string  `yaml:"name" validate:"required"`
	SpeedKmh     float64 `yaml:"speed_kmh" validate:"gt=0"`
	CostPerKm    float64 `yaml:"cost_per_km" validate:"gte=0"`
	CO2GPerKm    float64 `yaml:"co2_g_per_km" validate:"gte=0"`
	MaxPayloadKg float64 `yaml:"max_payload_kg" validate:"gte=0"`
}

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Planner PlannerConfig `yaml:"planner"`
	Cache   CacheConfig   `yaml:"cache"`
	Modes   []ModeConfig  `yaml:"modes"`
}

// Load reads and validates configuration. With an empty path the default
// file is probed and its absence tolerated; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults only.
	default:
		return nil, fmt.Errorf("load config: read %q: %w", path, err)
	}

	cfg.applyDefaults()

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return nil, fmt.Errorf("load config: server: %w", err)
	}
	if err := v.Struct(cfg.Planner); err != nil {
		return nil, fmt.Errorf("load config: planner: %w", err)
	}
	if err := v.Struct(cfg.Cache); err != nil {
		return nil, fmt.Errorf("load config: cache: %w", err)
	}
	for i, m := range cfg.Modes {
		if err := v.Struct(m); err != nil {
			return nil, fmt.Errorf("load config: mode #%d (%s): %w", i+1, m.Name, err)
		}
	}

	if _, ok := domain.ParseObjective(cfg.Planner.DefaultObjective); !ok {
		return nil, fmt.Errorf("load config: unknown default objective %q", cfg.Planner.DefaultObjective)
	}
	if _, ok := domain.ModeByName(cfg.TransportModes(), cfg.Planner.DefaultMode); !ok {
		return nil, fmt.Errorf("load config: default mode %q is not a configured mode", cfg.Planner.DefaultMode)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	// Rate limiting is opt-in: zero RPS leaves it off. A configured rate
	// with no burst gets a one-second burst window.
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = int(c.Server.RateLimitRPS) + 1
	}
	if c.Planner.DefaultMode == "" {
		c.Planner.DefaultMode = "car"
	}
	if c.Planner.DefaultObjective == "" {
		c.Planner.DefaultObjective = "time"
	}
	if c.Planner.NearTieEpsilon == 0 {
		c.Planner.NearTieEpsilon = 1e-9
	}
	if c.Planner.MaxStops == 0 {
		c.Planner.MaxStops = 500
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 300
	}
}

// TransportModes returns the configured mode set, falling back to the
// built-in modes when the file configures none.
func (c *Config) TransportModes() []domain.TransportMode {
	if len(c.Modes) == 0 {
		return domain.BuiltinModes()
	}

	modes := make([]domain.TransportMode, len(c.Modes))
	for i, m := range c.Modes {
		modes[i] = domain.TransportMode{
			Name:         m.Name,
			SpeedKmh:     m.SpeedKmh,
			CostPerKm:    m.CostPerKm,
			CO2GPerKm:    m.CO2GPerKm,
			MaxPayloadKg: m.MaxPayloadKg,
		}
	}
	return modes
}

// CacheTTL returns the plan cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

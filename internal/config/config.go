package config

import (
	"errors"
	"fmt"
	"os"
	"septic-route-service/internal/services"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server process reads from the environment.
// Optional collaborators (Postgres, Redis) are disabled when their address is empty.
type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Distance DistanceConfig
	Routing  RoutingConfig
}

type AppConfig struct {
	Env  string
	Port int
	// SeedPath is the dump site JSON used when no database is configured.
	SeedPath string
	// GallonsTablePath optionally overrides the built-in gallons table.
	GallonsTablePath string
}

type DBConfig struct {
	URL string
}

type RedisConfig struct {
	Addr string
}

type DistanceConfig struct {
	// Provider is one of ors, google, mock.
	Provider        string
	ORSAPIKey       string
	ORSBaseURL      string
	ORSRatePerMin   int
	GoogleAPIKey    string
	GoogleBaseURL   string
	LegCacheTTL     time.Duration
	LegCacheEnabled bool
}

type RoutingConfig struct {
	DepotAddress   string
	ReferenceLat   float64
	ReferenceLng   float64
	DistanceMetric string
	LegWorkers     int
	LegTimeout     time.Duration
	RouteDeadline  time.Duration
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = Get("APP_ENV", "local")
	c.App.Port, parseErrs = intOr(parseErrs, "PORT", 8080)
	c.App.SeedPath = Get("SEED_PATH", "data/seeds/dump_sites.json")
	c.App.GallonsTablePath = Get("GALLONS_TABLE_PATH", "")

	c.DB.URL = Get("DATABASE_URL", "")
	c.Redis.Addr = Get("REDIS_ADDR", "")

	c.Distance.Provider = strings.ToLower(Get("DISTANCE_PROVIDER", "ors"))
	c.Distance.ORSAPIKey = Get("ORS_API_KEY", "")
	c.Distance.ORSBaseURL = Get("ORS_BASE_URL", "")
	c.Distance.ORSRatePerMin, parseErrs = intOr(parseErrs, "ORS_RATE_PER_MINUTE", 40)
	c.Distance.GoogleAPIKey = Get("GOOGLE_MAPS_API_KEY", "")
	c.Distance.GoogleBaseURL = Get("GOOGLE_MAPS_BASE_URL", "")
	c.Distance.LegCacheTTL, parseErrs = durationOr(parseErrs, "LEG_CACHE_TTL", 7*24*time.Hour)
	c.Distance.LegCacheEnabled = Get("LEG_CACHE_ENABLED", "true") != "false"

	c.Routing.DepotAddress = Get("DEPOT_ADDRESS", "")
	c.Routing.ReferenceLat, parseErrs = floatOr(parseErrs, "DUMP_REFERENCE_LAT", services.DefaultDumpReference.Lat)
	c.Routing.ReferenceLng, parseErrs = floatOr(parseErrs, "DUMP_REFERENCE_LNG", services.DefaultDumpReference.Lng)
	c.Routing.DistanceMetric = Get("DUMP_DISTANCE_METRIC", "planar")
	c.Routing.LegWorkers, parseErrs = intOr(parseErrs, "LEG_WORKERS", services.DefaultLegWorkers)
	c.Routing.LegTimeout, parseErrs = durationOr(parseErrs, "LEG_TIMEOUT", services.DefaultLegTimeout)
	c.Routing.RouteDeadline, parseErrs = durationOr(parseErrs, "ROUTE_DEADLINE", services.DefaultRouteDeadline)

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error

	if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a valid port, got %d", c.App.Port))
	}

	switch c.Distance.Provider {
	case "ors":
		if c.Distance.ORSAPIKey == "" {
			errs = append(errs, errors.New("ORS_API_KEY is required when DISTANCE_PROVIDER=ors"))
		}
		if c.Distance.ORSRatePerMin < 0 {
			errs = append(errs, fmt.Errorf("ORS_RATE_PER_MINUTE must not be negative, got %d", c.Distance.ORSRatePerMin))
		}
	case "google":
		if c.Distance.GoogleAPIKey == "" {
			errs = append(errs, errors.New("GOOGLE_MAPS_API_KEY is required when DISTANCE_PROVIDER=google"))
		}
	case "mock":
		if c.IsProduction() {
			errs = append(errs, errors.New("DISTANCE_PROVIDER=mock is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("DISTANCE_PROVIDER must be one of ors, google, mock, got %q", c.Distance.Provider))
	}

	if c.Routing.ReferenceLat < -90 || c.Routing.ReferenceLat > 90 {
		errs = append(errs, fmt.Errorf("DUMP_REFERENCE_LAT out of range: %v", c.Routing.ReferenceLat))
	}
	if c.Routing.ReferenceLng < -180 || c.Routing.ReferenceLng > 180 {
		errs = append(errs, fmt.Errorf("DUMP_REFERENCE_LNG out of range: %v", c.Routing.ReferenceLng))
	}
	if _, err := services.ParseDistanceMetric(c.Routing.DistanceMetric); err != nil {
		errs = append(errs, fmt.Errorf("DUMP_DISTANCE_METRIC: %w", err))
	}
	if c.Routing.LegWorkers <= 0 {
		errs = append(errs, fmt.Errorf("LEG_WORKERS must be positive, got %d", c.Routing.LegWorkers))
	}
	if c.Routing.LegTimeout <= 0 {
		errs = append(errs, errors.New("LEG_TIMEOUT must be positive"))
	}
	if c.Routing.RouteDeadline < c.Routing.LegTimeout {
		errs = append(errs, errors.New("ROUTE_DEADLINE must not be shorter than LEG_TIMEOUT"))
	}

	if c.IsProduction() && c.DB.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required in production"))
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// gallonsFile is the on-disk shape of the gallons table.
type gallonsFile struct {
	Fallback *float64           `yaml:"fallback"`
	Services map[string]float64 `yaml:"services"`
}

// LoadGallonsTable reads a YAML gallons table. An empty path yields the
// built-in table.
func LoadGallonsTable(path string) (services.GallonsTable, error) {
	if path == "" {
		return services.DefaultGallonsTable(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return services.GallonsTable{}, fmt.Errorf("load gallons table: read %q: %w", path, err)
	}

	var f gallonsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return services.GallonsTable{}, fmt.Errorf("load gallons table: parse yaml: %w", err)
	}

	if len(f.Services) == 0 {
		return services.GallonsTable{}, errors.New("load gallons table: no services defined")
	}
	for name, g := range f.Services {
		if g < 0 {
			return services.GallonsTable{}, fmt.Errorf("load gallons table: %q has negative gallons %v", name, g)
		}
	}

	fallback := float64(services.DefaultUnknownServiceGallons)
	if f.Fallback != nil {
		if *f.Fallback < 0 {
			return services.GallonsTable{}, fmt.Errorf("load gallons table: negative fallback %v", *f.Fallback)
		}
		fallback = *f.Fallback
	}

	return services.NewGallonsTable(f.Services, fallback), nil
}

func intOr(errs []error, key string, fallback int) (int, []error) {
	v := Get(key, "")
	if v == "" {
		return fallback, errs
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, append(errs, fmt.Errorf("%s must be an integer, got %q", key, v))
	}
	return n, errs
}

func floatOr(errs []error, key string, fallback float64) (float64, []error) {
	v := Get(key, "")
	if v == "" {
		return fallback, errs
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, append(errs, fmt.Errorf("%s must be a number, got %q", key, v))
	}
	return f, errs
}

func durationOr(errs []error, key string, fallback time.Duration) (time.Duration, []error) {
	v := Get(key, "")
	if v == "" {
		return fallback, errs
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, append(errs, fmt.Errorf("%s must be a duration like 30s, got %q", key, v))
	}
	return d, errs
}

func isValidEnv(env string) bool {
	switch env {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			msgs = append(msgs, e.Error())
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, "; "))
}

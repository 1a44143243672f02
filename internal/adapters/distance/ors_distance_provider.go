package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"septic-route-service/internal/domain"
	"septic-route-service/internal/platform/logger"
	"septic-route-service/internal/platform/obs"
	"septic-route-service/internal/ports"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultORSBaseURL = "https://api.openrouteservice.org"
	DefaultORSProfile = "driving-car"
)

// ORSConfig configures the OpenRouteService provider. Zero values fall back
// to the public endpoint and the driving-car profile.
type ORSConfig struct {
	APIKey  string
	BaseURL string
	Profile string
	// RequestsPerMinute paces outgoing calls. Zero disables pacing.
	RequestsPerMinute int
	Timeout           time.Duration
	MaxAttempts       int
	Backoff           time.Duration
}

// ORSDistanceProvider implements DistanceProvider using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Directions calls with retry/backoff and request pacing
//
// The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	geocodeCache ports.GeocodeCache
	limiter      *rate.Limiter
	maxAttempts  int
	backoff      time.Duration
}

func NewORSDistanceProvider(cfg ORSConfig, geocodeCache ports.GeocodeCache) (*ORSDistanceProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSDistanceProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		profile:      cfg.Profile,
		geocodeCache: geocodeCache,
		maxAttempts:  cfg.MaxAttempts,
		backoff:      cfg.Backoff,
	}

	if provider.baseURL == "" {
		provider.baseURL = DefaultORSBaseURL
	}
	if provider.profile == "" {
		provider.profile = DefaultORSProfile
	}
	if cfg.Timeout > 0 {
		provider.session.Timeout = cfg.Timeout
	}
	if provider.maxAttempts <= 0 {
		provider.maxAttempts = 3
	}
	if provider.backoff <= 0 {
		provider.backoff = 200 * time.Millisecond
	}
	if cfg.RequestsPerMinute > 0 {
		provider.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSDistanceProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GetDistance geocodes both addresses (cache first) and asks the directions
// service for the driving leg between them.
func (o *ORSDistanceProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistance")(&err)

	normOrigin := o.normalize(origin)
	if normOrigin == "" {
		return ports.DistanceResult{}, errors.New("origin must be non-empty")
	}

	normDestination := o.normalize(destination)
	if normDestination == "" {
		return ports.DistanceResult{}, errors.New("destination must be non-empty")
	}

	coords, err := o.resolve(ctx, []string{normOrigin, normDestination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("retrieving coordinates: %w", err)
	}

	result, err := o.fetchDirections(ctx, coords[normOrigin], coords[normDestination])
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf(
			"fetching directions %q -> %q: %w",
			normOrigin, normDestination, err,
		)
	}

	return result, nil
}

// resolve returns coordinates for every address, consulting the geocode
// cache before calling ORS. Cache write failures are logged and ignored.
func (o *ORSDistanceProvider) resolve(ctx context.Context, needed []string) (map[string]domain.Coordinates, error) {
	hits := make(map[string]domain.Coordinates)
	if o.geocodeCache != nil {
		var err error
		hits, err = o.geocodeCache.GetMany(ctx, needed)
		if err != nil {
			return nil, fmt.Errorf("ORS get geocode cache: %w", err)
		}
	}

	misses := make([]string, 0, len(needed))
	for _, a := range needed {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}

	fresh := make(map[string]domain.Coordinates)
	if len(misses) > 0 {
		var err error
		fresh, err = o.geocodeMany(ctx, misses)
		if err != nil {
			return nil, err
		}
	}

	if o.geocodeCache != nil && len(fresh) > 0 {
		if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
			logger.From(ctx).Warn("geocode cache write failed", "err", err)
		}
	}

	coords := make(map[string]domain.Coordinates, len(hits)+len(fresh))
	for k, v := range hits {
		coords[k] = v
	}
	for k, v := range fresh {
		coords[k] = v
	}

	for _, a := range needed {
		if _, ok := coords[a]; !ok {
			return nil, fmt.Errorf("missing coordinate for %q", a)
		}
	}

	return coords, nil
}

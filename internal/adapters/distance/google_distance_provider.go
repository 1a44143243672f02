package distance

import (
	"context"
	"errors"
	"fmt"
	"septic-route-service/internal/platform/obs"
	"septic-route-service/internal/ports"

	"googlemaps.github.io/maps"
)

// GoogleDistanceProvider resolves legs with the Google Maps Directions API.
// Google geocodes free-form addresses itself, so no geocode cache is needed.
type GoogleDistanceProvider struct {
	client *maps.Client
}

// NewGoogleDistanceProvider builds a provider for apiKey. A non-empty baseURL
// replaces the public endpoint.
func NewGoogleDistanceProvider(apiKey, baseURL string) (*GoogleDistanceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GoogleDistanceProvider{client: client}, nil
}

func (g *GoogleDistanceProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "google.GetDistance")(&err)

	routes, _, err := g.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return ports.DistanceResult{}, errors.New("no route found")
	}

	leg := routes[0].Legs[0]
	return ports.DistanceResult{
		DurationMinutes: leg.Duration.Minutes(),
		DistanceKm:      float64(leg.Distance.Meters) / 1000.0,
		Geometry:        routes[0].OverviewPolyline.Points,
	}, nil
}

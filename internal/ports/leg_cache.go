package ports

import (
	"context"
	"septic-route-service/internal/domain"
)

// Persistent cache of resolved legs keyed by normalized origin and destination.
type LegCache interface {
	// Return the cached leg and whether it was found.
	Get(ctx context.Context, origin, destination string) (DistanceResult, bool, error)
	Put(ctx context.Context, origin, destination string, r DistanceResult) error
}

// Persistent cache mapping addresses to coordinates.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

package ports

import (
	"context"
	"fmt"
)

// Travel time and distance between two locations.
// Geometry is an encoded polyline when the provider returns one.
type DistanceResult struct {
	DurationMinutes float64
	DistanceKm      float64
	Geometry        string
}

// Contract for retrieving travel distance and duration between locations.
// Address to coordinate resolution, when needed, is internal to the provider.
type DistanceProvider interface {
	// Return travel distance and estimated duration between two addresses.
	GetDistance(ctx context.Context, origin string, destination string) (DistanceResult, error)
}

// LegError is the typed failure returned for an unresolved leg.
type LegError struct {
	Origin      string
	Destination string
	Err         error
}

func (e *LegError) Error() string {
	return fmt.Sprintf("leg %q -> %q: %v", e.Origin, e.Destination, e.Err)
}

func (e *LegError) Unwrap() error { return e.Err }

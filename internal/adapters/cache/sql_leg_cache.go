package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"septic-route-service/internal/platform/obs"
	"septic-route-service/internal/ports"
	"time"
)

// SQLLegCache is a Postgres-backed cache of resolved origin->destination legs.
// Entries older than TTL are treated as misses; a zero TTL keeps them forever.
type SQLLegCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLLegCache(db *sql.DB, ttl time.Duration) *SQLLegCache {
	return &SQLLegCache{DB: db, TTL: ttl}
}

func (s *SQLLegCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.DistanceResult, _ bool, err error) {
	defer obs.Time(ctx, "leg.cache.Get")(&err)

	if s.DB == nil {
		return ports.DistanceResult{}, false, errors.New("leg cache: db is nil")
	}

	q := `
	SELECT duration_minutes, distance_km, geometry, updated_at
	FROM leg_cache
	WHERE origin = $1
		AND destination = $2;
	`

	var (
		r         ports.DistanceResult
		updatedAt time.Time
	)
	err = s.DB.QueryRowContext(ctx, q, origin, destination).
		Scan(&r.DurationMinutes, &r.DistanceKm, &r.Geometry, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.DistanceResult{}, false, nil
	}
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get leg cache: %w", err)
	}

	if s.TTL > 0 && time.Since(updatedAt) > s.TTL {
		return ports.DistanceResult{}, false, nil
	}

	return r, true, nil
}

func (s *SQLLegCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	r ports.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}

	if origin == "" || destination == "" {
		return errors.New("insert leg cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO leg_cache (origin, destination, duration_minutes, distance_km, geometry, updated_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	ON CONFLICT (origin, destination) DO UPDATE
	SET duration_minutes = EXCLUDED.duration_minutes,
		distance_km = EXCLUDED.distance_km,
		geometry = EXCLUDED.geometry,
		updated_at = EXCLUDED.updated_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, r.DurationMinutes, r.DistanceKm, r.Geometry); err != nil {
		return fmt.Errorf("insert leg cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}

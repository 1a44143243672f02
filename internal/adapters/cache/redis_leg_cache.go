package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"septic-route-service/internal/platform/obs"
	"septic-route-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

const legKeyPrefix = "leg:"

// RedisLegCache stores resolved legs as JSON values with an expiry.
type RedisLegCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisLegCache(client *redis.Client, ttl time.Duration) *RedisLegCache {
	return &RedisLegCache{Client: client, TTL: ttl}
}

type legEntry struct {
	DurationMinutes float64 `json:"duration_minutes"`
	DistanceKm      float64 `json:"distance_km"`
	Geometry        string  `json:"geometry,omitempty"`
}

func legKey(origin, destination string) string {
	return legKeyPrefix + origin + "|" + destination
}

func (c *RedisLegCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.DistanceResult, _ bool, err error) {
	defer obs.Time(ctx, "leg.redis.Get")(&err)

	raw, err := c.Client.Get(ctx, legKey(origin, destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.DistanceResult{}, false, nil
	}
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("redis get leg: %w", err)
	}

	var e legEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("decode cached leg: %w", err)
	}

	return ports.DistanceResult{
		DurationMinutes: e.DurationMinutes,
		DistanceKm:      e.DistanceKm,
		Geometry:        e.Geometry,
	}, true, nil
}

func (c *RedisLegCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	r ports.DistanceResult,
) error {
	raw, err := json.Marshal(legEntry{
		DurationMinutes: r.DurationMinutes,
		DistanceKm:      r.DistanceKm,
		Geometry:        r.Geometry,
	})
	if err != nil {
		return fmt.Errorf("encode leg: %w", err)
	}

	if err := c.Client.Set(ctx, legKey(origin, destination), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("redis set leg: %w", err)
	}
	return nil
}

package distance

import (
	"context"
	"septic-route-service/internal/platform/logger"
	"septic-route-service/internal/platform/metrics"
	"septic-route-service/internal/ports"
	"strings"
)

// CachedDistanceProvider serves legs from a LegCache and falls through to the
// wrapped provider on a miss. Only successful lookups are stored, so a failed
// leg is retried on the next request. Cache errors never fail a lookup.
// Hits are counted under the cache_hit outcome for name.
type CachedDistanceProvider struct {
	inner ports.DistanceProvider
	cache ports.LegCache
	name  string
}

func NewCachedDistanceProvider(name string, inner ports.DistanceProvider, cache ports.LegCache) *CachedDistanceProvider {
	return &CachedDistanceProvider{inner: inner, cache: cache, name: name}
}

func (c *CachedDistanceProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (ports.DistanceResult, error) {
	o := cacheKey(origin)
	d := cacheKey(destination)
	log := logger.From(ctx)

	if r, ok, err := c.cache.Get(ctx, o, d); err != nil {
		log.Warn("leg cache read failed", "origin", o, "destination", d, "err", err)
	} else if ok {
		metrics.LegLookups.WithLabelValues(c.name, "cache_hit").Inc()
		return r, nil
	}

	r, err := c.inner.GetDistance(ctx, origin, destination)
	if err != nil {
		return ports.DistanceResult{}, err
	}

	if err := c.cache.Put(ctx, o, d, r); err != nil {
		log.Warn("leg cache write failed", "origin", o, "destination", d, "err", err)
	}

	return r, nil
}

func cacheKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

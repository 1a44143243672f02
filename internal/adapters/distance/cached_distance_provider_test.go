package distance

import (
	"context"
	"errors"
	"septic-route-service/internal/adapters/cache"
	"septic-route-service/internal/platform/metrics"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
)

func TestCachedDistanceProvider_CachesSuccessOnly(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	inner := NewMockDistanceProvider([]MockPair{
		{From: "A", To: "B", Minutes: 10, Km: 5},
	}).Fail("B", "C", errors.New("upstream down"))

	p := NewCachedDistanceProvider("test-cached", inner, cache.NewRedisLegCache(client, time.Hour))
	ctx := context.Background()
	hitsBefore := testutil.ToFloat64(metrics.LegLookups.WithLabelValues("test-cached", "cache_hit"))

	for i := 0; i < 3; i++ {
		r, err := p.GetDistance(ctx, "A", "B")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.DurationMinutes != 10 {
			t.Fatalf("unexpected result: %+v", r)
		}
	}
	if inner.Calls() != 1 {
		t.Fatalf("expected one upstream call, got %d", inner.Calls())
	}
	if got := testutil.ToFloat64(metrics.LegLookups.WithLabelValues("test-cached", "cache_hit")); got != hitsBefore+2 {
		t.Fatalf("cache_hit count = %v, want %v", got, hitsBefore+2)
	}

	for i := 0; i < 2; i++ {
		if _, err := p.GetDistance(ctx, "B", "C"); err == nil {
			t.Fatalf("expected failure")
		}
	}
	if inner.Calls() != 3 {
		t.Fatalf("failures must not be cached, got %d upstream calls", inner.Calls())
	}
}

func TestCachedDistanceProvider_CacheOutageFallsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	inner := NewMockDistanceProvider([]MockPair{{From: "A", To: "B", Minutes: 4, Km: 2}})
	p := NewCachedDistanceProvider("test-cached", inner, cache.NewRedisLegCache(client, time.Hour))

	r, err := p.GetDistance(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("cache outage should not fail lookup: %v", err)
	}
	if r.DistanceKm != 2 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

package distance

import (
	"context"
	"septic-route-service/internal/platform/metrics"
	"septic-route-service/internal/ports"
	"time"
)

// InstrumentedProvider records lookup outcomes and latency per provider name.
type InstrumentedProvider struct {
	inner ports.DistanceProvider
	name  string
}

func NewInstrumentedProvider(name string, inner ports.DistanceProvider) *InstrumentedProvider {
	return &InstrumentedProvider{inner: inner, name: name}
}

func (p *InstrumentedProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (ports.DistanceResult, error) {
	start := time.Now()
	r, err := p.inner.GetDistance(ctx, origin, destination)
	metrics.LegLatency.WithLabelValues(p.name).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.LegLookups.WithLabelValues(p.name, outcome).Inc()

	return r, err
}

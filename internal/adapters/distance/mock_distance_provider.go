package distance

import (
	"context"
	"fmt"
	"septic-route-service/internal/ports"
	"sync/atomic"
)

type MockPair struct {
	From, To string
	Minutes  float64
	Km       float64
}

// MockDistanceProvider answers from a fixed pair table. Pairs marked with Fail
// return an error. Pairs missing from the table return the WithDefault leg, or
// an error when no default is set.
type MockDistanceProvider struct {
	m        map[string]ports.DistanceResult
	fail     map[string]error
	fallback *ports.DistanceResult
	calls    atomic.Int64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = ports.DistanceResult{DurationMinutes: p.Minutes, DistanceKm: p.Km}
	}
	return &MockDistanceProvider{m: m, fail: map[string]error{}}
}

// Fail forces the given pair to return err.
func (p *MockDistanceProvider) Fail(from, to string, err error) *MockDistanceProvider {
	p.fail[from+"|"+to] = err
	return p
}

// WithDefault answers every pair missing from the table with a fixed leg.
func (p *MockDistanceProvider) WithDefault(minutes, km float64) *MockDistanceProvider {
	p.fallback = &ports.DistanceResult{DurationMinutes: minutes, DistanceKm: km}
	return p
}

// Calls reports how many lookups were made.
func (p *MockDistanceProvider) Calls() int { return int(p.calls.Load()) }

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	p.calls.Add(1)

	if err := ctx.Err(); err != nil {
		return ports.DistanceResult{}, err
	}

	if err, ok := p.fail[origin+"|"+destination]; ok {
		return ports.DistanceResult{}, err
	}

	r, ok := p.m[origin+"|"+destination]
	if !ok {
		if p.fallback != nil {
			return *p.fallback, nil
		}
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q", origin, destination)
	}

	return r, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"septic-route-service/internal/domain"
	"septic-route-service/internal/platform/logger"
	"septic-route-service/internal/ports"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultLegWorkers    = 4
	DefaultLegTimeout    = 15 * time.Second
	DefaultRouteDeadline = 60 * time.Second
)

// AggregateOptions bounds the leg lookups made while annotating a route.
type AggregateOptions struct {
	// Workers caps concurrent provider calls.
	Workers int
	// LegTimeout bounds a single provider call.
	LegTimeout time.Duration
	// Deadline bounds the whole lookup phase. Legs still pending when it
	// expires are reported as unresolved.
	Deadline time.Duration
}

func (o AggregateOptions) withDefaults() AggregateOptions {
	out := o
	if out.Workers <= 0 {
		out.Workers = DefaultLegWorkers
	}
	if out.LegTimeout <= 0 {
		out.LegTimeout = DefaultLegTimeout
	}
	if out.Deadline <= 0 {
		out.Deadline = DefaultRouteDeadline
	}
	return out
}

// AggregateRoute annotates a complete stop sequence with drive legs and totals.
//
// Every consecutive stop pair is looked up independently. A failed or timed
// out lookup leaves that leg nil and is excluded from the totals; it never
// fails the route. Work time counts customer job stops only.
func AggregateRoute(
	ctx context.Context,
	stops []domain.RouteStop,
	truck domain.Truck,
	provider ports.DistanceProvider,
	opts AggregateOptions,
) *domain.Route {
	opts = opts.withDefaults()

	route := &domain.Route{
		TruckID:    truck.ID,
		Stops:      stops,
		TankStatus: TankStatusFor(truck),
	}

	for _, s := range stops {
		switch s.Type {
		case domain.StopCustomerJob:
			if s.Job != nil {
				route.TotalWorkTimeMinutes += s.Job.EstimatedDurationMinutes
			}
		case domain.StopDumpSite:
			route.DumpStopsCount++
			if s.Dump != nil {
				route.TotalDumpTimeMinutes += s.Dump.EstimatedDumpTimeMinutes
			}
		}
	}

	route.Legs = resolveLegs(ctx, stops, provider, opts)
	for _, leg := range route.Legs {
		if leg == nil {
			route.UnresolvedLegs++
			continue
		}
		route.TotalDriveTimeMinutes += leg.DriveTimeMinutes
		route.TotalDistanceKm += leg.DistanceKm
	}

	route.TotalEstimatedTimeMinutes = route.TotalDriveTimeMinutes + float64(route.TotalWorkTimeMinutes)
	return route
}

// resolveLegs fetches all legs through a bounded worker pool. Results are
// stored by leg index; whatever has resolved when the deadline hits is kept.
func resolveLegs(
	ctx context.Context,
	stops []domain.RouteStop,
	provider ports.DistanceProvider,
	opts AggregateOptions,
) []*domain.Leg {
	n := len(stops) - 1
	if n <= 0 {
		return []*domain.Leg{}
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Deadline)
	defer cancel()

	log := logger.From(ctx)

	var (
		mu     sync.Mutex
		sealed bool
		legs   = make([]*domain.Leg, n)
	)

	var g errgroup.Group
	g.SetLimit(opts.Workers)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			origin := stops[i].Address
			destination := stops[i+1].Address

			g.Go(func() error {
				leg, err := lookupLeg(ctx, provider, origin, destination, opts.LegTimeout)
				if err != nil {
					log.Warn("leg unresolved", "leg", i, "origin", origin, "destination", destination, "err", err)
					return nil
				}

				mu.Lock()
				if !sealed {
					legs[i] = leg
				}
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn("route deadline reached; returning partial legs", "legs", n, "deadline", opts.Deadline.String())
	}

	mu.Lock()
	sealed = true
	out := make([]*domain.Leg, n)
	copy(out, legs)
	mu.Unlock()

	return out
}

func lookupLeg(
	ctx context.Context,
	provider ports.DistanceProvider,
	origin string,
	destination string,
	timeout time.Duration,
) (*domain.Leg, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ports.LegError{Origin: origin, Destination: destination, Err: err}
	}

	if provider == nil {
		return nil, &ports.LegError{Origin: origin, Destination: destination, Err: errors.New("no distance provider")}
	}

	// Consecutive stops at the same address need no drive.
	if normalizeAddress(origin) != "" && normalizeAddress(origin) == normalizeAddress(destination) {
		return &domain.Leg{}, nil
	}

	legCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r, err := provider.GetDistance(legCtx, origin, destination)
	if err != nil {
		var le *ports.LegError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &ports.LegError{Origin: origin, Destination: destination, Err: err}
	}

	if r.DurationMinutes < 0 || r.DistanceKm < 0 {
		return nil, &ports.LegError{
			Origin:      origin,
			Destination: destination,
			Err:         fmt.Errorf("negative metrics: duration=%v distance=%v", r.DurationMinutes, r.DistanceKm),
		}
	}

	return &domain.Leg{
		DriveTimeMinutes: r.DurationMinutes,
		DistanceKm:       r.DistanceKm,
		Geometry:         r.Geometry,
	}, nil
}

// normalizeAddress collapses whitespace and case so equal addresses compare equal.
func normalizeAddress(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

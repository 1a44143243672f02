package services

import (
	"context"
	"errors"
	"septic-route-service/internal/adapters/distance"
	"septic-route-service/internal/domain"
	"septic-route-service/internal/ports"
	"testing"
	"time"
)

func TestAggregateRoute_FailedLegDoesNotFailRoute(t *testing.T) {
	stops := []domain.RouteStop{
		domain.NewStartStop("Depot"),
		{Type: domain.StopCustomerJob, Address: "A", Job: &domain.JobStop{TicketID: "1", EstimatedDurationMinutes: 45}},
		{Type: domain.StopDumpSite, Address: "Plant", Dump: &domain.DumpStop{EstimatedDumpTimeMinutes: 15}},
		{Type: domain.StopCustomerJob, Address: "B", Job: &domain.JobStop{TicketID: "2", EstimatedDurationMinutes: 60}},
		domain.NewEndStop("Depot"),
	}

	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: "Depot", To: "A", Minutes: 10, Km: 5},
		{From: "A", To: "Plant", Minutes: 7, Km: 3},
		{From: "B", To: "Depot", Minutes: 20, Km: 8},
	}).Fail("Plant", "B", errors.New("no route"))

	truck := domain.Truck{ID: "T1", TankCapacityGallons: 3000}
	route := AggregateRoute(context.Background(), stops, truck, provider, AggregateOptions{})

	if len(route.Legs) != 4 {
		t.Fatalf("expected 4 legs, got %d", len(route.Legs))
	}
	if route.Legs[2] != nil {
		t.Fatalf("expected unresolved leg 2, got %+v", route.Legs[2])
	}
	if route.Legs[0] == nil || route.Legs[0].DriveTimeMinutes != 10 {
		t.Fatalf("leg 0 stored out of place: %+v", route.Legs[0])
	}
	if route.Legs[3] == nil || route.Legs[3].DistanceKm != 8 {
		t.Fatalf("leg 3 stored out of place: %+v", route.Legs[3])
	}

	if route.UnresolvedLegs != 1 {
		t.Fatalf("unresolved = %d, want 1", route.UnresolvedLegs)
	}
	if route.TotalDriveTimeMinutes != 37 || route.TotalDistanceKm != 16 {
		t.Fatalf("totals = %v min / %v km, want 37 / 16", route.TotalDriveTimeMinutes, route.TotalDistanceKm)
	}
	if route.TotalWorkTimeMinutes != 105 {
		t.Fatalf("work time = %d, want 105", route.TotalWorkTimeMinutes)
	}
	if route.DumpStopsCount != 1 || route.TotalDumpTimeMinutes != 15 {
		t.Fatalf("dump stats = %d / %d", route.DumpStopsCount, route.TotalDumpTimeMinutes)
	}
	if route.TotalEstimatedTimeMinutes != 142 {
		t.Fatalf("estimated = %v, want 142", route.TotalEstimatedTimeMinutes)
	}
}

func TestAggregateRoute_SameAddressLegsSkipProvider(t *testing.T) {
	stops := []domain.RouteStop{domain.NewStartStop("1 Depot Rd"), domain.NewEndStop(" 1 depot rd ")}
	provider := distance.NewMockDistanceProvider(nil)

	route := AggregateRoute(context.Background(), stops, domain.Truck{ID: "T"}, provider, AggregateOptions{})

	if provider.Calls() != 0 {
		t.Fatalf("expected no provider calls, got %d", provider.Calls())
	}
	if len(route.Legs) != 1 || route.Legs[0] == nil {
		t.Fatalf("expected one zero leg, got %+v", route.Legs)
	}
	if route.TotalWorkTimeMinutes != 0 || route.TotalEstimatedTimeMinutes != 0 {
		t.Fatalf("expected zero totals, got %+v", route)
	}
}

// blockingProvider never returns for the slow pair until released.
type blockingProvider struct {
	slow    string
	release chan struct{}
}

func (p *blockingProvider) GetDistance(_ context.Context, origin, _ string) (ports.DistanceResult, error) {
	if origin == p.slow {
		<-p.release
		return ports.DistanceResult{}, errors.New("released")
	}
	return ports.DistanceResult{DurationMinutes: 5, DistanceKm: 2}, nil
}

func TestAggregateRoute_DeadlineReturnsPartialLegs(t *testing.T) {
	p := &blockingProvider{slow: "A", release: make(chan struct{})}
	t.Cleanup(func() { close(p.release) })

	stops := []domain.RouteStop{
		domain.NewStartStop("Depot"),
		{Type: domain.StopCustomerJob, Address: "A", Job: &domain.JobStop{EstimatedDurationMinutes: 30}},
		domain.NewEndStop("Depot"),
	}

	start := time.Now()
	route := AggregateRoute(context.Background(), stops, domain.Truck{ID: "T"}, p, AggregateOptions{
		Workers:    2,
		LegTimeout: time.Minute,
		Deadline:   200 * time.Millisecond,
	})
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("aggregation did not honor deadline: %v", elapsed)
	}

	if route.Legs[0] == nil {
		t.Fatalf("expected fast leg to resolve")
	}
	if route.Legs[1] != nil {
		t.Fatalf("expected slow leg unresolved")
	}
	if route.UnresolvedLegs != 1 || route.TotalDriveTimeMinutes != 5 {
		t.Fatalf("unexpected totals: %+v", route)
	}
}

func TestAggregateRoute_NilProvider(t *testing.T) {
	stops := []domain.RouteStop{domain.NewStartStop("Depot"), domain.NewEndStop("Yard")}

	route := AggregateRoute(context.Background(), stops, domain.Truck{ID: "T"}, nil, AggregateOptions{})

	if route.UnresolvedLegs != 1 {
		t.Fatalf("expected unresolved leg without provider, got %d", route.UnresolvedLegs)
	}
}

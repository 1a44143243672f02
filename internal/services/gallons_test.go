package services

import (
	"septic-route-service/internal/domain"
	"testing"
)

func TestGallonsEstimator_Estimate(t *testing.T) {
	e := NewGallonsEstimator(DefaultGallonsTable())

	tests := []struct {
		name        string
		serviceType string
		tankSize    *float64
		history     []float64
		want        float64
	}{
		{name: "inspection adds nothing", serviceType: ServiceSepticInspection, want: 0},
		{name: "pumping base", serviceType: ServiceSepticPumping, want: 400},
		{name: "pumping with tank size", serviceType: ServiceSepticPumping, tankSize: fptr(1000), want: 550},
		{name: "tank size ignored for other services", serviceType: ServiceGreaseTrap, tankSize: fptr(1000), want: 100},
		{name: "zero tank size ignored", serviceType: ServiceSepticPumping, tankSize: fptr(0), want: 400},
		{name: "unknown service", serviceType: "Mystery", want: DefaultUnknownServiceGallons},
		{name: "history blend", serviceType: "Mystery", history: []float64{100}, want: 170},
		{name: "size and history", serviceType: ServiceSepticPumping, tankSize: fptr(1000), history: []float64{500, 700}, want: 565},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Estimate(tt.serviceType, tt.tankSize, tt.history); got != tt.want {
				t.Fatalf("Estimate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGallonsEstimator_NeverNegative(t *testing.T) {
	e := NewGallonsEstimator(NewGallonsTable(map[string]float64{"Refund": -50}, 0))

	if got := e.Estimate("Refund", nil, nil); got != 0 {
		t.Fatalf("Estimate = %v, want 0", got)
	}
}

func TestGallonsEstimator_FillEstimatesLeavesInputAlone(t *testing.T) {
	e := NewGallonsEstimator(DefaultGallonsTable())

	jobs := []domain.Job{
		{ID: "1", ServiceType: ServiceSepticPumping, CustomerAddress: "A"},
		{ID: "2", ServiceType: ServiceSepticPumping, CustomerAddress: "B", EstimatedGallons: fptr(123)},
	}

	out := e.FillEstimates(jobs)

	if jobs[0].EstimatedGallons != nil {
		t.Fatalf("input job was modified")
	}
	if out[0].Gallons() != 400 {
		t.Fatalf("filled estimate = %v, want 400", out[0].Gallons())
	}
	if out[1].Gallons() != 123 {
		t.Fatalf("caller estimate overwritten: %v", out[1].Gallons())
	}
}

func TestGallonsTable_IsCopied(t *testing.T) {
	base := map[string]float64{"X": 10}
	table := NewGallonsTable(base, 1)
	base["X"] = 99

	if got := table.Lookup("X"); got != 10 {
		t.Fatalf("Lookup = %v, want 10", got)
	}
	if got := table.Lookup("Y"); got != 1 {
		t.Fatalf("fallback = %v, want 1", got)
	}
}

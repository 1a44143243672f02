package services

import (
	"math"
	"septic-route-service/internal/domain"
)

// Service types recognized by the base gallons table.
const (
	ServiceSepticPumping         = "Septic Pumping"
	ServiceSepticInspection      = "Septic Inspection"
	ServiceSepticRepair          = "Septic Repair"
	ServiceSepticInstallation    = "Septic Installation"
	ServicePreventiveMaintenance = "Preventive Maintenance"
	ServiceEmergency             = "Emergency Service"
	ServiceSepticCleaning        = "Septic Cleaning"
	ServiceLineCleaningRooter    = "Line Cleaning/Rooter"
	ServiceGreaseTrap            = "Grease Trap Service"
	ServiceLiftStation           = "Lift Station Service"
)

// DefaultUnknownServiceGallons is the estimate for service types missing from the table.
const DefaultUnknownServiceGallons = 200

const (
	tankSizePumpFraction = 0.7
	historyWeight        = 0.3
)

// GallonsTable maps a service type to its base gallons estimate.
// The table is copied on construction and never modified afterwards.
type GallonsTable struct {
	base     map[string]float64
	fallback float64
}

func NewGallonsTable(base map[string]float64, fallback float64) GallonsTable {
	m := make(map[string]float64, len(base))
	for k, v := range base {
		m[k] = v
	}
	return GallonsTable{base: m, fallback: fallback}
}

// DefaultGallonsTable returns industry-average estimates per service type.
func DefaultGallonsTable() GallonsTable {
	return NewGallonsTable(map[string]float64{
		ServiceSepticPumping:         400,
		ServiceSepticInspection:      0,
		ServiceSepticRepair:          50,
		ServiceSepticInstallation:    0,
		ServicePreventiveMaintenance: 150,
		ServiceEmergency:             300,
		ServiceSepticCleaning:        200,
		ServiceLineCleaningRooter:    25,
		ServiceGreaseTrap:            100,
		ServiceLiftStation:           500,
	}, DefaultUnknownServiceGallons)
}

// Lookup returns the base estimate for a service type, or the fallback.
func (t GallonsTable) Lookup(serviceType string) float64 {
	if v, ok := t.base[serviceType]; ok {
		return v
	}
	return t.fallback
}

// Len reports the number of service types in the table.
func (t GallonsTable) Len() int { return len(t.base) }

// GallonsEstimator estimates how much waste a job adds to the truck tank.
type GallonsEstimator struct {
	table GallonsTable
}

func NewGallonsEstimator(table GallonsTable) *GallonsEstimator {
	return &GallonsEstimator{table: table}
}

// Estimate blends the base table value with the customer's tank size (pumping
// jobs only) and with the mean of past pump-outs. The result is rounded to a
// tenth of a gallon and never negative.
func (e *GallonsEstimator) Estimate(serviceType string, tankSize *float64, history []float64) float64 {
	estimate := e.table.Lookup(serviceType)

	if serviceType == ServiceSepticPumping && tankSize != nil && *tankSize > 0 {
		estimate = (estimate + *tankSize*tankSizePumpFraction) / 2
	}

	if len(history) > 0 {
		sum := 0.0
		for _, h := range history {
			sum += h
		}
		mean := sum / float64(len(history))
		estimate = estimate*(1-historyWeight) + mean*historyWeight
	}

	if estimate < 0 {
		return 0
	}
	return math.Round(estimate*10) / 10
}

// FillEstimates returns copies of jobs where every missing gallons estimate
// is filled in. Jobs that already carry an estimate are left as they are.
func (e *GallonsEstimator) FillEstimates(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, len(jobs))
	for i, j := range jobs {
		if j.EstimatedGallons == nil {
			g := e.Estimate(j.ServiceType, j.SepticTankSizeGallons, j.GallonsHistory)
			j.EstimatedGallons = &g
		}
		out[i] = j
	}
	return out
}

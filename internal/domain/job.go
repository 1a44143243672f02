package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultJobDurationMinutes = 60
	DefaultCustomerName       = "Unknown"
)

// Job is one scheduled service visit. Order within a route is given by the
// caller and never changed here.
type Job struct {
	ID                       string       `json:"id"`
	JobRef                   string       `json:"job_id"`
	CustomerName             string       `json:"customer_name,omitempty"`
	ServiceType              string       `json:"service_type"`
	EstimatedGallons         *float64     `json:"estimated_gallons,omitempty"`
	EstimatedDurationMinutes *int         `json:"estimated_duration_minutes,omitempty"`
	CustomerAddress          string       `json:"customer_address"`
	CustomerLocation         *Coordinates `json:"customer_location,omitempty"`
	SepticTankSizeGallons    *float64     `json:"septic_tank_size_gallons,omitempty"`
	GallonsHistory           []float64    `json:"gallons_history,omitempty"`
}

// Gallons returns the estimate or zero when none is set yet.
func (j Job) Gallons() float64 {
	if j.EstimatedGallons == nil {
		return 0
	}
	return *j.EstimatedGallons
}

// DurationMinutes returns the estimated on-site time, defaulting to an hour.
func (j Job) DurationMinutes() int {
	if j.EstimatedDurationMinutes == nil {
		return DefaultJobDurationMinutes
	}
	return *j.EstimatedDurationMinutes
}

// Customer returns the display name used on route stops.
func (j Job) Customer() string {
	if strings.TrimSpace(j.CustomerName) == "" {
		return DefaultCustomerName
	}
	return j.CustomerName
}

// Validate rejects jobs that cannot be placed on a route.
func (j Job) Validate() error {
	if strings.TrimSpace(j.ID) == "" {
		return fmt.Errorf("job: id must be non-empty")
	}
	if strings.TrimSpace(j.CustomerAddress) == "" {
		return fmt.Errorf("job %q: customer address must be non-empty", j.ID)
	}
	if j.EstimatedGallons != nil && *j.EstimatedGallons < 0 {
		return fmt.Errorf("job %q: estimated gallons must be non-negative, got %v", j.ID, *j.EstimatedGallons)
	}
	if j.EstimatedDurationMinutes != nil && *j.EstimatedDurationMinutes < 0 {
		return fmt.Errorf("job %q: estimated duration must be non-negative, got %d", j.ID, *j.EstimatedDurationMinutes)
	}
	if j.SepticTankSizeGallons != nil && *j.SepticTankSizeGallons < 0 {
		return fmt.Errorf("job %q: septic tank size must be non-negative, got %v", j.ID, *j.SepticTankSizeGallons)
	}
	return nil
}

package domain

import "fmt"

// DefaultTankFullThreshold is the fill fraction at which a dump is recommended
// when a truck snapshot does not carry its own threshold.
const DefaultTankFullThreshold = 0.85

// Truck is a point-in-time snapshot of a pumper truck's waste tank.
// It is supplied fresh per request and never mutated by route planning.
type Truck struct {
	ID                  string   `json:"id"`
	TankCapacityGallons float64  `json:"tank_capacity_gallons"`
	CurrentLevelGallons float64  `json:"current_tank_level_gallons"`
	TankFullThreshold   *float64 `json:"tank_full_threshold_fraction,omitempty"`
}

// Threshold returns the configured fill threshold or the default.
func (t Truck) Threshold() float64 {
	if t.TankFullThreshold == nil {
		return DefaultTankFullThreshold
	}
	return *t.TankFullThreshold
}

// TriggerGallons is the tank level above which a dump must happen first.
func (t Truck) TriggerGallons() float64 {
	return t.TankCapacityGallons * t.Threshold()
}

// Validate checks the snapshot invariants.
func (t Truck) Validate() error {
	if t.TankCapacityGallons <= 0 {
		return fmt.Errorf("truck %q: tank capacity must be positive, got %v", t.ID, t.TankCapacityGallons)
	}
	if t.CurrentLevelGallons < 0 {
		return fmt.Errorf("truck %q: current tank level must be non-negative, got %v", t.ID, t.CurrentLevelGallons)
	}
	th := t.Threshold()
	if th <= 0 || th > 1 {
		return fmt.Errorf("truck %q: tank full threshold must be in (0, 1], got %v", t.ID, th)
	}
	return nil
}

// TankStatus summarizes how full a truck is relative to its dump threshold.
type TankStatus struct {
	TankCapacity            float64 `json:"tank_capacity"`
	CurrentLevel            float64 `json:"current_level"`
	FillPercentage          float64 `json:"fill_percentage"`
	GallonsUntilFull        float64 `json:"gallons_until_full"`
	DumpThresholdPercentage float64 `json:"dump_threshold_percentage"`
	DumpRecommended         bool    `json:"dump_recommended"`
	Status                  string  `json:"status"`
}

const (
	TankStatusOK         = "OK"
	TankStatusDumpNeeded = "DUMP NEEDED"
)

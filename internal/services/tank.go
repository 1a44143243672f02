package services

import (
	"math"
	"septic-route-service/internal/domain"
)

// TankStep is the projected tank state around one job.
type TankStep struct {
	JobIndex             int     `json:"job_index"`
	TicketID             string  `json:"ticket_id"`
	JobRef               string  `json:"job_id"`
	GallonsBefore        float64 `json:"gallons_before"`
	GallonsAdded         float64 `json:"gallons_added"`
	GallonsAfter         float64 `json:"gallons_after"`
	FillPercentageBefore float64 `json:"fill_percentage_before"`
	FillPercentageAfter  float64 `json:"fill_percentage_after"`
	TankCapacity         float64 `json:"tank_capacity"`
}

// SimulateTank projects the cumulative tank level across jobs in order.
// The running level is not clamped to capacity so overshoot stays visible.
func SimulateTank(capacity, startLevel float64, jobs []domain.Job) []TankStep {
	steps := make([]TankStep, 0, len(jobs))
	running := startLevel

	for i, j := range jobs {
		added := j.Gallons()
		before := running
		running += added

		steps = append(steps, TankStep{
			JobIndex:             i,
			TicketID:             j.ID,
			JobRef:               j.JobRef,
			GallonsBefore:        before,
			GallonsAdded:         added,
			GallonsAfter:         running,
			FillPercentageBefore: fillPercentage(before, capacity),
			FillPercentageAfter:  fillPercentage(running, capacity),
			TankCapacity:         capacity,
		})
	}

	return steps
}

// TankStatusFor reports the truck's current fill against its dump threshold.
func TankStatusFor(truck domain.Truck) domain.TankStatus {
	capacity := truck.TankCapacityGallons
	current := truck.CurrentLevelGallons
	threshold := truck.Threshold()

	fill := fillPercentage(current, capacity)
	untilFull := math.Max(0, capacity*threshold-current)
	recommended := fill >= threshold*100

	status := domain.TankStatusOK
	if recommended {
		status = domain.TankStatusDumpNeeded
	}

	return domain.TankStatus{
		TankCapacity:            capacity,
		CurrentLevel:            current,
		FillPercentage:          round1(fill),
		GallonsUntilFull:        round1(untilFull),
		DumpThresholdPercentage: round1(threshold * 100),
		DumpRecommended:         recommended,
		Status:                  status,
	}
}

func fillPercentage(level, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return level / capacity * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

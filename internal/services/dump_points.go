package services

import "septic-route-service/internal/domain"

// DumpPoint marks a job that must be preceded by a dump.
// LevelGallons is the projected tank level just before that job.
type DumpPoint struct {
	JobIndex     int     `json:"job_index"`
	LevelGallons float64 `json:"level_gallons"`
}

// FindDumpPoints walks jobs in order and emits a dump point whenever the next
// job would push the tank strictly above capacity*threshold.
//
// After a dump the tank is assumed empty and the triggering job's own gallons
// are added. A single job larger than the trigger is not split; the next job
// will simply trigger another dump.
func FindDumpPoints(capacity, startLevel, threshold float64, jobs []domain.Job) []DumpPoint {
	points := []DumpPoint{}
	trigger := capacity * threshold
	running := startLevel

	for i, j := range jobs {
		added := j.Gallons()
		if running+added > trigger {
			points = append(points, DumpPoint{JobIndex: i, LevelGallons: running})
			running = added
			continue
		}
		running += added
	}

	return points
}

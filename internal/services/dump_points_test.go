package services

import (
	"math/rand"
	"septic-route-service/internal/domain"
	"strconv"
	"testing"
)

func TestFindDumpPoints(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		jobs  []domain.Job
		want  []DumpPoint
	}{
		{
			name:  "first job overflows",
			start: 2200,
			jobs:  []domain.Job{job("1", "A", 400), job("2", "B", 400), job("3", "C", 400)},
			want:  []DumpPoint{{JobIndex: 0, LevelGallons: 2200}},
		},
		{
			name:  "reaching trigger exactly does not dump",
			start: 2150,
			jobs:  []domain.Job{job("1", "A", 400)},
			want:  []DumpPoint{},
		},
		{
			name:  "repeated dumps",
			start: 0,
			jobs:  []domain.Job{job("1", "A", 2000), job("2", "B", 2000), job("3", "C", 2000)},
			want:  []DumpPoint{{JobIndex: 1, LevelGallons: 2000}, {JobIndex: 2, LevelGallons: 2000}},
		},
		{
			name:  "oversized single job from empty",
			start: 0,
			jobs:  []domain.Job{job("1", "A", 5000)},
			want:  []DumpPoint{{JobIndex: 0, LevelGallons: 0}},
		},
		{
			name:  "no jobs",
			start: 2900,
			jobs:  nil,
			want:  []DumpPoint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindDumpPoints(3000, tt.start, 0.85, tt.jobs)
			if got == nil {
				t.Fatalf("expected non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("point %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFindDumpPoints_BoundedCount(t *testing.T) {
	jobs := make([]domain.Job, 0, 20)
	for i := 0; i < 20; i++ {
		jobs = append(jobs, job(string(rune('a'+i)), "addr", float64(100*(i%7))))
	}

	points := FindDumpPoints(1500, 700, 0.8, jobs)
	if len(points) > len(jobs) {
		t.Fatalf("more dump points than jobs: %d", len(points))
	}

	last := -1
	for _, p := range points {
		if p.JobIndex <= last {
			t.Fatalf("dump points not strictly increasing: %+v", points)
		}
		last = p.JobIndex
	}
}

func TestFindDumpPoints_RandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	thresholds := []float64{0.5, 0.8, 0.85, 1}

	for c := 0; c < 5000; c++ {
		capacity := float64(500 + 100*rng.Intn(30))
		threshold := thresholds[rng.Intn(len(thresholds))]
		trigger := capacity * threshold
		start := float64(50 * rng.Intn(int(capacity)/50+1))

		n := rng.Intn(12)
		jobs := make([]domain.Job, n)
		for i := range jobs {
			jobs[i] = job(strconv.Itoa(i), "addr", float64(50*rng.Intn(40)))
		}

		points := FindDumpPoints(capacity, start, threshold, jobs)

		dumpAt := make(map[int]DumpPoint, len(points))
		for _, p := range points {
			dumpAt[p.JobIndex] = p
		}
		if len(dumpAt) != len(points) {
			t.Fatalf("case %d: duplicate job index in %+v", c, points)
		}

		level := start
		crossings := 0
		for i, j := range jobs {
			g := j.Gallons()
			p, dumped := dumpAt[i]
			crossed := level+g > trigger
			if crossed {
				crossings++
			}
			if crossed != dumped {
				t.Fatalf("case %d: job %d level %v + %v vs trigger %v: dumped=%v",
					c, i, level, g, trigger, dumped)
			}
			if dumped {
				if p.LevelGallons != level {
					t.Fatalf("case %d: job %d reported level %v, want %v", c, i, p.LevelGallons, level)
				}
				level = g
				continue
			}
			next := level + g
			if next < level {
				t.Fatalf("case %d: level decreased without a dump at job %d", c, i)
			}
			level = next
		}

		if len(points) != crossings {
			t.Fatalf("case %d: %d dump points, %d crossings", c, len(points), crossings)
		}
	}
}

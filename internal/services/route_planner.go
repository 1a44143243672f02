package services

import (
	"context"
	"errors"
	"fmt"
	"septic-route-service/internal/domain"
	"septic-route-service/internal/platform/metrics"
	"septic-route-service/internal/platform/obs"
	"septic-route-service/internal/ports"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidTruck   = errors.New("invalid truck")
	ErrInvalidJob     = errors.New("invalid job")
	ErrInvalidRequest = errors.New("invalid request")
)

// PlanRouteRequest is one truck's day: its tank snapshot and ordered jobs.
type PlanRouteRequest struct {
	Truck *domain.Truck
	Jobs  []domain.Job
	// DumpSites overrides the repository when non-nil.
	DumpSites    []domain.DumpSite
	StartAddress string
	// EndAddress defaults to StartAddress.
	EndAddress string
	// Reference overrides the planner's dump reference point.
	Reference *domain.Coordinates
	WasteType domain.WasteType
}

// ProgressionResult is the pure tank analysis for a job list.
type ProgressionResult struct {
	Jobs           []domain.Job
	Steps          []TankStep
	DumpPoints     []DumpPoint
	TankStatus     domain.TankStatus
	TriggerGallons float64
}

// RoutePlanner wires the tank analysis, dump-site choice and leg lookups
// together for one request at a time. It holds no per-request state and is
// safe for concurrent use.
type RoutePlanner struct {
	Repo      ports.DumpSiteRepository
	Provider  ports.DistanceProvider
	Estimator *GallonsEstimator
	// Reference is the default point dump sites are ranked from.
	Reference domain.Coordinates
	Metric    DistanceMetric
	Aggregate AggregateOptions
}

func NewRoutePlanner(
	repo ports.DumpSiteRepository,
	provider ports.DistanceProvider,
	estimator *GallonsEstimator,
) *RoutePlanner {
	if estimator == nil {
		estimator = NewGallonsEstimator(DefaultGallonsTable())
	}
	return &RoutePlanner{
		Repo:      repo,
		Provider:  provider,
		Estimator: estimator,
		Reference: DefaultDumpReference,
		Metric:    PlanarDistance,
	}
}

// Progression fills missing gallons estimates and projects the tank level
// and dump points across the job list. It makes no external calls.
func (p *RoutePlanner) Progression(truck *domain.Truck, jobs []domain.Job) (*ProgressionResult, error) {
	if err := validateInput(truck, jobs); err != nil {
		return nil, err
	}

	filled := p.Estimator.FillEstimates(jobs)

	return &ProgressionResult{
		Jobs:           filled,
		Steps:          SimulateTank(truck.TankCapacityGallons, truck.CurrentLevelGallons, filled),
		DumpPoints:     FindDumpPoints(truck.TankCapacityGallons, truck.CurrentLevelGallons, truck.Threshold(), filled),
		TankStatus:     TankStatusFor(*truck),
		TriggerGallons: truck.TriggerGallons(),
	}, nil
}

// Plan builds the full route for one truck: start, the job body with dump
// stops inserted, end, and the drive legs between them.
//
// Only invalid input fails the call. Missing dump sites, malformed site
// coordinates and failed leg lookups degrade the route instead.
func (p *RoutePlanner) Plan(ctx context.Context, req PlanRouteRequest) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	if err := validateInput(req.Truck, req.Jobs); err != nil {
		return nil, err
	}

	start := strings.TrimSpace(req.StartAddress)
	if start == "" {
		return nil, fmt.Errorf("plan route: %w: start address is required", ErrInvalidRequest)
	}
	end := strings.TrimSpace(req.EndAddress)
	if end == "" {
		end = start
	}

	sites := req.DumpSites
	if sites == nil {
		if p.Repo == nil {
			return nil, errors.New("plan route: no dump sites supplied and no repository configured")
		}
		sites, err = p.Repo.ListDumpSites(ctx)
		if err != nil {
			return nil, fmt.Errorf("plan route: list dump sites: %w", err)
		}
	}

	ref := p.Reference
	if req.Reference != nil {
		ref = *req.Reference
	}

	jobs := p.Estimator.FillEstimates(req.Jobs)

	body := AssembleRoute(*req.Truck, jobs, sites, AssembleOptions{
		Reference: &ref,
		WasteType: req.WasteType,
		Metric:    p.Metric,
	})

	stops := make([]domain.RouteStop, 0, len(body)+2)
	stops = append(stops, domain.NewStartStop(start))
	stops = append(stops, body...)
	stops = append(stops, domain.NewEndStop(end))

	route := AggregateRoute(ctx, stops, *req.Truck, p.Provider, p.Aggregate)
	route.ID = uuid.NewString()

	metrics.RoutesPlanned.Inc()
	metrics.DumpStopsInserted.Add(float64(route.DumpStopsCount))
	metrics.UnresolvedLegs.Add(float64(route.UnresolvedLegs))

	return route, nil
}

// PlanRoute plans a single request without a long-lived planner.
func PlanRoute(
	ctx context.Context,
	req PlanRouteRequest,
	repo ports.DumpSiteRepository,
	provider ports.DistanceProvider,
	estimator *GallonsEstimator,
) (*domain.Route, error) {
	return NewRoutePlanner(repo, provider, estimator).Plan(ctx, req)
}

func validateInput(truck *domain.Truck, jobs []domain.Job) error {
	if truck == nil {
		return fmt.Errorf("%w: truck is required", ErrInvalidTruck)
	}
	if err := truck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTruck, err)
	}

	seen := make(map[string]struct{}, len(jobs))
	for i, j := range jobs {
		if err := j.Validate(); err != nil {
			return fmt.Errorf("%w: index %d: %v", ErrInvalidJob, i, err)
		}
		if _, ok := seen[j.ID]; ok {
			return fmt.Errorf("%w: index %d: duplicate job id %q", ErrInvalidJob, i, j.ID)
		}
		seen[j.ID] = struct{}{}
	}

	return nil
}

package services

import (
	"fmt"
	"septic-route-service/internal/domain"
)

// DefaultDumpReference is the fixed point dump sites are ranked from when the
// caller does not supply one (Louisville, KY service area).
var DefaultDumpReference = domain.Coordinates{Lat: 38.25, Lng: -85.75}

// AssembleOptions controls dump-site choice during route assembly.
type AssembleOptions struct {
	// Reference is the point dump sites are ranked from. It is the same for
	// every dump on the route, not the truck's position at that moment.
	Reference *domain.Coordinates
	WasteType domain.WasteType
	Metric    DistanceMetric
}

func (o AssembleOptions) withDefaults() AssembleOptions {
	out := o
	if out.Reference == nil {
		ref := DefaultDumpReference
		out.Reference = &ref
	}
	if out.WasteType == "" {
		out.WasteType = domain.WasteSeptic
	}
	if out.Metric == nil {
		out.Metric = PlanarDistance
	}
	return out
}

// AssembleRoute interleaves dump stops into the given job order.
//
// Jobs must already carry gallons estimates. The result is the route body
// only: customer job stops with a dump stop placed directly before each job
// that would overfill the tank. When no dump site qualifies the dump is
// skipped and the job is still emitted. Start and end stops are the caller's.
func AssembleRoute(
	truck domain.Truck,
	jobs []domain.Job,
	sites []domain.DumpSite,
	opts AssembleOptions,
) []domain.RouteStop {
	opts = opts.withDefaults()

	points := FindDumpPoints(truck.TankCapacityGallons, truck.CurrentLevelGallons, truck.Threshold(), jobs)

	stops := make([]domain.RouteStop, 0, len(jobs)+len(points))
	cursor := 0

	for i, j := range jobs {
		if cursor < len(points) && points[cursor].JobIndex == i {
			if site, ok := SelectDumpSite(*opts.Reference, sites, opts.WasteType, opts.Metric); ok {
				stops = append(stops, newDumpStop(site, points[cursor].LevelGallons))
			}
			cursor++
		}

		stops = append(stops, newJobStop(j))
	}

	return stops
}

func newDumpStop(site domain.DumpSite, gallons float64) domain.RouteStop {
	stop := domain.RouteStop{
		Type:        domain.StopDumpSite,
		Address:     site.Address,
		Description: fmt.Sprintf("Dump at %s", site.Name),
		Dump: &domain.DumpStop{
			DumpSiteID:               site.ID,
			Name:                     site.Name,
			CostPerGallon:            site.CostPerGallon,
			EstimatedDumpTimeMinutes: site.DumpMinutes(),
			GallonsDumped:            gallons,
		},
	}
	if loc, ok := site.Location(); ok {
		stop.Location = &loc
	}
	return stop
}

func newJobStop(j domain.Job) domain.RouteStop {
	return domain.RouteStop{
		Type:        domain.StopCustomerJob,
		Address:     j.CustomerAddress,
		Description: fmt.Sprintf("%s - %s", j.Customer(), j.ServiceType),
		Location:    j.CustomerLocation,
		Job: &domain.JobStop{
			TicketID:                 j.ID,
			JobRef:                   j.JobRef,
			CustomerName:             j.Customer(),
			ServiceType:              j.ServiceType,
			EstimatedGallons:         j.Gallons(),
			EstimatedDurationMinutes: j.DurationMinutes(),
		},
	}
}

package domain

// StopType tags the variant carried by a RouteStop.
type StopType string

const (
	StopStart       StopType = "start"
	StopCustomerJob StopType = "customer_job"
	StopDumpSite    StopType = "dump_site"
	StopEnd         StopType = "end"
)

// JobStop is the payload of a customer job stop.
type JobStop struct {
	TicketID                 string
	JobRef                   string
	CustomerName             string
	ServiceType              string
	EstimatedGallons         float64
	EstimatedDurationMinutes int
}

// DumpStop is the payload of a disposal stop. GallonsDumped is the projected
// tank level the dump relieves.
type DumpStop struct {
	DumpSiteID               int64
	Name                     string
	CostPerGallon            float64
	EstimatedDumpTimeMinutes int
	GallonsDumped            float64
}

// Represents a single visited location in a route.
// Exactly one of Job or Dump is set for customer job and dump site stops;
// start and end stops carry neither.
type RouteStop struct {
	Type        StopType
	Address     string
	Description string
	Location    *Coordinates
	Job         *JobStop
	Dump        *DumpStop
}

func NewStartStop(address string) RouteStop {
	return RouteStop{Type: StopStart, Address: address, Description: "Start of route"}
}

func NewEndStop(address string) RouteStop {
	return RouteStop{Type: StopEnd, Address: address, Description: "End of route"}
}

// Leg is the directed drive between two consecutive stops.
type Leg struct {
	DriveTimeMinutes float64
	DistanceKm       float64
	Geometry         string
}

// Represents the augmented route for a single truck.
// Legs[i] describes the drive from Stops[i] to Stops[i+1]; a nil entry
// means the distance lookup for that leg did not resolve.
// Routes are recomputed per request and never persisted.
type Route struct {
	ID                        string
	TruckID                   string
	Stops                     []RouteStop
	Legs                      []*Leg
	UnresolvedLegs            int
	TotalDriveTimeMinutes     float64
	TotalDistanceKm           float64
	TotalWorkTimeMinutes      int
	TotalDumpTimeMinutes      int
	TotalEstimatedTimeMinutes float64
	DumpStopsCount            int
	TankStatus                TankStatus
}

package dto

import "septic-route-service/internal/domain"

type RouteRequest struct {
	Truck        *domain.Truck       `json:"truck"`
	Jobs         []domain.Job        `json:"jobs"`
	DumpSites    []domain.DumpSite   `json:"dump_sites"`
	StartAddress string              `json:"start_address"`
	EndAddress   string              `json:"end_address"`
	Reference    *domain.Coordinates `json:"reference"`
	WasteType    domain.WasteType    `json:"waste_type"`
}

type JobStopResponse struct {
	TicketID                 string  `json:"ticket_id"`
	JobID                    string  `json:"job_id"`
	CustomerName             string  `json:"customer_name"`
	ServiceType              string  `json:"service_type"`
	EstimatedGallons         float64 `json:"estimated_gallons"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes"`
}

type DumpStopResponse struct {
	DumpSiteID               int64   `json:"dump_site_id"`
	Name                     string  `json:"name"`
	CostPerGallon            float64 `json:"cost_per_gallon"`
	EstimatedDumpTimeMinutes int     `json:"estimated_dump_time_minutes"`
	GallonsDumped            float64 `json:"gallons_dumped"`
}

// RouteStopResponse carries the leg to the next stop. Both leg fields are
// null on the last stop and on legs that could not be resolved.
type RouteStopResponse struct {
	Type                   domain.StopType     `json:"type"`
	Address                string              `json:"address"`
	Description            string              `json:"description"`
	Location               *domain.Coordinates `json:"location,omitempty"`
	DriveTimeToNextMinutes *float64            `json:"drive_time_to_next_minutes"`
	DistanceToNextKm       *float64            `json:"distance_to_next_km"`
	Geometry               string              `json:"geometry,omitempty"`
	Job                    *JobStopResponse    `json:"job,omitempty"`
	Dump                   *DumpStopResponse   `json:"dump,omitempty"`
}

type RouteResponse struct {
	RouteID                   string              `json:"route_id"`
	TruckID                   string              `json:"truck_id"`
	Stops                     []RouteStopResponse `json:"stops"`
	TotalDriveTimeMinutes     float64             `json:"total_drive_time_minutes"`
	TotalDistanceKm           float64             `json:"total_distance_km"`
	TotalWorkTimeMinutes      int                 `json:"total_work_time_minutes"`
	TotalDumpTimeMinutes      int                 `json:"total_dump_time_minutes"`
	TotalEstimatedTimeMinutes float64             `json:"total_estimated_time_minutes"`
	DumpStopsCount            int                 `json:"dump_stops_count"`
	UnresolvedLegs            int                 `json:"unresolved_legs"`
	TankStatus                domain.TankStatus   `json:"tank_status"`
}

// NewRouteResponse flattens a route into its wire shape.
func NewRouteResponse(r *domain.Route) RouteResponse {
	res := RouteResponse{
		RouteID:                   r.ID,
		TruckID:                   r.TruckID,
		Stops:                     make([]RouteStopResponse, 0, len(r.Stops)),
		TotalDriveTimeMinutes:     r.TotalDriveTimeMinutes,
		TotalDistanceKm:           r.TotalDistanceKm,
		TotalWorkTimeMinutes:      r.TotalWorkTimeMinutes,
		TotalDumpTimeMinutes:      r.TotalDumpTimeMinutes,
		TotalEstimatedTimeMinutes: r.TotalEstimatedTimeMinutes,
		DumpStopsCount:            r.DumpStopsCount,
		UnresolvedLegs:            r.UnresolvedLegs,
		TankStatus:                r.TankStatus,
	}

	for i, s := range r.Stops {
		stop := RouteStopResponse{
			Type:        s.Type,
			Address:     s.Address,
			Description: s.Description,
			Location:    s.Location,
		}

		if i < len(r.Legs) && r.Legs[i] != nil {
			leg := r.Legs[i]
			drive, dist := leg.DriveTimeMinutes, leg.DistanceKm
			stop.DriveTimeToNextMinutes = &drive
			stop.DistanceToNextKm = &dist
			stop.Geometry = leg.Geometry
		}

		if s.Job != nil {
			stop.Job = &JobStopResponse{
				TicketID:                 s.Job.TicketID,
				JobID:                    s.Job.JobRef,
				CustomerName:             s.Job.CustomerName,
				ServiceType:              s.Job.ServiceType,
				EstimatedGallons:         s.Job.EstimatedGallons,
				EstimatedDurationMinutes: s.Job.EstimatedDurationMinutes,
			}
		}
		if s.Dump != nil {
			stop.Dump = &DumpStopResponse{
				DumpSiteID:               s.Dump.DumpSiteID,
				Name:                     s.Dump.Name,
				CostPerGallon:            s.Dump.CostPerGallon,
				EstimatedDumpTimeMinutes: s.Dump.EstimatedDumpTimeMinutes,
				GallonsDumped:            s.Dump.GallonsDumped,
			}
		}

		res.Stops = append(res.Stops, stop)
	}

	return res
}

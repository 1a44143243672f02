package dto

type DumpSiteResponse struct {
	ID                       int64   `json:"id"`
	Name                     string  `json:"name"`
	Address                  string  `json:"address"`
	GPSCoordinates           string  `json:"gps_coordinates"`
	CostPerGallon            float64 `json:"cost_per_gallon"`
	EstimatedDumpTimeMinutes int     `json:"estimated_dump_time_minutes"`
	IsActive                 bool    `json:"is_active"`
	AcceptsSepticWaste       bool    `json:"accepts_septic_waste"`
	AcceptsGreaseWaste       bool    `json:"accepts_grease_waste"`
}

type ListDumpSitesResponse struct {
	DumpSites []DumpSiteResponse `json:"dump_sites"`
}

package domain

import "encoding/json"

// DefaultDumpTimeMinutes applies when a site has no dump time on record.
const DefaultDumpTimeMinutes = 15

// WasteType is the kind of waste a truck needs to offload.
type WasteType string

const (
	WasteSeptic WasteType = "septic"
	WasteGrease WasteType = "grease"
)

// DumpSite is a disposal facility. Reference data; read-only here.
type DumpSite struct {
	ID                       int64   `json:"id"`
	Name                     string  `json:"name"`
	Address                  string  `json:"address"`
	GPSCoordinates           string  `json:"gps_coordinates,omitempty"`
	CostPerGallon            float64 `json:"cost_per_gallon"`
	EstimatedDumpTimeMinutes int     `json:"estimated_dump_time_minutes"`
	IsActive                 bool    `json:"is_active"`
	AcceptsSepticWaste       bool    `json:"accepts_septic_waste"`
	AcceptsGreaseWaste       bool    `json:"accepts_grease_waste"`
}

// Accepts reports whether the site can take the given waste type.
// Types other than septic and grease only require an active site.
func (d DumpSite) Accepts(w WasteType) bool {
	if !d.IsActive {
		return false
	}
	switch w {
	case WasteSeptic:
		return d.AcceptsSepticWaste
	case WasteGrease:
		return d.AcceptsGreaseWaste
	default:
		return true
	}
}

// Location parses the site's GPS pair, if any.
func (d DumpSite) Location() (Coordinates, bool) {
	c, err := ParseGPS(d.GPSCoordinates)
	if err != nil {
		return Coordinates{}, false
	}
	return c, true
}

// DumpMinutes returns the on-site dump time, defaulting when unset.
func (d DumpSite) DumpMinutes() int {
	if d.EstimatedDumpTimeMinutes <= 0 {
		return DefaultDumpTimeMinutes
	}
	return d.EstimatedDumpTimeMinutes
}

// UnmarshalJSON treats a missing is_active or accepts_septic_waste as true.
// A missing accepts_grease_waste stays false.
func (d *DumpSite) UnmarshalJSON(b []byte) error {
	type plain DumpSite
	aux := struct {
		*plain
		IsActive           *bool `json:"is_active"`
		AcceptsSepticWaste *bool `json:"accepts_septic_waste"`
	}{plain: (*plain)(d)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	d.IsActive = aux.IsActive == nil || *aux.IsActive
	d.AcceptsSepticWaste = aux.AcceptsSepticWaste == nil || *aux.AcceptsSepticWaste
	return nil
}

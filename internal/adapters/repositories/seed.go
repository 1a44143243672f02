package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"septic-route-service/internal/domain"
	"strings"
)

// DumpSiteSeed is one entry of the dump site seed file.
type DumpSiteSeed struct {
	Name                     string  `json:"name"`
	Address                  string  `json:"address"`
	GPSCoordinates           string  `json:"gps_coordinates"`
	CostPerGallon            float64 `json:"cost_per_gallon"`
	EstimatedDumpTimeMinutes int     `json:"estimated_dump_time_minutes"`
	IsActive                 *bool   `json:"is_active"`
	AcceptsSepticWaste       *bool   `json:"accepts_septic_waste"`
	AcceptsGreaseWaste       bool    `json:"accepts_grease_waste"`
}

// LoadDumpSiteSeeds reads and validates a dump site seed file. Sites are
// returned in file order with 1-based ids; is_active and
// accepts_septic_waste default to true.
func LoadDumpSiteSeeds(jsonPath string) ([]domain.DumpSite, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed dump sites: read %q: %w", jsonPath, err)
	}

	var data []DumpSiteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed dump sites: parse json: %w", err)
	}

	sites := make([]domain.DumpSite, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("seed dump sites: item at index %d: name cannot be empty", i+1)
		}
		if item.CostPerGallon < 0 {
			return nil, fmt.Errorf("seed dump sites: item %q: negative cost per gallon", name)
		}

		active := item.IsActive == nil || *item.IsActive
		septic := item.AcceptsSepticWaste == nil || *item.AcceptsSepticWaste

		sites = append(sites, domain.DumpSite{
			ID:                       int64(i + 1),
			Name:                     name,
			Address:                  strings.TrimSpace(item.Address),
			GPSCoordinates:           strings.TrimSpace(item.GPSCoordinates),
			CostPerGallon:            item.CostPerGallon,
			EstimatedDumpTimeMinutes: item.EstimatedDumpTimeMinutes,
			IsActive:                 active,
			AcceptsSepticWaste:       septic,
			AcceptsGreaseWaste:       item.AcceptsGreaseWaste,
		})
	}

	return sites, nil
}

// SeedFromJSON upserts the dump sites from a JSON file, keyed by name.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	sites, err := LoadDumpSiteSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed dump sites: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO dump_sites (
		name,
		address,
		gps_coordinates,
		cost_per_gallon,
		estimated_dump_time_minutes,
		is_active,
		accepts_septic_waste,
		accepts_grease_waste
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (name) DO UPDATE
	SET address = EXCLUDED.address,
		gps_coordinates = EXCLUDED.gps_coordinates,
		cost_per_gallon = EXCLUDED.cost_per_gallon,
		estimated_dump_time_minutes = EXCLUDED.estimated_dump_time_minutes,
		is_active = EXCLUDED.is_active,
		accepts_septic_waste = EXCLUDED.accepts_septic_waste,
		accepts_grease_waste = EXCLUDED.accepts_grease_waste;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed dump sites: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range sites {
		if _, err := stmt.ExecContext(ctx,
			s.Name,
			s.Address,
			s.GPSCoordinates,
			s.CostPerGallon,
			s.EstimatedDumpTimeMinutes,
			s.IsActive,
			s.AcceptsSepticWaste,
			s.AcceptsGreaseWaste,
		); err != nil {
			return fmt.Errorf("seed dump sites: insert %q: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed dump sites: commit tx: %w", err)
	}

	return nil
}

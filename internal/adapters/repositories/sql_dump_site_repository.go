package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"septic-route-service/internal/domain"
	"septic-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the DumpSiteRepository port.
type SQLDumpSiteRepository struct{ DB *sql.DB }

func NewSQLDumpSiteRepository(db *sql.DB) *SQLDumpSiteRepository {
	return &SQLDumpSiteRepository{DB: db}
}

// Return all dump sites, active or not, in id order. Suitability filtering
// happens in the selector.
func (s *SQLDumpSiteRepository) ListDumpSites(ctx context.Context) (_ []domain.DumpSite, err error) {
	defer obs.Time(ctx, "dumpsites.List")(&err)

	if s.DB == nil {
		return nil, errors.New("dump site repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		address,
		gps_coordinates,
		cost_per_gallon,
		estimated_dump_time_minutes,
		is_active,
		accepts_septic_waste,
		accepts_grease_waste
	FROM dump_sites
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dump sites: query dump_sites table: %w", err)
	}
	defer rows.Close()

	sites := make([]domain.DumpSite, 0, 16)
	for rows.Next() {
		var d domain.DumpSite
		err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Address,
			&d.GPSCoordinates,
			&d.CostPerGallon,
			&d.EstimatedDumpTimeMinutes,
			&d.IsActive,
			&d.AcceptsSepticWaste,
			&d.AcceptsGreaseWaste,
		)
		if err != nil {
			return nil, fmt.Errorf("list dump sites: scan row: %w", err)
		}
		sites = append(sites, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dump sites: row iteration: %w", err)
	}

	return sites, nil
}

package ports

import (
	"context"
	"septic-route-service/internal/domain"
)

// Port: a boundary for retrieving disposal facilities from a data source.
type DumpSiteRepository interface {
	// Retrieve all dump sites, active or not, in a stable order.
	ListDumpSites(ctx context.Context) ([]domain.DumpSite, error)
}

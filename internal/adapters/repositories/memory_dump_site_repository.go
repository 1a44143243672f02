package repositories

import (
	"context"
	"septic-route-service/internal/domain"
	"sync"
)

// MemoryDumpSiteRepository serves a fixed dump site list when no database is
// configured.
type MemoryDumpSiteRepository struct {
	mu    sync.RWMutex
	sites []domain.DumpSite
}

func NewMemoryDumpSiteRepository(sites []domain.DumpSite) *MemoryDumpSiteRepository {
	r := &MemoryDumpSiteRepository{}
	r.Replace(sites)
	return r
}

// Replace swaps the whole list.
func (r *MemoryDumpSiteRepository) Replace(sites []domain.DumpSite) {
	cp := make([]domain.DumpSite, len(sites))
	copy(cp, sites)

	r.mu.Lock()
	r.sites = cp
	r.mu.Unlock()
}

func (r *MemoryDumpSiteRepository) ListDumpSites(ctx context.Context) ([]domain.DumpSite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DumpSite, len(r.sites))
	copy(out, r.sites)
	return out, nil
}

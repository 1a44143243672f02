package handlers

import (
	"net/http"
	"septic-route-service/internal/api/dto"
	"septic-route-service/internal/ports"
)

// DumpSiteHandler exposes read-only dump site retrieval.
type DumpSiteHandler struct {
	Repo ports.DumpSiteRepository
}

func (h *DumpSiteHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	sites, err := h.Repo.ListDumpSites(r.Context())
	if err != nil {
		writeServiceError(w, r, "list dump sites", err)
		return
	}

	res := dto.ListDumpSitesResponse{
		DumpSites: make([]dto.DumpSiteResponse, 0, len(sites)),
	}
	for _, s := range sites {
		res.DumpSites = append(res.DumpSites, dto.DumpSiteResponse{
			ID:                       s.ID,
			Name:                     s.Name,
			Address:                  s.Address,
			GPSCoordinates:           s.GPSCoordinates,
			CostPerGallon:            s.CostPerGallon,
			EstimatedDumpTimeMinutes: s.EstimatedDumpTimeMinutes,
			IsActive:                 s.IsActive,
			AcceptsSepticWaste:       s.AcceptsSepticWaste,
			AcceptsGreaseWaste:       s.AcceptsGreaseWaste,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

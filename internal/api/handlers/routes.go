package handlers

import (
	"net/http"
	"septic-route-service/internal/api/dto"
	"septic-route-service/internal/services"
	"strings"
)

type RouteHandler struct {
	Planner *services.RoutePlanner
	// DefaultDepot is used when a request carries no start address.
	DefaultDepot string
}

// Plan builds one truck's route: dump stops inserted ahead of overflowing
// jobs, drive legs resolved, totals and tank status attached.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	start := strings.TrimSpace(req.StartAddress)
	if start == "" {
		start = strings.TrimSpace(h.DefaultDepot)
	}

	route, err := h.Planner.Plan(r.Context(), services.PlanRouteRequest{
		Truck:        req.Truck,
		Jobs:         req.Jobs,
		DumpSites:    req.DumpSites,
		StartAddress: start,
		EndAddress:   req.EndAddress,
		Reference:    req.Reference,
		WasteType:    req.WasteType,
	})
	if err != nil {
		writeServiceError(w, r, "plan route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(route))
}

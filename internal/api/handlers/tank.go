package handlers

import (
	"fmt"
	"net/http"
	"septic-route-service/internal/api/dto"
	"septic-route-service/internal/services"
)

// TankHandler serves the pure tank analysis endpoints. Neither makes
// external calls.
type TankHandler struct {
	Planner *services.RoutePlanner
}

func (h *TankHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.TankStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Truck == nil {
		writeError(w, r, http.StatusBadRequest, "truck is required")
		return
	}
	if err := req.Truck.Validate(); err != nil {
		writeServiceError(w, r, "tank status", fmt.Errorf("%w: %v", services.ErrInvalidTruck, err))
		return
	}

	writeJSON(w, r, http.StatusOK, services.TankStatusFor(*req.Truck))
}

func (h *TankHandler) Progression(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.TankProgressionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.Planner.Progression(req.Truck, req.Jobs)
	if err != nil {
		writeServiceError(w, r, "tank progression", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TankProgressionResponse{
		TriggerGallons: res.TriggerGallons,
		Jobs:           res.Jobs,
		Steps:          res.Steps,
		DumpPoints:     res.DumpPoints,
		TankStatus:     res.TankStatus,
	})
}

package dto

import (
	"septic-route-service/internal/domain"
	"septic-route-service/internal/services"
)

type TankStatusRequest struct {
	Truck *domain.Truck `json:"truck"`
}

type TankProgressionRequest struct {
	Truck *domain.Truck `json:"truck"`
	Jobs  []domain.Job  `json:"jobs"`
}

type TankProgressionResponse struct {
	TriggerGallons float64              `json:"trigger_gallons"`
	Jobs           []domain.Job         `json:"jobs"`
	Steps          []services.TankStep  `json:"steps"`
	DumpPoints     []services.DumpPoint `json:"dump_points"`
	TankStatus     domain.TankStatus    `json:"tank_status"`
}

package services

import "septic-route-service/internal/domain"

func fptr(v float64) *float64 { return &v }

func job(id, addr string, gallons float64) domain.Job {
	return domain.Job{
		ID:               id,
		JobRef:           "J-" + id,
		CustomerName:     "Customer " + id,
		ServiceType:      ServiceSepticPumping,
		EstimatedGallons: fptr(gallons),
		CustomerAddress:  addr,
	}
}

func site(id int64, name, gps string, septic, grease, active bool) domain.DumpSite {
	return domain.DumpSite{
		ID:                 id,
		Name:               name,
		Address:            name + " Plant",
		GPSCoordinates:     gps,
		IsActive:           active,
		AcceptsSepticWaste: septic,
		AcceptsGreaseWaste: grease,
	}
}

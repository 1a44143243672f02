package services

import (
	"fmt"
	"math"
	"septic-route-service/internal/domain"
	"strings"
)

const earthRadiusKm = 6371.0

// DistanceMetric ranks dump sites by closeness to a reference point.
type DistanceMetric func(a, b domain.Coordinates) float64

// PlanarDistance is the Euclidean distance in raw degree space.
// It ignores the latitude dependent length of a degree of longitude.
func PlanarDistance(a, b domain.Coordinates) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
}

// HaversineDistance returns the great-circle distance in kilometres.
func HaversineDistance(a, b domain.Coordinates) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// ParseDistanceMetric maps a configuration name to a metric. Empty means planar.
func ParseDistanceMetric(name string) (DistanceMetric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "planar":
		return PlanarDistance, nil
	case "haversine":
		return HaversineDistance, nil
	default:
		return nil, fmt.Errorf("unknown distance metric %q (want planar or haversine)", name)
	}
}

// SelectDumpSite picks the nearest active site that accepts the waste type.
//
// Sites with missing or malformed GPS coordinates are left out of the ranking.
// When no suitable site has usable coordinates the first suitable site in
// input order is returned. The boolean is false only when no site qualifies.
func SelectDumpSite(
	ref domain.Coordinates,
	sites []domain.DumpSite,
	waste domain.WasteType,
	metric DistanceMetric,
) (domain.DumpSite, bool) {
	if metric == nil {
		metric = PlanarDistance
	}

	var (
		first    *domain.DumpSite
		best     *domain.DumpSite
		bestDist = math.Inf(1)
	)

	for i := range sites {
		site := &sites[i]
		if !site.Accepts(waste) {
			continue
		}
		if first == nil {
			first = site
		}

		loc, ok := site.Location()
		if !ok {
			continue
		}

		// Strict comparison keeps the earliest site on ties.
		if d := metric(ref, loc); d < bestDist {
			bestDist = d
			best = site
		}
	}

	if best != nil {
		return *best, true
	}
	if first != nil {
		return *first, true
	}
	return domain.DumpSite{}, false
}

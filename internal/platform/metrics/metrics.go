package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// LegLookups counts distance provider calls by provider and outcome (ok, error).
	// Leg cache hits are also counted under cache_hit; they are included in ok.
	LegLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_leg_lookups_total", Help: "Distance provider leg lookups by provider and outcome."},
		[]string{"provider", "outcome"},
	)
	// LegLatency tracks provider call latency in seconds
	LegLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "route_leg_lookup_seconds", Help: "Distance provider leg lookup latency in seconds.", Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15}},
		[]string{"provider"},
	)

	// RoutesPlanned counts completed route plans
	RoutesPlanned = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "routes_planned_total", Help: "Routes planned."},
	)
	// DumpStopsInserted counts dump stops placed into planned routes
	DumpStopsInserted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_dump_stops_total", Help: "Dump stops inserted into planned routes."},
	)
	// UnresolvedLegs counts legs returned without drive time or distance
	UnresolvedLegs = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_unresolved_legs_total", Help: "Route legs left unresolved."},
	)
)

// RegisterDefault registers collectors to the dedicated registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(LegLookups)
		Registry.MustRegister(LegLatency)
		Registry.MustRegister(RoutesPlanned)
		Registry.MustRegister(DumpStopsInserted)
		Registry.MustRegister(UnresolvedLegs)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

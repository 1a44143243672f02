package api

import (
	"log/slog"
	"net/http"
	"septic-route-service/internal/api/handlers"
	"septic-route-service/internal/platform/metrics"
	"septic-route-service/internal/ports"
	"septic-route-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.DumpSiteRepository,
	planner *services.RoutePlanner,
	depot string,
	log *slog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	dumpSiteHandler := &handlers.DumpSiteHandler{Repo: repo}
	tankHandler := &handlers.TankHandler{Planner: planner}
	routeHandler := &handlers.RouteHandler{
		Planner:      planner,
		DefaultDepot: depot,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/dump-sites", dumpSiteHandler.List)
	mux.HandleFunc("/tank/status", tankHandler.Status)
	mux.HandleFunc("/tank/progression", tankHandler.Progression)
	mux.HandleFunc("/routes", routeHandler.Plan)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestMiddleware(log, mux)
}

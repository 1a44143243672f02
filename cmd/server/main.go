package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"septic-route-service/internal/adapters/cache"
	"septic-route-service/internal/adapters/distance"
	"septic-route-service/internal/adapters/repositories"
	"septic-route-service/internal/api"
	"septic-route-service/internal/config"
	"septic-route-service/internal/domain"
	"septic-route-service/internal/platform/db"
	"septic-route-service/internal/platform/logger"
	"septic-route-service/internal/platform/metrics"
	"septic-route-service/internal/ports"
	"septic-route-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS or Google) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(cfg.App.Env)
	slog.SetDefault(lg)
	metrics.RegisterDefault()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, lg *slog.Logger) error {
	var conn *sql.DB
	if cfg.DB.URL != "" {
		var err error
		conn, err = db.Open(ctx, cfg.DB.URL)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			return err
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
	}

	repo, err := newDumpSiteRepository(conn, cfg.App.SeedPath)
	if err != nil {
		return err
	}

	provider, err := newDistanceProvider(cfg, conn, rdb)
	if err != nil {
		return err
	}

	table, err := config.LoadGallonsTable(cfg.App.GallonsTablePath)
	if err != nil {
		return err
	}

	metric, err := services.ParseDistanceMetric(cfg.Routing.DistanceMetric)
	if err != nil {
		return err
	}

	planner := services.NewRoutePlanner(repo, provider, services.NewGallonsEstimator(table))
	planner.Reference = domain.Coordinates{Lat: cfg.Routing.ReferenceLat, Lng: cfg.Routing.ReferenceLng}
	planner.Metric = metric
	planner.Aggregate = services.AggregateOptions{
		Workers:    cfg.Routing.LegWorkers,
		LegTimeout: cfg.Routing.LegTimeout,
		Deadline:   cfg.Routing.RouteDeadline,
	}

	router := api.NewRouter(repo, planner, cfg.Routing.DepotAddress, lg)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Routing.RouteDeadline + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server listening", "addr", srv.Addr, "provider", cfg.Distance.Provider)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	lg.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// newDumpSiteRepository reads from Postgres when a database is configured and
// from the seed file otherwise.
func newDumpSiteRepository(conn *sql.DB, seedPath string) (ports.DumpSiteRepository, error) {
	if conn != nil {
		return repositories.NewSQLDumpSiteRepository(conn), nil
	}

	sites, err := repositories.LoadDumpSiteSeeds(seedPath)
	if err != nil {
		return nil, fmt.Errorf("load dump sites without database: %w", err)
	}
	return repositories.NewMemoryDumpSiteRepository(sites), nil
}

// Fixed leg used by the mock provider so local runs produce full routes.
const (
	mockLegMinutes = 15
	mockLegKm      = 10
)

// newDistanceProvider builds the configured provider and wraps it with leg
// caching (Redis preferred, Postgres otherwise) and metrics.
func newDistanceProvider(cfg config.Config, conn *sql.DB, rdb *redis.Client) (ports.DistanceProvider, error) {
	var (
		inner ports.DistanceProvider
		err   error
	)

	switch cfg.Distance.Provider {
	case "ors":
		var geo ports.GeocodeCache
		if conn != nil {
			geo = cache.NewSQLGeocodeCache(conn)
		}
		inner, err = distance.NewORSDistanceProvider(distance.ORSConfig{
			APIKey:            cfg.Distance.ORSAPIKey,
			BaseURL:           cfg.Distance.ORSBaseURL,
			RequestsPerMinute: cfg.Distance.ORSRatePerMin,
		}, geo)
	case "google":
		inner, err = distance.NewGoogleDistanceProvider(cfg.Distance.GoogleAPIKey, cfg.Distance.GoogleBaseURL)
	case "mock":
		inner = distance.NewMockDistanceProvider(nil).WithDefault(mockLegMinutes, mockLegKm)
	default:
		err = fmt.Errorf("unknown distance provider %q", cfg.Distance.Provider)
	}
	if err != nil {
		return nil, err
	}

	provider := inner
	if cfg.Distance.LegCacheEnabled {
		switch {
		case rdb != nil:
			provider = distance.NewCachedDistanceProvider(cfg.Distance.Provider, provider, cache.NewRedisLegCache(rdb, cfg.Distance.LegCacheTTL))
		case conn != nil:
			provider = distance.NewCachedDistanceProvider(cfg.Distance.Provider, provider, cache.NewSQLLegCache(conn, cfg.Distance.LegCacheTTL))
		}
	}

	return distance.NewInstrumentedProvider(cfg.Distance.Provider, provider), nil
}

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"septic-route-service/internal/adapters/distance"
	"septic-route-service/internal/adapters/repositories"
	"septic-route-service/internal/api/dto"
	"septic-route-service/internal/domain"
	"septic-route-service/internal/platform/metrics"
	"septic-route-service/internal/services"
	"strings"
	"testing"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	metrics.RegisterDefault()

	repo := repositories.NewMemoryDumpSiteRepository([]domain.DumpSite{
		{ID: 1, Name: "Near", Address: "Near Plant", GPSCoordinates: "38.26,-85.74", IsActive: true, AcceptsSepticWaste: true},
		{ID: 2, Name: "Closed", Address: "Closed Plant", GPSCoordinates: "38.25,-85.75", IsActive: false, AcceptsSepticWaste: true},
	})
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: "Depot", To: "Near Plant", Minutes: 12, Km: 6},
		{From: "Near Plant", To: "A", Minutes: 8, Km: 4},
		{From: "B", To: "Depot", Minutes: 10, Km: 5},
	})

	planner := services.NewRoutePlanner(repo, provider, nil)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(repo, planner, "Depot", log)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing request id header")
	}

	rec = do(t, h, http.MethodPost, "/health", "")
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") != http.MethodGet {
		t.Fatalf("expected 405 with Allow header, got %d", rec.Code)
	}
}

func TestListDumpSites(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/dump-sites", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res dto.ListDumpSitesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.DumpSites) != 2 || res.DumpSites[1].IsActive {
		t.Fatalf("unexpected sites: %+v", res.DumpSites)
	}
}

func TestTankStatus(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/tank/status",
		`{"truck": {"id": "T1", "tank_capacity_gallons": 3000, "current_tank_level_gallons": 2600}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	var st domain.TankStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !st.DumpRecommended || st.Status != domain.TankStatusDumpNeeded || st.FillPercentage != 86.7 {
		t.Fatalf("unexpected status: %+v", st)
	}

	rec = do(t, h, http.MethodPost, "/tank/status", `{"truck": {"id": "T1", "tank_capacity_gallons": 0}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero capacity, got %d", rec.Code)
	}
}

func TestTankProgression(t *testing.T) {
	body := `{
		"truck": {"id": "T1", "tank_capacity_gallons": 3000, "current_tank_level_gallons": 2200},
		"jobs": [
			{"id": "1", "job_id": "J-1", "service_type": "Septic Pumping", "estimated_gallons": 400, "customer_address": "A"},
			{"id": "2", "job_id": "J-2", "service_type": "Septic Inspection", "customer_address": "B"}
		]
	}`

	rec := do(t, newTestRouter(t), http.MethodPost, "/tank/progression", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	var res dto.TankProgressionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Steps) != 2 || res.Steps[1].GallonsAdded != 0 {
		t.Fatalf("unexpected steps: %+v", res.Steps)
	}
	if len(res.DumpPoints) != 1 || res.DumpPoints[0].JobIndex != 0 || res.DumpPoints[0].LevelGallons != 2200 {
		t.Fatalf("unexpected dump points: %+v", res.DumpPoints)
	}
	if len(res.Jobs) != 2 || res.Jobs[1].EstimatedGallons == nil || *res.Jobs[1].EstimatedGallons != 0 {
		t.Fatalf("expected filled gallon estimates in jobs: %+v", res.Jobs)
	}
}

func TestPlanRoute(t *testing.T) {
	body := `{
		"truck": {"id": "T1", "tank_capacity_gallons": 3000, "current_tank_level_gallons": 2200},
		"jobs": [
			{"id": "1", "job_id": "J-1", "customer_name": "Smith", "service_type": "Septic Pumping", "estimated_gallons": 400, "customer_address": "A"},
			{"id": "2", "job_id": "J-2", "service_type": "Septic Pumping", "estimated_gallons": 400, "customer_address": "B"}
		]
	}`

	rec := do(t, newTestRouter(t), http.MethodPost, "/routes", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	var res dto.RouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Start, dump, job 1, job 2, end.
	if len(res.Stops) != 5 {
		t.Fatalf("expected 5 stops, got %d", len(res.Stops))
	}
	if res.Stops[1].Dump == nil || res.Stops[1].Dump.DumpSiteID != 1 {
		t.Fatalf("expected dump at active site, got %+v", res.Stops[1])
	}
	if res.Stops[2].Job == nil || res.Stops[2].Job.CustomerName != "Smith" || res.Stops[3].Job.CustomerName != "Unknown" {
		t.Fatalf("unexpected job stops: %+v / %+v", res.Stops[2].Job, res.Stops[3].Job)
	}

	// A -> B has no mock pair.
	if res.Stops[2].DriveTimeToNextMinutes != nil || res.UnresolvedLegs != 1 {
		t.Fatalf("expected unresolved A->B leg, got %+v", res.Stops[2])
	}
	if res.Stops[4].DriveTimeToNextMinutes != nil {
		t.Fatalf("last stop must not carry a leg")
	}
	if res.TotalDriveTimeMinutes != 30 || res.TotalWorkTimeMinutes != 120 || res.DumpStopsCount != 1 {
		t.Fatalf("unexpected totals: %+v", res)
	}
	if res.RouteID == "" {
		t.Fatalf("missing route id")
	}
}

func TestPlanRoute_RequestDumpSiteDefaults(t *testing.T) {
	// Flags omitted: the site must count as active and septic-capable.
	body := `{
		"truck": {"id": "T1", "tank_capacity_gallons": 3000, "current_tank_level_gallons": 2500},
		"jobs": [{"id": "1", "service_type": "Septic Pumping", "estimated_gallons": 400, "customer_address": "A"}],
		"dump_sites": [{"id": 9, "name": "P", "address": "Plant", "gps_coordinates": "38.2,-85.7"}]
	}`

	rec := do(t, newTestRouter(t), http.MethodPost, "/routes", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	var res dto.RouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Stops) < 2 || res.Stops[1].Dump == nil || res.Stops[1].Dump.DumpSiteID != 9 {
		t.Fatalf("expected dump at request site 9, got %+v", res.Stops)
	}
	if res.DumpStopsCount != 1 {
		t.Fatalf("dump stops = %d, want 1", res.DumpStopsCount)
	}
}

func TestPlanRoute_NullLegsOnWire(t *testing.T) {
	body := `{"truck": {"id": "T1", "tank_capacity_gallons": 3000}, "jobs": [], "end_address": "Elsewhere"}`

	rec := do(t, newTestRouter(t), http.MethodPost, "/routes", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"drive_time_to_next_minutes":null`)) {
		t.Fatalf("expected explicit null leg, got %s", rec.Body.String())
	}
}

func TestPlanRoute_BadRequests(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "unknown field", body: `{"truck": {"id": "T1", "tank_capacity_gallons": 3000}, "color": "red"}`},
		{name: "two objects", body: `{"truck": {"id": "T1", "tank_capacity_gallons": 3000}}{}`},
		{name: "missing truck", body: `{"jobs": []}`},
		{name: "negative level", body: `{"truck": {"id": "T1", "tank_capacity_gallons": 3000, "current_tank_level_gallons": -5}}`},
		{name: "job without address", body: `{"truck": {"id": "T1", "tank_capacity_gallons": 3000}, "jobs": [{"id": "1"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/routes", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body=%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t)
	_ = do(t, h, http.MethodGet, "/health", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

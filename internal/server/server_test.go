package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andina-geotech/slopewatch/internal/config"
	"github.com/andina-geotech/slopewatch/internal/model"
	"github.com/andina-geotech/slopewatch/internal/stats"
	"github.com/andina-geotech/slopewatch/internal/terrain"
)

func f64(v float64) *float64 { return &v }

func tp(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func testConfig() *config.Config {
	return &config.Config{
		Quality: config.QualityConfig{
			MinYear:      2000,
			MaxYearSlack: 1,
			EastMin:      200000,
			EastMax:      800000,
			NorthMin:     6000000,
			NorthMax:     8000000,
		},
		Server: config.ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
	}
}

func testDataset() *model.Dataset {
	events := []model.Event{
		{
			ID:         "EV-001",
			Type:       "Deslizamiento",
			OccurredAt: tp("2024-03-05"),
			Zone:       "Pared Norte",
			Coordinates: model.Coordinates{
				East: f64(350000), North: f64(7450000), Elevation: f64(2400), Valid: true,
			},
			Velocity:     f64(2.5),
			Volume:       f64(1500),
			AutoDetected: true,
		},
		{
			ID:         "EV-002",
			Type:       "Agrietamiento",
			OccurredAt: tp("2024-03-20"),
			Zone:       "Pared Norte",
			Coordinates: model.Coordinates{
				East: f64(350100), North: f64(7450200), Elevation: f64(2410), Valid: true,
			},
		},
		{
			ID:          "EV-003",
			Type:        "Deslizamiento",
			OccurredAt:  tp("2024-05-11"),
			Zone:        "Pared Sur",
			Coordinates: model.Coordinates{Valid: false},
		},
	}
	alerts := []model.Alert{
		{
			ID:         "AL-001",
			Level:      "Roja",
			Status:     model.AlertOpen,
			DeclaredAt: tp("2024-03-06"),
			Zone:       "Pared Norte",
			EventRef:   "EV-001",
			Coordinates: model.Coordinates{
				East: f64(350050), North: f64(7450100), Elevation: f64(2405), Valid: true,
			},
		},
		{
			ID:          "AL-002",
			Level:       "Amarilla",
			Status:      model.AlertClosed,
			DeclaredAt:  tp("2024-05-12"),
			ClosedAt:    tp("2024-05-14"),
			Zone:        "Pared Sur",
			Coordinates: model.Coordinates{Valid: false},
		},
	}
	ds := &model.Dataset{
		SnapshotID: "snap-test-1234",
		LoadedAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Events:     events,
		Alerts:     alerts,
		Warnings: []model.Warning{
			{Source: model.SourceEvents, Row: 4, Column: "Fecha", Kind: model.WarnBadDate, Message: "unparseable date"},
		},
	}
	ds.Stats = stats.Compute(events, alerts)
	return ds
}

func testRouter() http.Handler {
	return New(testDataset(), testConfig()).Router()
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	rr := get(t, testRouter(), "/healthz")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "snap-test-1234", rr.Header().Get("X-Snapshot-ID"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestSummaryEndpoint(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/summary")

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		SnapshotID   string        `json:"snapshot_id"`
		Summary      model.Summary `json:"summary"`
		WarningCount int           `json:"warning_count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "snap-test-1234", body.SnapshotID)
	assert.Equal(t, 3, body.Summary.EventCount)
	assert.Equal(t, 2, body.Summary.AlertCount)
	assert.Equal(t, 1, body.Summary.OpenAlerts)
	assert.Equal(t, 1, body.WarningCount)
}

func TestEventsEndpoint_Unfiltered(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/events")

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Count  int           `json:"count"`
		Events []model.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Count)
	assert.Len(t, body.Events, 3)
}

func TestEventsEndpoint_FilteredByZone(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/events?zone=Pared+Sur")

	var body struct {
		Count  int           `json:"count"`
		Events []model.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "EV-003", body.Events[0].ID)
}

func TestEventsEndpoint_FilteredByDateWindow(t *testing.T) {
	// The to date is inclusive of its whole day.
	rr := get(t, testRouter(), "/api/v1/events?from=2024-03-01&to=2024-03-20")

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
}

func TestEventsEndpoint_BadFromDate(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/events?from=03/01/2024")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "bad from date")
}

func TestAlertsEndpoint_FilteredByZone(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/alerts?zone=Pared+Norte")

	var body struct {
		Count  int           `json:"count"`
		Alerts []model.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "AL-001", body.Alerts[0].ID)
}

func TestStatsEndpoint_RecomputesOverFilteredSubset(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/stats?zone=Pared+Norte")

	assert.Equal(t, http.StatusOK, rr.Code)

	var bundle model.StatsBundle
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bundle))
	assert.Equal(t, 2, bundle.Summary.EventCount)
	assert.Equal(t, 1, bundle.Summary.AlertCount)
	require.Len(t, bundle.EventsByMonth, 1)
	assert.Equal(t, model.MonthCount{Month: "2024-03", Count: 2}, bundle.EventsByMonth[0])
}

func TestStatsEndpoint_Unfiltered_ZeroFillsMonths(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/stats")

	var bundle model.StatsBundle
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bundle))

	// March through May, with the empty April present at zero.
	require.Len(t, bundle.EventsByMonth, 3)
	assert.Equal(t, model.MonthCount{Month: "2024-04", Count: 0}, bundle.EventsByMonth[1])
}

func TestWarningsEndpoint(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/warnings")

	var body struct {
		Count    int             `json:"count"`
		Warnings []model.Warning `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Warnings, 1)
	assert.Equal(t, model.WarnBadDate, body.Warnings[0].Kind)
}

func TestMapEventsEndpoint_OnlyLocatedRecords(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/map/events")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/geo+json")

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			ID         string                 `json:"id"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	// EV-003 has no coordinates and stays off the map.
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "EV-001", fc.Features[0].ID)
	assert.Equal(t, "event", fc.Features[0].Properties["kind"])
}

func TestMapEventsEndpoint_EmptyFilterStillValidCollection(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/map/events?zone=no-such-zone")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"features":[]`)
}

func TestMapExtentEndpoint(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/map/extent")

	assert.Equal(t, http.StatusOK, rr.Code)

	var extent struct {
		EastMin float64 `json:"east_min"`
		EastMax float64 `json:"east_max"`
		Count   int     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &extent))
	assert.Equal(t, 350000.0, extent.EastMin)
	assert.Equal(t, 350100.0, extent.EastMax)
	assert.Equal(t, 3, extent.Count)
}

func TestMapExtentEndpoint_NoLocatedRecords(t *testing.T) {
	ds := &model.Dataset{
		SnapshotID: "snap-empty",
		Events:     []model.Event{{ID: "EV-1", Zone: "unknown"}},
	}
	router := New(ds, testConfig()).Router()

	rr := get(t, router, "/api/v1/map/extent")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "no map-ready records")
}

func TestExportEventsCSVEndpoint(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/export/events.csv?zone=Pared+Norte")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "events.csv")

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Len(t, lines, 3) // header + two zone rows
	assert.True(t, strings.HasPrefix(lines[0], "id,type,"))
	assert.Contains(t, lines[1], "EV-001")
}

func TestExportAlertsCSVEndpoint(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/export/alerts.csv")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "alerts.csv")

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "AL-001")
}

func TestTerrainEndpoints(t *testing.T) {
	models := []*terrain.Model{
		{Name: "rajo.stl", Kind: terrain.KindMesh, Mesh: &terrain.MeshSummary{Format: terrain.FormatBinary, Triangles: 2}},
		{Name: "bancos.dxf", Kind: terrain.KindPlan, Plan: &terrain.DXFSummary{Entities: 4}},
	}
	router := New(testDataset(), testConfig(), WithTerrain(models)).Router()

	rr := get(t, router, "/api/v1/terrain")
	assert.Equal(t, http.StatusOK, rr.Code)

	var list struct {
		Count  int `json:"count"`
		Models []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"models"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "rajo.stl", list.Models[0].Name)

	rr = get(t, router, "/api/v1/terrain/bancos.dxf")
	assert.Equal(t, http.StatusOK, rr.Code)
	var m terrain.Model
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	assert.Equal(t, terrain.KindPlan, m.Kind)
	require.NotNil(t, m.Plan)
	assert.Equal(t, 4, m.Plan.Entities)

	rr = get(t, router, "/api/v1/terrain/nope.stl")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTerrainEndpoint_NoModelsLoaded(t *testing.T) {
	rr := get(t, testRouter(), "/api/v1/terrain")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"models":[]`)
}

func TestCORSPreflightAllowsDashboardOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/summary", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

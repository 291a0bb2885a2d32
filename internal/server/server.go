// Package server exposes a loaded dataset to the dashboard frontend as
// a read-only JSON API. Every stats request recomputes the bundle over
// the filtered subset, so the frontend never depends on server-side
// caching of derived figures.
package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/andina-geotech/slopewatch/internal/config"
	"github.com/andina-geotech/slopewatch/internal/export"
	"github.com/andina-geotech/slopewatch/internal/geomap"
	"github.com/andina-geotech/slopewatch/internal/model"
	"github.com/andina-geotech/slopewatch/internal/pipeline"
	"github.com/andina-geotech/slopewatch/internal/stats"
	"github.com/andina-geotech/slopewatch/internal/terrain"
)

const dateParamLayout = "2006-01-02"

// Server serves one immutable dataset snapshot.
type Server struct {
	ds      *model.Dataset
	window  model.CoordinateBounds
	origins []string
	terrain []*terrain.Model
	log     *zap.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithTerrain attaches loaded CAD reference models to the terrain
// endpoints.
func WithTerrain(models []*terrain.Model) Option {
	return func(s *Server) {
		s.terrain = models
	}
}

// New builds a server over a loaded dataset.
func New(ds *model.Dataset, cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		ds:      ds,
		window:  pipeline.QualityFromConfig(cfg).Bounds,
		origins: cfg.Server.AllowedOrigins,
		log:     zap.L().With(zap.String("component", "server")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router wires the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Snapshot-ID"},
		MaxAge:         300,
	}))
	r.Use(s.recoverPanics)
	r.Use(s.snapshotHeader)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/events", s.handleEvents)
		r.Get("/alerts", s.handleAlerts)
		r.Get("/stats", s.handleStats)
		r.Get("/warnings", s.handleWarnings)
		r.Get("/map/events", s.handleMapEvents)
		r.Get("/map/alerts", s.handleMapAlerts)
		r.Get("/map/extent", s.handleMapExtent)
		r.Get("/terrain", s.handleTerrainList)
		r.Get("/terrain/{name}", s.handleTerrainModel)
		r.Get("/export/events.csv", s.handleExportEvents)
		r.Get("/export/alerts.csv", s.handleExportAlerts)
	})

	return r
}

// snapshotHeader stamps every response with the dataset snapshot id so
// the frontend can detect staleness across reconnects.
func (s *Server) snapshotHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Snapshot-ID", s.ds.SnapshotID)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("handler panic",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
				)
				http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, struct {
		SnapshotID   string        `json:"snapshot_id"`
		LoadedAt     time.Time     `json:"loaded_at"`
		Summary      model.Summary `json:"summary"`
		WarningCount int           `json:"warning_count"`
	}{
		SnapshotID:   s.ds.SnapshotID,
		LoadedAt:     s.ds.LoadedAt,
		Summary:      s.ds.Stats.Summary,
		WarningCount: len(s.ds.Warnings),
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	events := f.Events(s.ds.Events)
	s.writeJSON(w, struct {
		Count  int           `json:"count"`
		Events []model.Event `json:"events"`
	}{Count: len(events), Events: events})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	alerts := f.Alerts(s.ds.Alerts)
	s.writeJSON(w, struct {
		Count  int           `json:"count"`
		Alerts []model.Alert `json:"alerts"`
	}{Count: len(alerts), Alerts: alerts})
}

// handleStats recomputes the full bundle for the filtered subset on
// every request.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, stats.Compute(f.Events(s.ds.Events), f.Alerts(s.ds.Alerts)))
}

func (s *Server) handleWarnings(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, struct {
		Count    int             `json:"count"`
		Warnings []model.Warning `json:"warnings"`
	}{Count: len(s.ds.Warnings), Warnings: s.ds.Warnings})
}

func (s *Server) handleMapEvents(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	fc := geomap.Collection(geomap.EventFeatures(f.Events(s.ds.Events), s.window))
	data, err := fc.MarshalJSON()
	s.writeGeoJSON(w, data, err)
}

func (s *Server) handleMapAlerts(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	fc := geomap.Collection(geomap.AlertFeatures(f.Alerts(s.ds.Alerts), s.window))
	data, err := fc.MarshalJSON()
	s.writeGeoJSON(w, data, err)
}

// handleMapExtent reports the bounding box of everything map-ready, for
// the dashboard's initial camera.
func (s *Server) handleMapExtent(w http.ResponseWriter, _ *http.Request) {
	extent, ok := geomap.FeatureExtent(
		geomap.EventFeatures(s.ds.Events, s.window),
		geomap.AlertFeatures(s.ds.Alerts, s.window),
	)
	if !ok {
		s.writeError(w, http.StatusNotFound, eris.New("no map-ready records in dataset"))
		return
	}
	s.writeJSON(w, extent)
}

func (s *Server) handleTerrainList(w http.ResponseWriter, _ *http.Request) {
	models := s.terrain
	if models == nil {
		models = []*terrain.Model{}
	}
	s.writeJSON(w, struct {
		Count  int              `json:"count"`
		Models []*terrain.Model `json:"models"`
	}{Count: len(models), Models: models})
}

func (s *Server) handleTerrainModel(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, m := range s.terrain {
		if m.Name == name {
			s.writeJSON(w, m)
			return
		}
	}
	s.writeError(w, http.StatusNotFound, eris.Errorf("no terrain model named %q", name))
}

func (s *Server) handleExportEvents(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="events.csv"`)
	if err := export.EventsCSV(w, f.Events(s.ds.Events)); err != nil {
		s.log.Error("csv export failed", zap.Error(err))
	}
}

func (s *Server) handleExportAlerts(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="alerts.csv"`)
	if err := export.AlertsCSV(w, f.Alerts(s.ds.Alerts)); err != nil {
		s.log.Error("csv export failed", zap.Error(err))
	}
}

// filterFromQuery reads the from/to/zone/type query parameters. The to
// date is inclusive of its whole day.
func filterFromQuery(q url.Values) (pipeline.Filter, error) {
	var f pipeline.Filter
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(dateParamLayout, v)
		if err != nil {
			return f, eris.Errorf("server: bad from date %q, want YYYY-MM-DD", v)
		}
		f.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(dateParamLayout, v)
		if err != nil {
			return f, eris.Errorf("server: bad to date %q, want YYYY-MM-DD", v)
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &end
	}
	f.Zones = q["zone"]
	f.Types = q["type"]
	return f, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encoding failed", zap.Error(err))
	}
}

func (s *Server) writeGeoJSON(w http.ResponseWriter, data []byte, err error) {
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, eris.Wrap(err, "server: encode geojson"))
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if _, err := w.Write(data); err != nil {
		s.log.Error("geojson write failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

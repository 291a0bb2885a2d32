// Package pipeline composes reading, validation, normalization and
// aggregation into the single load path every command shares.
package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andina-geotech/slopewatch/internal/config"
	"github.com/andina-geotech/slopewatch/internal/ingest"
	"github.com/andina-geotech/slopewatch/internal/model"
	"github.com/andina-geotech/slopewatch/internal/stats"
	"github.com/andina-geotech/slopewatch/internal/table"
)

// Load reads both workbooks, validates their schemas, normalizes every
// row and computes the statistics bundle. The two sources are
// independent files and load in parallel. A schema failure on either
// source aborts the whole run: callers must be able to distinguish "no
// events occurred" from "the events file could not be read".
func Load(eventsPath, alertsPath string, cfg *config.Config) (*model.Dataset, error) {
	quality := QualityFromConfig(cfg)

	var (
		g             errgroup.Group
		events        []model.Event
		alerts        []model.Alert
		eventWarnings []model.Warning
		alertWarnings []model.Warning
	)

	g.Go(func() error {
		tbl, err := readTable(string(model.SourceEvents), eventsPath, cfg.Data.Sheet)
		if err != nil {
			return eris.Wrap(err, "pipeline: load events")
		}
		check, err := table.Validate(tbl, ingest.EventRequirements)
		if err != nil {
			return eris.Wrap(err, "pipeline: validate events")
		}
		rows, rowWarnings := ingest.Events(tbl, quality)
		events = rows
		eventWarnings = append(check.Warnings, rowWarnings...)
		return nil
	})
	g.Go(func() error {
		tbl, err := readTable(string(model.SourceAlerts), alertsPath, cfg.Data.Sheet)
		if err != nil {
			return eris.Wrap(err, "pipeline: load alerts")
		}
		check, err := table.Validate(tbl, ingest.AlertRequirements)
		if err != nil {
			return eris.Wrap(err, "pipeline: validate alerts")
		}
		rows, rowWarnings := ingest.Alerts(tbl, quality)
		alerts = rows
		alertWarnings = append(check.Warnings, rowWarnings...)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge after the join, events first, so two loads of the same
	// files yield the same warning sequence.
	warnings := make([]model.Warning, 0, len(eventWarnings)+len(alertWarnings))
	warnings = append(warnings, eventWarnings...)
	warnings = append(warnings, alertWarnings...)

	ds := &model.Dataset{
		SnapshotID: uuid.NewString(),
		LoadedAt:   time.Now().UTC(),
		Events:     events,
		Alerts:     alerts,
		Warnings:   warnings,
	}
	ds.Stats = stats.Compute(events, alerts)

	zap.L().Info("dataset loaded",
		zap.String("snapshot_id", ds.SnapshotID),
		zap.Int("events", len(events)),
		zap.Int("alerts", len(alerts)),
		zap.Int("warnings", len(warnings)),
	)

	return ds, nil
}

// QualityFromConfig maps the configured plausibility window onto the
// normalizer's quality bounds.
func QualityFromConfig(cfg *config.Config) ingest.Quality {
	return ingest.Quality{
		MinYear:      cfg.Quality.MinYear,
		MaxYearSlack: cfg.Quality.MaxYearSlack,
		Bounds: model.CoordinateBounds{
			EastMin:  cfg.Quality.EastMin,
			EastMax:  cfg.Quality.EastMax,
			NorthMin: cfg.Quality.NorthMin,
			NorthMax: cfg.Quality.NorthMax,
		},
	}
}

// readTable dispatches on the file extension. Anything that is not an
// Excel workbook is read as delimited text.
func readTable(source, path, sheet string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return table.ReadXLSX(source, path, table.XLSXOptions{SheetName: sheet})
	default:
		return table.ReadCSV(source, path, table.CSVOptions{})
	}
}

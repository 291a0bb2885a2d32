package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andina-geotech/slopewatch/internal/model"
	"github.com/andina-geotech/slopewatch/internal/pipeline"
)

var (
	flagEvents string
	flagAlerts string
)

// dataFlags declares the source-path overrides shared by every command
// that loads the workbooks.
func dataFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagEvents, "events", "", "events workbook path (default from config)")
	cmd.Flags().StringVar(&flagAlerts, "alerts", "", "alerts workbook path (default from config)")
}

// loadDataset runs the shared ingestion pipeline with path overrides
// applied.
func loadDataset() (*model.Dataset, error) {
	if err := cfg.Validate("load"); err != nil {
		return nil, err
	}

	eventsPath := cfg.Data.EventsPath()
	if flagEvents != "" {
		eventsPath = flagEvents
	}
	alertsPath := cfg.Data.AlertsPath()
	if flagAlerts != "" {
		alertsPath = flagAlerts
	}

	return pipeline.Load(eventsPath, alertsPath, cfg)
}

var (
	flagFrom  string
	flagTo    string
	flagZones []string
	flagTypes []string
)

// filterFlags declares the record filters shared by stats and export.
func filterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFrom, "from", "", "keep records on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagTo, "to", "", "keep records up to and including this date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&flagZones, "zone", nil, "keep records in these monitoring zones")
	cmd.Flags().StringSliceVar(&flagTypes, "type", nil, "keep events of these types")
}

// buildFilter parses the filter flags. The --to date is inclusive of its
// whole day.
func buildFilter() (pipeline.Filter, error) {
	var f pipeline.Filter
	if flagFrom != "" {
		t, err := time.Parse("2006-01-02", flagFrom)
		if err != nil {
			return f, eris.Errorf("bad --from date %q, want YYYY-MM-DD", flagFrom)
		}
		f.From = &t
	}
	if flagTo != "" {
		t, err := time.Parse("2006-01-02", flagTo)
		if err != nil {
			return f, eris.Errorf("bad --to date %q, want YYYY-MM-DD", flagTo)
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &end
	}
	f.Zones = flagZones
	f.Types = flagTypes
	return f, nil
}

// encodeJSON writes indented JSON, the default machine format.
func encodeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// encodeYAML writes v as YAML keyed by the json field names, so both
// machine formats expose identical naming.
func encodeYAML(out io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	var tree interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	return enc.Close()
}

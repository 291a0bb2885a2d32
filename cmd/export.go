package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andina-geotech/slopewatch/internal/export"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the normalized dataset to CSV and XLSX files",
	Long:  "Loads both workbooks and writes events.csv, alerts.csv and a two-sheet slopewatch.xlsx with the stable export field names, optionally over a filtered subset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch exportFormat {
		case "all", "csv", "xlsx":
		default:
			return eris.Errorf("unknown format %q, want all, csv or xlsx", exportFormat)
		}

		ds, err := loadDataset()
		if err != nil {
			return err
		}
		f, err := buildFilter()
		if err != nil {
			return err
		}
		events := f.Events(ds.Events)
		alerts := f.Alerts(ds.Alerts)

		outDir := exportOut
		if outDir == "" {
			outDir = cfg.Export.Dir
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return eris.Wrapf(err, "export: create output dir %s", outDir)
		}

		var written []string

		if exportFormat != "xlsx" {
			eventsPath := filepath.Join(outDir, "events.csv")
			if err := writeCSVFile(eventsPath, func(w io.Writer) error {
				return export.EventsCSV(w, events)
			}); err != nil {
				return err
			}
			written = append(written, eventsPath)

			alertsPath := filepath.Join(outDir, "alerts.csv")
			if err := writeCSVFile(alertsPath, func(w io.Writer) error {
				return export.AlertsCSV(w, alerts)
			}); err != nil {
				return err
			}
			written = append(written, alertsPath)
		}

		if exportFormat != "csv" {
			wbPath := filepath.Join(outDir, "slopewatch.xlsx")
			if err := export.WriteWorkbook(wbPath, events, alerts); err != nil {
				return err
			}
			written = append(written, wbPath)
		}

		zap.L().Info("export complete",
			zap.String("snapshot_id", ds.SnapshotID),
			zap.Int("events", len(events)),
			zap.Int("alerts", len(alerts)),
			zap.Strings("files", written),
		)
		return nil
	},
}

// writeCSVFile streams one table through a stable-name encoder.
func writeCSVFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	dataFlags(exportCmd)
	filterFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (default from config)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "all", "which files to write: all, csv or xlsx")
	rootCmd.AddCommand(exportCmd)
}

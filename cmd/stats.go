package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/andina-geotech/slopewatch/internal/model"
	"github.com/andina-geotech/slopewatch/internal/stats"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compute the dashboard statistics bundle",
	Long:  "Loads both workbooks and prints the monthly series, zone and type rankings, classification distributions and the events/alerts correlation, optionally over a filtered subset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}

		f, err := buildFilter()
		if err != nil {
			return err
		}
		bundle := stats.Compute(f.Events(ds.Events), f.Alerts(ds.Alerts))

		switch statsFormat {
		case "json":
			return encodeJSON(os.Stdout, bundle)
		case "yaml":
			return encodeYAML(os.Stdout, bundle)
		case "table":
			formatStatsTable(os.Stdout, bundle)
			return nil
		default:
			return eris.Errorf("unknown format %q, want table, json or yaml", statsFormat)
		}
	},
}

// formatStatsTable writes a human-readable rendering of the bundle to w.
func formatStatsTable(out io.Writer, b model.StatsBundle) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "SUMMARY\t")
	_, _ = fmt.Fprintf(w, "events\t%d\n", b.Summary.EventCount)
	_, _ = fmt.Fprintf(w, "alerts\t%d\n", b.Summary.AlertCount)
	_, _ = fmt.Fprintf(w, "open alerts\t%d\n", b.Summary.OpenAlerts)
	_, _ = fmt.Fprintf(w, "auto-detected events\t%d\n", b.Summary.AutoDetected)
	if b.Summary.EventsFrom != nil && b.Summary.EventsTo != nil {
		_, _ = fmt.Fprintf(w, "event range\t%s .. %s\n",
			b.Summary.EventsFrom.Format("2006-01-02"), b.Summary.EventsTo.Format("2006-01-02"))
	}

	section(w, "EVENTS BY MONTH")
	for _, m := range b.EventsByMonth {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", m.Month, m.Count)
	}

	section(w, "ALERTS BY MONTH")
	for _, m := range b.AlertsByMonth {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", m.Month, m.Count)
	}

	section(w, "EVENTS BY ZONE")
	for _, g := range b.EventsByZone {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", g.Key, g.Count)
	}

	section(w, "EVENT TYPES")
	for _, g := range b.EventTypes {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", g.Key, g.Count)
	}

	section(w, "ALERT LEVELS")
	for _, g := range b.AlertLevels {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", g.Key, g.Count)
	}

	for _, d := range []model.Distribution{b.EventSpeed, b.AlertSpeed, b.EventVolume, b.EventFaultHeight} {
		section(w, "DISTRIBUTION "+d.Scheme)
		for _, bucket := range d.Buckets {
			_, _ = fmt.Fprintf(w, "%s\t%d\n", bucket.Category, bucket.Count)
		}
	}

	section(w, "CORRELATION")
	if b.Correlation.Defined {
		_, _ = fmt.Fprintf(w, "pearson (daily)\t%.4f over %d days\n",
			b.Correlation.Coefficient, b.Correlation.Periods)
	} else {
		_, _ = fmt.Fprintf(w, "pearson (daily)\tnot computable: %s\n", b.Correlation.Reason)
	}

	_ = w.Flush()
}

func section(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, "\t")
	_, _ = fmt.Fprintln(w, title+"\t")
}

func init() {
	dataFlags(statsCmd)
	filterFlags(statsCmd)
	statsCmd.Flags().StringVar(&statsFormat, "format", "table", "output format: table, json or yaml")
	rootCmd.AddCommand(statsCmd)
}

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/andina-geotech/slopewatch/internal/geomap"
	"github.com/andina-geotech/slopewatch/internal/model"
)

var (
	checkFormat string
	checkStrict bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report data-quality findings for the monitoring workbooks",
	Long:  "Loads both workbooks and reports everything the pipeline flagged: warning counts per kind, duplicate ids, records missing dates or locations, and alert/event cross-reference problems.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}

		report := buildQualityReport(ds)

		switch checkFormat {
		case "json":
			if err := encodeJSON(os.Stdout, report); err != nil {
				return err
			}
		case "yaml":
			if err := encodeYAML(os.Stdout, report); err != nil {
				return err
			}
		case "table":
			formatCheckTable(os.Stdout, report)
		default:
			return eris.Errorf("unknown format %q, want table, json or yaml", checkFormat)
		}

		if checkStrict && !report.Clean() {
			return eris.Errorf("check: %d warnings, %d unresolved event references",
				report.WarningCount, len(report.CrossReferences.MissingEvents))
		}
		return nil
	},
}

// qualityReport is the data-owner facing digest of everything the
// pipeline flagged in one load.
type qualityReport struct {
	SnapshotID      string                    `json:"snapshot_id"`
	Events          sourceReport              `json:"events"`
	Alerts          sourceReport              `json:"alerts"`
	WarningCount    int                       `json:"warning_count"`
	WarningsByKind  map[model.WarningKind]int `json:"warnings_by_kind,omitempty"`
	DuplicateIDs    []string                  `json:"duplicate_ids,omitempty"`
	CrossReferences crossReferenceReport      `json:"cross_references"`
}

// Clean reports whether nothing was flagged.
func (r qualityReport) Clean() bool {
	return r.WarningCount == 0 && len(r.CrossReferences.MissingEvents) == 0
}

type sourceReport struct {
	Rows            int `json:"rows"`
	Warnings        int `json:"warnings"`
	MissingDates    int `json:"missing_dates"`
	MissingLocation int `json:"missing_location"`
}

// crossReferenceReport covers the alert → event links. A reference is
// unresolved when no event carries the referenced id; separations are
// reported for pairs where both records are map-ready.
type crossReferenceReport struct {
	AlertsWithEventRef int          `json:"alerts_with_event_ref"`
	MissingEvents      []string     `json:"missing_events,omitempty"`
	Separations        []separation `json:"separations,omitempty"`
}

type separation struct {
	AlertID   string  `json:"alert_id"`
	EventID   string  `json:"event_id"`
	DistanceM float64 `json:"distance_m"`
}

func buildQualityReport(ds *model.Dataset) qualityReport {
	report := qualityReport{
		SnapshotID:   ds.SnapshotID,
		WarningCount: len(ds.Warnings),
		Events:       sourceReport{Rows: len(ds.Events)},
		Alerts:       sourceReport{Rows: len(ds.Alerts)},
	}

	if len(ds.Warnings) > 0 {
		report.WarningsByKind = make(map[model.WarningKind]int)
	}
	seenDup := make(map[string]bool)
	for _, w := range ds.Warnings {
		report.WarningsByKind[w.Kind]++
		switch w.Source {
		case model.SourceEvents:
			report.Events.Warnings++
		case model.SourceAlerts:
			report.Alerts.Warnings++
		}
		if w.Kind == model.WarnDuplicateID && !seenDup[w.Value] {
			seenDup[w.Value] = true
			report.DuplicateIDs = append(report.DuplicateIDs, w.Value)
		}
	}

	eventsByID := make(map[string]model.Event, len(ds.Events))
	for _, e := range ds.Events {
		if e.OccurredAt == nil {
			report.Events.MissingDates++
		}
		if !e.Coordinates.Valid {
			report.Events.MissingLocation++
		}
		if e.ID != "" {
			if _, dup := eventsByID[e.ID]; !dup {
				eventsByID[e.ID] = e
			}
		}
	}

	for _, a := range ds.Alerts {
		if a.DeclaredAt == nil {
			report.Alerts.MissingDates++
		}
		if !a.Coordinates.Valid {
			report.Alerts.MissingLocation++
		}
		if a.EventRef == "" {
			continue
		}
		report.CrossReferences.AlertsWithEventRef++
		ev, found := eventsByID[a.EventRef]
		if !found {
			report.CrossReferences.MissingEvents = append(report.CrossReferences.MissingEvents, a.EventRef)
			continue
		}
		if d, ok := geomap.Distance(a.Coordinates, ev.Coordinates); ok {
			report.CrossReferences.Separations = append(report.CrossReferences.Separations, separation{
				AlertID:   a.ID,
				EventID:   ev.ID,
				DistanceM: d,
			})
		}
	}

	return report
}

func formatCheckTable(out io.Writer, r qualityReport) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "SOURCE\tROWS\tWARNINGS\tNO DATE\tNO LOCATION")
	_, _ = fmt.Fprintf(w, "events\t%d\t%d\t%d\t%d\n",
		r.Events.Rows, r.Events.Warnings, r.Events.MissingDates, r.Events.MissingLocation)
	_, _ = fmt.Fprintf(w, "alerts\t%d\t%d\t%d\t%d\n",
		r.Alerts.Rows, r.Alerts.Warnings, r.Alerts.MissingDates, r.Alerts.MissingLocation)

	if len(r.WarningsByKind) > 0 {
		section(w, "WARNINGS BY KIND")
		kinds := make([]string, 0, len(r.WarningsByKind))
		for kind := range r.WarningsByKind {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			_, _ = fmt.Fprintf(w, "%s\t%d\n", kind, r.WarningsByKind[model.WarningKind(kind)])
		}
	}

	if len(r.DuplicateIDs) > 0 {
		section(w, "DUPLICATE IDS")
		for _, id := range r.DuplicateIDs {
			_, _ = fmt.Fprintf(w, "%s\t\n", id)
		}
	}

	section(w, "CROSS REFERENCES")
	_, _ = fmt.Fprintf(w, "alerts referencing an event\t%d\n", r.CrossReferences.AlertsWithEventRef)
	_, _ = fmt.Fprintf(w, "unresolved references\t%d\n", len(r.CrossReferences.MissingEvents))
	for _, ref := range r.CrossReferences.MissingEvents {
		_, _ = fmt.Fprintf(w, "missing event\t%s\n", ref)
	}
	for _, s := range r.CrossReferences.Separations {
		_, _ = fmt.Fprintf(w, "%s -> %s\t%.1f m apart\n", s.AlertID, s.EventID, s.DistanceM)
	}

	_ = w.Flush()
}

func init() {
	dataFlags(checkCmd)
	checkCmd.Flags().StringVar(&checkFormat, "format", "table", "output format: table, json or yaml")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "exit nonzero when anything is flagged")
	rootCmd.AddCommand(checkCmd)
}

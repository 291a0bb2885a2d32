// Package export renders the normalized record collections as CSV and
// XLSX with stable, documented column names. Downstream tooling keys on
// these names, so they track the model's json tags, not whatever labels
// the dashboard displays.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/andina-geotech/slopewatch/internal/model"
)

// EventColumns is the ordered export header for events.
var EventColumns = []string{
	"id",
	"type",
	"observer",
	"occurred_at",
	"zone",
	"wall",
	"east",
	"north",
	"elevation",
	"associated_alert",
	"activation_hours",
	"bank_height_m",
	"fault_height_m",
	"displacement_mm",
	"velocity_avg_mmh",
	"velocity_mmh",
	"volume_t",
	"auto_detected",
	"radar",
	"failure_mechanism",
}

// AlertColumns is the ordered export header for alerts.
var AlertColumns = []string{
	"id",
	"level",
	"status",
	"status_raw",
	"observer",
	"declared_at",
	"closed_at",
	"event_ref",
	"zone",
	"location_general",
	"wall",
	"east",
	"north",
	"elevation",
	"displacement_mm",
	"velocity_avg_mmh",
	"velocity_mmh",
}

// EventsCSV writes the events as CSV, header first.
func EventsCSV(w io.Writer, events []model.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EventColumns); err != nil {
		return eris.Wrap(err, "export: write events header")
	}
	for i := range events {
		if err := cw.Write(eventRow(&events[i])); err != nil {
			return eris.Wrapf(err, "export: write event %s", events[i].ID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush events csv")
}

// AlertsCSV writes the alerts as CSV, header first.
func AlertsCSV(w io.Writer, alerts []model.Alert) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AlertColumns); err != nil {
		return eris.Wrap(err, "export: write alerts header")
	}
	for i := range alerts {
		if err := cw.Write(alertRow(&alerts[i])); err != nil {
			return eris.Wrapf(err, "export: write alert %s", alerts[i].ID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush alerts csv")
}

// Workbook builds a two-sheet XLSX with both collections.
func Workbook(events []model.Event, alerts []model.Alert) (*xlsx.File, error) {
	f := xlsx.NewFile()

	if err := addSheet(f, "events", EventColumns, len(events), func(i int) []string {
		return eventRow(&events[i])
	}); err != nil {
		return nil, err
	}
	if err := addSheet(f, "alerts", AlertColumns, len(alerts), func(i int) []string {
		return alertRow(&alerts[i])
	}); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteWorkbook saves the two-sheet XLSX to path.
func WriteWorkbook(path string, events []model.Event, alerts []model.Alert) error {
	f, err := Workbook(events, alerts)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save workbook %s", path)
	}
	return nil
}

func addSheet(f *xlsx.File, name string, header []string, n int, row func(int) []string) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add %s sheet", name)
	}
	writeRow(sheet, header)
	for i := 0; i < n; i++ {
		writeRow(sheet, row(i))
	}
	return nil
}

func writeRow(sheet *xlsx.Sheet, cells []string) {
	row := sheet.AddRow()
	for _, v := range cells {
		row.AddCell().SetString(v)
	}
}

func eventRow(e *model.Event) []string {
	return []string{
		e.ID,
		e.Type,
		e.Observer,
		fmtTime(e.OccurredAt),
		e.Zone,
		e.Wall,
		fmtFloat(e.Coordinates.East),
		fmtFloat(e.Coordinates.North),
		fmtFloat(e.Coordinates.Elevation),
		e.AssociatedAlert,
		fmtFloat(e.ActivationHours),
		fmtFloat(e.BankHeight),
		fmtFloat(e.FaultHeight),
		fmtFloat(e.Displacement),
		fmtFloat(e.VelocityAvg),
		fmtFloat(e.Velocity),
		fmtFloat(e.Volume),
		strconv.FormatBool(e.AutoDetected),
		e.Radar,
		e.FailureMechanism,
	}
}

func alertRow(a *model.Alert) []string {
	return []string{
		a.ID,
		a.Level,
		string(a.Status),
		a.StatusRaw,
		a.Observer,
		fmtTime(a.DeclaredAt),
		fmtTime(a.ClosedAt),
		a.EventRef,
		a.Zone,
		a.LocationGeneral,
		a.Wall,
		fmtFloat(a.Coordinates.East),
		fmtFloat(a.Coordinates.North),
		fmtFloat(a.Coordinates.Elevation),
		fmtFloat(a.Displacement),
		fmtFloat(a.VelocityAvg),
		fmtFloat(a.Velocity),
	}
}

// fmtTime renders RFC 3339 or an empty cell for a null date.
func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// fmtFloat renders the shortest exact decimal or an empty cell.
func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

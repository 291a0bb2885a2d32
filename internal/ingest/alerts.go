package ingest

import (
	"github.com/andina-geotech/slopewatch/internal/model"
	"github.com/andina-geotech/slopewatch/internal/table"
)

// AlertRequirements is the schema contract for the alerts workbook.
var AlertRequirements = table.Requirements{
	IDColumn: "id",
	Columns:  []string{"id", "Estatus", "Fecha Declarada", "Zona de Monitoreo", "Estado", "Este", "Norte", "Cota"},
}

// parseStatus maps the exported lifecycle text onto the known status
// set. Gender and tense vary across revisions ("Abierta"/"Abierto").
// Unrecognized values map to unknown rather than failing; the raw text
// is preserved on the record.
func parseStatus(s string) (model.AlertStatus, bool) {
	switch foldLower(s) {
	case "abierta", "abierto", "activa", "activo":
		return model.AlertOpen, true
	case "cerrada", "cerrado":
		return model.AlertClosed, true
	default:
		return model.AlertUnknown, false
	}
}

// Alerts normalizes every data row of the alerts table with the same
// retain-and-flag policy as Events.
func Alerts(t *table.Table, q Quality) ([]model.Alert, []model.Warning) {
	alerts := make([]model.Alert, 0, len(t.Rows))
	n := &normalizer{t: t, source: model.SourceAlerts, q: q}

	for i := range t.Rows {
		n.row = i

		statusRaw := t.Cell(i, "Estado")
		status, known := parseStatus(statusRaw)
		if !known && statusRaw != "" {
			n.warn("Estado", statusRaw, model.WarnUnknownStatus, "unrecognized status, treated as unknown")
		}

		alerts = append(alerts, model.Alert{
			ID:              t.Cell(i, "id"),
			Level:           t.Cell(i, "Estatus"),
			Status:          status,
			StatusRaw:       statusRaw,
			Observer:        t.Cell(i, "Vigilante"),
			DeclaredAt:      n.date("Fecha Declarada", "Fecha Declarada UTC"),
			ClosedAt:        n.date("Fecha de Cierre"),
			EventRef:        t.Cell(i, "Evento"),
			Zone:            n.zone("Zona de Monitoreo", "Zona monitoreo"),
			LocationGeneral: t.Cell(i, "Localización General"),
			Wall:            t.Cell(i, "Pared"),
			Coordinates:     n.coordinates(),
			Displacement:    n.measure("Desplazamiento Últimas 12 hrs. (mm)"),
			VelocityAvg:     n.measure("Velocidad Promedio Últimas 12 hrs. (mm/h)"),
			Velocity:        n.measure("Velocidad Máxima Últimas 12 hrs. (mm/h)"),
		})
	}

	return alerts, n.warnings
}

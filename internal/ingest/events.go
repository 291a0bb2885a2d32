package ingest

import (
	"github.com/andina-geotech/slopewatch/internal/model"
	"github.com/andina-geotech/slopewatch/internal/table"
)

// EventRequirements is the schema contract for the events workbook.
// Lookup is case- and accent-insensitive, so header variants across
// export revisions still satisfy it.
var EventRequirements = table.Requirements{
	IDColumn: "id",
	Columns:  []string{"id", "Tipo", "Fecha", "Zona monitoreo", "Este", "Norte", "Cota"},
}

// Events normalizes every data row of the events table. Rows are never
// dropped; fields that fail to parse are nulled and reported in the
// returned warnings. The result is deterministic for identical input.
func Events(t *table.Table, q Quality) ([]model.Event, []model.Warning) {
	events := make([]model.Event, 0, len(t.Rows))
	n := &normalizer{t: t, source: model.SourceEvents, q: q}

	for i := range t.Rows {
		n.row = i
		events = append(events, model.Event{
			ID:               t.Cell(i, "id"),
			Type:             normalizeType(t.Cell(i, "Tipo")),
			Observer:         t.Cell(i, "Vigilante"),
			OccurredAt:       n.date("Fecha", "Fecha UTC"),
			Zone:             n.zone("Zona monitoreo"),
			Wall:             t.Cell(i, "Pared"),
			Coordinates:      n.coordinates(),
			AssociatedAlert:  t.Cell(i, "Alerta de Seguridad Asociada"),
			ActivationHours:  n.measure("Tiempo de Activación (h)"),
			BankHeight:       n.measure("Altura Banco (m)"),
			FaultHeight:      n.measure("Altura Falla (m)"),
			Displacement:     n.measure("Desplazamiento Acumulado (mm)"),
			VelocityAvg:      n.measure("Velocidad Promedio (mm/h)"),
			Velocity:         n.measure("Velocidad Máxima Últimas 12hrs. (mm/h)"),
			Volume:           n.measure("Volumen (ton)"),
			AutoDetected:     n.flag("Detectado por Sistema"),
			Radar:            t.Cell(i, "Radar Principal"),
			FailureMechanism: t.Cell(i, "Mecanismos falla"),
		})
	}

	return events, n.warnings
}

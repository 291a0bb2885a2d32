package model

// Source identifies which input table produced a record or warning.
type Source string

const (
	SourceEvents Source = "events"
	SourceAlerts Source = "alerts"
)

// WarningKind classifies a data-quality finding.
type WarningKind string

const (
	WarnBadDate          WarningKind = "bad_date"
	WarnDateOutOfRange   WarningKind = "date_out_of_range"
	WarnBadNumber        WarningKind = "bad_number"
	WarnNegativeNumber   WarningKind = "negative_number"
	WarnBadCoordinate    WarningKind = "bad_coordinate"
	WarnCoordinateBounds WarningKind = "coordinate_out_of_bounds"
	WarnBadBool          WarningKind = "bad_bool"
	WarnDuplicateID      WarningKind = "duplicate_id"
	WarnMissingID        WarningKind = "missing_id"
	WarnEmptyCell        WarningKind = "empty_required_cell"
	WarnShortRow         WarningKind = "short_row"
	WarnUnknownStatus    WarningKind = "unknown_status"
)

// Warning is one non-fatal data-quality finding. Rows that produce
// warnings are retained with the offending field nulled, never dropped:
// silently losing safety records is worse than carrying flagged ones.
type Warning struct {
	Source  Source      `json:"source"`
	Row     int         `json:"row"` // 1-based row in the source table, header is row 1
	Column  string      `json:"column,omitempty"`
	Value   string      `json:"value,omitempty"`
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

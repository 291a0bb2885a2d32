package table

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/andina-geotech/slopewatch/internal/model"
)

// ErrSchema marks a fatal schema failure: required columns absent from a
// source. Detect with errors.Is.
var ErrSchema = eris.New("schema validation failed")

// Requirements names the columns a source must carry and which of them
// holds the record id.
type Requirements struct {
	IDColumn string
	Columns  []string
}

// ValidationResult carries the non-fatal findings for a source.
type ValidationResult struct {
	Warnings []model.Warning
}

// Validate checks a loaded table against its requirements. Missing
// required columns are fatal: the error wraps ErrSchema and names the
// source and every absent column so the data owner can fix the export.
// Row-level findings (duplicate ids, empty ids, empty required cells,
// short rows) are warnings; the rows stay in the table.
func Validate(t *Table, req Requirements) (ValidationResult, error) {
	var res ValidationResult

	if missing := t.Missing(req.Columns); len(missing) > 0 {
		return res, eris.Wrapf(ErrSchema, "table: %s source missing required columns [%s]",
			t.Source, strings.Join(missing, ", "))
	}

	source := model.Source(t.Source)
	seen := make(map[string]int, len(t.Rows))
	for i := range t.Rows {
		rowNum := i + 2 // header is row 1

		if len(t.Rows[i]) < len(t.Header) {
			res.Warnings = append(res.Warnings, model.Warning{
				Source:  source,
				Row:     rowNum,
				Kind:    model.WarnShortRow,
				Message: fmt.Sprintf("row has %d cells, header has %d", len(t.Rows[i]), len(t.Header)),
			})
		}

		id := t.Cell(i, req.IDColumn)
		if id == "" {
			res.Warnings = append(res.Warnings, model.Warning{
				Source:  source,
				Row:     rowNum,
				Column:  req.IDColumn,
				Kind:    model.WarnMissingID,
				Message: "empty id",
			})
		} else if first, dup := seen[id]; dup {
			res.Warnings = append(res.Warnings, model.Warning{
				Source:  source,
				Row:     rowNum,
				Column:  req.IDColumn,
				Value:   id,
				Kind:    model.WarnDuplicateID,
				Message: fmt.Sprintf("id %q already used at row %d", id, first),
			})
		} else {
			seen[id] = rowNum
		}

		for _, col := range req.Columns {
			if col == req.IDColumn {
				continue
			}
			if t.Cell(i, col) == "" {
				res.Warnings = append(res.Warnings, model.Warning{
					Source:  source,
					Row:     rowNum,
					Column:  col,
					Kind:    model.WarnEmptyCell,
					Message: "required cell is empty",
				})
			}
		}
	}

	return res, nil
}

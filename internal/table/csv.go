package table

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// CSVOptions configures CSV reading.
type CSVOptions struct {
	Delimiter rune // default ','
}

// ReadCSV loads a CSV file. The first row is the header. Ragged rows
// are accepted here and flagged by validation rather than failing the
// whole file.
func ReadCSV(source, path string, opts CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open %s csv", source)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "table: read %s csv", source)
	}

	var header []string
	var rows [][]string
	if len(records) > 0 {
		header = records[0]
		rows = records[1:]
	}

	return New(source, header, rows), nil
}

package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"id", "id"},
		{"Tipo", "tipo"},
		{"Zona monitoreo", "zonamonitoreo"},
		{"zona  Monitoreo ", "zonamonitoreo"},
		{"Zóna monitoreo", "zonamonitoreo"},
		{"Velocidad Máxima Últimas 12hrs. (mm/h)", "velocidadmaximaultimas12hrsmmh"},
		{"Velocidad Máxima Últimas 12 hrs. (mm/h)", "velocidadmaximaultimas12hrsmmh"},
		{"Tiempo de Activación (h)", "tiempodeactivacionh"},
		{"Localización General", "localizaciongeneral"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeColumn(tt.in))
		})
	}
}

func TestCellAliasFallback(t *testing.T) {
	tbl := New("events", []string{"id", "Fecha", "Fecha UTC"}, [][]string{
		{"1", "01/03/2024", "01/03/2024 03:00"},
		{"2", "", "02/03/2024 03:00"},
		{"3", "  "},
	})

	assert.Equal(t, "01/03/2024", tbl.Cell(0, "Fecha", "Fecha UTC"))
	assert.Equal(t, "02/03/2024 03:00", tbl.Cell(1, "Fecha", "Fecha UTC"), "falls through empty cell to the alias")
	assert.Equal(t, "", tbl.Cell(2, "Fecha", "Fecha UTC"), "short row reads as empty")
	assert.Equal(t, "", tbl.Cell(0, "No Such Column"))
	assert.Equal(t, "", tbl.Cell(99, "id"))
}

func TestCellAccentInsensitive(t *testing.T) {
	tbl := New("events", []string{"Localización General"}, [][]string{{"Pared Norte"}})

	assert.Equal(t, "Pared Norte", tbl.Cell(0, "Localizacion General"))
	assert.Equal(t, "Pared Norte", tbl.Cell(0, "LOCALIZACIÓN GENERAL"))
}

func TestMissing(t *testing.T) {
	tbl := New("events", []string{"id", "Tipo", "Fecha"}, nil)

	assert.Nil(t, tbl.Missing([]string{"id", "tipo", "FECHA"}))
	assert.Equal(t, []string{"Zona monitoreo", "Este"}, tbl.Missing([]string{"id", "Zona monitoreo", "Este"}))
}

func TestLookupFirstDuplicateWins(t *testing.T) {
	tbl := New("events", []string{"Zona", "zona"}, nil)

	idx, ok := tbl.Lookup("ZONA")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.csv")
	content := "id,Estatus,Zona de Monitoreo\nA-1,Amarilla,Norte\nA-2,Roja,Sur\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := ReadCSV("alerts", path, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "Estatus", "Zona de Monitoreo"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Amarilla", tbl.Cell(0, "Estatus"))
	assert.Equal(t, "Sur", tbl.Cell(1, "Zona de Monitoreo"))
}

func TestReadCSVSemicolonDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.csv")
	content := "id;Estatus\nA-1;Amarilla\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := ReadCSV("alerts", path, CSVOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, "Amarilla", tbl.Cell(0, "Estatus"))
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV("alerts", filepath.Join(t.TempDir(), "nope.csv"), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alerts")
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	tbl, err := ReadCSV("events", path, CSVOptions{})
	require.NoError(t, err)
	assert.Empty(t, tbl.Header)
	assert.Empty(t, tbl.Rows)
}

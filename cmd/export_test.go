package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestExportCommand_WritesAllFormats(t *testing.T) {
	withFixtureConfig(t)
	outDir := filepath.Join(t.TempDir(), "out")
	exportOut, exportFormat = outDir, "all"
	defer func() { exportOut, exportFormat = "", "all" }()

	require.NoError(t, exportCmd.RunE(exportCmd, nil))

	for _, name := range []string{"events.csv", "alerts.csv", "slopewatch.xlsx"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, "expected %s to be written", name)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "events.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3) // header + both events
	assert.True(t, strings.HasPrefix(lines[0], "id,type,"))

	wb, err := xlsx.OpenFile(filepath.Join(outDir, "slopewatch.xlsx"))
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, "events", wb.Sheets[0].Name)
	assert.Equal(t, "alerts", wb.Sheets[1].Name)
}

func TestExportCommand_CSVOnly(t *testing.T) {
	withFixtureConfig(t)
	outDir := t.TempDir()
	exportOut, exportFormat = outDir, "csv"
	defer func() { exportOut, exportFormat = "", "all" }()

	require.NoError(t, exportCmd.RunE(exportCmd, nil))

	_, err := os.Stat(filepath.Join(outDir, "events.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "slopewatch.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportCommand_FilteredSubset(t *testing.T) {
	withFixtureConfig(t)
	outDir := t.TempDir()
	exportOut, exportFormat = outDir, "csv"
	flagZones = []string{"Pared Norte"}
	defer func() {
		exportOut, exportFormat = "", "all"
		resetFilterFlags()
	}()

	require.NoError(t, exportCmd.RunE(exportCmd, nil))

	data, err := os.ReadFile(filepath.Join(outDir, "events.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2) // header + the one Pared Norte event
	assert.Contains(t, lines[1], "EV-1")
}

func TestExportCommand_RejectsUnknownFormat(t *testing.T) {
	exportFormat = "pdf"
	defer func() { exportFormat = "all" }()

	err := exportCmd.RunE(exportCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestWriteCSVFile_CreateError(t *testing.T) {
	err := writeCSVFile(filepath.Join(t.TempDir(), "missing-dir", "x.csv"), func(io.Writer) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}

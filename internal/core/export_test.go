package core

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{"": ExportCSV, "CSV": ExportCSV, " xlsx ": ExportXLSX} {
		got, err := ParseExportFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseExportFormat("pdf")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExport_CSV(t *testing.T) {
	table, _ := buildTable(t, "a,name,b\n1,x,2.5\n,y,3\n")

	var buf bytes.Buffer
	require.NoError(t, Export(table, &buf, ExportCSV))
	assert.Equal(t, "a,b\n1,2.5\n,3\n", buf.String())
}

func TestExport_XLSX(t *testing.T) {
	table, _ := buildTable(t, "a,b\n1,2.5\n,3\n")

	var buf bytes.Buffer
	require.NoError(t, Export(table, &buf, ExportXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"1", "2.5"}, rows[1])
	assert.Equal(t, []string{"", "3"}, rows[2])
}

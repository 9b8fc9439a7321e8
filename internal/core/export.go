package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportFormat is a download format for the stored table.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ErrUnsupportedFormat is returned for export formats other than csv and xlsx.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// exportSheet is the worksheet name used for xlsx exports.
const exportSheet = "Sheet1"

// ParseExportFormat validates a format name. Empty means csv.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExportCSV:
		return ExportCSV, nil
	case ExportXLSX:
		return ExportXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type for the format.
func (f ExportFormat) ContentType() string {
	if f == ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Export writes t to w. Missing cells are written empty.
func Export(t *Table, w io.Writer, format ExportFormat) error {
	switch format {
	case ExportCSV:
		return exportCSV(t, w)
	case ExportXLSX:
		return exportXLSX(t, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func exportCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for row := 0; row < t.Rows(); row++ {
		for i, c := range t.Columns {
			record[i] = ""
			if !c.Values[row].IsMissing() {
				record[i] = c.Values[row].String()
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", row+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func exportXLSX(t *Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return fmt.Errorf("xlsx stream writer: %w", err)
	}

	header := make([]any, len(t.Columns))
	for i, name := range t.Names() {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for row := 0; row < t.Rows(); row++ {
		cells := make([]any, len(t.Columns))
		for i, c := range t.Columns {
			if x, ok := c.Values[row].Float(); ok {
				cells[i] = x
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("write row %d: %w", row+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("xlsx flush: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

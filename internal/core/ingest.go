package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrFileTooLarge is returned when an upload exceeds the configured size.
var ErrFileTooLarge = errors.New("file too large")

// IngestResult is returned to the client after a successful upload.
// ColumnNames preserves column order, which the two maps do not.
type IngestResult struct {
	UploadID    string                   `json:"upload_id"`
	Rows        int                      `json:"rows"`
	Columns     int                      `json:"columns"`
	ColumnNames []string                 `json:"column_names"`
	Summary     map[string]ColumnSummary `json:"summary"`
	ColumnData  map[string][]Value       `json:"column_data"`
}

// IngestStats reports what the pipeline discarded, for logging.
type IngestStats struct {
	ParsedRows     int
	ParsedColumns  int
	DroppedColumns []string
}

// BuildTable runs the ingestion pipeline over a complete file and returns the
// new Table without storing it.
//
// The extension check is case-sensitive. maxBytes bounds the read; zero means
// unbounded. Parsing stops early once ctx is done.
func BuildTable(ctx context.Context, fileName string, r io.Reader, maxBytes int64) (*Table, *IngestResult, IngestStats, error) {
	var st IngestStats

	if !strings.HasSuffix(fileName, ".csv") {
		return nil, nil, st, invalidInput("Only CSV files are allowed")
	}

	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, st, fmt.Errorf("read upload: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, nil, st, fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, maxBytes)
	}

	frame, err := ParseCSV(ctx, data)
	if err != nil {
		return nil, nil, st, err
	}
	st.ParsedRows = frame.Rows
	st.ParsedColumns = len(frame.Columns)

	truncated := frame.Truncate(MaxColumns, MaxRows)
	numeric := truncated.Numeric()
	for _, c := range truncated.Columns {
		if c.Kind != ColumnNumeric {
			st.DroppedColumns = append(st.DroppedColumns, c.Name)
		}
	}

	table := newTable(fileName, numeric)

	res := &IngestResult{
		UploadID:    table.ID.String(),
		Rows:        table.Rows(),
		Columns:     len(table.Columns),
		ColumnNames: table.Names(),
		Summary:     make(map[string]ColumnSummary, len(table.Columns)),
		ColumnData:  make(map[string][]Value, len(table.Columns)),
	}
	for _, c := range table.Columns {
		res.Summary[c.Name] = Describe(c.Values)
		res.ColumnData[c.Name] = c.Values
	}

	return table, res, st, nil
}

package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// ColumnKind is the type tag assigned to a column at parse time.
type ColumnKind int

const (
	ColumnNumeric ColumnKind = iota
	ColumnBoolean
	ColumnText
)

func (k ColumnKind) String() string {
	switch k {
	case ColumnNumeric:
		return "numeric"
	case ColumnBoolean:
		return "boolean"
	default:
		return "text"
	}
}

// Frame is a parsed CSV file with a kind per column.
// Missing cells are stored as "".
type Frame struct {
	Columns []FrameColumn
	Rows    int
}

// FrameColumn is one column of a Frame.
type FrameColumn struct {
	Name  string
	Kind  ColumnKind
	Cells []string
}

// numericRegex matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// naValues are cell contents treated as missing.
var naValues = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

var boolValues = map[string]struct{}{
	"True": {}, "TRUE": {}, "true": {},
	"False": {}, "FALSE": {}, "false": {},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const ctxCheckRows = 1024

// ParseCSV reads a complete CSV document with a header row.
//
// Rows shorter than the header are padded with missing cells; a row longer
// than the header is an error. Column kinds are decided over every data row.
// ctx is checked every ctxCheckRows rows.
func ParseCSV(ctx context.Context, data []byte) (*Frame, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, malformed(nil, "encoding error: file is not valid UTF-8")
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, malformed(nil, "empty file: no columns to parse from file")
	}
	if err != nil {
		return nil, malformed(err, "read header")
	}

	names := cleanHeader(header)
	cols := make([]FrameColumn, len(names))
	for i, name := range names {
		cols[i] = FrameColumn{Name: name}
	}

	rows := 0
	for {
		if rows%ctxCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("parse stopped at row %d: %w", rows, err)
			}
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err, "read row %d", rows+1)
		}
		if len(rec) > len(cols) {
			line, _ := r.FieldPos(0)
			return nil, malformed(nil, "expected %d fields in line %d, saw %d", len(cols), line, len(rec))
		}
		for i := range cols {
			cell := ""
			if i < len(rec) {
				cell = normalizeCell(rec[i])
			}
			cols[i].Cells = append(cols[i].Cells, cell)
		}
		rows++
	}

	for i := range cols {
		cols[i].Kind = inferKind(cols[i].Cells)
	}

	return &Frame{Columns: cols, Rows: rows}, nil
}

// normalizeCell maps NA tokens to "" and leaves everything else intact.
// Tokens match exactly; " NA " is text.
func normalizeCell(s string) string {
	if _, ok := naValues[s]; ok {
		return ""
	}
	return s
}

// cleanHeader names blank headers "Unnamed: <i>" and suffixes duplicates
// with ".1", ".2", ... in order of appearance. A suffixed name that is
// already taken is suffixed again, so "A,A.1,A" becomes "A,A.1,A.1.1".
func cleanHeader(header []string) []string {
	names := make([]string, len(header))
	counts := make(map[string]int, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		for n := counts[h]; n > 0; n = counts[h] {
			counts[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n)
		}
		counts[h]++
		names[i] = h
	}
	return names
}

// inferKind tags a column from its non-missing cells. A column with no
// values at all is numeric.
func inferKind(cells []string) ColumnKind {
	present := lo.Filter(cells, func(c string, _ int) bool { return c != "" })
	if len(present) == 0 {
		return ColumnNumeric
	}
	if lo.EveryBy(present, func(c string) bool { _, ok := parseNumber(c); return ok }) {
		return ColumnNumeric
	}
	if lo.EveryBy(present, func(c string) bool { _, ok := boolValues[strings.TrimSpace(c)]; return ok }) {
		return ColumnBoolean
	}
	return ColumnText
}

// parseNumber parses a finite decimal number, ignoring surrounding spaces.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Truncate keeps the first maxCols columns and then the first maxRows rows.
func (f *Frame) Truncate(maxCols, maxRows int) *Frame {
	cols := f.Columns
	if len(cols) > maxCols {
		cols = cols[:maxCols]
	}
	rows := min(f.Rows, maxRows)
	out := make([]FrameColumn, len(cols))
	for i, c := range cols {
		out[i] = FrameColumn{Name: c.Name, Kind: c.Kind, Cells: c.Cells[:rows]}
	}
	return &Frame{Columns: out, Rows: rows}
}

// Numeric returns a Frame holding only the numeric columns.
func (f *Frame) Numeric() *Frame {
	return &Frame{
		Columns: lo.Filter(f.Columns, func(c FrameColumn, _ int) bool { return c.Kind == ColumnNumeric }),
		Rows:    f.Rows,
	}
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	return lo.Map(f.Columns, func(c FrameColumn, _ int) string { return c.Name })
}

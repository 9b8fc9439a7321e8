package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Ingestion limits. Truncation is positional: the leading columns and rows
// are kept.
const (
	MaxColumns = 30
	MaxRows    = 3000
)

// Column is a named numeric column of a Table.
type Column struct {
	Name   string
	Values []Value
}

// Table is the numeric view of an uploaded file. A Table is immutable once
// built; chart and export operations only read it.
type Table struct {
	ID         uuid.UUID
	FileName   string
	UploadedAt time.Time
	Columns    []Column

	index map[string]int
	rows  int
}

// newTable builds a Table from the numeric columns of f.
func newTable(fileName string, f *Frame) *Table {
	t := &Table{
		ID:         uuid.New(),
		FileName:   fileName,
		UploadedAt: time.Now().UTC(),
		Columns:    make([]Column, len(f.Columns)),
		index:      make(map[string]int, len(f.Columns)),
		rows:       f.Rows,
	}
	for i, fc := range f.Columns {
		values := make([]Value, len(fc.Cells))
		for j, cell := range fc.Cells {
			if x, ok := parseNumber(cell); ok {
				values[j] = Number(x)
			} else {
				values[j] = Missing
			}
		}
		t.Columns[i] = Column{Name: fc.Name, Values: values}
		t.index[fc.Name] = i
	}
	return t
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return t.rows
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.Columns[i], true
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	return lo.Map(t.Columns, func(c Column, _ int) string { return c.Name })
}

// columns resolves every name or fails with the first unknown one.
func (t *Table) columns(names ...string) ([]Column, error) {
	out := make([]Column, len(names))
	for i, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, unknownColumn(name)
		}
		out[i] = c
	}
	return out, nil
}

// TableInfo describes the stored table without its data.
type TableInfo struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
	Rows       int       `json:"rows"`
	Columns    []string  `json:"columns"`
}

// Info returns a TableInfo for t.
func (t *Table) Info() TableInfo {
	return TableInfo{
		ID:         t.ID.String(),
		FileName:   t.FileName,
		UploadedAt: t.UploadedAt,
		Rows:       t.rows,
		Columns:    t.Names(),
	}
}

package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTable runs the pipeline over an in-memory CSV and fails the test on error.
func buildTable(t *testing.T, data string) (*Table, *IngestResult) {
	t.Helper()
	table, res, _, err := BuildTable(context.Background(), "data.csv", strings.NewReader(data), 0)
	require.NoError(t, err)
	return table, res
}

func TestBuildTable_DropsNonNumericColumns(t *testing.T) {
	data := "id,name,score,active\n" +
		"1,alice,9.5,true\n" +
		"2,bob,,false\n" +
		"3,carol,7,true\n"

	table, res, st, err := BuildTable(context.Background(), "people.csv", strings.NewReader(data), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "score"}, res.ColumnNames)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 2, res.Columns)
	assert.Equal(t, table.ID.String(), res.UploadID)
	assert.Equal(t, []string{"name", "active"}, st.DroppedColumns)

	assert.Equal(t, 1, res.Summary["score"].EmptyCells)
	assert.Equal(t, 2, res.Summary["score"].Count)
	assert.Equal(t, []Value{Number(9.5), Missing, Number(7)}, res.ColumnData["score"])
}

func TestBuildTable_ResultShape(t *testing.T) {
	_, res := buildTable(t, "a,b\n1,\n,2\n3,4\n")

	for _, name := range res.ColumnNames {
		assert.Len(t, res.ColumnData[name], res.Rows)
		missing := 0
		for _, v := range res.ColumnData[name] {
			if v.IsMissing() {
				missing++
			}
		}
		assert.Equal(t, missing, res.Summary[name].EmptyCells)
		assert.Equal(t, res.Rows-missing, res.Summary[name].Count)
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded struct {
		ColumnData map[string][]json.RawMessage `json:"column_data"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, cells := range decoded.ColumnData {
		for _, c := range cells {
			assert.NotEqual(t, "null", string(c))
		}
	}
	assert.Contains(t, string(raw), `{"kind":"missing"}`)
}

func TestBuildTable_TruncatesColumnsThenRows(t *testing.T) {
	const cols, rows = 35, 3005

	var sb strings.Builder
	for c := 0; c < cols; c++ {
		if c > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "c%d", c)
	}
	sb.WriteByte('\n')
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%d", r)
		}
		sb.WriteByte('\n')
	}

	table, res := buildTable(t, sb.String())
	assert.Equal(t, MaxRows, res.Rows)
	assert.Equal(t, MaxColumns, res.Columns)
	assert.Equal(t, "c0", res.ColumnNames[0])
	assert.Equal(t, "c29", res.ColumnNames[MaxColumns-1])

	last, ok := table.Column("c29")
	require.True(t, ok)
	assert.Equal(t, Number(0), last.Values[0])
	assert.Equal(t, Number(MaxRows-1), last.Values[MaxRows-1])
}

func TestBuildTable_KindDecidedBeforeTruncation(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("a,b\n")
	for r := 0; r < MaxRows; r++ {
		fmt.Fprintf(&sb, "%d,%d\n", r, r)
	}
	// A text cell past the row limit still makes b non-numeric.
	sb.WriteString("1,oops\n")

	_, res := buildTable(t, sb.String())
	assert.Equal(t, []string{"a"}, res.ColumnNames)
	assert.Equal(t, MaxRows, res.Rows)
}

func TestBuildTable_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		data     string
		maxBytes int64
		check    func(t *testing.T, err error)
	}{
		{
			name: "wrong extension",
			file: "data.txt",
			data: "a\n1\n",
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrInvalidInput))
				assert.Equal(t, "Only CSV files are allowed", err.Error())
			},
		},
		{
			name: "uppercase extension",
			file: "data.CSV",
			data: "a\n1\n",
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrInvalidInput))
				assert.Equal(t, "Only CSV files are allowed", err.Error())
			},
		},
		{
			name: "malformed",
			file: "data.csv",
			data: "a\n1,2\n",
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrMalformedData))
			},
		},
		{
			name:     "too large",
			file:     "data.csv",
			data:     "a\n1\n2\n",
			maxBytes: 4,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrFileTooLarge))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, res, _, err := BuildTable(context.Background(), tt.file, strings.NewReader(tt.data), tt.maxBytes)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.Nil(t, res)
			tt.check(t, err)
		})
	}
}

func TestBuildTable_NoNumericColumns(t *testing.T) {
	_, res := buildTable(t, "name\nalice\nbob\n")
	assert.Equal(t, 0, res.Columns)
	assert.Equal(t, 2, res.Rows)
	assert.Empty(t, res.ColumnNames)
}

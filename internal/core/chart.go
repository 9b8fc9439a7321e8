package core

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// ChartKind names a chart type.
type ChartKind string

const (
	ChartScatter   ChartKind = "scatter"
	ChartBar       ChartKind = "bar"
	ChartHistogram ChartKind = "histogram"
	ChartHeatmap   ChartKind = "heatmap"
)

// Axis labels one chart axis. Column is empty when the axis is not bound to
// a table column, as for a histogram's count axis.
type Axis struct {
	Title  string `json:"title"`
	Column string `json:"column,omitempty"`
}

// Point is one scatter marker.
type Point struct {
	X Value `json:"x"`
	Y Value `json:"y"`
}

// BarItem is one bar, x categorical and y its height.
type BarItem struct {
	X Value `json:"x"`
	Y Value `json:"y"`
}

// Grid is an aggregated heatmap. Z[i][j] is the cell for Rows[i], Columns[j].
type Grid struct {
	Rows    []float64 `json:"rows"`
	Columns []string  `json:"columns"`
	Z       [][]Value `json:"z"`
}

// Chart is a declarative, renderer-agnostic chart description. Exactly one
// of Points, Bars, Values or Grid is set, matching Kind.
type Chart struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XAxis  Axis      `json:"x_axis"`
	YAxis  Axis      `json:"y_axis"`
	Points []Point   `json:"points,omitempty"`
	Bars   []BarItem `json:"bars,omitempty"`
	Values []Value   `json:"values,omitempty"`
	Grid   *Grid     `json:"grid,omitempty"`
}

// MarshalJSON always writes the payload field matching Kind, as an empty
// array for a table with no rows, and omits the others.
func (c Chart) MarshalJSON() ([]byte, error) {
	type plain Chart
	out := struct {
		plain
		Points *[]Point   `json:"points,omitempty"`
		Bars   *[]BarItem `json:"bars,omitempty"`
		Values *[]Value   `json:"values,omitempty"`
	}{plain: plain(c)}

	switch c.Kind {
	case ChartScatter:
		points := nonNil(c.Points)
		out.Points = &points
	case ChartBar:
		bars := nonNil(c.Bars)
		out.Bars = &bars
	case ChartHistogram:
		values := nonNil(c.Values)
		out.Values = &values
	}
	return json.Marshal(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Scatter pairs two columns by row into an unordered point cloud.
func Scatter(t *Table, xCol, yCol string) (*Chart, error) {
	cols, err := t.columns(xCol, yCol)
	if err != nil {
		return nil, err
	}
	x, y := cols[0].Values, cols[1].Values
	points := make([]Point, len(x))
	for i := range x {
		points[i] = Point{X: x[i], Y: y[i]}
	}
	return &Chart{
		Kind:   ChartScatter,
		Title:  fmt.Sprintf("Scatter Plot (%s vs %s)", xCol, yCol),
		XAxis:  Axis{Title: xCol, Column: xCol},
		YAxis:  Axis{Title: yCol, Column: yCol},
		Points: points,
	}, nil
}

// Bar pairs two columns by row into one bar per row. Repeated x values are
// not aggregated.
func Bar(t *Table, xCol, yCol string) (*Chart, error) {
	cols, err := t.columns(xCol, yCol)
	if err != nil {
		return nil, err
	}
	x, y := cols[0].Values, cols[1].Values
	bars := make([]BarItem, len(x))
	for i := range x {
		bars[i] = BarItem{X: x[i], Y: y[i]}
	}
	return &Chart{
		Kind:  ChartBar,
		Title: fmt.Sprintf("Bar Chart (%s vs %s)", yCol, xCol),
		XAxis: Axis{Title: xCol, Column: xCol},
		YAxis: Axis{Title: yCol, Column: yCol},
		Bars:  bars,
	}, nil
}

// Histogram passes one column's raw values through; binning is left to the
// renderer.
func Histogram(t *Table, col string) (*Chart, error) {
	cols, err := t.columns(col)
	if err != nil {
		return nil, err
	}
	values := slices.Clone(cols[0].Values)
	return &Chart{
		Kind:   ChartHistogram,
		Title:  fmt.Sprintf("Histogram for %s", col),
		XAxis:  Axis{Title: col, Column: col},
		YAxis:  Axis{Title: "Count"},
		Values: values,
	}, nil
}

// Heatmap groups rows by distinct xCol value, ascending, and takes the mean of
// yCol within each group. Rows with a missing x are skipped; a group whose y
// values are all missing gets a Missing cell.
func Heatmap(t *Table, xCol, yCol string) (*Chart, error) {
	cols, err := t.columns(xCol, yCol)
	if err != nil {
		return nil, err
	}
	x, y := cols[0].Values, cols[1].Values

	groups := make(map[float64][]float64)
	for i := range x {
		key, ok := x[i].Float()
		if !ok {
			continue
		}
		if _, seen := groups[key]; !seen {
			groups[key] = nil
		}
		if v, ok := y[i].Float(); ok {
			groups[key] = append(groups[key], v)
		}
	}

	keys := lo.Keys(groups)
	slices.Sort(keys)

	z := make([][]Value, len(keys))
	for i, k := range keys {
		ys := groups[k]
		if len(ys) == 0 {
			z[i] = []Value{Missing}
			continue
		}
		z[i] = []Value{Number(stat.Mean(ys, nil))}
	}

	return &Chart{
		Kind:  ChartHeatmap,
		Title: fmt.Sprintf("Heatmap (%s vs %s)", yCol, xCol),
		XAxis: Axis{Title: xCol, Column: xCol},
		YAxis: Axis{Title: yCol, Column: yCol},
		Grid: &Grid{
			Rows:    keys,
			Columns: []string{yCol},
			Z:       z,
		},
	}, nil
}

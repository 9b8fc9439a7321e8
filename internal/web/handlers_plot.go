package web

import (
	"net/http"
	"strings"

	"github.com/JonMunkholm/csvplot/internal/core"
)

// queryParams returns the named query parameters in order. Each must be
// present and non-blank.
func queryParams(r *http.Request, names ...string) ([]string, error) {
	q := r.URL.Query()
	values := make([]string, len(names))
	for i, name := range names {
		v := q.Get(name)
		if strings.TrimSpace(v) == "" {
			return nil, missingParam(name)
		}
		values[i] = v
	}
	return values, nil
}

// handleScatter builds a scatter chart from x_column and y_column.
func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	s.pairChart(w, r, s.service.Scatter)
}

// handleBar builds a bar chart from x_column and y_column.
func (s *Server) handleBar(w http.ResponseWriter, r *http.Request) {
	s.pairChart(w, r, s.service.Bar)
}

// handleHeatmap builds a heatmap from x_column and y_column.
func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	s.pairChart(w, r, s.service.Heatmap)
}

// handleHistogram builds a histogram from column_name.
func (s *Server) handleHistogram(w http.ResponseWriter, r *http.Request) {
	params, err := queryParams(r, "column_name")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	chart, err := s.service.Histogram(params[0])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (s *Server) pairChart(w http.ResponseWriter, r *http.Request, build func(x, y string) (*core.Chart, error)) {
	params, err := queryParams(r, "x_column", "y_column")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	chart, err := build(params[0], params[1])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

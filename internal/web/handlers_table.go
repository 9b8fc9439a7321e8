package web

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/csvplot/internal/core"
	"github.com/JonMunkholm/csvplot/internal/logging"
)

// handleTableInfo describes the stored table.
func (s *Server) handleTableInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.Current()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleExport downloads the stored numeric table as CSV or XLSX.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := core.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	info, err := s.service.Current()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Buffered so a failed export can still produce an error response.
	var buf bytes.Buffer
	if err := s.service.Export(&buf, format); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName(info.FileName, format)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("export write failed", "error", err)
	}
}

// exportFileName derives the download name from the uploaded file name.
func exportFileName(uploaded string, format core.ExportFormat) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	if base == "" || base == "." {
		base = "table"
	}
	return fmt.Sprintf("%s_numeric.%s", base, format)
}

// handleHealth reports liveness and upload slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"uploads": s.service.UploadLimiterStatus(),
	})
}

package web

import (
	"fmt"
	"net/http"
)

// formOverhead allows for multipart boundaries and headers on top of the file.
const formOverhead = 1 << 20

// maxFormMemory is how much of the form is held in memory; larger parts
// spill to temporary files.
const maxFormMemory = 8 << 20

// handleUpload accepts a CSV in the multipart field "file", replaces the
// stored table and returns the ingest result.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+formOverhead)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %w", errInvalidForm, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errNoFile)
		return
	}
	defer file.Close()

	result, err := s.service.Ingest(r.Context(), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

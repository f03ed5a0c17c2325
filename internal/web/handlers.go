package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// multipartSlack is extra body allowance for multipart boundaries and
// headers, so a file of exactly the configured maximum still fits.
const multipartSlack = 1 << 20

// uploadResponse is the success payload for an ingestion.
type uploadResponse struct {
	Message      string   `json:"message"`
	Channels     []string `json:"channels"`
	TotalRecords int64    `json:"total_records"`
}

// handleRoot returns a welcome message.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the EDF uploader service!",
	})
}

// handleTestDB verifies database connectivity and reports the backing
// store's version.
func (s *Server) handleTestDB(w http.ResponseWriter, r *http.Request) {
	version, err := s.service.DatabaseVersion(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "Database connected",
		"version": version,
	})
}

// handleUploadEDF ingests one uploaded EDF file: the payload is staged,
// decoded, projected to rows and persisted with full-replace semantics.
func (s *Server) handleUploadEDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize+multipartSlack)

	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize + multipartSlack); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Upload.Timeout)
	defer cancel()

	result, err := s.service.Ingest(ctx, header.Filename, data)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:      fmt.Sprintf("%s uploaded and saved to DB", result.FileName),
		Channels:     result.Channels,
		TotalRecords: result.TotalRecords,
	})
}

// handleGetAllData returns every persisted sample row in store order.
func (s *Server) handleGetAllData(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListSamples(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

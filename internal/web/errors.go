package web

// errors.go maps pipeline failures onto HTTP responses. The failure kind
// picks the status class; the response body is always {"error": message}.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/neurodata/edfstore/internal/core"
)

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error string `json:"error"`
}

// respondError logs the technical error with request context and writes
// the client-facing response with a status derived from the error kind.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"kind", core.KindOf(err).String(),
		"error", err.Error(),
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeError(w, status, err.Error())
}

// statusForError picks the HTTP status for a pipeline failure.
// Validation failures are client-class; oversize payloads get their own
// status. Decode failures map to 500 to match the reference behavior,
// even though the payload is arguably at fault.
func statusForError(err error) int {
	switch core.KindOf(err) {
	case core.KindValidation:
		if errors.Is(err, core.ErrFileTooLarge) {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeJSON encodes v as JSON and writes it with the given status.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/garnizeh/careerpages/internal/careers"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// logged with the failing operation and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		ve *careers.ValidationError
		ce *careers.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		writeErrorMessage(w, http.StatusBadRequest, ve.Message)
	case errors.As(err, &ce):
		writeErrorMessage(w, http.StatusBadRequest, ce.Message)
	case errors.Is(err, careers.ErrUnauthenticated):
		writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, careers.ErrUnauthorized):
		writeErrorMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, careers.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "Not found")
	default:
		logger.Error("request failed",
			slog.String("op", op),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
		writeErrorMessage(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// decode reads a JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request")
		return false
	}
	return true
}

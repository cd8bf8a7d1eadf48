package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/joanapinto/humsy/internal/repository"
	"github.com/joanapinto/humsy/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// serviceError maps known domain errors onto HTTP statuses. Anything
// unrecognized is a 500 and gets logged by the caller.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrStepNotFound),
		errors.Is(err, repository.ErrMilestoneNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

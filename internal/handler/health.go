package handler

import (
	"net/http"

	"github.com/jmoiron/sqlx"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

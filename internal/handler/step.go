package handler

import (
	"net/http"

	"github.com/joanapinto/humsy/internal/ctxkeys"
	"github.com/joanapinto/humsy/internal/service"
)

type StepHandler struct {
	adaptationService *service.AdaptationService
}

func NewStepHandler(adaptationService *service.AdaptationService) *StepHandler {
	return &StepHandler{
		adaptationService: adaptationService,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a step forward through its lifecycle. Skips go through
// Skip instead, which requires a reason.
func (h *StepHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	stepID := r.PathValue("id")

	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	step, err := h.adaptationService.UpdateStatus(userID, stepID, req.Status)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, step)
}

type skipRequest struct {
	Reason         string `json:"reason"`
	AlignmentScore int    `json:"alignment_score"`
}

// Skip marks the step skipped with a reason and returns the adaptation the
// skip produced.
func (h *StepHandler) Skip(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	stepID := r.PathValue("id")

	var req skipRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.adaptationService.Skip(r.Context(), userID, stepID, service.SkipInput{
		Reason:         req.Reason,
		AlignmentScore: req.AlignmentScore,
	})
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

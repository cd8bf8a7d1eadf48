package handler

import (
	"net/http"

	"github.com/joanapinto/humsy/internal/ctxkeys"
	"github.com/joanapinto/humsy/internal/service"
)

type CheckinHandler struct {
	checkinService *service.CheckinService
}

func NewCheckinHandler(checkinService *service.CheckinService) *CheckinHandler {
	return &CheckinHandler{
		checkinService: checkinService,
	}
}

type checkinRequest struct {
	GoalID         string `json:"goal_id"`
	EnergyLevel    string `json:"energy_level"`
	CurrentFeeling string `json:"current_feeling"`
	FocusToday     string `json:"focus_today"`
	Notes          string `json:"notes"`
}

// Create stores a check-in and returns today's aligned steps for the goal.
// goal_id is optional; it defaults to the active goal.
func (h *CheckinHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req checkinRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.checkinService.CheckIn(r.Context(), userID, service.CheckinInput{
		GoalID:         req.GoalID,
		EnergyLevel:    req.EnergyLevel,
		CurrentFeeling: req.CurrentFeeling,
		FocusToday:     req.FocusToday,
		Notes:          req.Notes,
	})
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

type moodRequest struct {
	Mood      string `json:"mood"`
	Intensity int    `json:"intensity"`
	Notes     string `json:"notes"`
}

func (h *CheckinHandler) LogMood(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req moodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.checkinService.LogMood(userID, req.Mood, req.Intensity, req.Notes)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

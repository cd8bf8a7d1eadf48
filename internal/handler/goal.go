package handler

import (
	"net/http"
	"time"

	"github.com/joanapinto/humsy/internal/ctxkeys"
	"github.com/joanapinto/humsy/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type goalRequest struct {
	Title         string   `json:"title"`
	WhyMatters    string   `json:"why_matters"`
	Deadline      string   `json:"deadline"`
	SuccessMetric string   `json:"success_metric"`
	StartingPoint string   `json:"starting_point"`
	WeeklyTime    string   `json:"weekly_time"`
	EnergyTime    string   `json:"energy_time"`
	FreeDays      []string `json:"free_days"`
	Intensity     string   `json:"intensity"`
	JoySources    []string `json:"joy_sources"`
	EnergyDrains  []string `json:"energy_drainers"`
	AutoAdapt     *bool    `json:"auto_adapt"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	deadline, ok := parseDate(w, req.Deadline)
	if !ok {
		return
	}

	autoAdapt := true
	if req.AutoAdapt != nil {
		autoAdapt = *req.AutoAdapt
	}

	goal, err := h.goalService.Create(userID, service.CreateGoalInput{
		Title:         req.Title,
		WhyMatters:    req.WhyMatters,
		Deadline:      deadline,
		SuccessMetric: req.SuccessMetric,
		StartingPoint: req.StartingPoint,
		WeeklyTime:    req.WeeklyTime,
		EnergyTime:    req.EnergyTime,
		FreeDays:      req.FreeDays,
		Intensity:     req.Intensity,
		JoySources:    req.JoySources,
		EnergyDrains:  req.EnergyDrains,
		AutoAdapt:     autoAdapt,
	})
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Active(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goal, err := h.goalService.Active(userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

type goalUpdateRequest struct {
	Title         *string  `json:"title"`
	WhyMatters    *string  `json:"why_matters"`
	Deadline      *string  `json:"deadline"`
	SuccessMetric *string  `json:"success_metric"`
	WeeklyTime    *string  `json:"weekly_time"`
	EnergyTime    *string  `json:"energy_time"`
	FreeDays      []string `json:"free_days"`
	Intensity     *string  `json:"intensity"`
	AutoAdapt     *bool    `json:"auto_adapt"`
	BetaGuideSeen *bool    `json:"beta_guide_seen"`
	Status        *string  `json:"status"`
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	var req goalUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := service.UpdateGoalInput{
		Title:         req.Title,
		WhyMatters:    req.WhyMatters,
		SuccessMetric: req.SuccessMetric,
		WeeklyTime:    req.WeeklyTime,
		EnergyTime:    req.EnergyTime,
		FreeDays:      req.FreeDays,
		Intensity:     req.Intensity,
		AutoAdapt:     req.AutoAdapt,
		BetaGuideSeen: req.BetaGuideSeen,
		Status:        req.Status,
	}
	if req.Deadline != nil {
		deadline, ok := parseDate(w, *req.Deadline)
		if !ok {
			return
		}
		input.Deadline = deadline
	}

	goal, err := h.goalService.Update(userID, goalID, input)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

// EraseAccount deletes every row the user owns. There is no undo.
func (h *GoalHandler) EraseAccount(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	if err := h.goalService.EraseUser(userID); err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func parseDate(w http.ResponseWriter, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

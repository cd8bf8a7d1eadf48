package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/joanapinto/humsy/internal/ctxkeys"
	"github.com/joanapinto/humsy/internal/service"
)

type PlanHandler struct {
	planService       *service.PlanService
	adaptationService *service.AdaptationService
}

func NewPlanHandler(planService *service.PlanService, adaptationService *service.AdaptationService) *PlanHandler {
	return &PlanHandler{
		planService:       planService,
		adaptationService: adaptationService,
	}
}

// Generate drafts and stores a fresh plan for the goal, replacing any
// existing one.
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	plan, err := h.planService.Generate(r.Context(), userID, goalID)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, plan)
}

func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	plan, err := h.planService.Plan(userID, goalID)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// Today lists the goal's candidate steps for a date. Defaults to now; an
// explicit ?date=YYYY-MM-DD overrides it.
func (h *PlanHandler) Today(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	date := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	steps, err := h.planService.Today(userID, goalID, date)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"date": date.Format("2006-01-02"), "steps": steps})
}

func (h *PlanHandler) Adaptations(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	records, err := h.adaptationService.Adaptations(userID, goalID, limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"adaptations": records})
}

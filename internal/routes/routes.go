package routes

import (
	"net/http"

	"github.com/joanapinto/humsy/internal/app"
	"github.com/joanapinto/humsy/internal/handler"
	"github.com/joanapinto/humsy/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	goal := handler.NewGoalHandler(app.GoalService)
	plan := handler.NewPlanHandler(app.PlanService, app.AdaptationService)
	step := handler.NewStepHandler(app.AdaptationService)
	checkin := handler.NewCheckinHandler(app.CheckinService)

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", health.Health)

	// Everything below requires the X-User identity header
	api := http.NewServeMux()

	// Goals
	api.HandleFunc("POST /goals", goal.Create)
	api.HandleFunc("GET /goals/active", goal.Active)
	api.HandleFunc("PATCH /goals/{id}", goal.Update)
	api.HandleFunc("DELETE /users/me", goal.EraseAccount)

	// Plans (generation fans out to the AI backend, so it is rate limited)
	rateLimiter := middleware.RateLimitGenerate()
	api.HandleFunc("POST /goals/{id}/plan", rateLimiter(plan.Generate))
	api.HandleFunc("GET /goals/{id}/plan", plan.Plan)
	api.HandleFunc("GET /goals/{id}/today", plan.Today)
	api.HandleFunc("GET /goals/{id}/adaptations", plan.Adaptations)

	// Steps
	api.HandleFunc("POST /steps/{id}/status", step.UpdateStatus)
	api.HandleFunc("POST /steps/{id}/skip", step.Skip)

	// Check-ins and moods
	api.HandleFunc("POST /checkins", checkin.Create)
	api.HandleFunc("POST /moods", checkin.LogMood)

	mux.Handle("/", middleware.RequireUser(api))

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}

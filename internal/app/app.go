package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/joanapinto/humsy/internal/assistant"
	"github.com/joanapinto/humsy/internal/config"
	"github.com/joanapinto/humsy/internal/db"
	"github.com/joanapinto/humsy/internal/repository"
	"github.com/joanapinto/humsy/internal/service"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	GoalService       *service.GoalService
	PlanService       *service.PlanService
	CheckinService    *service.CheckinService
	AdaptationService *service.AdaptationService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	planRepository := repository.NewPlanRepository(database)
	adaptationRepository := repository.NewAdaptationRepository(database)
	checkinRepository := repository.NewCheckinRepository(database)
	moodRepository := repository.NewMoodRepository(database)
	usageRepository := repository.NewUsageRepository(database)

	// AI capabilities share one client, cache and usage limiter
	client := assistant.NewOpenAIClient(cfg.OpenAIAPIKey)
	cache := assistant.NewCache(cfg.AICacheTTL)
	caps := map[string]assistant.Caps{
		assistant.FeatureGoalPlan:       {Daily: cfg.AIDailyCap, Monthly: cfg.AIMonthlyCap},
		assistant.FeatureDailyAlignment: {Daily: cfg.AIDailyCap, Monthly: cfg.AIMonthlyCap},
		assistant.FeaturePlanAdaptation: {Daily: cfg.AIDailyCap, Monthly: cfg.AIMonthlyCap},
	}
	limiter := assistant.NewLimiter(usageRepository, caps)

	proposer := assistant.NewOpenAIProposer(client, cache, limiter)
	aligner := assistant.NewOpenAIAligner(client, cache, limiter)
	adapter := assistant.NewOpenAIAdapter(client, cache, limiter)

	// Services
	goalService := service.NewGoalService(goalRepository)
	planService := service.NewPlanService(goalRepository, planRepository, proposer)
	checkinService := service.NewCheckinService(goalRepository, planRepository, checkinRepository, moodRepository, aligner)
	adaptationService := service.NewAdaptationService(goalRepository, planRepository, adaptationRepository, checkinRepository, adapter)

	return &App{
		Cfg:               cfg,
		DB:                database,
		GoalService:       goalService,
		PlanService:       planService,
		CheckinService:    checkinService,
		AdaptationService: adaptationService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

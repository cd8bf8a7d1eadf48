package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/joanapinto/humsy/internal/db"
	"github.com/joanapinto/humsy/internal/model"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	// A pooled second connection would see its own empty in-memory database.
	database.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	t.Cleanup(func() { _ = database.Close() })
	return database
}

func insertGoal(t *testing.T, repo GoalRepository, userID string) *model.Goal {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	goal := &model.Goal{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      "Learn Spanish",
		WeeklyTime: "2-3 hours",
		Intensity:  model.IntensityBalanced,
		JoySources: model.JSONList{"music", "walks"},
		AutoAdapt:  true,
		Status:     model.GoalStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.Create(goal))
	return goal
}

func TestGoalCreateArchivesPriorActive(t *testing.T) {
	database := testDB(t)
	repo := NewGoalRepository(database)

	first := insertGoal(t, repo, "user-1")
	second := insertGoal(t, repo, "user-1")

	stored, err := repo.ByID("user-1", first.ID)
	require.NoError(t, err)
	require.Equal(t, model.GoalStatusArchived, stored.Status)

	active, err := repo.ActiveByUser("user-1")
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)
}

func TestGoalJSONListRoundTrip(t *testing.T) {
	database := testDB(t)
	repo := NewGoalRepository(database)

	goal := insertGoal(t, repo, "user-1")

	stored, err := repo.ByID("user-1", goal.ID)
	require.NoError(t, err)
	require.Equal(t, model.JSONList{"music", "walks"}, stored.JoySources)
}

func TestGoalOwnershipEnforced(t *testing.T) {
	database := testDB(t)
	repo := NewGoalRepository(database)

	goal := insertGoal(t, repo, "user-1")

	_, err := repo.ByID("someone-else", goal.ID)
	require.ErrorIs(t, err, ErrGoalNotFound)
}

func planFixture(goalID string) ([]*model.Milestone, []*model.Step) {
	now := time.Now().UTC().Truncate(time.Second)
	m := &model.Milestone{
		ID:         uuid.New().String(),
		GoalID:     goalID,
		Seq:        1,
		Title:      "Basics",
		TargetDate: now.AddDate(0, 1, 0),
		Status:     model.MilestoneStatusPending,
		CreatedAt:  now,
	}
	due := now.AddDate(0, 0, 7)
	steps := []*model.Step{
		{
			ID:              uuid.New().String(),
			GoalID:          goalID,
			MilestoneID:     &m.ID,
			Title:           "Alphabet",
			EstimateMinutes: 30,
			SuggestedDay:    "Monday",
			DueDate:         &due,
			Status:          model.StepStatusPending,
			CreatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			GoalID:          goalID,
			MilestoneID:     &m.ID,
			Title:           "Greetings",
			EstimateMinutes: 45,
			SuggestedDay:    model.AnyDay,
			DueDate:         &due,
			Status:          model.StepStatusPending,
			CreatedAt:       now,
		},
	}
	return []*model.Milestone{m}, steps
}

func TestReplacePlanSwapsBatch(t *testing.T) {
	database := testDB(t)
	goalRepo := NewGoalRepository(database)
	planRepo := NewPlanRepository(database)

	goal := insertGoal(t, goalRepo, "user-1")

	oldMilestones, oldSteps := planFixture(goal.ID)
	require.NoError(t, planRepo.ReplacePlan(goal.ID, oldMilestones, oldSteps))

	newMilestones, newSteps := planFixture(goal.ID)
	require.NoError(t, planRepo.ReplacePlan(goal.ID, newMilestones, newSteps))

	milestones, err := planRepo.Milestones(goal.ID)
	require.NoError(t, err)
	require.Len(t, milestones, 1)
	require.Equal(t, newMilestones[0].ID, milestones[0].ID)

	steps, err := planRepo.Steps(goal.ID)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	for _, s := range steps {
		require.NotNil(t, s.MilestoneID)
		require.Equal(t, newMilestones[0].ID, *s.MilestoneID)
	}
}

func TestUpdateStepStatusStampsLastScheduled(t *testing.T) {
	database := testDB(t)
	goalRepo := NewGoalRepository(database)
	planRepo := NewPlanRepository(database)

	goal := insertGoal(t, goalRepo, "user-1")
	milestones, steps := planFixture(goal.ID)
	require.NoError(t, planRepo.ReplacePlan(goal.ID, milestones, steps))

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, planRepo.UpdateStepStatus(steps[0].ID, model.StepStatusInProgress, at))

	stored, err := planRepo.StepByID("user-1", steps[0].ID)
	require.NoError(t, err)
	require.Equal(t, model.StepStatusInProgress, stored.Status)
	require.NotNil(t, stored.LastScheduled)

	require.ErrorIs(t, planRepo.UpdateStepStatus("missing", model.StepStatusCompleted, at), ErrStepNotFound)
}

func TestApplyDiffActions(t *testing.T) {
	database := testDB(t)
	goalRepo := NewGoalRepository(database)
	planRepo := NewPlanRepository(database)

	goal := insertGoal(t, goalRepo, "user-1")
	milestones, steps := planFixture(goal.ID)
	require.NoError(t, planRepo.ReplacePlan(goal.ID, milestones, steps))
	require.NoError(t, planRepo.UpdateStepStatus(steps[1].ID, model.StepStatusSkipped, time.Now()))

	diff := model.DiffList{
		{Action: model.DiffActionReschedule, StepID: steps[0].ID, SuggestedDay: "Friday", DueDate: "2026-10-01"},
		{Action: model.DiffActionScopeDown, StepID: steps[0].ID, Minutes: 15},
		{Action: model.DiffActionReopen, StepID: steps[1].ID},
		{Action: model.DiffActionCompleteMilestone, MilestoneID: milestones[0].ID},
		{Action: "delete_everything", StepID: steps[0].ID},
	}
	require.NoError(t, planRepo.ApplyDiff(goal.ID, diff))

	first, err := planRepo.StepByID("user-1", steps[0].ID)
	require.NoError(t, err)
	require.Equal(t, "Friday", first.SuggestedDay)
	require.Equal(t, 15, first.EstimateMinutes)
	require.NotNil(t, first.DueDate)
	require.Equal(t, "2026-10-01", first.DueDate.Format("2006-01-02"))

	second, err := planRepo.StepByID("user-1", steps[1].ID)
	require.NoError(t, err)
	require.Equal(t, model.StepStatusPending, second.Status)

	stored, err := planRepo.Milestones(goal.ID)
	require.NoError(t, err)
	require.Equal(t, model.MilestoneStatusCompleted, stored[0].Status)
}

func TestAdaptationAppendAndRead(t *testing.T) {
	database := testDB(t)
	goalRepo := NewGoalRepository(database)
	adaptRepo := NewAdaptationRepository(database)

	goal := insertGoal(t, goalRepo, "user-1")

	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		rec := &model.AdaptationRecord{
			ID:               uuid.New().String(),
			GoalID:           goal.ID,
			CheckinTimestamp: now,
			AlignmentScore:   50 + i,
			Reason:           model.SkipReasonLowEnergy,
			ChangeSummary:    "Rescheduled",
			Diff:             model.DiffList{{Action: model.DiffActionReschedule, StepID: "s1", SuggestedDay: "Friday"}},
			CreatedAt:        now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, adaptRepo.Create(rec))
	}

	records, err := adaptRepo.RecentByGoal(goal.ID, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, 52, records[0].AlignmentScore)
	require.Len(t, records[0].Diff, 1)
}

func TestUsageCountSince(t *testing.T) {
	database := testDB(t)
	usageRepo := NewUsageRepository(database)
	ctx := context.Background()

	require.NoError(t, usageRepo.Record(ctx, "user-1", "goal_plan"))
	require.NoError(t, usageRepo.Record(ctx, "user-1", "goal_plan"))
	require.NoError(t, usageRepo.Record(ctx, "user-1", "daily_alignment"))

	count, err := usageRepo.CountSince(ctx, "user-1", "goal_plan", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = usageRepo.CountSince(ctx, "user-1", "goal_plan", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestEraseUserRemovesEverything(t *testing.T) {
	database := testDB(t)
	goalRepo := NewGoalRepository(database)
	planRepo := NewPlanRepository(database)
	checkinRepo := NewCheckinRepository(database)

	goal := insertGoal(t, goalRepo, "user-1")
	milestones, steps := planFixture(goal.ID)
	require.NoError(t, planRepo.ReplacePlan(goal.ID, milestones, steps))
	require.NoError(t, checkinRepo.Create(&model.Checkin{
		ID:          uuid.New().String(),
		UserID:      "user-1",
		GoalID:      goal.ID,
		EnergyLevel: "low",
		CreatedAt:   time.Now().UTC(),
	}))

	require.NoError(t, goalRepo.EraseUser("user-1"))

	_, err := goalRepo.ByID("user-1", goal.ID)
	require.ErrorIs(t, err, ErrGoalNotFound)

	remaining, err := planRepo.Steps(goal.ID)
	require.NoError(t, err)
	require.Empty(t, remaining)

	_, err = checkinRepo.LatestByUser("user-1")
	require.ErrorIs(t, err, ErrCheckinNotFound)
}

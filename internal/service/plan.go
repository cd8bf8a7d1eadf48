package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/joanapinto/humsy/internal/assistant"
	"github.com/joanapinto/humsy/internal/model"
	"github.com/joanapinto/humsy/internal/repository"
	"github.com/joanapinto/humsy/internal/schedule"
)

type PlanService struct {
	goalRepo repository.GoalRepository
	planRepo repository.PlanRepository
	proposer assistant.Proposer
}

func NewPlanService(goalRepo repository.GoalRepository, planRepo repository.PlanRepository, proposer assistant.Proposer) *PlanService {
	return &PlanService{
		goalRepo: goalRepo,
		planRepo: planRepo,
		proposer: proposer,
	}
}

// PlanView is a goal's full plan, milestones in order with their steps.
type PlanView struct {
	Milestones []*model.Milestone `json:"milestones"`
	Steps      []*model.Step      `json:"steps"`
}

// Generate drafts a plan for the goal, normalizes it under the goal's time
// budget and replaces any existing plan in one batch. When no AI capability
// is available the rule-based proposer kicks in, so generation always
// succeeds for a valid goal.
func (s *PlanService) Generate(ctx context.Context, userID, goalID string) (*PlanView, error) {
	goal, err := s.goalRepo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	raw, err := s.proposer.ProposePlan(ctx, goal)
	if err != nil {
		if !errors.Is(err, assistant.ErrUnavailable) {
			return nil, fmt.Errorf("failed to propose plan: %w", err)
		}
		slog.Info("proposer unavailable, using rule-based plan", "goal_id", goalID)
		raw, _ = assistant.RuleBasedProposer{}.ProposePlan(ctx, goal)
	}

	budget := schedule.ResolveBudget(goal.WeeklyTime, goal.Intensity, goal.FreeDayList())
	plan := schedule.Normalize(raw, goal, budget, time.Now())

	milestones, steps := buildPlanRows(goal.ID, plan)
	if err := s.planRepo.ReplacePlan(goal.ID, milestones, steps); err != nil {
		return nil, fmt.Errorf("failed to store plan: %w", err)
	}

	return &PlanView{Milestones: milestones, Steps: steps}, nil
}

// buildPlanRows mints ids for the normalized batch and links steps to their
// milestone through the Seq the normalizer assigned.
func buildPlanRows(goalID string, plan schedule.Plan) ([]*model.Milestone, []*model.Step) {
	now := time.Now()

	idBySeq := make(map[int]string, len(plan.Milestones))
	milestones := make([]*model.Milestone, 0, len(plan.Milestones))
	for _, m := range plan.Milestones {
		row := &model.Milestone{
			ID:          uuid.New().String(),
			GoalID:      goalID,
			Seq:         m.Seq,
			Title:       m.Title,
			Description: m.Description,
			TargetDate:  m.TargetDate,
			Status:      model.MilestoneStatusPending,
			CreatedAt:   now,
		}
		idBySeq[m.Seq] = row.ID
		milestones = append(milestones, row)
	}

	steps := make([]*model.Step, 0, len(plan.Steps))
	for _, st := range plan.Steps {
		row := &model.Step{
			ID:              uuid.New().String(),
			GoalID:          goalID,
			Title:           st.Title,
			Description:     st.Description,
			EstimateMinutes: st.EstimateMinutes,
			SuggestedDay:    st.SuggestedDay,
			Status:          model.StepStatusPending,
			CreatedAt:       now,
		}
		if id, ok := idBySeq[st.MilestoneSeq]; ok {
			row.MilestoneID = &id
		}
		due := st.DueDate
		row.DueDate = &due
		steps = append(steps, row)
	}

	return milestones, steps
}

// Plan returns the stored plan for the goal.
func (s *PlanService) Plan(userID, goalID string) (*PlanView, error) {
	if _, err := s.goalRepo.ByID(userID, goalID); err != nil {
		return nil, err
	}

	milestones, err := s.planRepo.Milestones(goalID)
	if err != nil {
		return nil, err
	}
	steps, err := s.planRepo.Steps(goalID)
	if err != nil {
		return nil, err
	}

	return &PlanView{Milestones: milestones, Steps: steps}, nil
}

// Today returns the goal's candidate steps for the given date: actionable
// steps whose suggested weekday matches, due-soonest first.
func (s *PlanService) Today(userID, goalID string, date time.Time) ([]*model.Step, error) {
	if _, err := s.goalRepo.ByID(userID, goalID); err != nil {
		return nil, err
	}

	steps, err := s.planRepo.Steps(goalID)
	if err != nil {
		return nil, err
	}

	return schedule.Candidates(steps, date), nil
}

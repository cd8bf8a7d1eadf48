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
	"github.com/joanapinto/humsy/internal/validation"
)

var (
	ErrInvalidTransition = errors.New("invalid step status transition")
)

// DisabledSummary is recorded when the goal has auto-adapt turned off: the
// skip still lands in the audit log, the plan stays untouched.
const DisabledSummary = "Auto-adapt disabled; skip recorded"

type AdaptationService struct {
	goalRepo       repository.GoalRepository
	planRepo       repository.PlanRepository
	adaptationRepo repository.AdaptationRepository
	checkinRepo    repository.CheckinRepository
	adapter        assistant.Adapter
}

func NewAdaptationService(
	goalRepo repository.GoalRepository,
	planRepo repository.PlanRepository,
	adaptationRepo repository.AdaptationRepository,
	checkinRepo repository.CheckinRepository,
	adapter assistant.Adapter,
) *AdaptationService {
	return &AdaptationService{
		goalRepo:       goalRepo,
		planRepo:       planRepo,
		adaptationRepo: adaptationRepo,
		checkinRepo:    checkinRepo,
		adapter:        adapter,
	}
}

// UpdateStatus moves a step through pending -> in_progress -> completed.
// Skipping is not reachable here; it goes through Skip with a reason.
func (s *AdaptationService) UpdateStatus(userID, stepID, status string) (*model.Step, error) {
	switch status {
	case model.StepStatusInProgress, model.StepStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: cannot set status %q directly", ErrInvalidTransition, status)
	}

	step, err := s.planRepo.StepByID(userID, stepID)
	if err != nil {
		return nil, err
	}
	if !step.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, step.Status, status)
	}

	now := time.Now()
	if err := s.planRepo.UpdateStepStatus(step.ID, status, now); err != nil {
		return nil, err
	}

	step.Status = status
	step.LastScheduled = &now
	return step, nil
}

type SkipInput struct {
	Reason         string
	AlignmentScore int
}

// SkipResult is what a skip produced: the audit record and the plan's
// steps after the diff was applied.
type SkipResult struct {
	Record *model.AdaptationRecord `json:"record"`
	Steps  []*model.Step           `json:"steps"`
}

// Skip marks the step skipped and runs the adaptation flow: persist the
// transition, ask the adapter for a minimal diff, append exactly one audit
// record and apply the diff. An unavailable adapter or a disabled auto-adapt
// flag still produces the record, just with an empty diff.
func (s *AdaptationService) Skip(ctx context.Context, userID, stepID string, input SkipInput) (*SkipResult, error) {
	if err := validation.ValidateSkipReason(input.Reason); err != nil {
		return nil, invalid(err)
	}

	step, err := s.planRepo.StepByID(userID, stepID)
	if err != nil {
		return nil, err
	}
	if !step.CanTransition(model.StepStatusSkipped) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, step.Status, model.StepStatusSkipped)
	}

	goal, err := s.goalRepo.ByID(userID, step.GoalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.planRepo.UpdateStepStatus(step.ID, model.StepStatusSkipped, now); err != nil {
		return nil, err
	}
	step.Status = model.StepStatusSkipped
	step.LastScheduled = &now

	adaptation := s.propose(ctx, goal, step, input.Reason, now)

	record := &model.AdaptationRecord{
		ID:               uuid.New().String(),
		GoalID:           goal.ID,
		CheckinTimestamp: s.checkinTimestamp(userID, now),
		AlignmentScore:   input.AlignmentScore,
		Reason:           input.Reason,
		ChangeSummary:    adaptation.ChangeSummary,
		Diff:             adaptation.Diff,
		CreatedAt:        now,
	}
	if err := s.adaptationRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to store adaptation record: %w", err)
	}

	if err := s.planRepo.ApplyDiff(goal.ID, record.Diff); err != nil {
		return nil, fmt.Errorf("failed to apply adaptation diff: %w", err)
	}

	steps, err := s.planRepo.Steps(goal.ID)
	if err != nil {
		return nil, err
	}

	return &SkipResult{Record: record, Steps: steps}, nil
}

func (s *AdaptationService) propose(ctx context.Context, goal *model.Goal, skipped *model.Step, reason string, now time.Time) assistant.Adaptation {
	if !goal.AutoAdapt {
		return assistant.Adaptation{ChangeSummary: DisabledSummary, Diff: model.DiffList{}}
	}

	steps, err := s.planRepo.Steps(goal.ID)
	if err != nil {
		slog.Warn("failed to load steps for adaptation context", "error", err)
		return assistant.FallbackAdaptation()
	}
	candidates := schedule.Candidates(steps, now)

	adaptation, err := s.adapter.Adapt(ctx, goal, []*model.Step{skipped}, reason, candidates)
	if err != nil {
		if !errors.Is(err, assistant.ErrUnavailable) {
			slog.Warn("adapter failed", "error", err)
		}
		return assistant.FallbackAdaptation()
	}
	if adaptation.Diff == nil {
		adaptation.Diff = model.DiffList{}
	}
	return adaptation
}

// checkinTimestamp stamps the record with the user's latest check-in time,
// falling back to the skip time when the user never checked in.
func (s *AdaptationService) checkinTimestamp(userID string, now time.Time) time.Time {
	checkin, err := s.checkinRepo.LatestByUser(userID)
	if err != nil {
		return now
	}
	return checkin.CreatedAt
}

// Adaptations returns the goal's audit trail, newest first.
func (s *AdaptationService) Adaptations(userID, goalID string, limit int) ([]*model.AdaptationRecord, error) {
	if _, err := s.goalRepo.ByID(userID, goalID); err != nil {
		return nil, err
	}
	return s.adaptationRepo.RecentByGoal(goalID, limit)
}

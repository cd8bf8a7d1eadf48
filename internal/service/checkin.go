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

type CheckinService struct {
	goalRepo    repository.GoalRepository
	planRepo    repository.PlanRepository
	checkinRepo repository.CheckinRepository
	moodRepo    repository.MoodRepository
	aligner     assistant.Aligner
}

func NewCheckinService(
	goalRepo repository.GoalRepository,
	planRepo repository.PlanRepository,
	checkinRepo repository.CheckinRepository,
	moodRepo repository.MoodRepository,
	aligner assistant.Aligner,
) *CheckinService {
	return &CheckinService{
		goalRepo:    goalRepo,
		planRepo:    planRepo,
		checkinRepo: checkinRepo,
		moodRepo:    moodRepo,
		aligner:     aligner,
	}
}

type CheckinInput struct {
	GoalID         string
	EnergyLevel    string
	CurrentFeeling string
	FocusToday     string
	Notes          string
}

// CheckinResult pairs the stored check-in with the aligner's pick of today's
// steps. Alignment score is advisory; TodaySteps is what the user acts on.
type CheckinResult struct {
	Checkin    *model.Checkin      `json:"checkin"`
	Alignment  assistant.Alignment `json:"alignment"`
	TodaySteps []*model.Step       `json:"today_steps"`
}

// CheckIn stores the snapshot, selects today's candidates and asks the
// aligner to narrow them. When the aligner is unavailable every candidate is
// surfaced with a neutral score.
func (s *CheckinService) CheckIn(ctx context.Context, userID string, input CheckinInput) (*CheckinResult, error) {
	if err := validation.ValidateEnergyLevel(input.EnergyLevel); err != nil {
		return nil, invalid(err)
	}

	goal, err := s.resolveGoal(userID, input.GoalID)
	if err != nil {
		return nil, err
	}

	checkin := &model.Checkin{
		ID:             uuid.New().String(),
		UserID:         userID,
		GoalID:         goal.ID,
		EnergyLevel:    input.EnergyLevel,
		CurrentFeeling: input.CurrentFeeling,
		FocusToday:     input.FocusToday,
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
	}
	if err := s.checkinRepo.Create(checkin); err != nil {
		return nil, fmt.Errorf("failed to store checkin: %w", err)
	}

	steps, err := s.planRepo.Steps(goal.ID)
	if err != nil {
		return nil, err
	}
	candidates := schedule.Candidates(steps, checkin.CreatedAt)

	alignment := assistant.FallbackAlignment(candidates)
	if len(candidates) > 0 {
		al, err := s.aligner.ChooseToday(ctx, goal, candidates, checkin)
		switch {
		case err == nil:
			alignment = keepKnownSteps(al, candidates)
		case errors.Is(err, assistant.ErrUnavailable):
			slog.Info("aligner unavailable, surfacing all candidates", "goal_id", goal.ID)
		default:
			return nil, fmt.Errorf("failed to align today: %w", err)
		}
	}

	return &CheckinResult{
		Checkin:    checkin,
		Alignment:  alignment,
		TodaySteps: stepsByID(candidates, alignment.TodayStepIDs),
	}, nil
}

func (s *CheckinService) resolveGoal(userID, goalID string) (*model.Goal, error) {
	if goalID != "" {
		return s.goalRepo.ByID(userID, goalID)
	}
	return s.goalRepo.ActiveByUser(userID)
}

// keepKnownSteps drops aligner-invented step ids; only real candidates can
// be surfaced. An aligner that returns nothing usable degrades to the
// all-candidates fallback.
func keepKnownSteps(al assistant.Alignment, candidates []*model.Step) assistant.Alignment {
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
	}
	kept := make([]string, 0, len(al.TodayStepIDs))
	for _, id := range al.TodayStepIDs {
		if known[id] {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		fb := assistant.FallbackAlignment(candidates)
		fb.AlignmentScore = al.AlignmentScore
		return fb
	}
	al.TodayStepIDs = kept
	return al
}

func stepsByID(candidates []*model.Step, ids []string) []*model.Step {
	byID := make(map[string]*model.Step, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}
	steps := make([]*model.Step, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			steps = append(steps, s)
		}
	}
	return steps
}

// LogMood stores a standalone mood entry.
func (s *CheckinService) LogMood(userID, mood string, intensity int, notes string) (*model.MoodLog, error) {
	if mood == "" {
		return nil, invalid(errors.New("mood is required"))
	}
	if err := validation.ValidateMoodIntensity(intensity); err != nil {
		return nil, invalid(err)
	}

	entry := &model.MoodLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Mood:      mood,
		Intensity: intensity,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
	if err := s.moodRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to store mood: %w", err)
	}

	return entry, nil
}

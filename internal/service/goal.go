package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joanapinto/humsy/internal/model"
	"github.com/joanapinto/humsy/internal/repository"
	"github.com/joanapinto/humsy/internal/validation"
)

type GoalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// CreateGoalInput carries the onboarding answers. Everything beyond the
// title is optional; the scheduler falls back to mid-tier defaults.
type CreateGoalInput struct {
	Title         string
	WhyMatters    string
	Deadline      *time.Time
	SuccessMetric string
	StartingPoint string
	WeeklyTime    string
	EnergyTime    string
	FreeDays      []string
	Intensity     string
	JoySources    []string
	EnergyDrains  []string
	AutoAdapt     bool
}

// Create stores a new active goal. Any previously active goal is archived;
// a user has at most one active goal at a time.
func (s *GoalService) Create(userID string, input CreateGoalInput) (*model.Goal, error) {
	if err := validation.ValidateGoalTitle(input.Title); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidateIntensity(input.Intensity); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidateFreeDays(input.FreeDays); err != nil {
		return nil, invalid(err)
	}

	intensity := input.Intensity
	if intensity == "" {
		intensity = model.IntensityBalanced
	}

	now := time.Now()
	goal := &model.Goal{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         strings.TrimSpace(input.Title),
		WhyMatters:    input.WhyMatters,
		Deadline:      input.Deadline,
		SuccessMetric: input.SuccessMetric,
		StartingPoint: input.StartingPoint,
		WeeklyTime:    input.WeeklyTime,
		EnergyTime:    input.EnergyTime,
		FreeDays:      strings.Join(input.FreeDays, ","),
		Intensity:     intensity,
		JoySources:    model.JSONList(input.JoySources),
		EnergyDrains:  model.JSONList(input.EnergyDrains),
		AutoAdapt:     input.AutoAdapt,
		Status:        model.GoalStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *GoalService) Active(userID string) (*model.Goal, error) {
	return s.repo.ActiveByUser(userID)
}

// UpdateGoalInput is a partial update; nil fields keep their stored value.
type UpdateGoalInput struct {
	Title         *string
	WhyMatters    *string
	Deadline      *time.Time
	SuccessMetric *string
	WeeklyTime    *string
	EnergyTime    *string
	FreeDays      []string
	Intensity     *string
	AutoAdapt     *bool
	BetaGuideSeen *bool
	Status        *string
}

func (s *GoalService) Update(userID, goalID string, input UpdateGoalInput) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := validation.ValidateGoalTitle(*input.Title); err != nil {
			return nil, invalid(err)
		}
		goal.Title = strings.TrimSpace(*input.Title)
	}
	if input.WhyMatters != nil {
		goal.WhyMatters = *input.WhyMatters
	}
	if input.Deadline != nil {
		goal.Deadline = input.Deadline
	}
	if input.SuccessMetric != nil {
		goal.SuccessMetric = *input.SuccessMetric
	}
	if input.WeeklyTime != nil {
		goal.WeeklyTime = *input.WeeklyTime
	}
	if input.EnergyTime != nil {
		goal.EnergyTime = *input.EnergyTime
	}
	if input.FreeDays != nil {
		if err := validation.ValidateFreeDays(input.FreeDays); err != nil {
			return nil, invalid(err)
		}
		goal.FreeDays = strings.Join(input.FreeDays, ",")
	}
	if input.Intensity != nil {
		if err := validation.ValidateIntensity(*input.Intensity); err != nil {
			return nil, invalid(err)
		}
		goal.Intensity = *input.Intensity
	}
	if input.AutoAdapt != nil {
		goal.AutoAdapt = *input.AutoAdapt
	}
	if input.BetaGuideSeen != nil {
		goal.BetaGuideSeen = *input.BetaGuideSeen
	}
	if input.Status != nil {
		switch *input.Status {
		case model.GoalStatusActive:
			// Reactivating an archived goal would bypass the
			// archive-on-create path and leave two active goals.
			if goal.Status != model.GoalStatusActive {
				return nil, invalid(fmt.Errorf("archived goals cannot be reactivated; create a new goal"))
			}
		case model.GoalStatusArchived:
			goal.Status = model.GoalStatusArchived
		default:
			return nil, invalid(fmt.Errorf("invalid goal status %q", *input.Status))
		}
	}

	if err := s.repo.Update(goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// EraseUser removes every row owned by the user. Irreversible.
func (s *GoalService) EraseUser(userID string) error {
	return s.repo.EraseUser(userID)
}

package model

import (
	"time"
)

const (
	MilestoneStatusPending   = "pending"
	MilestoneStatusCompleted = "completed"
)

const (
	StepStatusPending    = "pending"
	StepStatusInProgress = "in_progress"
	StepStatusCompleted  = "completed"
	StepStatusSkipped    = "skipped"
)

// AnyDay is the suggested-weekday sentinel for steps not pinned to a weekday.
const AnyDay = "Any"

// Milestone is an ordered checkpoint under a Goal. Milestones are written in
// a batch at plan (re)generation; a regeneration replaces the whole batch.
type Milestone struct {
	ID          string    `db:"id" json:"id"`
	GoalID      string    `db:"goal_id" json:"goal_id"`
	Seq         int       `db:"seq" json:"seq"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	TargetDate  time.Time `db:"target_date" json:"target_date"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Step is an atomic, schedulable action under a Goal, optionally under a
// Milestone. LastScheduled is stamped on every status transition.
type Step struct {
	ID              string     `db:"id" json:"id"`
	GoalID          string     `db:"goal_id" json:"goal_id"`
	MilestoneID     *string    `db:"milestone_id" json:"milestone_id,omitempty"`
	Title           string     `db:"title" json:"title"`
	Description     string     `db:"description" json:"description"`
	EstimateMinutes int        `db:"estimate_minutes" json:"estimate_minutes"`
	SuggestedDay    string     `db:"suggested_day" json:"suggested_day"`
	DueDate         *time.Time `db:"due_date" json:"due_date,omitempty"`
	Status          string     `db:"status" json:"status"`
	LastScheduled   *time.Time `db:"last_scheduled" json:"last_scheduled,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Actionable reports whether a step can still be surfaced or transitioned.
func (s *Step) Actionable() bool {
	return s.Status == StepStatusPending || s.Status == StepStatusInProgress
}

// CanTransition reports whether the status state machine allows moving a
// step from its current status to the target. skipped -> pending is not a
// direct transition; it happens only through an applied adaptation diff.
func (s *Step) CanTransition(to string) bool {
	switch to {
	case StepStatusInProgress:
		return s.Status == StepStatusPending
	case StepStatusCompleted, StepStatusSkipped:
		return s.Actionable()
	default:
		return false
	}
}

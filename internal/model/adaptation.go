package model

import (
	"time"
)

// Skip reasons form a closed vocabulary; anything else is rejected before a
// record is written.
const (
	SkipReasonLowEnergy     = "low_energy"
	SkipReasonNoTime        = "no_time"
	SkipReasonConfusingStep = "confusing_step"
	SkipReasonFearAvoidance = "fear_avoidance"
	SkipReasonInterruption  = "interruption"
	SkipReasonOther         = "other"
)

// ValidSkipReason reports whether reason belongs to the closed vocabulary.
func ValidSkipReason(reason string) bool {
	switch reason {
	case SkipReasonLowEnergy, SkipReasonNoTime, SkipReasonConfusingStep,
		SkipReasonFearAvoidance, SkipReasonInterruption, SkipReasonOther:
		return true
	}
	return false
}

// Diff actions an adapter may propose. Unknown actions are ignored when a
// diff is applied, never treated as an error.
const (
	DiffActionReschedule        = "reschedule"
	DiffActionScopeDown         = "scope_down"
	DiffActionReopen            = "reopen"
	DiffActionCompleteMilestone = "complete_milestone"
)

// DiffEntry is one proposed mutation over the plan.
type DiffEntry struct {
	Action       string `json:"action"`
	StepID       string `json:"step_id,omitempty"`
	MilestoneID  string `json:"milestone_id,omitempty"`
	SuggestedDay string `json:"suggested_day,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
	Minutes      int    `json:"minutes,omitempty"`
	Details      string `json:"details,omitempty"`
}

// AdaptationRecord is the append-only audit trail of a skip event and the
// (possibly empty) plan mutation it produced. Immutable once written.
type AdaptationRecord struct {
	ID               string    `db:"id" json:"id"`
	GoalID           string    `db:"goal_id" json:"goal_id"`
	CheckinTimestamp time.Time `db:"checkin_timestamp" json:"checkin_timestamp"`
	AlignmentScore   int       `db:"alignment_score" json:"alignment_score"`
	Reason           string    `db:"reason" json:"reason"`
	ChangeSummary    string    `db:"change_summary" json:"change_summary"`
	Diff             DiffList  `db:"diff" json:"diff"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

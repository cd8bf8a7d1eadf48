package assistant

import (
	"context"
	"errors"

	"github.com/joanapinto/humsy/internal/model"
)

// ErrUnavailable signals that no AI capability can serve the call right now
// (missing key, transport failure, usage cap). Callers treat it as a normal
// branch and fall back to the rule-based equivalent, never as a hard error.
var ErrUnavailable = errors.New("assistant unavailable")

// Proposer drafts a raw plan for a goal. The output is untrusted; the plan
// normalizer repairs it before anything is persisted.
type Proposer interface {
	ProposePlan(ctx context.Context, goal *model.Goal) (model.RawPlan, error)
}

// Alignment is the aligner's choice of which candidate steps to surface
// today. The score is advisory only.
type Alignment struct {
	TodayStepIDs   []string `json:"today_steps"`
	AlignmentScore int      `json:"alignment_score"`
	Adjustments    []string `json:"adjustments"`
	Why            string   `json:"why"`
}

// Aligner picks today's steps from the candidate list given a check-in
// snapshot.
type Aligner interface {
	ChooseToday(ctx context.Context, goal *model.Goal, candidates []*model.Step, checkin *model.Checkin) (Alignment, error)
}

// Adaptation is the adapter's proposed reaction to a skip event.
type Adaptation struct {
	ChangeSummary string         `json:"change_summary"`
	Diff          model.DiffList `json:"diff"`
}

// Adapter proposes a minimal plan mutation after the user skips a step.
type Adapter interface {
	Adapt(ctx context.Context, goal *model.Goal, skipped []*model.Step, reason string, candidates []*model.Step) (Adaptation, error)
}

package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/joanapinto/humsy/internal/model"
	"github.com/joanapinto/humsy/internal/schedule"
)

// FallbackSummary is recorded on every skip adaptation when no adapter is
// available, so the audit log always explains why the diff is empty.
const FallbackSummary = "No AI available; minimal rule-based reschedule"

// RuleBasedProposer emits a minimal valid plan from the goal's own budget,
// with one starter milestone and one step per weekly session. It never
// fails, so plan generation works with no API key configured.
type RuleBasedProposer struct{}

func (RuleBasedProposer) ProposePlan(_ context.Context, goal *model.Goal) (model.RawPlan, error) {
	b := schedule.ResolveBudget(goal.WeeklyTime, goal.Intensity, goal.FreeDayList())
	today := time.Now()
	target := today.AddDate(0, 1, 0).Format("2006-01-02")

	milestone := model.RawMilestone{
		Title:       "Get started: " + goal.Title,
		Description: "Establish a weekly rhythm and complete your first working sessions toward " + goal.Title + ".",
		TargetDate:  target,
	}

	perSession := b.WeeklyMinutes / b.SessionsPerWeek
	steps := make([]model.RawStep, 0, b.SessionsPerWeek)
	for i := 0; i < b.SessionsPerWeek; i++ {
		day := model.AnyDay
		if len(b.SessionDays) > 0 {
			day = b.SessionDays[i%len(b.SessionDays)]
		}
		steps = append(steps, model.RawStep{
			MilestoneTitle:  milestone.Title,
			Title:           fmt.Sprintf("Session %d: work on %s", i+1, goal.Title),
			Description:     fmt.Sprintf("Spend %d focused minutes on %s. Start from where you left off, write down what you finished, and note the single next action before you stop.", perSession, goal.Title),
			EstimateMinutes: perSession,
			SuggestedDay:    day,
			DueDate:         target,
		})
	}
	return model.RawPlan{Milestones: []model.RawMilestone{milestone}, Steps: steps}, nil
}

// FallbackAlignment surfaces every candidate with a fixed neutral score.
func FallbackAlignment(candidates []*model.Step) Alignment {
	ids := make([]string, 0, len(candidates))
	for _, s := range candidates {
		ids = append(ids, s.ID)
	}
	return Alignment{
		TodayStepIDs:   ids,
		AlignmentScore: 50,
		Why:            "Showing all of today's scheduled steps.",
	}
}

// FallbackAdaptation records the skip without changing the plan.
func FallbackAdaptation() Adaptation {
	return Adaptation{
		ChangeSummary: FallbackSummary,
		Diff:          model.DiffList{},
	}
}

package schedule

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/joanapinto/humsy/internal/model"
)

func goalFixture(weeklyTime, intensity, freeDays string) *model.Goal {
	return &model.Goal{
		ID:         "goal-1",
		UserID:     "user-1",
		Title:      "Learn Spanish",
		WeeklyTime: weeklyTime,
		Intensity:  intensity,
		FreeDays:   freeDays,
	}
}

func rawSteps(n, minutes int) []model.RawStep {
	steps := make([]model.RawStep, 0, n)
	for i := 0; i < n; i++ {
		steps = append(steps, model.RawStep{
			MilestoneTitle:  "Basics",
			Title:           fmt.Sprintf("Practice block %d", i+1),
			Description:     "Learn 10 new vocabulary words with flashcards and use each in a sentence.",
			EstimateMinutes: minutes,
		})
	}
	return steps
}

// A gentle 1-2 hour commitment with six 45-minute steps must come out
// scaled to the 90-minute week and pinned to the two session days.
func TestNormalizeGentleCommitmentScenario(t *testing.T) {
	goal := goalFixture("1-2 hours", model.IntensityGentle, "")
	b := ResolveBudget(goal.WeeklyTime, goal.Intensity, goal.FreeDayList())
	raw := model.RawPlan{
		Milestones: []model.RawMilestone{{Title: "Basics", Description: "Foundations"}},
		Steps:      rawSteps(6, 45),
	}
	today := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	plan := Normalize(raw, goal, b, today)

	if len(plan.Steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(plan.Steps))
	}

	total := 0
	for _, s := range plan.Steps {
		total += s.EstimateMinutes
		if s.EstimateMinutes < minEstimateMinutes {
			t.Errorf("step scaled below floor: %d", s.EstimateMinutes)
		}
		if s.SuggestedDay != "Monday" && s.SuggestedDay != "Wednesday" {
			t.Errorf("step scheduled outside session days: %s", s.SuggestedDay)
		}
	}
	if total > b.WeeklyMinutes {
		t.Errorf("weekly total %d exceeds budget %d", total, b.WeeklyMinutes)
	}
}

func TestNormalizeNeverSchedulesFreeDays(t *testing.T) {
	goal := goalFixture("2-3 hours", model.IntensityBalanced, "Monday,Friday")
	b := ResolveBudget(goal.WeeklyTime, goal.Intensity, goal.FreeDayList())
	raw := model.RawPlan{
		Milestones: []model.RawMilestone{{Title: "Basics"}},
		Steps: []model.RawStep{
			{MilestoneTitle: "Basics", Title: "Step one", SuggestedDay: "Monday", EstimateMinutes: 30},
			{MilestoneTitle: "Basics", Title: "Step two", SuggestedDay: "Friday", EstimateMinutes: 30},
			{MilestoneTitle: "Basics", Title: "Step three", SuggestedDay: "Daily", EstimateMinutes: 30},
		},
	}

	plan := Normalize(raw, goal, b, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	for _, s := range plan.Steps {
		if s.SuggestedDay == "Monday" || s.SuggestedDay == "Friday" {
			t.Errorf("step %q landed on a free day: %s", s.Title, s.SuggestedDay)
		}
	}
}

func TestNormalizeKeepsValidWeekdayHint(t *testing.T) {
	goal := goalFixture("2-3 hours", model.IntensityBalanced, "")
	b := ResolveBudget(goal.WeeklyTime, goal.Intensity, nil)
	raw := model.RawPlan{
		Milestones: []model.RawMilestone{{Title: "Basics"}},
		Steps: []model.RawStep{
			{MilestoneTitle: "Basics", Title: "Pinned", SuggestedDay: "thursday", EstimateMinutes: 30},
		},
	}

	plan := Normalize(raw, goal, b, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	if plan.Steps[0].SuggestedDay != "Thursday" {
		t.Errorf("expected hint kept as Thursday, got %s", plan.Steps[0].SuggestedDay)
	}
}

func TestNormalizeMilestoneSpacingIgnoresProposedDates(t *testing.T) {
	goal := goalFixture("2-3 hours", model.IntensityBalanced, "")
	b := ResolveBudget(goal.WeeklyTime, goal.Intensity, nil)
	today := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	raw := model.RawPlan{
		Milestones: []model.RawMilestone{
			{Title: "First", TargetDate: "1999-01-01"},
			{Title: "Second", TargetDate: "not a date"},
			{Title: "Third"},
		},
	}

	plan := Normalize(raw, goal, b, today)

	if len(plan.Milestones) != 3 {
		t.Fatalf("expected 3 milestones, got %d", len(plan.Milestones))
	}
	totalDays := b.TimelineMonths * 30
	for i, m := range plan.Milestones {
		want := today.AddDate(0, 0, (i+1)*totalDays/3)
		if !m.TargetDate.Equal(want) {
			t.Errorf("milestone %d: expected target %v, got %v", i+1, want, m.TargetDate)
		}
		if m.TargetDate.Before(today) {
			t.Errorf("milestone %d targeted in the past", i+1)
		}
	}
}

func TestNormalizeSynthesizesMilestoneForOrphanSteps(t *testing.T) {
	goal := goalFixture("2-3 hours", model.IntensityBalanced, "")
	b := ResolveBudget(goal.WeeklyTime, goal.Intensity, nil)
	raw := model.RawPlan{Steps: rawSteps(2, 30)}

	plan := Normalize(raw, goal, b, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	if len(plan.Milestones) != 1 {
		t.Fatalf("expected one synthesized milestone, got %d", len(plan.Milestones))
	}
	if plan.Milestones[0].Title != "Build momentum" {
		t.Errorf("unexpected milestone title %q", plan.Milestones[0].Title)
	}
}

func TestNormalizeReplacesVagueDescriptions(t *testing.T) {
	goal := goalFixture("2-3 hours", model.IntensityBalanced, "")
	b := ResolveBudget(goal.WeeklyTime, goal.Intensity, nil)
	raw := model.RawPlan{
		Milestones: []model.RawMilestone{{Title: "Basics"}},
		Steps: []model.RawStep{
			{MilestoneTitle: "Basics", Title: "Vocabulary drill", Description: "Make progress", EstimateMinutes: 30},
			{MilestoneTitle: "Basics", Title: "Go for a run", Description: "short", EstimateMinutes: 30},
		},
	}

	plan := Normalize(raw, goal, b, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	for _, s := range plan.Steps {
		if len(s.Description) < minDescriptionLen {
			t.Errorf("step %q description not replaced: %q", s.Title, s.Description)
		}
	}
	if !strings.Contains(plan.Steps[0].Description, "flashcards") {
		t.Errorf("expected language template for vocabulary step, got %q", plan.Steps[0].Description)
	}
	if !strings.Contains(plan.Steps[1].Description, "Warm up") && !strings.Contains(plan.Steps[1].Description, "warm up") {
		t.Errorf("expected fitness template for run step, got %q", plan.Steps[1].Description)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	goal := goalFixture("1-2 hours", model.IntensityBalanced, "Sunday")
	b := ResolveBudget(goal.WeeklyTime, goal.Intensity, goal.FreeDayList())
	raw := model.RawPlan{
		Milestones: []model.RawMilestone{{Title: "Basics"}, {Title: "Conversation"}},
		Steps:      rawSteps(5, 40),
	}
	today := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	first := Normalize(raw, goal, b, today)
	for i := 0; i < 5; i++ {
		again := Normalize(raw, goal, b, today)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("normalization not deterministic")
		}
	}
}

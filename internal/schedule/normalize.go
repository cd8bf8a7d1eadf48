package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/joanapinto/humsy/internal/model"
)

const (
	// defaultEstimateMinutes replaces a missing or non-positive estimate.
	defaultEstimateMinutes = 30
	// minEstimateMinutes is the floor applied by the weekly-minutes cap: a
	// step can shrink but never vanish.
	minEstimateMinutes = 15
	// maxSessionDaysLowCommitment bounds how many distinct weekdays a
	// low-commitment plan may touch.
	maxSessionDaysLowCommitment = 3
)

// Plan is a normalized plan ready for persistence. Milestones are ordered by
// Seq; steps reference their milestone by Seq (0 = no milestone) so the
// store can mint ids when the batch is written.
type Plan struct {
	Milestones []PlanMilestone
	Steps      []PlanStep
}

type PlanMilestone struct {
	Seq         int
	Title       string
	Description string
	TargetDate  time.Time
}

type PlanStep struct {
	MilestoneSeq    int
	Title           string
	Description     string
	EstimateMinutes int
	SuggestedDay    string
	DueDate         time.Time
}

// Normalize turns an untrusted raw proposal into a feasible plan under the
// goal's budget, anchored to today. It never fails: every missing or
// inconsistent field has a deterministic fallback, so normalizing the same
// input with the same anchor always yields the same plan.
func Normalize(raw model.RawPlan, goal *model.Goal, b Budget, today time.Time) Plan {
	today = today.Truncate(24 * time.Hour)
	totalDays := b.TimelineMonths * 30
	freeDays := goal.FreeDayList()

	milestones := normalizeMilestones(raw, today, totalDays)
	steps := normalizeSteps(raw, milestones, b, freeDays, today, totalDays)
	steps = capSessionDays(steps, b)
	steps = capWeeklyMinutes(steps, b)

	for i := range steps {
		if !actionableDescription(steps[i].Description) {
			steps[i].Description = templateDescription(steps[i].Title, steps[i].EstimateMinutes)
		}
	}

	return Plan{Milestones: milestones, Steps: steps}
}

// normalizeMilestones re-derives every milestone target date by even spacing
// across the timeline. Proposed dates are ignored: external proposals have
// been seen to reference past or arbitrary years.
func normalizeMilestones(raw model.RawPlan, today time.Time, totalDays int) []PlanMilestone {
	rawMilestones := raw.Milestones
	if len(rawMilestones) == 0 && len(raw.Steps) > 0 {
		rawMilestones = []model.RawMilestone{{Title: "Build momentum"}}
	}

	milestones := make([]PlanMilestone, 0, len(rawMilestones))
	for i, rm := range rawMilestones {
		title := strings.TrimSpace(rm.Title)
		if title == "" {
			title = fmt.Sprintf("Milestone %d", i+1)
		}
		offset := (i + 1) * totalDays / len(rawMilestones)
		milestones = append(milestones, PlanMilestone{
			Seq:         i + 1,
			Title:       title,
			Description: strings.TrimSpace(rm.Description),
			TargetDate:  today.AddDate(0, 0, offset),
		})
	}
	return milestones
}

func normalizeSteps(raw model.RawPlan, milestones []PlanMilestone, b Budget, freeDays []string, today time.Time, totalDays int) []PlanStep {
	bySeq := make(map[string]int, len(milestones))
	for _, m := range milestones {
		bySeq[strings.ToLower(m.Title)] = m.Seq
	}

	steps := make([]PlanStep, 0, len(raw.Steps))
	for i, rs := range raw.Steps {
		title := strings.TrimSpace(rs.Title)
		if title == "" {
			title = fmt.Sprintf("Step %d", i+1)
		}

		estimate := rs.EstimateMinutes
		if estimate <= 0 {
			estimate = defaultEstimateMinutes
		}

		due, err := time.Parse("2006-01-02", strings.TrimSpace(rs.DueDate))
		if err != nil {
			due = today.AddDate(0, 0, (i+1)*totalDays/len(raw.Steps))
		}

		steps = append(steps, PlanStep{
			MilestoneSeq:    bySeq[strings.ToLower(strings.TrimSpace(rs.MilestoneTitle))],
			Title:           title,
			Description:     strings.TrimSpace(rs.Description),
			EstimateMinutes: estimate,
			SuggestedDay:    normalizeWeekday(rs.SuggestedDay, freeDays, b, i),
			DueDate:         due,
		})
	}
	return steps
}

// normalizeWeekday keeps a hint only when it is exactly one known weekday
// outside the goal's free days. Placeholders ("Daily", "Any", "TBD"),
// comma lists and free-day hits are replaced round-robin from the budget's
// session days, indexed by step order.
func normalizeWeekday(hint string, freeDays []string, b Budget, index int) string {
	day := strings.TrimSpace(hint)
	if isWeekday(day) && !containsDay(freeDays, day) {
		return canonicalWeekday(day)
	}
	if len(b.SessionDays) == 0 {
		return model.AnyDay
	}
	return b.SessionDays[index%len(b.SessionDays)]
}

func isWeekday(day string) bool {
	for _, d := range Weekdays {
		if strings.EqualFold(d, day) {
			return true
		}
	}
	return false
}

func canonicalWeekday(day string) string {
	for _, d := range Weekdays {
		if strings.EqualFold(d, day) {
			return d
		}
	}
	return day
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if strings.EqualFold(strings.TrimSpace(d), day) {
			return true
		}
	}
	return false
}

// capSessionDays drops steps beyond the first three distinct weekdays for
// low-commitment goals, in step order. This keeps an over-eager proposal
// from exceeding the user's realistic weekly availability.
func capSessionDays(steps []PlanStep, b Budget) []PlanStep {
	if b.SessionsPerWeek > 2 {
		return steps
	}
	seen := make(map[string]bool, maxSessionDaysLowCommitment)
	kept := steps[:0]
	for _, s := range steps {
		if !seen[s.SuggestedDay] {
			if len(seen) >= maxSessionDaysLowCommitment {
				continue
			}
			seen[s.SuggestedDay] = true
		}
		kept = append(kept, s)
	}
	return kept
}

// capWeeklyMinutes scales every estimate proportionally when the plan's
// weekly total exceeds the budget, flooring each step at 15 minutes. The
// floor can leave a small overshoot for plans with very many tiny steps;
// that is accepted rather than dropping steps.
func capWeeklyMinutes(steps []PlanStep, b Budget) []PlanStep {
	total := 0
	for _, s := range steps {
		total += s.EstimateMinutes
	}
	if total <= b.WeeklyMinutes || total == 0 {
		return steps
	}

	ratio := float64(b.WeeklyMinutes) / float64(total)
	for i := range steps {
		scaled := int(float64(steps[i].EstimateMinutes) * ratio)
		if scaled < minEstimateMinutes {
			scaled = minEstimateMinutes
		}
		steps[i].EstimateMinutes = scaled
	}
	return steps
}

package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/joanapinto/humsy/internal/model"
)

const planSystemPrompt = "You are an expert personal coach and planning specialist. You create realistic, " +
	"time-boxed plans that respect the user's weekly availability. Return strict JSON only."

func planPrompt(goal *model.Goal, today time.Time) string {
	deadline := "No deadline set"
	if goal.Deadline != nil {
		deadline = goal.Deadline.Format("2006-01-02")
	}
	return fmt.Sprintf(`Create a personalized plan for this goal.

GOAL:
- What they want to achieve: %s
- Why it matters: %s
- Success looks like: %s
- Starting point: %s
- Deadline: %s

CONSTRAINTS:
- Weekly time available: %s
- Intensity: %s
- Best energy time: %s
- Free days (never schedule on these): %s
- What energizes them: %s
- What drains them: %s

RULES:
- All dates start from today (%s) and go forward.
- Create 4-6 milestones, each broken into 3-8 specific steps.
- Every step description must be a concrete, self-contained instruction with exact actions; no vague phrases like "work on it" or "make progress".
- Total step minutes must fit the weekly time available; schedule on at most 4 distinct weekdays.

Return strict JSON with this schema:
{"milestones": [{"title": str, "description": str, "target_date": "YYYY-MM-DD"}],
 "steps": [{"milestone_title": str, "title": str, "description": str, "estimate_minutes": int, "suggested_day": str, "due_date": "YYYY-MM-DD"}]}`,
		goal.Title, goal.WhyMatters, goal.SuccessMetric, goal.StartingPoint, deadline,
		goal.WeeklyTime, goal.Intensity, goal.EnergyTime, goal.FreeDays,
		strings.Join(goal.JoySources, ", "), strings.Join(goal.EnergyDrains, ", "),
		today.Format("2006-01-02"))
}

const alignSystemPrompt = "You select today's most fitting steps from an active plan, given the user's " +
	"check-in. Be realistic about energy and mood. Return strict JSON only."

func alignPrompt(goal *model.Goal, candidates []*model.Step, checkin *model.Checkin) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Goal: %s\nCheck-in: energy=%s feeling=%s focus=%s\n\nToday's candidate steps:\n",
		goal.Title, checkin.EnergyLevel, checkin.CurrentFeeling, checkin.FocusToday)
	for _, s := range candidates {
		fmt.Fprintf(&sb, "- id=%s title=%q minutes=%d\n", s.ID, s.Title, s.EstimateMinutes)
	}
	sb.WriteString(`
Select 1-3 steps for TODAY and return strict JSON:
{"alignment_score": int (0-100), "today_steps": [str step ids], "adjustments": [str], "why": str}`)
	return sb.String()
}

const adaptSystemPrompt = "You adapt a personal plan minimally after a skipped step. Prefer rescheduling or " +
	"scoping down over removing work. Return strict JSON only."

func adaptPrompt(goal *model.Goal, skipped []*model.Step, reason string, candidates []*model.Step) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Goal: %s\nSkip reason: %s\n\nSkipped steps:\n", goal.Title, reason)
	for _, s := range skipped {
		fmt.Fprintf(&sb, "- id=%s title=%q day=%s minutes=%d\n", s.ID, s.Title, s.SuggestedDay, s.EstimateMinutes)
	}
	sb.WriteString("\nRemaining candidates today:\n")
	for _, s := range candidates {
		fmt.Fprintf(&sb, "- id=%s title=%q\n", s.ID, s.Title)
	}
	sb.WriteString(`
Adapt the plan minimally. Allowed actions: reschedule (set suggested_day and/or due_date), scope_down (reduce minutes), reopen (move a skipped step back to pending), complete_milestone. Return strict JSON:
{"change_summary": str, "diff": [{"action": str, "step_id": str, "suggested_day": str, "due_date": "YYYY-MM-DD", "minutes": int, "details": str}]}`)
	return sb.String()
}

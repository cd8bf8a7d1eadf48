package schedule

import (
	"strings"

	"github.com/joanapinto/humsy/internal/model"
)

// Weekdays in scheduling order. Weekday names are stored as plain strings
// ("Monday".."Sunday") to match the suggested_day column.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Budget is the resolved numeric time allowance for a goal. It is derived
// deterministically from the goal's categorical weekly-time commitment so
// that plan normalization is reproducible.
type Budget struct {
	WeeklyMinutes   int
	TimelineMonths  int
	SessionsPerWeek int
	SessionDays     []string
}

// Fixed weekday subsets per session count. Free days are substituted out in
// ResolveBudget, keeping the result deterministic.
var sessionDaySets = map[int][]string{
	2: {"Monday", "Wednesday"},
	3: {"Monday", "Wednesday", "Friday"},
	4: {"Monday", "Tuesday", "Thursday", "Saturday"},
}

// ResolveBudget maps a weekly-time category (e.g. "1-2 hours") and intensity
// tier to weekly minutes, a timeline length and a per-week session policy.
// Unrecognized categories fall back to a mid-tier commitment.
func ResolveBudget(weeklyTime, intensity string, freeDays []string) Budget {
	minutes := weeklyMinutes(weeklyTime)

	var months int
	switch {
	case minutes <= 120:
		months = 12
	case minutes <= 240:
		months = 6
	default:
		months = 3
	}
	if intensity == model.IntensityAmbitious {
		months = months / 2
		if months < 2 {
			months = 2
		}
	}

	var sessions int
	switch {
	case minutes <= 120:
		sessions = 2
	case minutes <= 240:
		sessions = 3
	default:
		sessions = 4
	}

	return Budget{
		WeeklyMinutes:   minutes,
		TimelineMonths:  months,
		SessionsPerWeek: sessions,
		SessionDays:     sessionDays(sessions, freeDays),
	}
}

// weeklyMinutes derives the midpoint minutes for a category string. The
// categories are loose user-facing ranges, so matching is by substring and
// tolerant of the en dash the onboarding UI uses.
func weeklyMinutes(weeklyTime string) int {
	wt := strings.ToLower(strings.ReplaceAll(weeklyTime, "–", "-"))
	switch {
	case strings.Contains(wt, "1-2"):
		return 90
	case strings.Contains(wt, "2-3"):
		return 150
	case strings.Contains(wt, "3-4"):
		return 210
	case strings.Contains(wt, "4-5"):
		return 270
	case strings.Contains(wt, "5+"), strings.Contains(wt, "more"):
		return 360
	default:
		return 180
	}
}

// sessionDays returns the fixed weekday subset for the session count, with
// any of the goal's free days replaced by the earliest weekday not already
// used and not free.
func sessionDays(sessions int, freeDays []string) []string {
	free := make(map[string]bool, len(freeDays))
	for _, d := range freeDays {
		free[strings.TrimSpace(d)] = true
	}

	base := sessionDaySets[sessions]
	if base == nil {
		base = sessionDaySets[3]
	}

	used := make(map[string]bool, len(base))
	days := make([]string, 0, len(base))
	for _, d := range base {
		if !free[d] {
			days = append(days, d)
			used[d] = true
		}
	}
	for _, d := range base {
		if len(days) == len(base) {
			break
		}
		if !free[d] {
			continue
		}
		for _, sub := range Weekdays {
			if !free[sub] && !used[sub] {
				days = append(days, sub)
				used[sub] = true
				break
			}
		}
	}

	// Every weekday free: schedule nothing rather than violate free days.
	return days
}

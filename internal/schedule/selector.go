package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/joanapinto/humsy/internal/model"
)

// Candidates filters steps down to those eligible to run on the given date:
// status still actionable, weekday tag "Any" or including the date's weekday.
// The result is ordered by due date ascending (nulls last), then estimate
// ascending. Pure read-side filter; safe to call repeatedly within a day.
func Candidates(steps []*model.Step, date time.Time) []*model.Step {
	weekday := date.Weekday().String()

	out := make([]*model.Step, 0, len(steps))
	for _, s := range steps {
		if !s.Actionable() {
			continue
		}
		if s.SuggestedDay != model.AnyDay && !strings.Contains(s.SuggestedDay, weekday) {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.EstimateMinutes < b.EstimateMinutes
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		default:
			return a.EstimateMinutes < b.EstimateMinutes
		}
	})
	return out
}

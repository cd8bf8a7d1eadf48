package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joanapinto/humsy/internal/model"
	"github.com/joanapinto/humsy/internal/schedule"
)

// ValidateGoalTitle checks the goal title is present and reasonably sized
func ValidateGoalTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("goal title is required")
	}
	if len(title) > 200 {
		return errors.New("goal title is too long (max 200 characters)")
	}
	return nil
}

// ValidateIntensity checks the intensity against the closed vocabulary.
// Empty is allowed; the scheduler treats it as balanced.
func ValidateIntensity(intensity string) error {
	switch intensity {
	case "", model.IntensityGentle, model.IntensityBalanced, model.IntensityAmbitious:
		return nil
	}
	return fmt.Errorf("invalid intensity %q", intensity)
}

// ValidateFreeDays checks every entry is a real weekday name and that at
// least one weekday remains schedulable.
func ValidateFreeDays(days []string) error {
	if len(days) >= len(schedule.Weekdays) {
		return errors.New("at least one weekday must remain free for scheduling")
	}
	for _, d := range days {
		if !isWeekday(d) {
			return fmt.Errorf("invalid weekday %q", d)
		}
	}
	return nil
}

func isWeekday(day string) bool {
	for _, w := range schedule.Weekdays {
		if day == w {
			return true
		}
	}
	return false
}

package validation

import (
	"errors"
	"fmt"

	"github.com/joanapinto/humsy/internal/model"
)

var energyLevels = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

// ValidateEnergyLevel checks the check-in energy against the closed
// vocabulary used by the aligner prompt.
func ValidateEnergyLevel(level string) error {
	if level == "" {
		return errors.New("energy level is required")
	}
	if !energyLevels[level] {
		return fmt.Errorf("invalid energy level %q", level)
	}
	return nil
}

// ValidateSkipReason checks a skip reason against the closed vocabulary.
// An unknown reason is rejected before anything is written.
func ValidateSkipReason(reason string) error {
	if reason == "" {
		return errors.New("skip reason is required")
	}
	if !model.ValidSkipReason(reason) {
		return fmt.Errorf("invalid skip reason %q", reason)
	}
	return nil
}

// ValidateMoodIntensity checks the 1-10 mood intensity scale.
func ValidateMoodIntensity(intensity int) error {
	if intensity < 1 || intensity > 10 {
		return errors.New("mood intensity must be between 1 and 10")
	}
	return nil
}

package model

import (
	"time"
)

// Checkin is a point-in-time snapshot of how the user is doing. The aligner
// uses it to decide which of today's candidate steps to surface.
type Checkin struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	GoalID         string    `db:"goal_id" json:"goal_id"`
	EnergyLevel    string    `db:"energy_level" json:"energy_level"`
	CurrentFeeling string    `db:"current_feeling" json:"current_feeling"`
	FocusToday     string    `db:"focus_today" json:"focus_today"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// MoodLog is a standalone mood entry, kept for aligner context and history.
type MoodLog struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Mood      string    `db:"mood" json:"mood"`
	Intensity int       `db:"intensity" json:"intensity"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"
)

const (
	GoalStatusActive   = "active"
	GoalStatusArchived = "archived"
)

const (
	IntensityGentle    = "gentle"
	IntensityBalanced  = "balanced"
	IntensityAmbitious = "ambitious"
)

// Goal is the user's single active top-level objective, captured at
// onboarding together with the lifestyle constraints the scheduler has to
// respect (weekly time commitment, free days, intensity).
type Goal struct {
	ID            string     `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"user_id"`
	Title         string     `db:"title" json:"title"`
	WhyMatters    string     `db:"why_matters" json:"why_matters"`
	Deadline      *time.Time `db:"deadline" json:"deadline,omitempty"`
	SuccessMetric string     `db:"success_metric" json:"success_metric"`
	StartingPoint string     `db:"starting_point" json:"starting_point"`
	WeeklyTime    string     `db:"weekly_time" json:"weekly_time"`
	EnergyTime    string     `db:"energy_time" json:"energy_time"`
	FreeDays      string     `db:"free_days" json:"free_days"` // comma-separated weekday names
	Intensity     string     `db:"intensity" json:"intensity"`
	JoySources    JSONList   `db:"joy_sources" json:"joy_sources"`
	EnergyDrains  JSONList   `db:"energy_drainers" json:"energy_drainers"`
	AutoAdapt     bool       `db:"auto_adapt" json:"auto_adapt"`
	BetaGuideSeen bool       `db:"beta_guide_seen" json:"beta_guide_seen"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// FreeDayList splits the stored free-days string into clean weekday names.
func (g *Goal) FreeDayList() []string {
	if g.FreeDays == "" {
		return nil
	}
	parts := strings.Split(g.FreeDays, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		if d := strings.TrimSpace(p); d != "" {
			days = append(days, d)
		}
	}
	return days
}

// JSONList stores a string slice as a JSON text column, matching how the
// goals table keeps joy_sources and energy_drainers.
type JSONList []string

func (l JSONList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *JSONList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*l = nil
		return nil
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}

package model

// RawPlan is a plan proposal as it arrives from an external proposer.
// Every field is optional and untrusted; the normalizer fills, repairs or
// replaces whatever is missing, inconsistent or generic. Keep this type
// separate from Milestone/Step so nothing half-validated reaches the store.
type RawPlan struct {
	Milestones []RawMilestone `json:"milestones"`
	Steps      []RawStep      `json:"steps"`
}

type RawMilestone struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
}

type RawStep struct {
	MilestoneTitle  string `json:"milestone_title"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimateMinutes int    `json:"estimate_minutes"`
	SuggestedDay    string `json:"suggested_day"`
	DueDate         string `json:"due_date"`
}

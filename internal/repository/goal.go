package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joanapinto/humsy/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	ActiveByUser(userID string) (*model.Goal, error)
	Update(goal *model.Goal) error
	EraseUser(userID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

// Create inserts the goal and archives any prior active goal in the same
// transaction, so a user never has two active goals.
func (r *goalRepository) Create(goal *model.Goal) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	archive := `UPDATE goals SET status = $1, updated_at = $2 WHERE user_id = $3 AND status = $4`
	if _, err := tx.Exec(archive, model.GoalStatusArchived, time.Now(), goal.UserID, model.GoalStatusActive); err != nil {
		return err
	}

	query := `INSERT INTO goals (id, user_id, title, why_matters, deadline, success_metric, starting_point,
	                             weekly_time, energy_time, free_days, intensity, joy_sources, energy_drainers,
	                             auto_adapt, beta_guide_seen, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err = tx.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.WhyMatters,
		goal.Deadline,
		goal.SuccessMetric,
		goal.StartingPoint,
		goal.WeeklyTime,
		goal.EnergyTime,
		goal.FreeDays,
		goal.Intensity,
		goal.JoySources,
		goal.EnergyDrains,
		goal.AutoAdapt,
		goal.BetaGuideSeen,
		goal.Status,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) ActiveByUser(userID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 1`

	err := r.db.Get(goal, query, userID, model.GoalStatusActive)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, why_matters = $2, deadline = $3, success_metric = $4, starting_point = $5,
	              weekly_time = $6, energy_time = $7, free_days = $8, intensity = $9, joy_sources = $10,
	              energy_drainers = $11, auto_adapt = $12, beta_guide_seen = $13, status = $14, updated_at = $15
	          WHERE id = $16 AND user_id = $17`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.WhyMatters,
		goal.Deadline,
		goal.SuccessMetric,
		goal.StartingPoint,
		goal.WeeklyTime,
		goal.EnergyTime,
		goal.FreeDays,
		goal.Intensity,
		goal.JoySources,
		goal.EnergyDrains,
		goal.AutoAdapt,
		goal.BetaGuideSeen,
		goal.Status,
		time.Now(),
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// EraseUser removes every row the user owns across all tables in one
// transaction. Used by account deletion; there is no soft-delete path.
func (r *goalRepository) EraseUser(userID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM steps WHERE goal_id IN (SELECT id FROM goals WHERE user_id = $1)`,
		`DELETE FROM milestones WHERE goal_id IN (SELECT id FROM goals WHERE user_id = $1)`,
		`DELETE FROM plan_adaptations WHERE goal_id IN (SELECT id FROM goals WHERE user_id = $1)`,
		`DELETE FROM checkins WHERE user_id = $1`,
		`DELETE FROM mood_logs WHERE user_id = $1`,
		`DELETE FROM api_usage WHERE user_id = $1`,
		`DELETE FROM goals WHERE user_id = $1`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt, userID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

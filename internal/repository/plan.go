package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joanapinto/humsy/internal/model"
)

var (
	ErrStepNotFound      = errors.New("step not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
)

type PlanRepository interface {
	ReplacePlan(goalID string, milestones []*model.Milestone, steps []*model.Step) error
	Milestones(goalID string) ([]*model.Milestone, error)
	Steps(goalID string) ([]*model.Step, error)
	StepByID(userID, stepID string) (*model.Step, error)
	UpdateStepStatus(stepID, status string, at time.Time) error
	ApplyDiff(goalID string, diff model.DiffList) error
}

type planRepository struct {
	db *sqlx.DB
}

func NewPlanRepository(db *sqlx.DB) PlanRepository {
	return &planRepository{db: db}
}

// ReplacePlan swaps the goal's whole plan in one transaction: existing steps
// and milestones are deleted, then the new batch is inserted. A failed
// regeneration leaves the previous plan untouched.
func (r *planRepository) ReplacePlan(goalID string, milestones []*model.Milestone, steps []*model.Step) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM steps WHERE goal_id = $1`, goalID); err != nil {
		return fmt.Errorf("failed to clear steps: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM milestones WHERE goal_id = $1`, goalID); err != nil {
		return fmt.Errorf("failed to clear milestones: %w", err)
	}

	milestoneQuery := `INSERT INTO milestones (id, goal_id, seq, title, description, target_date, status, created_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, m := range milestones {
		_, err := tx.Exec(milestoneQuery, m.ID, m.GoalID, m.Seq, m.Title, m.Description, m.TargetDate, m.Status, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert milestone %d: %w", m.Seq, err)
		}
	}

	stepQuery := `INSERT INTO steps (id, goal_id, milestone_id, title, description, estimate_minutes,
	                                 suggested_day, due_date, status, last_scheduled, created_at)
	              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i, s := range steps {
		_, err := tx.Exec(stepQuery, s.ID, s.GoalID, s.MilestoneID, s.Title, s.Description, s.EstimateMinutes,
			s.SuggestedDay, s.DueDate, s.Status, s.LastScheduled, s.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert step %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (r *planRepository) Milestones(goalID string) ([]*model.Milestone, error) {
	var milestones []*model.Milestone
	query := `SELECT * FROM milestones WHERE goal_id = $1 ORDER BY seq ASC`

	err := r.db.Select(&milestones, query, goalID)
	if err != nil {
		return nil, err
	}

	return milestones, nil
}

func (r *planRepository) Steps(goalID string) ([]*model.Step, error) {
	var steps []*model.Step
	query := `SELECT * FROM steps WHERE goal_id = $1 ORDER BY due_date ASC, created_at ASC`

	err := r.db.Select(&steps, query, goalID)
	if err != nil {
		return nil, err
	}

	return steps, nil
}

func (r *planRepository) StepByID(userID, stepID string) (*model.Step, error) {
	step := &model.Step{}
	query := `SELECT s.* FROM steps s
	          JOIN goals g ON g.id = s.goal_id
	          WHERE s.id = $1 AND g.user_id = $2`

	err := r.db.Get(step, query, stepID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrStepNotFound
	}

	return step, err
}

// UpdateStepStatus moves a step to the new status and stamps last_scheduled.
func (r *planRepository) UpdateStepStatus(stepID, status string, at time.Time) error {
	query := `UPDATE steps SET status = $1, last_scheduled = $2 WHERE id = $3`

	result, err := r.db.Exec(query, status, at, stepID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStepNotFound
	}

	return nil
}

// ApplyDiff applies an adaptation diff in one transaction. Entries with an
// unknown action or a step/milestone outside the goal are skipped, never an
// error: the audit record already holds the full proposed diff.
func (r *planRepository) ApplyDiff(goalID string, diff model.DiffList) error {
	if len(diff) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	for _, entry := range diff {
		switch entry.Action {
		case model.DiffActionReschedule:
			if entry.SuggestedDay != "" {
				query := `UPDATE steps SET suggested_day = $1, last_scheduled = $2 WHERE id = $3 AND goal_id = $4`
				if _, err := tx.Exec(query, entry.SuggestedDay, now, entry.StepID, goalID); err != nil {
					return err
				}
			}
			if entry.DueDate != "" {
				due, err := time.Parse("2006-01-02", entry.DueDate)
				if err != nil {
					continue
				}
				query := `UPDATE steps SET due_date = $1, last_scheduled = $2 WHERE id = $3 AND goal_id = $4`
				if _, err := tx.Exec(query, due, now, entry.StepID, goalID); err != nil {
					return err
				}
			}
		case model.DiffActionScopeDown:
			if entry.Minutes <= 0 {
				continue
			}
			query := `UPDATE steps SET estimate_minutes = $1, last_scheduled = $2 WHERE id = $3 AND goal_id = $4`
			if _, err := tx.Exec(query, entry.Minutes, now, entry.StepID, goalID); err != nil {
				return err
			}
		case model.DiffActionReopen:
			query := `UPDATE steps SET status = $1, last_scheduled = $2 WHERE id = $3 AND goal_id = $4 AND status = $5`
			if _, err := tx.Exec(query, model.StepStatusPending, now, entry.StepID, goalID, model.StepStatusSkipped); err != nil {
				return err
			}
		case model.DiffActionCompleteMilestone:
			query := `UPDATE milestones SET status = $1 WHERE id = $2 AND goal_id = $3`
			if _, err := tx.Exec(query, model.MilestoneStatusCompleted, entry.MilestoneID, goalID); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/joanapinto/humsy/internal/model"
)

// AdaptationRepository is append-only. Records are never updated or deleted
// outside of full account erasure.
type AdaptationRepository interface {
	Create(rec *model.AdaptationRecord) error
	RecentByGoal(goalID string, limit int) ([]*model.AdaptationRecord, error)
}

type adaptationRepository struct {
	db *sqlx.DB
}

func NewAdaptationRepository(db *sqlx.DB) AdaptationRepository {
	return &adaptationRepository{db: db}
}

func (r *adaptationRepository) Create(rec *model.AdaptationRecord) error {
	query := `INSERT INTO plan_adaptations (id, goal_id, checkin_timestamp, alignment_score, reason, change_summary, diff, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		rec.ID,
		rec.GoalID,
		rec.CheckinTimestamp,
		rec.AlignmentScore,
		rec.Reason,
		rec.ChangeSummary,
		rec.Diff,
		rec.CreatedAt,
	)

	return err
}

func (r *adaptationRepository) RecentByGoal(goalID string, limit int) ([]*model.AdaptationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []*model.AdaptationRecord
	query := `SELECT * FROM plan_adaptations WHERE goal_id = $1 ORDER BY created_at DESC LIMIT $2`

	err := r.db.Select(&records, query, goalID, limit)
	if err != nil {
		return nil, err
	}

	return records, nil
}

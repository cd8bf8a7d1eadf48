package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/joanapinto/humsy/internal/model"
)

var (
	ErrCheckinNotFound = errors.New("checkin not found")
)

type CheckinRepository interface {
	Create(checkin *model.Checkin) error
	LatestByUser(userID string) (*model.Checkin, error)
	RecentByUser(userID string, limit int) ([]*model.Checkin, error)
}

type checkinRepository struct {
	db *sqlx.DB
}

func NewCheckinRepository(db *sqlx.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) Create(checkin *model.Checkin) error {
	query := `INSERT INTO checkins (id, user_id, goal_id, energy_level, current_feeling, focus_today, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		checkin.ID,
		checkin.UserID,
		checkin.GoalID,
		checkin.EnergyLevel,
		checkin.CurrentFeeling,
		checkin.FocusToday,
		checkin.Notes,
		checkin.CreatedAt,
	)

	return err
}

func (r *checkinRepository) LatestByUser(userID string) (*model.Checkin, error) {
	checkin := &model.Checkin{}
	query := `SELECT * FROM checkins WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`

	err := r.db.Get(checkin, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCheckinNotFound
	}

	return checkin, err
}

func (r *checkinRepository) RecentByUser(userID string, limit int) ([]*model.Checkin, error) {
	if limit <= 0 {
		limit = 10
	}

	var checkins []*model.Checkin
	query := `SELECT * FROM checkins WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	err := r.db.Select(&checkins, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}

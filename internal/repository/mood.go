package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/joanapinto/humsy/internal/model"
)

type MoodRepository interface {
	Create(entry *model.MoodLog) error
	RecentByUser(userID string, limit int) ([]*model.MoodLog, error)
}

type moodRepository struct {
	db *sqlx.DB
}

func NewMoodRepository(db *sqlx.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(entry *model.MoodLog) error {
	query := `INSERT INTO mood_logs (id, user_id, mood, intensity, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.UserID,
		entry.Mood,
		entry.Intensity,
		entry.Notes,
		entry.CreatedAt,
	)

	return err
}

func (r *moodRepository) RecentByUser(userID string, limit int) ([]*model.MoodLog, error) {
	if limit <= 0 {
		limit = 10
	}

	var entries []*model.MoodLog
	query := `SELECT * FROM mood_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	err := r.db.Select(&entries, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UsageRepository tracks assistant calls per user and feature. It satisfies
// the assistant package's UsageStore interface.
type UsageRepository interface {
	CountSince(ctx context.Context, userID, feature string, since time.Time) (int, error)
	Record(ctx context.Context, userID, feature string) error
}

type usageRepository struct {
	db *sqlx.DB
}

func NewUsageRepository(db *sqlx.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (r *usageRepository) CountSince(ctx context.Context, userID, feature string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM api_usage WHERE user_id = $1 AND feature = $2 AND created_at >= $3`

	err := r.db.QueryRowContext(ctx, query, userID, feature, since).Scan(&count)
	return count, err
}

func (r *usageRepository) Record(ctx context.Context, userID, feature string) error {
	query := `INSERT INTO api_usage (id, user_id, feature, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), userID, feature, time.Now().UTC())
	return err
}

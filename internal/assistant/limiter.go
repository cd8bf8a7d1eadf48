package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUsageCapped is returned by a Limiter when a per-user call cap is
// reached. Callers treat it like any other capability outage.
var ErrUsageCapped = errors.New("assistant: usage cap reached")

// UsageStore persists per-user, per-feature call counts. Implemented by the
// api_usage repository.
type UsageStore interface {
	CountSince(ctx context.Context, userID, feature string, since time.Time) (int, error)
	Record(ctx context.Context, userID, feature string) error
}

// Caps holds the per-feature call budgets.
type Caps struct {
	Daily   int
	Monthly int
}

// Limiter enforces daily and monthly call caps per user.
type Limiter struct {
	store UsageStore
	caps  map[string]Caps
}

func NewLimiter(store UsageStore, caps map[string]Caps) *Limiter {
	return &Limiter{store: store, caps: caps}
}

// Allow reports whether the user may make another call for the feature.
func (l *Limiter) Allow(ctx context.Context, userID, feature string) error {
	caps, ok := l.caps[feature]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	if caps.Daily > 0 {
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		n, err := l.store.CountSince(ctx, userID, feature, dayStart)
		if err != nil {
			return fmt.Errorf("count daily usage: %w", err)
		}
		if n >= caps.Daily {
			return fmt.Errorf("%w: %s daily cap %d", ErrUsageCapped, feature, caps.Daily)
		}
	}
	if caps.Monthly > 0 {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		n, err := l.store.CountSince(ctx, userID, feature, monthStart)
		if err != nil {
			return fmt.Errorf("count monthly usage: %w", err)
		}
		if n >= caps.Monthly {
			return fmt.Errorf("%w: %s monthly cap %d", ErrUsageCapped, feature, caps.Monthly)
		}
	}
	return nil
}

// Record logs one successful call for the feature.
func (l *Limiter) Record(ctx context.Context, userID, feature string) error {
	return l.store.Record(ctx, userID, feature)
}

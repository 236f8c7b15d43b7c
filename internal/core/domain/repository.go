package domain

import (
	"context"
	"errors"
)

var (
	ErrRecordNotFound = errors.New("daily record not found")
	ErrStreakNotFound = errors.New("streak snapshot not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrStaleRecord    = errors.New("a newer record already exists for this date")
	ErrInvalidRange   = errors.New("invalid date range")
)

type DailyRecordRepository interface {
	// Upsert stores the record for (UserID, Date).
	// An existing row is replaced only when the incoming LoggedAt is not older, so stale re-logs never win.
	Upsert(ctx context.Context, record *DailyRecord) error

	// ListByRange retrieves the records of a user with from <= date <= to (YYYY-MM-DD, inclusive).
	ListByRange(ctx context.Context, userID, from, to string) ([]*DailyRecord, error)

	// ListHistory retrieves every record of a user, oldest first. Used for streak computation.
	ListHistory(ctx context.Context, userID string) ([]*DailyRecord, error)

	// Delete removes the record of a user for a given date.
	Delete(ctx context.Context, userID, date string) error
}

type StreakRepository interface {
	// Save replaces the stored snapshot of a user.
	Save(ctx context.Context, snapshot *StreakSnapshot) error

	// Get returns the last stored snapshot, or ErrStreakNotFound.
	Get(ctx context.Context, userID string) (*StreakSnapshot, error)
}

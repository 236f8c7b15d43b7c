package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
)

type MockRecordRepo struct {
	mock.Mock
}

func (m *MockRecordRepo) Upsert(ctx context.Context, record *domain.DailyRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockRecordRepo) ListByRange(ctx context.Context, userID, from, to string) ([]*domain.DailyRecord, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyRecord), args.Error(1)
}

func (m *MockRecordRepo) ListHistory(ctx context.Context, userID string) ([]*domain.DailyRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyRecord), args.Error(1)
}

func (m *MockRecordRepo) Delete(ctx context.Context, userID, date string) error {
	return m.Called(ctx, userID, date).Error(0)
}

type MockStreakRepo struct {
	mock.Mock
}

func (m *MockStreakRepo) Save(ctx context.Context, snapshot *domain.StreakSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *MockStreakRepo) Get(ctx context.Context, userID string) (*domain.StreakSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreakSnapshot), args.Error(1)
}

// clockAt pins "now" to the given wall time in UTC.
func clockAt(year int, month time.Month, day, hour int) domain.Clock {
	return domain.Clock{
		Now:      func() time.Time { return time.Date(year, month, day, hour, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}
}

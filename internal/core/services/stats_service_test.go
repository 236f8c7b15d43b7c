package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/services"
)

func day(s string) time.Time {
	t, _ := time.Parse(domain.DateLayout, s)
	return t
}

func TestStatsService_GetSummaries(t *testing.T) {
	ctx := context.Background()
	userID := "user-stats-1"
	clock := clockAt(2025, time.September, 23, 9)

	t.Run("Success: Weekly view loads whole weeks around the reference month", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)

		records := []*domain.DailyRecord{
			{UserID: userID, Date: "2025-07-28", TotalTasks: 1, CompletedTasks: 1},
			{UserID: userID, Date: "2025-08-25", TotalTasks: 2, CompletedTasks: 2},
			{UserID: userID, Date: "2025-08-26", TotalTasks: 2, CompletedTasks: 1},
		}
		recordRepo.On("ListByRange", ctx, userID, "2025-07-28", "2025-08-31").Return(records, nil)

		got, err := svc.GetSummaries(ctx, domain.SummaryInput{
			UserID:      userID,
			Granularity: domain.GranularityWeekly,
			Reference:   day("2025-08-12"),
		})

		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Equal(t, "2025-07-28", got[0].PeriodStart)
		assert.Equal(t, "2025-08-04", got[1].PeriodStart)
		assert.Equal(t, 0, got[1].CompletionRate, "weeks without records are still listed")
		assert.Equal(t, 14, got[0].CompletionRate, "round(100/7)")
		assert.Equal(t, "2025-08-25", got[4].PeriodStart)
		assert.Equal(t, 21, got[4].CompletionRate, "round(150/7)")
		assert.Equal(t, 2, got[4].ActiveDays)
		recordRepo.AssertExpectations(t)
	})

	t.Run("Success: Past month keeps only periods inside its window", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)

		recordRepo.On("ListByRange", ctx, userID, "2025-06-01", "2025-06-30").Return([]*domain.DailyRecord{
			{UserID: userID, Date: "2025-06-10", TotalTasks: 4, CompletedTasks: 3},
		}, nil)

		got, err := svc.GetSummaries(ctx, domain.SummaryInput{
			UserID:      userID,
			Granularity: domain.GranularityDaily,
			Reference:   day("2025-06-18"),
		})

		require.NoError(t, err)
		require.Len(t, got, 30, "every day of June, today's bucket lies outside it")
		assert.Equal(t, "2025-06-01", got[0].PeriodStart)
		assert.Equal(t, 0, got[0].CompletionRate)
		assert.Equal(t, "2025-06-10", got[9].PeriodStart)
		assert.Equal(t, 75, got[9].CompletionRate)
		assert.Equal(t, "2025-06-30", got[29].PeriodStart)
	})

	t.Run("Success: Monthly view covers the reference year up to today", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)

		recordRepo.On("ListByRange", ctx, userID, "2025-01-01", "2025-09-23").Return([]*domain.DailyRecord{
			{UserID: userID, Date: "2025-02-03", TotalTasks: 1, CompletedTasks: 1},
		}, nil)

		got, err := svc.GetSummaries(ctx, domain.SummaryInput{
			UserID:      userID,
			Granularity: domain.GranularityMonthly,
			Reference:   day("2025-05-05"),
		})

		require.NoError(t, err)
		require.Len(t, got, 9, "January through September")
		assert.Equal(t, "2025-01-01", got[0].PeriodStart)
		assert.Equal(t, 0, got[0].CompletionRate)
		assert.Equal(t, domain.StatusLowProductive, got[0].Status)
		assert.Equal(t, "2025-02-01", got[1].PeriodStart)
		assert.Equal(t, 4, got[1].CompletionRate, "round(100/28)")
		assert.Equal(t, "2025-09-01", got[8].PeriodStart)
	})

	t.Run("Success: Monthly view of a year with sparse activity lists every month", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)

		recordRepo.On("ListByRange", ctx, userID, "2025-01-01", "2025-09-23").Return([]*domain.DailyRecord{
			{UserID: userID, Date: "2025-08-25", TotalTasks: 1, CompletedTasks: 1},
		}, nil)

		got, err := svc.GetSummaries(ctx, domain.SummaryInput{
			UserID:      userID,
			Granularity: domain.GranularityMonthly,
			Reference:   day("2025-08-12"),
		})

		require.NoError(t, err)
		require.Len(t, got, 9)
		months := []string{"2025-01-01", "2025-02-01", "2025-03-01", "2025-04-01", "2025-05-01", "2025-06-01", "2025-07-01", "2025-08-01", "2025-09-01"}
		for i, m := range months {
			assert.Equal(t, m, got[i].PeriodStart)
		}
		for _, p := range got[:7] {
			assert.Equal(t, 0, p.CompletionRate)
			assert.Equal(t, 0, p.TotalTasks)
		}
		assert.Equal(t, 3, got[7].CompletionRate, "round(100/31)")
		assert.Equal(t, 23, got[8].DaysCounted)
	})

	t.Run("Success: Explicit today overrides the clock", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)

		recordRepo.On("ListByRange", ctx, userID, "2025-09-01", "2025-09-10").Return([]*domain.DailyRecord{}, nil)

		got, err := svc.GetSummaries(ctx, domain.SummaryInput{
			UserID:      userID,
			Granularity: domain.GranularityDaily,
			Today:       day("2025-09-10"),
		})

		require.NoError(t, err)
		require.Len(t, got, 10)
		assert.Equal(t, "2025-09-01", got[0].PeriodStart)
		assert.Equal(t, "2025-09-10", got[9].PeriodStart)
	})

	t.Run("Edge Case: Future window returns nothing without hitting storage", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)

		got, err := svc.GetSummaries(ctx, domain.SummaryInput{
			UserID:      userID,
			Granularity: domain.GranularityWeekly,
			Reference:   day("2025-11-01"),
		})

		require.NoError(t, err)
		assert.Empty(t, got)
		recordRepo.AssertNotCalled(t, "ListByRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fail: Invalid granularity", func(t *testing.T) {
		svc := services.NewStatsService(new(MockRecordRepo), new(MockStreakRepo), clock)

		_, err := svc.GetSummaries(ctx, domain.SummaryInput{UserID: userID, Granularity: "hourly"})

		assert.ErrorIs(t, err, domain.ErrInvalidGranularity)
	})

	t.Run("Fail: Repo error propagates", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)

		dbErr := errors.New("db connection lost")
		recordRepo.On("ListByRange", ctx, userID, mock.Anything, mock.Anything).Return(nil, dbErr)

		got, err := svc.GetSummaries(ctx, domain.SummaryInput{UserID: userID, Granularity: domain.GranularityDaily})

		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, got)
	})
}

func TestStatsService_GetStreaks(t *testing.T) {
	ctx := context.Background()
	userID := "user-streak-1"
	clock := clockAt(2025, time.September, 23, 9)

	history := []*domain.DailyRecord{
		{UserID: userID, Date: "2025-09-21", TotalTasks: 1, CompletedTasks: 1},
		{UserID: userID, Date: "2025-09-22", TotalTasks: 3, CompletedTasks: 2},
		{UserID: userID, Date: "2025-09-23", TotalTasks: 3, CompletedTasks: 0},
	}

	t.Run("Success: Grace period anchors at yesterday", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)
		recordRepo.On("ListHistory", ctx, userID).Return(history, nil)

		got, err := svc.GetStreaks(ctx, domain.StreakInput{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, 2, got.CurrentStreak)
		assert.Equal(t, 2, got.LongestStreak)
	})

	t.Run("Success: Live override counts today", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)
		recordRepo.On("ListHistory", ctx, userID).Return(history, nil)

		got, err := svc.GetStreaks(ctx, domain.StreakInput{
			UserID:   userID,
			Override: &domain.DayOverride{TotalTasks: 3, CompletedTasks: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, 3, got.CurrentStreak)
		assert.Equal(t, 3, got.LongestStreak)
	})

	t.Run("Success: Explicit today in the past", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)
		recordRepo.On("ListHistory", ctx, userID).Return(history, nil)

		got, err := svc.GetStreaks(ctx, domain.StreakInput{UserID: userID, Today: day("2025-09-21")})

		require.NoError(t, err)
		assert.Equal(t, 1, got.CurrentStreak)
		assert.Equal(t, 1, got.LongestStreak, "later records are in the future for that day")
	})

	t.Run("Fail: Repo error propagates", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)

		dbErr := errors.New("query timeout")
		recordRepo.On("ListHistory", ctx, userID).Return(nil, dbErr)

		got, err := svc.GetStreaks(ctx, domain.StreakInput{UserID: userID})

		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, got)
	})
}

func TestStatsService_GetLiveStreaks(t *testing.T) {
	ctx := context.Background()
	userID := "user-live-1"
	clock := clockAt(2025, time.September, 23, 9)

	history := []*domain.DailyRecord{
		{UserID: userID, Date: "2025-09-22", TotalTasks: 1, CompletedTasks: 1},
	}

	t.Run("Success: Tasks completed on time count", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)
		recordRepo.On("ListHistory", ctx, userID).Return(history, nil)

		done := time.Date(2025, 9, 23, 8, 0, 0, 0, time.UTC)
		got, err := svc.GetLiveStreaks(ctx, services.LiveStreakInput{
			UserID: userID,
			Tasks: []domain.Task{
				{ID: "a", DueDate: "2025-09-23", CompletedAt: &done},
				{ID: "b", DueDate: "2025-09-23"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, got.CurrentStreak)
	})

	t.Run("Success: Tasks win over counts", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := services.NewStatsService(recordRepo, new(MockStreakRepo), clock)
		recordRepo.On("ListHistory", ctx, userID).Return(history, nil)

		got, err := svc.GetLiveStreaks(ctx, services.LiveStreakInput{
			UserID:   userID,
			Tasks:    []domain.Task{{ID: "a", DueDate: "2025-09-23"}},
			Override: &domain.DayOverride{TotalTasks: 1, CompletedTasks: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, got.CurrentStreak, "no task done today, grace period keeps yesterday")
	})

	t.Run("Fail: Negative override", func(t *testing.T) {
		svc := services.NewStatsService(new(MockRecordRepo), new(MockStreakRepo), clock)

		_, err := svc.GetLiveStreaks(ctx, services.LiveStreakInput{
			UserID:   userID,
			Override: &domain.DayOverride{TotalTasks: -1},
		})

		assert.ErrorIs(t, err, domain.ErrNegativeCount)
	})
}

func TestStatsService_GetStreakSnapshot(t *testing.T) {
	ctx := context.Background()
	streakRepo := new(MockStreakRepo)
	svc := services.NewStatsService(new(MockRecordRepo), streakRepo, clockAt(2025, time.September, 23, 9))

	snap := &domain.StreakSnapshot{UserID: "u1", StreakState: domain.StreakState{CurrentStreak: 4, LongestStreak: 9}}
	streakRepo.On("Get", ctx, "u1").Return(snap, nil)
	streakRepo.On("Get", ctx, "u2").Return(nil, domain.ErrStreakNotFound)

	got, err := svc.GetStreakSnapshot(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 9, got.LongestStreak)

	_, err = svc.GetStreakSnapshot(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrStreakNotFound)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/productivity"
)

type StatsService struct {
	recordRepo domain.DailyRecordRepository
	streakRepo domain.StreakRepository
	clock      domain.Clock
}

func NewStatsService(recordRepo domain.DailyRecordRepository, streakRepo domain.StreakRepository, clock domain.Clock) *StatsService {
	return &StatsService{
		recordRepo: recordRepo,
		streakRepo: streakRepo,
		clock:      clock,
	}
}

func (s *StatsService) today(override time.Time) time.Time {
	if override.IsZero() {
		return s.clock.Today()
	}
	return productivity.Day(override)
}

// window returns the calendar range a reference date selects: its month for
// daily and weekly views, its year for the monthly view.
func window(g domain.Granularity, ref time.Time) (time.Time, time.Time) {
	if g == domain.GranularityMonthly {
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, -1)
	}
	return productivity.MonthStart(ref), productivity.MonthEnd(ref)
}

func (s *StatsService) GetSummaries(ctx context.Context, input domain.SummaryInput) ([]domain.PeriodSummary, error) {
	if _, err := domain.ParseGranularity(string(input.Granularity)); err != nil {
		return nil, err
	}

	today := s.today(input.Today)
	ref := today
	if !input.Reference.IsZero() {
		ref = productivity.Day(input.Reference)
	}

	from, to := window(input.Granularity, ref)
	if from.After(today) {
		return []domain.PeriodSummary{}, nil
	}

	// Weeks straddling the window edges are loaded whole so their rates match
	// what the same week shows in the neighbouring month.
	loadFrom, _, _ := productivity.BucketFor(from, input.Granularity)
	_, loadTo, _ := productivity.BucketFor(to, input.Granularity)
	if loadTo.After(today) {
		loadTo = today
	}

	records, err := s.recordRepo.ListByRange(ctx, input.UserID, productivity.FormatDate(loadFrom), productivity.FormatDate(loadTo))
	if err != nil {
		return nil, fmt.Errorf("stats service: failed to load records: %w", err)
	}

	return productivity.AggregateRange(records, input.Granularity, from, to, today), nil
}

func (s *StatsService) GetStreaks(ctx context.Context, input domain.StreakInput) (*domain.StreakState, error) {
	history, err := s.recordRepo.ListHistory(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("stats service: failed to load history: %w", err)
	}

	state := productivity.Streaks(history, s.today(input.Today), input.Override)
	return &state, nil
}

// LiveStreakInput carries today's unsaved task state. Tasks, when present,
// take precedence over Override.
type LiveStreakInput struct {
	UserID   string
	Today    time.Time
	Tasks    []domain.Task
	Override *domain.DayOverride
}

func (s *StatsService) GetLiveStreaks(ctx context.Context, input LiveStreakInput) (*domain.StreakState, error) {
	today := s.today(input.Today)
	override := input.Override

	if len(input.Tasks) > 0 {
		o, err := domain.OverrideFromTasks(productivity.FormatDate(today), input.Tasks, s.clock.Location)
		if err != nil {
			return nil, err
		}
		override = &o
	}
	if override != nil && (override.TotalTasks < 0 || override.CompletedTasks < 0) {
		return nil, domain.ErrNegativeCount
	}

	return s.GetStreaks(ctx, domain.StreakInput{UserID: input.UserID, Today: today, Override: override})
}

func (s *StatsService) GetStreakSnapshot(ctx context.Context, userID string) (*domain.StreakSnapshot, error) {
	return s.streakRepo.Get(ctx, userID)
}

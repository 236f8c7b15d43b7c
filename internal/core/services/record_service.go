package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/workers"
)

type RecordService struct {
	repo   domain.DailyRecordRepository
	worker *workers.StreakWorker
	clock  domain.Clock
}

func NewRecordService(repo domain.DailyRecordRepository, worker *workers.StreakWorker, clock domain.Clock) *RecordService {
	return &RecordService{
		repo:   repo,
		worker: worker,
		clock:  clock,
	}
}

type LogRecordInput struct {
	UserID         string
	Date           string
	TotalTasks     int
	CompletedTasks int
	LoggedAt       time.Time
}

type LogTasksInput struct {
	UserID   string
	Date     string
	Tasks    []domain.Task
	LoggedAt time.Time
}

func (s *RecordService) loggedAt(t time.Time) time.Time {
	if t.IsZero() {
		return s.clock.Timestamp()
	}
	return t.UTC()
}

func (s *RecordService) Log(ctx context.Context, input LogRecordInput) (*domain.DailyRecord, error) {
	record := domain.NewDailyRecord(input.UserID, input.Date, input.TotalTasks, input.CompletedTasks, s.loggedAt(input.LoggedAt))
	return s.save(ctx, record)
}

// LogTasks derives the record from raw task state, so tasks completed after
// their due date are excluded from the completed count.
func (s *RecordService) LogTasks(ctx context.Context, input LogTasksInput) (*domain.DailyRecord, error) {
	record, err := domain.BuildDailyRecord(input.UserID, input.Date, input.Tasks, s.loggedAt(input.LoggedAt), s.clock.Location)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, record)
}

func (s *RecordService) save(ctx context.Context, record *domain.DailyRecord) (*domain.DailyRecord, error) {
	if strings.TrimSpace(record.UserID) == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	day, _ := record.Day()
	if day.After(s.clock.Today()) {
		return nil, domain.ErrFutureDate
	}

	record.Date = day.Format(domain.DateLayout)
	record.ID = uuid.NewString()

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.worker.Enqueue(record.UserID)

	return record, nil
}

func (s *RecordService) List(ctx context.Context, userID, from, to string) ([]*domain.DailyRecord, error) {
	fromDay, err := domain.ParseDay(from)
	if err != nil {
		return nil, err
	}
	toDay, err := domain.ParseDay(to)
	if err != nil {
		return nil, err
	}
	if fromDay.After(toDay) {
		return nil, fmt.Errorf("%w: %s is after %s", domain.ErrInvalidRange, from, to)
	}

	return s.repo.ListByRange(ctx, userID, fromDay.Format(domain.DateLayout), toDay.Format(domain.DateLayout))
}

func (s *RecordService) Delete(ctx context.Context, userID, date string) error {
	day, err := domain.ParseDay(date)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, day.Format(domain.DateLayout)); err != nil {
		return err
	}

	s.worker.Enqueue(userID)

	return nil
}

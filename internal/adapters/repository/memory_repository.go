package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
)

var (
	_ domain.DailyRecordRepository = (*InMemoryDailyRecordRepository)(nil)
	_ domain.StreakRepository      = (*InMemoryStreakRepository)(nil)
)

// InMemoryDailyRecordRepository mirrors the Postgres semantics, including the
// latest-loggedAt-wins upsert. Records are copied in and out.
type InMemoryDailyRecordRepository struct {
	store map[string]map[string]domain.DailyRecord

	mu sync.RWMutex
}

func NewInMemoryDailyRecordRepository() *InMemoryDailyRecordRepository {
	return &InMemoryDailyRecordRepository{
		store: make(map[string]map[string]domain.DailyRecord),
	}
}

func (r *InMemoryDailyRecordRepository) Upsert(ctx context.Context, record *domain.DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	days, ok := r.store[record.UserID]
	if !ok {
		days = make(map[string]domain.DailyRecord)
		r.store[record.UserID] = days
	}

	if existing, ok := days[record.Date]; ok {
		if record.LoggedAt.Before(existing.LoggedAt) {
			return domain.ErrStaleRecord
		}
		record.ID = existing.ID
	}

	days[record.Date] = *record
	return nil
}

func (r *InMemoryDailyRecordRepository) ListByRange(ctx context.Context, userID, from, to string) ([]*domain.DailyRecord, error) {
	return r.list(userID, func(date string) bool {
		return date >= from && date <= to
	}), nil
}

func (r *InMemoryDailyRecordRepository) ListHistory(ctx context.Context, userID string) ([]*domain.DailyRecord, error) {
	return r.list(userID, func(string) bool { return true }), nil
}

func (r *InMemoryDailyRecordRepository) list(userID string, keep func(date string) bool) []*domain.DailyRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := []*domain.DailyRecord{}
	for date, rec := range r.store[userID] {
		if keep(date) {
			copied := rec
			records = append(records, &copied)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
	return records
}

func (r *InMemoryDailyRecordRepository) Delete(ctx context.Context, userID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[userID][date]; !ok {
		return domain.ErrRecordNotFound
	}

	delete(r.store[userID], date)
	return nil
}

type InMemoryStreakRepository struct {
	store map[string]domain.StreakSnapshot

	mu sync.RWMutex
}

func NewInMemoryStreakRepository() *InMemoryStreakRepository {
	return &InMemoryStreakRepository{
		store: make(map[string]domain.StreakSnapshot),
	}
}

func (r *InMemoryStreakRepository) Save(ctx context.Context, snapshot *domain.StreakSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[snapshot.UserID] = *snapshot
	return nil
}

func (r *InMemoryStreakRepository) Get(ctx context.Context, userID string) (*domain.StreakSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrStreakNotFound
	}
	return &s, nil
}

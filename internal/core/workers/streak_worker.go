package workers

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/productivity"
)

type RecordRepository interface {
	ListHistory(ctx context.Context, userID string) ([]*domain.DailyRecord, error)
}

type SnapshotRepository interface {
	Get(ctx context.Context, userID string) (*domain.StreakSnapshot, error)
	Save(ctx context.Context, snapshot *domain.StreakSnapshot) error
}

type StreakJob struct {
	UserID string
}

// StreakWorker recomputes a user's streaks after their records change and
// stores the result for consumers that cannot pay for a live computation.
type StreakWorker struct {
	recordRepo RecordRepository
	streakRepo SnapshotRepository
	clock      domain.Clock
	logger     *zap.Logger
	jobs       chan StreakJob
}

func NewStreakWorker(rRepo RecordRepository, sRepo SnapshotRepository, clock domain.Clock, logger *zap.Logger) *StreakWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreakWorker{
		recordRepo: rRepo,
		streakRepo: sRepo,
		clock:      clock,
		logger:     logger.Named("streak_worker"),
		jobs:       make(chan StreakJob, 100),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		w.logger.Info("streak worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("streak worker shutting down")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(userID string) {
	select {
	case w.jobs <- StreakJob{UserID: userID}:
	default:
		w.logger.Warn("queue full, dropping job", zap.String("user_id", userID))
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	log := w.logger.With(zap.String("user_id", job.UserID))

	history, err := w.recordRepo.ListHistory(ctx, job.UserID)
	if err != nil {
		log.Error("failed to fetch history", zap.Error(err))
		return
	}

	today := w.clock.Today()
	state := productivity.Streaks(history, today, nil)
	computedFor := productivity.FormatDate(today)

	prev, err := w.streakRepo.Get(ctx, job.UserID)
	if err != nil && !errors.Is(err, domain.ErrStreakNotFound) {
		log.Error("failed to fetch snapshot", zap.Error(err))
		return
	}
	if prev != nil && prev.StreakState == state && prev.ComputedFor == computedFor {
		return
	}

	snapshot := &domain.StreakSnapshot{
		UserID:      job.UserID,
		StreakState: state,
		ComputedFor: computedFor,
		UpdatedAt:   w.clock.Timestamp(),
	}
	if err := w.streakRepo.Save(ctx, snapshot); err != nil {
		log.Error("failed to save snapshot", zap.Error(err))
		return
	}

	log.Info("streak updated",
		zap.Int("current", state.CurrentStreak),
		zap.Int("longest", state.LongestStreak),
		zap.String("computed_for", computedFor),
	)
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
)

var _ domain.DailyRecordRepository = (*CachedDailyRecordRepository)(nil)

const historyTTL = 30 * time.Minute

// CachedDailyRecordRepository keeps each user's full history in Redis. Streak
// computation reads the whole history on every request, while writes are rare.
type CachedDailyRecordRepository struct {
	next   domain.DailyRecordRepository
	cache  *redis.Client
	logger *zap.Logger
}

func NewCachedDailyRecordRepository(next domain.DailyRecordRepository, cache *redis.Client, logger *zap.Logger) *CachedDailyRecordRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedDailyRecordRepository{
		next:   next,
		cache:  cache,
		logger: logger.Named("cache"),
	}
}

func (r *CachedDailyRecordRepository) cacheKey(userID string) string {
	return fmt.Sprintf("records:history:%s", userID)
}

func (r *CachedDailyRecordRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		r.logger.Warn("failed to invalidate history", zap.String("user_id", userID), zap.Error(err))
	}
}

func (r *CachedDailyRecordRepository) ListHistory(ctx context.Context, userID string) ([]*domain.DailyRecord, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var records []*domain.DailyRecord
		if err := json.Unmarshal(val, &records); err == nil {
			return records, nil
		}

		r.logger.Warn("corrupted history, cleaning up key", zap.String("user_id", userID))
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", zap.Error(err))
	}

	records, err := r.next.ListHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if setErr := r.cache.Set(ctx, key, data, historyTTL).Err(); setErr != nil {
			r.logger.Warn("redis set error", zap.Error(setErr))
		}
	}

	return records, nil
}

func (r *CachedDailyRecordRepository) ListByRange(ctx context.Context, userID, from, to string) ([]*domain.DailyRecord, error) {
	return r.next.ListByRange(ctx, userID, from, to)
}

func (r *CachedDailyRecordRepository) Upsert(ctx context.Context, record *domain.DailyRecord) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}
	r.invalidate(ctx, record.UserID)
	return nil
}

func (r *CachedDailyRecordRepository) Delete(ctx context.Context, userID, date string) error {
	if err := r.next.Delete(ctx, userID, date); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

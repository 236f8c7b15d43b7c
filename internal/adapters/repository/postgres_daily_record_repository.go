package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
)

var _ domain.DailyRecordRepository = (*PostgresDailyRecordRepository)(nil)

const recordColumns = `id, user_id, to_char(day, 'YYYY-MM-DD') AS date,
	total_tasks, completed_tasks, completion_rate, status, logged_at`

type PostgresDailyRecordRepository struct {
	db *sqlx.DB
}

func NewPostgresDailyRecordRepository(db *sqlx.DB) *PostgresDailyRecordRepository {
	return &PostgresDailyRecordRepository{db: db}
}

func (r *PostgresDailyRecordRepository) Upsert(ctx context.Context, record *domain.DailyRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	// The WHERE on the conflict branch makes a stale re-log a no-op, in which
	// case RETURNING yields no row.
	query := `
		INSERT INTO daily_records (
			id, user_id, day,
			total_tasks, completed_tasks, completion_rate, status,
			logged_at
		) VALUES (
			:id, :user_id, CAST(:date AS DATE),
			:total_tasks, :completed_tasks, :completion_rate, :status,
			:logged_at
		)
		ON CONFLICT (user_id, day) DO UPDATE
		SET total_tasks = EXCLUDED.total_tasks,
		    completed_tasks = EXCLUDED.completed_tasks,
		    completion_rate = EXCLUDED.completion_rate,
		    status = EXCLUDED.status,
		    logged_at = EXCLUDED.logged_at
		WHERE EXCLUDED.logged_at >= daily_records.logged_at
		RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, record)
	if err != nil {
		if pgCode(err) == codeCheckViolation {
			return fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
		}
		return fmt.Errorf("repository: upsert daily record failed: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("repository: upsert daily record failed: %w", err)
		}
		return domain.ErrStaleRecord
	}

	return rows.Scan(&record.ID)
}

func (r *PostgresDailyRecordRepository) ListByRange(ctx context.Context, userID, from, to string) ([]*domain.DailyRecord, error) {
	records := []*domain.DailyRecord{}

	query := `SELECT ` + recordColumns + `
		FROM daily_records
		WHERE user_id = $1
		  AND day >= CAST($2 AS DATE)
		  AND day <= CAST($3 AS DATE)
		ORDER BY day ASC`

	if err := r.db.SelectContext(ctx, &records, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("repository: list daily records failed: %w", err)
	}
	return records, nil
}

func (r *PostgresDailyRecordRepository) ListHistory(ctx context.Context, userID string) ([]*domain.DailyRecord, error) {
	records := []*domain.DailyRecord{}

	query := `SELECT ` + recordColumns + `
		FROM daily_records
		WHERE user_id = $1
		ORDER BY day ASC`

	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("repository: list history failed: %w", err)
	}
	return records, nil
}

func (r *PostgresDailyRecordRepository) Delete(ctx context.Context, userID, date string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM daily_records WHERE user_id = $1 AND day = CAST($2 AS DATE)`,
		userID, date)
	if err != nil {
		return fmt.Errorf("repository: delete daily record failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
)

var _ domain.StreakRepository = (*PostgresStreakRepository)(nil)

type PostgresStreakRepository struct {
	db *sqlx.DB
}

func NewPostgresStreakRepository(db *sqlx.DB) *PostgresStreakRepository {
	return &PostgresStreakRepository{db: db}
}

func (r *PostgresStreakRepository) Save(ctx context.Context, s *domain.StreakSnapshot) error {
	query := `
		INSERT INTO user_streaks (user_id, current_streak, longest_streak, computed_for, updated_at)
		VALUES (:user_id, :current_streak, :longest_streak, CAST(:computed_for AS DATE), :updated_at)
		ON CONFLICT (user_id) DO UPDATE
		SET current_streak = EXCLUDED.current_streak,
		    longest_streak = EXCLUDED.longest_streak,
		    computed_for = EXCLUDED.computed_for,
		    updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("repository: save streak failed: %w", err)
	}
	return nil
}

func (r *PostgresStreakRepository) Get(ctx context.Context, userID string) (*domain.StreakSnapshot, error) {
	var s domain.StreakSnapshot

	query := `
		SELECT user_id, current_streak, longest_streak,
		       to_char(computed_for, 'YYYY-MM-DD') AS computed_for, updated_at
		FROM user_streaks
		WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &s, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStreakNotFound
		}
		return nil, fmt.Errorf("repository: get streak failed: %w", err)
	}
	return &s, nil
}

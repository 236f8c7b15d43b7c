package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidGranularity = errors.New("invalid granularity (must be daily, weekly, or monthly)")

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly:
		return g, nil
	default:
		return "", ErrInvalidGranularity
	}
}

// PeriodSummary is derived on every aggregation and never persisted.
// CompletionRate is the mean of the per-day rates, with missing days at 0.
type PeriodSummary struct {
	Granularity    Granularity `json:"granularity"`
	PeriodStart    string      `json:"period_start"`
	PeriodEnd      string      `json:"period_end"`
	TotalTasks     int         `json:"total_tasks"`
	CompletedTasks int         `json:"completed_tasks"`
	CompletionRate int         `json:"completion_rate"`
	Status         Status      `json:"status"`
	DaysCounted    int         `json:"days_counted"`
	ActiveDays     int         `json:"active_days"`
}

type StreakState struct {
	CurrentStreak int `json:"current_streak" db:"current_streak"`
	LongestStreak int `json:"longest_streak" db:"longest_streak"`
}

// StreakSnapshot is the last streak state computed in the background for a user.
type StreakSnapshot struct {
	UserID string `json:"user_id" db:"user_id"`
	StreakState
	ComputedFor string    `json:"computed_for" db:"computed_for"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type SummaryInput struct {
	UserID      string
	Granularity Granularity
	Reference   time.Time
	Today       time.Time
}

type StreakInput struct {
	UserID   string
	Today    time.Time
	Override *DayOverride
}

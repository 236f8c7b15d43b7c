package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

// DateLayout is the canonical key of a calendar day. Records are identified by
// this local-date string, never by a timestamp.
const DateLayout = "2006-01-02"

var (
	ErrInvalidRecord  = errors.New("invalid daily record data")
	ErrInvalidDate    = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrNegativeCount  = errors.New("task counts cannot be negative")
	ErrCompletedTotal = errors.New("completed tasks cannot exceed total tasks")
	ErrFutureDate     = errors.New("date is in the future")
)

type Status string

const (
	StatusHighlyProductive     Status = "highly_productive"
	StatusProductive           Status = "productive"
	StatusModeratelyProductive Status = "moderately_productive"
	StatusLowProductive        Status = "low_productive"
)

const (
	HighlyProductiveThreshold     = 90
	ProductiveThreshold           = 70
	ModeratelyProductiveThreshold = 40
)

// StatusForRate maps a 0-100 completion rate to its productivity tier.
func StatusForRate(rate int) Status {
	switch {
	case rate >= HighlyProductiveThreshold:
		return StatusHighlyProductive
	case rate >= ProductiveThreshold:
		return StatusProductive
	case rate >= ModeratelyProductiveThreshold:
		return StatusModeratelyProductive
	default:
		return StatusLowProductive
	}
}

// CompletionRate returns round(100 * completed / total), or 0 when nothing was scheduled.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

type DailyRecord struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`
	Date   string `json:"date" db:"date"`

	TotalTasks     int    `json:"total_tasks" db:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks" db:"completed_tasks"`
	CompletionRate int    `json:"completion_rate" db:"completion_rate"`
	Status         Status `json:"status" db:"status"`

	LoggedAt time.Time `json:"logged_at" db:"logged_at"`
}

func NewDailyRecord(userID, date string, total, completed int, loggedAt time.Time) *DailyRecord {
	r := &DailyRecord{
		UserID:         userID,
		Date:           strings.TrimSpace(date),
		TotalTasks:     total,
		CompletedTasks: completed,
		LoggedAt:       loggedAt.UTC(),
	}
	r.Normalize()
	return r
}

// HasActivity reports whether at least one scheduled task was completed on time.
// Streaks are built on this flag, not on the completion rate.
func (r *DailyRecord) HasActivity() bool {
	return r.TotalTasks > 0 && r.CompletedTasks > 0
}

// Normalize re-derives CompletionRate and Status from the task counts.
func (r *DailyRecord) Normalize() {
	r.CompletionRate = CompletionRate(r.CompletedTasks, r.TotalTasks)
	r.Status = StatusForRate(r.CompletionRate)
}

// Day parses the record date as a calendar day at UTC midnight.
func (r *DailyRecord) Day() (time.Time, error) {
	return ParseDay(r.Date)
}

func (r *DailyRecord) Validate() error {
	if _, err := r.Day(); err != nil {
		return err
	}
	if r.TotalTasks < 0 || r.CompletedTasks < 0 {
		return ErrNegativeCount
	}
	if r.CompletedTasks > r.TotalTasks {
		return ErrCompletedTotal
	}
	return nil
}

// ParseDay parses a YYYY-MM-DD key. The result carries no timezone meaning;
// it is pinned to UTC midnight so that day arithmetic never crosses a DST edge.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// LocalDay returns the calendar day of t as seen in loc, pinned to UTC midnight.
func LocalDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// DayOverride carries live task state for "today", which may be ahead of the
// persisted daily record.
type DayOverride struct {
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	CompletionRate int    `json:"completion_rate"`
	Status         Status `json:"status"`
}

func (o DayOverride) HasActivity() bool {
	return o.TotalTasks > 0 && o.CompletedTasks > 0
}

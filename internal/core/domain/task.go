package domain

import (
	"time"
)

// Task is the slice of task state needed to derive a daily record.
type Task struct {
	ID          string     `json:"id"`
	DueDate     string     `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CompletedOnTime reports whether the task was closed on or before its due
// date, with the completion timestamp read in loc.
func (t Task) CompletedOnTime(loc *time.Location) bool {
	if t.CompletedAt == nil {
		return false
	}
	due, err := ParseDay(t.DueDate)
	if err != nil {
		return false
	}
	return !LocalDay(*t.CompletedAt, loc).After(due)
}

// BuildDailyRecord counts the tasks due on date. Late completions are scheduled
// work but do not count as completed.
func BuildDailyRecord(userID, date string, tasks []Task, loggedAt time.Time, loc *time.Location) (*DailyRecord, error) {
	day, err := ParseDay(date)
	if err != nil {
		return nil, err
	}
	key := day.Format(DateLayout)

	total, completed := 0, 0
	for _, t := range tasks {
		due, err := ParseDay(t.DueDate)
		if err != nil || !due.Equal(day) {
			continue
		}
		total++
		if t.CompletedOnTime(loc) {
			completed++
		}
	}

	return NewDailyRecord(userID, key, total, completed, loggedAt), nil
}

// OverrideFromTasks builds the live "today" override from raw task state.
func OverrideFromTasks(date string, tasks []Task, loc *time.Location) (DayOverride, error) {
	rec, err := BuildDailyRecord("", date, tasks, time.Time{}, loc)
	if err != nil {
		return DayOverride{}, err
	}
	return DayOverride{
		TotalTasks:     rec.TotalTasks,
		CompletedTasks: rec.CompletedTasks,
		CompletionRate: rec.CompletionRate,
		Status:         rec.Status,
	}, nil
}

// Package productivity turns daily task-completion records into period
// summaries and streaks. Every function is pure: "today" is always passed in,
// nothing reads the wall clock, and inputs are never mutated.
package productivity

import (
	"time"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
)

// Day drops the time of day from t, keeping its calendar date as seen in t's
// own location. Callers resolve the user's local date before calling in.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// WeekStart returns the Monday on or before day.
func WeekStart(day time.Time) time.Time {
	day = Day(day)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func WeekEnd(day time.Time) time.Time {
	return WeekStart(day).AddDate(0, 0, 6)
}

func MonthStart(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last calendar day of the month containing day.
func MonthEnd(day time.Time) time.Time {
	return MonthStart(day).AddDate(0, 1, -1)
}

// BucketFor returns the inclusive bounds of the period owning day.
func BucketFor(day time.Time, g domain.Granularity) (time.Time, time.Time, bool) {
	switch g {
	case domain.GranularityDaily:
		d := Day(day)
		return d, d, true
	case domain.GranularityWeekly:
		return WeekStart(day), WeekEnd(day), true
	case domain.GranularityMonthly:
		return MonthStart(day), MonthEnd(day), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

func minDay(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

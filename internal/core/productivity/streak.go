package productivity

import (
	"time"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
)

// MaxCurrentStreak bounds the backwards walk of CurrentStreak.
const MaxCurrentStreak = 365

// CurrentStreak counts consecutive active days ending today or yesterday.
//
// Today's activity comes from override when given, otherwise from today's
// record. An inactive or missing today does not break the streak on its own:
// the count is then anchored at yesterday, and only an inactive or missing
// yesterday returns 0.
func CurrentStreak(records []*domain.DailyRecord, today time.Time, override *domain.DayOverride) int {
	today = Day(today)
	return currentStreak(index(records, &today), today, override)
}

func currentStreak(set daySet, today time.Time, override *domain.DayOverride) int {
	activeToday := set.active(today)
	if override != nil {
		activeToday = override.HasActivity()
	}

	anchor := today
	if !activeToday {
		anchor = today.AddDate(0, 0, -1)
		if !set.active(anchor) {
			return 0
		}
	}

	count := 1
	for d := anchor.AddDate(0, 0, -1); count < MaxCurrentStreak && set.active(d); d = d.AddDate(0, 0, -1) {
		count++
	}
	return count
}

// LongestStreak returns the length of the longest run of consecutive active
// days anywhere in records.
func LongestStreak(records []*domain.DailyRecord) int {
	return longestStreak(index(records, nil))
}

func longestStreak(set daySet) int {
	longest, run := 0, 0
	var prev time.Time

	for _, key := range set.sortedDates() {
		rec := set[key]
		day, _ := rec.Day()

		if !rec.HasActivity() {
			run = 0
			continue
		}

		if run > 0 && prev.AddDate(0, 0, 1).Equal(day) {
			run++
		} else {
			run = 1
		}
		prev = day

		if run > longest {
			longest = run
		}
	}
	return longest
}

// Streaks computes both streaks over the same snapshot. Future records are
// ignored, and a live override replaces today's record for both counts so the
// longest streak can never lag behind the current one.
func Streaks(records []*domain.DailyRecord, today time.Time, override *domain.DayOverride) domain.StreakState {
	today = Day(today)
	set := index(records, &today)

	if override != nil {
		key := FormatDate(today)
		rec := domain.DailyRecord{
			Date:           key,
			TotalTasks:     override.TotalTasks,
			CompletedTasks: override.CompletedTasks,
		}
		rec.Normalize()
		set[key] = rec
	}

	return domain.StreakState{
		CurrentStreak: currentStreak(set, today, override),
		LongestStreak: longestStreak(set),
	}
}

package productivity

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
)

type daySet map[string]domain.DailyRecord

// index builds the deduplicated view of records. Malformed records are
// dropped, and so is anything after today when today is given. For a repeated
// date the latest LoggedAt wins; on a tie the later element wins.
func index(records []*domain.DailyRecord, today *time.Time) daySet {
	var limit time.Time
	if today != nil {
		limit = Day(*today)
	}

	set := make(daySet, len(records))
	for _, r := range records {
		if r == nil || r.Validate() != nil {
			continue
		}

		day, _ := r.Day()
		if today != nil && day.After(limit) {
			continue
		}

		key := FormatDate(day)
		if prev, ok := set[key]; ok && r.LoggedAt.Before(prev.LoggedAt) {
			continue
		}

		rec := *r
		rec.Date = key
		rec.Normalize()
		set[key] = rec
	}
	return set
}

func (s daySet) active(day time.Time) bool {
	r, ok := s[FormatDate(day)]
	return ok && r.HasActivity()
}

func (s daySet) sortedDates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Snapshot returns the records the engine would actually use for the given
// today: valid, one per date, not in the future, sorted by date.
func Snapshot(records []*domain.DailyRecord, today time.Time) []domain.DailyRecord {
	set := index(records, &today)

	out := make([]domain.DailyRecord, 0, len(set))
	for _, d := range set.sortedDates() {
		out = append(out, set[d])
	}
	return out
}

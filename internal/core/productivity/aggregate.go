package productivity

import (
	"math"
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
)

type bucket struct {
	start, end time.Time
	total      int
	completed  int
}

// Aggregate folds daily records into daily, weekly (Monday-aligned) or monthly
// periods, oldest first.
//
// A period's completion rate is the rounded mean of the rates of every
// calendar day from the period start up to min(period end, today). Days with
// no record contribute 0 instead of being skipped, so an untouched day lowers
// the average. Periods starting after today are never returned, and the
// period containing today is always returned, empty if need be.
func Aggregate(records []*domain.DailyRecord, g domain.Granularity, today time.Time) []domain.PeriodSummary {
	today = Day(today)
	if _, _, ok := BucketFor(today, g); !ok {
		return nil
	}

	set := index(records, &today)
	buckets := make(map[string]*bucket)
	fill(buckets, set, g)
	bucketOf(buckets, today, g)

	return summarizeAll(buckets, set, g, today, time.Time{}, time.Time{})
}

// AggregateRange is Aggregate restricted to the periods intersecting
// [from, to]. Every such period up to today is returned, including those with
// no records at all, which report a rate of 0.
func AggregateRange(records []*domain.DailyRecord, g domain.Granularity, from, to, today time.Time) []domain.PeriodSummary {
	today = Day(today)
	from, to = Day(from), Day(to)
	if _, _, ok := BucketFor(today, g); !ok {
		return nil
	}
	if from.After(to) || from.After(today) {
		return []domain.PeriodSummary{}
	}

	set := index(records, &today)
	buckets := make(map[string]*bucket)
	fill(buckets, set, g)

	last := minDay(to, today)
	for d := from; !d.After(last); {
		_, end, _ := BucketFor(d, g)
		bucketOf(buckets, d, g)
		d = end.AddDate(0, 0, 1)
	}

	return summarizeAll(buckets, set, g, today, from, to)
}

func bucketOf(buckets map[string]*bucket, day time.Time, g domain.Granularity) *bucket {
	start, end, _ := BucketFor(day, g)
	key := FormatDate(start)
	b, ok := buckets[key]
	if !ok {
		b = &bucket{start: start, end: end}
		buckets[key] = b
	}
	return b
}

func fill(buckets map[string]*bucket, set daySet, g domain.Granularity) {
	for _, rec := range set {
		day, _ := rec.Day()
		b := bucketOf(buckets, day, g)
		b.total += rec.TotalTasks
		b.completed += rec.CompletedTasks
	}
}

// summarizeAll drops periods starting after today and, when from is set,
// periods outside [from, to]. Output is sorted by period start.
func summarizeAll(buckets map[string]*bucket, set daySet, g domain.Granularity, today, from, to time.Time) []domain.PeriodSummary {
	out := make([]domain.PeriodSummary, 0, len(buckets))
	for _, b := range buckets {
		if b.start.After(today) {
			continue
		}
		if !from.IsZero() && (b.end.Before(from) || b.start.After(to)) {
			continue
		}
		out = append(out, summarize(b, set, g, today))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].PeriodStart < out[j].PeriodStart
	})
	return out
}

func summarize(b *bucket, set daySet, g domain.Granularity, today time.Time) domain.PeriodSummary {
	last := minDay(b.end, today)

	sum, days, active := 0, 0, 0
	for d := b.start; !d.After(last); d = d.AddDate(0, 0, 1) {
		if rec, ok := set[FormatDate(d)]; ok {
			sum += rec.CompletionRate
			if rec.HasActivity() {
				active++
			}
		}
		days++
	}

	rate := 0
	if days > 0 {
		rate = int(math.Round(float64(sum) / float64(days)))
	}

	return domain.PeriodSummary{
		Granularity:    g,
		PeriodStart:    FormatDate(b.start),
		PeriodEnd:      FormatDate(b.end),
		TotalTasks:     b.total,
		CompletedTasks: b.completed,
		CompletionRate: rate,
		Status:         domain.StatusForRate(rate),
		DaysCounted:    days,
		ActiveDays:     active,
	}
}

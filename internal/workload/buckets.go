package workload

import (
	"time"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// Bucket is a calendar-aligned reporting interval. End is inclusive.
type Bucket struct {
	Start    time.Time
	End      time.Time
	DayCount int
}

// BuildBuckets partitions [start, end] into contiguous calendar-aligned
// buckets of the given unit. Both ends are aligned down to their unit
// boundary (Monday, the 1st, the first day of the quarter), so the result
// covers the whole of the first and last unit. An empty range or an unknown
// unit yields no buckets.
func BuildBuckets(start, end time.Time, unit domain.GroupUnit) []Bucket {
	if !domain.ValidGroupUnits[string(unit)] {
		return nil
	}
	start, end = domain.Day(start), domain.Day(end)
	if start.After(end) {
		return nil
	}
	return build(alignDown(start, unit), alignDown(end, unit), unit)
}

// BuildRollingBuckets is BuildBuckets without alignment: buckets start at
// start itself and repeat every unit until end is covered. Month and quarter
// steps keep start's day of month, clamped to shorter months.
func BuildRollingBuckets(start, end time.Time, unit domain.GroupUnit) []Bucket {
	if !domain.ValidGroupUnits[string(unit)] {
		return nil
	}
	start, end = domain.Day(start), domain.Day(end)
	if start.After(end) {
		return nil
	}
	return build(start, end, unit)
}

func build(first, last time.Time, unit domain.GroupUnit) []Bucket {
	var out []Bucket
	for k := 0; ; k++ {
		cursor := advance(first, unit, k)
		if cursor.After(last) {
			return out
		}
		bucketEnd := advance(first, unit, k+1).AddDate(0, 0, -1)
		out = append(out, Bucket{
			Start:    cursor,
			End:      bucketEnd,
			DayCount: domain.DaysInclusive(cursor, bucketEnd),
		})
	}
}

// BucketIndex returns the index of the bucket containing day, or -1.
func BucketIndex(buckets []Bucket, day time.Time) int {
	day = domain.Day(day)
	for i, b := range buckets {
		if !day.Before(b.Start) && !day.After(b.End) {
			return i
		}
	}
	return -1
}

func alignDown(t time.Time, unit domain.GroupUnit) time.Time {
	y, m, _ := t.Date()
	switch unit {
	case domain.GroupWeek:
		offset := (int(t.Weekday()) + 6) % 7
		return t.AddDate(0, 0, -offset)
	case domain.GroupMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	default:
		first := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, first, 1, 0, 0, 0, 0, time.UTC)
	}
}

// advance returns the start of the k-th unit after t. Steps are always
// taken from t so that clamped month ends do not drift.
func advance(t time.Time, unit domain.GroupUnit, k int) time.Time {
	switch unit {
	case domain.GroupWeek:
		return t.AddDate(0, 0, 7*k)
	case domain.GroupMonth:
		return addMonths(t, k)
	default:
		return addMonths(t, 3*k)
	}
}

// addMonths moves t forward n calendar months, clamping the day to the end
// of the target month (Jan 31 + 1 month = Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(target); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

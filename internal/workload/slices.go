package workload

import (
	"time"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// Slice is a resolved capacity requirement over an inclusive date range.
// Capacity is a weekly rate in percent of one person.
type Slice struct {
	TaskID   string
	Start    time.Time
	End      time.Time
	Capacity float64
}

// Days returns the inclusive length of the slice in calendar days.
func (s Slice) Days() int {
	return domain.DaysInclusive(s.Start, s.End)
}

// ResolveSlices expands a canonical task into its load slices. Variable tasks
// yield their segments, scheduled fixed tasks one slice over the whole span,
// and unscheduled tasks nothing.
func ResolveSlices(task domain.Task) []Slice {
	if task.CapacityMode == domain.CapacityVariable && len(task.CapacitySegments) > 0 {
		out := make([]Slice, 0, len(task.CapacitySegments))
		for _, seg := range task.CapacitySegments {
			out = append(out, Slice{
				TaskID:   task.ID,
				Start:    seg.StartDate,
				End:      seg.EndDate,
				Capacity: seg.Capacity,
			})
		}
		return out
	}
	if !task.HasDates() {
		return nil
	}
	return []Slice{{
		TaskID:   task.ID,
		Start:    *task.StartDate,
		End:      *task.EndDate,
		Capacity: domain.Float64FromPtrWithDefault(0, task.RequiredCapacity),
	}}
}

// DateRange returns the earliest start and latest end over every scheduled
// task in the given plans. ok is false when no task has dates.
func DateRange(plans ...domain.Plan) (start, end time.Time, ok bool) {
	for _, p := range plans {
		for _, t := range p.Tasks {
			if !t.HasDates() {
				continue
			}
			if !ok || t.StartDate.Before(start) {
				start = *t.StartDate
			}
			if !ok || t.EndDate.After(end) {
				end = *t.EndDate
			}
			ok = true
		}
	}
	return start, end, ok
}

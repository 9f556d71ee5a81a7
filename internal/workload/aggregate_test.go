package workload

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskOpt func(*domain.Task)

func withDates(start, end string) taskOpt {
	return func(t *domain.Task) {
		t.StartDate = domain.DatePtr(day(start))
		t.EndDate = domain.DatePtr(day(end))
	}
}

func withCapacity(c float64) taskOpt {
	return func(t *domain.Task) { t.RequiredCapacity = domain.FloatPtr(c) }
}

func withOwner(name string) taskOpt {
	return func(t *domain.Task) { t.Responsible = name }
}

func withSegments(segs ...domain.CapacitySegment) taskOpt {
	return func(t *domain.Task) {
		t.CapacityMode = domain.CapacityVariable
		t.CapacitySegments = segs
	}
}

func newTask(id string, opts ...taskOpt) domain.Task {
	t := domain.Task{ID: id, CapacityMode: domain.CapacityFixed, MilestoneType: domain.MilestoneTask}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func TestResolveSlices(t *testing.T) {
	fixed := newTask("a", withDates("2025-01-01", "2025-01-14"), withCapacity(50))
	slices := ResolveSlices(fixed)
	require.Len(t, slices, 1)
	assert.Equal(t, Slice{TaskID: "a", Start: day("2025-01-01"), End: day("2025-01-14"), Capacity: 50}, slices[0])
	assert.Equal(t, 14, slices[0].Days())

	noCapacity := newTask("b", withDates("2025-01-01", "2025-01-02"))
	require.Len(t, ResolveSlices(noCapacity), 1)
	assert.Equal(t, 0.0, ResolveSlices(noCapacity)[0].Capacity)

	assert.Empty(t, ResolveSlices(newTask("c", withCapacity(80))))

	variable := newTask("d", withDates("2025-01-01", "2025-01-31"), withCapacity(99), withSegments(
		domain.CapacitySegment{ID: "s1", StartDate: day("2025-01-01"), EndDate: day("2025-01-10"), Capacity: 20},
		domain.CapacitySegment{ID: "s2", StartDate: day("2025-01-11"), EndDate: day("2025-01-31"), Capacity: 60},
	))
	slices = ResolveSlices(variable)
	require.Len(t, slices, 2)
	assert.Equal(t, 20.0, slices[0].Capacity)
	assert.Equal(t, day("2025-01-11"), slices[1].Start)
}

func TestDistribute(t *testing.T) {
	s := Slice{Start: day("2025-01-06"), End: day("2025-01-08"), Capacity: 70}
	week := Bucket{Start: day("2025-01-06"), End: day("2025-01-12"), DayCount: 7}
	nextWeek := Bucket{Start: day("2025-01-13"), End: day("2025-01-19"), DayCount: 7}

	assert.Equal(t, 3, OverlapDays(s, week))
	assert.InDelta(t, 30.0, Distribute(s, week), 1e-9)
	assert.Equal(t, 0, OverlapDays(s, nextWeek))
	assert.Equal(t, 0.0, Distribute(s, nextWeek))
}

func TestDistribute_MonthBucketUsesWeeklyRate(t *testing.T) {
	s := Slice{Start: day("2025-01-01"), End: day("2025-01-31"), Capacity: 70}
	month := BuildBuckets(day("2025-01-01"), day("2025-01-31"), domain.GroupMonth)

	require.Len(t, month, 1)
	assert.InDelta(t, 70.0*31/7, Distribute(s, month[0]), 1e-9)
}

func TestDistribute_Invariants_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	units := []domain.GroupUnit{domain.GroupWeek, domain.GroupMonth, domain.GroupQuarter}
	origin := day("2024-06-01")

	for trial := 0; trial < 300; trial++ {
		start := origin.AddDate(0, 0, rng.Intn(365))
		s := Slice{
			Start:    start,
			End:      start.AddDate(0, 0, rng.Intn(200)),
			Capacity: float64(rng.Intn(120)),
		}
		pad := rng.Intn(30)
		buckets := BuildBuckets(s.Start.AddDate(0, 0, -pad), s.End.AddDate(0, 0, pad), units[rng.Intn(len(units))])

		var total float64
		for _, b := range buckets {
			total += Distribute(s, b)
		}
		want := s.Capacity * float64(s.Days()) / DaysPerWeek
		assert.InDelta(t, want, total, 1e-6, "trial %d", trial)
	}
}

func TestAggregateLoad_EndToEndTwoWeeks(t *testing.T) {
	plan := domain.Plan{Tasks: []domain.Task{
		newTask("a", withDates("2025-01-01", "2025-01-14"), withCapacity(50), withOwner("Alex")),
	}}
	buckets := BuildRollingBuckets(day("2025-01-01"), day("2025-01-14"), domain.GroupWeek)
	require.Len(t, buckets, 2)

	load := AggregateLoad("Alex", plan, nil, buckets)

	assert.InDelta(t, 50.0, load.Own[0], 1e-9)
	assert.InDelta(t, 50.0, load.Own[1], 1e-9)
	assert.Equal(t, []float64{0, 0}, load.Other)
}

func TestAggregateLoad_Overallocation(t *testing.T) {
	week := BuildBuckets(day("2025-01-06"), day("2025-01-12"), domain.GroupWeek)
	require.Len(t, week, 1)

	active := domain.Plan{Tasks: []domain.Task{
		newTask("a", withDates("2025-01-06", "2025-01-12"), withCapacity(70), withOwner("Alex")),
	}}
	other := domain.Plan{Tasks: []domain.Task{
		newTask("b", withDates("2025-01-06", "2025-01-12"), withCapacity(70), withOwner("  alex ")),
	}}

	load := AggregateLoad("ALEX", active, []domain.Plan{other}, week)

	assert.InDelta(t, 70.0, load.Own[0], 1e-9)
	assert.InDelta(t, 70.0, load.Other[0], 1e-9)
	assert.InDelta(t, 140.0, load.Total(0), 1e-9)
	assert.True(t, load.Overloaded(0, 100))
	assert.False(t, load.Overloaded(0, 150))
	assert.InDelta(t, 140.0, load.Peak(), 1e-9)
}

func TestAggregateLoad_UnknownOwnerIsZero(t *testing.T) {
	buckets := BuildBuckets(day("2025-01-06"), day("2025-01-19"), domain.GroupWeek)
	plan := domain.Plan{Tasks: []domain.Task{
		newTask("a", withDates("2025-01-06", "2025-01-12"), withCapacity(70), withOwner("Alex")),
		newTask("b", withDates("2025-01-06", "2025-01-12"), withCapacity(70)),
	}}

	assert.Equal(t, []float64{0, 0}, AggregateLoad("Nobody", plan, nil, buckets).Own)
	assert.Equal(t, []float64{0, 0}, AggregateLoad("", plan, nil, buckets).Own)
}

func TestOwnerKey(t *testing.T) {
	assert.Equal(t, OwnerKey("Alex"), OwnerKey("  ALEX\t"))
	assert.Equal(t, OwnerKey("Élodie"), OwnerKey("ÉLODIE"))
	assert.NotEqual(t, OwnerKey("Alex"), OwnerKey("Alexa"))
	assert.Equal(t, "", OwnerKey("   "))
}

func TestHeatmap_RowsSortedByPeakThenName(t *testing.T) {
	buckets := BuildBuckets(day("2025-01-06"), day("2025-01-19"), domain.GroupWeek)
	plans := []domain.Plan{
		{Tasks: []domain.Task{
			newTask("a", withDates("2025-01-06", "2025-01-12"), withCapacity(40), withOwner("Bea")),
			newTask("b", withDates("2025-01-13", "2025-01-19"), withCapacity(80), withOwner("Alex")),
			newTask("c", withDates("2025-01-06", "2025-01-12"), withCapacity(10)),
		}},
		{Tasks: []domain.Task{
			newTask("a", withDates("2025-01-06", "2025-01-12"), withCapacity(40), withOwner("bea")),
			newTask("d", withDates("2025-01-06", "2025-01-19"), withCapacity(30), withOwner("Cy")),
			newTask("e", withDates("2025-01-06", "2025-01-12"), withCapacity(80), withOwner("Abe")),
		}},
	}

	rows := Heatmap(plans, buckets)

	require.Len(t, rows, 4)
	assert.Equal(t, "Abe", rows[0].Owner)
	assert.Equal(t, "Alex", rows[1].Owner)
	assert.Equal(t, "Bea", rows[2].Owner)
	assert.Equal(t, "Cy", rows[3].Owner)
	assert.InDelta(t, 80.0, rows[2].Load[0], 1e-9)
	assert.InDelta(t, 0.0, rows[2].Load[1], 1e-9)
	assert.InDelta(t, 80.0, rows[2].Peak, 1e-9)
}

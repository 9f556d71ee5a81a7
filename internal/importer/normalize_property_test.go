package importer

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomDocument builds a messy plan document: missing and duplicate ids,
// wrong types, reversed dates, overlapping segments and dangling references.
func randomDocument(rng *rand.Rand) []byte {
	numTasks := rng.Intn(12)
	ids := []string{"", "a", "b", "c", "task-1", "task-2", " a ", "x"}
	dates := []any{nil, "2025-01-01", "2025-01-15", "2025-02-01", "2025-02-28", "2025-03-31", "bogus", 20250101}
	modes := []any{nil, "fixed", "variable", "weird", 3}
	milestones := []any{nil, "task", "milestone", "decision", "value_step", "value_step", "gate"}

	pick := func(vals []any) any { return vals[rng.Intn(len(vals))] }

	tasks := make([]any, 0, numTasks)
	for i := 0; i < numTasks; i++ {
		task := map[string]any{}
		if id := ids[rng.Intn(len(ids))]; id != "" {
			task["id"] = id
		}
		task["name"] = fmt.Sprintf("Task %d", i)
		if d := pick(dates); d != nil {
			task["startDate"] = d
		}
		if d := pick(dates); d != nil {
			task["endDate"] = d
		}
		task["progress"] = rng.Intn(260) - 80
		task["indent"] = rng.Intn(14) - 3
		if m := pick(modes); m != nil {
			task["capacityMode"] = m
		}
		if m := pick(milestones); m != nil {
			task["milestoneType"] = m
		}
		if rng.Intn(3) > 0 {
			task["requiredCapacity"] = float64(rng.Intn(200) - 40)
		}
		task["responsible"] = []any{"Ada", " ada ", "Grace", "", 5}[rng.Intn(5)]

		var deps []any
		for j := rng.Intn(4); j > 0; j-- {
			deps = append(deps, ids[rng.Intn(len(ids))])
		}
		task["dependencies"] = deps

		var segs []any
		for j := rng.Intn(4); j > 0; j-- {
			seg := map[string]any{
				"startDate": pick(dates),
				"endDate":   pick(dates),
				"capacity":  float64(rng.Intn(60) - 10),
			}
			if rng.Intn(2) == 0 {
				seg["id"] = []string{"s1", "s2", "s1"}[rng.Intn(3)]
			}
			segs = append(segs, seg)
		}
		task["capacitySegments"] = segs

		if rng.Intn(3) == 0 {
			task["baseline"] = map[string]any{
				"name":          "Base",
				"startDate":     pick(dates),
				"milestoneType": pick(milestones),
			}
		}
		tasks = append(tasks, task)
	}

	doc := map[string]any{"tasks": tasks}
	if rng.Intn(2) == 0 {
		doc["settings"] = map[string]any{"zoom": rng.Intn(4)}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return out
}

func TestNormalize_Invariants_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 300; trial++ {
		raw := randomDocument(rng)

		first := NormalizePlan(raw)
		second := Canonicalize(first)
		assert.Equal(t, first, second, "trial %d: canonicalize must be a no-op on a normalized plan\n%s", trial, raw)

		data, err := Marshal(first)
		require.NoError(t, err)
		assert.Equal(t, first, NormalizePlan(data), "trial %d: export/import must round-trip", trial)
	}
}

func TestNormalize_Invariants_Hold(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 300; trial++ {
		plan := NormalizePlan(randomDocument(rng))

		ids := map[string]bool{}
		valueSteps := 0
		for i, task := range plan.Tasks {
			assert.NotEmpty(t, task.ID, "trial %d task %d", trial, i)
			assert.False(t, ids[task.ID], "trial %d: duplicate id %q", trial, task.ID)
			ids[task.ID] = true

			assert.GreaterOrEqual(t, task.Progress, 0)
			assert.LessOrEqual(t, task.Progress, 100)
			assert.GreaterOrEqual(t, task.Indent, 0)
			assert.LessOrEqual(t, task.Indent, DefaultMaxIndent)
			assert.Equal(t, task.StartDate == nil, task.EndDate == nil, "trial %d task %d: dates come in pairs", trial, i)
			if task.HasDates() {
				assert.False(t, task.EndDate.Before(*task.StartDate))
			}
			if task.RequiredCapacity != nil {
				assert.GreaterOrEqual(t, *task.RequiredCapacity, 0.0)
			}
			if task.CapacityMode == domain.CapacityVariable {
				assert.NotEmpty(t, task.CapacitySegments)
			}
			if task.MilestoneType == domain.MilestoneValueStep {
				valueSteps++
			}
			for j, seg := range task.CapacitySegments {
				assert.False(t, seg.StartDate.Before(*task.StartDate))
				assert.False(t, seg.EndDate.After(*task.EndDate))
				if j > 0 {
					assert.True(t, seg.StartDate.After(task.CapacitySegments[j-1].EndDate))
				}
			}
		}
		assert.LessOrEqual(t, valueSteps, 1, "trial %d", trial)

		for _, task := range plan.Tasks {
			for _, dep := range task.Dependencies {
				assert.NotEqual(t, task.ID, dep)
				assert.True(t, ids[dep], "trial %d: dangling dependency %q", trial, dep)
			}
		}
	}
}

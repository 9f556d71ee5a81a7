// Package baseline compares actuals tasks against their frozen plan
// snapshots.
package baseline

import (
	"github.com/google/uuid"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// Field names a baseline-tracked task field.
type Field string

const (
	FieldName             Field = "name"
	FieldDescription      Field = "description"
	FieldStartDate        Field = "startDate"
	FieldEndDate          Field = "endDate"
	FieldResponsible      Field = "responsible"
	FieldMilestoneType    Field = "milestoneType"
	FieldRequiredCapacity Field = "requiredCapacity"
)

// Fields lists every tracked field in display order.
var Fields = []Field{
	FieldName, FieldDescription, FieldStartDate, FieldEndDate,
	FieldResponsible, FieldMilestoneType, FieldRequiredCapacity,
}

// FieldSet is the set of fields that differ from the baseline.
type FieldSet map[Field]bool

// Has reports whether f changed.
func (s FieldSet) Has(f Field) bool { return s[f] }

// List returns the changed fields in display order.
func (s FieldSet) List() []Field {
	var out []Field
	for _, f := range Fields {
		if s[f] {
			out = append(out, f)
		}
	}
	return out
}

// Resolve returns the baseline for an actuals task: its attached snapshot if
// any, else a snapshot of the task in baselinePlan whose ID matches the
// task's SourceTaskID. It returns nil when neither exists.
func Resolve(task domain.Task, baselinePlan *domain.Plan) *domain.Baseline {
	if task.Baseline != nil {
		b := task.Baseline.Clone()
		return &b
	}
	if baselinePlan == nil || task.SourceTaskID == "" {
		return nil
	}
	src, ok := baselinePlan.TaskByID(task.SourceTaskID)
	if !ok {
		return nil
	}
	b := src.Snapshot()
	return &b
}

// DiffFields returns the fields where task differs from b. Comparison is
// strict: dates compare as YYYY-MM-DD strings, capacity as nullable numbers.
func DiffFields(task domain.Task, b domain.Baseline) FieldSet {
	out := FieldSet{}
	if task.Name != b.Name {
		out[FieldName] = true
	}
	if task.Description != b.Description {
		out[FieldDescription] = true
	}
	if domain.FormatDate(task.StartDate) != domain.FormatDate(b.StartDate) {
		out[FieldStartDate] = true
	}
	if domain.FormatDate(task.EndDate) != domain.FormatDate(b.EndDate) {
		out[FieldEndDate] = true
	}
	if task.Responsible != b.Responsible {
		out[FieldResponsible] = true
	}
	if milestone(task.MilestoneType) != milestone(b.MilestoneType) {
		out[FieldMilestoneType] = true
	}
	if !sameCapacity(task.RequiredCapacity, b.RequiredCapacity) {
		out[FieldRequiredCapacity] = true
	}
	return out
}

// Variance is the comparison of one actuals task with its baseline.
type Variance struct {
	TaskID     string
	Baseline   *domain.Baseline
	NewlyAdded bool
	Changed    FieldSet
}

// Compare resolves the task's baseline and diffs against it. A task with no
// baseline, or an empty one, is reported as newly added.
func Compare(task domain.Task, baselinePlan *domain.Plan) Variance {
	v := Variance{TaskID: task.ID, Baseline: Resolve(task, baselinePlan)}
	if v.Baseline == nil || v.Baseline.IsEmpty() {
		v.NewlyAdded = true
		v.Changed = FieldSet{}
		return v
	}
	v.Changed = DiffFields(task, *v.Baseline)
	return v
}

// CompareAll compares every task of actuals, in sequence order.
func CompareAll(actuals domain.Plan, baselinePlan *domain.Plan) []Variance {
	out := make([]Variance, 0, len(actuals.Tasks))
	for _, t := range actuals.Tasks {
		out = append(out, Compare(t, baselinePlan))
	}
	return out
}

// Summary counts changed fields over a set of variances.
type Summary struct {
	Tasks      int
	NewlyAdded int
	Unchanged  int
	ByField    map[Field]int
}

// Summarize aggregates variances into per-field change counts.
func Summarize(vs []Variance) Summary {
	s := Summary{Tasks: len(vs), ByField: map[Field]int{}}
	for _, v := range vs {
		switch {
		case v.NewlyAdded:
			s.NewlyAdded++
		case len(v.Changed) == 0:
			s.Unchanged++
		}
		for f := range v.Changed {
			s.ByField[f]++
		}
	}
	return s
}

// Reseed builds a fresh actuals set from plan: every task is copied with a
// new ID, linked back through SourceTaskID and given a frozen snapshot of its
// current fields. Dependencies are rewritten to the new IDs. newID may be nil,
// in which case random UUIDs are used.
func Reseed(plan domain.Plan, newID func() string) domain.Plan {
	if newID == nil {
		newID = uuid.NewString
	}
	out := plan.Clone()
	ids := make(map[string]string, len(out.Tasks))
	for i := range out.Tasks {
		t := &out.Tasks[i]
		fresh := newID()
		if _, seen := ids[t.ID]; !seen {
			ids[t.ID] = fresh
		}
		snap := t.Snapshot()
		t.SourceTaskID = t.ID
		t.ID = fresh
		t.Baseline = &snap
	}
	for i := range out.Tasks {
		deps := out.Tasks[i].Dependencies
		for j, d := range deps {
			if mapped, ok := ids[d]; ok {
				deps[j] = mapped
			}
		}
	}
	return out
}

func milestone(m domain.MilestoneType) domain.MilestoneType {
	if m == "" {
		return domain.DefaultMilestoneType
	}
	return m
}

func sameCapacity(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

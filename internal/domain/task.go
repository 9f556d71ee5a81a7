package domain

import "time"

// CapacitySegment is one time-bounded capacity level of a variable-capacity task.
type CapacitySegment struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Capacity  float64
}

// Task is the unit of work in a plan. The task tree is encoded by Indent over
// the flat ordered sequence held in Plan.Tasks.
type Task struct {
	ID          string
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Responsible string
	Progress    int

	CapacityMode     CapacityMode
	RequiredCapacity *float64
	CapacitySegments []CapacitySegment

	Indent       int
	Dependencies []string

	MilestoneType MilestoneType
	Color         string
	Archived      bool

	// Actuals tracking
	Baseline     *Baseline
	SourceTaskID string
}

// HasDates reports whether the task is scheduled.
func (t *Task) HasDates() bool {
	return t.StartDate != nil && t.EndDate != nil
}

// Snapshot freezes the baseline-tracked fields of the task.
func (t *Task) Snapshot() Baseline {
	return Baseline{
		Name:             t.Name,
		Description:      t.Description,
		StartDate:        cloneTime(t.StartDate),
		EndDate:          cloneTime(t.EndDate),
		Responsible:      t.Responsible,
		MilestoneType:    t.MilestoneType,
		RequiredCapacity: cloneFloat(t.RequiredCapacity),
	}
}

// Clone returns a deep copy so callers can derive new snapshots without
// aliasing the original's slices and pointers.
func (t Task) Clone() Task {
	out := t
	out.StartDate = cloneTime(t.StartDate)
	out.EndDate = cloneTime(t.EndDate)
	out.RequiredCapacity = cloneFloat(t.RequiredCapacity)
	if t.CapacitySegments != nil {
		out.CapacitySegments = append([]CapacitySegment(nil), t.CapacitySegments...)
	}
	if t.Dependencies != nil {
		out.Dependencies = append([]string(nil), t.Dependencies...)
	}
	if t.Baseline != nil {
		b := t.Baseline.Clone()
		out.Baseline = &b
	}
	return out
}

// Baseline is the frozen snapshot of a task's planned fields.
type Baseline struct {
	Name             string
	Description      string
	StartDate        *time.Time
	EndDate          *time.Time
	Responsible      string
	MilestoneType    MilestoneType
	RequiredCapacity *float64
}

// IsEmpty reports whether the snapshot carries no real planned values yet.
func (b *Baseline) IsEmpty() bool {
	return b.Name == "" &&
		b.Description == "" &&
		b.StartDate == nil &&
		b.EndDate == nil &&
		b.Responsible == "" &&
		b.RequiredCapacity == nil &&
		(b.MilestoneType == "" || b.MilestoneType == DefaultMilestoneType)
}

func (b Baseline) Clone() Baseline {
	out := b
	out.StartDate = cloneTime(b.StartDate)
	out.EndDate = cloneTime(b.EndDate)
	out.RequiredCapacity = cloneFloat(b.RequiredCapacity)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

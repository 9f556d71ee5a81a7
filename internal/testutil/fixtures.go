package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Initiative options
type InitiativeOption func(*domain.Initiative)

func WithShortID(id string) InitiativeOption {
	return func(i *domain.Initiative) {
		i.ShortID = id
	}
}

func WithStage(stage string) InitiativeOption {
	return func(i *domain.Initiative) {
		i.Stage = stage
	}
}

func WithInitiativeStatus(s domain.InitiativeStatus) InitiativeOption {
	return func(i *domain.Initiative) {
		i.Status = s
	}
}

func WithCreatedAt(t time.Time) InitiativeOption {
	return func(i *domain.Initiative) {
		i.CreatedAt = t
		i.UpdatedAt = t
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1) % 10000
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestInitiative(name string, opts ...InitiativeOption) *domain.Initiative {
	now := time.Now().UTC().Truncate(time.Second)
	i := &domain.Initiative{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Status:    domain.InitiativeActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Task options
type TaskOption func(*domain.Task)

// Date parses a YYYY-MM-DD literal and panics on malformed input.
func Date(s string) time.Time {
	t, ok := domain.ParseDate(s)
	if !ok {
		panic(fmt.Sprintf("testutil: bad date %q", s))
	}
	return t
}

func WithDates(start, end string) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = domain.DatePtr(Date(start))
		t.EndDate = domain.DatePtr(Date(end))
	}
}

func WithCapacity(c float64) TaskOption {
	return func(t *domain.Task) {
		t.RequiredCapacity = domain.FloatPtr(c)
	}
}

func WithOwner(name string) TaskOption {
	return func(t *domain.Task) {
		t.Responsible = name
	}
}

func WithIndent(n int) TaskOption {
	return func(t *domain.Task) {
		t.Indent = n
	}
}

func WithProgress(p int) TaskOption {
	return func(t *domain.Task) {
		t.Progress = p
	}
}

func WithDependencies(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.Dependencies = ids
	}
}

func WithMilestone(m domain.MilestoneType) TaskOption {
	return func(t *domain.Task) {
		t.MilestoneType = m
	}
}

// WithSegment appends a capacity segment and switches the task to variable mode.
func WithSegment(start, end string, capacity float64) TaskOption {
	return func(t *domain.Task) {
		t.CapacityMode = domain.CapacityVariable
		t.CapacitySegments = append(t.CapacitySegments, domain.CapacitySegment{
			ID:        fmt.Sprintf("%s-seg-%d", t.ID, len(t.CapacitySegments)+1),
			StartDate: Date(start),
			EndDate:   Date(end),
			Capacity:  capacity,
		})
	}
}

func NewTestTask(id, name string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:            id,
		Name:          name,
		CapacityMode:  domain.CapacityFixed,
		MilestoneType: domain.DefaultMilestoneType,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func NewTestPlan(tasks ...domain.Task) domain.Plan {
	return domain.Plan{Tasks: tasks}
}

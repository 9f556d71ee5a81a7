package app

import (
	"time"

	"github.com/alexanderramin/portfolio/internal/baseline"
	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/workload"
)

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	InitiativeID string
	Variant      domain.PlanVariant
	TaskCount    int
	Repairs      []string
}

type TimelineRequest struct {
	InitiativeID string
	Variant      domain.PlanVariant
}

// TimelineRow is one task of the Gantt table with its derived values.
type TimelineRow struct {
	Task         domain.Task
	Depth        int
	Progress     int
	AutoProgress bool
	Slices       []workload.Slice
	InCycle      bool
	// Variance is set for actuals rows only.
	Variance *baseline.Variance
}

type TimelineResponse struct {
	InitiativeID string
	Variant      domain.PlanVariant
	Rows         []TimelineRow
	Cycles       [][]string
	Start        *time.Time
	End          *time.Time
}

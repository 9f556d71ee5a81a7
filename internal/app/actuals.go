package app

import "github.com/alexanderramin/portfolio/internal/baseline"

type ReseedResult struct {
	InitiativeID string
	TaskCount    int
	// Replaced is true when an earlier actuals set was overwritten.
	Replaced bool
}

type VarianceRow struct {
	TaskID     string
	Name       string
	NewlyAdded bool
	Changed    []baseline.Field
}

type VarianceResponse struct {
	InitiativeID string
	Rows         []VarianceRow
	Summary      baseline.Summary
}

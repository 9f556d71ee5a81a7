package plantree

import (
	"math"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// Rollup is the effective progress of a task. IsAuto marks values derived
// from children; those are read-only for callers.
type Rollup struct {
	Value  int
	IsAuto bool
}

// Rollup computes effective progress for every task, indexed by position.
// Leaves report their own clamped progress and parents the rounded mean of
// their direct children. Children always follow their parent, so a single
// reverse pass sees every child before its parent.
func (t *Tree) Rollup(tasks []domain.Task) []Rollup {
	out := make([]Rollup, len(tasks))
	for i := len(tasks) - 1; i >= 0; i-- {
		children := t.Children[i]
		if len(children) == 0 {
			out[i] = Rollup{Value: clampProgress(tasks[i].Progress)}
			continue
		}
		sum := 0
		for _, c := range children {
			sum += out[c].Value
		}
		out[i] = Rollup{
			Value:  int(math.Round(float64(sum) / float64(len(children)))),
			IsAuto: true,
		}
	}
	return out
}

// RollupProgress returns effective progress keyed by task ID. If an ID
// repeats, the first task with it wins.
func RollupProgress(tasks []domain.Task) map[string]Rollup {
	rolled := Build(tasks).Rollup(tasks)
	out := make(map[string]Rollup, len(tasks))
	for i, task := range tasks {
		if _, seen := out[task.ID]; !seen {
			out[task.ID] = rolled[i]
		}
	}
	return out
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

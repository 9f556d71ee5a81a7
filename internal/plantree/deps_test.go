package plantree

import (
	"testing"

	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyCycles_None(t *testing.T) {
	tasks := []domain.Task{
		task("a", 0, 0),
		task("b", 0, 0, "a"),
		task("c", 0, 0, "a", "b"),
	}

	assert.Empty(t, DependencyCycles(tasks))
	assert.Empty(t, CyclicTasks(tasks))
}

func TestDependencyCycles_ReportsCycle(t *testing.T) {
	tasks := []domain.Task{
		task("a", 0, 0, "c"),
		task("b", 0, 0, "a"),
		task("c", 0, 0, "b"),
		task("d", 0, 0, "c"),
	}

	cycles := DependencyCycles(tasks)

	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a", "b", "c"}, cycles[0])
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, CyclicTasks(tasks))
}

func TestDependencyCycles_TwoNodeAndIgnoresDangling(t *testing.T) {
	tasks := []domain.Task{
		task("a", 0, 0, "b", "ghost", "a"),
		task("b", 0, 0, "a"),
	}

	cycles := DependencyCycles(tasks)

	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, cycles[0])
}

func TestDependencyCycles_ClosedThroughVisitedTask(t *testing.T) {
	// a->b, b->a, a->c, c->b: c sits on a->c->b->a.
	tasks := []domain.Task{
		task("a", 0, 0, "b"),
		task("b", 0, 0, "a", "c"),
		task("c", 0, 0, "a"),
	}

	cycles := DependencyCycles(tasks)

	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a", "b", "c"}, cycles[0])
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, CyclicTasks(tasks))
}

func TestDependencyCycles_SeparateGroups(t *testing.T) {
	tasks := []domain.Task{
		task("x", 0, 0, "y"),
		task("a", 0, 0, "b"),
		task("b", 0, 0, "a"),
		task("y", 0, 0, "x"),
		task("z", 0, 0, "a"),
	}

	cycles := DependencyCycles(tasks)

	require.Len(t, cycles, 2)
	assert.Equal(t, []string{"x", "y"}, cycles[0])
	assert.Equal(t, []string{"a", "b"}, cycles[1])
	assert.False(t, CyclicTasks(tasks)["z"])
}

// Package plantree derives structure from the flat, indent-encoded task
// sequence of a plan: the explicit parent/child tree, progress rollup and
// dependency cycles.
package plantree

import "github.com/alexanderramin/portfolio/internal/domain"

// Tree is an explicit index over a task sequence. All slices are indexed by
// task position; Parent is -1 for roots.
type Tree struct {
	Parent   []int
	Children [][]int
	Depth    []int
}

// Build derives the tree from task indents. A task's parent is the nearest
// preceding task with a smaller indent, so a task's descendants are exactly
// the contiguous run of following tasks with a greater indent.
func Build(tasks []domain.Task) *Tree {
	n := len(tasks)
	t := &Tree{
		Parent:   make([]int, n),
		Children: make([][]int, n),
		Depth:    make([]int, n),
	}
	var stack []int
	for i, task := range tasks {
		for len(stack) > 0 && tasks[stack[len(stack)-1]].Indent >= task.Indent {
			stack = stack[:len(stack)-1]
		}
		t.Parent[i] = -1
		if len(stack) > 0 {
			p := stack[len(stack)-1]
			t.Parent[i] = p
			t.Children[p] = append(t.Children[p], i)
			t.Depth[i] = t.Depth[p] + 1
		}
		stack = append(stack, i)
	}
	return t
}

// Len returns the number of tasks indexed.
func (t *Tree) Len() int { return len(t.Parent) }

// IsLeaf reports whether task i has no children.
func (t *Tree) IsLeaf(i int) bool { return len(t.Children[i]) == 0 }

// Roots returns the indices of top-level tasks in sequence order.
func (t *Tree) Roots() []int {
	var roots []int
	for i, p := range t.Parent {
		if p < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// Descendants returns every index below task i, in sequence order.
func (t *Tree) Descendants(i int) []int {
	var out []int
	var walk func(int)
	walk = func(n int) {
		for _, c := range t.Children[n] {
			out = append(out, c)
			walk(c)
		}
	}
	walk(i)
	return out
}

package plantree

import (
	"sort"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// DependencyCycles reports the dependency cycles in tasks. Cycles are valid
// plan data; callers that walk dependency chains use this to skip them. Each
// entry is one strongly connected group of two or more tasks, listed in plan
// order, and entries are ordered by their first task. Unknown and self
// references are ignored.
func DependencyCycles(tasks []domain.Task) [][]string {
	pos := make(map[string]int, len(tasks))
	var order []string
	for _, t := range tasks {
		if _, ok := pos[t.ID]; !ok {
			pos[t.ID] = len(order)
			order = append(order, t.ID)
		}
	}

	// predecessor -> successors
	graph := make(map[string][]string)
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if _, ok := pos[dep]; ok && dep != t.ID {
				graph[dep] = append(graph[dep], t.ID)
			}
		}
	}

	// Tarjan's strongly connected components.
	index := make(map[string]int, len(order))
	low := make(map[string]int, len(order))
	onStack := make(map[string]bool, len(order))
	var stack []string
	var groups [][]string
	next := 0

	var visit func(node string)
	visit = func(node string) {
		index[node] = next
		low[node] = next
		next++
		stack = append(stack, node)
		onStack[node] = true

		for _, succ := range graph[node] {
			if _, seen := index[succ]; !seen {
				visit(succ)
				low[node] = min(low[node], low[succ])
			} else if onStack[succ] {
				low[node] = min(low[node], index[succ])
			}
		}

		if low[node] != index[node] {
			return
		}
		var group []string
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			group = append(group, top)
			if top == node {
				break
			}
		}
		if len(group) > 1 {
			sort.Slice(group, func(i, j int) bool { return pos[group[i]] < pos[group[j]] })
			groups = append(groups, group)
		}
	}

	for _, id := range order {
		if _, seen := index[id]; !seen {
			visit(id)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return pos[groups[i][0]] < pos[groups[j][0]] })
	return groups
}

// CyclicTasks returns the set of task IDs that sit on at least one cycle.
func CyclicTasks(tasks []domain.Task) map[string]bool {
	out := map[string]bool{}
	for _, c := range DependencyCycles(tasks) {
		for _, id := range c {
			out[id] = true
		}
	}
	return out
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package taskdag

import (
	"fmt"
	"slices"
)

// Task is a node of a workflow graph. Dependencies hold the ids of the tasks
// that must complete before this one starts; an edge therefore runs from each
// dependency to its dependent.
type Task struct {
	Name          string  `json:"task_name"`
	Dependencies  []int   `json:"dependencies"`
	InstanceCount uint64  `json:"instance_cnt"`
	Flops         float64 `json:"flops"`

	// Start and end times are only known for graphs taken from a trace.
	StartTime int64 `json:"start_time,omitempty"`
	EndTime   int64 `json:"end_time,omitempty"`
}

// Graph is a workflow DAG whose node ids are indices into Tasks. Ids are
// stable: tasks are only ever appended.
type Graph struct {
	Tasks []Task `json:"tasks"`
}

// New creates an empty graph with capacity for n tasks.
func New(n int) *Graph {
	return &Graph{Tasks: make([]Task, 0, n)}
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.Tasks)
}

// AddTask appends a task and returns its id. Dependencies already present on
// the task must refer to tasks added earlier.
func (g *Graph) AddTask(t Task) (int, error) {
	id := len(g.Tasks)
	for _, d := range t.Dependencies {
		if d < 0 || d >= id {
			return 0, fmt.Errorf("%w: task %q depends on %d", ErrInvalidNode, t.Name, d)
		}
	}
	g.Tasks = append(g.Tasks, t)
	return id, nil
}

// AddDependency records that child depends on parent. Adding an existing
// dependency again is a no-op.
func (g *Graph) AddDependency(child, parent int) error {
	if !g.valid(child) || !g.valid(parent) {
		return fmt.Errorf("%w: edge %d -> %d in graph of %d tasks", ErrInvalidNode, parent, child, len(g.Tasks))
	}
	if child == parent {
		return fmt.Errorf("%w: self dependency on %d", ErrInvalidNode, child)
	}
	deps := &g.Tasks[child].Dependencies
	if slices.Contains(*deps, parent) {
		return nil
	}
	*deps = append(*deps, parent)
	return nil
}

func (g *Graph) valid(id int) bool {
	return id >= 0 && id < len(g.Tasks)
}

// Dependents returns, for every task, the ids of the tasks depending on it in
// ascending order.
func (g *Graph) Dependents() [][]int {
	children := make([][]int, len(g.Tasks))
	for child, t := range g.Tasks {
		for _, parent := range t.Dependencies {
			children[parent] = append(children[parent], child)
		}
	}
	return children
}

// Duration returns the observed run time of task i.
func (g *Graph) Duration(i int) int64 {
	t := &g.Tasks[i]
	return t.EndTime - t.StartTime
}

// Validate checks that every dependency refers to an existing task other
// than the dependent itself.
func (g *Graph) Validate() error {
	for i, t := range g.Tasks {
		for _, d := range t.Dependencies {
			if !g.valid(d) || d == i {
				return fmt.Errorf("%w: task %d (%q) depends on %d", ErrInvalidNode, i, t.Name, d)
			}
		}
	}
	return nil
}

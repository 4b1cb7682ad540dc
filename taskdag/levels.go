// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package taskdag

import (
	"cmp"
	"slices"

	"github.com/addrummond/heap"
)

// Levels is the result of analyzing a graph.
type Levels struct {
	// Depths holds the length of the longest dependency chain ending at each
	// task, sources being at depth zero.
	Depths []int
	// Levels holds the row each task is bucketed into. It currently equals
	// Depths.
	Levels []int
	// Order lists task ids so that every task follows all of its
	// dependencies. Among tasks that are ready at the same time the lower id
	// comes first.
	Order []int
	// CriticalPath is the number of levels, max depth + 1.
	CriticalPath int
	Cyclic       bool
}

// Analyze computes depths, levels and the critical path length of g. If g
// contains a cycle the returned Levels only has Cyclic set and the error is
// ErrCycleDetected.
func Analyze(g *Graph) (*Levels, error) {
	children := g.Dependents()
	if hasCycle(g, children) {
		return &Levels{Cyclic: true}, ErrCycleDetected
	}

	n := g.Len()
	lv := &Levels{
		Depths: make([]int, n),
		Order:  make([]int, 0, n),
	}

	pending := make([]int, n)
	var ready heap.Heap[readyTask, heap.Min]
	for i, t := range g.Tasks {
		pending[i] = len(t.Dependencies)
		if pending[i] == 0 {
			heap.PushOrderable(&ready, readyTask{ID: i})
		}
	}
	for {
		rt, ok := heap.PopOrderable(&ready)
		if !ok {
			break
		}
		id := rt.ID
		lv.Order = append(lv.Order, id)
		for _, d := range g.Tasks[id].Dependencies {
			lv.Depths[id] = max(lv.Depths[id], lv.Depths[d]+1)
		}
		if lv.Depths[id]+1 > lv.CriticalPath {
			lv.CriticalPath = lv.Depths[id] + 1
		}
		for _, c := range children[id] {
			pending[c]--
			if pending[c] == 0 {
				heap.PushOrderable(&ready, readyTask{ID: c})
			}
		}
	}
	lv.Levels = slices.Clone(lv.Depths)
	return lv, nil
}

// ByLevel groups task ids by level.
func (lv *Levels) ByLevel() [][]int {
	rows := make([][]int, lv.CriticalPath)
	for id, l := range lv.Levels {
		rows[l] = append(rows[l], id)
	}
	return rows
}

type readyTask struct {
	ID int
}

func (a *readyTask) Cmp(b *readyTask) int {
	return cmp.Compare(a.ID, b.ID)
}

const (
	unvisited = iota
	onStack
	finished
)

// hasCycle walks the graph depth first from every source, marking tasks on
// the current path. Reaching a task that is still on the path is a cycle, as
// is a task that no source reaches at all.
func hasCycle(g *Graph, children [][]int) bool {
	state := make([]int, g.Len())
	type frame struct {
		id   int
		next int
	}
	var stack []frame
	for src, t := range g.Tasks {
		if len(t.Dependencies) != 0 || state[src] != unvisited {
			continue
		}
		state[src] = onStack
		stack = append(stack[:0], frame{id: src})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(children[top.id]) {
				state[top.id] = finished
				stack = stack[:len(stack)-1]
				continue
			}
			c := children[top.id][top.next]
			top.next++
			switch state[c] {
			case onStack:
				return true
			case unvisited:
				state[c] = onStack
				stack = append(stack, frame{id: c})
			}
		}
	}
	return slices.Contains(state, unvisited)
}

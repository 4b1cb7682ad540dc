// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package instance

import (
	"fmt"
	"math"

	"github.com/Ksenia-C/dataset-generation/taskdag"
)

// Transfer is data sent to an instance by one of its dependencies.
type Transfer struct {
	From int     `json:"from"`
	Data float64 `json:"data"`
}

// Instance is one parallel execution of a task. Index numbers the instances
// of the same task from 0.
type Instance struct {
	Name         string     `json:"name"`
	Task         int        `json:"task"`
	Index        int        `json:"index"`
	Flops        float64    `json:"flops"`
	Dependencies []Transfer `json:"dependencies"`
}

// Graph is an instance DAG. Every instance appears after all of its
// dependencies.
type Graph struct {
	Instances []Instance `json:"instances"`
}

// Options controls Expand.
type Options struct {
	// CCR is total computation divided by total communication.
	CCR     float64
	Pattern Pattern
}

var DefaultOptions = Options{CCR: 11, Pattern: PatternRandom}

// Expand builds the instance graph of g. Tasks are expanded in topological
// order; a task with no instances still gets one.
func Expand(g *taskdag.Graph, rng taskdag.Rand, opts Options) (*Graph, error) {
	if !(opts.CCR > 0) || math.IsInf(opts.CCR, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCCR, opts.CCR)
	}
	lv, err := taskdag.Analyze(g)
	if err != nil {
		return nil, err
	}

	out := &Graph{}
	first := make([]int, g.Len())
	counts := make([]int, g.Len())
	for _, id := range lv.Order {
		t := &g.Tasks[id]
		first[id] = len(out.Instances)
		counts[id] = int(max(t.InstanceCount, 1))
		for k := range counts[id] {
			out.Instances = append(out.Instances, Instance{
				Name:  fmt.Sprintf("%s_%d", t.Name, k),
				Task:  id,
				Index: k,
				Flops: t.Flops,
			})
		}
	}

	var edges []edge
	for _, id := range lv.Order {
		for _, parent := range g.Tasks[id].Dependencies {
			local, err := opts.Pattern.connect(rng, counts[parent], counts[id])
			if err != nil {
				return nil, err
			}
			for _, e := range local {
				edges = append(edges, edge{first[parent] + e.from, first[id] + e.to})
			}
		}
	}
	out.attach(edges, opts.CCR)
	return out, nil
}

// attach sizes the transfers so that the graph realizes ccr. Each transfer
// carries a share of the total communication proportional to the flops of
// its sender, or an equal share if no sender computes anything.
func (g *Graph) attach(edges []edge, ccr float64) {
	if len(edges) == 0 {
		return
	}
	comm := g.Computation() / ccr
	var weight float64
	for _, e := range edges {
		weight += g.Instances[e.from].Flops
	}
	for _, e := range edges {
		share := 1 / float64(len(edges))
		if weight > 0 {
			share = g.Instances[e.from].Flops / weight
		}
		deps := &g.Instances[e.to].Dependencies
		*deps = append(*deps, Transfer{From: e.from, Data: comm * share})
	}
}

// Computation returns the total flops of all instances.
func (g *Graph) Computation() float64 {
	var sum float64
	for _, inst := range g.Instances {
		sum += inst.Flops
	}
	return sum
}

// Communication returns the total data of all transfers.
func (g *Graph) Communication() float64 {
	var sum float64
	for _, inst := range g.Instances {
		for _, t := range inst.Dependencies {
			sum += t.Data
		}
	}
	return sum
}

// CCR returns the realized computation to communication ratio, or 0 if the
// graph has no communication.
func (g *Graph) CCR() float64 {
	comm := g.Communication()
	if comm == 0 {
		return 0
	}
	return g.Computation() / comm
}

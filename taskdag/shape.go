// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package taskdag

// Shape classifies the branching structure of a graph.
type Shape int

const (
	ShapeGeneral     Shape = iota
	ShapeForwardTree       // every task has at most one dependency
	ShapeReverseTree       // every task has at most one dependent
	ShapeChain             // both; excluded from statistics
)

func (s Shape) String() string {
	switch s {
	case ShapeForwardTree:
		return "tree_incr"
	case ShapeReverseTree:
		return "tree_decr"
	case ShapeChain:
		return "chain"
	default:
		return "other"
	}
}

// Classify reports the shape of g.
func Classify(g *Graph) Shape {
	forward, reverse := true, true
	dependents := make([]int, g.Len())
	for _, t := range g.Tasks {
		if len(t.Dependencies) > 1 {
			forward = false
		}
		for _, d := range t.Dependencies {
			dependents[d]++
			if dependents[d] > 1 {
				reverse = false
			}
		}
	}
	switch {
	case forward && reverse:
		return ShapeChain
	case forward:
		return ShapeForwardTree
	case reverse:
		return ShapeReverseTree
	default:
		return ShapeGeneral
	}
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package trace

import "github.com/Ksenia-C/dataset-generation/taskdag"

// Partition splits pop by graph shape. Chains carry no branching statistics
// and are dropped.
func Partition(pop taskdag.Population) map[taskdag.Shape]taskdag.Population {
	out := map[taskdag.Shape]taskdag.Population{
		taskdag.ShapeForwardTree: {},
		taskdag.ShapeReverseTree: {},
		taskdag.ShapeGeneral:     {},
	}
	for name, g := range pop {
		shape := taskdag.Classify(g)
		if shape == taskdag.ShapeChain {
			continue
		}
		out[shape][name] = g
	}
	return out
}

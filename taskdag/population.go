// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package taskdag

import (
	"maps"
	"slices"
)

// Rand is the source of randomness threaded through sampling calls.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniformly distributed value in [0, n). It panics if
	// n <= 0.
	IntN(n int) int
}

// Population maps job identifiers to their graphs.
type Population map[string]*Graph

// Names returns the job identifiers in ascending order.
func (p Population) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Sample returns a population of n jobs drawn without replacement. If p holds
// n jobs or fewer, all of them are returned.
func (p Population) Sample(rng Rand, n int) Population {
	names := p.Names()
	if n >= len(names) {
		return maps.Clone(p)
	}
	for i := range n {
		j := i + rng.IntN(len(names)-i)
		names[i], names[j] = names[j], names[i]
	}
	out := make(Population, n)
	for _, name := range names[:n] {
		out[name] = p[name]
	}
	return out
}

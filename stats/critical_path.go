// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package stats

import (
	"fmt"
	"maps"
	"slices"
)

// CriticalPaths records the node counts of graphs by critical path length.
type CriticalPaths struct {
	// Tolerance is how far Sample may move away from the requested critical
	// path length to find recorded sizes. Zero requires an exact match.
	Tolerance int

	sizes map[int][]int
	keys  []int
}

// NewCriticalPaths returns an empty store that requires exact matches.
func NewCriticalPaths() *CriticalPaths {
	return &CriticalPaths{sizes: make(map[int][]int)}
}

// Add records a graph of nodeCount nodes whose critical path is cp long.
func (c *CriticalPaths) Add(cp, nodeCount int) {
	if _, ok := c.sizes[cp]; !ok {
		c.keys = nil
	}
	c.sizes[cp] = append(c.sizes[cp], nodeCount)
}

// Sample draws a node count for a graph with critical path cp from the
// nearest critical path within Tolerance of cp. Sizes smaller than cp cannot
// hold such a graph and are never drawn. It returns ErrDistributionExhausted
// when no usable size is recorded within Tolerance.
func (c *CriticalPaths) Sample(rng Rand, cp int) (int, error) {
	fits := func(n int) bool { return n >= cp }
	candidates := slices.DeleteFunc(slices.Clone(c.sortedKeys()), func(k int) bool {
		return absDiff(k, cp) > c.Tolerance || !slices.ContainsFunc(c.sizes[k], fits)
	})
	key, ok := nearest(candidates, func(k int) []int {
		return []int{absDiff(k, cp)}
	})
	if !ok {
		return 0, fmt.Errorf("%w: no graph sizes for critical path %d", ErrDistributionExhausted, cp)
	}
	sizes := c.sizes[key]
	if key < cp {
		sizes = slices.DeleteFunc(slices.Clone(sizes), func(n int) bool { return !fits(n) })
	}
	return draw(rng, sizes), nil
}

// Sizes returns the node counts recorded for cp.
func (c *CriticalPaths) Sizes(cp int) []int {
	return c.sizes[cp]
}

// Keys returns the recorded critical path lengths in ascending order.
func (c *CriticalPaths) Keys() []int {
	return slices.Clone(c.sortedKeys())
}

func (c *CriticalPaths) sortedKeys() []int {
	if c.keys == nil {
		c.keys = slices.Sorted(maps.Keys(c.sizes))
	}
	return c.keys
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package stats

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

type partKey struct {
	CP   int
	Part int
}

func (a partKey) compare(b partKey) int {
	if c := cmp.Compare(a.CP, b.CP); c != 0 {
		return c
	}
	return cmp.Compare(a.Part, b.Part)
}

// LevelDistribution records how the nodes of graphs in each (critical path,
// part) bucket are spread over levels.
type LevelDistribution struct {
	levels map[partKey][]int
	keys   []partKey
}

// NewLevelDistribution returns an empty level store.
func NewLevelDistribution() *LevelDistribution {
	return &LevelDistribution{levels: make(map[partKey][]int)}
}

// Add records the level of every node of one graph.
func (d *LevelDistribution) Add(cp, part int, levels []int) {
	if len(levels) == 0 {
		return
	}
	k := partKey{cp, part}
	if _, ok := d.levels[k]; !ok {
		d.keys = nil
	}
	d.levels[k] = append(d.levels[k], levels...)
}

// Sample draws a level with probability proportional to how often it was
// observed in the bucket. Missing buckets fall back to the nearest part
// with the same critical path, then to the nearest critical path.
func (d *LevelDistribution) Sample(rng Rand, cp, part int) (int, error) {
	k, ok := nearest(d.sortedKeys(), func(k partKey) []int {
		return []int{absDiff(k.CP, cp), absDiff(k.Part, part)}
	})
	if !ok {
		return 0, fmt.Errorf("%w: no levels recorded", ErrDistributionExhausted)
	}
	return draw(rng, d.levels[k]), nil
}

// AdjustPart snaps part to the nearest bucket recorded for cp. If cp has no
// buckets at all part is returned unchanged.
func (d *LevelDistribution) AdjustPart(cp, part int) int {
	var parts []int
	for _, k := range d.sortedKeys() {
		if k.CP == cp {
			parts = append(parts, k.Part)
		}
	}
	if p, ok := nearest(parts, func(p int) []int { return []int{absDiff(p, part)} }); ok {
		return p
	}
	return part
}

// Levels returns the levels recorded for a bucket.
func (d *LevelDistribution) Levels(cp, part int) []int {
	return d.levels[partKey{cp, part}]
}

func (d *LevelDistribution) sortedKeys() []partKey {
	if d.keys == nil {
		d.keys = slices.SortedFunc(maps.Keys(d.levels), partKey.compare)
	}
	return d.keys
}

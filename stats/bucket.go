// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package stats

import (
	"cmp"

	"github.com/Ksenia-C/dataset-generation/taskdag"
)

// Rand is the random source accepted by every sampling call.
type Rand = taskdag.Rand

// Part returns the size bucket of a graph with the given node count and
// critical path length.
func Part(nodeCount, criticalPath int) int {
	if criticalPath <= 0 {
		return 0
	}
	return nodeCount / criticalPath
}

// nearest returns the key with the smallest distance, comparing distance
// vectors lexicographically. keys must be sorted so that ties go to the
// smallest key. The boolean is false if keys is empty.
func nearest[K any](keys []K, distance func(K) []int) (K, bool) {
	var best K
	var bestDist []int
	for i, k := range keys {
		d := distance(k)
		if i == 0 || compareDistance(d, bestDist) < 0 {
			best, bestDist = k, d
		}
	}
	return best, len(keys) > 0
}

func compareDistance(a, b []int) int {
	for i := range min(len(a), len(b)) {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func draw[T any](rng Rand, samples []T) T {
	return samples[rng.IntN(len(samples))]
}

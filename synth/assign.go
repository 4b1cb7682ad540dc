// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package synth

import (
	"math"

	"github.com/Ksenia-C/dataset-generation/stats"
	"github.com/Ksenia-C/dataset-generation/taskdag"
)

// assignInstances draws the instance count and flops of every task in
// topological order. Sources draw their count directly; other tasks scale
// the mean count of their parents by a drawn ratio.
func (b *builder) assignInstances() error {
	lv, err := taskdag.Analyze(b.graph)
	if err != nil {
		return err
	}
	for _, id := range lv.Order {
		t := &b.graph.Tasks[id]
		level := b.level[id]
		var count float64
		if len(t.Dependencies) == 0 {
			count, err = b.draw(level, stats.MetricInstanceInit)
			if err != nil {
				return err
			}
		} else {
			ratio, err := b.draw(level, stats.MetricInstanceRatio)
			if err != nil {
				return err
			}
			var sum float64
			for _, d := range t.Dependencies {
				sum += float64(b.graph.Tasks[d].InstanceCount)
			}
			count = sum / float64(len(t.Dependencies)) * ratio / stats.RatioScale
		}
		t.InstanceCount = b.clampInstances(count)

		if t.Flops, err = b.draw(level, stats.MetricDuration); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) clampInstances(v float64) uint64 {
	v = math.Ceil(v)
	limit := max(b.config.MaxInstances, 1)
	switch {
	case !(v >= 1):
		return 1
	case v >= float64(limit):
		return limit
	}
	return uint64(v)
}

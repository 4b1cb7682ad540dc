// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package stats

import (
	"math"

	"github.com/Ksenia-C/dataset-generation/taskdag"
)

// Extractor computes a per-node metric of g and returns its observations
// grouped by level: the result has one row per level of lv.
type Extractor func(g *taskdag.Graph, lv *taskdag.Levels) [][]float64

// Metric is a named Extractor.
type Metric struct {
	Name    string
	Extract Extractor
}

// Names of the metrics collected from every source graph.
const (
	MetricFanOut        = "fan_out"
	MetricFanIn         = "fan_in"
	MetricInstanceInit  = "instance_init"
	MetricInstanceRatio = "instance_ratio"
	MetricHeaviness     = "heaviness"
	MetricDuration      = "duration"
)

// RatioScale converts the instance count ratio to an integral percentage
// with two decimal places.
const RatioScale = 10000

// Metrics returns the metric registry. Instance counts above maxInstances
// are clamped before they are measured.
func Metrics(maxInstances uint64) []Metric {
	clamp := func(t *taskdag.Task) uint64 {
		return min(t.InstanceCount, maxInstances)
	}
	return []Metric{
		{MetricFanOut, perNode(func(g *taskdag.Graph, children [][]int, i int) (float64, bool) {
			return float64(len(children[i])), true
		})},
		{MetricFanIn, perNode(func(g *taskdag.Graph, _ [][]int, i int) (float64, bool) {
			return float64(len(g.Tasks[i].Dependencies)), true
		})},
		{MetricInstanceInit, perNode(func(g *taskdag.Graph, _ [][]int, i int) (float64, bool) {
			t := &g.Tasks[i]
			return float64(clamp(t)), len(t.Dependencies) == 0
		})},
		{MetricInstanceRatio, perNode(func(g *taskdag.Graph, _ [][]int, i int) (float64, bool) {
			t := &g.Tasks[i]
			if len(t.Dependencies) == 0 {
				return 0, false
			}
			var sum uint64
			for _, d := range t.Dependencies {
				sum += clamp(&g.Tasks[d])
			}
			mean := sum / uint64(len(t.Dependencies))
			if mean == 0 {
				return 0, false
			}
			return float64(clamp(t) * RatioScale / mean), true
		})},
		{MetricHeaviness, perNode(func(g *taskdag.Graph, _ [][]int, i int) (float64, bool) {
			ins := float64(clamp(&g.Tasks[i]))
			dur := float64(g.Duration(i))
			if ins+dur == 0 {
				return 0, true
			}
			return math.Trunc(2 * ins * dur / (ins + dur)), true
		})},
		{MetricDuration, perNode(func(g *taskdag.Graph, _ [][]int, i int) (float64, bool) {
			return float64(g.Duration(i)), true
		})},
	}
}

// Lookup returns the named metric from the registry.
func Lookup(name string, maxInstances uint64) (Metric, bool) {
	for _, m := range Metrics(maxInstances) {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// perNode builds an Extractor from a function measuring one node. Nodes for
// which measure reports false contribute no observation.
func perNode(measure func(g *taskdag.Graph, children [][]int, i int) (float64, bool)) Extractor {
	return func(g *taskdag.Graph, lv *taskdag.Levels) [][]float64 {
		children := g.Dependents()
		rows := make([][]float64, lv.CriticalPath)
		for i := range g.Tasks {
			if v, ok := measure(g, children, i); ok {
				l := lv.Levels[i]
				rows[l] = append(rows[l], v)
			}
		}
		return rows
	}
}

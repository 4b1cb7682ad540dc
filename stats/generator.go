// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package stats

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/Ksenia-C/dataset-generation/taskdag"
)

type levelKey struct {
	CP    int
	Part  int
	Level int
	Name  string
}

func (a levelKey) compare(b levelKey) int {
	return cmp.Or(
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.CP, b.CP),
		cmp.Compare(a.Part, b.Part),
		cmp.Compare(a.Level, b.Level),
	)
}

// Generator collects named per-level statistics and samples them back.
type Generator struct {
	samples map[levelKey][]float64
	byName  map[string][]levelKey
}

// NewGenerator returns an empty statistics collector.
func NewGenerator() *Generator {
	return &Generator{samples: make(map[levelKey][]float64)}
}

// AddStatistic runs extract over g and appends the observations it returns
// for each level under (cp, part, level, name).
func (s *Generator) AddStatistic(cp, part int, name string, g *taskdag.Graph, lv *taskdag.Levels, extract Extractor) {
	for level, values := range extract(g, lv) {
		s.Add(cp, part, level, name, values...)
	}
}

// Add appends raw observations under one key.
func (s *Generator) Add(cp, part, level int, name string, values ...float64) {
	if len(values) == 0 {
		return
	}
	k := levelKey{cp, part, level, name}
	if _, ok := s.samples[k]; !ok {
		s.byName = nil
	}
	s.samples[k] = append(s.samples[k], values...)
}

// Sample draws one observation of the named statistic. If the exact key has
// no observations the nearest one is used: same critical path first, closest
// level, then closest part, and only then another critical path.
func (s *Generator) Sample(rng Rand, cp, part, level int, name string) (float64, error) {
	k, ok := nearest(s.keysFor(name), func(k levelKey) []int {
		return []int{absDiff(k.CP, cp), absDiff(k.Level, level), absDiff(k.Part, part)}
	})
	if !ok {
		return 0, fmt.Errorf("%w: no observations of %q", ErrDistributionExhausted, name)
	}
	return draw(rng, s.samples[k]), nil
}

// Observations returns the values recorded under an exact key.
func (s *Generator) Observations(cp, part, level int, name string) []float64 {
	return s.samples[levelKey{cp, part, level, name}]
}

// Names returns the recorded statistic names in ascending order.
func (s *Generator) Names() []string {
	return slices.Sorted(maps.Keys(s.index()))
}

// All returns every observation of the named statistic across all keys.
func (s *Generator) All(name string) []float64 {
	var all []float64
	for _, k := range s.keysFor(name) {
		all = append(all, s.samples[k]...)
	}
	return all
}

// ByLevel returns the observations of the named statistic for critical path
// cp, pooled across parts, with one row per level.
func (s *Generator) ByLevel(name string, cp int) [][]float64 {
	var rows [][]float64
	for _, k := range s.keysFor(name) {
		if k.CP != cp {
			continue
		}
		for len(rows) <= k.Level {
			rows = append(rows, nil)
		}
		rows[k.Level] = append(rows[k.Level], s.samples[k]...)
	}
	return rows
}

func (s *Generator) keysFor(name string) []levelKey {
	return s.index()[name]
}

func (s *Generator) index() map[string][]levelKey {
	if s.byName == nil {
		s.byName = make(map[string][]levelKey)
		for _, k := range s.sortedKeys() {
			s.byName[k.Name] = append(s.byName[k.Name], k)
		}
	}
	return s.byName
}

func (s *Generator) sortedKeys() []levelKey {
	return slices.SortedFunc(maps.Keys(s.samples), levelKey.compare)
}

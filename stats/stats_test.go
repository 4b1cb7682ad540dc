// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package stats_test

import (
	"bytes"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ksenia-C/dataset-generation/internal/sim"
	"github.com/Ksenia-C/dataset-generation/stats"
	"github.com/Ksenia-C/dataset-generation/taskdag"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const maxInstances = 100

func threeChain() *taskdag.Graph {
	return &taskdag.Graph{Tasks: []taskdag.Task{
		{Name: "A", InstanceCount: 2, StartTime: 0, EndTime: 10},
		{Name: "B", Dependencies: []int{0}, InstanceCount: 4, StartTime: 10, EndTime: 20},
		{Name: "C", Dependencies: []int{1}, InstanceCount: 8, StartTime: 20, EndTime: 30},
	}}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestMetricsOnChain(t *testing.T) {
	chk := require.New(t)
	g := threeChain()
	lv, err := taskdag.Analyze(g)
	chk.NoError(err)

	expected := map[string][][]float64{
		stats.MetricFanOut:        {{1}, {1}, {0}},
		stats.MetricFanIn:         {{0}, {1}, {1}},
		stats.MetricInstanceInit:  {{2}, nil, nil},
		stats.MetricInstanceRatio: {nil, {20000}, {20000}},
		stats.MetricHeaviness:     {{3}, {5}, {8}},
		stats.MetricDuration:      {{10}, {10}, {10}},
	}
	metrics := stats.Metrics(maxInstances)
	chk.Len(metrics, len(expected))
	for _, m := range metrics {
		chk.Equal(expected[m.Name], m.Extract(g, lv), m.Name)
	}
}

func TestMetricsClampInstances(t *testing.T) {
	chk := require.New(t)
	g := threeChain()
	g.Tasks[0].InstanceCount = 1000
	lv, err := taskdag.Analyze(g)
	chk.NoError(err)

	m, ok := stats.Lookup(stats.MetricInstanceInit, 50)
	chk.True(ok)
	chk.Equal([][]float64{{50}, nil, nil}, m.Extract(g, lv))

	m, ok = stats.Lookup(stats.MetricInstanceRatio, 50)
	chk.True(ok)
	chk.Equal([][]float64{nil, {800}, {20000}}, m.Extract(g, lv))

	_, ok = stats.Lookup("no_such_metric", 50)
	chk.False(ok)
}

func TestInstanceRatioSkipsZeroMean(t *testing.T) {
	chk := require.New(t)
	g := threeChain()
	g.Tasks[0].InstanceCount = 0
	lv, err := taskdag.Analyze(g)
	chk.NoError(err)
	m, _ := stats.Lookup(stats.MetricInstanceRatio, maxInstances)
	chk.Equal([][]float64{nil, nil, {20000}}, m.Extract(g, lv))
}

func TestFitChain(t *testing.T) {
	chk := require.New(t)
	model, fitted, err := stats.Fit(taskdag.Population{"chain": threeChain()}, stats.FitConfig{MaxInstances: maxInstances})
	chk.NoError(err)
	chk.Equal(1, fitted)
	chk.Equal([]int{3}, model.CriticalPaths.Keys())
	chk.Equal([]int{3}, model.CriticalPaths.Sizes(3))
	chk.Equal([]int{0, 1, 2}, model.Levels.Levels(3, 1))
	chk.Equal([]float64{2}, model.Generator.Observations(3, 1, 0, stats.MetricInstanceInit))

	n, err := model.CriticalPaths.Sample(newRand(), 3)
	chk.NoError(err)
	chk.Equal(3, n)
}

func TestFitSkipsCyclicAndEmpty(t *testing.T) {
	chk := require.New(t)
	cyclic := &taskdag.Graph{Tasks: []taskdag.Task{
		{Dependencies: []int{1}}, {Dependencies: []int{0}},
	}}
	pop := taskdag.Population{"a": threeChain(), "b": cyclic, "c": taskdag.New(0)}
	model, fitted, err := stats.Fit(pop, stats.FitConfig{MaxInstances: maxInstances})
	chk.NoError(err)
	chk.Equal(1, fitted)
	chk.Equal([]int{3}, model.CriticalPaths.Keys())
}

func TestCriticalPathsExhausted(t *testing.T) {
	chk := require.New(t)
	rng := newRand()
	c := stats.NewCriticalPaths()
	_, err := c.Sample(rng, 5)
	chk.ErrorIs(err, stats.ErrDistributionExhausted)

	c.Add(5, 12)
	c.Add(5, 20)
	_, err = c.Sample(rng, 6)
	chk.ErrorIs(err, stats.ErrDistributionExhausted)

	c.Tolerance = 1
	n, err := c.Sample(rng, 6)
	chk.NoError(err)
	chk.Contains([]int{12, 20}, n)
}

func TestCriticalPathsSkipsSizesBelowCriticalPath(t *testing.T) {
	chk := require.New(t)
	rng := newRand()
	c := stats.NewCriticalPaths()
	c.Tolerance = 1
	c.Add(5, 5)
	_, err := c.Sample(rng, 6)
	chk.ErrorIs(err, stats.ErrDistributionExhausted)

	c.Add(5, 8)
	for range 50 {
		n, err := c.Sample(rng, 6)
		chk.NoError(err)
		chk.Equal(8, n)
	}

	// Of two equally near keys only the one with a usable size is drawn from.
	c = stats.NewCriticalPaths()
	c.Tolerance = 1
	c.Add(5, 5)
	c.Add(7, 9)
	n, err := c.Sample(rng, 6)
	chk.NoError(err)
	chk.Equal(9, n)
}

func TestLevelDistribution(t *testing.T) {
	chk := require.New(t)
	rng := newRand()
	d := stats.NewLevelDistribution()
	_, err := d.Sample(rng, 5, 2)
	chk.ErrorIs(err, stats.ErrDistributionExhausted)
	chk.Equal(7, d.AdjustPart(5, 7))

	d.Add(5, 2, []int{0, 1, 1, 2, 3, 4})
	d.Add(5, 6, []int{0, 1, 2, 3, 4, 4, 4})
	d.Add(6, 3, []int{5})

	chk.Equal(2, d.AdjustPart(5, 1))
	chk.Equal(2, d.AdjustPart(5, 4))
	chk.Equal(6, d.AdjustPart(5, 5))
	chk.Equal(6, d.AdjustPart(5, 60))
	chk.Equal(3, d.AdjustPart(6, 0))

	for range 100 {
		l, err := d.Sample(rng, 6, 3)
		chk.NoError(err)
		chk.Equal(5, l)
		// 7 has no buckets, so the nearest critical path 6 answers.
		l, err = d.Sample(rng, 7, 3)
		chk.NoError(err)
		chk.Equal(5, l)
		l, err = d.Sample(rng, 5, 6)
		chk.NoError(err)
		chk.Contains(d.Levels(5, 6), l)
	}
}

func TestLevelDistributionProportional(t *testing.T) {
	chk := require.New(t)
	rng := newRand()
	d := stats.NewLevelDistribution()
	d.Add(4, 1, []int{0, 1, 1, 1})
	counts := make(map[int]int)
	for range 4000 {
		l, err := d.Sample(rng, 4, 1)
		chk.NoError(err)
		counts[l]++
	}
	chk.InDelta(1000, counts[0], 150)
	chk.InDelta(3000, counts[1], 150)
}

func TestGeneratorFallback(t *testing.T) {
	chk := require.New(t)
	rng := newRand()
	s := stats.NewGenerator()
	_, err := s.Sample(rng, 5, 1, 0, stats.MetricFanIn)
	chk.ErrorIs(err, stats.ErrDistributionExhausted)

	s.Add(5, 2, 1, stats.MetricFanIn, 1)
	s.Add(5, 4, 1, stats.MetricFanIn, 3)
	s.Add(5, 2, 3, stats.MetricFanIn, 7)
	s.Add(6, 2, 2, stats.MetricFanIn, 9)
	s.Add(5, 2, 2, stats.MetricFanOut, 42)

	sample := func(cp, part, level int) float64 {
		v, err := s.Sample(rng, cp, part, level, stats.MetricFanIn)
		chk.NoError(err)
		return v
	}
	chk.Equal(1.0, sample(5, 2, 1))
	chk.Equal(3.0, sample(5, 4, 1))
	// Same level in the nearest part.
	chk.Equal(3.0, sample(5, 5, 1))
	chk.Equal(1.0, sample(5, 3, 1))
	// Level 2 is unseen for cp 5; levels 1 and 3 tie and the lower one wins.
	chk.Equal(1.0, sample(5, 2, 2))
	chk.Equal(7.0, sample(5, 2, 4))
	chk.Equal(9.0, sample(6, 0, 0))
	// cp 7 has nothing; the nearest cp answers.
	chk.Equal(9.0, sample(7, 2, 2))
	// Other metrics never leak into a sample.
	_, err = s.Sample(rng, 5, 2, 2, stats.MetricDuration)
	chk.ErrorIs(err, stats.ErrDistributionExhausted)

	chk.Equal([]string{stats.MetricFanIn, stats.MetricFanOut}, s.Names())
	chk.ElementsMatch([]float64{1, 3, 7, 9}, s.All(stats.MetricFanIn))
	chk.Equal([][]float64{nil, {1, 3}, nil, {7}}, s.ByLevel(stats.MetricFanIn, 5))
	chk.Nil(s.ByLevel(stats.MetricFanIn, 8))
}

func TestModelSaveLoadSamplesIdentically(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		pop, _ := sim.NewPopulation(t, &sim.DefaultConfig)
		model, _, err := stats.Fit(pop, stats.FitConfig{MaxInstances: maxInstances})
		chk.NoError(err)

		dir, err := os.MkdirTemp("", "stats")
		chk.NoError(err)
		defer os.RemoveAll(dir)
		chk.NoError(model.Save(dir))
		loaded, err := stats.LoadModel(dir)
		chk.NoError(err)

		seed := rapid.Uint64().Draw(t, "seed")
		a := rand.New(rand.NewPCG(seed, 1))
		b := rand.New(rand.NewPCG(seed, 1))
		for _, cp := range model.CriticalPaths.Keys() {
			chk.Equal(model.CriticalPaths.Sizes(cp), loaded.CriticalPaths.Sizes(cp))
			for part := range 10 {
				chk.Equal(model.Levels.AdjustPart(cp, part), loaded.Levels.AdjustPart(cp, part))
				la, err := model.Levels.Sample(a, cp, part)
				chk.NoError(err)
				lb, err := loaded.Levels.Sample(b, cp, part)
				chk.NoError(err)
				chk.Equal(la, lb)
				for level := range cp {
					for _, name := range model.Generator.Names() {
						chk.Equal(model.Generator.Observations(cp, part, level, name),
							loaded.Generator.Observations(cp, part, level, name))
						va, err := model.Generator.Sample(a, cp, part, level, name)
						chk.NoError(err)
						vb, err := loaded.Generator.Sample(b, cp, part, level, name)
						chk.NoError(err)
						chk.Equal(va, vb)
					}
				}
			}
			na, err := model.CriticalPaths.Sample(a, cp)
			chk.NoError(err)
			nb, err := loaded.CriticalPaths.Sample(b, cp)
			chk.NoError(err)
			chk.Equal(na, nb)
		}
	})
}

func TestEncodeIsStable(t *testing.T) {
	chk := require.New(t)
	s := stats.NewGenerator()
	s.Add(5, 1, 0, "b", 1.5)
	s.Add(3, 1, 0, "a", 2)
	var first, second bytes.Buffer
	chk.NoError(s.Encode(&first))
	decoded, err := stats.DecodeGenerator(bytes.NewReader(first.Bytes()))
	chk.NoError(err)
	chk.NoError(decoded.Encode(&second))
	chk.Equal(first.String(), second.String())
	chk.Less(strings.Index(first.String(), `"a"`), strings.Index(first.String(), `"b"`))
}

func TestDecodeMalformed(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":      `{`,
		"wrong kind":    `{"kind":"level_distribute","version":1,"entries":[]}`,
		"wrong version": `{"kind":"cp_ranges","version":2,"entries":[]}`,
		"unknown field": `{"kind":"cp_ranges","version":1,"entries":[{"cp":3,"sizes":[3]}]}`,
		"zero cp":       `{"kind":"cp_ranges","version":1,"entries":[{"cp":0,"samples":[3]}]}`,
		"no samples":    `{"kind":"cp_ranges","version":1,"entries":[{"cp":3,"samples":[]}]}`,
		"duplicate":     `{"kind":"cp_ranges","version":1,"entries":[{"cp":3,"samples":[3]},{"cp":3,"samples":[4]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := stats.DecodeCriticalPaths(strings.NewReader(doc))
			require.ErrorIs(t, err, stats.ErrMalformedStore)
		})
	}

	_, err := stats.DecodeLevelDistribution(strings.NewReader(
		`{"kind":"level_distribute","version":1,"entries":[{"cp":3,"part":1,"levels":[0,3]}]}`))
	require.ErrorIs(t, err, stats.ErrMalformedStore)

	_, err = stats.DecodeGenerator(strings.NewReader(
		`{"kind":"level_generator","version":1,"entries":[{"cp":3,"part":1,"level":0,"name":"","samples":[1]}]}`))
	require.ErrorIs(t, err, stats.ErrMalformedStore)
}

func TestLoadModelMissingFile(t *testing.T) {
	chk := require.New(t)
	dir := t.TempDir()
	chk.NoError(stats.NewModel().CriticalPaths.Save(filepath.Join(dir, stats.CriticalPathsFile)))
	_, err := stats.LoadModel(dir)
	chk.Error(err)
}

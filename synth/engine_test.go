// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package synth_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/Ksenia-C/dataset-generation/internal/sim"
	"github.com/Ksenia-C/dataset-generation/stats"
	"github.com/Ksenia-C/dataset-generation/synth"
	"github.com/Ksenia-C/dataset-generation/taskdag"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var strategies = []synth.Strategy{synth.StrategyLevel, synth.StrategyForward, synth.StrategyBackward}

// chain returns a chain of n tasks whose instance counts double at every
// level, starting at 2, and that each run for 10 time units.
func chain(n int) *taskdag.Graph {
	g := taskdag.New(n)
	count := uint64(2)
	for i := range n {
		t := taskdag.Task{
			Name:          fmt.Sprintf("T%d", i),
			InstanceCount: count,
			StartTime:     int64(10 * i),
			EndTime:       int64(10 * (i + 1)),
		}
		if i > 0 {
			t.Dependencies = []int{i - 1}
		}
		if _, err := g.AddTask(t); err != nil {
			panic(err)
		}
		count *= 2
	}
	return g
}

func fitChain(t *testing.T, n int) *stats.Model {
	model, _, err := stats.Fit(taskdag.Population{"chain": chain(n)}, stats.FitConfig{MaxInstances: 100})
	require.NoError(t, err)
	return model
}

func TestBuildReproducesChain(t *testing.T) {
	model := fitChain(t, 3)
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			chk := require.New(t)
			config := synth.DefaultConfig
			config.Strategy = strategy
			e := synth.NewEngine(model, config)
			g, err := e.Build(rand.New(rand.NewPCG(1, 2)), 3, 3)
			chk.NoError(err)
			chk.Equal(3, g.Len())
			chk.Empty(g.Tasks[0].Dependencies)
			chk.Equal([]int{0}, g.Tasks[1].Dependencies)
			chk.Equal([]int{1}, g.Tasks[2].Dependencies)
			for i, count := range []uint64{2, 4, 8} {
				chk.Equal(fmt.Sprintf("task_%d", i), g.Tasks[i].Name)
				chk.Equal(count, g.Tasks[i].InstanceCount)
				chk.Equal(10.0, g.Tasks[i].Flops)
			}
		})
	}
}

func TestGenerateUsesFittedSizes(t *testing.T) {
	chk := require.New(t)
	config := synth.DefaultConfig
	config.MinCP, config.MaxCP = 3, 3
	e := synth.NewEngine(fitChain(t, 3), config)
	g, err := e.Generate(rand.New(rand.NewPCG(3, 4)))
	chk.NoError(err)
	lv, err := taskdag.Analyze(g)
	chk.NoError(err)
	chk.Equal(3, lv.CriticalPath)
	chk.Equal(3, g.Len())
}

func TestGenerateExhausted(t *testing.T) {
	chk := require.New(t)
	e := synth.NewEngine(fitChain(t, 3), synth.DefaultConfig)
	rng := rand.New(rand.NewPCG(5, 6))
	_, err := e.Generate(rng)
	chk.ErrorIs(err, stats.ErrDistributionExhausted)

	graphs, err := e.Batch(rng, 10)
	chk.NoError(err)
	chk.Empty(graphs)
}

func TestBatchStopsAtFirstExhaustion(t *testing.T) {
	chk := require.New(t)
	config := synth.DefaultConfig
	config.MinCP, config.MaxCP = 5, 7
	e := synth.NewEngine(fitChain(t, 5), config)
	graphs, err := e.Batch(rand.New(rand.NewPCG(7, 8)), 100)
	chk.NoError(err)
	chk.Less(len(graphs), 100)
	for _, g := range graphs {
		lv, err := taskdag.Analyze(g)
		chk.NoError(err)
		chk.Equal(5, lv.CriticalPath)
	}
}

func TestBatchIgnoresBorrowedSizesTooSmall(t *testing.T) {
	chk := require.New(t)
	model := fitChain(t, 5)
	model.CriticalPaths.Tolerance = 1
	config := synth.DefaultConfig
	config.MinCP, config.MaxCP = 6, 7
	e := synth.NewEngine(model, config)
	graphs, err := e.Batch(rand.New(rand.NewPCG(7, 8)), 10)
	chk.NoError(err)
	chk.Empty(graphs)

	_, err = e.Generate(rand.New(rand.NewPCG(7, 8)))
	chk.ErrorIs(err, stats.ErrDistributionExhausted)
}

func TestBuildRejectsShortGraphs(t *testing.T) {
	chk := require.New(t)
	e := synth.NewEngine(fitChain(t, 3), synth.DefaultConfig)
	_, err := e.Build(rand.New(rand.NewPCG(1, 1)), 4, 3)
	chk.ErrorIs(err, synth.ErrInvalidShape)
	_, err = e.Build(rand.New(rand.NewPCG(1, 1)), 0, 3)
	chk.ErrorIs(err, synth.ErrInvalidShape)
}

func TestParseStrategy(t *testing.T) {
	chk := require.New(t)
	for _, s := range strategies {
		parsed, err := synth.ParseStrategy(s.String())
		chk.NoError(err)
		chk.Equal(s, parsed)
	}
	_, err := synth.ParseStrategy("sideways")
	chk.ErrorIs(err, synth.ErrUnknownStrategy)

	var s synth.Strategy
	chk.NoError(s.UnmarshalText([]byte("decr")))
	chk.Equal(synth.StrategyBackward, s)
	_, err = synth.Strategy(9).MarshalText()
	chk.ErrorIs(err, synth.ErrUnknownStrategy)
}

func TestGeneratedGraphs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		pop, _ := sim.NewPopulation(t, &sim.DefaultConfig)
		model, _, err := stats.Fit(pop, stats.FitConfig{MaxInstances: 100})
		chk.NoError(err)

		cp := rapid.SampledFrom(model.CriticalPaths.Keys()).Draw(t, "cp")
		config := synth.Config{
			MinCP:          cp,
			MaxCP:          cp + 1,
			MaxInstances:   rapid.Uint64Range(1, 200).Draw(t, "maxInstances"),
			Strategy:       rapid.SampledFrom(strategies).Draw(t, "strategy"),
			ConnectOrphans: rapid.Bool().Draw(t, "connectOrphans"),
		}
		e := synth.NewEngine(model, config)
		rng := rand.New(rand.NewPCG(rapid.Uint64().Draw(t, "seed"), 0))
		g, err := e.Generate(rng)
		chk.NoError(err)
		chk.Contains(model.CriticalPaths.Sizes(cp), g.Len())

		lv, err := taskdag.Analyze(g)
		chk.NoError(err)
		chk.Equal(cp, lv.CriticalPath)

		children := g.Dependents()
		exactLevels := config.Strategy == synth.StrategyForward ||
			(config.Strategy == synth.StrategyLevel && config.ConnectOrphans)
		for i, task := range g.Tasks {
			chk.GreaterOrEqual(task.InstanceCount, uint64(1))
			chk.LessOrEqual(task.InstanceCount, config.MaxInstances)
			if cp > 1 {
				chk.True(len(task.Dependencies) > 0 || len(children[i]) > 0, "task %d is isolated", i)
			}
			for _, d := range task.Dependencies {
				chk.Greater(lv.Levels[i], lv.Levels[d])
				if exactLevels {
					chk.Equal(lv.Levels[d]+1, lv.Levels[i])
				}
			}
		}
	})
}

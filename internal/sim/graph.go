// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Ksenia-C/dataset-generation/taskdag"
	"pgregory.net/rapid"
)

// Graph is a generated workflow graph together with the level every task was
// placed on.
type Graph struct {
	*taskdag.Graph
	Levels [][]int
}

// CriticalPath returns the number of levels the graph was drawn with.
func (g *Graph) CriticalPath() int {
	return len(g.Levels)
}

// NewGraph draws a random graph. Task names follow the trace convention of a
// type letter, a 1-based id and the 1-based ids of the dependencies, joined
// by underscores, e.g. "R4_2_3".
func NewGraph(t *rapid.T, config *Config, name string) *Graph {
	graphConfig := &config.Graph
	g := &Graph{Graph: taskdag.New(0)}
	levelCount := graphConfig.Levels.Draw(t, name+".Levels")
	for level := range levelCount {
		levelName := fmt.Sprintf("%s.Level[%d]", name, level)
		width := graphConfig.Width.Draw(t, levelName+".Width")
		row := make([]int, 0, width)
		for i := range width {
			taskName := fmt.Sprintf("%s.Task[%d]", levelName, i)
			var deps []int
			if level > 0 {
				above := g.Levels[level-1]
				depConfig := graphConfig.Dependencies
				depConfig.Max = min(depConfig.Max, len(above))
				depConfig.Med = min(depConfig.Med, depConfig.Max)
				depConfig.Min = min(depConfig.Min, depConfig.Med)
				count := depConfig.Draw(t, taskName+".DependencyCount")
				deps = slices.Clone(rapid.Permutation(above).Draw(t, taskName+".Dependencies")[:count])
				if level > 1 && graphConfig.SkipLevelDepend.Draw(t, taskName+".SkipLevel") {
					earlier := slices.Concat(g.Levels[:level-1]...)
					deps = append(deps, rapid.SampledFrom(earlier).Draw(t, taskName+".SkipLevelDependency"))
				}
				slices.Sort(deps)
			}
			id, err := g.AddTask(newTask(t, &config.Task, taskName, g.Len(), deps))
			if err != nil {
				panic(err)
			}
			row = append(row, id)
		}
		g.Levels = append(g.Levels, row)
	}
	return g
}

func newTask(t *rapid.T, config *TaskConfig, name string, id int, deps []int) taskdag.Task {
	var sb strings.Builder
	sb.WriteString(rapid.SampledFrom([]string{"M", "R", "J"}).Draw(t, name+".Type"))
	fmt.Fprintf(&sb, "%d", id+1)
	for _, d := range deps {
		fmt.Fprintf(&sb, "_%d", d+1)
	}
	start := int64(config.Start.Draw(t, name+".Start"))
	return taskdag.Task{
		Name:          sb.String(),
		Dependencies:  deps,
		InstanceCount: uint64(config.Instances.Draw(t, name+".Instances")),
		StartTime:     start,
		EndTime:       start + int64(config.Duration.Draw(t, name+".Duration")),
	}
}

// NewPopulation draws a population of graphs keyed "j_<n>".
func NewPopulation(t *rapid.T, config *Config) (taskdag.Population, map[string]*Graph) {
	count := config.Population.Count.Draw(t, "Population.Count")
	pop := make(taskdag.Population, count)
	graphs := make(map[string]*Graph, count)
	for i := range count {
		name := fmt.Sprintf("j_%d", i+1)
		g := NewGraph(t, config, name)
		pop[name] = g.Graph
		graphs[name] = g
	}
	return pop, graphs
}

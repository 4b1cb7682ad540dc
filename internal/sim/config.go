// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

var DefaultConfig = Config{
	Population: PopulationConfig{
		Count: BiasedIntConfig{Min: 1, Med: 4, Max: 12},
	},
	Graph: GraphConfig{
		Levels:          BiasedIntConfig{Min: 1, Med: 4, Max: 8},
		Width:           BiasedIntConfig{Min: 1, Med: 2, Max: 6},
		Dependencies:    BiasedIntConfig{Min: 1, Med: 1, Max: 3},
		SkipLevelDepend: BiasedBoolConfig{Probability: 0.1},
	},
	Task: TaskConfig{
		Instances: BiasedIntConfig{Min: 1, Med: 8, Max: 500},
		Duration:  BiasedIntConfig{Min: 0, Med: 30, Max: 3600},
		Start:     BiasedIntConfig{Min: 0, Med: 1000, Max: 100000},
	},
}

type Config struct {
	Population PopulationConfig
	Graph      GraphConfig
	Task       TaskConfig
}

type PopulationConfig struct {
	Count BiasedIntConfig
}

type GraphConfig struct {
	Levels BiasedIntConfig
	Width  BiasedIntConfig
	// Dependencies on the level directly above. Drawn values are capped by
	// the width of that level.
	Dependencies BiasedIntConfig
	// Whether a task also depends on a random task two or more levels up.
	SkipLevelDepend BiasedBoolConfig
}

type TaskConfig struct {
	Instances BiasedIntConfig
	Duration  BiasedIntConfig
	Start     BiasedIntConfig
}

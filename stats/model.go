// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package stats

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Ksenia-C/dataset-generation/taskdag"
	"go.uber.org/zap"
)

// File names of the persisted stores inside a model directory.
const (
	CriticalPathsFile = "cp_ranges.json"
	LevelsFile        = "level_distribute.json"
	GeneratorFile     = "level_generator.json"
)

// Model bundles the three stores fitted from one population.
type Model struct {
	CriticalPaths *CriticalPaths
	Levels        *LevelDistribution
	Generator     *Generator
}

// NewModel returns a model with three empty stores.
func NewModel() *Model {
	return &Model{
		CriticalPaths: NewCriticalPaths(),
		Levels:        NewLevelDistribution(),
		Generator:     NewGenerator(),
	}
}

// FitConfig controls the fit phase.
type FitConfig struct {
	MaxInstances uint64
	Logger       *zap.Logger
}

// Fit builds a model from every graph of pop, in job name order. Graphs that
// contain a cycle or no tasks are skipped and logged. Fit returns the number
// of graphs that contributed to the model.
func Fit(pop taskdag.Population, config FitConfig) (*Model, int, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := Metrics(config.MaxInstances)
	m := NewModel()
	fitted := 0
	for _, name := range pop.Names() {
		g := pop[name]
		if g.Len() == 0 {
			logger.Debug("Skipping empty graph", zap.String("job", name))
			continue
		}
		lv, err := taskdag.Analyze(g)
		if errors.Is(err, taskdag.ErrCycleDetected) {
			logger.Warn("Excluding cyclic graph from statistics", zap.String("job", name))
			continue
		} else if err != nil {
			return nil, 0, fmt.Errorf("job %q: %w", name, err)
		}
		m.add(g, lv, metrics)
		fitted++
	}
	logger.Info("Fitted statistics",
		zap.Int("graphs", fitted),
		zap.Int("skipped", len(pop)-fitted),
		zap.Ints("critical_paths", m.CriticalPaths.Keys()))
	return m, fitted, nil
}

func (m *Model) add(g *taskdag.Graph, lv *taskdag.Levels, metrics []Metric) {
	cp := lv.CriticalPath
	part := Part(g.Len(), cp)
	m.CriticalPaths.Add(cp, g.Len())
	m.Levels.Add(cp, part, lv.Levels)
	for _, metric := range metrics {
		m.Generator.AddStatistic(cp, part, metric.Name, g, lv, metric.Extract)
	}
}

// Save writes the three stores into dir.
func (m *Model) Save(dir string) error {
	if err := m.CriticalPaths.Save(filepath.Join(dir, CriticalPathsFile)); err != nil {
		return err
	}
	if err := m.Levels.Save(filepath.Join(dir, LevelsFile)); err != nil {
		return err
	}
	return m.Generator.Save(filepath.Join(dir, GeneratorFile))
}

// LoadModel reads the three stores written by Model.Save.
func LoadModel(dir string) (*Model, error) {
	cps, err := LoadCriticalPaths(filepath.Join(dir, CriticalPathsFile))
	if err != nil {
		return nil, err
	}
	levels, err := LoadLevelDistribution(filepath.Join(dir, LevelsFile))
	if err != nil {
		return nil, err
	}
	gen, err := LoadGenerator(filepath.Join(dir, GeneratorFile))
	if err != nil {
		return nil, err
	}
	return &Model{CriticalPaths: cps, Levels: levels, Generator: gen}, nil
}

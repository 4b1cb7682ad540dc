// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/Ksenia-C/dataset-generation/stats"
	"github.com/Ksenia-C/dataset-generation/taskdag"
	"go.uber.org/zap"
)

// Rand is the random source threaded through a generation run.
type Rand = stats.Rand

// Engine synthesizes graphs from a model. An Engine holds no random state;
// every call takes the generator to draw from.
type Engine struct {
	model  *stats.Model
	config Config
	logger *zap.Logger
}

func NewEngine(model *stats.Model, config Config) *Engine {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		model:  model,
		config: config,
		logger: logger,
	}
}

// Generate draws a critical path length and a node count and builds a graph
// with them. It fails with stats.ErrDistributionExhausted if no source graph
// had the drawn critical path.
func (e *Engine) Generate(rng Rand) (*taskdag.Graph, error) {
	cp := e.config.MinCP
	if e.config.MaxCP > e.config.MinCP {
		cp += rng.IntN(e.config.MaxCP - e.config.MinCP)
	}
	nodeCount, err := e.model.CriticalPaths.Sample(rng, cp)
	if err != nil {
		return nil, fmt.Errorf("critical path %d: %w", cp, err)
	}
	return e.Build(rng, cp, nodeCount)
}

// Build grows a graph of nodeCount tasks whose critical path is exactly cp
// tasks long.
func (e *Engine) Build(rng Rand, cp, nodeCount int) (*taskdag.Graph, error) {
	if cp <= 0 || nodeCount < cp {
		return nil, fmt.Errorf("%w: %d tasks, critical path %d", ErrInvalidShape, nodeCount, cp)
	}
	b := &builder{
		Engine:  e,
		rng:     rng,
		cp:      cp,
		part:    e.model.Levels.AdjustPart(cp, stats.Part(nodeCount, cp)),
		graph:   taskdag.New(nodeCount),
		level:   make([]int, nodeCount),
		byLevel: make([][]int, cp),
	}
	for i := range nodeCount {
		if _, err := b.graph.AddTask(taskdag.Task{Name: fmt.Sprintf("task_%d", i)}); err != nil {
			return nil, err
		}
	}
	if err := b.seed(); err != nil {
		return nil, err
	}

	var err error
	switch e.config.Strategy {
	case StrategyForward:
		err = b.growForward()
	case StrategyBackward:
		err = b.growBackward()
	case StrategyLevel:
		err = b.linkLevels()
	default:
		err = fmt.Errorf("%w: %v", ErrUnknownStrategy, e.config.Strategy)
	}
	if err != nil {
		return nil, err
	}
	if err := b.assignInstances(); err != nil {
		return nil, err
	}
	e.logger.Debug("Built graph",
		zap.Int("critical_path", cp),
		zap.Int("part", b.part),
		zap.Int("tasks", nodeCount),
		zap.Stringer("strategy", e.config.Strategy))
	return b.graph, nil
}

// Batch generates up to n graphs. Generation stops early, without error, at
// the first critical path that no source graph had.
func (e *Engine) Batch(rng Rand, n int) ([]*taskdag.Graph, error) {
	graphs := make([]*taskdag.Graph, 0, n)
	for range n {
		g, err := e.Generate(rng)
		if errors.Is(err, stats.ErrDistributionExhausted) {
			e.logger.Warn("Statistics exhausted, stopping batch",
				zap.Int("generated", len(graphs)),
				zap.Int("requested", n),
				zap.Error(err))
			break
		} else if err != nil {
			return graphs, err
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}

// builder carries the state of one Build call.
type builder struct {
	*Engine
	rng  Rand
	cp   int
	part int

	graph *taskdag.Graph
	// level is the level every task was placed on; byLevel lists the tasks
	// of each level in placement order.
	level   []int
	byLevel [][]int
}

// seed links tasks 0 through cp-1 into a chain, one task per level.
func (b *builder) seed() error {
	for i := range b.cp {
		b.place(i, i)
		if i > 0 {
			if err := b.graph.AddDependency(i, i-1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) place(id, level int) {
	b.level[id] = level
	b.byLevel[level] = append(b.byLevel[level], id)
}

func (b *builder) isSeed(id int) bool {
	return id < b.cp
}

// drawLevel draws a level for a task outside the seed chain, clamped into
// [lo, hi].
func (b *builder) drawLevel(lo, hi int) (int, error) {
	l, err := b.model.Levels.Sample(b.rng, b.cp, b.part)
	if err != nil {
		return 0, fmt.Errorf("level of critical path %d part %d: %w", b.cp, b.part, err)
	}
	return min(max(l, lo), hi), nil
}

// drawCount draws a per-task count from the named metric.
func (b *builder) drawCount(level int, name string) (int, error) {
	v, err := b.draw(level, name)
	if err != nil {
		return 0, err
	}
	return max(0, int(math.Ceil(v))), nil
}

func (b *builder) draw(level int, name string) (float64, error) {
	v, err := b.model.Generator.Sample(b.rng, b.cp, b.part, level, name)
	if err != nil {
		return 0, fmt.Errorf("%s at critical path %d part %d level %d: %w", name, b.cp, b.part, level, err)
	}
	return v, nil
}

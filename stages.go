// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Ksenia-C/dataset-generation/instance"
	"github.com/Ksenia-C/dataset-generation/internal/chart"
	"github.com/Ksenia-C/dataset-generation/stats"
	"github.com/Ksenia-C/dataset-generation/synth"
	"github.com/Ksenia-C/dataset-generation/taskdag"
	"github.com/Ksenia-C/dataset-generation/trace"
	"go.uber.org/zap"
)

// FromCSV reads the batch task records at csvPath and writes the resulting
// population to outPath.
func (p *Pipeline) FromCSV(ctx context.Context, csvPath, outPath string) error {
	return p.run(ctx, StageFromCSV, "", func(ctx context.Context) (int, error) {
		pop, err := trace.ReadFile(csvPath)
		if err != nil {
			return 0, err
		}
		if err := pop.Save(outPath); err != nil {
			return 0, err
		}
		p.logger.Info("Read trace",
			zap.String("trace", csvPath),
			zap.Int("jobs", len(pop)))
		return len(pop), nil
	})
}

// Form splits the population at populationPath by shape into
// tree_incr.json, tree_decr.json and other.json under outDir. Chains are
// dropped.
func (p *Pipeline) Form(ctx context.Context, populationPath, outDir string) error {
	return p.run(ctx, StageForm, "", func(ctx context.Context) (int, error) {
		pop, err := taskdag.LoadPopulation(populationPath)
		if err != nil {
			return 0, err
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return 0, err
		}
		kept := 0
		parts := trace.Partition(pop)
		for _, shape := range []taskdag.Shape{taskdag.ShapeForwardTree, taskdag.ShapeReverseTree, taskdag.ShapeGeneral} {
			part := parts[shape]
			if err := part.Save(filepath.Join(outDir, shape.String()+".json")); err != nil {
				return kept, err
			}
			p.logger.Info("Partitioned graphs",
				zap.Stringer("shape", shape),
				zap.Int("graphs", len(part)))
			kept += len(part)
		}
		p.logger.Info("Dropped chains", zap.Int("graphs", len(pop)-kept))
		return kept, nil
	})
}

// Pure fits the statistics model of the population at populationPath into
// workDir/stats and keeps a random sample of its graphs in workDir/tasks,
// which it empties first.
func (p *Pipeline) Pure(ctx context.Context, populationPath, workDir string) error {
	return p.run(ctx, StagePure, workDir, func(ctx context.Context) (int, error) {
		pop, err := taskdag.LoadPopulation(populationPath)
		if err != nil {
			return 0, err
		}
		rng := p.newRand()

		if err := recreateDir(tasksDir(workDir)); err != nil {
			return 0, err
		}
		sample := pop.Sample(rng, p.config.SourceSampleCount)
		for _, job := range sample.Names() {
			if err := saveTaskGraph(tasksDir(workDir), job, withDurationFlops(sample[job])); err != nil {
				return 0, err
			}
		}

		model, fitted, err := stats.Fit(pop, stats.FitConfig{
			MaxInstances: p.config.MaxInstances,
			Logger:       p.logger,
		})
		if err != nil {
			return 0, err
		}
		if err := os.MkdirAll(statsDir(workDir), 0o755); err != nil {
			return 0, err
		}
		if err := model.Save(statsDir(workDir)); err != nil {
			return 0, err
		}
		return fitted, nil
	})
}

// Task generates up to SampleCount graphs from the model in workDir/stats
// and writes them to workDir/tasks as <n>.json and <n>.dot, replacing the
// numbered graphs of any earlier run. Running out of
// statistics ends the batch early without error.
func (p *Pipeline) Task(ctx context.Context, workDir string) error {
	return p.run(ctx, StageTask, workDir, func(ctx context.Context) (int, error) {
		model, err := stats.LoadModel(statsDir(workDir))
		if err != nil {
			return 0, err
		}
		model.CriticalPaths.Tolerance = p.config.CPTolerance

		config := p.config.synthConfig()
		config.Logger = p.logger
		graphs, err := synth.NewEngine(model, config).Batch(p.newRand(), p.config.SampleCount)
		if err != nil {
			return 0, err
		}
		if err := os.MkdirAll(tasksDir(workDir), 0o755); err != nil {
			return 0, err
		}
		if err := removeGenerated(tasksDir(workDir)); err != nil {
			return 0, err
		}
		for i, g := range graphs {
			if err := saveTaskGraph(tasksDir(workDir), strconv.Itoa(i), g); err != nil {
				return i, err
			}
		}
		return len(graphs), nil
	})
}

// Ins expands every graph in workDir/tasks into an instance graph written to
// workDir/inss under the same name. workDir/inss is emptied first.
func (p *Pipeline) Ins(ctx context.Context, workDir string) error {
	return p.run(ctx, StageIns, workDir, func(ctx context.Context) (int, error) {
		paths, err := filepath.Glob(filepath.Join(tasksDir(workDir), "*.json"))
		if err != nil {
			return 0, err
		}
		slices.Sort(paths)
		outDir := filepath.Join(workDir, InstancesDir)
		if err := recreateDir(outDir); err != nil {
			return 0, err
		}
		rng := p.newRand()
		opts := p.config.instanceOptions()
		for i, path := range paths {
			g, err := taskdag.Load(path)
			if err != nil {
				return i, err
			}
			ig, err := instance.Expand(g, rng, opts)
			if err != nil {
				return i, fmt.Errorf("%s: %w", path, err)
			}
			name := strings.TrimSuffix(filepath.Base(path), ".json")
			if err := ig.Save(filepath.Join(outDir, name+".json")); err != nil {
				return i, err
			}
			if err := ig.SaveDOT(filepath.Join(outDir, name+".dot")); err != nil {
				return i, err
			}
			p.logger.Debug("Expanded graph",
				zap.String("graph", name),
				zap.Int("tasks", g.Len()),
				zap.Int("instances", len(ig.Instances)),
				zap.Float64("ccr", ig.CCR()))
		}
		return len(paths), nil
	})
}

// Plot renders the model in workDir/stats into workDir/stats/plots: a
// histogram per statistic, a chart of its mean per level for every critical
// path, and a histogram of source graph sizes.
func (p *Pipeline) Plot(ctx context.Context, workDir string) error {
	return p.run(ctx, StagePlot, workDir, func(ctx context.Context) (int, error) {
		model, err := stats.LoadModel(statsDir(workDir))
		if err != nil {
			return 0, err
		}
		outDir := filepath.Join(statsDir(workDir), PlotsDir)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return 0, err
		}
		files := 0
		out := func(name string) string {
			files++
			return filepath.Join(outDir, name+".png")
		}

		var sizes []float64
		for _, cp := range model.CriticalPaths.Keys() {
			for _, n := range model.CriticalPaths.Sizes(cp) {
				sizes = append(sizes, float64(n))
			}
		}
		if len(sizes) > 0 {
			if err := chart.Histogram(out("node_count"), "node count", sizes, 30); err != nil {
				return files, err
			}
		}

		for _, name := range model.Generator.Names() {
			if err := chart.Histogram(out(name), name, model.Generator.All(name), 30); err != nil {
				return files, err
			}
			var series []chart.Series
			for _, cp := range model.CriticalPaths.Keys() {
				rows := model.Generator.ByLevel(name, cp)
				if len(rows) == 0 {
					continue
				}
				series = append(series, chart.Series{
					Label:  fmt.Sprintf("cp=%d", cp),
					Values: means(rows),
				})
			}
			if len(series) == 0 {
				continue
			}
			if err := chart.LevelBars(out(name+"_levels"), name+" by level", "mean", series); err != nil {
				return files, err
			}
		}
		return files, nil
	})
}

func means(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		var sum float64
		for _, v := range row {
			sum += v
		}
		out[i] = sum / float64(len(row))
	}
	return out
}

// withDurationFlops returns a copy of a source graph in which every task
// costs its traced duration, the quantity generated flops are drawn from.
func withDurationFlops(g *taskdag.Graph) *taskdag.Graph {
	out := &taskdag.Graph{Tasks: slices.Clone(g.Tasks)}
	for i := range out.Tasks {
		out.Tasks[i].Flops = float64(g.Duration(i))
	}
	return out
}

// removeGenerated deletes the numbered graphs of an earlier task run from
// dir. Source samples keep their job names and are left alone.
func removeGenerated(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if ext != ".json" && ext != ".dot" {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ext)); err != nil {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func saveTaskGraph(dir, name string, g *taskdag.Graph) error {
	if err := g.Save(filepath.Join(dir, name+".json")); err != nil {
		return err
	}
	return g.SaveDOT(filepath.Join(dir, name+".dot"))
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dataset

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/Ksenia-C/dataset-generation/internal/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stage names in pipeline order.
const (
	StageFromCSV = "from_csv"
	StageForm    = "form"
	StagePure    = "pure"
	StageTask    = "task"
	StageIns     = "ins"
	StagePlot    = "plot"
)

// Stages lists the stages that produce a dataset, in order.
var Stages = []string{StageFromCSV, StageForm, StagePure, StageTask, StageIns}

// Subdirectories of a working directory.
const (
	StatsDir     = "stats"
	TasksDir     = "tasks"
	InstancesDir = "inss"
	PlotsDir     = "plots"
)

// Pipeline runs stages with one configuration. Every stage run draws from a
// fresh generator seeded with the pipeline seed, so rerunning a stage
// reproduces its output.
type Pipeline struct {
	config Config
	seed   uint64
	runID  string
	logger *zap.Logger
}

// New returns a pipeline for config. A nil logger means zap.L().
func New(config Config, logger *zap.Logger) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.L()
	}
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	runID := uuid.NewString()
	return &Pipeline{
		config: config,
		seed:   seed,
		runID:  runID,
		logger: logger.With(zap.String("run_id", runID)),
	}, nil
}

func (p *Pipeline) Config() Config { return p.config }
func (p *Pipeline) Seed() uint64   { return p.seed }
func (p *Pipeline) RunID() string  { return p.runID }

func (p *Pipeline) newRand() *rand.Rand {
	return rand.New(rand.NewPCG(p.seed, p.seed^0x9e3779b97f4a7c15))
}

// run instruments a stage and, if workDir is set, records it in the
// working directory's manifest.
func (p *Pipeline) run(ctx context.Context, stage, workDir string, fn telemetry.StageFunc) error {
	n, err := telemetry.Instrumented(stage, fn)(ctx)
	if err != nil || workDir == "" {
		return err
	}
	m := &Manifest{
		RunID:    p.runID,
		Stage:    stage,
		Seed:     p.seed,
		Items:    n,
		Finished: time.Now().UTC(),
		Config:   p.config,
	}
	return m.Save(workDir)
}

// recreateDir removes dir and everything in it and creates it again empty.
func recreateDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

func statsDir(workDir string) string { return filepath.Join(workDir, StatsDir) }
func tasksDir(workDir string) string { return filepath.Join(workDir, TasksDir) }

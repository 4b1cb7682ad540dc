// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	dataset "github.com/Ksenia-C/dataset-generation"
	"github.com/Ksenia-C/dataset-generation/instance"
	"github.com/Ksenia-C/dataset-generation/synth"
	"github.com/spf13/cobra"
)

// Values of the stage flags. A flag only overrides the configuration when
// it was given on the command line.
var overrides struct {
	minCP, maxCP, cpTolerance int
	sampleCount               int
	sourceSampleCount         int
	maxInstances              uint64
	strategy                  string
	connectOrphans            bool
	ccr                       float64
	pattern                   string
}

var (
	fromCSVCmd = &cobra.Command{
		Use:   dataset.StageFromCSV + " <trace.csv> <population.json>",
		Short: "Read a batch task trace into a population of task graphs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.FromCSV(cmd.Context(), args[0], args[1])
		},
	}
	formCmd = &cobra.Command{
		Use:   dataset.StageForm + " <population.json> <outdir>",
		Short: "Split a population by graph shape, dropping chains",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.Form(cmd.Context(), args[0], args[1])
		},
	}
	pureCmd = &cobra.Command{
		Use:   dataset.StagePure + " <population.json> <workdir>",
		Short: "Fit graph statistics and keep a sample of the source graphs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.Pure(cmd.Context(), args[0], args[1])
		},
	}
	taskCmd = &cobra.Command{
		Use:   dataset.StageTask + " <workdir>",
		Short: "Generate task graphs from the fitted statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.Task(cmd.Context(), args[0])
		},
	}
	insCmd = &cobra.Command{
		Use:   dataset.StageIns + " <workdir>",
		Short: "Expand every task graph into an instance graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.Ins(cmd.Context(), args[0])
		},
	}
	plotCmd = &cobra.Command{
		Use:   dataset.StagePlot + " <workdir>",
		Short: "Render charts of the fitted statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.Plot(cmd.Context(), args[0])
		},
	}
)

func init() {
	defaults := dataset.DefaultConfig()

	pureCmd.Flags().IntVar(&overrides.sourceSampleCount, "source-sample-count", defaults.SourceSampleCount,
		"number of source graphs to keep in the tasks directory")
	pureCmd.Flags().Uint64Var(&overrides.maxInstances, "max-instances", defaults.MaxInstances,
		"instance count cap applied to source tasks")

	flags := taskCmd.Flags()
	flags.IntVar(&overrides.minCP, "min-cp", defaults.MinCP, "smallest critical path to generate")
	flags.IntVar(&overrides.maxCP, "max-cp", defaults.MaxCP, "critical paths are drawn below this bound")
	flags.IntVar(&overrides.cpTolerance, "cp-tolerance", defaults.CPTolerance,
		"how far a critical path may be from a fitted one and still borrow its sizes")
	flags.IntVar(&overrides.sampleCount, "sample-count", defaults.SampleCount, "number of graphs to generate")
	flags.Uint64Var(&overrides.maxInstances, "max-instances", defaults.MaxInstances, "instance count cap")
	flags.StringVar(&overrides.strategy, "strategy", defaults.Strategy.String(),
		"edge builder: other, incr or decr")
	flags.BoolVar(&overrides.connectOrphans, "connect-orphans", defaults.ConnectOrphans,
		"give every parentless task below the first level a parent")

	insCmd.Flags().Float64Var(&overrides.ccr, "ccr", defaults.CCR, "communication to computation ratio")
	insCmd.Flags().StringVar(&overrides.pattern, "pattern", defaults.Pattern.String(),
		"instance wiring between dependent tasks: random, all or matched")

	rootCmd.AddCommand(fromCSVCmd, formCmd, pureCmd, taskCmd, insCmd, plotCmd)
}

// applyOverrides copies the stage flags given on the command line into the
// configuration.
func applyOverrides(cmd *cobra.Command) error {
	changed := cmd.Flags().Changed
	if changed("min-cp") {
		config.MinCP = overrides.minCP
	}
	if changed("max-cp") {
		config.MaxCP = overrides.maxCP
	}
	if changed("cp-tolerance") {
		config.CPTolerance = overrides.cpTolerance
	}
	if changed("sample-count") {
		config.SampleCount = overrides.sampleCount
	}
	if changed("source-sample-count") {
		config.SourceSampleCount = overrides.sourceSampleCount
	}
	if changed("max-instances") {
		config.MaxInstances = overrides.maxInstances
	}
	if changed("connect-orphans") {
		config.ConnectOrphans = overrides.connectOrphans
	}
	if changed("ccr") {
		config.CCR = overrides.ccr
	}
	if changed("strategy") {
		s, err := synth.ParseStrategy(overrides.strategy)
		if err != nil {
			return err
		}
		config.Strategy = s
	}
	if changed("pattern") {
		p, err := instance.ParsePattern(overrides.pattern)
		if err != nil {
			return err
		}
		config.Pattern = p
	}
	return config.Validate()
}

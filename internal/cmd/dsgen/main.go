// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command dsgen turns a cluster batch task trace into a dataset of synthetic
// workflow graphs, one stage at a time.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	dataset "github.com/Ksenia-C/dataset-generation"
	"github.com/Ksenia-C/dataset-generation/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	seed       uint64
	debug      bool
	traceSpans bool

	config   dataset.Config
	logger   = zap.NewNop()
	cleanups []func(context.Context) error

	rootCmd = &cobra.Command{
		Use:   "dsgen <stage> [args]",
		Short: "Generate synthetic workflow datasets from cluster traces",
		Long: `dsgen reads a batch task trace, fits statistics of its workflow graphs and
generates new task and instance graphs from them. Stages run one at a time:

  ` + stageSequence(),
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), stageSequence())
			_ = cmd.Usage()
		},
	}
)

func stageSequence() string {
	return strings.Join(dataset.Stages, " -> ")
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "dsgen.yaml", "YAML configuration file; defaults apply if it does not exist")
	flags.Uint64Var(&seed, "seed", 0, "random seed; 0 picks one from the clock")
	flags.BoolVar(&debug, "debug", false, "log at debug level in a human readable format")
	flags.BoolVar(&traceSpans, "trace", false, "print stage spans to stdout")
}

// setup loads the configuration, applies flag overrides and installs the
// logger and tracer.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if config, err = dataset.LoadConfig(configPath); err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		config.Seed = seed
	}
	if err := applyOverrides(cmd); err != nil {
		return err
	}

	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	cleanups = append(cleanups, func(context.Context) error {
		_ = logger.Sync()
		return nil
	})

	if traceSpans {
		shutdown, err := telemetry.InstallStdoutTracer(os.Stdout)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, shutdown)
	}
	return nil
}

func newPipeline() (*dataset.Pipeline, error) {
	p, err := dataset.New(config, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configured pipeline",
		zap.String("run_id", p.RunID()),
		zap.Uint64("seed", p.Seed()))
	return p, nil
}

func execute(ctx context.Context) error {
	defer func() {
		// Run in reverse so the tracer flushes before the logger syncs.
		for i := len(cleanups) - 1; i >= 0; i-- {
			if err := cleanups[i](context.Background()); err != nil {
				fmt.Fprintln(os.Stderr, "dsgen:", err)
			}
		}
		cleanups = nil
	}()
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

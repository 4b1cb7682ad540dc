// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/Ksenia-C/dataset-generation/instance"
	"github.com/Ksenia-C/dataset-generation/synth"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a run.
type Config struct {
	// Critical paths of synthesized graphs are drawn from [MinCP, MaxCP).
	MinCP int `yaml:"min_cp"`
	MaxCP int `yaml:"max_cp"`

	// CPTolerance is how far a critical path may be from one seen in the
	// source graphs and still borrow its node counts.
	CPTolerance int `yaml:"cp_tolerance"`

	// SampleCount is the number of graphs the task stage generates.
	SampleCount int `yaml:"sample_count"`

	// SourceSampleCount is the number of source graphs the pure stage keeps
	// in tasks/ next to the fitted model.
	SourceSampleCount int `yaml:"source_sample_count"`

	CCR            float64          `yaml:"ccr"`
	MaxInstances   uint64           `yaml:"max_instances"`
	Strategy       synth.Strategy   `yaml:"strategy"`
	ConnectOrphans bool             `yaml:"connect_orphans"`
	Pattern        instance.Pattern `yaml:"pattern"`

	// Seed seeds the random generator of every stage; 0 picks a seed from
	// the clock.
	Seed uint64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		MinCP:             synth.DefaultConfig.MinCP,
		MaxCP:             synth.DefaultConfig.MaxCP,
		SampleCount:       100,
		SourceSampleCount: 38,
		CCR:               instance.DefaultOptions.CCR,
		MaxInstances:      synth.DefaultConfig.MaxInstances,
		Strategy:          synth.DefaultConfig.Strategy,
		Pattern:           instance.DefaultOptions.Pattern,
	}
}

// LoadConfig reads a YAML configuration. Keys missing from the file keep
// their default values, and a missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	} else if err != nil {
		return config, fmt.Errorf("failed to read the config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports every out of range tunable.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.MinCP >= 1, "min_cp %d is below 1", c.MinCP)
	check(c.MaxCP >= 0, "max_cp %d is negative", c.MaxCP)
	check(c.CPTolerance >= 0, "cp_tolerance %d is negative", c.CPTolerance)
	check(c.SampleCount >= 0, "sample_count %d is negative", c.SampleCount)
	check(c.SourceSampleCount >= 0, "source_sample_count %d is negative", c.SourceSampleCount)
	check(c.CCR > 0 && !math.IsInf(c.CCR, 1), "ccr %v is not a positive finite number", c.CCR)
	check(c.MaxInstances >= 1, "max_instances must be at least 1")
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (c Config) synthConfig() synth.Config {
	return synth.Config{
		MinCP:          c.MinCP,
		MaxCP:          c.MaxCP,
		MaxInstances:   c.MaxInstances,
		Strategy:       c.Strategy,
		ConnectOrphans: c.ConnectOrphans,
	}
}

func (c Config) instanceOptions() instance.Options {
	return instance.Options{CCR: c.CCR, Pattern: c.Pattern}
}

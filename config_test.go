// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	dataset "github.com/Ksenia-C/dataset-generation"
	"github.com/Ksenia-C/dataset-generation/instance"
	"github.com/Ksenia-C/dataset-generation/synth"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	chk := require.New(t)
	config, err := dataset.LoadConfig("")
	chk.NoError(err)
	chk.Equal(dataset.DefaultConfig(), config)

	config, err = dataset.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	chk.NoError(err)
	chk.Equal(dataset.DefaultConfig(), config)

	config, err = dataset.LoadConfig(writeFile(t, "empty.yaml", ""))
	chk.NoError(err)
	chk.Equal(dataset.DefaultConfig(), config)

	def := dataset.DefaultConfig()
	chk.Equal(5, def.MinCP)
	chk.Equal(7, def.MaxCP)
	chk.Equal(100, def.SampleCount)
	chk.Equal(38, def.SourceSampleCount)
	chk.Equal(11.0, def.CCR)
	chk.Equal(synth.StrategyLevel, def.Strategy)
	chk.Equal(instance.PatternRandom, def.Pattern)
}

func TestLoadConfigOverrides(t *testing.T) {
	chk := require.New(t)
	config, err := dataset.LoadConfig(writeFile(t, "run.yaml", `
min_cp: 3
max_cp: 9
strategy: decr
pattern: matched
connect_orphans: true
seed: 42
`))
	chk.NoError(err)
	expected := dataset.DefaultConfig()
	expected.MinCP = 3
	expected.MaxCP = 9
	expected.Strategy = synth.StrategyBackward
	expected.Pattern = instance.PatternMatched
	expected.ConnectOrphans = true
	expected.Seed = 42
	chk.Equal(expected, config)
}

func TestLoadConfigRejects(t *testing.T) {
	for name, content := range map[string]string{
		"unknown key":      "nodes: 4\n",
		"unknown strategy": "strategy: sideways\n",
		"unknown pattern":  "pattern: mesh\n",
		"bad ccr":          "ccr: 0\n",
		"bad cp":           "min_cp: 0\n",
		"bad yaml":         "min_cp: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := dataset.LoadConfig(writeFile(t, "bad.yaml", content))
			require.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	chk := require.New(t)
	config := dataset.DefaultConfig()
	chk.NoError(config.Validate())

	config.CCR = -1
	config.MaxInstances = 0
	config.SampleCount = -5
	err := config.Validate()
	chk.ErrorIs(err, dataset.ErrInvalidConfig)
	chk.ErrorContains(err, "ccr -1 is not a positive finite number")
	chk.ErrorContains(err, "max_instances")
	chk.ErrorContains(err, "sample_count -5")
}

func TestConfigSaveLoad(t *testing.T) {
	chk := require.New(t)
	config := dataset.DefaultConfig()
	config.Strategy = synth.StrategyForward
	config.Pattern = instance.PatternAll
	config.CPTolerance = 2
	path := filepath.Join(t.TempDir(), "config.yaml")
	chk.NoError(config.Save(path))

	data, err := os.ReadFile(path)
	chk.NoError(err)
	chk.Contains(string(data), "strategy: incr")
	chk.Contains(string(data), "pattern: all")

	loaded, err := dataset.LoadConfig(path)
	chk.NoError(err)
	chk.Equal(config, loaded)
}

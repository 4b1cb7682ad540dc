// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the manifest's name inside a working directory.
const ManifestFile = "manifest.yaml"

// Manifest describes the last stage run in a working directory.
type Manifest struct {
	RunID    string    `yaml:"run_id"`
	Stage    string    `yaml:"stage"`
	Seed     uint64    `yaml:"seed"`
	Items    int       `yaml:"items"`
	Finished time.Time `yaml:"finished"`
	Config   Config    `yaml:"config"`
}

// Save writes the manifest into workDir, replacing any earlier one.
func (m *Manifest) Save(workDir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(workDir, ManifestFile), data, 0o644)
}

// LoadManifest reads the manifest of workDir.
func LoadManifest(workDir string) (*Manifest, error) {
	path := filepath.Join(workDir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

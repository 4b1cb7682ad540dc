// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const documentVersion = 1

const (
	kindCriticalPaths = "cp_ranges"
	kindLevels        = "level_distribute"
	kindGenerator     = "level_generator"
)

type document[E any] struct {
	Kind    string `json:"kind"`
	Version int    `json:"version"`
	Entries []E    `json:"entries"`
}

type criticalPathEntry struct {
	CP      int   `json:"cp"`
	Samples []int `json:"samples"`
}

type levelEntry struct {
	CP     int   `json:"cp"`
	Part   int   `json:"part"`
	Levels []int `json:"levels"`
}

type generatorEntry struct {
	CP      int       `json:"cp"`
	Part    int       `json:"part"`
	Level   int       `json:"level"`
	Name    string    `json:"name"`
	Samples []float64 `json:"samples"`
}

// Encode writes the store as a JSON document in key order.
func (c *CriticalPaths) Encode(w io.Writer) error {
	doc := document[criticalPathEntry]{Kind: kindCriticalPaths, Version: documentVersion}
	for _, cp := range c.sortedKeys() {
		doc.Entries = append(doc.Entries, criticalPathEntry{CP: cp, Samples: c.sizes[cp]})
	}
	return encode(w, doc)
}

// DecodeCriticalPaths reads a document written by CriticalPaths.Encode.
func DecodeCriticalPaths(r io.Reader) (*CriticalPaths, error) {
	doc, err := decode[criticalPathEntry](r, kindCriticalPaths)
	if err != nil {
		return nil, err
	}
	c := NewCriticalPaths()
	for i, e := range doc.Entries {
		if e.CP <= 0 || len(e.Samples) == 0 || c.sizes[e.CP] != nil {
			return nil, fmt.Errorf("%w: entry %d: cp=%d with %d samples", ErrMalformedStore, i, e.CP, len(e.Samples))
		}
		for _, n := range e.Samples {
			if n <= 0 {
				return nil, fmt.Errorf("%w: entry %d: node count %d", ErrMalformedStore, i, n)
			}
			c.Add(e.CP, n)
		}
	}
	return c, nil
}

// Encode writes the store as a JSON document in key order.
func (d *LevelDistribution) Encode(w io.Writer) error {
	doc := document[levelEntry]{Kind: kindLevels, Version: documentVersion}
	for _, k := range d.sortedKeys() {
		doc.Entries = append(doc.Entries, levelEntry{CP: k.CP, Part: k.Part, Levels: d.levels[k]})
	}
	return encode(w, doc)
}

// DecodeLevelDistribution reads a document written by
// LevelDistribution.Encode.
func DecodeLevelDistribution(r io.Reader) (*LevelDistribution, error) {
	doc, err := decode[levelEntry](r, kindLevels)
	if err != nil {
		return nil, err
	}
	d := NewLevelDistribution()
	for i, e := range doc.Entries {
		k := partKey{e.CP, e.Part}
		if e.CP <= 0 || e.Part < 0 || len(e.Levels) == 0 || d.levels[k] != nil {
			return nil, fmt.Errorf("%w: entry %d: cp=%d part=%d", ErrMalformedStore, i, e.CP, e.Part)
		}
		for _, l := range e.Levels {
			if l < 0 || l >= e.CP {
				return nil, fmt.Errorf("%w: entry %d: level %d outside critical path %d", ErrMalformedStore, i, l, e.CP)
			}
		}
		d.Add(e.CP, e.Part, e.Levels)
	}
	return d, nil
}

// Encode writes the store as a JSON document in key order.
func (s *Generator) Encode(w io.Writer) error {
	doc := document[generatorEntry]{Kind: kindGenerator, Version: documentVersion}
	for _, k := range s.sortedKeys() {
		doc.Entries = append(doc.Entries, generatorEntry{
			CP: k.CP, Part: k.Part, Level: k.Level, Name: k.Name, Samples: s.samples[k],
		})
	}
	return encode(w, doc)
}

// DecodeGenerator reads a document written by Generator.Encode.
func DecodeGenerator(r io.Reader) (*Generator, error) {
	doc, err := decode[generatorEntry](r, kindGenerator)
	if err != nil {
		return nil, err
	}
	s := NewGenerator()
	for i, e := range doc.Entries {
		k := levelKey{e.CP, e.Part, e.Level, e.Name}
		if e.CP <= 0 || e.Part < 0 || e.Level < 0 || e.Level >= e.CP || e.Name == "" ||
			len(e.Samples) == 0 || s.samples[k] != nil {
			return nil, fmt.Errorf("%w: entry %d: cp=%d part=%d level=%d name=%q",
				ErrMalformedStore, i, e.CP, e.Part, e.Level, e.Name)
		}
		s.Add(e.CP, e.Part, e.Level, e.Name, e.Samples...)
	}
	return s, nil
}

// Save writes the store to path.
func (c *CriticalPaths) Save(path string) error { return save(path, c.Encode) }

// Save writes the store to path.
func (d *LevelDistribution) Save(path string) error { return save(path, d.Encode) }

// Save writes the store to path.
func (s *Generator) Save(path string) error { return save(path, s.Encode) }

// LoadCriticalPaths reads the store saved at path.
func LoadCriticalPaths(path string) (*CriticalPaths, error) {
	return load(path, DecodeCriticalPaths)
}

// LoadLevelDistribution reads the store saved at path.
func LoadLevelDistribution(path string) (*LevelDistribution, error) {
	return load(path, DecodeLevelDistribution)
}

// LoadGenerator reads the store saved at path.
func LoadGenerator(path string) (*Generator, error) {
	return load(path, DecodeGenerator)
}

func encode[E any](w io.Writer, doc document[E]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func decode[E any](r io.Reader, kind string) (*document[E], error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc document[E]
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedStore, err)
	}
	if doc.Kind != kind {
		return nil, fmt.Errorf("%w: kind %q, expected %q", ErrMalformedStore, doc.Kind, kind)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedStore, doc.Version)
	}
	return &doc, nil
}

func save(path string, encode func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func load[S any](path string, decode func(io.Reader) (S, error)) (S, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero S
		return zero, err
	}
	defer f.Close()
	s, err := decode(f)
	if err != nil {
		var zero S
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

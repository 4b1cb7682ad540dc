// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package taskdag

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Save writes g to path as a JSON document.
func (g *Graph) Save(path string) error {
	return writeJSON(path, g)
}

// Load reads a graph written by Save.
func Load(path string) (*Graph, error) {
	var g Graph
	if err := readJSON(path, &g); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &g, nil
}

// Save writes the population to path as a JSON object keyed by job.
func (p Population) Save(path string) error {
	return writeJSON(path, p)
}

// LoadPopulation reads a population written by Population.Save.
func LoadPopulation(path string) (Population, error) {
	p := make(Population)
	if err := readJSON(path, &p); err != nil {
		return nil, err
	}
	for _, name := range p.Names() {
		if p[name] == nil {
			return nil, fmt.Errorf("%s: job %q: %w", path, name, ErrInvalidNode)
		}
		if err := p[name].Validate(); err != nil {
			return nil, fmt.Errorf("%s: job %q: %w", path, name, err)
		}
	}
	return p, nil
}

// SaveDOT writes g to path in Graphviz DOT format.
func (g *Graph) SaveDOT(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.WriteDOT(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteDOT renders g as a DOT digraph. Edges point from dependency to
// dependent and nodes are labelled with their instance count and cost.
func (g *Graph) WriteDOT(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	for i, t := range g.Tasks {
		fmt.Fprintf(&sb, "    %d [label=%s instance_cnt=%d flops=%s]\n",
			i, strconv.Quote(t.Name), t.InstanceCount, strconv.FormatFloat(t.Flops, 'g', -1, 64))
	}
	for i, t := range g.Tasks {
		for _, d := range t.Dependencies {
			fmt.Fprintf(&sb, "    %d -> %d\n", d, i)
		}
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

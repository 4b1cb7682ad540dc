// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package instance

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
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a graph written by Save.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &g, nil
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

// WriteDOT renders g as a DOT digraph with transfer sizes on the edges.
func (g *Graph) WriteDOT(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	for i, inst := range g.Instances {
		fmt.Fprintf(&sb, "    %d [label=%s flops=%s]\n", i, strconv.Quote(inst.Name), formatFloat(inst.Flops))
	}
	for i, inst := range g.Instances {
		for _, t := range inst.Dependencies {
			fmt.Fprintf(&sb, "    %d -> %d [size=%s]\n", t.From, i, formatFloat(t.Data))
		}
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

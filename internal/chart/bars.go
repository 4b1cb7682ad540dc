// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chart

import (
	"fmt"

	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Series is one group of bars, one bar per level.
type Series struct {
	Label  string
	Values []float64
}

// LevelBars writes a grouped bar chart to path with one group per level and
// one bar per series within each group.
func LevelBars(path, title, yLabel string, series []Series) error {
	levels := 0
	for _, s := range series {
		levels = max(levels, len(s.Values))
	}
	if levels == 0 {
		return fmt.Errorf("%s: %w", title, ErrNoData)
	}

	p := newPlot(title, "level", yLabel)
	// The Paired palette has at least 3 colors.
	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", min(max(len(series), 3), 12))
	if err != nil {
		return err
	}
	colors := palette.Colors()

	barSpacing := vg.Points(2)
	barWidth := vg.Points(min(24, 160/float64(len(series))))
	groupWidth := (barWidth + barSpacing) * vg.Length(len(series)-1)

	for i, s := range series {
		values := make(plotter.Values, levels)
		copy(values, s.Values)
		bc, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bc.Offset = (barWidth+barSpacing)*vg.Length(i) - groupWidth/2
		bc.Color = colors[i%len(colors)]
		bc.LineStyle.Width = 0
		p.Add(bc)
		p.Legend.Add(s.Label, bc)
	}

	names := make([]string, levels)
	for l := range names {
		names[l] = fmt.Sprint(l)
	}
	p.NominalX(names...)
	p.Y.Min = 0
	return p.Save(width, height, path)
}

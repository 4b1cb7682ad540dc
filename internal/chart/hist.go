// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/plotter"
)

// Histogram writes a histogram of values to path.
func Histogram(path, title string, values []float64, bins int) error {
	if len(values) == 0 {
		return fmt.Errorf("%s: %w", title, ErrNoData)
	}
	p := newPlot(title, "value", "observations")
	h, err := plotter.NewHist(plotter.Values(values), max(bins, 1))
	if err != nil {
		return err
	}
	h.FillColor = color.Gray{128}
	h.LineStyle.Width = 0
	p.Add(h)
	return p.Save(width, height, path)
}

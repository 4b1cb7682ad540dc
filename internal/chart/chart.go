// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package chart renders fitted statistics as images. The output format
// follows the file extension: .png, .svg, .pdf and so on.
package chart

import (
	"image/color"

	"github.com/Ksenia-C/dataset-generation/internal/cerr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

const ErrNoData = cerr.Error("nothing to plot")

var (
	width  = 9 * vg.Inch
	height = 6 * vg.Inch
)

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()

	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	p.Title.TextStyle.Color = color.Gray{96}
	p.X.Color = color.Gray{128}
	p.Y.Color = color.Gray{128}
	p.X.Label.TextStyle.Color = color.Gray{96}
	p.Y.Label.TextStyle.Color = color.Gray{96}
	p.X.Tick.Color = color.Gray{128}
	p.Y.Tick.Color = color.Gray{128}
	p.X.Tick.Label.Color = color.Gray{96}
	p.Y.Tick.Label.Color = color.Gray{96}
	p.Legend.TextStyle.Color = color.Gray{96}

	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.BackgroundColor = color.White
	return p
}

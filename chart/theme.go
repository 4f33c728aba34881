// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import "image/color"

// Theme holds the presentation constants used when building figures.
// Themes are passed by value; resolvers never modify them.
type Theme struct {
	// Width and Height are the default figure size in pixels.
	Width, Height int

	// PairPanel is the size in pixels of each PairPlot panel.
	PairPanel int

	// PairBins is the bin count of PairPlot diagonal histograms.
	PairBins int

	// DensityPoints is the number of points at which KDE curves
	// are sampled.
	DensityPoints int

	// BarFill fills histogram and count bars.
	BarFill color.Color

	// Outline strokes bars, wedges, boxes, and tiles.
	Outline color.Color

	// Curve strokes density curves and line plots.
	Curve color.Color

	// Palette colors hue levels and pie wedges, cycling when there
	// are more levels than colors.
	Palette []color.Color
}

// levelColor returns the palette color for level i.
func (th Theme) levelColor(i int) color.Color {
	if len(th.Palette) == 0 {
		return th.BarFill
	}
	return th.Palette[i%len(th.Palette)]
}

// DefaultTheme returns the theme used when none is given: an 8×6 inch
// figure at 100 dpi.
func DefaultTheme() Theme {
	return Theme{
		Width:         800,
		Height:        600,
		PairPanel:     250,
		PairBins:      10,
		DensityPoints: 200,
		BarFill:       color.RGBA{0x00, 0x78, 0xd4, 0xff},
		Outline:       color.White,
		Curve:         color.RGBA{0x33, 0x33, 0x33, 0xff},
		Palette: []color.Color{
			color.RGBA{0x48, 0x78, 0xd0, 0xff},
			color.RGBA{0xee, 0x85, 0x4a, 0xff},
			color.RGBA{0x6a, 0xcc, 0x64, 0xff},
			color.RGBA{0xd6, 0x5f, 0x5f, 0xff},
			color.RGBA{0x95, 0x6c, 0xb4, 0xff},
			color.RGBA{0x8c, 0x61, 0x3c, 0xff},
			color.RGBA{0xdc, 0x7e, 0xc0, 0xff},
			color.RGBA{0x79, 0x79, 0x79, 0xff},
			color.RGBA{0xd5, 0xbb, 0x67, 0xff},
			color.RGBA{0x82, 0xc6, 0xe2, 0xff},
		},
	}
}

// withDefaults returns th with each zero or nil field replaced by the
// corresponding field of DefaultTheme.
func (th Theme) withDefaults() Theme {
	def := DefaultTheme()
	if th.Width <= 0 {
		th.Width = def.Width
	}
	if th.Height <= 0 {
		th.Height = def.Height
	}
	if th.PairPanel <= 0 {
		th.PairPanel = def.PairPanel
	}
	if th.PairBins <= 0 {
		th.PairBins = def.PairBins
	}
	if th.DensityPoints < 2 {
		th.DensityPoints = def.DensityPoints
	}
	if th.BarFill == nil {
		th.BarFill = def.BarFill
	}
	if th.Outline == nil {
		th.Outline = def.Outline
	}
	if th.Curve == nil {
		th.Curve = def.Curve
	}
	if len(th.Palette) == 0 {
		th.Palette = def.Palette
	}
	return th
}

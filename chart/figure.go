// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/google/uuid"
)

// Bin is one histogram bar. Lo and Hi are in data units even when the
// axis is logarithmic.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Bar is one count bar, drawn at X position Pos.
type Bar struct {
	Label   string
	Missing bool
	Count   int
	Pos     float64
}

// Wedge is one pie slice. Angles are in degrees counter-clockwise
// from the positive X axis.
type Wedge struct {
	Label      string
	Missing    bool
	Count      int
	Fraction   float64
	Start, End float64

	// Pct is the slice label, formatted like "37.5%".
	Pct string
}

// Box is one box-and-whisker glyph.
type Box struct {
	Group, Hue string
	HueLevel   int

	// Pos is the X position of the box center; Width its width.
	Pos, Width float64

	N                    int
	Q1, Median, Q3       float64
	WhiskerLo, WhiskerHi float64
	Outliers             []float64
}

// Violin is one mirrored density outline.
type Violin struct {
	Group, Hue string
	HueLevel   int
	Pos, Width float64
	N          int
	Median     float64

	// Ys are the points at which the density was sampled and
	// HalfWidths the half-width of the violin at each. Both are
	// empty for groups too small to estimate a density.
	Ys, HalfWidths []float64
}

// Point is one scatter or line vertex, in data units.
type Point struct {
	X, Y float64

	// Hue is the text of the Hue column for this row, or "" if no
	// Hue is bound. HueLevel indexes Figure.HueLevels.
	Hue      string
	HueLevel int

	// Segment numbers the unbroken runs of a line plot. A row with
	// a missing value ends the current run.
	Segment int
}

// Cell is one heatmap tile. Row and Col index CorrelationView.Columns.
type Cell struct {
	Row, Col int
	Value    float64
	Label    string
}

// Panel is one PairPlot subplot. Row and Col index the plotted
// columns; the grid only has panels with Row >= Col.
type Panel struct {
	Row, Col   int
	XVar, YVar string
	Diagonal   bool

	// Bins is the diagonal histogram. Points are the off-diagonal
	// scatter, with missing pairs dropped.
	Bins   []Bin
	Points []Point
}

// Figure is a resolved chart: everything needed to draw it plus its
// title and axis metadata. A Figure is never modified after it is
// returned.
type Figure struct {
	// ID and Created are assigned by the owner of the figure, such
	// as a pipeline.Pipeline.
	ID      uuid.UUID
	Created time.Time

	Kind  Kind
	Title string

	XLabel, YLabel string

	// LogX and LogY mark base-10 log axes.
	LogX, LogY bool

	// Width and Height are the suggested size in pixels.
	Width, Height int

	// View is the derived data the figure was resolved from.
	View View

	// Categories label integer X positions 0, 1, ... for kinds
	// with a categorical X axis. For heatmaps, they also label
	// the Y positions.
	Categories []string

	// HueLevels are the distinct Hue labels, in first-seen order.
	HueLevels []string

	// Drawables. Which are set depends on Kind.
	Bins    []Bin
	Curve   []Point
	Bars    []Bar
	Wedges  []Wedge
	Boxes   []Box
	Violins []Violin
	Points  []Point
	Cells   []Cell
	Panels  []Panel

	// Notices raised while producing the figure.
	Notices []Notice

	theme Theme
}

// Plot builds a go-gg plot of f. Each call returns a new Plot.
func (f *Figure) Plot() *gg.Plot {
	return buildPlot(f)
}

// WriteSVG renders f to w as SVG at its suggested size.
func (f *Figure) WriteSVG(w io.Writer) error {
	return f.Plot().WriteSVG(w, f.Width, f.Height)
}

// Table returns the figure's drawables as a table, one row per
// glyph.
func (f *Figure) Table() *table.Table {
	b := new(table.Builder)
	switch f.Kind {
	case Histogram:
		var lo, hi []float64
		var count []int
		for _, bin := range f.Bins {
			lo = append(lo, bin.Lo)
			hi = append(hi, bin.Hi)
			count = append(count, bin.Count)
		}
		b.Add("lo", lo).Add("hi", hi).Add("count", count)

	case BarCounts:
		var label []string
		var count []int
		for _, bar := range f.Bars {
			label = append(label, bar.Label)
			count = append(count, bar.Count)
		}
		b.Add(f.XLabel, label).Add("count", count)

	case Pie:
		var label, pct []string
		var count []int
		for _, w := range f.Wedges {
			label = append(label, w.Label)
			count = append(count, w.Count)
			pct = append(pct, w.Pct)
		}
		b.Add(f.XLabel, label).Add("count", count).Add("percent", pct)

	case BoxPlot:
		var group, hue, outliers []string
		var n []int
		var q1, med, q3, lo, hi []float64
		for _, box := range f.Boxes {
			group = append(group, box.Group)
			hue = append(hue, box.Hue)
			n = append(n, box.N)
			q1 = append(q1, box.Q1)
			med = append(med, box.Median)
			q3 = append(q3, box.Q3)
			lo = append(lo, box.WhiskerLo)
			hi = append(hi, box.WhiskerHi)
			outliers = append(outliers, formatFloats(box.Outliers))
		}
		b.Add(f.XLabel, group)
		if f.HueLevels != nil {
			b.Add("hue", hue)
		}
		b.Add("n", n).Add("q1", q1).Add("median", med).Add("q3", q3).
			Add("whisker lo", lo).Add("whisker hi", hi).Add("outliers", outliers)

	case ViolinPlot:
		var group, hue []string
		var n []int
		var med []float64
		for _, v := range f.Violins {
			group = append(group, v.Group)
			hue = append(hue, v.Hue)
			n = append(n, v.N)
			med = append(med, v.Median)
		}
		b.Add(f.XLabel, group)
		if f.HueLevels != nil {
			b.Add("hue", hue)
		}
		b.Add("n", n).Add("median", med)

	case ScatterPlot, LinePlot:
		var xs, ys []float64
		var hue []string
		for _, p := range f.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			hue = append(hue, p.Hue)
		}
		b.Add(f.XLabel, xs).Add(f.YLabel, ys)
		if f.HueLevels != nil {
			b.Add("hue", hue)
		}

	case CorrelationHeatmap:
		var row, col []string
		var r []float64
		for _, c := range f.Cells {
			row = append(row, f.Categories[c.Row])
			col = append(col, f.Categories[c.Col])
			r = append(r, c.Value)
		}
		b.Add("row", row).Add("column", col).Add("r", r)

	case PairPlot:
		var xv, yv, kind []string
		var n []int
		for _, p := range f.Panels {
			xv = append(xv, p.XVar)
			yv = append(yv, p.YVar)
			if p.Diagonal {
				kind = append(kind, "histogram")
				total := 0
				for _, bin := range p.Bins {
					total += bin.Count
				}
				n = append(n, total)
			} else {
				kind = append(kind, "scatter")
				n = append(n, len(p.Points))
			}
		}
		b.Add("x", xv).Add("y", yv).Add("panel", kind).Add("n", n)
	}
	return b.Done()
}

func formatFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%.6g", x)
	}
	return strings.Join(parts, " ")
}

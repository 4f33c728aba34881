// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
)

// Every figure is drawn from a single table. Each glyph is one
// "shape" group of points; polygons repeat their first point because
// go-gg paths are open. The "layer" column selects which mark draws
// a row.
const (
	layerFill   = "fill"   // filled polygons
	layerStroke = "stroke" // unfilled paths
	layerPoints = "points"
	layerTags   = "tags"
)

type plotRows struct {
	x, y         []float64
	shape        []int
	layer        []string
	stroke, fill []color.Color
	label        []string
	row, col     []int // facet indexes; PairPlot only

	nshapes int
	counts  map[string]int

	// Facet of the rows added next.
	curRow, curCol int
}

func newPlotRows() *plotRows {
	return &plotRows{counts: make(map[string]int)}
}

func (r *plotRows) add(layer string, x, y float64, shape int, stroke, fill color.Color, label string) {
	r.x = append(r.x, x)
	r.y = append(r.y, y)
	r.shape = append(r.shape, shape)
	r.layer = append(r.layer, layer)
	r.stroke = append(r.stroke, stroke)
	r.fill = append(r.fill, fill)
	r.label = append(r.label, label)
	r.row = append(r.row, r.curRow)
	r.col = append(r.col, r.curCol)
	r.counts[layer]++
}

// path adds one glyph through xs, ys. If fill is non-nil the glyph is
// a closed, filled polygon.
func (r *plotRows) path(xs, ys []float64, stroke, fill color.Color) {
	layer := layerStroke
	if fill != nil {
		layer = layerFill
		xs = append(xs[:len(xs):len(xs)], xs[0])
		ys = append(ys[:len(ys):len(ys)], ys[0])
	} else {
		fill = color.Transparent
	}
	for i := range xs {
		r.add(layer, xs[i], ys[i], r.nshapes, stroke, fill, "")
	}
	r.nshapes++
}

func (r *plotRows) rect(x0, y0, x1, y1 float64, stroke, fill color.Color) {
	r.path([]float64{x0, x1, x1, x0}, []float64{y0, y0, y1, y1}, stroke, fill)
}

func (r *plotRows) segment(x0, y0, x1, y1 float64, stroke color.Color) {
	r.path([]float64{x0, x1}, []float64{y0, y1}, stroke, nil)
}

func (r *plotRows) point(x, y float64, c color.Color) {
	r.add(layerPoints, x, y, r.nshapes, c, c, "")
	r.nshapes++
}

func (r *plotRows) tag(x, y float64, label string) {
	r.add(layerTags, x, y, r.nshapes, color.Black, color.Black, label)
	r.nshapes++
}

func (r *plotRows) table() *table.Table {
	b := new(table.Builder).
		Add("x", r.x).Add("y", r.y).
		Add("shape", r.shape).Add("layer", r.layer).
		Add("stroke", r.stroke).Add("fill", r.fill).
		Add("label", r.label)
	return b.Add("row", r.row).Add("col", r.col).Done()
}

// layers adds one mark per populated layer, in drawing order.
func (r *plotRows) layers(p *gg.Plot) {
	add := func(layer string, plotter gg.Plotter) {
		if r.counts[layer] == 0 {
			return
		}
		p.Save()
		p.SetData(table.FilterEq(p.Data(), "layer", layer))
		p.GroupBy("shape")
		p.Add(plotter)
		p.Restore()
	}
	add(layerFill, gg.LayerPaths{X: "x", Y: "y", Color: "stroke", Fill: "fill"})
	add(layerStroke, gg.LayerPaths{X: "x", Y: "y", Color: "stroke"})
	add(layerPoints, gg.LayerPoints{X: "x", Y: "y", Color: "fill"})
	add(layerTags, gg.LayerTags{X: "x", Y: "y", Label: "label"})
}

func buildPlot(f *Figure) *gg.Plot {
	th := f.theme.withDefaults()
	rows := newPlotRows()
	var scales []func(p *gg.Plot)
	switch f.Kind {
	case Histogram:
		plotHistogram(rows, f, th)
		if f.LogX {
			scales = append(scales, logAxis("x"))
		}
	case BarCounts:
		plotBars(rows, f, th)
		scales = append(scales, categoryAxis("x", f.Categories, false), zeroAxis("y"))
	case Pie:
		plotPie(rows, f, th)
		scales = append(scales, blankAxis("x"), blankAxis("y"))
	case BoxPlot:
		plotBoxes(rows, f, th)
		scales = append(scales, categoryAxis("x", f.Categories, false))
	case ViolinPlot:
		plotViolins(rows, f, th)
		scales = append(scales, categoryAxis("x", f.Categories, false))
	case ScatterPlot:
		plotPoints(rows, f, th)
		if f.LogX {
			scales = append(scales, logAxis("x"))
		}
		if f.LogY {
			scales = append(scales, logAxis("y"))
		}
	case LinePlot:
		plotLine(rows, f, th)
	case CorrelationHeatmap:
		plotHeatmap(rows, f, th)
		scales = append(scales, categoryAxis("x", f.Categories, false), categoryAxis("y", f.Categories, true))
	case PairPlot:
		plotPairs(rows, f, th)
	}

	p := gg.NewPlot(rows.table())
	for _, s := range scales {
		s(p)
	}
	if f.Kind == PairPlot {
		label := func(v interface{}) string {
			if i, ok := v.(int); ok && i < len(f.Categories) {
				return f.Categories[i]
			}
			return fmt.Sprint(v)
		}
		p.Add(gg.FacetY{Col: "row", SplitYScales: true, Labeler: label},
			gg.FacetX{Col: "col", SplitXScales: true, Labeler: label})
	}
	rows.layers(p)
	p.Add(gg.Title(f.Title), gg.AxisLabel("x", f.XLabel), gg.AxisLabel("y", f.YLabel))
	return p
}

func axisValue(log bool, x float64) float64 {
	if log {
		return math.Log10(x)
	}
	return x
}

// logAxis labels an axis whose data was plotted as log10 values.
func logAxis(aes string) func(p *gg.Plot) {
	return func(p *gg.Plot) {
		s := gg.NewLinearScaler()
		s.SetFormatter(func(x float64) string {
			return fmt.Sprintf("%.4g", math.Pow(10, x))
		})
		p.SetScale(aes, s)
	}
}

// categoryAxis labels integer positions with names. If flip is set,
// position 0 is at the top.
func categoryAxis(aes string, names []string, flip bool) func(p *gg.Plot) {
	return func(p *gg.Plot) {
		n := len(names)
		s := gg.NewLinearScaler().SetMin(-0.5).SetMax(float64(n) - 0.5)
		s.SetFormatter(func(x float64) string {
			i := int(math.Round(x))
			if math.Abs(x-float64(i)) > 1e-9 || i < 0 || i >= n {
				return ""
			}
			if flip {
				i = n - 1 - i
			}
			return names[i]
		})
		p.SetScale(aes, s)
	}
}

func zeroAxis(aes string) func(p *gg.Plot) {
	return func(p *gg.Plot) {
		p.SetScale(aes, gg.NewLinearScaler().Include(0))
	}
}

func blankAxis(aes string) func(p *gg.Plot) {
	return func(p *gg.Plot) {
		s := gg.NewLinearScaler().SetMin(-1.3).SetMax(1.3)
		s.SetFormatter(func(float64) string { return "" })
		p.SetScale(aes, s)
	}
}

func plotHistogram(rows *plotRows, f *Figure, th Theme) {
	for _, b := range f.Bins {
		x0, x1 := axisValue(f.LogX, b.Lo), axisValue(f.LogX, b.Hi)
		rows.rect(x0, 0, x1, float64(b.Count), th.Outline, th.BarFill)
	}
	if len(f.Curve) > 1 {
		xs := make([]float64, len(f.Curve))
		ys := make([]float64, len(f.Curve))
		for i, pt := range f.Curve {
			xs[i], ys[i] = axisValue(f.LogX, pt.X), pt.Y
		}
		rows.path(xs, ys, th.Curve, nil)
	}
}

func plotBars(rows *plotRows, f *Figure, th Theme) {
	for i, b := range f.Bars {
		rows.rect(b.Pos-0.4, 0, b.Pos+0.4, float64(b.Count), th.Outline, th.levelColor(i))
	}
}

// wedgeStep is the angular resolution of pie wedge arcs in degrees.
const wedgeStep = 2.0

func plotPie(rows *plotRows, f *Figure, th Theme) {
	for i, w := range f.Wedges {
		xs, ys := []float64{0}, []float64{0}
		for a := w.Start; ; a += wedgeStep {
			if a > w.End {
				a = w.End
			}
			rad := a * math.Pi / 180
			xs = append(xs, math.Cos(rad))
			ys = append(ys, math.Sin(rad))
			if a == w.End {
				break
			}
		}
		rows.path(xs, ys, th.Outline, th.levelColor(i))
	}
	for _, w := range f.Wedges {
		mid := (w.Start + w.End) / 2 * math.Pi / 180
		rows.tag(0.6*math.Cos(mid), 0.6*math.Sin(mid), w.Label+" "+w.Pct)
	}
}

func (f *Figure) glyphColor(th Theme, group string, hueLevel int) color.Color {
	if f.HueLevels != nil {
		return th.levelColor(hueLevel)
	}
	for i, c := range f.Categories {
		if c == group {
			return th.levelColor(i)
		}
	}
	return th.BarFill
}

func plotBoxes(rows *plotRows, f *Figure, th Theme) {
	for _, b := range f.Boxes {
		half := b.Width / 2
		rows.rect(b.Pos-half, b.Q1, b.Pos+half, b.Q3, th.Curve, f.glyphColor(th, b.Group, b.HueLevel))
		rows.segment(b.Pos-half, b.Median, b.Pos+half, b.Median, th.Curve)
		rows.segment(b.Pos, b.WhiskerLo, b.Pos, b.Q1, th.Curve)
		rows.segment(b.Pos, b.Q3, b.Pos, b.WhiskerHi, th.Curve)
		rows.segment(b.Pos-half/2, b.WhiskerLo, b.Pos+half/2, b.WhiskerLo, th.Curve)
		rows.segment(b.Pos-half/2, b.WhiskerHi, b.Pos+half/2, b.WhiskerHi, th.Curve)
		for _, y := range b.Outliers {
			rows.point(b.Pos, y, th.Curve)
		}
	}
}

func plotViolins(rows *plotRows, f *Figure, th Theme) {
	for _, v := range f.Violins {
		if len(v.HalfWidths) > 0 {
			n := len(v.Ys)
			xs := make([]float64, 0, 2*n)
			ys := make([]float64, 0, 2*n)
			for i := 0; i < n; i++ {
				xs = append(xs, v.Pos+v.HalfWidths[i])
				ys = append(ys, v.Ys[i])
			}
			for i := n - 1; i >= 0; i-- {
				xs = append(xs, v.Pos-v.HalfWidths[i])
				ys = append(ys, v.Ys[i])
			}
			rows.path(xs, ys, th.Curve, f.glyphColor(th, v.Group, v.HueLevel))
		}
		rows.segment(v.Pos-v.Width/4, v.Median, v.Pos+v.Width/4, v.Median, th.Curve)
	}
}

func plotPoints(rows *plotRows, f *Figure, th Theme) {
	for _, pt := range f.Points {
		c := th.levelColor(0)
		if f.HueLevels != nil {
			c = th.levelColor(pt.HueLevel)
		}
		rows.point(axisValue(f.LogX, pt.X), axisValue(f.LogY, pt.Y), c)
	}
}

func plotLine(rows *plotRows, f *Figure, th Theme) {
	for i := 0; i < len(f.Points); {
		j := i
		for j < len(f.Points) && f.Points[j].Segment == f.Points[i].Segment {
			j++
		}
		if j-i == 1 {
			rows.point(f.Points[i].X, f.Points[i].Y, th.levelColor(0))
		} else {
			xs := make([]float64, 0, j-i)
			ys := make([]float64, 0, j-i)
			for _, pt := range f.Points[i:j] {
				xs = append(xs, pt.X)
				ys = append(ys, pt.Y)
			}
			rows.path(xs, ys, th.levelColor(0), nil)
		}
		i = j
	}
}

func plotHeatmap(rows *plotRows, f *Figure, th Theme) {
	n := len(f.Categories)
	for _, c := range f.Cells {
		x, y := float64(c.Col), float64(n-1-c.Row)
		fill := color.Color(color.Transparent)
		if !math.IsNaN(c.Value) {
			fill = coolwarm(c.Value)
		}
		rows.rect(x-0.5, y-0.5, x+0.5, y+0.5, th.Outline, fill)
	}
	for _, c := range f.Cells {
		if c.Label != "" {
			rows.tag(float64(c.Col), float64(n-1-c.Row), c.Label)
		}
	}
}

// coolwarm maps r in [-1, 1] onto a diverging blue-white-red ramp.
func coolwarm(r float64) color.Color {
	cold := [3]float64{59, 76, 192}
	mid := [3]float64{221, 221, 221}
	warm := [3]float64{180, 4, 38}
	r = math.Max(-1, math.Min(1, r))
	from, to, t := mid, warm, r
	if r < 0 {
		from, to, t = mid, cold, -r
	}
	var c [3]uint8
	for i := range c {
		c[i] = uint8(math.Round(from[i] + t*(to[i]-from[i])))
	}
	return color.RGBA{c[0], c[1], c[2], 0xff}
}

func plotPairs(rows *plotRows, f *Figure, th Theme) {
	for _, p := range f.Panels {
		rows.curRow, rows.curCol = p.Row, p.Col
		if !p.Diagonal {
			for _, pt := range p.Points {
				rows.point(pt.X, pt.Y, th.levelColor(0))
			}
			continue
		}
		if len(p.Bins) == 0 {
			continue
		}
		// Diagonal panels share their row's Y scale, so the bars
		// are stretched over the variable's own range.
		lo, hi := p.Bins[0].Lo, p.Bins[len(p.Bins)-1].Hi
		peak := 0
		for _, b := range p.Bins {
			if b.Count > peak {
				peak = b.Count
			}
		}
		for _, b := range p.Bins {
			h := lo
			if peak > 0 {
				h = lo + float64(b.Count)/float64(peak)*(hi-lo)
			}
			rows.rect(b.Lo, lo, b.Hi, h, th.Outline, th.BarFill)
		}
	}
	rows.curRow, rows.curCol = 0, 0
}

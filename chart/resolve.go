// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/odat-project/dataviz/dataset"
)

const (
	// groupWidth is the share of each category slot covered by
	// its boxes or violins.
	groupWidth = 0.8

	// violinCut is how many bandwidths a violin extends past the
	// extreme data points.
	violinCut = 2
)

// Resolve turns the view derived from v into a Figure. A zero Theme
// means DefaultTheme. The figure's Notices start with v's.
func Resolve(v *Validated, view View, th Theme) (*Figure, error) {
	th = th.withDefaults()
	f, err := kinds[v.Kind].resolve(v, view, th)
	if err != nil {
		return nil, err
	}
	f.Notices = append(append([]Notice(nil), v.Notices...), f.Notices...)
	return f, nil
}

// Generate validates sel against t, derives the view the kind draws
// from, and resolves it into a Figure. Notices from every stage are
// collected on the Figure.
func Generate(t *dataset.Table, kind Kind, sel Selection, opts Options, th Theme) (*Figure, error) {
	v, err := Validate(t, kind, sel, opts)
	if err != nil {
		return nil, err
	}
	view, notices, err := Derive(v)
	if err != nil {
		return nil, err
	}
	v.Notices = append(v.Notices, notices...)
	return Resolve(v, view, th)
}

func newFigure(v *Validated, view View, th Theme, title string) *Figure {
	return &Figure{
		Kind:   v.Kind,
		Title:  title,
		Width:  th.Width,
		Height: th.Height,
		View:   view,
		theme:  th,
	}
}

func viewError(k Kind, view View) error {
	return fmt.Errorf("chart: cannot resolve %s from %T", k, view)
}

func resolveHistogram(v *Validated, view View, th Theme) (*Figure, error) {
	sv, ok := view.(*SeriesView)
	if !ok {
		return nil, viewError(v.Kind, view)
	}
	f := newFigure(v, view, th, fmt.Sprintf("%s of %s", v.Kind, sv.Column))
	f.XLabel, f.YLabel = sv.Column, "Count"

	nbins, n := v.Options.binCount()
	if n != nil {
		f.Notices = append(f.Notices, *n)
	}

	xs := finite(sv.Values)
	inf := 0
	for _, x := range sv.Values {
		if math.IsInf(x, 0) {
			inf++
		}
	}
	if inf > 0 {
		f.Notices = append(f.Notices, notice(DroppedValues, "%d infinite values of %q not drawn", inf, sv.Column))
	}

	// Bins and the density curve are computed in axis space.
	unlog := func(x float64) float64 { return x }
	reason := "no finite values"
	if v.Options.LogScale {
		f.LogX = true
		unlog = func(x float64) float64 { return math.Pow(10, x) }
		reason = "no positive values"
		pos := make([]float64, 0, len(xs))
		for _, x := range xs {
			if x > 0 {
				pos = append(pos, math.Log10(x))
			}
		}
		if d := len(xs) - len(pos); d > 0 {
			f.Notices = append(f.Notices, notice(DroppedValues, "%d non-positive values of %q not drawn on a log scale", d, sv.Column))
		}
		xs = pos
	}
	if len(xs) == 0 {
		return nil, &NoPlottableDataError{sv.Column, reason}
	}

	lo, hi := stats.Bounds(xs)
	edges := binEdges(lo, hi, nbins)
	for i, c := range binCounts(xs, edges) {
		f.Bins = append(f.Bins, Bin{Lo: unlog(edges[i]), Hi: unlog(edges[i+1]), Count: c})
	}

	// Scale the density to counts so it overlays the bars.
	if at, pdf, ok := density(xs, th.DensityPoints, 0); ok {
		scale := float64(len(xs)) * (edges[1] - edges[0])
		for i := range at {
			f.Curve = append(f.Curve, Point{X: unlog(at[i]), Y: pdf[i] * scale})
		}
	}
	return f, nil
}

func resolveBars(v *Validated, view View, th Theme) (*Figure, error) {
	cv, ok := view.(*CountsView)
	if !ok {
		return nil, viewError(v.Kind, view)
	}
	if cv.Total == 0 {
		return nil, &NoPlottableDataError{cv.Column, "table has no rows"}
	}
	f := newFigure(v, view, th, fmt.Sprintf("%s of %s", v.Kind, cv.Column))
	f.XLabel, f.YLabel = cv.Column, "Count"
	for i, c := range cv.Counts {
		f.Bars = append(f.Bars, Bar{Label: c.Label, Missing: c.Missing, Count: c.N, Pos: float64(i)})
		f.Categories = append(f.Categories, c.Label)
	}
	return f, nil
}

func resolvePie(v *Validated, view View, th Theme) (*Figure, error) {
	cv, ok := view.(*CountsView)
	if !ok {
		return nil, viewError(v.Kind, view)
	}
	if cv.Total == 0 {
		return nil, &NoPlottableDataError{cv.Column, "table has no rows"}
	}
	f := newFigure(v, view, th, fmt.Sprintf("%s of %s", v.Kind, cv.Column))
	f.XLabel = cv.Column
	// Pies are drawn in a square so the circle stays round.
	f.Width = th.Height

	// Wedges start at 12 o'clock and run counter-clockwise.
	angle := 90.0
	for _, c := range cv.Counts {
		frac := float64(c.N) / float64(cv.Total)
		w := Wedge{
			Label:    c.Label,
			Missing:  c.Missing,
			Count:    c.N,
			Fraction: frac,
			Start:    angle,
			End:      angle + 360*frac,
			Pct:      fmt.Sprintf("%1.1f%%", 100*frac),
		}
		angle = w.End
		f.Wedges = append(f.Wedges, w)
		f.Categories = append(f.Categories, c.Label)
	}
	return f, nil
}

// levelsOf assigns each row of c a level index. Labels are in order
// of first appearance, or in ascending value order if sortNumeric is
// set and c is numeric. Missing rows get level -1, or, if keepMissing
// is set, a final level whose label differs from every other.
func levelsOf(c dataset.Column, sortNumeric, keepMissing bool) (rows []int, labels []string) {
	rows = make([]int, c.Len())
	index := make(map[string]int)
	var values []float64
	for i := range rows {
		if c.IsMissing(i) {
			rows[i] = -1
			continue
		}
		label := c.Text(i)
		j, ok := index[label]
		if !ok {
			j = len(labels)
			index[label] = j
			labels = append(labels, label)
			if c.Kind == dataset.Numeric {
				values = append(values, c.Floats[i])
			}
		}
		rows[i] = j
	}

	if sortNumeric && c.Kind == dataset.Numeric {
		order := make([]int, len(labels))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return values[order[i]] < values[order[j]]
		})
		remap := make([]int, len(labels))
		sorted := make([]string, len(labels))
		for to, from := range order {
			remap[from] = to
			sorted[to] = labels[from]
		}
		for i, l := range rows {
			if l >= 0 {
				rows[i] = remap[l]
			}
		}
		labels = sorted
	}

	if keepMissing {
		missing := -1
		for i, l := range rows {
			if l >= 0 {
				continue
			}
			if missing < 0 {
				missing = len(labels)
				labels = append(labels, missingLabel(index))
			}
			rows[i] = missing
		}
	}
	return rows, labels
}

// cellKey identifies a (Primary group, Hue level) pair.
type cellKey struct {
	group, hue int
}

// groupedValues is the finite Secondary values of a PairedView split
// by Primary group and Hue level.
type groupedValues struct {
	groups, hues []string
	cells        map[cellKey][]float64
	dropped      int
}

func groupValues(pv *PairedView) *groupedValues {
	gv := &groupedValues{cells: make(map[cellKey][]float64)}
	var groupRows, hueRows []int
	groupRows, gv.groups = levelsOf(pv.X, true, false)
	if pv.Hue != nil {
		hueRows, gv.hues = levelsOf(*pv.Hue, false, true)
	}
	for i, g := range groupRows {
		y := pv.Y.Floats[i]
		if g < 0 || !isFinite(y) {
			gv.dropped++
			continue
		}
		k := cellKey{group: g}
		if hueRows != nil {
			k.hue = hueRows[i]
		}
		gv.cells[k] = append(gv.cells[k], y)
	}
	return gv
}

// each calls fn for every non-empty cell in drawing order with the
// center and width of its slot.
func (gv *groupedValues) each(fn func(k cellKey, ys []float64, pos, width float64)) {
	nh := len(gv.hues)
	if nh == 0 {
		nh = 1
	}
	slot := groupWidth / float64(nh)
	for g := range gv.groups {
		for h := 0; h < nh; h++ {
			k := cellKey{g, h}
			ys := gv.cells[k]
			if len(ys) == 0 {
				continue
			}
			pos := float64(g) - groupWidth/2 + (float64(h)+0.5)*slot
			fn(k, ys, pos, 0.8*slot)
		}
	}
}

func (gv *groupedValues) hue(k cellKey) string {
	if gv.hues == nil {
		return ""
	}
	return gv.hues[k.hue]
}

func pairedFigure(v *Validated, pv *PairedView, th Theme, gv *groupedValues) (*Figure, error) {
	if len(gv.cells) == 0 {
		return nil, &NoPlottableDataError{pv.Y.Name, fmt.Sprintf("no rows with both %q and %q present", pv.X.Name, pv.Y.Name)}
	}
	f := newFigure(v, pv, th, pairedTitle(v, pv))
	f.XLabel, f.YLabel = pv.X.Name, pv.Y.Name
	f.Categories = gv.groups
	f.HueLevels = gv.hues
	if gv.dropped > 0 {
		f.Notices = append(f.Notices, notice(DroppedValues, "%d rows missing %q or %q not drawn", gv.dropped, pv.X.Name, pv.Y.Name))
	}
	return f, nil
}

func resolveBoxes(v *Validated, view View, th Theme) (*Figure, error) {
	pv, ok := view.(*PairedView)
	if !ok {
		return nil, viewError(v.Kind, view)
	}
	gv := groupValues(pv)
	f, err := pairedFigure(v, pv, th, gv)
	if err != nil {
		return nil, err
	}
	gv.each(func(k cellKey, ys []float64, pos, width float64) {
		b := Box{
			Group:    gv.groups[k.group],
			Hue:      gv.hue(k),
			HueLevel: k.hue,
			Pos:      pos,
			Width:    width,
			N:        len(ys),
		}
		b.Q1, b.Median, b.Q3, b.WhiskerLo, b.WhiskerHi, b.Outliers = boxStats(ys)
		f.Boxes = append(f.Boxes, b)
	})
	return f, nil
}

func resolveViolins(v *Validated, view View, th Theme) (*Figure, error) {
	pv, ok := view.(*PairedView)
	if !ok {
		return nil, viewError(v.Kind, view)
	}
	gv := groupValues(pv)
	f, err := pairedFigure(v, pv, th, gv)
	if err != nil {
		return nil, err
	}

	var pdfs [][]float64
	peak := 0.0
	gv.each(func(k cellKey, ys []float64, pos, width float64) {
		s := stats.Sample{Xs: append([]float64(nil), ys...)}
		sort.Float64s(s.Xs)
		s.Sorted = true
		vl := Violin{
			Group:    gv.groups[k.group],
			Hue:      gv.hue(k),
			HueLevel: k.hue,
			Pos:      pos,
			Width:    width,
			N:        len(ys),
			Median:   s.Quantile(0.5),
		}
		at, pdf, ok := density(ys, th.DensityPoints, violinCut)
		if ok {
			vl.Ys = at
			for _, p := range pdf {
				peak = math.Max(peak, p)
			}
		}
		pdfs = append(pdfs, pdf)
		f.Violins = append(f.Violins, vl)
	})

	// Every violin shares one density scale, so wider means denser.
	for i := range f.Violins {
		vl := &f.Violins[i]
		if vl.Ys == nil || peak == 0 {
			continue
		}
		vl.HalfWidths = make([]float64, len(pdfs[i]))
		for j, p := range pdfs[i] {
			vl.HalfWidths[j] = p / peak * vl.Width / 2
		}
	}
	return f, nil
}

func pairedTitle(v *Validated, pv *PairedView) string {
	return fmt.Sprintf("%s: %s by %s", v.Kind, pv.Y.Name, pv.X.Name)
}

func resolveScatter(v *Validated, view View, th Theme) (*Figure, error) {
	pv, ok := view.(*PairedView)
	if !ok {
		return nil, viewError(v.Kind, view)
	}
	f := newFigure(v, view, th, pairedTitle(v, pv))
	f.XLabel, f.YLabel = pv.X.Name, pv.Y.Name
	logScale := v.Options.LogScale
	f.LogX, f.LogY = logScale, logScale

	var hueRows []int
	if pv.Hue != nil {
		hueRows, f.HueLevels = levelsOf(*pv.Hue, false, true)
	}
	nonPositive := 0
	for i, x := range pv.X.Floats {
		y := pv.Y.Floats[i]
		if !isFinite(x) || !isFinite(y) {
			continue
		}
		if logScale && (x <= 0 || y <= 0) {
			nonPositive++
			continue
		}
		p := Point{X: x, Y: y}
		if hueRows != nil {
			p.HueLevel = hueRows[i]
			p.Hue = f.HueLevels[p.HueLevel]
		}
		f.Points = append(f.Points, p)
	}
	if nonPositive > 0 {
		f.Notices = append(f.Notices, notice(DroppedValues, "%d rows with non-positive values not drawn on a log scale", nonPositive))
	}
	if len(f.Points) == 0 {
		return nil, &NoPlottableDataError{pv.Y.Name, fmt.Sprintf("no rows with both %q and %q drawable", pv.X.Name, pv.Y.Name)}
	}
	return f, nil
}

func resolveLine(v *Validated, view View, th Theme) (*Figure, error) {
	pv, ok := view.(*PairedView)
	if !ok {
		return nil, viewError(v.Kind, view)
	}
	f := newFigure(v, view, th, pairedTitle(v, pv))
	f.XLabel, f.YLabel = pv.X.Name, pv.Y.Name

	seg, inRun := 0, false
	for i, x := range pv.X.Floats {
		y := pv.Y.Floats[i]
		if !isFinite(x) || !isFinite(y) {
			if inRun {
				seg++
				inRun = false
			}
			continue
		}
		f.Points = append(f.Points, Point{X: x, Y: y, Segment: seg})
		inRun = true
	}
	if len(f.Points) == 0 {
		return nil, &NoPlottableDataError{pv.Y.Name, fmt.Sprintf("no rows with both %q and %q present", pv.X.Name, pv.Y.Name)}
	}
	return f, nil
}

func resolveHeatmap(v *Validated, view View, th Theme) (*Figure, error) {
	cv, ok := view.(*CorrelationView)
	if !ok {
		return nil, viewError(v.Kind, view)
	}
	f := newFigure(v, view, th, "Correlation Heatmap")
	f.Categories = cv.Columns
	for i, row := range cv.Matrix {
		for j, r := range row {
			c := Cell{Row: i, Col: j, Value: r}
			if !math.IsNaN(r) {
				c.Label = fmt.Sprintf("%.2f", r)
			}
			f.Cells = append(f.Cells, c)
		}
	}
	return f, nil
}

func resolvePairs(v *Validated, view View, th Theme) (*Figure, error) {
	cv, ok := view.(*ColumnsView)
	if !ok {
		return nil, viewError(v.Kind, view)
	}
	f := newFigure(v, view, th, "Pair Plot of Numerical Variables")
	n := len(cv.Columns)
	f.Width, f.Height = th.PairPanel*n, th.PairPanel*n
	for _, c := range cv.Columns {
		f.Categories = append(f.Categories, c.Name)
	}

	for r := 0; r < n; r++ {
		for c := 0; c <= r; c++ {
			xc, yc := cv.Columns[c], cv.Columns[r]
			p := Panel{Row: r, Col: c, XVar: xc.Name, YVar: yc.Name, Diagonal: r == c}
			if p.Diagonal {
				if xs := finite(xc.Floats); len(xs) > 0 {
					lo, hi := stats.Bounds(xs)
					edges := binEdges(lo, hi, th.PairBins)
					for i, count := range binCounts(xs, edges) {
						p.Bins = append(p.Bins, Bin{Lo: edges[i], Hi: edges[i+1], Count: count})
					}
				}
			} else {
				for i, x := range xc.Floats {
					if y := yc.Floats[i]; isFinite(x) && isFinite(y) {
						p.Points = append(p.Points, Point{X: x, Y: y})
					}
				}
			}
			f.Panels = append(f.Panels, p)
		}
	}
	return f, nil
}

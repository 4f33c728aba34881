// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"
	"sort"

	"github.com/odat-project/dataviz/dataset"
)

// MaxPairColumns is the most columns a PairPlot will show.
const MaxPairColumns = 8

// A View is the data a resolver draws from. Its concrete type depends
// on the chart kind.
type View interface {
	isView()
}

// SeriesView is the raw values of one numeric column (Histogram).
// Missing rows are NaN.
type SeriesView struct {
	Column string
	Values []float64
}

// Count is the number of rows holding one category.
type Count struct {
	Label string

	// Missing marks the category of missing values. Its Label is
	// distinct from every data category's.
	Missing bool

	N int
}

// CountsView holds the value counts of one column (BarCounts, Pie),
// most frequent first. Equal counts keep the order in which the
// categories first appear in the data.
type CountsView struct {
	Column string
	Counts []Count
	Total  int
}

// PairedView holds row-aligned Primary, Secondary, and optional Hue
// columns (BoxPlot, ViolinPlot, ScatterPlot, LinePlot).
type PairedView struct {
	X, Y dataset.Column
	Hue  *dataset.Column

	// Sorted is set when rows have been stably sorted by X.
	Sorted bool
}

// CorrelationView is the pairwise Pearson correlation matrix of the
// numeric columns (CorrelationHeatmap). Matrix[i][j] is the
// correlation of Columns[i] and Columns[j], computed over the rows
// where both are present. Undefined correlations are NaN.
type CorrelationView struct {
	Columns []string
	Matrix  [][]float64
}

// ColumnsView is a subset of the numeric columns (PairPlot).
type ColumnsView struct {
	Columns []dataset.Column

	// Total is the number of numeric columns in the table.
	Total int
}

// Truncated reports whether some numeric columns were left out.
func (v *ColumnsView) Truncated() bool {
	return len(v.Columns) < v.Total
}

func (*SeriesView) isView()      {}
func (*CountsView) isView()      {}
func (*PairedView) isView()      {}
func (*CorrelationView) isView() {}
func (*ColumnsView) isView()     {}

// Derive computes the view that v's chart kind draws from.
func Derive(v *Validated) (View, []Notice, error) {
	return kinds[v.Kind].derive(v)
}

func deriveSeries(v *Validated) (View, []Notice, error) {
	c, err := v.Table.Column(v.Column(Primary))
	if err != nil {
		return nil, nil, err
	}
	return &SeriesView{Column: c.Name, Values: c.Floats}, nil, nil
}

func deriveCounts(v *Validated) (View, []Notice, error) {
	c, err := v.Table.Column(v.Column(Primary))
	if err != nil {
		return nil, nil, err
	}
	return &CountsView{Column: c.Name, Counts: valueCounts(c), Total: c.Len()}, nil, nil
}

// valueCounts counts the rows of c per category. Missing rows form
// their own category.
func valueCounts(c dataset.Column) []Count {
	var counts []Count
	index := make(map[string]int)
	missing := -1
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			if missing < 0 {
				missing = len(counts)
				counts = append(counts, Count{Missing: true})
			}
			counts[missing].N++
			continue
		}
		label := c.Text(i)
		j, ok := index[label]
		if !ok {
			j = len(counts)
			index[label] = j
			counts = append(counts, Count{Label: label})
		}
		counts[j].N++
	}
	if missing >= 0 {
		counts[missing].Label = missingLabel(index)
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].N > counts[j].N
	})
	return counts
}

// missingLabel returns a label for the missing-value category that
// does not collide with any label in used.
func missingLabel(used map[string]int) string {
	label := "(missing)"
	for {
		if _, ok := used[label]; !ok {
			return label
		}
		label = "(" + label + ")"
	}
}

func derivePaired(v *Validated) (View, []Notice, error) {
	pv, err := pairedColumns(v)
	if err != nil {
		return nil, nil, err
	}
	return pv, nil, nil
}

func pairedColumns(v *Validated) (*PairedView, error) {
	x, err := v.Table.Column(v.Column(Primary))
	if err != nil {
		return nil, err
	}
	y, err := v.Table.Column(v.Column(Secondary))
	if err != nil {
		return nil, err
	}
	pv := &PairedView{X: x, Y: y}
	if name := v.Column(Hue); name != "" {
		hue, err := v.Table.Column(name)
		if err != nil {
			return nil, err
		}
		pv.Hue = &hue
	}
	return pv, nil
}

// deriveSortedPaired is derivePaired with rows stably sorted by
// ascending Primary value. Missing Primary values sort last.
func deriveSortedPaired(v *Validated) (View, []Notice, error) {
	pv, err := pairedColumns(v)
	if err != nil {
		return nil, nil, err
	}
	xs := pv.X.Floats
	perm := make([]int, len(xs))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		a, b := xs[perm[i]], xs[perm[j]]
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a < b
	})
	pv.X = permute(pv.X, perm)
	pv.Y = permute(pv.Y, perm)
	if pv.Hue != nil {
		hue := permute(*pv.Hue, perm)
		pv.Hue = &hue
	}
	pv.Sorted = true
	return pv, nil, nil
}

// permute returns a copy of c with row i taken from row perm[i].
func permute(c dataset.Column, perm []int) dataset.Column {
	out := dataset.Column{Name: c.Name, Kind: c.Kind, Missing: make([]bool, len(perm))}
	if c.Floats != nil {
		out.Floats = make([]float64, len(perm))
	}
	if c.Strings != nil {
		out.Strings = make([]string, len(perm))
	}
	for i, j := range perm {
		out.Missing[i] = c.Missing[j]
		if c.Floats != nil {
			out.Floats[i] = c.Floats[j]
		}
		if c.Strings != nil {
			out.Strings[i] = c.Strings[j]
		}
	}
	return out
}

func deriveCorrelation(v *Validated) (View, []Notice, error) {
	names := v.Table.NumericColumns()
	cols := make([][]float64, len(names))
	for i, name := range names {
		c, err := v.Table.Column(name)
		if err != nil {
			return nil, nil, err
		}
		cols[i] = c.Floats
	}
	return &CorrelationView{Columns: names, Matrix: correlationMatrix(cols)}, nil, nil
}

func deriveNumericColumns(v *Validated) (View, []Notice, error) {
	names := v.Table.NumericColumns()
	cv := &ColumnsView{Total: len(names)}
	var notices []Notice
	if len(names) > MaxPairColumns {
		names = names[:MaxPairColumns]
		notices = append(notices, notice(Truncated, "%s limited to the first %d of %d numeric columns", v.Kind, MaxPairColumns, cv.Total))
	}
	for _, name := range names {
		c, err := v.Table.Column(name)
		if err != nil {
			return nil, nil, err
		}
		cv.Columns = append(cv.Columns, c)
	}
	return cv, notices, nil
}

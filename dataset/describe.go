// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// NumericSummary describes the present values of a numeric column.
// Quartiles follow go-moremath's Sample.Quantile.
type NumericSummary struct {
	Column                     string
	Count                      int
	Mean, Std                  float64
	Min, Q25, Median, Q75, Max float64
}

// CategoricalSummary describes the present values of a categorical
// column. Top is the most frequent value; ties go to the value seen
// first.
type CategoricalSummary struct {
	Column string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// ColumnInfo is one line of the table overview.
type ColumnInfo struct {
	Column  string
	NonNull int
	Kind    Kind
}

// Summary is a textual overview of a Table.
type Summary struct {
	Name        string
	Rows        int
	Info        []ColumnInfo
	Numeric     []NumericSummary
	Categorical []CategoricalSummary
}

// Describe computes a Summary of t.
func Describe(t *Table) *Summary {
	s := &Summary{Name: t.Name(), Rows: t.Len()}
	for _, name := range t.Columns() {
		c, _ := t.Column(name)
		nonNull := 0
		for _, m := range c.Missing {
			if !m {
				nonNull++
			}
		}
		s.Info = append(s.Info, ColumnInfo{name, nonNull, c.Kind})

		switch c.Kind {
		case Numeric:
			s.Numeric = append(s.Numeric, describeNumeric(c))
		case Categorical:
			s.Categorical = append(s.Categorical, describeCategorical(c))
		}
	}
	return s
}

func describeNumeric(c Column) NumericSummary {
	var sample stats.Sample
	for i, x := range c.Floats {
		if !c.Missing[i] {
			sample.Xs = append(sample.Xs, x)
		}
	}
	ns := NumericSummary{Column: c.Name, Count: len(sample.Xs)}
	if ns.Count == 0 {
		nan := math.NaN()
		ns.Mean, ns.Std = nan, nan
		ns.Min, ns.Q25, ns.Median, ns.Q75, ns.Max = nan, nan, nan, nan, nan
		return ns
	}
	sort.Float64s(sample.Xs)
	sample.Sorted = true
	ns.Mean = sample.Mean()
	ns.Std = math.NaN()
	if ns.Count > 1 {
		ns.Std = sample.StdDev()
	}
	ns.Min, ns.Max = sample.Bounds()
	ns.Q25 = sample.Quantile(0.25)
	ns.Median = sample.Quantile(0.5)
	ns.Q75 = sample.Quantile(0.75)
	return ns
}

func describeCategorical(c Column) CategoricalSummary {
	cs := CategoricalSummary{Column: c.Name}
	counts := make(map[string]int)
	var order []string
	for i, v := range c.Strings {
		if c.Missing[i] {
			continue
		}
		cs.Count++
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	cs.Unique = len(order)
	for _, v := range order {
		if counts[v] > cs.Freq {
			cs.Top, cs.Freq = v, counts[v]
		}
	}
	return cs
}

// Fprint writes s to w as a sequence of aligned tables.
func (s *Summary) Fprint(w io.Writer) {
	name := s.Name
	if name == "" {
		name = "(in memory)"
	}
	fmt.Fprintf(w, "DATASET OVERVIEW: %s\n%d rows, %d columns\n\n", name, s.Rows, len(s.Info))

	var cols, kinds []string
	var nonNull []int
	for _, ci := range s.Info {
		cols = append(cols, ci.Column)
		nonNull = append(nonNull, ci.NonNull)
		kinds = append(kinds, ci.Kind.String())
	}
	table.Fprint(w, new(table.Builder).
		Add("column", cols).
		Add("non-null", nonNull).
		Add("kind", kinds).
		Done())

	if len(s.Numeric) > 0 {
		fmt.Fprintf(w, "\nNUMERICAL DATA SUMMARY\n")
		b := new(table.Builder)
		var names []string
		var count []int
		stat := make([][]float64, 7)
		for _, ns := range s.Numeric {
			names = append(names, ns.Column)
			count = append(count, ns.Count)
			for i, x := range []float64{ns.Mean, ns.Std, ns.Min, ns.Q25, ns.Median, ns.Q75, ns.Max} {
				stat[i] = append(stat[i], x)
			}
		}
		b.Add("column", names).Add("count", count)
		for i, label := range []string{"mean", "std", "min", "25%", "50%", "75%", "max"} {
			b.Add(label, stat[i])
		}
		table.Fprint(w, b.Done(), "%s", "%d", "%.6g", "%.6g", "%.6g", "%.6g", "%.6g", "%.6g", "%.6g")
	}

	if len(s.Categorical) > 0 {
		fmt.Fprintf(w, "\nCATEGORICAL DATA SUMMARY\n")
		var names, top []string
		var count, unique, freq []int
		for _, cs := range s.Categorical {
			names = append(names, cs.Column)
			count = append(count, cs.Count)
			unique = append(unique, cs.Unique)
			top = append(top, cs.Top)
			freq = append(freq, cs.Freq)
		}
		table.Fprint(w, new(table.Builder).
			Add("column", names).
			Add("count", count).
			Add("unique", unique).
			Add("top", top).
			Add("freq", freq).
			Done())
	}
}

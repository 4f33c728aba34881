// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// correlationMatrix returns the pairwise-complete Pearson correlation
// matrix of cols. The diagonal is exactly 1 and the matrix is
// symmetric.
func correlationMatrix(cols [][]float64) [][]float64 {
	n := len(cols)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pearson(cols[i], cols[j])
			m[i][j], m[j][i] = r, r
		}
	}
	return m
}

// pearson returns the Pearson correlation of xs and ys using only the
// rows where both are finite. It returns NaN if fewer than two such
// rows exist or either side has no variance.
func pearson(xs, ys []float64) float64 {
	var px, py []float64
	for i := range xs {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			px = append(px, xs[i])
			py = append(py, ys[i])
		}
	}
	if len(px) < 2 {
		return math.NaN()
	}
	mx, my := stats.Mean(px), stats.Mean(py)
	var sxy, sxx, syy float64
	for i := range px {
		dx, dy := px[i]-mx, py[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	r := sxy / math.Sqrt(sxx*syy)
	// Rounding can push |r| slightly past 1.
	return math.Max(-1, math.Min(1, r))
}

// binEdges returns n+1 equally spaced edges covering [lo, hi]. A
// degenerate range is widened to [lo-0.5, hi+0.5]. n < 1 is treated
// as a single bin.
func binEdges(lo, hi float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := vec.Linspace(lo, hi, n+1)
	edges[n] = hi
	return edges
}

// binCounts counts xs into the bins defined by edges. Each bin is
// closed on the left; the last bin is also closed on the right.
// Values outside the edges are not counted.
func binCounts(xs, edges []float64) []int {
	n := len(edges) - 1
	counts := make([]int, n)
	lo, hi := edges[0], edges[n]
	width := (hi - lo) / float64(n)
	for _, x := range xs {
		if x < lo || x > hi {
			continue
		}
		b := int((x - lo) / width)
		if b >= n {
			b = n - 1
		}
		// Guard against rounding in the division.
		for b > 0 && x < edges[b] {
			b--
		}
		for b < n-1 && x >= edges[b+1] {
			b++
		}
		counts[b]++
	}
	return counts
}

// boxStats summarizes xs for a box plot: quartiles, whiskers at the
// most extreme values within 1.5 IQR of the box, and the values
// beyond the whiskers. xs must be non-empty and finite.
func boxStats(xs []float64) (q1, med, q3, lo, hi float64, outliers []float64) {
	s := stats.Sample{Xs: append([]float64(nil), xs...)}
	sort.Float64s(s.Xs)
	s.Sorted = true

	q1, med, q3 = s.Quantile(0.25), s.Quantile(0.5), s.Quantile(0.75)
	iqr := q3 - q1
	loFence, hiFence := q1-1.5*iqr, q3+1.5*iqr
	lo, hi = math.NaN(), math.NaN()
	for _, x := range s.Xs {
		if x < loFence || x > hiFence {
			outliers = append(outliers, x)
			continue
		}
		if math.IsNaN(lo) {
			lo = x
		}
		hi = x
	}
	return
}

// density evaluates a Gaussian kernel density estimate of xs at n
// points spanning the data widened by cut bandwidths on each side. It
// returns ok=false if xs has fewer than two distinct values.
func density(xs []float64, n int, cut float64) (at, pdf []float64, ok bool) {
	sample := stats.Sample{Xs: xs}
	min, max := sample.Bounds()
	if !(min < max) {
		return nil, nil, false
	}
	kde := stats.KDE{Sample: sample}
	kde.Bandwidth = stats.BandwidthScott(sample)
	if !(kde.Bandwidth > 0) {
		return nil, nil, false
	}
	at = vec.Linspace(min-cut*kde.Bandwidth, max+cut*kde.Bandwidth, n)
	return at, vec.Map(kde.PDF, at), true
}

// finite returns the finite values of xs.
func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if isFinite(x) {
			out = append(out, x)
		}
	}
	return out
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPearson(t *testing.T) {
	nan := math.NaN()
	for _, test := range []struct {
		xs, ys []float64
		want   float64
	}{
		{[]float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{[]float64{1, 2, 3}, []float64{3, 2, 1}, -1},
		{[]float64{1, 2, 3, nan}, []float64{1, nan, 3, 4}, 1},
		{[]float64{1, 2, 3, 4}, []float64{1, 3, 2, 4}, 0.8},
	} {
		require.InDelta(t, test.want, pearson(test.xs, test.ys), 1e-12, "pearson(%v, %v)", test.xs, test.ys)
	}

	require.True(t, math.IsNaN(pearson([]float64{1, nan}, []float64{1, 2})))
	require.True(t, math.IsNaN(pearson([]float64{1, 1, 1}, []float64{1, 2, 3})))
}

func TestBinCounts(t *testing.T) {
	edges := binEdges(0, 4, 4)
	require.Equal(t, []float64{0, 1, 2, 3, 4}, edges)
	// Bins are closed on the left, and the last bin on both sides.
	require.Equal(t, []int{1, 2, 0, 2}, binCounts([]float64{0, 1, 1.5, 3, 4, -1, 5}, edges))

	// A single distinct value still gets a bin of nonzero width.
	edges = binEdges(7, 7, 2)
	require.Equal(t, []float64{6.5, 7, 7.5}, edges)
	require.Equal(t, []int{0, 3}, binCounts([]float64{7, 7, 7}, edges))
}

func TestDensity(t *testing.T) {
	_, _, ok := density([]float64{3, 3, 3}, 10, 2)
	require.False(t, ok)

	at, pdf, ok := density([]float64{1, 2, 3, 4}, 50, 2)
	require.True(t, ok)
	require.Len(t, at, 50)
	require.Len(t, pdf, 50)
	require.True(t, at[0] < 1 && at[49] > 4)
	for _, p := range pdf {
		require.True(t, p >= 0)
	}
}

func TestLevelsOf(t *testing.T) {
	tab := mustRead(t, "n,s\n3,b\n1,\n,a\n3,b\n")
	n, err := tab.Column("n")
	require.NoError(t, err)
	rows, labels := levelsOf(n, true, false)
	require.Equal(t, []string{"1", "3"}, labels)
	require.Equal(t, []int{1, 0, -1, 1}, rows)

	s, err := tab.Column("s")
	require.NoError(t, err)
	rows, labels = levelsOf(s, true, true)
	require.Equal(t, []string{"b", "a", "(missing)"}, labels)
	require.Equal(t, []int{0, 2, 1, 0}, rows)
}

func TestCoolwarm(t *testing.T) {
	require.Equal(t, color.RGBA{59, 76, 192, 0xff}, coolwarm(-1))
	require.Equal(t, color.RGBA{221, 221, 221, 0xff}, coolwarm(0))
	require.Equal(t, color.RGBA{180, 4, 38, 0xff}, coolwarm(1))
	require.Equal(t, coolwarm(1), coolwarm(3))
}

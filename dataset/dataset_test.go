// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const peopleCSV = `age,city,score
31,A,1.5
42,B,
,A,2.5
27,C,NA
55,A,4
`

func TestReadInfersKinds(t *testing.T) {
	tab, err := Read(strings.NewReader(peopleCSV), ReadOptions{Name: "people"})
	require.NoError(t, err)

	require.Equal(t, "people", tab.Name())
	require.Equal(t, 5, tab.Len())
	require.Equal(t, []string{"age", "city", "score"}, tab.Columns())
	require.Equal(t, []string{"age", "score"}, tab.NumericColumns())

	for col, want := range map[string]Kind{"age": Numeric, "city": Categorical, "score": Numeric} {
		got, err := tab.TypeOf(col)
		require.NoError(t, err)
		require.Equal(t, want, got, "column %s", col)
	}

	age, err := tab.Column("age")
	require.NoError(t, err)
	require.Equal(t, 5, age.Len())
	require.True(t, age.IsMissing(2))
	require.True(t, math.IsNaN(age.Floats[2]))
	require.Equal(t, "31", age.Text(0))
	require.Equal(t, "", age.Text(2))

	score, err := tab.Column("score")
	require.NoError(t, err)
	require.Equal(t, []bool{false, true, false, true, false}, score.Missing)
}

func TestReadMixedColumnIsCategorical(t *testing.T) {
	tab, err := Read(strings.NewReader("id,code\n1,10\n2,x7\n3,\n"), ReadOptions{})
	require.NoError(t, err)

	k, err := tab.TypeOf("code")
	require.NoError(t, err)
	require.Equal(t, Categorical, k)

	c, err := tab.Column("code")
	require.NoError(t, err)
	require.Equal(t, []string{"10", "x7", ""}, c.Strings)
	require.Equal(t, []bool{false, false, true}, c.Missing)
}

func TestReadAllMissingColumnIsNumeric(t *testing.T) {
	tab, err := Read(strings.NewReader("a,b\n1,\n2,NA\n"), ReadOptions{})
	require.NoError(t, err)
	k, err := tab.TypeOf("b")
	require.NoError(t, err)
	require.Equal(t, Numeric, k)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""), ReadOptions{})
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Read(strings.NewReader("a,a\n1,2\n"), ReadOptions{})
	var dup *DuplicateColumnError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, "a", dup.Name)

	_, err = Read(strings.NewReader("a,b\n1,2\n3\n"), ReadOptions{})
	var ragged *RaggedRowError
	require.True(t, errors.As(err, &ragged))
	require.Equal(t, 3, ragged.Line)
	require.Equal(t, 1, ragged.Fields)
	require.Equal(t, 2, ragged.Want)
}

func TestColumnNotFound(t *testing.T) {
	tab, err := FromStrings([]string{"x"}, [][]string{{"1"}})
	require.NoError(t, err)

	_, err = tab.TypeOf("y")
	var nf *ColumnNotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "y", nf.Name)

	_, err = tab.Values("y")
	require.True(t, errors.As(err, &nf))
	_, err = tab.Column("y")
	require.True(t, errors.As(err, &nf))
}

func TestValuesStorage(t *testing.T) {
	tab, err := FromStrings([]string{"n", "s"}, [][]string{{"1", "a"}, {"2", "b"}})
	require.NoError(t, err)

	v, err := tab.Values("n")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, v)

	v, err = tab.Values("s")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, v)

	require.Equal(t, []string{"n", "s"}, tab.Grouping().Columns())
}

func TestReadFileTSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsv")
	require.NoError(t, os.WriteFile(path, []byte("x\ty\n1\ta\n2\tb\n"), 0o644))

	tab, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, "data.tsv", tab.Name())
	require.Equal(t, []string{"x", "y"}, tab.Columns())

	_, err = ReadFile(filepath.Join(dir, "missing.csv"), ReadOptions{})
	require.Error(t, err)
}

func TestBuilder(t *testing.T) {
	tab, err := NewBuilder("mem").
		Numeric("x", []float64{1, math.NaN()}).
		Categorical("y", []string{"a", ""}, []bool{false, true}).
		Done()
	require.NoError(t, err)
	x, _ := tab.Column("x")
	require.Equal(t, []bool{false, true}, x.Missing)

	_, err = NewBuilder("").
		Numeric("x", []float64{1}).
		Numeric("y", []float64{1, 2}).
		Done()
	require.Error(t, err)

	_, err = NewBuilder("").
		Numeric("x", []float64{1}).
		Categorical("x", []string{"a"}, nil).
		Done()
	var dup *DuplicateColumnError
	require.True(t, errors.As(err, &dup))
}

func TestDescribe(t *testing.T) {
	tab, err := Read(strings.NewReader(peopleCSV), ReadOptions{Name: "people"})
	require.NoError(t, err)

	s := Describe(tab)
	require.Equal(t, 5, s.Rows)
	require.Equal(t, []ColumnInfo{
		{"age", 4, Numeric},
		{"city", 5, Categorical},
		{"score", 3, Numeric},
	}, s.Info)

	require.Len(t, s.Numeric, 2)
	age := s.Numeric[0]
	require.Equal(t, "age", age.Column)
	require.Equal(t, 4, age.Count)
	require.InDelta(t, 38.75, age.Mean, 1e-9)
	require.Equal(t, 27.0, age.Min)
	require.Equal(t, 55.0, age.Max)
	require.True(t, age.Q25 <= age.Median && age.Median <= age.Q75)

	require.Equal(t, []CategoricalSummary{{"city", 5, 3, "A", 3}}, s.Categorical)

	var buf bytes.Buffer
	s.Fprint(&buf)
	out := buf.String()
	require.Contains(t, out, "DATASET OVERVIEW: people")
	require.Contains(t, out, "NUMERICAL DATA SUMMARY")
	require.Contains(t, out, "CATEGORICAL DATA SUMMARY")
}

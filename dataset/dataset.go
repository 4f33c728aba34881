// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset holds a single delimited-text table loaded fully into
// memory and classifies each of its columns as numeric or categorical.
//
// A Table is immutable once built. Numeric columns are stored as
// []float64 with NaN marking missing cells; categorical columns are
// stored as []string alongside a per-row missing mask. The underlying
// storage is a go-gg table, so a Table can be handed directly to gg
// stats and layers via Grouping.
package dataset

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/table"
)

// Kind is the type class of a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "Numeric"
	case Categorical:
		return "Categorical"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ColumnNotFoundError reports a lookup of a column name that is not
// in the table.
type ColumnNotFoundError struct {
	Name string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Name)
}

// Table is a read-only view over a loaded dataset.
type Table struct {
	name    string
	tab     *table.Table
	kinds   map[string]Kind
	missing map[string][]bool
}

// Column is a single column of a Table. Exactly one of Floats and
// Strings is non-nil, depending on Kind. The slices are shared with
// the Table and must not be modified.
type Column struct {
	Name string
	Kind Kind

	Floats  []float64
	Strings []string

	// Missing[i] is true if row i had no value in the source.
	Missing []bool
}

// Len returns the number of rows in c.
func (c Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// IsMissing reports whether row i of c has no value.
func (c Column) IsMissing(i int) bool {
	return c.Missing[i]
}

// Text returns the textual form of row i. Numeric values are
// formatted in the shortest form that round-trips. Missing values
// return "".
func (c Column) Text(i int) string {
	if c.Missing[i] {
		return ""
	}
	if c.Kind == Numeric {
		return formatFloat(c.Floats[i])
	}
	return c.Strings[i]
}

// Name returns the name of the source the table was loaded from, or
// "" if it was built in memory.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	return t.tab.Len()
}

// Columns returns the names of t's columns in source order.
func (t *Table) Columns() []string {
	return t.tab.Columns()
}

// TypeOf returns the type class of column name.
func (t *Table) TypeOf(name string) (Kind, error) {
	k, ok := t.kinds[name]
	if !ok {
		return 0, &ColumnNotFoundError{name}
	}
	return k, nil
}

// Values returns the raw storage of column name: a []float64 for
// numeric columns and a []string for categorical columns.
func (t *Table) Values(name string) (table.Slice, error) {
	if _, ok := t.kinds[name]; !ok {
		return nil, &ColumnNotFoundError{name}
	}
	return t.tab.MustColumn(name), nil
}

// Column returns column name.
func (t *Table) Column(name string) (Column, error) {
	k, ok := t.kinds[name]
	if !ok {
		return Column{}, &ColumnNotFoundError{name}
	}
	c := Column{Name: name, Kind: k, Missing: t.missing[name]}
	switch k {
	case Numeric:
		c.Floats = t.tab.MustColumn(name).([]float64)
	case Categorical:
		c.Strings = t.tab.MustColumn(name).([]string)
	}
	return c, nil
}

// NumericColumns returns the names of t's numeric columns in source
// order.
func (t *Table) NumericColumns() []string {
	var cols []string
	for _, col := range t.tab.Columns() {
		if t.kinds[col] == Numeric {
			cols = append(cols, col)
		}
	}
	return cols
}

// Grouping returns t's storage as a go-gg grouping. The caller must
// not modify the returned columns.
func (t *Table) Grouping() table.Grouping {
	return t.tab
}

// Builder constructs a Table column by column.
type Builder struct {
	name    string
	b       table.Builder
	cols    []string
	kinds   map[string]Kind
	missing map[string][]bool
	err     error
}

// NewBuilder returns a Builder for a table loaded from the source
// called name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		kinds:   make(map[string]Kind),
		missing: make(map[string][]bool),
	}
}

// Numeric adds a numeric column. NaN values are treated as missing.
func (b *Builder) Numeric(name string, xs []float64) *Builder {
	missing := make([]bool, len(xs))
	for i, x := range xs {
		missing[i] = math.IsNaN(x)
	}
	return b.add(name, Numeric, xs, missing)
}

// Categorical adds a categorical column. If missing is nil, no value
// is missing.
func (b *Builder) Categorical(name string, vals []string, missing []bool) *Builder {
	if missing == nil {
		missing = make([]bool, len(vals))
	} else if len(missing) != len(vals) {
		b.setErr(fmt.Errorf("column %q has %d values but %d missing flags", name, len(vals), len(missing)))
		return b
	}
	return b.add(name, Categorical, vals, missing)
}

func (b *Builder) add(name string, kind Kind, vals table.Slice, missing []bool) *Builder {
	if b.err != nil {
		return b
	}
	if _, ok := b.kinds[name]; ok {
		b.setErr(&DuplicateColumnError{name})
		return b
	}
	if len(b.cols) > 0 {
		if want := len(b.missing[b.cols[0]]); len(missing) != want {
			b.setErr(fmt.Errorf("column %q has %d rows; want %d", name, len(missing), want))
			return b
		}
	}
	b.cols = append(b.cols, name)
	b.kinds[name] = kind
	b.missing[name] = missing
	b.b.Add(name, vals)
	return b
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Done returns the built Table, or the first error encountered while
// adding columns.
func (b *Builder) Done() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Table{
		name:    b.name,
		tab:     b.b.Done(),
		kinds:   b.kinds,
		missing: b.missing,
	}, nil
}

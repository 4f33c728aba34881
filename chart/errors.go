// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"

	"github.com/odat-project/dataviz/dataset"
)

// MissingSelectionError reports a required role with no column bound.
type MissingSelectionError struct {
	Kind Kind
	Role Role
}

func (e *MissingSelectionError) Error() string {
	return fmt.Sprintf("%s requires a %s column", e.Kind, e.Role)
}

// TypeMismatchError reports a column whose type class does not match
// what its role requires.
type TypeMismatchError struct {
	Role     Role
	Column   string
	Expected dataset.Kind
	Actual   dataset.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s column %q is %s; want %s", e.Role, e.Column, e.Actual, e.Expected)
}

// InsufficientNumericColumnsError reports a table-wide chart on a
// table with too few numeric columns.
type InsufficientNumericColumnsError struct {
	Needed, Found int
}

func (e *InsufficientNumericColumnsError) Error() string {
	return fmt.Sprintf("need at least %d numeric columns; found %d", e.Needed, e.Found)
}

// InvalidOptionValueError describes an option value that was
// replaced by its default. It is carried by a Notice rather than
// returned as a failure.
type InvalidOptionValueError struct {
	Option  string
	Value   string
	Default string
}

func (e *InvalidOptionValueError) Error() string {
	return fmt.Sprintf("invalid %s %q; using %s", e.Option, e.Value, e.Default)
}

// NoPlottableDataError reports a selection that leaves nothing to
// draw, such as a histogram of a column with no finite values.
type NoPlottableDataError struct {
	Column string
	Reason string
}

func (e *NoPlottableDataError) Error() string {
	return fmt.Sprintf("column %q has no plottable values: %s", e.Column, e.Reason)
}

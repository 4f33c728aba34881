// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"github.com/odat-project/dataviz/dataset"
)

// minNumericColumns is the number of numeric columns a table-wide
// chart needs.
const minNumericColumns = 2

// Selection binds roles to column names. A missing key and an empty
// name both mean the role is unbound.
type Selection map[Role]string

// Validated is a selection that has been checked against a table:
// every role the kind requires is bound to an existing column of the
// right type class.
type Validated struct {
	Table   *dataset.Table
	Kind    Kind
	Options Options

	// Columns holds the bound roles. Roles the kind does not use
	// are dropped.
	Columns map[Role]string

	// Notices raised during validation.
	Notices []Notice
}

// Column returns the column bound to r, or "" if r is unbound.
func (v *Validated) Column(r Role) string {
	return v.Columns[r]
}

// Validate checks sel against t for a chart of the given kind.
//
// It fails with *MissingSelectionError if a required role is unbound,
// *dataset.ColumnNotFoundError if a bound column does not exist,
// *TypeMismatchError if a bound column has the wrong type class, and
// *InsufficientNumericColumnsError if a table-wide kind has fewer
// than two numeric columns to work with.
func Validate(t *dataset.Table, kind Kind, sel Selection, opts Options) (*Validated, error) {
	if kind < 0 || kind >= numKinds {
		return nil, &UnknownKindError{kind.String()}
	}
	info := &kinds[kind]
	v := &Validated{
		Table:   t,
		Kind:    kind,
		Options: opts,
		Columns: make(map[Role]string),
	}

	for r, rule := range info.roles {
		role := Role(r)
		if rule.need == required && sel[role] == "" {
			return nil, &MissingSelectionError{kind, role}
		}
	}

	for r := Role(0); r < numRoles; r++ {
		name := sel[r]
		if name == "" {
			continue
		}
		rule := info.roles[r]
		if rule.need == notApplicable {
			v.Notices = append(v.Notices, notice(IgnoredRole, "%s does not use a %s column; ignoring %q", kind, r, name))
			continue
		}
		k, err := t.TypeOf(name)
		if err != nil {
			return nil, err
		}
		if rule.numeric && k != dataset.Numeric {
			return nil, &TypeMismatchError{r, name, dataset.Numeric, k}
		}
		v.Columns[r] = name
	}

	if info.tableWide {
		if n := len(t.NumericColumns()); n < minNumericColumns {
			return nil, &InsufficientNumericColumnsError{minNumericColumns, n}
		}
	}
	return v, nil
}

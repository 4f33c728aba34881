// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"strings"
)

// Kind is a chart type.
type Kind int

const (
	Histogram Kind = iota
	BarCounts
	Pie
	BoxPlot
	ScatterPlot
	LinePlot
	ViolinPlot
	CorrelationHeatmap
	PairPlot

	numKinds
)

// Kinds returns every chart kind in menu order.
func Kinds() []Kind {
	ks := make([]Kind, numKinds)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].name
}

// UnknownKindError is returned by ParseKind.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown chart kind %q", e.Name)
}

// ParseKind returns the Kind named s. It accepts display names
// ("Scatter Plot") and short aliases ("scatter"), ignoring case,
// spaces, dashes, and underscores.
func ParseKind(s string) (Kind, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '(', ')':
			return -1
		}
		return r
	}, strings.ToLower(s))
	for k, info := range kinds {
		if key == normalizeName(info.name) {
			return Kind(k), nil
		}
		for _, alias := range info.aliases {
			if key == alias {
				return Kind(k), nil
			}
		}
	}
	return 0, &UnknownKindError{s}
}

func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// Role is a slot that a chart kind binds to a column.
type Role int

const (
	Primary Role = iota
	Secondary
	Hue

	numRoles
)

func (r Role) String() string {
	switch r {
	case Primary:
		return "Primary"
	case Secondary:
		return "Secondary"
	case Hue:
		return "Hue"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

type need int

const (
	notApplicable need = iota
	required
	optional
)

type roleRule struct {
	need    need
	numeric bool // column must be dataset.Numeric
}

// kindInfo is everything that varies by chart kind. Validation,
// derivation, and resolution all dispatch through the kinds table.
type kindInfo struct {
	name    string
	aliases []string

	roles [numRoles]roleRule

	// tableWide kinds bind no roles and use every numeric column.
	tableWide bool

	derive  func(v *Validated) (View, []Notice, error)
	resolve func(v *Validated, view View, th Theme) (*Figure, error)
}

var kinds [numKinds]kindInfo

func init() {
	kinds = [numKinds]kindInfo{
		Histogram: {
			name:    "Histogram",
			aliases: []string{"hist"},
			roles:   [numRoles]roleRule{Primary: {required, true}},
			derive:  deriveSeries,
			resolve: resolveHistogram,
		},
		BarCounts: {
			name:    "Bar Chart",
			aliases: []string{"bar", "barcounts", "barchartcounts", "counts", "countplot"},
			roles:   [numRoles]roleRule{Primary: {required, false}},
			derive:  deriveCounts,
			resolve: resolveBars,
		},
		Pie: {
			name:    "Pie Chart",
			aliases: []string{"pie"},
			roles:   [numRoles]roleRule{Primary: {required, false}},
			derive:  deriveCounts,
			resolve: resolvePie,
		},
		BoxPlot: {
			name:    "Box Plot",
			aliases: []string{"box", "boxplot"},
			roles: [numRoles]roleRule{
				Primary:   {required, false},
				Secondary: {required, true},
				Hue:       {optional, false},
			},
			derive:  derivePaired,
			resolve: resolveBoxes,
		},
		ScatterPlot: {
			name:    "Scatter Plot",
			aliases: []string{"scatter"},
			roles: [numRoles]roleRule{
				Primary:   {required, true},
				Secondary: {required, true},
				Hue:       {optional, false},
			},
			derive:  derivePaired,
			resolve: resolveScatter,
		},
		LinePlot: {
			name:    "Line Plot",
			aliases: []string{"line"},
			roles: [numRoles]roleRule{
				Primary:   {required, true},
				Secondary: {required, true},
			},
			derive:  deriveSortedPaired,
			resolve: resolveLine,
		},
		ViolinPlot: {
			name:    "Violin Plot",
			aliases: []string{"violin"},
			roles: [numRoles]roleRule{
				Primary:   {required, false},
				Secondary: {required, true},
				Hue:       {optional, false},
			},
			derive:  derivePaired,
			resolve: resolveViolins,
		},
		CorrelationHeatmap: {
			name:      "Correlation Heatmap",
			aliases:   []string{"heatmap", "corr", "correlation", "heatmapcorrelation"},
			tableWide: true,
			derive:    deriveCorrelation,
			resolve:   resolveHeatmap,
		},
		PairPlot: {
			name:      "Pair Plot",
			aliases:   []string{"pair", "pairs"},
			tableWide: true,
			derive:    deriveNumericColumns,
			resolve:   resolvePairs,
		},
	}
}

// Roles returns the roles k accepts, in order, and whether each is
// required. It returns nil for an unknown kind.
func (k Kind) Roles() (roles []Role, isRequired []bool) {
	if k < 0 || k >= numKinds {
		return nil, nil
	}
	for r, rule := range kinds[k].roles {
		if rule.need == notApplicable {
			continue
		}
		roles = append(roles, Role(r))
		isRequired = append(isRequired, rule.need == required)
	}
	return
}

// TableWide reports whether k plots every numeric column instead of
// selected columns.
func (k Kind) TableWide() bool {
	if k < 0 || k >= numKinds {
		return false
	}
	return kinds[k].tableWide
}

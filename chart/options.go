// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultBinCount is the histogram bin count used when none (or an
// invalid one) is given.
const DefaultBinCount = 30

// MaxBinCount is the largest histogram bin count accepted. Larger
// requests fall back to DefaultBinCount with an InvalidOption notice.
const MaxBinCount = 1000

// Options are per-request chart settings.
type Options struct {
	// LogScale applies a base-10 log scale to the X axis of a
	// Histogram and to both axes of a ScatterPlot. Other kinds
	// ignore it.
	LogScale bool

	// BinCount is the histogram bin count exactly as the user
	// entered it. "" means DefaultBinCount. Any other value that
	// is not a positive integer also yields DefaultBinCount, with
	// an InvalidOption notice.
	BinCount string
}

// NoticeCode classifies a Notice.
type NoticeCode int

const (
	// InvalidOption means an option value was replaced by its
	// default. Err is an *InvalidOptionValueError.
	InvalidOption NoticeCode = iota

	// Truncated means the input was cut down to keep the chart
	// tractable.
	Truncated

	// IgnoredRole means a column was bound to a role the chart
	// kind does not use.
	IgnoredRole

	// DroppedValues means some rows could not be drawn, such as
	// non-positive values on a log axis.
	DroppedValues
)

func (c NoticeCode) String() string {
	switch c {
	case InvalidOption:
		return "invalid option"
	case Truncated:
		return "truncated"
	case IgnoredRole:
		return "ignored role"
	case DroppedValues:
		return "dropped values"
	}
	return fmt.Sprintf("NoticeCode(%d)", int(c))
}

// A Notice is an informational condition raised while producing a
// figure. Notices never prevent a figure from being produced.
type Notice struct {
	Code NoticeCode
	Msg  string
	Err  error
}

func (n Notice) String() string {
	return n.Msg
}

func notice(code NoticeCode, format string, args ...interface{}) Notice {
	return Notice{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// binCount returns the histogram bin count requested by o.
func (o Options) binCount() (int, *Notice) {
	n, err := strconv.Atoi(strings.TrimSpace(o.BinCount))
	if err == nil && n > 0 && n <= MaxBinCount {
		return n, nil
	}
	if o.BinCount == "" {
		return DefaultBinCount, nil
	}
	e := &InvalidOptionValueError{"bin count", o.BinCount, strconv.Itoa(DefaultBinCount)}
	return DefaultBinCount, &Notice{Code: InvalidOption, Msg: e.Error(), Err: e}
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrEmpty is returned when the input has no header row.
var ErrEmpty = errors.New("no header row")

// DuplicateColumnError reports a header that names the same column
// twice.
type DuplicateColumnError struct {
	Name string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %q", e.Name)
}

// RaggedRowError reports a record whose field count differs from the
// header's.
type RaggedRowError struct {
	Line   int
	Fields int
	Want   int
}

func (e *RaggedRowError) Error() string {
	return fmt.Sprintf("line %d: %d fields; header has %d", e.Line, e.Fields, e.Want)
}

// ReadOptions controls how delimited text is parsed.
type ReadOptions struct {
	// Comma is the field delimiter. If it is 0, ReadFile picks it
	// from the file extension (tab for .tsv and .tab, otherwise
	// comma) and Read uses a comma.
	Comma rune

	// Name is recorded as the Table's name. ReadFile defaults it to
	// the file's base name.
	Name string
}

// naValues are the cell contents treated as missing. This is the
// default NA set of the pandas CSV reader, which is what users of
// this kind of tool expect.
var naValues = map[string]bool{
	"": true, "NA": true, "N/A": true, "n/a": true, "NaN": true,
	"nan": true, "-NaN": true, "-nan": true, "null": true,
	"NULL": true, "None": true, "#N/A": true, "#NA": true,
	"<NA>": true, "1.#IND": true, "1.#QNAN": true, "-1.#IND": true,
	"-1.#QNAN": true, "#N/A N/A": true,
}

// IsMissing reports whether the cell text s denotes a missing value.
func IsMissing(s string) bool {
	return naValues[strings.TrimSpace(s)]
}

// ReadFile loads a delimited text file.
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if opts.Comma == 0 {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".tsv", ".tab":
			opts.Comma = '\t'
		}
	}
	if opts.Name == "" {
		opts.Name = filepath.Base(path)
	}
	t, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read loads delimited text from r. The first record is the header.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	// Ragged rows are reported with our own error.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	} else if err != nil {
		return nil, err
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(rec) != len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &RaggedRowError{line, len(rec), len(header)}
		}
		rows = append(rows, rec)
	}
	return fromStrings(opts.Name, header, rows)
}

// FromStrings builds a Table from a header and records of cell text,
// inferring each column's type class.
func FromStrings(header []string, rows [][]string) (*Table, error) {
	return fromStrings("", header, rows)
}

func fromStrings(name string, header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmpty
	}
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if seen[h] {
			return nil, &DuplicateColumnError{h}
		}
		seen[h] = true
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &RaggedRowError{i + 2, len(row), len(header)}
		}
	}

	b := NewBuilder(name)
	cells := make([]string, len(rows))
	for ci, col := range header {
		for ri, row := range rows {
			cells[ri] = row[ci]
		}
		if xs, ok := parseNumeric(cells); ok {
			b.Numeric(col, xs)
			continue
		}
		vals := make([]string, len(rows))
		missing := make([]bool, len(rows))
		for ri, s := range cells {
			if IsMissing(s) {
				missing[ri] = true
				continue
			}
			vals[ri] = s
		}
		b.Categorical(col, vals, missing)
	}
	return b.Done()
}

// parseNumeric converts cells to floats if every present cell parses
// as a number. Missing cells become NaN. A column with no present
// cells is numeric.
func parseNumeric(cells []string) ([]float64, bool) {
	xs := make([]float64, len(cells))
	for i, s := range cells {
		if IsMissing(s) {
			xs[i] = math.NaN()
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, false
		}
		xs[i] = x
	}
	return xs, true
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/odat-project/dataviz/chart"
	"github.com/odat-project/dataviz/dataset"
	"github.com/odat-project/dataviz/figexport"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

const citiesCSV = `age,city
31,A
42,B
27,A
55,C
38,A
`

func newTestPipeline(t *testing.T) (*Pipeline, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return New(Config{Clock: clock}), clock
}

func mustLoad(t *testing.T, p *Pipeline, csv string) *dataset.Table {
	t.Helper()
	tab, err := dataset.Read(strings.NewReader(csv), dataset.ReadOptions{Name: "test"})
	require.NoError(t, err)
	require.NoError(t, p.Load(tab))
	return tab
}

func TestLifecycle(t *testing.T) {
	p, _ := newTestPipeline(t)
	require.Equal(t, Empty, p.State())

	_, _, err := p.Generate(Request{Kind: chart.BarCounts, Selection: chart.Selection{chart.Primary: "city"}})
	require.ErrorIs(t, err, ErrNoTable)

	mustLoad(t, p, citiesCSV)
	require.Equal(t, Empty, p.State())
	_, err = p.Current()
	require.ErrorIs(t, err, ErrNoFigureAvailable)

	fig, _, err := p.Generate(Request{Kind: chart.BarCounts, Selection: chart.Selection{chart.Primary: "city"}})
	require.NoError(t, err)
	require.Equal(t, Ready, p.State())
	cur, err := p.Current()
	require.NoError(t, err)
	require.Same(t, fig, cur)

	// A failed request discards the previous figure.
	_, _, err = p.Generate(Request{Kind: chart.ScatterPlot, Selection: chart.Selection{chart.Primary: "city", chart.Secondary: "age"}})
	var mismatch *chart.TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, Empty, p.State())
	require.ErrorIs(t, p.Export(new(bytes.Buffer), figexport.SVG, figexport.Options{}), ErrNoFigureAvailable)

	_, _, err = p.Generate(Request{Kind: chart.Histogram, Selection: chart.Selection{chart.Primary: "age"}})
	require.NoError(t, err)
	require.Equal(t, Ready, p.State())

	// Loading a new table discards the figure.
	mustLoad(t, p, citiesCSV)
	require.Equal(t, Empty, p.State())
}

func TestLoadNil(t *testing.T) {
	p, _ := newTestPipeline(t)
	require.ErrorIs(t, p.Load(nil), ErrNoTable)
	require.Nil(t, p.Table())

	tab := mustLoad(t, p, citiesCSV)
	_, _, err := p.Generate(Request{Kind: chart.Pie, Selection: chart.Selection{chart.Primary: "city"}})
	require.NoError(t, err)

	// A rejected load keeps the table and the figure.
	require.ErrorIs(t, p.Load(nil), ErrNoTable)
	require.Same(t, tab, p.Table())
	require.Equal(t, Ready, p.State())
}

func TestPartialTheme(t *testing.T) {
	p := New(Config{Theme: chart.Theme{Width: 640, Height: 480}})
	mustLoad(t, p, citiesCSV)
	for _, req := range []Request{
		{Kind: chart.Histogram, Selection: chart.Selection{chart.Primary: "age"}},
		{Kind: chart.Pie, Selection: chart.Selection{chart.Primary: "city"}},
		{Kind: chart.BarCounts, Selection: chart.Selection{chart.Primary: "city"}},
	} {
		fig, _, err := p.Generate(req)
		require.NoError(t, err, "%s", req.Kind)
		require.Equal(t, 640, fig.Width)
		require.NoError(t, p.Export(new(bytes.Buffer), figexport.SVG, figexport.Options{}), "%s", req.Kind)
	}
}

func TestFigureIdentity(t *testing.T) {
	p, clock := newTestPipeline(t)
	mustLoad(t, p, citiesCSV)
	req := Request{Kind: chart.Pie, Selection: chart.Selection{chart.Primary: "city"}}

	first, _, err := p.Generate(req)
	require.NoError(t, err)
	require.Equal(t, clock.Now(), first.Created)

	clock.Advance(time.Minute)
	second, _, err := p.Generate(req)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, first.Created.Add(time.Minute), second.Created)
}

func TestExport(t *testing.T) {
	p, _ := newTestPipeline(t)
	mustLoad(t, p, citiesCSV)
	_, _, err := p.Generate(Request{Kind: chart.BarCounts, Selection: chart.Selection{chart.Primary: "city"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.Export(&buf, figexport.SVG, figexport.Options{}))
	require.Contains(t, buf.String(), "Bar Chart of city")

	path := filepath.Join(t.TempDir(), "cities.pdf")
	format, err := p.ExportFile(path, figexport.Options{DPI: 50})
	require.NoError(t, err)
	require.Equal(t, figexport.PDF, format)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestLoadFile(t *testing.T) {
	p, _ := newTestPipeline(t)
	path := filepath.Join(t.TempDir(), "cities.tsv")
	require.NoError(t, os.WriteFile(path, []byte("age\tcity\n31\tA\n42\tB\n"), 0o666))

	tab, err := p.LoadFile(path, dataset.ReadOptions{})
	require.NoError(t, err)
	require.Same(t, tab, p.Table())
	require.Equal(t, []string{"age", "city"}, tab.Columns())

	_, err = p.LoadFile(filepath.Join(t.TempDir(), "missing.csv"), dataset.ReadOptions{})
	require.Error(t, err)
	require.Same(t, tab, p.Table())
}

// TestScripts runs each testdata/*.txtar archive. An archive holds
// the input table in data.csv, a request file of "key value" lines
// (kind, x, y, hue, log, bins), and a want file of "key value" lines
// checked against the result.
func TestScripts(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)
			parts := make(map[string]string)
			for _, f := range ar.Files {
				parts[f.Name] = string(f.Data)
			}
			for _, name := range []string{"data.csv", "request", "want"} {
				_, ok := parts[name]
				require.True(t, ok, "archive has no %s", name)
			}

			p, _ := newTestPipeline(t)
			mustLoad(t, p, parts["data.csv"])
			req := parseRequest(t, parts["request"])
			fig, notices, genErr := p.Generate(req)

			for _, line := range lines(parts["want"]) {
				key, val, _ := strings.Cut(line, " ")
				switch key {
				case "state":
					require.Equal(t, val, p.State().String())
				case "error":
					require.Error(t, genErr)
					require.Contains(t, genErr.Error(), val)
				case "title":
					require.NoError(t, genErr)
					require.Equal(t, val, fig.Title)
				case "xlabel":
					require.Equal(t, val, fig.XLabel)
				case "ylabel":
					require.Equal(t, val, fig.YLabel)
				case "rows":
					require.NoError(t, genErr)
					n, err := strconv.Atoi(val)
					require.NoError(t, err)
					require.Equal(t, n, fig.Table().Len())
				case "counts":
					require.NoError(t, genErr)
					var got []string
					for _, b := range fig.Bars {
						got = append(got, fmt.Sprintf("%s:%d", b.Label, b.Count))
					}
					require.Equal(t, val, strings.Join(got, " "))
				case "notice":
					var codes []string
					for _, n := range notices {
						codes = append(codes, n.Code.String())
					}
					require.Contains(t, codes, val)
				case "nonotice":
					require.Empty(t, notices)
				default:
					t.Fatalf("unknown want key %q", key)
				}
			}
		})
	}
}

func parseRequest(t *testing.T, text string) Request {
	t.Helper()
	req := Request{Selection: make(chart.Selection)}
	for _, line := range lines(text) {
		key, val, _ := strings.Cut(line, " ")
		switch key {
		case "kind":
			k, err := chart.ParseKind(val)
			require.NoError(t, err)
			req.Kind = k
		case "x":
			req.Selection[chart.Primary] = val
		case "y":
			req.Selection[chart.Secondary] = val
		case "hue":
			req.Selection[chart.Hue] = val
		case "log":
			req.Options.LogScale = val == "true"
		case "bins":
			req.Options.BinCount = val
		default:
			t.Fatalf("unknown request key %q", key)
		}
	}
	return req
}

func lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline owns the current table and the current figure, and
// moves between them one request at a time.
//
// A Pipeline starts Empty. Generating a figure first discards the
// current one, so a failed request leaves the pipeline Empty rather
// than showing a figure that does not match the latest request.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/odat-project/dataviz/chart"
	"github.com/odat-project/dataviz/dataset"
	"github.com/odat-project/dataviz/figexport"
	"github.com/odat-project/dataviz/internal/logger"
)

var (
	// ErrNoTable is returned when generating before any table is
	// loaded, and when loading a nil table.
	ErrNoTable = errors.New("no table loaded")

	// ErrNoFigureAvailable is returned when asking for or exporting
	// the current figure in the Empty state.
	ErrNoFigureAvailable = errors.New("no figure available; generate a plot first")
)

// State is the figure lifecycle state.
type State int

const (
	Empty State = iota
	Ready
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Ready:
		return "Ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config configures a Pipeline. All fields are optional; zero Theme
// fields take their DefaultTheme values when a figure is resolved.
type Config struct {
	Logger *slog.Logger
	Clock  clockwork.Clock
	Theme  chart.Theme
}

func (cfg *Config) setDefaults() {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
}

// Request is one plot request.
type Request struct {
	Kind      chart.Kind
	Selection chart.Selection
	Options   chart.Options
}

// Pipeline holds the loaded table and the current figure.
type Pipeline struct {
	cfg Config
	log *slog.Logger

	mu    sync.Mutex
	table *dataset.Table
	fig   *chart.Figure
}

// New returns an Empty pipeline with no table.
func New(cfg Config) *Pipeline {
	cfg.setDefaults()
	return &Pipeline{cfg: cfg, log: cfg.Logger}
}

// Load replaces the current table with t and discards the current
// figure. Loading a nil table fails with ErrNoTable and changes
// nothing.
func (p *Pipeline) Load(t *dataset.Table) error {
	if t == nil {
		return ErrNoTable
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.table = t
	p.setFigure(nil)
	p.log.Info("loaded table", "name", t.Name(), "rows", t.Len(), "columns", len(t.Columns()), "numeric", len(t.NumericColumns()))
	return nil
}

// LoadFile reads a delimited file and loads it. On failure the
// current table and figure are unchanged.
func (p *Pipeline) LoadFile(path string, opts dataset.ReadOptions) (*dataset.Table, error) {
	t, err := dataset.ReadFile(path, opts)
	if err != nil {
		return nil, err
	}
	if err := p.Load(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Table returns the loaded table, or nil.
func (p *Pipeline) Table() *dataset.Table {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.table
}

// State returns the figure lifecycle state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state()
}

func (p *Pipeline) state() State {
	if p.fig == nil {
		return Empty
	}
	return Ready
}

func (p *Pipeline) setFigure(f *chart.Figure) {
	from := p.state()
	p.fig = f
	if to := p.state(); to != from {
		p.log.Debug("figure state", "from", from, "to", to)
	}
}

// Generate validates, derives and resolves req against the loaded
// table. The current figure is discarded before resolution starts and
// replaced only on success. Notices are returned on success; they are
// also recorded on the figure.
func (p *Pipeline) Generate(req Request) (*chart.Figure, []chart.Notice, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.setFigure(nil)
	if p.table == nil {
		return nil, nil, ErrNoTable
	}

	log := p.log.With("kind", req.Kind)
	fig, err := chart.Generate(p.table, req.Kind, req.Selection, req.Options, p.cfg.Theme)
	if err != nil {
		log.Debug("plot request failed", "error", err)
		return nil, nil, err
	}
	fig.ID = uuid.New()
	fig.Created = p.cfg.Clock.Now()
	for _, n := range fig.Notices {
		log.Info(n.Msg, "notice", n.Code)
	}
	p.setFigure(fig)
	log.Debug("generated figure", "id", fig.ID, "title", fig.Title)
	return fig, fig.Notices, nil
}

// Current returns the current figure.
func (p *Pipeline) Current() (*chart.Figure, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fig == nil {
		return nil, ErrNoFigureAvailable
	}
	return p.fig, nil
}

// Export writes the current figure to w.
func (p *Pipeline) Export(w io.Writer, format figexport.Format, opts figexport.Options) error {
	fig, err := p.Current()
	if err != nil {
		return err
	}
	if err := figexport.Write(w, fig, format, opts); err != nil {
		return err
	}
	p.log.Debug("exported figure", "id", fig.ID, "format", format)
	return nil
}

// ExportFile writes the current figure to path in the format named by
// its extension.
func (p *Pipeline) ExportFile(path string, opts figexport.Options) (figexport.Format, error) {
	fig, err := p.Current()
	if err != nil {
		return 0, err
	}
	format, err := figexport.WriteFile(path, fig, opts)
	if err != nil {
		return format, err
	}
	p.log.Info("saved figure", "path", path, "format", format)
	return format, nil
}

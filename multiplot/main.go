// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command multiplot draws a statistical chart of a delimited text
// table.
//
// Usage:
//
//	multiplot [flags] input.csv
//
// The input is read from stdin if it is "-" or omitted. The chart
// kind is one of hist, bar, pie, box, scatter, line, violin, heatmap
// or pair. --x, --y and --hue bind the Primary, Secondary and Hue
// columns. The figure is written to -o in the format named by its
// extension (PNG if it has none), or to stdout.
//
// Defaults for --dpi, --format and --open may be set with the
// MULTIPLOT_DPI, MULTIPLOT_FORMAT and MULTIPLOT_OPEN environment
// variables, which are also read from a .env file in the current
// directory. Flags override the environment.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/joho/godotenv"
	"github.com/kballard/go-shellquote"
	flag "github.com/spf13/pflag"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/odat-project/dataviz/chart"
	"github.com/odat-project/dataviz/dataset"
	"github.com/odat-project/dataviz/figexport"
	"github.com/odat-project/dataviz/internal/logger"
	"github.com/odat-project/dataviz/pipeline"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	fs := flag.NewFlagSet("multiplot", flag.ContinueOnError)
	var (
		flagKind    = fs.String("kind", "", "chart `kind`: hist, bar, pie, box, scatter, line, violin, heatmap, pair")
		flagX       = fs.String("x", "", "Primary `column`")
		flagY       = fs.String("y", "", "Secondary `column`")
		flagHue     = fs.String("hue", "", "Hue `column`")
		flagLog     = fs.Bool("log", false, "use a log scale (histogram X axis, scatter plot axes)")
		flagBins    = fs.String("bins", "", "histogram bin `count` (default 30)")
		flagOut     = fs.StringP("out", "o", "", "write the figure to `file` (default: stdout)")
		flagFormat  = fs.String("format", "", "output `format` (png, svg, jpeg, bmp, tiff, pdf)")
		flagDPI     = fs.Int("dpi", figexport.DefaultDPI, "raster resolution")
		flagSep     = fs.String("sep", "", "input field separator (default: from the file extension)")
		flagSummary = fs.Bool("summary", false, "print summary statistics of the input")
		flagColumns = fs.Bool("columns", false, "list the input's columns and their types")
		flagTable   = fs.Bool("table", false, "print the figure's data as a table instead of drawing it")
		flagOpen    = fs.String("open", "", "open the written file with viewer `command`")
		flagVerbose = fs.Bool("verbose", false, "enable verbose (debug) logging")
	)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: multiplot [flags] [input]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := applyEnv(fs, os.Getenv); err != nil {
		return err
	}

	log := logger.New(os.Stderr, *flagVerbose, isTerminal(os.Stderr))
	gg.Warning = slog.NewLogLogger(log.Handler(), slog.LevelWarn)

	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("expected at most one input, got %d", fs.NArg())
	}
	input := fs.Arg(0)
	if input == "" {
		input = "-"
	}
	sep, err := parseSep(*flagSep)
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.Config{Logger: log})
	if input == "-" {
		t, err := dataset.Read(os.Stdin, dataset.ReadOptions{Comma: sep, Name: "stdin"})
		if err != nil {
			return err
		}
		if err := p.Load(t); err != nil {
			return err
		}
	} else if _, err := p.LoadFile(input, dataset.ReadOptions{Comma: sep}); err != nil {
		return err
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	if *flagColumns {
		printColumns(stdout, p.Table())
	}
	if *flagSummary {
		dataset.Describe(p.Table()).Fprint(stdout)
	}
	if *flagKind == "" {
		if *flagColumns || *flagSummary {
			return nil
		}
		return errors.New("--kind is required")
	}

	kind, err := chart.ParseKind(*flagKind)
	if err != nil {
		return err
	}
	req := pipeline.Request{
		Kind:      kind,
		Selection: chart.Selection{chart.Primary: *flagX, chart.Secondary: *flagY, chart.Hue: *flagHue},
		Options:   chart.Options{LogScale: *flagLog, BinCount: *flagBins},
	}
	fig, _, err := p.Generate(req)
	if err != nil {
		return err
	}

	if *flagTable {
		table.Fprint(stdout, fig.Table())
		return nil
	}

	format, err := outputFormat(*flagFormat, *flagOut)
	if err != nil {
		return err
	}
	opts := figexport.Options{DPI: *flagDPI}

	if *flagOut == "" || *flagOut == "-" {
		if format.Binary() && isTerminal(os.Stdout) {
			return fmt.Errorf("not writing %s to a terminal; use -o or --format svg", format)
		}
		return p.Export(stdout, format, opts)
	}

	if err := writeFile(p, *flagOut, format, *flagFormat != "", opts); err != nil {
		return err
	}
	if *flagOpen != "" {
		return openViewer(log, *flagOpen, *flagOut)
	}
	return nil
}

// applyEnv fills flags the user did not set from MULTIPLOT_*
// variables.
func applyEnv(fs *flag.FlagSet, getenv func(string) string) error {
	for name, env := range map[string]string{
		"dpi":    "MULTIPLOT_DPI",
		"format": "MULTIPLOT_FORMAT",
		"open":   "MULTIPLOT_OPEN",
	} {
		val := getenv(env)
		if val == "" || fs.Changed(name) {
			continue
		}
		if err := fs.Set(name, val); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

// parseSep parses the --sep flag. "\t" and "tab" mean a tab.
func parseSep(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("--sep must be a single character, got %q", s)
	}
	return r[0], nil
}

// outputFormat picks the export format from the --format flag, else
// from the output path.
func outputFormat(name, out string) (figexport.Format, error) {
	if name != "" {
		return figexport.ParseFormat(name)
	}
	if out == "" || out == "-" {
		return figexport.PNG, nil
	}
	return figexport.FormatFromPath(out)
}

func writeFile(p *pipeline.Pipeline, path string, format figexport.Format, explicit bool, opts figexport.Options) error {
	if !explicit {
		_, err := p.ExportFile(path, opts)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	err = p.Export(w, format, opts)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func openViewer(log *slog.Logger, command, path string) error {
	args, err := shellquote.Split(command)
	if err != nil {
		return fmt.Errorf("parsing --open command: %w", err)
	}
	if len(args) == 0 {
		return nil
	}
	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
	if err := cmd.Start(); err != nil {
		return err
	}
	log.Debug("started viewer", "command", shellquote.Join(cmd.Args...), "pid", cmd.Process.Pid)
	return cmd.Process.Release()
}

func printColumns(w io.Writer, t *dataset.Table) {
	var names, kinds []string
	var present []int
	for _, name := range t.Columns() {
		c, err := t.Column(name)
		if err != nil {
			continue
		}
		n := 0
		for i := 0; i < c.Len(); i++ {
			if !c.IsMissing(i) {
				n++
			}
		}
		names = append(names, name)
		kinds = append(kinds, c.Kind.String())
		present = append(present, n)
	}
	table.Fprint(w, new(table.Builder).Add("column", names).Add("kind", kinds).Add("non-null", present).Done())
}

func isTerminal(f *os.File) bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return terminal.IsTerminal(int(f.Fd()))
}

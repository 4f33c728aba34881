// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package figexport writes resolved figures to image and document
// files.
//
// SVG is written directly from the figure's plot. Raster formats
// rasterize that SVG and draw its text with a bitmap font. PDF embeds
// the PNG rendering in a single page sized to the figure.
package figexport

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/odat-project/dataviz/chart"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultDPI is the raster resolution used when Options.DPI is zero.
const DefaultDPI = 300

// MaxDPI is the highest raster resolution accepted.
const MaxDPI = 1200

// Options control export.
type Options struct {
	// DPI is the raster resolution. A figure's Width and Height are
	// pixels at 100 DPI. Ignored for SVG.
	DPI int
}

func (o Options) dpi() (int, error) {
	if o.DPI <= 0 {
		return DefaultDPI, nil
	}
	if o.DPI > MaxDPI {
		return 0, &DPIRangeError{o.DPI}
	}
	return o.DPI, nil
}

// DPIRangeError is returned when Options.DPI exceeds MaxDPI.
type DPIRangeError struct {
	DPI int
}

func (e *DPIRangeError) Error() string {
	return fmt.Sprintf("dpi %d out of range (maximum %d)", e.DPI, MaxDPI)
}

// ErrNoFigure is returned when asked to export a nil figure.
var ErrNoFigure = errors.New("no figure to export")

// Write encodes fig to w in format f.
func Write(w io.Writer, fig *chart.Figure, f Format, opts Options) error {
	if fig == nil {
		return ErrNoFigure
	}
	if f == SVG {
		return fig.WriteSVG(w)
	}

	img, err := Rasterize(fig, opts)
	if err != nil {
		return err
	}
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case PDF:
		return writePDF(w, fig, img)
	}
	return &UnknownFormatError{f.String()}
}

// WriteFile writes fig to path, picking the format from the path's
// extension. It returns the format used.
func WriteFile(path string, fig *chart.Figure, opts Options) (Format, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return 0, err
	}
	if fig == nil {
		return f, ErrNoFigure
	}
	file, err := os.Create(path)
	if err != nil {
		return f, err
	}
	bw := bufio.NewWriter(file)
	if err := Write(bw, fig, f, opts); err != nil {
		file.Close()
		os.Remove(path)
		return f, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		os.Remove(path)
		return f, err
	}
	return f, file.Close()
}

// encodePNG is shared by the PDF writer.
func encodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figexport

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an export file format.
type Format int

const (
	PNG Format = iota
	SVG
	JPEG
	BMP
	TIFF
	PDF
)

var formats = [...]struct {
	name, ext string
	aliases   []string
	binary    bool
}{
	PNG:  {"png", ".png", nil, true},
	SVG:  {"svg", ".svg", nil, false},
	JPEG: {"jpeg", ".jpg", []string{"jpg", "jpe"}, true},
	BMP:  {"bmp", ".bmp", nil, true},
	TIFF: {"tiff", ".tif", []string{"tif"}, true},
	PDF:  {"pdf", ".pdf", nil, true},
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formats) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formats[f].name
}

// Ext returns the conventional file extension of f, including the dot.
func (f Format) Ext() string {
	return formats[f].ext
}

// Binary reports whether f is a binary format. Only SVG is text.
func (f Format) Binary() bool {
	return formats[f].binary
}

// Raster reports whether f is encoded from a rasterized image.
func (f Format) Raster() bool {
	return f != SVG && f != PDF
}

// Formats returns all formats in a stable order.
func Formats() []Format {
	out := make([]Format, len(formats))
	for i := range formats {
		out[i] = Format(i)
	}
	return out
}

// UnknownFormatError is returned for a format name or file extension
// that is not supported.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown export format %q", e.Name)
}

// ParseFormat returns the format named s. Matching ignores case and a
// leading dot, so "PNG", "png" and ".png" are all PNG.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(s, "."))
	for i, info := range formats {
		if name == info.name {
			return Format(i), nil
		}
		for _, alias := range info.aliases {
			if name == alias {
				return Format(i), nil
			}
		}
	}
	return 0, &UnknownFormatError{s}
}

// FormatFromPath picks the format from path's extension. A path with
// no extension is PNG. An unrecognized extension is an error.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return PNG, nil
	}
	return ParseFormat(ext)
}

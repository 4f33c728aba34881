// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figexport

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// A textItem is one <text> element lifted out of a rendered SVG.
type textItem struct {
	X, Y   float64
	Anchor string  // "start", "middle" or "end"
	DY     float64 // baseline shift in em
	Rotate int     // 0, 90 or -90 degrees
	Fill   color.Color
	Text   string
}

// scannedSVG is a rendered SVG split into the part the rasterizer can
// draw and the text it cannot.
type scannedSVG struct {
	Shapes   []byte
	Texts    []textItem
	FontSize float64
}

// scanSVG removes <text> and <clipPath> elements from src. The
// rasterizer would paint a clip path's shapes as ordinary fills and
// has no text support, so texts are returned separately to be drawn
// on top.
func scanSVG(src []byte) (*scannedSVG, error) {
	out := &scannedSVG{FontSize: 14}
	var shapes bytes.Buffer
	dec := xml.NewDecoder(bytes.NewReader(src))

	var (
		copied    int64 // src[:copied] has been handled
		cutStart  int64 = -1
		cutDepth  int
		depth     int
		cur       *textItem
		curHidden bool
	)
	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("scanning SVG: %w", err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			depth++
			if cutStart >= 0 {
				break
			}
			switch tok.Name.Local {
			case "svg":
				if fs, ok := attr(tok, "font-size"); ok {
					if v, err := strconv.ParseFloat(strings.TrimSuffix(fs, "px"), 64); err == nil && v > 0 {
						out.FontSize = v
					}
				}
			case "clipPath", "text":
				cutStart, cutDepth = start, depth
				if tok.Name.Local == "text" {
					cur, curHidden = newTextItem(tok)
				}
			}

		case xml.CharData:
			if cur != nil {
				cur.Text += string(tok)
			}

		case xml.EndElement:
			if cutStart >= 0 && depth == cutDepth {
				shapes.Write(src[copied:cutStart])
				copied = dec.InputOffset()
				cutStart = -1
				if cur != nil {
					cur.Text = strings.TrimSpace(cur.Text)
					if !curHidden && cur.Text != "" {
						out.Texts = append(out.Texts, *cur)
					}
					cur = nil
				}
			}
			depth--
		}
	}
	shapes.Write(src[copied:])
	out.Shapes = shapes.Bytes()
	return out, nil
}

func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func newTextItem(se xml.StartElement) (item *textItem, hidden bool) {
	item = &textItem{Anchor: "start", Fill: color.Black}
	for _, a := range se.Attr {
		switch a.Name.Local {
		case "x":
			item.X, _ = strconv.ParseFloat(a.Value, 64)
		case "y":
			item.Y, _ = strconv.ParseFloat(a.Value, 64)
		case "text-anchor":
			item.Anchor = a.Value
		case "dy":
			item.DY = parseEm(a.Value)
		case "fill":
			if c, ok := parseHexColor(a.Value); ok {
				item.Fill = c
			}
		case "transform":
			item.Rotate = parseRotate(a.Value)
		case "display":
			hidden = a.Value == "none"
		}
	}
	return item, hidden
}

// parseEm parses a length like ".3em" or "1em" as a number of ems.
// Other units are ignored.
func parseEm(s string) float64 {
	if !strings.HasSuffix(s, "em") {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "em"), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseRotate returns the angle of a "rotate(a cx cy)" transform,
// rounded to a quarter turn.
func parseRotate(s string) int {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "rotate(") {
		return 0
	}
	fields := strings.FieldsFunc(strings.TrimSuffix(s[len("rotate("):], ")"), func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) == 0 {
		return 0
	}
	a, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	switch {
	case a <= -45:
		return -90
	case a >= 45:
		return 90
	}
	return 0
}

func parseHexColor(s string) (color.Color, bool) {
	if !strings.HasPrefix(s, "#") {
		return nil, false
	}
	s = s[1:]
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, true
}

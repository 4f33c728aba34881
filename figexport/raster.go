// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figexport

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/odat-project/dataviz/chart"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// baseDPI is the resolution at which a figure's pixel size is
// defined.
const baseDPI = 100

// maxPixels bounds the size of a rasterized figure.
const maxPixels = 1 << 27

// Rasterize renders fig to an image at opts.DPI. The image is
// fig.Width×fig.Height scaled by DPI/100. A DPI above MaxDPI fails
// with *DPIRangeError.
func Rasterize(fig *chart.Figure, opts Options) (*image.RGBA, error) {
	dpi, err := opts.dpi()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := fig.WriteSVG(&buf); err != nil {
		return nil, fmt.Errorf("rendering SVG: %w", err)
	}
	return rasterizeSVG(buf.Bytes(), fig.Width, fig.Height, dpi)
}

func rasterizeSVG(src []byte, width, height, dpi int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bad figure size %dx%d", width, height)
	}
	scan, err := scanSVG(src)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(scan.Shapes), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing SVG: %w", err)
	}

	scale := float64(dpi) / baseDPI
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	if float64(w)*float64(h) > maxPixels {
		return nil, fmt.Errorf("image %dx%d at %d dpi is too large", w, h, dpi)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	icon.SetTarget(0, 0, float64(w), float64(h))
	icon.Draw(rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, img, img.Bounds())), 1)

	// Text is laid out at the figure's own size and scaled with the
	// rest of the image.
	if len(scan.Texts) > 0 {
		overlay := image.NewRGBA(image.Rect(0, 0, width, height))
		for _, t := range scan.Texts {
			drawText(overlay, t, scan.FontSize)
		}
		draw.BiLinear.Scale(img, img.Bounds(), overlay, overlay.Bounds(), draw.Over, nil)
	}
	return img, nil
}

var textFace = basicfont.Face7x13

// drawText draws t onto dst the way an SVG renderer would place it:
// anchored at (X, Y), shifted down by DY ems, and rotated a quarter
// turn about the anchor point if requested.
func drawText(dst *image.RGBA, t textItem, fontSize float64) {
	metrics := textFace.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineH := metrics.Height.Ceil()
	tw := font.MeasureString(textFace, t.Text).Ceil()
	if tw == 0 {
		return
	}

	// Render the string upright into its own box.
	box := image.NewRGBA(image.Rect(0, 0, tw, lineH))
	d := &font.Drawer{
		Dst:  box,
		Src:  image.NewUniform(t.Fill),
		Face: textFace,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(t.Text)

	// Offset of the box's top-left corner from the anchor, before
	// rotation.
	var l int
	switch t.Anchor {
	case "middle":
		l = -tw / 2
	case "end":
		l = -tw
	}
	top := int(math.Round(t.DY*fontSize)) - ascent
	x, y := int(math.Round(t.X)), int(math.Round(t.Y))

	switch t.Rotate {
	case 0:
		r := box.Bounds().Add(image.Pt(x+l, y+top))
		draw.Draw(dst, r, box, image.Point{}, draw.Over)
	case -90:
		rot := image.NewRGBA(image.Rect(0, 0, lineH, tw))
		for i := 0; i < tw; i++ {
			for j := 0; j < lineH; j++ {
				rot.Set(j, tw-1-i, box.At(i, j))
			}
		}
		r := rot.Bounds().Add(image.Pt(x+top, y-(l+tw)))
		draw.Draw(dst, r, rot, image.Point{}, draw.Over)
	case 90:
		rot := image.NewRGBA(image.Rect(0, 0, lineH, tw))
		for i := 0; i < tw; i++ {
			for j := 0; j < lineH; j++ {
				rot.Set(lineH-1-j, i, box.At(i, j))
			}
		}
		r := rot.Bounds().Add(image.Pt(x-(top+lineH), y+l))
		draw.Draw(dst, r, rot, image.Point{}, draw.Over)
	}
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figexport

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odat-project/dataviz/chart"
	"github.com/odat-project/dataviz/dataset"
	"github.com/stretchr/testify/require"
)

func testFigure(t *testing.T) *chart.Figure {
	t.Helper()
	tab, err := dataset.Read(strings.NewReader("city,n\nA,1\nB,2\nA,3\nC,4\n"), dataset.ReadOptions{Name: "cities"})
	require.NoError(t, err)
	fig, err := chart.Generate(tab, chart.BarCounts, chart.Selection{chart.Primary: "city"}, chart.Options{}, chart.DefaultTheme())
	require.NoError(t, err)
	return fig
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"png":  PNG,
		"PNG":  PNG,
		".svg": SVG,
		"jpg":  JPEG,
		"jpeg": JPEG,
		"bmp":  BMP,
		"tif":  TIFF,
		"tiff": TIFF,
		"pdf":  PDF,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ParseFormat("gif")
	var uerr *UnknownFormatError
	require.True(t, errors.As(err, &uerr))
	require.Equal(t, "gif", uerr.Name)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"plot":          PNG,
		"out/plot.svg":  SVG,
		"plot.JPG":      JPEG,
		"a.b/plot.tiff": TIFF,
		"plot.pdf":      PDF,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}
	_, err := FormatFromPath("plot.xyz")
	require.Error(t, err)
}

func TestFormatRoundTrip(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		require.Equal(t, f, got)
		got, err = FormatFromPath("x" + f.Ext())
		require.NoError(t, err)
		require.Equal(t, f, got)
		require.Equal(t, f != SVG, f.Binary())
	}
}

const scanInput = `<?xml version="1.0"?>
<svg width="200" height="100" font-size="12px" xmlns="http://www.w3.org/2000/svg">
<clipPath id="clip0">
<rect x="0" y="0" width="200" height="100" />
</clipPath>
<g clip-path="url(#clip0)">
<rect x="10" y="10" width="20" height="20" style="fill:#ff0000" />
</g>
<text x="50" y="60" text-anchor="middle" dy="1em" fill="#666">1.5</text>
<text x="20" y="50" text-anchor="middle" dy=".3em" transform="rotate(-90 20 50)">count</text>
<text display="none">hidden</text>
</svg>
`

func TestScanSVG(t *testing.T) {
	scan, err := scanSVG([]byte(scanInput))
	require.NoError(t, err)

	shapes := string(scan.Shapes)
	require.NotContains(t, shapes, "clipPath")
	require.NotContains(t, shapes, "<text")
	require.Contains(t, shapes, `style="fill:#ff0000"`)
	require.Contains(t, shapes, "</svg>")
	require.Equal(t, 12.0, scan.FontSize)

	require.Len(t, scan.Texts, 2)
	tick := scan.Texts[0]
	require.Equal(t, "1.5", tick.Text)
	require.Equal(t, 50.0, tick.X)
	require.Equal(t, 60.0, tick.Y)
	require.Equal(t, "middle", tick.Anchor)
	require.Equal(t, 1.0, tick.DY)
	require.Equal(t, 0, tick.Rotate)
	require.Equal(t, color.RGBA{0x66, 0x66, 0x66, 0xff}, tick.Fill)

	label := scan.Texts[1]
	require.Equal(t, "count", label.Text)
	require.Equal(t, -90, label.Rotate)
	require.InDelta(t, 0.3, label.DY, 1e-9)
	require.Equal(t, color.Black, label.Fill)
}

// inkBounds returns the bounding box of the non-transparent pixels of
// img.
func inkBounds(img *image.RGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestDrawText(t *testing.T) {
	const text = "horizontal"
	for _, test := range []struct {
		rotate int
		tall   bool
	}{
		{0, false},
		{-90, true},
		{90, true},
	} {
		img := image.NewRGBA(image.Rect(0, 0, 200, 200))
		drawText(img, textItem{X: 100, Y: 100, Anchor: "middle", Rotate: test.rotate, Fill: color.Black, Text: text}, 14)
		ink := inkBounds(img)
		require.False(t, ink.Empty(), "rotate %d", test.rotate)
		require.Equal(t, test.tall, ink.Dy() > ink.Dx(), "rotate %d: ink %v", test.rotate, ink)
		// Middle anchoring keeps the text centered on the anchor
		// along its reading direction.
		if test.tall {
			require.True(t, ink.Min.Y < 100 && ink.Max.Y > 100, "rotate %d: ink %v", test.rotate, ink)
		} else {
			require.True(t, ink.Min.X < 100 && ink.Max.X > 100, "ink %v", ink)
		}
	}
}

func TestWriteFormats(t *testing.T) {
	fig := testFigure(t)
	magic := map[Format]string{
		SVG:  "<?xml",
		PNG:  "\x89PNG",
		JPEG: "\xff\xd8",
		BMP:  "BM",
		TIFF: "II*\x00",
		PDF:  "%PDF",
	}
	for _, f := range Formats() {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, fig, f, Options{DPI: 50}), f.String())
		require.True(t, bytes.HasPrefix(buf.Bytes(), []byte(magic[f])), "%s output starts %q", f, buf.Bytes()[:8])
	}
}

func TestRasterize(t *testing.T) {
	fig := testFigure(t)
	img, err := Rasterize(fig, Options{DPI: 50})
	require.NoError(t, err)
	require.Equal(t, fig.Width/2, img.Bounds().Dx())
	require.Equal(t, fig.Height/2, img.Bounds().Dy())

	// Something other than the white background was drawn.
	var inked bool
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !inked; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.R != 0xff || c.G != 0xff || c.B != 0xff {
				inked = true
				break
			}
		}
	}
	require.True(t, inked)
}

func TestWriteFile(t *testing.T) {
	fig := testFigure(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "bars.png")
	f, err := WriteFile(path, fig, Options{DPI: 100})
	require.NoError(t, err)
	require.Equal(t, PNG, f)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	require.NoError(t, err)
	require.Equal(t, fig.Width, cfg.Width)
	require.Equal(t, fig.Height, cfg.Height)

	_, err = WriteFile(filepath.Join(dir, "bars.gif"), fig, Options{})
	var uerr *UnknownFormatError
	require.True(t, errors.As(err, &uerr))
	_, err = os.Stat(filepath.Join(dir, "bars.gif"))
	require.True(t, os.IsNotExist(err))
}

func TestWriteNilFigure(t *testing.T) {
	require.ErrorIs(t, Write(new(bytes.Buffer), nil, PNG, Options{}), ErrNoFigure)
}

func TestDPIRange(t *testing.T) {
	fig := testFigure(t)
	for _, dpi := range []int{MaxDPI + 1, 1 << 20} {
		for _, f := range Formats() {
			err := Write(new(bytes.Buffer), fig, f, Options{DPI: dpi})
			if f == SVG {
				require.NoError(t, err, "dpi %d", dpi)
				continue
			}
			var derr *DPIRangeError
			require.True(t, errors.As(err, &derr), "%s at dpi %d: %v", f, dpi, err)
			require.Equal(t, dpi, derr.DPI)
		}
	}

	path := filepath.Join(t.TempDir(), "bars.png")
	_, err := WriteFile(path, fig, Options{DPI: MaxDPI + 1})
	require.Error(t, err)
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestRasterizeTooLarge(t *testing.T) {
	_, err := rasterizeSVG([]byte(scanInput), 100000, 100000, baseDPI)
	require.Error(t, err)
	require.Contains(t, err.Error(), "too large")
}

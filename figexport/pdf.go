// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figexport

import (
	"bytes"
	"image"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/odat-project/dataviz/chart"
)

// writePDF writes a one-page PDF holding img. The page has the
// figure's physical size at 100 DPI, so the raster's extra resolution
// becomes print density rather than page area.
func writePDF(w io.Writer, fig *chart.Figure, img image.Image) error {
	var buf bytes.Buffer
	if err := encodePNG(&buf, img); err != nil {
		return err
	}

	const ptPerInch = 72
	wd := float64(fig.Width) * ptPerInch / baseDPI
	ht := float64(fig.Height) * ptPerInch / baseDPI

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("dataviz", true)
	pdf.SetTitle(fig.Title, true)
	if !fig.Created.IsZero() {
		pdf.SetCreationDate(fig.Created)
	}
	pdf.AddPage()

	const name = "figure"
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)
	pdf.ImageOptions(name, 0, 0, wd, ht, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

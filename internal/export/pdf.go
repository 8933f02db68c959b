// Package export renders the annotation set for use outside the app.
package export

import (
	"fmt"
	"io"
	"strconv"

	"LocalAnnotator/internal/state"

	"github.com/jung-kurt/gofpdf"
)

const pageMargin = 10.0 // mm

// PDF writes a landscape A4 sheet: the surface with every rect drawn to
// scale, then a table of ordinal, label and note.
func PDF(w io.Writer, rects []state.Rect, surface state.Size) error {
	if surface.Width <= 0 || surface.Height <= 0 {
		return fmt.Errorf("export pdf: bad surface size %vx%v", surface.Width, surface.Height)
	}
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetMargins(pageMargin, pageMargin, pageMargin)
	tr := p.UnicodeTranslatorFromDescriptor("")

	p.AddPage()
	pageW, pageH := p.GetPageSize()
	areaW, areaH := pageW-2*pageMargin, pageH-2*pageMargin-8
	scale := areaW / float64(surface.Width)
	if s := areaH / float64(surface.Height); s < scale {
		scale = s
	}
	originX, originY := pageMargin, pageMargin+8

	p.SetFont("Helvetica", "B", 12)
	p.Text(pageMargin, pageMargin+4, fmt.Sprintf("Annotations (%d)", len(rects)))

	p.SetDrawColor(160, 160, 160)
	p.SetLineWidth(0.2)
	p.Rect(originX, originY, float64(surface.Width)*scale, float64(surface.Height)*scale, "D")

	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(0.5)
	p.SetFont("Helvetica", "", 8)
	for i, r := range rects {
		x := originX + float64(r.X)*scale
		y := originY + float64(r.Y)*scale
		p.Rect(x, y, float64(r.Width)*scale, float64(r.Height)*scale, "D")
		p.Text(x+1, y+3, tr(badge(i, r)))
	}

	if len(rects) > 0 {
		p.AddPage()
		p.SetFont("Helvetica", "B", 10)
		p.CellFormat(15, 7, "#", "1", 0, "C", false, 0, "")
		p.CellFormat(20, 7, "Label", "1", 0, "C", false, 0, "")
		p.CellFormat(0, 7, "Note", "1", 1, "L", false, 0, "")
		p.SetFont("Helvetica", "", 10)
		for i, r := range rects {
			p.CellFormat(15, 7, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
			p.CellFormat(20, 7, tr(r.Label), "1", 0, "C", false, 0, "")
			p.MultiCell(0, 7, tr(r.Note), "1", "L", false)
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

// badge is the text drawn in a rect's top-left corner.
func badge(i int, r state.Rect) string {
	if r.Label == "" {
		return strconv.Itoa(i + 1)
	}
	return fmt.Sprintf("%d [%s]", i+1, r.Label)
}

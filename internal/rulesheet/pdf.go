// Package rulesheet prints the winning lines of the N×N game as a PDF, one
// page per board size and one small diagram per line.
package rulesheet

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	errs "nxn_tictactoe/internal/errors"
	"nxn_tictactoe/internal/rules"
)

const (
	pageWidth   = 210.0
	margin      = 15.0
	diagramSize = 36.0
	diagramGap  = 8.0
	captionH    = 6.0
)

// Render writes a sheet covering sizes to w.
func Render(w io.Writer, catalog *rules.Catalog, sizes []int) error {
	if catalog == nil {
		catalog = rules.Default()
	}
	if len(sizes) == 0 {
		return fmt.Errorf("%w: no board sizes requested", errs.ErrInvalidBoard)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)

	for _, n := range sizes {
		if n < 1 {
			return fmt.Errorf("%w: side length %d", errs.ErrInvalidBoard, n)
		}
		renderSize(pdf, n, catalog.Patterns(n))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func renderSize(pdf *gofpdf.Fpdf, n int, patterns []rules.Pattern) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("%dx%d board: %d winning lines", n, n, len(patterns)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	rowWidth := pageWidth - 2*margin + diagramGap
	perRow := int(rowWidth / (diagramSize + diagramGap))
	_, pageHeight := pdf.GetPageSize()
	top := pdf.GetY()

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range patterns {
		col := i % perRow
		if col == 0 && i > 0 {
			top += diagramSize + captionH + diagramGap
		}
		if top+diagramSize+captionH > pageHeight-margin {
			pdf.AddPage()
			top = margin
		}
		x := margin + float64(col)*(diagramSize+diagramGap)
		drawPattern(pdf, x, top, n, p)
		pdf.SetXY(x, top+diagramSize)
		pdf.CellFormat(diagramSize, captionH, caption(n, i), "", 0, "C", false, 0, "")
	}
}

func drawPattern(pdf *gofpdf.Fpdf, x, y float64, n int, p rules.Pattern) {
	cell := diagramSize / float64(n)
	marked := make(map[int]bool, len(p))
	for _, idx := range p {
		marked[idx] = true
	}

	pdf.SetDrawColor(60, 60, 60)
	for i := 0; i < n*n; i++ {
		cx := x + float64(i%n)*cell
		cy := y + float64(i/n)*cell
		style := "D"
		if marked[i] {
			pdf.SetFillColor(40, 110, 200)
			style = "FD"
		}
		pdf.Rect(cx, cy, cell, cell, style)
	}
}

// caption names pattern i in catalog order: columns, rows, then the diagonals.
func caption(n, i int) string {
	switch {
	case i < n:
		return fmt.Sprintf("column %d", i+1)
	case i < 2*n:
		return fmt.Sprintf("row %d", i-n+1)
	case i == 2*n:
		return "diagonal"
	default:
		return "anti-diagonal"
	}
}

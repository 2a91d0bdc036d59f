package export

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/BoxFit/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	viewGap      = 10.0
)

// projection maps a box onto one orthographic view. u runs left to right on
// the page, v bottom to top, and depth is the distance from the viewer.
type projection struct {
	title      string
	uAxis      string
	vAxis      string
	extent     func(d model.Dimension) (u, v float64)
	rect       func(b model.Box) (u, v, w, h float64)
	depthOrder func(b model.Box) float64
}

var projections = []projection{
	{
		title: "Front (X / Y)",
		uAxis: "width", vAxis: "height",
		extent: func(d model.Dimension) (float64, float64) { return d.Width, d.Height },
		rect: func(b model.Box) (float64, float64, float64, float64) {
			return b.Min.X, b.Min.Y, b.Size.Width, b.Size.Height
		},
		// Viewer stands at z = 0; far boxes first.
		depthOrder: func(b model.Box) float64 { return -b.Min.Z },
	},
	{
		title: "Top (X / Z)",
		uAxis: "width", vAxis: "depth",
		extent: func(d model.Dimension) (float64, float64) { return d.Width, d.Depth },
		rect: func(b model.Box) (float64, float64, float64, float64) {
			return b.Min.X, b.Min.Z, b.Size.Width, b.Size.Depth
		},
		// Viewer looks down; low boxes first.
		depthOrder: func(b model.Box) float64 { return b.Max().Y },
	},
	{
		title: "Side (Z / Y)",
		uAxis: "depth", vAxis: "height",
		extent: func(d model.Dimension) (float64, float64) { return d.Depth, d.Height },
		rect: func(b model.Box) (float64, float64, float64, float64) {
			return b.Min.Z, b.Min.Y, b.Size.Depth, b.Size.Height
		},
		// Viewer stands at x = 0.
		depthOrder: func(b model.Box) float64 { return -b.Min.X },
	},
}

// ExportPDF writes a static report for result: one page with front, top and
// side projections of the fitted boxes, followed by a fitted/unfitted table.
func ExportPDF(path string, result model.PackingResult) error {
	if err := result.Container.Dimension.Validate(); err != nil {
		return fmt.Errorf("container %q: %w", result.Container.Name, err)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderProjectionPage(pdf, result)

	pdf.AddPage()
	renderTablePage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

func renderProjectionPage(pdf *fpdf.Fpdf, result model.PackingResult) {
	c := result.Container

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%s)", c.Name, c.Dimension)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, pdf.UnicodeTranslatorFromDescriptor("")(title), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Fitted: %d | Unfitted: %d | Volume used: %.2f of %.2f | Utilization: %.1f%% | Weight: %.2f",
		len(result.Fitted), len(result.Unfitted), result.FittedVolume(), c.Volume(),
		result.Utilization()*100, result.FittedWeight())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	boxes := make([]model.Box, len(result.Fitted))
	for i, p := range result.Fitted {
		boxes[i] = p.Box()
	}

	// Three views side by side sharing one scale.
	slotW := (pageWidth - marginLeft - marginRight - 2*viewGap) / 3
	slotH := pageHeight - drawAreaTop - marginBottom - 10
	scale := math.Inf(1)
	for _, pr := range projections {
		u, v := pr.extent(c.Dimension)
		scale = math.Min(scale, math.Min(slotW/u, slotH/v))
	}

	for i, pr := range projections {
		x := marginLeft + float64(i)*(slotW+viewGap)
		drawProjection(pdf, pr, result, boxes, scale, x, drawAreaTop+6, slotH)
	}
}

// drawProjection renders one view with its top-left slot corner at (x, y).
func drawProjection(pdf *fpdf.Fpdf, pr projection, result model.PackingResult, boxes []model.Box, scale, x, y, slotH float64) {
	cu, cv := pr.extent(result.Container.Dimension)
	canvasW, canvasH := cu*scale, cv*scale
	// Align the view to the bottom of the slot so v grows upward from a shared floor.
	originY := y + slotH

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y-6)
	pdf.CellFormat(canvasW, 5, pr.title, "", 0, "L", false, 0, "")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(x, originY-canvasH, canvasW, canvasH, "FD")

	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		da, db := pr.depthOrder(boxes[a]), pr.depthOrder(boxes[b])
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})

	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(30, 30, 30)
	for _, i := range order {
		u, v, w, h := pr.rect(boxes[i])
		col := ColorFor(result.Fitted[i].Item.Name)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x+u*scale, originY-(v+h)*scale, w*scale, h*scale, "FD")
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	uLabel := fmt.Sprintf("%s %.1f", pr.uAxis, cu)
	pdf.SetXY(x, originY+1)
	pdf.CellFormat(canvasW, 4, uLabel, "", 0, "C", false, 0, "")

	vLabel := fmt.Sprintf("%s %.1f", pr.vAxis, cv)
	pdf.TransformBegin()
	pdf.TransformRotate(90, x-2, originY-canvasH/2)
	vLabelW := pdf.GetStringWidth(vLabel)
	pdf.SetXY(x-2-vLabelW/2, originY-canvasH/2-2)
	pdf.CellFormat(vLabelW, 4, vLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func renderTablePage(pdf *fpdf.Fpdf, result model.PackingResult) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, fmt.Sprintf("Fitted items (%d)", len(result.Fitted)), "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{10, 60, 60, 50, 20, 30}
	headers := []string{"", "Name", "Position", "Size", "Rotation", "Weight"}
	y = tableHeader(pdf, colWidths, headers, y)

	pdf.SetFont("Helvetica", "", 8)
	for i, p := range result.Fitted {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = tableHeader(pdf, colWidths, headers, marginTop)
			pdf.SetFont("Helvetica", "", 8)
		}
		col := ColorFor(p.Item.Name)
		rowData := []string{
			"",
			tr(p.Item.Name),
			p.Position.String(),
			p.Size().String(),
			p.Rotation.String(),
			fmt.Sprintf("%.2f", p.Item.Weight),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 5, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(marginLeft+3, y+1, 4, 3, "F")
		y += 5
	}

	if len(result.Unfitted) == 0 {
		return
	}

	y += 8
	if y > pageHeight-marginBottom-20 {
		pdf.AddPage()
		y = marginTop
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(200, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(200, 7, fmt.Sprintf("Unfitted items (%d)", len(result.Unfitted)), "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, it := range result.Unfitted {
		if y > pageHeight-marginBottom-5 {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetXY(marginLeft+5, y)
		text := fmt.Sprintf("- %s: %s, weight %.2f", tr(it.Name), it.Dimension, it.Weight)
		pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
		y += 5
	}
}

func tableHeader(pdf *fpdf.Fpdf, colWidths []float64, headers []string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	return y + 6
}

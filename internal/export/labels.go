package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/BoxFit/internal/model"
)

// LabelInfo holds the data encoded into each item label's QR code.
type LabelInfo struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Container string  `json:"container"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Depth     float64 `json:"depth"`
	Rotation  string  `json:"rotation"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Seq       int     `json:"seq"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos extracts one label per fitted item, in loading order.
// Sizes are the oriented sizes as placed.
func CollectLabelInfos(result model.PackingResult) []LabelInfo {
	labels := make([]LabelInfo, 0, len(result.Fitted))
	for i, p := range result.Fitted {
		size := p.Size()
		labels = append(labels, LabelInfo{
			ID:        p.Item.ID,
			Name:      p.Item.Name,
			Container: result.Container.Name,
			Width:     size.Width,
			Height:    size.Height,
			Depth:     size.Depth,
			Rotation:  p.Rotation.String(),
			X:         p.Position.X,
			Y:         p.Position.Y,
			Z:         p.Position.Z,
			Seq:       i + 1,
		})
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels for all fitted items.
// Each label shows the loading sequence, name, oriented size and position,
// and a QR code carrying the same data as JSON.
func ExportLabels(path string, result model.PackingResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no fitted items to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, tr, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", info.Seq, info.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Colour tab matching the report swatches
	col := ColorFor(info.Name)
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.Rect(x, y, 1.5, labelHeight, "F")

	textX := x + labelPadding + 1
	textW := labelWidth - qrSize - 3*labelPadding - 1

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	name := fmt.Sprintf("#%d %s", info.Seq, tr(info.Name))
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%g x %g x %g (%s)", info.Width, info.Height, info.Depth, info.Rotation)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pos := fmt.Sprintf("%s @ (%g, %g, %g)", tr(info.Container), info.X, info.Y, info.Z)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

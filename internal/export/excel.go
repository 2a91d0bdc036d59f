package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BoxFit/internal/model"
)

// Sheet names written by ExportExcel.
const (
	SheetFitted   = "Fitted"
	SheetUnfitted = "Unfitted"
	SheetSummary  = "Summary"
)

// ExportExcel writes a workbook with the fitted placements, the unfitted
// items and a summary of the run.
func ExportExcel(path string, result model.PackingResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetFitted); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetUnfitted); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	fitted := [][]interface{}{
		{"Seq", "ID", "Name", "X", "Y", "Z", "Width", "Height", "Depth", "Rotation", "Weight", "Color"},
	}
	for i, p := range result.Fitted {
		size := p.Size()
		fitted = append(fitted, []interface{}{
			i + 1, p.Item.ID, p.Item.Name,
			p.Position.X, p.Position.Y, p.Position.Z,
			size.Width, size.Height, size.Depth,
			p.Rotation.String(), p.Item.Weight, ColorFor(p.Item.Name).Hex(),
		})
	}

	unfitted := [][]interface{}{
		{"ID", "Name", "Width", "Height", "Depth", "Weight", "Upright"},
	}
	for _, it := range result.Unfitted {
		unfitted = append(unfitted, []interface{}{
			it.ID, it.Name, it.Dimension.Width, it.Dimension.Height, it.Dimension.Depth, it.Weight, it.Upright,
		})
	}

	c := result.Container
	summary := [][]interface{}{
		{"Container", c.Name},
		{"Width", c.Dimension.Width},
		{"Height", c.Dimension.Height},
		{"Depth", c.Dimension.Depth},
		{"Max weight", c.MaxWeight},
		{"Fitted", len(result.Fitted)},
		{"Unfitted", len(result.Unfitted)},
		{"Fitted volume", result.FittedVolume()},
		{"Container volume", c.Volume()},
		{"Utilization", result.Utilization()},
		{"Fitted weight", result.FittedWeight()},
	}

	for sheet, rows := range map[string][][]interface{}{
		SheetFitted:   fitted,
		SheetUnfitted: unfitted,
		SheetSummary:  summary,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

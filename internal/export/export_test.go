package export

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BoxFit/internal/engine"
	"github.com/piwi3910/BoxFit/internal/model"
)

func TestColorFor_Deterministic(t *testing.T) {
	assert.Equal(t, ColorFor("Akku1"), ColorFor("Akku1"))
	assert.Contains(t, palette, ColorFor(""))

	seen := map[RGB]bool{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		seen[ColorFor(name)] = true
	}
	assert.Greater(t, len(seen), 1, "names should spread over the palette")
}

func TestRGB_Hex(t *testing.T) {
	assert.Equal(t, "#4caf50", RGB{R: 76, G: 175, B: 80}.Hex())
}

func TestExportJSON(t *testing.T) {
	result := buildTestResult(t)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, result))

	var scene RenderScene
	require.NoError(t, json.Unmarshal(buf.Bytes(), &scene))

	assert.Equal(t, result.Container.Name, scene.Container.Name)
	require.Len(t, scene.Fitted, len(result.Fitted))
	require.Len(t, scene.Unfitted, len(result.Unfitted))
	assert.InDelta(t, result.Utilization(), scene.Utilization, 1e-9)

	first := scene.Fitted[0]
	assert.Equal(t, result.Fitted[0].Position, first.Position)
	assert.Equal(t, result.Fitted[0].Size(), first.Size)
	assert.Equal(t, result.Fitted[0].Rotation.String(), first.Rotation)
	assert.Equal(t, ColorFor(first.Name).Hex(), first.Color)
}

func TestExportJSON_EmptyListsNotNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, model.PackingResult{Container: model.NewContainer("x", 1, 1, 1, 0)}))
	assert.Contains(t, buf.String(), `"fitted": []`)
	assert.Contains(t, buf.String(), `"unfitted": []`)
}

func TestExportExcel(t *testing.T) {
	result := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "result.xlsx")
	require.NoError(t, ExportExcel(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetFitted, SheetUnfitted, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetFitted)
	require.NoError(t, err)
	assert.Len(t, rows, len(result.Fitted)+1)
	assert.Equal(t, "Seq", rows[0][0])
	assert.Equal(t, result.Fitted[0].Item.Name, rows[1][2])

	rows, err = f.GetRows(SheetUnfitted)
	require.NoError(t, err)
	assert.Len(t, rows, len(result.Unfitted)+1)

	name, err := f.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Tiefkühler", name)
}

func TestExportComparisonChart(t *testing.T) {
	c := model.NewContainer("Box", 10, 10, 10, 0)
	items := []model.Item{
		model.NewItem("a", 5, 5, 5, 0),
		model.NewItem("b", 6, 6, 6, 0),
		model.NewItem("c", 2, 2, 2, 0),
	}
	results, err := engine.CompareScenarios(context.Background(),
		engine.BuildDefaultScenarios(model.DefaultSettings()), c, items)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportComparisonChart(&buf, results))

	html := buf.String()
	assert.True(t, strings.Contains(html, "<html") || strings.Contains(html, "<!DOCTYPE"), "expected an HTML page")
	assert.Contains(t, html, "Current Settings")
	assert.Contains(t, html, "Utilization %")
}

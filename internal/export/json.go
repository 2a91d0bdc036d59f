package export

import (
	"encoding/json"
	"io"

	"github.com/piwi3910/BoxFit/internal/model"
)

// RenderBox is one fitted item in the form a 3D viewer consumes: min corner,
// oriented size and colour.
type RenderBox struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Position model.Vec3      `json:"position"`
	Size     model.Dimension `json:"size"`
	Rotation string          `json:"rotation"`
	Weight   float64         `json:"weight"`
	Color    string          `json:"color"`
}

// RenderItem is an unfitted item.
type RenderItem struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Size model.Dimension `json:"size"`
}

// RenderScene is the document written by ExportJSON.
type RenderScene struct {
	Container   model.Container `json:"container"`
	Fitted      []RenderBox     `json:"fitted"`
	Unfitted    []RenderItem    `json:"unfitted"`
	Utilization float64         `json:"utilization"`
	Weight      float64         `json:"weight"`
}

// BuildScene converts a result into its render-ready form.
func BuildScene(result model.PackingResult) RenderScene {
	scene := RenderScene{
		Container:   result.Container,
		Fitted:      make([]RenderBox, 0, len(result.Fitted)),
		Unfitted:    make([]RenderItem, 0, len(result.Unfitted)),
		Utilization: result.Utilization(),
		Weight:      result.FittedWeight(),
	}
	for _, p := range result.Fitted {
		scene.Fitted = append(scene.Fitted, RenderBox{
			ID:       p.Item.ID,
			Name:     p.Item.Name,
			Position: p.Position,
			Size:     p.Size(),
			Rotation: p.Rotation.String(),
			Weight:   p.Item.Weight,
			Color:    ColorFor(p.Item.Name).Hex(),
		})
	}
	for _, it := range result.Unfitted {
		scene.Unfitted = append(scene.Unfitted, RenderItem{ID: it.ID, Name: it.Name, Size: it.Dimension})
	}
	return scene
}

// ExportJSON writes the render-ready scene for result as indented JSON.
func ExportJSON(w io.Writer, result model.PackingResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildScene(result))
}

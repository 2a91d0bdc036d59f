// Package export renders packing results for people and for other tools:
// render-ready JSON, PDF reports, QR-coded labels, Excel workbooks,
// comparison charts and isometric PNG previews.
package export

import (
	"fmt"
	"hash/fnv"
)

// RGB is a display colour assigned to an item.
type RGB struct {
	R, G, B int
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var palette = []RGB{
	{R: 76, G: 175, B: 80},   // green
	{R: 33, G: 150, B: 243},  // blue
	{R: 255, G: 152, B: 0},   // orange
	{R: 156, G: 39, B: 176},  // purple
	{R: 0, G: 188, B: 212},   // cyan
	{R: 244, G: 67, B: 54},   // red
	{R: 255, G: 235, B: 59},  // yellow
	{R: 121, G: 85, B: 72},   // brown
	{R: 63, G: 81, B: 181},   // indigo
	{R: 139, G: 195, B: 74},  // light green
	{R: 233, G: 30, B: 99},   // pink
	{R: 96, G: 125, B: 139},  // blue grey
}

// ColorFor returns the palette colour for an item name. The same name always
// maps to the same colour, across runs and processes.
func ColorFor(name string) RGB {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return palette[h.Sum32()%uint32(len(palette))]
}

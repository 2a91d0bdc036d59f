package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/fogleman/gg"

	"github.com/piwi3910/BoxFit/internal/model"
)

// DefaultImageSize is the edge length in pixels of rendered previews.
const DefaultImageSize = 1024

var (
	isoCos = math.Cos(math.Pi / 6)
	isoSin = math.Sin(math.Pi / 6)
)

// isoProjector maps container coordinates to image pixels. The viewer looks
// from +x, +y, +z, so x runs right-down, z left-down and y straight up.
type isoProjector struct {
	scale, offX, offY float64
}

func (p isoProjector) project(v model.Vec3) (float64, float64) {
	sx := (v.X - v.Z) * isoCos
	sy := (v.X+v.Z)*isoSin - v.Y
	return p.offX + sx*p.scale, p.offY + sy*p.scale
}

func newIsoProjector(d model.Dimension, size, margin float64) isoProjector {
	// Projected extents of the container's bounding box.
	minX, maxX := -d.Depth*isoCos, d.Width*isoCos
	minY, maxY := -d.Height, (d.Width+d.Depth)*isoSin
	scale := math.Min((size-2*margin)/(maxX-minX), (size-2*margin)/(maxY-minY))
	return isoProjector{
		scale: scale,
		offX:  margin - minX*scale + ((size-2*margin)-(maxX-minX)*scale)/2,
		offY:  margin - minY*scale + ((size-2*margin)-(maxY-minY)*scale)/2,
	}
}

// RenderPNG draws an isometric preview of the fitted boxes inside the
// container outline and writes it as PNG.
func RenderPNG(w io.Writer, result model.PackingResult, size int) error {
	if err := result.Container.Dimension.Validate(); err != nil {
		return fmt.Errorf("container %q: %w", result.Container.Name, err)
	}
	if size <= 0 {
		size = DefaultImageSize
	}

	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	c := result.Container.Dimension
	proj := newIsoProjector(c, float64(size), float64(size)/16)
	container := model.Box{Size: c}

	// Back walls and floor first.
	dc.SetRGB(0.75, 0.75, 0.75)
	dc.SetLineWidth(1)
	mx := container.Max()
	for _, edge := range [][2]model.Vec3{
		{{}, {X: mx.X}},
		{{}, {Z: mx.Z}},
		{{}, {Y: mx.Y}},
		{{X: mx.X}, {X: mx.X, Z: mx.Z}},
		{{Z: mx.Z}, {X: mx.X, Z: mx.Z}},
		{{Y: mx.Y}, {X: mx.X, Y: mx.Y}},
		{{Y: mx.Y}, {Y: mx.Y, Z: mx.Z}},
		{{X: mx.X}, {X: mx.X, Y: mx.Y}},
		{{Z: mx.Z}, {Y: mx.Y, Z: mx.Z}},
	} {
		strokeEdge(dc, proj, edge[0], edge[1])
	}

	// Far boxes first.
	order := make([]int, len(result.Fitted))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := result.Fitted[order[a]].Position, result.Fitted[order[b]].Position
		return pa.X+pa.Y+pa.Z < pb.X+pb.Y+pb.Z
	})
	for _, i := range order {
		p := result.Fitted[i]
		drawIsoBox(dc, proj, p.Box(), ColorFor(p.Item.Name))
	}

	// Front edges on top so the outline stays readable.
	dc.SetRGBA(0.3, 0.3, 0.3, 0.6)
	for _, edge := range [][2]model.Vec3{
		{{X: mx.X, Y: mx.Y}, mx},
		{{Y: mx.Y, Z: mx.Z}, mx},
		{{X: mx.X, Z: mx.Z}, mx},
	} {
		strokeEdge(dc, proj, edge[0], edge[1])
	}

	dc.SetRGB(0, 0, 0)
	title := fmt.Sprintf("%s  %d fitted, %d unfitted, %.1f%%",
		result.Container.Name, len(result.Fitted), len(result.Unfitted), result.Utilization()*100)
	dc.DrawString(title, 10, 20)

	return dc.EncodePNG(w)
}

// ExportPNG writes RenderPNG output to path.
func ExportPNG(path string, result model.PackingResult, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderPNG(f, result, size); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func strokeEdge(dc *gg.Context, proj isoProjector, a, b model.Vec3) {
	ax, ay := proj.project(a)
	bx, by := proj.project(b)
	dc.DrawLine(ax, ay, bx, by)
	dc.Stroke()
}

// drawIsoBox fills the three faces visible from the viewer: top (+y),
// right (+x) and left (+z), each with its own shade.
func drawIsoBox(dc *gg.Context, proj isoProjector, b model.Box, col RGB) {
	mn, mx := b.Min, b.Max()
	faces := []struct {
		shade float64
		pts   []model.Vec3
	}{
		{1.0, []model.Vec3{{X: mn.X, Y: mx.Y, Z: mn.Z}, {X: mx.X, Y: mx.Y, Z: mn.Z}, {X: mx.X, Y: mx.Y, Z: mx.Z}, {X: mn.X, Y: mx.Y, Z: mx.Z}}},
		{0.8, []model.Vec3{{X: mx.X, Y: mn.Y, Z: mn.Z}, {X: mx.X, Y: mx.Y, Z: mn.Z}, {X: mx.X, Y: mx.Y, Z: mx.Z}, {X: mx.X, Y: mn.Y, Z: mx.Z}}},
		{0.6, []model.Vec3{{X: mn.X, Y: mn.Y, Z: mx.Z}, {X: mx.X, Y: mn.Y, Z: mx.Z}, {X: mx.X, Y: mx.Y, Z: mx.Z}, {X: mn.X, Y: mx.Y, Z: mx.Z}}},
	}
	for _, f := range faces {
		for i, pt := range f.pts {
			x, y := proj.project(pt)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.SetRGBA(float64(col.R)/255*f.shade, float64(col.G)/255*f.shade, float64(col.B)/255*f.shade, 0.9)
		dc.FillPreserve()
		dc.SetRGBA(0.1, 0.1, 0.1, 0.8)
		dc.SetLineWidth(0.8)
		dc.Stroke()
	}
}

package engine

import (
	"sort"

	"github.com/piwi3910/BoxFit/internal/model"
)

// Anchor is a candidate min corner for the next item. Seq records creation
// order; lower values are older and scanned first.
type Anchor struct {
	Point model.Vec3 `json:"point"`
	Seq   int        `json:"seq"`
}

// FreeRegion returns the residual envelope from the anchor to the far corner
// of the container. It is an upper bound on the space an item anchored here
// could use, not an exact free volume.
func (a Anchor) FreeRegion(bounds model.Dimension) model.Box {
	return model.Box{
		Min: a.Point,
		Size: model.Dimension{
			Width:  bounds.Width - a.Point.X,
			Height: bounds.Height - a.Point.Y,
			Depth:  bounds.Depth - a.Point.Z,
		},
	}
}

// anchorSet tracks extreme points. It starts with the origin and, after each
// commit, gains the placed box's max-corner projections along each axis.
// Anchors outside the container or inside an occupied box are pruned.
type anchorSet struct {
	bounds  model.Dimension
	anchors []Anchor
	nextSeq int
}

func newAnchorSet(bounds model.Dimension) *anchorSet {
	s := &anchorSet{bounds: bounds}
	s.push(model.Vec3{})
	return s
}

// list returns the anchors oldest first. The slice must not be modified.
func (s *anchorSet) list() []Anchor {
	return s.anchors
}

func (s *anchorSet) push(p model.Vec3) {
	s.anchors = append(s.anchors, Anchor{Point: p, Seq: s.nextSeq})
	s.nextSeq++
}

// commit updates the set after b has been placed. placed holds every
// occupied box including b.
func (s *anchorSet) commit(b model.Box, placed []model.Box) {
	kept := s.anchors[:0]
	for _, a := range s.anchors {
		if !b.Contains(a.Point) {
			kept = append(kept, a)
		}
	}
	s.anchors = kept

	mn, mx := b.Min, b.Max()
	for _, p := range []model.Vec3{
		{X: mx.X, Y: mn.Y, Z: mn.Z},
		{X: mn.X, Y: mx.Y, Z: mn.Z},
		{X: mn.X, Y: mn.Y, Z: mx.Z},
	} {
		if s.outside(p) || s.has(p) || covered(p, placed) {
			continue
		}
		s.push(p)
	}

	if len(s.anchors) == 0 {
		s.reseed(placed)
	}
}

// outside reports whether no box of positive size could be anchored at p.
func (s *anchorSet) outside(p model.Vec3) bool {
	return p.X < -model.Epsilon || p.Y < -model.Epsilon || p.Z < -model.Epsilon ||
		p.X >= s.bounds.Width-model.Epsilon ||
		p.Y >= s.bounds.Height-model.Epsilon ||
		p.Z >= s.bounds.Depth-model.Epsilon
}

func (s *anchorSet) has(p model.Vec3) bool {
	for _, a := range s.anchors {
		if samePoint(a.Point, p) {
			return true
		}
	}
	return false
}

// reseed restores at least one anchor when projections have all been pruned
// but free space remains. It scans the grid formed by every placed box
// boundary and adds the lowest uncovered point (z, then y, then x).
func (s *anchorSet) reseed(placed []model.Box) {
	xs, ys, zs := []float64{0}, []float64{0}, []float64{0}
	for _, b := range placed {
		mx := b.Max()
		xs = append(xs, mx.X)
		ys = append(ys, mx.Y)
		zs = append(zs, mx.Z)
	}
	sort.Float64s(xs)
	sort.Float64s(ys)
	sort.Float64s(zs)

	for _, z := range zs {
		for _, y := range ys {
			for _, x := range xs {
				p := model.Vec3{X: x, Y: y, Z: z}
				if s.outside(p) || covered(p, placed) {
					continue
				}
				s.push(p)
				return
			}
		}
	}
}

func covered(p model.Vec3, boxes []model.Box) bool {
	for _, b := range boxes {
		if b.Contains(p) {
			return true
		}
	}
	return false
}

func samePoint(a, b model.Vec3) bool {
	return abs(a.X-b.X) <= model.Epsilon &&
		abs(a.Y-b.Y) <= model.Epsilon &&
		abs(a.Z-b.Z) <= model.Epsilon
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

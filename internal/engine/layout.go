package engine

import (
	"slices"

	"github.com/piwi3910/BoxFit/internal/model"
)

// Layout is the mutable state of one container during a run: the committed
// placements and the extreme-point anchors derived from them. A Layout is
// created per run and never shared between runs.
type Layout struct {
	container model.Container
	placed    []model.Placement
	boxes     []model.Box
	weight    float64
	anchors   *anchorSet
}

func newLayout(c model.Container) *Layout {
	return &Layout{
		container: c,
		anchors:   newAnchorSet(c.Dimension),
	}
}

// Container returns the container being packed.
func (l *Layout) Container() model.Container {
	return l.container
}

// Anchors returns a copy of the current anchors, oldest first.
func (l *Layout) Anchors() []Anchor {
	return slices.Clone(l.anchors.list())
}

// Placed returns the committed placements in commit order.
func (l *Layout) Placed() []model.Placement {
	return l.placed
}

// Weight returns the summed weight of the committed placements.
func (l *Layout) Weight() float64 {
	return l.weight
}

// Accepts reports whether b lies inside the container and overlaps no
// committed box.
func (l *Layout) Accepts(b model.Box) bool {
	if !model.FitsWithin(b, l.container.Dimension) {
		return false
	}
	for _, other := range l.boxes {
		if model.Intersects(b, other) {
			return false
		}
	}
	return true
}

func (l *Layout) commit(p model.Placement) {
	b := p.Box()
	l.placed = append(l.placed, p)
	l.boxes = append(l.boxes, b)
	l.weight += p.Item.Weight
	l.anchors.commit(b, l.boxes)
}

// candidate is one accepted (anchor, rotation) pair.
type candidate struct {
	anchor   Anchor
	rotation model.RotationType
	size     model.Dimension
}

// scan calls fn for every accepted (anchor, rotation) pair in scan order:
// anchors oldest first, rotations in the item's priority order. Rotations
// that repeat an earlier orientation's size are skipped. Scanning stops
// when fn returns false.
func (l *Layout) scan(item model.Item, fn func(c candidate) bool) {
	sizes := distinctRotations(item)
	for _, a := range l.anchors.list() {
		for _, rs := range sizes {
			b := model.Box{Min: a.Point, Size: rs.size}
			if !l.Accepts(b) {
				continue
			}
			if !fn(candidate{anchor: a, rotation: rs.rotation, size: rs.size}) {
				return
			}
		}
	}
}

type rotatedSize struct {
	rotation model.RotationType
	size     model.Dimension
}

func distinctRotations(item model.Item) []rotatedSize {
	var out []rotatedSize
	for _, r := range item.Rotations() {
		d, err := model.Rotate(item.Dimension, r)
		if err != nil {
			continue
		}
		dup := false
		for _, prev := range out {
			if prev.size == d {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, rotatedSize{rotation: r, size: d})
		}
	}
	return out
}

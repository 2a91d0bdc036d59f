package model

import "fmt"

// Epsilon absorbs floating point noise in the geometric predicates.
const Epsilon = 1e-6

// RotationType selects one of the six axis-aligned orientations. The
// declaration order is the scan priority: identity first.
type RotationType int

const (
	RotationWHD RotationType = iota // identity
	RotationHWD
	RotationHDW
	RotationDHW
	RotationDWH
	RotationWDH
)

// AllRotations lists every orientation in scan order.
var AllRotations = []RotationType{RotationWHD, RotationHWD, RotationHDW, RotationDHW, RotationDWH, RotationWDH}

// UprightRotations keeps the item's height on the vertical axis.
var UprightRotations = []RotationType{RotationWHD, RotationDHW}

// Valid reports whether r is one of the six supported orientations.
func (r RotationType) Valid() bool {
	return r >= RotationWHD && r <= RotationWDH
}

func (r RotationType) String() string {
	switch r {
	case RotationWHD:
		return "WHD"
	case RotationHWD:
		return "HWD"
	case RotationHDW:
		return "HDW"
	case RotationDHW:
		return "DHW"
	case RotationDWH:
		return "DWH"
	case RotationWDH:
		return "WDH"
	default:
		return fmt.Sprintf("RotationType(%d)", int(r))
	}
}

// Rotate returns the effective size of d in orientation r.
func Rotate(d Dimension, r RotationType) (Dimension, error) {
	switch r {
	case RotationWHD:
		return Dimension{Width: d.Width, Height: d.Height, Depth: d.Depth}, nil
	case RotationHWD:
		return Dimension{Width: d.Height, Height: d.Width, Depth: d.Depth}, nil
	case RotationHDW:
		return Dimension{Width: d.Height, Height: d.Depth, Depth: d.Width}, nil
	case RotationDHW:
		return Dimension{Width: d.Depth, Height: d.Height, Depth: d.Width}, nil
	case RotationDWH:
		return Dimension{Width: d.Depth, Height: d.Width, Depth: d.Height}, nil
	case RotationWDH:
		return Dimension{Width: d.Width, Height: d.Depth, Depth: d.Height}, nil
	default:
		return Dimension{}, fmt.Errorf("%w: %d", ErrInvalidRotation, int(r))
	}
}

// Rotated returns the item's size in orientation r.
func (it Item) Rotated(r RotationType) (Dimension, error) {
	return Rotate(it.Dimension, r)
}

// Box is an axis-aligned box given by its min corner and extent.
type Box struct {
	Min  Vec3      `json:"min"`
	Size Dimension `json:"size"`
}

// Max returns the far corner.
func (b Box) Max() Vec3 {
	return b.Min.Add(b.Size)
}

// Volume returns the box volume.
func (b Box) Volume() float64 {
	return b.Size.Volume()
}

// Contains reports whether p lies in the half-open box [Min, Max) on every axis.
func (b Box) Contains(p Vec3) bool {
	mx := b.Max()
	return p.X >= b.Min.X-Epsilon && p.X < mx.X-Epsilon &&
		p.Y >= b.Min.Y-Epsilon && p.Y < mx.Y-Epsilon &&
		p.Z >= b.Min.Z-Epsilon && p.Z < mx.Z-Epsilon
}

// Intersects returns true if a and b overlap by a positive amount on all
// three axes. Touching faces do not count.
func Intersects(a, b Box) bool {
	am, bm := a.Max(), b.Max()
	return a.Min.X < bm.X-Epsilon && am.X > b.Min.X+Epsilon &&
		a.Min.Y < bm.Y-Epsilon && am.Y > b.Min.Y+Epsilon &&
		a.Min.Z < bm.Z-Epsilon && am.Z > b.Min.Z+Epsilon
}

// FitsWithin returns true if b lies inside [0, c] on every axis.
func FitsWithin(b Box, c Dimension) bool {
	mx := b.Max()
	return b.Min.X >= -Epsilon && b.Min.Y >= -Epsilon && b.Min.Z >= -Epsilon &&
		mx.X <= c.Width+Epsilon && mx.Y <= c.Height+Epsilon && mx.Z <= c.Depth+Epsilon
}

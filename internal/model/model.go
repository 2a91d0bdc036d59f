package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Dimension is the (width, height, depth) extent of a box. Order matters:
// rotations permute these values.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Volume returns width * height * depth.
func (d Dimension) Volume() float64 {
	return d.Width * d.Height * d.Depth
}

// Validate returns ErrInvalidDimension unless every component is finite and
// greater than Epsilon. Sides at or below Epsilon vanish in the overlap test,
// so two such boxes could share a position.
func (d Dimension) Validate() error {
	for _, v := range []float64{d.Width, d.Height, d.Depth} {
		if !(v > Epsilon) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s", ErrInvalidDimension, d)
		}
	}
	return nil
}

// LongestSide returns the largest of the three components.
func (d Dimension) LongestSide() float64 {
	return max(d.Width, d.Height, d.Depth)
}

func (d Dimension) String() string {
	return fmt.Sprintf("%gx%gx%g", d.Width, d.Height, d.Depth)
}

// Vec3 is a point in container space. Placements use it for the min corner.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of v and a dimension.
func (v Vec3) Add(d Dimension) Vec3 {
	return Vec3{X: v.X + d.Width, Y: v.Y + d.Height, Z: v.Z + d.Depth}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Item is a box to be packed.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dimension Dimension `json:"dimension"` // unrotated size
	Weight    float64   `json:"weight"`    // only checked when Settings.EnforceWeight is set
	Upright   bool      `json:"upright"`   // height axis must stay vertical
}

// NewItem creates an item with a generated short ID.
func NewItem(name string, w, h, d, weight float64) Item {
	return Item{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Dimension: Dimension{Width: w, Height: h, Depth: d},
		Weight:    weight,
	}
}

// Volume returns the item's volume, which is the same in every orientation.
func (it Item) Volume() float64 {
	return it.Dimension.Volume()
}

// Rotations returns the orientations the item may be tried in, in scan order.
func (it Item) Rotations() []RotationType {
	if it.Upright {
		return UprightRotations
	}
	return AllRotations
}

func (it Item) String() string {
	return fmt.Sprintf("%s(%s, weight: %g)", it.Name, it.Dimension, it.Weight)
}

// Container is the fixed envelope items are packed into.
type Container struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dimension Dimension `json:"dimension"`
	MaxWeight float64   `json:"max_weight"` // 0 means unlimited
}

// NewContainer creates a container with a generated short ID.
func NewContainer(name string, w, h, d, maxWeight float64) Container {
	return Container{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Dimension: Dimension{Width: w, Height: h, Depth: d},
		MaxWeight: maxWeight,
	}
}

// Volume returns the interior volume.
func (c Container) Volume() float64 {
	return c.Dimension.Volume()
}

func (c Container) String() string {
	return fmt.Sprintf("%s(%s, max_weight: %g)", c.Name, c.Dimension, c.MaxWeight)
}

// Placement is an item committed to a position and orientation.
type Placement struct {
	Item     Item         `json:"item"`
	Position Vec3         `json:"position"`
	Rotation RotationType `json:"rotation"`
}

// Size returns the item's extent after rotation.
func (p Placement) Size() Dimension {
	d, err := Rotate(p.Item.Dimension, p.Rotation)
	if err != nil {
		// Placements are only built from validated rotations.
		panic(err)
	}
	return d
}

// Box returns the axis-aligned box the placement occupies.
func (p Placement) Box() Box {
	return Box{Min: p.Position, Size: p.Size()}
}

func (p Placement) String() string {
	return fmt.Sprintf("%s pos%s rt(%s) dim(%s)", p.Item.Name, p.Position, p.Rotation, p.Size())
}

// PackingResult is the outcome of one packing run. Fitted keeps commit
// order; Unfitted keeps the order items were attempted in.
type PackingResult struct {
	Container Container   `json:"container"`
	Fitted    []Placement `json:"fitted"`
	Unfitted  []Item      `json:"unfitted"`
}

// FittedVolume returns the summed volume of all fitted items.
func (r PackingResult) FittedVolume() float64 {
	var total float64
	for _, p := range r.Fitted {
		total += p.Item.Volume()
	}
	return total
}

// FittedWeight returns the summed weight of all fitted items.
func (r PackingResult) FittedWeight() float64 {
	var total float64
	for _, p := range r.Fitted {
		total += p.Item.Weight
	}
	return total
}

// Utilization returns fitted volume / container volume in the range [0, 1].
func (r PackingResult) Utilization() float64 {
	cv := r.Container.Volume()
	if cv == 0 {
		return 0
	}
	return r.FittedVolume() / cv
}

// Total returns the number of items the run was given.
func (r PackingResult) Total() int {
	return len(r.Fitted) + len(r.Unfitted)
}

// Strategy names a placement strategy.
type Strategy string

const (
	StrategyFirstFit Strategy = "first-fit" // First accepted (anchor, rotation) pair in scan order
	StrategyBestFit  Strategy = "best-fit"  // Accepted pair with the least leftover free-region volume
)

// SortOrder names the pre-sort applied to items before the single pass.
type SortOrder string

const (
	SortInput           SortOrder = "input"
	SortVolumeDesc      SortOrder = "volume-desc"
	SortVolumeAsc       SortOrder = "volume-asc"
	SortName            SortOrder = "name"
	SortLongestSideDesc SortOrder = "longest-side-desc"
)

// Strategies lists every supported strategy.
var Strategies = []Strategy{StrategyFirstFit, StrategyBestFit}

// SortOrders lists every supported sort order.
var SortOrders = []SortOrder{SortInput, SortVolumeDesc, SortVolumeAsc, SortName, SortLongestSideDesc}

// Settings controls one packing run.
type Settings struct {
	Strategy      Strategy  `json:"strategy" mapstructure:"strategy"`
	SortOrder     SortOrder `json:"sort_order" mapstructure:"sort_order"`
	EnforceWeight bool      `json:"enforce_weight" mapstructure:"enforce_weight"` // Reject items exceeding the container's weight capacity
}

func DefaultSettings() Settings {
	return Settings{
		Strategy:      StrategyFirstFit,
		SortOrder:     SortInput,
		EnforceWeight: false,
	}
}

// ParseStrategy maps a name to a Strategy. The empty string selects first-fit.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return StrategyFirstFit, nil
	}
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// ParseSortOrder maps a name to a SortOrder. The empty string selects input order.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return SortInput, nil
	}
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortOrder, s)
}

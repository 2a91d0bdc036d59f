package model

import (
	"strings"

	"github.com/google/uuid"
)

// ContainerPreset is a reusable container definition.
type ContainerPreset struct {
	ID        string  `json:"id" mapstructure:"-"`
	Name      string  `json:"name" mapstructure:"name"`
	Width     float64 `json:"width" mapstructure:"width"`
	Height    float64 `json:"height" mapstructure:"height"`
	Depth     float64 `json:"depth" mapstructure:"depth"`
	MaxWeight float64 `json:"max_weight" mapstructure:"max_weight"`
}

// NewContainerPreset creates a new ContainerPreset with a generated ID.
func NewContainerPreset(name string, w, h, d, maxWeight float64) ContainerPreset {
	return ContainerPreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Width:     w,
		Height:    h,
		Depth:     d,
		MaxWeight: maxWeight,
	}
}

// ToContainer converts the preset into a fresh Container.
func (cp ContainerPreset) ToContainer() Container {
	return NewContainer(cp.Name, cp.Width, cp.Height, cp.Depth, cp.MaxWeight)
}

// Inventory holds the container presets known to the application.
type Inventory struct {
	Containers []ContainerPreset `json:"containers"`
}

// DefaultInventory returns the built-in container presets.
func DefaultInventory() Inventory {
	return Inventory{
		Containers: []ContainerPreset{
			NewContainerPreset("Tiefkühler", 155, 53.5, 58.5, 600),
			NewContainerPreset("EUR pallet 1200x800x1500", 120, 150, 80, 1000),
			NewContainerPreset("20ft container", 589.8, 239.3, 235.2, 28200),
			NewContainerPreset("40ft container", 1203.2, 239.3, 235.2, 26700),
			NewContainerPreset("Moving box L", 60, 40, 40, 30),
		},
	}
}

// Merge returns a new inventory with extra presets appended. An extra
// preset replaces a built-in one of the same name.
func (inv Inventory) Merge(extra []ContainerPreset) Inventory {
	out := Inventory{Containers: make([]ContainerPreset, 0, len(inv.Containers)+len(extra))}
	replaced := make(map[string]bool)
	for _, e := range extra {
		replaced[strings.ToLower(e.Name)] = true
	}
	for _, c := range inv.Containers {
		if !replaced[strings.ToLower(c.Name)] {
			out.Containers = append(out.Containers, c)
		}
	}
	for _, e := range extra {
		if e.ID == "" {
			e.ID = uuid.New().String()[:8]
		}
		out.Containers = append(out.Containers, e)
	}
	return out
}

// ContainerNames returns the preset names in order.
func (inv *Inventory) ContainerNames() []string {
	names := make([]string, len(inv.Containers))
	for i, c := range inv.Containers {
		names[i] = c.Name
	}
	return names
}

// FindContainerByName returns the first preset whose name matches
// case-insensitively, or nil.
func (inv *Inventory) FindContainerByName(name string) *ContainerPreset {
	for i := range inv.Containers {
		if strings.EqualFold(inv.Containers[i].Name, name) {
			return &inv.Containers[i]
		}
	}
	return nil
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInventoryHasFreezer(t *testing.T) {
	inv := DefaultInventory()
	p := inv.FindContainerByName("tiefkühler")
	require.NotNil(t, p)
	assert.Equal(t, 155.0, p.Width)
	assert.Equal(t, 53.5, p.Height)
	assert.Equal(t, 58.5, p.Depth)
	assert.Equal(t, 600.0, p.MaxWeight)
}

func TestContainerPresetToContainer(t *testing.T) {
	p := NewContainerPreset("Crate", 10, 20, 30, 5)
	c := p.ToContainer()
	assert.Equal(t, "Crate", c.Name)
	assert.Equal(t, Dimension{Width: 10, Height: 20, Depth: 30}, c.Dimension)
	assert.Equal(t, 5.0, c.MaxWeight)
	assert.NotEmpty(t, c.ID)
}

func TestInventoryMergeReplacesByName(t *testing.T) {
	inv := DefaultInventory()
	n := len(inv.Containers)

	merged := inv.Merge([]ContainerPreset{
		{Name: "TIEFKÜHLER", Width: 100, Height: 50, Depth: 50},
		{Name: "Van", Width: 300, Height: 180, Depth: 170},
	})

	assert.Len(t, merged.Containers, n+1)
	p := merged.FindContainerByName("Tiefkühler")
	require.NotNil(t, p)
	assert.Equal(t, 100.0, p.Width)
	assert.NotEmpty(t, p.ID)
	assert.NotNil(t, merged.FindContainerByName("van"))

	// Original untouched.
	assert.Equal(t, 155.0, inv.FindContainerByName("Tiefkühler").Width)
}

func TestFindContainerByNameMissing(t *testing.T) {
	inv := DefaultInventory()
	assert.Nil(t, inv.FindContainerByName("nope"))
	assert.Equal(t, len(inv.Containers), len(inv.ContainerNames()))
}

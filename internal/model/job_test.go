package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob_CopiesItems(t *testing.T) {
	items := []Item{NewItem("a", 1, 1, 1, 0), NewItem("b", 2, 2, 2, 0)}
	job := NewJob("freezer", "batteries", NewContainer("Tiefkühler", 155, 53.5, 58.5, 600), items, DefaultSettings())

	assert.NotEmpty(t, job.ID)
	assert.NotEmpty(t, job.CreatedAt)
	require.Len(t, job.Items, 2)

	items[0].Name = "changed"
	assert.Equal(t, "a", job.Items[0].Name)

	empty := NewJob("empty", "", NewContainer("c", 1, 1, 1, 0), nil, DefaultSettings())
	assert.NotNil(t, empty.Items)
}

func TestJob_Validate(t *testing.T) {
	job := NewJob("ok", "", NewContainer("c", 10, 10, 10, 0), []Item{NewItem("a", 1, 1, 1, 0)}, DefaultSettings())
	require.NoError(t, job.Validate())

	bad := job
	bad.Container.Dimension.Depth = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDimension)

	bad = job
	bad.Items = []Item{NewItem("neg", 1, -1, 1, 0)}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDimension)

	bad = job
	bad.Items = []Item{NewItem("nan", math.NaN(), 1, 1, 0)}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDimension)

	bad = job
	bad.Container.Dimension.Width = math.Inf(1)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDimension)

	bad = job
	bad.Items = []Item{NewItem("heavy", 1, 1, 1, math.NaN())}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidWeight)

	bad = job
	bad.Container.MaxWeight = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidWeight)

	bad = job
	bad.Settings.Strategy = "nope"
	assert.ErrorIs(t, bad.Validate(), ErrUnknownStrategy)

	bad = job
	bad.Settings.SortOrder = "nope"
	assert.ErrorIs(t, bad.Validate(), ErrUnknownSortOrder)
}

func TestJob_Normalize(t *testing.T) {
	job := Job{
		Container: Container{Name: "c", Dimension: Dimension{Width: 1, Height: 1, Depth: 1}},
		Items:     []Item{{Dimension: Dimension{Width: 1, Height: 1, Depth: 1}}},
	}
	job.Normalize()

	assert.NotEmpty(t, job.Container.ID)
	assert.NotEmpty(t, job.Items[0].ID)
	assert.Equal(t, "Item 1", job.Items[0].Name)
	assert.Equal(t, StrategyFirstFit, job.Settings.Strategy)
	assert.Equal(t, SortInput, job.Settings.SortOrder)
}

package engine

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BoxFit/internal/model"
)

func cube(name string, side float64) model.Item {
	return model.NewItem(name, side, side, side, 0)
}

func cubes(n int, side float64) []model.Item {
	items := make([]model.Item, n)
	for i := range items {
		items[i] = cube(fmt.Sprintf("c%d", i), side)
	}
	return items
}

func box(name string, w, h, d float64) model.Item {
	return model.NewItem(name, w, h, d, 0)
}

func container(w, h, d float64) model.Container {
	return model.NewContainer("test", w, h, d, 0)
}

// assertValidLayout checks the structural invariants every result must hold.
func assertValidLayout(t *testing.T, result model.PackingResult, inputCount int) {
	t.Helper()
	assert.Equal(t, inputCount, result.Total(), "every item must be fitted or unfitted")

	for i, p := range result.Fitted {
		b := p.Box()
		assert.True(t, model.FitsWithin(b, result.Container.Dimension), "placement %d escapes container: %s", i, p)
		for j := i + 1; j < len(result.Fitted); j++ {
			assert.False(t, model.Intersects(b, result.Fitted[j].Box()),
				"placements %d and %d overlap: %s / %s", i, j, p, result.Fitted[j])
		}
	}
	assert.LessOrEqual(t, result.FittedVolume(), result.Container.Volume()+model.Epsilon)
}

func TestPack_SingleItemFillsContainer(t *testing.T) {
	item := cube("A", 10)
	result, err := New(model.DefaultSettings()).Pack(container(10, 10, 10), []model.Item{item})
	require.NoError(t, err)

	require.Len(t, result.Fitted, 1)
	assert.Empty(t, result.Unfitted)
	assert.Equal(t, model.Vec3{}, result.Fitted[0].Position)
	assert.Equal(t, model.RotationWHD, result.Fitted[0].Rotation)
	assert.Equal(t, item.ID, result.Fitted[0].Item.ID)
	assert.InDelta(t, 1.0, result.Utilization(), 1e-9)
}

func TestPack_SecondFullItemIsUnfitted(t *testing.T) {
	first, second := cube("first", 10), cube("second", 10)
	result, err := New(model.DefaultSettings()).Pack(container(10, 10, 10), []model.Item{first, second})
	require.NoError(t, err)

	require.Len(t, result.Fitted, 1)
	require.Len(t, result.Unfitted, 1)
	assert.Equal(t, first.ID, result.Fitted[0].Item.ID)
	assert.Equal(t, second.ID, result.Unfitted[0].ID)
}

func TestPack_HundredUnitCubes(t *testing.T) {
	items := cubes(100, 1)
	result, err := New(model.DefaultSettings()).Pack(container(10, 10, 10), items)
	require.NoError(t, err)

	assert.Len(t, result.Fitted, 100)
	assert.Empty(t, result.Unfitted)
	assertValidLayout(t, result, 100)
	// Utilization is fitted volume over container volume.
	assert.InDelta(t, 0.1, result.Utilization(), 1e-9)
}

func TestPack_ExactFillWithUnitCubes(t *testing.T) {
	items := cubes(1000, 1)
	result, err := New(model.DefaultSettings()).Pack(container(10, 10, 10), items)
	require.NoError(t, err)

	assert.Len(t, result.Fitted, 1000)
	assert.Empty(t, result.Unfitted)
	assert.InDelta(t, 1.0, result.Utilization(), 1e-9)
	assertValidLayout(t, result, 1000)
}

func TestPack_OversizedItem(t *testing.T) {
	item := box("big", 6, 5, 5)
	result, err := New(model.DefaultSettings()).Pack(container(5, 5, 5), []model.Item{item})
	require.NoError(t, err)

	assert.Empty(t, result.Fitted)
	require.Len(t, result.Unfitted, 1)
	assert.Equal(t, item.ID, result.Unfitted[0].ID)
}

func TestPack_StacksOnExtremePoint(t *testing.T) {
	a, b := box("A", 4, 4, 2), box("B", 4, 4, 2)
	result, err := New(model.DefaultSettings()).Pack(container(4, 4, 4), []model.Item{a, b})
	require.NoError(t, err)

	require.Len(t, result.Fitted, 2)
	assert.Equal(t, model.Vec3{}, result.Fitted[0].Position)
	assert.Equal(t, model.Vec3{Z: 2}, result.Fitted[1].Position)
	assert.Equal(t, model.RotationWHD, result.Fitted[1].Rotation)
}

func TestPack_RotatesToFit(t *testing.T) {
	// Only fits lying on its side.
	item := box("plank", 2, 8, 2)
	result, err := New(model.DefaultSettings()).Pack(container(8, 2, 2), []model.Item{item})
	require.NoError(t, err)

	require.Len(t, result.Fitted, 1)
	p := result.Fitted[0]
	assert.Equal(t, model.Dimension{Width: 8, Height: 2, Depth: 2}, p.Size())
	assert.NotEqual(t, model.RotationWHD, p.Rotation)
}

func TestPack_UprightItemKeepsHeight(t *testing.T) {
	item := box("fridge", 2, 8, 2)
	item.Upright = true
	result, err := New(model.DefaultSettings()).Pack(container(8, 2, 2), []model.Item{item})
	require.NoError(t, err)

	assert.Empty(t, result.Fitted)
	assert.Len(t, result.Unfitted, 1)
}

func TestPack_InvalidDimensionAborts(t *testing.T) {
	items := []model.Item{cube("ok", 1), box("bad", 1, 0, 1)}
	_, err := New(model.DefaultSettings()).Pack(container(10, 10, 10), items)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	_, err = New(model.DefaultSettings()).Pack(container(10, -1, 10), []model.Item{cube("ok", 1)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)
}

func TestPack_UnknownSettings(t *testing.T) {
	s := model.DefaultSettings()
	s.Strategy = "worst-fit"
	_, err := New(s).Pack(container(1, 1, 1), nil)
	assert.ErrorIs(t, err, model.ErrUnknownStrategy)

	s = model.DefaultSettings()
	s.SortOrder = "random"
	_, err = New(s).Pack(container(1, 1, 1), nil)
	assert.ErrorIs(t, err, model.ErrUnknownSortOrder)
}

func TestPack_EmptyInput(t *testing.T) {
	result, err := New(model.DefaultSettings()).Pack(container(1, 1, 1), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Fitted)
	assert.Empty(t, result.Unfitted)
	assert.Zero(t, result.Utilization())
}

func TestPack_Deterministic(t *testing.T) {
	items := mixedItems()
	c := container(20, 15, 10)

	for _, st := range model.Strategies {
		s := model.DefaultSettings()
		s.Strategy = st
		first, err := New(s).Pack(c, items)
		require.NoError(t, err)
		second, err := New(s).Pack(c, items)
		require.NoError(t, err)
		assert.Equal(t, first, second, "strategy %s", st)
	}
}

func TestPack_InvariantsAcrossSettings(t *testing.T) {
	items := mixedItems()
	c := container(20, 15, 10)

	for _, st := range model.Strategies {
		for _, order := range model.SortOrders {
			t.Run(fmt.Sprintf("%s/%s", st, order), func(t *testing.T) {
				s := model.Settings{Strategy: st, SortOrder: order}
				result, err := New(s).Pack(c, items)
				require.NoError(t, err)
				assertValidLayout(t, result, len(items))
			})
		}
	}
}

func TestPack_FittedNeverShrinksWhenItemAppended(t *testing.T) {
	items := mixedItems()
	c := container(20, 15, 10)
	p := New(model.DefaultSettings())

	before, err := p.Pack(c, items)
	require.NoError(t, err)
	after, err := p.Pack(c, append(items[:len(items):len(items)], cube("extra", 3)))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(after.Fitted), len(before.Fitted))
	for i, pl := range before.Fitted {
		assert.Equal(t, pl, after.Fitted[i])
	}
}

func TestPack_DoesNotMutateInput(t *testing.T) {
	items := []model.Item{cube("small", 1), cube("large", 3), cube("mid", 2)}
	names := []string{"small", "large", "mid"}

	s := model.DefaultSettings()
	s.SortOrder = model.SortVolumeDesc
	result, err := New(s).Pack(container(10, 10, 10), items)
	require.NoError(t, err)

	for i, item := range items {
		assert.Equal(t, names[i], item.Name)
	}
	require.Len(t, result.Fitted, 3)
	assert.Equal(t, "large", result.Fitted[0].Item.Name)
	assert.Equal(t, "mid", result.Fitted[1].Item.Name)
	assert.Equal(t, "small", result.Fitted[2].Item.Name)
}

func TestPack_EnforceWeight(t *testing.T) {
	c := model.NewContainer("truck", 10, 10, 10, 5)
	items := []model.Item{
		model.NewItem("a", 1, 1, 1, 3),
		model.NewItem("b", 1, 1, 1, 3),
		model.NewItem("c", 1, 1, 1, 2),
	}

	result, err := New(model.DefaultSettings()).Pack(c, items)
	require.NoError(t, err)
	assert.Len(t, result.Fitted, 3, "weight is ignored unless enforced")

	s := model.DefaultSettings()
	s.EnforceWeight = true
	result, err = New(s).Pack(c, items)
	require.NoError(t, err)
	require.Len(t, result.Fitted, 2)
	assert.Equal(t, "a", result.Fitted[0].Item.Name)
	assert.Equal(t, "c", result.Fitted[1].Item.Name)
	require.Len(t, result.Unfitted, 1)
	assert.Equal(t, "b", result.Unfitted[0].Name)
	assert.InDelta(t, 5.0, result.FittedWeight(), 1e-9)
}

func TestPack_BestFitPrefersTighterAnchor(t *testing.T) {
	// After the first column, (2,0,0) is the older anchor with an 8x4x4 free
	// region and (0,2,0) the newer one with a 10x2x4 region.
	c := container(10, 4, 4)
	items := []model.Item{box("first", 2, 2, 4), box("second", 2, 2, 4)}

	first, err := New(model.DefaultSettings()).Pack(c, items)
	require.NoError(t, err)
	require.Len(t, first.Fitted, 2)
	assert.Equal(t, model.Vec3{X: 2}, first.Fitted[1].Position)

	s := model.DefaultSettings()
	s.Strategy = model.StrategyBestFit
	best, err := New(s).Pack(c, items)
	require.NoError(t, err)
	require.Len(t, best.Fitted, 2)
	assert.Equal(t, model.Vec3{Y: 2}, best.Fitted[1].Position)
	assertValidLayout(t, best, 2)
}

func TestPack_BestFitPrefersFlushOrientation(t *testing.T) {
	// At the origin every orientation leaves the same volume. HWD (2x4x2)
	// spans the full height, WHD (4x2x2) leaves a gap on every axis.
	c := container(10, 4, 4)
	items := []model.Item{box("slab", 4, 2, 2)}

	first, err := New(model.DefaultSettings()).Pack(c, items)
	require.NoError(t, err)
	require.Len(t, first.Fitted, 1)
	assert.Equal(t, model.RotationWHD, first.Fitted[0].Rotation)

	s := model.DefaultSettings()
	s.Strategy = model.StrategyBestFit
	best, err := New(s).Pack(c, items)
	require.NoError(t, err)
	require.Len(t, best.Fitted, 1)
	assert.Equal(t, model.Vec3{}, best.Fitted[0].Position)
	assert.Equal(t, model.RotationHWD, best.Fitted[0].Rotation)
	assert.Equal(t, model.Dimension{Width: 2, Height: 4, Depth: 2}, best.Fitted[0].Size())
}

func TestPack_TinyItemsStayApart(t *testing.T) {
	for _, st := range model.Strategies {
		t.Run(string(st), func(t *testing.T) {
			s := model.DefaultSettings()
			s.Strategy = st

			result, err := New(s).Pack(container(1, 1, 1), []model.Item{cube("a", 1e-5), cube("b", 1e-5)})
			require.NoError(t, err)
			require.Len(t, result.Fitted, 2)
			assert.NotEqual(t, result.Fitted[0].Position, result.Fitted[1].Position)
			assertValidLayout(t, result, 2)
		})
	}
}

func TestPack_RejectsSidesWithinTolerance(t *testing.T) {
	_, err := New(model.DefaultSettings()).Pack(container(1, 1, 1), []model.Item{cube("a", 1e-7), cube("b", 1e-7)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	_, err = New(model.DefaultSettings()).Pack(container(math.NaN(), 1, 1), []model.Item{cube("a", 0.5)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	_, err = New(model.DefaultSettings()).Pack(container(math.Inf(1), 10, 10), cubes(3, 10))
	assert.ErrorIs(t, err, model.ErrInvalidDimension)
}

func TestPack_CustomStrategy(t *testing.T) {
	rejectAll := strategyFunc(func(*Layout, model.Item) (model.Placement, bool) {
		return model.Placement{}, false
	})
	result, err := New(model.DefaultSettings()).WithStrategy(rejectAll).Pack(container(10, 10, 10), cubes(3, 1))
	require.NoError(t, err)
	assert.Empty(t, result.Fitted)
	assert.Len(t, result.Unfitted, 3)
}

type strategyFunc func(*Layout, model.Item) (model.Placement, bool)

func (strategyFunc) Name() model.Strategy { return "func" }

func (f strategyFunc) Place(l *Layout, item model.Item) (model.Placement, bool) { return f(l, item) }

func TestComparatorFor(t *testing.T) {
	small, large := box("b-small", 1, 1, 1), box("a-large", 1, 5, 2)

	fn, err := ComparatorFor(model.SortInput)
	require.NoError(t, err)
	assert.Nil(t, fn)

	fn, err = ComparatorFor(model.SortVolumeDesc)
	require.NoError(t, err)
	assert.Negative(t, fn(large, small))

	fn, err = ComparatorFor(model.SortVolumeAsc)
	require.NoError(t, err)
	assert.Negative(t, fn(small, large))

	fn, err = ComparatorFor(model.SortName)
	require.NoError(t, err)
	assert.Negative(t, fn(large, small))

	fn, err = ComparatorFor(model.SortLongestSideDesc)
	require.NoError(t, err)
	assert.Negative(t, fn(large, small))
}

func mixedItems() []model.Item {
	return []model.Item{
		box("crate", 8, 6, 5),
		box("panel", 12, 1, 9),
		box("tube", 2, 2, 14),
		cube("cube-a", 4),
		cube("cube-b", 4),
		box("slab", 10, 3, 6),
		box("brick", 3, 2, 1),
		box("brick", 3, 2, 1),
		box("tower", 2, 15, 2),
		cube("big", 9),
		box("plate", 6, 1, 6),
		cube("tiny", 1),
	}
}

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BoxFit/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.DefaultSettings()
	scenarios := BuildDefaultScenarios(base)

	require.Len(t, scenarios, len(model.Strategies)*len(model.SortOrders))
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, base, scenarios[0].Settings)

	seen := map[model.Settings]bool{}
	for _, sc := range scenarios {
		assert.False(t, seen[sc.Settings], "duplicate scenario %s", sc.Name)
		seen[sc.Settings] = true
	}
}

func TestCompareScenarios_MatchesSequentialPack(t *testing.T) {
	items := mixedItems()
	c := container(20, 15, 10)
	scenarios := BuildDefaultScenarios(model.DefaultSettings())

	results, err := CompareScenarios(context.Background(), scenarios, c, items)
	require.NoError(t, err)
	require.Len(t, results, len(scenarios))

	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Scenario.Name)
		want, err := New(scenarios[i].Settings).Pack(c, items)
		require.NoError(t, err)
		assert.Equal(t, want, r.Result, "scenario %s", r.Scenario.Name)
		assert.Equal(t, len(want.Fitted), r.FittedCount)
		assert.Equal(t, len(want.Unfitted), r.UnfittedCount)
		assert.InDelta(t, want.Utilization(), r.Utilization, 1e-12)
	}
}

func TestCompareScenarios_PropagatesError(t *testing.T) {
	scenarios := []ComparisonScenario{
		{Name: "ok", Settings: model.DefaultSettings()},
		{Name: "broken", Settings: model.Settings{Strategy: "nope"}},
	}
	_, err := CompareScenarios(context.Background(), scenarios, container(5, 5, 5), cubes(3, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownStrategy)
	assert.Contains(t, err.Error(), "broken")
}

func TestCompareScenarios_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CompareScenarios(ctx, BuildDefaultScenarios(model.DefaultSettings()), container(5, 5, 5), cubes(3, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBestComparison(t *testing.T) {
	_, ok := BestComparison(nil)
	assert.False(t, ok)

	results := []ComparisonResult{
		{Scenario: ComparisonScenario{Name: "a"}, FittedCount: 3, Utilization: 0.5},
		{Scenario: ComparisonScenario{Name: "b"}, FittedCount: 4, Utilization: 0.4},
		{Scenario: ComparisonScenario{Name: "c"}, FittedCount: 4, Utilization: 0.6},
		{Scenario: ComparisonScenario{Name: "d"}, FittedCount: 4, Utilization: 0.6},
	}
	best, ok := BestComparison(results)
	require.True(t, ok)
	assert.Equal(t, "c", best.Scenario.Name)
}

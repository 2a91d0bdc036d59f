package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/BoxFit/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string         `json:"name"`
	Settings model.Settings `json:"settings"`
}

// ComparisonResult holds the packing result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario  `json:"scenario"`
	Result        model.PackingResult `json:"result"`
	FittedCount   int                 `json:"fitted_count"`
	UnfittedCount int                 `json:"unfitted_count"`
	Utilization   float64             `json:"utilization"`
}

// CompareScenarios packs the same items once per scenario and returns the
// results in scenario order. Runs are independent, each with its own
// layout, so they execute concurrently.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, container model.Container, items []model.Item) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, scenario := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := New(scenario.Settings).Pack(container, items)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}
			results[i] = ComparisonResult{
				Scenario:      scenario,
				Result:        result,
				FittedCount:   len(result.Fitted),
				UnfittedCount: len(result.Unfitted),
				Utilization:   result.Utilization(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BuildDefaultScenarios generates one scenario per strategy and sort order
// combination, starting with the base settings.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}
	for _, st := range model.Strategies {
		for _, order := range model.SortOrders {
			if st == base.Strategy && order == base.SortOrder {
				continue
			}
			s := base
			s.Strategy = st
			s.SortOrder = order
			scenarios = append(scenarios, ComparisonScenario{
				Name:     fmt.Sprintf("%s / %s", st, order),
				Settings: s,
			})
		}
	}
	return scenarios
}

// BestComparison returns the result with the most fitted items, breaking
// ties by higher utilization and then by scenario order.
func BestComparison(results []ComparisonResult) (ComparisonResult, bool) {
	if len(results) == 0 {
		return ComparisonResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.FittedCount > best.FittedCount ||
			(r.FittedCount == best.FittedCount && r.Utilization > best.Utilization+model.Epsilon) {
			best = r
		}
	}
	return best, true
}

package engine

import (
	"fmt"

	"github.com/piwi3910/BoxFit/internal/model"
)

// Strategy picks a position and orientation for one item in a layout.
// Place returns false when no (anchor, rotation) pair is acceptable; it
// must not modify the layout.
type Strategy interface {
	Name() model.Strategy
	Place(l *Layout, item model.Item) (model.Placement, bool)
}

// StrategyFor returns the built-in strategy with the given name.
func StrategyFor(name model.Strategy) (Strategy, error) {
	switch name {
	case model.StrategyFirstFit, "":
		return FirstFit{}, nil
	case model.StrategyBestFit:
		return BestFit{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, name)
	}
}

// FirstFit accepts the first valid pair in scan order.
type FirstFit struct{}

func (FirstFit) Name() model.Strategy { return model.StrategyFirstFit }

func (FirstFit) Place(l *Layout, item model.Item) (model.Placement, bool) {
	var (
		found  candidate
		placed bool
	)
	l.scan(item, func(c candidate) bool {
		found, placed = c, true
		return false
	})
	if !placed {
		return model.Placement{}, false
	}
	return model.Placement{Item: item, Position: found.anchor.Point, Rotation: found.rotation}, true
}

// BestFit evaluates every valid pair and keeps the one leaving the least
// volume in the anchor's free region. Between pairs with equal leftover
// volume it prefers the orientation with the smallest gap to the free
// region on any axis, so an item lies flush where it can. Remaining ties
// keep scan order.
type BestFit struct{}

func (BestFit) Name() model.Strategy { return model.StrategyBestFit }

func (BestFit) Place(l *Layout, item model.Item) (model.Placement, bool) {
	bounds := l.Container().Dimension
	vol := item.Volume()

	var (
		best               candidate
		bestScore, bestGap float64
		placed             bool
	)
	l.scan(item, func(c candidate) bool {
		free := c.anchor.FreeRegion(bounds)
		score := free.Volume() - vol
		gap := tightestGap(c.size, free.Size)
		better := !placed || score < bestScore-model.Epsilon ||
			(score <= bestScore+model.Epsilon && gap < bestGap-model.Epsilon)
		if better {
			best, bestScore, bestGap, placed = c, score, gap, true
		}
		return true
	})
	if !placed {
		return model.Placement{}, false
	}
	return model.Placement{Item: item, Position: best.anchor.Point, Rotation: best.rotation}, true
}

// tightestGap returns the smallest per-axis slack between size and free.
func tightestGap(size, free model.Dimension) float64 {
	return min(free.Width-size.Width, free.Height-size.Height, free.Depth-size.Depth)
}

package engine

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/BoxFit/internal/model"
)

// SortFunc orders items before packing. It follows the slices.SortFunc
// convention: negative when a goes before b.
type SortFunc func(a, b model.Item) int

// ComparatorFor returns the comparator for a named sort order. Input order
// returns nil, meaning no pre-sort.
func ComparatorFor(order model.SortOrder) (SortFunc, error) {
	switch order {
	case model.SortInput, "":
		return nil, nil
	case model.SortVolumeDesc:
		return func(a, b model.Item) int { return cmp.Compare(b.Volume(), a.Volume()) }, nil
	case model.SortVolumeAsc:
		return func(a, b model.Item) int { return cmp.Compare(a.Volume(), b.Volume()) }, nil
	case model.SortName:
		return func(a, b model.Item) int { return strings.Compare(a.Name, b.Name) }, nil
	case model.SortLongestSideDesc:
		return func(a, b model.Item) int {
			return cmp.Compare(b.Dimension.LongestSide(), a.Dimension.LongestSide())
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownSortOrder, order)
	}
}

// Packer runs the single-container placement engine. A Packer holds only
// configuration, so one value may serve any number of runs, including
// concurrent ones.
type Packer struct {
	Settings model.Settings

	strategy   Strategy
	comparator SortFunc
	logger     *log.Logger
}

func New(settings model.Settings) *Packer {
	return &Packer{Settings: settings}
}

// WithStrategy overrides the strategy named in Settings.
func (p *Packer) WithStrategy(s Strategy) *Packer {
	p.strategy = s
	return p
}

// WithComparator overrides the sort order named in Settings.
func (p *Packer) WithComparator(fn SortFunc) *Packer {
	p.comparator = fn
	return p
}

// WithLogger sets the logger used for per-item debug output.
func (p *Packer) WithLogger(l *log.Logger) *Packer {
	p.logger = l
	return p
}

func (p *Packer) debugLogger() *log.Logger {
	if p.logger == nil {
		return log.New(io.Discard)
	}
	return p.logger
}

func (p *Packer) resolve() (Strategy, SortFunc, error) {
	strategy := p.strategy
	if strategy == nil {
		s, err := StrategyFor(p.Settings.Strategy)
		if err != nil {
			return nil, nil, err
		}
		strategy = s
	}
	comparator := p.comparator
	if comparator == nil {
		c, err := ComparatorFor(p.Settings.SortOrder)
		if err != nil {
			return nil, nil, err
		}
		comparator = c
	}
	return strategy, comparator, nil
}

// Pack places items into container in one pass. Every item ends up in
// exactly one of Fitted or Unfitted. Invalid dimensions abort the run
// before any placement is attempted.
func (p *Packer) Pack(container model.Container, items []model.Item) (model.PackingResult, error) {
	if err := validate(container, items); err != nil {
		return model.PackingResult{}, err
	}
	strategy, comparator, err := p.resolve()
	if err != nil {
		return model.PackingResult{}, err
	}

	order := slices.Clone(items)
	if comparator != nil {
		slices.SortStableFunc(order, comparator)
	}

	logger := p.debugLogger()
	logger.Debug("packing", "container", container.Name, "items", len(order),
		"strategy", strategy.Name(), "sort", p.Settings.SortOrder)

	layout := newLayout(container)
	result := model.PackingResult{Container: container}
	for _, item := range order {
		placement, ok := insert(layout, strategy, item, p.Settings.EnforceWeight)
		if !ok {
			logger.Debug("unfitted", "item", item.Name, "dim", item.Dimension)
			result.Unfitted = append(result.Unfitted, item)
			continue
		}
		logger.Debug("fitted", "item", item.Name, "pos", placement.Position, "rotation", placement.Rotation)
	}
	result.Fitted = slices.Clone(layout.Placed())

	logger.Debug("packed", "fitted", len(result.Fitted), "unfitted", len(result.Unfitted),
		"utilization", fmt.Sprintf("%.4f", result.Utilization()))
	return result, nil
}

// insert attempts one item and commits it on success. A failed attempt
// leaves the layout untouched.
func insert(l *Layout, s Strategy, item model.Item, enforceWeight bool) (model.Placement, bool) {
	limit := l.container.MaxWeight
	if enforceWeight && limit > 0 && l.weight+item.Weight > limit+model.Epsilon {
		return model.Placement{}, false
	}
	placement, ok := s.Place(l, item)
	if !ok {
		return model.Placement{}, false
	}
	l.commit(placement)
	return placement, true
}

func validate(container model.Container, items []model.Item) error {
	if err := container.Dimension.Validate(); err != nil {
		return fmt.Errorf("container %q: %w", container.Name, err)
	}
	for i, item := range items {
		if err := item.Dimension.Validate(); err != nil {
			return fmt.Errorf("item %d (%s): %w", i, item.Name, err)
		}
	}
	return nil
}

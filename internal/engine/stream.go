package engine

import (
	"fmt"
	"slices"
	"sync"

	"github.com/piwi3910/BoxFit/internal/model"
)

// Stream packs items into one container as they arrive. Insertions are
// serialized by a mutex, so a Stream may be shared between goroutines;
// the resulting layout is the one produced by the order in which Insert
// calls acquired the lock.
type Stream struct {
	mu            sync.Mutex
	layout        *Layout
	strategy      Strategy
	enforceWeight bool
	unfitted      []model.Item
}

// NewStream validates container and prepares an empty layout for it.
// Settings.SortOrder is ignored since items are placed on arrival.
func NewStream(container model.Container, settings model.Settings) (*Stream, error) {
	if err := container.Dimension.Validate(); err != nil {
		return nil, fmt.Errorf("container %q: %w", container.Name, err)
	}
	strategy, err := StrategyFor(settings.Strategy)
	if err != nil {
		return nil, err
	}
	return &Stream{
		layout:        newLayout(container),
		strategy:      strategy,
		enforceWeight: settings.EnforceWeight,
	}, nil
}

// Insert places one item. It returns false when the item did not fit; the
// item is then recorded as unfitted. An item with an invalid dimension is
// rejected with an error and not recorded.
func (s *Stream) Insert(item model.Item) (model.Placement, bool, error) {
	if err := item.Dimension.Validate(); err != nil {
		return model.Placement{}, false, fmt.Errorf("item %s: %w", item.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := insert(s.layout, s.strategy, item, s.enforceWeight)
	if !ok {
		s.unfitted = append(s.unfitted, item)
	}
	return p, ok, nil
}

// Result returns a snapshot of everything inserted so far.
func (s *Stream) Result() model.PackingResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.PackingResult{
		Container: s.layout.Container(),
		Fitted:    slices.Clone(s.layout.Placed()),
		Unfitted:  slices.Clone(s.unfitted),
	}
}

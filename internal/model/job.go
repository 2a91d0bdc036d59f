package model

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Job is a saved packing request: one container, the items to load and the
// settings to load them with. It holds no results.
type Job struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   string    `json:"created_at"`
	Container   Container `json:"container"`
	Items       []Item    `json:"items"`
	Settings    Settings  `json:"settings"`
}

// NewJob captures a request. Items are copied so later edits by the caller
// do not leak into the job.
func NewJob(name, description string, container Container, items []Item, settings Settings) Job {
	return Job{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Container:   container,
		Items:       copyItems(items),
		Settings:    settings,
	}
}

// Validate checks the container, every item and the settings names.
func (j Job) Validate() error {
	if err := j.Container.Dimension.Validate(); err != nil {
		return fmt.Errorf("container %q: %w", j.Container.Name, err)
	}
	if !validWeight(j.Container.MaxWeight) {
		return fmt.Errorf("container %q: %w: %g", j.Container.Name, ErrInvalidWeight, j.Container.MaxWeight)
	}
	for i, it := range j.Items {
		if err := it.Dimension.Validate(); err != nil {
			return fmt.Errorf("item %d (%s): %w", i, it.Name, err)
		}
		if !validWeight(it.Weight) {
			return fmt.Errorf("item %d (%s): %w: %g", i, it.Name, ErrInvalidWeight, it.Weight)
		}
	}
	if _, err := ParseStrategy(string(j.Settings.Strategy)); err != nil {
		return err
	}
	if _, err := ParseSortOrder(string(j.Settings.SortOrder)); err != nil {
		return err
	}
	return nil
}

// Normalize fills missing IDs and names so every item can be told apart in
// reports. Settings left empty fall back to the defaults.
func (j *Job) Normalize() {
	if j.Container.ID == "" {
		j.Container.ID = uuid.New().String()[:8]
	}
	for i := range j.Items {
		if j.Items[i].ID == "" {
			j.Items[i].ID = uuid.New().String()[:8]
		}
		if j.Items[i].Name == "" {
			j.Items[i].Name = fmt.Sprintf("Item %d", i+1)
		}
	}
	if j.Settings.Strategy == "" {
		j.Settings.Strategy = StrategyFirstFit
	}
	if j.Settings.SortOrder == "" {
		j.Settings.SortOrder = SortInput
	}
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 0)
}

func copyItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	return slices.Clone(items)
}

package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Packing defaults applied to every run unless overridden by flags
	DefaultStrategy      Strategy  `json:"default_strategy" mapstructure:"default_strategy"`
	DefaultSortOrder     SortOrder `json:"default_sort_order" mapstructure:"default_sort_order"`
	DefaultEnforceWeight bool      `json:"default_enforce_weight" mapstructure:"default_enforce_weight"`
	DefaultContainer     string    `json:"default_container" mapstructure:"default_container"` // preset name

	// Order search
	Generations    int   `json:"generations" mapstructure:"generations"`
	PopulationSize int   `json:"population_size" mapstructure:"population_size"`
	Seed           int64 `json:"seed" mapstructure:"seed"`

	// HTTP service
	ListenAddr string `json:"listen_addr" mapstructure:"listen_addr"`

	// Extra container presets, merged over the built-in inventory
	Containers []ContainerPreset `json:"containers" mapstructure:"containers"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultStrategy:      defaults.Strategy,
		DefaultSortOrder:     defaults.SortOrder,
		DefaultEnforceWeight: defaults.EnforceWeight,
		DefaultContainer:     "Tiefkühler",
		Generations:          60,
		PopulationSize:       30,
		Seed:                 42,
		ListenAddr:           ":8080",
		Containers:           []ContainerPreset{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.Strategy = c.DefaultStrategy
	s.SortOrder = c.DefaultSortOrder
	s.EnforceWeight = c.DefaultEnforceWeight
}

// Inventory returns the built-in presets merged with the configured ones.
func (c AppConfig) Inventory() Inventory {
	return DefaultInventory().Merge(c.Containers)
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoxFit/internal/model"
)

// ExportInventory writes the container presets to a JSON file.
func ExportInventory(path string, inv model.Inventory) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ImportInventory reads presets from a JSON file and merges them into cfg's
// custom containers. A preset whose name matches an existing custom one
// replaces it.
func ImportInventory(path string, cfg model.AppConfig) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return cfg, err
	}
	for _, c := range imported.Containers {
		d := model.Dimension{Width: c.Width, Height: c.Height, Depth: c.Depth}
		if err := d.Validate(); err != nil {
			return cfg, err
		}
	}

	merged := model.Inventory{Containers: cfg.Containers}.Merge(imported.Containers)
	cfg.Containers = merged.Containers
	return cfg, nil
}

// Package config loads and saves the application configuration and the JSON
// documents the tool reads and writes beside it: saved jobs and container
// preset files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/piwi3910/BoxFit/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. BOXFIT_DEFAULT_STRATEGY.
const EnvPrefix = "BOXFIT"

// DefaultConfigDir returns ~/.config/boxfit.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "boxfit")
}

// DefaultConfigPath returns the config file used when no path is given.
// BOXFIT_CONFIG overrides it.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

func setDefaults(v *viper.Viper) {
	d := model.DefaultAppConfig()
	v.SetDefault("default_strategy", string(d.DefaultStrategy))
	v.SetDefault("default_sort_order", string(d.DefaultSortOrder))
	v.SetDefault("default_enforce_weight", d.DefaultEnforceWeight)
	v.SetDefault("default_container", d.DefaultContainer)
	v.SetDefault("generations", d.Generations)
	v.SetDefault("population_size", d.PopulationSize)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("containers", []map[string]any{})
}

// Load reads the TOML config at path (DefaultConfigPath when empty) and
// applies BOXFIT_* environment overrides. A missing file is not an error;
// the defaults are returned.
func Load(path string) (model.AppConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return model.AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg model.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return model.AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return model.AppConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Containers == nil {
		cfg.Containers = []model.ContainerPreset{}
	}
	return cfg, nil
}

func validate(cfg model.AppConfig) error {
	if _, err := model.ParseStrategy(string(cfg.DefaultStrategy)); err != nil {
		return err
	}
	if _, err := model.ParseSortOrder(string(cfg.DefaultSortOrder)); err != nil {
		return err
	}
	for _, c := range cfg.Containers {
		d := model.Dimension{Width: c.Width, Height: c.Height, Depth: c.Depth}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("container preset %q: %w", c.Name, err)
		}
	}
	return nil
}

// Save writes cfg to path as TOML, creating the directory if needed.
func Save(path string, cfg model.AppConfig) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("default_strategy", string(cfg.DefaultStrategy))
	v.Set("default_sort_order", string(cfg.DefaultSortOrder))
	v.Set("default_enforce_weight", cfg.DefaultEnforceWeight)
	v.Set("default_container", cfg.DefaultContainer)
	v.Set("generations", cfg.Generations)
	v.Set("population_size", cfg.PopulationSize)
	v.Set("seed", cfg.Seed)
	v.Set("listen_addr", cfg.ListenAddr)

	containers := make([]map[string]any, 0, len(cfg.Containers))
	for _, c := range cfg.Containers {
		containers = append(containers, map[string]any{
			"name":       c.Name,
			"width":      c.Width,
			"height":     c.Height,
			"depth":      c.Depth,
			"max_weight": c.MaxWeight,
		})
	}
	v.Set("containers", containers)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

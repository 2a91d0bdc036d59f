package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BoxFit/internal/model"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := model.DefaultAppConfig()
	cfg.DefaultStrategy = model.StrategyBestFit
	cfg.DefaultSortOrder = model.SortVolumeDesc
	cfg.DefaultEnforceWeight = true
	cfg.DefaultContainer = "Van"
	cfg.Generations = 12
	cfg.PopulationSize = 8
	cfg.Seed = 7
	cfg.ListenAddr = "127.0.0.1:9000"
	cfg.Containers = []model.ContainerPreset{
		{Name: "Van", Width: 300, Height: 180, Depth: 170, MaxWeight: 1200},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.StrategyBestFit, loaded.DefaultStrategy)
	assert.Equal(t, model.SortVolumeDesc, loaded.DefaultSortOrder)
	assert.True(t, loaded.DefaultEnforceWeight)
	assert.Equal(t, "Van", loaded.DefaultContainer)
	assert.Equal(t, 12, loaded.Generations)
	assert.Equal(t, 8, loaded.PopulationSize)
	assert.Equal(t, int64(7), loaded.Seed)
	assert.Equal(t, "127.0.0.1:9000", loaded.ListenAddr)
	require.Len(t, loaded.Containers, 1)
	assert.Equal(t, "Van", loaded.Containers[0].Name)
	assert.InDelta(t, 1200.0, loaded.Containers[0].MaxWeight, 1e-9)

	inv := loaded.Inventory()
	assert.NotNil(t, inv.FindContainerByName("van"))
	assert.NotNil(t, inv.FindContainerByName("Tiefkühler"))
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_strategy = \"best-fit\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.StrategyBestFit, cfg.DefaultStrategy)
	assert.Equal(t, model.DefaultAppConfig().Generations, cfg.Generations)
	assert.Equal(t, model.DefaultAppConfig().DefaultContainer, cfg.DefaultContainer)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BOXFIT_DEFAULT_SORT_ORDER", "name")
	t.Setenv("BOXFIT_SEED", "99")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, model.SortName, cfg.DefaultSortOrder)
	assert.Equal(t, int64(99), cfg.Seed)
}

func TestLoad_RejectsUnknownStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_strategy = \"worst-fit\"\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, model.ErrUnknownStrategy)
}

func TestLoad_RejectsBadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[[containers]]\nname = \"Flat\"\nwidth = 10\nheight = 0\ndepth = 10\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, model.ErrInvalidDimension)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultConfigPath_Env(t *testing.T) {
	t.Setenv("BOXFIT_CONFIG", "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", DefaultConfigPath())
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BoxFit/internal/export"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// run executes the root command with an isolated config file and returns
// what the command printed.
func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(&out, io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", configPath}, args...))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func tempConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.toml")
}

var smallBin = []string{
	"--bin-name", "crate", "--bin-width", "10", "--bin-height", "10", "--bin-depth", "10",
	"--item-width", "5", "--item-height", "5", "--item-depth", "5",
}

func TestPack_Defaults(t *testing.T) {
	out, err := run(t, tempConfig(t), "pack")
	require.NoError(t, err)
	assert.Contains(t, out, "Tiefkühler(")
	assert.Contains(t, out, "FITTED ITEMS:")
	assert.Contains(t, out, "UNFITTED ITEMS:")
	assert.Contains(t, out, "Akku1 pos(0, 0, 0)")
	assert.Contains(t, out, "of 100 items")
}

func TestPack_BinFlags(t *testing.T) {
	args := append([]string{"pack", "--num-items", "9"}, smallBin...)
	out, err := run(t, tempConfig(t), args...)
	require.NoError(t, err)
	assert.Contains(t, out, "crate(")
	assert.Contains(t, out, "Fitted 8 of 9 items")
	assert.Contains(t, out, "1 items did not fit")
}

func TestPack_JSONToStdout(t *testing.T) {
	args := append([]string{"pack", "--num-items", "2", "--json", "-"}, smallBin...)
	out, err := run(t, tempConfig(t), args...)
	require.NoError(t, err)
	assert.NotContains(t, out, "FITTED ITEMS:")

	var scene export.RenderScene
	require.NoError(t, json.Unmarshal([]byte(out), &scene))
	assert.Len(t, scene.Fitted, 2)
	assert.Equal(t, "Akku1", scene.Fitted[0].Name)
}

func TestPack_Errors(t *testing.T) {
	cfg := tempConfig(t)

	_, err := run(t, cfg, "pack", "--preset", "no such preset")
	assert.ErrorContains(t, err, "unknown preset")

	_, err = run(t, cfg, "pack", "--strategy", "worst-fit")
	assert.ErrorContains(t, err, "unknown strategy")

	_, err = run(t, cfg, "pack", "--bin-width", "0")
	assert.ErrorContains(t, err, "invalid dimension")

	_, err = run(t, cfg, "pack", "--bin-width", "NaN")
	assert.ErrorContains(t, err, "invalid dimension")

	_, err = run(t, cfg, "pack", "--item-depth", "+Inf")
	assert.ErrorContains(t, err, "invalid dimension")

	_, err = run(t, cfg, "pack", "--item-weight", "-1")
	assert.ErrorContains(t, err, "invalid weight")

	_, err = run(t, cfg, "pack", "--items", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestPack_Exports(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"--pdf":      filepath.Join(dir, "report.pdf"),
		"--labels":   filepath.Join(dir, "labels.pdf"),
		"--xlsx":     filepath.Join(dir, "result.xlsx"),
		"--png":      filepath.Join(dir, "preview.png"),
		"--json":     filepath.Join(dir, "scene.json"),
		"--save-job": filepath.Join(dir, "job.json"),
	}
	args := append([]string{"pack", "--num-items", "4"}, smallBin...)
	for flag, path := range files {
		args = append(args, flag, path)
	}

	cfg := tempConfig(t)
	_, err := run(t, cfg, args...)
	require.NoError(t, err)
	for flag, path := range files {
		info, err := os.Stat(path)
		require.NoError(t, err, flag)
		assert.Positive(t, info.Size(), flag)
	}

	out, err := run(t, cfg, "pack", "--job", files["--save-job"], "--strategy", "best-fit")
	require.NoError(t, err)
	assert.Contains(t, out, "crate(")
	assert.Contains(t, out, "Fitted 4 of 4 items")
}

func TestPack_ItemsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	csv := "Name,Width,Height,Depth,Quantity\nBox,5,5,5,3\nBeam,20,1,1,1\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	args := append([]string{"pack", "--items", path}, smallBin...)
	out, err := run(t, tempConfig(t), args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Box-1 pos")
	assert.Contains(t, out, "Box-3 pos")
	assert.Contains(t, out, "Beam(")
	assert.Contains(t, out, "Fitted 3 of 4 items")
}

func TestCompare(t *testing.T) {
	chart := filepath.Join(t.TempDir(), "compare.html")
	args := append([]string{"compare", "--num-items", "4", "--chart", chart}, smallBin...)
	out, err := run(t, tempConfig(t), args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "best-fit / volume-desc")

	data, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echarts")
}

func TestOptimize(t *testing.T) {
	args := append([]string{"optimize", "--num-items", "6", "--generations", "2", "--population", "4", "--seed", "3"}, smallBin...)
	out, err := run(t, tempConfig(t), args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Fitted 6 of 6 items")
}

func TestPresets(t *testing.T) {
	cfg := tempConfig(t)

	out, err := run(t, cfg, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "Tiefkühler")
	assert.Contains(t, out, "EUR pallet")

	exported := filepath.Join(t.TempDir(), "presets.json")
	_, err = run(t, cfg, "presets", "--export", exported)
	require.NoError(t, err)
	assert.FileExists(t, exported)

	custom := filepath.Join(t.TempDir(), "custom.json")
	doc := `{"containers":[{"name":"Van","width":300,"height":180,"depth":170,"max_weight":1200}]}`
	require.NoError(t, os.WriteFile(custom, []byte(doc), 0o644))

	_, err = run(t, cfg, "presets", "--import", custom)
	require.NoError(t, err)
	assert.FileExists(t, cfg)

	out, err = run(t, cfg, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "Van")

	out, err = run(t, cfg, "pack", "--preset", "van", "--num-items", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Van(")
}

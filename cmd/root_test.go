package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/calculator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	Root.SetOut(&out)
	Root.SetErr(&out)
	Root.SetArgs(args)
	err := Root.Execute()
	return out.String(), err
}

func TestMaterials(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(custom, []byte(`[
		{"name": "Custom Material", "thermal_conductivity": 50, "density": 5000, "specific_heat": 400}
	]`), 0o644))

	out, err := execute(t, "materials", "--config", filepath.Join(dir, "missing.ini"), "--materials", custom)
	require.NoError(t, err)
	for _, name := range []string{"Copper", "Iron", "Glass", "Polystyrene", "Custom Material"} {
		assert.Contains(t, out, "Material: "+name)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(cfg, []byte(`
[simulation]
SpatialDivisions = 7
TimeSteps = 3

[log]
Level = warn
`), 0o644))

	_, err := execute(t, "run", "--config", cfg, "--materials", "", "--dim", "2", "--material", "glass", "--out", dir)
	require.NoError(t, err)
	for _, f := range []string{"glass_2d_t000.png", "glass_2d_t002.png"} {
		_, err = os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	_, err = execute(t, "run", "--config", cfg, "--materials", "", "--dim", "1", "--material", "", "--out", dir)
	require.NoError(t, err)
	for _, f := range []string{"copper_1d.png", "iron_1d.png", "glass_1d.png", "polystyrene_1d.png"} {
		_, err = os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}
}

func TestRun_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.ini")

	_, err := execute(t, "run", "--config", missing, "--materials", "", "--dim", "1", "--material", "wood")
	assert.True(t, errors.Is(err, calculator.ErrInvalidConfig))

	_, err = execute(t, "run", "--config", missing, "--materials", "", "--dim", "3", "--material", "")
	assert.True(t, errors.Is(err, calculator.ErrInvalidConfig))
}

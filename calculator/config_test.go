package calculator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.SpatialDivisions)
	assert.Equal(t, 5, cfg.TimeSteps)
	assert.Equal(t, 286.15, cfg.InitialTemperature)
	assert.Equal(t, 1353.15, cfg.SourceFactor)
	assert.Equal(t, ":9000", cfg.Addr)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, BoundaryMixed, p.Boundary)
	assert.InDelta(t, 3.2, p.Dt(), 1e-12)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[simulation]
Length = 2
SpatialDivisions = 21
TimeSteps = 40
Boundary = dirichlet

[server]
Addr = :8080

[log]
Level = debug
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Length)
	assert.Equal(t, 16.0, cfg.MaxTime)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, BoundaryDirichlet, p.Boundary)
	assert.Equal(t, 21, p.SpatialDivisions)
	assert.InDelta(t, 0.1, p.Dx(), 1e-12)
}

func TestConfig_ParamsRejectsInvalid(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	cfg.SpatialDivisions = 2
	_, err = cfg.Params()
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	cfg.SpatialDivisions = 11
	cfg.Boundary = "periodic"
	_, err = cfg.Params()
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

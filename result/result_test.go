package result

import (
	"context"
	"errors"
	"testing"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/calculator"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	profiles map[string][][]float64
	grids    map[string][][][]float64
	dx, dt   float64
	fail     error
}

func newRecorder() *recorder {
	return &recorder{
		profiles: map[string][][]float64{},
		grids:    map[string][][][]float64{},
	}
}

func (r *recorder) Profiles(name string, rows [][]float64, dx, dt float64) error {
	r.profiles[name] = rows
	r.dx, r.dt = dx, dt
	return r.fail
}

func (r *recorder) Grids(name string, grids [][][]float64, dx, dt float64) error {
	r.grids[name] = grids
	r.dx, r.dt = dx, dt
	return r.fail
}

var params = calculator.Params{
	Length:             1,
	MaxTime:            16,
	InitialTemperature: 286.15,
	SpatialDivisions:   11,
	TimeSteps:          5,
}

func TestResult1D_Run(t *testing.T) {
	rec := newRecorder()
	require.NoError(t, NewResult1D(material.Copper, params, 1353.15).Run(rec))
	rows := rec.profiles["Copper"]
	require.Len(t, rows, 5)
	assert.Len(t, rows[0], 11)
	assert.Greater(t, rows[4][1], params.InitialTemperature)
	assert.InDelta(t, 0.1, rec.dx, 1e-12)
	assert.InDelta(t, 3.2, rec.dt, 1e-12)
}

func TestResult2D_Run(t *testing.T) {
	rec := newRecorder()
	require.NoError(t, NewResult2D(material.Iron, params, 1353.15).Run(rec))
	grids := rec.grids["Iron"]
	require.Len(t, grids, 5)
	assert.Len(t, grids[0], 11)
	assert.Len(t, grids[0][0], 11)
}

func TestNew(t *testing.T) {
	for _, dim := range []int{1, 2} {
		r, err := New(dim, material.Glass, params, 1)
		require.NoError(t, err)
		assert.Equal(t, "Glass", r.Name())
	}
	_, err := New(3, material.Glass, params, 1)
	assert.True(t, errors.Is(err, calculator.ErrInvalidConfig))
}

func TestRunAll_Catalog(t *testing.T) {
	runners, err := Catalog(1, material.Catalog(), params, 1353.15)
	require.NoError(t, err)
	require.Len(t, runners, 4)

	rec := newRecorder()
	require.NoError(t, RunAll(context.Background(), runners, rec))
	for _, m := range material.Catalog() {
		assert.Contains(t, rec.profiles, m.Name)
	}
}

func TestRunAll_Errors(t *testing.T) {
	bad := params
	bad.SpatialDivisions = 2
	runners, err := Catalog(2, material.Catalog(), bad, 1)
	require.NoError(t, err)
	err = RunAll(context.Background(), runners, newRecorder())
	assert.True(t, errors.Is(err, calculator.ErrInvalidConfig))

	rec := newRecorder()
	rec.fail = errors.New("render failed")
	runners, err = Catalog(1, material.Catalog(), params, 1)
	require.NoError(t, err)
	err = RunAll(context.Background(), runners, rec)
	assert.ErrorIs(t, err, rec.fail)
	assert.Len(t, rec.profiles, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec = newRecorder()
	assert.ErrorIs(t, RunAll(ctx, runners, rec), context.Canceled)
	assert.Empty(t, rec.profiles)
}

package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestSolveTridiagonal_IdentityReproducesRHS(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		a := make([]float64, n-1)
		c := make([]float64, n-1)
		b := make([]float64, n)
		d := make([]float64, n)
		want := make([]float64, n)
		for i := range b {
			b[i] = 1
			d[i] = 0.5*float64(i) - 3
			want[i] = d[i]
		}
		require.NoError(t, SolveTridiagonal(a, b, c, d))
		assert.True(t, floats.EqualApprox(want, d, 1e-9), "n=%d got %v", n, d)
	}
}

func TestSolveTridiagonal_ScaledDiagonal(t *testing.T) {
	b := []float64{2, 4, 8}
	d := []float64{2, 8, 32}
	require.NoError(t, SolveTridiagonal([]float64{0, 0}, b, []float64{0, 0}, d))
	assert.InDeltaSlice(t, []float64{1, 2, 4}, d, 1e-9)
}

// 与 gonum 稠密矩阵求解结果对比
func TestSolveTridiagonal_MatchesDenseSolve(t *testing.T) {
	const n = 9
	const r = 0.8
	a := make([]float64, n-1)
	c := make([]float64, n-1)
	b := make([]float64, n)
	d := make([]float64, n)
	dense := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		b[i] = 1 + 2*r
		d[i] = math.Sin(float64(i)) + 2
		dense.Set(i, i, b[i])
		if i < n-1 {
			a[i] = -r
			c[i] = -r * 0.5
			dense.Set(i+1, i, a[i])
			dense.Set(i, i+1, c[i])
		}
	}
	rhs := mat.NewVecDense(n, append([]float64(nil), d...))

	var want mat.VecDense
	require.NoError(t, want.SolveVec(dense, rhs))

	require.NoError(t, SolveTridiagonal(a, b, c, d))
	for i := 0; i < n; i++ {
		assert.InDelta(t, want.AtVec(i), d[i], 1e-9, "row %d", i)
	}
}

// 系数整体很小但条件良好的方程组可以正常求解
func TestSolveTridiagonal_SmallCoefficients(t *testing.T) {
	a := []float64{1e-15, 1e-15}
	b := []float64{2e-15, 2e-15, 2e-15}
	c := []float64{1e-15, 1e-15}
	d := []float64{3e-15, 4e-15, 3e-15}
	require.NoError(t, SolveTridiagonal(a, b, c, d))
	assert.InDeltaSlice(t, []float64{1, 1, 1}, d, 1e-9)
}

func TestThomas_ReusesScratchAcrossSizes(t *testing.T) {
	th := NewThomas(2)
	for _, n := range []int{2, 6, 3} {
		a := make([]float64, n-1)
		c := make([]float64, n-1)
		b := make([]float64, n)
		d := make([]float64, n)
		for i := range b {
			b[i] = 3
			d[i] = 3 * float64(i+1)
		}
		require.NoError(t, th.Solve(a, b, c, d))
		for i := range d {
			assert.InDelta(t, float64(i+1), d[i], 1e-12)
		}
	}
}

func TestSolveTridiagonal_Errors(t *testing.T) {
	cases := []struct {
		name       string
		a, b, c, d []float64
		want       error
	}{
		{"empty", nil, nil, nil, nil, ErrDimensionMismatch},
		{"short rhs", []float64{0}, []float64{1, 1}, []float64{0}, []float64{1}, ErrDimensionMismatch},
		{"long sub diagonal", []float64{0, 0}, []float64{1, 1}, []float64{0}, []float64{1, 1}, ErrDimensionMismatch},
		{"zero first pivot", []float64{0}, []float64{0, 1}, []float64{0}, []float64{1, 1}, ErrNumericalInstability},
		{"singular", []float64{1}, []float64{1, 1}, []float64{1}, []float64{1, 2}, ErrNumericalInstability},
		{"singular small scale", []float64{1e-15}, []float64{1e-15, 1e-15}, []float64{1e-15}, []float64{1, 2}, ErrNumericalInstability},
		{"zero row", []float64{0}, []float64{1, 0}, []float64{0}, []float64{1, 1}, ErrNumericalInstability},
		{"nan rhs", []float64{0}, []float64{1, 1}, []float64{0}, []float64{math.NaN(), 1}, ErrNumericalInstability},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := SolveTridiagonal(tc.a, tc.b, tc.c, tc.d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

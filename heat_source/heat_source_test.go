package heat_source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar(t *testing.T) {
	b := NewBar(16, 1, 2)
	rate := 16.0 * 2 * 2
	cases := []struct {
		x    float64
		want float64
	}{
		{0, 0},
		{0.1, rate},
		{0.15, rate},
		{0.2, rate},
		{0.3, 0},
		{0.5, 0.75 * rate},
		{0.55, 0.75 * rate},
		{0.6, 0.75 * rate},
		{0.9, 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, b.At(tc.x, 3), 1e-12, "x=%v", tc.x)
	}
}

func TestPlate(t *testing.T) {
	p := NewPlate(10, 6, 1)
	assert.Equal(t, 10.0, p.Rate())
	for _, pt := range [][2]float64{{1.5, 1.5}, {4.5, 1.5}, {1.5, 4.5}, {4.5, 4.5}, {1, 1}, {5, 5}} {
		assert.Equal(t, 10.0, p.At(pt[0], pt[1], 0), "point %v", pt)
	}
	for _, pt := range [][2]float64{{0, 0}, {3, 3}, {1.5, 3}, {3, 4.5}, {5.5, 1.5}} {
		assert.Equal(t, 0.0, p.At(pt[0], pt[1], 0), "point %v", pt)
	}
}

func TestWindow(t *testing.T) {
	w := Window1D{Source: NewBar(1, 1, 1), Start: 2, End: 4}
	assert.Equal(t, 0.0, w.At(0.15, 1))
	assert.Equal(t, 1.0, w.At(0.15, 2))
	assert.Equal(t, 1.0, w.At(0.15, 4))
	assert.Equal(t, 0.0, w.At(0.15, 4.5))

	w2 := Window2D{Source: Func2D(func(x, y, _ float64) float64 { return x + y }), Start: 0, End: 1}
	assert.Equal(t, 3.0, w2.At(1, 2, 0.5))
	assert.Equal(t, 0.0, w2.At(1, 2, 2))

	assert.Equal(t, 0.0, None1D.At(0.15, 0))
	assert.Equal(t, 0.0, None2D.At(1.5, 1.5, 0))
}

func TestWindow_NilSource(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, 0.0, Window1D{Start: 0, End: 1}.At(0.15, 0.5))
		assert.Equal(t, 0.0, Window1D{}.At(0.15, 0))
		assert.Equal(t, 0.0, Window2D{Start: 0, End: 1}.At(0.2, 0.2, 0.5))
	})
}

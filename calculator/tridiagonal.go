package calculator

import (
	"fmt"
	"math"
)

// 主元相对于本行系数的量级小于该值时认为方程组病态
const pivotEpsilon = 1e-14

// Thomas 求解三对角方程组 A x = d，复用 c*, d* 两个中间数组，
// 每一次方向扫描（一行或一列）调用一次 Solve。
type Thomas struct {
	cStar []float64
	dStar []float64
}

func NewThomas(n int) *Thomas {
	if n < 1 {
		n = 1
	}
	return &Thomas{
		cStar: make([]float64, n),
		dStar: make([]float64, n),
	}
}

// SolveTridiagonal 使用临时的中间数组求解，结果写回 d
func SolveTridiagonal(a, b, c, d []float64) error {
	return NewThomas(len(b)).Solve(a, b, c, d)
}

// Solve 求解 A x = d，a 为下对角线 a[0..n-2]，b 为主对角线 b[0..n-1]，
// c 为上对角线 c[0..n-2]，结果覆盖 d。不做选主元。
func (t *Thomas) Solve(a, b, c, d []float64) error {
	n := len(b)
	if n < 1 || len(d) != n || len(a) != n-1 || len(c) != n-1 {
		return fmt.Errorf("%w: len(a)=%d len(b)=%d len(c)=%d len(d)=%d",
			ErrDimensionMismatch, len(a), len(b), len(c), len(d))
	}
	if cap(t.cStar) < n {
		t.cStar = make([]float64, n)
		t.dStar = make([]float64, n)
	}
	cStar, dStar := t.cStar[:n], t.dStar[:n]

	// 1. 正向消元
	if tinyPivot(b[0], math.Max(math.Abs(b[0]), math.Abs(upper(c, 0)))) {
		return fmt.Errorf("%w: zero pivot at row 0", ErrNumericalInstability)
	}
	cStar[0] = upper(c, 0) / b[0]
	dStar[0] = d[0] / b[0]
	for i := 1; i < n; i++ {
		elim := a[i-1] * cStar[i-1]
		pivot := b[i] - elim
		if tinyPivot(pivot, math.Max(math.Abs(b[i]), math.Abs(elim))) {
			return fmt.Errorf("%w: zero pivot at row %d", ErrNumericalInstability, i)
		}
		m := 1.0 / pivot
		cStar[i] = upper(c, i) * m
		dStar[i] = (d[i] - a[i-1]*dStar[i-1]) * m
	}

	// 2. 回代
	d[n-1] = dStar[n-1]
	for i := n - 2; i >= 0; i-- {
		d[i] = dStar[i] - cStar[i]*d[i+1]
	}

	for i, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value at row %d", ErrNumericalInstability, i)
		}
	}
	return nil
}

// tinyPivot scale 为 0 时整行为 0，同样视为病态
func tinyPivot(pivot, scale float64) bool {
	return math.Abs(pivot) <= pivotEpsilon*scale
}

// 最后一行没有上对角元素
func upper(c []float64, i int) float64 {
	if i < len(c) {
		return c[i]
	}
	return 0
}

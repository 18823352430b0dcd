package calculator

import (
	"fmt"
	"sync"
	"time"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/heat_source"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/material"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Solver2D 二维方板的交替方向隐式 (ADI) 求解器。
// 每个时间步先沿 x 方向逐行求解三对角方程组得到中间层，再沿 y 方向逐列求解得到新的时间层。
type Solver2D struct {
	material material.Material
	source   heat_source.Source2D
	params   Params

	n, m   int
	dx, dt float64

	// 温度场，下标 (t, i, j) = t*n*n + i*n + j，i 为 x 方向，j 为 y 方向
	field        []float64
	intermediate []float64 // x 方向扫描后的中间层
	solved       bool

	mu sync.RWMutex
}

func NewSolver2D(m material.Material, source heat_source.Source2D, p Params) (*Solver2D, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: heat source is nil", ErrInvalidConfig)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.SpatialDivisions
	s := &Solver2D{
		material:     m,
		source:       source,
		params:       p,
		n:            n,
		m:            p.TimeSteps,
		dx:           p.Dx(),
		dt:           p.Dt(),
		field:        make([]float64, p.TimeSteps*n*n),
		intermediate: make([]float64, n*n),
	}
	s.initialize()
	log.WithFields(log.Fields{
		"material": m.Name,
		"N":        n,
		"M":        s.m,
		"boundary": p.Boundary,
	}).Debug("初始化二维求解器")
	return s, nil
}

func (s *Solver2D) initialize() {
	for i := range s.field {
		s.field[i] = s.params.InitialTemperature
	}
	s.solved = false
}

func (s *Solver2D) grid(t int) []float64 {
	size := s.n * s.n
	return s.field[t*size : (t+1)*size]
}

// Solve 推进全部时间层，对已求解的实例再次调用会从初始条件重新计算
func (s *Solver2D) Solve() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.solved {
		log.WithField("material", s.material.Name).Debug("重新求解，温度场从初始条件开始")
	}
	s.initialize()

	start := time.Now()
	n := s.n
	k := n - 2 // 每行 / 每列的内部点数
	u0 := s.params.InitialTemperature
	r := s.material.Diffusivity() * s.dt / (s.dx * s.dx)
	half := r / 2
	nearNeumann, farNeumann := s.params.Boundary.edges()

	// 两个方向的系数相同：Neumann 边界并入相邻主对角元，Dirichlet 边界移到右端项
	a := make([]float64, k-1)
	b := make([]float64, k)
	c := make([]float64, k-1)
	d := make([]float64, k)
	for i := 0; i < k; i++ {
		b[i] = 1 + r
		if i < k-1 {
			a[i] = -half
			c[i] = -half
		}
	}
	if nearNeumann {
		b[0] -= half
	}
	if farNeumann {
		b[k-1] -= half
	}
	edgeTerms := func(d []float64) {
		if !nearNeumann {
			d[0] += half * u0
		}
		if !farNeumann {
			d[k-1] += half * u0
		}
	}

	solver := NewThomas(k)
	tmp := s.intermediate
	for step := 0; step < s.m-1; step++ {
		prev := s.grid(step)
		next := s.grid(step + 1)
		tNext := float64(step+1) * s.dt

		// 1. x 方向：固定 j，求解 i = 1..n-2，右端项包含 y 方向的显式扩散
		for j := 1; j < n-1; j++ {
			for i := 1; i < n-1; i++ {
				p := i*n + j
				d[i-1] = prev[p] + half*(prev[p-1]-2*prev[p]+prev[p+1])
			}
			edgeTerms(d)
			if err := solver.Solve(a, b, c, d); err != nil {
				return fmt.Errorf("solve 2d step %d x-sweep row %d: %w", step+1, j, err)
			}
			for i := 1; i < n-1; i++ {
				tmp[i*n+j] = d[i-1]
			}
		}
		s.applyBoundary(tmp)

		// 2. y 方向：固定 i，求解 j = 1..n-2，右端项包含 x 方向的显式扩散和热源
		for i := 1; i < n-1; i++ {
			x := float64(i) * s.dx
			for j := 1; j < n-1; j++ {
				p := i*n + j
				d[j-1] = tmp[p] + half*(tmp[p-n]-2*tmp[p]+tmp[p+n]) +
					s.dt*s.source.At(x, float64(j)*s.dx, tNext)/s.material.HeatCapacity()
			}
			edgeTerms(d)
			if err := solver.Solve(a, b, c, d); err != nil {
				return fmt.Errorf("solve 2d step %d y-sweep column %d: %w", step+1, i, err)
			}
			copy(next[i*n+1:i*n+n-1], d)
		}
		s.applyBoundary(next)

		log.WithFields(log.Fields{
			"step": step + 1,
			"time": tNext,
		}).Debug("二维时间层计算完成")
	}
	s.solved = true

	log.WithFields(log.Fields{
		"material": s.material.Name,
		"r":        r,
		"steps":    s.m - 1,
		"boundary": s.params.Boundary,
		"cost":     time.Since(start),
	}).Info("二维温度场计算完成")
	return nil
}

// applyBoundary 先做 Neumann 复制，再做 Dirichlet 覆盖，保证角点同时满足两类条件
func (s *Solver2D) applyBoundary(g []float64) {
	n := s.n
	u0 := s.params.InitialTemperature
	nearNeumann, farNeumann := s.params.Boundary.edges()

	if nearNeumann {
		for j := 0; j < n; j++ {
			g[j] = g[n+j] // x = 0
		}
		for i := 0; i < n; i++ {
			g[i*n] = g[i*n+1] // y = 0
		}
	}
	if farNeumann {
		for j := 0; j < n; j++ {
			g[(n-1)*n+j] = g[(n-2)*n+j] // x = L
		}
		for i := 0; i < n; i++ {
			g[i*n+n-1] = g[i*n+n-2] // y = L
		}
	}
	if !nearNeumann {
		for k := 0; k < n; k++ {
			g[k] = u0
			g[k*n] = u0
		}
	}
	if !farNeumann {
		for k := 0; k < n; k++ {
			g[(n-1)*n+k] = u0
			g[k*n+n-1] = u0
		}
	}
}

func (s *Solver2D) copyGrid(t int) [][]float64 {
	g := s.grid(t)
	out := make([][]float64, s.n)
	for i := range out {
		out[i] = append([]float64(nil), g[i*s.n:(i+1)*s.n]...)
	}
	return out
}

func (s *Solver2D) checkIndex(t int) error {
	if t < 0 || t >= s.m {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrNoSuchTimeStep, t, s.m)
	}
	if t > 0 && !s.solved {
		return fmt.Errorf("%w: time step %d", ErrNotSolved, t)
	}
	return nil
}

// GridAtTime 返回第 t 个时间层的副本，grid[i][j] 对应 (x_i, y_j)
func (s *Solver2D) GridAtTime(t int) ([][]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkIndex(t); err != nil {
		return nil, err
	}
	return s.copyGrid(t), nil
}

// DenseAtTime 以 gonum 矩阵形式返回第 t 个时间层，行为 x，列为 y
func (s *Solver2D) DenseAtTime(t int) (*mat.Dense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkIndex(t); err != nil {
		return nil, err
	}
	return mat.NewDense(s.n, s.n, append([]float64(nil), s.grid(t)...)), nil
}

// AllGrids 返回完整的 时间 x X x Y 温度场副本
func (s *Solver2D) AllGrids() ([][][]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.solved {
		return nil, ErrNotSolved
	}
	grids := make([][][]float64, s.m)
	for t := range grids {
		grids[t] = s.copyGrid(t)
	}
	return grids, nil
}

func (s *Solver2D) Material() material.Material { return s.material }
func (s *Solver2D) Params() Params               { return s.params }
func (s *Solver2D) Boundary() BoundaryPolicy     { return s.params.Boundary }
func (s *Solver2D) Dx() float64                  { return s.dx }
func (s *Solver2D) Dt() float64                  { return s.dt }
func (s *Solver2D) Steps() int                   { return s.m }
func (s *Solver2D) Points() int                  { return s.n }

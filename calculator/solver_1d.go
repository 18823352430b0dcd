package calculator

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/heat_source"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/material"
	log "github.com/sirupsen/logrus"
)

// Solver1D 一维杆的隐式欧拉求解器。
// 左端 x=0 绝热 (du/dx = 0)，右端 x=L 固定为初始温度。
type Solver1D struct {
	material material.Material
	source   heat_source.Source1D
	params   Params

	n, m   int
	dx, dt float64

	// 温度场，m 行 n 列连续存放，第 t 行为第 t 个时间层
	field  []float64
	solved bool

	mu sync.RWMutex // Solve 期间禁止读取
}

func NewSolver1D(m material.Material, source heat_source.Source1D, p Params) (*Solver1D, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: heat source is nil", ErrInvalidConfig)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Boundary != BoundaryMixed {
		return nil, fmt.Errorf("%w: 1d solver only supports the %s boundary, got %s",
			ErrInvalidConfig, BoundaryMixed, p.Boundary)
	}
	s := &Solver1D{
		material: m,
		source:   source,
		params:   p,
		n:        p.SpatialDivisions,
		m:        p.TimeSteps,
		dx:       p.Dx(),
		dt:       p.Dt(),
		field:    make([]float64, p.TimeSteps*p.SpatialDivisions),
	}
	s.initialize()
	log.WithFields(log.Fields{
		"material": m.Name,
		"N":        s.n,
		"M":        s.m,
		"dx":       s.dx,
		"dt":       s.dt,
	}).Debug("初始化一维求解器")
	return s, nil
}

// 所有时间层填充初始温度
func (s *Solver1D) initialize() {
	for i := range s.field {
		s.field[i] = s.params.InitialTemperature
	}
	s.solved = false
}

func (s *Solver1D) row(t int) []float64 {
	return s.field[t*s.n : (t+1)*s.n]
}

// Solve 推进全部时间层。对已求解的实例再次调用会从初始条件重新计算。
func (s *Solver1D) Solve() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.solved {
		log.WithField("material", s.material.Name).Debug("重新求解，温度场从初始条件开始")
	}
	s.initialize()

	start := time.Now()
	n := s.n
	u0 := s.params.InitialTemperature
	rhoC := s.material.HeatCapacity()
	r := s.material.Diffusivity() * s.dt / (s.dx * s.dx)

	// 三对角系数不随时间变化
	a := make([]float64, n-1) // 下对角线
	b := make([]float64, n)   // 主对角线
	c := make([]float64, n-1) // 上对角线
	d := make([]float64, n)   // 右端项
	for i := 1; i < n-1; i++ {
		a[i-1] = -r
		b[i] = 1 + 2*r
		c[i] = -r
	}
	// x = 0: 虚拟节点 u[-1] = u[1]
	b[0] = 1 + 2*r
	c[0] = -2 * r
	// x = L: u = u0
	a[n-2] = 0
	b[n-1] = 1

	solver := NewThomas(n)
	for step := 0; step < s.m-1; step++ {
		current := s.row(step)
		tNext := float64(step+1) * s.dt
		for i := 1; i < n-1; i++ {
			d[i] = current[i] + s.dt*s.source.At(float64(i)*s.dx, tNext)/rhoC
		}
		d[0] = current[0]
		d[n-1] = u0

		if err := solver.Solve(a, b, c, d); err != nil {
			return fmt.Errorf("solve 1d step %d: %w", step+1, err)
		}

		next := s.row(step + 1)
		copy(next, d)
		applyNeumann1D(next)
		applyDirichlet1D(next, u0)
	}
	s.solved = true

	log.WithFields(log.Fields{
		"material": s.material.Name,
		"r":        r,
		"steps":    s.m - 1,
		"cost":     time.Since(start),
	}).Info("一维温度场计算完成")
	return nil
}

func applyNeumann1D(row []float64) {
	row[0] = row[1]
}

func applyDirichlet1D(row []float64, u0 float64) {
	row[len(row)-1] = u0
}

// TemperatureAtTime 返回第 t 个时间层的副本
func (s *Solver1D) TemperatureAtTime(t int) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t < 0 || t >= s.m {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrNoSuchTimeStep, t, s.m)
	}
	if t > 0 && !s.solved {
		return nil, fmt.Errorf("%w: time step %d", ErrNotSolved, t)
	}
	return append([]float64(nil), s.row(t)...), nil
}

// Rows 返回全部时间层的副本
func (s *Solver1D) Rows() ([][]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.solved {
		return nil, ErrNotSolved
	}
	rows := make([][]float64, s.m)
	for t := range rows {
		rows[t] = append([]float64(nil), s.row(t)...)
	}
	return rows, nil
}

func (s *Solver1D) Material() material.Material { return s.material }
func (s *Solver1D) Params() Params               { return s.params }
func (s *Solver1D) Dx() float64                  { return s.dx }
func (s *Solver1D) Dt() float64                  { return s.dt }
func (s *Solver1D) Steps() int                   { return s.m }
func (s *Solver1D) Points() int                  { return s.n }

func (s *Solver1D) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "HeatEquationSolver1D\n%s", s.material)
	fmt.Fprintf(&sb, "  L = %g m, tmax = %g s, u0 = %g K\n", s.params.Length, s.params.MaxTime, s.params.InitialTemperature)
	fmt.Fprintf(&sb, "  N = %d, M = %d, dx = %g m, dt = %g s\n", s.n, s.m, s.dx, s.dt)
	return sb.String()
}

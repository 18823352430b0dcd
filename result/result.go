package result

import (
	"context"
	"fmt"
	"time"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/calculator"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/heat_source"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/material"
	log "github.com/sirupsen/logrus"
)

// Visualizer 接收求解完成后的温度场
type Visualizer interface {
	// rows[t][i]: 第 t 个时间层 x = i*dx 处的温度
	Profiles(name string, rows [][]float64, dx, dt float64) error
	// grids[t][i][j]: 第 t 个时间层 (i*dx, j*dx) 处的温度
	Grids(name string, grids [][][]float64, dx, dt float64) error
}

// Runner 完成一次仿真并把结果交给 Visualizer
type Runner interface {
	Run(v Visualizer) error
	Name() string
}

type Result1D struct {
	material     material.Material
	params       calculator.Params
	sourceFactor float64
}

func NewResult1D(m material.Material, p calculator.Params, sourceFactor float64) *Result1D {
	return &Result1D{material: m, params: p, sourceFactor: sourceFactor}
}

func (r *Result1D) Name() string { return r.material.Name }

func (r *Result1D) Run(v Visualizer) error {
	source := heat_source.NewBar(r.params.MaxTime, r.params.Length, r.sourceFactor)
	solver, err := calculator.NewSolver1D(r.material, source, r.params)
	if err != nil {
		return err
	}
	if err = solver.Solve(); err != nil {
		return fmt.Errorf("solve %s: %w", r.material.Name, err)
	}
	rows, err := solver.Rows()
	if err != nil {
		return err
	}
	return v.Profiles(r.material.Name, rows, solver.Dx(), solver.Dt())
}

type Result2D struct {
	material     material.Material
	params       calculator.Params
	sourceFactor float64
}

func NewResult2D(m material.Material, p calculator.Params, sourceFactor float64) *Result2D {
	return &Result2D{material: m, params: p, sourceFactor: sourceFactor}
}

func (r *Result2D) Name() string { return r.material.Name }

func (r *Result2D) Run(v Visualizer) error {
	source := heat_source.NewPlate(r.params.MaxTime, r.params.Length, r.sourceFactor)
	solver, err := calculator.NewSolver2D(r.material, source, r.params)
	if err != nil {
		return err
	}
	if err = solver.Solve(); err != nil {
		return fmt.Errorf("solve %s: %w", r.material.Name, err)
	}
	grids, err := solver.AllGrids()
	if err != nil {
		return err
	}
	return v.Grids(r.material.Name, grids, solver.Dx(), solver.Dt())
}

// New 按维度创建 Runner，dim 只能为 1 或 2
func New(dim int, m material.Material, p calculator.Params, sourceFactor float64) (Runner, error) {
	switch dim {
	case 1:
		return NewResult1D(m, p, sourceFactor), nil
	case 2:
		return NewResult2D(m, p, sourceFactor), nil
	}
	return nil, fmt.Errorf("%w: dimension must be 1 or 2, got %d", calculator.ErrInvalidConfig, dim)
}

// RunAll 依次运行每个 Runner，遇到错误或 ctx 取消时立即返回
func RunAll(ctx context.Context, runners []Runner, v Visualizer) error {
	for i, r := range runners {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if err := r.Run(v); err != nil {
			return fmt.Errorf("run %s: %w", r.Name(), err)
		}
		log.WithFields(log.Fields{
			"material": r.Name(),
			"index":    i + 1,
			"total":    len(runners),
			"cost":     time.Since(start),
		}).Info("仿真完成")
	}
	return nil
}

// Catalog 为材料列表中的每个材料创建同一维度的 Runner
func Catalog(dim int, materials []material.Material, p calculator.Params, sourceFactor float64) ([]Runner, error) {
	runners := make([]Runner, 0, len(materials))
	for _, m := range materials {
		r, err := New(dim, m, p, sourceFactor)
		if err != nil {
			return nil, err
		}
		runners = append(runners, r)
	}
	return runners, nil
}

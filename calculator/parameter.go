package calculator

import (
	"fmt"
	"math"
	"strings"
)

// 边界条件策略，每次仿真只能选择一种
type BoundaryPolicy int

const (
	// 近端（下标 0）绝热 Neumann，远端（下标 N-1）定温 Dirichlet，与一维一致
	BoundaryMixed BoundaryPolicy = iota
	// 四条边均为绝热边界，复制相邻内部点
	BoundaryNeumann
	// 四条边均固定为初始温度
	BoundaryDirichlet
)

func (b BoundaryPolicy) String() string {
	switch b {
	case BoundaryMixed:
		return "mixed"
	case BoundaryNeumann:
		return "neumann"
	case BoundaryDirichlet:
		return "dirichlet"
	default:
		return fmt.Sprintf("BoundaryPolicy(%d)", int(b))
	}
}

// ParseBoundaryPolicy 空字符串返回 BoundaryMixed
func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mixed":
		return BoundaryMixed, nil
	case "neumann":
		return BoundaryNeumann, nil
	case "dirichlet":
		return BoundaryDirichlet, nil
	}
	return 0, fmt.Errorf("%w: unknown boundary policy %q", ErrInvalidConfig, s)
}

// 近端 / 远端是否为 Neumann 边界
func (b BoundaryPolicy) edges() (nearNeumann, farNeumann bool) {
	return b != BoundaryDirichlet, b == BoundaryNeumann
}

// Params 网格划分参数。
// TimeSteps 为保存的时间层数 M（包含第 0 层初始条件），共推进 M-1 步，dt = MaxTime / M。
type Params struct {
	Length             float64 // 杆长 / 方板边长 L, m
	MaxTime            float64 // 最大仿真时间 T, s
	InitialTemperature float64 // 初始温度 u0, K
	SpatialDivisions   int     // 每个方向上的网格点数 N
	TimeSteps          int     // 时间层数 M
	Boundary           BoundaryPolicy
}

func (p Params) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"length", p.Length},
		{"max time", p.MaxTime},
		{"initial temperature", p.InitialTemperature},
	} {
		if !(v.value > 0) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, v.name, v.value)
		}
	}
	if p.SpatialDivisions < 3 {
		return fmt.Errorf("%w: spatial divisions must be at least 3, got %d", ErrInvalidConfig, p.SpatialDivisions)
	}
	if p.TimeSteps < 1 {
		return fmt.Errorf("%w: time steps must be at least 1, got %d", ErrInvalidConfig, p.TimeSteps)
	}
	if p.Boundary < BoundaryMixed || p.Boundary > BoundaryDirichlet {
		return fmt.Errorf("%w: unknown boundary policy %d", ErrInvalidConfig, int(p.Boundary))
	}
	return nil
}

// 空间步长
func (p Params) Dx() float64 {
	return p.Length / float64(p.SpatialDivisions-1)
}

// 时间步长
func (p Params) Dt() float64 {
	return p.MaxTime / float64(p.TimeSteps)
}

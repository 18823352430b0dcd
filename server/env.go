package server

import (
	"fmt"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/calculator"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/material"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/model"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/result"
)

// buildRunner 以配置文件中的参数为默认值，用前端传来的非零字段覆盖
func buildRunner(env model.Env, cfg *calculator.Config) (result.Runner, error) {
	m := material.Copper
	switch {
	case env.CustomMaterial != nil:
		custom, err := material.FromRecord(*env.CustomMaterial)
		if err != nil {
			return nil, err
		}
		m = custom
	case env.Material != "":
		found, ok := material.Lookup(env.Material)
		if !ok {
			return nil, fmt.Errorf("%w: unknown material %q", calculator.ErrInvalidConfig, env.Material)
		}
		m = found
	}

	c := *cfg
	if env.Length != 0 {
		c.Length = env.Length
	}
	if env.MaxTime != 0 {
		c.MaxTime = env.MaxTime
	}
	if env.InitialTemperature != 0 {
		c.InitialTemperature = env.InitialTemperature
	}
	if env.SpatialDivisions != 0 {
		c.SpatialDivisions = env.SpatialDivisions
	}
	if env.TimeSteps != 0 {
		c.TimeSteps = env.TimeSteps
	}
	if env.SourceFactor != 0 {
		c.SourceFactor = env.SourceFactor
	}
	if env.Boundary != "" {
		c.Boundary = env.Boundary
	}
	p, err := c.Params()
	if err != nil {
		return nil, err
	}

	dim := env.Dimension
	if dim == 0 {
		dim = 2
	}
	return result.New(dim, m, p, c.SourceFactor)
}

package material

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/model"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidMaterial = errors.New("material: invalid material")

// Material 材料的热物性参数，构造后不再修改，按值传递
type Material struct {
	Name         string
	Conductivity float64 // 导热系数 lambda, W/(m.K)
	Density      float64 // 密度 rho, kg/m^3
	SpecificHeat float64 // 比热容 c, J/(kg.K)
}

// New 校验并构造材料，三个物性参数必须为正的有限值
func New(name string, conductivity, density, specificHeat float64) (Material, error) {
	m := Material{
		Name:         name,
		Conductivity: conductivity,
		Density:      density,
		SpecificHeat: specificHeat,
	}
	if err := m.Validate(); err != nil {
		return Material{}, err
	}
	return m, nil
}

func (m Material) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"conductivity", m.Conductivity},
		{"density", m.Density},
		{"specific heat", m.SpecificHeat},
	} {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %q %s must be positive, got %v", ErrInvalidMaterial, m.Name, p.name, p.value)
		}
	}
	return nil
}

// Diffusivity 热扩散率 alpha = lambda / (rho * c)
func (m Material) Diffusivity() float64 {
	return m.Conductivity / (m.Density * m.SpecificHeat)
}

// HeatCapacity 体积热容 rho * c
func (m Material) HeatCapacity() float64 {
	return m.Density * m.SpecificHeat
}

func (m Material) String() string {
	return fmt.Sprintf("Material: %s\n"+
		"  Thermal Conductivity (lambda): %g W/(m.K)\n"+
		"  Density (rho): %g kg/m^3\n"+
		"  Specific Heat (c): %g J/(kg.K)\n"+
		"  Thermal Diffusivity (alpha): %g m^2/s\n",
		m.Name, m.Conductivity, m.Density, m.SpecificHeat, m.Diffusivity())
}

func FromRecord(r model.MaterialRecord) (Material, error) {
	return New(r.Name, r.ThermalConductivity, r.Density, r.SpecificHeat)
}

func (m Material) Record() model.MaterialRecord {
	return model.MaterialRecord{
		Name:                m.Name,
		ThermalConductivity: m.Conductivity,
		Density:             m.Density,
		SpecificHeat:        m.SpecificHeat,
	}
}

// LoadFile 从 json 文件读取自定义材料
func LoadFile(path string) ([]Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []model.MaterialRecord
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("material: parse %s: %w", path, err)
	}
	materials := make([]Material, 0, len(records))
	for _, r := range records {
		m, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	log.WithFields(log.Fields{
		"path":  path,
		"count": len(materials),
	}).Info("读取自定义材料")
	return materials, nil
}

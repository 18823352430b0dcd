package material

import "strings"

// 预置材料，程序启动时初始化，之后只读

var (
	Copper      = Material{Name: "Copper", Conductivity: 389, Density: 8940, SpecificHeat: 380}
	Iron        = Material{Name: "Iron", Conductivity: 80.2, Density: 7874, SpecificHeat: 440}
	Glass       = Material{Name: "Glass", Conductivity: 1.2, Density: 2530, SpecificHeat: 840}
	Polystyrene = Material{Name: "Polystyrene", Conductivity: 0.1, Density: 1040, SpecificHeat: 1200}
)

var (
	catalog = []Material{Copper, Iron, Glass, Polystyrene}
	byName  = make(map[string]Material, len(catalog))
)

func init() {
	for _, m := range catalog {
		byName[strings.ToLower(m.Name)] = m
	}
}

// Catalog 返回预置材料的副本，顺序固定
func Catalog() []Material {
	return append([]Material(nil), catalog...)
}

// Lookup 按名称查找预置材料，不区分大小写
func Lookup(name string) (Material, bool) {
	m, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

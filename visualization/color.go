package visualization

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// TemperatureColor 将温度线性映射为由绿到红的颜色，temp/max 截断到 [0, 1]
func TemperatureColor(temp, max float64) color.RGBA {
	norm := 0.0
	if max > 0 {
		norm = temp / max
	}
	if math.IsNaN(norm) || norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	return color.RGBA{
		R: uint8(norm * 255),
		G: uint8((1 - norm) * 255),
		B: 0,
		A: 255,
	}
}

// ramp 实现 palette.Palette，颜色与 TemperatureColor 一致
type ramp []color.Color

func (r ramp) Colors() []color.Color { return r }

// Ramp 返回包含 n 个颜色的绿-红调色板
func Ramp(n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	r := make(ramp, n)
	for i := range r {
		r[i] = TemperatureColor(float64(i), float64(n-1))
	}
	return r
}

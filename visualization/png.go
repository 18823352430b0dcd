package visualization

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const paletteSize = 256

// PNG 把温度场输出为 png 图片：一维为各时间层的温度曲线，二维为每个时间层一张热力图
type PNG struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
}

// NewPNG width, height 单位为 cm
func NewPNG(dir string, width, height float64) *PNG {
	if width <= 0 {
		width = 16
	}
	if height <= 0 {
		height = 12
	}
	return &PNG{
		Dir:    dir,
		Width:  vg.Length(width) * vg.Centimeter,
		Height: vg.Length(height) * vg.Centimeter,
	}
}

func fileName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "_")
}

// Profiles 一维结果，rows[t][i] 为第 t 个时间层 x = i*dx 处的温度
func (v *PNG) Profiles(name string, rows [][]float64, dx, dt float64) error {
	if len(rows) == 0 {
		return fmt.Errorf("render %s: no temperature rows", name)
	}
	if err := os.MkdirAll(v.Dir, 0o755); err != nil {
		return err
	}
	lo, hi := bounds(rows...)

	p := plot.New()
	p.Title.Text = name + " 1D"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "T (K)"
	p.Add(plotter.NewGrid())

	for t, row := range rows {
		xys := make(plotter.XYs, len(row))
		for i, u := range row {
			xys[i].X = float64(i) * dx
			xys[i].Y = u
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("render %s row %d: %w", name, t, err)
		}
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Color = rangeColor(floats.Max(row), lo, hi)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("t = %.2f s", float64(t)*dt), line)
	}
	p.Legend.Top = true

	path := filepath.Join(v.Dir, fileName(name)+"_1d.png")
	if err := p.Save(v.Width, v.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	log.WithFields(log.Fields{
		"file": path,
		"rows": len(rows),
	}).Info("一维温度曲线已输出")
	return nil
}

// Grids 二维结果，每个时间层输出一张热力图，所有图片使用同一温度区间
func (v *PNG) Grids(name string, grids [][][]float64, dx, dt float64) error {
	if len(grids) == 0 {
		return fmt.Errorf("render %s: no temperature grids", name)
	}
	if err := os.MkdirAll(v.Dir, 0o755); err != nil {
		return err
	}
	var all [][]float64
	for _, g := range grids {
		all = append(all, g...)
	}
	lo, hi := bounds(all...)
	if hi <= lo {
		hi = lo + 1
	}
	pal := Ramp(paletteSize)

	for t, g := range grids {
		hm := plotter.NewHeatMap(gridXYZ{grid: g, dx: dx}, pal)
		hm.Min, hm.Max = lo, hi

		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s 2D, t = %.2f s", name, float64(t)*dt)
		p.X.Label.Text = "x (m)"
		p.Y.Label.Text = "y (m)"
		p.Add(hm)

		path := filepath.Join(v.Dir, fmt.Sprintf("%s_2d_t%03d.png", fileName(name), t))
		if err := p.Save(v.Width, v.Height, path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		log.WithField("file", path).Debug("二维热力图已输出")
	}
	log.WithFields(log.Fields{
		"dir":   v.Dir,
		"grids": len(grids),
		"max":   hi,
	}).Info("二维热力图已输出")
	return nil
}

// rangeColor 按本次结果的温度区间 [lo, hi] 归一化后取色
func rangeColor(temp, lo, hi float64) color.RGBA {
	if hi <= lo {
		return TemperatureColor(0, 1)
	}
	return TemperatureColor(temp-lo, hi-lo)
}

// bounds 所有行中的最小值和最大值，忽略空行
func bounds(rows ...[]float64) (lo, hi float64) {
	first := true
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		rowLo, rowHi := floats.Min(row), floats.Max(row)
		if first || rowLo < lo {
			lo = rowLo
		}
		if first || rowHi > hi {
			hi = rowHi
		}
		first = false
	}
	return lo, hi
}

// gridXYZ 实现 plotter.GridXYZ，列对应 x 下标 i，行对应 y 下标 j
type gridXYZ struct {
	grid [][]float64
	dx   float64
}

func (g gridXYZ) Dims() (c, r int) {
	if len(g.grid) == 0 {
		return 0, 0
	}
	return len(g.grid), len(g.grid[0])
}

func (g gridXYZ) Z(c, r int) float64 { return g.grid[c][r] }
func (g gridXYZ) X(c int) float64    { return float64(c) * g.dx }
func (g gridXYZ) Y(r int) float64    { return float64(r) * g.dx }

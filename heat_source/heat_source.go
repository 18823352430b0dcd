package heat_source

// 热源 F(x, t) / F(x, y, t)，返回单位体积的发热功率 W/m^3。
// 与时间无关的热源忽略参数 t。

type Source1D interface {
	At(x, t float64) float64
}

type Source2D interface {
	At(x, y, t float64) float64
}

type Func1D func(x, t float64) float64

func (f Func1D) At(x, t float64) float64 { return f(x, t) }

type Func2D func(x, y, t float64) float64

func (f Func2D) At(x, y, t float64) float64 { return f(x, y, t) }

// 无热源
var (
	None1D Source1D = Func1D(func(_, _ float64) float64 { return 0 })
	None2D Source2D = Func2D(func(_, _, _ float64) float64 { return 0 })
)

// Bar 一维杆上的两段热源：
// [L/10, 2L/10] 发热 tmax*f^2，[5L/10, 6L/10] 发热 0.75*tmax*f^2，其余位置为 0
type Bar struct {
	MaxTime float64
	Length  float64
	Factor  float64
}

func NewBar(maxTime, length, factor float64) Bar {
	return Bar{MaxTime: maxTime, Length: length, Factor: factor}
}

func (b Bar) Rate() float64 {
	return b.MaxTime * b.Factor * b.Factor
}

func (b Bar) At(x, _ float64) float64 {
	l := b.Length
	switch {
	case inside(x, l/10, 2*l/10):
		return b.Rate()
	case inside(x, 5*l/10, 6*l/10):
		return 0.75 * b.Rate()
	default:
		return 0
	}
}

// Plate 二维方板上的四个正方形热源区域，每个方向上为 [L/6, 2L/6] 和 [4L/6, 5L/6]
type Plate struct {
	MaxTime float64
	Length  float64
	Factor  float64
}

func NewPlate(maxTime, length, factor float64) Plate {
	return Plate{MaxTime: maxTime, Length: length, Factor: factor}
}

func (p Plate) Rate() float64 {
	return p.MaxTime * p.Factor * p.Factor
}

func (p Plate) At(x, y, _ float64) float64 {
	if p.band(x) && p.band(y) {
		return p.Rate()
	}
	return 0
}

func (p Plate) band(v float64) bool {
	l := p.Length
	return inside(v, l/6.0, 2*l/6.0) || inside(v, 4*l/6.0, 5*l/6.0)
}

// Window1D 只在 [Start, End] 时间段内发热，Source 为 nil 时不发热
type Window1D struct {
	Source     Source1D
	Start, End float64
}

func (w Window1D) At(x, t float64) float64 {
	if w.Source == nil || !inside(t, w.Start, w.End) {
		return 0
	}
	return w.Source.At(x, t)
}

type Window2D struct {
	Source     Source2D
	Start, End float64
}

func (w Window2D) At(x, y, t float64) float64 {
	if w.Source == nil || !inside(t, w.Start, w.End) {
		return 0
	}
	return w.Source.At(x, y, t)
}

func inside(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

package colors

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// Stop is a color at an offset in [0,1] of a colormap.
type Stop struct {
	Offset float64
	Color  Color
}

// ColorMap maps values in [0,1] onto colors by piecewise-linear interpolation between stops. Values outside [0,1] are
// clamped, the end points return the first and last stop exactly.
type ColorMap struct {
	Name  string
	stops []Stop
	under *Color
	over  *Color
	bad   Color
}

// NewColorMap returns a colormap with the given stops, which are sorted by offset. At least one stop is required.
func NewColorMap(name string, stops ...Stop) (*ColorMap, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("colormap %q has no stops", name)
	}
	stops = append([]Stop{}, stops...)
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })
	for _, stop := range stops {
		if math.IsNaN(stop.Offset) || stop.Offset < 0.0 || 1.0 < stop.Offset {
			return nil, fmt.Errorf("colormap %q stop offset %v outside [0,1]", name, stop.Offset)
		}
	}
	return &ColorMap{Name: name, stops: stops}, nil
}

// UniformColorMap returns a colormap with the colors evenly spaced over [0,1].
func UniformColorMap(name string, cols ...Color) *ColorMap {
	stops := make([]Stop, len(cols))
	for i, col := range cols {
		stops[i] = Stop{float64(i) / float64(max(1, len(cols)-1)), col}
	}
	if len(stops) == 1 {
		stops = append(stops, Stop{1.0, cols[0]})
	}
	return &ColorMap{Name: name, stops: stops}
}

// Stops returns a copy of the stops.
func (cm *ColorMap) Stops() []Stop {
	return append([]Stop{}, cm.stops...)
}

// Map returns the color at t in [0,1]. NaN returns the bad color, transparent by default.
func (cm *ColorMap) Map(t float64) Color {
	if math.IsNaN(t) {
		return cm.bad
	} else if t < 0.0 && cm.under != nil {
		return *cm.under
	} else if 1.0 < t && cm.over != nil {
		return *cm.over
	}
	if t <= cm.stops[0].Offset {
		return cm.stops[0].Color
	} else if cm.stops[len(cm.stops)-1].Offset <= t {
		return cm.stops[len(cm.stops)-1].Color
	}
	i := sort.Search(len(cm.stops), func(i int) bool { return t < cm.stops[i].Offset })
	prev, next := cm.stops[i-1], cm.stops[i]
	if next.Offset == prev.Offset {
		return next.Color
	}
	return prev.Color.Lerp(next.Color, (t-prev.Offset)/(next.Offset-prev.Offset))
}

// Colors returns n colors sampled evenly over [0,1].
func (cm *ColorMap) Colors(n int) []Color {
	cols := make([]Color, n)
	for i := range cols {
		t := 0.5
		if 1 < n {
			t = float64(i) / float64(n-1)
		}
		cols[i] = cm.Map(t)
	}
	return cols
}

// Reversed returns the colormap traversed from 1 to 0.
func (cm *ColorMap) Reversed() *ColorMap {
	stops := make([]Stop, len(cm.stops))
	for i, stop := range cm.stops {
		stops[len(stops)-1-i] = Stop{1.0 - stop.Offset, stop.Color}
	}
	return &ColorMap{Name: cm.Name + "_r", stops: stops, under: cm.over, over: cm.under, bad: cm.bad}
}

// WithExtremes returns a copy of the colormap with colors for values below 0, above 1 and NaN.
func (cm *ColorMap) WithExtremes(under, over, bad Color) *ColorMap {
	r := *cm
	r.under, r.over, r.bad = &under, &over, bad
	return &r
}

func mustColorMap(name string, stops ...Stop) *ColorMap {
	cm, err := NewColorMap(name, stops...)
	if err != nil {
		panic(err)
	}
	return cm
}

func hexStops(hexes ...uint32) []Stop {
	stops := make([]Stop, len(hexes))
	for i, h := range hexes {
		stops[i] = Stop{float64(i) / float64(len(hexes)-1), Hex(h)}
	}
	return stops
}

// Built-in colormaps.
var (
	RedYellow   = mustColorMap("redyellow", Stop{0.0, RGBf(1, 0, 0)}, Stop{1.0, RGBf(1, 1, 0)})
	BlueOrange  = mustColorMap("blueorange", Stop{0.0, RGBf(0, 0, 1)}, Stop{1.0, RGBf(1, 0.5, 0)})
	VioletWhite = mustColorMap("violetwhite", Stop{0.0, RGBf(0.5, 0, 1)}, Stop{1.0, RGBf(1, 1, 1)})
	GrayMap     = mustColorMap("gray", Stop{0.0, Black}, Stop{1.0, White})
	Viridis     = mustColorMap("viridis", hexStops(0x440154, 0x482878, 0x3e4989, 0x31688e, 0x26828e, 0x1f9e89, 0x35b779, 0x6ece58, 0xfde725)...)
	Magma       = mustColorMap("magma", hexStops(0x000004, 0x1c1044, 0x4f127b, 0x812581, 0xb5367a, 0xe55964, 0xfb8761, 0xfec287, 0xfcfdbf)...)
	CoolWarm    = mustColorMap("coolwarm", hexStops(0x3b4cc0, 0x7b9ff9, 0xc0d4f5, 0xdddddd, 0xf2cbb7, 0xee8468, 0xb40426)...)
	RdBu        = mustColorMap("rdbu", hexStops(0x67001f, 0xd6604d, 0xfddbc7, 0xf7f7f7, 0xd1e5f0, 0x4393c3, 0x053061)...)
)

var colormaps = map[string]func() *ColorMap{
	"redyellow":   func() *ColorMap { return RedYellow },
	"blueorange":  func() *ColorMap { return BlueOrange },
	"violetwhite": func() *ColorMap { return VioletWhite },
	"gray":        func() *ColorMap { return GrayMap },
	"viridis":     func() *ColorMap { return Viridis },
	"magma":       func() *ColorMap { return Magma },
	"coolwarm":    func() *ColorMap { return CoolWarm },
	"rdbu":        func() *ColorMap { return RdBu },
	"bluered":     func() *ColorMap { return FromGonum("bluered", moreland.SmoothBlueRed(), 33) },
	"blackbody":   func() *ColorMap { return FromGonum("blackbody", moreland.BlackBody(), 33) },
	"kindlmann":   func() *ColorMap { return FromGonum("kindlmann", moreland.Kindlmann(), 33) },
}

// ColorMapByName returns a built-in colormap, a "_r" suffix returns it reversed.
func ColorMapByName(name string) (*ColorMap, error) {
	key := normalizeName(name)
	reversed := false
	if 2 < len(key) && key[len(key)-1] == 'r' {
		if _, ok := colormaps[key]; !ok {
			if _, ok := colormaps[key[:len(key)-1]]; ok {
				key, reversed = key[:len(key)-1], true
			}
		}
	}
	f, ok := colormaps[key]
	if !ok {
		return nil, fmt.Errorf("unknown colormap %q", name)
	}
	if reversed {
		return f().Reversed(), nil
	}
	return f(), nil
}

// FromGonum samples a gonum colormap at n evenly spaced stops.
func FromGonum(name string, cm palette.ColorMap, n int) *ColorMap {
	cm.SetMax(1.0)
	cm.SetMin(0.0)
	stops := make([]Stop, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		col, err := cm.At(t)
		if err != nil {
			continue
		}
		stops = append(stops, Stop{t, FromColor(col)})
	}
	if len(stops) == 0 {
		stops = append(stops, Stop{0.0, Black}, Stop{1.0, Black})
	}
	return &ColorMap{Name: name, stops: stops}
}

////////////////////////////////////////////////////////////////

// Norm maps data values onto [0,1] for a colormap.
type Norm interface {
	Normalize(v float64) float64
	Range() (vmin, vmax float64)
}

// LinearNorm maps [Min,Max] linearly onto [0,1].
type LinearNorm struct {
	Min, Max float64
}

func (n LinearNorm) Normalize(v float64) float64 {
	if n.Max == n.Min {
		return 0.5
	}
	return (v - n.Min) / (n.Max - n.Min)
}

func (n LinearNorm) Range() (float64, float64) {
	return n.Min, n.Max
}

// LogNorm maps [Min,Max] logarithmically onto [0,1], non-positive values map onto NaN.
type LogNorm struct {
	Min, Max float64
}

func (n LogNorm) Normalize(v float64) float64 {
	if v <= 0.0 || n.Min <= 0.0 {
		return math.NaN()
	} else if n.Max == n.Min {
		return 0.5
	}
	return (math.Log(v) - math.Log(n.Min)) / (math.Log(n.Max) - math.Log(n.Min))
}

func (n LogNorm) Range() (float64, float64) {
	return n.Min, n.Max
}

// Autoscale returns a linear norm spanning the finite values.
func Autoscale(values []float32) LinearNorm {
	vmin, vmax := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if f := float64(v); !math.IsNaN(f) && !math.IsInf(f, 0) {
			vmin, vmax = math.Min(vmin, f), math.Max(vmax, f)
		}
	}
	if vmax < vmin {
		return LinearNorm{0.0, 1.0}
	}
	return LinearNorm{vmin, vmax}
}

// Mapper combines a colormap and a norm.
type Mapper struct {
	Map  *ColorMap
	Norm Norm
}

// Color returns the color for data value v.
func (m Mapper) Color(v float64) Color {
	return m.Map.Map(m.Norm.Normalize(v))
}

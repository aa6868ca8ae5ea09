package axis

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/scale"
)

// Locator returns tick positions within [lo, hi] in increasing order. Delta is the step between major ticks used to
// format their labels, it is zero when ticks are not evenly spaced.
type Locator interface {
	Ticks(lo, hi float64) (major, minor []float64)
	Delta(major []float64) float64
}

// mantissas of the linear tick steps, level 4k+i has step mantissas[i]·10^k
var mantissas = [4]float64{1.0, 2.0, 2.5, 5.0}

// minor subdivisions of a major step per mantissa
var subdivisions = [4]int{5, 4, 5, 5}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// levelStep returns the mantissa index and the exponent of a level.
func levelStep(level int) (int, int) {
	k := floorDiv(level, 4)
	return level - 4*k, k
}

// multiple returns i·m·10^k with the least rounding error.
func multiple(i int, m float64, k int) float64 {
	if k < 0 {
		return float64(i) * m / math.Pow(10.0, float64(-k))
	}
	return float64(i) * m * math.Pow(10.0, float64(k))
}

// stepRange returns the range of integers i such that i·step is within [lo, hi].
func stepRange(lo, hi float64, m float64, k int) (int, int) {
	step := multiple(1, m, k)
	eps := 1e-9 * step
	return int(math.Ceil((lo - eps) / step)), int(math.Floor((hi + eps) / step))
}

// levelTicker counts and places the multiples of the step of each level within [lo, hi].
type levelTicker struct {
	lo, hi float64
}

func (t levelTicker) CountTicks(level int) int {
	i, k := levelStep(level)
	i0, i1 := stepRange(t.lo, t.hi, mantissas[i], k)
	return max(0, i1-i0+1)
}

func (t levelTicker) TicksAtLevel(level int) interface{} {
	return t.ticks(level)
}

func (t levelTicker) ticks(level int) []float64 {
	i, k := levelStep(level)
	i0, i1 := stepRange(t.lo, t.hi, mantissas[i], k)
	major := make([]float64, 0, max(0, i1-i0+1))
	for j := i0; j <= i1; j++ {
		major = append(major, multiple(j, mantissas[i], k))
	}
	return major
}

// LinearLocator places ticks at multiples of a step s ∈ {1, 2, 2.5, 5}·10^k. The largest step is chosen that leaves
// at least MinTicks and at most MaxTicks ticks within the range. When no step satisfies both, the step is decreased
// until there are at least MinTicks.
type LinearLocator struct {
	MaxTicks, MinTicks int
	Minor              bool
}

// DefaultLinear returns the default linear locator of 3 to 9 ticks with minor ticks.
func DefaultLinear() LinearLocator {
	return LinearLocator{MaxTicks: 9, MinTicks: 3, Minor: true}
}

// Level returns the tick level for a range, ok is false for an empty or non-finite range.
func (l LinearLocator) Level(lo, hi float64) (int, bool) {
	if !(lo < hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, false
	}
	maxTicks, minTicks := l.MaxTicks, l.MinTicks
	if maxTicks <= 0 {
		maxTicks = 9
	}
	if minTicks <= 0 || maxTicks < minTicks {
		minTicks = min(3, maxTicks)
	}

	t := levelTicker{lo, hi}
	guess := 4 * int(math.Floor(math.Log10((hi-lo)/float64(maxTicks))))
	opts := scale.TickOptions{Max: maxTicks}
	level, ok := opts.FindLevel(t, guess)
	if !ok {
		return 0, false
	}
	// level has the smallest step within MaxTicks, counts decrease with the level
	if minTicks <= t.CountTicks(level) {
		for n := 0; minTicks <= t.CountTicks(level+1) && n < 64; n++ {
			level++
		}
		return level, true
	}
	for n := 0; t.CountTicks(level) < minTicks && n < 8; n++ {
		level--
	}
	return level, true
}

func (l LinearLocator) Ticks(lo, hi float64) ([]float64, []float64) {
	level, ok := l.Level(lo, hi)
	if !ok {
		if lo == hi && !math.IsNaN(lo) && !math.IsInf(lo, 0) {
			return []float64{lo}, nil
		}
		return nil, nil
	}
	major := levelTicker{lo, hi}.ticks(level)

	var minor []float64
	if l.Minor {
		i, k := levelStep(level)
		n := subdivisions[i]
		m := mantissas[i] / float64(n)
		j0, j1 := stepRange(lo, hi, m, k)
		for j := j0; j <= j1; j++ {
			if j%n != 0 {
				minor = append(minor, multiple(j, m, k))
			}
		}
	}
	return major, minor
}

func (l LinearLocator) Delta(major []float64) float64 {
	return evenDelta(major)
}

func evenDelta(major []float64) float64 {
	if len(major) < 2 {
		if len(major) == 1 && major[0] != 0.0 {
			return math.Abs(major[0])
		}
		return 1.0
	}
	return major[1] - major[0]
}

// MaxN returns a linear locator of at most n ticks.
func MaxN(n int) LinearLocator {
	return LinearLocator{MaxTicks: n, MinTicks: min(3, n), Minor: true}
}

////////////////////////////////////////////////////////////////

// LogLocator places major ticks at integer powers of the base and minor ticks at 2, 3, … base-1 times each power.
// When there are more than MaxTicks decades only every n-th decade gets a tick, and minor ticks are dropped.
type LogLocator struct {
	Base     float64
	Minor    bool
	MaxTicks int
}

func (l LogLocator) Ticks(lo, hi float64) ([]float64, []float64) {
	base := l.Base
	if base <= 1.0 {
		base = 10.0
	}
	maxTicks := l.MaxTicks
	if maxTicks <= 0 {
		maxTicks = 9
	}
	if hi <= 0.0 || !(lo <= hi) {
		return nil, nil
	} else if lo <= 0.0 {
		lo = hi * 1e-6
	}

	logb := math.Log(base)
	eps := 1e-9
	k0 := int(math.Ceil(math.Log(lo)/logb - eps))
	k1 := int(math.Floor(math.Log(hi)/logb + eps))
	stride := 1
	if n := k1 - k0 + 1; maxTicks < n {
		stride = (n + maxTicks - 1) / maxTicks
	}

	var major []float64
	for k := floorDiv(k0+stride-1, stride) * stride; k <= k1; k += stride {
		major = append(major, math.Pow(base, float64(k)))
	}

	var minor []float64
	if l.Minor && stride == 1 && base == math.Trunc(base) {
		for k := k0 - 1; k <= k1; k++ {
			p := math.Pow(base, float64(k))
			for m := 2; m < int(base); m++ {
				if v := float64(m) * p; lo*(1.0-eps) <= v && v <= hi*(1.0+eps) {
					minor = append(minor, v)
				}
			}
		}
	}
	return major, minor
}

// Delta is zero since log ticks are not evenly spaced.
func (l LogLocator) Delta(major []float64) float64 {
	return 0.0
}

////////////////////////////////////////////////////////////////

// SymLogLocator places ticks at zero, at ±LinThresh and at the powers of the base beyond it.
type SymLogLocator struct {
	Base, LinThresh float64
	MaxTicks        int
}

func (l SymLogLocator) Ticks(lo, hi float64) ([]float64, []float64) {
	if !(lo <= hi) {
		return nil, nil
	}
	base, thresh := l.Base, l.LinThresh
	if base <= 1.0 {
		base = 10.0
	}
	if thresh <= 0.0 {
		thresh = 1.0
	}
	maxTicks := l.MaxTicks
	if maxTicks <= 0 {
		maxTicks = 9
	}

	var ticks []float64
	if lo <= 0.0 && 0.0 <= hi {
		ticks = append(ticks, 0.0)
	}
	k0 := int(math.Floor(math.Log(thresh) / math.Log(base)))
	limit := math.Max(math.Abs(lo), math.Abs(hi))
	for k := k0; math.Pow(base, float64(k)) <= limit*(1.0+1e-9); k++ {
		v := math.Pow(base, float64(k))
		if v < thresh*(1.0-1e-9) {
			continue
		}
		if lo <= v && v <= hi {
			ticks = append(ticks, v)
		}
		if lo <= -v && -v <= hi {
			ticks = append(ticks, -v)
		}
	}
	sort.Float64s(ticks)
	if maxTicks < len(ticks) {
		stride := (len(ticks) + maxTicks - 1) / maxTicks
		thinned := ticks[:0]
		for i := 0; i < len(ticks); i += stride {
			thinned = append(thinned, ticks[i])
		}
		ticks = thinned
	}
	return ticks, nil
}

func (l SymLogLocator) Delta(major []float64) float64 {
	return 0.0
}

////////////////////////////////////////////////////////////////

// IndexLocator places ticks at fixed positions, such as the categories of a bar chart.
type IndexLocator struct {
	Positions []float64
}

// Index returns a locator at the given positions.
func Index(positions ...float64) IndexLocator {
	ps := append([]float64{}, positions...)
	sort.Float64s(ps)
	return IndexLocator{ps}
}

func (l IndexLocator) Ticks(lo, hi float64) ([]float64, []float64) {
	var major []float64
	for _, p := range l.Positions {
		if lo <= p && p <= hi {
			major = append(major, p)
		}
	}
	return major, nil
}

func (l IndexLocator) Delta(major []float64) float64 {
	return evenDelta(major)
}

// FixedLocator places ticks at multiples of Step shifted by Offset.
type FixedLocator struct {
	Step, Offset float64
}

func (l FixedLocator) Ticks(lo, hi float64) ([]float64, []float64) {
	if l.Step <= 0.0 || !(lo <= hi) || 1e4 < (hi-lo)/l.Step {
		return nil, nil
	}
	var major []float64
	i0 := int(math.Ceil((lo - l.Offset) / l.Step))
	for i := i0; ; i++ {
		v := l.Offset + float64(i)*l.Step
		if hi < v {
			break
		}
		major = append(major, v)
	}
	return major, nil
}

func (l FixedLocator) Delta(major []float64) float64 {
	return l.Step
}

// NoLocator places no ticks.
type NoLocator struct{}

func (NoLocator) Ticks(lo, hi float64) ([]float64, []float64) { return nil, nil }
func (NoLocator) Delta(major []float64) float64               { return 0.0 }

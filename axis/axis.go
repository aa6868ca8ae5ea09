package axis

import (
	"math"
)

// Grid selects which ticks get grid lines.
type Grid uint8

// Grid policies.
const (
	GridNone Grid = iota
	GridMajor
	GridBoth
)

// TickDirection is the side of the spine on which ticks are drawn.
type TickDirection uint8

// Tick directions.
const (
	TicksOut TickDirection = iota
	TicksIn
	TicksInOut
)

// DefaultMargin is the fraction of the data range added on both sides when autoscaling.
const DefaultMargin = 0.05

// Tick is a tick position and its label, minor ticks have no label.
type Tick struct {
	Value float64
	Label string
	Minor bool
}

// Axis is a one-dimensional view onto data: a range, a scale, and how ticks are placed and labeled.
type Axis struct {
	Scale     Scale
	Locator   Locator // nil uses the locator of the scale
	Formatter Formatter
	Label     string

	Visible    bool
	TickLabels bool
	Grid       Grid
	TickDir    TickDirection
	TickLength float64
	Inverted   bool
	Margin     float64
	Tight      bool // autoscale without margin

	lo, hi    float64 // view range
	fixed     bool    // range set by the user, not by autoscale
	home      [2]float64
	homeFixed bool

	dataLo, dataHi float64
}

// New returns a visible linear axis with the default locator and formatter on [0, 1].
func New() *Axis {
	return &Axis{
		Scale:      Linear{},
		Formatter:  Default{},
		Visible:    true,
		TickLabels: true,
		TickLength: 4.0,
		Margin:     DefaultMargin,
		lo:         0.0,
		hi:         1.0,
		dataLo:     math.Inf(1),
		dataHi:     math.Inf(-1),
	}
}

// Limits returns the view range.
func (a *Axis) Limits() (float64, float64) {
	return a.lo, a.hi
}

// Fixed returns true if the range was set explicitly.
func (a *Axis) Fixed() bool {
	return a.fixed
}

// SetLimits fixes the view range, autoscaling no longer changes it. Reversed limits invert the axis.
func (a *Axis) SetLimits(lo, hi float64) {
	if hi < lo {
		lo, hi = hi, lo
		a.Inverted = !a.Inverted
	}
	a.lo, a.hi, a.fixed = lo, hi, true
	a.home, a.homeFixed = [2]float64{lo, hi}, true
}

// ClearLimits returns the range to autoscaling.
func (a *Axis) ClearLimits() {
	a.fixed, a.homeFixed = false, false
	a.Autoscale(a.dataLo, a.dataHi)
}

func (a *Axis) scale() Scale {
	if a.Scale == nil {
		return Linear{}
	}
	return a.Scale
}

// Autoscale sets the view range to the data range extended by the margin in scale space, or without margin for a
// tight axis. A fixed range is left alone. Degenerate data are widened around the value and missing data give [0, 1].
func (a *Axis) Autoscale(lo, hi float64) {
	a.dataLo, a.dataHi = lo, hi
	if a.fixed {
		return
	}
	s := a.scale()
	if !(lo <= hi) || !s.Valid(lo) || !s.Valid(hi) {
		if _, ok := s.(Log); ok {
			a.lo, a.hi = 1.0, 10.0
		} else {
			a.lo, a.hi = 0.0, 1.0
		}
		a.home = [2]float64{a.lo, a.hi}
		return
	}

	flo, fhi := s.Forward(lo), s.Forward(hi)
	if flo == fhi {
		d := 0.5
		if flo != 0.0 {
			d = math.Abs(flo) * DefaultMargin
		}
		flo, fhi = flo-d, fhi+d
	} else if !a.Tight {
		m := a.Margin * (fhi - flo)
		flo, fhi = flo-m, fhi+m
	}
	a.lo, a.hi = s.Inverse(flo), s.Inverse(fhi)
	a.home = [2]float64{a.lo, a.hi}
}

// DataRange returns the range of the data last passed to Autoscale.
func (a *Axis) DataRange() (float64, float64) {
	return a.dataLo, a.dataHi
}

// Normalize maps a value to its position along the axis, 0 at the start and 1 at the end of the view.
func (a *Axis) Normalize(v float64) float64 {
	s := a.scale()
	flo, fhi := s.Forward(a.lo), s.Forward(a.hi)
	t := 0.5
	if fhi != flo {
		t = (s.Forward(v) - flo) / (fhi - flo)
	}
	if a.Inverted {
		t = 1.0 - t
	}
	return t
}

// Denormalize is the inverse of Normalize.
func (a *Axis) Denormalize(t float64) float64 {
	if a.Inverted {
		t = 1.0 - t
	}
	s := a.scale()
	flo, fhi := s.Forward(a.lo), s.Forward(a.hi)
	return s.Inverse(flo + t*(fhi-flo))
}

// Zoom scales the view about the position t along the axis, factors below one zoom in.
func (a *Axis) Zoom(factor, t float64) {
	if factor <= 0.0 || math.IsNaN(factor) {
		return
	}
	if a.Inverted {
		t = 1.0 - t
	}
	s := a.scale()
	flo, fhi := s.Forward(a.lo), s.Forward(a.hi)
	c := flo + t*(fhi-flo)
	a.setView(s, c+(flo-c)*factor, c+(fhi-c)*factor)
}

// Pan shifts the view by a fraction of its length.
func (a *Axis) Pan(dt float64) {
	if a.Inverted {
		dt = -dt
	}
	s := a.scale()
	flo, fhi := s.Forward(a.lo), s.Forward(a.hi)
	d := dt * (fhi - flo)
	a.setView(s, flo+d, fhi+d)
}

func (a *Axis) setView(s Scale, flo, fhi float64) {
	lo, hi := s.Inverse(flo), s.Inverse(fhi)
	if !(lo < hi) || !s.Valid(lo) || !s.Valid(hi) {
		return
	}
	a.lo, a.hi, a.fixed = lo, hi, true
}

// SetView sets the view range without fixing it, the next autoscale replaces it.
func (a *Axis) SetView(lo, hi float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	a.lo, a.hi = lo, hi
}

// Span returns the length of the view in scale space.
func (a *Axis) Span() float64 {
	s := a.scale()
	return s.Forward(a.hi) - s.Forward(a.lo)
}

// Expand multiplies the length of the view in scale space by f about its center. Whether the range is fixed stays
// unchanged.
func (a *Axis) Expand(f float64) {
	if f <= 0.0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	s := a.scale()
	flo, fhi := s.Forward(a.lo), s.Forward(a.hi)
	c, d := (flo+fhi)/2.0, (fhi-flo)/2.0*f
	lo, hi := s.Inverse(c-d), s.Inverse(c+d)
	if lo < hi && s.Valid(lo) && s.Valid(hi) {
		a.lo, a.hi = lo, hi
	}
}

// Reset undoes zooming and panning.
func (a *Axis) Reset() {
	a.lo, a.hi = a.home[0], a.home[1]
	a.fixed = a.homeFixed
	if !a.fixed {
		a.Autoscale(a.dataLo, a.dataHi)
	}
}

func (a *Axis) locator() Locator {
	if a.Locator != nil {
		return a.Locator
	}
	return a.scale().Locator()
}

// Ticks returns the labeled major ticks and the minor ticks within the view.
func (a *Axis) Ticks() []Tick {
	major, minor := a.locator().Ticks(a.lo, a.hi)
	delta := a.locator().Delta(major)
	f := a.Formatter
	if f == nil {
		if s, ok := a.scale().(Log); ok {
			f = LogFormatter{s.base()}
		} else {
			f = Default{}
		}
	} else if _, ok := f.(Default); ok {
		if s, ok := a.scale().(Log); ok {
			f = LogFormatter{s.base()}
		}
	}

	ticks := make([]Tick, 0, len(major)+len(minor))
	for _, v := range major {
		label := ""
		if a.TickLabels {
			label = f.Format(v, delta)
		}
		ticks = append(ticks, Tick{Value: v, Label: label})
	}
	for _, v := range minor {
		ticks = append(ticks, Tick{Value: v, Minor: true})
	}
	return ticks
}

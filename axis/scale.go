// Package axis implements one-dimensional axes: scales that map data values onto a linear space, tick locators that
// choose tick positions, tick formatters that label them, and the Axis model that combines them with a view range.
package axis

import (
	"fmt"
	"math"
)

// Scale maps data values to a space in which the axis is linear.
type Scale interface {
	Forward(v float64) float64
	Inverse(v float64) float64

	// Valid returns false for values that cannot be mapped, such as non-positive values on a log scale.
	Valid(v float64) bool

	// Locator returns the default locator of the scale.
	Locator() Locator
	String() string
}

// Linear is the identity scale.
type Linear struct{}

func (Linear) Forward(v float64) float64 { return v }
func (Linear) Inverse(v float64) float64 { return v }
func (Linear) Valid(v float64) bool      { return !math.IsNaN(v) && !math.IsInf(v, 0) }
func (Linear) Locator() Locator          { return DefaultLinear() }
func (Linear) String() string            { return "linear" }

// Log is a logarithmic scale of a base, which defaults to 10.
type Log struct {
	Base float64
}

func (s Log) base() float64 {
	if s.Base <= 1.0 {
		return 10.0
	}
	return s.Base
}

func (s Log) Forward(v float64) float64 {
	if v <= 0.0 {
		return math.NaN()
	}
	return math.Log(v) / math.Log(s.base())
}

func (s Log) Inverse(v float64) float64 {
	return math.Pow(s.base(), v)
}

func (s Log) Valid(v float64) bool {
	return 0.0 < v && !math.IsInf(v, 0)
}

func (s Log) Locator() Locator {
	return LogLocator{Base: s.base(), Minor: true}
}

func (s Log) String() string {
	return fmt.Sprintf("log%g", s.base())
}

// SymLog is linear within [-LinThresh, LinThresh] and logarithmic outside, it maps negative values as well.
type SymLog struct {
	Base      float64
	LinThresh float64
}

func (s SymLog) params() (float64, float64) {
	base, thresh := s.Base, s.LinThresh
	if base <= 1.0 {
		base = 10.0
	}
	if thresh <= 0.0 {
		thresh = 1.0
	}
	return base, thresh
}

func (s SymLog) Forward(v float64) float64 {
	base, thresh := s.params()
	if math.Abs(v) <= thresh {
		return v / thresh
	}
	return math.Copysign(1.0+math.Log(math.Abs(v)/thresh)/math.Log(base), v)
}

func (s SymLog) Inverse(v float64) float64 {
	base, thresh := s.params()
	if math.Abs(v) <= 1.0 {
		return v * thresh
	}
	return math.Copysign(thresh*math.Pow(base, math.Abs(v)-1.0), v)
}

func (s SymLog) Valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s SymLog) Locator() Locator {
	base, thresh := s.params()
	return SymLogLocator{Base: base, LinThresh: thresh}
}

func (s SymLog) String() string {
	base, thresh := s.params()
	return fmt.Sprintf("symlog%g(%g)", base, thresh)
}

// ParseScale returns the scale by name: "linear", "log", "log2", "ln" or "symlog".
func ParseScale(name string) (Scale, error) {
	switch name {
	case "", "linear":
		return Linear{}, nil
	case "log", "log10":
		return Log{10.0}, nil
	case "log2":
		return Log{2.0}, nil
	case "ln":
		return Log{math.E}, nil
	case "symlog":
		return SymLog{10.0, 1.0}, nil
	}
	return nil, fmt.Errorf("unknown scale %q", name)
}

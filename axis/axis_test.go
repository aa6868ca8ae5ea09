package axis

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestFormatTick(t *testing.T) {
	var tests = []struct {
		v, delta float64
		label    string
	}{
		{0.2, 0.2, "0.2"},
		{0.19999, 0.2, "0.2"},
		{0.25, 0.25, "0.25"},
		{1000.0, 200.0, "1000"},
		{0.0, 0.5, "0.0"},
		{-0.0, 1.0, "0"},
		{-1e-17, 0.1, "0.0"},
		{2.5, 0.5, "2.5"},
		{1.5, 0.25, "1.50"},
		{0.05, 0.0995, "0.05"},
		{12345.0, 5000.0, "12345"},
		{0.025, 0.025, "0.025"},
		{7.5, 2.5, "7.5"},
		{math.NaN(), 1.0, "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			test.String(t, FormatTick(tt.v, tt.delta), tt.label)
		})
	}
}

func TestFormatterDistinct(t *testing.T) {
	for _, delta := range []float64{0.001, 0.0995, 0.2, 0.25, 0.3, 1.0, 2.5, 7.0, 200.0} {
		for _, v := range []float64{-1.0, 0.0, 0.05, 0.1234, 1.0, 3.7, 1000.0} {
			a, b := FormatTick(v, delta), FormatTick(v+delta, delta)
			test.That(t, a != b, v, delta, a, b)
		}
	}
}

func TestPrecision(t *testing.T) {
	test.T(t, Precision(1.0), 0)
	test.T(t, Precision(0.1), 1)
	test.T(t, Precision(0.25), 2)
	test.T(t, Precision(10.0), 0)
	test.T(t, Precision(0.5), 1)
	test.T(t, Precision(200.0), 0)
	test.T(t, Precision(0.0), 0)
}

func TestLinearLocator(t *testing.T) {
	l := DefaultLinear()
	major, _ := l.Ticks(0.0, 3.0)
	test.T(t, major, []float64{0.0, 1.0, 2.0, 3.0})

	major, _ = l.Ticks(0.0, 10.0)
	test.T(t, major, []float64{0.0, 5.0, 10.0})

	major, _ = l.Ticks(0.0, 1.0)
	test.T(t, major, []float64{0.0, 0.5, 1.0})

	major, _ = l.Ticks(-3.0, 17.0)
	test.T(t, major, []float64{0.0, 5.0, 10.0, 15.0})

	major, _ = LinearLocator{MaxTicks: 9, MinTicks: 6}.Ticks(0.0, 10.0)
	test.T(t, major, []float64{0.0, 2.0, 4.0, 6.0, 8.0, 10.0})

	major, minor := l.Ticks(-0.15, 3.15)
	test.T(t, major[0], 0.0)
	test.T(t, major[len(major)-1], 3.0)
	test.That(t, 0 < len(minor))

	for _, r := range [][2]float64{{0, 1}, {0, 0.7}, {-3, 17}, {1e-6, 3e-6}, {123, 124}, {-1e9, 1e9}, {0.1, 0.35}, {5, 5.001}} {
		major, _ := l.Ticks(r[0], r[1])
		test.That(t, 3 <= len(major) && len(major) <= 9, r, len(major))
		for i := 1; i < len(major); i++ {
			test.That(t, major[i-1] < major[i])
		}
	}
}

func TestLinearLocatorStep(t *testing.T) {
	l := DefaultLinear()
	level, ok := l.Level(0.0, 1.0)
	test.That(t, ok)
	i, k := levelStep(level)
	test.Float(t, multiple(1, mantissas[i], k), 0.5)

	_, ok = l.Level(1.0, 1.0)
	test.That(t, !ok)
	major, _ := l.Ticks(1.0, 1.0)
	test.T(t, major, []float64{1.0})
}

func TestLogLocator(t *testing.T) {
	l := LogLocator{Base: 10.0, Minor: true}
	major, minor := l.Ticks(1.0, 1000.0)
	test.T(t, major, []float64{1.0, 10.0, 100.0, 1000.0})
	test.T(t, len(minor), 8*3)

	major, minor = l.Ticks(1e-10, 1e10)
	test.That(t, len(major) <= 9, len(major))
	test.T(t, len(minor), 0, "minor ticks dropped when decades are thinned")

	major, _ = l.Ticks(-1.0, 100.0)
	test.T(t, major[len(major)-1], 100.0)
}

func TestSymLogLocator(t *testing.T) {
	major, _ := SymLogLocator{Base: 10.0, LinThresh: 1.0}.Ticks(-100.0, 100.0)
	test.T(t, major, []float64{-100.0, -10.0, -1.0, 0.0, 1.0, 10.0, 100.0})
}

func TestIndexFixed(t *testing.T) {
	major, _ := Index(3, 1, 2, 10).Ticks(0.5, 5.0)
	test.T(t, major, []float64{1.0, 2.0, 3.0})

	major, _ = FixedLocator{Step: 0.5, Offset: 0.25}.Ticks(0.0, 1.5)
	test.T(t, major, []float64{0.25, 0.75, 1.25})

	major, _ = MaxN(4).Ticks(0.0, 10.0)
	test.That(t, len(major) <= 4, major)
}

func TestScales(t *testing.T) {
	for _, s := range []Scale{Linear{}, Log{10}, Log{2}, SymLog{10, 1}} {
		for _, v := range []float64{0.5, 1.0, 3.0, 250.0} {
			test.Float(t, s.Inverse(s.Forward(v)), v, s.String())
		}
	}
	test.Float(t, SymLog{10, 1}.Forward(-100.0), -3.0)
	test.That(t, math.IsNaN(Log{10}.Forward(-1.0)))

	s, err := ParseScale("log2")
	test.Error(t, err)
	test.T(t, s, Scale(Log{2.0}))
	_, err = ParseScale("cubic")
	test.That(t, err != nil)
}

func TestFormatters(t *testing.T) {
	test.String(t, LogFormatter{10}.Format(1000.0, 0.0), "10^{3}")
	test.String(t, LogFormatter{10}.Format(1.0, 0.0), "1")
	test.String(t, LogFormatter{10}.Format(0.01, 0.0), "10^{-2}")
	test.String(t, Percent{}.Format(0.25, 0.25), "25%")
	test.String(t, Labels{"a", "b"}.Format(1.0, 1.0), "b")
	test.String(t, Labels{"a", "b"}.Format(1.5, 1.0), "")
	test.String(t, Func(func(v float64) string { return "x" }).Format(1.0, 1.0), "x")
	test.String(t, Default{}.Format(2e7, 1e7), "2×10^{7}")
	test.String(t, Default{}.Format(1e7, 1e7), "10^{7}")

	loc, err := NewLocale("en")
	test.Error(t, err)
	test.String(t, loc.Format(12000.0, 2000.0), "12,000")
	de, err := NewLocale("de")
	test.Error(t, err)
	test.String(t, de.Format(1.5, 0.5), "1,5")
	_, err = NewLocale("??")
	test.That(t, err != nil)
}

func TestAxisAutoscale(t *testing.T) {
	a := New()
	a.Autoscale(0.0, 10.0)
	lo, hi := a.Limits()
	test.Float(t, lo, -0.5)
	test.Float(t, hi, 10.5)

	a.Autoscale(2.0, 2.0)
	lo, hi = a.Limits()
	test.That(t, lo < 2.0 && 2.0 < hi)

	a.Autoscale(math.Inf(1), math.Inf(-1))
	lo, hi = a.Limits()
	test.T(t, [2]float64{lo, hi}, [2]float64{0.0, 1.0}, "no data")

	a.SetLimits(0.0, 5.0)
	a.Autoscale(-100.0, 100.0)
	lo, hi = a.Limits()
	test.T(t, [2]float64{lo, hi}, [2]float64{0.0, 5.0}, "fixed")

	a.ClearLimits()
	lo, _ = a.Limits()
	test.Float(t, lo, -110.0)

	a.Tight = true
	a.Autoscale(1.0, 2.0)
	lo, hi = a.Limits()
	test.T(t, [2]float64{lo, hi}, [2]float64{1.0, 2.0}, "tight")
}

func TestAxisNormalize(t *testing.T) {
	a := New()
	a.SetLimits(0.0, 10.0)
	test.Float(t, a.Normalize(2.5), 0.25)
	test.Float(t, a.Denormalize(0.25), 2.5)
	a.Inverted = true
	test.Float(t, a.Normalize(2.5), 0.75)

	b := New()
	b.Scale = Log{10}
	b.SetLimits(1.0, 100.0)
	test.Float(t, b.Normalize(10.0), 0.5)
	test.Float(t, b.Denormalize(0.5), 10.0)
}

func TestAxisZoomPan(t *testing.T) {
	a := New()
	a.Autoscale(0.0, 10.0)
	a.Zoom(0.5, 0.5)
	lo, hi := a.Limits()
	test.Float(t, lo, 2.25)
	test.Float(t, hi, 7.75)

	a.Pan(0.1)
	lo, _ = a.Limits()
	test.Float(t, lo, 2.8)

	a.Reset()
	lo, hi = a.Limits()
	test.Float(t, lo, -0.5)
	test.Float(t, hi, 10.5)
}

func TestAxisTicks(t *testing.T) {
	a := New()
	a.SetLimits(0.0, 1.0)
	var labels []string
	for _, tick := range a.Ticks() {
		if !tick.Minor {
			labels = append(labels, tick.Label)
		}
	}
	test.T(t, labels, []string{"0.0", "0.5", "1.0"})

	a.Scale = Log{10}
	a.SetLimits(1.0, 100.0)
	major := 0
	for _, tick := range a.Ticks() {
		if !tick.Minor {
			major++
			test.That(t, tick.Label == "1" || tick.Label == "10^{1}" || tick.Label == "10^{2}", tick.Label)
		}
	}
	test.T(t, major, 3)
}

func TestAxisExpand(t *testing.T) {
	a := New()
	a.SetLimits(0.0, 10.0)
	a.Expand(2.0)
	lo, hi := a.Limits()
	test.Float(t, lo, -5.0)
	test.Float(t, hi, 15.0)
	test.That(t, a.Fixed())
	test.Float(t, a.Span(), 20.0)

	a.SetView(4.0, 2.0)
	lo, hi = a.Limits()
	test.Float(t, lo, 2.0)
	test.Float(t, hi, 4.0)

	a.Scale = Log{10}
	a.SetView(1.0, 100.0)
	a.Expand(2.0)
	lo, hi = a.Limits()
	test.Float(t, lo, 0.1)
	test.Float(t, hi, 1000.0)
}

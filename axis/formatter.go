package axis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders the label of a tick value, delta is the step between adjacent ticks or zero when unknown.
type Formatter interface {
	Format(v, delta float64) string
}

// FormatterFunc is a function used as formatter.
type FormatterFunc func(v, delta float64) string

func (f FormatterFunc) Format(v, delta float64) string {
	return f(v, delta)
}

// Func returns a formatter that ignores the step.
func Func(f func(float64) string) Formatter {
	return FormatterFunc(func(v, _ float64) string { return f(v) })
}

// maxPrecision bounds the number of fractional digits of labels.
const maxPrecision = 15

// Precision returns the number of fractional digits needed to tell apart ticks delta apart. The step is inflated by
// 1% to absorb floating point noise, and one digit is added for steps ending in a half digit such as 0.25.
func Precision(delta float64) int {
	delta = math.Abs(delta) * 1.01
	if delta == 0.0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return 0
	}
	p := max(0, -int(math.Floor(math.Log10(delta))))
	unit := math.Pow(10.0, -float64(p))
	r := math.Mod(delta, unit)
	if unit/2.0 < r {
		r = unit - r
	}
	if 0.0 < r {
		// bounds are exclusive, the epsilon keeps exact powers of ten out after inflation
		if lr := math.Log10(r); -2.0+1e-9 < lr && lr < -1.0-1e-9 {
			p++
		}
	}
	return min(p, maxPrecision)
}

// FormatTick renders v with the precision of Precision(delta), raised until the label is within 1% of delta of the
// value. Negative zero is rendered as zero.
func FormatTick(v, delta float64) string {
	if math.IsNaN(v) {
		return "NaN"
	} else if math.IsInf(v, 1) {
		return "∞"
	} else if math.IsInf(v, -1) {
		return "-∞"
	}
	p := Precision(delta)
	tol := 0.01 * math.Abs(delta)
	s := strconv.FormatFloat(v, 'f', p, 64)
	for 0.0 < tol && p < maxPrecision {
		if w, err := strconv.ParseFloat(s, 64); err == nil && math.Abs(w-v) <= tol {
			break
		}
		p++
		s = strconv.FormatFloat(v, 'f', p, 64)
	}
	return trimNegativeZero(s)
}

func trimNegativeZero(s string) string {
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}

// Default formats ticks with FormatTick, values of which the magnitude is at least 1e6 or below 1e-4 (when the step
// is as well) are written in scientific notation.
type Default struct{}

func (Default) Format(v, delta float64) string {
	a := math.Abs(v)
	if v != 0.0 && (1e6 <= a && 1e6 <= math.Abs(delta) || a < 1e-4 && 0.0 < delta && math.Abs(delta) < 1e-4) {
		return Scientific(v, delta)
	}
	return FormatTick(v, delta)
}

// Scientific renders v as m×10^{e} where the mantissa has the precision needed for the step.
func Scientific(v, delta float64) string {
	if v == 0.0 {
		return "0"
	}
	e := int(math.Floor(math.Log10(math.Abs(v))))
	if 10.0 <= math.Abs(v)/math.Pow(10.0, float64(e)) {
		e++
	}
	scale := math.Pow(10.0, float64(e))
	m := FormatTick(v/scale, delta/scale)
	if m == "1" {
		return fmt.Sprintf("10^{%d}", e)
	} else if m == "-1" {
		return fmt.Sprintf("-10^{%d}", e)
	}
	return fmt.Sprintf("%s×10^{%d}", m, e)
}

// LogFormatter labels integer powers of the base as base^{k} and other values by Default. Minor ticks are not labeled.
type LogFormatter struct {
	Base float64
}

func (f LogFormatter) Format(v, delta float64) string {
	base := f.Base
	if base <= 1.0 {
		base = 10.0
	}
	if v <= 0.0 {
		return Default{}.Format(v, delta)
	}
	k := math.Round(math.Log(v) / math.Log(base))
	if math.Abs(math.Pow(base, k)-v) <= 1e-9*v {
		name := strconv.FormatFloat(base, 'g', -1, 64)
		if base == math.E {
			name = "e"
		}
		if k == 0.0 {
			return "1"
		}
		return fmt.Sprintf("%s^{%d}", name, int(k))
	}
	return Default{}.Format(v, v)
}

// Labels labels ticks at integer positions from a list, such as the categories of a bar chart. Other positions get
// an empty label.
type Labels []string

func (l Labels) Format(v, _ float64) string {
	i := math.Round(v)
	if math.Abs(i-v) < 1e-9 && 0.0 <= i && int(i) < len(l) {
		return l[int(i)]
	}
	return ""
}

// Percent labels fractions as percentages, 0.25 is "25%".
type Percent struct{}

func (Percent) Format(v, delta float64) string {
	return FormatTick(100.0*v, 100.0*delta) + "%"
}

// Locale formats ticks with the precision of FormatTick and the digit grouping and decimal separator of a language.
type Locale struct {
	printer *message.Printer
}

// NewLocale returns a formatter for a language tag such as "de" or "en-US".
func NewLocale(tag string) (Locale, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return Locale{}, fmt.Errorf("locale %q: %w", tag, err)
	}
	return Locale{message.NewPrinter(t)}, nil
}

func (f Locale) Format(v, delta float64) string {
	if f.printer == nil {
		return FormatTick(v, delta)
	}
	s := FormatTick(v, delta)
	p := 0
	if i := strings.IndexByte(s, '.'); i != -1 {
		p = len(s) - i - 1
	}
	if w, err := strconv.ParseFloat(s, 64); err == nil {
		v = w
	}
	if v == 0.0 {
		v = 0.0 // drop the sign of negative zero
	}
	return f.printer.Sprintf(fmt.Sprintf("%%.%df", p), v)
}

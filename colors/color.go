// Package colors defines 32-bit sRGBA colors, palettes, color cycles and colormaps.
package colors

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"
)

// ErrColorParse is returned for color strings that cannot be parsed.
var ErrColorParse = errors.New("invalid color")

// Color is a non alpha-premultiplied sRGBA color with 8 bits per channel. Colors compare equal with ==.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color and returns alpha-premultiplied components.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{c.R, c.G, c.B, c.A}.RGBA()
}

// Hex returns the color encoded as 0xRRGGBB, alpha is given as 255.
func Hex(rgb uint32) Color {
	return Color{uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb), 0xff}
}

// HexA returns the color encoded as 0xRRGGBBAA.
func HexA(rgba uint32) Color {
	return Color{uint8(rgba >> 24), uint8(rgba >> 16), uint8(rgba >> 8), uint8(rgba)}
}

// RGB returns an opaque color with channels in [0,255].
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 0xff}
}

// RGBf returns an opaque color with channels in [0,1], values outside are clamped.
func RGBf(r, g, b float64) Color {
	return RGBAf(r, g, b, 1.0)
}

// RGBAf returns a color with channels in [0,1], values outside are clamped.
func RGBAf(r, g, b, a float64) Color {
	return Color{to8(r), to8(g), to8(b), to8(a)}
}

func to8(f float64) uint8 {
	if !(0.0 < f) {
		return 0
	} else if 1.0 <= f {
		return 255
	}
	return uint8(f*255.0 + 0.5)
}

// FromColor converts any color.Color.
func FromColor(col color.Color) Color {
	if c, ok := col.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// Floats returns the channels in [0,1].
func (c Color) Floats() (r, g, b, a float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0, float64(c.A) / 255.0
}

// Premultiplied returns the alpha-premultiplied color.
func (c Color) Premultiplied() color.RGBA {
	a := uint32(c.A)
	return color.RGBA{uint8(uint32(c.R) * a / 255), uint8(uint32(c.G) * a / 255), uint8(uint32(c.B) * a / 255), c.A}
}

// IsTransparent returns true if alpha is zero, such a color is not drawn.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// WithAlpha returns the color with alpha replaced by a in [0,1].
func (c Color) WithAlpha(a float64) Color {
	c.A = to8(a)
	return c
}

// MulAlpha returns the color with alpha multiplied by a in [0,1].
func (c Color) MulAlpha(a float64) Color {
	c.A = to8(float64(c.A) / 255.0 * a)
	return c
}

// Lerp interpolates linearly between the channels of c and d.
func (c Color) Lerp(d Color, t float64) Color {
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*(1.0-t) + float64(b)*t))
	}
	return Color{lerp(c.R, d.R), lerp(c.G, d.G), lerp(c.B, d.B), lerp(c.A, d.A)}
}

// BlendLab interpolates between c and d in CIE L*a*b*, alpha is interpolated linearly.
func (c Color) BlendLab(d Color, t float64) Color {
	cc, dc := c.colorful(), d.colorful()
	r, g, b := cc.BlendLab(dc, t).Clamped().RGB255()
	return Color{r, g, b, uint8(math.Round(float64(c.A)*(1.0-t) + float64(d.A)*t))}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

func fromColorful(cc colorful.Color, a uint8) Color {
	r, g, b := cc.Clamped().RGB255()
	return Color{r, g, b, a}
}

func hueNorm(h float64) float64 {
	h = math.Mod(h, 360.0)
	if h < 0.0 {
		h += 360.0
	}
	return h
}

// HSV returns an opaque color from hue in degrees [0,360), saturation and value in [0,1].
func HSV(h, s, v float64) Color {
	return fromColorful(colorful.Hsv(hueNorm(h), s, v), 0xff)
}

// HSVA returns a color from hue, saturation, value and alpha.
func HSVA(h, s, v, a float64) Color {
	return fromColorful(colorful.Hsv(hueNorm(h), s, v), to8(a))
}

// HSL returns an opaque color from hue in degrees [0,360), saturation and lightness in [0,1].
func HSL(h, s, l float64) Color {
	return fromColorful(colorful.Hsl(hueNorm(h), s, l), 0xff)
}

// HSV returns hue in degrees [0,360), saturation and value in [0,1].
func (c Color) HSV() (h, s, v float64) {
	return c.colorful().Hsv()
}

// HSL returns hue in degrees [0,360), saturation and lightness in [0,1].
func (c Color) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

// Luminance returns the relative luminance, used to pick legible text colors.
func (c Color) Luminance() float64 {
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// String returns the color as #rrggbb or #rrggbbaa.
func (c Color) String() string {
	if c.A == 0xff {
		return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B})
	}
	return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B, c.A})
}

////////////////////////////////////////////////////////////////

// Named colors used throughout the library.
var (
	Transparent = Color{}
	Black       = Hex(0x000000)
	White       = Hex(0xffffff)
	Red         = Hex(0xff0000)
	Green       = Hex(0x008000)
	Blue        = Hex(0x0000ff)
	Yellow      = Hex(0xffff00)
	Gray        = Hex(0x808080)
	LightGray   = Hex(0xd3d3d3)
	DarkGray    = Hex(0x404040)
)

// palette shorthand names, in addition to the CSS and X11 names
var shorthands = map[string]Color{
	"darkteal": Hex(0x00606b),
	"amber":    Hex(0xf5a623),
	"brick":    Hex(0xb03a2e),
	"slate":    Hex(0x5264b0),
	"moss":     Hex(0x6b8e23),
	"plum":     Hex(0x8e4585),
	"sand":     Hex(0xc2a878),
	"steel":    Hex(0x4682b4),
	"rose":     Hex(0xe0607e),
	"charcoal": Hex(0x36454f),
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// Named returns the color for a CSS/X11 name or a palette shorthand such as "dark teal". Names are case and space
// insensitive.
func Named(name string) (Color, bool) {
	key := normalizeName(name)
	if c, ok := shorthands[key]; ok {
		return c, true
	} else if key == "transparent" || key == "none" {
		return Transparent, true
	} else if c, ok := colornames.Map[key]; ok {
		return Color{c.R, c.G, c.B, c.A}, true
	}
	return Color{}, false
}

// MustParse is like Parse but panics on error, for color literals.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse parses #rgb, #rgba, #rrggbb, #rrggbbaa, 0xrrggbb, rgb(r,g,b), rgba(r,g,b,a) with channels in [0,255] and alpha
// in [0,1], or a color name.
func Parse(s string) (Color, error) {
	t := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(t, "#"):
		return parseHex(t[1:], s)
	case strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X"):
		return parseHex(t[2:], s)
	case strings.HasPrefix(strings.ToLower(t), "rgb"):
		return parseFunc(t, s)
	}
	if c, ok := Named(t); ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: unknown color %q", ErrColorParse, s)
}

func parseHex(h, orig string) (Color, error) {
	b, err := hex.DecodeString(expandShortHex(h))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrColorParse, orig)
	}
	switch len(b) {
	case 3:
		return Color{b[0], b[1], b[2], 0xff}, nil
	case 4:
		return Color{b[0], b[1], b[2], b[3]}, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrColorParse, orig)
}

func expandShortHex(h string) string {
	if len(h) != 3 && len(h) != 4 {
		return h
	}
	sb := strings.Builder{}
	for i := 0; i < len(h); i++ {
		sb.WriteByte(h[i])
		sb.WriteByte(h[i])
	}
	return sb.String()
}

func parseFunc(t, orig string) (Color, error) {
	open := strings.IndexByte(t, '(')
	if open == -1 || !strings.HasSuffix(t, ")") {
		return Color{}, fmt.Errorf("%w: %q", ErrColorParse, orig)
	}
	args := strings.Split(t[open+1:len(t)-1], ",")
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("%w: %q", ErrColorParse, orig)
	}
	var vals [4]float64
	vals[3] = 1.0
	for i, arg := range args {
		arg = strings.TrimSpace(arg)
		percent := strings.HasSuffix(arg, "%")
		arg = strings.TrimSuffix(arg, "%")
		f, n := strconv.ParseFloat([]byte(arg))
		if n == 0 || n != len(arg) {
			return Color{}, fmt.Errorf("%w: bad channel %q in %q", ErrColorParse, arg, orig)
		}
		if percent {
			f /= 100.0
			if i < 3 {
				f *= 255.0
			}
		}
		vals[i] = f
	}
	return RGBAf(vals[0]/255.0, vals[1]/255.0, vals[2]/255.0, vals[3]), nil
}

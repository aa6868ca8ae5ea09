package colors

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestParse(t *testing.T) {
	var tts = []struct {
		s   string
		col Color
	}{
		{"#f00", Color{255, 0, 0, 255}},
		{"#f008", Color{255, 0, 0, 0x88}},
		{"#1f77b4", Hex(0x1f77b4)},
		{"#1f77b480", HexA(0x1f77b480)},
		{"0x1f77b4", Hex(0x1f77b4)},
		{"rgb(255, 128, 0)", Color{255, 128, 0, 255}},
		{"rgba(0,0,255,0.5)", Color{0, 0, 255, 128}},
		{"rgb(100%, 0%, 50%)", Color{255, 0, 128, 255}},
		{"red", Red},
		{"Dark Teal", shorthands["darkteal"]},
		{"SteelBlue", Hex(0x4682b4)},
		{"transparent", Transparent},
	}
	for _, tt := range tts {
		t.Run(tt.s, func(t *testing.T) {
			col, err := Parse(tt.s)
			test.Error(t, err)
			test.T(t, col, tt.col)
		})
	}

	for _, s := range []string{"", "#12", "#ggg", "rgb(1,2)", "rgb(a,b,c)", "nocolor"} {
		_, err := Parse(s)
		test.That(t, errors.Is(err, ErrColorParse), s)
	}
}

func TestString(t *testing.T) {
	test.String(t, Hex(0x1f77b4).String(), "#1f77b4")
	test.String(t, HexA(0x1f77b480).String(), "#1f77b480")
}

func TestHSVRoundTrip(t *testing.T) {
	for _, col := range append(Tableau10, Black, White, Gray, Hex(0x010203)) {
		h, s, v := col.HSV()
		test.That(t, 0.0 <= h && h < 360.0, h)
		test.T(t, HSV(h, s, v), col)

		h, s, l := col.HSL()
		test.T(t, HSL(h, s, l), col)
	}
	test.T(t, HSV(-120.0, 1.0, 1.0), HSV(240.0, 1.0, 1.0))
	test.T(t, HSV(0.0, 1.0, 1.0), Red)
}

func TestPaletteGet(t *testing.T) {
	test.T(t, Tableau10.Get(0), Hex(0x1f77b4))
	test.T(t, Tableau10.Get(10), Hex(0x1f77b4))
	test.T(t, Tableau10.Get(-1), Hex(0x17becf))
	test.T(t, Palette{}.Get(3), Black)
}

func TestCycle(t *testing.T) {
	c := NewCycle(Dark)
	first := make([]Color, len(Dark))
	for i := range first {
		first[i] = c.Next()
	}
	for i := range first {
		test.T(t, c.Next(), first[i], "periodic")
	}
	test.T(t, c.Index(), 2*len(Dark))
	c.Reset()
	test.T(t, c.Next(), Dark[0])
}

func TestColorMap(t *testing.T) {
	test.T(t, RedYellow.Map(0.0), Color{255, 0, 0, 255})
	test.T(t, RedYellow.Map(1.0), Color{255, 255, 0, 255})
	test.T(t, RedYellow.Map(-5.0), Color{255, 0, 0, 255})
	test.T(t, RedYellow.Map(5.0), Color{255, 255, 0, 255})
	test.T(t, RedYellow.Map(0.5), Color{255, 128, 0, 255})
	test.T(t, RedYellow.Map(math.NaN()), Transparent)

	for _, name := range []string{"viridis", "magma", "gray", "coolwarm", "rdbu", "kindlmann", "blackbody", "bluered"} {
		cm, err := ColorMapByName(name)
		test.Error(t, err)
		stops := cm.Stops()
		test.T(t, cm.Map(0.0), stops[0].Color, name)
		test.T(t, cm.Map(1.0), stops[len(stops)-1].Color, name)
	}

	r, err := ColorMapByName("redyellow_r")
	test.Error(t, err)
	test.T(t, r.Map(0.0), RedYellow.Map(1.0))
	test.T(t, r.Map(1.0), RedYellow.Map(0.0))

	_, err = ColorMapByName("jet")
	test.That(t, err != nil)

	_, err = NewColorMap("empty")
	test.That(t, err != nil)

	cols := GrayMap.Colors(3)
	test.T(t, cols, []Color{Black, Hex(0x808080), White})
	test.T(t, len(Diverging(5)), 5)
}

func TestNorm(t *testing.T) {
	n := Autoscale([]float32{2, float32(math.NaN()), -2, float32(math.Inf(1))})
	test.Float(t, n.Min, -2.0)
	test.Float(t, n.Max, 2.0)
	test.Float(t, n.Normalize(0.0), 0.5)

	l := LogNorm{1.0, 100.0}
	test.Float(t, l.Normalize(10.0), 0.5)
	test.That(t, math.IsNaN(l.Normalize(-1.0)))

	m := Mapper{RedYellow, LinearNorm{0, 10}}
	test.T(t, m.Color(10), Color{255, 255, 0, 255})
}

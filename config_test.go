package figure

import (
	"errors"
	"strings"
	"testing"

	"github.com/tdewolff/figure/axis"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/test"
)

func TestLoadConfig(t *testing.T) {
	var tts = []struct {
		format string
		sheet  string
	}{
		{"toml", "font_size = 14.0\npalette = \"dark\"\ngrid = \"major\"\nlegend_anchor = \"lower left\"\n"},
		{"yaml", "font_size: 14\npalette: dark\ngrid: major\nlegend_anchor: lower left\n"},
	}
	for _, tt := range tts {
		t.Run(tt.format, func(t *testing.T) {
			cfg, err := LoadConfig(strings.NewReader(tt.sheet), tt.format)
			test.Error(t, err)
			d := cfg.Snapshot()
			test.Float(t, d.FontSize, 14.0)
			test.String(t, d.Palette, "dark")
			test.Float(t, d.LineWidth, 1.5, "missing settings keep their values")

			s := cfg.snapshot()
			test.T(t, s.palette.Get(0), colors.Dark[0])
			test.T(t, s.grid, axis.GridMajor)
			test.T(t, s.legend, LowerLeft)
			test.Float(t, s.theme.Text.Size, 14.0)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	var tts = []struct {
		format string
		sheet  string
	}{
		{"toml", "fontsize = 14.0\n"},
		{"toml", "palette = \"unknown\"\n"},
		{"yaml", "background: notacolor\n"},
		{"yaml", "tick_direction: sideways\n"},
		{"ini", "font_size = 14\n"},
	}
	for _, tt := range tts {
		t.Run(tt.sheet, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tt.sheet), tt.format)
			test.That(t, err != nil)
		})
	}

	_, err := LoadConfig(strings.NewReader("edge = \"#12\"\n"), "toml")
	test.That(t, errors.Is(err, colors.ErrColorParse))

	cfg, err := LoadConfig(strings.NewReader(""), "yaml")
	test.Error(t, err)
	test.T(t, cfg.Snapshot(), StandardDefaults())
}

func TestConfigUpdate(t *testing.T) {
	cfg := NewConfig(StandardDefaults())
	f := New(Size(200, 200), WithConfig(cfg))
	c := f.Chart()
	_, err := c.Plot([]float32{0, 1}, []float32{0, 1})
	test.Error(t, err)

	cfg.Update(func(d *Defaults) {
		d.LineWidth = 3.0
		d.Background = "black"
	})
	rec := render.NewRecorder(200, 200)
	f.Frame(rec)
	test.T(t, rec.Ops[0].Style.Face, colors.Black, "background of the next frame")
	test.Float(t, f.s.theme.LineWidth, 3.0)

	cfg.Update(func(d *Defaults) {
		d.Palette = "unknown"
	})
	f.Frame(rec)
	test.T(t, f.s.palette.Get(0), colors.Tableau10[0], "invalid settings fall back")

	var size float64
	cfg.Read(func(d Defaults) {
		size = d.FontSize
	})
	test.Float(t, size, 11.0)
}

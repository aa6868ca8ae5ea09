package figure

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/tdewolff/figure/artist"
	"github.com/tdewolff/figure/axis"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/style"
)

// Defaults are the settings that figures and charts start with. Colors are given as strings accepted by
// colors.Parse, palettes and colormaps by name.
type Defaults struct {
	FontFamily      string  `toml:"font_family" yaml:"font_family"`
	FontSize        float64 `toml:"font_size" yaml:"font_size"`
	TitleSize       float64 `toml:"title_size" yaml:"title_size"`
	LineWidth       float64 `toml:"line_width" yaml:"line_width"`
	MarkerSize      float64 `toml:"marker_size" yaml:"marker_size"`
	Palette         string  `toml:"palette" yaml:"palette"`
	ColorMap        string  `toml:"colormap" yaml:"colormap"`
	Background      string  `toml:"background" yaml:"background"`
	Face            string  `toml:"face" yaml:"face"`
	Edge            string  `toml:"edge" yaml:"edge"`
	TextColor       string  `toml:"text_color" yaml:"text_color"`
	GridColor       string  `toml:"grid_color" yaml:"grid_color"`
	Grid            string  `toml:"grid" yaml:"grid"` // none, major or both
	TickLength      float64 `toml:"tick_length" yaml:"tick_length"`
	TickDirection   string  `toml:"tick_direction" yaml:"tick_direction"` // out, in or inout
	Margin          float64 `toml:"margin" yaml:"margin"`                 // around each chart in logical pixels
	LegendAnchor    string  `toml:"legend_anchor" yaml:"legend_anchor"`
	AutoscaleMargin float64 `toml:"autoscale_margin" yaml:"autoscale_margin"`
	DPI             float64 `toml:"dpi" yaml:"dpi"`
}

// StandardDefaults returns the built-in settings.
func StandardDefaults() Defaults {
	return Defaults{
		FontFamily:      "sans",
		FontSize:        11.0,
		TitleSize:       13.0,
		LineWidth:       1.5,
		MarkerSize:      6.0,
		Palette:         "tableau10",
		ColorMap:        "viridis",
		Background:      "white",
		Face:            "white",
		Edge:            "black",
		TextColor:       "black",
		GridColor:       "#b0b0b0",
		Grid:            "none",
		TickLength:      4.0,
		TickDirection:   "out",
		Margin:          10.0,
		LegendAnchor:    "best",
		AutoscaleMargin: axis.DefaultMargin,
		DPI:             96.0,
	}
}

// Config is a set of defaults shared between figures. Figures take a snapshot at the start of each frame, so changes
// apply from the next frame on. It is safe for concurrent use.
type Config struct {
	mu sync.RWMutex
	d  Defaults
}

var defaultConfig = NewConfig(StandardDefaults())

// DefaultConfig returns the configuration used by figures without one.
func DefaultConfig() *Config {
	return defaultConfig
}

// NewConfig returns a configuration with the given defaults.
func NewConfig(d Defaults) *Config {
	return &Config{d: d}
}

// Read calls f with the current defaults under a read lock.
func (c *Config) Read(f func(Defaults)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f(c.d)
}

// Update calls f to modify the defaults under a write lock.
func (c *Config) Update(f func(*Defaults)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(&c.d)
}

// Snapshot returns a copy of the current defaults.
func (c *Config) Snapshot() Defaults {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.d
}

// LoadConfig reads a style sheet in TOML or YAML format. Settings missing from the sheet keep their built-in values,
// invalid colors, palettes and colormaps are rejected.
func LoadConfig(r io.Reader, format string) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	d := StandardDefaults()
	switch strings.ToLower(format) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && err != io.EOF {
			return nil, fmt.Errorf("config: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: unknown format %q", format)
	}
	if _, err := d.resolve(); err != nil {
		return nil, err
	}
	return NewConfig(d), nil
}

// settings are the defaults with colors, palettes and enumerations resolved.
type settings struct {
	theme      artist.Theme
	titleSize  float64
	palette    colors.Palette
	face       colors.Color
	edge       colors.Color
	grid       axis.Grid
	gridColor  colors.Color
	tickLength float64
	tickDir    axis.TickDirection
	margin     float64
	legend     Anchor
	autoscale  float64
	dpi        float64
}

func (d Defaults) resolve() (settings, error) {
	s := settings{
		theme:      artist.DefaultTheme(),
		titleSize:  d.TitleSize,
		tickLength: d.TickLength,
		margin:     d.Margin,
		autoscale:  d.AutoscaleMargin,
		dpi:        d.DPI,
	}
	if d.FontFamily != "" {
		s.theme.Text.Family = d.FontFamily
	}
	if 0.0 < d.FontSize {
		s.theme.Text.Size = d.FontSize
	}
	if s.titleSize <= 0.0 {
		s.titleSize = 1.2 * s.theme.Text.Size
	}
	if 0.0 < d.LineWidth {
		s.theme.LineWidth = d.LineWidth
	}
	if 0.0 < d.MarkerSize {
		s.theme.MarkerSize = d.MarkerSize
	}
	if s.dpi <= 0.0 {
		s.dpi = 96.0
	}

	var err error
	s.palette = colors.Tableau10
	if d.Palette != "" {
		if s.palette, err = colors.PaletteByName(d.Palette); err != nil {
			return s, fmt.Errorf("config palette: %w", err)
		}
	}
	if d.ColorMap != "" {
		if s.theme.ColorMap, err = colors.ColorMapByName(d.ColorMap); err != nil {
			return s, fmt.Errorf("config colormap: %w", err)
		}
	}

	parse := func(name, v string, def colors.Color) (colors.Color, error) {
		if v == "" {
			return def, nil
		}
		col, err := colors.Parse(v)
		if err != nil {
			return def, fmt.Errorf("config %s: %w", name, err)
		}
		return col, nil
	}
	if s.theme.Background, err = parse("background", d.Background, colors.White); err != nil {
		return s, err
	} else if s.face, err = parse("face", d.Face, colors.White); err != nil {
		return s, err
	} else if s.edge, err = parse("edge", d.Edge, colors.Black); err != nil {
		return s, err
	} else if s.theme.Text.Color, err = parse("text_color", d.TextColor, colors.Black); err != nil {
		return s, err
	} else if s.gridColor, err = parse("grid_color", d.GridColor, colors.Gray); err != nil {
		return s, err
	}

	switch strings.ToLower(d.Grid) {
	case "", "none":
		s.grid = axis.GridNone
	case "major":
		s.grid = axis.GridMajor
	case "both":
		s.grid = axis.GridBoth
	default:
		return s, fmt.Errorf("config grid: unknown policy %q", d.Grid)
	}
	switch strings.ToLower(d.TickDirection) {
	case "", "out":
		s.tickDir = axis.TicksOut
	case "in":
		s.tickDir = axis.TicksIn
	case "inout":
		s.tickDir = axis.TicksInOut
	default:
		return s, fmt.Errorf("config tick_direction: unknown direction %q", d.TickDirection)
	}
	if d.LegendAnchor == "" {
		s.legend = Best
	} else if s.legend, err = ParseAnchor(d.LegendAnchor); err != nil {
		return s, fmt.Errorf("config legend_anchor: %w", err)
	}
	return s, nil
}

// snapshot resolves the current defaults, invalid settings set after loading fall back to the built-in ones.
func (c *Config) snapshot() settings {
	s, err := c.Snapshot().resolve()
	if err != nil {
		logger().Warn("invalid configuration", "err", err)
		s, _ = StandardDefaults().resolve()
	}
	return s
}

func (s settings) textStyle() style.TextStyle {
	return s.theme.Text
}

func (s settings) titleStyle() style.TextStyle {
	ts := s.theme.Text
	ts.Size = s.titleSize
	return ts
}

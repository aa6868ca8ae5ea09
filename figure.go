// Package figure composes scientific plots. A figure is a grid of charts, each chart a data box with axes, artists, a
// legend and a colorbar. Figures draw through the render protocol onto the GPU backend in a window, or onto the
// hardcopy rasterizer for image files.
package figure

import (
	"errors"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/layout"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// Errors returned by figures and charts.
var (
	ErrNoDisplay     = errors.New("no display registered")
	ErrClosed        = errors.New("figure or chart closed")
	ErrUnknownArtist = errors.New("unknown artist")
	ErrNotMappable   = errors.New("artist has no colormap")
)

// Option configures a figure.
type Option func(*Figure)

// Size sets the size of the figure in logical pixels.
func Size(w, h float64) Option {
	return func(f *Figure) {
		if 0.0 < w && 0.0 < h {
			f.w, f.h = w, h
		}
	}
}

// WithConfig sets the configuration the figure takes its defaults from.
func WithConfig(c *Config) Option {
	return func(f *Figure) {
		if c != nil {
			f.cfg = c
		}
	}
}

// Background sets the background color, overriding the configuration.
func Background(col colors.Color) Option {
	return func(f *Figure) {
		f.background = &col
	}
}

// WithPad sets the space between neighbouring charts.
func WithPad(pad float64) Option {
	return func(f *Figure) {
		f.tree.Pad = pad
	}
}

// Figure is the top-level container of charts. Charts are placed in a grid that grows a row whenever a chart is asked
// for and the grid is full. Figures are not safe for concurrent use.
type Figure struct {
	w, h       float64
	background *colors.Color
	cfg        *Config
	tree       *layout.Tree
	charts     []*Chart
	suptitle   string

	redraw bool
	closed bool
	s      settings
}

// New returns an empty figure of 640 by 480 logical pixels.
func New(opts ...Option) *Figure {
	f := &Figure{
		w:      640.0,
		h:      480.0,
		cfg:    DefaultConfig(),
		tree:   layout.NewTree(1, 1),
		redraw: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.s = f.cfg.snapshot()
	return f
}

// Size returns the size of the figure in logical pixels.
func (f *Figure) Size() (float64, float64) {
	return f.w, f.h
}

// Resize changes the size of the figure.
func (f *Figure) Resize(w, h float64) {
	if 0.0 < w && 0.0 < h && (w != f.w || h != f.h) {
		f.w, f.h = w, h
		f.RequestRedraw()
	}
}

// Config returns the configuration of the figure.
func (f *Figure) Config() *Config {
	return f.cfg
}

// RequestRedraw marks the figure for drawing on the next frame.
func (f *Figure) RequestRedraw() {
	f.redraw = true
}

// NeedsRedraw returns true if the figure changed since the last frame.
func (f *Figure) NeedsRedraw() bool {
	return f.redraw
}

// Closed returns true after Close.
func (f *Figure) Closed() bool {
	return f.closed
}

// Grid sets the number of rows and columns of the automatic grid. The grid only grows.
func (f *Figure) Grid(rows, cols int) *Figure {
	f.tree.Rows = max(f.tree.Rows, rows)
	f.tree.Cols = max(f.tree.Cols, cols)
	return f
}

// Chart returns a new chart in the next free cell of the grid. After Close it returns a closed chart.
func (f *Figure) Chart() *Chart {
	return f.add(f.tree.Next())
}

// ChartAt returns a new chart at row and column of the grid, spanning rowSpan rows and colSpan columns. Row zero is
// at the top.
func (f *Figure) ChartAt(row, col, rowSpan, colSpan int) (*Chart, error) {
	cell, err := f.tree.Add(row, col, rowSpan, colSpan)
	if err != nil {
		return nil, err
	}
	return f.add(cell), nil
}

// Multichart fills the next free cell with a nested grid of charts.
func (f *Figure) Multichart(fn func(*SubFigure)) {
	cell := f.tree.Next()
	fn(&SubFigure{fig: f, tree: cell.Split(1, 1)})
	f.RequestRedraw()
}

func (f *Figure) add(cell *layout.Cell) *Chart {
	c := newChart(f, cell)
	if f.closed {
		c.closed = true
	}
	f.charts = append(f.charts, c)
	f.RequestRedraw()
	return c
}

// Charts returns the charts in the order they were made.
func (f *Figure) Charts() []*Chart {
	return f.charts
}

// Suptitle sets the title above all charts.
func (f *Figure) Suptitle(s string) *Figure {
	f.suptitle = s
	f.RequestRedraw()
	return f
}

// Close closes all charts and releases their resources.
func (f *Figure) Close() {
	for _, c := range f.charts {
		c.Close()
	}
	f.closed = true
}

// SubFigure is a nested grid of charts inside a cell of a figure.
type SubFigure struct {
	fig  *Figure
	tree *layout.Tree
}

// Grid sets the number of rows and columns of the nested grid. The grid only grows.
func (sf *SubFigure) Grid(rows, cols int) *SubFigure {
	sf.tree.Rows = max(sf.tree.Rows, rows)
	sf.tree.Cols = max(sf.tree.Cols, cols)
	return sf
}

// Chart returns a new chart in the next free cell of the nested grid.
func (sf *SubFigure) Chart() *Chart {
	return sf.fig.add(sf.tree.Next())
}

// ChartAt returns a new chart at row and column of the nested grid.
func (sf *SubFigure) ChartAt(row, col, rowSpan, colSpan int) (*Chart, error) {
	cell, err := sf.tree.Add(row, col, rowSpan, colSpan)
	if err != nil {
		return nil, err
	}
	return sf.fig.add(cell), nil
}

// Multichart fills the next free cell of the nested grid with another nested grid.
func (sf *SubFigure) Multichart(fn func(*SubFigure)) {
	cell := sf.tree.Next()
	fn(&SubFigure{fig: sf.fig, tree: cell.Split(1, 1)})
}

// Figure returns the figure.
func (sf *SubFigure) Figure() *Figure {
	return sf.fig
}

////////////////////////////////////////////////////////////////

// Layout snapshots the configuration, resolves the grid on the canvas of the renderer and lays out every chart.
func (f *Figure) Layout(r render.Renderer) {
	f.s = f.cfg.snapshot()
	if f.background != nil {
		f.s.theme.Background = *f.background
	}
	b := r.DeviceBounds()
	if f.suptitle != "" {
		b = b.Inset(0.0, 0.0, 0.0, titlePad+textHeight(r, f.suptitle, f.suptitleStyle()))
	}
	f.tree.Resolve(b)
	for _, c := range f.charts {
		c.layout(r, f.s)
	}
}

func (f *Figure) suptitleStyle() style.TextStyle {
	ts := f.s.titleStyle()
	ts.Size *= 1.2
	ts.Bold = true
	return ts
}

// Draw draws the figure after Layout: the background, the title and the charts in the order they were made.
func (f *Figure) Draw(r render.Renderer) {
	b := r.DeviceBounds()
	if bg := f.s.theme.Background; !bg.IsTransparent() {
		ps := style.DefaultPathStyle()
		ps.Face = bg
		ps.Edge = colors.Transparent
		ps.Width = 0.0
		r.DrawPath(b.Path(), ps, render.NoClip)
	}
	if f.suptitle != "" {
		r.DrawText(render.TextRun{
			Text:   f.suptitle,
			Pos:    geom.Pt[geom.Canvas](b.Center().X, b.Y1-titlePad/2.0),
			Style:  f.suptitleStyle(),
			HAlign: style.Center,
			VAlign: style.Top,
		}, render.NoClip)
	}
	for _, c := range f.charts {
		c.draw(r)
	}
	f.redraw = false
}

// Frame lays out and draws the figure in one go.
func (f *Figure) Frame(r render.Renderer) {
	f.Layout(r)
	f.Draw(r)
}

// Package artist contains the drawable elements of a chart. An artist reports the extent of its data, prepares its
// resources when the geometry of its chart changes and emits render calls in canvas coordinates when drawn.
package artist

import (
	"errors"
	"math"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// Errors returned by artist constructors.
var (
	ErrInvalidShape = errors.New("invalid shape")
	ErrEmptyData    = errors.New("empty data")
)

// Artist is anything that can be drawn on a chart. Built-in artists never return an error from Draw, failing user
// artists are skipped for the frame.
type Artist interface {
	// Extent returns the data bounds of the artist, empty if it does not take part in autoscaling. Unbounded
	// dimensions are +Inf/-Inf, such as the x-range of a horizontal line.
	Extent() geom.Bounds[geom.Data]

	// Layout is called before Draw when the geometry of the chart changed or the artist was modified.
	Layout(info LayoutInfo)

	Draw(ctx *DrawContext) error

	// Legend returns the legend entry of the artist, if any.
	Legend() (LegendHandle, bool)
}

// Theme is the snapshot of the chart configuration that artists fall back to for unset attributes.
type Theme struct {
	Text       style.TextStyle
	LineWidth  float64
	MarkerSize float64
	ColorMap   *colors.ColorMap
	Background colors.Color
}

// DefaultTheme returns the theme used when a chart has no configuration.
func DefaultTheme() Theme {
	return Theme{
		Text:       style.DefaultTextStyle(),
		LineWidth:  1.5,
		MarkerSize: 6.0,
		ColorMap:   colors.Viridis,
		Background: colors.White,
	}
}

// LayoutInfo is the geometry of the chart an artist is laid out in.
type LayoutInfo struct {
	Box   geom.Bounds[geom.Canvas] // data box on the canvas
	View  geom.Bounds[geom.Data]   // axis limits
	Scale float64                  // device pixels per logical pixel
}

// DrawContext carries everything an artist needs to emit render calls.
type DrawContext struct {
	Renderer  render.Renderer
	Transform geom.Transform[geom.Data, geom.Canvas]
	Frame     geom.Affine[geom.Frame, geom.Canvas]
	Box       geom.Bounds[geom.Canvas]
	View      geom.Bounds[geom.Data]
	Clip      render.Clip
	Theme     Theme
}

// Tolerance returns the flattening tolerance in canvas units.
func (ctx *DrawContext) Tolerance() float64 {
	return render.Tolerance(ctx.Renderer.ScaleFactor())
}

// Point maps a data coordinate onto the canvas, the result has NaN coordinates if the scales cannot map it.
func (ctx *DrawContext) Point(x, y float64) geom.Point[geom.Canvas] {
	return ctx.Transform.Point(geom.Pt[geom.Data](x, y))
}

// Polyline maps the points onto the canvas and connects them, points that are NaN in either coordinate or that cannot
// be mapped break the line.
func (ctx *DrawContext) Polyline(x, y []float32) geom.Path[geom.Canvas] {
	b := geom.Builder[geom.Canvas]{}
	open := false
	for i := range x {
		p := ctx.Point(float64(x[i]), float64(y[i]))
		if !finite(p) {
			open = false
			continue
		}
		if open {
			b.LineTo(p.X, p.Y)
		} else {
			b.MoveTo(p.X, p.Y)
			open = true
		}
	}
	return b.Path()
}

// Points maps the points onto the canvas and drops those that cannot be mapped. The index of the source point of
// every result is returned as well.
func (ctx *DrawContext) Points(x, y []float32) ([]geom.Point[geom.Canvas], []int) {
	pts := make([]geom.Point[geom.Canvas], 0, len(x))
	idx := make([]int, 0, len(x))
	for i := range x {
		if p := ctx.Point(float64(x[i]), float64(y[i])); finite(p) {
			pts = append(pts, p)
			idx = append(idx, i)
		}
	}
	return pts, idx
}

// Path maps a data path onto the canvas.
func (ctx *DrawContext) Path(p geom.Path[geom.Data]) geom.Path[geom.Canvas] {
	return ctx.Transform.Path(p)
}

// Style fills unset width and marker size of a path style from the theme.
func (ctx *DrawContext) Style(s style.PathStyle) style.PathStyle {
	if s.Width == 0.0 && !s.Edge.IsTransparent() {
		s.Width = ctx.Theme.LineWidth
	}
	if s.MarkSize == 0.0 {
		s.MarkSize = ctx.Theme.MarkerSize
	}
	return s
}

func colorMapOr(cm *colors.ColorMap) *colors.ColorMap {
	if cm == nil {
		return colors.Viridis
	}
	return cm
}

func finite[S geom.Space](p geom.Point[S]) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

////////////////////////////////////////////////////////////////

// HandleKind is the glyph drawn for a legend entry.
type HandleKind uint8

// Legend glyphs.
const (
	LineHandle   HandleKind = iota // a short line with the marker in its middle
	MarkerHandle                   // a single marker
	PatchHandle                    // a filled rectangle
)

// LegendHandle is the glyph and label of a legend entry.
type LegendHandle struct {
	Label string
	Kind  HandleKind
	Style style.PathStyle
}

// LegendEntries is implemented by artists with a legend entry per element, such as the wedges of a pie.
type LegendEntries interface {
	LegendEntries() []LegendHandle
}

// Mappable is an artist that colors its data through a colormap, it can be shown by a colorbar.
type Mappable interface {
	Artist
	Mapper() colors.Mapper
}

// Releaser is implemented by artists that hold backend resources, Release is called when they are removed.
type Releaser interface {
	Release()
}

// Coords is the coordinate system of a position.
type Coords uint8

// Coordinate systems.
const (
	DataCoords   Coords = iota
	FrameCoords         // fractions of the data box
	CanvasCoords        // logical pixels from the bottom-left of the figure
)

// position maps a position in a coordinate system onto the canvas.
func (ctx *DrawContext) position(x, y float64, c Coords) geom.Point[geom.Canvas] {
	switch c {
	case FrameCoords:
		return ctx.Frame.Point(geom.Pt[geom.Frame](x, y))
	case CanvasCoords:
		return geom.Pt[geom.Canvas](x, y)
	}
	return ctx.Point(x, y)
}

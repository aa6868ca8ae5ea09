package artist

import (
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// DrawStyle is how consecutive points of a line are connected.
type DrawStyle uint8

// Draw styles.
const (
	Straight  DrawStyle = iota
	StepsPre            // the step happens at the start of the interval
	StepsMid            // the step happens halfway between points
	StepsPost           // the step happens at the end of the interval
)

// Lines connects points by a polyline and optionally puts a marker at every point.
type Lines struct {
	X, Y      []float32
	Style     style.PathStyle
	DrawStyle DrawStyle
	Label     string
}

// NewLines returns a line through the points.
func NewLines(x, y []float32) (*Lines, error) {
	if err := checkXY("lines", x, y); err != nil {
		return nil, err
	}
	return &Lines{X: x, Y: y, Style: style.DefaultPathStyle()}, nil
}

func (l *Lines) Extent() geom.Bounds[geom.Data] {
	return extentXY(l.X, l.Y)
}

func (l *Lines) Layout(LayoutInfo) {}

// steps returns the vertices of the stepped line.
func (l *Lines) steps() ([]float32, []float32) {
	if l.DrawStyle == Straight || len(l.X) < 2 {
		return l.X, l.Y
	}
	n := len(l.X)
	x := make([]float32, 0, 2*n)
	y := make([]float32, 0, 2*n)
	x, y = append(x, l.X[0]), append(y, l.Y[0])
	for i := 1; i < n; i++ {
		switch l.DrawStyle {
		case StepsPre:
			x, y = append(x, l.X[i-1], l.X[i]), append(y, l.Y[i], l.Y[i])
		case StepsPost:
			x, y = append(x, l.X[i], l.X[i]), append(y, l.Y[i-1], l.Y[i])
		case StepsMid:
			m := (l.X[i-1] + l.X[i]) / 2.0
			x, y = append(x, m, m, l.X[i]), append(y, l.Y[i-1], l.Y[i], l.Y[i])
		}
	}
	return x, y
}

func (l *Lines) Draw(ctx *DrawContext) error {
	s := ctx.Style(l.Style)
	if s.HasStroke() {
		x, y := l.steps()
		if p := ctx.Polyline(x, y); !p.Empty() {
			line := s
			line.Face = colors.Transparent
			line.Hatch = style.NoHatch
			ctx.Renderer.DrawPath(p, line, ctx.Clip)
		}
	}
	if !s.Marker.IsNone() {
		pts, _ := ctx.Points(l.X, l.Y)
		if 0 < len(pts) {
			ctx.Renderer.DrawMarkers(render.Markers{Marker: s.Marker, Points: pts}, s, ctx.Clip)
		}
	}
	return nil
}

func (l *Lines) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: l.Label, Kind: LineHandle, Style: l.Style}, l.Label != ""
}

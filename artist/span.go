package artist

import (
	"math"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/style"
)

// HLine is a horizontal line at Y across the whole data box.
type HLine struct {
	Y     float64
	Style style.PathStyle
	Label string
}

// NewHLine returns a horizontal line at y.
func NewHLine(y float64) *HLine {
	return &HLine{Y: y, Style: style.DefaultPathStyle()}
}

func (l *HLine) Extent() geom.Bounds[geom.Data] {
	if math.IsNaN(l.Y) || math.IsInf(l.Y, 0) {
		return geom.EmptyBounds[geom.Data]()
	}
	return extentY(l.Y, l.Y)
}

func (l *HLine) Layout(LayoutInfo) {}

func (l *HLine) Draw(ctx *DrawContext) error {
	y := ctx.Point(ctx.View.Center().X, l.Y).Y
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return nil
	}
	drawSpan(ctx, l.Style, geom.Pt[geom.Canvas](ctx.Box.X0, y), geom.Pt[geom.Canvas](ctx.Box.X1, y))
	return nil
}

func (l *HLine) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: l.Label, Kind: LineHandle, Style: l.Style}, l.Label != ""
}

// VLine is a vertical line at X across the whole data box.
type VLine struct {
	X     float64
	Style style.PathStyle
	Label string
}

// NewVLine returns a vertical line at x.
func NewVLine(x float64) *VLine {
	return &VLine{X: x, Style: style.DefaultPathStyle()}
}

func (l *VLine) Extent() geom.Bounds[geom.Data] {
	if math.IsNaN(l.X) || math.IsInf(l.X, 0) {
		return geom.EmptyBounds[geom.Data]()
	}
	return extentX(l.X, l.X)
}

func (l *VLine) Layout(LayoutInfo) {}

func (l *VLine) Draw(ctx *DrawContext) error {
	x := ctx.Point(l.X, ctx.View.Center().Y).X
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	drawSpan(ctx, l.Style, geom.Pt[geom.Canvas](x, ctx.Box.Y0), geom.Pt[geom.Canvas](x, ctx.Box.Y1))
	return nil
}

func (l *VLine) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: l.Label, Kind: LineHandle, Style: l.Style}, l.Label != ""
}

func drawSpan(ctx *DrawContext, s style.PathStyle, a, b geom.Point[geom.Canvas]) {
	s = ctx.Style(s)
	s.Face = colors.Transparent
	if !s.HasStroke() {
		return
	}
	ctx.Renderer.DrawPath(geom.PolylinePath([]geom.Point[geom.Canvas]{a, b}), s, ctx.Clip)
}

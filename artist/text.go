package artist

import (
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// Text is a single line of text anchored at a position. Text does not take part in autoscaling.
type Text struct {
	Str      string
	X, Y     float64
	Coords   Coords
	Style    style.TextStyle // a zero size uses the theme
	HAlign   style.HAlign
	VAlign   style.VAlign
	Rotation float64 // counter clockwise in degrees
	Clipped  bool    // clip to the data box, only for data coordinates
}

// NewText returns text at x,y in the given coordinate system.
func NewText(x, y float64, s string, c Coords) *Text {
	return &Text{Str: s, X: x, Y: y, Coords: c, VAlign: style.Baseline}
}

func (t *Text) Extent() geom.Bounds[geom.Data] {
	return geom.EmptyBounds[geom.Data]()
}

func (t *Text) Layout(LayoutInfo) {}

// Run returns the text as a render call in the given context.
func (t *Text) Run(ctx *DrawContext) render.TextRun {
	ts := t.Style
	if ts.Size == 0.0 {
		ts = ctx.Theme.Text
	}
	if ts.Family == "" {
		ts.Family = ctx.Theme.Text.Family
	}
	return render.TextRun{
		Text:     t.Str,
		Pos:      ctx.position(t.X, t.Y, t.Coords),
		Style:    ts,
		HAlign:   t.HAlign,
		VAlign:   t.VAlign,
		Rotation: t.Rotation,
	}
}

func (t *Text) Draw(ctx *DrawContext) error {
	if t.Str == "" {
		return nil
	}
	run := t.Run(ctx)
	if !finite(run.Pos) {
		return nil
	}
	clip := render.NoClip
	if t.Clipped && t.Coords == DataCoords {
		clip = ctx.Clip
	}
	ctx.Renderer.DrawText(run, clip)
	return nil
}

func (t *Text) Legend() (LegendHandle, bool) {
	return LegendHandle{}, false
}

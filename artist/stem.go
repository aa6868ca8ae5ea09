package artist

import (
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// Stem draws a vertical line from the baseline to each point with a marker on top, and the baseline itself.
type Stem struct {
	X, Y     []float32
	Baseline float64
	Style    style.PathStyle
	Base     style.PathStyle // style of the baseline, a transparent edge hides it
	Label    string
}

// NewStem returns stems at the points.
func NewStem(x, y []float32) (*Stem, error) {
	if err := checkXY("stem", x, y); err != nil {
		return nil, err
	}
	s := style.DefaultPathStyle()
	s.Marker = style.Circle
	base := style.DefaultPathStyle()
	base.Edge = colors.Gray
	return &Stem{X: x, Y: y, Style: s, Base: base}, nil
}

func (s *Stem) Extent() geom.Bounds[geom.Data] {
	b := extentXY(s.X, s.Y)
	if !b.IsEmpty() {
		b = b.AddPoint(geom.Pt[geom.Data](b.X0, s.Baseline))
	}
	return b
}

func (s *Stem) Layout(LayoutInfo) {}

func (s *Stem) Draw(ctx *DrawContext) error {
	st := ctx.Style(s.Style)
	st.Face = colors.Transparent

	var x0, x1 geom.Point[geom.Canvas]
	b := geom.Builder[geom.Canvas]{}
	var tops []geom.Point[geom.Canvas]
	for i := range s.X {
		p := ctx.Point(float64(s.X[i]), float64(s.Y[i]))
		q := ctx.Point(float64(s.X[i]), s.Baseline)
		if !finite(p) || !finite(q) {
			continue
		}
		if len(tops) == 0 || q.X < x0.X {
			x0 = q
		}
		if len(tops) == 0 || x1.X < q.X {
			x1 = q
		}
		b.MoveTo(q.X, q.Y)
		b.LineTo(p.X, p.Y)
		tops = append(tops, p)
	}
	if len(tops) == 0 {
		return nil
	}
	if st.HasStroke() {
		ctx.Renderer.DrawPath(b.Path(), st, ctx.Clip)
	}
	if base := ctx.Style(s.Base); base.HasStroke() && x0.X < x1.X {
		base.Face = colors.Transparent
		ctx.Renderer.DrawPath(geom.PolylinePath([]geom.Point[geom.Canvas]{x0, x1}), base, ctx.Clip)
	}
	if !st.Marker.IsNone() {
		ctx.Renderer.DrawMarkers(render.Markers{Marker: st.Marker, Points: tops}, st, ctx.Clip)
	}
	return nil
}

func (s *Stem) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: s.Label, Kind: LineHandle, Style: s.Style}, s.Label != ""
}

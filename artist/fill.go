package artist

import (
	"fmt"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/style"
)

// FillBetween fills the area between the curves y1(x) and y2(x). A NaN in any of the values splits the area.
type FillBetween struct {
	X, Y1, Y2 []float32
	Style     style.PathStyle
	Label     string
}

// NewFillBetween returns the area between y1 and y2, a nil y2 fills down to zero.
func NewFillBetween(x, y1, y2 []float32) (*FillBetween, error) {
	if err := checkXY("fill between", x, y1); err != nil {
		return nil, err
	}
	if y2 == nil {
		y2 = make([]float32, len(x))
	} else if len(y2) != len(x) {
		return nil, fmt.Errorf("fill between: %d x and %d y2 values: %w", len(x), len(y2), ErrInvalidShape)
	}
	s := style.DefaultPathStyle()
	s.Face = colors.Tableau10[0].WithAlpha(0.5)
	s.Edge = colors.Transparent
	s.Width = 0.0
	return &FillBetween{X: x, Y1: y1, Y2: y2, Style: s}, nil
}

func (f *FillBetween) Extent() geom.Bounds[geom.Data] {
	return extentXY(f.X, f.Y1).Union(extentXY(f.X, f.Y2))
}

func (f *FillBetween) Layout(LayoutInfo) {}

// path returns a closed polygon per run of finite values, forward along y1 and back along y2.
func (f *FillBetween) path(ctx *DrawContext) geom.Path[geom.Canvas] {
	b := geom.Builder[geom.Canvas]{}
	var upper, lower []geom.Point[geom.Canvas]
	flush := func() {
		if 2 <= len(upper) {
			poly := append([]geom.Point[geom.Canvas]{}, upper...)
			for i := len(lower) - 1; 0 <= i; i-- {
				poly = append(poly, lower[i])
			}
			b.Polygon(poly)
		}
		upper, lower = upper[:0], lower[:0]
	}
	for i := range f.X {
		p := ctx.Point(float64(f.X[i]), float64(f.Y1[i]))
		q := ctx.Point(float64(f.X[i]), float64(f.Y2[i]))
		if !finite(p) || !finite(q) {
			flush()
			continue
		}
		upper = append(upper, p)
		lower = append(lower, q)
	}
	flush()
	return b.Path()
}

func (f *FillBetween) Draw(ctx *DrawContext) error {
	s := ctx.Style(f.Style)
	if p := f.path(ctx); !p.Empty() {
		ctx.Renderer.DrawPath(p, s, ctx.Clip)
	}
	return nil
}

func (f *FillBetween) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: f.Label, Kind: PatchHandle, Style: f.Style}, f.Label != ""
}

package artist

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/style"
)

// Quiver draws an arrow at each point in the direction of (u, v). Arrows are drawn in canvas units: their length is
// the vector magnitude times Scale pixels, and an automatic scale makes the longest arrow as long as the average
// spacing of the points.
type Quiver struct {
	X, Y, U, V []float32
	Scale      float64 // pixels per unit of magnitude, zero chooses it automatically
	Width      float64 // shaft width in pixels
	Values     []float32
	Map        *colors.ColorMap
	Norm       colors.Norm
	Style      style.PathStyle
	Label      string
}

// NewQuiver returns arrows at x,y with components u,v.
func NewQuiver(x, y, u, v []float32) (*Quiver, error) {
	if err := checkXY("quiver", x, y); err != nil {
		return nil, err
	} else if err := checkXY("quiver", u, v); err != nil {
		return nil, err
	} else if len(u) != len(x) {
		return nil, fmt.Errorf("quiver: %d points and %d vectors: %w", len(x), len(u), ErrInvalidShape)
	}
	s := style.DefaultPathStyle()
	s.Face = s.Edge
	s.Edge = colors.Transparent
	return &Quiver{X: x, Y: y, U: u, V: v, Width: 1.5, Style: s}, nil
}

func (q *Quiver) Extent() geom.Bounds[geom.Data] {
	return extentXY(q.X, q.Y)
}

func (q *Quiver) Layout(LayoutInfo) {}

func (q *Quiver) Mapper() colors.Mapper {
	norm := q.Norm
	if norm == nil {
		norm = colors.Autoscale(q.Values)
	}
	return colors.Mapper{Map: colorMapOr(q.Map), Norm: norm}
}

// direction returns the canvas direction of the data vector u,v at point i, the step keeps the direction accurate on
// nonlinear scales.
func (q *Quiver) direction(ctx *DrawContext, i int, p geom.Point[geom.Canvas]) geom.Point[geom.Canvas] {
	h := 1e-3 * math.Max(ctx.View.W(), ctx.View.H())
	mag := math32.Hypot(q.U[i], q.V[i])
	if h == 0.0 || mag == 0.0 || !finite32(mag) {
		return geom.Point[geom.Canvas]{}
	}
	k := h / float64(mag)
	r := ctx.Point(float64(q.X[i])+k*float64(q.U[i]), float64(q.Y[i])+k*float64(q.V[i]))
	d := r.Sub(p)
	if !finite(d) || d.IsZero() {
		return geom.Point[geom.Canvas]{}
	}
	return d.Norm(1.0)
}

func (q *Quiver) autoScale(ctx *DrawContext, n int) float64 {
	maxMag := float32(0.0)
	for i := range q.U {
		if m := math32.Hypot(q.U[i], q.V[i]); finite32(m) {
			maxMag = math32.Max(maxMag, m)
		}
	}
	if maxMag == 0.0 || n == 0 {
		return 0.0
	}
	spacing := math.Sqrt(ctx.Box.W() * ctx.Box.H() / float64(n))
	return spacing / float64(maxMag)
}

func (q *Quiver) Draw(ctx *DrawContext) error {
	pts, idx := ctx.Points(q.X, q.Y)
	scale := q.Scale
	if scale <= 0.0 {
		scale = q.autoScale(ctx, len(pts))
	}
	width := q.Width
	if width <= 0.0 {
		width = 1.5
	}
	s := ctx.Style(q.Style)
	mapped := len(q.Values) == len(q.X)
	mapper := q.Mapper()

	b := geom.Builder[geom.Canvas]{}
	for k, i := range idx {
		d := q.direction(ctx, i, pts[k])
		if d.IsZero() {
			continue
		}
		length := float64(math32.Hypot(q.U[i], q.V[i])) * scale
		poly := arrowPolygon(pts[k], d.Mul(length), width, 3.0*width, 4.5*width)
		if poly == nil {
			continue
		}
		if mapped {
			// arrows of different colors are separate draw calls
			as := s
			as.Face = mapper.Color(float64(q.Values[i]))
			ctx.Renderer.DrawPath(geom.PolygonPath(poly), as, ctx.Clip)
			continue
		}
		b.Polygon(poly)
	}
	if p := b.Path(); !p.Empty() {
		ctx.Renderer.DrawPath(p, s, ctx.Clip)
	}
	return nil
}

func (q *Quiver) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: q.Label, Kind: PatchHandle, Style: q.Style}, q.Label != ""
}

package artist

import (
	"fmt"
	"math"

	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/style"
)

// Patch is a filled and stroked closed path in data coordinates. It is rotated by Rotation degrees and scaled by
// ScaleX, ScaleY about Pivot before it is drawn.
type Patch struct {
	Path     geom.Path[geom.Data]
	Style    style.PathStyle
	Rotation float64
	ScaleX   float64 // zero means 1
	ScaleY   float64 // zero means 1
	Pivot    geom.Point[geom.Data]
	Label    string
}

// NewPatch returns a patch of a path, which must not be empty.
func NewPatch(p geom.Path[geom.Data]) (*Patch, error) {
	if p.Empty() {
		return nil, fmt.Errorf("patch: %w", ErrEmptyData)
	}
	s := style.DefaultPathStyle()
	s.Face = s.Edge
	return &Patch{Path: p, Style: s, Pivot: p.Bounds().Center()}, nil
}

func mustPatch(p geom.Path[geom.Data]) *Patch {
	patch, err := NewPatch(p)
	if err != nil {
		panic(err)
	}
	return patch
}

// Rectangle returns a patch of the rectangle with corner x,y and size w,h.
func Rectangle(x, y, w, h float64) *Patch {
	b := geom.Builder[geom.Data]{}
	b.Rect(x, y, w, h)
	return mustPatch(b.Path())
}

// Circle returns a patch of a circle in data units.
func Circle(cx, cy, r float64) *Patch {
	return Ellipse(cx, cy, r, r)
}

// Ellipse returns a patch of an axis aligned ellipse.
func Ellipse(cx, cy, rx, ry float64) *Patch {
	b := geom.Builder[geom.Data]{}
	b.Ellipse(cx, cy, rx, ry)
	return mustPatch(b.Path())
}

// Polygon returns a patch of the closed polygon through the points.
func Polygon(x, y []float32) (*Patch, error) {
	if err := checkXY("polygon", x, y); err != nil {
		return nil, err
	} else if len(x) < 3 {
		return nil, fmt.Errorf("polygon with %d points: %w", len(x), ErrInvalidShape)
	}
	pts := make([]geom.Point[geom.Data], len(x))
	for i := range x {
		pts[i] = geom.Pt[geom.Data](float64(x[i]), float64(y[i]))
	}
	return NewPatch(geom.PolygonPath(pts))
}

// Wedge returns a patch of the circular sector at cx,cy with radius r between theta0 and theta1 in degrees counter
// clockwise from the positive x-axis. A full circle has no center vertex, a non-zero width makes it a ring sector.
func Wedge(cx, cy, r, theta0, theta1, width float64) *Patch {
	return mustPatch(wedgePath(cx, cy, r, theta0, theta1, width))
}

func wedgePath(cx, cy, r, theta0, theta1, width float64) geom.Path[geom.Data] {
	t0, t1 := theta0*math.Pi/180.0, theta1*math.Pi/180.0
	full := 2.0*math.Pi-1e-9 <= math.Abs(t1-t0)
	b := geom.Builder[geom.Data]{}
	if 0.0 < width && width < r {
		b.ArcTo(cx, cy, r, r, t0, t1)
		b.ArcTo(cx, cy, r-width, r-width, t1, t0)
		b.Close()
		return b.Path()
	}
	if full {
		b.Ellipse(cx, cy, r, r)
		return b.Path()
	}
	b.MoveTo(cx, cy)
	b.ArcTo(cx, cy, r, r, t0, t1)
	b.Close()
	return b.Path()
}

// Arrow returns a patch of an arrow from x,y to x+dx,y+dy. The shaft has the given width, the head is three times as
// wide and 1.5 times as long as wide.
func Arrow(x, y, dx, dy, width float64) *Patch {
	return mustPatch(geom.PolygonPath(arrowPolygon(geom.Pt[geom.Data](x, y), geom.Pt[geom.Data](dx, dy), width, 3.0*width, 4.5*width)))
}

// arrowPolygon returns the seven vertices of an arrow glyph. The head is shortened for arrows shorter than the head.
func arrowPolygon[S geom.Space](p, d geom.Point[S], width, headWidth, headLength float64) []geom.Point[S] {
	length := d.Length()
	if length == 0.0 {
		return nil
	}
	if length < headLength {
		headWidth *= length / headLength
		headLength = length
		width = math.Min(width, headWidth)
	}
	u := d.Div(length)
	n := u.Rot90CCW()
	neck := p.Add(u.Mul(length - headLength))
	tip := p.Add(d)
	hw, hh := width/2.0, headWidth/2.0
	return []geom.Point[S]{
		p.Sub(n.Mul(hw)),
		neck.Sub(n.Mul(hw)),
		neck.Sub(n.Mul(hh)),
		tip,
		neck.Add(n.Mul(hh)),
		neck.Add(n.Mul(hw)),
		p.Add(n.Mul(hw)),
	}
}

func (p *Patch) matrix() geom.Matrix {
	sx, sy := p.ScaleX, p.ScaleY
	if sx == 0.0 {
		sx = 1.0
	}
	if sy == 0.0 {
		sy = 1.0
	}
	if p.Rotation == 0.0 && sx == 1.0 && sy == 1.0 {
		return geom.Identity
	}
	return geom.Identity.Translate(p.Pivot.X, p.Pivot.Y).Rotate(p.Rotation).Scale(sx, sy).Translate(-p.Pivot.X, -p.Pivot.Y)
}

// Shape returns the path after rotation and scaling.
func (p *Patch) Shape() geom.Path[geom.Data] {
	if m := p.matrix(); m != geom.Identity {
		return p.Path.Transform(m)
	}
	return p.Path
}

func (p *Patch) Extent() geom.Bounds[geom.Data] {
	return p.Shape().Bounds()
}

func (p *Patch) Layout(LayoutInfo) {}

func (p *Patch) Draw(ctx *DrawContext) error {
	path := ctx.Path(p.Shape())
	if !ctx.Clip.Visible(path.Bounds()) {
		return nil
	}
	ctx.Renderer.DrawPath(path, ctx.Style(p.Style), ctx.Clip)
	return nil
}

func (p *Patch) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: p.Label, Kind: PatchHandle, Style: p.Style}, p.Label != ""
}

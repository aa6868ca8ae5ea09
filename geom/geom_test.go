package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tdewolff/test"
)

func TestBoundsUnion(t *testing.T) {
	empty := EmptyBounds[Data]()
	a := Rect[Data](0, 0, 1, 2)
	b := Rect[Data](-1, 1, 0.5, 3)
	c := Rect[Data](2, -2, 4, 0)

	test.T(t, empty.Union(a), a)
	test.T(t, a.Union(empty), a)
	test.That(t, empty.Union(empty).IsEmpty())
	test.T(t, a.Union(b).Union(c), a.Union(b.Union(c)))
	test.T(t, a.Union(b), Rect[Data](-1, 0, 1, 3))
	test.That(t, a.Intersect(c).IsEmpty())
	test.T(t, a.Intersect(b), Rect[Data](0, 1, 0.5, 2))
	test.That(t, !Bounds[Data]{}.IsEmpty(), "zero value is a point")
}

func TestAffineRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		rot := rng.Float64() * 360.0
		m := Identity.Translate(rng.Float64()*100-50, rng.Float64()*100-50).Rotate(rot).Scale(rng.Float64()*10+0.1, rng.Float64()*10+0.1)
		a := NewAffine[Data, Canvas](m)
		inv, ok := a.Inverse()
		test.That(t, ok)

		b := Builder[Data]{}
		b.MoveTo(rng.Float64(), rng.Float64())
		b.QuadTo(rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64())
		b.CubeTo(rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64())
		b.Close()
		p := b.Path()

		q := inv.Path(a.Path(p))
		test.T(t, q.Len(), p.Len())
		for j := range p.pts {
			test.That(t, math.Abs(p.pts[j].X-q.pts[j].X) < 1e-5 && math.Abs(p.pts[j].Y-q.pts[j].Y) < 1e-5)
		}
	}

	_, ok := NewAffine[Data, Canvas](Identity.Scale(0.0, 1.0)).Inverse()
	test.That(t, !ok, "singular matrix has no inverse")
}

func TestCompose(t *testing.T) {
	ab := NewAffine[Data, Frame](Identity.Scale(2.0, 3.0))
	bc := NewAffine[Frame, Canvas](Identity.Translate(10.0, 20.0))
	ac := Compose(ab, bc)
	test.T(t, ac.Point(Pt[Data](1, 1)), Pt[Canvas](12, 23))

	box := BoxAffine(Rect[Data](0, 0, 10, 10), Rect[Canvas](100, 0, 300, 200))
	test.T(t, box.Point(Pt[Data](5, 5)), Pt[Canvas](200, 100))
	test.T(t, box.Point(Pt[Data](10, 0)), Pt[Canvas](300, 0))
}

func TestPathBounds(t *testing.T) {
	var tts = []struct {
		path   string
		bounds Bounds[Canvas]
	}{
		{"", EmptyBounds[Canvas]()},
		{"M0 0L10 5", Rect[Canvas](0, 0, 10, 5)},
		{"M0 0Q5 10 10 0", Rect[Canvas](0, 0, 10, 5)},
		{"M0 0C0 10 10 10 10 0", Rect[Canvas](0, 0, 10, 7.5)},
		{"M0 0C10 0 -10 10 0 10", Rect[Canvas](-2.886751345948129, 0, 2.886751345948129, 10)},
	}
	for _, tt := range tts {
		t.Run(tt.path, func(t *testing.T) {
			p := MustParseSVG[Canvas](tt.path)
			b := p.Bounds()
			if tt.bounds.IsEmpty() {
				test.That(t, b.IsEmpty())
				return
			}
			test.That(t, math.Abs(b.X0-tt.bounds.X0) < 1e-9 && math.Abs(b.X1-tt.bounds.X1) < 1e-9, b)
			test.That(t, math.Abs(b.Y0-tt.bounds.Y0) < 1e-9 && math.Abs(b.Y1-tt.bounds.Y1) < 1e-9, b)
		})
	}
}

func TestParseSVG(t *testing.T) {
	var tts = []struct {
		data string
		path string
	}{
		{"M10 10L20 10", "M10 10L20 10"},
		{"m10 10l10 0h5v5z", "M10 10L20 10L25 10L25 15z"},
		{"M0 0 10 10 20 0", "M0 0L10 10L20 0"},
		{"M0 0Q5 5 10 0T20 0", "M0 0Q5 5 10 0Q15 -5 20 0"},
		{"M0,0C0,1 1,1 1,0S2,-1 2,0", "M0 0C0 1 1 1 1 0C1 -1 2 -1 2 0"},
	}
	for _, tt := range tts {
		t.Run(tt.data, func(t *testing.T) {
			p, err := ParseSVG[Canvas](tt.data)
			test.Error(t, err)
			test.String(t, p.String(), tt.path)
		})
	}

	_, err := ParseSVG[Canvas]("L10")
	test.That(t, err != nil)
	_, err = ParseSVG[Canvas]("M10 x")
	test.That(t, err != nil)

	arc := MustParseSVG[Canvas]("M0 0A5 5 0 0 1 10 0")
	end := arc.Points()[len(arc.Points())-1]
	test.That(t, end.Equals(Pt[Canvas](10, 0)), end)
	test.That(t, math.Abs(arc.Bounds().H()-5.0) < 1e-3, arc.Bounds())
}

func TestReverse(t *testing.T) {
	p := MustParseSVG[Canvas]("M0 0L10 0L10 10z")
	test.String(t, p.Reverse().String(), "M0 0L10 10L10 0z")
	q := MustParseSVG[Canvas]("M0 0L10 0L10 10")
	test.String(t, q.Reverse().String(), "M10 10L10 0L0 0")
}

func TestFlatten(t *testing.T) {
	b := Builder[Canvas]{}
	b.Ellipse(0, 0, 100, 100)
	p := b.Path()
	lines := p.Polylines(0.5)
	test.T(t, len(lines), 1)
	test.That(t, lines[0].Closed)
	for _, pt := range lines[0].Points {
		test.That(t, math.Abs(pt.Length()-100.0) < 0.5, pt)
	}
	// midpoints of the chords deviate at most the tolerance
	pts := lines[0].Points
	for i := range pts {
		mid := pts[i].Interpolate(pts[(i+1)%len(pts)], 0.5)
		test.That(t, 100.0-mid.Length() < 0.5+0.03, mid)
	}
}

func TestStroke(t *testing.T) {
	p := MustParseSVG[Canvas]("M0 0L10 0")
	polys := p.Stroke(StrokeOptions{Width: 2.0, Cap: ButtCap})
	test.T(t, len(polys), 1)
	test.Float(t, polys[0].Area(), 20.0)

	area := TriangleArea(Triangulate(p.Stroke(StrokeOptions{Width: 2.0, Cap: SquareCap}), NonZero))
	test.That(t, math.Abs(area-24.0) < 1e-9, area)

	// right angle with a miter join fills the corner square exactly once
	corner := MustParseSVG[Canvas]("M0 0L10 0L10 10")
	area = TriangleArea(Triangulate(corner.Stroke(StrokeOptions{Width: 2.0, Join: MiterJoin}), NonZero))
	test.That(t, math.Abs(area-(2*10+2*10)) < 1e-9, area)
	area = TriangleArea(Triangulate(corner.Stroke(StrokeOptions{Width: 2.0, Join: BevelJoin}), NonZero))
	test.That(t, math.Abs(area-(2*10+2*10-0.5)) < 1e-9, area)

	for _, poly := range corner.Stroke(StrokeOptions{Width: 2.0, Join: RoundJoin, Cap: RoundCap}) {
		test.That(t, 0.0 < poly.Area(), "counter clockwise")
	}
}

func TestDash(t *testing.T) {
	p := MustParseSVG[Canvas]("M0 0L10 0")
	test.String(t, p.Dash([]float64{2, 3}, 0.0, 0.1).String(), "M0 0L2 0M5 0L7 0")
	test.String(t, p.Dash([]float64{2, 3}, 1.0, 0.1).String(), "M0 0L1 0M4 0L6 0M9 0L10 0")
	test.String(t, p.Dash([]float64{}, 0.0, 0.1).String(), "M0 0L10 0")
}

func TestTriangulate(t *testing.T) {
	var tts = []struct {
		name string
		path string
		rule FillRule
		area float64
	}{
		{"square", "M0 0L10 0L10 10L0 10z", NonZero, 100},
		{"concave arrow", "M0 -1L6 -1L6 -3L10 0L6 3L6 1L0 1z", NonZero, 12 + 12},
		{"square with hole", "M0 0L10 0L10 10L0 10zM2 2L2 8L8 8L8 2z", NonZero, 100 - 36},
		{"overlapping squares", "M0 0L10 0L10 10L0 10zM5 5L15 5L15 15L5 15z", NonZero, 175},
		{"overlapping squares evenodd", "M0 0L10 0L10 10L0 10zM5 5L15 5L15 15L5 15z", EvenOdd, 150},
		{"bowtie", "M0 0L10 10L10 0L0 10z", NonZero, 50},
		{"pentagram nonzero", pentagram(), NonZero, pentagramArea(true)},
		{"pentagram evenodd", pentagram(), EvenOdd, pentagramArea(false)},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			p := MustParseSVG[Canvas](tt.path)
			tris := p.Triangulate(0.1, tt.rule)
			area := TriangleArea(tris)
			test.That(t, math.Abs(area-tt.area) < 1e-6, area, "!=", tt.area)
			for _, tri := range tris {
				test.That(t, -1e-9 <= tri.Area(), "triangles are counter clockwise")
			}
		})
	}
}

func TestTriangulateArrowSweep(t *testing.T) {
	// the same concave glyph through the sweep instead of ear clipping
	arrow := Polygon[Canvas]{{0, -1}, {6, -1}, {6, -3}, {10, 0}, {6, 3}, {6, 1}, {0, 1}}
	tris := sweepTriangulate([]Polygon[Canvas]{arrow}, NonZero)
	test.That(t, math.Abs(TriangleArea(tris)-arrow.Area()) < 1e-9)
}

func TestTriangulateCrossings(t *testing.T) {
	R := 10.0
	for k := 0; k < 12; k++ {
		theta := float64(k) * 0.37
		star := Polygon[Canvas]{}
		for i := 0; i < 5; i++ {
			sin, cos := math.Sincos(theta + math.Pi/2.0 + float64(2*i)*2.0*math.Pi/5.0)
			star = append(star, Point[Canvas]{3.0 + R*cos, -1.0 + R*sin})
		}
		nonzero := TriangleArea(sweepTriangulate([]Polygon[Canvas]{star}, NonZero))
		evenodd := TriangleArea(sweepTriangulate([]Polygon[Canvas]{star}, EvenOdd))
		test.That(t, math.Abs(nonzero-pentagramArea(true)) < 1e-6, k, nonzero)
		test.That(t, math.Abs(evenodd-pentagramArea(false)) < 1e-6, k, evenodd)
	}
}

func pentagram() string {
	p := Builder[Canvas]{}
	for i := 0; i < 5; i++ {
		sin, cos := math.Sincos(math.Pi/2.0 + float64(2*i)*2.0*math.Pi/5.0)
		if i == 0 {
			p.MoveTo(10*cos, 10*sin)
		} else {
			p.LineTo(10*cos, 10*sin)
		}
	}
	p.Close()
	return p.Path().String()
}

func pentagramArea(filled bool) float64 {
	// outer radius 10, the inner pentagon has radius r = 10 cos(72)/cos(36)
	R := 10.0
	r := R * math.Cos(2.0*math.Pi/5.0) / math.Cos(math.Pi/5.0)
	pentagon := 5.0 / 2.0 * r * r * math.Sin(2.0*math.Pi/5.0)
	star := 5.0 * R * r * math.Sin(math.Pi/5.0)
	if filled {
		return star
	}
	return star - pentagon
}

func TestDelaunay(t *testing.T) {
	pts := []Point[Data]{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0.4, 0.6}}
	tris, err := Delaunay(pts)
	test.Error(t, err)
	test.T(t, len(tris), 4)
	area := 0.0
	for _, tri := range tris {
		a := Triangle[Data]{pts[tri[0]], pts[tri[1]], pts[tri[2]]}.Area()
		test.That(t, 0.0 < a)
		area += a
	}
	test.That(t, math.Abs(area-1.0) < 1e-9)

	_, err = Delaunay([]Point[Data]{{0, 0}, {1, 1}, {2, 2}})
	test.That(t, err != nil, "collinear points")
}

package artist

import (
	"errors"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/mat"

	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/test"
)

func testContext(view geom.Bounds[geom.Data], w, h float64) (*DrawContext, *render.Recorder) {
	rec := render.NewRecorder(w, h)
	box := geom.Rect[geom.Canvas](0.0, 0.0, w, h)
	return &DrawContext{
		Renderer:  rec,
		Transform: geom.BoxAffine[geom.Data, geom.Canvas](view, box),
		Frame:     geom.BoxAffine[geom.Frame, geom.Canvas](geom.Rect[geom.Frame](0.0, 0.0, 1.0, 1.0), box),
		Box:       box,
		View:      view,
		Clip:      render.ClipTo(box),
		Theme:     DefaultTheme(),
	}, rec
}

func countLines(p geom.Path[geom.Canvas]) int {
	n := 0
	p.Segments(func(seg geom.Segment[geom.Canvas]) bool {
		if seg.Cmd == geom.LineTo {
			n++
		}
		return true
	})
	return n
}

func TestLines(t *testing.T) {
	l, err := NewLines([]float32{0, 1, 2, 3}, []float32{0, 1, 0, 1})
	test.Error(t, err)
	test.T(t, l.Extent(), geom.Rect[geom.Data](0, 0, 3, 1))

	ctx, rec := testContext(geom.Rect[geom.Data](0, 0, 3, 1), 300, 100)
	test.Error(t, l.Draw(ctx))
	paths := rec.Filter(render.PathOp)
	test.T(t, len(paths), 1)
	test.T(t, countLines(paths[0].Path), 3)
	test.T(t, paths[0].Path.Points()[1], geom.Pt[geom.Canvas](100, 100))
	test.Float(t, paths[0].Style.Width, 1.5)
	test.T(t, len(rec.Filter(render.MarkersOp)), 0)
}

func TestLinesBreak(t *testing.T) {
	nan := math32.NaN()
	l, err := NewLines([]float32{0, 1, 2, 3, 4}, []float32{0, 1, nan, 1, 0})
	test.Error(t, err)
	test.T(t, l.Extent(), geom.Rect[geom.Data](0, 0, 4, 1))

	ctx, rec := testContext(geom.Rect[geom.Data](0, 0, 4, 1), 100, 100)
	test.Error(t, l.Draw(ctx))
	test.T(t, len(rec.Ops[0].Path.Subpaths()), 2)
}

func TestLinesSteps(t *testing.T) {
	l, _ := NewLines([]float32{0, 1, 2}, []float32{0, 1, 2})
	l.DrawStyle = StepsPost
	x, y := l.steps()
	test.T(t, x, []float32{0, 1, 1, 2, 2})
	test.T(t, y, []float32{0, 0, 1, 1, 2})

	l.DrawStyle = StepsPre
	x, y = l.steps()
	test.T(t, x, []float32{0, 0, 1, 1, 2})
	test.T(t, y, []float32{0, 1, 1, 2, 2})
}

func TestShapeErrors(t *testing.T) {
	_, err := NewLines([]float32{0, 1}, []float32{0})
	test.That(t, errors.Is(err, ErrInvalidShape), "mismatched lengths")

	_, err = NewPie(nil, nil)
	test.That(t, errors.Is(err, ErrEmptyData), "empty pie")

	_, err = NewPie([]float32{1, -1}, nil)
	test.That(t, errors.Is(err, ErrInvalidShape), "negative pie value")

	_, err = NewGrid(2, 2, []float32{1, 2, 3})
	test.That(t, errors.Is(err, ErrInvalidShape), "grid size")

	_, err = NewHistogram(nil, 10)
	test.That(t, errors.Is(err, ErrEmptyData), "empty histogram")

	_, err = NewContour([]float32{0}, []float32{0}, Grid{Rows: 1, Cols: 1, Data: []float32{0}}, nil)
	test.That(t, err != nil, "contour of a single value")

	_, err = NewSpectrogram(make([]float32, 10), 16, 0, 1.0)
	test.That(t, errors.Is(err, ErrEmptyData), "short signal")
}

func TestGrid(t *testing.T) {
	g := Meshgrid([]float32{0, 1, 2}, []float32{10, 20}, func(x, y float32) float32 { return x + y })
	test.T(t, g.Rows, 2)
	test.T(t, g.Cols, 3)
	test.Float(t, float64(g.At(1, 2)), 22.0)

	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	g = GridFromMatrix(m)
	test.Float(t, float64(g.At(1, 0)), 3.0)

	lo, hi, ok := g.MinMax()
	test.That(t, ok)
	test.Float(t, float64(lo), 1.0)
	test.Float(t, float64(hi), 4.0)

	test.T(t, Linspace(0, 1, 5), []float32{0, 0.25, 0.5, 0.75, 1})
	test.T(t, F32([]int{1, 2}), []float32{1, 2})
}

func TestHistogram(t *testing.T) {
	h, err := NewHistogram([]float32{0, 1, 2, 3, 4}, 4)
	test.Error(t, err)
	test.T(t, h.Edges, []float64{0, 1, 2, 3, 4})
	test.T(t, h.Counts, []float64{1, 1, 1, 2}) // right edge inclusive

	h.Lo, h.Hi = 0.0, 2.0
	h.Bins = 2
	h.Compute()
	test.T(t, h.Counts, []float64{1, 2})

	h.Lo, h.Hi = 0.0, 0.0
	h.Density = true
	h.Compute()
	area := 0.0
	for i, c := range h.Counts {
		area += c * (h.Edges[i+1] - h.Edges[i])
	}
	test.Float(t, area, 1.0)
}

func TestBars(t *testing.T) {
	b, err := NewBars([]float32{0, 1, 2}, []float32{1, 3, -2})
	test.Error(t, err)
	test.T(t, b.Extent(), geom.Rect[geom.Data](-0.4, -2, 2.4, 3))

	b.Horizontal = true
	test.T(t, b.Extent(), geom.Rect[geom.Data](-2, -0.4, 3, 2.4))

	b.Colors = nil
	ctx, rec := testContext(geom.Rect[geom.Data](-2, -1, 3, 3), 100, 100)
	test.Error(t, b.Draw(ctx))
	test.T(t, len(rec.Filter(render.PathOp)), 1)
	test.T(t, len(rec.Ops[0].Path.Subpaths()), 3)
}

func TestImageHandle(t *testing.T) {
	g := GridFunc(2, 3, func(i, j int) float32 { return float32(i*3 + j) })
	im, err := NewImage(g)
	test.Error(t, err)
	test.T(t, im.Extent(), geom.Rect[geom.Data](0, 0, 3, 2))
	test.That(t, im.Handle() == nil)

	im.Layout(LayoutInfo{})
	h := im.Handle()
	test.That(t, h != nil)
	test.T(t, h.Refs(), int64(1))

	ctx, rec := testContext(geom.Rect[geom.Data](0, 0, 3, 2), 300, 200)
	test.Error(t, im.Draw(ctx))
	ops := rec.Filter(render.ImageOp)
	test.T(t, len(ops), 1)
	test.T(t, ops[0].Dst, geom.Rect[geom.Canvas](0, 0, 300, 200))
	test.That(t, ops[0].ImgOpts.FlipY, "lower origin")
	test.T(t, ops[0].Image.Pix.Bounds().Dx(), 3)

	im.Release()
	test.T(t, h.Refs(), int64(0))
	test.That(t, !h.State().Alive())
}

func TestColorMesh(t *testing.T) {
	c := GridFunc(2, 3, func(i, j int) float32 { return float32(i + j) })
	m, err := NewColorMesh(nil, nil, c, Flat)
	test.Error(t, err)
	test.T(t, m.Extent(), geom.Rect[geom.Data](0, 0, 3, 2))

	ctx, rec := testContext(m.Extent(), 100, 100)
	test.Error(t, m.Draw(ctx))
	ops := rec.Filter(render.TrianglesOp)
	test.T(t, len(ops), 1)
	test.T(t, len(ops[0].Mesh.Vertices), 24)
	test.T(t, len(ops[0].Mesh.Indices), 36)

	m, err = NewColorMesh(nil, nil, c, Gouraud)
	test.Error(t, err)
	rec.Reset()
	test.Error(t, m.Draw(ctx))
	ops = rec.Filter(render.TrianglesOp)
	test.T(t, len(ops[0].Mesh.Vertices), 6)
	test.T(t, len(ops[0].Mesh.Indices), 12)

	_, err = NewColorMesh([]float32{0, 1}, nil, c, Flat)
	test.That(t, errors.Is(err, ErrInvalidShape), "flat needs cols+1 edges")
}

// contour lines must never cross themselves
func TestContourSelfIntersection(t *testing.T) {
	x := Linspace(-3.0, 3.0, 241)
	y := Linspace(-2.0, 2.0, 161)
	z := Meshgrid(x, y, func(x, y float32) float32 {
		return math32.Exp(-x*x-y*y) - math32.Exp(-(x-1)*(x-1)-(y-1)*(y-1))
	})
	c, err := NewContour(x, y, z, nil)
	test.Error(t, err)
	test.That(t, 0 < len(c.Levels()), "levels")
	test.That(t, 0 < len(c.Lines()), "lines")

	for _, line := range c.Lines() {
		pts := line.Points
		n := len(pts) - 1
		if line.Closed {
			n = len(pts)
		}
		seg := func(i int) (geom.Point[geom.Data], geom.Point[geom.Data]) {
			return pts[i], pts[(i+1)%len(pts)]
		}
		for i := 0; i < n; i++ {
			a0, a1 := seg(i)
			for j := i + 2; j < n; j++ {
				if line.Closed && i == 0 && j == n-1 {
					continue
				}
				b0, b1 := seg(j)
				if geom.SegmentsCross(a0, a1, b0, b1) {
					t.Fatalf("level %v: segment %d crosses segment %d", line.Level, i, j)
				}
			}
		}
	}
}

func TestMarchingSquaresCircle(t *testing.T) {
	x := Linspace(-2.0, 2.0, 41)
	z := Meshgrid(x, x, func(x, y float32) float32 { return x*x + y*y })
	lines := MarchingSquares(x, x, z, 1.0)
	test.T(t, len(lines), 1)
	test.That(t, lines[0].Closed, "circle is closed")
	for _, p := range lines[0].Points {
		test.That(t, math.Abs(p.Length()-1.0) < 0.02, "point on unit circle", p)
	}
}

func TestMarchingSquaresSaddle(t *testing.T) {
	z, _ := NewGrid(2, 2, []float32{1, 0, 0, 1})
	lines := MarchingSquares([]float32{0, 1}, []float32{0, 1}, z, 0.5)
	test.T(t, len(lines), 2)
	for _, l := range lines {
		test.That(t, !l.Closed)
		test.T(t, len(l.Points), 2)
	}

	z, _ = NewGrid(2, 2, []float32{1, 0, 0, 1})
	z.Set(0, 0, math32.NaN())
	test.T(t, len(MarchingSquares([]float32{0, 1}, []float32{0, 1}, z, 0.5)), 0)
}

func TestAutoLevels(t *testing.T) {
	levels := AutoLevels(0.0, 1.0, 8)
	test.T(t, levels, []float64{0.25, 0.5, 0.75})
	for _, l := range levels {
		test.That(t, 0.0 < l && l < 1.0, "level inside range", l)
	}
}

func TestContourFilled(t *testing.T) {
	x := Linspace(0.0, 1.0, 5)
	z := Meshgrid(x, x, func(x, y float32) float32 { return x })
	c, err := NewContourFilled(x, x, z, nil)
	test.Error(t, err)
	test.Float(t, c.Levels()[0], 0.0)
	test.Float(t, c.Levels()[len(c.Levels())-1], 1.0)

	ctx, rec := testContext(c.Extent(), 100, 100)
	test.Error(t, c.Draw(ctx))
	ops := rec.Filter(render.TrianglesOp)
	test.T(t, len(ops), 1)
	test.T(t, len(ops[0].Mesh.Indices), 16*6)
}

func TestQuiver(t *testing.T) {
	q, err := NewQuiver([]float32{0, 1}, []float32{0, 1}, []float32{1, 0}, []float32{0, 1})
	test.Error(t, err)
	q.Scale = 10.0

	ctx, rec := testContext(geom.Rect[geom.Data](-1, -1, 2, 2), 300, 300)
	test.Error(t, q.Draw(ctx))
	ops := rec.Filter(render.PathOp)
	test.T(t, len(ops), 1)
	subs := ops[0].Path.Subpaths()
	test.T(t, len(subs), 2)
	b := subs[0].Bounds()
	test.Float(t, b.X0, 100.0)
	test.Float(t, b.X1, 110.0)

	_, err = NewQuiver([]float32{0}, []float32{0}, []float32{1, 2}, []float32{0})
	test.That(t, errors.Is(err, ErrInvalidShape))
}

func TestPatch(t *testing.T) {
	r := Rectangle(1, 2, 3, 4)
	test.T(t, r.Extent(), geom.Rect[geom.Data](1, 2, 4, 6))

	r.Rotation = 90.0
	e := r.Extent()
	test.Float(t, e.W(), 4.0)
	test.Float(t, e.H(), 3.0)
	test.Float(t, e.Center().X, 2.5)
	test.Float(t, e.Center().Y, 4.0)

	a := arrowPolygon(geom.Pt[geom.Data](0, 0), geom.Pt[geom.Data](10, 0), 1.0, 3.0, 4.5)
	test.T(t, len(a), 7)
	test.T(t, a[3], geom.Pt[geom.Data](10, 0))
	test.That(t, 0.0 < geom.Polygon[geom.Data](a).Area(), "counter clockwise")
	test.That(t, arrowPolygon(geom.Pt[geom.Data](0, 0), geom.Pt[geom.Data](0, 0), 1.0, 3.0, 4.5) == nil)

	_, err := Polygon([]float32{0, 1}, []float32{0, 1})
	test.That(t, errors.Is(err, ErrInvalidShape))
}

func TestSpans(t *testing.T) {
	h := NewHLine(2.0)
	v := NewVLine(-1.0)
	l, _ := NewLines([]float32{0, 1}, []float32{0, 1})
	ext := Combine(Combine(l.Extent(), h.Extent()), v.Extent())
	test.T(t, ext, geom.Rect[geom.Data](-1, 0, 1, 2))

	ctx, rec := testContext(geom.Rect[geom.Data](-1, 0, 1, 2), 100, 100)
	test.Error(t, h.Draw(ctx))
	pts := rec.Ops[0].Path.Points()
	test.T(t, pts, []geom.Point[geom.Canvas]{{X: 0, Y: 100}, {X: 100, Y: 100}})
}

func TestStem(t *testing.T) {
	s, err := NewStem([]float32{0, 1, 2}, []float32{1, 2, 3})
	test.Error(t, err)
	test.T(t, s.Extent(), geom.Rect[geom.Data](0, 0, 2, 3))

	ctx, rec := testContext(s.Extent(), 100, 100)
	test.Error(t, s.Draw(ctx))
	test.T(t, len(rec.Filter(render.PathOp)), 2) // stems and baseline
	test.T(t, len(rec.Filter(render.MarkersOp)), 1)
	test.T(t, len(rec.Ops[0].Path.Subpaths()), 3)
}

func TestFillBetween(t *testing.T) {
	nan := math32.NaN()
	f, err := NewFillBetween([]float32{0, 1, 2, 3, 4}, []float32{1, 2, nan, 2, 1}, nil)
	test.Error(t, err)
	test.T(t, f.Extent(), geom.Rect[geom.Data](0, 0, 4, 2))

	ctx, rec := testContext(f.Extent(), 100, 100)
	test.Error(t, f.Draw(ctx))
	test.T(t, len(rec.Ops), 1)
	test.T(t, len(rec.Ops[0].Path.Subpaths()), 2)
}

func TestText(t *testing.T) {
	ctx, rec := testContext(geom.Rect[geom.Data](0, 0, 1, 1), 200, 100)
	txt := NewText(0.5, 0.5, "label", FrameCoords)
	test.That(t, txt.Extent().IsEmpty(), "text does not autoscale")
	test.Error(t, txt.Draw(ctx))
	ops := rec.Filter(render.TextOp)
	test.T(t, len(ops), 1)
	test.T(t, ops[0].Text.Pos, geom.Pt[geom.Canvas](100, 50))
	test.Float(t, ops[0].Text.Style.Size, ctx.Theme.Text.Size)
	test.That(t, !ops[0].Clip.Set, "unclipped")
}

func TestTriangulation(t *testing.T) {
	x := []float32{0, 1, 1, 0, 0.5}
	y := []float32{0, 0, 1, 1, 0.5}
	tri, err := NewTriangulation(x, y, nil)
	test.Error(t, err)
	test.T(t, len(tri.Triangles), 4)
	test.T(t, len(tri.Edges()), 8)

	_, err = NewTriangulation(x, y, [][3]int{{0, 1, 7}})
	test.That(t, errors.Is(err, ErrInvalidShape))

	p, err := NewTriplot(x, y, nil)
	test.Error(t, err)
	ctx, rec := testContext(p.Extent(), 100, 100)
	test.Error(t, p.Draw(ctx))
	test.T(t, countLines(rec.Ops[0].Path), 8)
}

func TestMarchingTriangles(t *testing.T) {
	tri := Triangulation{
		X:         []float32{0, 1, 1, 0},
		Y:         []float32{0, 0, 1, 1},
		Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
	z := []float32{0, 1, 2, 1}
	lines := MarchingTriangles(tri, z, 1.5)
	test.T(t, len(lines), 1)
	test.T(t, len(lines[0].Points), 3)
	for _, p := range lines[0].Points {
		test.Float(t, p.X+p.Y, 1.5)
	}

	c, err := NewTricontour(tri.X, tri.Y, z, tri.Triangles, []float64{0.5, 1.5})
	test.Error(t, err)
	test.T(t, len(c.Lines()), 2)

	c.Filled = true
	ctx, rec := testContext(c.Extent(), 100, 100)
	test.Error(t, c.Draw(ctx))
	ops := rec.Filter(render.TrianglesOp)
	test.T(t, len(ops[0].Mesh.Indices), 6)
}

func TestPie(t *testing.T) {
	p, err := NewPie([]float32{1, 1, 2}, []string{"a", "b", "c"})
	test.Error(t, err)
	ws := p.wedges()
	test.Float(t, ws[0].theta0, 0.0)
	test.Float(t, ws[0].theta1, 90.0)
	test.Float(t, ws[2].theta1, 360.0)
	test.T(t, len(p.LegendEntries()), 3)
	test.T(t, p.LegendEntries()[1].Style.Face, p.Colors.Get(1))

	ctx, rec := testContext(p.Extent(), 200, 200)
	test.Error(t, p.Draw(ctx))
	test.T(t, len(rec.Filter(render.PathOp)), 3)
	test.T(t, len(rec.Filter(render.TextOp)), 3)
	test.T(t, len(p.LabelBoxes()), 3)
}

func TestSpectrogram(t *testing.T) {
	fs := 64.0
	x := make([]float32, 512)
	for i := range x {
		x[i] = float32(math.Sin(2.0 * math.Pi * 8.0 * float64(i) / fs))
	}
	s, err := NewSpectrogram(x, 64, 32, fs)
	test.Error(t, err)
	test.T(t, s.Grid.Rows, 33)
	test.T(t, s.Grid.Cols, 15)
	test.Float(t, float64(s.Freqs[8]), 8.0)

	peak := 0
	for i := 0; i < s.Grid.Rows; i++ {
		if s.Power(peak, 3) < s.Power(i, 3) {
			peak = i
		}
	}
	test.T(t, peak, 8)
	test.That(t, s.Extent().Contains(geom.Pt[geom.Data](float64(s.Times[0]), 8.0)))
}

func TestCollection(t *testing.T) {
	c, err := NewCollection([]float32{0, 1, 2}, []float32{0, 1, 2})
	test.Error(t, err)
	c.Values = []float32{0, 5, 10}
	test.Error(t, c.Validate())

	ctx, rec := testContext(c.Extent(), 100, 100)
	test.Error(t, c.Draw(ctx))
	ops := rec.Filter(render.MarkersOp)
	test.T(t, len(ops), 1)
	test.T(t, len(ops[0].Markers.Faces), 3)
	test.T(t, ops[0].Markers.Faces[0], c.Mapper().Color(0.0))
	test.T(t, ops[0].Markers.Faces[2], c.Mapper().Color(10.0))

	c.Sizes = []float32{1}
	test.That(t, errors.Is(c.Validate(), ErrInvalidShape))
}

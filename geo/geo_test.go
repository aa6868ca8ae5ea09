package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/tdewolff/figure/artist"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/test"
)

func TestShapesExtent(t *testing.T) {
	poly := orb.Polygon{
		orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
		orb.Ring{{1, 1}, {1, 2}, {2, 2}, {2, 1}, {1, 1}},
	}
	s := New(poly, orb.LineString{{-1, 5}, {2, 6}}, orb.Point{5, -2})
	test.T(t, s.Extent(), geom.Rect[geom.Data](-1, -2, 5, 6))
	test.T(t, len(s.paths.Subpaths()), 2)

	s.SetProjection(func(x, y float64) (float64, float64) { return 2.0 * x, y })
	test.T(t, s.Extent(), geom.Rect[geom.Data](-2, -2, 10, 6))
}

func TestShapesDraw(t *testing.T) {
	s := New(orb.MultiPolygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}}, orb.MultiPoint{{0.5, 0.5}, {0.25, 0.75}})
	rec := render.NewRecorder(100, 100)
	box := geom.Rect[geom.Canvas](0, 0, 100, 100)
	ctx := &artist.DrawContext{
		Renderer:  rec,
		Transform: geom.BoxAffine[geom.Data, geom.Canvas](geom.Rect[geom.Data](0, 0, 1, 1), box),
		Box:       box,
		Clip:      render.ClipTo(box),
		Theme:     artist.DefaultTheme(),
	}
	test.Error(t, s.Draw(ctx))
	test.T(t, len(rec.Filter(render.PathOp)), 1)
	markers := rec.Filter(render.MarkersOp)
	test.T(t, len(markers), 1)
	test.T(t, markers[0].Markers.Points[0], geom.Pt[geom.Canvas](50, 50))
	test.T(t, rec.Ops[0].Style.FillRule, geom.EvenOdd)
}

func TestEPSG(t *testing.T) {
	mercator := EPSG(4326, 3857, 1.0)
	x, y := mercator(0.0, 0.0)
	test.That(t, math.Abs(x) < 1e-6 && math.Abs(y) < 1e-6, "origin maps onto origin")

	x, _ = mercator(180.0, 0.0)
	test.That(t, math.Abs(x-20037508.34) < 1.0, "antimeridian", x)

	km := EPSG(4326, 3857, 1000.0)
	x, _ = km(180.0, 0.0)
	test.That(t, math.Abs(x-20037.50834) < 1e-3, "scaled", x)
}

// Package geo draws geographic geometries, optionally projected from longitude/latitude onto a planar coordinate
// reference system.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/wroge/wgs84/v2"

	"github.com/tdewolff/figure/artist"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// Projection maps a coordinate of one reference system onto another.
type Projection func(x, y float64) (float64, float64)

// EPSG returns the projection between two coordinate reference systems by their EPSG codes, such as 4326 for WGS84
// longitude/latitude and 3857 for web mercator. The planar coordinates are divided by scale.
func EPSG(from, to int, scale float64) Projection {
	f := wgs84.Transform(wgs84.EPSG(from), wgs84.EPSG(to))
	if scale == 0.0 {
		scale = 1.0
	}
	return func(x, y float64) (float64, float64) {
		x, y, _ = f(x, y, 0.0)
		return x / scale, y / scale
	}
}

// UTM returns the projection from WGS84 onto a UTM zone, north or south.
func UTM(zone int, north bool, scale float64) Projection {
	code := 32700 + zone
	if north {
		code = 32600 + zone
	}
	return EPSG(4326, code, scale)
}

// Shapes draws points as markers, line strings as lines, and polygons as filled areas with holes.
type Shapes struct {
	Geometries []orb.Geometry
	Project    Projection // nil draws the coordinates as they are
	Style      style.PathStyle
	Line       style.PathStyle
	Label      string

	paths  geom.Path[geom.Data] // projected polygons
	lines  geom.Path[geom.Data] // projected line strings
	points []geom.Point[geom.Data]
	dirty  bool
}

// New returns the shapes of the geometries.
func New(geometries ...orb.Geometry) *Shapes {
	s := style.DefaultPathStyle()
	s.Face = colors.Tableau10[0].WithAlpha(0.6)
	s.Edge = colors.Black
	s.Width = 0.5
	s.Marker = style.Circle
	line := style.DefaultPathStyle()
	line.Width = 1.0
	return &Shapes{Geometries: geometries, Style: s, Line: line, dirty: true}
}

// Add appends geometries.
func (s *Shapes) Add(geometries ...orb.Geometry) {
	s.Geometries = append(s.Geometries, geometries...)
	s.dirty = true
}

// SetProjection changes the projection, nil removes it.
func (s *Shapes) SetProjection(p Projection) {
	s.Project = p
	s.dirty = true
}

func (s *Shapes) point(p orb.Point) geom.Point[geom.Data] {
	x, y := p[0], p[1]
	if s.Project != nil {
		x, y = s.Project(x, y)
	}
	return geom.Pt[geom.Data](x, y)
}

func (s *Shapes) ring(b *geom.Builder[geom.Data], ring orb.Ring) {
	if len(ring) < 3 {
		return
	}
	if ring.Closed() {
		ring = ring[:len(ring)-1]
	}
	pts := make([]geom.Point[geom.Data], len(ring))
	for i, p := range ring {
		pts[i] = s.point(p)
	}
	b.Polygon(pts)
}

func (s *Shapes) lineString(b *geom.Builder[geom.Data], ls orb.LineString) {
	if len(ls) < 2 {
		return
	}
	pts := make([]geom.Point[geom.Data], len(ls))
	for i, p := range ls {
		pts[i] = s.point(p)
	}
	b.Polyline(pts)
}

func (s *Shapes) add(polys, lines *geom.Builder[geom.Data], g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		s.points = append(s.points, s.point(g))
	case orb.MultiPoint:
		for _, p := range g {
			s.points = append(s.points, s.point(p))
		}
	case orb.LineString:
		s.lineString(lines, g)
	case orb.MultiLineString:
		for _, ls := range g {
			s.lineString(lines, ls)
		}
	case orb.Ring:
		s.ring(polys, g)
	case orb.Polygon:
		for _, r := range g {
			s.ring(polys, r)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, r := range poly {
				s.ring(polys, r)
			}
		}
	case orb.Bound:
		s.ring(polys, g.ToRing())
	case orb.Collection:
		for _, h := range g {
			s.add(polys, lines, h)
		}
	}
}

// project converts the geometries to paths when they or the projection changed.
func (s *Shapes) project() {
	if !s.dirty {
		return
	}
	polys, lines := geom.Builder[geom.Data]{}, geom.Builder[geom.Data]{}
	s.points = s.points[:0]
	for _, g := range s.Geometries {
		s.add(&polys, &lines, g)
	}
	s.paths, s.lines = polys.Path(), lines.Path()
	s.dirty = false
}

func (s *Shapes) Extent() geom.Bounds[geom.Data] {
	s.project()
	b := s.paths.Bounds().Union(s.lines.Bounds())
	for _, p := range s.points {
		b = b.AddPoint(p)
	}
	return b
}

func (s *Shapes) Layout(artist.LayoutInfo) {
	s.project()
}

func (s *Shapes) Draw(ctx *artist.DrawContext) error {
	s.project()
	st := ctx.Style(s.Style)
	if !s.paths.Empty() {
		// holes are rings of opposite orientation
		fill := st
		fill.FillRule = geom.EvenOdd
		ctx.Renderer.DrawPath(ctx.Path(s.paths), fill, ctx.Clip)
	}
	if !s.lines.Empty() {
		line := ctx.Style(s.Line)
		line.Face = colors.Transparent
		ctx.Renderer.DrawPath(ctx.Path(s.lines), line, ctx.Clip)
	}
	if 0 < len(s.points) && !st.Marker.IsNone() {
		pts := make([]geom.Point[geom.Canvas], 0, len(s.points))
		for _, p := range s.points {
			if q := ctx.Transform.Point(p); !isNaN(q) {
				pts = append(pts, q)
			}
		}
		ctx.Renderer.DrawMarkers(render.Markers{Marker: st.Marker, Points: pts}, st, ctx.Clip)
	}
	return nil
}

func isNaN(p geom.Point[geom.Canvas]) bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

func (s *Shapes) Legend() (artist.LegendHandle, bool) {
	return artist.LegendHandle{Label: s.Label, Kind: artist.PatchHandle, Style: s.Style}, s.Label != ""
}

package artist

import (
	"fmt"
	"sort"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// Triangulation is a set of triangles over scattered points.
type Triangulation struct {
	X, Y      []float32
	Triangles [][3]int
}

// NewTriangulation returns the triangulation of the points, nil triangles computes the Delaunay triangulation.
func NewTriangulation(x, y []float32, triangles [][3]int) (Triangulation, error) {
	if err := checkXY("triangulation", x, y); err != nil {
		return Triangulation{}, err
	}
	if triangles == nil {
		if len(x) < 3 {
			return Triangulation{}, fmt.Errorf("triangulation of %d points: %w", len(x), ErrInvalidShape)
		}
		pts := make([]geom.Point[geom.Data], len(x))
		for i := range x {
			pts[i] = geom.Pt[geom.Data](float64(x[i]), float64(y[i]))
		}
		var err error
		if triangles, err = geom.Delaunay(pts); err != nil {
			return Triangulation{}, err
		}
	}
	for _, tri := range triangles {
		for _, k := range tri {
			if k < 0 || len(x) <= k {
				return Triangulation{}, fmt.Errorf("triangle vertex %d of %d points: %w", k, len(x), ErrInvalidShape)
			}
		}
	}
	return Triangulation{x, y, triangles}, nil
}

// Edges returns the unique edges as pairs of vertex indices with the smaller index first, in order of appearance.
func (t Triangulation) Edges() [][2]int {
	seen := map[[2]int]bool{}
	var edges [][2]int
	for _, tri := range t.Triangles {
		for k := 0; k < 3; k++ {
			e := [2]int{tri[k], tri[(k+1)%3]}
			if e[1] < e[0] {
				e[0], e[1] = e[1], e[0]
			}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return edges
}

func (t Triangulation) extent() geom.Bounds[geom.Data] {
	return extentXY(t.X, t.Y)
}

////////////////////////////////////////////////////////////////

// Triplot draws the edges of a triangulation with optional markers at the vertices.
type Triplot struct {
	Tri   Triangulation
	Style style.PathStyle
	Label string
}

// NewTriplot returns the edges of the triangulation of the points.
func NewTriplot(x, y []float32, triangles [][3]int) (*Triplot, error) {
	tri, err := NewTriangulation(x, y, triangles)
	if err != nil {
		return nil, err
	}
	s := style.DefaultPathStyle()
	s.Width = 1.0
	return &Triplot{Tri: tri, Style: s}, nil
}

func (t *Triplot) Extent() geom.Bounds[geom.Data] {
	return t.Tri.extent()
}

func (t *Triplot) Layout(LayoutInfo) {}

func (t *Triplot) Draw(ctx *DrawContext) error {
	s := ctx.Style(t.Style)
	s.Face = colors.Transparent
	b := geom.Builder[geom.Canvas]{}
	for _, e := range t.Tri.Edges() {
		p := ctx.Point(float64(t.Tri.X[e[0]]), float64(t.Tri.Y[e[0]]))
		q := ctx.Point(float64(t.Tri.X[e[1]]), float64(t.Tri.Y[e[1]]))
		if finite(p) && finite(q) {
			b.MoveTo(p.X, p.Y)
			b.LineTo(q.X, q.Y)
		}
	}
	if p := b.Path(); s.HasStroke() && !p.Empty() {
		ctx.Renderer.DrawPath(p, s, ctx.Clip)
	}
	if !s.Marker.IsNone() {
		pts, _ := ctx.Points(t.Tri.X, t.Tri.Y)
		ctx.Renderer.DrawMarkers(render.Markers{Marker: s.Marker, Points: pts}, s, ctx.Clip)
	}
	return nil
}

func (t *Triplot) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: t.Label, Kind: LineHandle, Style: t.Style}, t.Label != ""
}

////////////////////////////////////////////////////////////////

// Tricontour draws iso-lines of values at the vertices of a triangulation, the filled variant draws the triangles
// with the colors interpolated between the vertices instead.
type Tricontour struct {
	Tri    Triangulation
	Z      []float32
	Filled bool
	Map    *colors.ColorMap
	Norm   colors.Norm
	Colors []colors.Color
	Style  style.PathStyle
	Label  string

	levels []float64
	lines  []ContourLine
}

// NewTricontour returns iso-lines of z over the triangulation of x,y at the given levels, nil levels are chosen
// automatically.
func NewTricontour(x, y, z []float32, triangles [][3]int, levels []float64) (*Tricontour, error) {
	if len(z) != len(x) {
		return nil, fmt.Errorf("tricontour: %d points and %d values: %w", len(x), len(z), ErrInvalidShape)
	}
	tri, err := NewTriangulation(x, y, triangles)
	if err != nil {
		return nil, err
	}
	s := style.DefaultPathStyle()
	s.Width = 1.0
	c := &Tricontour{Tri: tri, Z: z, Style: s}
	c.SetLevels(levels)
	return c, nil
}

// SetLevels recomputes the lines, nil chooses levels automatically.
func (c *Tricontour) SetLevels(levels []float64) {
	if levels == nil {
		if lo, hi, ok := minMax(c.Z); ok {
			levels = AutoLevels(float64(lo), float64(hi), 8)
		}
	}
	levels = append([]float64{}, levels...)
	sort.Float64s(levels)
	c.levels = levels
	c.lines = c.lines[:0]
	for _, level := range levels {
		c.lines = append(c.lines, MarchingTriangles(c.Tri, c.Z, level)...)
	}
}

func (c *Tricontour) Levels() []float64 {
	return c.levels
}

func (c *Tricontour) Lines() []ContourLine {
	return c.lines
}

// MarchingTriangles returns the iso-lines of values z at the vertices of a triangulation at a level.
func MarchingTriangles(t Triangulation, z []float32, level float64) []ContourLine {
	n := uint64(len(t.X))
	s := newSegmentSet()
	point := func(a, b int) uint64 {
		if b < a {
			a, b = b, a
		}
		key := uint64(a)*n + uint64(b)
		if _, ok := s.pts[key]; !ok {
			za, zb := float64(z[a]), float64(z[b])
			u := (level - za) / (zb - za)
			pa := geom.Pt[geom.Data](float64(t.X[a]), float64(t.Y[a]))
			pb := geom.Pt[geom.Data](float64(t.X[b]), float64(t.Y[b]))
			s.pts[key] = pa.Interpolate(pb, u)
		}
		return key
	}
	for _, tri := range t.Triangles {
		if !finite32(z[tri[0]]) || !finite32(z[tri[1]]) || !finite32(z[tri[2]]) {
			continue
		}
		var crossed []uint64
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if (level <= float64(z[a])) != (level <= float64(z[b])) {
				crossed = append(crossed, point(a, b))
			}
		}
		if len(crossed) == 2 {
			s.add(crossed[0], crossed[1])
		}
	}
	return s.lines(level)
}

func (c *Tricontour) Mapper() colors.Mapper {
	norm := c.Norm
	if norm == nil {
		if c.Filled || len(c.levels) == 0 {
			norm = colors.Autoscale(c.Z)
		} else {
			norm = colors.LinearNorm{Min: c.levels[0], Max: c.levels[len(c.levels)-1]}
		}
	}
	return colors.Mapper{Map: colorMapOr(c.Map), Norm: norm}
}

func (c *Tricontour) Extent() geom.Bounds[geom.Data] {
	return c.Tri.extent()
}

func (c *Tricontour) Layout(LayoutInfo) {}

func (c *Tricontour) Draw(ctx *DrawContext) error {
	mapper := c.Mapper()
	if c.Filled {
		mesh := render.Mesh{
			Vertices: make([]geom.Point[geom.Canvas], len(c.Tri.X)),
			Colors:   make([]colors.Color, len(c.Tri.X)),
		}
		for i := range c.Tri.X {
			mesh.Vertices[i] = ctx.Point(float64(c.Tri.X[i]), float64(c.Tri.Y[i]))
			mesh.Colors[i] = mapper.Color(float64(c.Z[i]))
		}
		for _, tri := range c.Tri.Triangles {
			if finite(mesh.Vertices[tri[0]]) && finite(mesh.Vertices[tri[1]]) && finite(mesh.Vertices[tri[2]]) &&
				finite32(c.Z[tri[0]]) && finite32(c.Z[tri[1]]) && finite32(c.Z[tri[2]]) {
				mesh.Indices = append(mesh.Indices, uint32(tri[0]), uint32(tri[1]), uint32(tri[2]))
			}
		}
		if len(mesh.Indices) != 0 {
			ctx.Renderer.DrawTriangles(mesh, ctx.Clip)
		}
		return nil
	}

	s := ctx.Style(c.Style)
	s.Face = colors.Transparent
	for k, level := range c.levels {
		b := geom.Builder[geom.Data]{}
		for _, line := range c.lines {
			if line.Level == level {
				b.AppendPath(line.Path())
			}
		}
		if p := b.Path(); !p.Empty() {
			if 0 < len(c.Colors) {
				s.Edge = c.Colors[k%len(c.Colors)]
			} else {
				s.Edge = mapper.Color(level)
			}
			ctx.Renderer.DrawPath(ctx.Path(p), s, ctx.Clip)
		}
	}
	return nil
}

func (c *Tricontour) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: c.Label, Kind: LineHandle, Style: c.Style}, c.Label != ""
}

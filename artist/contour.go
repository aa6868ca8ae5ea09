package artist

import (
	"fmt"
	"math"
	"sort"

	"github.com/tdewolff/figure/axis"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// ContourLine is an iso-line at a level. Closed lines do not repeat their first point.
type ContourLine struct {
	Level  float64
	Points []geom.Point[geom.Data]
	Closed bool
}

// Path returns the line as a path.
func (l ContourLine) Path() geom.Path[geom.Data] {
	if l.Closed {
		return geom.PolygonPath(l.Points)
	}
	return geom.PolylinePath(l.Points)
}

// segmentSet collects the line segments of a level between crossing points keyed by the grid edge they lie on, and
// stitches them into lines. Each edge is shared by at most two cells, so each crossing point ends at most two segments.
type segmentSet struct {
	pts  map[uint64]geom.Point[geom.Data]
	segs [][2]uint64
	adj  map[uint64][2]int
}

func newSegmentSet() *segmentSet {
	return &segmentSet{pts: map[uint64]geom.Point[geom.Data]{}, adj: map[uint64][2]int{}}
}

func (s *segmentSet) add(a, b uint64) {
	if a == b {
		return
	}
	n := len(s.segs)
	s.segs = append(s.segs, [2]uint64{a, b})
	for _, k := range [2]uint64{a, b} {
		e, ok := s.adj[k]
		if !ok {
			e = [2]int{-1, -1}
		}
		if e[0] == -1 {
			e[0] = n
		} else {
			e[1] = n
		}
		s.adj[k] = e
	}
}

func (s *segmentSet) degree(k uint64) int {
	e := s.adj[k]
	if e[1] != -1 {
		return 2
	}
	return 1
}

func (s *segmentSet) lines(level float64) []ContourLine {
	used := make([]bool, len(s.segs))
	var lines []ContourLine
	walk := func(start int, key uint64) {
		first := key
		keys := []uint64{key}
		cur := start
		for {
			used[cur] = true
			seg := s.segs[cur]
			if seg[0] == key {
				key = seg[1]
			} else {
				key = seg[0]
			}
			keys = append(keys, key)
			next := -1
			for _, n := range s.adj[key] {
				if n != -1 && n != cur && !used[n] {
					next = n
				}
			}
			if next == -1 {
				break
			}
			cur = next
		}
		closed := 3 < len(keys) && keys[len(keys)-1] == first
		if closed {
			keys = keys[:len(keys)-1]
		}
		pts := make([]geom.Point[geom.Data], 0, len(keys))
		for _, k := range keys {
			p := s.pts[k]
			if len(pts) == 0 || !pts[len(pts)-1].Equals(p) {
				pts = append(pts, p)
			}
		}
		if closed && 1 < len(pts) && pts[0].Equals(pts[len(pts)-1]) {
			pts = pts[:len(pts)-1]
		}
		if 2 <= len(pts) {
			lines = append(lines, ContourLine{Level: level, Points: pts, Closed: closed && 3 <= len(pts)})
		}
	}

	// open lines start at the border
	for i, seg := range s.segs {
		if used[i] {
			continue
		}
		if s.degree(seg[0]) == 1 {
			walk(i, seg[0])
		} else if s.degree(seg[1]) == 1 {
			walk(i, seg[1])
		}
	}
	for i, seg := range s.segs {
		if !used[i] {
			walk(i, seg[0])
		}
	}
	return lines
}

// MarchingSquares returns the iso-lines of z at a level, with z sampled at columns x and rows y. Values at the level
// count as above it. Saddle cells are resolved by the mean of their corners and cells with a NaN corner are skipped.
func MarchingSquares(x, y []float32, z Grid, level float64) []ContourLine {
	rows, cols := z.Rows, z.Cols
	s := newSegmentSet()
	hEdge := func(i, j int) uint64 { return uint64(i*cols+j) * 2 }
	vEdge := func(i, j int) uint64 { return uint64(i*cols+j)*2 + 1 }
	cross := func(z0, z1 float64) float64 { return (level - z0) / (z1 - z0) }
	point := func(key uint64, i, j int, z0, z1 float64, vertical bool) uint64 {
		if _, ok := s.pts[key]; !ok {
			t := cross(z0, z1)
			if vertical {
				y0, y1 := float64(y[i]), float64(y[i+1])
				s.pts[key] = geom.Pt[geom.Data](float64(x[j]), y0+t*(y1-y0))
			} else {
				x0, x1 := float64(x[j]), float64(x[j+1])
				s.pts[key] = geom.Pt[geom.Data](x0+t*(x1-x0), float64(y[i]))
			}
		}
		return key
	}

	for i := 0; i+1 < rows; i++ {
		for j := 0; j+1 < cols; j++ {
			za, zb := float64(z.At(i, j)), float64(z.At(i, j+1))
			zc, zd := float64(z.At(i+1, j+1)), float64(z.At(i+1, j))
			if math.IsNaN(za) || math.IsNaN(zb) || math.IsNaN(zc) || math.IsNaN(zd) {
				continue
			}
			ha, hb, hc, hd := level <= za, level <= zb, level <= zc, level <= zd
			if ha == hb && hb == hc && hc == hd {
				continue
			}

			var bottom, right, top, left uint64
			var crossed []uint64
			if ha != hb {
				bottom = point(hEdge(i, j), i, j, za, zb, false)
				crossed = append(crossed, bottom)
			}
			if hb != hc {
				right = point(vEdge(i, j+1), i, j+1, zb, zc, true)
				crossed = append(crossed, right)
			}
			if hd != hc {
				top = point(hEdge(i+1, j), i+1, j, zd, zc, false)
				crossed = append(crossed, top)
			}
			if ha != hd {
				left = point(vEdge(i, j), i, j, za, zd, true)
				crossed = append(crossed, left)
			}

			if len(crossed) == 2 {
				s.add(crossed[0], crossed[1])
				continue
			}
			// saddle: either the high corners a,c or b,d are diagonal, the center decides which pair is connected
			center := level <= (za+zb+zc+zd)/4.0
			if ha == center {
				s.add(bottom, right)
				s.add(top, left)
			} else {
				s.add(bottom, left)
				s.add(top, right)
			}
		}
	}
	return s.lines(level)
}

// AutoLevels returns the levels at evenly spaced values strictly within [lo, hi], between n/2 and n of them
// including the bounds.
func AutoLevels(lo, hi float64, n int) []float64 {
	if !(lo < hi) {
		return nil
	}
	major, _ := axis.LinearLocator{MaxTicks: n, MinTicks: max(min(3, n), n/2)}.Ticks(lo, hi)
	levels := major[:0]
	for _, v := range major {
		if lo < v && v < hi {
			levels = append(levels, v)
		}
	}
	return levels
}

////////////////////////////////////////////////////////////////

// Contour draws iso-lines of a grid of values. The filled variant colors the bands between levels instead, by the
// band of the mean value of each cell.
type Contour struct {
	X, Y   []float32
	Z      Grid
	Filled bool
	Map    *colors.ColorMap
	Norm   colors.Norm
	Colors []colors.Color // fixed colors per level instead of the colormap
	Style  style.PathStyle
	Label  string

	levels []float64
	lines  []ContourLine
}

// NewContour returns the contour lines of z at the given levels, nil levels are chosen automatically. X and Y hold
// the column and row coordinates, nil defaults to the indices.
func NewContour(x, y []float32, z Grid, levels []float64) (*Contour, error) {
	if err := z.validate(); err != nil {
		return nil, err
	}
	if x == nil {
		x = Range(z.Cols)
	}
	if y == nil {
		y = Range(z.Rows)
	}
	if len(x) != z.Cols || len(y) != z.Rows {
		return nil, fmt.Errorf("contour of %dx%d values with %d x and %d y coordinates: %w", z.Rows, z.Cols, len(x), len(y), ErrInvalidShape)
	} else if z.Rows < 2 || z.Cols < 2 {
		return nil, fmt.Errorf("contour of %dx%d values: %w", z.Rows, z.Cols, ErrInvalidShape)
	}
	s := style.DefaultPathStyle()
	s.Width = 1.0
	c := &Contour{X: x, Y: y, Z: z, Style: s}
	c.SetLevels(levels)
	return c, nil
}

// NewContourFilled returns the filled contour bands of z.
func NewContourFilled(x, y []float32, z Grid, levels []float64) (*Contour, error) {
	c, err := NewContour(x, y, z, levels)
	if err != nil {
		return nil, err
	}
	c.Filled = true
	c.SetLevels(levels)
	return c, nil
}

// SetLevels recomputes the lines, nil chooses levels automatically.
func (c *Contour) SetLevels(levels []float64) {
	lo, hi, ok := c.Z.MinMax()
	if levels == nil && ok {
		levels = AutoLevels(float64(lo), float64(hi), 8)
		if c.Filled {
			if len(levels) == 0 || float64(lo) < levels[0] {
				levels = append([]float64{float64(lo)}, levels...)
			}
			if levels[len(levels)-1] < float64(hi) {
				levels = append(levels, float64(hi))
			}
		}
	}
	levels = append([]float64{}, levels...)
	sort.Float64s(levels)
	c.levels = levels
	c.lines = c.lines[:0]
	if !c.Filled {
		for _, level := range levels {
			c.lines = append(c.lines, MarchingSquares(c.X, c.Y, c.Z, level)...)
		}
	}
}

// Levels returns the contour levels in increasing order.
func (c *Contour) Levels() []float64 {
	return c.levels
}

// Lines returns the iso-lines of all levels.
func (c *Contour) Lines() []ContourLine {
	return c.lines
}

func (c *Contour) Mapper() colors.Mapper {
	norm := c.Norm
	if norm == nil {
		if len(c.levels) == 0 {
			norm = colors.Autoscale(c.Z.Data)
		} else {
			norm = colors.LinearNorm{Min: c.levels[0], Max: c.levels[len(c.levels)-1]}
		}
	}
	return colors.Mapper{Map: colorMapOr(c.Map), Norm: norm}
}

func (c *Contour) levelColor(k int, v float64) colors.Color {
	if 0 < len(c.Colors) {
		return c.Colors[k%len(c.Colors)]
	}
	return c.Mapper().Color(v)
}

func (c *Contour) Extent() geom.Bounds[geom.Data] {
	x0, x1, okx := minMax(c.X)
	y0, y1, oky := minMax(c.Y)
	if !okx || !oky {
		return geom.EmptyBounds[geom.Data]()
	}
	return geom.Rect[geom.Data](float64(x0), float64(y0), float64(x1), float64(y1))
}

func (c *Contour) Layout(LayoutInfo) {}

func (c *Contour) Draw(ctx *DrawContext) error {
	if c.Filled {
		c.drawBands(ctx)
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
		p := b.Path()
		if p.Empty() {
			continue
		}
		s.Edge = c.levelColor(k, level)
		ctx.Renderer.DrawPath(ctx.Path(p), s, ctx.Clip)
	}
	return nil
}

func (c *Contour) drawBands(ctx *DrawContext) {
	if len(c.levels) < 2 {
		return
	}
	mesh := render.Mesh{}
	z := c.Z
	for i := 0; i+1 < z.Rows; i++ {
		for j := 0; j+1 < z.Cols; j++ {
			mean := (float64(z.At(i, j)) + float64(z.At(i, j+1)) + float64(z.At(i+1, j+1)) + float64(z.At(i+1, j))) / 4.0
			if math.IsNaN(mean) || mean < c.levels[0] || c.levels[len(c.levels)-1] < mean {
				continue
			}
			k := sort.SearchFloat64s(c.levels, mean)
			if k == len(c.levels) || 0 < k && mean < c.levels[k] {
				k--
			}
			k = min(k, len(c.levels)-2)
			col := c.levelColor(k, (c.levels[k]+c.levels[k+1])/2.0)

			x0, x1 := float64(c.X[j]), float64(c.X[j+1])
			y0, y1 := float64(c.Y[i]), float64(c.Y[i+1])
			quad := [4]geom.Point[geom.Canvas]{ctx.Point(x0, y0), ctx.Point(x1, y0), ctx.Point(x1, y1), ctx.Point(x0, y1)}
			if !finite(quad[0]) || !finite(quad[1]) || !finite(quad[2]) || !finite(quad[3]) {
				continue
			}
			n := uint32(len(mesh.Vertices))
			mesh.Vertices = append(mesh.Vertices, quad[:]...)
			mesh.Colors = append(mesh.Colors, col, col, col, col)
			mesh.Indices = append(mesh.Indices, n, n+1, n+2, n, n+2, n+3)
		}
	}
	if len(mesh.Indices) != 0 {
		ctx.Renderer.DrawTriangles(mesh, ctx.Clip)
	}
}

func (c *Contour) Legend() (LegendHandle, bool) {
	if c.Label == "" || len(c.levels) == 0 {
		return LegendHandle{}, false
	}
	s := c.Style
	if c.Filled {
		s.Face = c.levelColor(0, c.levels[0])
		return LegendHandle{Label: c.Label, Kind: PatchHandle, Style: s}, true
	}
	s.Edge = c.levelColor(0, c.levels[0])
	return LegendHandle{Label: c.Label, Kind: LineHandle, Style: s}, true
}

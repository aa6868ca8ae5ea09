package geom

import (
	"math"
	"sort"
)

// FillRule decides which regions of a self-overlapping shape are inside.
type FillRule uint8

// Fill rules.
const (
	NonZero FillRule = iota
	EvenOdd
)

func (rule FillRule) inside(winding int) bool {
	if rule == EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// earClipMax is the largest simple polygon that is triangulated by ear clipping.
const earClipMax = 16

// Triangulate returns the triangles covering the union of the polygons under the fill rule. The output triangles do
// not overlap and are counter clockwise. Arbitrary input is supported: holes, self-intersections and overlapping
// polygons are resolved by a sweep over horizontal slabs bounded by vertices and edge crossings, where every span
// between two edges becomes a trapezoid. Trapezoids bounded by the same two edges in consecutive slabs are
// merged, and every trapezoid is emitted as at most two triangles. Coordinates within 1e-9 of the extent in y are
// merged. A single simple polygon with few vertices is ear clipped instead.
func Triangulate[S Space](polys []Polygon[S], rule FillRule) []Triangle[S] {
	if len(polys) == 1 && 3 <= len(polys[0]) && len(polys[0]) <= earClipMax && isSimplePolygon(polys[0]) {
		return earClip(polys[0])
	}
	return sweepTriangulate(polys, rule)
}

// Triangulate flattens the path within tolerance and triangulates its fill, open subpaths are closed implicitly.
func (p Path[S]) Triangulate(tolerance float64, rule FillRule) []Triangle[S] {
	lines := p.Polylines(tolerance)
	polys := make([]Polygon[S], 0, len(lines))
	for _, line := range lines {
		if 3 <= len(line.Points) {
			polys = append(polys, Polygon[S](line.Points))
		}
	}
	return Triangulate(polys, rule)
}

// TriangleArea returns the total unsigned area of the triangles.
func TriangleArea[S Space](tris []Triangle[S]) float64 {
	a := 0.0
	for _, t := range tris {
		a += math.Abs(t.Area())
	}
	return a
}

////////////////////////////////////////////////////////////////

type sweepEdge struct {
	x0, y0, y1 float64
	dxdy       float64
	winding    int
}

func (e *sweepEdge) x(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dxdy
}

type sweepSpan struct {
	l, r int // edge indices
}

type openTrapezoid struct {
	y0 float64
}

func sweepTriangulate[S Space](polys []Polygon[S], rule FillRule) []Triangle[S] {
	var edges []sweepEdge
	var ys []float64
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, poly := range polys {
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			if math.IsNaN(a.X) || math.IsNaN(a.Y) || math.IsNaN(b.X) || math.IsNaN(b.Y) {
				continue
			}
			ys = append(ys, a.Y)
			ymin, ymax = math.Min(ymin, a.Y), math.Max(ymax, a.Y)
			if a.Y == b.Y {
				continue
			}
			w := 1
			if b.Y < a.Y {
				a, b = b, a
				w = -1
			}
			edges = append(edges, sweepEdge{a.X, a.Y, b.Y, (b.X - a.X) / (b.Y - a.Y), w})
		}
	}
	if len(edges) < 2 {
		return nil
	}
	eps := 1e-9 * math.Max(1.0, ymax-ymin)
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].y0 < edges[j].y0 })

	// edge crossings bound slabs as vertices do, so that the order of edges is constant within a slab
	for i := range edges {
		ei := &edges[i]
		for j := i + 1; j < len(edges) && edges[j].y0 < ei.y1; j++ {
			ej := &edges[j]
			if ei.dxdy == ej.dxdy {
				continue
			}
			y0, y1 := ej.y0, math.Min(ei.y1, ej.y1)
			d0, d1 := ei.x(y0)-ej.x(y0), ei.x(y1)-ej.x(y1)
			if d0 < 0.0 && 0.0 < d1 || 0.0 < d0 && d1 < 0.0 {
				ys = append(ys, y0+(y1-y0)*d0/(d0-d1))
			}
		}
	}

	sort.Float64s(ys)
	uniq := ys[:1]
	for _, y := range ys[1:] {
		if eps < y-uniq[len(uniq)-1] {
			uniq = append(uniq, y)
		}
	}
	ys = uniq

	var tris []Triangle[S]
	open := map[sweepSpan]openTrapezoid{}
	closeSpan := func(span sweepSpan, y0, y1 float64) {
		if y1-y0 <= eps {
			return
		}
		l, r := &edges[span.l], &edges[span.r]
		bl := Point[S]{l.x(y0), y0}
		br := Point[S]{r.x(y0), y0}
		tr := Point[S]{r.x(y1), y1}
		tl := Point[S]{l.x(y1), y1}
		if t := (Triangle[S]{bl, br, tr}); eps < math.Abs(t.Area()) {
			tris = append(tris, t)
		}
		if t := (Triangle[S]{bl, tr, tl}); eps < math.Abs(t.Area()) {
			tris = append(tris, t)
		}
	}

	var active []int
	next := 0
	cur := map[sweepSpan]bool{}
	emitSlab := func(ya, yb float64) {
		ym := (ya + yb) / 2.0
		sort.Slice(active, func(i, j int) bool {
			return edges[active[i]].x(ym) < edges[active[j]].x(ym)
		})
		clear(cur)
		winding, left := 0, -1
		for _, k := range active {
			inside := rule.inside(winding)
			winding += edges[k].winding
			if !inside && rule.inside(winding) {
				left = k
			} else if inside && !rule.inside(winding) {
				cur[sweepSpan{left, k}] = true
			}
		}
		for span, trap := range open {
			if !cur[span] {
				closeSpan(span, trap.y0, ya)
				delete(open, span)
			}
		}
		for span := range cur {
			if _, ok := open[span]; !ok {
				open[span] = openTrapezoid{ya}
			}
		}
	}

	for k := 0; k+1 < len(ys); k++ {
		ya, yb := ys[k], ys[k+1]
		j := 0
		for _, i := range active {
			if ya+eps < edges[i].y1 {
				active[j] = i
				j++
			}
		}
		active = active[:j]
		for next < len(edges) && edges[next].y0 <= ya+eps {
			if ya+eps < edges[next].y1 {
				active = append(active, next)
			}
			next++
		}

		emitSlab(ya, yb)
	}
	for span, trap := range open {
		closeSpan(span, trap.y0, ys[len(ys)-1])
	}
	return tris
}

////////////////////////////////////////////////////////////////

func segmentsIntersect[S Space](a0, a1, b0, b1 Point[S]) bool {
	d1 := orient(b0, b1, a0)
	d2 := orient(b0, b1, a1)
	d3 := orient(a0, a1, b0)
	d4 := orient(a0, a1, b1)
	if (0.0 < d1 && d2 < 0.0 || d1 < 0.0 && 0.0 < d2) && (0.0 < d3 && d4 < 0.0 || d3 < 0.0 && 0.0 < d4) {
		return true
	}
	return d1 == 0.0 && onSegment(b0, b1, a0) || d2 == 0.0 && onSegment(b0, b1, a1) ||
		d3 == 0.0 && onSegment(a0, a1, b0) || d4 == 0.0 && onSegment(a0, a1, b1)
}

// SegmentsCross returns true if the segments a0a1 and b0b1 properly cross each other.
func SegmentsCross[S Space](a0, a1, b0, b1 Point[S]) bool {
	d1 := orient(b0, b1, a0)
	d2 := orient(b0, b1, a1)
	d3 := orient(a0, a1, b0)
	d4 := orient(a0, a1, b1)
	return (0.0 < d1 && d2 < 0.0 || d1 < 0.0 && 0.0 < d2) && (0.0 < d3 && d4 < 0.0 || d3 < 0.0 && 0.0 < d4)
}

func orient[S Space](a, b, c Point[S]) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment[S Space](a, b, p Point[S]) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) && math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// isSimplePolygon returns true if no two non-adjacent edges touch and no vertex is repeated.
func isSimplePolygon[S Space](poly Polygon[S]) bool {
	n := len(poly)
	if math.Abs(poly.Area()) < Epsilon {
		return false
	}
	for i := 0; i < n; i++ {
		if poly[i].Equals(poly[(i+1)%n]) {
			return false
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsIntersect(poly[i], poly[(i+1)%n], poly[j], poly[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

// earClip triangulates a simple polygon by repeatedly cutting off convex vertices whose triangle contains no other
// vertex.
func earClip[S Space](poly Polygon[S]) []Triangle[S] {
	idx := make([]int, len(poly))
	for i := range idx {
		idx[i] = i
	}
	if poly.Area() < 0.0 {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	tris := make([]Triangle[S], 0, len(poly)-2)
	for 3 < len(idx) {
		found := false
		for i := range idx {
			a := poly[idx[(i-1+len(idx))%len(idx)]]
			b := poly[idx[i]]
			c := poly[idx[(i+1)%len(idx)]]
			if orient(a, b, c) <= 0.0 {
				continue // reflex or degenerate
			}
			ear := true
			for _, k := range idx {
				p := poly[k]
				if p == a || p == b || p == c {
					continue
				}
				if 0.0 <= orient(a, b, p) && 0.0 <= orient(b, c, p) && 0.0 <= orient(c, a, p) {
					ear = false
					break
				}
			}
			if ear {
				tris = append(tris, Triangle[S]{a, b, c})
				idx = append(idx[:i], idx[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			// numerically degenerate remainder
			return sweepTriangulate([]Polygon[S]{poly}, NonZero)
		}
	}
	tris = append(tris, Triangle[S]{poly[idx[0]], poly[idx[1]], poly[idx[2]]})
	return tris
}

// IsSimple returns true if no two non-adjacent edges of the polygon intersect.
func (poly Polygon[S]) IsSimple() bool {
	return isSimplePolygon(poly)
}

package geom

import "math"

// Cap is the shape at the open ends of a stroke.
type Cap uint8

// Cap styles.
const (
	ButtCap Cap = iota
	RoundCap
	SquareCap
)

// Join is the shape where two stroke segments meet.
type Join uint8

// Join styles.
const (
	MiterJoin Join = iota
	RoundJoin
	BevelJoin
)

// StrokeOptions describe how a path is outlined.
type StrokeOptions struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64 // ratio of the miter length to the half width, defaults to 4
	Tolerance  float64 // flattening tolerance, defaults to 0.1
}

// Stroke returns the outline of the path as a set of counter clockwise polygons: a quadrilateral per segment plus
// polygons for joins and caps. Their union under the nonzero fill rule is the stroked area. This avoids computing
// offset curves and inner intersections, the overlaps are resolved by the triangulation or the rasterizer.
func (p Path[S]) Stroke(opts StrokeOptions) []Polygon[S] {
	if opts.Width <= 0.0 || p.Empty() {
		return nil
	}
	if opts.Tolerance <= 0.0 {
		opts.Tolerance = 0.1
	}
	if opts.MiterLimit <= 0.0 {
		opts.MiterLimit = 4.0
	}
	var polys []Polygon[S]
	for _, line := range p.Polylines(opts.Tolerance) {
		polys = strokePolyline(polys, line, opts)
	}
	return polys
}

// StrokePath returns the stroke outline as a path, see Stroke.
func (p Path[S]) StrokePath(opts StrokeOptions) Path[S] {
	b := Builder[S]{}
	for _, poly := range p.Stroke(opts) {
		b.Polygon(poly)
	}
	return b.Path()
}

func dedupPoints[S Space](pts []Point[S], closed bool) []Point[S] {
	out := make([]Point[S], 0, len(pts))
	for _, pt := range pts {
		if len(out) == 0 || !out[len(out)-1].Equals(pt) {
			out = append(out, pt)
		}
	}
	if closed && 1 < len(out) && out[0].Equals(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func strokePolyline[S Space](polys []Polygon[S], line Polyline[S], opts StrokeOptions) []Polygon[S] {
	hw := opts.Width / 2.0
	pts := dedupPoints(line.Points, line.Closed)
	closed := line.Closed && 2 < len(pts)
	if len(pts) == 1 {
		switch opts.Cap {
		case RoundCap:
			polys = append(polys, circlePolygon(pts[0], hw, opts.Tolerance))
		case SquareCap:
			c := pts[0]
			polys = append(polys, Polygon[S]{{c.X - hw, c.Y - hw}, {c.X + hw, c.Y - hw}, {c.X + hw, c.Y + hw}, {c.X - hw, c.Y + hw}})
		}
		return polys
	}

	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		nrm := b.Sub(a).Rot90CCW().Norm(hw)
		polys = append(polys, Polygon[S]{a.Sub(nrm), b.Sub(nrm), b.Add(nrm), a.Add(nrm)})
	}

	// joins at interior vertices, and at the first vertex of closed polylines
	for i := 0; i < len(pts); i++ {
		if !closed && (i == 0 || i == len(pts)-1) {
			continue
		}
		prev := pts[(i-1+len(pts))%len(pts)]
		next := pts[(i+1)%len(pts)]
		polys = strokeJoin(polys, pts[i], pts[i].Sub(prev), next.Sub(pts[i]), hw, opts)
	}

	if !closed {
		polys = strokeCap(polys, pts[0], pts[0].Sub(pts[1]), hw, opts)
		polys = strokeCap(polys, pts[len(pts)-1], pts[len(pts)-1].Sub(pts[len(pts)-2]), hw, opts)
	}
	return polys
}

// strokeJoin fills the gap on the outer side of the turn between directions d0 and d1 at pivot.
func strokeJoin[S Space](polys []Polygon[S], pivot, d0, d1 Point[S], hw float64, opts StrokeOptions) []Polygon[S] {
	cross := d0.PerpDot(d1)
	if math.Abs(cross) <= Epsilon*d0.Length()*d1.Length() && 0.0 <= d0.Dot(d1) {
		return polys // collinear
	}

	if opts.Join == RoundJoin {
		return append(polys, circlePolygon(pivot, hw, opts.Tolerance))
	}

	// outer offsets: a left turn has its gap on the right side
	o0 := d0.Rot90CCW().Norm(hw)
	o1 := d1.Rot90CCW().Norm(hw)
	if 0.0 < cross {
		o0, o1 = o0.Neg(), o1.Neg()
	}

	var poly Polygon[S]
	if opts.Join == MiterJoin {
		bisector := o0.Add(o1)
		if cosHalf := bisector.Length() / 2.0 / hw; Epsilon < cosHalf && 1.0/cosHalf <= opts.MiterLimit {
			tip := pivot.Add(bisector.Norm(hw / cosHalf))
			poly = Polygon[S]{pivot, pivot.Add(o0), tip, pivot.Add(o1)}
		}
	}
	if poly == nil {
		poly = Polygon[S]{pivot, pivot.Add(o0), pivot.Add(o1)}
	}
	if poly.Area() < 0.0 {
		poly.Reverse()
	}
	return append(polys, poly)
}

func strokeCap[S Space](polys []Polygon[S], end, dir Point[S], hw float64, opts StrokeOptions) []Polygon[S] {
	switch opts.Cap {
	case RoundCap:
		polys = append(polys, circlePolygon(end, hw, opts.Tolerance))
	case SquareCap:
		d := dir.Norm(hw)
		nrm := d.Rot90CCW()
		poly := Polygon[S]{end.Sub(nrm), end.Add(d).Sub(nrm), end.Add(d).Add(nrm), end.Add(nrm)}
		if poly.Area() < 0.0 {
			poly.Reverse()
		}
		polys = append(polys, poly)
	}
	return polys
}

// circlePolygon returns a counter clockwise polygon approximating a circle within tolerance.
func circlePolygon[S Space](c Point[S], r, tolerance float64) Polygon[S] {
	n := 8
	if tolerance < r {
		n = max(n, int(math.Ceil(math.Pi/math.Acos(1.0-tolerance/r))))
	}
	n = min(n, 256)
	poly := make(Polygon[S], n)
	for i := range poly {
		sin, cos := math.Sincos(2.0 * math.Pi * float64(i) / float64(n))
		poly[i] = Point[S]{c.X + r*cos, c.Y + r*sin}
	}
	return poly
}

////////////////////////////////////////////////////////////////

// Dash splits the path into dashes following pattern, alternating lengths of dashes and gaps, starting offset into
// the pattern. The result only contains linear segments.
func (p Path[S]) Dash(pattern []float64, offset, tolerance float64) Path[S] {
	total := 0.0
	for _, l := range pattern {
		if l < 0.0 {
			return p
		}
		total += l
	}
	if len(pattern) == 0 || total <= 0.0 {
		return p
	}
	if len(pattern)%2 == 1 {
		pattern = append(pattern[:len(pattern):len(pattern)], pattern...)
		total *= 2.0
	}

	b := Builder[S]{}
	for _, line := range p.Polylines(tolerance) {
		pts := line.Points
		if line.Closed && 0 < len(pts) {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}

		// find the position in the pattern at the offset
		i, rem := 0, pattern[0]
		pos := math.Mod(offset, total)
		if pos < 0.0 {
			pos += total
		}
		for pattern[i] <= pos {
			pos -= pattern[i]
			i = (i + 1) % len(pattern)
		}
		rem = pattern[i] - pos

		on := i%2 == 0
		if on && 0 < len(pts) {
			b.MoveTo(pts[0].X, pts[0].Y)
		}
		for j := 1; j < len(pts); j++ {
			a, c := pts[j-1], pts[j]
			seg := c.Sub(a).Length()
			t := 0.0
			for rem < seg-t {
				t += rem
				q := a.Interpolate(c, t/seg)
				if on {
					b.LineTo(q.X, q.Y)
				} else {
					b.MoveTo(q.X, q.Y)
				}
				on = !on
				i = (i + 1) % len(pattern)
				rem = pattern[i]
			}
			rem -= seg - t
			if on {
				b.LineTo(c.X, c.Y)
			}
		}
	}
	return b.Path()
}

package geom

import "math"

func quadraticBezierPos[S Space](p0, p1, p2 Point[S], t float64) Point[S] {
	p0 = p0.Mul(1.0 - 2.0*t + t*t)
	p1 = p1.Mul(2.0*t - 2.0*t*t)
	p2 = p2.Mul(t * t)
	return p0.Add(p1).Add(p2)
}

func cubicBezierPos[S Space](p0, p1, p2, p3 Point[S], t float64) Point[S] {
	p0 = p0.Mul(1.0 - 3.0*t + 3.0*t*t - t*t*t)
	p1 = p1.Mul(3.0*t - 6.0*t*t + 3.0*t*t*t)
	p2 = p2.Mul(3.0*t*t - 3.0*t*t*t)
	p3 = p3.Mul(t * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

// quadraticBezierBounds returns the bounding box including the extremum where the derivative is zero.
func quadraticBezierBounds[S Space](p0, p1, p2 Point[S]) Bounds[S] {
	b := EmptyBounds[S]().AddPoint(p0).AddPoint(p2)
	for _, t := range [2]float64{quadraticExtremum(p0.X, p1.X, p2.X), quadraticExtremum(p0.Y, p1.Y, p2.Y)} {
		if 0.0 < t && t < 1.0 {
			b = b.AddPoint(quadraticBezierPos(p0, p1, p2, t))
		}
	}
	return b
}

func quadraticExtremum(a, b, c float64) float64 {
	den := a - 2.0*b + c
	if den == 0.0 {
		return math.NaN()
	}
	return (a - b) / den
}

// cubicBezierBounds returns the bounding box including the extrema where the derivative is zero.
func cubicBezierBounds[S Space](p0, p1, p2, p3 Point[S]) Bounds[S] {
	bounds := EmptyBounds[S]().AddPoint(p0).AddPoint(p3)

	// derivative is 3(a t^2 + b t + c) per coordinate
	roots := func(x0, x1, x2, x3 float64) (float64, float64) {
		a := -x0 + 3.0*x1 - 3.0*x2 + x3
		b := 2.0*x0 - 4.0*x1 + 2.0*x2
		c := -x0 + x1
		return solveQuadraticFormula(a, b, c)
	}
	tx1, tx2 := roots(p0.X, p1.X, p2.X, p3.X)
	ty1, ty2 := roots(p0.Y, p1.Y, p2.Y, p3.Y)
	for _, t := range [4]float64{tx1, tx2, ty1, ty2} {
		if 0.0 < t && t < 1.0 {
			bounds = bounds.AddPoint(cubicBezierPos(p0, p1, p2, p3, t))
		}
	}
	return bounds
}

func splitQuadraticBezier[S Space](p0, p1, p2 Point[S], t float64) (Point[S], Point[S], Point[S], Point[S], Point[S], Point[S]) {
	q0 := p0
	q1 := p0.Interpolate(p1, t)

	r2 := p2
	r1 := p1.Interpolate(p2, t)

	r0 := q1.Interpolate(r1, t)
	q2 := r0
	return q0, q1, q2, r0, r1, r2
}

func splitCubicBezier[S Space](p0, p1, p2, p3 Point[S], t float64) (Point[S], Point[S], Point[S], Point[S], Point[S], Point[S], Point[S], Point[S]) {
	pm := p1.Interpolate(p2, t)

	q0 := p0
	q1 := p0.Interpolate(p1, t)
	q2 := q1.Interpolate(pm, t)

	r3 := p3
	r2 := p2.Interpolate(p3, t)
	r1 := pm.Interpolate(r2, t)

	r0 := q2.Interpolate(r1, t)
	q3 := r0
	return q0, q1, q2, q3, r0, r1, r2, r3
}

// quadraticSegments returns the number of linear segments needed for a quadratic Bézier to deviate at most tolerance
// from the curve. The deviation of a uniformly subdivided quadratic is bounded by |p0-2p1+p2|/(4n^2).
func quadraticSegments[S Space](p0, p1, p2 Point[S], tolerance float64) int {
	dd := p0.Sub(p1.Mul(2.0)).Add(p2).Length()
	n := int(math.Ceil(math.Sqrt(dd / (4.0 * tolerance))))
	return max(1, min(n, 1000))
}

// cubicSegments returns the number of linear segments needed for a cubic Bézier, using the bound on the second
// derivative 3/4 max(|p0-2p1+p2|, |p1-2p2+p3|)/n^2.
func cubicSegments[S Space](p0, p1, p2, p3 Point[S], tolerance float64) int {
	dd := math.Max(p0.Sub(p1.Mul(2.0)).Add(p2).Length(), p1.Sub(p2.Mul(2.0)).Add(p3).Length())
	n := int(math.Ceil(math.Sqrt(0.75 * dd / tolerance)))
	return max(1, min(n, 1000))
}

// flattenQuadraticBezier appends the polyline points of the curve excluding p0.
func flattenQuadraticBezier[S Space](pts []Point[S], p0, p1, p2 Point[S], tolerance float64) []Point[S] {
	n := quadraticSegments(p0, p1, p2, tolerance)
	for i := 1; i < n; i++ {
		pts = append(pts, quadraticBezierPos(p0, p1, p2, float64(i)/float64(n)))
	}
	return append(pts, p2)
}

// flattenCubicBezier appends the polyline points of the curve excluding p0.
func flattenCubicBezier[S Space](pts []Point[S], p0, p1, p2, p3 Point[S], tolerance float64) []Point[S] {
	n := cubicSegments(p0, p1, p2, p3, tolerance)
	for i := 1; i < n; i++ {
		pts = append(pts, cubicBezierPos(p0, p1, p2, p3, float64(i)/float64(n)))
	}
	return append(pts, p3)
}

// cubicToQuadraticBeziers approximates a cubic Bézier by quadratic Béziers within tolerance, returned as triples of
// start, control and end points.
func cubicToQuadraticBeziers[S Space](p0, p1, p2, p3 Point[S], tolerance float64) [][3]Point[S] {
	// the error of the midpoint approximation is sqrt(3)/36 |p3 - 3p2 + 3p1 - p0| for the whole curve, splitting
	// into n pieces reduces it by n^3
	d := p3.Sub(p2.Mul(3.0)).Add(p1.Mul(3.0)).Sub(p0).Length()
	n := int(math.Ceil(math.Cbrt(math.Sqrt(3.0) / 36.0 * d / tolerance)))
	n = max(1, min(n, 100))

	quads := make([][3]Point[S], 0, n)
	for i := 0; i < n; i++ {
		var q0, q1, q2, q3 Point[S]
		if i == n-1 {
			q0, q1, q2, q3 = p0, p1, p2, p3
		} else {
			t := 1.0 / float64(n-i)
			q0, q1, q2, q3, p0, p1, p2, p3 = splitCubicBezier(p0, p1, p2, p3, t)
		}
		c := q1.Mul(3.0).Sub(q0).Add(q2.Mul(3.0)).Sub(q3).Div(4.0)
		quads = append(quads, [3]Point[S]{q0, c, q3})
	}
	return quads
}

// Polyline is a flattened subpath.
type Polyline[S Space] struct {
	Points []Point[S]
	Closed bool
}

// Polylines flattens the path into polylines, one per subpath. Closed subpaths do not repeat their first point.
func (p Path[S]) Polylines(tolerance float64) []Polyline[S] {
	var lines []Polyline[S]
	var cur []Point[S]
	flush := func(closed bool) {
		if closed && 1 < len(cur) && cur[0].Equals(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}
		if 0 < len(cur) {
			lines = append(lines, Polyline[S]{cur, closed})
		}
		cur = nil
	}
	p.Segments(func(seg Segment[S]) bool {
		switch seg.Cmd {
		case MoveTo:
			flush(false)
			cur = append(cur, seg.Pts[0])
		case LineTo:
			cur = append(cur, seg.Pts[0])
		case QuadTo:
			cur = flattenQuadraticBezier(cur, seg.Start, seg.Pts[0], seg.Pts[1], tolerance)
		case CubeTo:
			cur = flattenCubicBezier(cur, seg.Start, seg.Pts[0], seg.Pts[1], seg.Pts[2], tolerance)
		case Close:
			cur = append(cur, seg.Pts[0])
			flush(true)
		}
		return true
	})
	flush(false)
	return lines
}

// Flatten returns the path with all curves replaced by linear segments that deviate at most tolerance.
func (p Path[S]) Flatten(tolerance float64) Path[S] {
	if !p.HasCurves() {
		return p
	}
	b := Builder[S]{}
	for _, line := range p.Polylines(tolerance) {
		if line.Closed {
			b.Polygon(line.Points)
		} else {
			b.Polyline(line.Points)
		}
	}
	return b.Path()
}

// Quadratics returns the path with every cubic Bézier replaced by quadratic Béziers that deviate at most tolerance.
func (p Path[S]) Quadratics(tolerance float64) Path[S] {
	b := Builder[S]{}
	p.Segments(func(seg Segment[S]) bool {
		switch seg.Cmd {
		case MoveTo:
			b.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case LineTo:
			b.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case QuadTo:
			b.QuadTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y)
		case CubeTo:
			for _, q := range cubicToQuadraticBeziers(seg.Start, seg.Pts[0], seg.Pts[1], seg.Pts[2], tolerance) {
				b.QuadTo(q[1].X, q[1].Y, q[2].X, q[2].Y)
			}
		case Close:
			b.Close()
		}
		return true
	})
	return b.Path()
}

package geom

import (
	"fmt"
	"math"
	"strings"
)

// Cmd is a path command.
type Cmd uint8

// Path commands, the number of points each consumes is given by Cmd.Points.
const (
	MoveTo Cmd = iota
	LineTo
	QuadTo
	CubeTo
	Close
)

// Points returns the number of points stored for the command.
func (cmd Cmd) Points() int {
	switch cmd {
	case QuadTo:
		return 2
	case CubeTo:
		return 3
	}
	return 1
}

func (cmd Cmd) String() string {
	switch cmd {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case CubeTo:
		return "C"
	case Close:
		return "z"
	}
	return "?"
}

// Path is an immutable sequence of path commands in space S. Close carries the start point of its subpath so that
// every command ends at its last point. Use a Builder to construct paths.
type Path[S Space] struct {
	cmds []Cmd
	pts  []Point[S]
}

// Segment is a single command and its points, with Start the end point of the previous command.
type Segment[S Space] struct {
	Cmd   Cmd
	Start Point[S]
	Pts   []Point[S] // control points followed by the end point
}

// End returns the end point of the segment.
func (s Segment[S]) End() Point[S] {
	return s.Pts[len(s.Pts)-1]
}

// Empty returns true if the path has no commands.
func (p Path[S]) Empty() bool {
	return len(p.cmds) == 0
}

// Len returns the number of commands.
func (p Path[S]) Len() int {
	return len(p.cmds)
}

// HasCurves returns true if the path contains quadratic or cubic Béziers.
func (p Path[S]) HasCurves() bool {
	for _, cmd := range p.cmds {
		if cmd == QuadTo || cmd == CubeTo {
			return true
		}
	}
	return false
}

// Closed returns true if every subpath ends with a Close command.
func (p Path[S]) Closed() bool {
	if len(p.cmds) == 0 {
		return false
	}
	for i, cmd := range p.cmds {
		if cmd == MoveTo && 0 < i && p.cmds[i-1] != Close {
			return false
		}
	}
	return p.cmds[len(p.cmds)-1] == Close
}

// Segments calls f for every command in order. Iteration stops when f returns false.
func (p Path[S]) Segments(f func(Segment[S]) bool) {
	var start Point[S]
	j := 0
	for _, cmd := range p.cmds {
		n := cmd.Points()
		seg := Segment[S]{cmd, start, p.pts[j : j+n : j+n]}
		if !f(seg) {
			return
		}
		start = p.pts[j+n-1]
		j += n
	}
}

// Points returns the end points of all commands, useful for polylines.
func (p Path[S]) Points() []Point[S] {
	pts := make([]Point[S], 0, len(p.cmds))
	p.Segments(func(seg Segment[S]) bool {
		if seg.Cmd != Close {
			pts = append(pts, seg.End())
		}
		return true
	})
	return pts
}

// Subpaths splits the path at every MoveTo.
func (p Path[S]) Subpaths() []Path[S] {
	var ps []Path[S]
	i0, j0, j := 0, 0, 0
	for i, cmd := range p.cmds {
		if cmd == MoveTo && i0 < i {
			ps = append(ps, Path[S]{p.cmds[i0:i:i], p.pts[j0:j:j]})
			i0, j0 = i, j
		}
		j += cmd.Points()
	}
	if i0 < len(p.cmds) {
		ps = append(ps, Path[S]{p.cmds[i0:], p.pts[j0:]})
	}
	return ps
}

// Append returns a new path with the commands of q appended.
func (p Path[S]) Append(q Path[S]) Path[S] {
	r := Path[S]{
		cmds: make([]Cmd, 0, len(p.cmds)+len(q.cmds)),
		pts:  make([]Point[S], 0, len(p.pts)+len(q.pts)),
	}
	r.cmds = append(append(r.cmds, p.cmds...), q.cmds...)
	r.pts = append(append(r.pts, p.pts...), q.pts...)
	return r
}

// Translate returns the path moved by dx,dy.
func (p Path[S]) Translate(dx, dy float64) Path[S] {
	q := Path[S]{cmds: p.cmds, pts: make([]Point[S], len(p.pts))}
	for i, pt := range p.pts {
		q.pts[i] = Point[S]{pt.X + dx, pt.Y + dy}
	}
	return q
}

// Transform returns the path transformed by m within the same space.
func (p Path[S]) Transform(m Matrix) Path[S] {
	return Affine[S, S]{m}.Path(p)
}

// Bounds returns the exact bounding box, including the extrema of curves.
func (p Path[S]) Bounds() Bounds[S] {
	b := EmptyBounds[S]()
	p.Segments(func(seg Segment[S]) bool {
		switch seg.Cmd {
		case MoveTo, LineTo, Close:
			b = b.AddPoint(seg.End())
		case QuadTo:
			b = b.Union(quadraticBezierBounds(seg.Start, seg.Pts[0], seg.Pts[1]))
		case CubeTo:
			b = b.Union(cubicBezierBounds(seg.Start, seg.Pts[0], seg.Pts[1], seg.Pts[2]))
		}
		return true
	})
	return b
}

// Reverse returns the path with every subpath traversed in the opposite direction.
func (p Path[S]) Reverse() Path[S] {
	rb := Builder[S]{}
	subpaths := p.Subpaths()
	for k := len(subpaths) - 1; 0 <= k; k-- {
		var segs []Segment[S]
		subpaths[k].Segments(func(seg Segment[S]) bool {
			segs = append(segs, seg)
			return true
		})
		if len(segs) == 0 {
			continue
		}
		closed := segs[len(segs)-1].Cmd == Close
		end := segs[len(segs)-1].End()
		rb.MoveTo(end.X, end.Y)
		for i := len(segs) - 1; 1 <= i; i-- {
			seg := segs[i]
			switch seg.Cmd {
			case LineTo:
				if !closed || i != 1 {
					rb.LineTo(seg.Start.X, seg.Start.Y)
				}
			case QuadTo:
				rb.QuadTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Start.X, seg.Start.Y)
			case CubeTo:
				rb.CubeTo(seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[0].X, seg.Pts[0].Y, seg.Start.X, seg.Start.Y)
			case Close:
				if !seg.Start.Equals(seg.End()) {
					rb.LineTo(seg.Start.X, seg.Start.Y)
				}
			}
		}
		if closed {
			rb.Close()
		}
	}
	return rb.Path()
}

// String returns the path in SVG path data notation.
func (p Path[S]) String() string {
	sb := strings.Builder{}
	p.Segments(func(seg Segment[S]) bool {
		sb.WriteString(seg.Cmd.String())
		if seg.Cmd != Close {
			for i, pt := range seg.Pts {
				if 0 < i {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%g %g", pt.X, pt.Y)
			}
		}
		return true
	})
	return sb.String()
}

////////////////////////////////////////////////////////////////

// Builder constructs paths. The zero value is an empty builder.
type Builder[S Space] struct {
	cmds  []Cmd
	pts   []Point[S]
	start Point[S]
}

// Pos returns the current position.
func (b *Builder[S]) Pos() Point[S] {
	if len(b.pts) == 0 {
		return Point[S]{}
	}
	return b.pts[len(b.pts)-1]
}

// Empty returns true if nothing has been added.
func (b *Builder[S]) Empty() bool {
	return len(b.cmds) == 0
}

func (b *Builder[S]) ensureStart() {
	if len(b.cmds) == 0 || b.cmds[len(b.cmds)-1] == Close {
		pos := b.Pos()
		b.MoveTo(pos.X, pos.Y)
	}
}

// MoveTo starts a new subpath at x,y.
func (b *Builder[S]) MoveTo(x, y float64) {
	if 0 < len(b.cmds) && b.cmds[len(b.cmds)-1] == MoveTo {
		b.pts[len(b.pts)-1] = Point[S]{x, y}
	} else {
		b.cmds = append(b.cmds, MoveTo)
		b.pts = append(b.pts, Point[S]{x, y})
	}
	b.start = Point[S]{x, y}
}

// LineTo adds a linear segment to x,y.
func (b *Builder[S]) LineTo(x, y float64) {
	b.ensureStart()
	b.cmds = append(b.cmds, LineTo)
	b.pts = append(b.pts, Point[S]{x, y})
}

// QuadTo adds a quadratic Bézier with control point cx,cy to x,y.
func (b *Builder[S]) QuadTo(cx, cy, x, y float64) {
	b.ensureStart()
	b.cmds = append(b.cmds, QuadTo)
	b.pts = append(b.pts, Point[S]{cx, cy}, Point[S]{x, y})
}

// CubeTo adds a cubic Bézier with control points cx1,cy1 and cx2,cy2 to x,y.
func (b *Builder[S]) CubeTo(cx1, cy1, cx2, cy2, x, y float64) {
	b.ensureStart()
	b.cmds = append(b.cmds, CubeTo)
	b.pts = append(b.pts, Point[S]{cx1, cy1}, Point[S]{cx2, cy2}, Point[S]{x, y})
}

// Close closes the current subpath back to its start.
func (b *Builder[S]) Close() {
	if len(b.cmds) == 0 || b.cmds[len(b.cmds)-1] == Close {
		return
	} else if b.cmds[len(b.cmds)-1] == MoveTo {
		b.cmds = b.cmds[:len(b.cmds)-1]
		b.pts = b.pts[:len(b.pts)-1]
		return
	}
	b.cmds = append(b.cmds, Close)
	b.pts = append(b.pts, b.start)
}

// ArcTo adds an elliptical arc around cx,cy with radii rx,ry from angle theta0 to theta1 in radians, counter
// clockwise when theta1 > theta0. The arc is approximated by cubic Béziers of at most 90 degrees each. A line is
// drawn from the current position to the start of the arc if a subpath is open, otherwise a new subpath starts.
func (b *Builder[S]) ArcTo(cx, cy, rx, ry, theta0, theta1 float64) {
	start := Point[S]{cx + rx*math.Cos(theta0), cy + ry*math.Sin(theta0)}
	if len(b.cmds) == 0 || b.cmds[len(b.cmds)-1] == Close {
		b.MoveTo(start.X, start.Y)
	} else if !b.Pos().Equals(start) {
		b.LineTo(start.X, start.Y)
	}

	n := int(math.Ceil(math.Abs(theta1-theta0) / (math.Pi / 2.0)))
	if n == 0 {
		return
	}
	dtheta := (theta1 - theta0) / float64(n)
	k := 4.0 / 3.0 * math.Tan(dtheta/4.0)
	for i := 0; i < n; i++ {
		t0 := theta0 + float64(i)*dtheta
		t1 := t0 + dtheta
		sin0, cos0 := math.Sincos(t0)
		sin1, cos1 := math.Sincos(t1)
		b.CubeTo(
			cx+rx*(cos0-k*sin0), cy+ry*(sin0+k*cos0),
			cx+rx*(cos1+k*sin1), cy+ry*(sin1-k*cos1),
			cx+rx*cos1, cy+ry*sin1,
		)
	}
}

// Rect adds a closed counter clockwise rectangle.
func (b *Builder[S]) Rect(x, y, w, h float64) {
	b.MoveTo(x, y)
	b.LineTo(x+w, y)
	b.LineTo(x+w, y+h)
	b.LineTo(x, y+h)
	b.Close()
}

// Ellipse adds a closed counter clockwise ellipse.
func (b *Builder[S]) Ellipse(cx, cy, rx, ry float64) {
	b.MoveTo(cx+rx, cy)
	b.ArcTo(cx, cy, rx, ry, 0.0, 2.0*math.Pi)
	b.Close()
}

// Polyline adds an open subpath through the points.
func (b *Builder[S]) Polyline(pts []Point[S]) {
	for i, pt := range pts {
		if i == 0 {
			b.MoveTo(pt.X, pt.Y)
		} else {
			b.LineTo(pt.X, pt.Y)
		}
	}
}

// Polygon adds a closed subpath through the points.
func (b *Builder[S]) Polygon(pts []Point[S]) {
	if len(pts) < 2 {
		return
	}
	b.Polyline(pts)
	b.Close()
}

// AppendPath appends all commands of p.
func (b *Builder[S]) AppendPath(p Path[S]) {
	p.Segments(func(seg Segment[S]) bool {
		switch seg.Cmd {
		case MoveTo:
			b.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case LineTo:
			b.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case QuadTo:
			b.QuadTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y)
		case CubeTo:
			b.CubeTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case Close:
			b.Close()
		}
		return true
	})
}

// Path returns the built path. The builder is reset.
func (b *Builder[S]) Path() Path[S] {
	if 0 < len(b.cmds) && b.cmds[len(b.cmds)-1] == MoveTo {
		b.cmds = b.cmds[:len(b.cmds)-1]
		b.pts = b.pts[:len(b.pts)-1]
	}
	p := Path[S]{b.cmds, b.pts}
	*b = Builder[S]{}
	return p
}

// PolylinePath returns an open path through the points.
func PolylinePath[S Space](pts []Point[S]) Path[S] {
	b := Builder[S]{}
	b.Polyline(pts)
	return b.Path()
}

// PolygonPath returns a closed path through the points.
func PolygonPath[S Space](pts []Point[S]) Path[S] {
	b := Builder[S]{}
	b.Polygon(pts)
	return b.Path()
}

// Package geom holds the geometry of a figure: points, bounds, affine transforms and paths, each tagged with the
// coordinate space it lives in so that data coordinates can never be handed to a renderer by accident.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for geometric comparisons.
const Epsilon = 1e-10

// equal returns true if a and b are equal with tolerance Epsilon.
func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Space is the set of coordinate spaces. It is only used as a type parameter.
type Space interface {
	Data | Frame | Canvas | Device
}

// Data is the coordinate space of the user's data, before scales are applied.
type Data struct{}

// Frame is the fraction space of a chart frame, (0,0) bottom-left and (1,1) top-right.
type Frame struct{}

// Canvas is the figure space in logical pixels, origin bottom-left and the y-axis pointing up.
type Canvas struct{}

// Device is the display space in physical pixels, origin top-left and the y-axis pointing down.
type Device struct{}

////////////////////////////////////////////////////////////////

// Point is a coordinate in space S.
type Point[S Space] struct {
	X, Y float64
}

// Pt returns a point in space S.
func Pt[S Space](x, y float64) Point[S] {
	return Point[S]{x, y}
}

// IsZero returns true if P is exactly zero.
func (p Point[S]) IsZero() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point[S]) Equals(q Point[S]) bool {
	return equal(p.X, q.X) && equal(p.Y, q.Y)
}

func (p Point[S]) Neg() Point[S] {
	return Point[S]{-p.X, -p.Y}
}

func (p Point[S]) Add(q Point[S]) Point[S] {
	return Point[S]{p.X + q.X, p.Y + q.Y}
}

func (p Point[S]) Sub(q Point[S]) Point[S] {
	return Point[S]{p.X - q.X, p.Y - q.Y}
}

func (p Point[S]) Mul(f float64) Point[S] {
	return Point[S]{f * p.X, f * p.Y}
}

func (p Point[S]) Div(f float64) Point[S] {
	return Point[S]{p.X / f, p.Y / f}
}

// Rot90CW rotates the line OP by 90 degrees CW.
func (p Point[S]) Rot90CW() Point[S] {
	return Point[S]{p.Y, -p.X}
}

// Rot90CCW rotates the line OP by 90 degrees CCW.
func (p Point[S]) Rot90CCW() Point[S] {
	return Point[S]{-p.Y, p.X}
}

// Dot returns the dot product between OP and OQ.
func (p Point[S]) Dot(q Point[S]) float64 {
	return p.X*q.X + p.Y*q.Y
}

// PerpDot returns the perp dot product between OP and OQ, ie. zero if aligned and |OP|*|OQ| if perpendicular.
func (p Point[S]) PerpDot(q Point[S]) float64 {
	return p.X*q.Y - p.Y*q.X
}

func (p Point[S]) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle returns the angle between the x-axis and OP.
func (p Point[S]) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Norm returns OP scaled to the given length, or zero when P is zero.
func (p Point[S]) Norm(length float64) Point[S] {
	d := p.Length()
	if equal(d, 0.0) {
		return Point[S]{}
	}
	return Point[S]{p.X / d * length, p.Y / d * length}
}

// Interpolate returns a point on PQ that is linearly interpolated by t, ie. t=0 returns P and t=1 returns Q.
func (p Point[S]) Interpolate(q Point[S], t float64) Point[S] {
	return Point[S]{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

func (p Point[S]) String() string {
	return fmt.Sprintf("[%g; %g]", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Bounds is an axis-aligned rectangle in space S. The empty bounds are the identity of Union and are represented with
// X0,Y0 at +Inf and X1,Y1 at -Inf. Note that the zero value is a degenerate rectangle at the origin, not empty.
type Bounds[S Space] struct {
	X0, Y0, X1, Y1 float64
}

// Rect returns the bounds spanned by x0,y0 and x1,y1 in any order.
func Rect[S Space](x0, y0, x1, y1 float64) Bounds[S] {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Bounds[S]{x0, y0, x1, y1}
}

// EmptyBounds returns the empty bounds.
func EmptyBounds[S Space]() Bounds[S] {
	return Bounds[S]{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}

func (b Bounds[S]) IsEmpty() bool {
	return !(b.X0 <= b.X1 && b.Y0 <= b.Y1)
}

// IsFinite returns true if the bounds are not empty and all coordinates are finite.
func (b Bounds[S]) IsFinite() bool {
	return !b.IsEmpty() && !math.IsInf(b.X0, 0) && !math.IsInf(b.X1, 0) && !math.IsInf(b.Y0, 0) && !math.IsInf(b.Y1, 0)
}

func (b Bounds[S]) W() float64 {
	if b.IsEmpty() {
		return 0.0
	}
	return b.X1 - b.X0
}

func (b Bounds[S]) H() float64 {
	if b.IsEmpty() {
		return 0.0
	}
	return b.Y1 - b.Y0
}

func (b Bounds[S]) Center() Point[S] {
	return Point[S]{(b.X0 + b.X1) / 2.0, (b.Y0 + b.Y1) / 2.0}
}

func (b Bounds[S]) Min() Point[S] {
	return Point[S]{b.X0, b.Y0}
}

func (b Bounds[S]) Max() Point[S] {
	return Point[S]{b.X1, b.Y1}
}

// Union returns the smallest bounds containing both B and C.
func (b Bounds[S]) Union(c Bounds[S]) Bounds[S] {
	if c.IsEmpty() {
		return b
	} else if b.IsEmpty() {
		return c
	}
	return Bounds[S]{math.Min(b.X0, c.X0), math.Min(b.Y0, c.Y0), math.Max(b.X1, c.X1), math.Max(b.Y1, c.Y1)}
}

// Intersect returns the overlap of B and C, which is empty if they do not overlap.
func (b Bounds[S]) Intersect(c Bounds[S]) Bounds[S] {
	r := Bounds[S]{math.Max(b.X0, c.X0), math.Max(b.Y0, c.Y0), math.Min(b.X1, c.X1), math.Min(b.Y1, c.Y1)}
	if r.IsEmpty() {
		return EmptyBounds[S]()
	}
	return r
}

// AddPoint returns the bounds extended to contain P.
func (b Bounds[S]) AddPoint(p Point[S]) Bounds[S] {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return b
	} else if b.IsEmpty() {
		return Bounds[S]{p.X, p.Y, p.X, p.Y}
	}
	return Bounds[S]{math.Min(b.X0, p.X), math.Min(b.Y0, p.Y), math.Max(b.X1, p.X), math.Max(b.Y1, p.Y)}
}

// Contains returns true if P lies inside or on the border of B.
func (b Bounds[S]) Contains(p Point[S]) bool {
	return b.X0 <= p.X && p.X <= b.X1 && b.Y0 <= p.Y && p.Y <= b.Y1
}

// Overlaps returns true if B and C share a region of non-zero area.
func (b Bounds[S]) Overlaps(c Bounds[S]) bool {
	return b.X0 < c.X1 && c.X0 < b.X1 && b.Y0 < c.Y1 && c.Y0 < b.Y1
}

// Expand grows the bounds by dx on the left and right and dy on the bottom and top.
func (b Bounds[S]) Expand(dx, dy float64) Bounds[S] {
	if b.IsEmpty() {
		return b
	}
	return Rect[S](b.X0-dx, b.Y0-dy, b.X1+dx, b.Y1+dy)
}

// Inset shrinks the bounds by the given margins.
func (b Bounds[S]) Inset(left, bottom, right, top float64) Bounds[S] {
	r := Bounds[S]{b.X0 + left, b.Y0 + bottom, b.X1 - right, b.Y1 - top}
	if r.X1 < r.X0 {
		r.X0 = (r.X0 + r.X1) / 2.0
		r.X1 = r.X0
	}
	if r.Y1 < r.Y0 {
		r.Y0 = (r.Y0 + r.Y1) / 2.0
		r.Y1 = r.Y0
	}
	return r
}

// Translate moves the bounds by dx,dy.
func (b Bounds[S]) Translate(dx, dy float64) Bounds[S] {
	if b.IsEmpty() {
		return b
	}
	return Bounds[S]{b.X0 + dx, b.Y0 + dy, b.X1 + dx, b.Y1 + dy}
}

// Corners returns the four corners counter clockwise starting at the bottom-left.
func (b Bounds[S]) Corners() [4]Point[S] {
	return [4]Point[S]{{b.X0, b.Y0}, {b.X1, b.Y0}, {b.X1, b.Y1}, {b.X0, b.Y1}}
}

// Path returns the bounds as a closed counter clockwise rectangle.
func (b Bounds[S]) Path() Path[S] {
	pb := Builder[S]{}
	pb.Rect(b.X0, b.Y0, b.W(), b.H())
	return pb.Path()
}

func (b Bounds[S]) String() string {
	if b.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%g; %g]--[%g; %g]", b.X0, b.Y0, b.X1, b.Y1)
}

// Polygon is a closed polyline in space S, the closing segment is implicit.
type Polygon[S Space] []Point[S]

// Area returns the signed area, positive for counter clockwise polygons.
func (poly Polygon[S]) Area() float64 {
	a := 0.0
	for i := range poly {
		j := (i + 1) % len(poly)
		a += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return a / 2.0
}

// Reverse reverses the orientation of the polygon in place.
func (poly Polygon[S]) Reverse() {
	for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
		poly[i], poly[j] = poly[j], poly[i]
	}
}

// Triangle is a triangle in space S.
type Triangle[S Space] [3]Point[S]

// Area returns the signed area, positive for counter clockwise triangles.
func (t Triangle[S]) Area() float64 {
	return ((t[1].X-t[0].X)*(t[2].Y-t[0].Y) - (t[2].X-t[0].X)*(t[1].Y-t[0].Y)) / 2.0
}

// Numerically stable quadratic formula, lowest root is returned first, NaN for missing roots.
// see https://math.stackexchange.com/a/2007723
func solveQuadraticFormula(a, b, c float64) (float64, float64) {
	if a == 0.0 {
		if b == 0.0 {
			return math.NaN(), math.NaN()
		}
		return -c / b, math.NaN()
	}
	if c == 0.0 {
		x := -b / a
		if x < 0.0 {
			return x, 0.0
		}
		return 0.0, x
	}

	discriminant := b*b - 4.0*a*c
	if discriminant < 0.0 {
		return math.NaN(), math.NaN()
	} else if discriminant == 0.0 {
		return -b / (2.0 * a), math.NaN()
	}

	// avoid catastrophic cancellation by taking the root where b and the radical have the same sign
	q := math.Sqrt(discriminant)
	if b < 0.0 {
		q = -q
	}
	x1 := -(b + q) / (2.0 * a)
	x2 := c / (a * x1)
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	return x1, x2
}

package geom

import (
	"fmt"
	"math"
)

// Matrix is used for affine transformations. Be aware that concatenating transformation functions will be evaluated
// right-to-left! So in Identity.Rotate(30).Translate(20,0) will first translate 20 points horizontally and then
// rotate 30 degrees counter clockwise.
type Matrix [2][3]float64

// Identity is the identity affine transformation matrix.
var Identity = Matrix{
	{1.0, 0.0, 0.0},
	{0.0, 1.0, 0.0},
}

// Mul multiplies the current matrix by the given matrix, ie. combines transformations.
func (m Matrix) Mul(q Matrix) Matrix {
	return Matrix{{
		m[0][0]*q[0][0] + m[0][1]*q[1][0],
		m[0][0]*q[0][1] + m[0][1]*q[1][1],
		m[0][0]*q[0][2] + m[0][1]*q[1][2] + m[0][2],
	}, {
		m[1][0]*q[0][0] + m[1][1]*q[1][0],
		m[1][0]*q[0][1] + m[1][1]*q[1][1],
		m[1][0]*q[0][2] + m[1][1]*q[1][2] + m[1][2],
	}}
}

// Apply applies the transformation to the coordinates x,y.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0][0]*x + m[0][1]*y + m[0][2], m[1][0]*x + m[1][1]*y + m[1][2]
}

// Translate adds a translation in x and y.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{
		{1.0, 0.0, x},
		{0.0, 1.0, y},
	})
}

// Rotate adds a rotation transformation with rot in degrees counter clockwise.
func (m Matrix) Rotate(rot float64) Matrix {
	sintheta, costheta := math.Sincos(rot * math.Pi / 180.0)
	return m.Mul(Matrix{
		{costheta, -sintheta, 0.0},
		{sintheta, costheta, 0.0},
	})
}

// RotateAt adds a rotation transformation around x,y with rot in degrees counter clockwise.
func (m Matrix) RotateAt(rot, x, y float64) Matrix {
	return m.Translate(x, y).Rotate(rot).Translate(-x, -y)
}

// Scale adds a scaling transformation in x and y. Scaling to zero in one direction is allowed but makes the matrix
// singular.
func (m Matrix) Scale(x, y float64) Matrix {
	return m.Mul(Matrix{
		{x, 0.0, 0.0},
		{0.0, y, 0.0},
	})
}

// ScaleAt adds a scaling transformation around x,y.
func (m Matrix) ScaleAt(sx, sy, x, y float64) Matrix {
	return m.Translate(x, y).Scale(sx, sy).Translate(-x, -y)
}

// ReflectY adds a vertical reflection around the x-axis.
func (m Matrix) ReflectY() Matrix {
	return m.Scale(1.0, -1.0)
}

func (m Matrix) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Inv returns the inverse of the matrix and false if the matrix is singular.
func (m Matrix) Inv() (Matrix, bool) {
	det := m.Det()
	if det == 0.0 || math.IsNaN(det) {
		return Matrix{}, false
	}
	return Matrix{{
		m[1][1] / det,
		-m[0][1] / det,
		-(m[1][1]*m[0][2] - m[0][1]*m[1][2]) / det,
	}, {
		-m[1][0] / det,
		m[0][0] / det,
		-(-m[1][0]*m[0][2] + m[0][0]*m[1][2]) / det,
	}}, true
}

// IsRectilinear returns true if the matrix maps axis-aligned rectangles to axis-aligned rectangles.
func (m Matrix) IsRectilinear() bool {
	return equal(m[0][1], 0.0) && equal(m[1][0], 0.0) || equal(m[0][0], 0.0) && equal(m[1][1], 0.0)
}

// ScaleFactor returns the geometric mean of the scale factors along x and y.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Det()))
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g, %g, %g; %g, %g, %g; 0, 0, 1]", m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2])
}

////////////////////////////////////////////////////////////////

// Transform maps geometry from space From to space To.
type Transform[From, To Space] interface {
	Point(Point[From]) Point[To]
	Path(Path[From]) Path[To]
	Bounds(Bounds[From]) Bounds[To]
}

// Affine is an affine transformation from space From to space To.
type Affine[From, To Space] struct {
	M Matrix
}

// NewAffine returns an affine transformation with the given matrix.
func NewAffine[From, To Space](m Matrix) Affine[From, To] {
	return Affine[From, To]{m}
}

// BoxAffine returns the affine transformation that maps the bounds src onto dst.
func BoxAffine[From, To Space](src Bounds[From], dst Bounds[To]) Affine[From, To] {
	sx, sy := 1.0, 1.0
	if w := src.W(); w != 0.0 {
		sx = dst.W() / w
	}
	if h := src.H(); h != 0.0 {
		sy = dst.H() / h
	}
	return Affine[From, To]{Identity.Translate(dst.X0, dst.Y0).Scale(sx, sy).Translate(-src.X0, -src.Y0)}
}

func (a Affine[From, To]) Point(p Point[From]) Point[To] {
	x, y := a.M.Apply(p.X, p.Y)
	return Point[To]{x, y}
}

// Vector transforms a direction, ignoring the translation.
func (a Affine[From, To]) Vector(p Point[From]) Point[To] {
	return Point[To]{a.M[0][0]*p.X + a.M[0][1]*p.Y, a.M[1][0]*p.X + a.M[1][1]*p.Y}
}

// Path transforms every point of the path, curves keep their degree.
func (a Affine[From, To]) Path(p Path[From]) Path[To] {
	q := Path[To]{cmds: p.cmds, pts: make([]Point[To], len(p.pts))}
	for i, pt := range p.pts {
		q.pts[i] = a.Point(pt)
	}
	return q
}

// Bounds returns the bounding box of the transformed bounds.
func (a Affine[From, To]) Bounds(b Bounds[From]) Bounds[To] {
	if b.IsEmpty() {
		return EmptyBounds[To]()
	}
	r := EmptyBounds[To]()
	for _, c := range b.Corners() {
		r = r.AddPoint(a.Point(c))
	}
	return r
}

// Inverse returns the inverse transformation, and false if it is singular.
func (a Affine[From, To]) Inverse() (Affine[To, From], bool) {
	m, ok := a.M.Inv()
	return Affine[To, From]{m}, ok
}

// Then returns the transformation that applies A and then M within space To.
func (a Affine[From, To]) Then(m Matrix) Affine[From, To] {
	return Affine[From, To]{m.Mul(a.M)}
}

// Compose returns the transformation that first applies ab and then bc.
func Compose[A, B, C Space](ab Affine[A, B], bc Affine[B, C]) Affine[A, C] {
	return Affine[A, C]{bc.M.Mul(ab.M)}
}

////////////////////////////////////////////////////////////////

// ScaleTransform maps space From to space To by applying a nonlinear function to each axis followed by an affine
// transformation. Curves are flattened before they are mapped since nonlinear scales do not preserve them.
type ScaleTransform[From, To Space] struct {
	FX, FY    func(float64) float64
	Affine    Affine[From, To]
	Tolerance float64
}

func (t ScaleTransform[From, To]) Point(p Point[From]) Point[To] {
	return t.Affine.Point(Point[From]{t.FX(p.X), t.FY(p.Y)})
}

func (t ScaleTransform[From, To]) Path(p Path[From]) Path[To] {
	tolerance := t.Tolerance
	if tolerance <= 0.0 {
		tolerance = 1e-3
	}
	if p.HasCurves() {
		p = p.Flatten(tolerance)
	}
	q := Path[To]{cmds: p.cmds, pts: make([]Point[To], len(p.pts))}
	for i, pt := range p.pts {
		q.pts[i] = t.Point(pt)
	}
	return q
}

// Bounds returns the bounding box of the mapped corners, which is exact for monotonic axis functions.
func (t ScaleTransform[From, To]) Bounds(b Bounds[From]) Bounds[To] {
	if b.IsEmpty() {
		return EmptyBounds[To]()
	}
	r := EmptyBounds[To]()
	for _, c := range b.Corners() {
		r = r.AddPoint(t.Point(c))
	}
	return r
}

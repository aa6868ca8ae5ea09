package artist

import (
	"fmt"

	"github.com/aclements/go-moremath/vec"
	"github.com/chewxy/math32"
	"github.com/tdewolff/figure/geom"
	"gonum.org/v1/gonum/mat"
)

// Number is any integer or floating point type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// F32 converts a numeric slice into the float32 slice that artists take.
func F32[T Number](xs []T) []float32 {
	ys := make([]float32, len(xs))
	for i, x := range xs {
		ys[i] = float32(x)
	}
	return ys
}

// Range returns 0, 1, ..., n-1.
func Range(n int) []float32 {
	xs := make([]float32, n)
	for i := range xs {
		xs[i] = float32(i)
	}
	return xs
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float32 {
	if n <= 0 {
		return nil
	}
	return F32(vec.Linspace(lo, hi, n))
}

// Map applies f to every value.
func Map(xs []float32, f func(float32) float32) []float32 {
	ys := make([]float32, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	return ys
}

// Grid is a row-major two-dimensional array of values. Row zero is at the bottom of the data.
type Grid struct {
	Rows, Cols int
	Data       []float32
}

// NewGrid returns a grid over data, which must hold rows×cols values.
func NewGrid(rows, cols int, data []float32) (Grid, error) {
	if rows <= 0 || cols <= 0 {
		return Grid{}, fmt.Errorf("grid %dx%d: %w", rows, cols, ErrEmptyData)
	} else if len(data) != rows*cols {
		return Grid{}, fmt.Errorf("grid %dx%d with %d values: %w", rows, cols, len(data), ErrInvalidShape)
	}
	return Grid{rows, cols, data}, nil
}

// GridFunc returns a grid with values f(i, j) for row i and column j.
func GridFunc(rows, cols int, f func(i, j int) float32) Grid {
	g := Grid{rows, cols, make([]float32, rows*cols)}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.Data[i*cols+j] = f(i, j)
		}
	}
	return g
}

// GridFromMatrix copies a gonum matrix into a grid, the first matrix row becomes row zero.
func GridFromMatrix(m mat.Matrix) Grid {
	rows, cols := m.Dims()
	return GridFunc(rows, cols, func(i, j int) float32 { return float32(m.At(i, j)) })
}

// Meshgrid evaluates f on the grid of x and y coordinates, rows follow y and columns follow x.
func Meshgrid(x, y []float32, f func(x, y float32) float32) Grid {
	return GridFunc(len(y), len(x), func(i, j int) float32 { return f(x[j], y[i]) })
}

func (g Grid) At(i, j int) float32 {
	return g.Data[i*g.Cols+j]
}

func (g Grid) Set(i, j int, v float32) {
	g.Data[i*g.Cols+j] = v
}

func (g Grid) Empty() bool {
	return g.Rows == 0 || g.Cols == 0
}

func (g Grid) validate() error {
	if g.Rows <= 0 || g.Cols <= 0 || len(g.Data) == 0 {
		return fmt.Errorf("grid: %w", ErrEmptyData)
	} else if len(g.Data) != g.Rows*g.Cols {
		return fmt.Errorf("grid %dx%d with %d values: %w", g.Rows, g.Cols, len(g.Data), ErrInvalidShape)
	}
	return nil
}

// MinMax returns the range of the finite values, ok is false if there are none.
func (g Grid) MinMax() (float32, float32, bool) {
	return minMax(g.Data)
}

func minMax(xs []float32) (float32, float32, bool) {
	lo, hi := math32.Inf(1), math32.Inf(-1)
	for _, x := range xs {
		if !math32.IsNaN(x) && !math32.IsInf(x, 0) {
			lo, hi = math32.Min(lo, x), math32.Max(hi, x)
		}
	}
	return lo, hi, lo <= hi
}

// checkXY validates paired coordinates.
func checkXY(name string, x, y []float32) error {
	if len(x) == 0 || len(y) == 0 {
		return fmt.Errorf("%s: %w", name, ErrEmptyData)
	} else if len(x) != len(y) {
		return fmt.Errorf("%s: x has %d values and y has %d: %w", name, len(x), len(y), ErrInvalidShape)
	}
	return nil
}

// checkLen validates optional per point values, which are either absent or one per point.
func checkLen(name string, n, m int) error {
	if m != 0 && m != n {
		return fmt.Errorf("%s has %d values for %d points: %w", name, m, n, ErrInvalidShape)
	}
	return nil
}

func finite32(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// extentXY returns the bounds of the finite points.
func extentXY(x, y []float32) geom.Bounds[geom.Data] {
	b := geom.EmptyBounds[geom.Data]()
	for i := range x {
		if finite32(x[i]) && finite32(y[i]) {
			b = b.AddPoint(geom.Pt[geom.Data](float64(x[i]), float64(y[i])))
		}
	}
	return b
}

// extentX returns the range of a set of values as bounds that are unbounded in y.
func extentX(lo, hi float64) geom.Bounds[geom.Data] {
	b := geom.EmptyBounds[geom.Data]()
	b.X0, b.X1 = lo, hi
	return b
}

// extentY returns the range of a set of values as bounds that are unbounded in x.
func extentY(lo, hi float64) geom.Bounds[geom.Data] {
	b := geom.EmptyBounds[geom.Data]()
	b.Y0, b.Y1 = lo, hi
	return b
}

// Combine returns the per axis union of two extents. Unlike Bounds.Union it keeps the range of an extent that is
// unbounded in the other axis.
func Combine(a, b geom.Bounds[geom.Data]) geom.Bounds[geom.Data] {
	return geom.Bounds[geom.Data]{X0: min(a.X0, b.X0), Y0: min(a.Y0, b.Y0), X1: max(a.X1, b.X1), Y1: max(a.Y1, b.Y1)}
}

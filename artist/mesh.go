package artist

import (
	"fmt"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
)

// Shading selects how the cells of a color mesh are colored.
type Shading uint8

// Shadings.
const (
	Flat    Shading = iota // one color per cell, X and Y are the cell edges
	Gouraud                // colors interpolated between nodes, X and Y are the node positions
)

// ColorMesh is a structured grid of quadrilaterals colored through a colormap.
type ColorMesh struct {
	X, Y    []float32
	C       Grid
	Shading Shading
	Map     *colors.ColorMap
	Norm    colors.Norm
	Label   string
}

// NewColorMesh returns a mesh over C. For flat shading X and Y hold cols+1 and rows+1 cell edges, for Gouraud shading
// they hold cols and rows nodes. Nil coordinates default to the indices.
func NewColorMesh(x, y []float32, c Grid, shading Shading) (*ColorMesh, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	nx, ny := c.Cols, c.Rows
	if shading == Flat {
		nx, ny = nx+1, ny+1
	}
	if x == nil {
		x = Range(nx)
	}
	if y == nil {
		y = Range(ny)
	}
	if len(x) != nx || len(y) != ny {
		return nil, fmt.Errorf("mesh of %dx%d values with %d x and %d y coordinates: %w", c.Rows, c.Cols, len(x), len(y), ErrInvalidShape)
	} else if shading == Gouraud && (nx < 2 || ny < 2) {
		return nil, fmt.Errorf("gouraud mesh of %dx%d values: %w", c.Rows, c.Cols, ErrInvalidShape)
	}
	return &ColorMesh{X: x, Y: y, C: c, Shading: shading}, nil
}

func (m *ColorMesh) Mapper() colors.Mapper {
	norm := m.Norm
	if norm == nil {
		norm = colors.Autoscale(m.C.Data)
	}
	return colors.Mapper{Map: colorMapOr(m.Map), Norm: norm}
}

func (m *ColorMesh) Extent() geom.Bounds[geom.Data] {
	x0, x1, okx := minMax(m.X)
	y0, y1, oky := minMax(m.Y)
	if !okx || !oky {
		return geom.EmptyBounds[geom.Data]()
	}
	return geom.Rect[geom.Data](float64(x0), float64(y0), float64(x1), float64(y1))
}

func (m *ColorMesh) Layout(LayoutInfo) {}

func (m *ColorMesh) Draw(ctx *DrawContext) error {
	var mesh render.Mesh
	if m.Shading == Gouraud {
		mesh = m.gouraud(ctx)
	} else {
		mesh = m.flat(ctx)
	}
	if len(mesh.Indices) != 0 && ctx.Clip.Visible(mesh.Bounds()) {
		ctx.Renderer.DrawTriangles(mesh, ctx.Clip)
	}
	return nil
}

// flat emits four vertices of the cell color per cell, cells with a NaN value or that cannot be mapped are skipped.
func (m *ColorMesh) flat(ctx *DrawContext) render.Mesh {
	mapper := m.Mapper()
	mesh := render.Mesh{}
	for i := 0; i < m.C.Rows; i++ {
		for j := 0; j < m.C.Cols; j++ {
			v := m.C.At(i, j)
			if !finite32(v) {
				continue
			}
			quad := [4]geom.Point[geom.Canvas]{
				ctx.Point(float64(m.X[j]), float64(m.Y[i])),
				ctx.Point(float64(m.X[j+1]), float64(m.Y[i])),
				ctx.Point(float64(m.X[j+1]), float64(m.Y[i+1])),
				ctx.Point(float64(m.X[j]), float64(m.Y[i+1])),
			}
			if !finite(quad[0]) || !finite(quad[2]) || !finite(quad[1]) || !finite(quad[3]) {
				continue
			}
			col := mapper.Color(float64(v))
			k := uint32(len(mesh.Vertices))
			mesh.Vertices = append(mesh.Vertices, quad[:]...)
			mesh.Colors = append(mesh.Colors, col, col, col, col)
			mesh.Indices = append(mesh.Indices, k, k+1, k+2, k, k+2, k+3)
		}
	}
	return mesh
}

// gouraud emits a vertex per node and two triangles per cell whose four nodes are all valid.
func (m *ColorMesh) gouraud(ctx *DrawContext) render.Mesh {
	mapper := m.Mapper()
	rows, cols := m.C.Rows, m.C.Cols
	mesh := render.Mesh{
		Vertices: make([]geom.Point[geom.Canvas], rows*cols),
		Colors:   make([]colors.Color, rows*cols),
	}
	valid := make([]bool, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			k := i*cols + j
			p := ctx.Point(float64(m.X[j]), float64(m.Y[i]))
			v := m.C.At(i, j)
			valid[k] = finite(p) && finite32(v)
			mesh.Vertices[k] = p
			mesh.Colors[k] = mapper.Color(float64(v))
		}
	}
	for i := 0; i+1 < rows; i++ {
		for j := 0; j+1 < cols; j++ {
			a, b := uint32(i*cols+j), uint32(i*cols+j+1)
			c, d := b+uint32(cols), a+uint32(cols)
			if valid[a] && valid[b] && valid[c] && valid[d] {
				mesh.Indices = append(mesh.Indices, a, b, c, a, c, d)
			}
		}
	}
	return mesh
}

func (m *ColorMesh) Legend() (LegendHandle, bool) {
	return LegendHandle{}, false
}

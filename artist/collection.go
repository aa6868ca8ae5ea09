package artist

import (
	"math"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// Collection draws a marker at each point. Sizes and Colors optionally vary per point, Values color the points through
// the colormap instead.
type Collection struct {
	X, Y   []float32
	Sizes  []float32 // marker sizes in logical pixels
	Colors []colors.Color
	Values []float32
	Map    *colors.ColorMap
	Norm   colors.Norm // nil autoscales to the values
	Style  style.PathStyle
	Label  string
}

// NewCollection returns a scatter of markers at the points.
func NewCollection(x, y []float32) (*Collection, error) {
	if err := checkXY("scatter", x, y); err != nil {
		return nil, err
	}
	s := style.DefaultPathStyle()
	s.Marker = style.Circle
	s.Width = 0.0
	return &Collection{X: x, Y: y, Style: s}, nil
}

// Validate checks per point attributes against the number of points.
func (c *Collection) Validate() error {
	if err := checkLen("sizes", len(c.X), len(c.Sizes)); err != nil {
		return err
	} else if err := checkLen("colors", len(c.X), len(c.Colors)); err != nil {
		return err
	}
	return checkLen("values", len(c.X), len(c.Values))
}

func (c *Collection) Extent() geom.Bounds[geom.Data] {
	return extentXY(c.X, c.Y)
}

func (c *Collection) Layout(LayoutInfo) {}

// Mapper returns the colormap and norm of the values.
func (c *Collection) Mapper() colors.Mapper {
	norm := c.Norm
	if norm == nil {
		norm = colors.Autoscale(c.Values)
	}
	return colors.Mapper{Map: colorMapOr(c.Map), Norm: norm}
}

func (c *Collection) Draw(ctx *DrawContext) error {
	s := ctx.Style(c.Style)
	pts, idx := ctx.Points(c.X, c.Y)
	if len(pts) == 0 || s.Marker.IsNone() {
		return nil
	}
	m := render.Markers{Marker: s.Marker, Points: pts}
	if len(c.Sizes) == len(c.X) {
		m.Sizes = make([]float64, len(idx))
		for k, i := range idx {
			m.Sizes[k] = math.Max(0.0, float64(c.Sizes[i]))
		}
	}
	if len(c.Values) == len(c.X) {
		mapper := c.Mapper()
		m.Faces = make([]colors.Color, len(idx))
		for k, i := range idx {
			m.Faces[k] = mapper.Color(float64(c.Values[i]))
		}
	} else if len(c.Colors) == len(c.X) {
		m.Faces = make([]colors.Color, len(idx))
		for k, i := range idx {
			m.Faces[k] = c.Colors[i]
		}
	}
	ctx.Renderer.DrawMarkers(m, s, ctx.Clip)
	return nil
}

func (c *Collection) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: c.Label, Kind: MarkerHandle, Style: c.Style}, c.Label != ""
}

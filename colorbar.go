package figure

import (
	"image"
	"image/color"
	"math"

	"github.com/tdewolff/figure/artist"
	"github.com/tdewolff/figure/axis"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

const (
	colorbarWidth = 14.0
	colorbarPad   = 12.0 // between the data box and the bar
	colorbarSteps = 256
)

// Colorbar shows the colormap and norm of a mappable artist as a vertical gradient with its own axis, on the right of
// the data box of its chart.
type Colorbar struct {
	Axis  *axis.Axis
	Width float64

	mappable artist.Mappable
	mapper   colors.Mapper
	img      *render.Image
	box      geom.Bounds[geom.Canvas]
}

func newColorbar(m artist.Mappable, s settings) *Colorbar {
	a := axis.New()
	a.Tight = true
	a.TickLength = s.tickLength
	a.TickDir = s.tickDir
	return &Colorbar{Axis: a, Width: colorbarWidth, mappable: m}
}

// Box returns the rectangle of the bar after the last draw.
func (cb *Colorbar) Box() geom.Bounds[geom.Canvas] {
	return cb.box
}

// Mapper returns the colormap and norm shown after the last layout.
func (cb *Colorbar) Mapper() colors.Mapper {
	return cb.mapper
}

// sync takes over the colormap and norm of the mappable, the gradient is recomputed when the colormap changed.
func (cb *Colorbar) sync() {
	m := cb.mappable.Mapper()
	if m.Map == nil {
		m.Map = colors.Viridis
	}
	if m.Norm == nil {
		m.Norm = colors.LinearNorm{Min: 0.0, Max: 1.0}
	}
	if _, ok := m.Norm.(colors.LogNorm); ok {
		if _, ok := cb.Axis.Scale.(axis.Log); !ok {
			cb.Axis.Scale = axis.Log{Base: 10}
		}
	}
	lo, hi := m.Norm.Range()
	cb.Axis.Autoscale(lo, hi)

	if cb.img == nil || cb.mapper.Map != m.Map {
		pix := image.NewNRGBA(image.Rect(0, 0, 1, colorbarSteps))
		for i := 0; i < colorbarSteps; i++ {
			// row zero is the top of the bar
			t := 1.0 - (float64(i)+0.5)/colorbarSteps
			c := m.Map.Map(t)
			pix.SetNRGBA(0, i, color.NRGBA{c.R, c.G, c.B, c.A})
		}
		if cb.img == nil {
			cb.img = render.NewImage(pix)
		} else {
			cb.img.SetPixels(pix)
		}
	}
	cb.mapper = m
}

// reserve returns the width needed on the right of the data box.
func (cb *Colorbar) reserve(r render.Renderer, s settings) float64 {
	cb.sync()
	w := colorbarPad + cb.Width + tickOut(cb.Axis)
	if cb.Axis.TickLabels {
		if lw, _ := tickLabelSize(r, cb.Axis, s.textStyle()); 0.0 < lw {
			w += labelPad + lw
		}
	}
	if cb.Axis.Label != "" {
		w += axisLabelPad + textHeight(r, cb.Axis.Label, s.textStyle())
	}
	return w
}

func (cb *Colorbar) draw(r render.Renderer, box geom.Bounds[geom.Canvas], s settings) {
	x0 := box.X1 + colorbarPad
	cb.box = geom.Rect[geom.Canvas](x0, box.Y0, x0+cb.Width, box.Y1)
	r.DrawImage(cb.img, cb.box, render.ImageOptions{Interpolation: render.Bilinear}, render.NoClip)

	edge := style.DefaultPathStyle()
	edge.Edge = s.edge
	edge.Width = 1.0
	edge.Join = geom.MiterJoin
	r.DrawPath(cb.box.Path(), edge, render.NoClip)

	ts := s.textStyle()
	out, in := tickOut(cb.Axis), tickIn(cb.Axis)
	ticks := geom.Builder[geom.Canvas]{}
	labelW := 0.0
	for _, tick := range cb.Axis.Ticks() {
		if tick.Minor {
			continue
		}
		t := cb.Axis.Normalize(tick.Value)
		if t < -1e-9 || 1.0+1e-9 < t || math.IsNaN(t) {
			continue
		}
		y := cb.box.Y0 + t*cb.box.H()
		ticks.MoveTo(cb.box.X1-in, y)
		ticks.LineTo(cb.box.X1+out, y)
		if tick.Label != "" {
			r.DrawText(render.TextRun{
				Text:   tick.Label,
				Pos:    geom.Pt[geom.Canvas](cb.box.X1+out+labelPad, y),
				Style:  ts,
				HAlign: style.Left,
				VAlign: style.Middle,
			}, render.NoClip)
			w, _, _ := r.MeasureText(tick.Label, ts)
			labelW = math.Max(labelW, w)
		}
	}
	if p := ticks.Path(); !p.Empty() {
		r.DrawPath(p, edge, render.NoClip)
	}
	if cb.Axis.Label != "" {
		x := cb.box.X1 + out + labelPad + labelW + axisLabelPad
		r.DrawText(render.TextRun{
			Text:     cb.Axis.Label,
			Pos:      geom.Pt[geom.Canvas](x, cb.box.Center().Y),
			Style:    ts,
			HAlign:   style.Center,
			VAlign:   style.Top,
			Rotation: 90.0,
		}, render.NoClip)
	}
}

func (cb *Colorbar) release() {
	if cb.img != nil {
		cb.img.Release()
		cb.img = nil
	}
}

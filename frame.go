package figure

import (
	"math"

	"github.com/tdewolff/figure/axis"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// AspectMode is how a data box relates the units of its axes.
type AspectMode uint8

// Aspect modes.
const (
	AutoAspect  AspectMode = iota // the data fill the box
	ImageAspect                   // equal units, the axis with the smaller range is widened
	FixedAspect                   // a y-unit is Ratio times an x-unit, the data limits are widened
	ViewAspect                    // a y-unit is Ratio times an x-unit, the box is letterboxed
)

// Aspect is the aspect policy of a data box.
type Aspect struct {
	Mode  AspectMode
	Ratio float64
}

// Aspect policies.
var (
	Auto  = Aspect{Mode: AutoAspect}
	Equal = Aspect{Mode: ImageAspect, Ratio: 1.0}
)

// Fixed returns the aspect that widens the data limits so that a y-unit is r times as long as an x-unit.
func Fixed(r float64) Aspect {
	return Aspect{Mode: FixedAspect, Ratio: r}
}

// View returns the aspect that shrinks the data box so that a y-unit is r times as long as an x-unit.
func View(r float64) Aspect {
	return Aspect{Mode: ViewAspect, Ratio: r}
}

// DataBox is the rectangular data region of a chart. It holds the two axes and the aspect policy, and caches the
// transformation from data onto canvas coordinates.
type DataBox struct {
	X, Y   *axis.Axis
	Aspect Aspect

	box       geom.Bounds[geom.Canvas]
	transform geom.Transform[geom.Data, geom.Canvas]

	// limits before and after the last widening for a fixed aspect
	requested, widened [4]float64
	hasWidened         bool
}

// NewDataBox returns a data box with two linear axes.
func NewDataBox() *DataBox {
	return &DataBox{X: axis.New(), Y: axis.New(), Aspect: Auto}
}

// Box returns the data region on the canvas after the last layout.
func (d *DataBox) Box() geom.Bounds[geom.Canvas] {
	return d.box
}

// Transform returns the data to canvas transformation after the last layout.
func (d *DataBox) Transform() geom.Transform[geom.Data, geom.Canvas] {
	if d.transform == nil {
		return d.newTransform()
	}
	return d.transform
}

// View returns the axis limits as bounds.
func (d *DataBox) View() geom.Bounds[geom.Data] {
	x0, x1 := d.X.Limits()
	y0, y1 := d.Y.Limits()
	return geom.Rect[geom.Data](x0, y0, x1, y1)
}

func (d *DataBox) limits() [4]float64 {
	x0, x1 := d.X.Limits()
	y0, y1 := d.Y.Limits()
	return [4]float64{x0, x1, y0, y1}
}

// Fit places the data box in the available rectangle and applies the aspect policy.
func (d *DataBox) Fit(avail geom.Bounds[geom.Canvas]) {
	d.box = avail
	ratio := d.Aspect.Ratio
	if d.Aspect.Mode == ImageAspect || ratio <= 0.0 || math.IsNaN(ratio) {
		ratio = 1.0
	}

	switch d.Aspect.Mode {
	case ImageAspect, FixedAspect:
		if d.hasWidened && d.limits() == d.widened {
			// the limits were left alone since the last widening, start from the ones that were asked for
			l := d.requested
			d.X.SetView(l[0], l[1])
			d.Y.SetView(l[2], l[3])
		}
		d.requested = d.limits()
		if dx, dy := d.X.Span(), d.Y.Span(); 0.0 < dx && 0.0 < dy && 0.0 < avail.W() && 0.0 < avail.H() {
			kx, ky := avail.W()/dx, avail.H()/dy
			if ratio < ky/kx {
				d.Y.Expand(ky / kx / ratio)
			} else {
				d.X.Expand(kx * ratio / ky)
			}
		}
		d.widened, d.hasWidened = d.limits(), true
	case ViewAspect:
		if dx, dy := d.X.Span(), d.Y.Span(); 0.0 < dx && 0.0 < dy && 0.0 < avail.W() && 0.0 < avail.H() {
			kx, ky := avail.W()/dx, avail.H()/dy
			c := avail.Center()
			if ratio < ky/kx {
				h := ratio * kx * dy
				d.box = geom.Rect[geom.Canvas](avail.X0, c.Y-h/2.0, avail.X1, c.Y+h/2.0)
			} else {
				w := ky * dx / ratio
				d.box = geom.Rect[geom.Canvas](c.X-w/2.0, avail.Y0, c.X+w/2.0, avail.Y1)
			}
		}
	}
	d.transform = d.newTransform()
}

func linear(a *axis.Axis) bool {
	_, ok := a.Scale.(axis.Linear)
	return a.Scale == nil || ok
}

func (d *DataBox) newTransform() geom.Transform[geom.Data, geom.Canvas] {
	if linear(d.X) && linear(d.Y) {
		x0, x1 := d.X.Limits()
		y0, y1 := d.Y.Limits()
		if d.X.Inverted {
			x0, x1 = x1, x0
		}
		if d.Y.Inverted {
			y0, y1 = y1, y0
		}
		sx, sy := 1.0, 1.0
		if x1 != x0 {
			sx = d.box.W() / (x1 - x0)
		}
		if y1 != y0 {
			sy = d.box.H() / (y1 - y0)
		}
		m := geom.Identity.Translate(d.box.X0, d.box.Y0).Scale(sx, sy).Translate(-x0, -y0)
		return geom.NewAffine[geom.Data, geom.Canvas](m)
	}

	// normalized positions along the axes are mapped onto the box
	m := geom.Identity.Translate(d.box.X0, d.box.Y0).Scale(d.box.W(), d.box.H())
	return geom.ScaleTransform[geom.Data, geom.Canvas]{
		FX:        d.X.Normalize,
		FY:        d.Y.Normalize,
		Affine:    geom.NewAffine[geom.Data, geom.Canvas](m),
		Tolerance: 1e-3 * math.Min(math.Abs(d.X.Span()), math.Abs(d.Y.Span())),
	}
}

// FrameAffine maps fractions of the data box onto the canvas.
func (d *DataBox) FrameAffine() geom.Affine[geom.Frame, geom.Canvas] {
	return geom.BoxAffine[geom.Frame, geom.Canvas](geom.Rect[geom.Frame](0.0, 0.0, 1.0, 1.0), d.box)
}

////////////////////////////////////////////////////////////////

const (
	labelPad     = 3.0 // between ticks and tick labels
	axisLabelPad = 4.0 // between tick labels and axis labels
	titlePad     = 6.0
)

// Frame draws the spines, ticks, tick labels, axis labels and title around a data box, and reserves the space they
// need.
type Frame struct {
	Title  string
	Spines bool
}

func tickOut(a *axis.Axis) float64 {
	switch a.TickDir {
	case axis.TicksIn:
		return 0.0
	case axis.TicksInOut:
		return a.TickLength / 2.0
	}
	return a.TickLength
}

func tickIn(a *axis.Axis) float64 {
	switch a.TickDir {
	case axis.TicksIn:
		return a.TickLength
	case axis.TicksInOut:
		return a.TickLength / 2.0
	}
	return 0.0
}

func textHeight(r render.Renderer, s string, ts style.TextStyle) float64 {
	_, ascent, descent := r.MeasureText(s, ts)
	return ascent + descent
}

// tickLabelSize returns the width of the widest and the height of the highest tick label.
func tickLabelSize(r render.Renderer, a *axis.Axis, ts style.TextStyle) (float64, float64) {
	w, h := 0.0, 0.0
	for _, tick := range a.Ticks() {
		if tick.Minor || tick.Label == "" {
			continue
		}
		tw, ascent, descent := r.MeasureText(tick.Label, ts)
		w, h = math.Max(w, tw), math.Max(h, ascent+descent)
	}
	return w, h
}

// Insets returns the space needed around the data box on each side.
func (f *Frame) Insets(r render.Renderer, d *DataBox, s settings) (left, bottom, right, top float64) {
	ts := s.textStyle()
	if d.X.Visible {
		bottom += tickOut(d.X)
		if d.X.TickLabels {
			_, h := tickLabelSize(r, d.X, ts)
			if 0.0 < h {
				bottom += labelPad + h
			}
		}
		if d.X.Label != "" {
			bottom += axisLabelPad + textHeight(r, d.X.Label, ts)
		}
	}
	if d.Y.Visible {
		left += tickOut(d.Y)
		if d.Y.TickLabels {
			w, _ := tickLabelSize(r, d.Y, ts)
			if 0.0 < w {
				left += labelPad + w
			}
		}
		if d.Y.Label != "" {
			left += axisLabelPad + textHeight(r, d.Y.Label, ts)
		}
	}
	if f.Title != "" {
		top += titlePad + textHeight(r, f.Title, s.titleStyle())
	}
	return
}

// DrawBackground fills the data box.
func (f *Frame) DrawBackground(r render.Renderer, d *DataBox, s settings) {
	if s.face.IsTransparent() {
		return
	}
	ps := style.DefaultPathStyle()
	ps.Face = s.face
	ps.Edge = colors.Transparent
	ps.Width = 0.0
	r.DrawPath(d.box.Path(), ps, render.NoClip)
}

// DrawGrid draws grid lines at the ticks of both axes.
func (f *Frame) DrawGrid(r render.Renderer, d *DataBox, s settings) {
	b := d.box
	major, minor := geom.Builder[geom.Canvas]{}, geom.Builder[geom.Canvas]{}
	grid := func(a *axis.Axis, vertical bool) {
		if a.Grid == axis.GridNone {
			return
		}
		for _, tick := range a.Ticks() {
			if tick.Minor && a.Grid != axis.GridBoth {
				continue
			}
			t := a.Normalize(tick.Value)
			if t < -1e-9 || 1.0+1e-9 < t || math.IsNaN(t) {
				continue
			}
			bld := &major
			if tick.Minor {
				bld = &minor
			}
			if vertical {
				x := b.X0 + t*b.W()
				bld.MoveTo(x, b.Y0)
				bld.LineTo(x, b.Y1)
			} else {
				y := b.Y0 + t*b.H()
				bld.MoveTo(b.X0, y)
				bld.LineTo(b.X1, y)
			}
		}
	}
	grid(d.X, true)
	grid(d.Y, false)

	ps := style.DefaultPathStyle()
	ps.Edge = s.gridColor
	ps.Width = 0.8
	if p := major.Path(); !p.Empty() {
		r.DrawPath(p, ps, render.ClipTo(b))
	}
	if p := minor.Path(); !p.Empty() {
		ps.Width = 0.4
		r.DrawPath(p, ps, render.ClipTo(b))
	}
}

// Draw draws the spines, ticks and labels of both axes and the title.
func (f *Frame) Draw(r render.Renderer, d *DataBox, s settings) {
	b := d.box
	ts := s.textStyle()

	edge := style.DefaultPathStyle()
	edge.Edge = s.edge
	edge.Width = 1.0
	edge.Join = geom.MiterJoin
	if f.Spines {
		r.DrawPath(b.Path(), edge, render.NoClip)
	}

	ticks := geom.Builder[geom.Canvas]{}
	minorTicks := geom.Builder[geom.Canvas]{}
	if d.X.Visible {
		out, in := tickOut(d.X), tickIn(d.X)
		labelY := b.Y0 - out - labelPad
		labelH := 0.0
		for _, tick := range d.X.Ticks() {
			t := d.X.Normalize(tick.Value)
			if t < -1e-9 || 1.0+1e-9 < t || math.IsNaN(t) {
				continue
			}
			x := b.X0 + t*b.W()
			bld, scale := &ticks, 1.0
			if tick.Minor {
				bld, scale = &minorTicks, 0.5
			}
			bld.MoveTo(x, b.Y0-out*scale)
			bld.LineTo(x, b.Y0+in*scale)
			if tick.Label != "" {
				run := render.TextRun{Text: tick.Label, Pos: geom.Pt[geom.Canvas](x, labelY), Style: ts, HAlign: style.Center, VAlign: style.Top}
				r.DrawText(run, render.NoClip)
				labelH = math.Max(labelH, textHeight(r, tick.Label, ts))
			}
		}
		if d.X.Label != "" {
			y := labelY - labelH - axisLabelPad
			if labelH == 0.0 {
				y = b.Y0 - out - axisLabelPad
			}
			run := render.TextRun{Text: d.X.Label, Pos: geom.Pt[geom.Canvas](b.Center().X, y), Style: ts, HAlign: style.Center, VAlign: style.Top}
			r.DrawText(run, render.NoClip)
		}
	}
	if d.Y.Visible {
		out, in := tickOut(d.Y), tickIn(d.Y)
		labelX := b.X0 - out - labelPad
		labelW := 0.0
		for _, tick := range d.Y.Ticks() {
			t := d.Y.Normalize(tick.Value)
			if t < -1e-9 || 1.0+1e-9 < t || math.IsNaN(t) {
				continue
			}
			y := b.Y0 + t*b.H()
			bld, scale := &ticks, 1.0
			if tick.Minor {
				bld, scale = &minorTicks, 0.5
			}
			bld.MoveTo(b.X0-out*scale, y)
			bld.LineTo(b.X0+in*scale, y)
			if tick.Label != "" {
				run := render.TextRun{Text: tick.Label, Pos: geom.Pt[geom.Canvas](labelX, y), Style: ts, HAlign: style.Right, VAlign: style.Middle}
				r.DrawText(run, render.NoClip)
				w, _, _ := r.MeasureText(tick.Label, ts)
				labelW = math.Max(labelW, w)
			}
		}
		if d.Y.Label != "" {
			x := labelX - labelW - axisLabelPad
			if labelW == 0.0 {
				x = b.X0 - out - axisLabelPad
			}
			run := render.TextRun{Text: d.Y.Label, Pos: geom.Pt[geom.Canvas](x, b.Center().Y), Style: ts, HAlign: style.Center, VAlign: style.Bottom, Rotation: 90.0}
			r.DrawText(run, render.NoClip)
		}
	}
	edge.Join = geom.RoundJoin
	if p := ticks.Path(); !p.Empty() {
		r.DrawPath(p, edge, render.NoClip)
	}
	if p := minorTicks.Path(); !p.Empty() {
		edge.Width = 0.6
		r.DrawPath(p, edge, render.NoClip)
	}

	if f.Title != "" {
		run := render.TextRun{Text: f.Title, Pos: geom.Pt[geom.Canvas](b.Center().X, b.Y1+titlePad), Style: s.titleStyle(), HAlign: style.Center, VAlign: style.Bottom}
		r.DrawText(run, render.NoClip)
	}
}

package artist

import (
	"fmt"
	"math"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/layout"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// Pie draws wedges of a unit circle at the origin proportional to the values, counter clockwise from StartAngle.
// Labels are placed outside the wedges and moved apart when they overlap.
type Pie struct {
	Values      []float32
	Labels      []string
	Colors      colors.Palette
	Explode     []float64 // radial offset per wedge as a fraction of the radius
	StartAngle  float64   // in degrees
	Clockwise   bool
	Width       float64 // ring width as a fraction of the radius, zero draws full wedges
	LabelRadius float64
	Percent     string // format of the percentage drawn inside each wedge, such as "%.1f%%", empty draws none
	Style       style.PathStyle
	Text        style.TextStyle // a zero size uses the theme

	labelBoxes []geom.Bounds[geom.Canvas]
}

// NewPie returns a pie of the values, which must be non-negative with a positive sum.
func NewPie(values []float32, labels []string) (*Pie, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("pie: %w", ErrEmptyData)
	}
	if labels != nil {
		if err := checkLen("pie labels", len(values), len(labels)); err != nil {
			return nil, err
		}
	}
	sum := 0.0
	for _, v := range values {
		if !finite32(v) || v < 0 {
			return nil, fmt.Errorf("pie: value %v: %w", v, ErrInvalidShape)
		}
		sum += float64(v)
	}
	if sum == 0.0 {
		return nil, fmt.Errorf("pie: zero sum: %w", ErrEmptyData)
	}
	s := style.DefaultPathStyle()
	s.Edge = colors.White
	s.Width = 1.0
	return &Pie{
		Values:      values,
		Labels:      labels,
		Colors:      colors.Tableau10,
		LabelRadius: 1.1,
		Style:       s,
	}, nil
}

type wedge struct {
	theta0, theta1 float64 // in degrees
	center         geom.Point[geom.Data]
}

func (p *Pie) wedges() []wedge {
	sum := 0.0
	for _, v := range p.Values {
		sum += float64(v)
	}
	dir := 1.0
	if p.Clockwise {
		dir = -1.0
	}
	ws := make([]wedge, len(p.Values))
	theta := p.StartAngle
	for i, v := range p.Values {
		dtheta := dir * 360.0 * float64(v) / sum
		w := wedge{theta0: theta, theta1: theta + dtheta}
		if w.theta1 < w.theta0 {
			w.theta0, w.theta1 = w.theta1, w.theta0
		}
		if i < len(p.Explode) && p.Explode[i] != 0.0 {
			mid := (w.theta0 + w.theta1) / 2.0 * math.Pi / 180.0
			w.center = geom.Pt[geom.Data](p.Explode[i]*math.Cos(mid), p.Explode[i]*math.Sin(mid))
		}
		ws[i] = w
		theta += dtheta
	}
	return ws
}

func (p *Pie) Extent() geom.Bounds[geom.Data] {
	r := 1.0
	for _, e := range p.Explode {
		r = math.Max(r, 1.0+e)
	}
	if p.Labels != nil {
		r = math.Max(r, p.LabelRadius)
	}
	return geom.Rect[geom.Data](-r, -r, r, r)
}

func (p *Pie) Layout(LayoutInfo) {}

func (p *Pie) textStyle(ctx *DrawContext) style.TextStyle {
	ts := p.Text
	if ts.Size == 0.0 {
		ts = ctx.Theme.Text
	}
	return ts
}

func (p *Pie) Draw(ctx *DrawContext) error {
	s := ctx.Style(p.Style)
	ws := p.wedges()
	for i, w := range ws {
		if w.theta0 == w.theta1 {
			continue
		}
		path := wedgePath(w.center.X, w.center.Y, 1.0, w.theta0, w.theta1, p.Width)
		s.Face = p.Colors.Get(i)
		ctx.Renderer.DrawPath(ctx.Path(path), s, ctx.Clip)
	}

	ts := p.textStyle(ctx)
	if p.Percent != "" {
		sum := 0.0
		for _, v := range p.Values {
			sum += float64(v)
		}
		for i, w := range ws {
			r := 0.6
			if p.Width != 0.0 {
				r = 1.0 - p.Width/2.0
			}
			pos := p.along(ctx, w, r)
			ctx.Renderer.DrawText(render.TextRun{
				Text:   fmt.Sprintf(p.Percent, 100.0*float64(p.Values[i])/sum),
				Pos:    pos,
				Style:  ts,
				HAlign: style.Center,
				VAlign: style.Middle,
			}, ctx.Clip)
		}
	}

	if p.Labels == nil {
		return nil
	}
	runs := make([]render.TextRun, len(ws))
	boxes := make([]geom.Bounds[geom.Canvas], len(ws))
	for i, w := range ws {
		pos := p.along(ctx, w, p.LabelRadius)
		mid := (w.theta0 + w.theta1) / 2.0 * math.Pi / 180.0
		halign := style.Left
		if math.Cos(mid) < 0.0 {
			halign = style.Right
		}
		width, ascent, descent := ctx.Renderer.MeasureText(p.Labels[i], ts)
		x0 := pos.X
		if halign == style.Right {
			x0 -= width
		}
		boxes[i] = geom.Rect[geom.Canvas](x0, pos.Y-(ascent+descent)/2.0, x0+width, pos.Y+(ascent+descent)/2.0)
		runs[i] = render.TextRun{Text: p.Labels[i], Pos: pos, Style: ts, HAlign: halign, VAlign: style.Middle}
	}

	p.labelBoxes = layout.Declutter(ctx.Box, boxes, nil, int64(len(ws)))
	for i, run := range runs {
		if p.Labels[i] == "" {
			continue
		}
		run.Pos = run.Pos.Add(p.labelBoxes[i].Min().Sub(boxes[i].Min()))
		ctx.Renderer.DrawText(run, render.NoClip)
	}
	return nil
}

// LabelBoxes returns the label rectangles after the last draw.
func (p *Pie) LabelBoxes() []geom.Bounds[geom.Canvas] {
	return p.labelBoxes
}

func (p *Pie) along(ctx *DrawContext, w wedge, r float64) geom.Point[geom.Canvas] {
	mid := (w.theta0 + w.theta1) / 2.0 * math.Pi / 180.0
	return ctx.Point(w.center.X+r*math.Cos(mid), w.center.Y+r*math.Sin(mid))
}

// Legend returns no single handle, the wedges are listed by LegendEntries.
func (p *Pie) Legend() (LegendHandle, bool) {
	return LegendHandle{}, false
}

func (p *Pie) LegendEntries() []LegendHandle {
	var hs []LegendHandle
	for i, label := range p.Labels {
		if label == "" {
			continue
		}
		s := p.Style
		s.Face = p.Colors.Get(i)
		hs = append(hs, LegendHandle{Label: label, Kind: PatchHandle, Style: s})
	}
	return hs
}

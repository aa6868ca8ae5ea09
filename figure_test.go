package figure

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/figure/artist"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/renderers/gpu"
	"github.com/tdewolff/test"
)

func countLines(p geom.Path[geom.Canvas]) int {
	n := 0
	p.Segments(func(seg geom.Segment[geom.Canvas]) bool {
		if seg.Cmd == geom.LineTo {
			n++
		}
		return true
	})
	return n
}

func pathsOf(rec *render.Recorder, edge colors.Color) []render.Op {
	var ops []render.Op
	for _, op := range rec.Filter(render.PathOp) {
		if op.Style.Edge == edge {
			ops = append(ops, op)
		}
	}
	return ops
}

func hasText(rec *render.Recorder, s string) bool {
	for _, op := range rec.Filter(render.TextOp) {
		if op.Text.Text == s {
			return true
		}
	}
	return false
}

func TestPlot(t *testing.T) {
	f := New(Size(200, 200))
	c := f.Chart()
	_, err := c.Plot([]float32{0, 1, 2, 3}, []float32{0, 1, 0, 1})
	test.Error(t, err)

	rec := render.NewRecorder(200, 200)
	f.Frame(rec)

	lines := pathsOf(rec, colors.Tableau10[0])
	test.T(t, len(lines), 1)
	test.T(t, countLines(lines[0].Path), 3)

	hasZero, hasThree := false, false
	for _, tick := range c.DataBox().X.Ticks() {
		if tick.Minor {
			continue
		}
		hasZero = hasZero || tick.Value == 0.0
		hasThree = hasThree || tick.Value == 3.0
	}
	test.That(t, hasZero, "tick at 0")
	test.That(t, hasThree, "tick at 3")
	test.That(t, hasText(rec, "3"), "tick label 3")
	test.That(t, !f.NeedsRedraw())
}

func TestAspectLetterbox(t *testing.T) {
	d := StandardDefaults()
	d.Margin = 0.0
	f := New(Size(400, 200), WithConfig(NewConfig(d)))
	c := f.Chart()
	c.X().Visible(false)
	c.Y().Visible(false)
	c.Xlim(0, 10).Ylim(0, 10).Aspect(1.0)
	_, err := c.Plot([]float32{0, 10}, []float32{0, 10})
	test.Error(t, err)

	f.Frame(render.NewRecorder(400, 200))
	box := c.DataBox().Box()
	test.Float(t, box.W(), 200.0)
	test.Float(t, box.H(), 200.0)
	test.Float(t, box.X0, 100.0)
}

func TestAspectEqual(t *testing.T) {
	d := StandardDefaults()
	d.Margin = 0.0
	f := New(Size(400, 200), WithConfig(NewConfig(d)))
	c := f.Chart()
	c.X().Visible(false)
	c.Y().Visible(false)
	c.Xlim(0, 10).Ylim(0, 10).SetAspect(Equal)

	for i := 0; i < 3; i++ {
		// repeated frames do not keep widening
		f.Frame(render.NewRecorder(400, 200))
		lo, hi := c.DataBox().X.Limits()
		test.Float(t, lo, -5.0)
		test.Float(t, hi, 15.0)
		lo, hi = c.DataBox().Y.Limits()
		test.Float(t, lo, 0.0)
		test.Float(t, hi, 10.0)
	}
}

func TestDrawOrderPixels(t *testing.T) {
	f := New(Size(200, 200))
	c := f.Chart().Xlim(0.0, 10.0).Ylim(0.0, 10.0)
	square := func(x, y float64) geom.Path[geom.Data] {
		b := geom.Builder[geom.Data]{}
		b.Rect(x, y, 6.0, 6.0)
		return b.Path()
	}
	a, err := c.Patch(square(0.0, 0.0))
	test.Error(t, err)
	a.Face(colors.Red)
	b, err := c.Patch(square(4.0, 4.0))
	test.Error(t, err)
	b.Face(colors.Blue)

	pixel := func(img *image.RGBA, x, y float64) colors.Color {
		p := c.DataBox().Transform().Point(geom.Pt[geom.Data](x, y))
		col := img.RGBAAt(int(p.X), img.Bounds().Dy()-1-int(p.Y))
		return colors.Color{R: col.R, G: col.G, B: col.B, A: col.A}
	}
	img := f.Image(200, 200)
	test.T(t, pixel(img, 2.3, 2.4), colors.Red)
	test.T(t, pixel(img, 5.3, 4.6), colors.Blue, "later patch on top")
	test.T(t, pixel(img, 8.3, 8.4), colors.Blue)

	a.ZOrder(1)
	img = f.Image(200, 200)
	test.T(t, pixel(img, 5.3, 4.6), colors.Red, "higher z-order on top")
}

func TestDrawOrder(t *testing.T) {
	f := New(Size(200, 200))
	c := f.Chart()
	first, err := c.Plot([]float32{0, 1}, []float32{0, 1})
	test.Error(t, err)
	_, err = c.Plot([]float32{0, 1}, []float32{1, 0})
	test.Error(t, err)

	rec := render.NewRecorder(200, 200)
	f.Frame(rec)
	index := func(col colors.Color) int {
		for i, op := range rec.Ops {
			if op.Kind == render.PathOp && op.Style.Edge == col {
				return i
			}
		}
		return -1
	}
	test.That(t, 0 <= index(colors.Tableau10[0]))
	test.That(t, index(colors.Tableau10[0]) < index(colors.Tableau10[1]), "later artists on top")

	first.ZOrder(1)
	rec.Reset()
	f.Frame(rec)
	test.That(t, index(colors.Tableau10[1]) < index(colors.Tableau10[0]), "higher z-order on top")
}

func TestSaveImage(t *testing.T) {
	f := New(Size(640, 480))
	x := artist.Linspace(0.0, 2.0*math.Pi, 100)
	y := make([]float32, len(x))
	for i := range x {
		y[i] = float32(math.Sin(float64(x[i])))
	}
	_, err := f.Chart().Plot(x, y)
	test.Error(t, err)

	buf := &bytes.Buffer{}
	test.Error(t, f.WriteTo(buf, "png"))
	img, err := png.Decode(buf)
	test.Error(t, err)
	test.T(t, img.Bounds().Dx(), 640)
	test.T(t, img.Bounds().Dy(), 480)

	drawn := false
	for j := 0; j < 480 && !drawn; j++ {
		for i := 0; i < 640; i++ {
			if r, g, b, _ := img.At(i, j).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
				drawn = true
				break
			}
		}
	}
	test.That(t, drawn, "non-background pixels")

	path := filepath.Join(t.TempDir(), "sin.png")
	test.Error(t, f.Save(path, 192))
	file, err := os.Open(path)
	test.Error(t, err)
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	test.Error(t, err)
	test.T(t, cfg.Width, 1280)

	test.That(t, errors.Is(f.Save(filepath.Join(t.TempDir(), "sin"), 0), render.ErrIO), "no extension")
	test.That(t, f.WriteTo(&bytes.Buffer{}, "bmp") != nil, "unknown format")
}

func TestClosed(t *testing.T) {
	f := New()
	c := f.Chart()
	line, err := c.Plot([]float32{0, 1}, []float32{0, 1})
	test.Error(t, err)

	line.Remove()
	_, ok := c.Get(line.ID())
	test.That(t, !ok)
	line.Color(colors.Red) // dropped

	f.Close()
	test.That(t, c.Closed())
	_, err = c.Plot([]float32{0, 1}, []float32{0, 1})
	test.T(t, err, ErrClosed)
	_, err = f.Chart().Scatter([]float32{0}, []float32{0})
	test.T(t, err, ErrClosed)
	test.T(t, f.Show(), ErrClosed)
}

func TestGrid(t *testing.T) {
	d := StandardDefaults()
	d.Margin = 0.0
	f := New(Size(200, 100), WithConfig(NewConfig(d))).Grid(1, 2)
	left, right := f.Chart(), f.Chart()
	f.Multichart(func(sf *SubFigure) {
		sf.Grid(2, 1)
		sf.Chart()
		sf.Chart()
	})
	test.T(t, len(f.Charts()), 4)

	f.Frame(render.NewRecorder(200, 100))
	test.That(t, left.Box().X1 <= right.Box().X0, "disjoint charts")
	top, bottom := f.Charts()[2].Box(), f.Charts()[3].Box()
	test.That(t, top.Y1 <= left.Box().Y0+1e-9, "nested grid below the first row")
	test.That(t, bottom.Y1 <= top.Y0+1e-9, "nested rows top to bottom")
	test.Float(t, top.W(), 100.0)

	_, err := f.ChartAt(-1, 0, 1, 1)
	test.That(t, err != nil)
}

func TestColorbar(t *testing.T) {
	f := New(Size(300, 200))
	c := f.Chart()
	z := artist.GridFunc(2, 2, func(i, j int) float32 { return float32(i + j) })
	mesh, err := c.Pcolormesh([]float32{0, 1, 2}, []float32{0, 1, 2}, z, artist.Flat)
	test.Error(t, err)
	line, err := c.Plot([]float32{0, 2}, []float32{0, 2})
	test.Error(t, err)

	_, err = c.Colorbar(line.ID())
	test.T(t, err, ErrNotMappable)
	_, err = c.Colorbar(ArtistID(1000))
	test.T(t, err, ErrUnknownArtist)

	cb, err := c.Colorbar(mesh.ID())
	test.Error(t, err)
	rec := render.NewRecorder(300, 200)
	f.Frame(rec)
	test.That(t, !cb.Box().IsEmpty())
	test.That(t, c.DataBox().Box().X1 < cb.Box().X0, "colorbar right of the data box")
	lo, hi := cb.Axis.Limits()
	test.Float(t, lo, 0.0)
	test.Float(t, hi, 2.0)
	test.T(t, len(rec.Filter(render.ImageOp)), 1)
}

func TestLegend(t *testing.T) {
	f := New(Size(300, 200))
	c := f.Chart()
	line, err := c.Plot([]float32{0, 1}, []float32{0, 1})
	test.Error(t, err)
	line.Label("rising")
	_, err = c.Plot([]float32{0, 1}, []float32{1, 0})
	test.Error(t, err)
	l := c.Legend(UpperLeft)

	rec := render.NewRecorder(300, 200)
	f.Frame(rec)
	test.T(t, len(l.Handles()), 1)
	test.T(t, l.Placed(), UpperLeft)
	test.That(t, hasText(rec, "rising"))
	test.That(t, c.DataBox().Box().Contains(l.Box().Center()))
}

func TestLegendBest(t *testing.T) {
	box := geom.Rect[geom.Canvas](0, 0, 100, 100)
	var pts []geom.Point[geom.Canvas]
	for i := 0; i < 10; i++ {
		pts = append(pts, geom.Pt[geom.Canvas](80+float64(i), 80+float64(i)))
	}
	test.T(t, best(box, 20, 10, pts), UpperLeft)
	test.T(t, best(box, 20, 10, nil), UpperRight)

	a, err := ParseAnchor("lower right")
	test.Error(t, err)
	test.T(t, a, LowerRight)
	test.T(t, a.String(), "lower right")
}

type scriptWindow struct {
	events []Event
	r      FrameRenderer
}

func (w *scriptWindow) WaitEvent() (Event, bool) {
	if len(w.events) == 0 {
		return nil, false
	}
	ev := w.events[0]
	w.events = w.events[1:]
	return ev, true
}

func (w *scriptWindow) Renderer() FrameRenderer {
	return w.r
}

func TestLoop(t *testing.T) {
	f := New(Size(200, 200))
	c := f.Chart()
	_, err := c.Plot([]float32{0, 10}, []float32{0, 10})
	test.Error(t, err)

	dev := gpu.NewSoftDevice(200, 200, 1.0)
	r := gpu.NewRenderer(dev)
	l := NewLoop(f)
	test.Error(t, l.Frame(r))
	test.T(t, dev.Frames(), 1)
	test.Error(t, l.Frame(r))
	test.T(t, dev.Frames(), 1, "no redraw without changes")

	x := c.DataBox().X
	lo, hi := x.Limits()
	box := c.DataBox().Box()
	l.Handle(ScrollEvent{Pos: box.Center(), DY: 1.0})
	lo2, hi2 := x.Limits()
	test.Float(t, hi2-lo2, zoomStep*(hi-lo))
	test.Float(t, (lo2+hi2)/2.0, (lo+hi)/2.0)
	test.Error(t, l.Frame(r))
	test.T(t, dev.Frames(), 2)

	// tick labels of the zoomed range may change the layout
	box = c.DataBox().Box()
	l.Handle(MouseEvent{Action: MousePress, Button: ButtonLeft, Pos: box.Center()})
	l.Handle(MouseEvent{Action: MouseMove, Pos: box.Center().Add(geom.Pt[geom.Canvas](box.W()/10.0, 0.0))})
	l.Handle(MouseEvent{Action: MouseRelease, Button: ButtonLeft})
	lo3, hi3 := x.Limits()
	test.Float(t, lo3, lo2-(hi2-lo2)/10.0)
	test.Float(t, hi3, hi2-(hi2-lo2)/10.0)

	l.Handle(KeyEvent{Key: "r"})
	lo4, hi4 := x.Limits()
	test.Float(t, lo4, lo)
	test.Float(t, hi4, hi)

	l.Handle(KeyEvent{Key: "q"})
	test.That(t, l.Done())
	test.Error(t, l.Err())
}

func TestMainLoop(t *testing.T) {
	f := New(Size(100, 100))
	_, err := f.Chart().Plot([]float32{0, 1}, []float32{0, 1})
	test.Error(t, err)

	dev := gpu.NewSoftDevice(100, 100, 1.0)
	w := &scriptWindow{
		events: []Event{ResizeEvent{W: 120, H: 100}, KeyEvent{Key: "x"}, CloseEvent{}, KeyEvent{Key: "r"}},
		r:      gpu.NewRenderer(dev),
	}
	test.Error(t, f.MainLoop(w))
	test.T(t, dev.Frames(), 2)
	test.T(t, len(w.events), 1, "stopped at close")

	dev.Lose()
	f.RequestRedraw()
	w.events = []Event{CloseEvent{}}
	err = f.MainLoop(w)
	test.That(t, errors.Is(err, render.ErrDeviceLost))
}

func TestShow(t *testing.T) {
	displayMu.Lock()
	prev := display
	display = nil
	displayMu.Unlock()
	defer RegisterDisplay(prev)

	test.T(t, New().Show(), ErrNoDisplay)
}

func TestRenderGPU(t *testing.T) {
	f := New(Size(50, 50), Background(colors.Black))
	dev := gpu.NewSoftDevice(50, 50, 1.0)
	test.Error(t, f.RenderGPU(dev))
	c := dev.Image().RGBAAt(25, 25)
	test.T(t, [4]uint8{c.R, c.G, c.B, c.A}, [4]uint8{0, 0, 0, 255})
}

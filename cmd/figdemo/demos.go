package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/tdewolff/figure"
	"github.com/tdewolff/figure/artist"
	"github.com/tdewolff/figure/axis"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geo"
	"github.com/tdewolff/figure/style"
)

var demos = map[string]func(*figure.Figure) error{
	"lines":    linesDemo,
	"scatter":  scatterDemo,
	"bars":     barsDemo,
	"contour":  contourDemo,
	"mesh":     meshDemo,
	"specgram": specgramDemo,
	"pie":      pieDemo,
	"geo":      geoDemo,
	"gochart":  goChartDemo,
}

func linspace(lo, hi float64, n int) []float32 {
	xs := make([]float32, n)
	for i := range xs {
		xs[i] = float32(lo + (hi-lo)*float64(i)/float64(n-1))
	}
	return xs
}

func apply(xs []float32, f func(float64) float64) []float32 {
	ys := make([]float32, len(xs))
	for i, x := range xs {
		ys[i] = float32(f(float64(x)))
	}
	return ys
}

func linesDemo(fig *figure.Figure) error {
	fig.Suptitle("Trigonometry")
	c := fig.Chart().Title("sin and cos").Grid(axis.GridMajor)
	x := linspace(0.0, 2.0*math.Pi, 200)
	if _, err := c.Plot(x, apply(x, math.Sin)); err != nil {
		return err
	} else if _, err := c.Plot(x, apply(x, math.Cos)); err != nil {
		return err
	}
	lines, _ := c.Plot(x, apply(x, func(x float64) float64 { return math.Sin(x) * math.Cos(x) }))
	lines.LineStyle(style.Dashed).Label("sin·cos")
	if _, err := c.HLine(0.0); err != nil {
		return err
	}
	c.X().Label("x")
	c.Y().Label("y")
	c.ShowLegend()
	return nil
}

func scatterDemo(fig *figure.Figure) error {
	c := fig.Chart().Title("Spiral")
	n := 150
	x, y, v := make([]float32, n), make([]float32, n), make([]float32, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n) * 6.0 * math.Pi
		x[i], y[i], v[i] = float32(t*math.Cos(t)), float32(t*math.Sin(t)), float32(t)
	}
	sc, err := c.Scatter(x, y)
	if err != nil {
		return err
	}
	sc.Values(v).ColorMap(colors.Viridis).Marker(style.Circle).Size(5.0)
	c.SetAspect(figure.Equal)
	_, err = c.Colorbar(sc.ID())
	return err
}

func barsDemo(fig *figure.Figure) error {
	fig.Grid(1, 2)
	c := fig.Chart().Title("Bars")
	bars, err := c.Bar([]float32{1, 2, 3, 4, 5}, []float32{3, 7, 2, 5, 4})
	if err != nil {
		return err
	}
	bars.Hatch(style.Diagonal).Label("counts")

	h := fig.Chart().Title("Histogram")
	values := make([]float32, 1000)
	for i := range values {
		// deterministic bell shape
		u := (float64(i) + 0.5) / float64(len(values))
		values[i] = float32(math.Sqrt2 * math.Erfinv(2.0*u-1.0))
	}
	_, err = h.Hist(values, 30)
	return err
}

func contourDemo(fig *figure.Figure) error {
	c := fig.Chart().Title("Contours")
	n := 60
	x, y := linspace(-3.0, 3.0, n), linspace(-3.0, 3.0, n)
	data := make([]float32, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			xi, yj := float64(x[j]), float64(y[i])
			data[i*n+j] = float32(math.Exp(-(xi*xi+yj*yj)/2.0) - 0.5*math.Exp(-((xi-1.0)*(xi-1.0)+(yj-1.0)*(yj-1.0))))
		}
	}
	z, err := artist.NewGrid(n, n, data)
	if err != nil {
		return err
	}
	filled, err := c.ContourFilled(x, y, z, nil)
	if err != nil {
		return err
	}
	filled.ColorMap(colors.Viridis)
	if _, err := c.Contour(x, y, z, nil); err != nil {
		return err
	}
	_, err = c.Colorbar(filled.ID())
	return err
}

func meshDemo(fig *figure.Figure) error {
	c := fig.Chart().Title("Gouraud mesh")
	n := 20
	x, y := linspace(0.0, 1.0, n), linspace(0.0, 1.0, n)
	data := make([]float32, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = float32(math.Sin(4.0*float64(x[j])) * math.Cos(3.0*float64(y[i])))
		}
	}
	z, err := artist.NewGrid(n, n, data)
	if err != nil {
		return err
	}
	mesh, err := c.Pcolormesh(x, y, z, artist.Gouraud)
	if err != nil {
		return err
	}
	_, err = c.Colorbar(mesh.ID())
	return err
}

func specgramDemo(fig *figure.Figure) error {
	c := fig.Chart().Title("Chirp")
	fs := 8000.0
	x := make([]float32, 16000)
	for i := range x {
		t := float64(i) / fs
		x[i] = float32(math.Sin(2.0 * math.Pi * (100.0 + 800.0*t) * t))
	}
	sg, err := c.Specgram(x, 256, 128, fs)
	if err != nil {
		return err
	}
	sg.DynamicRange(60.0)
	c.X().Label("time (s)")
	c.Y().Label("frequency (Hz)")
	_, err = c.Colorbar(sg.ID())
	return err
}

func pieDemo(fig *figure.Figure) error {
	c := fig.Chart().Title("Shares")
	pie, err := c.Pie([]float32{35, 25, 20, 15, 5}, []string{"a", "b", "c", "d", "e"})
	if err != nil {
		return err
	}
	pie.Explode([]float64{0.1, 0, 0, 0, 0}).Donut(0.4)
	c.ShowLegend()
	return nil
}

func geoDemo(fig *figure.Figure) error {
	c := fig.Chart().Title("Web mercator")
	ring := orb.Ring{{4.0, 51.0}, {7.0, 51.0}, {7.0, 53.5}, {4.0, 53.5}, {4.0, 51.0}}
	route := orb.LineString{{4.9, 52.4}, {5.1, 52.1}, {5.5, 51.4}, {6.1, 52.2}}
	if _, err := c.Geo(geo.EPSG(4326, 3857, 1000.0), orb.Polygon{ring}, route, orb.Point{4.9, 52.4}); err != nil {
		return err
	}
	c.SetAspect(figure.Equal)
	c.X().Label("km")
	return nil
}

func goChartDemo(fig *figure.Figure) error {
	c := fig.Chart().Title("go-chart")
	c.X().Visible(false)
	c.Y().Visible(false)
	_, err := c.GoChart(&chart.Chart{
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "squares",
				XValues: []float64{1, 2, 3, 4, 5},
				YValues: []float64{1, 4, 9, 16, 25},
			},
		},
	})
	return err
}

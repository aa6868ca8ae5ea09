package figure

import (
	"sort"

	"github.com/tdewolff/figure/artist"
	"github.com/tdewolff/figure/axis"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/layout"
	"github.com/tdewolff/figure/render"
	"github.com/tdewolff/figure/style"
)

// ArtistID identifies an artist within its chart. IDs are never reused and are invalid after the chart is closed.
type ArtistID uint64

type entry struct {
	id     ArtistID
	artist artist.Artist
	dirty  bool
}

// Chart is a data box with its axes, frame, artists, legend and colorbar. Charts are made by a figure and draw
// themselves into the cell they were given.
type Chart struct {
	fig  *Figure
	cell *layout.Cell

	data     *DataBox
	frame    Frame
	cycle    *colors.Cycle
	entries  []*entry
	nextID   ArtistID
	legend   *Legend
	colorbar *Colorbar
	closed   bool

	s      settings
	info   artist.LayoutInfo
	points []geom.Point[geom.Canvas] // drawn vertices for the legend placement
}

func newChart(f *Figure, cell *layout.Cell) *Chart {
	s := f.cfg.snapshot()
	c := &Chart{
		fig:   f,
		cell:  cell,
		data:  NewDataBox(),
		frame: Frame{Spines: true},
		cycle: colors.NewCycle(s.palette),
		s:     s,
	}
	for _, a := range []*axis.Axis{c.data.X, c.data.Y} {
		a.Grid = s.grid
		a.TickLength = s.tickLength
		a.TickDir = s.tickDir
		a.Margin = s.autoscale
	}
	return c
}

// Figure returns the figure of the chart.
func (c *Chart) Figure() *Figure {
	return c.fig
}

// DataBox returns the data region with its axes.
func (c *Chart) DataBox() *DataBox {
	return c.data
}

// Closed returns true after Close.
func (c *Chart) Closed() bool {
	return c.closed
}

// Len returns the number of artists.
func (c *Chart) Len() int {
	return len(c.entries)
}

// IDs returns the IDs of the artists in insertion order.
func (c *Chart) IDs() []ArtistID {
	ids := make([]ArtistID, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.id
	}
	return ids
}

// Get returns the artist with the given ID.
func (c *Chart) Get(id ArtistID) (artist.Artist, bool) {
	if e := c.lookup(id); e != nil {
		return e.artist, true
	}
	return nil, false
}

func (c *Chart) lookup(id ArtistID) *entry {
	for _, e := range c.entries {
		if e.id == id {
			return e
		}
	}
	return nil
}

func (c *Chart) redraw() {
	if c.fig != nil {
		c.fig.RequestRedraw()
	}
}

// add inserts an artist and returns its ID. Chart-owned defaults such as the cycle color are applied by the caller.
func (c *Chart) add(a artist.Artist) (ArtistID, error) {
	if c.closed {
		return 0, ErrClosed
	}
	c.nextID++
	c.entries = append(c.entries, &entry{id: c.nextID, artist: a, dirty: true})
	c.redraw()
	return c.nextID, nil
}

// Remove removes an artist and releases its backend resources.
func (c *Chart) Remove(id ArtistID) bool {
	for i, e := range c.entries {
		if e.id == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			if rel, ok := e.artist.(artist.Releaser); ok {
				rel.Release()
			}
			if c.colorbar != nil && artist.Artist(c.colorbar.mappable) == e.artist {
				c.colorbar.release()
				c.colorbar = nil
			}
			c.redraw()
			return true
		}
	}
	return false
}

// Close removes all artists and releases their resources. The chart keeps its cell but draws nothing, and option
// handles of its artists become no-ops.
func (c *Chart) Close() {
	if c.closed {
		return
	}
	for _, e := range c.entries {
		if rel, ok := e.artist.(artist.Releaser); ok {
			rel.Release()
		}
	}
	if c.colorbar != nil {
		c.colorbar.release()
	}
	c.entries, c.colorbar, c.legend = nil, nil, nil
	c.closed = true
	c.redraw()
}

// Title sets the title above the data box.
func (c *Chart) Title(s string) *Chart {
	c.frame.Title = s
	c.redraw()
	return c
}

// Aspect letterboxes the data box so that a y-unit is r times as long as an x-unit.
func (c *Chart) Aspect(r float64) *Chart {
	return c.SetAspect(View(r))
}

// SetAspect sets the aspect policy of the data box.
func (c *Chart) SetAspect(a Aspect) *Chart {
	c.data.Aspect = a
	c.redraw()
	return c
}

// Xlim fixes the x-range, reversed limits invert the axis.
func (c *Chart) Xlim(lo, hi float64) *Chart {
	c.data.X.SetLimits(lo, hi)
	c.redraw()
	return c
}

// Ylim fixes the y-range, reversed limits invert the axis.
func (c *Chart) Ylim(lo, hi float64) *Chart {
	c.data.Y.SetLimits(lo, hi)
	c.redraw()
	return c
}

// X returns the options of the x-axis.
func (c *Chart) X() AxisOpt {
	return AxisOpt{c, c.data.X}
}

// Y returns the options of the y-axis.
func (c *Chart) Y() AxisOpt {
	return AxisOpt{c, c.data.Y}
}

// ColorCycle sets the palette from which artists without explicit colors take theirs, the cycle restarts.
func (c *Chart) ColorCycle(p colors.Palette) *Chart {
	if 0 < p.Len() {
		c.cycle.SetPalette(p)
	}
	return c
}

// Legend shows a legend of the labeled artists at the anchor.
func (c *Chart) Legend(anchor Anchor) *Legend {
	if c.legend == nil {
		c.legend = newLegend(anchor)
	}
	c.legend.Anchor = anchor
	c.redraw()
	return c.legend
}

// ShowLegend shows a legend at the anchor of the configuration.
func (c *Chart) ShowLegend() *Legend {
	return c.Legend(c.s.legend)
}

// HideLegend removes the legend.
func (c *Chart) HideLegend() {
	c.legend = nil
	c.redraw()
}

// Colorbar shows the colormap and norm of a mappable artist of the chart on the right of the data box.
func (c *Chart) Colorbar(id ArtistID) (*Colorbar, error) {
	e := c.lookup(id)
	if e == nil {
		return nil, ErrUnknownArtist
	}
	m, ok := e.artist.(artist.Mappable)
	if !ok {
		return nil, ErrNotMappable
	}
	if c.colorbar != nil {
		c.colorbar.release()
	}
	c.colorbar = newColorbar(m, c.s)
	c.redraw()
	return c.colorbar, nil
}

// Grid sets which ticks of both axes get grid lines.
func (c *Chart) Grid(g axis.Grid) *Chart {
	c.data.X.Grid, c.data.Y.Grid = g, g
	c.redraw()
	return c
}

// Box returns the rectangle of the chart after the last layout.
func (c *Chart) Box() geom.Bounds[geom.Canvas] {
	return c.cell.Box()
}

////////////////////////////////////////////////////////////////

// Autoscale sets the ranges of the axes that are not fixed to the combined extent of the artists.
func (c *Chart) Autoscale() {
	ext := geom.EmptyBounds[geom.Data]()
	for _, e := range c.entries {
		ext = artist.Combine(ext, e.artist.Extent())
	}
	c.data.X.Autoscale(ext.X0, ext.X1)
	c.data.Y.Autoscale(ext.Y0, ext.Y1)
}

// layout resolves the data box in the cell of the chart and lays out artists whose geometry changed.
func (c *Chart) layout(r render.Renderer, s settings) {
	c.s = s
	if c.closed {
		return
	}
	c.Autoscale()

	b := c.cell.Box().Inset(s.margin, s.margin, s.margin, s.margin)
	left, bottom, right, top := c.frame.Insets(r, c.data, s)
	if c.colorbar != nil {
		right += c.colorbar.reserve(r, s)
	}
	b = b.Inset(left, bottom, right, top)
	if b.IsEmpty() {
		c.data.Fit(geom.Rect[geom.Canvas](b.X0, b.Y0, b.X0, b.Y0))
	} else {
		c.data.Fit(b)
	}

	info := artist.LayoutInfo{Box: c.data.Box(), View: c.data.View(), Scale: r.ScaleFactor()}
	changed := info != c.info
	c.info = info
	for _, e := range c.entries {
		if changed || e.dirty {
			e.artist.Layout(info)
			e.dirty = false
		}
	}
}

// sorted returns the entries in draw order: by z-order and then by insertion.
func (c *Chart) sorted() []*entry {
	es := append([]*entry{}, c.entries...)
	sort.SliceStable(es, func(i, j int) bool {
		return zOrder(es[i].artist) < zOrder(es[j].artist)
	})
	return es
}

// draw draws the chart after layout. Artists failing to draw are skipped for the frame.
func (c *Chart) draw(r render.Renderer) {
	if c.closed {
		return
	}
	s := c.s
	box := c.data.Box()
	c.frame.DrawBackground(r, c.data, s)
	c.frame.DrawGrid(r, c.data, s)

	var rec *pointRecorder
	target := r
	if c.legend != nil && c.legend.Anchor == Best {
		rec = &pointRecorder{Renderer: r, pts: c.points[:0]}
		target = rec
	}
	ctx := &artist.DrawContext{
		Renderer:  target,
		Transform: c.data.Transform(),
		Frame:     c.data.FrameAffine(),
		Box:       box,
		View:      c.data.View(),
		Clip:      render.ClipTo(box),
		Theme:     s.theme,
	}
	for _, e := range c.sorted() {
		if err := e.artist.Draw(ctx); err != nil {
			logger().Warn("artist skipped", "id", uint64(e.id), "err", err)
		}
	}

	c.frame.Draw(r, c.data, s)
	if c.colorbar != nil {
		c.colorbar.draw(r, box, s)
	}
	if c.legend != nil {
		if rec != nil {
			c.points = rec.pts
		}
		c.legend.draw(r, box, c.entries, c.points, s)
	}
}

// pointRecorder passes calls on and keeps the vertices of paths and markers inside the clip.
type pointRecorder struct {
	render.Renderer
	pts []geom.Point[geom.Canvas]
}

const maxRecordedPoints = 1 << 14

func (pr *pointRecorder) keep(p geom.Point[geom.Canvas], clip render.Clip) {
	if len(pr.pts) < maxRecordedPoints && (!clip.Set || clip.Rect.Contains(p)) {
		pr.pts = append(pr.pts, p)
	}
}

func (pr *pointRecorder) DrawPath(p geom.Path[geom.Canvas], s style.PathStyle, clip render.Clip) {
	for _, pt := range p.Points() {
		pr.keep(pt, clip)
	}
	pr.Renderer.DrawPath(p, s, clip)
}

func (pr *pointRecorder) DrawMarkers(m render.Markers, s style.PathStyle, clip render.Clip) {
	for _, pt := range m.Points {
		pr.keep(pt, clip)
	}
	pr.Renderer.DrawMarkers(m, s, clip)
}

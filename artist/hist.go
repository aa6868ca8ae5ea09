package artist

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/style"
)

// Histogram counts values in evenly spaced bins and draws the counts as adjacent bars. Bins are half-open [lo, hi)
// except for the last one, which includes its right edge. Values outside the range are not counted.
type Histogram struct {
	Values     []float32
	Bins       int
	Lo, Hi     float64 // range of the bins, equal values use the range of the data
	Density    bool    // normalize the counts so the area of the bars is one
	Horizontal bool
	Style      style.PathStyle
	Label      string

	Edges  []float64
	Counts []float64
	bars   *Bars
}

// NewHistogram returns the histogram of the values in the given number of bins, 10 when zero.
func NewHistogram(values []float32, bins int) (*Histogram, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("histogram: %w", ErrEmptyData)
	} else if bins < 0 {
		return nil, fmt.Errorf("histogram with %d bins: %w", bins, ErrInvalidShape)
	}
	if bins == 0 {
		bins = 10
	}
	s := style.DefaultPathStyle()
	s.Face = colors.Tableau10[0]
	s.Edge = colors.Transparent
	s.Width = 0.0
	h := &Histogram{Values: values, Bins: bins, Style: s}
	h.Compute()
	return h, nil
}

// Compute bins the values again, after changing the values, the bins or the range.
func (h *Histogram) Compute() {
	lo, hi := h.Lo, h.Hi
	if lo == hi {
		vmin, vmax, ok := minMax(h.Values)
		if !ok {
			vmin, vmax = 0.0, 1.0
		}
		lo, hi = float64(vmin), float64(vmax)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	bins := max(1, h.Bins)

	hist := stats.NewLinearHist(lo, hi, bins)
	for _, v := range h.Values {
		if f := float64(v); !math.IsNaN(f) && lo <= f && f < hi {
			hist.Add(f)
		}
	}
	_, counts, _ := hist.Counts()

	h.Edges = make([]float64, bins+1)
	for i := range h.Edges {
		h.Edges[i] = lo + (hi-lo)*float64(i)/float64(bins)
	}
	h.Counts = make([]float64, bins)
	total := 0.0
	for i, c := range counts {
		h.Counts[i] = float64(c)
		total += float64(c)
	}
	// the right edge of the last bin is inclusive
	for _, v := range h.Values {
		if float64(v) == hi {
			h.Counts[bins-1]++
			total++
		}
	}
	if h.Density && 0.0 < total {
		width := (hi - lo) / float64(bins)
		for i := range h.Counts {
			h.Counts[i] /= total * width
		}
	}

	positions := make([]float32, bins)
	heights := make([]float32, bins)
	for i := range positions {
		positions[i] = float32((h.Edges[i] + h.Edges[i+1]) / 2.0)
		heights[i] = float32(h.Counts[i])
	}
	h.bars = &Bars{Positions: positions, Heights: heights, Width: (hi - lo) / float64(bins)}
}

func (h *Histogram) sync() *Bars {
	if h.bars == nil {
		h.Compute()
	}
	h.bars.Style = h.Style
	h.bars.Horizontal = h.Horizontal
	return h.bars
}

func (h *Histogram) Extent() geom.Bounds[geom.Data] {
	return h.sync().Extent()
}

func (h *Histogram) Layout(info LayoutInfo) {}

func (h *Histogram) Draw(ctx *DrawContext) error {
	return h.sync().Draw(ctx)
}

func (h *Histogram) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: h.Label, Kind: PatchHandle, Style: h.Style}, h.Label != ""
}

package artist

import (
	"fmt"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/style"
)

// Bars draws a rectangle per position, from Bottom to Bottom+Height. Horizontal bars grow along x.
type Bars struct {
	Positions  []float32
	Heights    []float32
	Bottoms    []float32 // optional, zero by default
	Width      float64   // in data units
	Horizontal bool
	Colors     []colors.Color // optional per bar face colors
	Style      style.PathStyle
	Label      string
}

// NewBars returns bars at the positions with the given heights.
func NewBars(positions, heights []float32) (*Bars, error) {
	if err := checkXY("bars", positions, heights); err != nil {
		return nil, err
	}
	s := style.DefaultPathStyle()
	s.Edge = colors.Transparent
	s.Width = 0.0
	s.Face = colors.Tableau10[0]
	return &Bars{Positions: positions, Heights: heights, Width: 0.8, Style: s}, nil
}

// Validate checks the optional per bar values.
func (b *Bars) Validate() error {
	if err := checkLen("bottoms", len(b.Positions), len(b.Bottoms)); err != nil {
		return err
	} else if err := checkLen("colors", len(b.Positions), len(b.Colors)); err != nil {
		return err
	} else if b.Width <= 0.0 {
		return fmt.Errorf("bar width %v: %w", b.Width, ErrInvalidShape)
	}
	return nil
}

func (b *Bars) bottom(i int) float32 {
	if i < len(b.Bottoms) {
		return b.Bottoms[i]
	}
	return 0.0
}

// rect returns the bar in data coordinates.
func (b *Bars) rect(i int) (geom.Bounds[geom.Data], bool) {
	p, h, base := float64(b.Positions[i]), float64(b.Heights[i]), float64(b.bottom(i))
	if !finite32(b.Positions[i]) || !finite32(b.Heights[i]) || !finite32(b.bottom(i)) {
		return geom.Bounds[geom.Data]{}, false
	}
	w := b.Width / 2.0
	if b.Horizontal {
		return geom.Rect[geom.Data](base, p-w, base+h, p+w), true
	}
	return geom.Rect[geom.Data](p-w, base, p+w, base+h), true
}

func (b *Bars) Extent() geom.Bounds[geom.Data] {
	r := geom.EmptyBounds[geom.Data]()
	for i := range b.Positions {
		if rect, ok := b.rect(i); ok {
			r = r.Union(rect)
		}
	}
	return r
}

func (b *Bars) Layout(LayoutInfo) {}

func (b *Bars) Draw(ctx *DrawContext) error {
	s := ctx.Style(b.Style)
	if len(b.Colors) == len(b.Positions) && 0 < len(b.Colors) {
		for i := range b.Positions {
			if rect, ok := b.rect(i); ok {
				bs := s
				bs.Face = b.Colors[i]
				ctx.Renderer.DrawPath(ctx.Path(rect.Path()), bs, ctx.Clip)
			}
		}
		return nil
	}
	pb := geom.Builder[geom.Data]{}
	for i := range b.Positions {
		if rect, ok := b.rect(i); ok && 0.0 < rect.W() && 0.0 < rect.H() {
			pb.AppendPath(rect.Path())
		}
	}
	if p := pb.Path(); !p.Empty() {
		ctx.Renderer.DrawPath(ctx.Path(p), s, ctx.Clip)
	}
	return nil
}

func (b *Bars) Legend() (LegendHandle, bool) {
	return LegendHandle{Label: b.Label, Kind: PatchHandle, Style: b.Style}, b.Label != ""
}

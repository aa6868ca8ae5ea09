package colors

import (
	"fmt"
	"sort"
)

// Palette is an ordered list of colors that wraps around.
type Palette []Color

// Get returns the color at index i modulo the palette length, negative indices count from the end. An empty palette
// returns black.
func (p Palette) Get(i int) Color {
	if len(p) == 0 {
		return Black
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Len returns the number of colors.
func (p Palette) Len() int {
	return len(p)
}

// Built-in palettes.
var (
	// Tableau10 is the default color cycle.
	Tableau10 = Palette{
		Hex(0x1f77b4), Hex(0xff7f0e), Hex(0x2ca02c), Hex(0xd62728), Hex(0x9467bd),
		Hex(0x8c564b), Hex(0xe377c2), Hex(0x7f7f7f), Hex(0xbcbd22), Hex(0x17becf),
	}
	// Category holds the shorthand named colors.
	Category = Palette{
		shorthands["darkteal"], shorthands["amber"], shorthands["brick"], shorthands["slate"], shorthands["moss"],
		shorthands["plum"], shorthands["sand"], shorthands["steel"], shorthands["rose"], shorthands["charcoal"],
	}
	Pastel = Palette{
		Hex(0xaec7e8), Hex(0xffbb78), Hex(0x98df8a), Hex(0xff9896), Hex(0xc5b0d5),
		Hex(0xc49c94), Hex(0xf7b6d2), Hex(0xc7c7c7), Hex(0xdbdb8d), Hex(0x9edae5),
	}
	Dark = Palette{
		Hex(0x1b9e77), Hex(0xd95f02), Hex(0x7570b3), Hex(0xe7298a), Hex(0x66a61e),
		Hex(0xe6ab02), Hex(0xa6761d), Hex(0x666666),
	}
)

var palettes = map[string]Palette{
	"tableau10": Tableau10,
	"category":  Category,
	"pastel":    Pastel,
	"dark":      Dark,
}

// PaletteByName returns a built-in palette.
func PaletteByName(name string) (Palette, error) {
	if p, ok := palettes[normalizeName(name)]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown palette %q", name)
}

// PaletteNames returns the names of the built-in palettes.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sequential returns n colors sampled evenly from the colormap.
func Sequential(cm *ColorMap, n int) Palette {
	return Palette(cm.Colors(n))
}

// Diverging returns n colors from the coolwarm colormap, symmetric around its neutral center.
func Diverging(n int) Palette {
	return Palette(CoolWarm.Colors(n))
}

////////////////////////////////////////////////////////////////

// Cycle hands out the colors of a palette in order. Each chart owns one so that consecutive artists get distinct
// colors.
type Cycle struct {
	palette Palette
	index   int
}

// NewCycle returns a cycle over the palette starting at its first color.
func NewCycle(p Palette) *Cycle {
	return &Cycle{palette: p}
}

// Next returns the current color and advances the cycle.
func (c *Cycle) Next() Color {
	col := c.palette.Get(c.index)
	c.index++
	return col
}

// Peek returns the color Next would return.
func (c *Cycle) Peek() Color {
	return c.palette.Get(c.index)
}

// Get returns the i-th color of the cycle without advancing.
func (c *Cycle) Get(i int) Color {
	return c.palette.Get(i)
}

// Index returns the number of colors handed out.
func (c *Cycle) Index() int {
	return c.index
}

// Reset restarts the cycle at its first color.
func (c *Cycle) Reset() {
	c.index = 0
}

// Palette returns the palette of the cycle.
func (c *Cycle) Palette() Palette {
	return c.palette
}

// SetPalette replaces the palette and restarts the cycle.
func (c *Cycle) SetPalette(p Palette) {
	c.palette = p
	c.index = 0
}

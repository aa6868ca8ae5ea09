package artist

import (
	"image"
	"image/color"

	"github.com/tdewolff/figure/colors"
	"github.com/tdewolff/figure/geom"
	"github.com/tdewolff/figure/render"
)

// Origin is the corner of the data box at which the first row of an image is placed.
type Origin uint8

// Image origins.
const (
	OriginLower Origin = iota // row zero at the bottom, as for two-dimensional functions
	OriginUpper               // row zero at the top, as for matrices and photographs
)

// Image draws a grid of values through a colormap, or an RGBA image, as a textured rectangle. Without explicit bounds
// the image covers [0,cols]×[0,rows] in data coordinates. The image owns a handle to its pixels on the backends.
type Image struct {
	Grid          Grid
	Map           *colors.ColorMap
	Norm          colors.Norm // nil autoscales to the values
	Bounds        geom.Bounds[geom.Data]
	Origin        Origin
	Interpolation render.Interpolation
	Alpha         float64
	Label         string

	src   image.Image // RGBA source instead of a grid
	img   *render.Image
	dirty bool
}

// NewImage returns an image of a grid of values.
func NewImage(g Grid) (*Image, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &Image{Grid: g, Bounds: geom.Rect[geom.Data](0.0, 0.0, float64(g.Cols), float64(g.Rows)), dirty: true}, nil
}

// NewImageRGBA returns an image of a picture, which is shown with its first row at the top.
func NewImageRGBA(src image.Image) (*Image, error) {
	size := src.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrEmptyData
	}
	return &Image{
		src:    src,
		Bounds: geom.Rect[geom.Data](0.0, 0.0, float64(size.X), float64(size.Y)),
		Origin: OriginUpper,
		dirty:  true,
	}, nil
}

// SetGrid replaces the values, the pixels are uploaded again on the next frame.
func (im *Image) SetGrid(g Grid) error {
	if err := g.validate(); err != nil {
		return err
	}
	im.Grid = g
	im.src = nil
	im.Invalidate()
	return nil
}

// Invalidate marks the pixels as changed, such as after modifying the grid or the colormap in place.
func (im *Image) Invalidate() {
	im.dirty = true
}

// Mapper returns the colormap and norm of the values.
func (im *Image) Mapper() colors.Mapper {
	norm := im.Norm
	if norm == nil {
		norm = colors.Autoscale(im.Grid.Data)
	}
	return colors.Mapper{Map: colorMapOr(im.Map), Norm: norm}
}

// Handle returns the backend handle of the pixels, nil before the first layout.
func (im *Image) Handle() *render.ImageID {
	if im.img == nil {
		return nil
	}
	return im.img.ID
}

func (im *Image) pixels() *image.NRGBA {
	if im.src != nil {
		return render.ImageFrom(im.src).Pix
	}
	g := im.Grid
	pix := image.NewNRGBA(image.Rect(0, 0, g.Cols, g.Rows))
	mapper := im.Mapper()
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			c := mapper.Color(float64(g.At(i, j)))
			pix.SetNRGBA(j, i, color.NRGBA{c.R, c.G, c.B, c.A})
		}
	}
	return pix
}

func (im *Image) Extent() geom.Bounds[geom.Data] {
	return im.Bounds
}

// Layout converts the values to pixels when they changed.
func (im *Image) Layout(LayoutInfo) {
	if !im.dirty && im.img != nil {
		return
	}
	pix := im.pixels()
	if im.img == nil {
		im.img = render.NewImage(pix)
	} else {
		im.img.SetPixels(pix)
	}
	im.dirty = false
}

func (im *Image) Draw(ctx *DrawContext) error {
	if im.img == nil || im.dirty {
		im.Layout(LayoutInfo{})
	}
	dst := ctx.Transform.Bounds(im.Bounds)
	if !dst.IsFinite() || !ctx.Clip.Visible(dst) {
		return nil
	}
	opts := render.ImageOptions{
		Interpolation: im.Interpolation,
		Alpha:         im.Alpha,
		FlipY:         im.Origin == OriginLower,
	}
	ctx.Renderer.DrawImage(im.img, dst, opts, ctx.Clip)
	return nil
}

func (im *Image) Legend() (LegendHandle, bool) {
	return LegendHandle{}, false
}

// Release drops the reference to the backend handle.
func (im *Image) Release() {
	if im.img != nil {
		im.img.Release()
		im.img = nil
	}
}

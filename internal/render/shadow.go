package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
)

// ShadowOptions configures the drop shadow painted behind exported drawings.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
	// Color is the shadow tint as a hex string. Empty means black.
	Color string
}

// ShadowResult is the output of ApplyShadow.
type ShadowResult struct {
	// Image holds the drawing composited over its shadow.
	Image *image.RGBA
	// Offset is where the drawing's top-left corner landed inside Image.
	Offset image.Point
}

// DefaultShadowOptions returns the shadow used by the -shadow export flag.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  12,
		Offset:  image.Pt(8, 8),
		Opacity: 0.45,
		Color:   "#000000",
	}
}

// ApplyShadow casts a blurred shadow from every painted pixel of img. Strokes
// on a transparent surface throw their own shadows; the canvas itself does
// not. The result is grown to fit the shadow and always has a zero origin.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	cast := padded.Add(opts.Offset)
	total := src.Union(cast)

	mask := alphaMask(img, padded)
	boxBlur(mask, radius)

	tint := color.RGBA{A: 255}
	if opts.Color != "" {
		c := gg.Hex(opts.Color)
		tint = color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
	}
	tint.A = uint8(opacity*255 + 0.5)
	tint.R = uint8(uint16(tint.R) * uint16(tint.A) / 255)
	tint.G = uint8(uint16(tint.G) * uint16(tint.A) / 255)
	tint.B = uint8(uint16(tint.B) * uint16(tint.A) / 255)

	dst := image.NewRGBA(total.Sub(total.Min))
	if tint.A > 0 {
		at := cast.Sub(total.Min)
		draw.DrawMask(dst, at, image.NewUniform(tint), image.Point{}, mask, mask.Bounds().Min, draw.Over)
	}
	draw.Draw(dst, src.Sub(total.Min), img, src.Min, draw.Over)

	return ShadowResult{Image: dst, Offset: src.Min.Sub(total.Min)}
}

// alphaMask copies the alpha channel of img into a gray image covering
// area, with area's top-left at the mask origin.
func alphaMask(img *image.RGBA, area image.Rectangle) *image.Gray {
	mask := image.NewGray(area.Sub(area.Min))
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-area.Min.X, y-area.Min.Y, color.Gray{Y: a})
			}
		}
	}
	return mask
}

// boxBlur blurs m in place with a separable box of the given radius. Windows
// shrink at the edges instead of sampling outside the image.
func boxBlur(m *image.Gray, radius int) {
	if radius <= 0 {
		return
	}
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	line := make([]uint8, max(w, h))
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		blurLine(row, line[:w], radius)
		copy(row, line[:w])
	}
	col := make([]uint8, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = m.Pix[y*m.Stride+x]
		}
		blurLine(col, line[:h], radius)
		for y := 0; y < h; y++ {
			m.Pix[y*m.Stride+x] = line[y]
		}
	}
}

func blurLine(in, out []uint8, radius int) {
	n := len(in)
	prefix := make([]int, n+1)
	for i, v := range in {
		prefix[i+1] = prefix[i] + int(v)
	}
	for i := range n {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		out[i] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
}

func to8(v float64) uint8 {
	return uint8(max(0, min(255, v*255+0.5)))
}

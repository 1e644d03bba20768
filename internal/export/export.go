// Package export writes the drawing surface to PNG or PDF files.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/chalkboard/internal/render"
)

// Format selects the encoder used by Write.
type Format int

const (
	FormatPNG Format = iota
	FormatPDF
)

func (f Format) String() string {
	if f == FormatPDF {
		return "pdf"
	}
	return "png"
}

// FormatFor picks the format from a file extension. Anything other than
// .pdf is written as PNG.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FormatPDF
	}
	return FormatPNG
}

// Options controls how the surface is flattened before encoding.
type Options struct {
	// Background, when set, is painted under the drawing so transparent
	// pixels become paper.
	Background color.Color
	// Shadow adds a drop shadow around the drawing.
	Shadow        bool
	ShadowOptions render.ShadowOptions
	// Title is stored in the PDF metadata.
	Title string
}

// Flatten applies the background and shadow options to img.
func Flatten(img *image.RGBA, opts Options) *image.RGBA {
	if img == nil {
		return nil
	}
	out := img
	if opts.Background != nil {
		out = image.NewRGBA(img.Bounds())
		draw.Draw(out, out.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
		draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	}
	if opts.Shadow {
		so := opts.ShadowOptions
		if so == (render.ShadowOptions{}) {
			so = render.DefaultShadowOptions()
		}
		out = render.ApplyShadow(out, so).Image
	}
	return out
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodePDF writes a single page PDF sized to img in points, with the image
// embedded as PNG at full page size.
func EncodePDF(w io.Writer, img image.Image, title string) error {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return err
	}
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("Chalkboard", true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.AddPage()
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("surface", opt, &buf)
	pdf.ImageOptions("surface", 0, 0, wd, ht, false, opt, 0, "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("encode pdf: %w", err)
	}
	return nil
}

// Encode flattens img and writes it in the requested format.
func Encode(w io.Writer, img *image.RGBA, f Format, opts Options) error {
	if img == nil {
		return fmt.Errorf("export: no image")
	}
	flat := Flatten(img, opts)
	if f == FormatPDF {
		return EncodePDF(w, flat, opts.Title)
	}
	return EncodePNG(w, flat)
}

// Write encodes img to path, choosing the format from its extension. Missing
// parent directories are created.
func Write(path string, img *image.RGBA, opts Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, FormatFor(path), opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// ReadPNG loads a PNG file as an RGBA image used as a starting surface.
func ReadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as an RGBA anchored at the origin, copying only when
// needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// DefaultName builds an output filename in dir for the given format.
func DefaultName(dir, stem string, f Format) string {
	if stem == "" {
		stem = "chalkboard"
	}
	return filepath.Join(dir, stem+"."+f.String())
}

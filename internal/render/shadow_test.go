package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	res := ApplyShadow(img, opts)
	if res.Image == nil {
		t.Fatal("expected output image")
	}
	expected := image.Rect(0, 0, 22, 20)
	if !res.Image.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", res.Image.Bounds(), expected)
	}
	if res.Offset != (image.Point{}) {
		t.Fatalf("drawing moved to %v, want origin", res.Offset)
	}
	shadowPt := subject.Add(opts.Offset)
	if res.Image.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
}

func TestApplyShadowNoShadowWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	res := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0})
	if res.Image != img {
		t.Fatal("expected the input image back")
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := res.Image.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestApplyShadowBlurredAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	opts := ShadowOptions{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	res := ApplyShadow(img, opts)
	out := res.Image
	if out.Bounds().Dx() <= img.Bounds().Dx() {
		t.Fatalf("expected wider output bounds")
	}
	// The padded shadow reaches above the drawing, so the drawing moves down.
	if res.Offset != image.Pt(0, 2) {
		t.Fatalf("offset = %v, want (0,2)", res.Offset)
	}
	base := res.Offset.Add(opts.Offset)
	baseAlpha := out.RGBAAt(base.X, base.Y).A
	if baseAlpha == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	neighbor := out.RGBAAt(base.X+1, base.Y)
	if neighbor.A == 0 {
		t.Fatalf("expected blurred alpha to reach neighbor, base alpha=%d", baseAlpha)
	}
}

func TestApplyShadowNil(t *testing.T) {
	if res := ApplyShadow(nil, DefaultShadowOptions()); res.Image != nil {
		t.Fatal("expected empty result for nil image")
	}
}

func TestApplyShadowTint(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{A: 255})
	res := ApplyShadow(img, ShadowOptions{Offset: image.Pt(10, 0), Opacity: 1, Color: "#ff0000"})
	got := res.Image.RGBAAt(11, 1)
	if got.R != 255 || got.G != 0 || got.A != 255 {
		t.Fatalf("shadow pixel = %+v, want opaque red", got)
	}
}

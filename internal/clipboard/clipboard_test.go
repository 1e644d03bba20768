package clipboard

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestDecodeEmpty(t *testing.T) {
	if _, err := decodePNG(nil); !errors.Is(err, errNoImage) {
		t.Fatalf("expected errNoImage, got %v", err)
	}
}

func TestEncodeKeepsPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{10, 20, 30, 255})
	data, err := encodePNG(img)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := decodePNG(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v", back.Bounds())
	}
	r, g, b, _ := back.At(2, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("pixel = %v", back.At(2, 1))
	}
	if _, err := encodePNG(nil); err == nil {
		t.Fatal("expected error for nil image")
	}
}

func TestHasDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if !hasDisplay() {
		t.Fatal("wayland display should count")
	}
}

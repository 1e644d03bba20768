package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/chalkboard/internal/render"
)

func sample() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	img.SetRGBA(5, 5, color.RGBA{255, 0, 0, 255})
	return img
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatPDF, FormatFor("out/board.PDF"))
	assert.Equal(t, FormatPNG, FormatFor("board.png"))
	assert.Equal(t, FormatPNG, FormatFor("board"))
	assert.Equal(t, "pdf", FormatPDF.String())
}

func TestEncodePNGKeepsSize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample(), FormatPNG, Options{}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestEncodePNGWithShadowGrows(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Shadow: true, ShadowOptions: render.ShadowOptions{Radius: 2, Offset: image.Pt(3, 3), Opacity: 0.5, Color: "#000000"}}
	require.NoError(t, Encode(&buf, sample(), FormatPNG, opts))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 40)
	assert.Greater(t, img.Bounds().Dy(), 30)
}

func TestEncodePDFHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample(), FormatPDF, Options{Title: "board", Background: color.White}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestFlattenBackground(t *testing.T) {
	out := Flatten(sample(), Options{Background: color.White})
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, out.RGBAAt(5, 5))
	assert.Nil(t, Flatten(nil, Options{}))
}

func TestWriteAndReadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.png")
	require.NoError(t, Write(path, sample(), Options{}))
	img, err := ReadPNG(path)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(5, 5))
}

func TestWritePDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pdf")
	require.NoError(t, Write(path, sample(), Options{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestEncodeNil(t *testing.T) {
	assert.Error(t, Encode(&bytes.Buffer{}, nil, FormatPNG, Options{}))
}

func TestToRGBAOffset(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 12))
	src.SetRGBA(10, 10, color.RGBA{1, 2, 3, 255})
	out := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 4, 2), out.Bounds())
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, out.RGBAAt(0, 0))
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, filepath.Join("dir", "chalkboard.pdf"), DefaultName("dir", "", FormatPDF))
}

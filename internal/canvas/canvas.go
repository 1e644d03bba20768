// Package canvas defines the drawing surface every primitive paints on and
// provides a raster implementation plus a recording wrapper.
package canvas

import (
	"image"

	"github.com/example/chalkboard/internal/fonts"
)

// LineCap is the shape drawn at the open ends of a stroked path.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	}
	return "butt"
}

// LineJoin is the shape drawn where two stroked segments meet.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	}
	return "miter"
}

// Point is a surface-relative pixel position.
type Point struct {
	X, Y float64
}

// State is the paint state saved and restored by Save and Restore.
type State struct {
	StrokeStyle    string
	FillStyle      string
	StrokeGradient *Gradient
	FillGradient   *Gradient
	LineWidth      float64
	LineCap        LineCap
	LineJoin       LineJoin
	LineDash       []float64
	GlobalAlpha    float64
	Font           fonts.Style
}

// DefaultState is the state of a freshly created or resized surface.
func DefaultState() State {
	return State{
		StrokeStyle: "#000000",
		FillStyle:   "#000000",
		LineWidth:   1,
		LineCap:     CapButt,
		LineJoin:    JoinMiter,
		LineDash:    []float64{},
		GlobalAlpha: 1,
		Font:        fonts.Default(),
	}
}

func (s State) clone() State {
	s.LineDash = append([]float64{}, s.LineDash...)
	return s
}

// Surface is a canvas-2D style drawing context. Painting does not consume the
// current path; only BeginPath resets it.
type Surface interface {
	Width() int
	Height() int
	// Resize reallocates the surface. The content is always cleared, even
	// when the dimensions do not change.
	Resize(w, h int) error

	SetStrokeColor(hex string)
	SetFillColor(hex string)
	SetStrokeGradient(g *Gradient)
	SetFillGradient(g *Gradient)
	SetLineWidth(w float64)
	SetLineCap(c LineCap)
	SetLineJoin(j LineJoin)
	SetLineDash(segments []float64)
	SetGlobalAlpha(a float64)
	SetFont(f fonts.Style)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Rect(x, y, w, h float64)
	Arc(x, y, r, start, end float64)
	Ellipse(x, y, rx, ry, rotation float64)
	ClosePath()

	Stroke()
	Fill()
	FillText(s string, x, y float64)
	MeasureText(s string) float64
	ClearRect(x, y, w, h float64)

	Save()
	Restore()
	State() State

	Image() *image.RGBA
}

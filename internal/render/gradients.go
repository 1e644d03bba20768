package render

import "github.com/example/chalkboard/internal/canvas"

// CreateLinearGradient builds a gradient from (x0,y0) to (x1,y1) with the
// given stops. It returns nil when s is nil.
func CreateLinearGradient(s canvas.Surface, x0, y0, x1, y1 float64, stops []canvas.ColorStop) *canvas.Gradient {
	if missing(s) {
		return nil
	}
	g := canvas.NewLinearGradient(x0, y0, x1, y1)
	for _, st := range stops {
		g.AddColorStop(st.Offset, st.Color)
	}
	return g
}

// CreateRadialGradient builds a gradient between the circles (x0,y0,r0) and
// (x1,y1,r1). It returns nil when s is nil.
func CreateRadialGradient(s canvas.Surface, x0, y0, r0, x1, y1, r1 float64, stops []canvas.ColorStop) *canvas.Gradient {
	if missing(s) {
		return nil
	}
	g := canvas.NewRadialGradient(x0, y0, r0, x1, y1, r1)
	for _, st := range stops {
		g.AddColorStop(st.Offset, st.Color)
	}
	return g
}

// FillWithGradient makes g the fill paint. A nil gradient does nothing.
func FillWithGradient(s canvas.Surface, g *canvas.Gradient) {
	if missing(s) || g == nil {
		return
	}
	s.SetFillGradient(g)
}

// StrokeWithGradient makes g the stroke paint. A nil gradient does nothing.
func StrokeWithGradient(s canvas.Surface, g *canvas.Gradient) {
	if missing(s) || g == nil {
		return
	}
	s.SetStrokeGradient(g)
}

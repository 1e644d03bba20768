package canvas

import "sort"

// GradientKind selects the geometry of a Gradient.
type GradientKind int

const (
	Linear GradientKind = iota
	Radial
)

// ColorStop is one color at an offset in 0..1 along a gradient.
type ColorStop struct {
	Offset float64
	Color  string
}

// Gradient is a color ramp that can be installed as stroke or fill paint.
// Linear gradients run from (X0,Y0) to (X1,Y1). Radial gradients run from the
// circle (X0,Y0,R0) to the circle (X1,Y1,R1).
type Gradient struct {
	Kind   GradientKind
	X0, Y0 float64
	R0     float64
	X1, Y1 float64
	R1     float64
	Stops  []ColorStop
}

// NewLinearGradient returns a linear gradient with no stops.
func NewLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return &Gradient{Kind: Linear, X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// NewRadialGradient returns a radial gradient with no stops.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) *Gradient {
	return &Gradient{Kind: Radial, X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1}
}

// AddColorStop inserts a stop, keeping stops ordered by offset. Offsets are
// clamped to 0..1.
func (g *Gradient) AddColorStop(offset float64, color string) *Gradient {
	if offset < 0 {
		offset = 0
	}
	if offset > 1 {
		offset = 1
	}
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: color})
	sort.SliceStable(g.Stops, func(i, j int) bool { return g.Stops[i].Offset < g.Stops[j].Offset })
	return g
}

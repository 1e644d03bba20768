package canvas

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/sirupsen/logrus"

	"github.com/example/chalkboard/internal/fonts"
)

// Raster is a Surface that rasterizes immediately into pixels using gg.
type Raster struct {
	dc    *gg.Context
	st    State
	stack []State
	log   *logrus.Entry
}

// RasterOption configures a Raster.
type RasterOption func(*Raster)

// WithLogger sets the entry used to report rasterizer failures.
func WithLogger(l *logrus.Entry) RasterOption {
	return func(r *Raster) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRaster returns a transparent surface of w by h pixels. Dimensions below
// one pixel are raised to one.
func NewRaster(w, h int, opts ...RasterOption) *Raster {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return newRaster(gg.NewContext(w, h), opts)
}

// NewRasterFromImage returns a surface holding a copy of img.
func NewRasterFromImage(img image.Image, opts ...RasterOption) *Raster {
	return newRaster(gg.NewContextForImage(img), opts)
}

func newRaster(dc *gg.Context, opts []RasterOption) *Raster {
	r := &Raster{
		dc:  dc,
		st:  DefaultState(),
		log: logrus.WithField("component", "raster"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Raster) Width() int  { return r.dc.Width() }
func (r *Raster) Height() int { return r.dc.Height() }

// Resize reallocates the pixel buffer and resets the paint state.
func (r *Raster) Resize(w, h int) error {
	if err := r.dc.Resize(w, h); err != nil {
		return err
	}
	r.dc.Clear()
	r.dc.ClearPath()
	r.st = DefaultState()
	r.stack = nil
	return nil
}

func (r *Raster) SetStrokeColor(hex string) {
	r.st.StrokeStyle = hex
	r.st.StrokeGradient = nil
}

func (r *Raster) SetFillColor(hex string) {
	r.st.FillStyle = hex
	r.st.FillGradient = nil
}

func (r *Raster) SetStrokeGradient(g *Gradient) { r.st.StrokeGradient = g }
func (r *Raster) SetFillGradient(g *Gradient)   { r.st.FillGradient = g }
func (r *Raster) SetLineWidth(w float64)        { r.st.LineWidth = w }
func (r *Raster) SetLineCap(c LineCap)          { r.st.LineCap = c }
func (r *Raster) SetLineJoin(j LineJoin)        { r.st.LineJoin = j }
func (r *Raster) SetGlobalAlpha(a float64)      { r.st.GlobalAlpha = a }
func (r *Raster) SetFont(f fonts.Style)         { r.st.Font = f }

func (r *Raster) SetLineDash(segments []float64) {
	r.st.LineDash = append([]float64{}, segments...)
}

func (r *Raster) BeginPath()          { r.dc.ClearPath() }
func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }
func (r *Raster) ClosePath()          { r.dc.ClosePath() }

func (r *Raster) Rect(x, y, w, h float64) { r.dc.DrawRectangle(x, y, w, h) }

func (r *Raster) Arc(x, y, radius, start, end float64) {
	r.dc.DrawArc(x, y, radius, start, end)
}

// Ellipse adds a closed ellipse rotated by rotation radians about its centre.
// Points are transformed as they are added, so popping the rotation leaves
// the path in place.
func (r *Raster) Ellipse(x, y, rx, ry, rotation float64) {
	r.dc.Push()
	r.dc.RotateAbout(rotation, x, y)
	r.dc.DrawEllipse(x, y, rx, ry)
	r.dc.Pop()
}

func (r *Raster) Stroke() {
	r.dc.SetStrokeBrush(r.brush(r.st.StrokeStyle, r.st.StrokeGradient))
	r.dc.SetLineWidth(r.st.LineWidth)
	r.dc.SetLineCap(ggCap(r.st.LineCap))
	r.dc.SetLineJoin(ggJoin(r.st.LineJoin))
	stroke := gg.DefaultStroke().
		WithWidth(r.st.LineWidth).
		WithCap(ggCap(r.st.LineCap)).
		WithJoin(ggJoin(r.st.LineJoin))
	if len(r.st.LineDash) > 0 {
		stroke = stroke.WithDashPattern(r.st.LineDash...)
	}
	r.dc.SetStroke(stroke)
	if err := r.dc.StrokePreserve(); err != nil {
		r.log.WithError(err).Warn("stroke failed")
	}
}

func (r *Raster) Fill() {
	r.dc.SetFillBrush(r.brush(r.st.FillStyle, r.st.FillGradient))
	if err := r.dc.FillPreserve(); err != nil {
		r.log.WithError(err).Warn("fill failed")
	}
}

// FillText draws s with its baseline at y. Gradients are not sampled for
// text; the first stop color is used instead.
func (r *Raster) FillText(s string, x, y float64) {
	if s == "" || !r.applyFont() {
		return
	}
	hex := r.st.FillStyle
	if g := r.st.FillGradient; g != nil && len(g.Stops) > 0 {
		hex = g.Stops[0].Color
	}
	r.dc.SetColor(r.color(hex).Color())
	r.dc.DrawString(s, x, y)
}

func (r *Raster) MeasureText(s string) float64 {
	if s == "" || !r.applyFont() {
		return 0
	}
	w, _ := r.dc.MeasureString(s)
	return w
}

// ClearRect resets every pixel touched by the rectangle to transparent.
func (r *Raster) ClearRect(x, y, w, h float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	if err := r.dc.FlushGPU(); err != nil {
		r.log.WithError(err).Warn("flush before clear failed")
	}
	pm := r.dc.ResizeTarget()
	x0 := clampInt(int(math.Floor(x)), 0, pm.Width())
	y0 := clampInt(int(math.Floor(y)), 0, pm.Height())
	x1 := clampInt(int(math.Ceil(x+w)), 0, pm.Width())
	y1 := clampInt(int(math.Ceil(y+h)), 0, pm.Height())
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			pm.SetPixel(px, py, gg.Transparent)
		}
	}
}

func (r *Raster) Save() {
	r.stack = append(r.stack, r.st.clone())
}

// Restore pops the last saved state. Without a matching Save it does nothing.
func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.st = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Raster) State() State { return r.st.clone() }

// Image returns a copy of the current pixels.
func (r *Raster) Image() *image.RGBA {
	if err := r.dc.FlushGPU(); err != nil {
		r.log.WithError(err).Warn("flush before read failed")
	}
	return r.dc.ResizeTarget().ToImage()
}

func (r *Raster) applyFont() bool {
	face, err := fonts.Face(r.st.Font)
	if err != nil {
		r.log.WithError(err).WithField("font", r.st.Font.Descriptor()).Warn("font unavailable")
		return false
	}
	r.dc.SetFont(face)
	return true
}

// color parses hex and multiplies in the global alpha.
func (r *Raster) color(hex string) gg.RGBA {
	c := gg.Hex(hex)
	c.A *= clampFloat(r.st.GlobalAlpha, 0, 1)
	return c
}

func (r *Raster) brush(hex string, g *Gradient) gg.Brush {
	if g == nil || len(g.Stops) == 0 {
		return gg.Solid(r.color(hex))
	}
	switch g.Kind {
	case Radial:
		b := gg.NewRadialGradientBrush(g.X1, g.Y1, g.R0, g.R1).SetFocus(g.X0, g.Y0)
		for _, s := range g.Stops {
			b.AddColorStop(s.Offset, r.color(s.Color))
		}
		return b
	default:
		b := gg.NewLinearGradientBrush(g.X0, g.Y0, g.X1, g.Y1)
		for _, s := range g.Stops {
			b.AddColorStop(s.Offset, r.color(s.Color))
		}
		return b
	}
}

func ggCap(c LineCap) gg.LineCap {
	switch c {
	case CapRound:
		return gg.LineCapRound
	case CapSquare:
		return gg.LineCapSquare
	}
	return gg.LineCapButt
}

func ggJoin(j LineJoin) gg.LineJoin {
	switch j {
	case JoinRound:
		return gg.LineJoinRound
	case JoinBevel:
		return gg.LineJoinBevel
	}
	return gg.LineJoinMiter
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

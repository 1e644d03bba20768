// Package render holds the stateless drawing primitives. Every function takes
// the surface to draw on; a nil surface, including a typed nil pointer held in
// the interface, means no drawing context is available and the call does
// nothing.
package render

import (
	"math"
	"reflect"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/fonts"
)

// missing reports whether s has nothing behind it.
func missing(s canvas.Surface) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// UnderlineOffset is the distance in pixels from the baseline to an underline.
const UnderlineOffset = 3

// StrokeLine draws a round-capped segment. The surface keeps color and width
// as its stroke style afterwards.
func StrokeLine(s canvas.Surface, x1, y1, x2, y2 float64, color string, width float64) {
	if missing(s) {
		return
	}
	s.BeginPath()
	s.MoveTo(x1, y1)
	s.LineTo(x2, y2)
	s.SetStrokeColor(color)
	s.SetLineWidth(width)
	s.SetLineCap(canvas.CapRound)
	s.SetLineJoin(canvas.JoinRound)
	s.Stroke()
}

// DrawText fills text with its baseline at (x, y). With underline set, a line
// of thickness size/15 is stroked UnderlineOffset pixels below the baseline
// across the measured width.
func DrawText(s canvas.Surface, text string, x, y float64, color string, size float64, family string, bold, italic, underline bool) {
	if missing(s) {
		return
	}
	s.SetFont(fonts.Style{Family: family, Size: size, Bold: bold, Italic: italic})
	s.SetFillColor(color)
	s.FillText(text, x, y)
	if !underline {
		return
	}
	w := s.MeasureText(text)
	s.BeginPath()
	s.MoveTo(x, y+UnderlineOffset)
	s.LineTo(x+w, y+UnderlineOffset)
	s.SetStrokeColor(color)
	s.SetLineWidth(size / 15)
	s.Stroke()
}

// DrawRectangle strokes or fills an axis-aligned rectangle. A negative width
// or height extends the rectangle left or up from (x, y).
func DrawRectangle(s canvas.Surface, x, y, w, h float64, color string, fill bool) {
	if missing(s) {
		return
	}
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	s.BeginPath()
	s.Rect(x, y, w, h)
	paint(s, color, fill)
}

// DrawCircle strokes or fills a full circle. The radius sign is ignored.
func DrawCircle(s canvas.Surface, x, y, r float64, color string, fill bool) {
	if missing(s) {
		return
	}
	s.BeginPath()
	s.Arc(x, y, math.Abs(r), 0, 2*math.Pi)
	paint(s, color, fill)
}

// DrawEllipse strokes or fills an ellipse rotated by rotation radians about
// its centre. Radius signs are ignored.
func DrawEllipse(s canvas.Surface, x, y, rx, ry, rotation float64, color string, fill bool) {
	if missing(s) {
		return
	}
	s.BeginPath()
	s.Ellipse(x, y, math.Abs(rx), math.Abs(ry), rotation)
	paint(s, color, fill)
}

// DrawPolygon connects points in order and closes back to the first. Fewer
// than three points draws nothing.
func DrawPolygon(s canvas.Surface, points []canvas.Point, color string, fill bool) {
	if missing(s) || len(points) < 3 {
		return
	}
	s.BeginPath()
	s.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.LineTo(p.X, p.Y)
	}
	s.ClosePath()
	paint(s, color, fill)
}

// EraseArea makes the rectangle fully transparent.
func EraseArea(s canvas.Surface, x, y, w, h float64) {
	if missing(s) {
		return
	}
	s.ClearRect(x, y, w, h)
}

// SetLineDash sets the dash pattern of later strokes.
func SetLineDash(s canvas.Surface, segments []float64) {
	if missing(s) {
		return
	}
	s.SetLineDash(segments)
}

// ResetLineDash restores solid strokes.
func ResetLineDash(s canvas.Surface) {
	if missing(s) {
		return
	}
	s.SetLineDash([]float64{})
}

// SetGlobalAlpha sets the opacity multiplied into later painting.
func SetGlobalAlpha(s canvas.Surface, alpha float64) {
	if missing(s) {
		return
	}
	s.SetGlobalAlpha(alpha)
}

// ResetGlobalAlpha restores full opacity.
func ResetGlobalAlpha(s canvas.Surface) {
	if missing(s) {
		return
	}
	s.SetGlobalAlpha(1)
}

func paint(s canvas.Surface, color string, fill bool) {
	if fill {
		s.SetFillColor(color)
		s.Fill()
		return
	}
	s.SetStrokeColor(color)
	s.Stroke()
}

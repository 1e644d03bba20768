package canvas

import (
	"fmt"
	"image"
	"strings"

	"github.com/example/chalkboard/internal/fonts"
)

// Op is one recorded surface call.
type Op struct {
	Name string
	Args []any
}

func (o Op) String() string {
	if len(o.Args) == 0 {
		return o.Name
	}
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = fmt.Sprint(a)
	}
	return o.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Recorder forwards every call to an inner Surface and keeps a log of the
// calls that change pixels, paths or state. Queries are forwarded without
// being logged, except MeasureText.
type Recorder struct {
	Inner Surface
	Ops   []Op
	// OnOp, when set, is called for every recorded op.
	OnOp func(Op)
}

// NewRecorder wraps inner. A nil inner records onto a 1x1 raster.
func NewRecorder(inner Surface) *Recorder {
	if inner == nil {
		inner = NewRaster(1, 1)
	}
	return &Recorder{Inner: inner}
}

func (r *Recorder) record(name string, args ...any) {
	op := Op{Name: name, Args: args}
	r.Ops = append(r.Ops, op)
	if r.OnOp != nil {
		r.OnOp(op)
	}
}

// Names returns the recorded op names in call order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		out[i] = op.Name
	}
	return out
}

// Reset drops the recorded log.
func (r *Recorder) Reset() { r.Ops = nil }

func (r *Recorder) Width() int  { return r.Inner.Width() }
func (r *Recorder) Height() int { return r.Inner.Height() }

func (r *Recorder) Resize(w, h int) error {
	r.record("Resize", w, h)
	return r.Inner.Resize(w, h)
}

func (r *Recorder) SetStrokeColor(hex string) {
	r.record("SetStrokeColor", hex)
	r.Inner.SetStrokeColor(hex)
}

func (r *Recorder) SetFillColor(hex string) {
	r.record("SetFillColor", hex)
	r.Inner.SetFillColor(hex)
}

func (r *Recorder) SetStrokeGradient(g *Gradient) {
	r.record("SetStrokeGradient", g)
	r.Inner.SetStrokeGradient(g)
}

func (r *Recorder) SetFillGradient(g *Gradient) {
	r.record("SetFillGradient", g)
	r.Inner.SetFillGradient(g)
}

func (r *Recorder) SetLineWidth(w float64) {
	r.record("SetLineWidth", w)
	r.Inner.SetLineWidth(w)
}

func (r *Recorder) SetLineCap(c LineCap) {
	r.record("SetLineCap", c)
	r.Inner.SetLineCap(c)
}

func (r *Recorder) SetLineJoin(j LineJoin) {
	r.record("SetLineJoin", j)
	r.Inner.SetLineJoin(j)
}

func (r *Recorder) SetLineDash(segments []float64) {
	r.record("SetLineDash", append([]float64{}, segments...))
	r.Inner.SetLineDash(segments)
}

func (r *Recorder) SetGlobalAlpha(a float64) {
	r.record("SetGlobalAlpha", a)
	r.Inner.SetGlobalAlpha(a)
}

func (r *Recorder) SetFont(f fonts.Style) {
	r.record("SetFont", f.Descriptor())
	r.Inner.SetFont(f)
}

func (r *Recorder) BeginPath() {
	r.record("BeginPath")
	r.Inner.BeginPath()
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record("MoveTo", x, y)
	r.Inner.MoveTo(x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.record("LineTo", x, y)
	r.Inner.LineTo(x, y)
}

func (r *Recorder) Rect(x, y, w, h float64) {
	r.record("Rect", x, y, w, h)
	r.Inner.Rect(x, y, w, h)
}

func (r *Recorder) Arc(x, y, radius, start, end float64) {
	r.record("Arc", x, y, radius, start, end)
	r.Inner.Arc(x, y, radius, start, end)
}

func (r *Recorder) Ellipse(x, y, rx, ry, rotation float64) {
	r.record("Ellipse", x, y, rx, ry, rotation)
	r.Inner.Ellipse(x, y, rx, ry, rotation)
}

func (r *Recorder) ClosePath() {
	r.record("ClosePath")
	r.Inner.ClosePath()
}

func (r *Recorder) Stroke() {
	r.record("Stroke")
	r.Inner.Stroke()
}

func (r *Recorder) Fill() {
	r.record("Fill")
	r.Inner.Fill()
}

func (r *Recorder) FillText(s string, x, y float64) {
	r.record("FillText", s, x, y)
	r.Inner.FillText(s, x, y)
}

func (r *Recorder) MeasureText(s string) float64 {
	r.record("MeasureText", s)
	return r.Inner.MeasureText(s)
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record("ClearRect", x, y, w, h)
	r.Inner.ClearRect(x, y, w, h)
}

func (r *Recorder) Save() {
	r.record("Save")
	r.Inner.Save()
}

func (r *Recorder) Restore() {
	r.record("Restore")
	r.Inner.Restore()
}

func (r *Recorder) State() State       { return r.Inner.State() }
func (r *Recorder) Image() *image.RGBA { return r.Inner.Image() }

// Find returns the recorded ops named name.
func (r *Recorder) Find(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

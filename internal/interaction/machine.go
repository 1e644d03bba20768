// Package interaction routes pointer and keyboard input to the drawing
// primitives according to the active tool.
//
// Rectangle and circle previews clear the whole surface on every move before
// drawing the shape from its anchor, so anything painted before the gesture
// started is lost. Resizing clears the surface as well.
package interaction

import (
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/render"
	"github.com/example/chalkboard/internal/toolstate"
)

// Mode is the machine's top-level state.
type Mode int

const (
	Idle Mode = iota
	Gesturing
	Typing
)

func (m Mode) String() string {
	switch m {
	case Gesturing:
		return "gesturing"
	case Typing:
		return "typing"
	}
	return "idle"
}

// Gesture is the state of a pointer drag.
type Gesture struct {
	Active bool
	Last   canvas.Point
	Anchor canvas.Point
}

// TextEntry is the state of an in-progress text entry. RenderedWidth and
// RenderedSize describe the last render and size the next clear.
type TextEntry struct {
	Typing        bool
	Text          string
	Anchor        canvas.Point
	RenderedWidth float64
	RenderedSize  float64
}

// Machine is the interaction state machine. Every entry point does nothing
// while no surface is attached.
type Machine struct {
	mu      sync.Mutex
	store   *toolstate.Store
	surface canvas.Surface
	mode    Mode
	gesture Gesture
	entry   TextEntry
	session string
	log     *logrus.Entry
	onDraw  func()
	unsub   func()
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the base entry; the session id is added to it.
func WithLogger(l *logrus.Entry) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(m *Machine) {
		if id != "" {
			m.session = id
		}
	}
}

// WithSurface attaches s at construction.
func WithSurface(s canvas.Surface) Option {
	return func(m *Machine) { m.surface = s }
}

// OnDraw registers fn to be called after any operation that touched pixels.
func OnDraw(fn func()) Option {
	return func(m *Machine) { m.onDraw = fn }
}

// New returns an idle machine reading its styles from store. The machine
// subscribes to store until Close is called.
func New(store *toolstate.Store, opts ...Option) *Machine {
	if store == nil {
		store = toolstate.New()
	}
	m := &Machine{
		store:   store,
		session: uuid.NewString(),
		log:     logrus.WithField("component", "interaction"),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithField("session", m.session)
	m.unsub = store.Subscribe(m.storeChanged)
	return m
}

// Close detaches the machine from its store.
func (m *Machine) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

// Session returns the id attached to every log entry of this machine.
func (m *Machine) Session() string { return m.session }

// Store returns the tool state the machine reads.
func (m *Machine) Store() *toolstate.Store { return m.store }

// Attach sets the surface drawn on.
func (m *Machine) Attach(s canvas.Surface) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surface = s
}

// Detach removes the surface. Later input is ignored until Attach.
func (m *Machine) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surface = nil
}

// Surface returns the attached surface or nil.
func (m *Machine) Surface() canvas.Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.surface
}

func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *Machine) Gesture() Gesture {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gesture
}

func (m *Machine) TextEntry() TextEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entry
}

// PointerDown starts a gesture at p. It does nothing while typing or while a
// gesture is already active.
func (m *Machine) PointerDown(p canvas.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.surface == nil || m.mode != Idle {
		return
	}
	m.mode = Gesturing
	m.gesture = Gesture{Active: true, Last: p, Anchor: p}
	m.log.WithFields(logrus.Fields{"x": p.X, "y": p.Y, "tool": m.store.State().Tool}).Debug("gesture start")
}

// PointerMove extends the active gesture to p.
func (m *Machine) PointerMove(p canvas.Point) {
	m.mu.Lock()
	drew := m.move(p)
	m.mu.Unlock()
	if drew {
		m.drawn()
	}
}

func (m *Machine) move(p canvas.Point) bool {
	s := m.surface
	if s == nil || m.mode != Gesturing {
		return false
	}
	st := m.store.State()
	size := float64(st.BrushSize)
	a := m.gesture.Anchor
	switch st.Tool {
	case toolstate.Brush:
		l := m.gesture.Last
		render.StrokeLine(s, l.X, l.Y, p.X, p.Y, st.Color, size)
		m.gesture.Last = p
	case toolstate.Eraser:
		render.EraseArea(s, p.X-size/2, p.Y-size/2, size, size)
	case toolstate.Rectangle:
		m.clearAll(s)
		s.SetLineWidth(size)
		render.DrawRectangle(s, a.X, a.Y, p.X-a.X, p.Y-a.Y, st.Color, false)
	case toolstate.Circle:
		m.clearAll(s)
		s.SetLineWidth(size)
		render.DrawCircle(s, a.X, a.Y, math.Hypot(p.X-a.X, p.Y-a.Y), st.Color, false)
	default:
		return false
	}
	return true
}

func (m *Machine) clearAll(s canvas.Surface) {
	s.ClearRect(0, 0, float64(s.Width()), float64(s.Height()))
}

// PointerUp ends the active gesture. Outside a gesture it does nothing.
func (m *Machine) PointerUp() { m.endGesture("up") }

// PointerLeave ends the active gesture like PointerUp.
func (m *Machine) PointerLeave() { m.endGesture("leave") }

func (m *Machine) endGesture(why string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.surface == nil || m.mode != Gesturing {
		return
	}
	m.mode = Idle
	m.gesture = Gesture{}
	m.log.WithField("reason", why).Debug("gesture end")
}

// Click starts a text entry at p when the text tool is active, replacing any
// entry in progress. With another tool it ends typing. Clicking renders
// nothing.
func (m *Machine) Click(p canvas.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.surface == nil || m.mode == Gesturing {
		return
	}
	if m.store.State().Tool == toolstate.Text {
		m.mode = Typing
		m.entry = TextEntry{Typing: true, Anchor: p}
		m.log.WithFields(logrus.Fields{"x": p.X, "y": p.Y}).Debug("typing start")
		return
	}
	if m.mode == Typing {
		m.stopTyping("click")
	}
}

// TextInput replaces the pending text with value and re-renders it. An
// unchanged value does nothing.
func (m *Machine) TextInput(value string) {
	m.mu.Lock()
	if m.surface == nil || m.mode != Typing || value == m.entry.Text {
		m.mu.Unlock()
		return
	}
	m.entry.Text = value
	m.renderEntry()
	m.mu.Unlock()
	m.drawn()
}

// KeyDown handles "Enter", which ends typing. Other keys are ignored.
func (m *Machine) KeyDown(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.surface == nil || m.mode != Typing || key != "Enter" {
		return
	}
	m.stopTyping("enter")
}

func (m *Machine) stopTyping(why string) {
	m.log.WithFields(logrus.Fields{"reason": why, "text": m.entry.Text}).Debug("typing end")
	m.mode = Idle
	m.entry = TextEntry{}
}

// renderEntry clears the box the previous render could have covered and
// draws the pending text with the current style.
func (m *Machine) renderEntry() {
	s := m.surface
	st := m.store.State()
	size := float64(st.FontSize)
	box := max(size, m.entry.RenderedSize)
	a := m.entry.Anchor

	s.Save()
	s.ClearRect(a.X, a.Y-box, m.entry.RenderedWidth+box, box*1.5)
	render.DrawText(s, m.entry.Text, a.X, a.Y, st.Color, size, st.Font, st.Bold, st.Italic, st.Underline)
	m.entry.RenderedWidth = s.MeasureText(m.entry.Text)
	m.entry.RenderedSize = size
	s.Restore()
}

// Resize reinitializes the surface, clearing it. A gesture in progress is
// kept and continues on the cleared surface.
func (m *Machine) Resize(w, h int) {
	m.mu.Lock()
	s := m.surface
	if s == nil {
		m.mu.Unlock()
		return
	}
	err := s.Resize(w, h)
	m.mu.Unlock()
	if err != nil {
		m.log.WithError(err).WithFields(logrus.Fields{"width": w, "height": h}).Warn("resize rejected")
		return
	}
	m.log.WithFields(logrus.Fields{"width": w, "height": h}).Debug("surface resized")
	m.drawn()
}

// Draw runs fn against the attached surface outside of any gesture logic.
// Scripts and the CLI use it to apply single primitives. Without a surface
// fn is not called.
func (m *Machine) Draw(fn func(canvas.Surface)) {
	m.mu.Lock()
	s := m.surface
	if s == nil {
		m.mu.Unlock()
		return
	}
	fn(s)
	m.mu.Unlock()
	m.drawn()
}

func (m *Machine) storeChanged(old, next toolstate.State) {
	m.mu.Lock()
	if m.surface == nil || m.mode != Typing {
		m.mu.Unlock()
		return
	}
	if old.Tool != next.Tool {
		m.stopTyping("tool change")
		m.mu.Unlock()
		return
	}
	if !styleChanged(old, next) || m.entry.Text == "" {
		m.mu.Unlock()
		return
	}
	m.renderEntry()
	m.mu.Unlock()
	m.drawn()
}

func styleChanged(a, b toolstate.State) bool {
	return a.Color != b.Color || a.FontSize != b.FontSize || a.Font != b.Font ||
		a.Bold != b.Bold || a.Italic != b.Italic || a.Underline != b.Underline
}

func (m *Machine) drawn() {
	if m.onDraw != nil {
		m.onDraw()
	}
}

// Package toolstate holds the observable tool and style selection shared by
// the toolbar, the interaction machine and scripts.
package toolstate

import (
	"fmt"
	"strings"
	"sync"

	"github.com/example/chalkboard/internal/fonts"
)

// Tool is the active drawing tool.
type Tool int

const (
	None Tool = iota
	Brush
	Eraser
	Rectangle
	Circle
	Text
)

var toolNames = map[Tool]string{
	None:      "none",
	Brush:     "brush",
	Eraser:    "eraser",
	Rectangle: "rectangle",
	Circle:    "circle",
	Text:      "text",
}

// Tools lists the selectable tools in toolbar order.
func Tools() []Tool {
	return []Tool{Brush, Eraser, Rectangle, Circle, Text}
}

func (t Tool) String() string {
	if n, ok := toolNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool resolves a tool name. "draw" and "rect" are accepted as aliases.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brush", "draw", "pen":
		return Brush, nil
	case "eraser", "erase":
		return Eraser, nil
	case "rectangle", "rect":
		return Rectangle, nil
	case "circle":
		return Circle, nil
	case "text":
		return Text, nil
	case "none", "":
		return None, nil
	}
	return None, fmt.Errorf("unknown tool %q", s)
}

// State is a snapshot of the current selection.
type State struct {
	Tool      Tool
	Color     string
	BrushSize int
	FontSize  int
	Font      string
	Bold      bool
	Italic    bool
	Underline bool
}

// Default returns the selection a session starts with.
func Default() State {
	return State{
		Tool:      Brush,
		Color:     "#000000",
		BrushSize: 5,
		FontSize:  fonts.DefaultSize,
		Font:      fonts.DefaultFamily,
	}
}

// TextStyle returns the font style implied by the selection.
func (s State) TextStyle() fonts.Style {
	return fonts.Style{Family: s.Font, Size: float64(s.FontSize), Bold: s.Bold, Italic: s.Italic}
}

// Listener is called after every mutation with the previous and new
// snapshots.
type Listener func(old, new State)

// Store is a mutex-guarded State with change notification. Listeners run
// synchronously on the goroutine that made the change, after the lock is
// released.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	order     []int
	nextID    int
}

// Option adjusts the initial state of a Store.
type Option func(*State)

func WithTool(t Tool) Option        { return func(s *State) { s.Tool = t } }
func WithColor(c string) Option     { return func(s *State) { s.Color = c } }
func WithBrushSize(n int) Option    { return func(s *State) { s.BrushSize = n } }
func WithFontSize(n int) Option     { return func(s *State) { s.FontSize = n } }
func WithFont(family string) Option { return func(s *State) { s.Font = family } }
func WithBold(on bool) Option       { return func(s *State) { s.Bold = on } }
func WithItalic(on bool) Option     { return func(s *State) { s.Italic = on } }
func WithUnderline(on bool) Option  { return func(s *State) { s.Underline = on } }
func WithState(st State) Option     { return func(s *State) { *s = st } }

// New returns a store holding Default() with opts applied on top.
func New(opts ...Option) *Store {
	st := Default()
	for _, opt := range opts {
		opt(&st)
	}
	return &Store{state: st, listeners: map[int]Listener{}}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to a copy of the state, stores it and notifies
// listeners. Listeners are notified even when fn changes nothing.
func (s *Store) Update(fn func(*State)) {
	s.mu.Lock()
	old := s.state
	next := old
	fn(&next)
	s.state = next
	ls := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		ls = append(ls, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range ls {
		l(old, next)
	}
}

func (s *Store) SetTool(t Tool)        { s.Update(func(st *State) { st.Tool = t }) }
func (s *Store) SetColor(c string)     { s.Update(func(st *State) { st.Color = c }) }
func (s *Store) SetBrushSize(n int)    { s.Update(func(st *State) { st.BrushSize = n }) }
func (s *Store) SetFontSize(n int)     { s.Update(func(st *State) { st.FontSize = n }) }
func (s *Store) SetFont(family string) { s.Update(func(st *State) { st.Font = family }) }
func (s *Store) SetBold(on bool)       { s.Update(func(st *State) { st.Bold = on }) }
func (s *Store) SetItalic(on bool)     { s.Update(func(st *State) { st.Italic = on }) }
func (s *Store) SetUnderline(on bool)  { s.Update(func(st *State) { st.Underline = on }) }

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

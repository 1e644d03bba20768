package appstate

import (
	"image"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/config"
	"github.com/example/chalkboard/internal/interaction"
	"github.com/example/chalkboard/internal/toolstate"
)

const statusDuration = 3 * time.Second

// Handler performs a file or clipboard action and returns a status line.
type Handler func() (string, error)

// Handlers are the window actions that leave the drawing surface.
type Handlers struct {
	Save   Handler
	Copy   Handler
	Export Handler
}

// Controller translates window events into interaction machine calls and
// toolbar actions. It is driven from the window's event loop only.
type Controller struct {
	machine   *interaction.Machine
	store     *toolstate.Store
	bar       *toolbar
	shortcuts *shortcutBar
	handlers  Handlers
	log       *logrus.Entry

	actions map[string]func()
	keys    map[KeyShortcut]string

	width, height int
	pressed       bool
	inside        bool
	quit          bool

	status      string
	statusUntil time.Time
	now         func() time.Time
}

// NewController wires a controller for a window of the given size and
// resizes the machine's surface to fit inside the chrome.
func NewController(m *interaction.Machine, h Handlers, width, height int, log *logrus.Entry) *Controller {
	if log == nil {
		log = logrus.WithField("component", "window")
	}
	c := &Controller{
		machine:   m,
		store:     m.Store(),
		bar:       newToolbar(m.Store()),
		shortcuts: &shortcutBar{hover: -1},
		handlers:  h,
		log:       log,
		now:       time.Now,
	}
	c.registerActions()
	c.Resize(width, height)
	return c
}

func (c *Controller) registerActions() {
	c.actions = map[string]func(){}
	c.keys = map[KeyShortcut]string{}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		c.actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				c.keys[sc] = name
			}
		}
	}

	tools := map[rune]toolstate.Tool{
		'b': toolstate.Brush,
		'e': toolstate.Eraser,
		'r': toolstate.Rectangle,
		'c': toolstate.Circle,
		't': toolstate.Text,
	}
	for r, tool := range tools {
		register("tool:"+tool.String(), shortcutList{{Rune: r}}, func() { c.store.SetTool(tool) })
	}
	register("size-", shortcutList{{Rune: '['}}, func() { c.stepBrush(-1) })
	register("size+", shortcutList{{Rune: ']'}}, func() { c.stepBrush(1) })
	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() { c.run("save", c.handlers.Save) })
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() { c.run("copy", c.handlers.Copy) })
	register("export", shortcutList{{Rune: 'e', Modifiers: key.ModControl}}, func() { c.run("export", c.handlers.Export) })
	register("quit", shortcutList{{Rune: 'q'}}, func() { c.quit = true })
	register("enter", nil, func() { c.machine.KeyDown("Enter") })
	register("backspace", nil, c.backspace)
}

func (c *Controller) stepBrush(d int) {
	c.store.Update(func(st *toolstate.State) {
		st.BrushSize = min(max(st.BrushSize+d, config.MinBrushSize), config.MaxBrushSize)
	})
}

func (c *Controller) run(name string, h Handler) {
	if h == nil {
		return
	}
	msg, err := h()
	if err != nil {
		c.log.WithError(err).WithField("action", name).Error("action failed")
		c.SetStatus(name + " failed: " + err.Error())
		return
	}
	c.log.WithField("action", name).Info(msg)
	c.SetStatus(msg)
}

// SetStatus shows msg in the shortcut bar for a few seconds.
func (c *Controller) SetStatus(msg string) {
	c.status = msg
	c.statusUntil = c.now().Add(statusDuration)
}

// Status returns the current status line, or "" once it has expired.
func (c *Controller) Status() string {
	if c.status == "" || c.now().After(c.statusUntil) {
		return ""
	}
	return c.status
}

// Trigger runs a registered action by name. Unknown names are ignored.
func (c *Controller) Trigger(name string) {
	if fn, ok := c.actions[name]; ok {
		fn()
	}
}

// Quit reports whether the user asked to close the window.
func (c *Controller) Quit() bool { return c.quit }

// SurfaceRect is where the drawing surface sits in window coordinates.
func (c *Controller) SurfaceRect() image.Rectangle {
	return image.Rect(c.bar.width, 0, c.width, c.height-bottomHeight)
}

// Resize records the new window size, lays the toolbar out again and
// reinitializes the surface.
func (c *Controller) Resize(width, height int) {
	c.width, c.height = width, height
	c.bar.layout(height - bottomHeight)
	r := c.SurfaceRect()
	c.machine.Resize(max(1, r.Dx()), max(1, r.Dy()))
	c.layoutShortcuts()
}

func (c *Controller) layoutShortcuts() {
	c.shortcuts.layout(c.machine.Mode() == interaction.Typing, c.height, c.Trigger)
}

// Mouse handles a mouse event and reports whether the window needs a
// repaint.
func (c *Controller) Mouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	surface := c.SurfaceRect()
	left := e.Button == mouse.ButtonLeft

	if !p.In(surface) {
		repaint := c.leave()
		if left && e.Direction == mouse.DirRelease {
			c.pressed = false
			c.bar.pressed = -1
		}
		return c.chrome(p, e) || repaint
	}

	c.bar.hover, c.shortcuts.hover = -1, -1
	c.inside = true
	sp := canvas.Point{X: float64(e.X) - float64(surface.Min.X), Y: float64(e.Y) - float64(surface.Min.Y)}
	switch {
	case left && e.Direction == mouse.DirPress:
		c.pressed = true
		c.machine.PointerDown(sp)
	case left && e.Direction == mouse.DirRelease:
		c.machine.PointerUp()
		if c.pressed {
			c.machine.Click(sp)
		}
		c.pressed = false
		c.layoutShortcuts()
	case e.Direction == mouse.DirNone:
		c.machine.PointerMove(sp)
	}
	return true
}

// leave ends a gesture when the pointer moves off the surface.
func (c *Controller) leave() bool {
	if !c.inside {
		return false
	}
	c.inside = false
	c.machine.PointerLeave()
	return true
}

// chrome handles events over the toolbar and the shortcut bar.
func (c *Controller) chrome(p image.Point, e mouse.Event) bool {
	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	if p.Y >= c.height-bottomHeight {
		c.bar.hover = -1
		idx := c.shortcuts.at(p)
		changed := idx != c.shortcuts.hover
		c.shortcuts.hover = idx
		if press && idx >= 0 {
			c.shortcuts.buttons[idx].Activate()
			c.layoutShortcuts()
			return true
		}
		return changed
	}
	c.shortcuts.hover = -1
	idx := c.bar.at(p)
	changed := idx != c.bar.hover
	c.bar.hover = idx
	if press && idx >= 0 {
		c.bar.pressed = idx
		c.bar.buttons[idx].Activate()
		return true
	}
	return changed
}

// Key handles a key event and reports whether the window needs a repaint.
// Shortcuts match on the lowercased rune and the Ctrl modifier only.
func (c *Controller) Key(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	defer c.layoutShortcuts()

	mods := e.Modifiers & key.ModControl
	if c.machine.Mode() == interaction.Typing && mods == 0 {
		switch e.Code {
		case key.CodeReturnEnter, key.CodeKeypadEnter:
			c.machine.KeyDown("Enter")
			return true
		case key.CodeDeleteBackspace:
			c.backspace()
			return true
		}
		if e.Rune > 0 && unicode.IsPrint(e.Rune) {
			c.machine.TextInput(c.machine.TextEntry().Text + string(e.Rune))
			return true
		}
		return false
	}
	r := e.Rune
	if mods != 0 {
		r = controlRune(e)
	}
	ks := KeyShortcut{Rune: unicode.ToLower(r), Modifiers: mods}
	if action, ok := c.keys[ks]; ok {
		c.Trigger(action)
		return true
	}
	return false
}

// controlRune recovers the letter of a Ctrl chord. Some drivers report the
// ASCII control code instead of the letter.
func controlRune(e key.Event) rune {
	if e.Rune > 0 && e.Rune < 0x20 {
		return e.Rune + 'a' - 1
	}
	return e.Rune
}

func (c *Controller) backspace() {
	if c.machine.Mode() != interaction.Typing {
		return
	}
	r := []rune(c.machine.TextEntry().Text)
	if len(r) == 0 {
		return
	}
	c.machine.TextInput(string(r[:len(r)-1]))
}

package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/chalkboard/internal/colors"
	"github.com/example/chalkboard/internal/theme"
	"github.com/example/chalkboard/internal/toolstate"
)

// KeyShortcut identifies a key combination bound to an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Look carries what a button needs to paint itself.
type Look struct {
	Theme *theme.Theme
	State ButtonState
	Tools toolstate.State
}

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, look Look)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// ActionButton is a labelled toolbar or shortcut bar button. When caption is
// set it derives the label from the tool state. selected marks the button as
// engaged.
type ActionButton struct {
	label      string
	caption    func(toolstate.State) string
	selected   func(toolstate.State) bool
	rect       image.Rectangle
	onActivate func()
}

var _ Button = (*ActionButton)(nil)

func (b *ActionButton) Draw(dst *image.RGBA, look Look) {
	th := look.Theme
	bg, fg := th.ButtonBackground, th.ButtonText
	switch {
	case look.State == StatePressed:
		bg = th.ButtonBackgroundPress
	case b.selected != nil && b.selected(look.Tools):
		bg, fg = th.ButtonActive, th.ButtonTextActive
	case look.State == StateHover:
		bg = th.ButtonBackgroundHover
	}
	fillRect(dst, b.rect, bg)
	strokeRect(dst, b.rect, th.ButtonBorder, 1)
	label := b.label
	if b.caption != nil {
		label = b.caption(look.Tools)
	}
	drawLabel(dst, fitLabel(label, b.rect.Dx()-6), b.rect.Min.X+3, b.rect.Min.Y+b.rect.Dy()/2+5, fg)
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ActionButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// Swatch is one palette entry.
type Swatch struct {
	index      int
	entry      colors.Entry
	rect       image.Rectangle
	onActivate func()
}

var _ Button = (*Swatch)(nil)

func (s *Swatch) Draw(dst *image.RGBA, look Look) {
	fillRect(dst, s.rect, s.entry.Color)
	if look.State == StateHover {
		draw.Draw(dst, s.rect, image.NewUniform(color.RGBA{255, 255, 255, 80}), image.Point{}, draw.Over)
	}
	border, thick := look.Theme.SwatchBorder, 1
	if colors.Index(look.Tools.Color) == s.index {
		border, thick = look.Theme.SwatchSelected, 2
	}
	strokeRect(dst, s.rect, border, thick)
}

func (s *Swatch) Rect() image.Rectangle { return s.rect }

func (s *Swatch) SetRect(r image.Rectangle) { s.rect = r }

func (s *Swatch) Activate() {
	if s.onActivate != nil {
		s.onActivate()
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.Color, thick int) {
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

func drawLabel(dst *image.RGBA, s string, x, y int, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func labelWidth(s string) int {
	return (&font.Drawer{Face: basicfont.Face7x13}).MeasureString(s).Ceil()
}

// fitLabel trims s with a trailing '~' until it fits in width pixels.
func fitLabel(s string, width int) string {
	if labelWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 1 && labelWidth(string(r)+"~") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "~"
}

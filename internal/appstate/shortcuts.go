package appstate

import (
	"image"

	"github.com/example/chalkboard/internal/theme"
)

type shortcutLabel struct {
	label  string
	action string
}

var (
	idleShortcuts = []shortcutLabel{
		{"[:thinner", "size-"},
		{"]:thicker", "size+"},
		{"^S:save", "save"},
		{"^C:copy", "copy"},
		{"^E:pdf", "export"},
		{"Q:quit", "quit"},
	}
	typingShortcuts = []shortcutLabel{
		{"Enter:done", "enter"},
		{"Bksp:delete", "backspace"},
		{"^S:save", "save"},
	}
)

// shortcutBar is the strip along the bottom of the window listing the
// active keyboard shortcuts. Each label is also a clickable button.
type shortcutBar struct {
	buttons []*ActionButton
	hover   int
}

func (sb *shortcutBar) layout(typing bool, height int, trigger func(string)) {
	labels := idleShortcuts
	if typing {
		labels = typingShortcuts
	}
	// A fresh slice each time so painted frames keep their own copy.
	sb.buttons = nil
	x := padding
	top := height - bottomHeight + 3
	for _, l := range labels {
		action := l.action
		w := labelWidth(l.label) + 2*padding
		sb.buttons = append(sb.buttons, &ActionButton{
			label:      l.label,
			rect:       image.Rect(x, top, x+w, top+bottomHeight-6),
			onActivate: func() { trigger(action) },
		})
		x += w + padding
	}
}

func (sb *shortcutBar) at(p image.Point) int {
	for i, b := range sb.buttons {
		if p.In(b.rect) {
			return i
		}
	}
	return -1
}

func drawShortcuts(dst *image.RGBA, th *theme.Theme, buttons []*ActionButton, hover int, status string, width, height int) {
	fillRect(dst, image.Rect(0, height-bottomHeight, width, height), th.ShortcutBackground)
	x := 0
	for i, b := range buttons {
		state := StateDefault
		if i == hover {
			state = StateHover
		}
		b.Draw(dst, Look{Theme: th, State: state})
		x = b.rect.Max.X
	}
	if status != "" {
		drawLabel(dst, status, x+3*padding, height-bottomHeight+16, th.ShortcutText)
	}
}

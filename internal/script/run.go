package script

import (
	"context"
	"fmt"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/colors"
	"github.com/example/chalkboard/internal/fonts"
	"github.com/example/chalkboard/internal/interaction"
	"github.com/example/chalkboard/internal/render"
	"github.com/example/chalkboard/internal/toolstate"
)

// Run executes cmds in order against m, reading and writing styles through
// store. It stops at the first failing command or when ctx is done.
func Run(ctx context.Context, m *interaction.Machine, store *toolstate.Store, cmds []Command) error {
	for _, c := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := Exec(m, store, c); err != nil {
			return err
		}
	}
	return nil
}

// Exec executes a single command.
func Exec(m *interaction.Machine, store *toolstate.Store, c Command) error {
	if err := exec(m, store, c); err != nil {
		return fmt.Errorf("line %d: %s: %w", c.Line, c.Name, err)
	}
	return nil
}

func exec(m *interaction.Machine, store *toolstate.Store, c Command) error {
	a := c.Args
	n := floats(trimFill(a))
	pt := func(i int) canvas.Point { return canvas.Point{X: n[i], Y: n[i+1]} }

	switch c.Name {
	case "tool":
		t, err := toolstate.ParseTool(a[0])
		if err != nil {
			return err
		}
		store.SetTool(t)
	case "color":
		hex, err := colors.Parse(a[0])
		if err != nil {
			return err
		}
		store.SetColor(hex)
	case "size":
		store.SetBrushSize(int(n[0]))
	case "fontsize":
		store.SetFontSize(int(n[0]))
	case "font":
		family, ok := fonts.Lookup(c.Text)
		if !ok {
			return fmt.Errorf("unknown font family %q", c.Text)
		}
		store.SetFont(family)
	case "bold", "italic", "underline":
		on, err := ParseSwitch(a[0])
		if err != nil {
			return err
		}
		switch c.Name {
		case "bold":
			store.SetBold(on)
		case "italic":
			store.SetItalic(on)
		default:
			store.SetUnderline(on)
		}

	case "down":
		m.PointerDown(pt(0))
	case "move":
		m.PointerMove(pt(0))
	case "up":
		m.PointerUp()
	case "leave":
		m.PointerLeave()
	case "click":
		m.Click(pt(0))
	case "type":
		m.TextInput(c.Text)
	case "backspace":
		text := []rune(m.TextEntry().Text)
		if len(text) > 0 {
			m.TextInput(string(text[:len(text)-1]))
		}
	case "enter":
		m.KeyDown("Enter")
	case "resize":
		m.Resize(int(n[0]), int(n[1]))

	default:
		draw(m, store.State(), c, n)
	}
	return nil
}

// draw applies the direct primitive commands with the current style.
func draw(m *interaction.Machine, st toolstate.State, c Command, n []float64) {
	fill := hasFill(c.Args)
	size := float64(st.BrushSize)
	m.Draw(func(s canvas.Surface) {
		switch c.Name {
		case "line":
			w := size
			if len(n) == 5 {
				w = n[4]
			}
			render.StrokeLine(s, n[0], n[1], n[2], n[3], st.Color, w)
		case "rect":
			s.SetLineWidth(size)
			render.DrawRectangle(s, n[0], n[1], n[2], n[3], st.Color, fill)
		case "circle":
			s.SetLineWidth(size)
			render.DrawCircle(s, n[0], n[1], n[2], st.Color, fill)
		case "ellipse":
			rot := 0.0
			if len(n) == 5 {
				rot = n[4]
			}
			s.SetLineWidth(size)
			render.DrawEllipse(s, n[0], n[1], n[2], n[3], rot, st.Color, fill)
		case "polygon":
			pts := make([]canvas.Point, 0, len(n)/2)
			for i := 0; i+1 < len(n); i += 2 {
				pts = append(pts, canvas.Point{X: n[i], Y: n[i+1]})
			}
			s.SetLineWidth(size)
			render.DrawPolygon(s, pts, st.Color, fill)
		case "text":
			render.DrawText(s, c.Text, n[0], n[1], st.Color, float64(st.FontSize), st.Font, st.Bold, st.Italic, st.Underline)
		case "erase":
			render.EraseArea(s, n[0], n[1], n[2], n[3])
		case "dash":
			if len(n) == 0 {
				render.ResetLineDash(s)
			} else {
				render.SetLineDash(s, n)
			}
		case "alpha":
			if c.Args[0] == "reset" {
				render.ResetGlobalAlpha(s)
			} else {
				render.SetGlobalAlpha(s, n[0])
			}
		}
	})
}

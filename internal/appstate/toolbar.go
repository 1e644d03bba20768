package appstate

import (
	"fmt"
	"image"
	"slices"

	"github.com/example/chalkboard/internal/colors"
	"github.com/example/chalkboard/internal/config"
	"github.com/example/chalkboard/internal/fonts"
	"github.com/example/chalkboard/internal/theme"
	"github.com/example/chalkboard/internal/toolstate"
)

const (
	titleHeight  = 20
	bottomHeight = 24
	rowHeight    = 22
	swatchSize   = 16
	swatchGap    = 2
	padding      = 4

	minToolbarWidth = 96
	fontSizeStep    = 2
)

const appTitle = "Chalkboard"

var toolLabels = []struct {
	tool  toolstate.Tool
	label string
}{
	{toolstate.Brush, "B:Brush"},
	{toolstate.Eraser, "E:Eraser"},
	{toolstate.Rectangle, "R:Rect"},
	{toolstate.Circle, "C:Circle"},
	{toolstate.Text, "T:Text"},
}

// toolbar is the left strip of tool, palette and style controls. Rows flow
// into further columns when the window is too short for one.
type toolbar struct {
	store    *toolstate.Store
	colWidth int
	width    int
	buttons  []Button
	hover    int
	pressed  int
}

func newToolbar(store *toolstate.Store) *toolbar {
	tb := &toolbar{store: store, hover: -1, pressed: -1}
	tb.colWidth = max(minToolbarWidth, labelWidth(appTitle)+2*padding)
	for _, tl := range toolLabels {
		tb.colWidth = max(tb.colWidth, labelWidth(tl.label)+2*padding)
	}
	tb.width = tb.colWidth
	return tb
}

// flow places fixed-height rows top to bottom, starting a new column when a
// row would cross maxY.
type flow struct {
	x, y, maxY int
	colWidth   int
	cols       int
}

func (f *flow) row(h int) (x, y int) {
	if f.y+h > f.maxY && f.y > titleHeight {
		f.x += f.colWidth
		f.y = titleHeight
		f.cols++
	}
	x, y = f.x, f.y
	f.y += h + swatchGap
	return x, y
}

// layout rebuilds the buttons to fit above maxY and updates the width.
// It replaces the button slice so frames already captured keep the old one.
func (tb *toolbar) layout(maxY int) {
	store := tb.store
	tb.buttons = nil
	tb.hover, tb.pressed = -1, -1
	f := &flow{y: titleHeight, maxY: maxY, colWidth: tb.colWidth, cols: 1}
	inner := tb.colWidth - 2*padding

	for _, tl := range toolLabels {
		tool := tl.tool
		x, y := f.row(rowHeight)
		tb.add(&ActionButton{
			label:      tl.label,
			selected:   func(st toolstate.State) bool { return st.Tool == tool },
			onActivate: func() { store.SetTool(tool) },
		}, image.Rect(x+padding, y, x+padding+inner, y+rowHeight))
	}

	f.y += padding
	perRow := max(1, (inner+swatchGap)/(swatchSize+swatchGap))
	palette := colors.Palette()
	for start := 0; start < len(palette); start += perRow {
		x, y := f.row(swatchSize)
		x += padding
		for i := start; i < min(start+perRow, len(palette)); i++ {
			e := palette[i]
			hex := e.Hex()
			tb.add(&Swatch{index: i, entry: e, onActivate: func() { store.SetColor(hex) }},
				image.Rect(x, y, x+swatchSize, y+swatchSize))
			x += swatchSize + swatchGap
		}
	}
	f.y += padding

	tb.stepper(f, func(st toolstate.State) string { return fmt.Sprintf("Size %d", st.BrushSize) },
		func(d int) {
			store.Update(func(st *toolstate.State) {
				st.BrushSize = min(max(st.BrushSize+d, config.MinBrushSize), config.MaxBrushSize)
			})
		})
	tb.stepper(f, func(st toolstate.State) string { return fmt.Sprintf("Font %d", st.FontSize) },
		func(d int) {
			store.Update(func(st *toolstate.State) {
				st.FontSize = min(max(st.FontSize+d*fontSizeStep, config.MinFontSize), config.MaxFontSize)
			})
		})

	x, y := f.row(rowHeight)
	tb.add(&ActionButton{
		caption:    func(st toolstate.State) string { return st.Font },
		onActivate: func() { store.Update(func(st *toolstate.State) { st.Font = nextFamily(st.Font) }) },
	}, image.Rect(x+padding, y, x+padding+inner, y+rowHeight))

	third := inner / 3
	toggles := []struct {
		label string
		get   func(toolstate.State) bool
		flip  func(*toolstate.State)
	}{
		{"B", func(st toolstate.State) bool { return st.Bold }, func(st *toolstate.State) { st.Bold = !st.Bold }},
		{"I", func(st toolstate.State) bool { return st.Italic }, func(st *toolstate.State) { st.Italic = !st.Italic }},
		{"U", func(st toolstate.State) bool { return st.Underline }, func(st *toolstate.State) { st.Underline = !st.Underline }},
	}
	x, y = f.row(rowHeight)
	for i, tg := range toggles {
		flip := tg.flip
		left := x + padding + i*third
		tb.add(&ActionButton{
			label:      tg.label,
			selected:   tg.get,
			onActivate: func() { store.Update(flip) },
		}, image.Rect(left, y, left+third-swatchGap, y+rowHeight))
	}
	tb.width = f.cols * tb.colWidth
}

// stepper adds a "-", caption, "+" row.
func (tb *toolbar) stepper(f *flow, caption func(toolstate.State) string, step func(int)) {
	inner := tb.colWidth - 2*padding
	btn := rowHeight
	x, y := f.row(rowHeight)
	x += padding
	tb.add(&ActionButton{label: "-", onActivate: func() { step(-1) }},
		image.Rect(x, y, x+btn, y+rowHeight))
	tb.add(&ActionButton{caption: caption},
		image.Rect(x+btn, y, x+inner-btn, y+rowHeight))
	tb.add(&ActionButton{label: "+", onActivate: func() { step(1) }},
		image.Rect(x+inner-btn, y, x+inner, y+rowHeight))
}

func (tb *toolbar) add(b Button, r image.Rectangle) {
	b.SetRect(r)
	tb.buttons = append(tb.buttons, b)
}

// at returns the index of the button under p, or -1.
func (tb *toolbar) at(p image.Point) int {
	for i, b := range tb.buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}

// draw paints the toolbar. Frames paint a copy taken by snapshot; layout
// replaces the button slice rather than mutating it.
func (tb *toolbar) draw(dst *image.RGBA, th *theme.Theme, height, hover, pressed int, st toolstate.State) {
	fillRect(dst, image.Rect(0, 0, tb.width, height), th.ToolbarBackground)
	drawLabel(dst, appTitle, padding, 14, th.Foreground)
	for i, b := range tb.buttons {
		state := StateDefault
		switch i {
		case pressed:
			state = StatePressed
		case hover:
			state = StateHover
		}
		b.Draw(dst, Look{Theme: th, State: state, Tools: st})
	}
}

// nextFamily cycles through the supported families, starting over at the
// first for unknown names.
func nextFamily(current string) string {
	families := fonts.Families()
	i := slices.Index(families, current)
	return families[(i+1)%len(families)]
}

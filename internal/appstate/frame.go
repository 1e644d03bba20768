package appstate

import (
	"context"
	"image"
	"image/draw"

	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/exp/shiny/screen"

	"github.com/example/chalkboard/internal/interaction"
	"github.com/example/chalkboard/internal/theme"
	"github.com/example/chalkboard/internal/toolstate"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// paintState is a value snapshot of everything a frame shows. It is built
// on the event loop and consumed by the paint goroutine.
type paintState struct {
	width, height int
	theme         *theme.Theme
	surface       *image.RGBA
	origin        image.Point
	bar           *toolbar
	barHover      int
	barPressed    int
	tools         toolstate.State
	shortcuts     []*ActionButton
	shortcutHover int
	status        string
	entry         interaction.TextEntry
}

// snapshot captures the controller and surface for one frame.
func (c *Controller) snapshot(th *theme.Theme) paintState {
	bar := *c.bar
	st := paintState{
		width:         c.width,
		height:        c.height,
		theme:         th,
		origin:        c.SurfaceRect().Min,
		bar:           &bar,
		barHover:      c.bar.hover,
		barPressed:    c.bar.pressed,
		tools:         c.store.State(),
		shortcuts:     c.shortcuts.buttons,
		shortcutHover: c.shortcuts.hover,
		status:        c.Status(),
		entry:         c.machine.TextEntry(),
	}
	if s := c.machine.Surface(); s != nil {
		src := s.Image()
		st.surface = image.NewRGBA(src.Bounds())
		draw.Draw(st.surface, src.Bounds(), src, src.Bounds().Min, draw.Src)
	}
	return st
}

// compose renders a frame into dst.
func compose(ctx context.Context, dst *image.RGBA, st paintState) bool {
	th := st.theme
	fillRect(dst, dst.Bounds(), th.Background)
	if st.surface != nil {
		r := st.surface.Bounds().Add(st.origin)
		fillRect(dst, r, th.Paper)
		xdraw.Copy(dst, st.origin, st.surface, st.surface.Bounds(), draw.Over, nil)
	}
	if ctx.Err() != nil {
		return false
	}
	if st.entry.Typing {
		caret(dst, st, th)
	}
	st.bar.draw(dst, th, st.height-bottomHeight, st.barHover, st.barPressed, st.tools)
	drawShortcuts(dst, th, st.shortcuts, st.shortcutHover, st.status, st.width, st.height)
	return ctx.Err() == nil
}

// caret marks where the next typed character lands.
func caret(dst *image.RGBA, st paintState, th *theme.Theme) {
	size := st.tools.FontSize
	x := st.origin.X + int(st.entry.Anchor.X+st.entry.RenderedWidth) + 1
	y := st.origin.Y + int(st.entry.Anchor.Y)
	fillRect(dst, image.Rect(x, y-size, x+1, y+size/4), th.Cursor)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState, log *logrus.Entry) bool {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.WithError(err).Error("new buffer")
		return false
	}
	defer b.Release()

	if !compose(ctx, b.RGBA(), st) {
		return false
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
	return true
}

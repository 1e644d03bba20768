package interaction

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/toolstate"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func setup(t *testing.T, opts ...toolstate.Option) (*Machine, *toolstate.Store, *canvas.Recorder) {
	t.Helper()
	store := toolstate.New(opts...)
	rec := canvas.NewRecorder(canvas.NewRaster(200, 150))
	m := New(store, WithLogger(quietLogger()), WithSurface(rec))
	t.Cleanup(m.Close)
	return m, store, rec
}

func pt(x, y float64) canvas.Point { return canvas.Point{X: x, Y: y} }

func TestBrushZeroMoveGesture(t *testing.T) {
	m, _, rec := setup(t)
	m.PointerDown(pt(20, 20))
	assert.Equal(t, Gesturing, m.Mode())
	m.PointerUp()

	assert.Equal(t, Idle, m.Mode())
	assert.Empty(t, rec.Find("Stroke"), "down then up without a move draws nothing")
	assert.Equal(t, Gesture{}, m.Gesture())
}

func TestBrushStrokesFromLastPoint(t *testing.T) {
	m, store, rec := setup(t, toolstate.WithColor("#ff0000"), toolstate.WithBrushSize(9))
	m.PointerDown(pt(10, 10))
	m.PointerMove(pt(20, 15))
	m.PointerMove(pt(30, 40))
	m.PointerUp()

	assert.Len(t, rec.Find("Stroke"), 2)
	moves := rec.Find("MoveTo")
	lines := rec.Find("LineTo")
	require.Len(t, moves, 2)
	assert.Equal(t, []any{10.0, 10.0}, moves[0].Args)
	assert.Equal(t, []any{20.0, 15.0}, lines[0].Args)
	assert.Equal(t, []any{20.0, 15.0}, moves[1].Args)
	assert.Equal(t, []any{30.0, 40.0}, lines[1].Args)
	assert.Equal(t, "#ff0000", rec.State().StrokeStyle)
	assert.Equal(t, float64(store.State().BrushSize), rec.State().LineWidth)
}

func TestRectangleScenario(t *testing.T) {
	m, _, rec := setup(t, toolstate.WithTool(toolstate.Rectangle), toolstate.WithColor("#0000ff"))
	m.PointerDown(pt(10, 10))
	m.PointerMove(pt(110, 60))
	m.PointerUp()

	clears := rec.Find("ClearRect")
	require.Len(t, clears, 1)
	assert.Equal(t, []any{0.0, 0.0, 200.0, 150.0}, clears[0].Args)

	rects := rec.Find("Rect")
	require.Len(t, rects, 1)
	assert.Equal(t, []any{10.0, 10.0, 100.0, 50.0}, rects[0].Args)
	strokes := rec.Find("Stroke")
	require.Len(t, strokes, 1)
	assert.Empty(t, rec.Find("Fill"))
	assert.Equal(t, "#0000ff", rec.State().StrokeStyle)

	names := rec.Names()
	assert.Less(t, indexOf(names, "ClearRect"), indexOf(names, "Rect"))
	assert.Equal(t, Idle, m.Mode())
}

func TestRectanglePreviewDiscardsEarlierContent(t *testing.T) {
	m, store, rec := setup(t)
	m.PointerDown(pt(150, 100))
	m.PointerMove(pt(190, 140))
	m.PointerUp()
	require.NotZero(t, maxAlongLine(rec, 150, 100, 190, 140))

	store.SetTool(toolstate.Rectangle)
	m.PointerDown(pt(5, 5))
	m.PointerMove(pt(20, 20))
	m.PointerUp()
	assert.Zero(t, maxAlongLine(rec, 150, 100, 190, 140), "earlier brush stroke is cleared by the preview")
}

func TestCircleRadiusIsDistance(t *testing.T) {
	m, _, rec := setup(t, toolstate.WithTool(toolstate.Circle))
	m.PointerDown(pt(50, 50))
	m.PointerMove(pt(53, 54))

	arcs := rec.Find("Arc")
	require.Len(t, arcs, 1)
	assert.Equal(t, 5.0, arcs[0].Args[2])
	assert.Len(t, rec.Find("ClearRect"), 1)
}

func TestEraserClearsCenteredSquare(t *testing.T) {
	m, _, rec := setup(t, toolstate.WithTool(toolstate.Eraser), toolstate.WithBrushSize(10))
	m.PointerDown(pt(40, 40))
	m.PointerMove(pt(50, 60))
	m.PointerMove(pt(52, 61))

	clears := rec.Find("ClearRect")
	require.Len(t, clears, 2)
	assert.Equal(t, []any{45.0, 55.0, 10.0, 10.0}, clears[0].Args)
	assert.Equal(t, []any{47.0, 56.0, 10.0, 10.0}, clears[1].Args)
}

func TestTextToolMoveDoesNothing(t *testing.T) {
	m, _, rec := setup(t, toolstate.WithTool(toolstate.Text))
	m.PointerDown(pt(1, 1))
	m.PointerMove(pt(30, 30))
	m.PointerLeave()
	assert.Empty(t, rec.Ops)
	assert.Equal(t, Idle, m.Mode())
}

func TestTextScenario(t *testing.T) {
	m, _, rec := setup(t, toolstate.WithTool(toolstate.Text))
	m.Click(pt(50, 50))
	assert.Equal(t, Typing, m.Mode())
	assert.Empty(t, rec.Ops, "clicking renders nothing")

	m.TextInput("H")
	widthH := m.TextEntry().RenderedWidth
	require.Greater(t, widthH, 0.0)
	m.TextInput("Hi")
	m.KeyDown("Enter")

	fills := rec.Find("FillText")
	require.Len(t, fills, 2)
	assert.Equal(t, "H", fills[0].Args[0])
	assert.Equal(t, "Hi", fills[1].Args[0])

	clears := rec.Find("ClearRect")
	require.Len(t, clears, 2)
	assert.Equal(t, []any{50.0, 34.0, 16.0, 24.0}, clears[0].Args)
	assert.Equal(t, []any{50.0, 34.0, widthH + 16, 24.0}, clears[1].Args)

	names := rec.Names()
	first := indexOf(names, "FillText")
	assert.Less(t, indexOf(names, "ClearRect"), first)
	assert.Less(t, lastIndexOf(names, "ClearRect"), lastIndexOf(names, "FillText"))
	assert.Equal(t, "Save", names[0])
	assert.Equal(t, "Restore", names[len(names)-1])

	assert.Equal(t, Idle, m.Mode())
	assert.Equal(t, TextEntry{}, m.TextEntry())
}

func TestUnchangedTextInputIsIgnored(t *testing.T) {
	m, _, rec := setup(t, toolstate.WithTool(toolstate.Text))
	m.Click(pt(10, 30))
	m.TextInput("abc")
	n := len(rec.Ops)
	m.TextInput("abc")
	assert.Len(t, rec.Ops, n)
}

func TestTextInputOutsideTypingIsIgnored(t *testing.T) {
	m, _, rec := setup(t)
	m.TextInput("x")
	m.KeyDown("Enter")
	assert.Empty(t, rec.Ops)
	assert.Equal(t, Idle, m.Mode())
}

func TestOtherKeysIgnored(t *testing.T) {
	m, _, _ := setup(t, toolstate.WithTool(toolstate.Text))
	m.Click(pt(10, 30))
	m.KeyDown("Escape")
	assert.Equal(t, Typing, m.Mode())
}

func TestClickWithOtherToolStopsTyping(t *testing.T) {
	m, store, rec := setup(t, toolstate.WithTool(toolstate.Text))
	m.Click(pt(10, 30))

	// Switch tools while detached so the store change is not observed.
	m.Detach()
	store.SetTool(toolstate.Brush)
	m.Attach(rec)
	require.Equal(t, Typing, m.Mode())

	m.Click(pt(40, 40))
	assert.Equal(t, Idle, m.Mode())
	assert.Equal(t, TextEntry{}, m.TextEntry())
}

func TestClickRestartsEntry(t *testing.T) {
	m, _, _ := setup(t, toolstate.WithTool(toolstate.Text))
	m.Click(pt(10, 30))
	m.TextInput("abc")
	m.Click(pt(80, 90))
	e := m.TextEntry()
	assert.True(t, e.Typing)
	assert.Empty(t, e.Text)
	assert.Equal(t, pt(80, 90), e.Anchor)
	assert.Zero(t, e.RenderedWidth)
}

func TestToolSwitchAbandonsTyping(t *testing.T) {
	m, store, rec := setup(t, toolstate.WithTool(toolstate.Text))
	m.Click(pt(10, 30))
	m.TextInput("abc")
	n := len(rec.Ops)

	store.SetTool(toolstate.Circle)
	assert.Equal(t, Idle, m.Mode())
	assert.Empty(t, m.TextEntry().Text)
	assert.Len(t, rec.Ops, n, "abandoning an entry does not clear what was rendered")
}

func TestStyleChangeRerendersPendingText(t *testing.T) {
	m, store, rec := setup(t, toolstate.WithTool(toolstate.Text))
	m.Click(pt(10, 30))
	m.TextInput("abc")
	store.SetBold(true)

	fills := rec.Find("FillText")
	require.Len(t, fills, 2)
	assert.Equal(t, "abc", fills[1].Args[0])
	fonts := rec.Find("SetFont")
	assert.Equal(t, "bold 16px Arial", fonts[len(fonts)-1].Args[0])
	assert.Equal(t, Typing, m.Mode())
}

func TestFontShrinkClearsLargerGlyphs(t *testing.T) {
	m, store, rec := setup(t, toolstate.WithTool(toolstate.Text), toolstate.WithFontSize(48))
	m.Click(pt(10, 80))
	m.TextInput("Hello")
	wide := m.TextEntry().RenderedWidth
	store.SetFontSize(8)

	clears := rec.Find("ClearRect")
	require.Len(t, clears, 2)
	assert.Equal(t, []any{10.0, 32.0, wide + 48, 72.0}, clears[1].Args)
	assert.Equal(t, 8.0, m.TextEntry().RenderedSize)

	img := rec.Image()
	for y := 0; y < 80-10; y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			require.Zero(t, img.RGBAAt(x, y).A, "ink left at %d,%d", x, y)
		}
	}
}

func TestStyleChangeWithoutTextRendersNothing(t *testing.T) {
	m, store, rec := setup(t, toolstate.WithTool(toolstate.Text))
	m.Click(pt(10, 30))
	store.SetItalic(true)
	assert.Empty(t, rec.Ops)
}

func TestResizeClearsAndKeepsGesture(t *testing.T) {
	m, _, rec := setup(t)
	m.PointerDown(pt(10, 10))
	m.PointerMove(pt(60, 60))
	m.Resize(300, 200)

	assert.Equal(t, 300, rec.Width())
	assert.Equal(t, 200, rec.Height())
	img := rec.Image()
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatal("surface not cleared by resize")
		}
	}
	assert.Equal(t, Gesturing, m.Mode())
	assert.Equal(t, pt(60, 60), m.Gesture().Last)
}

func TestResizeSameSizeStillClears(t *testing.T) {
	m, _, rec := setup(t, toolstate.WithTool(toolstate.Rectangle))
	m.PointerDown(pt(10, 10))
	m.PointerMove(pt(100, 100))
	m.PointerUp()
	m.Resize(rec.Width(), rec.Height())
	for _, p := range rec.Image().Pix {
		require.Zero(t, p)
	}
}

func TestDetachedMachineIsNoop(t *testing.T) {
	store := toolstate.New(toolstate.WithTool(toolstate.Text))
	m := New(store, WithLogger(quietLogger()))
	defer m.Close()

	assert.NotPanics(t, func() {
		m.PointerDown(pt(1, 1))
		m.PointerMove(pt(2, 2))
		m.PointerUp()
		m.PointerLeave()
		m.Click(pt(1, 1))
		m.TextInput("x")
		m.KeyDown("Enter")
		m.Resize(10, 10)
		store.SetBold(true)
	})
	assert.Equal(t, Idle, m.Mode())

	rec := canvas.NewRecorder(canvas.NewRaster(10, 10))
	m.Attach(rec)
	m.Click(pt(1, 5))
	assert.Equal(t, Typing, m.Mode())
	m.Detach()
	m.TextInput("x")
	assert.Empty(t, rec.Ops)
}

func TestOnDrawCallback(t *testing.T) {
	var calls int
	store := toolstate.New()
	m := New(store, WithLogger(quietLogger()), WithSurface(canvas.NewRaster(20, 20)), OnDraw(func() { calls++ }))
	defer m.Close()
	m.PointerDown(pt(1, 1))
	assert.Zero(t, calls)
	m.PointerMove(pt(5, 5))
	assert.Equal(t, 1, calls)
}

func TestSessionID(t *testing.T) {
	m := New(toolstate.New(), WithLogger(quietLogger()), WithSessionID("abc"))
	defer m.Close()
	assert.Equal(t, "abc", m.Session())

	other := New(toolstate.New(), WithLogger(quietLogger()))
	defer other.Close()
	assert.Len(t, other.Session(), 36)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func lastIndexOf(names []string, name string) int {
	for i := len(names) - 1; i >= 0; i-- {
		if names[i] == name {
			return i
		}
	}
	return -1
}

// maxAlongLine samples alpha along the segment and returns the largest value.
func maxAlongLine(s canvas.Surface, x1, y1, x2, y2 float64) uint8 {
	img := s.Image()
	var best uint8
	for i := 0; i <= 20; i++ {
		f := float64(i) / 20
		x := int(x1 + (x2-x1)*f)
		y := int(y1 + (y2-y1)*f)
		if a := img.RGBAAt(x, y).A; a > best {
			best = a
		}
	}
	return best
}

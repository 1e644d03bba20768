package script

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/interaction"
	"github.com/example/chalkboard/internal/toolstate"
)

func newSession(t *testing.T) (*interaction.Machine, *toolstate.Store, *canvas.Recorder) {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	store := toolstate.New()
	rec := canvas.NewRecorder(canvas.NewRaster(200, 150))
	m := interaction.New(store, interaction.WithLogger(logrus.NewEntry(l)), interaction.WithSurface(rec))
	t.Cleanup(m.Close)
	return m, store, rec
}

func TestParseSkipsBlankAndComments(t *testing.T) {
	src := "# heading\n\ntool rect\n   \n  # indented comment\nup\n"
	cmds, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, Command{Line: 3, Name: "tool", Args: []string{"rect"}}, cmds[0])
	assert.Equal(t, 6, cmds[1].Line)
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse(strings.NewReader("tool brush\nup\nfoo 1 2\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCommand))
	assert.Equal(t, `line 3: unknown command "foo"`, err.Error())
}

func TestParseArgumentErrors(t *testing.T) {
	bad := []string{
		"down 1",
		"move a b",
		"up now",
		"size",
		"bold maybe",
		"polygon 1 2 3 4 5",
		"polygon 1 2 3 4",
		"text 1 2",
		"font",
		"alpha half",
		"rect 1 2 3",
		"resize 10",
	}
	for _, line := range bad {
		_, _, err := ParseLine(1, line)
		assert.Error(t, err, line)
		assert.False(t, errors.Is(err, ErrUnknownCommand), line)
	}
}

func TestParseFreeText(t *testing.T) {
	cmd, ok, err := ParseLine(1, "type  hello  world ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, " hello  world ", cmd.Text)

	cmd, _, err = ParseLine(2, "text 10 20 Good morning")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "20"}, cmd.Args)
	assert.Equal(t, "Good morning", cmd.Text)

	cmd, _, err = ParseLine(3, "font   Times New Roman  ")
	require.NoError(t, err)
	assert.Equal(t, "Times New Roman", cmd.Text)

	cmd, _, err = ParseLine(4, "type")
	require.NoError(t, err)
	assert.Empty(t, cmd.Text)
}

func TestCommandString(t *testing.T) {
	cmd, _, err := ParseLine(1, "text 1 2 hi there")
	require.NoError(t, err)
	assert.Equal(t, "text 1 2 hi there", cmd.String())
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "polygon")
	assert.True(t, len(names) > 20)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
	assert.Equal(t, "<x> <y>", Usage("click"))
}

func run(t *testing.T, m *interaction.Machine, store *toolstate.Store, src string) error {
	t.Helper()
	cmds, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	return Run(context.Background(), m, store, cmds)
}

func TestRunRectangleScenario(t *testing.T) {
	m, _, rec := newSession(t)
	err := run(t, m, m.Store(), "tool rectangle\ncolor navy\ndown 10 10\nmove 110 60\nup\n")
	require.NoError(t, err)
	rects := rec.Find("Rect")
	require.Len(t, rects, 1)
	assert.Equal(t, []any{10.0, 10.0, 100.0, 50.0}, rects[0].Args)
	assert.Equal(t, "#000080", rec.State().StrokeStyle)
}

func TestRunTextScenario(t *testing.T) {
	m, store, rec := newSession(t)
	err := run(t, m, store, "tool text\nclick 50 50\ntype H\ntype Hi\nbackspace\nenter\n")
	require.NoError(t, err)
	fills := rec.Find("FillText")
	require.Len(t, fills, 3)
	assert.Equal(t, "H", fills[0].Args[0])
	assert.Equal(t, "Hi", fills[1].Args[0])
	assert.Equal(t, "H", fills[2].Args[0])
	assert.Equal(t, interaction.Idle, m.Mode())
}

func TestRunStyleCommands(t *testing.T) {
	m, store, _ := newSession(t)
	err := run(t, m, store, "size 12\nfontsize 30\nfont comic sans ms\nbold on\nitalic yes\nunderline off\ncolor #0f0\n")
	require.NoError(t, err)
	st := store.State()
	assert.Equal(t, 12, st.BrushSize)
	assert.Equal(t, 30, st.FontSize)
	assert.Equal(t, "Comic Sans MS", st.Font)
	assert.True(t, st.Bold)
	assert.True(t, st.Italic)
	assert.False(t, st.Underline)
	assert.Equal(t, "#00ff00", st.Color)
}

func TestRunDirectPrimitives(t *testing.T) {
	m, store, rec := newSession(t)
	src := strings.Join([]string{
		"line 0 0 10 10 3",
		"rect 5 5 10 10 fill",
		"circle 50 50 20",
		"ellipse 80 80 10 5 0.5",
		"polygon 1 1 20 1 20 20 fill",
		"text 10 100 hello",
		"erase 0 0 5 5",
		"dash 4 2",
		"alpha 0.5",
	}, "\n")
	require.NoError(t, run(t, m, store, src))

	assert.Equal(t, 3.0, rec.Find("SetLineWidth")[0].Args[0])
	assert.Len(t, rec.Find("Fill"), 2)
	assert.Len(t, rec.Find("Arc"), 1)
	assert.Len(t, rec.Find("Ellipse"), 1)
	assert.Equal(t, "hello", rec.Find("FillText")[0].Args[0])
	assert.Len(t, rec.Find("ClearRect"), 1)
	assert.Equal(t, []float64{4, 2}, rec.State().LineDash)
	assert.Equal(t, 0.5, rec.State().GlobalAlpha)

	require.NoError(t, run(t, m, store, "dash\nalpha reset\n"))
	assert.Empty(t, rec.State().LineDash)
	assert.Equal(t, 1.0, rec.State().GlobalAlpha)
}

func TestRunResize(t *testing.T) {
	m, store, rec := newSession(t)
	require.NoError(t, run(t, m, store, "resize 320 240\n"))
	assert.Equal(t, 320, rec.Width())
	assert.Equal(t, 240, rec.Height())
}

func TestRunReportsLine(t *testing.T) {
	m, store, _ := newSession(t)
	err := run(t, m, store, "up\ncolor nosuchcolor\n")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "line 2: color:"), err.Error())

	err = run(t, m, store, "font Wingdings\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown font family")

	err = run(t, m, store, "tool spray\n")
	require.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	m, store, rec := newSession(t)
	cmds, err := Parse(strings.NewReader("line 0 0 5 5\n"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Run(ctx, m, store, cmds)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.Ops)
}

func TestParseSwitch(t *testing.T) {
	on, err := ParseSwitch("ON")
	require.NoError(t, err)
	assert.True(t, on)
	off, err := ParseSwitch("0")
	require.NoError(t, err)
	assert.False(t, off)
	_, err = ParseSwitch("perhaps")
	assert.Error(t, err)
}

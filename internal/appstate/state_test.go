package appstate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/interaction"
	"github.com/example/chalkboard/internal/render"
	"github.com/example/chalkboard/internal/toolstate"
)

func TestHandlersSaveAndExport(t *testing.T) {
	dir := t.TempDir()
	surface := canvas.NewRaster(30, 20)
	render.DrawRectangle(surface, 2, 2, 10, 10, "#ff0000", true)
	m := interaction.New(toolstate.New(), interaction.WithLogger(quietLog()), interaction.WithSurface(surface))
	t.Cleanup(m.Close)

	a := New(m, WithOutput(filepath.Join(dir, "board.png")), WithLogger(quietLog()))
	h := a.Handlers()

	msg, err := h.Save()
	require.NoError(t, err)
	assert.Equal(t, "saved "+filepath.Join(dir, "board.png"), msg)
	data, err := os.ReadFile(filepath.Join(dir, "board.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	msg, err = h.Export()
	require.NoError(t, err)
	assert.Contains(t, msg, "board.pdf")
	data, err = os.ReadFile(filepath.Join(dir, "board.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestHandlersWithoutSurface(t *testing.T) {
	m := interaction.New(toolstate.New(), interaction.WithLogger(quietLog()))
	t.Cleanup(m.Close)
	a := New(m, WithOutput(filepath.Join(t.TempDir(), "x.png")))
	_, err := a.Handlers().Save()
	assert.Error(t, err)
	_, err = a.Handlers().Export()
	assert.Error(t, err)
}

func TestPDFPath(t *testing.T) {
	a := New(nil, WithOutput("out/board.png"))
	assert.Equal(t, "out/board.pdf", a.pdfPath())
	a = New(nil, WithOutput("out/board.png"), WithPDFOutput("other.pdf"))
	assert.Equal(t, "other.pdf", a.pdfPath())
}

func TestNotifyChangedNeverBlocks(t *testing.T) {
	a := New(nil)
	a.NotifyChanged()
	a.NotifyChanged()
	assert.Len(t, a.updateCh, 1)
}

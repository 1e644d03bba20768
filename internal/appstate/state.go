// Package appstate runs the drawing window: a toolbar, the drawing surface
// and a shortcut bar on a shiny window.
package appstate

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/chalkboard/internal/clipboard"
	"github.com/example/chalkboard/internal/export"
	"github.com/example/chalkboard/internal/interaction"
	"github.com/example/chalkboard/internal/notify"
	"github.com/example/chalkboard/internal/theme"
	"github.com/example/chalkboard/internal/toolstate"
)

// AppState holds the window configuration and the session it draws into.
type AppState struct {
	Machine   *interaction.Machine
	Theme     *theme.Theme
	Width     int
	Height    int
	Output    string
	PDFOutput string
	Export    export.Options
	Notifier  *notify.Notifier

	log      *logrus.Entry
	updateCh chan struct{}

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTheme sets the chrome colors.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithSize sets the initial window size in pixels.
func WithSize(w, h int) Option { return func(a *AppState) { a.Width, a.Height = w, h } }

// WithOutput sets the PNG path used by save.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithPDFOutput sets the PDF path used by export. By default it is the PNG
// output with a .pdf extension.
func WithPDFOutput(out string) Option { return func(a *AppState) { a.PDFOutput = out } }

// WithExportOptions sets shadow options applied when saving.
func WithExportOptions(o export.Options) Option { return func(a *AppState) { a.Export = o } }

// WithNotifier sets the desktop notifier for save, copy and export.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithLogger sets the logger entry.
func WithLogger(l *logrus.Entry) Option { return func(a *AppState) { a.log = l } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState drawing through m.
func New(m *interaction.Machine, opts ...Option) *AppState {
	a := &AppState{
		Machine:  m,
		Width:    1024,
		Height:   768,
		Output:   "chalkboard.png",
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.log == nil {
		a.log = logrus.WithField("component", "window")
	}
	return a
}

// NotifyChanged requests a repaint. It is safe to call from any goroutine.
func (a *AppState) NotifyChanged() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

func (a *AppState) pdfPath() string {
	if a.PDFOutput != "" {
		return a.PDFOutput
	}
	return strings.TrimSuffix(a.Output, filepath.Ext(a.Output)) + ".pdf"
}

// Handlers returns the save, copy and export actions for the session.
func (a *AppState) Handlers() Handlers {
	return Handlers{
		Save:   a.save,
		Copy:   a.copy,
		Export: a.exportPDF,
	}
}

func (a *AppState) current() (*image.RGBA, error) {
	surface := a.Machine.Surface()
	if surface == nil {
		return nil, fmt.Errorf("no drawing surface")
	}
	return surface.Image(), nil
}

func (a *AppState) save() (string, error) {
	img, err := a.current()
	if err != nil {
		return "", err
	}
	if err := export.Write(a.Output, img, a.Export); err != nil {
		return "", err
	}
	a.Notifier.Save(a.Output)
	return "saved " + a.Output, nil
}

func (a *AppState) copy() (string, error) {
	img, err := a.current()
	if err != nil {
		return "", err
	}
	if err := clipboard.WriteImage(export.Flatten(img, a.Export)); err != nil {
		return "", err
	}
	a.Notifier.Copy("drawing")
	return "copied to clipboard", nil
}

func (a *AppState) exportPDF() (string, error) {
	img, err := a.current()
	if err != nil {
		return "", err
	}
	opts := a.Export
	if opts.Background == nil {
		opts.Background = a.Theme.Paper
	}
	if opts.Title == "" {
		opts.Title = appTitle
	}
	path := a.pdfPath()
	if err := export.Write(path, img, opts); err != nil {
		return "", err
	}
	a.Notifier.Export(path)
	return "exported " + path, nil
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.Width, Height: a.Height, Title: appTitle})
	if err != nil {
		a.log.WithError(err).Error("new window")
		return
	}
	defer w.Release()
	defer a.notifyClose()

	ctrl := NewController(a.Machine, a.Handlers(), a.Width, a.Height, a.log)

	// Store changes only request a repaint. The machine itself is touched on
	// this loop alone.
	unsub := a.Machine.Store().Subscribe(func(_, _ toolstate.State) { a.NotifyChanged() })
	defer unsub()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			ok := drawFrame(ctx, s, w, st, a.log)
			paintMu.Lock()
			paintCancel = nil
			if ok {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			if e.WidthPx > 0 && e.HeightPx > 0 {
				ctrl.Resize(e.WidthPx, e.HeightPx)
			}
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := ctrl.snapshot(a.Theme)
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if ctrl.Mouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if ctrl.Key(e) {
				w.Send(paint.Event{})
			}
			if ctrl.Quit() {
				stopPaint()
				return
			}
		case error:
			a.log.WithError(e).Warn("window event")
		}
	}
}

package main

import (
	"flag"
	"image"

	"github.com/example/chalkboard/internal/appstate"
	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/display"
	"github.com/example/chalkboard/internal/export"
)

const windowMargin = 80

var (
	listMonitorsFn = display.ListMonitors
	fallbackSize   = image.Pt(1024, 768)
)

// windowCmd opens the interactive drawing window.
type windowCmd struct {
	*root
	fs      *flag.FlagSet
	output  string
	pdf     string
	width   int
	height  int
	monitor string
	shadow  bool
}

func parseWindowCmd(args []string, r *root) (*windowCmd, error) {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	w := &windowCmd{root: r, fs: fs}
	fs.Usage = usageFunc(w)
	fs.StringVar(&w.output, "output", export.DefaultName(r.cfg().SaveDir, "", export.FormatPNG), "PNG file written by save")
	fs.StringVar(&w.pdf, "pdf", "", "PDF file written by export (defaults to the output with a .pdf extension)")
	fs.IntVar(&w.width, "width", 0, "window width in pixels (defaults to the monitor size)")
	fs.IntVar(&w.height, "height", 0, "window height in pixels (defaults to the monitor size)")
	fs.StringVar(&w.monitor, "monitor", "", "monitor used to size the window: primary, an index or a name")
	fs.BoolVar(&w.shadow, "shadow", false, "add a drop shadow to saved images")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: w}
	}
	return w, nil
}

func (w *windowCmd) FlagSet() *flag.FlagSet {
	return w.fs
}

// size picks the initial window size: explicit flags first, then the
// selected monitor, then a fixed fallback when no display answers.
func (w *windowCmd) size() image.Point {
	if w.width > 0 && w.height > 0 {
		return image.Pt(w.width, w.height)
	}
	log := w.logger("display")
	monitors, err := listMonitorsFn()
	if err != nil {
		log.WithError(err).Debug("monitor geometry unavailable")
		return fallbackSize
	}
	mon, err := display.FindMonitor(monitors, w.monitor)
	if err != nil {
		log.WithError(err).Warn("monitor not found")
		return fallbackSize
	}
	size := display.Viewport(mon, windowMargin, fallbackSize)
	log.WithField("monitor", mon.String()).Debugf("window size %dx%d", size.X, size.Y)
	return size
}

func (w *windowCmd) Run() error {
	size := w.size()
	m, err := w.newSession(canvas.NewRaster(size.X, size.Y, canvas.WithLogger(w.logger("raster"))))
	if err != nil {
		return err
	}
	defer m.Close()

	app := appstate.New(m,
		appstate.WithTheme(w.theme()),
		appstate.WithSize(size.X, size.Y),
		appstate.WithOutput(w.output),
		appstate.WithPDFOutput(w.pdf),
		appstate.WithExportOptions(export.Options{Shadow: w.shadow}),
		appstate.WithNotifier(w.notifier),
		appstate.WithLogger(w.logger("window")),
	)
	app.Run()
	return nil
}

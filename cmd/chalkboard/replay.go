package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/clipboard"
	"github.com/example/chalkboard/internal/export"
	"github.com/example/chalkboard/internal/script"
)

// replayCmd runs a script headlessly against a fresh session and writes the
// resulting drawing.
type replayCmd struct {
	*root
	fs          *flag.FlagSet
	file        string
	output      string
	width       int
	height      int
	toClipboard bool
	shadow      bool
	paper       bool
	trace       bool
	stdin       io.Reader
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "-", "script file to run, - for stdin")
	fs.StringVar(&c.output, "output", "", "output file, .png or .pdf (defaults to replay.png in the save dir)")
	fs.IntVar(&c.width, "width", 800, "surface width in pixels")
	fs.IntVar(&c.height, "height", 600, "surface height in pixels")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.BoolVar(&c.shadow, "shadow", false, "add a drop shadow around the drawing")
	fs.BoolVar(&c.paper, "paper", false, "paint the theme paper color under the drawing")
	fs.BoolVar(&c.trace, "trace", false, "log every surface call")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && c.file == "-" {
		c.file = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.width < 1 || c.height < 1 {
		return nil, fmt.Errorf("width and height must be positive")
	}
	if c.output == "" && !c.toClipboard {
		c.output = export.DefaultName(r.cfg().SaveDir, "replay", export.FormatPNG)
	}
	return c, nil
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *replayCmd) readScript() ([]script.Command, error) {
	if c.file == "-" {
		return script.Parse(c.stdin)
	}
	f, err := os.Open(c.file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return script.Parse(f)
}

func (c *replayCmd) Run() error {
	cmds, err := c.readScript()
	if err != nil {
		return fmt.Errorf("read script %s: %w", c.file, err)
	}
	log := c.logger("replay")

	raster := canvas.NewRaster(c.width, c.height, canvas.WithLogger(c.logger("raster")))
	var surface canvas.Surface = raster
	if c.trace {
		rec := canvas.NewRecorder(raster)
		rec.OnOp = func(op canvas.Op) {
			log.WithField("args", op.Args).Info(op.Name)
		}
		surface = rec
	}
	m, err := c.newSession(surface)
	if err != nil {
		return err
	}
	defer m.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := script.Run(ctx, m, m.Store(), cmds); err != nil {
		return fmt.Errorf("replay %s: %w", c.file, err)
	}
	log.WithFields(logrus.Fields{"commands": len(cmds), "session": m.Session()}).Debug("script finished")

	opts := export.Options{Shadow: c.shadow, Title: "Chalkboard"}
	if c.paper {
		opts.Background = c.theme().Paper
	}
	img := raster.Image()
	if c.output != "" {
		if err := export.Write(c.output, img, opts); err != nil {
			return fmt.Errorf("write %s: %w", c.output, err)
		}
		saved := c.output
		if abs, err := filepath.Abs(c.output); err == nil {
			saved = abs
		}
		log.WithField("path", saved).Info("saved")
		if export.FormatFor(c.output) == export.FormatPDF {
			c.notifyExport(saved)
		} else {
			c.notifySave(saved)
		}
	}
	if c.toClipboard {
		if err := clipboard.WriteImage(export.Flatten(img, opts)); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		log.Info("copied drawing to clipboard")
		c.notifyCopy("drawing")
	}
	return nil
}

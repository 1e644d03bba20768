package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/clipboard"
	"github.com/example/chalkboard/internal/colors"
	"github.com/example/chalkboard/internal/config"
	"github.com/example/chalkboard/internal/export"
	"github.com/example/chalkboard/internal/fonts"
	"github.com/example/chalkboard/internal/render"
)

// drawCmd applies a single primitive to a PNG file, a clipboard image or a
// blank canvas.
type drawCmd struct {
	*root
	fs *flag.FlagSet

	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	width         int
	height        int
	colorSpec     string
	color         string
	lineWidth     float64
	fill          bool
	font          string
	fontSize      float64
	bold          bool
	italic        bool
	underline     bool
	dashSpec      string
	dash          []float64
	alpha         float64

	shape  string
	coords []float64
	text   string
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

var drawFlagNames = map[string]struct{}{
	"file":           {},
	"output":         {},
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"width":          {},
	"height":         {},
	"color":          {},
	"line-width":     {},
	"fill":           {},
	"font":           {},
	"font-size":      {},
	"bold":           {},
	"italic":         {},
	"underline":      {},
	"dash":           {},
	"alpha":          {},
}

var drawBoolFlags = map[string]struct{}{
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"fill":           {},
	"bold":           {},
	"italic":         {},
	"underline":      {},
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	st := r.cfg()
	fs.StringVar(&d.file, "file", "", "input PNG file (a blank canvas when omitted)")
	fs.StringVar(&d.output, "output", "", "output file path, .png or .pdf (defaults to the input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.IntVar(&d.width, "width", 800, "blank canvas width in pixels")
	fs.IntVar(&d.height, "height", 600, "blank canvas height in pixels")
	fs.StringVar(&d.colorSpec, "color", firstNonEmpty(st.Color, "black"), "stroke or fill color name or hex value")
	fs.Float64Var(&d.lineWidth, "line-width", float64(firstPositive(st.BrushSize, 2)), "stroke width in pixels")
	fs.BoolVar(&d.fill, "fill", false, "fill the shape instead of stroking it")
	fs.StringVar(&d.font, "font", firstNonEmpty(st.Font, fonts.DefaultFamily), "font family for text")
	fs.Float64Var(&d.fontSize, "font-size", float64(firstPositive(st.FontSize, fonts.DefaultSize)), "text size in pixels")
	fs.BoolVar(&d.bold, "bold", st.Bold, "bold text")
	fs.BoolVar(&d.italic, "italic", st.Italic, "italic text")
	fs.BoolVar(&d.underline, "underline", st.Underline, "underline text")
	fs.StringVar(&d.dashSpec, "dash", "", "comma separated dash segments, for example 6,3")
	fs.Float64Var(&d.alpha, "alpha", 1, "opacity between 0 and 1")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.shape = strings.ToLower(positionals[0])
	remaining := positionals[1:]
	switch d.shape {
	case "line", "rect", "erase":
		d.coords, err = expectFloats(remaining, 4, d.shape)
	case "circle":
		d.coords, err = expectFloats(remaining, 3, d.shape)
	case "ellipse":
		if len(remaining) == 4 {
			remaining = append(remaining, "0")
		}
		d.coords, err = expectFloats(remaining, 5, d.shape)
	case "polygon":
		if len(remaining) < 6 || len(remaining)%2 != 0 {
			return nil, fmt.Errorf("polygon requires at least three x y pairs")
		}
		d.coords, err = expectFloats(remaining, len(remaining), d.shape)
	case "text":
		if len(remaining) < 3 {
			return nil, fmt.Errorf("text requires x y and content")
		}
		d.coords, err = expectFloats(remaining[:2], 2, d.shape)
		d.text = strings.Join(remaining[2:], " ")
		if strings.TrimSpace(d.text) == "" {
			return nil, fmt.Errorf("text content cannot be empty")
		}
	default:
		return nil, fmt.Errorf("unsupported shape %q", d.shape)
	}
	if err != nil {
		return nil, err
	}

	if d.color, err = colors.Parse(d.colorSpec); err != nil {
		return nil, err
	}
	family, ok := fonts.Lookup(d.font)
	if !ok {
		return nil, fmt.Errorf("unknown font family %q", d.font)
	}
	d.font = family
	if d.dash, err = parseDash(d.dashSpec); err != nil {
		return nil, err
	}
	if d.alpha < 0 || d.alpha > 1 {
		return nil, fmt.Errorf("alpha must be between 0 and 1")
	}
	d.lineWidth = min(max(d.lineWidth, config.MinBrushSize), config.MaxBrushSize)
	d.fontSize = min(max(d.fontSize, config.MinFontSize), config.MaxFontSize)

	if d.output == "" {
		switch {
		case d.file != "":
			d.output = d.file
		case d.fromClipboard:
			return nil, fmt.Errorf("output file is required when reading from the clipboard")
		case !d.toClipboard:
			return nil, fmt.Errorf("output file is required when drawing on a blank canvas")
		}
	}
	if d.file != "" && d.fromClipboard {
		return nil, fmt.Errorf("-file and -from-clipboard cannot be combined")
	}
	return d, nil
}

func (d *drawCmd) loadSurface() (*canvas.Raster, error) {
	opt := canvas.WithLogger(d.logger("raster"))
	switch {
	case d.fromClipboard:
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return canvas.NewRasterFromImage(export.ToRGBA(img), opt), nil
	case d.file != "":
		img, err := export.ReadPNG(d.file)
		if err != nil {
			return nil, err
		}
		return canvas.NewRasterFromImage(img, opt), nil
	}
	return canvas.NewRaster(d.width, d.height, opt), nil
}

// apply draws the parsed shape onto s with the style flags.
func (d *drawCmd) apply(s canvas.Surface) {
	if d.dash != nil {
		render.SetLineDash(s, d.dash)
	}
	render.SetGlobalAlpha(s, d.alpha)
	s.SetLineWidth(d.lineWidth)

	c := d.coords
	switch d.shape {
	case "line":
		render.StrokeLine(s, c[0], c[1], c[2], c[3], d.color, d.lineWidth)
	case "rect":
		render.DrawRectangle(s, c[0], c[1], c[2], c[3], d.color, d.fill)
	case "circle":
		render.DrawCircle(s, c[0], c[1], c[2], d.color, d.fill)
	case "ellipse":
		render.DrawEllipse(s, c[0], c[1], c[2], c[3], c[4], d.color, d.fill)
	case "polygon":
		pts := make([]canvas.Point, 0, len(c)/2)
		for i := 0; i+1 < len(c); i += 2 {
			pts = append(pts, canvas.Point{X: c[i], Y: c[i+1]})
		}
		render.DrawPolygon(s, pts, d.color, d.fill)
	case "text":
		render.DrawText(s, d.text, c[0], c[1], d.color, d.fontSize, d.font, d.bold, d.italic, d.underline)
	case "erase":
		render.EraseArea(s, c[0], c[1], c[2], c[3])
	}
	render.ResetGlobalAlpha(s)
	render.ResetLineDash(s)
}

func (d *drawCmd) Run() error {
	surface, err := d.loadSurface()
	if err != nil {
		return err
	}
	d.apply(surface)
	img := surface.Image()
	log := d.logger("draw")

	if d.output != "" {
		if err := export.Write(d.output, img, export.Options{Title: "Chalkboard"}); err != nil {
			return err
		}
		saved := d.output
		if abs, err := filepath.Abs(d.output); err == nil {
			saved = abs
		}
		log.WithField("path", saved).Info("saved")
		if export.FormatFor(saved) == export.FormatPDF {
			d.notifyExport(saved)
		} else {
			d.notifySave(saved)
		}
	}
	if d.toClipboard {
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(d.output)
		if d.output == "" {
			detail = "drawing"
		}
		log.Infof("copied %s to clipboard", detail)
		d.notifyCopy(detail)
	}
	return nil
}

func expectFloats(args []string, n int, shape string) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d numeric arguments", shape, n)
	}
	vals := make([]float64, n)
	for i, raw := range args {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func parseDash(spec string) ([]float64, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var out []float64
	for _, part := range strings.Split(spec, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid dash segment %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			// Negative coordinates look like flags.
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}

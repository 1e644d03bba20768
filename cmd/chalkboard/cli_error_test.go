package main

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/chalkboard/internal/display"
	"github.com/example/chalkboard/internal/export"
	"github.com/example/chalkboard/internal/script"
)

func TestParseDrawClipboardRequiresOutput(t *testing.T) {
	_, err := parseDrawCmd([]string{"-from-clipboard", "line", "0", "0", "1", "1"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "output file is required when reading from the clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawBlankCanvasRequiresOutput(t *testing.T) {
	_, err := parseDrawCmd([]string{"rect", "0", "0", "10", "10"}, nil)
	if err == nil || !strings.Contains(err.Error(), "blank canvas") {
		t.Fatalf("expected blank canvas error, got %v", err)
	}
}

func TestParseDrawRejectsBadShapes(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-output", "x.png", "star", "1", "2"}, "unsupported shape"},
		{[]string{"-output", "x.png", "line", "1", "2", "3"}, "requires 4 numeric arguments"},
		{[]string{"-output", "x.png", "circle", "1", "a", "3"}, "invalid number"},
		{[]string{"-output", "x.png", "polygon", "0", "0", "5", "5"}, "at least three"},
		{[]string{"-output", "x.png", "text", "1", "2"}, "requires x y and content"},
		{[]string{"-output", "x.png", "-color", "nope", "rect", "0", "0", "1", "1"}, "nope"},
		{[]string{"-output", "x.png", "-font", "Wingdings", "text", "1", "2", "hi"}, "unknown font family"},
		{[]string{"-output", "x.png", "-alpha", "2", "rect", "0", "0", "1", "1"}, "alpha"},
		{[]string{"-output", "x.png", "-dash", "4,x", "rect", "0", "0", "1", "1"}, "dash"},
		{[]string{"-output"}, "requires a value"},
	}
	for _, tc := range cases {
		_, err := parseDrawCmd(tc.args, nil)
		if err == nil {
			t.Fatalf("%v: expected error", tc.args)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%v: expected error to mention %q, got %v", tc.args, tc.want, err)
		}
	}
}

func TestParseDrawFlagsAnywhere(t *testing.T) {
	d, err := parseDrawCmd([]string{"rect", "-10", "5", "-output", "out.png", "20", "30", "--fill", "-color=navy"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.output != "out.png" || !d.fill || d.color != "#000080" {
		t.Fatalf("flags not applied: output=%q fill=%v color=%q", d.output, d.fill, d.color)
	}
	want := []float64{-10, 5, 20, 30}
	for i, v := range want {
		if d.coords[i] != v {
			t.Fatalf("coords = %v, want %v", d.coords, want)
		}
	}
}

func TestParseDrawEllipseDefaultsRotation(t *testing.T) {
	d, err := parseDrawCmd([]string{"-output", "x.png", "ellipse", "10", "10", "5", "3"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.coords) != 5 || d.coords[4] != 0 {
		t.Fatalf("coords = %v", d.coords)
	}
}

func TestParseDrawClampsSizes(t *testing.T) {
	d, err := parseDrawCmd([]string{"-output", "x.png", "-line-width", "500", "-font-size", "2", "text", "1", "2", "hi", "there"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.lineWidth != 50 || d.fontSize != 8 {
		t.Fatalf("lineWidth=%v fontSize=%v", d.lineWidth, d.fontSize)
	}
	if d.text != "hi there" {
		t.Fatalf("text = %q", d.text)
	}
}

func TestDrawRunWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rect.png")
	d, err := parseDrawCmd([]string{"-width", "40", "-height", "30", "-output", out, "-fill", "-color", "red", "rect", "5", "5", "10", "10"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := export.ReadPNG(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if c := img.RGBAAt(10, 10); c.R != 255 || c.A != 255 {
		t.Fatalf("expected red inside the rectangle, got %v", c)
	}
	if c := img.RGBAAt(30, 25); c.A != 0 {
		t.Fatalf("expected transparency outside, got %v", c)
	}
}

func TestDrawRunMissingFile(t *testing.T) {
	d, err := parseDrawCmd([]string{"-file", filepath.Join(t.TempDir(), "missing.png"), "line", "0", "0", "1", "1"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := d.Run(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReplayWritesOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "board.script")
	body := "tool rectangle\ncolor navy\ndown 10 10\nmove 30 30\nup\n"
	if err := os.WriteFile(src, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "board.png")
	c, err := parseReplayCmd([]string{"-file", src, "-width", "50", "-height", "40", "-output", out}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := export.ReadPNG(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 40 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if c := img.RGBAAt(10, 20); c.A == 0 {
		t.Fatalf("expected the rectangle edge at (10,20)")
	}
}

func TestReplayReportsScriptErrors(t *testing.T) {
	c, err := parseReplayCmd([]string{"-output", filepath.Join(t.TempDir(), "x.png")}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c.stdin = strings.NewReader("tool rectangle\nwobble 1 2\n")
	err = c.Run()
	if !errors.Is(err, script.ErrUnknownCommand) {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line number in %v", err)
	}
}

func TestReplayRejectsEmptySize(t *testing.T) {
	if _, err := parseReplayCmd([]string{"-width", "0"}, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestInteractiveSession(t *testing.T) {
	dir := t.TempDir()
	i, err := parseInteractiveCmd([]string{"-width", "40", "-height", "40"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var stdout, stderr bytes.Buffer
	i.stdout, i.stderr = &stdout, &stderr
	png := filepath.Join(dir, "a.png")
	pdf := filepath.Join(dir, "a.pdf")
	i.stdin = strings.NewReader(strings.Join([]string{
		"tool circle",
		"down 20 20",
		"move 30 20",
		"up",
		"bogus",
		"save " + png,
		"export " + pdf,
		"exit",
		"save " + filepath.Join(dir, "never.png"),
	}, "\n"))
	if err := i.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr.String(), "unknown command") {
		t.Fatalf("expected the bogus line to be reported, stderr=%q", stderr.String())
	}
	for _, p := range []string{png, pdf} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "never.png")); err == nil {
		t.Fatalf("commands after exit must not run")
	}
}

func TestInteractiveImmediateModeStopsOnError(t *testing.T) {
	i, err := parseInteractiveCmd([]string{"-e", "tool text", "-e", "size x"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	i.stdout = &bytes.Buffer{}
	if err := i.Run(); err == nil {
		t.Fatalf("expected error from the second command")
	}
}

func TestWindowSize(t *testing.T) {
	original := listMonitorsFn
	t.Cleanup(func() { listMonitorsFn = original })

	listMonitorsFn = func() ([]display.MonitorInfo, error) { return nil, errors.New("no display") }
	w := &windowCmd{}
	if got := w.size(); got != fallbackSize {
		t.Fatalf("size without display = %v", got)
	}

	listMonitorsFn = func() ([]display.MonitorInfo, error) {
		return []display.MonitorInfo{
			{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 1280, 800)},
			{Index: 1, Name: "HDMI-A-1", Rect: image.Rect(1280, 0, 3840, 1440), Primary: true},
		}, nil
	}
	w = &windowCmd{monitor: "primary"}
	if got, want := w.size(), image.Pt(2560-2*windowMargin, 1440-2*windowMargin); got != want {
		t.Fatalf("size = %v, want %v", got, want)
	}
	w = &windowCmd{monitor: "hdmi-b"}
	if got := w.size(); got != fallbackSize {
		t.Fatalf("unknown monitor should fall back, got %v", got)
	}
	w = &windowCmd{width: 300, height: 200}
	if got := w.size(); got != image.Pt(300, 200) {
		t.Fatalf("explicit size = %v", got)
	}
}

func TestRootRequiresCommand(t *testing.T) {
	r := newRoot()
	var uerr *UsageError
	if err := r.Run(nil); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "Commands:") {
		t.Fatalf("help text missing command list: %q", uerr.Error())
	}
}

func TestRootRejectsBadLogLevel(t *testing.T) {
	r := newRoot()
	if err := r.Run([]string{"-log-level", "loud", "version"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUsageTemplatesRender(t *testing.T) {
	cmds := []HelpData{
		&root{},
		&windowCmd{},
		&replayCmd{},
		&interactiveCmd{},
		&drawCmd{},
		&configCmd{},
		&versionCmd{},
		&listCmd{name: "fonts"},
		&listCmd{name: "colors"},
		&listCmd{name: "tools"},
		&listCmd{name: "monitors"},
	}
	for _, h := range cmds {
		help := (&UsageError{of: h}).Error()
		if !strings.HasPrefix(help, "Usage: chalkboard") {
			t.Fatalf("%s: unexpected help %q", h.Template(), help)
		}
	}
}

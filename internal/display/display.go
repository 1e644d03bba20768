// Package display reports monitor geometry so the drawing window can size
// its initial viewport.
package display

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ErrNoMonitors is returned when no connected monitor could be found.
var ErrNoMonitors = errors.New("no monitors available")

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

func (m MonitorInfo) String() string {
	primary := ""
	if m.Primary {
		primary = " primary"
	}
	return fmt.Sprintf("%d: %s %dx%d+%d+%d%s", m.Index, m.Name, m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y, primary)
}

// FindMonitor resolves a monitor selector against the provided list. The
// selector is empty, "primary", an index with optional '#', or a name
// fragment.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, ErrNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	switch lower {
	case "":
		return monitors[0], nil
	case "primary":
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(lower, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}

// Viewport returns the window size that fits on mon with margin pixels
// kept free on every side. Without a usable monitor it falls back to the
// given size.
func Viewport(mon MonitorInfo, margin int, fallback image.Point) image.Point {
	w := mon.Rect.Dx() - 2*margin
	h := mon.Rect.Dy() - 2*margin
	if w <= 0 || h <= 0 {
		return fallback
	}
	return image.Pt(w, h)
}

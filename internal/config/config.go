package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/chalkboard/internal/theme"
	"github.com/example/chalkboard/internal/toolstate"
)

// Brush and font size ranges offered by the toolbar.
const (
	MinBrushSize = 1
	MaxBrushSize = 50
	MinFontSize  = 8
	MaxFontSize  = 72
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Copy   bool
	Export bool
}

// Config holds the application configuration.
type Config struct {
	Theme    string
	SaveDir  string
	LogLevel string

	// Initial tool state. Zero values leave the store defaults alone.
	Tool      string
	Color     string
	BrushSize int
	FontSize  int
	Font      string
	Bold      bool
	Italic    bool
	Underline bool

	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Themes: make(map[string]*theme.Theme),
	}
}

// ToolOptions converts the tool settings into store options. Sizes are
// clamped to the toolbar ranges.
func (c *Config) ToolOptions() ([]toolstate.Option, error) {
	var opts []toolstate.Option
	if c.Tool != "" {
		t, err := toolstate.ParseTool(c.Tool)
		if err != nil {
			return nil, fmt.Errorf("config tool: %w", err)
		}
		opts = append(opts, toolstate.WithTool(t))
	}
	if c.Color != "" {
		opts = append(opts, toolstate.WithColor(c.Color))
	}
	if c.BrushSize > 0 {
		opts = append(opts, toolstate.WithBrushSize(clamp(c.BrushSize, MinBrushSize, MaxBrushSize)))
	}
	if c.FontSize > 0 {
		opts = append(opts, toolstate.WithFontSize(clamp(c.FontSize, MinFontSize, MaxFontSize)))
	}
	if c.Font != "" {
		opts = append(opts, toolstate.WithFont(c.Font))
	}
	if c.Bold {
		opts = append(opts, toolstate.WithBold(true))
	}
	if c.Italic {
		opts = append(opts, toolstate.WithItalic(true))
	}
	if c.Underline {
		opts = append(opts, toolstate.WithUnderline(true))
	}
	return opts, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	root := []struct {
		key, value string
	}{
		{"theme", c.Theme},
		{"save_dir", c.SaveDir},
		{"log_level", c.LogLevel},
		{"tool", c.Tool},
		{"color", c.Color},
		{"font", c.Font},
	}
	for _, kv := range root {
		if kv.value != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv.key, kv.value)
		}
	}
	if c.BrushSize > 0 {
		fmt.Fprintf(&sb, "brush_size = %d\n", c.BrushSize)
	}
	if c.FontSize > 0 {
		fmt.Fprintf(&sb, "font_size = %d\n", c.FontSize)
	}
	fmt.Fprintf(&sb, "bold = %v\n", c.Bold)
	fmt.Fprintf(&sb, "italic = %v\n", c.Italic)
	fmt.Fprintf(&sb, "underline = %v\n", c.Underline)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		sb.WriteString(c.Themes[name].String())
		sb.WriteString("\n")
	}

	return sb.String()
}

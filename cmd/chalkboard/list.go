package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/chalkboard/internal/colors"
	"github.com/example/chalkboard/internal/fonts"
	"github.com/example/chalkboard/internal/script"
	"github.com/example/chalkboard/internal/toolstate"
)

// listCmd prints one of the static listings. The listing itself is chosen
// by the parse function.
type listCmd struct {
	*root
	fs       *flag.FlagSet
	name     string
	stdout   io.Writer
	describe func(*listCmd) error
}

func parseListCmd(name string, args []string, r *root, describe func(*listCmd) error) (*listCmd, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cmd := &listCmd{root: r, fs: fs, name: name, stdout: os.Stdout, describe: describe}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *listCmd) Run() error {
	return c.describe(c)
}

func (c *listCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *listCmd) Template() string {
	return c.name + ".txt"
}

func parseFontsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("fonts", args, r, listFonts)
}

func parseColorsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("colors", args, r, listColors)
}

func parseToolsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("tools", args, r, listTools)
}

func parseMonitorsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("monitors", args, r, listMonitors)
}

func listFonts(c *listCmd) error {
	fmt.Fprintln(c.stdout, "available font families (* marks the default family):")
	for _, family := range fonts.Families() {
		marker := " "
		if family == fonts.DefaultFamily {
			marker = "*"
		}
		st := fonts.Style{Family: family, Size: fonts.DefaultSize}
		fmt.Fprintf(c.stdout, "%s %-16s rendered with %s\n", marker, family, fonts.VariantName(st))
	}
	fmt.Fprintf(c.stdout, "sizes: %d to %d px\n", fonts.MinSize, fonts.MaxSize)
	return nil
}

func listColors(c *listCmd) error {
	palette := colors.Palette()
	if len(palette) == 0 {
		fmt.Fprintln(c.stdout, "no colors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available palette colors (* marks the default color):")
	defaultIdx := colors.Index(toolstate.Default().Color)
	for idx, entry := range palette {
		marker := " "
		if idx == defaultIdx {
			marker = "*"
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.stdout, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, entry.Hex(), block)
	}
	fmt.Fprintln(c.stdout, "any SVG color name or #rgb, #rrggbb, #rrggbbaa value is also accepted")
	return nil
}

func listTools(c *listCmd) error {
	fmt.Fprintln(c.stdout, "available tools (* marks the default tool):")
	def := toolstate.Default().Tool
	for _, t := range toolstate.Tools() {
		marker := " "
		if t == def {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %s\n", marker, t)
	}
	fmt.Fprintln(c.stdout, "script commands:")
	for _, name := range script.Names() {
		fmt.Fprintf(c.stdout, "  %-10s %s\n", name, script.Usage(name))
	}
	return nil
}

func listMonitors(c *listCmd) error {
	monitors, err := listMonitorsFn()
	if err != nil {
		return fmt.Errorf("list monitors: %w", err)
	}
	if len(monitors) == 0 {
		fmt.Fprintln(c.stdout, "no monitors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available monitors:")
	for _, m := range monitors {
		fmt.Fprintf(c.stdout, "  %s\n", m)
	}
	fmt.Fprintln(c.stdout, "selectors: primary, <index>, #<index>, name substring")
	return nil
}

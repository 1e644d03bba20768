// Package script reads and runs the line-oriented event language used by the
// replay and interactive commands.
//
// One command per line; blank lines and lines starting with # are skipped.
//
//	tool rectangle
//	color navy
//	down 10 10
//	move 110 60
//	up
//	click 50 50
//	type Hi
//	enter
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// ErrUnknownCommand is returned for a command name the language lacks.
var ErrUnknownCommand = errors.New("unknown command")

// Command is one parsed line. Text holds free text for type, font and text.
type Command struct {
	Line int
	Name string
	Args []string
	Text string
}

func (c Command) String() string {
	parts := append([]string{c.Name}, c.Args...)
	if c.Text != "" {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, " ")
}

// usage is the argument synopsis per command, shown by help listings.
var usage = map[string]string{
	"tool":      "brush|eraser|rectangle|circle|text",
	"color":     "<hex|name>",
	"size":      "<n>",
	"font":      "<family>",
	"fontsize":  "<n>",
	"bold":      "on|off",
	"italic":    "on|off",
	"underline": "on|off",
	"down":      "<x> <y>",
	"move":      "<x> <y>",
	"up":        "",
	"leave":     "",
	"click":     "<x> <y>",
	"type":      "<text>",
	"backspace": "",
	"enter":     "",
	"resize":    "<w> <h>",
	"line":      "<x1> <y1> <x2> <y2> [width]",
	"rect":      "<x> <y> <w> <h> [fill]",
	"circle":    "<x> <y> <r> [fill]",
	"ellipse":   "<x> <y> <rx> <ry> [rotation] [fill]",
	"polygon":   "<x> <y> <x> <y> <x> <y>... [fill]",
	"text":      "<x> <y> <text>",
	"erase":     "<x> <y> <w> <h>",
	"dash":      "[segment...]",
	"alpha":     "<0..1>|reset",
}

// Names lists the commands of the language in sorted order.
func Names() []string {
	out := make([]string, 0, len(usage))
	for n := range usage {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Usage returns the argument synopsis of name.
func Usage(name string) string { return usage[name] }

// Parse reads every command from r.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		cmd, ok, err := ParseLine(n, sc.Text())
		if err != nil {
			return nil, err
		}
		if ok {
			cmds = append(cmds, cmd)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

// ParseLine parses line number n. ok is false for blank and comment lines.
func ParseLine(n int, line string) (cmd Command, ok bool, err error) {
	if t := strings.TrimSpace(line); t == "" || strings.HasPrefix(t, "#") {
		return Command{}, false, nil
	}
	word, rest := cutField(line)
	name := strings.ToLower(word)
	if _, known := usage[name]; !known {
		return Command{}, false, fmt.Errorf("line %d: %w %q", n, ErrUnknownCommand, word)
	}
	cmd = Command{Line: n, Name: name}
	switch name {
	case "type":
		// A single separator is dropped; other spacing is typed text.
		cmd.Text = strings.TrimPrefix(strings.TrimPrefix(rest, " "), "\t")
	case "font":
		cmd.Text = strings.TrimSpace(rest)
	case "text":
		x, r := cutField(rest)
		y, r := cutField(r)
		cmd.Args = nonEmpty(x, y)
		cmd.Text = strings.TrimSpace(r)
	default:
		cmd.Args = strings.Fields(rest)
	}
	if err := validate(cmd); err != nil {
		return Command{}, false, fmt.Errorf("line %d: %s: %w", n, name, err)
	}
	return cmd, true, nil
}

func validate(c Command) error {
	a := c.Args
	switch c.Name {
	case "tool", "color":
		return count(a, 1, 1)
	case "bold", "italic", "underline":
		if err := count(a, 1, 1); err != nil {
			return err
		}
		_, err := ParseSwitch(a[0])
		return err
	case "size", "fontsize":
		return numbers(a, 1, 1)
	case "font":
		if c.Text == "" {
			return errors.New("missing family")
		}
	case "down", "move", "click", "resize":
		return numbers(a, 2, 2)
	case "up", "leave", "backspace", "enter":
		return count(a, 0, 0)
	case "line":
		return numbers(a, 4, 5)
	case "rect", "erase":
		if c.Name == "rect" {
			a = trimFill(a)
		}
		return numbers(a, 4, 4)
	case "circle":
		return numbers(trimFill(a), 3, 3)
	case "ellipse":
		return numbers(trimFill(a), 4, 5)
	case "polygon":
		a = trimFill(a)
		if len(a)%2 != 0 {
			return errors.New("coordinates must come in pairs")
		}
		return numbers(a, 6, -1)
	case "text":
		if err := numbers(a, 2, 2); err != nil {
			return err
		}
		if c.Text == "" {
			return errors.New("missing text")
		}
	case "dash":
		return numbers(a, 0, -1)
	case "alpha":
		if err := count(a, 1, 1); err != nil {
			return err
		}
		if a[0] != "reset" {
			return numbers(a, 1, 1)
		}
	}
	return nil
}

// ParseSwitch reads on/off style values.
func ParseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func count(a []string, lo, hi int) error {
	if len(a) < lo || (hi >= 0 && len(a) > hi) {
		return fmt.Errorf("wrong number of arguments (%d)", len(a))
	}
	return nil
}

func numbers(a []string, lo, hi int) error {
	if err := count(a, lo, hi); err != nil {
		return err
	}
	for _, s := range a {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
	}
	return nil
}

func trimFill(a []string) []string {
	if n := len(a); n > 0 && strings.EqualFold(a[n-1], "fill") {
		return a[:n-1]
	}
	return a
}

func hasFill(a []string) bool { return len(trimFill(a)) != len(a) }

func floats(a []string) []float64 {
	out := make([]float64, len(a))
	for i, s := range a {
		out[i], _ = strconv.ParseFloat(s, 64)
	}
	return out
}

// cutField splits off the first whitespace-separated word of s.
func cutField(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func nonEmpty(ss ...string) []string {
	var out []string
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Package fonts describes the text styles offered by the text tool and
// resolves them to rasterizable faces.
package fonts

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultFamily is the family selected when a session starts.
	DefaultFamily = "Arial"
	// DefaultSize is the text size in pixels selected when a session starts.
	DefaultSize = 16
	// MinSize and MaxSize bound the font size slider.
	MinSize = 8
	MaxSize = 72
)

var families = []string{
	"Arial",
	"Helvetica",
	"Times New Roman",
	"Courier",
	"Verdana",
	"Georgia",
	"Palatino",
	"Garamond",
	"Bookman",
	"Comic Sans MS",
	"Trebuchet MS",
	"Arial Black",
	"Impact",
}

// Families returns a copy of the selectable font families in toolbar order.
func Families() []string {
	out := make([]string, len(families))
	copy(out, families)
	return out
}

// Lookup returns the canonical spelling of name and whether it is one of the
// selectable families. Matching ignores case and surrounding space.
func Lookup(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, f := range families {
		if strings.EqualFold(f, name) {
			return f, true
		}
	}
	return name, false
}

// Style is the typed form of a text style.
type Style struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// Default returns the session's initial text style.
func Default() Style {
	return Style{Family: DefaultFamily, Size: DefaultSize}
}

// Descriptor formats the style like a CSS font shorthand, for example
// "italic bold 16px Arial". The italic flag always precedes the bold flag.
func (s Style) Descriptor() string {
	var sb strings.Builder
	if s.Italic {
		sb.WriteString("italic ")
	}
	if s.Bold {
		sb.WriteString("bold ")
	}
	sb.WriteString(strconv.FormatFloat(s.Size, 'f', -1, 64))
	sb.WriteString("px ")
	sb.WriteString(s.Family)
	return sb.String()
}

func (s Style) String() string { return s.Descriptor() }

// ParseDescriptor is the inverse of Style.Descriptor. The bold and italic
// keywords may appear in either order.
func ParseDescriptor(desc string) (Style, error) {
	fields := strings.Fields(desc)
	var st Style
	for i, f := range fields {
		switch strings.ToLower(f) {
		case "italic":
			st.Italic = true
			continue
		case "bold":
			st.Bold = true
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f), "px") {
			return Style{}, fmt.Errorf("font descriptor %q: expected size in px, got %q", desc, f)
		}
		size, err := strconv.ParseFloat(f[:len(f)-2], 64)
		if err != nil {
			return Style{}, fmt.Errorf("font descriptor %q: invalid size: %w", desc, err)
		}
		st.Size = size
		st.Family = strings.Join(fields[i+1:], " ")
		if st.Family == "" {
			return Style{}, fmt.Errorf("font descriptor %q: missing family", desc)
		}
		return st, nil
	}
	return Style{}, fmt.Errorf("font descriptor %q: missing size", desc)
}

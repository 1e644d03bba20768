package fonts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// The named families are not shipped with the binary. Each one maps onto the
// embedded Go fonts by its broad class.
type class int

const (
	classProportional class = iota
	classMonospace
	classHeavy
)

var familyClass = map[string]class{
	"Courier":     classMonospace,
	"Arial Black": classHeavy,
	"Impact":      classHeavy,
}

type variant struct {
	name string
	ttf  []byte
}

func variantFor(s Style) variant {
	family, _ := Lookup(s.Family)
	switch familyClass[family] {
	case classMonospace:
		switch {
		case s.Bold && s.Italic:
			return variant{"gomonobolditalic", gomonobolditalic.TTF}
		case s.Bold:
			return variant{"gomonobold", gomonobold.TTF}
		case s.Italic:
			return variant{"gomonoitalic", gomonoitalic.TTF}
		}
		return variant{"gomono", gomono.TTF}
	case classHeavy:
		switch {
		case s.Bold && s.Italic:
			return variant{"gobolditalic", gobolditalic.TTF}
		case s.Bold:
			return variant{"gobold", gobold.TTF}
		case s.Italic:
			return variant{"gomediumitalic", gomediumitalic.TTF}
		}
		return variant{"gomedium", gomedium.TTF}
	}
	switch {
	case s.Bold && s.Italic:
		return variant{"gobolditalic", gobolditalic.TTF}
	case s.Bold:
		return variant{"gobold", gobold.TTF}
	case s.Italic:
		return variant{"goitalic", goitalic.TTF}
	}
	return variant{"goregular", goregular.TTF}
}

type faceKey struct {
	variant string
	size    float64
}

var (
	sources sync.Map // map[string]*text.FontSource
	faces   sync.Map // map[faceKey]text.Face
)

func sourceFor(v variant) (*text.FontSource, error) {
	if src, ok := sources.Load(v.name); ok {
		return src.(*text.FontSource), nil
	}
	src, err := text.NewFontSource(v.ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", v.name, err)
	}
	actual, _ := sources.LoadOrStore(v.name, src)
	return actual.(*text.FontSource), nil
}

// Face returns the face used to rasterize text in style s. Sizes that are not
// positive fall back to DefaultSize.
func Face(s Style) (text.Face, error) {
	size := s.Size
	if size <= 0 {
		size = DefaultSize
	}
	v := variantFor(s)
	key := faceKey{variant: v.name, size: size}
	if face, ok := faces.Load(key); ok {
		return face.(text.Face), nil
	}
	src, err := sourceFor(v)
	if err != nil {
		return nil, err
	}
	face := src.Face(size)
	actual, _ := faces.LoadOrStore(key, face)
	return actual.(text.Face), nil
}

// VariantName reports which embedded font renders the style. It is shown by
// the fonts listing.
func VariantName(s Style) string {
	return strings.TrimPrefix(variantFor(s).name, "go")
}

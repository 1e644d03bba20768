// Package theme defines the window chrome colors and loads them from theme
// files, the rc config or the embedded defaults.
package theme

import (
	"fmt"
	"image/color"
	"reflect"
	"strings"

	"github.com/example/chalkboard/internal/colors"
)

// Theme defines the color palette for the application UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the surface
	Foreground color.RGBA // Status line text

	// Paper is shown wherever the drawing surface is transparent.
	Paper color.RGBA

	// Toolbar
	ToolbarBackground color.RGBA
	SwatchBorder      color.RGBA
	SwatchSelected    color.RGBA

	// Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonActive          color.RGBA // Selected tool or enabled toggle
	ButtonText            color.RGBA
	ButtonTextActive      color.RGBA
	ButtonBorder          color.RGBA

	// Shortcut bar
	ShortcutBackground color.RGBA
	ShortcutText       color.RGBA

	// Text entry
	Cursor color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{200, 200, 200, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		Paper:                 color.RGBA{255, 255, 255, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		SwatchBorder:          color.RGBA{96, 96, 96, 255},
		SwatchSelected:        color.RGBA{255, 128, 0, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonActive:          color.RGBA{140, 170, 220, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextActive:      color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		ShortcutBackground:    color.RGBA{230, 230, 230, 255},
		ShortcutText:          color.RGBA{40, 40, 40, 255},
		Cursor:                color.RGBA{0, 0, 0, 255},
	}
}

var rgbaType = reflect.TypeOf(color.RGBA{})

// Set assigns the field named key, matched case-insensitively. Unknown keys
// are ignored so newer theme files load on older builds.
func (t *Theme) Set(key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !strings.EqualFold(f.Name, key) || f.Type != rgbaType {
			continue
		}
		col, err := colors.ToRGBA(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil
}

// Fields returns the color fields as key and hex value pairs in declaration
// order.
func (t *Theme) Fields() [][2]string {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	var out [][2]string
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type != rgbaType {
			continue
		}
		c := val.Field(i).Interface().(color.RGBA)
		out = append(out, [2]string{typ.Field(i).Name, strings.ToUpper(colors.Hex(c))})
	}
	return out
}

// String renders the theme in the "Key: #RRGGBB" file format.
func (t *Theme) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", t.Name)
	for _, kv := range t.Fields() {
		fmt.Fprintf(&sb, "%s: %s\n", kv[0], kv[1])
	}
	return sb.String()
}

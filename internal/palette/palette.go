// Package palette maps terminal colour names to RGB values.
package palette

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownColor is returned for names that are neither known nor hex.
var ErrUnknownColor = errors.New("palette: unknown colour")

// xterm defaults for the 16 ANSI colours.
var named = map[string]colorful.Color{
	"black":         {},
	"red":           hex("#cd0000"),
	"green":         hex("#00cd00"),
	"yellow":        hex("#cdcd00"),
	"blue":          hex("#0000ee"),
	"magenta":       hex("#cd00cd"),
	"cyan":          hex("#00cdcd"),
	"gray":          hex("#e5e5e5"),
	"light_gray":    hex("#e5e5e5"),
	"dark_gray":     hex("#7f7f7f"),
	"light_red":     hex("#ff0000"),
	"light_green":   hex("#00ff00"),
	"light_yellow":  hex("#ffff00"),
	"light_blue":    hex("#5c5cff"),
	"light_magenta": hex("#ff00ff"),
	"light_cyan":    hex("#00ffff"),
	"white":         hex("#ffffff"),
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup resolves a colour name ("light_green", "light-green", "Light Green")
// or a "#rrggbb" hex value.
func Lookup(name string) (colorful.Color, error) {
	key := normalize(name)
	if c, ok := named[key]; ok {
		return c, nil
	}
	if strings.HasPrefix(key, "#") {
		c, err := colorful.Hex(key)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		return c, nil
	}
	return colorful.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// Resolve is Lookup with a fallback; ok is false when the fallback was used.
func Resolve(name string, fallback colorful.Color) (colorful.Color, bool) {
	c, err := Lookup(name)
	if err != nil {
		return fallback, false
	}
	return c, true
}

// MustLookup panics on unknown names. Intended for built-in defaults.
func MustLookup(name string) colorful.Color {
	c, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Names returns the known colour names, sorted.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(key)
}

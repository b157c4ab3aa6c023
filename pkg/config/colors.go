package config

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors covers the CSS basic color keywords and a few extended names.
var namedColors = map[string]string{
	"black":     "#000000",
	"silver":    "#c0c0c0",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#d3d3d3",
	"white":     "#ffffff",
	"maroon":    "#800000",
	"red":       "#ff0000",
	"purple":    "#800080",
	"fuchsia":   "#ff00ff",
	"magenta":   "#ff00ff",
	"green":     "#008000",
	"lime":      "#00ff00",
	"olive":     "#808000",
	"yellow":    "#ffff00",
	"navy":      "#000080",
	"blue":      "#0000ff",
	"teal":      "#008080",
	"aqua":      "#00ffff",
	"cyan":      "#00ffff",
	"orange":    "#ffa500",
	"lightblue": "#add8e6",
}

// ParseColor resolves a color name or a #rgb / #rrggbb hex string.
func ParseColor(s string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return colorful.Color{}, fmt.Errorf("empty color")
	}
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	if !strings.HasPrefix(v, "#") {
		return colorful.Color{}, fmt.Errorf("unknown color %q", s)
	}
	if len(v) == 4 {
		v = "#" + strings.Repeat(v[1:2], 2) + strings.Repeat(v[2:3], 2) + strings.Repeat(v[3:4], 2)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// HexColor returns the #rrggbb form of s, or s unchanged if it cannot be parsed.
func HexColor(s string) string {
	c, err := ParseColor(s)
	if err != nil {
		return s
	}
	return c.Hex()
}

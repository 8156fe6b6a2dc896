// Package colormap provides color schemes for visualization.
package colormap

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Colormap maps category indices to colors.
type Colormap interface {
	AtIndex(i int) color.Color
}

// CategoricalColormap provides distinct colors for categories.
type CategoricalColormap struct {
	hex    []string
	colors []color.RGBA
}

// NewCategorical builds a categorical colormap from "#RRGGBB" strings.
// It panics on malformed input; palettes are compile-time constants.
func NewCategorical(hex ...string) CategoricalColormap {
	c := CategoricalColormap{hex: hex, colors: make([]color.RGBA, len(hex))}
	for i, h := range hex {
		rgba, err := ParseHex(h)
		if err != nil {
			panic(err)
		}
		c.colors[i] = rgba
	}
	return c
}

// AtIndex returns color at index i (wraps around).
func (c CategoricalColormap) AtIndex(i int) color.Color {
	return c.colors[wrap(i, len(c.colors))]
}

// HexAt returns the hex form of the color at index i (wraps around).
func (c CategoricalColormap) HexAt(i int) string {
	return c.hex[wrap(i, len(c.hex))]
}

// Len returns the number of distinct colors.
func (c CategoricalColormap) Len() int { return len(c.colors) }

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// ParseHex parses "#RRGGBB" (or "RRGGBB") into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// UCSC is the UCSC Genome Browser palette used for repeat classes.
var UCSC = NewCategorical(
	"#009ADE", "#7CC242", "#F98B2A", "#E4002B",
	"#B7312C", "#E78AC3", "#00A4A6", "#00458A",
)

// Cell background colors keyed by presentation category name.
var Legend = map[string]string{
	"PASSED":     "#009E73",
	"NOT_PASSED": "#D55E00",

	"TRUE":    "#fdb863",
	"FALSE":   "#b2abd2",
	"UNKNOWN": "#D9D9D9",

	"IN_FAMILY": "#f4a582",
	"SINGLE":    "#92c5de",

	"HSA_SPECIFIC":     "#f1b6da",
	"NOT_HSA_SPECIFIC": "#0072B2",

	"NO_REPEAT": "#c7e9c0",
	"OTHER":     "#e6c28a",

	"HIGH": "#BDE131",
	"LOW":  "#FEE08B",

	"CLASS_R": "#1F78B4",
	"CLASS_D": "#A6CEE3",
	"CLASS_I": "#6A3D9A",
	"CLASS_S": "#CAB2D6",
}

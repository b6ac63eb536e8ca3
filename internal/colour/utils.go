// Package colour provides WCAG luminance and contrast calculations.
package colour

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// hexPattern matches a full six digit hex colour with a leading hash.
var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsHex reports whether s is a #rrggbb colour.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// NormaliseHex returns the lower-case form of a #rrggbb colour.
func NormaliseHex(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseHex parses a #rrggbb colour.
// Shorthand (#rgb) and alpha (#rrggbbaa) forms are rejected.
func ParseHex(hex string) (colorful.Color, error) {
	hex = strings.TrimSpace(hex)
	if !IsHex(hex) {
		return colorful.Color{}, fmt.Errorf("invalid hex colour %q: expected #RRGGBB", hex)
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return c, nil
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c colorful.Color) float64 {
	// go-colorful keeps sRGB channels normalised to [0,1].
	r := gammaCorrect(c.R)
	g := gammaCorrect(c.G)
	b := gammaCorrect(c.B)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 colorful.Color) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// HexContrast parses two #rrggbb colours and returns their contrast ratio.
func HexContrast(fg, bg string) (float64, error) {
	fc, err := ParseHex(fg)
	if err != nil {
		return 0, fmt.Errorf("failed to parse foreground: %w", err)
	}
	bc, err := ParseHex(bg)
	if err != nil {
		return 0, fmt.Errorf("failed to parse background: %w", err)
	}
	return ContrastRatio(fc, bc), nil
}

// Package csscolor resolves caller-supplied color strings into RGBA values.
//
// Three literal forms are accepted, with or without a leading '#':
//   - a lowercase CSS color keyword ("lightslategray")
//   - 3 or 6 hex digits ("0fa", "0033AE"), no alpha
//   - 8 hex digits ("EE0033AE"), the last pair being alpha
//
// # Alpha Convention
//
// An alpha of 0 means "no alpha channel needed": the color is painted fully
// opaque. Any alpha above 0 asks for an alpha-aware canvas and is used as the
// opacity of the fill. This is the reverse of the usual "0 = transparent"
// reading and callers must not normalise it away.
package csscolor

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Color is an 8-bit RGBA value. See the package doc for the meaning of A.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// White is the background used when none is configured.
var White = Color{R: 255, G: 255, B: 255}

// HasAlpha reports whether the color asks for an alpha-aware canvas.
func (c Color) HasAlpha() bool {
	return c.A > 0
}

// NRGBA converts the color to a non-premultiplied color suitable for
// filling a canvas.
func (c Color) NRGBA() color.NRGBA {
	a := c.A
	if a == 0 {
		a = 255
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Hex returns the color as "#RRGGBB", or "#RRGGBBAA" when it carries alpha.
func (c Color) Hex() string {
	if c.HasAlpha() {
		return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Parse resolves s into a Color.
//
// Named colors are matched case-sensitively against the lowercase keyword
// table. Anything else must be 3, 6 or 8 hex digits.
func Parse(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")

	hex, ok := names[s]
	if !ok {
		expanded, err := expandHex(s)
		if err != nil {
			return Color{}, err
		}
		hex = expanded
	}

	// go-colorful understands "#rrggbb"; alpha is handled separately.
	c, err := colorful.Hex("#" + hex[:6])
	if err != nil {
		return Color{}, errors.Wrapf(err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	out := Color{R: r, G: g, B: b}

	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, errors.Wrapf(err, "invalid alpha in color %q", s)
		}
		out.A = uint8(a)
	}
	return out, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// expandHex validates a hex literal and expands the 3-digit short form.
func expandHex(s string) (string, error) {
	switch len(s) {
	case 3, 6, 8:
	default:
		return "", errors.Errorf("invalid color %q: expected a CSS name or 3, 6 or 8 hex digits", s)
	}
	for _, ch := range s {
		if !isHexDigit(ch) {
			return "", errors.Errorf("invalid color %q: %q is not a hex digit", s, ch)
		}
	}
	if len(s) == 3 {
		return string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]}), nil
	}
	return s, nil
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

package style

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/tuilad01/excelext/internal/xlsx"
)

// RGB is a background colour given as 0-255 components.
type RGB struct {
	R int `json:"r" yaml:"r"`
	G int `json:"g" yaml:"g"`
	B int `json:"b" yaml:"b"`
}

// Hex returns the colour as RRGGBB.
func (c RGB) Hex() (string, error) {
	for _, v := range []int{c.R, c.G, c.B} {
		if v < 0 || v > 255 {
			return "", fmt.Errorf("%w: rgb component %d out of range 0-255", xlsx.ErrInvalidArgument, v)
		}
	}
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B), nil
}

// Background holds the three ways a fill colour can be given. When more than
// one is set, Hex wins over RGB, and RGB wins over Color.
type Background struct {
	Hex   string
	RGB   *RGB
	Color color.Color
}

// IsZero reports whether no colour is set.
func (b Background) IsZero() bool {
	return b.Hex == "" && b.RGB == nil && b.Color == nil
}

// Resolve returns the winning colour as RRGGBB, or "" when none is set.
func (b Background) Resolve() (string, error) {
	sources := []struct {
		set bool
		hex func() (string, error)
	}{
		{b.Hex != "", func() (string, error) { return ParseHex(b.Hex) }},
		{b.RGB != nil, func() (string, error) { return b.RGB.Hex() }},
		{b.Color != nil, func() (string, error) { return colorHex(b.Color), nil }},
	}
	for _, src := range sources {
		if src.set {
			return src.hex()
		}
	}
	return "", nil
}

// ParseHex normalizes "#RRGGBB", "RRGGBB", "#RGB" or a CSS colour name such
// as "lightblue" to RRGGBB.
func ParseHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return colorHex(c), nil
	}

	h := strings.ToUpper(strings.TrimPrefix(s, "#"))
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 || strings.Trim(h, "0123456789ABCDEF") != "" {
		return "", fmt.Errorf("%w: invalid colour %q", xlsx.ErrInvalidArgument, s)
	}
	return h, nil
}

func colorHex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("%02X%02X%02X", n.R, n.G, n.B)
}

package starfield

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Colour mode markers accepted in place of a hex colour.
const (
	ColorRainbow = "rainbow"
	ColorNatural = "natural" // Each star keeps its own base colour
)

// ColorKind selects how a star's draw colour is resolved.
type ColorKind uint8

const (
	KindFixed ColorKind = iota
	KindRainbow
	KindNatural
)

// ColorMode is a parsed star colour setting.
type ColorMode struct {
	Kind  ColorKind
	Fixed color.RGBA
	Name  string // The setting as given, normalised
}

// PaletteEntry is one selectable star colour.
type PaletteEntry struct {
	Label string
	Value string
}

// Palette lists the colour choices offered by the controls, default first.
var Palette = []PaletteEntry{
	{Label: "White", Value: "#FFFFFF"},
	{Label: "Pale Blue", Value: "#E0F0FF"},
	{Label: "Sky", Value: "#87CEEB"},
	{Label: "Gold", Value: "#FFD700"},
	{Label: "Rose", Value: "#FF69B4"},
	{Label: "Mint", Value: "#98FB98"},
	{Label: "Natural", Value: ColorNatural},
	{Label: "Rainbow", Value: ColorRainbow},
}

// ParseColorMode parses a hex colour (#RRGGBB) or one of the mode markers.
func ParseColorMode(s string) (ColorMode, error) {
	name := strings.TrimSpace(s)
	switch strings.ToLower(name) {
	case ColorRainbow:
		return ColorMode{Kind: KindRainbow, Name: ColorRainbow}, nil
	case ColorNatural:
		return ColorMode{Kind: KindNatural, Name: ColorNatural}, nil
	}

	c, err := colorful.Hex(name)
	if err != nil {
		return ColorMode{}, fmt.Errorf("parsing star color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return ColorMode{
		Kind:  KindFixed,
		Fixed: color.RGBA{R: r, G: g, B: b, A: 255},
		Name:  strings.ToUpper(name),
	}, nil
}

// NextPaletteColor returns the palette value after current, wrapping around.
// Unknown values restart at the first entry.
func NextPaletteColor(current string) string {
	for i, e := range Palette {
		if strings.EqualFold(e.Value, current) {
			return Palette[(i+1)%len(Palette)].Value
		}
	}
	return Palette[0].Value
}

// PaletteLabel returns the display label for a colour value, or the value itself.
func PaletteLabel(value string) string {
	for _, e := range Palette {
		if strings.EqualFold(e.Value, value) {
			return e.Label
		}
	}
	return value
}

// Resolve returns the draw colour for p at time nowMs.
// Rainbow hue cycles with depth and time: hue = (z/maxDepth*360 + t*0.05) mod 360.
func (m ColorMode) Resolve(p *Particle, nowMs, maxDepth float64) color.RGBA {
	switch m.Kind {
	case KindRainbow:
		return rainbow(RainbowHue(p.Position.Z, maxDepth, nowMs))
	case KindNatural:
		return p.BaseColor
	default:
		return m.Fixed
	}
}

// RainbowHue returns the hue in degrees [0, 360) for depth z at time nowMs.
func RainbowHue(z, maxDepth, nowMs float64) float64 {
	hue := math.Mod(z/maxDepth*360+nowMs*0.05, 360)
	if hue < 0 {
		hue += 360
	}
	return hue
}

func rainbow(hue float64) color.RGBA {
	r, g, b := colorful.Hsl(hue, 1.0, 0.7).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

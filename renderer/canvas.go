// Package renderer provides the drawing surfaces the star field and sprite paint onto.
// Every surface follows the same immediate-mode contract: a global alpha that
// multiplies each primitive's colour, and primitives drawn in call order.
package renderer

import "image/color"

// Canvas is a 2D drawing surface in logical pixels.
type Canvas interface {
	// Clear fills the whole surface with c, ignoring the global alpha.
	Clear(c color.RGBA)
	// SetAlpha sets the global opacity in [0, 1] applied to later primitives.
	SetAlpha(a float64)
	StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA)
	FillCircle(x, y, r float64, c color.RGBA)
	FillEllipse(x, y, rx, ry float64, c color.RGBA)
}

// Black is the star field background.
var Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// ClampAlpha restricts a to [0, 1].
func ClampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// ApplyAlpha scales a colour's alpha channel by the global alpha.
func ApplyAlpha(c color.RGBA, alpha float64) uint8 {
	return uint8(float64(c.A)*alpha + 0.5)
}

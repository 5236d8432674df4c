// Package rlcanvas implements renderer.Canvas on raylib. It is the only
// drawing surface that needs cgo and a display.
package rlcanvas

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/renderer"
)

// Canvas draws onto the current raylib frame.
// All calls must happen between rl.BeginDrawing and rl.EndDrawing.
type Canvas struct {
	alpha float64
}

var _ renderer.Canvas = (*Canvas)(nil)

// New creates a raylib canvas.
func New() *Canvas {
	return &Canvas{alpha: 1}
}

func (c *Canvas) Clear(col color.RGBA) {
	rl.ClearBackground(rl.Color{R: col.R, G: col.G, B: col.B, A: 255})
}

func (c *Canvas) SetAlpha(a float64) {
	c.alpha = renderer.ClampAlpha(a)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.RGBA) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(x0), Y: float32(y0)},
		rl.Vector2{X: float32(x1), Y: float32(y1)},
		float32(width),
		c.color(col),
	)
}

func (c *Canvas) FillCircle(x, y, radius float64, col color.RGBA) {
	rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, float32(radius), c.color(col))
}

func (c *Canvas) FillEllipse(x, y, rx, ry float64, col color.RGBA) {
	rl.DrawEllipse(int32(x), int32(y), float32(rx), float32(ry), c.color(col))
}

func (c *Canvas) color(col color.RGBA) rl.Color {
	return rl.Color{R: col.R, G: col.G, B: col.B, A: renderer.ApplyAlpha(col, c.alpha)}
}

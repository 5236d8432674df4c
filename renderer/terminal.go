package renderer

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Glyphs used to rasterise stars by projected radius.
const (
	glyphTrail = '·'
	glyphSmall = '.'
	glyphMid   = '+'
	glyphLarge = '*'
	glyphFill  = '█'
)

// Terminal rasterises the canvas onto a tcell screen.
// Each cell stands for a cellW x cellH block of virtual pixels, so the logical
// canvas is (cols*cellW) x (rows*cellH). Terminals have no alpha channel; colours
// are pre-multiplied against the black background instead.
type Terminal struct {
	screen       tcell.Screen
	cellW, cellH float64
	alpha        float64
}

// NewTerminal creates a terminal canvas on an initialised screen.
func NewTerminal(screen tcell.Screen, cellW, cellH int) *Terminal {
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 1 {
		cellH = 1
	}
	return &Terminal{
		screen: screen,
		cellW:  float64(cellW),
		cellH:  float64(cellH),
		alpha:  1,
	}
}

// Size returns the logical canvas size in virtual pixels.
func (t *Terminal) Size() (w, h float64) {
	cols, rows := t.screen.Size()
	return float64(cols) * t.cellW, float64(rows) * t.cellH
}

// Show flushes the frame to the terminal.
func (t *Terminal) Show() {
	t.screen.Show()
}

func (t *Terminal) Clear(c color.RGBA) {
	t.screen.Fill(' ', tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))))
}

func (t *Terminal) SetAlpha(a float64) {
	t.alpha = ClampAlpha(a)
}

func (t *Terminal) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	cx0, cy0 := x0/t.cellW, y0/t.cellH
	cx1, cy1 := x1/t.cellW, y1/t.cellH
	steps := int(math.Ceil(math.Max(math.Abs(cx1-cx0), math.Abs(cy1-cy0))))
	style := t.style(c)
	if steps == 0 {
		t.set(cx0, cy0, glyphTrail, style)
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		t.set(cx0+(cx1-cx0)*f, cy0+(cy1-cy0)*f, glyphTrail, style)
	}
}

func (t *Terminal) FillCircle(x, y, r float64, c color.RGBA) {
	glyph := glyphSmall
	switch {
	case r >= 2:
		glyph = glyphLarge
	case r >= 1:
		glyph = glyphMid
	}
	t.set(x/t.cellW, y/t.cellH, glyph, t.style(c))
}

func (t *Terminal) FillEllipse(x, y, rx, ry float64, c color.RGBA) {
	style := t.style(c)
	minCol := int(math.Floor((x - rx) / t.cellW))
	maxCol := int(math.Floor((x + rx) / t.cellW))
	minRow := int(math.Floor((y - ry) / t.cellH))
	maxRow := int(math.Floor((y + ry) / t.cellH))
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			// Test the cell centre against the ellipse
			px := (float64(col)+0.5)*t.cellW - x
			py := (float64(row)+0.5)*t.cellH - y
			if rx > 0 && ry > 0 && (px*px)/(rx*rx)+(py*py)/(ry*ry) <= 1 {
				t.setCell(col, row, glyphFill, style)
			}
		}
	}
	// Ellipses smaller than one cell still leave a mark
	if rx < t.cellW/2 && ry < t.cellH/2 {
		t.set(x/t.cellW, y/t.cellH, glyphFill, style)
	}
}

// style pre-multiplies c by the effective alpha over black.
func (t *Terminal) style(c color.RGBA) tcell.Style {
	a := t.alpha * float64(c.A) / 255
	fg := tcell.NewRGBColor(
		int32(float64(c.R)*a+0.5),
		int32(float64(c.G)*a+0.5),
		int32(float64(c.B)*a+0.5),
	)
	return tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack)
}

func (t *Terminal) set(cx, cy float64, glyph rune, style tcell.Style) {
	t.setCell(int(math.Floor(cx)), int(math.Floor(cy)), glyph, style)
}

func (t *Terminal) setCell(col, row int, glyph rune, style tcell.Style) {
	cols, rows := t.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	t.screen.SetContent(col, row, glyph, nil, style)
}

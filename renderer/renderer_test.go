package renderer

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func TestRecorderKeepsDrawOrder(t *testing.T) {
	rec := NewRecorder(true)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	rec.Clear(Black)
	rec.SetAlpha(0.5)
	rec.StrokeLine(0, 0, 10, 10, 1, white)
	rec.FillCircle(10, 10, 2, white)
	rec.SetAlpha(2) // clamped
	rec.FillCircle(20, 20, 1, white)

	if len(rec.Ops) != 4 {
		t.Fatalf("expected 4 ops, got %d", len(rec.Ops))
	}
	if rec.Ops[0].Kind != OpClear || rec.Ops[1].Kind != OpLine || rec.Ops[2].Kind != OpCircle {
		t.Errorf("unexpected op order: %+v", rec.Ops)
	}
	if rec.Ops[2].Alpha != 0.5 {
		t.Errorf("expected alpha 0.5 on first circle, got %v", rec.Ops[2].Alpha)
	}
	if rec.Ops[3].Alpha != 1 {
		t.Errorf("expected alpha clamped to 1, got %v", rec.Ops[3].Alpha)
	}
	if got := len(rec.OfKind(OpCircle)); got != 2 {
		t.Errorf("expected 2 circles, got %d", got)
	}
}

func TestRecorderCountOnly(t *testing.T) {
	rec := NewRecorder(false)
	rec.FillCircle(1, 1, 1, Black)
	rec.StrokeLine(0, 0, 1, 1, 1, Black)

	if len(rec.Ops) != 0 {
		t.Errorf("expected no ops retained, got %d", len(rec.Ops))
	}
	if rec.Circles != 1 || rec.Lines != 1 {
		t.Errorf("expected 1 circle and 1 line counted, got %d and %d", rec.Circles, rec.Lines)
	}

	rec.Reset()
	if rec.Circles != 0 || rec.Lines != 0 {
		t.Error("expected counters cleared after Reset")
	}
}

func TestTerminalSizeInVirtualPixels(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	term := NewTerminal(screen, 8, 16)

	w, h := term.Size()
	if w != 640 || h != 384 {
		t.Errorf("expected 640x384 virtual pixels, got %vx%v", w, h)
	}
}

func TestTerminalFillCircleGlyphs(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	term := NewTerminal(screen, 8, 16)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	term.Clear(Black)
	term.FillCircle(4, 8, 0.5, white)   // cell (0,0)
	term.FillCircle(20, 8, 1.5, white)  // cell (2,0)
	term.FillCircle(36, 40, 3, white)   // cell (4,2)
	term.FillCircle(-50, -50, 3, white) // off screen, ignored

	tests := []struct {
		col, row int
		want     rune
	}{
		{0, 0, glyphSmall},
		{2, 0, glyphMid},
		{4, 2, glyphLarge},
		{1, 0, ' '},
	}
	for _, tt := range tests {
		got, _, _, _ := screen.GetContent(tt.col, tt.row)
		if got != tt.want {
			t.Errorf("cell (%d,%d): expected %q, got %q", tt.col, tt.row, tt.want, got)
		}
	}
}

func TestTerminalStrokeLineCoversCells(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	term := NewTerminal(screen, 8, 16)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	term.Clear(Black)
	term.StrokeLine(4, 8, 36, 8, 1, white) // cells 0..4 on row 0

	for col := 0; col <= 4; col++ {
		got, _, _, _ := screen.GetContent(col, 0)
		if got != glyphTrail {
			t.Errorf("cell (%d,0): expected trail glyph, got %q", col, got)
		}
	}
	if got, _, _, _ := screen.GetContent(6, 0); got != ' ' {
		t.Errorf("cell (6,0): expected blank, got %q", got)
	}
}

func TestTerminalFillEllipse(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	term := NewTerminal(screen, 8, 16)
	grey := color.RGBA{R: 100, G: 100, B: 100, A: 255}

	term.Clear(Black)
	term.FillEllipse(100, 100, 40, 40, grey)

	// Centre cell of the ellipse
	if got, _, _, _ := screen.GetContent(12, 6); got != glyphFill {
		t.Errorf("expected ellipse centre filled, got %q", got)
	}
	// Well outside the ellipse
	if got, _, _, _ := screen.GetContent(30, 20); got != ' ' {
		t.Errorf("expected cell outside ellipse blank, got %q", got)
	}
}

package sprite

import (
	"image/color"
	"math"
	"testing"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/renderer"
)

type fixedRand struct {
	vals []float64
	i    int
}

func (r *fixedRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// neverRand never triggers the pilot glancing around.
var neverRand = &fixedRand{vals: []float64{0.99}}

func newTestSprite() *Sprite {
	return New(config.Default().Sprite, 1280, 720, neverRand)
}

func TestAnchor(t *testing.T) {
	s := newTestSprite()
	x, y := s.Anchor()
	if x != 1030 || y != 520 {
		t.Errorf("expected anchor (1030, 520), got (%v, %v)", x, y)
	}

	s.Resize(800, 600)
	x, y = s.Anchor()
	if x != 550 || y != 400 {
		t.Errorf("expected anchor (550, 400) after resize, got (%v, %v)", x, y)
	}
}

func TestFadeIn(t *testing.T) {
	s := newTestSprite()
	s.SetVisible(true)

	s.Update(0)
	if math.Abs(s.Opacity()-0.03) > 1e-9 {
		t.Errorf("expected opacity 0.03 after one update, got %v", s.Opacity())
	}

	for i := 0; i < 40; i++ {
		s.Update(float64(i) * 16)
	}
	if s.Opacity() != 1 {
		t.Errorf("expected opacity capped at 1, got %v", s.Opacity())
	}
}

func TestFadeOutHides(t *testing.T) {
	s := newTestSprite()
	s.SetVisible(true)
	for i := 0; i < 40; i++ {
		s.Update(float64(i) * 16)
	}

	s.SetVisible(false)
	if !s.Visible() {
		t.Fatal("expected sprite to stay visible while fading out")
	}
	for i := 0; i < 40; i++ {
		s.Update(float64(i) * 16)
	}
	if s.Visible() || s.Opacity() != 0 {
		t.Errorf("expected hidden after fade out, got visible=%v opacity=%v", s.Visible(), s.Opacity())
	}

	rec := renderer.NewRecorder(true)
	s.Render(rec)
	if len(rec.Ops) != 0 {
		t.Errorf("expected no draw calls when hidden, got %d", len(rec.Ops))
	}
}

func TestMotion(t *testing.T) {
	s := newTestSprite()
	s.SetVisible(true)

	// sin(ts*0.002) = 1
	ts := math.Pi / 2 / 0.002
	s.Update(ts)
	if math.Abs(s.Bob()-8) > 1e-9 {
		t.Errorf("expected bob 8, got %v", s.Bob())
	}
	if want := math.Sin(ts*0.001) * 0.03; math.Abs(s.Tilt()-want) > 1e-9 {
		t.Errorf("expected tilt %v, got %v", want, s.Tilt())
	}
	if want := 0.5 + math.Sin(ts*0.008)*0.3; math.Abs(s.Glow()-want) > 1e-9 {
		t.Errorf("expected glow %v, got %v", want, s.Glow())
	}

	s.SetReduceMotion(true)
	s.Update(ts + 16)
	if s.Bob() != 0 || s.Tilt() != 0 {
		t.Errorf("expected no bob or tilt under reduced motion, got %v and %v", s.Bob(), s.Tilt())
	}
}

func TestPausedHoldsAnimation(t *testing.T) {
	s := newTestSprite()
	s.SetVisible(true)
	s.Update(100)
	bob := s.Bob()

	s.SetPaused(true)
	s.Update(900)
	if s.Bob() != bob {
		t.Errorf("expected bob frozen while paused, got %v then %v", bob, s.Bob())
	}
	if s.Opacity() <= 0.03 {
		t.Error("expected fade to continue while paused")
	}
}

func TestBlink(t *testing.T) {
	s := newTestSprite()
	s.SetVisible(true)

	ts := 0.0
	for ; ts <= 3000; ts += 16 {
		s.Update(ts)
		if s.Blinking() {
			t.Fatalf("blinked early at %vms", ts)
		}
	}

	// Crosses 3000ms of elapsed frame time
	s.Update(ts)
	if !s.Blinking() {
		t.Fatalf("expected blink once 3000ms elapsed (ts=%v)", ts)
	}
	start := ts

	for ts += 16; ts-start < 150; ts += 16 {
		s.Update(ts)
		if !s.Blinking() {
			t.Fatalf("blink ended early at %vms", ts-start)
		}
	}
	s.Update(ts)
	if s.Blinking() {
		t.Errorf("expected blink over after 150ms, still blinking at %vms", ts-start)
	}
}

func TestLookDirection(t *testing.T) {
	s := New(config.Default().Sprite, 1280, 720, &fixedRand{vals: []float64{0.001, 0.9}})
	s.SetVisible(true)
	s.Update(0)

	if math.Abs(s.Look()-0.12) > 1e-9 {
		t.Errorf("expected look direction 0.12, got %v", s.Look())
	}
}

func TestRenderWithinOpacity(t *testing.T) {
	s := newTestSprite()
	s.SetVisible(true)
	for i := 0; i < 10; i++ {
		s.Update(float64(i) * 16)
	}

	rec := renderer.NewRecorder(true)
	s.Render(rec)

	if rec.Ellipses == 0 || rec.Circles == 0 || rec.Lines == 0 {
		t.Errorf("expected ellipses, circles and lines, got %d/%d/%d", rec.Ellipses, rec.Circles, rec.Lines)
	}
	for i, op := range rec.Ops {
		if op.Alpha > s.Opacity()+1e-9 {
			t.Errorf("op %d: alpha %v exceeds sprite opacity %v", i, op.Alpha, s.Opacity())
		}
	}
	if rec.Alpha() != 1 {
		t.Errorf("expected alpha restored, got %v", rec.Alpha())
	}
}

func TestRenderBlinkingDrawsLids(t *testing.T) {
	s := newTestSprite()
	s.SetVisible(true)
	s.Update(0)
	open := renderer.NewRecorder(false)
	s.Render(open)

	s.blinking = true
	shut := renderer.NewRecorder(false)
	s.Render(shut)

	if shut.Lines != open.Lines+2 {
		t.Errorf("expected two extra lid lines while blinking, got %d vs %d", shut.Lines, open.Lines)
	}
}

func TestHexPalette(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#4a5568", color.RGBA{R: 0x4a, G: 0x55, B: 0x68, A: 255}},
		{"#E53E3E", color.RGBA{R: 0xe5, G: 0x3e, B: 0x3e, A: 255}},
	}
	for _, tt := range tests {
		if got := hex(tt.in); got != tt.want {
			t.Errorf("hex(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
	if colHull != hex("#4a5568") {
		t.Errorf("expected hull colour parsed at init, got %v", colHull)
	}
}

func TestHexPanicsOnBadColour(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on malformed colour")
		}
	}()
	hex("#GGHHII")
}

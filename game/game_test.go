package game

import (
	"io"
	"log/slog"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/controls"
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/settings"
	"github.com/pthm-cable/starfield/starfield"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type testClock struct{ ms float64 }

func (c *testClock) NowMs() float64 { return c.ms }

func newTestGame(t *testing.T, store *settings.Store) (*Game, *testClock) {
	t.Helper()
	clock := &testClock{}
	g := New(Options{
		Config:    config.Default(),
		Store:     store,
		Rand:      rand.New(rand.NewSource(1)),
		Clock:     clock,
		Logger:    quietLog,
		ViewportW: 1280,
		ViewportH: 720,
	})
	return g, clock
}

func newTestStore(t *testing.T) *settings.Store {
	t.Helper()
	cfg := config.Default()
	return settings.NewStore(filepath.Join(t.TempDir(), "settings.yaml"), settings.Defaults(cfg))
}

func TestDebouncer(t *testing.T) {
	d := debouncer{delay: 100}

	if d.ready(1000) {
		t.Error("expected idle debouncer not ready")
	}

	d.trigger(0)
	d.trigger(50) // Restarts the quiet period
	if d.ready(120) {
		t.Error("expected retrigger to push the deadline")
	}
	if !d.ready(150) {
		t.Error("expected ready 100ms after last trigger")
	}
	if d.ready(200) {
		t.Error("expected ready to fire only once")
	}

	d.trigger(300)
	if !d.flush() || d.flush() {
		t.Error("expected flush to report a pending trigger once")
	}
}

func TestNewFirstRunDefaults(t *testing.T) {
	g, _ := newTestGame(t, newTestStore(t))

	if g.Field().Len() != 1000 {
		t.Errorf("expected 1000 stars on first run, got %d", g.Field().Len())
	}
	if !g.State().ShowSprite || !g.State().ShowFPS {
		t.Errorf("expected sprite and FPS shown by default, got %+v", g.State())
	}
}

func TestNewRestoresSavedSettings(t *testing.T) {
	store := newTestStore(t)
	p := settings.Defaults(config.Default())
	p.StarCount = 250
	p.StarColor = starfield.ColorRainbow
	p.Collapsed = true
	if err := store.Save(p); err != nil {
		t.Fatal(err)
	}

	g, _ := newTestGame(t, store)

	if g.Field().Len() != 250 {
		t.Errorf("expected restored count 250, got %d", g.Field().Len())
	}
	if g.Field().Settings().StarColor != starfield.ColorRainbow {
		t.Errorf("expected rainbow, got %q", g.Field().Settings().StarColor)
	}
	if !g.State().Collapsed {
		t.Error("expected collapsed panel restored")
	}
}

func TestResizeDebounceAppliesLastSize(t *testing.T) {
	g, _ := newTestGame(t, nil)
	rec := renderer.NewRecorder(false)

	g.RequestResize(800, 600, 0)
	g.RequestResize(1024, 768, 40)

	g.Frame(100, rec, nil)
	if g.Field().Camera().ViewportW != 1280 {
		t.Errorf("expected no resize before the quiet period, got width %v", g.Field().Camera().ViewportW)
	}

	g.Frame(140, rec, nil)
	cam := g.Field().Camera()
	if cam.ViewportW != 1024 || cam.ViewportH != 768 {
		t.Errorf("expected last size 1024x768, got %vx%v", cam.ViewportW, cam.ViewportH)
	}
	ax, ay := g.Sprite().Anchor()
	if ax != 1024-200-50 || ay != 768-120-80 {
		t.Errorf("expected sprite re-anchored, got (%v, %v)", ax, ay)
	}
}

func TestFPSTextCadence(t *testing.T) {
	g, _ := newTestGame(t, nil)
	rec := renderer.NewRecorder(false)

	ts := 0.0
	for i := 0; i < 20; i++ {
		ts += 1000.0 / 60
		g.Frame(ts, rec, nil)
	}
	if g.FPSText() != "" {
		t.Errorf("expected no readout before 500ms, got %q", g.FPSText())
	}

	for ts < 520 {
		ts += 1000.0 / 60
		g.Frame(ts, rec, nil)
	}
	if g.FPSText() != "FPS: 60" {
		t.Errorf("expected FPS: 60, got %q", g.FPSText())
	}

	g.Handle(controls.Action{Kind: controls.ActionShowFPS, On: false}, ts)
	if g.FPSText() != "" {
		t.Error("expected readout hidden")
	}
}

func TestQualityReducesUnderLowFPS(t *testing.T) {
	g, _ := newTestGame(t, nil)
	rec := renderer.NewRecorder(false)

	// 10 FPS frames
	ts := 0.0
	for i := 0; i < 80; i++ {
		ts += 100
		g.Frame(ts, rec, nil)
	}

	if n := g.Field().Len(); n >= 1000 || n < 300 {
		t.Errorf("expected star count reduced from 1000 but not below 300, got %d", n)
	}
}

func TestHandleSavesDiscreteImmediately(t *testing.T) {
	store := newTestStore(t)
	g, _ := newTestGame(t, store)

	g.Handle(controls.Action{Kind: controls.ActionReduceMotion, On: true}, 10)

	p, found, err := store.Load()
	if err != nil || !found {
		t.Fatalf("expected saved file, got found=%v err=%v", found, err)
	}
	if !p.ReduceMotion {
		t.Error("expected reduce motion saved")
	}
	if g.Field().EffectiveSpeed() > config.Default().Field.ReducedSpeedCap {
		t.Errorf("expected capped speed, got %v", g.Field().EffectiveSpeed())
	}
}

func TestHandleDebouncesSliderSaves(t *testing.T) {
	store := newTestStore(t)
	g, _ := newTestGame(t, store)
	rec := renderer.NewRecorder(false)

	g.Handle(controls.Action{Kind: controls.ActionTrail, Value: 20}, 0)
	g.Handle(controls.Action{Kind: controls.ActionTrail, Value: 30}, 100)

	g.Frame(350, rec, nil)
	if _, found, _ := store.Load(); found {
		t.Fatal("expected no save within 300ms of the last change")
	}

	g.Frame(400, rec, nil)
	p, found, err := store.Load()
	if err != nil || !found {
		t.Fatalf("expected debounced save, got found=%v err=%v", found, err)
	}
	if p.TrailLength != 30 {
		t.Errorf("expected trail 30 saved, got %d", p.TrailLength)
	}
}

func TestCloseFlushesPendingSave(t *testing.T) {
	store := newTestStore(t)
	g, _ := newTestGame(t, store)

	g.Handle(controls.Action{Kind: controls.ActionSpeed, Value: 2.5}, 0)
	g.Close()

	p, found, err := store.Load()
	if err != nil || !found || p.SpeedMultiplier != 2.5 {
		t.Errorf("expected speed 2.5 saved on close, got %+v found=%v err=%v", p.Settings, found, err)
	}
}

func TestHandleHighCountWarns(t *testing.T) {
	g, _ := newTestGame(t, nil)

	g.Handle(controls.Action{Kind: controls.ActionCount, Value: 2000}, 1000)

	if g.Field().Len() != 2000 {
		t.Errorf("expected 2000 stars, got %d", g.Field().Len())
	}
	if g.Warning(1500) == "" {
		t.Error("expected warning shown")
	}
	if g.Warning(4000) != "" {
		t.Error("expected warning gone after 3s")
	}
}

func TestPauseTogglesFieldAndSprite(t *testing.T) {
	g, clock := newTestGame(t, nil)
	rec := renderer.NewRecorder(false)
	g.Frame(16, rec, nil)

	g.Handle(controls.Action{Kind: controls.ActionTogglePause}, 16)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	bob := g.Sprite().Bob()
	g.Frame(900, rec, nil)
	if g.Sprite().Bob() != bob {
		t.Error("expected sprite frozen while paused")
	}

	clock.ms = 5000
	g.Handle(controls.Action{Kind: controls.ActionTogglePause}, 5000)
	g.Frame(5016, rec, nil)
	if dt := g.Field().DeltaTime(); dt > 0.02 {
		t.Errorf("expected small delta after resume, got %v", dt)
	}
}

func TestKeyAction(t *testing.T) {
	g, _ := newTestGame(t, nil)

	tests := []struct {
		key   rune
		kind  controls.ActionKind
		value float64
	}{
		{'+', controls.ActionSpeed, 1.1},
		{'-', controls.ActionSpeed, 0.9},
		{']', controls.ActionCount, 1100},
		{'[', controls.ActionCount, 900},
		{'.', controls.ActionTrail, 60},
	}
	for _, tt := range tests {
		a, ok := g.KeyAction(tt.key)
		if !ok || a.Kind != tt.kind {
			t.Errorf("key %q: expected kind %d, got %d (ok=%v)", tt.key, tt.kind, a.Kind, ok)
			continue
		}
		if d := a.Value - tt.value; d > 1e-9 || d < -1e-9 {
			t.Errorf("key %q: expected value %v, got %v", tt.key, tt.value, a.Value)
		}
	}

	if a, ok := g.KeyAction('m'); !ok || a.Kind != controls.ActionReduceMotion || !a.On {
		t.Errorf("expected m to enable reduced motion, got %+v", a)
	}
	if _, ok := g.KeyAction('z'); ok {
		t.Error("expected unmapped key ignored")
	}

	g.Handle(mustKey(t, g, 'q'), 0)
	if !g.Quit() {
		t.Error("expected q to quit")
	}
}

func mustKey(t *testing.T, g *Game, r rune) controls.Action {
	t.Helper()
	a, ok := g.KeyAction(r)
	if !ok {
		t.Fatalf("key %q not mapped", r)
	}
	return a
}

func TestCycleColor(t *testing.T) {
	g, _ := newTestGame(t, nil)

	g.Handle(controls.Action{Kind: controls.ActionCycleColor}, 0)
	if got := g.Field().Settings().StarColor; got != starfield.Palette[1].Value {
		t.Errorf("expected %q, got %q", starfield.Palette[1].Value, got)
	}
}

func TestRunHeadless(t *testing.T) {
	res := RunHeadless(Options{Config: config.Default(), Rand: rand.New(rand.NewSource(3)), Logger: quietLog}, 120)

	if res.Frames != 120 {
		t.Errorf("expected 120 frames, got %d", res.Frames)
	}
	if res.FPS != 60 {
		t.Errorf("expected synthetic 60 FPS, got %d", res.FPS)
	}
	if res.Circles < 120*res.StarCount {
		t.Errorf("expected at least one circle per star per frame, got %d", res.Circles)
	}
	if res.Lines == 0 {
		t.Error("expected trails at the default trail length")
	}
}

func TestRunHeadlessUsesDerivedFrameInterval(t *testing.T) {
	cfg := config.Default()
	cfg.Derived.FrameIntervalMs = 1000.0 / 30

	res := RunHeadless(Options{Config: cfg, Rand: rand.New(rand.NewSource(5)), Logger: quietLog}, 90)

	if res.FPS != 30 {
		t.Errorf("expected 30 FPS from a 33ms synthetic step, got %d", res.FPS)
	}
}

func TestTerminalEvents(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(100, 40)
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	canvas := renderer.NewTerminal(screen, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	g, _ := newTestGame(t, nil)

	g.handleTerminalEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), screen, canvas, 0)
	if got := g.Field().Settings().StarColor; got != starfield.Palette[1].Value {
		t.Errorf("expected colour cycled, got %q", got)
	}

	g.handleTerminalEvent(tcell.NewEventResize(100, 40), screen, canvas, 0)
	g.Frame(200, canvas, nil)
	if w := g.Field().Camera().ViewportW; w != 800 {
		t.Errorf("expected viewport width 800 virtual pixels, got %v", w)
	}

	g.handleTerminalEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), screen, canvas, 0)
	if !g.Quit() {
		t.Error("expected Esc to quit")
	}
}

func TestRunTerminalMaxFrames(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	opts := Options{Config: config.Default(), Rand: rand.New(rand.NewSource(4)), Logger: quietLog}
	if err := runTerminal(screen, opts, 3); err != nil {
		t.Fatal(err)
	}

	// Help line on the bottom row
	if r, _, _, _ := screen.GetContent(0, 23); r != 's' {
		t.Errorf("expected help text on bottom row, got %q", r)
	}
}

func TestPumpEventsStopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)

	events := make(chan tcell.Event, 1)
	done := make(chan struct{})
	finished := make(chan struct{})
	for i := 0; i < 3; i++ {
		if err := screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
			t.Fatal(err)
		}
	}

	go func() {
		pumpEvents(screen, events, done)
		close(finished)
	}()

	// Nobody reads events, so the pump fills the buffer and blocks on the next send
	close(done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("expected pump to stop once done is closed with a live screen")
	}
}

package game

import (
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/starfield"
	"github.com/pthm-cable/starfield/telemetry"
)

// HeadlessResult summarises a headless run.
type HeadlessResult struct {
	Frames    int
	StarCount int
	Recycled  uint64
	FPS       int
	Circles   int // Stars drawn across the run
	Lines     int // Trails drawn across the run
	Perf      telemetry.PerfStats
}

// RunHeadless runs frames on a synthetic clock advancing one target frame
// interval per frame, drawing into a counting recorder.
// maxFrames <= 0 runs until the process is stopped.
func RunHeadless(opts Options, maxFrames int) HeadlessResult {
	cfg := opts.Config
	stepMs := cfg.Derived.FrameIntervalMs

	var now float64
	opts.Clock = starfield.ClockFunc(func() float64 { return now })
	if opts.ViewportW == 0 || opts.ViewportH == 0 {
		opts.ViewportW = float64(cfg.Screen.Width)
		opts.ViewportH = float64(cfg.Screen.Height)
	}

	g := New(opts)
	defer g.Close()

	rec := renderer.NewRecorder(false)
	for maxFrames <= 0 || g.Frames() < maxFrames {
		now += stepMs
		g.Frame(now, rec, nil)
	}

	return HeadlessResult{
		Frames:    g.Frames(),
		StarCount: g.Field().Len(),
		Recycled:  g.Field().Recycled(),
		FPS:       g.Field().FPS(),
		Circles:   rec.Circles,
		Lines:     rec.Lines,
		Perf:      g.Perf().Stats(),
	}
}

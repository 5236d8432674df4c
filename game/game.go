// Package game drives the star field: it schedules frames, routes control
// actions, debounces resizes and saves, and rolls telemetry windows.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/starfield/camera"
	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/settings"
	"github.com/pthm-cable/starfield/sprite"
	"github.com/pthm-cable/starfield/starfield"
	"github.com/pthm-cable/starfield/telemetry"
)

// warningDurationMs is how long the high star count warning stays up.
const warningDurationMs = 3000

// Options configures a Game.
type Options struct {
	Config *config.Config
	Store  *settings.Store // nil = settings are not persisted
	Rand   starfield.Rand  // nil = time-seeded
	Clock  starfield.Clock // Must share the time base of Frame timestamps
	Logger *slog.Logger

	Output   *telemetry.OutputManager
	LogStats bool

	ViewportW, ViewportH float64
}

// Game holds the field, the sprite and the control state around them.
type Game struct {
	cfg *config.Config
	log *slog.Logger

	field  *starfield.Field
	sprite *sprite.Sprite
	store  *settings.Store

	showSprite bool
	showFPS    bool
	collapsed  bool

	resize        debouncer
	pendingW      float64
	pendingH      float64
	save          debouncer
	lastFPSUpdate float64
	fpsText       string
	warnUntil     float64

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	frames int
	quit   bool
}

// New creates a game, restoring saved settings when a store is given.
func New(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Game{
		cfg:       cfg,
		log:       log,
		store:     opts.Store,
		resize:    debouncer{delay: cfg.Loop.ResizeDebounceMs},
		save:      debouncer{delay: cfg.Loop.SaveDebounceMs},
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		output:    opts.Output,
		logStats:  opts.LogStats,
	}

	var p settings.Persisted
	if g.store != nil {
		p = settings.Initial(g.store, cfg, opts.ViewportW, log)
	} else {
		p = settings.FirstRunDefaults(cfg, opts.ViewportW)
	}

	cam := camera.New(opts.ViewportW, opts.ViewportH, cfg.Field.FocalLength)
	g.field = starfield.New(cfg.Field, cam, starfield.Options{
		Rand:     rng,
		Clock:    opts.Clock,
		Logger:   log,
		Settings: &p.Settings,
		Governor: starfield.NewGovernor(cfg.Quality, log),
	})
	g.sprite = sprite.New(cfg.Sprite, opts.ViewportW, opts.ViewportH, rng)

	settings.Apply(p, g.field, g.sprite, cfg.Quality, log)
	g.showSprite = p.ShowSprite
	g.showFPS = p.ShowFPS
	g.collapsed = p.Collapsed

	log.Info("starfield ready",
		"stars", g.field.Len(),
		"color", p.StarColor,
		"reduce_motion", p.ReduceMotion,
		"viewport_w", opts.ViewportW,
		"viewport_h", opts.ViewportH,
	)

	return g
}

// Frame advances and draws one frame at timestamp ts (milliseconds).
// present, if non-nil, runs last and is timed as the present phase.
func (g *Game) Frame(ts float64, canvas renderer.Canvas, present func()) {
	g.perf.StartFrame()

	if g.resize.ready(ts) {
		g.applyResize()
	}

	g.perf.StartPhase(telemetry.PhaseUpdate)
	g.field.Update(ts)
	g.sprite.Update(ts)

	g.perf.StartPhase(telemetry.PhaseRender)
	g.field.Render(canvas)

	g.perf.StartPhase(telemetry.PhaseSprite)
	g.sprite.Render(canvas)

	g.perf.StartPhase(telemetry.PhaseGovernor)
	if ts-g.lastFPSUpdate > g.cfg.Loop.FPSDisplayIntervalMs {
		g.lastFPSUpdate = ts
		g.fpsText = fmt.Sprintf("FPS: %d", g.field.FPS())
		if _, reduced := g.field.AdaptQuality(ts); reduced {
			g.collector.RecordReduction()
		}
	}

	if g.save.ready(ts) {
		g.saveNow()
	}

	if present != nil {
		g.perf.StartPhase(telemetry.PhasePresent)
		present()
	}
	g.perf.EndFrame()

	g.frames++
	g.recordTelemetry(ts)
}

// RequestResize schedules a viewport change. Only the last size requested
// within the debounce delay is applied.
func (g *Game) RequestResize(w, h, ts float64) {
	g.pendingW, g.pendingH = w, h
	g.resize.trigger(ts)
}

func (g *Game) applyResize() {
	g.field.Resize(g.pendingW, g.pendingH)
	g.sprite.Resize(g.pendingW, g.pendingH)
	g.log.Debug("viewport resized", "width", g.pendingW, "height", g.pendingH)
}

// TogglePause pauses or resumes the field and sprite together.
func (g *Game) TogglePause() bool {
	paused := g.field.Toggle()
	g.sprite.SetPaused(paused)
	return paused
}

// Close writes any pending settings change.
func (g *Game) Close() {
	if g.save.flush() {
		g.saveNow()
	}
}

func (g *Game) saveNow() {
	if g.store == nil {
		return
	}
	p := settings.Capture(g.field, g.showSprite, g.showFPS, g.collapsed)
	if err := g.store.Save(p); err != nil {
		g.log.Warn("could not save settings", "path", g.store.Path(), "error", err)
	}
}

// Field returns the star field.
func (g *Game) Field() *starfield.Field { return g.field }

// Sprite returns the decorative sprite.
func (g *Game) Sprite() *sprite.Sprite { return g.sprite }

// Frames returns the number of frames run.
func (g *Game) Frames() int { return g.frames }

// Quit reports whether the user asked to quit.
func (g *Game) Quit() bool { return g.quit }

// FPSText returns the FPS readout, or "" while the counter is hidden.
func (g *Game) FPSText() string {
	if !g.showFPS {
		return ""
	}
	return g.fpsText
}

// Warning returns the performance warning to display at ts, or "".
func (g *Game) Warning(ts float64) string {
	if ts >= g.warnUntil {
		return ""
	}
	return "High star counts may reduce performance"
}

// Perf returns the frame timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

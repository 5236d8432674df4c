// Package sprite draws the decorative ship that drifts in the lower right of the view.
package sprite

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/starfield/config"
)

// Rand is a source of uniform random numbers in [0, 1).
type Rand interface {
	Float64() float64
}

var (
	colHull      = hex("#4a5568")
	colHullDark  = hex("#2d3748")
	colHullLight = hex("#718096")
	colAlien     = hex("#7cb87c")
	colAlienDark = hex("#5a9a5a")
	colEye       = hex("#1a1a2e")
	colLightRed  = hex("#e53e3e")
	colLightTeal = hex("#38b2ac")
	colGlass     = color.RGBA{R: 20, G: 40, B: 60, A: 255}
	colGlassRim  = color.RGBA{R: 150, G: 200, B: 255, A: 255}
	colGlowOuter = color.RGBA{R: 50, G: 150, B: 255, A: 255}
	colWhite     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// hex parses a package-level palette entry. A bad entry is a programming error.
func hex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("sprite: bad colour %q: %v", s, err))
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Sprite is the ship and its pilot. It fades in and out, bobs and tilts with
// time, and the pilot blinks and glances around.
type Sprite struct {
	cfg config.SpriteConfig
	rng Rand

	visible      bool
	paused       bool
	reduceMotion bool

	baseX, baseY float64

	opacity float64
	target  float64

	bob  float64
	tilt float64 // Radians
	glow float64

	blinkElapsed float64 // Frame time since the last blink ended
	blinking     bool
	blinkStart   float64
	look         float64

	lastTs  float64
	started bool
}

// New creates a hidden sprite anchored for a viewport of w x h.
func New(cfg config.SpriteConfig, w, h float64, rng Rand) *Sprite {
	s := &Sprite{cfg: cfg, rng: rng, glow: 0.5}
	s.Resize(w, h)
	return s
}

// Resize re-anchors the sprite to the lower right of a w x h viewport.
func (s *Sprite) Resize(w, h float64) {
	s.baseX = w - s.cfg.Width - s.cfg.MarginRight
	s.baseY = h - s.cfg.Height - s.cfg.MarginBottom
}

// SetVisible sets the fade target. A fading-out sprite stays visible until transparent.
func (s *Sprite) SetVisible(v bool) {
	if v {
		s.target = 1
	} else {
		s.target = 0
	}
	s.visible = v || s.opacity > 0
}

func (s *Sprite) SetPaused(p bool) {
	s.paused = p
}

func (s *Sprite) SetReduceMotion(enabled bool) {
	s.reduceMotion = enabled
}

// Update advances the fade and the animation to timestamp ts (milliseconds).
func (s *Sprite) Update(ts float64) {
	if s.opacity < s.target {
		s.opacity = math.Min(s.target, s.opacity+s.cfg.FadeStep)
	} else if s.opacity > s.target {
		s.opacity = math.Max(s.target, s.opacity-s.cfg.FadeStep)
	}

	if s.opacity <= 0 && s.target <= 0 {
		s.visible = false
		return
	}

	elapsed := 0.0
	if s.started && ts > s.lastTs {
		elapsed = ts - s.lastTs
	}
	s.lastTs = ts
	s.started = true

	if s.paused {
		return
	}

	if s.reduceMotion {
		s.bob = 0
		s.tilt = 0
	} else {
		s.bob = math.Sin(ts*0.002) * 8
		s.tilt = math.Sin(ts*0.001) * 0.03
	}
	s.glow = 0.5 + math.Sin(ts*0.008)*0.3

	s.blinkElapsed += elapsed
	switch {
	case s.blinking && ts-s.blinkStart >= s.cfg.BlinkDurationMs:
		s.blinking = false
		s.blinkElapsed = 0
	case !s.blinking && s.blinkElapsed > s.cfg.BlinkAfterMs:
		s.blinking = true
		s.blinkStart = ts
	}

	if s.rng.Float64() < s.cfg.LookChance {
		s.look = (s.rng.Float64() - 0.5) * 0.3
	}
}

// Visible reports whether the sprite will draw anything.
func (s *Sprite) Visible() bool { return s.visible && s.opacity > 0 }

func (s *Sprite) Opacity() float64 { return s.opacity }
func (s *Sprite) Bob() float64     { return s.bob }
func (s *Sprite) Tilt() float64    { return s.tilt }
func (s *Sprite) Glow() float64    { return s.glow }
func (s *Sprite) Blinking() bool   { return s.blinking }
func (s *Sprite) Look() float64    { return s.look }

// Anchor returns the top-left corner of the sprite box before bobbing.
func (s *Sprite) Anchor() (x, y float64) {
	return s.baseX, s.baseY
}

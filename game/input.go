package game

import (
	"math"

	"github.com/pthm-cable/starfield/controls"
	"github.com/pthm-cable/starfield/settings"
	"github.com/pthm-cable/starfield/starfield"
)

// Keyboard step sizes.
const (
	speedKeyStep = 0.1
	countKeyStep = 100
	trailKeyStep = 10
)

// Handle applies one control action at timestamp ts. Slider changes are saved
// after the save debounce; discrete toggles are saved at once.
func (g *Game) Handle(a controls.Action, ts float64) {
	switch a.Kind {
	case controls.ActionTrail:
		g.field.SetTrailLength(int(a.Value))
	case controls.ActionCount:
		n := int(a.Value)
		g.field.SetParticleCount(n)
		if settings.WarnIfHeavy(n, g.cfg.Quality, g.log) {
			g.warnUntil = ts + warningDurationMs
		}
	case controls.ActionSpeed:
		g.field.SetSpeedMultiplier(a.Value)
	case controls.ActionRadius:
		g.field.SetSpawnRadius(int(math.Round(a.Value)))
	case controls.ActionCycleColor:
		g.field.SetStarColor(starfield.NextPaletteColor(g.field.Settings().StarColor))
	case controls.ActionShowSprite:
		g.showSprite = a.On
		g.sprite.SetVisible(a.On)
	case controls.ActionReduceMotion:
		g.field.SetReduceMotion(a.On)
		g.sprite.SetReduceMotion(a.On)
	case controls.ActionShowFPS:
		g.showFPS = a.On
	case controls.ActionTogglePause:
		g.TogglePause()
	case controls.ActionToggleCollapse:
		g.collapsed = a.On
	case controls.ActionQuit:
		g.quit = true
	}

	if !a.Persistent() {
		return
	}
	if a.Continuous() {
		g.save.trigger(ts)
	} else {
		g.save.flush()
		g.saveNow()
	}
}

// State returns what the controls should display.
func (g *Game) State() controls.State {
	return controls.State{
		Settings:   g.field.Settings(),
		ShowSprite: g.showSprite,
		ShowFPS:    g.showFPS,
		Collapsed:  g.collapsed,
		Paused:     g.field.Paused(),
	}
}

// KeyAction maps a keyboard shortcut to an action against the current state.
func (g *Game) KeyAction(r rune) (controls.Action, bool) {
	s := g.field.Settings()
	switch r {
	case ' ':
		return controls.Action{Kind: controls.ActionTogglePause}, true
	case '+', '=':
		return sliderStep(controls.ActionSpeed, s.SpeedMultiplier, speedKeyStep), true
	case '-', '_':
		return sliderStep(controls.ActionSpeed, s.SpeedMultiplier, -speedKeyStep), true
	case ']':
		return sliderStep(controls.ActionCount, float64(s.StarCount), countKeyStep), true
	case '[':
		return sliderStep(controls.ActionCount, float64(s.StarCount), -countKeyStep), true
	case '.':
		return sliderStep(controls.ActionTrail, float64(s.TrailLength), trailKeyStep), true
	case ',':
		return sliderStep(controls.ActionTrail, float64(s.TrailLength), -trailKeyStep), true
	case 'c':
		return controls.Action{Kind: controls.ActionCycleColor}, true
	case 'm':
		return controls.Action{Kind: controls.ActionReduceMotion, On: !s.ReduceMotion}, true
	case 's':
		return controls.Action{Kind: controls.ActionShowSprite, On: !g.showSprite}, true
	case 'f':
		return controls.Action{Kind: controls.ActionShowFPS, On: !g.showFPS}, true
	case 'h':
		return controls.Action{Kind: controls.ActionToggleCollapse, On: !g.collapsed}, true
	case 'q':
		return controls.Action{Kind: controls.ActionQuit}, true
	}
	return controls.Action{}, false
}

func sliderStep(kind controls.ActionKind, cur, delta float64) controls.Action {
	v := cur + delta
	for _, spec := range controls.Sliders {
		if spec.Kind == kind {
			v = spec.Quantize(v)
			break
		}
	}
	return controls.Action{Kind: kind, Value: v}
}

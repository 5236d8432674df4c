package starfield

import (
	"math"
	"sort"

	"github.com/pthm-cable/starfield/renderer"
)

// Update advances the simulation to timestamp (milliseconds). No-op while paused.
func (f *Field) Update(timestamp float64) {
	if f.paused {
		return
	}

	// Cap the step so a stall cannot tunnel particles through the near plane
	dt := (timestamp - f.lastTime) / 1000
	dt = math.Max(0, math.Min(dt, f.cfg.MaxFrameDelta))
	f.lastTime = timestamp
	f.deltaTime = dt

	f.fps.Add(1 / math.Max(dt, f.cfg.MinFrameDelta))

	speed := f.EffectiveSpeed()
	cam := f.camera
	for _, p := range f.particles {
		if p.Advance(speed, dt) {
			f.recycled++
		}

		proj := p.Project(cam.FocalLength, cam.CenterX, cam.CenterY)
		if p.IsOutOfViewport(proj.X, proj.Y, cam.ViewportW, cam.ViewportH, f.cfg.ViewportMargin) {
			p.recycle()
			f.recycled++
		}
	}
}

// Render draws the field farthest first, so nearer stars overlay farther ones.
func (f *Field) Render(canvas renderer.Canvas) {
	canvas.SetAlpha(1)
	canvas.Clear(renderer.Black)

	trail := f.settings.TrailFactor()
	drawTrails := trail > f.cfg.TrailThreshold && !f.settings.ReduceMotion

	f.order = append(f.order[:0], f.particles...)
	sort.SliceStable(f.order, func(i, j int) bool {
		return f.order[i].Position.Z > f.order[j].Position.Z
	})

	now := f.clock.NowMs()
	cam := f.camera
	for _, p := range f.order {
		proj := p.Project(cam.FocalLength, cam.CenterX, cam.CenterY)
		c := f.color.Resolve(p, now, f.cfg.MaxDepth)

		canvas.SetAlpha(p.Opacity())

		if drawTrails {
			// Trail starts part way along the previous-to-current segment
			tx := proj.PrevX + (proj.X-proj.PrevX)*(1-trail)
			ty := proj.PrevY + (proj.Y-proj.PrevY)*(1-trail)
			canvas.StrokeLine(tx, ty, proj.X, proj.Y, math.Max(0.5, proj.Size*0.5), c)
		}

		canvas.FillCircle(proj.X, proj.Y, math.Max(0.5, proj.Size), c)
	}

	canvas.SetAlpha(1)
}

// DrawOrder returns the particles in the order the last Render visited them.
func (f *Field) DrawOrder() []*Particle {
	return f.order
}

// AdaptQuality runs the governor, if any, and shrinks the field when the frame
// rate has degraded. Returns the new count and whether it changed.
func (f *Field) AdaptQuality(timestamp float64) (int, bool) {
	if f.governor == nil || f.paused {
		return len(f.particles), false
	}
	n, reduce := f.governor.Check(timestamp, f.FPS(), len(f.particles))
	if !reduce {
		return len(f.particles), false
	}
	f.SetParticleCount(n)
	return n, true
}

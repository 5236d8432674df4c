package sprite

import (
	"image/color"
	"math"

	"github.com/pthm-cable/starfield/renderer"
)

// frame maps sprite-local coordinates to the screen, applying bob and tilt
// about the centre of the sprite box.
type frame struct {
	cx, cy   float64 // Screen position of the box centre
	w, h     float64
	sin, cos float64
}

func (f frame) pt(lx, ly float64) (float64, float64) {
	dx, dy := lx-f.w/2, ly-f.h/2
	return f.cx + dx*f.cos - dy*f.sin, f.cy + dx*f.sin + dy*f.cos
}

// Render draws the sprite. Nothing is drawn while it is fully transparent.
func (s *Sprite) Render(c renderer.Canvas) {
	if !s.Visible() {
		return
	}

	w, h := s.cfg.Width, s.cfg.Height
	f := frame{
		cx:  s.baseX + w/2,
		cy:  s.baseY + s.bob + h/2,
		w:   w,
		h:   h,
		sin: math.Sin(s.tilt),
		cos: math.Cos(s.tilt),
	}

	s.drawEngineGlow(c, f)
	s.drawHull(c, f)
	s.drawCockpit(c, f)
	s.drawPilot(c, f)
	s.drawDetails(c, f)

	c.SetAlpha(1)
}

func (s *Sprite) ellipse(c renderer.Canvas, f frame, lx, ly, rx, ry, alpha float64, col color.RGBA) {
	x, y := f.pt(lx, ly)
	c.SetAlpha(s.opacity * alpha)
	c.FillEllipse(x, y, rx, ry, col)
}

func (s *Sprite) circle(c renderer.Canvas, f frame, lx, ly, r, alpha float64, col color.RGBA) {
	x, y := f.pt(lx, ly)
	c.SetAlpha(s.opacity * alpha)
	c.FillCircle(x, y, r, col)
}

func (s *Sprite) line(c renderer.Canvas, f frame, lx0, ly0, lx1, ly1, width, alpha float64, col color.RGBA) {
	x0, y0 := f.pt(lx0, ly0)
	x1, y1 := f.pt(lx1, ly1)
	c.SetAlpha(s.opacity * alpha)
	c.StrokeLine(x0, y0, x1, y1, width, col)
}

func (s *Sprite) drawEngineGlow(c renderer.Canvas, f frame) {
	gx, gy := -20.0, f.h/2
	s.ellipse(c, f, gx, gy, 60*s.glow, 25, s.glow*0.5, colGlowOuter)
	s.ellipse(c, f, gx+10, gy, 20, 10, s.glow, colWhite)
}

func (s *Sprite) drawHull(c renderer.Canvas, f frame) {
	mid := f.h / 2
	// Lower shadow first, then the main hull offset upward over it
	s.ellipse(c, f, 105, mid+8, 92, 32, 1, colHullDark)
	s.ellipse(c, f, 105, mid-2, 92, 36, 1, colHull)
	s.ellipse(c, f, f.w-40, mid-15, 18, 14, 1, colHullLight)
}

func (s *Sprite) drawCockpit(c renderer.Canvas, f frame) {
	cx, cy := 135.0, f.h/2
	s.ellipse(c, f, cx, cy, 37, 27, 0.5, colGlassRim)
	s.ellipse(c, f, cx, cy, 35, 25, 0.9, colGlass)
}

func (s *Sprite) drawPilot(c renderer.Canvas, f frame) {
	ax := 125 + s.look*5
	ay := f.h/2 - 15

	s.ellipse(c, f, ax, ay, 18, 22, 1, colAlien)
	s.ellipse(c, f, ax, ay+12, 14, 8, 1, colAlienDark)

	if s.blinking {
		s.line(c, f, ax-12, ay-5, ax-4, ay-5, 2, 1, colEye)
		s.line(c, f, ax+4, ay-5, ax+12, ay-5, 2, 1, colEye)
	} else {
		eo := s.look * 3
		s.ellipse(c, f, ax-8+eo, ay-5, 7, 10, 1, colEye)
		s.ellipse(c, f, ax+8+eo, ay-5, 7, 10, 1, colEye)
		s.circle(c, f, ax-6+eo, ay-7, 2, 1, colWhite)
		s.circle(c, f, ax+10+eo, ay-7, 2, 1, colWhite)
	}

	// Waving hand
	s.ellipse(c, f, ax+25, ay+15, 8, 5, 1, colAlien)
	s.circle(c, f, ax+28, ay+17, 2, 1, colAlienDark)
	s.circle(c, f, ax+24, ay+14, 2, 1, colAlienDark)
	s.circle(c, f, ax+30, ay+14, 2, 1, colAlienDark)
}

func (s *Sprite) drawDetails(c renderer.Canvas, f frame) {
	mid := f.h / 2
	s.circle(c, f, 70, mid-30, 4, 1, colLightRed)
	s.circle(c, f, 80, mid-28, 3, 1, colLightTeal)

	// Fins
	s.line(c, f, 50, mid-15, 40, mid-35, 2, 1, colHullLight)
	s.line(c, f, 40, mid-35, 35, mid-30, 2, 1, colHullLight)
	s.line(c, f, 50, mid+15, 40, mid+35, 2, 1, colHullLight)
	s.line(c, f, 40, mid+35, 35, mid+30, 2, 1, colHullLight)

	// Engine housing
	s.ellipse(c, f, 25, mid, 12, 18, 1, colHull)
	s.ellipse(c, f, 25, mid, 8, 12, 1, colHullDark)
}

package starfield

import (
	"image/color"
	"math"
)

// Star base colours. Most stars are white; the rest carry a slight blue cast.
var (
	ColorWhite    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorPaleBlue = color.RGBA{R: 224, G: 240, B: 255, A: 255}
)

const (
	whiteBias     = 0.7
	maxPointSize  = 3.0
	pointSizeGain = 0.3

	// Fractions of max depth bounding the initial spawn band and the fade ramps.
	spawnNearFrac = 0.15
	spawnBandFrac = 0.7
	fadeInFrac    = 0.9
	fadeOutFrac   = 0.05
)

// Vec3 is a point in field space. X and Y are offsets from the view axis, Z is depth.
type Vec3 struct {
	X, Y, Z float64
}

// Projection is a particle's screen-space footprint for one frame.
type Projection struct {
	X, Y         float64 // Current position
	PrevX, PrevY float64 // Previous position, the far end of the trail
	Scale        float64
	Size         float64 // Capped point radius
}

// Particle is one simulated star.
type Particle struct {
	Position Vec3
	Previous Vec3 // Position before the last Advance, for the trail

	SpawnRadius float64
	BaseSpeed   float64 // [0.5, 1.0)
	BaseColor   color.RGBA
	Size        float64 // [1, 2.5)

	maxDepth  float64
	nearPlane float64
	rng       Rand
}

// NewParticle creates a particle spread across the initial depth band.
func NewParticle(spawnRadius, maxDepth, nearPlane float64, rng Rand) *Particle {
	p := &Particle{
		SpawnRadius: spawnRadius,
		maxDepth:    maxDepth,
		nearPlane:   nearPlane,
		rng:         rng,
	}
	p.Reset(true)
	return p
}

// Reset re-rolls the particle's lateral position and traits.
// Initial spawns land anywhere in [0.15, 0.85] of max depth so a fresh field looks
// populated; recycled particles start exactly at the far plane.
func (p *Particle) Reset(initialSpawn bool) {
	angle := p.rng.Float64() * math.Pi * 2
	radius := p.rng.Float64() * p.SpawnRadius

	p.Position.X = math.Cos(angle) * radius
	p.Position.Y = math.Sin(angle) * radius

	if initialSpawn {
		p.Position.Z = p.maxDepth*spawnNearFrac + p.rng.Float64()*p.maxDepth*spawnBandFrac
	} else {
		p.Position.Z = p.maxDepth
	}

	p.Previous = p.Position

	p.BaseSpeed = 0.5 + p.rng.Float64()*0.5

	if p.rng.Float64() < whiteBias {
		p.BaseColor = ColorWhite
	} else {
		p.BaseColor = ColorPaleBlue
	}

	p.Size = 1 + p.rng.Float64()*1.5
}

// Advance moves the particle toward the viewer. The *60 normalises motion to a
// 60 updates/s reference so speed is independent of frame timing.
// Returns true if the particle crossed the near plane and was recycled.
func (p *Particle) Advance(speedMultiplier, dt float64) bool {
	p.Previous = p.Position

	// Particles accelerate as they approach, never below 10% rate
	accel := math.Max(0.1, (p.maxDepth-p.Position.Z)/p.maxDepth)
	p.Position.Z -= p.BaseSpeed * speedMultiplier * dt * 60 * accel

	if p.Position.Z <= p.nearPlane {
		p.recycle()
		return true
	}
	return false
}

// recycle sends the particle back to the far plane with fresh traits.
func (p *Particle) recycle() {
	p.Reset(false)
	// Keep z off the near plane regardless of what Reset did; projection divides by it.
	p.Position.Z = p.maxDepth
	p.Previous.Z = p.maxDepth
}

// Project maps the current and previous positions to screen space.
func (p *Particle) Project(focalLength, centerX, centerY float64) Projection {
	scale := focalLength / p.Position.Z
	prevScale := focalLength / p.Previous.Z

	return Projection{
		X:     p.Position.X*scale + centerX,
		Y:     p.Position.Y*scale + centerY,
		PrevX: p.Previous.X*prevScale + centerX,
		PrevY: p.Previous.Y*prevScale + centerY,
		Scale: scale,
		// Capped so near stars never render as blobs
		Size: math.Min(p.Size*scale*pointSizeGain, maxPointSize),
	}
}

// Opacity fades particles in from the far plane and out toward the viewer.
func (p *Particle) Opacity() float64 {
	fadeInStart := p.maxDepth * fadeInFrac
	fadeOutEnd := p.maxDepth * fadeOutFrac
	z := p.Position.Z

	var a float64
	switch {
	case z > fadeInStart:
		a = 1 - (z-fadeInStart)/(p.maxDepth-fadeInStart)
	case z < fadeOutEnd:
		a = z / fadeOutEnd
	default:
		a = 1
	}
	return math.Max(0, math.Min(1, a))
}

// IsOutOfViewport reports whether a projected point lies outside the viewport
// expanded by margin on all sides.
func (p *Particle) IsOutOfViewport(screenX, screenY, width, height, margin float64) bool {
	return screenX < -margin ||
		screenX > width+margin ||
		screenY < -margin ||
		screenY > height+margin
}

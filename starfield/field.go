// Package starfield simulates and renders flight through a 3D field of stars.
//
// A Field owns a set of Particles that travel from the far plane toward the
// viewer and are recycled back to the far plane before they reach the near
// plane or leave the screen. Frames are driven externally: call Update with a
// millisecond timestamp, then Render onto a renderer.Canvas. Setters may be
// called at any time between frames; their effect is observed by the next
// Update/Render pair.
package starfield

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/starfield/camera"
	"github.com/pthm-cable/starfield/config"
)

// Options holds optional collaborators for a Field.
type Options struct {
	Rand     Rand         // nil = time-seeded math/rand
	Clock    Clock        // nil = monotonic wall clock
	Logger   *slog.Logger // nil = slog.Default()
	Settings *Settings    // nil = empty field in the default colour
	Governor *Governor    // nil = no adaptive quality
}

// Field is the particle collection and its render pipeline.
type Field struct {
	cfg      config.FieldConfig
	camera   *camera.Camera
	settings Settings
	color    ColorMode

	particles []*Particle
	pool      pool
	order     []*Particle // Depth-sorted draw order, reused across frames

	rng      Rand
	clock    Clock
	log      *slog.Logger
	governor *Governor

	paused    bool
	lastTime  float64
	deltaTime float64
	fps       *FPSMeter

	allocated int
	recycled  uint64
}

// New creates a field projecting onto cam and populates it per the settings.
func New(cfg config.FieldConfig, cam *camera.Camera, opts Options) *Field {
	f := &Field{
		cfg:      cfg,
		camera:   cam,
		rng:      opts.Rand,
		clock:    opts.Clock,
		log:      opts.Logger,
		governor: opts.Governor,
		fps:      NewFPSMeter(cfg.FPSWindow, cfg.InitialFPS),
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if f.clock == nil {
		f.clock = newWallClock()
	}
	if f.log == nil {
		f.log = slog.Default()
	}

	s := Settings{StarColor: Palette[0].Value}
	if opts.Settings != nil {
		s = *opts.Settings
	}
	f.SetTrailLength(s.TrailLength)
	f.SetSpeedMultiplier(s.SpeedMultiplier)
	f.SetSpawnRadius(s.SpawnRadius)
	f.SetStarColor(s.StarColor)
	f.SetReduceMotion(s.ReduceMotion)

	count := clampCount(s.StarCount)
	f.particles = make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		f.particles = append(f.particles, f.newParticle())
	}
	f.settings.StarCount = count

	return f
}

func (f *Field) newParticle() *Particle {
	f.allocated++
	return NewParticle(float64(f.settings.SpawnRadius), f.cfg.MaxDepth, f.cfg.NearPlane, f.rng)
}

// SetParticleCount grows or shrinks the active set to target.
// Growth reuses pooled particles before allocating; shrinking moves the tail
// into the pool. Remaining particles are left untouched.
func (f *Field) SetParticleCount(target int) {
	target = clampCount(target)
	n := len(f.particles)

	switch {
	case target > n:
		for i := n; i < target; i++ {
			p, ok := f.pool.acquire()
			if ok {
				p.SpawnRadius = float64(f.settings.SpawnRadius)
				p.Reset(false)
			} else {
				p = f.newParticle()
			}
			f.particles = append(f.particles, p)
		}
	case target < n:
		f.pool.release(f.particles[target:]...)
		for i := target; i < n; i++ {
			f.particles[i] = nil
		}
		f.particles = f.particles[:target]
		f.order = f.order[:0] // Rebuilt by the next Render
	}

	f.settings.StarCount = target
}

// SetSpawnRadius sets the lateral spawn bound in pixels, clamped to >= 0.
// Live particles pick it up on their next reset.
func (f *Field) SetSpawnRadius(r int) {
	if r < 0 {
		r = 0
	}
	f.settings.SpawnRadius = r
	for _, p := range f.particles {
		p.SpawnRadius = float64(r)
	}
}

// SetTrailLength sets the trail length, clamped to [0, 100].
func (f *Field) SetTrailLength(l int) {
	if l < 0 {
		l = 0
	}
	if l > 100 {
		l = 100
	}
	f.settings.TrailLength = l
}

// SetSpeedMultiplier sets the stored speed multiplier, clamped to >= 0.
// Under reduced motion the effective speed stays capped; see EffectiveSpeed.
func (f *Field) SetSpeedMultiplier(m float64) {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		f.log.Warn("ignoring non-finite speed multiplier", "multiplier", m)
		return
	}
	if m < 0 {
		m = 0
	}
	f.settings.SpeedMultiplier = m
}

// SetStarColor sets the colour mode. Unparseable values fall back to the default colour.
func (f *Field) SetStarColor(c string) {
	mode, err := ParseColorMode(c)
	if err != nil {
		f.log.Warn("unknown star color, using default", "color", c, "error", err)
		mode, _ = ParseColorMode(Palette[0].Value)
	}
	f.color = mode
	f.settings.StarColor = mode.Name
}

// SetReduceMotion toggles reduced motion. The stored speed multiplier is kept
// as is; only the effective speed is capped, so disabling restores it.
func (f *Field) SetReduceMotion(enabled bool) {
	f.settings.ReduceMotion = enabled
}

// EffectiveSpeed returns the speed multiplier applied to motion.
func (f *Field) EffectiveSpeed() float64 {
	if f.settings.ReduceMotion {
		return math.Min(f.settings.SpeedMultiplier, f.cfg.ReducedSpeedCap)
	}
	return f.settings.SpeedMultiplier
}

// Pause freezes simulation time.
func (f *Field) Pause() {
	f.paused = true
}

// Resume unfreezes simulation time. Timing is re-anchored to now so the next
// Update sees a near-zero delta instead of the whole paused span.
func (f *Field) Resume() {
	f.paused = false
	f.lastTime = f.clock.NowMs()
}

// Toggle flips the paused state and returns whether the field is now paused.
func (f *Field) Toggle() bool {
	if f.paused {
		f.Resume()
	} else {
		f.Pause()
	}
	return f.paused
}

// Paused reports whether the field is paused.
func (f *Field) Paused() bool {
	return f.paused
}

// Resize re-centres projection on a new viewport. Particles keep their 3D state.
func (f *Field) Resize(width, height float64) {
	f.camera.Resize(width, height)
}

// Settings returns a copy of the current settings.
func (f *Field) Settings() Settings {
	return f.settings
}

// Particles returns the active particles. The slice must not be modified.
func (f *Field) Particles() []*Particle {
	return f.particles
}

// Len returns the number of active particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// PoolSize returns the number of retired particles available for reuse.
func (f *Field) PoolSize() int {
	return f.pool.len()
}

// Allocated returns how many particles the field has ever constructed.
func (f *Field) Allocated() int {
	return f.allocated
}

// Recycled returns the total number of near-plane and viewport recycles.
func (f *Field) Recycled() uint64 {
	return f.recycled
}

// FPS returns the smoothed frame rate estimate.
func (f *Field) FPS() int {
	return f.fps.FPS()
}

// DeltaTime returns the clamped delta of the last Update, in seconds.
func (f *Field) DeltaTime() float64 {
	return f.deltaTime
}

// Camera returns the viewport the field projects onto.
func (f *Field) Camera() *camera.Camera {
	return f.camera
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

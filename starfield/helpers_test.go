package starfield

import (
	"testing"

	"github.com/pthm-cable/starfield/camera"
	"github.com/pthm-cable/starfield/config"
)

// seqRand replays a fixed sequence of values, wrapping around.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// fakeClock is a manually advanced millisecond clock.
type fakeClock struct {
	ms float64
}

func (c *fakeClock) NowMs() float64 { return c.ms }

func testFieldConfig() config.FieldConfig {
	return config.Default().Field
}

// newTestField creates a field on an 800x600 viewport.
func newTestField(t *testing.T, s Settings, rng Rand, clock Clock) *Field {
	t.Helper()
	cfg := testFieldConfig()
	cam := camera.New(800, 600, cfg.FocalLength)
	return New(cfg, cam, Options{Rand: rng, Clock: clock, Settings: &s})
}

func defaultTestSettings() Settings {
	return DefaultSettings(config.Default().Defaults)
}

// frameMs is one frame at exactly 60fps, in milliseconds.
const frameMs = 1000.0 / 60.0

func newTestCamera() *camera.Camera {
	return camera.New(800, 600, testFieldConfig().FocalLength)
}

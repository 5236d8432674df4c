package starfield

import "time"

// Rand is a source of uniform random numbers in [0, 1).
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Clock supplies the current time in milliseconds.
// It must share its time base with the timestamps passed to Field.Update,
// since Resume re-anchors frame timing to it.
type Clock interface {
	NowMs() float64
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() float64

// NowMs calls f.
func (f ClockFunc) NowMs() float64 { return f() }

// wallClock reports monotonic milliseconds since it was created.
type wallClock struct {
	start time.Time
}

func newWallClock() wallClock {
	return wallClock{start: time.Now()}
}

func (c wallClock) NowMs() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

package telemetry

// FrameSample is the field state observed at the end of one frame.
type FrameSample struct {
	TimestampMs float64
	FPS         int
	StarCount   int
	Pooled      int
	Recycled    uint64 // Running total
	Paused      bool
}

// Collector accumulates frame samples within time windows and produces WindowStats.
type Collector struct {
	windowMs float64

	windowStartFrame int
	windowStartMs    float64
	startRecycled    uint64
	started          bool

	frame      int
	fps        []float64
	reductions int
	pausedMs   float64
	lastMs     float64
	last       FrameSample
}

// NewCollector creates a collector flushing every windowSec seconds of frame time.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 10
	}
	return &Collector{windowMs: windowSec * 1000}
}

// RecordFrame adds one frame's sample to the current window.
func (c *Collector) RecordFrame(s FrameSample) {
	if !c.started {
		c.started = true
		c.windowStartMs = s.TimestampMs
		c.startRecycled = s.Recycled
		c.lastMs = s.TimestampMs
	}
	if s.Paused && s.TimestampMs > c.lastMs {
		c.pausedMs += s.TimestampMs - c.lastMs
	}
	c.lastMs = s.TimestampMs

	c.frame++
	c.fps = append(c.fps, float64(s.FPS))
	c.last = s
}

// RecordReduction records a governor cut.
func (c *Collector) RecordReduction() {
	c.reductions++
}

// Frame returns the number of frames recorded so far.
func (c *Collector) Frame() int {
	return c.frame
}

// ShouldFlush reports whether the current window has run its full length.
func (c *Collector) ShouldFlush(nowMs float64) bool {
	return c.started && nowMs-c.windowStartMs >= c.windowMs
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush() WindowStats {
	mean, p10, p50, p90 := ComputeFPSStats(c.fps)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   c.frame,
		SimTimeSec:       c.last.TimestampMs / 1000,
		StarCount:        c.last.StarCount,
		Pooled:           c.last.Pooled,
		Recycles:         c.last.Recycled - c.startRecycled,
		Reductions:       c.reductions,
		PausedMs:         c.pausedMs,
		FPSMean:          mean,
		FPSP10:           p10,
		FPSP50:           p50,
		FPSP90:           p90,
	}

	c.windowStartFrame = c.frame
	c.windowStartMs = c.last.TimestampMs
	c.startRecycled = c.last.Recycled
	c.fps = c.fps[:0]
	c.reductions = 0
	c.pausedMs = 0

	return stats
}

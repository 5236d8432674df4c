package game

import (
	"github.com/pthm-cable/starfield/telemetry"
)

// recordTelemetry samples the frame and flushes the stats window when due.
func (g *Game) recordTelemetry(ts float64) {
	g.collector.RecordFrame(telemetry.FrameSample{
		TimestampMs: ts,
		FPS:         g.field.FPS(),
		StarCount:   g.field.Len(),
		Pooled:      g.field.PoolSize(),
		Recycled:    g.field.Recycled(),
		Paused:      g.field.Paused(),
	})

	if !g.collector.ShouldFlush(ts) {
		return
	}

	stats := g.collector.Flush()
	perfStats := g.perf.Stats()

	if g.logStats {
		g.log.Info("stats", "window", stats, "perf", perfStats)
	}

	if g.output != nil {
		if err := g.output.WriteStats(stats); err != nil {
			g.log.Error("failed to write stats", "error", err)
		}
		if err := g.output.WritePerf(perfStats.ToCSV(g.frames, g.field.FPS(), g.field.Len())); err != nil {
			g.log.Error("failed to write perf", "error", err)
		}
	}
}

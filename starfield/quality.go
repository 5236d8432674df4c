package starfield

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/starfield/config"
)

// Governor lowers the particle count when the measured frame rate degrades.
// It samples at a fixed interval of frame time rather than every frame, so one
// slow frame cannot trigger a cut.
type Governor struct {
	cfg       config.QualityConfig
	lastCheck float64
	log       *slog.Logger
}

// NewGovernor creates a governor. A nil logger uses slog.Default().
func NewGovernor(cfg config.QualityConfig, log *slog.Logger) *Governor {
	if log == nil {
		log = slog.Default()
	}
	return &Governor{cfg: cfg, log: log}
}

// Check evaluates the frame rate at timestamp nowMs.
// It returns the reduced count and true when a reduction is due.
func (g *Governor) Check(nowMs float64, fps, count int) (int, bool) {
	if !g.cfg.Enabled {
		return count, false
	}
	if nowMs-g.lastCheck <= g.cfg.CheckIntervalMs {
		return count, false
	}
	g.lastCheck = nowMs

	if fps >= g.cfg.MinFPS || count <= g.cfg.MinCountToReduce {
		return count, false
	}

	reduced := int(math.Floor(float64(count) * g.cfg.ReduceFactor))
	if reduced < g.cfg.FloorCount {
		reduced = g.cfg.FloorCount
	}
	if reduced >= count {
		return count, false
	}

	g.log.Warn("reducing star count", "fps", fps, "old_count", count, "new_count", reduced)
	return reduced, true
}

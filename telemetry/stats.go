package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats summarises the field over one stats window.
type WindowStats struct {
	WindowStartFrame int     `csv:"-"`
	WindowEndFrame   int     `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	StarCount  int     `csv:"star_count"` // At window end
	Pooled     int     `csv:"pooled"`
	Recycles   uint64  `csv:"recycles"`   // During the window
	Reductions int     `csv:"reductions"` // Governor cuts during the window
	PausedMs   float64 `csv:"paused_ms"`

	// Smoothed FPS as sampled each frame
	FPSMean float64 `csv:"fps_mean"`
	FPSP10  float64 `csv:"fps_p10"`
	FPSP50  float64 `csv:"fps_p50"`
	FPSP90  float64 `csv:"fps_p90"`
}

// ComputeFPSStats returns the mean and the 10th, 50th and 90th percentiles.
func ComputeFPSStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartFrame),
		slog.Int("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("star_count", s.StarCount),
		slog.Int("pooled", s.Pooled),
		slog.Uint64("recycles", s.Recycles),
		slog.Int("reductions", s.Reductions),
		slog.Float64("paused_ms", s.PausedMs),
		slog.Float64("fps_mean", s.FPSMean),
		slog.Float64("fps_p10", s.FPSP10),
		slog.Float64("fps_p50", s.FPSP50),
		slog.Float64("fps_p90", s.FPSP90),
	)
}

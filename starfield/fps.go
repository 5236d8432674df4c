package starfield

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// FPSMeter smooths instantaneous frame rates over a fixed window of samples.
type FPSMeter struct {
	samples []float64
	next    int
	count   int
	current float64
}

// NewFPSMeter creates a meter averaging the last window samples.
// Until the first sample arrives it reports initial.
func NewFPSMeter(window int, initial float64) *FPSMeter {
	if window < 1 {
		window = 1
	}
	return &FPSMeter{
		samples: make([]float64, window),
		current: initial,
	}
}

// Add records one instantaneous FPS sample and recomputes the mean.
func (m *FPSMeter) Add(sample float64) {
	m.samples[m.next] = sample
	m.next = (m.next + 1) % len(m.samples)
	if m.count < len(m.samples) {
		m.count++
	}
	m.current = stat.Mean(m.samples[:m.count], nil)
}

// FPS returns the smoothed estimate rounded to the nearest integer.
func (m *FPSMeter) FPS() int {
	return int(math.Round(m.current))
}

// Mean returns the unrounded smoothed estimate.
func (m *FPSMeter) Mean() float64 {
	return m.current
}

// Count returns the number of samples in the window.
func (m *FPSMeter) Count() int {
	return m.count
}

// Package controls is the front-end independent control model: the actions a
// user can take, the slider ranges, and the state the controls display.
package controls

import (
	"math"

	"github.com/pthm-cable/starfield/starfield"
)

// ActionKind identifies a user request from the controls.
type ActionKind uint8

const (
	ActionTrail ActionKind = iota
	ActionCount
	ActionSpeed
	ActionRadius
	ActionCycleColor
	ActionShowSprite
	ActionReduceMotion
	ActionShowFPS
	ActionTogglePause
	ActionToggleCollapse
	ActionQuit
)

// Action is one control change. Value carries slider positions, On carries toggle states.
type Action struct {
	Kind  ActionKind
	Value float64
	On    bool
}

// Continuous reports whether the action comes from a slider drag.
// Continuous changes are saved after a quiet period rather than immediately.
func (a Action) Continuous() bool {
	switch a.Kind {
	case ActionTrail, ActionCount, ActionSpeed, ActionRadius:
		return true
	}
	return false
}

// Persistent reports whether the action changes a persisted setting.
func (a Action) Persistent() bool {
	return a.Kind != ActionTogglePause && a.Kind != ActionQuit
}

// SliderSpec describes one settings slider.
type SliderSpec struct {
	Kind   ActionKind
	Label  string
	Min    float64
	Max    float64
	Step   float64
	Format string // Value readout
}

// Sliders lists the panel sliders in display order.
var Sliders = []SliderSpec{
	{Kind: ActionTrail, Label: "Trail", Min: 0, Max: 100, Step: 1, Format: "%.0f"},
	{Kind: ActionCount, Label: "Stars", Min: 100, Max: 3000, Step: 1, Format: "%.0f"},
	{Kind: ActionSpeed, Label: "Speed", Min: 0.1, Max: 5, Step: 0.1, Format: "%.1fx"},
	{Kind: ActionRadius, Label: "Radius", Min: 1, Max: 100, Step: 1, Format: "%.0fpx"},
}

// Quantize snaps v to the slider's step and range.
func (s SliderSpec) Quantize(v float64) float64 {
	v = math.Round(v/s.Step) * s.Step
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Changed reports whether v differs from current by at least half a step.
func (s SliderSpec) Changed(current, v float64) bool {
	return math.Abs(v-current) >= s.Step/2
}

// State is what the controls display.
type State struct {
	Settings   starfield.Settings
	ShowSprite bool
	ShowFPS    bool
	Collapsed  bool
	Paused     bool
}

// SliderValue returns the current value behind a slider.
func (s State) SliderValue(kind ActionKind) float64 {
	switch kind {
	case ActionTrail:
		return float64(s.Settings.TrailLength)
	case ActionCount:
		return float64(s.Settings.StarCount)
	case ActionSpeed:
		return s.Settings.SpeedMultiplier
	case ActionRadius:
		return float64(s.Settings.SpawnRadius)
	}
	return 0
}

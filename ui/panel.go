package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/controls"
	"github.com/pthm-cable/starfield/starfield"
)

const (
	panelWidth   = 280
	toggleWidth  = 90
	toggleHeight = 24
)

// Panel is the collapsible settings panel in the top right corner.
type Panel struct {
	Theme Theme
}

// NewPanel creates a panel with the default theme.
func NewPanel() *Panel {
	return &Panel{Theme: DefaultTheme()}
}

// Height returns the expanded panel height.
func (p *Panel) Height() float32 {
	rows := float32(len(controls.Sliders) + 5) // Sliders, colour, three checkboxes, pause
	return p.Theme.Padding*2 + toggleHeight + rows*p.Theme.RowHeight
}

// Draw renders the panel for state and returns the actions the user took this frame.
// Must be called between rl.BeginDrawing and rl.EndDrawing.
func (p *Panel) Draw(state controls.State, screenW float32) []controls.Action {
	var actions []controls.Action
	th := p.Theme
	x := screenW - panelWidth - th.Padding
	y := th.Padding

	toggleText := "Hide"
	if state.Collapsed {
		toggleText = "Settings"
	}
	toggle := rl.Rectangle{X: screenW - toggleWidth - th.Padding, Y: y, Width: toggleWidth, Height: toggleHeight}
	if state.Collapsed {
		if gui.Button(toggle, toggleText) {
			actions = append(actions, controls.Action{Kind: controls.ActionToggleCollapse, On: false})
		}
		return actions
	}

	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: panelWidth, Height: p.Height()}, th.PanelBg)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: panelWidth, Height: p.Height()}, 1, th.PanelBorder)
	if gui.Button(toggle, toggleText) {
		actions = append(actions, controls.Action{Kind: controls.ActionToggleCollapse, On: true})
	}

	inner := x + th.Padding
	row := y + th.Padding + toggleHeight + 4
	sliderW := float32(panelWidth) - th.Padding*2 - th.LabelWidth - th.ValueWidth

	for _, spec := range controls.Sliders {
		cur := state.SliderValue(spec.Kind)
		bounds := rl.Rectangle{X: inner + th.LabelWidth, Y: row, Width: sliderW, Height: th.RowHeight - 8}
		v := float64(gui.SliderBar(bounds, spec.Label, fmt.Sprintf(spec.Format, cur),
			float32(cur), float32(spec.Min), float32(spec.Max)))
		if q := spec.Quantize(v); spec.Changed(cur, q) {
			actions = append(actions, controls.Action{Kind: spec.Kind, Value: q})
		}
		row += th.RowHeight
	}

	colorLabel := "Color: " + starfield.PaletteLabel(state.Settings.StarColor)
	if gui.Button(rl.Rectangle{X: inner, Y: row, Width: panelWidth - th.Padding*2, Height: th.RowHeight - 4}, colorLabel) {
		actions = append(actions, controls.Action{Kind: controls.ActionCycleColor})
	}
	row += th.RowHeight

	checks := []struct {
		kind  controls.ActionKind
		label string
		on    bool
	}{
		{controls.ActionShowSprite, "Show ship", state.ShowSprite},
		{controls.ActionReduceMotion, "Reduce motion", state.Settings.ReduceMotion},
		{controls.ActionShowFPS, "Show FPS", state.ShowFPS},
	}
	for _, c := range checks {
		box := rl.Rectangle{X: inner, Y: row + 3, Width: th.RowHeight - 10, Height: th.RowHeight - 10}
		if on := gui.CheckBox(box, c.label, c.on); on != c.on {
			actions = append(actions, controls.Action{Kind: c.kind, On: on})
		}
		row += th.RowHeight
	}

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: inner, Y: row, Width: 120, Height: th.RowHeight - 4}, pauseText) {
		actions = append(actions, controls.Action{Kind: controls.ActionTogglePause})
	}

	return actions
}

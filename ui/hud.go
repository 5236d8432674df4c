package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the readouts drawn over the field.
type HUDData struct {
	FPSText string // Empty hides the counter
	Paused  bool
	Warning string // Empty hides the warning
	ScreenW int32
	ScreenH int32
}

// HUD renders the heads-up readouts.
type HUD struct {
	Theme Theme
}

// NewHUD creates a HUD with the default theme.
func NewHUD() *HUD {
	return &HUD{Theme: DefaultTheme()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	if data.FPSText != "" {
		rl.DrawText(data.FPSText, 10, 10, 16, h.Theme.ValueColor)
	}

	if data.Paused {
		rl.DrawText("PAUSED", 10, 30, 16, rl.Yellow)
	}

	if data.Warning != "" {
		w := rl.MeasureText(data.Warning, h.Theme.FontSize)
		rl.DrawText(data.Warning, (data.ScreenW-w)/2, data.ScreenH-40, h.Theme.FontSize, h.Theme.WarnColor)
	}
}

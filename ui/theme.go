// Package ui draws the raylib settings panel and the heads-up readouts.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	WarnColor   rl.Color
	Padding     float32
	RowHeight   float32
	LabelWidth  float32
	ValueWidth  float32
	FontSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.White,
		WarnColor:   rl.Color{R: 255, G: 180, B: 60, A: 255},
		Padding:     10,
		RowHeight:   26,
		LabelWidth:  50,
		ValueWidth:  50,
		FontSize:    14,
	}
}

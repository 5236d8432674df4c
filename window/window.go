// Package window is the raylib front end. Together with ui and
// renderer/rlcanvas it holds every cgo dependency of the module.
package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/controls"
	"github.com/pthm-cable/starfield/game"
	"github.com/pthm-cable/starfield/renderer/rlcanvas"
	"github.com/pthm-cable/starfield/starfield"
	"github.com/pthm-cable/starfield/ui"
)

// Run opens a resizable raylib window and runs until it is closed.
// opts.Clock and the viewport are set from the window.
func Run(opts game.Options, maxFrames int) {
	cfg := opts.Config

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	nowMs := func() float64 { return rl.GetTime() * 1000 }
	opts.Clock = starfield.ClockFunc(nowMs)
	opts.ViewportW = float64(rl.GetScreenWidth())
	opts.ViewportH = float64(rl.GetScreenHeight())

	g := game.New(opts)
	defer g.Close()

	canvas := rlcanvas.New()
	panel := ui.NewPanel()
	hud := ui.NewHUD()

	for !rl.WindowShouldClose() && !g.Quit() {
		ts := nowMs()
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()

		if rl.IsWindowResized() {
			g.RequestResize(float64(w), float64(h), ts)
		}
		for r := rl.GetCharPressed(); r != 0; r = rl.GetCharPressed() {
			if a, ok := g.KeyAction(r); ok {
				g.Handle(a, ts)
			}
		}

		var actions []controls.Action
		rl.BeginDrawing()
		g.Frame(ts, canvas, func() {
			hud.Draw(ui.HUDData{
				FPSText: g.FPSText(),
				Paused:  g.Field().Paused(),
				Warning: g.Warning(ts),
				ScreenW: int32(w),
				ScreenH: int32(h),
			})
			actions = panel.Draw(g.State(), float32(w))
			rl.EndDrawing()
		})
		for _, a := range actions {
			g.Handle(a, ts)
		}

		if maxFrames > 0 && g.Frames() >= maxFrames {
			break
		}
	}
}

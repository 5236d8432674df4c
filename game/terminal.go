package game

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/starfield"
)

const terminalHelp = "space pause  +/- speed  [/] stars  ,/. trail  c color  m motion  s ship  f fps  q quit"

// RunTerminal runs the field in the terminal until the user quits.
func RunTerminal(opts Options, maxFrames int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising terminal screen: %w", err)
	}
	defer screen.Fini()

	return runTerminal(screen, opts, maxFrames)
}

// runTerminal drives an initialised screen. The only other goroutine pumps
// input events; all game calls happen on this one.
func runTerminal(screen tcell.Screen, opts Options, maxFrames int) error {
	cfg := opts.Config
	canvas := renderer.NewTerminal(screen, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)

	start := time.Now()
	nowMs := func() float64 { return float64(time.Since(start)) / float64(time.Millisecond) }
	opts.Clock = starfield.ClockFunc(nowMs)
	opts.ViewportW, opts.ViewportH = canvas.Size()

	g := New(opts)
	defer g.Close()

	ticker := time.NewTicker(time.Duration(cfg.Terminal.FrameIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen, events, done)

	for !g.Quit() {
		select {
		case ev := <-events:
			g.handleTerminalEvent(ev, screen, canvas, nowMs())

		case <-ticker.C:
			ts := nowMs()
			g.Frame(ts, canvas, func() {
				drawStatus(screen, g.FPSText(), g.Warning(ts), g.Field().Paused())
				canvas.Show()
			})
			if maxFrames > 0 && g.Frames() >= maxFrames {
				return nil
			}
		}
	}
	return nil
}

// pumpEvents forwards screen events until the screen is finalised or done is closed.
func pumpEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return // Screen finalised
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (g *Game) handleTerminalEvent(ev tcell.Event, screen tcell.Screen, canvas *renderer.Terminal, ts float64) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		r := ev.Rune()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			r = 'q'
		case tcell.KeyRune:
		default:
			return
		}
		if a, ok := g.KeyAction(r); ok {
			g.Handle(a, ts)
		}

	case *tcell.EventResize:
		screen.Sync()
		w, h := canvas.Size()
		g.RequestResize(w, h, ts)
	}
}

// drawStatus writes the FPS readout on the top row and the help line on the bottom row.
func drawStatus(screen tcell.Screen, fps, warning string, paused bool) {
	cols, rows := screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	top := fps
	if paused {
		top += "  PAUSED"
	}
	drawText(screen, 0, 0, cols, top, style)

	if warning != "" {
		drawText(screen, 0, rows-2, cols, warning, style.Foreground(tcell.ColorOrange))
	}
	drawText(screen, 0, rows-1, cols, terminalHelp, style.Foreground(tcell.ColorGray))
}

func drawText(screen tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	if y < 0 {
		return
	}
	for _, r := range text {
		if x >= maxW {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

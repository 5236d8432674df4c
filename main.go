package main

import (
	"flag"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/game"
	"github.com/pthm-cable/starfield/settings"
	"github.com/pthm-cable/starfield/telemetry"
	"github.com/pthm-cable/starfield/window"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", "window", "Front end: window, terminal or headless")
	settingsPath := flag.String("settings", "", "Path to the saved settings file (empty = user config dir)")
	noSave := flag.Bool("no-save", false, "Do not load or save settings")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stdout")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// The terminal front end owns stdout, so its logs go to a file or nowhere
	var logOut io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Error("failed to open log file", "path", *logFile, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	} else if *mode == "terminal" {
		logOut = io.Discard
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var store *settings.Store
	if !*noSave {
		path := *settingsPath
		if path == "" {
			p, err := settings.DefaultPath()
			if err != nil {
				logger.Warn("no user config directory, settings will not persist", "error", err)
			}
			path = p
		}
		if path != "" {
			store = settings.NewStore(path, settings.Defaults(cfg))
		}
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		logger.Warn("failed to write config snapshot", "error", err)
	}

	opts := game.Options{
		Config:   cfg,
		Store:    store,
		Rand:     rand.New(rand.NewSource(rngSeed)),
		Logger:   logger,
		Output:   output,
		LogStats: *logStats,
	}

	logger.Info("starting starfield", "mode", *mode, "seed", rngSeed, "max_frames", *maxFrames)

	switch *mode {
	case "window":
		window.Run(opts, *maxFrames)

	case "terminal":
		if err := game.RunTerminal(opts, *maxFrames); err != nil {
			logger.Error("terminal mode failed", "error", err)
			os.Exit(1)
		}

	case "headless":
		if *maxFrames <= 0 {
			logger.Warn("headless mode without -max-frames runs until interrupted")
		}
		res := game.RunHeadless(opts, *maxFrames)
		logger.Info("headless run complete",
			"frames", res.Frames,
			"stars", res.StarCount,
			"recycled", res.Recycled,
			"fps", res.FPS,
			"circles", res.Circles,
			"lines", res.Lines,
			"perf", res.Perf,
		)

	default:
		logger.Error("unknown mode", "mode", *mode)
		os.Exit(2)
	}
}

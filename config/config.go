// Package config provides configuration loading and access for the starfield.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all starfield configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Quality   QualityConfig   `yaml:"quality"`
	Sprite    SpriteConfig    `yaml:"sprite"`
	Loop      LoopConfig      `yaml:"loop"`
	FirstRun  FirstRunConfig  `yaml:"first_run"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig holds the projection and simulation constants of the particle field.
type FieldConfig struct {
	FocalLength     float64 `yaml:"focal_length"`
	MaxDepth        float64 `yaml:"max_depth"`
	NearPlane       float64 `yaml:"near_plane"`      // Particles at or below this depth are recycled
	ViewportMargin  float64 `yaml:"viewport_margin"` // Expansion of the viewport for the out-of-bounds recycle
	TrailThreshold  float64 `yaml:"trail_threshold"` // Trail factor must exceed this for trails to draw
	FPSWindow       int     `yaml:"fps_window"`
	InitialFPS      float64 `yaml:"initial_fps"`
	MaxFrameDelta   float64 `yaml:"max_frame_delta"` // Seconds
	MinFrameDelta   float64 `yaml:"min_frame_delta"` // Seconds, floor for FPS samples
	ReducedSpeedCap float64 `yaml:"reduced_speed_cap"`
}

// DefaultsConfig holds the user-tunable settings applied before any persisted ones.
type DefaultsConfig struct {
	TrailLength     int     `yaml:"trail_length"`
	StarCount       int     `yaml:"star_count"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	SpawnRadius     int     `yaml:"spawn_radius"`
	StarColor       string  `yaml:"star_color"`
	ReduceMotion    bool    `yaml:"reduce_motion"`
}

// QualityConfig holds adaptive quality thresholds.
type QualityConfig struct {
	Enabled          bool    `yaml:"enabled"`
	CheckIntervalMs  float64 `yaml:"check_interval_ms"`
	MinFPS           int     `yaml:"min_fps"`             // Reduce when the smoothed FPS drops below this
	MinCountToReduce int     `yaml:"min_count_to_reduce"` // Only reduce while the count is above this
	ReduceFactor     float64 `yaml:"reduce_factor"`
	FloorCount       int     `yaml:"floor_count"`
	WarnCount        int     `yaml:"warn_count"` // Counts above this log a performance warning
}

// SpriteConfig holds the decorative ship layout and animation constants.
type SpriteConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	MarginRight     float64 `yaml:"margin_right"`
	MarginBottom    float64 `yaml:"margin_bottom"`
	FadeStep        float64 `yaml:"fade_step"`
	BlinkAfterMs    float64 `yaml:"blink_after_ms"`
	BlinkDurationMs float64 `yaml:"blink_duration_ms"`
	LookChance      float64 `yaml:"look_chance"`
}

// LoopConfig holds the driving loop cadences.
type LoopConfig struct {
	ResizeDebounceMs     float64 `yaml:"resize_debounce_ms"`
	SaveDebounceMs       float64 `yaml:"save_debounce_ms"`
	FPSDisplayIntervalMs float64 `yaml:"fps_display_interval_ms"`
}

// FirstRunConfig holds defaults applied when no settings file exists yet.
type FirstRunConfig struct {
	CompactWidth         int  `yaml:"compact_width"`
	CompactStarCount     int  `yaml:"compact_star_count"`
	PrefersReducedMotion bool `yaml:"prefers_reduced_motion"`
}

// TerminalConfig holds terminal front end parameters.
type TerminalConfig struct {
	CellWidth       int `yaml:"cell_width"`  // Virtual pixels per cell column
	CellHeight      int `yaml:"cell_height"` // Virtual pixels per cell row
	FrameIntervalMs int `yaml:"frame_interval_ms"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds per logged window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameIntervalMs float64 // 1000 / Screen.TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	f := c.Field
	if f.MaxDepth <= 0 {
		return fmt.Errorf("field.max_depth must be positive, got %v", f.MaxDepth)
	}
	if f.NearPlane <= 0 || f.NearPlane >= f.MaxDepth {
		return fmt.Errorf("field.near_plane must be in (0, max_depth), got %v", f.NearPlane)
	}
	if f.FocalLength <= 0 {
		return fmt.Errorf("field.focal_length must be positive, got %v", f.FocalLength)
	}
	if f.FPSWindow < 1 {
		return fmt.Errorf("field.fps_window must be at least 1, got %d", f.FPSWindow)
	}
	if f.MinFrameDelta <= 0 || f.MinFrameDelta > f.MaxFrameDelta {
		return fmt.Errorf("field.min_frame_delta must be in (0, max_frame_delta], got %v", f.MinFrameDelta)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FrameIntervalMs = 1000.0 / float64(c.Screen.TargetFPS)

	if c.Terminal.CellWidth <= 0 {
		c.Terminal.CellWidth = 8
	}
	if c.Terminal.CellHeight <= 0 {
		c.Terminal.CellHeight = 16
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

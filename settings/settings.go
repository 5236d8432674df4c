// Package settings persists the user-tunable settings between runs.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/sprite"
	"github.com/pthm-cable/starfield/starfield"
)

// Persisted is everything the controls remember.
type Persisted struct {
	starfield.Settings `yaml:",inline"`

	ShowSprite bool `yaml:"show_sprite"`
	ShowFPS    bool `yaml:"show_fps"`
	Collapsed  bool `yaml:"collapsed"`
}

// Defaults returns the persisted settings built from the config defaults.
func Defaults(cfg *config.Config) Persisted {
	return Persisted{
		Settings:   starfield.DefaultSettings(cfg.Defaults),
		ShowSprite: true,
		ShowFPS:    true,
	}
}

// FirstRunDefaults returns the defaults for a run with no saved settings,
// tuned for the viewport width and the motion preference.
func FirstRunDefaults(cfg *config.Config, viewportW float64) Persisted {
	p := Defaults(cfg)
	if viewportW <= float64(cfg.FirstRun.CompactWidth) {
		p.StarCount = cfg.FirstRun.CompactStarCount
	}
	if cfg.FirstRun.PrefersReducedMotion {
		p.ReduceMotion = true
	}
	return p
}

// DefaultPath returns the settings file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, "starfield", "settings.yaml"), nil
}

// Store reads and writes Persisted settings as a YAML file.
type Store struct {
	path     string
	defaults Persisted
}

// NewStore creates a store on path. Keys missing from the file take their
// values from defaults.
func NewStore(path string, defaults Persisted) *Store {
	return &Store{path: path, defaults: defaults}
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. found is false when no file exists yet.
func (s *Store) Load() (p Persisted, found bool, err error) {
	p = s.defaults

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, false, nil
	}
	if err != nil {
		return s.defaults, false, fmt.Errorf("reading settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return s.defaults, false, fmt.Errorf("parsing settings file: %w", err)
	}
	return p, true, nil
}

// Save writes the settings atomically: a temp file in the same directory is
// renamed over the old one.
func (s *Store) Save(p Persisted) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name()) // No-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing settings file: %w", err)
	}
	return nil
}

// Initial loads the saved settings, or first-run defaults when there are none.
// A damaged file is logged and treated as a first run.
func Initial(s *Store, cfg *config.Config, viewportW float64, log *slog.Logger) Persisted {
	p, found, err := s.Load()
	if err != nil {
		log.Warn("could not load settings, using defaults", "path", s.Path(), "error", err)
	}
	if !found {
		return FirstRunDefaults(cfg, viewportW)
	}
	return p
}

// Apply pushes p through the field and sprite setters.
func Apply(p Persisted, field *starfield.Field, sp *sprite.Sprite, cfg config.QualityConfig, log *slog.Logger) {
	field.SetTrailLength(p.TrailLength)
	field.SetParticleCount(p.StarCount)
	field.SetSpeedMultiplier(p.SpeedMultiplier)
	field.SetSpawnRadius(p.SpawnRadius)
	field.SetStarColor(p.StarColor)
	field.SetReduceMotion(p.ReduceMotion)

	if sp != nil {
		sp.SetVisible(p.ShowSprite)
		sp.SetReduceMotion(p.ReduceMotion)
	}

	WarnIfHeavy(p.StarCount, cfg, log)
}

// WarnIfHeavy logs a performance warning for star counts above the warn threshold.
func WarnIfHeavy(count int, cfg config.QualityConfig, log *slog.Logger) bool {
	if count <= cfg.WarnCount {
		return false
	}
	log.Warn("high star count may reduce performance", "star_count", count, "warn_count", cfg.WarnCount)
	return true
}

// Capture builds the persisted form of the current field state and UI flags.
func Capture(field *starfield.Field, showSprite, showFPS, collapsed bool) Persisted {
	return Persisted{
		Settings:   field.Settings(),
		ShowSprite: showSprite,
		ShowFPS:    showFPS,
		Collapsed:  collapsed,
	}
}

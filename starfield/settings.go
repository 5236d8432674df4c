package starfield

import "github.com/pthm-cable/starfield/config"

// Settings is the user-tunable configuration of a field.
// It is owned by the Field and only changes through the Field's setters.
type Settings struct {
	TrailLength     int     `yaml:"trail_length"` // 0-100
	StarCount       int     `yaml:"star_count"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	SpawnRadius     int     `yaml:"spawn_radius"` // Pixels
	StarColor       string  `yaml:"star_color"`   // Hex colour, "rainbow" or "natural"
	ReduceMotion    bool    `yaml:"reduce_motion"`
}

// DefaultSettings builds settings from the config defaults.
func DefaultSettings(d config.DefaultsConfig) Settings {
	return Settings{
		TrailLength:     d.TrailLength,
		StarCount:       d.StarCount,
		SpeedMultiplier: d.SpeedMultiplier,
		SpawnRadius:     d.SpawnRadius,
		StarColor:       d.StarColor,
		ReduceMotion:    d.ReduceMotion,
	}
}

// TrailFactor maps the trail length to the fraction of the motion segment drawn.
func (s Settings) TrailFactor() float64 {
	return float64(s.TrailLength) / 100
}

package main

import (
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

type Config struct {
	Run     RunConfig     `toml:"run"`
	World   WorldConfig   `toml:"world"`
	Logging LoggingConfig `toml:"logging"`
}

type RunConfig struct {
	Duration       time.Duration `toml:"duration"`
	Entities       int           `toml:"entities"`
	Seed           uint64        `toml:"seed"`
	Profile        string        `toml:"profile"`     // "", "cpu" or "mem"
	ProfileDir     string        `toml:"profile_dir"` // where profile output goes
	GCPauseMetrics bool          `toml:"gc_pause_metrics"`
}

type WorldConfig struct {
	Width        float32 `toml:"width"`
	Height       float32 `toml:"height"`
	MaxSpeed     float32 `toml:"max_speed"`
	MinLifetime  float64 `toml:"min_lifetime"`  // seconds
	MaxLifetime  float64 `toml:"max_lifetime"`  // seconds
	ChurnPercent int     `toml:"churn_percent"` // share of movers toggled per frame (0-100)
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a scenario file on top of the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, eris.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Run.Duration <= 0:
		return eris.New("run.duration must be positive")
	case c.Run.Entities < 0:
		return eris.New("run.entities must not be negative")
	case c.Run.Profile != "" && c.Run.Profile != "cpu" && c.Run.Profile != "mem":
		return eris.Errorf("run.profile %q is not one of cpu, mem", c.Run.Profile)
	case !positiveFinite(c.World.Width) || !positiveFinite(c.World.Height):
		return eris.New("world size must be positive and finite")
	case !positiveFinite(c.World.MaxSpeed):
		return eris.New("world.max_speed must be positive and finite")
	case c.World.MinLifetime <= 0 || c.World.MaxLifetime < c.World.MinLifetime:
		return eris.New("world lifetimes must satisfy 0 < min_lifetime <= max_lifetime")
	case c.World.ChurnPercent < 0 || c.World.ChurnPercent > 100:
		return eris.New("world.churn_percent must be within 0-100")
	}
	return nil
}

func positiveFinite(v float32) bool {
	return v > 0 && !math.IsInf(float64(v), 1)
}

func defaults() *Config {
	return &Config{
		Run: RunConfig{
			Duration:   10 * time.Second,
			Entities:   10000,
			Seed:       1,
			ProfileDir: ".",
		},
		World: WorldConfig{
			Width:        1000,
			Height:       1000,
			MaxSpeed:     50,
			MinLifetime:  1,
			MaxLifetime:  5,
			ChurnPercent: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Package config holds runtime settings for the annotator.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidCanvas = errors.New("canvas width and height must be positive")
	ErrInvalidPort   = errors.New("share port must be between 1 and 65535")
)

// Canvas describes the drawing surface.
type Canvas struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	// Grid is the spacing of background guide lines; 0 hides them.
	Grid float32 `yaml:"grid"`
}

// Share configures the live mirror.
type Share struct {
	Enabled   bool   `yaml:"enabled"`
	Port      int    `yaml:"port"`
	Advertise bool   `yaml:"advertise"`
	Name      string `yaml:"name"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Config struct {
	Canvas Canvas `yaml:"canvas"`
	Share  Share  `yaml:"share"`
	Log    Log    `yaml:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: 800, Height: 500, Grid: 50},
		Share:  Share{Port: 8888, Advertise: true},
		Log:    Log{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values a session cannot run without.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidCanvas, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Share.Port < 1 || c.Share.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Share.Port)
	}
	return nil
}

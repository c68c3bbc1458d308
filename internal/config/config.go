// Package config handles skytool configuration loading and management.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/Faultbox/skyground/internal/solarpos"
	"github.com/Faultbox/skyground/pkg/skymodel"
)

// Config holds all skytool settings.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Sky     SkyConfig     `yaml:"sky"`
	Server  ServerConfig  `yaml:"server"`
	Dome    DomeConfig    `yaml:"dome"`
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig locates the coefficient dataset.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// SkyConfig holds the default sky parameters. When Time is set the sun
// position is computed from Time, Latitude and Longitude instead of
// Elevation and Azimuth.
type SkyConfig struct {
	Elevation  float64 `yaml:"elevation"` // Degrees
	Azimuth    float64 `yaml:"azimuth"`   // Degrees, counter-clockwise from east
	Visibility float64 `yaml:"visibility"`
	Albedo     float64 `yaml:"albedo"`

	Time      string  `yaml:"time"` // RFC 3339
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// ServerConfig holds the query service settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBatch     int           `yaml:"max_batch"` // Queries per websocket message
}

// DomeConfig holds hemisphere sampling settings.
type DomeConfig struct {
	ThetaSteps  int       `yaml:"theta_steps"`
	PhiSteps    int       `yaml:"phi_steps"`
	Wavelengths []float64 `yaml:"wavelengths"`
	Workers     int       `yaml:"workers"` // 0 uses every CPU
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // console or json
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path: "SkyModelDatasetGround.dat",
		},
		Sky: SkyConfig{
			Elevation:  30,
			Azimuth:    90,
			Visibility: 59.4,
			Albedo:     0.5,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBatch:     4096,
		},
		Dome: DomeConfig{
			ThetaSteps:  45,
			PhiSteps:    180,
			Wavelengths: []float64{450, 550, 650},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate reports settings no command can run with.
func (c *Config) Validate() error {
	switch {
	case c.Dome.ThetaSteps <= 0 || c.Dome.PhiSteps <= 0:
		return fmt.Errorf("dome: theta_steps and phi_steps must be positive, got %d and %d", c.Dome.ThetaSteps, c.Dome.PhiSteps)
	case c.Server.MaxBatch <= 0:
		return fmt.Errorf("server: max_batch must be positive, got %d", c.Server.MaxBatch)
	case c.Logging.Format != "console" && c.Logging.Format != "json":
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	if c.Sky.Time != "" {
		if _, err := time.Parse(time.RFC3339, c.Sky.Time); err != nil {
			return fmt.Errorf("sky: time: %w", err)
		}
	}
	return nil
}

// Sun returns the configured sun position in radians.
func (s SkyConfig) Sun() (solarpos.Position, error) {
	if s.Time == "" {
		return solarpos.Position{
			Elevation: s.Elevation * math.Pi / 180,
			Azimuth:   s.Azimuth * math.Pi / 180,
		}, nil
	}
	t, err := time.Parse(time.RFC3339, s.Time)
	if err != nil {
		return solarpos.Position{}, fmt.Errorf("sky: time: %w", err)
	}
	return solarpos.At(t, s.Latitude, s.Longitude), nil
}

// Params converts the sky settings to model parameters.
func (c *Config) Params() (skymodel.Params, error) {
	sun, err := c.Sky.Sun()
	if err != nil {
		return skymodel.Params{}, err
	}
	return skymodel.Params{
		Elevation:  sun.Elevation,
		Visibility: c.Sky.Visibility,
		Albedo:     c.Sky.Albedo,
	}, nil
}

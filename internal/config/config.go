package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"
)

// Config holds all configurable render settings.
type Config struct {
	// Scene and output
	Scene  string `json:"scene" yaml:"scene"`
	Output string `json:"output" yaml:"output"`
	Frames int    `json:"frames" yaml:"frames"`

	// Resolution and parallelism
	Width   int `json:"width" yaml:"width"`
	Height  int `json:"height" yaml:"height"`
	Bands   int `json:"bands" yaml:"bands"`
	Workers int `json:"workers" yaml:"workers"`

	// Integration
	StepSize float32 `json:"step_size" yaml:"step_size"`
	MaxSteps int     `json:"max_steps" yaml:"max_steps"`

	// Shading
	Exposure    float32 `json:"exposure" yaml:"exposure"`
	Falloff     float32 `json:"falloff" yaml:"falloff"`
	Tonemap     bool    `json:"tonemap" yaml:"tonemap"`
	Supersample int     `json:"supersample" yaml:"supersample"`

	// Intermediate band artifacts
	ArtifactURL    string `json:"artifact_url" yaml:"artifact_url"`
	ArtifactFormat string `json:"artifact_format" yaml:"artifact_format"`
	KeepArtifacts  bool   `json:"keep_artifacts" yaml:"keep_artifacts"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Load reads a JSON or YAML config file and returns Config.
// Fields not set in the file keep their zero values; unknown JSON fields are
// rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg, json.RejectUnknownMembers(true))
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// ErrNegative reports a count setting below zero. Zero means "use the default".
var ErrNegative = errors.New("must not be negative")

func (c *Config) validate() error {
	counts := []struct {
		name string
		v    int
	}{
		{"frames", c.Frames},
		{"width", c.Width},
		{"height", c.Height},
		{"bands", c.Bands},
		{"workers", c.Workers},
		{"max_steps", c.MaxSteps},
		{"supersample", c.Supersample},
	}
	for _, f := range counts {
		if f.v < 0 {
			return fmt.Errorf("%s %d: %w", f.name, f.v, ErrNegative)
		}
	}
	return nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty. Negative counts, from the
// file or the flags, are an error.
func (c *Config) Resolve(flags Flags) error {
	if err := flags.validate(); err != nil {
		return fmt.Errorf("config: flag %w", err)
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Bands > 0 {
		c.Bands = flags.Bands
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.ArtifactURL != "" {
		c.ArtifactURL = flags.ArtifactURL
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	// Defaults
	if c.Scene == "" {
		c.Scene = "wallpaper"
	}
	if c.Output == "" {
		if c.Frames > 1 {
			c.Output = filepath.Join("out", "frame_%06d.png")
		} else {
			c.Output = c.Scene + ".png"
		}
	}
	if c.Width <= 0 {
		c.Width = 1920
	}
	if c.Height <= 0 {
		c.Height = 1080
	}
	if c.Bands <= 0 {
		c.Bands = 10
	}
	if c.StepSize <= 0 {
		c.StepSize = 0.02
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = 2000
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.ArtifactURL == "" {
		c.ArtifactURL = "stitch"
	}
	if c.ArtifactFormat == "" {
		c.ArtifactFormat = "png"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene       string
	Output      string
	Width       int
	Height      int
	Bands       int
	Workers     int
	Frames      int
	ArtifactURL string
	LogLevel    string
}

func (f Flags) validate() error {
	c := Config{Width: f.Width, Height: f.Height, Bands: f.Bands, Workers: f.Workers, Frames: f.Frames}
	return c.validate()
}

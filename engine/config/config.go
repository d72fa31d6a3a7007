// Package config loads the harness configuration from YAML and validates it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-tri/common"
	"gopkg.in/yaml.v3"
)

// MeshVariant selects which geometry the harness draws and whether static buffers are uploaded.
type MeshVariant string

const (
	// MeshVariantTriangle draws three vertices generated in the vertex shader; no buffers are bound.
	MeshVariantTriangle MeshVariant = "triangle"

	// MeshVariantVertex draws a triangle from a static vertex buffer without an index buffer.
	MeshVariantVertex MeshVariant = "vertex"

	// MeshVariantIndexed draws the pentagon from static vertex and 16-bit index buffers.
	MeshVariantIndexed MeshVariant = "indexed"
)

// Accepted values for RendererConfig.PresentMode and RendererConfig.PowerPreference.
const (
	PresentModeVSync    = "vsync"
	PresentModeUncapped = "uncapped"

	PowerPreferenceDefault         = "default"
	PowerPreferenceLowPower        = "low-power"
	PowerPreferenceHighPerformance = "high-performance"
)

var (
	ErrInvalidWindowSize      = errors.New("window width and height must be positive")
	ErrInvalidVariant         = errors.New("unknown mesh variant")
	ErrInvalidPresentMode     = errors.New("unknown present mode")
	ErrInvalidPowerPreference = errors.New("unknown power preference")
	ErrInvalidLogLevel        = errors.New("unknown log level")
	ErrInvalidClearColor      = errors.New("clear color components must be within [0, 1]")
)

// WindowConfig holds the initial window geometry and title.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
	MaxWidth  int    `yaml:"max_width"`
	MaxHeight int    `yaml:"max_height"`
}

// RendererConfig holds the GPU context and frame settings.
type RendererConfig struct {
	PresentMode          string      `yaml:"present_mode"`
	PowerPreference      string      `yaml:"power_preference"`
	ForceFallbackAdapter bool        `yaml:"force_fallback_adapter"`
	ClearColor           common.RGBA `yaml:"clear_color"`
}

// MeshConfig selects the drawn geometry.
type MeshConfig struct {
	Variant MeshVariant `yaml:"variant"`
}

// LogConfig holds the logging level name.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the complete harness configuration.
type Config struct {
	Window    WindowConfig   `yaml:"window"`
	Renderer  RendererConfig `yaml:"renderer"`
	Mesh      MeshConfig     `yaml:"mesh"`
	Log       LogConfig      `yaml:"log"`
	Profiling bool           `yaml:"profiling"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: defaults for every field
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "oxy-tri",
			Width:     1280,
			Height:    720,
			MinWidth:  200,
			MinHeight: 150,
			MaxWidth:  3840,
			MaxHeight: 2160,
		},
		Renderer: RendererConfig{
			PresentMode:     PresentModeVSync,
			PowerPreference: PowerPreferenceDefault,
			ClearColor:      common.RGBA{0.1, 0.2, 0.3, 1.0},
		},
		Mesh: MeshConfig{Variant: MeshVariantTriangle},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads a YAML file and decodes it over the defaults. An empty path returns the defaults.
//
// Parameters:
//   - path: the YAML file path, or "" for defaults
//
// Returns:
//   - Config: the decoded and validated configuration
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the decoded and validated configuration
//   - error: an error if decoding or validation fails
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its allowed values.
//
// Returns:
//   - error: the first violation found, wrapping one of the Err* sentinels
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidWindowSize, c.Window.Width, c.Window.Height)
	}
	switch c.Mesh.Variant {
	case MeshVariantTriangle, MeshVariantVertex, MeshVariantIndexed:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidVariant, c.Mesh.Variant)
	}
	switch c.Renderer.PresentMode {
	case PresentModeVSync, PresentModeUncapped:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPresentMode, c.Renderer.PresentMode)
	}
	switch c.Renderer.PowerPreference {
	case PowerPreferenceDefault, PowerPreferenceLowPower, PowerPreferenceHighPerformance:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPowerPreference, c.Renderer.PowerPreference)
	}
	if _, ok := common.ParseLogLevel(c.Log.Level); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	for _, v := range c.Renderer.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %v", ErrInvalidClearColor, c.Renderer.ClearColor)
		}
	}
	return nil
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-tri/common"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
	if cfg.Renderer.PresentMode != PresentModeVSync {
		t.Errorf("default present mode = %q, want %q", cfg.Renderer.PresentMode, PresentModeVSync)
	}
	if cfg.Renderer.ClearColor != (common.RGBA{0.1, 0.2, 0.3, 1.0}) {
		t.Errorf("default clear color = %v", cfg.Renderer.ClearColor)
	}
	if cfg.Mesh.Variant != MeshVariantTriangle {
		t.Errorf("default variant = %q, want %q", cfg.Mesh.Variant, MeshVariantTriangle)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	doc := []byte(`
window:
  title: pentagon
  width: 640
  height: 480
renderer:
  present_mode: uncapped
  clear_color: [0, 0, 0, 1]
mesh:
  variant: indexed
profiling: true
`)
	cfg, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Window.Title != "pentagon" || cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Window.MinWidth != Default().Window.MinWidth {
		t.Errorf("MinWidth = %d, want default %d", cfg.Window.MinWidth, Default().Window.MinWidth)
	}
	if cfg.Renderer.PresentMode != PresentModeUncapped {
		t.Errorf("present mode = %q", cfg.Renderer.PresentMode)
	}
	if cfg.Renderer.PowerPreference != PowerPreferenceDefault {
		t.Errorf("power preference = %q, want default", cfg.Renderer.PowerPreference)
	}
	if cfg.Renderer.ClearColor != (common.RGBA{0, 0, 0, 1}) {
		t.Errorf("clear color = %v", cfg.Renderer.ClearColor)
	}
	if cfg.Mesh.Variant != MeshVariantIndexed || !cfg.Profiling {
		t.Errorf("mesh/profiling = %q/%v", cfg.Mesh.Variant, cfg.Profiling)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Parse(nil) = %+v, want defaults", cfg)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"zero width", "window: {width: 0}", ErrInvalidWindowSize},
		{"negative height", "window: {height: -1}", ErrInvalidWindowSize},
		{"variant", "mesh: {variant: cube}", ErrInvalidVariant},
		{"present mode", "renderer: {present_mode: mailbox}", ErrInvalidPresentMode},
		{"power preference", "renderer: {power_preference: turbo}", ErrInvalidPowerPreference},
		{"log level", "log: {level: chatty}", ErrInvalidLogLevel},
		{"clear color", "renderer: {clear_color: [2, 0, 0, 1]}", ErrInvalidClearColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.doc, err, tt.want)
			}
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("window: {titel: typo}")); err == nil {
		t.Error("Parse() with unknown key returned nil error")
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg != Default() {
		t.Fatalf("Load(\"\") = (%+v, %v), want defaults", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "oxytri.yaml")
	if err := os.WriteFile(path, []byte("mesh: {variant: vertex}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}
	if cfg.Mesh.Variant != MeshVariantVertex {
		t.Errorf("variant = %q, want %q", cfg.Mesh.Variant, MeshVariantVertex)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-tri/engine/config"
)

func TestNewScene(t *testing.T) {
	tests := []struct {
		variant     config.MeshVariant
		wantKey     string
		wantModel   bool
		wantIndexed bool
		wantLayouts int
	}{
		{config.MeshVariantTriangle, "triangle", false, false, 0},
		{config.MeshVariantVertex, "vertex", true, false, 1},
		{config.MeshVariantIndexed, "indexed", true, true, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			s, err := newScene(tt.variant)
			if err != nil {
				t.Fatalf("newScene() error = %v", err)
			}
			if got := s.pipeline.PipelineKey(); got != tt.wantKey {
				t.Errorf("PipelineKey() = %q, want %q", got, tt.wantKey)
			}
			if got := len(s.pipeline.VertexLayouts()); got != tt.wantLayouts {
				t.Errorf("len(VertexLayouts()) = %d, want %d", got, tt.wantLayouts)
			}
			if (s.model != nil) != tt.wantModel {
				t.Fatalf("model present = %v, want %v", s.model != nil, tt.wantModel)
			}
			if s.model != nil && s.model.Indexed() != tt.wantIndexed {
				t.Errorf("Indexed() = %v, want %v", s.model.Indexed(), tt.wantIndexed)
			}
			if err := s.pipeline.Preflight(); err != nil {
				t.Errorf("Preflight() error = %v", err)
			}
		})
	}
}

func TestNewSceneUnknownVariant(t *testing.T) {
	if _, err := newScene("hexagon"); !errors.Is(err, config.ErrInvalidVariant) {
		t.Errorf("newScene() error = %v, want ErrInvalidVariant", err)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxytri.yaml")
	data := []byte("mesh:\n  variant: vertex\nlog:\n  level: warn\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, "", "", false)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Mesh.Variant != config.MeshVariantVertex || cfg.Log.Level != "warn" || cfg.Profiling {
		t.Errorf("file values not kept: %+v", cfg)
	}

	cfg, err = loadConfig(path, "indexed", "debug", true)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Mesh.Variant != config.MeshVariantIndexed || cfg.Log.Level != "debug" || !cfg.Profiling {
		t.Errorf("flags did not override file: %+v", cfg)
	}

	if _, err := loadConfig("", "square", "", false); !errors.Is(err, config.ErrInvalidVariant) {
		t.Errorf("loadConfig() error = %v, want ErrInvalidVariant", err)
	}
}

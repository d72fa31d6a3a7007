// Command oxytri opens a window and redraws a colored triangle, or the indexed pentagon, every frame.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-tri/common"
	"github.com/Carmen-Shannon/oxy-tri/engine"
	"github.com/Carmen-Shannon/oxy-tri/engine/config"
	"github.com/Carmen-Shannon/oxy-tri/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/buffer_provider"
	"github.com/Carmen-Shannon/oxy-tri/engine/window"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	variant := flag.String("variant", "", "mesh variant: triangle, vertex or indexed")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	profile := flag.Bool("profile", false, "log frame statistics once per second")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *variant, *logLevel, *profile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "oxytri:", err)
		os.Exit(1)
	}

	level, _ := common.ParseLogLevel(cfg.Log.Level)
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		common.Logger().Error("startup failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides on top of it.
func loadConfig(path, variant, logLevel string, profile bool) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	cfg.Mesh.Variant = common.Coalesce(config.MeshVariant(variant), cfg.Mesh.Variant)
	cfg.Log.Level = common.Coalesce(logLevel, cfg.Log.Level)
	cfg.Profiling = cfg.Profiling || profile
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cfg config.Config) error {
	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithMinWidth(cfg.Window.MinWidth),
		window.WithMinHeight(cfg.Window.MinHeight),
		window.WithMaxWidth(cfg.Window.MaxWidth),
		window.WithMaxHeight(cfg.Window.MaxHeight),
	)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w, rendererOptions(cfg.Renderer)...)
	if err != nil {
		w.Close()
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	scene, err := newScene(cfg.Mesh.Variant)
	if err != nil {
		r.Release()
		w.Close()
		return err
	}
	if err := r.RegisterPipelines(scene.pipeline); err != nil {
		r.Release()
		w.Close()
		return fmt.Errorf("failed to register %s pipeline: %w", cfg.Mesh.Variant, err)
	}

	var provider buffer_provider.BufferProvider
	if scene.model != nil {
		provider = buffer_provider.NewBufferProvider(scene.model.Name())
		if err := r.InitFrameBuffers(provider, scene.model); err != nil {
			provider.Release()
			r.Release()
			w.Close()
			return err
		}
	}

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithPipelineKey(scene.pipeline.PipelineKey()),
		engine.WithBufferProvider(provider),
		engine.WithProfiling(cfg.Profiling),
		engine.WithProfiler(profiler.NewProfiler()),
	)
	reason, err := eng.Run()
	if err != nil {
		return err
	}
	common.Logger().Info("shut down", "reason", reason)
	return nil
}

func rendererOptions(cfg config.RendererConfig) []renderer.RendererBuilderOption {
	presentMode := renderer.PresentModeVSync
	if cfg.PresentMode == config.PresentModeUncapped {
		presentMode = renderer.PresentModeUncapped
	}

	powerPreference := renderer.PowerPreferenceDefault
	switch cfg.PowerPreference {
	case config.PowerPreferenceLowPower:
		powerPreference = renderer.PowerPreferenceLowPower
	case config.PowerPreferenceHighPerformance:
		powerPreference = renderer.PowerPreferenceHighPerformance
	}

	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(presentMode),
		renderer.WithPowerPreference(powerPreference),
		renderer.WithForceSoftwareRenderer(cfg.ForceFallbackAdapter),
		renderer.WithClearColor(cfg.ClearColor.Color()),
	}
}

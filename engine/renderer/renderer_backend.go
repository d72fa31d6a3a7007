package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing. Every surface supports it.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

func (m PresentMode) wgpu() wgpu.PresentMode {
	if m == PresentModeUncapped {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

// PowerPreference selects which adapter the backend asks for when several are available.
type PowerPreference int

const (
	// PowerPreferenceDefault lets the backend pick an adapter.
	PowerPreferenceDefault PowerPreference = iota

	// PowerPreferenceLowPower prefers an integrated or otherwise power-saving adapter.
	PowerPreferenceLowPower

	// PowerPreferenceHighPerformance prefers a discrete adapter.
	PowerPreferenceHighPerformance
)

func (p PowerPreference) wgpu() wgpu.PowerPreference {
	switch p {
	case PowerPreferenceLowPower:
		return wgpu.PowerPreferenceLowPower
	case PowerPreferenceHighPerformance:
		return wgpu.PowerPreferenceHighPerformance
	default:
		return wgpu.PowerPreferenceUndefined
	}
}

// FrameStatus is the outcome of a single Render call.
type FrameStatus int

const (
	// FrameStatusPresented means the frame was recorded, submitted and presented.
	FrameStatusPresented FrameStatus = iota

	// FrameStatusSkipped means nothing was presented this frame; the next frame may proceed.
	FrameStatusSkipped

	// FrameStatusRecovered means the surface was lost or outdated and has been reconfigured.
	// Nothing was recorded or submitted.
	FrameStatusRecovered

	// FrameStatusFatal means rendering cannot continue and the event loop must exit.
	FrameStatusFatal
)

func (s FrameStatus) String() string {
	switch s {
	case FrameStatusPresented:
		return "presented"
	case FrameStatusSkipped:
		return "skipped"
	case FrameStatusRecovered:
		return "recovered"
	case FrameStatusFatal:
		return "fatal"
	default:
		return fmt.Sprintf("FrameStatus(%d)", int(s))
	}
}

// SurfaceErrorKind classifies a failure to acquire the next surface texture.
type SurfaceErrorKind int

const (
	// SurfaceErrorOther covers any failure not listed below.
	SurfaceErrorOther SurfaceErrorKind = iota

	// SurfaceErrorTimeout means the surface texture did not become available in time.
	SurfaceErrorTimeout

	// SurfaceErrorOutdated means the surface changed (e.g. resized) and must be reconfigured.
	SurfaceErrorOutdated

	// SurfaceErrorLost means the surface was lost and must be reconfigured.
	SurfaceErrorLost

	// SurfaceErrorOutOfMemory means the system ran out of memory while acquiring the texture.
	SurfaceErrorOutOfMemory

	// SurfaceErrorDeviceLost means the device behind the surface is gone.
	SurfaceErrorDeviceLost
)

func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceErrorTimeout:
		return "timeout"
	case SurfaceErrorOutdated:
		return "outdated"
	case SurfaceErrorLost:
		return "lost"
	case SurfaceErrorOutOfMemory:
		return "out of memory"
	case SurfaceErrorDeviceLost:
		return "device lost"
	default:
		return "other"
	}
}

// SurfaceError is returned when the next surface texture cannot be acquired.
type SurfaceError struct {
	Kind SurfaceErrorKind
	Err  error
}

func (e *SurfaceError) Error() string {
	if e.Err == nil {
		return "surface error: " + e.Kind.String()
	}
	return fmt.Sprintf("surface error (%s): %v", e.Kind, e.Err)
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// Recoverable reports whether reconfiguring the surface at its current size clears the error.
func (e *SurfaceError) Recoverable() bool {
	return e.Kind == SurfaceErrorLost || e.Kind == SurfaceErrorOutdated
}

// Fatal reports whether the error ends the render loop.
func (e *SurfaceError) Fatal() bool {
	return e.Kind == SurfaceErrorOutOfMemory || e.Kind == SurfaceErrorDeviceLost
}

// classifySurfaceError maps an acquisition error to a SurfaceError. Typed errors pass through;
// anything else is matched by status name, with case, spaces, hyphens and underscores ignored so
// "OutOfMemory", "out of memory" and the binding's "out-of-memory" all agree.
//
// cogentcore/webgpu drops WGPUSurfaceTexture.status in Surface.GetCurrentTexture and only reports
// errors captured by its validation error scope, so on a real GPU this mostly sees validation
// text. The status names still arrive from any backend that formats them into the error.
func classifySurfaceError(err error) *SurfaceError {
	var se *SurfaceError
	if errors.As(err, &se) {
		return se
	}

	status := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(err.Error()))
	kind := SurfaceErrorOther
	switch {
	case strings.Contains(status, "outofmemory"):
		kind = SurfaceErrorOutOfMemory
	case strings.Contains(status, "devicelost"):
		kind = SurfaceErrorDeviceLost
	case strings.Contains(status, "outdated"):
		kind = SurfaceErrorOutdated
	case strings.Contains(status, "lost"):
		kind = SurfaceErrorLost
	case strings.Contains(status, "timeout"), strings.Contains(status, "timedout"):
		kind = SurfaceErrorTimeout
	}
	return &SurfaceError{Kind: kind, Err: err}
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

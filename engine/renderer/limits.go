//go:build !js

package renderer

import "github.com/cogentcore/webgpu/wgpu"

// requiredLimits returns the device limits requested from the adapter.
func requiredLimits() wgpu.Limits {
	return wgpu.DefaultLimits()
}

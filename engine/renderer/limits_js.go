//go:build js

package renderer

import "github.com/cogentcore/webgpu/wgpu"

// requiredLimits returns the device limits requested from the adapter. Browsers expose
// downlevel WebGL2 class adapters, so the texture size limit is kept at what they support.
func requiredLimits() wgpu.Limits {
	limits := wgpu.DefaultLimits()
	limits.MaxTextureDimension1D = 2048
	limits.MaxTextureDimension2D = 2048
	limits.MaxTextureDimension3D = 256
	return limits
}

//go:build !nogpu

// Package wgpu implements render.GraphicContext on a gogpu/wgpu HAL device.
//
// A Context renders into an offscreen RGBA8 texture. Each DrawPrimitives
// call records one render pass:
//
//	bind group (mask, instance, image, sampler) -> pipeline for the
//	current blend state -> vertex buffer -> draw -> submit
//
// The first pass after NewContext or Clear clears the target; later
// passes load it. ReadPixels copies the target back into an *image.RGBA.
//
// Shaders are compiled from WGSL to SPIR-V with gogpu/naga. When naga
// rejects the source the WGSL is handed to the device unchanged, which
// backends with their own front end (and the noop backend) accept.
//
// Build with -tags nogpu to leave this package out.
package wgpu

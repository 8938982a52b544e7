package pathfill

import (
	_ "embed"
)

// shaderSource is the WGSL program that draws coverage blocks. It reads
// the render.Vertex layout and the textures bound to render.SlotMask,
// render.SlotInstance and render.SlotImage.
//
//go:embed shaders/path_fill.wgsl
var shaderSource string

// ShaderSource returns the WGSL source of the path-fill program.
func ShaderSource() string {
	return shaderSource
}

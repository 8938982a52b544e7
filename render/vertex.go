// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// DrawMode selects the brush evaluated by the fragment stage.
type DrawMode int32

const (
	// DrawModeSolid fills with BrushData2 as a straight-alpha color.
	DrawModeSolid DrawMode = iota
	// DrawModeLinear evaluates a linear gradient.
	DrawModeLinear
	// DrawModeRadial evaluates a radial gradient.
	DrawModeRadial
	// DrawModeImage samples the texture bound to SlotImage.
	DrawModeImage
)

// String returns the mode name.
func (m DrawMode) String() string {
	switch m {
	case DrawModeSolid:
		return "solid"
	case DrawModeLinear:
		return "linear"
	case DrawModeRadial:
		return "radial"
	case DrawModeImage:
		return "image"
	default:
		return "unknown"
	}
}

// Vertex is one corner of a coverage block quad.
//
// Brush data depends on Mode:
//
//	solid:  BrushData2 = color
//	linear: BrushData1 = (offset from start, normalized direction)
//	        BrushData2 = (1/length, first stop, end stop, 0)
//	radial: BrushData1.xy = offset from center
//	        BrushData2 = (1/radius x, first stop, end stop, 1/radius y)
//	image:  BrushData1.xy = image texture coordinate
type Vertex struct {
	Position   f32.Vec4
	BrushData1 f32.Vec4
	BrushData2 f32.Vec4
	TexCoord   f32.Vec2
	Mode       DrawMode
}

// VertexStride is the byte stride per vertex in the vertex buffer.
// Layout per vertex:
//
//	position    (vec4<f32>) = 16 bytes (location 0)
//	brush_data1 (vec4<f32>) = 16 bytes (location 1)
//	brush_data2 (vec4<f32>) = 16 bytes (location 2)
//	tex_coord   (vec2<f32>) =  8 bytes (location 3)
//	mode        (i32)       =  4 bytes (location 4)
//	Total: 60 bytes
const VertexStride = 60

// VerticesPerBlock is the number of vertices emitted for one block.
const VerticesPerBlock = 6

// VertexLayout returns the vertex buffer layout of Vertex.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 1}, // brush_data1
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 2}, // brush_data2
				{Format: gputypes.VertexFormatFloat32x2, Offset: 48, ShaderLocation: 3}, // tex_coord
				{Format: gputypes.VertexFormatSint32, Offset: 56, ShaderLocation: 4},    // mode
			},
		},
	}
}

// AppendVertexBytes appends the little-endian encoding of vertices to dst.
func AppendVertexBytes(dst []byte, vertices []Vertex) []byte {
	need := len(dst) + len(vertices)*VertexStride
	if cap(dst) < need {
		grown := make([]byte, len(dst), need)
		copy(grown, dst)
		dst = grown
	}
	for i := range vertices {
		off := len(dst)
		dst = dst[:off+VertexStride]
		writeVertex(dst[off:], &vertices[i])
	}
	return dst
}

func writeVertex(buf []byte, v *Vertex) {
	putVec(buf[0:16], v.Position[:])
	putVec(buf[16:32], v.BrushData1[:])
	putVec(buf[32:48], v.BrushData2[:])
	putVec(buf[48:56], v.TexCoord[:])
	binary.LittleEndian.PutUint32(buf[56:60], uint32(v.Mode))
}

func putVec(buf []byte, v []float32) {
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}

// DecodeVertex reads one vertex from its little-endian encoding.
func DecodeVertex(buf []byte) Vertex {
	var v Vertex
	getVec(buf[0:16], v.Position[:])
	getVec(buf[16:32], v.BrushData1[:])
	getVec(buf[32:48], v.BrushData2[:])
	getVec(buf[48:56], v.TexCoord[:])
	v.Mode = DrawMode(int32(binary.LittleEndian.Uint32(buf[56:60])))
	return v
}

func getVec(buf []byte, v []float32) {
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
}

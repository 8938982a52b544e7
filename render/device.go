// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Errors returned by GraphicContext implementations.
var (
	// ErrNoProgram is returned when drawing without a bound program.
	ErrNoProgram = errors.New("render: no program bound")

	// ErrInvalidTextureSlot is returned for texture slots outside
	// [0, MaxTextureSlots).
	ErrInvalidTextureSlot = errors.New("render: invalid texture slot")

	// ErrRegionOutOfBounds is returned when an upload region exceeds the texture.
	ErrRegionOutOfBounds = errors.New("render: region is outside texture bounds")

	// ErrForeignResource is returned when a resource created by another
	// context is passed in.
	ErrForeignResource = errors.New("render: resource belongs to another context")
)

// MaxTextureSlots is the number of texture bindings a program can use.
const MaxTextureSlots = 3

// Texture slots used by the path-fill program.
const (
	SlotMask     = 0
	SlotInstance = 1
	SlotImage    = 2
)

// TextureDescriptor describes parameters for creating a texture.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in texels.
	Width int

	// Height is the texture height in texels.
	Height int

	// Format is the texel format.
	Format gputypes.TextureFormat
}

// Texture is a sampled GPU texture.
//
// UpdateRegion expects tightly packed rows of w texels in the texture's
// format.
type Texture interface {
	gpucontext.Texture
	gpucontext.TextureRegionUpdater

	// Format returns the texel format.
	Format() gputypes.TextureFormat

	// Destroy releases the texture.
	Destroy()
}

// VertexBuffer is a GPU buffer of path-fill vertices.
type VertexBuffer interface {
	// Upload replaces the buffer contents starting at vertex 0.
	Upload(vertices []Vertex) error

	// Capacity returns the number of vertices the buffer holds.
	Capacity() int

	// Destroy releases the buffer.
	Destroy()
}

// ProgramDescriptor describes a shader program.
type ProgramDescriptor struct {
	// Label is a debug label.
	Label string

	// Source is the WGSL source with vs_main and fs_main entry points.
	Source string

	// VertexLayout describes the vertex buffer consumed by vs_main.
	VertexLayout []gputypes.VertexBufferLayout
}

// Program is a linked shader program.
type Program interface {
	// Label returns the descriptor label.
	Label() string

	// Destroy releases the program.
	Destroy()
}

// GraphicContext is the drawing surface the renderer submits to.
//
// Binding state persists until the matching Reset call. Implementations
// are not safe for concurrent use.
type GraphicContext interface {
	// Width returns the render target width in pixels.
	Width() int

	// Height returns the render target height in pixels.
	Height() int

	// CreateTexture allocates a texture.
	CreateTexture(desc TextureDescriptor) (Texture, error)

	// CreateVertexBuffer allocates a vertex buffer for capacity vertices.
	CreateVertexBuffer(capacity int) (VertexBuffer, error)

	// CreateProgram compiles and links a program.
	CreateProgram(desc ProgramDescriptor) (Program, error)

	// SetBlendState sets the blend state used by subsequent draws.
	SetBlendState(state gputypes.BlendState)

	// ResetBlendState restores the default (replace) blend state.
	ResetBlendState()

	// SetProgram binds a program.
	SetProgram(p Program)

	// ResetProgram unbinds the program.
	ResetProgram()

	// SetTexture binds tex to slot.
	SetTexture(slot int, tex Texture) error

	// ResetTexture unbinds slot.
	ResetTexture(slot int)

	// DrawPrimitives draws count vertices from vb with the bound state.
	DrawPrimitives(topology gputypes.PrimitiveTopology, count int, vb VertexBuffer) error
}

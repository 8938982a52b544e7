// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software implements render.GraphicContext on the CPU.
//
// Draw calls run the path-fill program in Go: triangles are rasterized
// with a top-left fill convention on a 1/256 pixel grid, fragments are
// shaded like the WGSL program, and the result is blended into an
// *image.RGBA (premultiplied alpha) with the bound blend state.
package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/pathfill/render"
)

// Software backend errors.
var (
	// ErrUnsupportedTopology is returned for primitive topologies other
	// than triangle lists.
	ErrUnsupportedTopology = errors.New("software: unsupported primitive topology")

	// ErrVertexCount is returned when a draw reads past the uploaded vertices.
	ErrVertexCount = errors.New("software: vertex count exceeds uploaded vertices")

	// ErrEmptyProgram is returned for a program without source.
	ErrEmptyProgram = errors.New("software: empty program source")
)

// Stats counts the work submitted to a Context.
type Stats struct {
	Draws          int
	Vertices       int
	Triangles      int
	Fragments      int
	TextureUploads int
}

// Context is a CPU render target.
type Context struct {
	img    *image.RGBA
	blend  gputypes.BlendState
	prog   *program
	slots  [render.MaxTextureSlots]*Texture
	logger *slog.Logger
	stats  Stats
}

// NewContext creates a width x height render target cleared to
// transparent black.
func NewContext(width, height int) *Context {
	return &Context{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		blend:  gputypes.BlendStateReplace(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger used for draw diagnostics. Nil silences it.
func (c *Context) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	c.logger = l
}

// Image returns the render target.
func (c *Context) Image() *image.RGBA { return c.img }

// Clear fills the render target with col.
func (c *Context) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Stats returns the work counters.
func (c *Context) Stats() Stats { return c.stats }

// Width returns the render target width in pixels.
func (c *Context) Width() int { return c.img.Bounds().Dx() }

// Height returns the render target height in pixels.
func (c *Context) Height() int { return c.img.Bounds().Dy() }

// CreateTexture allocates a zeroed texture.
func (c *Context) CreateTexture(desc render.TextureDescriptor) (render.Texture, error) {
	return c.newTexture(desc)
}

// NewImageTexture uploads img as an RGBA8 texture with straight alpha,
// the layout image brushes sample.
func (c *Context) NewImageTexture(img image.Image) (render.Texture, error) {
	b := img.Bounds()
	tex, err := c.newTexture(render.TextureDescriptor{
		Label:  "image",
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: gputypes.TextureFormatRGBA8Unorm,
	})
	if err != nil {
		return nil, err
	}
	nrgba := &image.NRGBA{Pix: tex.pix, Stride: 4 * b.Dx(), Rect: image.Rect(0, 0, b.Dx(), b.Dy())}
	draw.Draw(nrgba, nrgba.Rect, img, b.Min, draw.Src)
	return tex, nil
}

// CreateVertexBuffer allocates a vertex buffer for capacity vertices.
func (c *Context) CreateVertexBuffer(capacity int) (render.VertexBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("software: invalid vertex buffer capacity %d", capacity)
	}
	return &vertexBuffer{
		owner:    c,
		capacity: capacity,
		data:     make([]byte, 0, capacity*render.VertexStride),
	}, nil
}

// CreateProgram accepts any non-empty program. The path-fill stages are
// built into the context.
func (c *Context) CreateProgram(desc render.ProgramDescriptor) (render.Program, error) {
	if desc.Source == "" {
		return nil, ErrEmptyProgram
	}
	return &program{owner: c, label: desc.Label}, nil
}

// SetBlendState sets the blend state of subsequent draws.
func (c *Context) SetBlendState(state gputypes.BlendState) { c.blend = state }

// ResetBlendState restores replace blending.
func (c *Context) ResetBlendState() { c.blend = gputypes.BlendStateReplace() }

// SetProgram binds p. Programs from other contexts unbind instead.
func (c *Context) SetProgram(p render.Program) {
	sp, ok := p.(*program)
	if !ok || sp.owner != c {
		c.logger.Warn("software: ignoring foreign program")
		c.prog = nil
		return
	}
	c.prog = sp
}

// ResetProgram unbinds the program.
func (c *Context) ResetProgram() { c.prog = nil }

// SetTexture binds tex to slot.
func (c *Context) SetTexture(slot int, tex render.Texture) error {
	if slot < 0 || slot >= render.MaxTextureSlots {
		return fmt.Errorf("%w: %d", render.ErrInvalidTextureSlot, slot)
	}
	st, ok := tex.(*Texture)
	if !ok || st.owner != c {
		return render.ErrForeignResource
	}
	c.slots[slot] = st
	return nil
}

// ResetTexture unbinds slot.
func (c *Context) ResetTexture(slot int) {
	if slot >= 0 && slot < render.MaxTextureSlots {
		c.slots[slot] = nil
	}
}

// DrawPrimitives rasterizes count vertices of vb as a triangle list.
func (c *Context) DrawPrimitives(topology gputypes.PrimitiveTopology, count int, vb render.VertexBuffer) error {
	if c.prog == nil {
		return render.ErrNoProgram
	}
	if topology != gputypes.PrimitiveTopologyTriangleList {
		return fmt.Errorf("%w: %v", ErrUnsupportedTopology, topology)
	}
	svb, ok := vb.(*vertexBuffer)
	if !ok || svb.owner != c {
		return render.ErrForeignResource
	}
	if count > svb.count() {
		return fmt.Errorf("%w: %d > %d", ErrVertexCount, count, svb.count())
	}

	var tri [3]render.Vertex
	for i := 0; i+3 <= count; i += 3 {
		for k := range tri {
			tri[k] = svb.vertex(i + k)
		}
		c.drawTriangle(&tri)
		c.stats.Triangles++
	}
	c.stats.Draws++
	c.stats.Vertices += count
	c.logger.Debug("software: draw", "program", c.prog.label, "vertices", count)
	return nil
}

type program struct {
	owner *Context
	label string
}

func (p *program) Label() string { return p.label }
func (p *program) Destroy()      {}

// vertexBuffer keeps vertices in their GPU byte layout.
type vertexBuffer struct {
	owner    *Context
	capacity int
	data     []byte
}

func (b *vertexBuffer) Upload(vertices []render.Vertex) error {
	if len(vertices) > b.capacity {
		return fmt.Errorf("software: %d vertices exceed buffer capacity %d", len(vertices), b.capacity)
	}
	b.data = render.AppendVertexBytes(b.data[:0], vertices)
	return nil
}

func (b *vertexBuffer) Capacity() int { return b.capacity }
func (b *vertexBuffer) Destroy()      { b.data = nil }

func (b *vertexBuffer) count() int { return len(b.data) / render.VertexStride }

func (b *vertexBuffer) vertex(i int) render.Vertex {
	return render.DecodeVertex(b.data[i*render.VertexStride:])
}

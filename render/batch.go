// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Default batch settings.
const (
	// DefaultVertexBuffers is the number of vertex buffers rotated between flushes.
	DefaultVertexBuffers = 4

	// DefaultMaskSize is the edge length of the R8 mask textures.
	DefaultMaskSize = 512

	// DefaultInstanceWidth is the width of the RGBA32F instance textures.
	DefaultInstanceWidth = 512

	// DefaultVertexCapacity is the vertex count of each vertex buffer.
	DefaultVertexCapacity = 6 * 1024
)

// BatchConfig sizes the resources handed out by a BatchBuffer.
type BatchConfig struct {
	// VertexBuffers is how many vertex buffers (and texture sets) rotate.
	VertexBuffers int

	// VertexCapacity is the vertex count of each vertex buffer.
	VertexCapacity int

	// MaskSize is the edge length of the square R8 mask textures.
	MaskSize int

	// InstanceWidth is the width of the one-row RGBA32F instance textures.
	InstanceWidth int
}

// DefaultBatchConfig returns the default batch sizes.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		VertexBuffers:  DefaultVertexBuffers,
		VertexCapacity: DefaultVertexCapacity,
		MaskSize:       DefaultMaskSize,
		InstanceWidth:  DefaultInstanceWidth,
	}
}

func (c BatchConfig) withDefaults() BatchConfig {
	d := DefaultBatchConfig()
	if c.VertexBuffers <= 0 {
		c.VertexBuffers = d.VertexBuffers
	}
	if c.VertexCapacity <= 0 {
		c.VertexCapacity = d.VertexCapacity
	}
	if c.MaskSize <= 0 {
		c.MaskSize = d.MaskSize
	}
	if c.InstanceWidth <= 0 {
		c.InstanceWidth = d.InstanceWidth
	}
	return c
}

type r8Transfer struct {
	tex  *TransferTexture
	used int
}

// BatchBuffer hands out the reusable resources of a batched renderer:
// a rotation of vertex buffers, mask (R8) and instance (RGBA32F) textures,
// and CPU transfer textures keyed by a caller-chosen id.
//
// Resources are created lazily on first request and reused afterwards.
type BatchBuffer struct {
	gc  GraphicContext
	cfg BatchConfig

	vertexBuffers []VertexBuffer
	nextVertex    int

	maskTextures     []Texture
	nextMask         int
	instanceTextures []Texture
	nextInstance     int

	transfersR8     map[int]*r8Transfer
	transfersRGBA32 map[int]*TransferTexture
}

// NewBatchBuffer creates a batch buffer allocating from gc.
// Zero fields of cfg take their defaults.
func NewBatchBuffer(gc GraphicContext, cfg BatchConfig) *BatchBuffer {
	cfg = cfg.withDefaults()
	return &BatchBuffer{
		gc:               gc,
		cfg:              cfg,
		vertexBuffers:    make([]VertexBuffer, cfg.VertexBuffers),
		maskTextures:     make([]Texture, cfg.VertexBuffers),
		instanceTextures: make([]Texture, cfg.VertexBuffers),
		transfersR8:      make(map[int]*r8Transfer),
		transfersRGBA32:  make(map[int]*TransferTexture),
	}
}

// Config returns the effective configuration.
func (b *BatchBuffer) Config() BatchConfig { return b.cfg }

// GraphicContext returns the context resources are allocated from.
func (b *BatchBuffer) GraphicContext() GraphicContext { return b.gc }

// VertexBuffer returns the next vertex buffer of the rotation and its index.
func (b *BatchBuffer) VertexBuffer() (VertexBuffer, int, error) {
	i := b.nextVertex
	b.nextVertex = (b.nextVertex + 1) % len(b.vertexBuffers)
	if b.vertexBuffers[i] == nil {
		vb, err := b.gc.CreateVertexBuffer(b.cfg.VertexCapacity)
		if err != nil {
			return nil, 0, fmt.Errorf("render: create vertex buffer %d: %w", i, err)
		}
		b.vertexBuffers[i] = vb
	}
	return b.vertexBuffers[i], i, nil
}

// TextureR8 returns the next mask texture of the rotation.
func (b *BatchBuffer) TextureR8() (Texture, error) {
	return b.rotate(b.maskTextures, &b.nextMask, TextureDescriptor{
		Label:  "pathfill-mask",
		Width:  b.cfg.MaskSize,
		Height: b.cfg.MaskSize,
		Format: gputypes.TextureFormatR8Unorm,
	})
}

// TextureRGBA32F returns the next instance texture of the rotation.
func (b *BatchBuffer) TextureRGBA32F() (Texture, error) {
	return b.rotate(b.instanceTextures, &b.nextInstance, TextureDescriptor{
		Label:  "pathfill-instance",
		Width:  b.cfg.InstanceWidth,
		Height: 1,
		Format: gputypes.TextureFormatRGBA32Float,
	})
}

func (b *BatchBuffer) rotate(pool []Texture, next *int, desc TextureDescriptor) (Texture, error) {
	i := *next
	*next = (*next + 1) % len(pool)
	if pool[i] == nil {
		tex, err := b.gc.CreateTexture(desc)
		if err != nil {
			return nil, fmt.Errorf("render: create %s texture: %w", desc.Label, err)
		}
		pool[i] = tex
	}
	return pool[i], nil
}

// TransferR8 returns the R8 staging texture registered under id, locked
// for writing. Rows reported by SetTransferR8Used are zeroed first, so a
// renderer always starts from an empty mask.
func (b *BatchBuffer) TransferR8(id int) (*TransferTexture, error) {
	t, ok := b.transfersR8[id]
	if !ok {
		tex, err := NewTransferTexture(b.cfg.MaskSize, b.cfg.MaskSize, gputypes.TextureFormatR8Unorm)
		if err != nil {
			return nil, err
		}
		t = &r8Transfer{tex: tex}
		b.transfersR8[id] = t
	}
	if t.used > 0 {
		t.tex.ClearRows(t.used)
		t.used = 0
	}
	t.tex.Lock()
	return t.tex, nil
}

// SetTransferR8Used records how many rows of the id staging texture were
// written since it was last handed out.
func (b *BatchBuffer) SetTransferR8Used(id, rows int) {
	if t, ok := b.transfersR8[id]; ok {
		t.used = max(t.used, rows)
	}
}

// TransferRGBA32F returns the RGBA32F staging texture registered under
// id, locked for writing. Renderers sharing a batch buffer never see each
// other's gradient stops.
func (b *BatchBuffer) TransferRGBA32F(id int) (*TransferTexture, error) {
	t, ok := b.transfersRGBA32[id]
	if !ok {
		tex, err := NewTransferTexture(b.cfg.InstanceWidth, 1, gputypes.TextureFormatRGBA32Float)
		if err != nil {
			return nil, err
		}
		t = tex
		b.transfersRGBA32[id] = t
	}
	t.Lock()
	return t, nil
}

// Destroy releases every GPU resource created by the batch buffer.
func (b *BatchBuffer) Destroy() {
	for i, vb := range b.vertexBuffers {
		if vb != nil {
			vb.Destroy()
			b.vertexBuffers[i] = nil
		}
	}
	for _, pool := range [][]Texture{b.maskTextures, b.instanceTextures} {
		for i, tex := range pool {
			if tex != nil {
				tex.Destroy()
				pool[i] = nil
			}
		}
	}
}

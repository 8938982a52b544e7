//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pathfill/render"
)

// Texture is a sampled HAL texture with its default view.
type Texture struct {
	owner  *Context
	label  string
	width  int
	height int
	format gputypes.TextureFormat
	bpp    int
	tex    hal.Texture
	view   hal.TextureView
}

func (c *Context) newTexture(desc render.TextureDescriptor, usage gputypes.TextureUsage) (*Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	bpp, err := render.BytesPerTexel(desc.Format)
	if err != nil {
		return nil, err
	}
	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              uint32(desc.Width),
			Height:             uint32(desc.Height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %q: %w", desc.Label, err)
	}
	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         desc.Label + "_view",
		Format:        desc.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		c.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view %q: %w", desc.Label, err)
	}
	return &Texture{
		owner:  c,
		label:  desc.Label,
		width:  desc.Width,
		height: desc.Height,
		format: desc.Format,
		bpp:    bpp,
		tex:    tex,
		view:   view,
	}, nil
}

// Width returns the width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the height in texels.
func (t *Texture) Height() int { return t.height }

// Format returns the texel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// UpdateRegion writes tightly packed rows into the w x h region at (x, y)
// through the queue.
func (t *Texture) UpdateRegion(x, y, w, h int, data []byte) error {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > t.width || y+h > t.height {
		return fmt.Errorf("%w: (%d,%d %dx%d) in %dx%d", render.ErrRegionOutOfBounds, x, y, w, h, t.width, t.height)
	}
	if w == 0 || h == 0 {
		return nil
	}
	rowBytes := w * t.bpp
	if len(data) < rowBytes*h {
		return fmt.Errorf("wgpu: region data %d bytes, need %d", len(data), rowBytes*h)
	}
	err := t.owner.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture: t.tex,
			Origin:  hal.Origin3D{X: uint32(x), Y: uint32(y)},
			Aspect:  gputypes.TextureAspectAll,
		},
		data[:rowBytes*h],
		&hal.ImageDataLayout{
			BytesPerRow:  uint32(rowBytes),
			RowsPerImage: uint32(h),
		},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("wgpu: write texture %q: %w", t.label, err)
	}
	t.owner.stats.TextureWrites++
	return nil
}

// Destroy releases the view and the texture.
func (t *Texture) Destroy() {
	if t.view != nil {
		t.owner.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.owner.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// vertexBuffer is a HAL vertex buffer sized for capacity vertices.
type vertexBuffer struct {
	owner    *Context
	buf      hal.Buffer
	capacity int
	scratch  []byte
}

func (b *vertexBuffer) Upload(vertices []render.Vertex) error {
	if len(vertices) > b.capacity {
		return fmt.Errorf("wgpu: %d vertices exceed buffer capacity %d", len(vertices), b.capacity)
	}
	if len(vertices) == 0 {
		return nil
	}
	b.scratch = render.AppendVertexBytes(b.scratch[:0], vertices)
	if err := b.owner.queue.WriteBuffer(b.buf, 0, b.scratch); err != nil {
		return fmt.Errorf("wgpu: write vertex buffer: %w", err)
	}
	b.owner.stats.BufferWrites++
	return nil
}

func (b *vertexBuffer) Capacity() int { return b.capacity }

func (b *vertexBuffer) Destroy() {
	if b.buf != nil {
		b.owner.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
	b.scratch = nil
}

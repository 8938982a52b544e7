//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"

	"github.com/gogpu/pathfill/render"
)

// targetFormat is the format of the offscreen render target.
const targetFormat = gputypes.TextureFormatRGBA8Unorm

// copyPitchAlignment is the row alignment of texture-to-buffer copies.
const copyPitchAlignment = 256

// Errors returned by the wgpu backend.
var (
	// ErrBackendUnavailable is returned by Open when no HAL backend is
	// registered for the requested variant.
	ErrBackendUnavailable = errors.New("wgpu: backend not registered")

	// ErrNoAdapter is returned by Open when the instance exposes no adapter.
	ErrNoAdapter = errors.New("wgpu: no adapter available")

	// ErrUnsupportedTopology is returned for topologies other than
	// triangle lists.
	ErrUnsupportedTopology = errors.New("wgpu: unsupported primitive topology")

	// ErrVertexCount is returned when a draw reads past the buffer capacity.
	ErrVertexCount = errors.New("wgpu: vertex count exceeds buffer capacity")

	// ErrEmptyProgram is returned for a program without source.
	ErrEmptyProgram = errors.New("wgpu: empty program source")
)

// Stats counts the GPU work recorded by a Context.
type Stats struct {
	Draws         int
	Vertices      int
	Submissions   int
	TextureWrites int
	BufferWrites  int
}

// Context is a render.GraphicContext backed by a HAL device.
type Context struct {
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance // set when the context owns the device

	width, height int
	target        *Texture
	placeholder   *Texture
	sampler       hal.Sampler

	clearPending bool
	clearColor   gputypes.Color

	blend  gputypes.BlendState
	prog   *program
	slots  [render.MaxTextureSlots]*Texture
	logger *slog.Logger
	stats  Stats
}

// Open creates a device on the first adapter of the registered HAL
// backend variant and wraps it in a width x height Context. The context
// owns the device; Destroy releases it.
func Open(variant gputypes.Backend, width, height int) (*Context, error) {
	backend, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, variant)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{
		Backends: gputypes.BackendsAll,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}
	c, err := NewContext(open.Device, open.Queue, width, height)
	if err != nil {
		open.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	c.instance = instance
	c.log().Debug("wgpu: device opened", "backend", variant, "adapter", adapters[0].Info.Name)
	return c, nil
}

// NewContext creates a width x height render target on device. The
// caller keeps ownership of device and queue.
func NewContext(device hal.Device, queue hal.Queue, width, height int) (*Context, error) {
	if device == nil || queue == nil {
		return nil, errors.New("wgpu: nil device or queue")
	}
	c := &Context{
		device:       device,
		queue:        queue,
		width:        width,
		height:       height,
		clearPending: true,
		blend:        gputypes.BlendStateReplace(),
	}

	var err error
	c.target, err = c.newTexture(render.TextureDescriptor{
		Label:  "path_fill_target",
		Width:  width,
		Height: height,
		Format: targetFormat,
	}, gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc|gputypes.TextureUsageTextureBinding)
	if err != nil {
		return nil, err
	}

	// Unbound slots sample a transparent texel.
	c.placeholder, err = c.newTexture(render.TextureDescriptor{
		Label:  "path_fill_placeholder",
		Width:  1,
		Height: 1,
		Format: gputypes.TextureFormatRGBA8Unorm,
	}, gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		c.Destroy()
		return nil, err
	}
	if err := c.placeholder.UpdateRegion(0, 0, 1, 1, make([]byte, 4)); err != nil {
		c.Destroy()
		return nil, err
	}

	c.sampler, err = device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "path_fill_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	})
	if err != nil {
		c.Destroy()
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	return c, nil
}

// SetLogger sets the logger of this context. Nil falls back to the
// package logger.
func (c *Context) SetLogger(l *slog.Logger) { c.logger = l }

func (c *Context) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slogger()
}

// Destroy releases the render target, the sampler and, for contexts
// created by Open, the device and instance.
func (c *Context) Destroy() {
	c.prog = nil
	if c.sampler != nil {
		c.device.DestroySampler(c.sampler)
		c.sampler = nil
	}
	if c.placeholder != nil {
		c.placeholder.Destroy()
		c.placeholder = nil
	}
	if c.target != nil {
		c.target.Destroy()
		c.target = nil
	}
	if c.instance != nil {
		c.device.Destroy()
		c.instance.Destroy()
		c.instance = nil
	}
}

// Width returns the render target width in pixels.
func (c *Context) Width() int { return c.width }

// Height returns the render target height in pixels.
func (c *Context) Height() int { return c.height }

// Stats returns the work counters.
func (c *Context) Stats() Stats { return c.stats }

// Clear makes the next render pass clear the target to col. A pending
// clear without draws is applied by ReadPixels.
func (c *Context) Clear(col color.Color) {
	r, g, b, a := col.RGBA()
	c.clearColor = gputypes.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
		A: float64(a) / 0xffff,
	}
	c.clearPending = true
}

// CreateTexture allocates a sampled texture that accepts region updates.
func (c *Context) CreateTexture(desc render.TextureDescriptor) (render.Texture, error) {
	return c.newTexture(desc, gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
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
	}, gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return nil, err
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Rect, img, b.Min, draw.Src)
	if err := tex.UpdateRegion(0, 0, b.Dx(), b.Dy(), nrgba.Pix); err != nil {
		tex.Destroy()
		return nil, err
	}
	return tex, nil
}

// CreateVertexBuffer allocates a vertex buffer for capacity vertices.
func (c *Context) CreateVertexBuffer(capacity int) (render.VertexBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("wgpu: invalid vertex buffer capacity %d", capacity)
	}
	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "path_fill_vertices",
		Size:  uint64(capacity * render.VertexStride),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create vertex buffer: %w", err)
	}
	return &vertexBuffer{owner: c, buf: buf, capacity: capacity}, nil
}

// CreateProgram compiles desc into a shader module and its layouts.
func (c *Context) CreateProgram(desc render.ProgramDescriptor) (render.Program, error) {
	if desc.Source == "" {
		return nil, ErrEmptyProgram
	}
	return c.newProgram(desc)
}

// SetBlendState sets the blend state of subsequent draws.
func (c *Context) SetBlendState(state gputypes.BlendState) { c.blend = state }

// ResetBlendState restores replace blending.
func (c *Context) ResetBlendState() { c.blend = gputypes.BlendStateReplace() }

// SetProgram binds p. Programs from other contexts unbind instead.
func (c *Context) SetProgram(p render.Program) {
	wp, ok := p.(*program)
	if !ok || wp.owner != c {
		c.log().Warn("wgpu: ignoring foreign program")
		c.prog = nil
		return
	}
	c.prog = wp
}

// ResetProgram unbinds the program.
func (c *Context) ResetProgram() { c.prog = nil }

// SetTexture binds tex to slot.
func (c *Context) SetTexture(slot int, tex render.Texture) error {
	if slot < 0 || slot >= render.MaxTextureSlots {
		return fmt.Errorf("%w: %d", render.ErrInvalidTextureSlot, slot)
	}
	wt, ok := tex.(*Texture)
	if !ok || wt.owner != c {
		return render.ErrForeignResource
	}
	c.slots[slot] = wt
	return nil
}

// ResetTexture unbinds slot.
func (c *Context) ResetTexture(slot int) {
	if slot >= 0 && slot < render.MaxTextureSlots {
		c.slots[slot] = nil
	}
}

// DrawPrimitives records and submits one render pass drawing count
// vertices of vb as a triangle list.
func (c *Context) DrawPrimitives(topology gputypes.PrimitiveTopology, count int, vb render.VertexBuffer) error {
	if c.prog == nil {
		return render.ErrNoProgram
	}
	if topology != gputypes.PrimitiveTopologyTriangleList {
		return fmt.Errorf("%w: %v", ErrUnsupportedTopology, topology)
	}
	wvb, ok := vb.(*vertexBuffer)
	if !ok || wvb.owner != c {
		return render.ErrForeignResource
	}
	if count > wvb.capacity {
		return fmt.Errorf("%w: %d > %d", ErrVertexCount, count, wvb.capacity)
	}
	if count == 0 {
		return nil
	}

	pipeline, err := c.prog.pipeline(c.blend)
	if err != nil {
		return err
	}
	bindGroup, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  c.prog.label + "_bind",
		Layout: c.prog.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: bindingMask, Resource: c.viewBinding(render.SlotMask)},
			{Binding: bindingInstance, Resource: c.viewBinding(render.SlotInstance)},
			{Binding: bindingImage, Resource: c.viewBinding(render.SlotImage)},
			{Binding: bindingSampler, Resource: gputypes.SamplerBinding{Sampler: c.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}
	defer c.device.DestroyBindGroup(bindGroup)

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "path_fill_draw"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("path_fill_draw"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "path_fill_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{c.colorAttachment()},
	})
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.SetVertexBuffer(0, wvb.buf, 0)
	pass.Draw(uint32(count), 1, 0, 0)
	pass.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmd)
	if err := c.submit(cmd); err != nil {
		return err
	}
	c.clearPending = false

	c.stats.Draws++
	c.stats.Vertices += count
	c.log().Debug("wgpu: draw", "program", c.prog.label, "vertices", count)
	return nil
}

// ReadPixels copies the render target into a new image.
func (c *Context) ReadPixels() (*image.RGBA, error) {
	w, h := uint32(c.width), uint32(c.height)
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	size := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "path_fill_readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create readback buffer: %w", err)
	}
	defer c.device.DestroyBuffer(staging)

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "path_fill_readback"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("path_fill_readback"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	if c.clearPending {
		pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
			Label:            "path_fill_clear",
			ColorAttachments: []hal.RenderPassColorAttachment{c.colorAttachment()},
		})
		pass.End()
	}
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: c.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(c.target.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: c.target.tex, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: c.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmd)
	if err := c.submit(cmd); err != nil {
		return nil, err
	}
	c.clearPending = false

	mapping, err := c.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("wgpu: map readback buffer: %w", err)
	}
	src := unsafe.Slice((*byte)(mapping.Ptr), size)
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for row := range c.height {
		off := row * int(alignedBytesPerRow)
		copy(img.Pix[row*img.Stride:row*img.Stride+int(bytesPerRow)], src[off:])
	}
	if err := c.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("wgpu: unmap readback buffer: %w", err)
	}
	return img, nil
}

func (c *Context) viewBinding(slot int) gputypes.TextureViewBinding {
	t := c.slots[slot]
	if t == nil {
		t = c.placeholder
	}
	return gputypes.TextureViewBinding{TextureView: t.view.NativeHandle()}
}

func (c *Context) colorAttachment() hal.RenderPassColorAttachment {
	load := gputypes.LoadOpLoad
	if c.clearPending {
		load = gputypes.LoadOpClear
	}
	return hal.RenderPassColorAttachment{
		View:       c.target.view,
		LoadOp:     load,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: c.clearColor,
	}
}

func (c *Context) submit(cmd hal.CommandBuffer) error {
	if _, err := c.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	if err := c.device.WaitIdle(); err != nil {
		return fmt.Errorf("wgpu: wait idle: %w", err)
	}
	c.stats.Submissions++
	return nil
}

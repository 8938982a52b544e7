// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/pathfill/render"
)

// quad returns the six vertices of the pixel rectangle (x0,y0)-(x1,y1).
func quad(w, h int, x0, y0, x1, y1 float32, mode render.DrawMode, data1, data2 f32.Vec4) []render.Vertex {
	cx := func(x float32) float32 { return x*2/float32(w) - 1 }
	cy := func(y float32) float32 { return -(y*2/float32(h) - 1) }
	v := func(x, y float32) render.Vertex {
		return render.Vertex{
			Position:   f32.Vec4{cx(x), cy(y), 0, 1},
			BrushData1: data1,
			BrushData2: data2,
			Mode:       mode,
		}
	}
	return []render.Vertex{
		v(x0, y0), v(x1, y0), v(x0, y1),
		v(x1, y0), v(x1, y1), v(x0, y1),
	}
}

// setup binds a program and a fully covered 1x1 mask.
func setup(t *testing.T, c *Context) {
	t.Helper()
	prog, err := c.CreateProgram(render.ProgramDescriptor{Label: "test", Source: "src"})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	c.SetProgram(prog)
	maskTex, err := c.CreateTexture(render.TextureDescriptor{Width: 1, Height: 1, Format: gputypes.TextureFormatR8Unorm})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if err := maskTex.UpdateRegion(0, 0, 1, 1, []byte{255}); err != nil {
		t.Fatalf("UpdateRegion: %v", err)
	}
	if err := c.SetTexture(render.SlotMask, maskTex); err != nil {
		t.Fatalf("SetTexture: %v", err)
	}
	c.SetBlendState(gputypes.BlendStatePremultiplied())
}

func drawVertices(t *testing.T, c *Context, vertices []render.Vertex) {
	t.Helper()
	vb, err := c.CreateVertexBuffer(len(vertices))
	if err != nil {
		t.Fatalf("CreateVertexBuffer: %v", err)
	}
	if err := vb.Upload(vertices); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := c.DrawPrimitives(gputypes.PrimitiveTopologyTriangleList, len(vertices), vb); err != nil {
		t.Fatalf("DrawPrimitives: %v", err)
	}
}

func TestQuadCoversEachPixelOnce(t *testing.T) {
	for _, size := range []int{8, 13, 100} {
		c := NewContext(size, size)
		setup(t, c)
		drawVertices(t, c, quad(size, size, 0, 0, float32(size), float32(size),
			render.DrawModeSolid, f32.Vec4{}, f32.Vec4{1, 0, 0, 0.5}))

		want := color.RGBA{R: 128, A: 128}
		for y := range size {
			for x := range size {
				if got := c.Image().RGBAAt(x, y); got != want {
					t.Fatalf("size %d: pixel (%d,%d) = %v, want %v", size, x, y, got, want)
				}
			}
		}
		if got := c.Stats().Fragments; got != size*size {
			t.Errorf("size %d: fragments = %d, want %d", size, got, size*size)
		}
	}
}

func TestQuadStaysInsideRect(t *testing.T) {
	c := NewContext(16, 16)
	setup(t, c)
	drawVertices(t, c, quad(16, 16, 4, 4, 8, 8, render.DrawModeSolid, f32.Vec4{}, f32.Vec4{0, 0, 1, 1}))

	for y := range 16 {
		for x := range 16 {
			inside := x >= 4 && x < 8 && y >= 4 && y < 8
			got := c.Image().RGBAAt(x, y)
			if inside && got != (color.RGBA{B: 255, A: 255}) {
				t.Errorf("pixel (%d,%d) = %v, want blue", x, y, got)
			}
			if !inside && got.A != 0 {
				t.Errorf("pixel (%d,%d) = %v, want transparent", x, y, got)
			}
		}
	}
}

func TestLinearGradient(t *testing.T) {
	c := NewContext(4, 1)
	setup(t, c)

	inst, err := c.CreateTexture(render.TextureDescriptor{Width: 4, Height: 1, Format: gputypes.TextureFormatRGBA32Float})
	if err != nil {
		t.Fatal(err)
	}
	staging, err := render.NewTransferTexture(4, 1, gputypes.TextureFormatRGBA32Float)
	if err != nil {
		t.Fatal(err)
	}
	staging.Lock()
	staging.SetVec4(0, f32.Vec4{0, 0, 0, 1})
	staging.SetVec4(1, f32.Vec4{0, 0, 0, 0})
	staging.SetVec4(2, f32.Vec4{1, 1, 1, 1})
	staging.SetVec4(3, f32.Vec4{1, 0, 0, 0})
	staging.Unlock()
	if err := staging.Upload(inst, 4, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.SetTexture(render.SlotInstance, inst); err != nil {
		t.Fatal(err)
	}

	// Gradient along +x over 4 pixels; data1.xy is the offset from x = 0.
	vertices := quad(4, 1, 0, 0, 4, 1, render.DrawModeLinear, f32.Vec4{0, 0, 1, 0}, f32.Vec4{0.25, 0, 2, 0})
	for i := range vertices {
		vertices[i].BrushData1[0] = (vertices[i].Position[0] + 1) * 2
	}
	drawVertices(t, c, vertices)

	// Pixel centres sit at t = 0.125, 0.375, 0.625, 0.875.
	for x, want := range []uint8{32, 96, 159, 223} {
		if got := c.Image().RGBAAt(x, 0).R; got != want {
			t.Errorf("pixel %d red = %d, want %d", x, got, want)
		}
	}
}

func TestDrawErrors(t *testing.T) {
	c := NewContext(4, 4)
	vb, err := c.CreateVertexBuffer(6)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.DrawPrimitives(gputypes.PrimitiveTopologyTriangleList, 0, vb); !errors.Is(err, render.ErrNoProgram) {
		t.Errorf("draw without program: %v, want ErrNoProgram", err)
	}

	setup(t, c)
	if err := c.DrawPrimitives(gputypes.PrimitiveTopologyLineList, 0, vb); !errors.Is(err, ErrUnsupportedTopology) {
		t.Errorf("line list: %v, want ErrUnsupportedTopology", err)
	}
	if err := c.DrawPrimitives(gputypes.PrimitiveTopologyTriangleList, 6, vb); !errors.Is(err, ErrVertexCount) {
		t.Errorf("empty buffer: %v, want ErrVertexCount", err)
	}

	other := NewContext(4, 4)
	foreign, err := other.CreateVertexBuffer(6)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.DrawPrimitives(gputypes.PrimitiveTopologyTriangleList, 0, foreign); !errors.Is(err, render.ErrForeignResource) {
		t.Errorf("foreign buffer: %v, want ErrForeignResource", err)
	}
}

func TestSetTextureErrors(t *testing.T) {
	c := NewContext(4, 4)
	tex, err := c.CreateTexture(render.TextureDescriptor{Width: 1, Height: 1, Format: gputypes.TextureFormatR8Unorm})
	if err != nil {
		t.Fatal(err)
	}
	for _, slot := range []int{-1, render.MaxTextureSlots} {
		if err := c.SetTexture(slot, tex); !errors.Is(err, render.ErrInvalidTextureSlot) {
			t.Errorf("slot %d: %v, want ErrInvalidTextureSlot", slot, err)
		}
	}

	other := NewContext(4, 4)
	foreign, err := other.CreateTexture(render.TextureDescriptor{Width: 1, Height: 1, Format: gputypes.TextureFormatR8Unorm})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetTexture(0, foreign); !errors.Is(err, render.ErrForeignResource) {
		t.Errorf("foreign texture: %v, want ErrForeignResource", err)
	}
	if err := tex.UpdateRegion(0, 0, 2, 1, []byte{1, 2}); !errors.Is(err, render.ErrRegionOutOfBounds) {
		t.Errorf("oversized region: %v, want ErrRegionOutOfBounds", err)
	}
}

func TestNewImageTexture(t *testing.T) {
	c := NewContext(4, 4)
	src := image.NewRGBA(image.Rect(10, 10, 12, 11))
	src.SetRGBA(10, 10, color.RGBA{R: 64, A: 128}) // premultiplied
	src.SetRGBA(11, 10, color.RGBA{G: 255, A: 255})

	tex, err := c.NewImageTexture(src)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width() != 2 || tex.Height() != 1 || tex.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Fatalf("texture %dx%d %v", tex.Width(), tex.Height(), tex.Format())
	}
	st := tex.(*Texture)
	if got := st.RGBA8(0, 0); got[3] < 0.5 || got[3] > 0.51 || got[0] < 0.49 || got[0] > 0.51 {
		t.Errorf("texel 0 = %v, want straight red 0.5 at alpha 0.5", got)
	}
	if got := st.RGBA8(1, 0); got != [4]float64{0, 1, 0, 1} {
		t.Errorf("texel 1 = %v, want opaque green", got)
	}
}

func TestClear(t *testing.T) {
	c := NewContext(2, 2)
	c.Clear(color.White)
	if got := c.Image().RGBAAt(1, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Clear: %v", got)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pathfill/render"
)

// Texture is CPU texel storage in the byte layout of its format.
type Texture struct {
	owner  *Context
	label  string
	width  int
	height int
	format gputypes.TextureFormat
	bpp    int
	pix    []byte
}

func (c *Context) newTexture(desc render.TextureDescriptor) (*Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("software: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	bpp, err := render.BytesPerTexel(desc.Format)
	if err != nil {
		return nil, err
	}
	return &Texture{
		owner:  c,
		label:  desc.Label,
		width:  desc.Width,
		height: desc.Height,
		format: desc.Format,
		bpp:    bpp,
		pix:    make([]byte, desc.Width*desc.Height*bpp),
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

// Destroy releases the texel storage.
func (t *Texture) Destroy() { t.pix = nil }

// UpdateRegion copies tightly packed rows into the w x h region at (x, y).
func (t *Texture) UpdateRegion(x, y, w, h int, data []byte) error {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > t.width || y+h > t.height {
		return fmt.Errorf("%w: (%d,%d %dx%d) in %dx%d", render.ErrRegionOutOfBounds, x, y, w, h, t.width, t.height)
	}
	rowBytes := w * t.bpp
	if len(data) < rowBytes*h {
		return fmt.Errorf("software: region data %d bytes, need %d", len(data), rowBytes*h)
	}
	pitch := t.width * t.bpp
	for row := range h {
		off := (y+row)*pitch + x*t.bpp
		copy(t.pix[off:off+rowBytes], data[row*rowBytes:])
	}
	t.owner.stats.TextureUploads++
	return nil
}

// R8 returns the normalized value of texel (x, y) of an R8 texture,
// clamping the coordinates to the texture.
func (t *Texture) R8(x, y int) float64 {
	x, y = t.clamp(x, y)
	return float64(t.pix[y*t.width+x]) / 255
}

// RGBA8 returns texel (x, y) of an RGBA8 texture as four values in [0, 1].
func (t *Texture) RGBA8(x, y int) [4]float64 {
	x, y = t.clamp(x, y)
	off := (y*t.width + x) * 4
	p := t.pix[off : off+4]
	return [4]float64{
		float64(p[0]) / 255,
		float64(p[1]) / 255,
		float64(p[2]) / 255,
		float64(p[3]) / 255,
	}
}

// RGBA32F returns texel (x, y) of an RGBA32F texture.
func (t *Texture) RGBA32F(x, y int) [4]float64 {
	x, y = t.clamp(x, y)
	off := (y*t.width + x) * 16
	var v [4]float64
	for i := range v {
		v[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(t.pix[off+i*4:])))
	}
	return v
}

func (t *Texture) clamp(x, y int) (int, int) {
	return min(max(x, 0), t.width-1), min(max(y, 0), t.height-1)
}

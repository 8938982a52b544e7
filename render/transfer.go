// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// Transfer texture errors.
var (
	// ErrTransferLocked is returned when uploading a transfer texture that
	// is still locked for CPU writes.
	ErrTransferLocked = errors.New("render: transfer texture is locked")

	// ErrUnsupportedFormat is returned for texel formats without a CPU layout.
	ErrUnsupportedFormat = errors.New("render: unsupported texture format")
)

// BytesPerTexel returns the texel size of the formats used for staging.
func BytesPerTexel(format gputypes.TextureFormat) (int, error) {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return 1, nil
	case gputypes.TextureFormatRGBA8Unorm:
		return 4, nil
	case gputypes.TextureFormatRGBA32Float:
		return 16, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// TransferTexture is CPU staging memory laid out like a texture.
//
// The renderer locks it, writes texels, and unlocks it before Upload
// copies rows to a GPU texture.
type TransferTexture struct {
	width, height int
	bpp           int
	format        gputypes.TextureFormat
	pix           []byte
	locked        bool
}

// NewTransferTexture allocates zeroed staging memory.
func NewTransferTexture(width, height int, format gputypes.TextureFormat) (*TransferTexture, error) {
	bpp, err := BytesPerTexel(format)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid transfer size %dx%d", width, height)
	}
	return &TransferTexture{
		width:  width,
		height: height,
		bpp:    bpp,
		format: format,
		pix:    make([]byte, width*height*bpp),
	}, nil
}

// Width returns the width in texels.
func (t *TransferTexture) Width() int { return t.width }

// Height returns the height in texels.
func (t *TransferTexture) Height() int { return t.height }

// Format returns the texel format.
func (t *TransferTexture) Format() gputypes.TextureFormat { return t.format }

// Pitch returns the byte length of one row.
func (t *TransferTexture) Pitch() int { return t.width * t.bpp }

// Lock marks the texture as being written by the CPU and returns its pixels.
func (t *TransferTexture) Lock() []byte {
	t.locked = true
	return t.pix
}

// Unlock ends CPU writes.
func (t *TransferTexture) Unlock() { t.locked = false }

// Locked reports whether the texture is locked.
func (t *TransferTexture) Locked() bool { return t.locked }

// Row returns the bytes of row y.
func (t *TransferTexture) Row(y int) []byte {
	p := t.Pitch()
	return t.pix[y*p : (y+1)*p]
}

// SetVec4 stores v at texel x of row 0 of an RGBA32F texture.
func (t *TransferTexture) SetVec4(x int, v f32.Vec4) {
	off := x * 16
	for i, c := range v {
		binary.LittleEndian.PutUint32(t.pix[off+i*4:], math.Float32bits(c))
	}
}

// Vec4 reads texel x of row 0 of an RGBA32F texture.
func (t *TransferTexture) Vec4(x int) f32.Vec4 {
	var v f32.Vec4
	off := x * 16
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(t.pix[off+i*4:]))
	}
	return v
}

// ClearRows zeroes rows [0, n).
func (t *TransferTexture) ClearRows(n int) {
	n = min(n, t.height)
	if n <= 0 {
		return
	}
	clear(t.pix[:n*t.Pitch()])
}

// Upload copies the w x h texel rectangle at the origin into dst.
func (t *TransferTexture) Upload(dst Texture, w, h int) error {
	if t.locked {
		return ErrTransferLocked
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	if w > t.width || h > t.height {
		return fmt.Errorf("%w: %dx%d from %dx%d staging", ErrRegionOutOfBounds, w, h, t.width, t.height)
	}
	rowBytes := w * t.bpp
	var data []byte
	if w == t.width {
		data = t.pix[:h*rowBytes]
	} else {
		data = make([]byte, 0, h*rowBytes)
		for y := range h {
			data = append(data, t.Row(y)[:rowBytes]...)
		}
	}
	return dst.UpdateRegion(0, 0, w, h, data)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mask describes the layout of the 8-bit coverage atlas that the
// path-fill renderer packs its blocks into.
package mask

import (
	"errors"
	"fmt"
)

// Atlas-related errors.
var (
	// ErrInvalidGeometry is returned when the block size does not tile the
	// texture.
	ErrInvalidGeometry = errors.New("mask: block size must divide texture size")

	// ErrBlockOutOfRange is returned for block indices past the atlas capacity.
	ErrBlockOutOfRange = errors.New("mask: block index out of range")
)

// Default atlas settings.
const (
	// DefaultBlockSize is the edge length of one coverage block in pixels.
	DefaultBlockSize = 16

	// DefaultTextureSize is the edge length of the square atlas texture.
	DefaultTextureSize = 512
)

// Region is a rectangular area of the atlas in texels.
type Region struct {
	X, Y          int
	Width, Height int
}

// Contains returns true if the texel (x, y) is inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// String returns a string representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Atlas is the fixed block grid of a square R8 coverage texture.
//
// Blocks are packed left to right, then top to bottom. The mapping from a
// block index to its texel offset is a pure function of the index, the
// block size and the texture size, so the atlas keeps no allocation state.
type Atlas struct {
	blockSize   int
	textureSize int
}

// NewAtlas returns the geometry for a textureSize x textureSize atlas of
// blockSize x blockSize blocks.
func NewAtlas(blockSize, textureSize int) (Atlas, error) {
	if blockSize <= 0 || textureSize <= 0 || textureSize%blockSize != 0 {
		return Atlas{}, fmt.Errorf("%w: block %d, texture %d", ErrInvalidGeometry, blockSize, textureSize)
	}
	return Atlas{blockSize: blockSize, textureSize: textureSize}, nil
}

// BlockSize returns the block edge length in texels.
func (a Atlas) BlockSize() int { return a.blockSize }

// TextureSize returns the atlas edge length in texels.
func (a Atlas) TextureSize() int { return a.textureSize }

// MaxBlocks returns the number of blocks the atlas holds.
func (a Atlas) MaxBlocks() int {
	n := a.textureSize / a.blockSize
	return n * n
}

// Offset returns the top-left texel of block index.
func (a Atlas) Offset(index int) (x, y int) {
	p := index * a.blockSize
	return p % a.textureSize, (p / a.textureSize) * a.blockSize
}

// Region returns the texel rectangle occupied by block index.
func (a Atlas) Region(index int) (Region, error) {
	if index < 0 || index >= a.MaxBlocks() {
		return Region{}, fmt.Errorf("%w: %d", ErrBlockOutOfRange, index)
	}
	x, y := a.Offset(index)
	return Region{X: x, Y: y, Width: a.blockSize, Height: a.blockSize}, nil
}

// UV returns the normalized texture coordinates of block index.
func (a Atlas) UV(index int) (u0, v0, u1, v1 float32) {
	x, y := a.Offset(index)
	rcp := 1 / float32(a.textureSize)
	return float32(x) * rcp, float32(y) * rcp,
		float32(x+a.blockSize) * rcp, float32(y+a.blockSize) * rcp
}

// UsedRows returns how many texel rows hold data when blocks
// [0, count) have been written.
func (a Atlas) UsedRows(count int) int {
	if count <= 0 {
		return 0
	}
	_, y := a.Offset(count - 1)
	return y + a.blockSize
}

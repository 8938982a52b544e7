// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

import (
	"errors"
	"testing"
)

func TestNewAtlasValidates(t *testing.T) {
	tests := []struct {
		name       string
		block, tex int
		wantErr    bool
		wantBlocks int
	}{
		{"default", DefaultBlockSize, DefaultTextureSize, false, 1024},
		{"8 in 512", 8, 512, false, 4096},
		{"zero block", 0, 512, true, 0},
		{"not dividing", 12, 512, true, 0},
		{"negative", 16, -512, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAtlas(tt.block, tt.tex)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGeometry) {
					t.Fatalf("NewAtlas() error = %v, want ErrInvalidGeometry", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewAtlas() error = %v", err)
			}
			if a.MaxBlocks() != tt.wantBlocks {
				t.Errorf("MaxBlocks() = %d, want %d", a.MaxBlocks(), tt.wantBlocks)
			}
		})
	}
}

func TestAtlasOffset(t *testing.T) {
	a, err := NewAtlas(16, 512)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		index, x, y int
	}{
		{0, 0, 0},
		{1, 16, 0},
		{31, 496, 0},
		{32, 0, 16},
		{33, 16, 16},
		{1023, 496, 496},
	}
	for _, tt := range tests {
		x, y := a.Offset(tt.index)
		if x != tt.x || y != tt.y {
			t.Errorf("Offset(%d) = (%d,%d), want (%d,%d)", tt.index, x, y, tt.x, tt.y)
		}
	}
}

func TestAtlasRegionsDisjoint(t *testing.T) {
	a, _ := NewAtlas(8, 64)
	seen := make(map[[2]int]int)
	for i := range a.MaxBlocks() {
		r, err := a.Region(i)
		if err != nil {
			t.Fatalf("Region(%d) error = %v", i, err)
		}
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				if prev, ok := seen[[2]int{x, y}]; ok {
					t.Fatalf("texel (%d,%d) shared by blocks %d and %d", x, y, prev, i)
				}
				seen[[2]int{x, y}] = i
			}
		}
	}
	if len(seen) != 64*64 {
		t.Errorf("covered %d texels, want %d", len(seen), 64*64)
	}
	if _, err := a.Region(a.MaxBlocks()); !errors.Is(err, ErrBlockOutOfRange) {
		t.Errorf("Region(max) error = %v, want ErrBlockOutOfRange", err)
	}
}

func TestAtlasUV(t *testing.T) {
	a, _ := NewAtlas(16, 512)
	u0, v0, u1, v1 := a.UV(33)
	if u0 != 16.0/512 || v0 != 16.0/512 || u1 != 32.0/512 || v1 != 32.0/512 {
		t.Errorf("UV(33) = %v %v %v %v", u0, v0, u1, v1)
	}
}

func TestAtlasUsedRows(t *testing.T) {
	a, _ := NewAtlas(16, 512)
	tests := []struct{ count, rows int }{
		{0, 0},
		{1, 16},
		{32, 16},
		{33, 32},
		{1024, 512},
	}
	for _, tt := range tests {
		if got := a.UsedRows(tt.count); got != tt.rows {
			t.Errorf("UsedRows(%d) = %d, want %d", tt.count, got, tt.rows)
		}
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{X: 16, Y: 32, Width: 16, Height: 16}
	if !r.Contains(16, 32) || !r.Contains(31, 47) {
		t.Error("region should contain its corners")
	}
	if r.Contains(32, 32) || r.Contains(16, 48) {
		t.Error("region should exclude its far edges")
	}
	if got := r.String(); got != "Region(16,32 16x16)" {
		t.Errorf("String() = %q", got)
	}
}

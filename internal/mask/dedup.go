// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

// Class groups blocks whose coverage is known to be identical without
// comparing texels. Classes come from full-block detection during the
// band sweep, never from hashing atlas content.
type Class uint8

const (
	// ClassFull marks a block every supersampled row of which is covered
	// across the whole block width.
	ClassFull Class = iota + 1
)

// Dedup maps coverage classes to the atlas block that already holds them.
// It is scoped to one flush cycle: Reset must be called whenever the atlas
// is handed to the GPU.
type Dedup struct {
	blocks map[Class]int
}

// NewDedup returns an empty cache.
func NewDedup() *Dedup {
	return &Dedup{blocks: make(map[Class]int, 1)}
}

// Lookup returns the atlas index recorded for c.
func (d *Dedup) Lookup(c Class) (int, bool) {
	i, ok := d.blocks[c]
	return i, ok
}

// Store records index as the canonical block for c.
func (d *Dedup) Store(c Class, index int) {
	d.blocks[c] = index
}

// Reset forgets every entry.
func (d *Dedup) Reset() {
	clear(d.blocks)
}

// Len returns the number of recorded classes.
func (d *Dedup) Len() int { return len(d.blocks) }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

import "testing"

func TestDedup(t *testing.T) {
	d := NewDedup()
	if _, ok := d.Lookup(ClassFull); ok {
		t.Fatal("empty cache reported a block")
	}

	d.Store(ClassFull, 7)
	if i, ok := d.Lookup(ClassFull); !ok || i != 7 {
		t.Errorf("Lookup = %d, %v, want 7, true", i, ok)
	}
	if d.Len() != 1 {
		t.Errorf("Len = %d, want 1", d.Len())
	}

	d.Reset()
	if _, ok := d.Lookup(ClassFull); ok || d.Len() != 0 {
		t.Error("Reset kept an entry")
	}
}

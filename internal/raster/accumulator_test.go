package raster

import (
	"math"
	"testing"
)

func rect(a *Accumulator, x0, y0, x1, y1 float32) {
	a.Begin(x0, y0)
	a.Line(x1, y0)
	a.Line(x1, y1)
	a.Line(x0, y1)
	a.End(true)
}

func TestAccumulatorSetSizeRounds(t *testing.T) {
	tests := []struct {
		name          string
		w, h          int
		wantW, wantH  int
		wantRowsCount int
	}{
		{"exact", 32, 16, 32, 16, 64},
		{"round up", 17, 1, 32, 16, 64},
		{"zero", 0, 0, 0, 0, 0},
		{"negative", -5, -5, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccumulator(4, 16)
			a.SetSize(tt.w, tt.h)
			if a.Width() != tt.wantW || a.Height() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", a.Width(), a.Height(), tt.wantW, tt.wantH)
			}
			if got := len(a.Rows()); got != tt.wantRowsCount {
				t.Errorf("rows = %d, want %d", got, tt.wantRowsCount)
			}
		})
	}
}

func TestAccumulatorSetSizeKeepsStorage(t *testing.T) {
	a := NewAccumulator(4, 16)
	a.SetSize(64, 64)
	rect(a, 0, 0, 16, 16)
	before := &a.Rows()[0]

	a.SetSize(60, 50) // rounds to the same 64x64
	if &a.Rows()[0] != before {
		t.Error("SetSize with unchanged rounded size reallocated rows")
	}
	if a.Rows()[0].Empty() {
		t.Error("SetSize with unchanged rounded size dropped edges")
	}
}

func TestAccumulatorClearKeepsCapacity(t *testing.T) {
	a := NewAccumulator(4, 16)
	a.SetSize(64, 64)
	rect(a, 0, 0, 16, 16)
	c := cap(a.Rows()[0].Edges)
	a.Clear()
	for i, row := range a.Rows() {
		if !row.Empty() {
			t.Fatalf("row %d not empty after Clear", i)
		}
	}
	if cap(a.Rows()[0].Edges) != c {
		t.Errorf("Clear changed capacity: %d -> %d", c, cap(a.Rows()[0].Edges))
	}
}

func TestAccumulatorLineRowSpan(t *testing.T) {
	a := NewAccumulator(4, 16)
	a.SetSize(16, 16)
	a.Begin(1, 0)
	a.Line(1, 2) // supersampled 0..8, rows 0..7

	for y, row := range a.Rows() {
		want := y < 8
		if got := !row.Empty(); got != want {
			t.Errorf("row %d has edges = %v, want %v", y, got, want)
		}
	}
	e := a.Rows()[0].Edges[0]
	if e.X != 4 {
		t.Errorf("edge x = %v, want 4", e.X)
	}
	if e.Up {
		t.Error("downward segment recorded as up")
	}
}

func TestAccumulatorLineInterpolates(t *testing.T) {
	a := NewAccumulator(1, 16)
	a.SetSize(16, 16)
	a.Begin(0, 0)
	a.Line(8, 8)

	for y := range 8 {
		edges := a.Rows()[y].Edges
		if len(edges) != 1 {
			t.Fatalf("row %d: %d edges, want 1", y, len(edges))
		}
		if want := float32(y) + 0.5; edges[0].X != want {
			t.Errorf("row %d: x = %v, want %v", y, edges[0].X, want)
		}
	}
}

func TestAccumulatorHorizontalSegmentIgnored(t *testing.T) {
	a := NewAccumulator(4, 16)
	a.SetSize(32, 32)
	a.Begin(0, 5)
	a.Line(30, 5)
	a.Line(30, 5.0000001)

	for y, row := range a.Rows() {
		if !row.Empty() {
			t.Fatalf("row %d got edges from a horizontal segment", y)
		}
	}
}

func TestAccumulatorClipsRows(t *testing.T) {
	a := NewAccumulator(2, 16)
	a.SetSize(16, 16)
	a.Begin(4, -10)
	a.Line(4, 100)

	if n := len(a.Rows()); n != 32 {
		t.Fatalf("rows = %d, want 32", n)
	}
	for y, row := range a.Rows() {
		if len(row.Edges) != 1 {
			t.Errorf("row %d: %d edges, want 1", y, len(row.Edges))
		}
	}
}

func TestAccumulatorFarPoints(t *testing.T) {
	tests := []struct {
		name   string
		x1, y1 float32
	}{
		{"below", 16, 1e19},
		{"above", 16, -1e19},
		{"infinite", 16, float32(math.Inf(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccumulator(4, 16)
			a.SetSize(32, 32)
			a.Begin(0, 0)
			a.Line(tt.x1, tt.y1)

			n := 0
			for _, row := range a.Rows() {
				n += len(row.Edges)
			}
			want := 128
			if tt.y1 < 0 {
				want = 0
			}
			if n != want {
				t.Errorf("edges = %d, want %d", n, want)
			}
		})
	}
}

func TestAccumulatorUpDirection(t *testing.T) {
	a := NewAccumulator(1, 16)
	a.SetSize(16, 16)
	rect(a, 2, 2, 10, 10)

	edges := a.Rows()[4].Edges
	if len(edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(edges))
	}
	// Right side runs down, left side (closing segment) runs up.
	var up, down int
	for _, e := range edges {
		if e.Up {
			up++
		} else {
			down++
		}
	}
	if up != 1 || down != 1 {
		t.Errorf("up=%d down=%d, want 1 and 1", up, down)
	}
}

func TestAccumulatorSortAndExtent(t *testing.T) {
	a := NewAccumulator(4, 16)
	a.SetSize(64, 64)
	rect(a, 3.3, 10, 70, 30)

	ext := a.SortAndExtent(64)
	if ext.Left != 13 { // floor(3.3*4)
		t.Errorf("left = %d, want 13", ext.Left)
	}
	if ext.Right != 256 {
		t.Errorf("right = %d, want clipped 256", ext.Right)
	}
	for y, row := range a.Rows() {
		for i := 1; i < len(row.Edges); i++ {
			if row.Edges[i-1].X > row.Edges[i].X {
				t.Fatalf("row %d not sorted", y)
			}
		}
	}
}

func TestAccumulatorSortAndExtentEmpty(t *testing.T) {
	a := NewAccumulator(4, 16)
	a.SetSize(64, 64)
	if ext := a.SortAndExtent(64); !ext.Empty() {
		t.Errorf("extent of empty accumulator = %+v, want empty", ext)
	}
}

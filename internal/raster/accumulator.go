package raster

import (
	"cmp"
	"math"
	"slices"
)

// epsilon is the float32 machine epsilon. Segments whose supersampled
// height is within it contribute no crossings.
const epsilon = float32(1.1920929e-07)

// Accumulator collects path segments into per-row crossing lists.
//
// Rows are stored for the whole canvas at Level rows per pixel. Storage
// is reused between Clear calls and only reallocated when SetSize changes
// the rounded dimensions.
type Accumulator struct {
	level     int
	blockSize int

	width  int
	height int
	rows   []Scanline

	startX, startY float32
	lastX, lastY   float32
}

// NewAccumulator creates an accumulator with the given antialias level
// (vertical and horizontal supersampling factor) and block size in pixels.
func NewAccumulator(level, blockSize int) *Accumulator {
	if level < 1 {
		level = 1
	}
	if blockSize < 1 {
		blockSize = 1
	}
	return &Accumulator{level: level, blockSize: blockSize}
}

// Level returns the antialias level.
func (a *Accumulator) Level() int { return a.level }

// Width returns the rounded canvas width in pixels.
func (a *Accumulator) Width() int { return a.width }

// Height returns the rounded canvas height in pixels.
func (a *Accumulator) Height() int { return a.height }

// Rows returns the supersampled rows. The slice is owned by the accumulator.
func (a *Accumulator) Rows() []Scanline { return a.rows }

// SetSize rounds the dimensions up to a multiple of the block size and
// resizes the row table if the rounded size changed.
func (a *Accumulator) SetSize(width, height int) {
	width = roundUp(max(width, 0), a.blockSize)
	height = roundUp(max(height, 0), a.blockSize)
	if width == a.width && height == a.height {
		return
	}
	a.width = width
	a.height = height

	n := height * a.level
	if n <= cap(a.rows) {
		a.rows = a.rows[:n]
		for i := range a.rows {
			a.rows[i].Edges = a.rows[i].Edges[:0]
		}
		return
	}
	rows := make([]Scanline, n)
	copy(rows, a.rows[:cap(a.rows)])
	for i := range rows {
		rows[i].Edges = rows[i].Edges[:0]
	}
	a.rows = rows
}

// Clear empties every row without releasing storage.
func (a *Accumulator) Clear() {
	for i := range a.rows {
		if len(a.rows[i].Edges) != 0 {
			a.rows[i].Edges = a.rows[i].Edges[:0]
		}
	}
}

// Begin starts a new subpath at (x, y) in pixel coordinates.
func (a *Accumulator) Begin(x, y float32) {
	a.startX, a.startY = x, y
	a.lastX, a.lastY = x, y
}

// Line adds a segment from the last point to (x1, y1).
// The last point always advances, even when the segment adds no crossings.
func (a *Accumulator) Line(x1, y1 float32) {
	x0, y0 := a.lastX, a.lastY
	a.lastX, a.lastY = x1, y1

	aa := float32(a.level)
	x0 *= aa
	y0 *= aa
	x1 *= aa
	y1 *= aa

	dy := y1 - y0
	if dy >= -epsilon && dy <= epsilon {
		return
	}
	up := y1 < y0

	// Clamp before converting: far off-canvas points overflow int.
	rows := float64(len(a.rows))
	lo := math.Floor(float64(min(y0, y1) + 0.5))
	hi := math.Floor(float64(max(y0, y1)-0.5)) + 1
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return
	}
	startY := int(min(max(lo, 0), rows))
	endY := int(min(max(hi, 0), rows))

	rcp := 1 / dy
	for y := startY; y < endY; y++ {
		ypos := float32(y) + 0.5
		x := x0 + (x1-x0)*(ypos-y0)*rcp
		a.rows[y].Edges = append(a.rows[y].Edges, Edge{X: x, Up: up})
	}
}

// End finishes the current subpath. When closePath is set a segment back
// to the subpath start is added.
func (a *Accumulator) End(closePath bool) {
	if closePath {
		a.Line(a.startX, a.startY)
	}
}

// SortAndExtent sorts every non-empty row by X and returns the horizontal
// extent of all crossings, clipped to [0, canvasWidth*level).
func (a *Accumulator) SortAndExtent(canvasWidth int) Extent {
	limit := float32(canvasWidth * a.level)
	left, right := limit, float32(0)

	for i := range a.rows {
		edges := a.rows[i].Edges
		if len(edges) == 0 {
			continue
		}
		slices.SortFunc(edges, func(p, q Edge) int { return cmp.Compare(p.X, q.X) })
		left = min(left, edges[0].X)
		right = max(right, edges[len(edges)-1].X)
	}

	left = max(left, 0)
	right = min(right, limit)
	return Extent{
		Left:  int(math.Floor(float64(left))),
		Right: int(math.Ceil(float64(right))),
	}
}

func roundUp(v, m int) int {
	return m * ((v + m - 1) / m)
}

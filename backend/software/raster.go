// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"math"

	"github.com/gogpu/pathfill/render"
)

// subpixelBits is the precision of snapped vertex positions.
const subpixelBits = 8

const (
	subpixelOne  = 1 << subpixelBits
	subpixelHalf = subpixelOne / 2
)

type fixedPoint struct{ x, y int64 }

// fragment holds interpolated vertex outputs at one pixel centre.
type fragment struct {
	data1 [4]float64
	data2 [4]float64
	uv    [2]float64
	mode  render.DrawMode
}

// drawTriangle rasterizes one triangle. Pixels whose centre lies on an
// edge belong to the triangle only if the edge is a top or left edge, so
// quads split along a diagonal cover every pixel exactly once.
func (c *Context) drawTriangle(tri *[3]render.Vertex) {
	w, h := c.Width(), c.Height()
	var p [3]fixedPoint
	for i := range tri {
		p[i] = toScreen(tri[i].Position, w, h)
	}

	area := edgeFunc(p[0], p[1], p[2])
	if area == 0 {
		return
	}
	order := [3]int{0, 1, 2}
	if area < 0 {
		order = [3]int{0, 2, 1}
		p[1], p[2] = p[2], p[1]
		area = -area
	}

	minX := max(floorDiv(min(p[0].x, p[1].x, p[2].x)), 0)
	maxX := min(ceilDiv(max(p[0].x, p[1].x, p[2].x)), w)
	minY := max(floorDiv(min(p[0].y, p[1].y, p[2].y)), 0)
	maxY := min(ceilDiv(max(p[0].y, p[1].y, p[2].y)), h)

	invArea := 1 / float64(area)
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			q := fixedPoint{
				x: int64(x)<<subpixelBits + subpixelHalf,
				y: int64(y)<<subpixelBits + subpixelHalf,
			}
			w0 := edgeFunc(p[1], p[2], q)
			w1 := edgeFunc(p[2], p[0], q)
			w2 := edgeFunc(p[0], p[1], q)
			if !covers(w0, p[1], p[2]) || !covers(w1, p[2], p[0]) || !covers(w2, p[0], p[1]) {
				continue
			}
			b := [3]float64{
				float64(w0) * invArea,
				float64(w1) * invArea,
				float64(w2) * invArea,
			}
			frag := interpolate(tri, order, b)
			c.shadePixel(x, y, &frag)
			c.stats.Fragments++
		}
	}
}

// toScreen maps a clip-space position to snapped pixel coordinates.
func toScreen(pos [4]float32, w, h int) fixedPoint {
	cw := float64(pos[3])
	if cw == 0 {
		cw = 1
	}
	x := (float64(pos[0])/cw + 1) / 2 * float64(w)
	y := (1 - float64(pos[1])/cw) / 2 * float64(h)
	return fixedPoint{
		x: int64(math.Round(x * subpixelOne)),
		y: int64(math.Round(y * subpixelOne)),
	}
}

// edgeFunc is twice the signed area of (a, b, q).
func edgeFunc(a, b, q fixedPoint) int64 {
	return (b.x-a.x)*(q.y-a.y) - (b.y-a.y)*(q.x-a.x)
}

// covers applies the top-left rule to the edge a->b. The two directions
// of one edge never both claim a point on it.
func covers(w int64, a, b fixedPoint) bool {
	if w != 0 {
		return w > 0
	}
	dy := b.y - a.y
	return dy > 0 || (dy == 0 && b.x < a.x)
}

func interpolate(tri *[3]render.Vertex, order [3]int, b [3]float64) fragment {
	v0, v1, v2 := &tri[order[0]], &tri[order[1]], &tri[order[2]]
	var f fragment
	for i := range 4 {
		f.data1[i] = b[0]*float64(v0.BrushData1[i]) + b[1]*float64(v1.BrushData1[i]) + b[2]*float64(v2.BrushData1[i])
		f.data2[i] = b[0]*float64(v0.BrushData2[i]) + b[1]*float64(v1.BrushData2[i]) + b[2]*float64(v2.BrushData2[i])
	}
	for i := range 2 {
		f.uv[i] = b[0]*float64(v0.TexCoord[i]) + b[1]*float64(v1.TexCoord[i]) + b[2]*float64(v2.TexCoord[i])
	}
	f.mode = v0.Mode // flat, provoking vertex
	return f
}

func floorDiv(v int64) int {
	return int(v >> subpixelBits)
}

func ceilDiv(v int64) int {
	return int((v + subpixelOne - 1) >> subpixelBits)
}

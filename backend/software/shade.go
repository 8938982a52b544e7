// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pathfill/render"
)

// shadePixel evaluates the path-fill fragment stage at (x, y) and blends
// the result into the render target.
func (c *Context) shadePixel(x, y int, f *fragment) {
	var color [4]float64
	switch f.mode {
	case render.DrawModeLinear:
		t := (f.data1[0]*f.data1[2] + f.data1[1]*f.data1[3]) * f.data2[0]
		color = c.gradient(t, int(f.data2[1]), int(f.data2[2]))
	case render.DrawModeRadial:
		t := math.Hypot(f.data1[0]*f.data2[0], f.data1[1]*f.data2[3])
		color = c.gradient(t, int(f.data2[1]), int(f.data2[2]))
	case render.DrawModeImage:
		color = c.sampleImage(f.data1[0], f.data1[1])
	default:
		color = f.data2
	}

	coverage := 0.0
	if m := c.slots[render.SlotMask]; m != nil {
		coverage = m.R8(int(math.Floor(f.uv[0]*float64(m.width))), int(math.Floor(f.uv[1]*float64(m.height))))
	}
	a := color[3]
	src := [4]float64{
		color[0] * a * coverage,
		color[1] * a * coverage,
		color[2] * a * coverage,
		a * coverage,
	}
	c.blendPixel(x, y, src)
}

// gradient mirrors the WGSL gradient lookup over stops [first, last).
func (c *Context) gradient(t float64, first, last int) [4]float64 {
	inst := c.slots[render.SlotInstance]
	if inst == nil || last <= first {
		return [4]float64{}
	}
	color := inst.RGBA32F(2*first, 0)
	prev := inst.RGBA32F(2*first+1, 0)[0]
	if t <= prev {
		return color
	}
	for i := first + 1; i < last; i++ {
		next := inst.RGBA32F(2*i, 0)
		pos := inst.RGBA32F(2*i+1, 0)[0]
		if t <= pos {
			f := 0.0
			if pos > prev {
				f = (t - prev) / (pos - prev)
			}
			var out [4]float64
			for k := range out {
				out[k] = color[k] + (next[k]-color[k])*f
			}
			return out
		}
		color, prev = next, pos
	}
	return color
}

// sampleImage reads the image slot with nearest filtering and clamping.
func (c *Context) sampleImage(u, v float64) [4]float64 {
	img := c.slots[render.SlotImage]
	if img == nil {
		return [4]float64{}
	}
	return img.RGBA8(int(math.Floor(u*float64(img.width))), int(math.Floor(v*float64(img.height))))
}

// blendPixel combines the premultiplied src with the target pixel.
func (c *Context) blendPixel(x, y int, src [4]float64) {
	off := c.img.PixOffset(x, y)
	p := c.img.Pix[off : off+4]
	dst := [4]float64{
		float64(p[0]) / 255,
		float64(p[1]) / 255,
		float64(p[2]) / 255,
		float64(p[3]) / 255,
	}
	for i := range 4 {
		comp := c.blend.Color
		if i == 3 {
			comp = c.blend.Alpha
		}
		s := src[i] * factor(comp.SrcFactor, i, src, dst)
		d := dst[i] * factor(comp.DstFactor, i, src, dst)
		p[i] = quantize(operate(comp.Operation, s, d))
	}
}

func factor(f gputypes.BlendFactor, i int, src, dst [4]float64) float64 {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorSrc:
		return src[i]
	case gputypes.BlendFactorOneMinusSrc:
		return 1 - src[i]
	case gputypes.BlendFactorSrcAlpha:
		return src[3]
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - src[3]
	case gputypes.BlendFactorDst:
		return dst[i]
	case gputypes.BlendFactorOneMinusDst:
		return 1 - dst[i]
	case gputypes.BlendFactorDstAlpha:
		return dst[3]
	case gputypes.BlendFactorOneMinusDstAlpha:
		return 1 - dst[3]
	case gputypes.BlendFactorSrcAlphaSaturated:
		if i == 3 {
			return 1
		}
		return min(src[3], 1-dst[3])
	default:
		return 1
	}
}

func operate(op gputypes.BlendOperation, s, d float64) float64 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return s - d
	case gputypes.BlendOperationReverseSubtract:
		return d - s
	case gputypes.BlendOperationMin:
		return min(s, d)
	case gputypes.BlendOperationMax:
		return max(s, d)
	default:
		return s + d
	}
}

func quantize(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

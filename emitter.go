package pathfill

import (
	"fmt"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/pathfill/render"
)

// brushSetup is the per-call part of the vertex data.
type brushSetup struct {
	mode   render.DrawMode
	data1  f32.Vec4 // zw shared by all corners
	data2  f32.Vec4
	origin Point  // corners are stored relative to it
	inv    Matrix // canvas to image texels, image mode only
	texW   float64
	texH   float64
	src    Point
}

// storeVertices appends six vertices for every queued block and the
// brush's gradient stops to the batch.
func (r *Renderer) storeVertices(brush *Brush, transform Matrix) error {
	if len(r.upload) == 0 {
		return nil
	}
	n := len(r.upload) * render.VerticesPerBlock
	if n > r.cfg.maxVertices {
		return fmt.Errorf("pathfill: %d vertices in one emission, limit %d: %w",
			n, r.cfg.maxVertices, ErrTooManyVertices)
	}
	// Queued blocks live in the current atlas, so the batch cannot be
	// flushed here. makeRoom and checkCapacity keep both limits.
	if len(r.vertices)+n > r.cfg.maxVertices {
		return fmt.Errorf("pathfill: %d buffered vertices plus %d, limit %d: %w",
			len(r.vertices), n, r.cfg.maxVertices, ErrTooManyVertices)
	}
	stops := brush.gradientStops()
	if r.stops+len(stops) > r.cfg.maxGradientStops {
		return fmt.Errorf("pathfill: %d buffered stops plus %d, limit %d: %w",
			r.stops, len(stops), r.cfg.maxGradientStops, ErrTooManyGradientStops)
	}

	setup := r.setupBrush(brush, transform, len(stops))

	sx := 2 / float32(r.width)
	sy := 2 / float32(r.height)
	bs := float64(r.cfg.maskBlockSize)

	for _, b := range r.upload {
		x0, y0 := float64(b.x), float64(b.y)
		x1, y1 := x0+bs, y0+bs
		tl := r.vertexData(&setup, Pt(x0, y0))
		tr := r.vertexData(&setup, Pt(x1, y0))
		bl := r.vertexData(&setup, Pt(x0, y1))
		br := r.vertexData(&setup, Pt(x1, y1))

		left := float32(x0)*sx - 1
		right := float32(x1)*sx - 1
		top := -(float32(y0)*sy - 1)
		bottom := -(float32(y1)*sy - 1)

		u0, v0, u1, v1 := r.atlas.UV(b.index)

		r.vertices = append(r.vertices,
			setup.vertex(f32.Vec4{left, top, 0, 1}, tl, f32.Vec2{u0, v0}),
			setup.vertex(f32.Vec4{right, top, 0, 1}, tr, f32.Vec2{u1, v0}),
			setup.vertex(f32.Vec4{left, bottom, 0, 1}, bl, f32.Vec2{u0, v1}),
			setup.vertex(f32.Vec4{right, top, 0, 1}, tr, f32.Vec2{u1, v0}),
			setup.vertex(f32.Vec4{right, bottom, 0, 1}, br, f32.Vec2{u1, v1}),
			setup.vertex(f32.Vec4{left, bottom, 0, 1}, bl, f32.Vec2{u0, v1}),
		)
	}

	for i, s := range stops {
		k := 2 * (r.stops + i)
		r.instTransfer.SetVec4(k, s.Color.vec4())
		r.instTransfer.SetVec4(k+1, f32.Vec4{float32(s.Offset), 0, 0, 0})
	}
	r.stops += len(stops)
	r.upload = r.upload[:0]
	return nil
}

// setupBrush computes the data shared by every vertex of one emission.
// Brush geometry is mapped by the brush transform, then by transform.
func (r *Renderer) setupBrush(brush *Brush, transform Matrix, numStops int) brushSetup {
	m := transform.Multiply(brush.brushTransform())
	first := float32(r.stops)
	end := float32(r.stops + numStops)

	switch brush.Kind {
	case BrushSolid:
		return brushSetup{
			mode:  render.DrawModeSolid,
			data2: brush.Color.vec4(),
		}

	case BrushLinear:
		start := m.TransformPoint(brush.Start)
		dir := m.TransformPoint(brush.End).Sub(start)
		norm := dir.Normalize()
		return brushSetup{
			mode:   render.DrawModeLinear,
			data1:  f32.Vec4{0, 0, float32(norm.X), float32(norm.Y)},
			data2:  f32.Vec4{rcp(dir.Length()), first, end, 0},
			origin: start,
		}

	case BrushRadial:
		radius := m.TransformVector(Pt(brush.RadiusX, brush.RadiusY))
		return brushSetup{
			mode:   render.DrawModeRadial,
			data2:  f32.Vec4{rcp(radius.X), first, end, rcp(radius.Y)},
			origin: m.TransformPoint(brush.Center),
		}

	case BrushImage:
		tex := brush.Image.Texture
		inv, _ := m.Invert() // checked by Fill
		r.image = tex
		src := brush.Image.sourceRect()
		return brushSetup{
			mode: render.DrawModeImage,
			inv:  inv,
			texW: float64(tex.Width()),
			texH: float64(tex.Height()),
			src:  Pt(float64(src.Min.X), float64(src.Min.Y)),
		}
	}
	panic(fmt.Sprintf("pathfill: unchecked brush kind %d", brush.Kind))
}

// vertexData returns BrushData1 for the block corner p.
func (r *Renderer) vertexData(s *brushSetup, p Point) f32.Vec4 {
	d := s.data1
	switch s.mode {
	case render.DrawModeLinear, render.DrawModeRadial:
		rel := p.Sub(s.origin)
		d[0], d[1] = float32(rel.X), float32(rel.Y)
	case render.DrawModeImage:
		ip := s.inv.TransformPoint(p)
		d[0] = float32((s.src.X + ip.X) / s.texW)
		d[1] = float32((s.src.Y + ip.Y) / s.texH)
	}
	return d
}

func (s *brushSetup) vertex(pos, data1 f32.Vec4, uv f32.Vec2) render.Vertex {
	return render.Vertex{
		Position:   pos,
		BrushData1: data1,
		BrushData2: s.data2,
		TexCoord:   uv,
		Mode:       s.mode,
	}
}

// rcp returns 1/v, or 0 for a zero v.
func rcp(v float64) float32 {
	if v == 0 {
		return 0
	}
	return float32(1 / v)
}

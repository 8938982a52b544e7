package pathfill

import (
	"fmt"

	"github.com/gogpu/pathfill/internal/mask"
	"github.com/gogpu/pathfill/internal/raster"
	"github.com/gogpu/pathfill/render"
)

// Fill rasterizes the segments added since the last Clear and queues the
// covered blocks, painted with brush. transform is the path-to-canvas
// transform the segments were already mapped with; it places the brush.
//
// Fill flushes on its own whenever the atlas, the vertex buffer or the
// gradient-stop buffer would overflow. The returned errors are
// ErrTooManyGradientStops and ErrTooManyVertices for requests no batch
// can hold, and errors from the graphic context.
func (r *Renderer) Fill(rule FillRule, brush Brush, transform Matrix) error {
	r.stats.Fills++
	if err := r.checkBrush(&brush, transform); err != nil {
		return err
	}
	if err := r.makeRoom(&brush); err != nil {
		return err
	}

	extent := r.acc.SortAndExtent(r.width)
	aa := r.cfg.antialiasLevel
	extent.Left -= extent.Left % aa
	if extent.Empty() {
		return nil
	}
	if err := r.acquire(); err != nil {
		return err
	}

	r.upload = r.upload[:0]
	sbs := r.cfg.maskBlockSize * aa
	rows := r.acc.Rows()
	fillRule := raster.FillRule(rule)

	for y := 0; y+sbs <= len(rows); y += sbs {
		band := rows[y : y+sbs]
		if bandEmpty(band) {
			continue
		}
		for i := range band {
			r.ranges[i].Begin(&band[i], fillRule)
		}

		for xpos := extent.Left; xpos < extent.Right; xpos += sbs {
			dest := block{x: xpos / aa, y: y / aa}

			full := r.fullBlock(xpos, sbs)
			if full {
				if index, ok := r.dedup.Lookup(mask.ClassFull); ok {
					dest.index = index
					r.upload = append(r.upload, dest)
					r.stats.ReusedBlocks++
					if err := r.checkCapacity(&brush, transform); err != nil {
						return err
					}
					continue
				}
			}

			if r.rasterizeBlock(xpos, sbs) {
				dest.index = r.nextBlock
				if full {
					r.dedup.Store(mask.ClassFull, r.nextBlock)
				}
				r.upload = append(r.upload, dest)
				r.nextBlock++
				r.stats.Blocks++
			}
			if err := r.checkCapacity(&brush, transform); err != nil {
				return err
			}
		}
	}

	return r.storeVertices(&brush, transform)
}

// fullBlock reports whether every row's current interval covers the
// block starting at supersampled column xpos.
func (r *Renderer) fullBlock(xpos, sbs int) bool {
	left, right := float32(xpos), float32(xpos+sbs)
	for i := range r.ranges {
		rg := &r.ranges[i]
		if !rg.Found || rg.X0 > left || rg.X1 < right {
			return false
		}
	}
	return true
}

// rasterizeBlock accumulates the coverage of the block at xpos into the
// next atlas block and reports whether any subsample was covered.
func (r *Renderer) rasterizeBlock(xpos, sbs int) bool {
	aa := r.cfg.antialiasLevel
	bx, by := r.atlas.Offset(r.nextBlock)
	step := 256 / (aa * aa)
	right := xpos + sbs

	touched := false
	for cnt := range r.ranges {
		rg := &r.ranges[cnt]
		if !rg.Found {
			continue
		}
		line := r.maskTransfer.Row(by + cnt/aa)[bx : bx+r.cfg.maskBlockSize]

		for rg.Found {
			x0 := int(rg.X0 + 0.5)
			if x0 >= right {
				break
			}
			x1 := int(rg.X1-0.5) + 1
			x0 = max(x0, xpos)
			x1 = min(x1, right)

			if x0 >= x1 {
				rg.Next()
				continue
			}
			for x := x0 - xpos; x < x1-xpos; x++ {
				line[x/aa] = uint8(min(int(line[x/aa])+step, 255))
			}
			touched = true
			rg.X0 = float32(x1)
		}
	}
	return touched
}

// checkCapacity submits the blocks queued so far when the atlas is full
// or one more block would not fit the vertex buffer.
func (r *Renderer) checkCapacity(brush *Brush, transform Matrix) error {
	need := len(r.vertices) + (len(r.upload)+1)*render.VerticesPerBlock
	if r.nextBlock < r.atlas.MaxBlocks() && need <= r.cfg.maxVertices {
		return nil
	}

	Logger().Debug("pathfill: capacity flush",
		"blocks", r.nextBlock,
		"queued", len(r.upload),
		"vertices", len(r.vertices))
	r.stats.CapacityFlushes++

	if err := r.storeVertices(brush, transform); err != nil {
		return err
	}
	if err := r.Flush(); err != nil {
		return err
	}
	if err := r.acquire(); err != nil {
		return err
	}
	r.upload = r.upload[:0]
	return nil
}

// makeRoom flushes before a fill that could not share the current batch:
// its stops would overflow the stop buffer, it samples a different image,
// or the vertex buffer has no room for one block.
func (r *Renderer) makeRoom(brush *Brush) error {
	var reason string
	switch {
	case r.stops+len(brush.gradientStops()) > r.cfg.maxGradientStops:
		reason = "gradient stops"
	case brush.Kind == BrushImage && r.image != nil && r.image != brush.Image.Texture:
		reason = "image texture"
	case len(r.vertices)+render.VerticesPerBlock > r.cfg.maxVertices:
		reason = "vertices"
	default:
		return nil
	}
	if len(r.vertices) == 0 {
		return nil
	}

	Logger().Debug("pathfill: batch flush before fill", "reason", reason)
	r.stats.CapacityFlushes++
	return r.Flush()
}

// checkBrush rejects brushes no batch can draw.
func (r *Renderer) checkBrush(brush *Brush, transform Matrix) error {
	switch brush.Kind {
	case BrushSolid, BrushLinear, BrushRadial:
	case BrushImage:
		if brush.Image.Texture == nil {
			return ErrNoImageTexture
		}
		if _, ok := transform.Multiply(brush.brushTransform()).Invert(); !ok {
			return ErrSingularTransform
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownBrush, brush.Kind)
	}
	if n := len(brush.gradientStops()); n > r.cfg.maxGradientStops {
		return fmt.Errorf("pathfill: brush has %d stops, limit %d: %w",
			n, r.cfg.maxGradientStops, ErrTooManyGradientStops)
	}
	return nil
}

func bandEmpty(band []raster.Scanline) bool {
	for i := range band {
		if !band[i].Empty() {
			return false
		}
	}
	return true
}
